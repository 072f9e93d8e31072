package facture

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatMontant(t *testing.T) {
	cas := []struct {
		entree  float64
		attendu string
	}{
		{1234567.5, "1 234 567,50"},
		{0, "0,00"},
		{-5, "-5,00"},
		{12.3, "12,30"},
		{999, "999,00"},
		{1000, "1 000,00"},
		{100000, "100 000,00"},
		{-1234567.89, "-1 234 567,89"},
	}
	for _, c := range cas {
		assert.Equal(t, c.attendu, FormatMontant(decimal.NewFromFloat(c.entree)), "entrée %v", c.entree)
	}
}

func TestNomFichier(t *testing.T) {
	genereLe := time.Date(2026, 3, 15, 18, 30, 0, 0, time.UTC)
	assert.Equal(t, "Facture-VT-000042_2026-03-15.pdf", NomFichier("VT-000042", genereLe))
}
