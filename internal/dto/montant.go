package dto

import (
	"bytes"
	"strconv"

	"github.com/shopspring/decimal"
)

// Montant is a monetary amount that tolerates the loose typing of upstream
// payloads: JSON numbers, numeric strings, null and garbage all decode, with
// anything unparseable coerced to zero instead of failing the whole request.
type Montant struct {
	decimal.Decimal
}

// NewMontant wraps a decimal for use in response DTOs.
func NewMontant(d decimal.Decimal) Montant { return Montant{Decimal: d} }

// MontantDepuisChaine parses s, returning zero on any failure.
func MontantDepuisChaine(s string) Montant {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Montant{Decimal: decimal.Zero}
	}
	return Montant{Decimal: d}
}

func (m *Montant) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		m.Decimal = decimal.Zero
		return nil
	}
	s := string(data)
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = unquoted
	}
	*m = MontantDepuisChaine(s)
	return nil
}

func (m Montant) MarshalJSON() ([]byte, error) {
	return m.Decimal.MarshalJSON()
}
