package facture

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FormatMontant renders an amount in the house style: integer digits grouped
// in triples separated by a single space, a comma, and exactly two decimals.
// 1234567.5 → "1 234 567,50" ; 0 → "0,00" ; -5 → "-5,00".
func FormatMontant(m decimal.Decimal) string {
	s := m.StringFixed(2)

	signe := ""
	if strings.HasPrefix(s, "-") {
		signe = "-"
		s = s[1:]
	}

	entier, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	b.WriteString(signe)
	premier := len(entier) % 3
	if premier == 0 {
		premier = 3
	}
	b.WriteString(entier[:premier])
	for i := premier; i < len(entier); i += 3 {
		b.WriteByte(' ')
		b.WriteString(entier[i : i+3])
	}
	b.WriteByte(',')
	b.WriteString(frac)
	return b.String()
}

// NomFichier builds the download name of an invoice artifact:
// Facture-{numero}_{date ISO}.pdf
func NomFichier(numero string, genereLe time.Time) string {
	return fmt.Sprintf("Facture-%s_%s.pdf", numero, genereLe.Format("2006-01-02"))
}
