package facture

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// Rendu turns a laid-out Document into a binary artifact.
type Rendu interface {
	Rendre(doc *Document) ([]byte, error)
}

// RenduPDF replays the command stream with go-pdf/fpdf. Rendering performs
// no I/O: the caller receives bytes and decides where they go. Each call
// owns its own fpdf instance, so concurrent renders never share state.
type RenduPDF struct{}

func (RenduPDF) Rendre(doc *Document) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	// Fixed creation dates keep identical inputs byte-for-byte identical.
	pdf.SetCreationDate(doc.GenereLe)
	pdf.SetModificationDate(doc.GenereLe)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)

	// Core fonts use cp1252; the translator covers the accents we emit.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for pi, page := range doc.Pages {
		pdf.AddPage()
		for ci, c := range page {
			switch c.Op {
			case OpTexte:
				pdf.SetFont("Helvetica", c.Police.Style, c.Police.Taille)
				pdf.SetTextColor(c.Couleur.R, c.Couleur.G, c.Couleur.B)
				remplir := c.Fond != nil
				if remplir {
					pdf.SetFillColor(c.Fond.R, c.Fond.G, c.Fond.B)
				}
				pdf.SetXY(c.X, c.Y)
				pdf.CellFormat(c.W, c.H, tr(c.Texte), "", 0, c.Align, remplir, 0, "")

			case OpRect:
				if c.Fond != nil {
					pdf.SetFillColor(c.Fond.R, c.Fond.G, c.Fond.B)
				}
				if c.Arrondi > 0 {
					pdf.RoundedRect(c.X, c.Y, c.W, c.H, c.Arrondi, "1234", "F")
				} else {
					pdf.Rect(c.X, c.Y, c.W, c.H, "F")
				}

			case OpLigne:
				pdf.SetDrawColor(c.Couleur.R, c.Couleur.G, c.Couleur.B)
				pdf.Line(c.X, c.Y, c.X2, c.Y2)

			case OpImage:
				nom := fmt.Sprintf("img-%d-%d", pi, ci)
				pdf.RegisterImageOptionsReader(nom,
					fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(c.Image))
				pdf.ImageOptions(nom, c.X, c.Y, c.W, c.H, false,
					fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
			}
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("facture: rendu pdf: %w", err)
	}
	return buf.Bytes(), nil
}
