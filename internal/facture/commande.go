package facture

import "time"

// The builder does not draw: it lays out a Document as an ordered list of
// drawing commands per page, against an explicit cursor. A Rendu backend
// (see pdf.go) replays the commands. This keeps the layout arithmetic
// testable without decoding any output format, and lets one layout target
// several document backends.

// Op identifies a drawing command.
type Op int

const (
	OpTexte Op = iota
	OpRect
	OpLigne
	OpImage
)

// RGB is an opaque color.
type RGB struct{ R, G, B int }

var (
	noir      = RGB{0, 0, 0}
	blanc     = RGB{255, 255, 255}
	grisClair = RGB{240, 240, 240}
	grisTrait = RGB{120, 120, 120}
	bleuNuit  = RGB{28, 40, 65}
)

// Police is a font request. The family is fixed (Helvetica); only style
// ("", "B", "I") and size vary.
type Police struct {
	Style  string
	Taille float64
}

// Commande is one drawing instruction. Which fields are meaningful depends
// on Op:
//
//	OpTexte — X, Y, W, H (cell), Texte, Police, Align, Couleur, Fond (zebra)
//	OpRect  — X, Y, W, H, Fond, Arrondi (corner radius, 0 = square)
//	OpLigne — from (X, Y) to (X2, Y2), Couleur
//	OpImage — X, Y, W, H, Image (PNG bytes)
type Commande struct {
	Op      Op
	X, Y    float64
	W, H    float64
	X2, Y2  float64
	Texte   string
	Police  Police
	Align   string
	Couleur RGB
	Fond    *RGB
	Arrondi float64
	Image   []byte
}

// Page is the ordered command list of one output page.
type Page []Commande

// Document is a fully laid-out invoice: same input, same command stream.
type Document struct {
	// Page geometry in millimetres (A4 portrait).
	Largeur, Hauteur float64
	Pages            []Page
	GenereLe         time.Time
}
