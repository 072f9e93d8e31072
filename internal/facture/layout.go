package facture

import (
	"bytes"
	"fmt"
	"image/png"
	"time"

	"github.com/Kountade/MSG-SARL-sub002/internal/model"

	"github.com/shopspring/decimal"
)

// Entreprise is the letterhead block printed on every invoice.
type Entreprise struct {
	Nom       string
	Adresse   string
	Telephone string
	Email     string
	// Logo holds PNG bytes; nil or undecodable bytes fall back to a
	// generated placeholder block, never an error.
	Logo []byte
}

// Page geometry (mm, A4 portrait).
const (
	pageLargeur = 210
	pageHauteur = 297
	marge       = 15
	contenuL    = pageLargeur - 2*marge

	ligneHauteur = 7
	// Rows never cross into the footer zone.
	limiteBasse = pageHauteur - marge - 22
)

// Table columns: désignation, quantité, prix unitaire, remise %, sous-total.
var colonnes = [5]float64{75, 15, 30, 20, 40}

const nonRenseigne = "Non renseigné"

var modesLibelles = map[string]string{
	"especes":      "Espèces",
	"carte":        "Carte",
	"cheque":       "Chèque",
	"virement":     "Virement",
	"mobile_money": "Mobile Money",
}

// Construire lays out the invoice of one sale snapshot. The output depends
// only on the sale, the letterhead and genereLe: rebuilding from identical
// inputs yields an identical command stream. Missing optional fields are
// substituted with placeholders — Construire never fails.
func Construire(v *model.Vente, ent Entreprise, genereLe time.Time) *Document {
	b := &builder{doc: &Document{
		Largeur:  pageLargeur,
		Hauteur:  pageHauteur,
		GenereLe: genereLe,
	}}

	b.enTete(ent)
	b.blocTitre(v)
	b.tableauLignes(v)
	b.blocTotauxEtClient(v)
	b.finaliser(genereLe)

	return b.doc
}

type builder struct {
	doc  *Document
	page Page
	y    float64
}

func (b *builder) emettre(c Commande) { b.page = append(b.page, c) }

func (b *builder) texte(x, y, w, h float64, s string, p Police, align string, couleur RGB, fond *RGB) {
	b.emettre(Commande{Op: OpTexte, X: x, Y: y, W: w, H: h, Texte: s, Police: p, Align: align, Couleur: couleur, Fond: fond})
}

func (b *builder) ligne(x1, y1, x2, y2 float64) {
	b.emettre(Commande{Op: OpLigne, X: x1, Y: y1, X2: x2, Y2: y2, Couleur: grisTrait})
}

// nouvellePage flushes the current page and resets the cursor.
func (b *builder) nouvellePage() {
	b.doc.Pages = append(b.doc.Pages, b.page)
	b.page = nil
	b.y = marge + 5
}

// ── §1 letterhead ────────────────────────────────────────────────────────────

func (b *builder) enTete(ent Entreprise) {
	b.y = marge

	if logoValide(ent.Logo) {
		b.emettre(Commande{Op: OpImage, X: marge, Y: b.y, W: 36, H: 18, Image: ent.Logo})
	} else {
		// Placeholder block: solid rounded rectangle with a short text mark.
		fond := bleuNuit
		b.emettre(Commande{Op: OpRect, X: marge, Y: b.y, W: 36, H: 18, Fond: &fond, Arrondi: 3})
		b.texte(marge, b.y+6, 36, 6, marqueCourte(ent.Nom), Police{Style: "B", Taille: 11}, "C", blanc, nil)
	}

	// Company information box, right-aligned.
	x := float64(pageLargeur - marge - 85)
	b.texte(x, b.y, 85, 6, ent.Nom, Police{Style: "B", Taille: 11}, "R", noir, nil)
	b.texte(x, b.y+6, 85, 5, ent.Adresse, Police{Taille: 9}, "R", noir, nil)
	b.texte(x, b.y+11, 85, 5, "Tél : "+ent.Telephone, Police{Taille: 9}, "R", noir, nil)
	b.texte(x, b.y+16, 85, 5, ent.Email, Police{Taille: 9}, "R", noir, nil)

	b.y += 25
	b.ligne(marge, b.y, pageLargeur-marge, b.y)
	b.y += 6
}

// logoValide only accepts bytes that actually decode as PNG, so a corrupt
// download can never poison the rendering backend.
func logoValide(logo []byte) bool {
	if len(logo) == 0 {
		return false
	}
	_, err := png.DecodeConfig(bytes.NewReader(logo))
	return err == nil
}

// marqueCourte derives the short mark drawn inside the placeholder block.
func marqueCourte(nom string) string {
	if nom == "" {
		return "—"
	}
	r := []rune(nom)
	if len(r) > 12 {
		r = r[:12]
	}
	return string(r)
}

// ── §2 title block ───────────────────────────────────────────────────────────

func (b *builder) blocTitre(v *model.Vente) {
	b.texte(marge, b.y, 90, 9, "FACTURE", Police{Style: "B", Taille: 16}, "L", bleuNuit, nil)

	// Settled iff confirmed AND nothing remains due.
	libelle := "NON ACQUITTÉE"
	if v.Statut == model.StatutConfirmee && v.MontantRestant.IsZero() {
		libelle = "ACQUITTÉE"
	}
	b.texte(pageLargeur-marge-60, b.y+1, 60, 8, libelle, Police{Style: "B", Taille: 11}, "R", noir, nil)

	b.y += 11
	b.texte(marge, b.y, 90, 5, "N° "+v.Numero, Police{Style: "B", Taille: 10}, "L", noir, nil)
	b.y += 5
	b.texte(marge, b.y, 90, 5, "Date : "+v.CreatedAt.Format("02/01/2006"), Police{Taille: 9}, "L", noir, nil)
	if v.DateEcheance != nil {
		b.texte(marge+60, b.y, 90, 5, "Échéance : "+v.DateEcheance.Format("02/01/2006"), Police{Taille: 9}, "L", noir, nil)
	}
	b.y += 9
}

// ── §3 line-item table ───────────────────────────────────────────────────────

func (b *builder) enTeteTableau() {
	fond := bleuNuit
	titres := [5]string{"Désignation", "Qté", "Prix unitaire", "Remise %", "Sous-total"}
	aligns := [5]string{"L", "C", "R", "R", "R"}
	x := float64(marge)
	for i, w := range colonnes {
		b.texte(x, b.y, w, 8, titres[i], Police{Style: "B", Taille: 9}, aligns[i], blanc, &fond)
		x += w
	}
	b.y += 8
}

func (b *builder) tableauLignes(v *model.Vente) {
	b.enTeteTableau()

	for i := range v.Lignes {
		// Page break BEFORE the row; the header is redrawn on the new page.
		if b.y+ligneHauteur > limiteBasse {
			b.nouvellePage()
			b.enTeteTableau()
		}

		l := &v.Lignes[i]
		nom := nonProduitNom(l)

		// Zebra striping by index parity, legibility only.
		var fond *RGB
		if i%2 == 1 {
			f := grisClair
			fond = &f
		}

		cellules := [5]string{
			nom,
			fmt.Sprintf("%d", l.Quantite),
			FormatMontant(l.PrixUnitaire),
			l.RemisePct.StringFixed(1),
			FormatMontant(l.SousTotal),
		}
		aligns := [5]string{"L", "C", "R", "R", "R"}
		x := float64(marge)
		for j, w := range colonnes {
			b.texte(x, b.y, w, ligneHauteur, cellules[j], Police{Taille: 9}, aligns[j], noir, fond)
			x += w
		}
		b.y += ligneHauteur
	}

	b.ligne(marge, b.y, pageLargeur-marge, b.y)
	b.y += 4
}

func nonProduitNom(l *model.VenteLigne) string {
	if l.Produit == nil || l.Produit.Nom == "" {
		return "Produit sans nom"
	}
	nom := []rune(l.Produit.Nom)
	if len(nom) > 42 {
		return string(nom[:41]) + "…"
	}
	return string(nom)
}

// ── §4 totals + §5 client block ──────────────────────────────────────────────

func (b *builder) blocTotauxEtClient(v *model.Vente) {
	// Both blocks sit side by side; make sure the taller one fits.
	if b.y+46 > limiteBasse {
		b.nouvellePage()
	}
	haut := b.y

	// Totals, right column.
	x := float64(pageLargeur - marge - 85)
	sousTotal := v.MontantTotal.Add(v.Remise)
	b.ligneTotal(x, "Sous-total", sousTotal, false)
	b.ligneTotal(x, "Remise", v.Remise.Neg(), false)
	b.ligneTotal(x, "Total", v.MontantTotal, true)
	b.ligneTotal(x, "Montant payé", v.MontantPaye, false)
	b.ligneTotal(x, "Restant dû", v.MontantRestant, true)
	basTotaux := b.y

	// Client block, left column, aligned with the totals.
	b.y = haut
	b.texte(marge, b.y, 80, 6, "FACTURÉ À", Police{Style: "B", Taille: 10}, "L", bleuNuit, nil)
	b.y += 7
	for _, l := range blocClient(v) {
		b.texte(marge, b.y, 80, 5, l, Police{Taille: 9}, "L", noir, nil)
		b.y += 5
	}

	if basTotaux > b.y {
		b.y = basTotaux
	}
	b.y += 6
}

func (b *builder) ligneTotal(x float64, libelle string, montant decimal.Decimal, gras bool) {
	p := Police{Taille: 9}
	if gras {
		p = Police{Style: "B", Taille: 10}
	}
	b.texte(x, b.y, 45, 6, libelle, p, "L", noir, nil)
	b.texte(x+45, b.y, 40, 6, FormatMontant(montant), p, "R", noir, nil)
	b.y += 6
}

func blocClient(v *model.Vente) []string {
	nom, adresse, tel, email := nonRenseigne, nonRenseigne, nonRenseigne, nonRenseigne
	if c := v.Client; c != nil {
		if c.Nom != "" {
			nom = c.Nom
		}
		if c.Adresse != nil && *c.Adresse != "" {
			adresse = *c.Adresse
		}
		if c.Telephone != nil && *c.Telephone != "" {
			tel = *c.Telephone
		}
		if c.Email != nil && *c.Email != "" {
			email = *c.Email
		}
	}

	mode := nonRenseigne
	if n := len(v.Paiements); n > 0 {
		if lib, ok := modesLibelles[v.Paiements[n-1].ModePaiement]; ok {
			mode = lib
		}
	}

	return []string{
		nom,
		adresse,
		"Tél : " + tel,
		email,
		"Mode de paiement : " + mode,
	}
}

// ── §6 footer, finalization pass ─────────────────────────────────────────────

// finaliser closes the last page then stamps every page with the legal
// boilerplate and "Page X sur Y" — the total is only known here, after the
// whole document is laid out.
func (b *builder) finaliser(genereLe time.Time) {
	b.doc.Pages = append(b.doc.Pages, b.page)
	b.page = nil

	total := len(b.doc.Pages)
	for i := range b.doc.Pages {
		p := b.doc.Pages[i]
		yPied := float64(pageHauteur - marge - 10)
		p = append(p, Commande{Op: OpLigne, X: marge, Y: yPied, X2: pageLargeur - marge, Y2: yPied, Couleur: grisTrait})
		p = append(p,
			Commande{Op: OpTexte, X: marge, Y: yPied + 2, W: contenuL, H: 4,
				Texte:  "Facture établie par MSG-SARL. TVA non applicable, art. 293 B du CGI.",
				Police: Police{Style: "I", Taille: 7}, Align: "C", Couleur: grisTrait},
			Commande{Op: OpTexte, X: marge, Y: yPied + 6, W: 90, H: 4,
				Texte:  "Générée le " + genereLe.Format("02/01/2006 15:04"),
				Police: Police{Taille: 7}, Align: "L", Couleur: grisTrait},
			Commande{Op: OpTexte, X: pageLargeur - marge - 40, Y: yPied + 6, W: 40, H: 4,
				Texte:  fmt.Sprintf("Page %d sur %d", i+1, total),
				Police: Police{Taille: 7}, Align: "R", Couleur: grisTrait},
		)
		b.doc.Pages[i] = p
	}
}
