package ledger

import (
	"strings"
	"time"

	"github.com/Kountade/MSG-SARL-sub002/internal/model"
)

// TaillesPage are the page sizes the list views may request.
var TaillesPage = []int{10, 25, 50, 100}

// TaillePageParDefaut is used when no size or an unknown size is requested.
const TaillePageParDefaut = 25

// Pagination is a zero-based page cursor over a filtered result set.
type Pagination struct {
	Page   int
	Taille int
}

// ChangerTaille switches the page size and resets the cursor to the first
// page. Sizes outside TaillesPage fall back to the default.
func (p *Pagination) ChangerTaille(taille int) {
	p.Taille = TaillePageParDefaut
	for _, t := range TaillesPage {
		if t == taille {
			p.Taille = taille
			break
		}
	}
	p.Page = 0
}

// FiltreVentes is a conjunction of predicates over a sale collection.
// Recherche is a case-insensitive substring matched against numero, client
// name and notes — a sale matches when ANY of those fields contains the
// term. StatutPaiement accepts the pseudo-statut en_retard, resolved via
// EstEnRetard instead of the stored field.
type FiltreVentes struct {
	Recherche      string
	Statut         string
	StatutPaiement string
	DateDebut      *time.Time
	DateFin        *time.Time
	Pagination     Pagination
}

// ResultatFiltre is the page slice plus the size of the full match set.
type ResultatFiltre struct {
	Items              []model.Vente
	TotalCorrespondant int
}

// AppliquerFiltre narrows ventes to the records matching f and returns the
// requested page. Ordering is stable: the input order restricted to matches,
// no sort key is ever applied. The page index is clamped into the valid
// range so a shrinking result set can never yield an empty page.
func AppliquerFiltre(ventes []model.Vente, f FiltreVentes, now time.Time) ResultatFiltre {
	terme := strings.ToLower(strings.TrimSpace(f.Recherche))

	var correspondants []model.Vente
	for i := range ventes {
		if venteCorrespond(&ventes[i], f, terme, now) {
			correspondants = append(correspondants, ventes[i])
		}
	}

	taille := f.Pagination.Taille
	if taille <= 0 {
		taille = TaillePageParDefaut
	}
	page := f.Pagination.Page
	if page < 0 {
		page = 0
	}
	if max := DernierePage(len(correspondants), taille); page > max {
		page = max
	}

	debut := page * taille
	fin := debut + taille
	if debut > len(correspondants) {
		debut = len(correspondants)
	}
	if fin > len(correspondants) {
		fin = len(correspondants)
	}

	return ResultatFiltre{
		Items:              correspondants[debut:fin],
		TotalCorrespondant: len(correspondants),
	}
}

// DernierePage is the highest valid zero-based page index for a result set.
func DernierePage(total, taille int) int {
	if total <= 0 {
		return 0
	}
	return (total - 1) / taille
}

func venteCorrespond(v *model.Vente, f FiltreVentes, terme string, now time.Time) bool {
	if f.Statut != "" && v.Statut != f.Statut {
		return false
	}
	if f.StatutPaiement != "" {
		if f.StatutPaiement == model.PaiementRetard {
			if !EstEnRetard(v, now) {
				return false
			}
		} else if v.StatutPaiement != f.StatutPaiement {
			return false
		}
	}
	if f.DateDebut != nil && v.CreatedAt.Before(*f.DateDebut) {
		return false
	}
	if f.DateFin != nil && !v.CreatedAt.Before(*f.DateFin) {
		return false
	}
	if terme != "" && !contientTerme(v, terme) {
		return false
	}
	return true
}

func contientTerme(v *model.Vente, terme string) bool {
	if strings.Contains(strings.ToLower(v.Numero), terme) {
		return true
	}
	if v.Client != nil && strings.Contains(strings.ToLower(v.Client.Nom), terme) {
		return true
	}
	if v.Notes != nil && strings.Contains(strings.ToLower(*v.Notes), terme) {
		return true
	}
	return false
}
