// Package ledger computes the derived financial figures of sales:
// percentage paid, overdue state, dashboard aggregates, and the in-memory
// filter/pagination applied to list views. Everything here is a pure
// function of its inputs — no I/O, no hidden state — so every screen can
// share one implementation instead of recomputing ad hoc.
package ledger

import (
	"time"

	"github.com/Kountade/MSG-SARL-sub002/internal/model"

	"github.com/shopspring/decimal"
)

var cent = decimal.NewFromInt(100)

// PourcentagePaye returns round(paye/total × 100). Defined as 0 when the
// total is zero or negative — a division by zero must never surface.
func PourcentagePaye(v *model.Vente) int {
	if !v.MontantTotal.IsPositive() {
		return 0
	}
	pct := v.MontantPaye.Div(v.MontantTotal).Mul(cent).Round(0)
	return int(pct.IntPart())
}

// EstEnRetard reports whether the sale is overdue: a due date exists, lies
// strictly before now, and the sale is not fully settled. The stored
// statut_paiement is deliberately ignored beyond the "paye" check — a sale
// recorded as non_paye with a past due date IS overdue.
func EstEnRetard(v *model.Vente, now time.Time) bool {
	if v.DateEcheance == nil {
		return false
	}
	if v.StatutPaiement == model.PaiementPaye {
		return false
	}
	return v.DateEcheance.Before(now)
}

// StatutPaiementEffectif resolves the payment status as displayed: the
// stored status, promoted to en_retard when the due date has passed.
func StatutPaiementEffectif(v *model.Vente, now time.Time) string {
	if EstEnRetard(v, now) {
		return model.PaiementRetard
	}
	return v.StatutPaiement
}

// Agregats are the dashboard figures derived from a sale collection.
type Agregats struct {
	ParStatut         map[string]int
	ParStatutPaiement map[string]int
	// ChiffreAffaires is the summed total of confirmed sales.
	ChiffreAffaires decimal.Decimal
	// Creances is the summed outstanding balance of confirmed sales.
	Creances decimal.Decimal
	// Entrepots lists the distinct warehouse names touched, in first-seen order.
	Entrepots []string
}

// CalculerAgregats walks the collection once and derives all dashboard
// figures. The source slice is never mutated.
func CalculerAgregats(ventes []model.Vente, now time.Time) Agregats {
	ag := Agregats{
		ParStatut:         make(map[string]int),
		ParStatutPaiement: make(map[string]int),
		ChiffreAffaires:   decimal.Zero,
		Creances:          decimal.Zero,
	}
	vus := make(map[string]bool)
	for i := range ventes {
		v := &ventes[i]
		ag.ParStatut[v.Statut]++
		ag.ParStatutPaiement[StatutPaiementEffectif(v, now)]++
		if v.Statut == model.StatutConfirmee {
			ag.ChiffreAffaires = ag.ChiffreAffaires.Add(v.MontantTotal)
			ag.Creances = ag.Creances.Add(v.MontantRestant)
		}
		for j := range v.Lignes {
			if e := v.Lignes[j].Entrepot; e != nil && !vus[e.Nom] {
				vus[e.Nom] = true
				ag.Entrepots = append(ag.Entrepots, e.Nom)
			}
		}
	}
	return ag
}

// SousTotalLigne computes quantite × prix × (1 − remisePct/100).
func SousTotalLigne(quantite int, prixUnitaire, remisePct decimal.Decimal) decimal.Decimal {
	brut := prixUnitaire.Mul(decimal.NewFromInt(int64(quantite)))
	if remisePct.IsZero() {
		return brut
	}
	facteur := decimal.NewFromInt(1).Sub(remisePct.Div(cent))
	return brut.Mul(facteur).Round(2)
}
