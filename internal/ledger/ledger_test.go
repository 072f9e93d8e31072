package ledger

import (
	"testing"
	"time"

	"github.com/Kountade/MSG-SARL-sub002/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func vente(total, paye float64, statut, statutPaiement string) model.Vente {
	t := decimal.NewFromFloat(total)
	p := decimal.NewFromFloat(paye)
	return model.Vente{
		Statut:         statut,
		StatutPaiement: statutPaiement,
		MontantTotal:   t,
		MontantPaye:    p,
		MontantRestant: t.Sub(p),
	}
}

func TestPourcentagePaye(t *testing.T) {
	v := vente(1000, 400, model.StatutConfirmee, model.PaiementPartiel)
	assert.Equal(t, 40, PourcentagePaye(&v))

	v = vente(1000, 1000, model.StatutConfirmee, model.PaiementPaye)
	assert.Equal(t, 100, PourcentagePaye(&v))

	v = vente(1000, 0, model.StatutConfirmee, model.PaiementNonPaye)
	assert.Equal(t, 0, PourcentagePaye(&v))

	// round, not truncate
	v = vente(300, 100, model.StatutConfirmee, model.PaiementPartiel)
	assert.Equal(t, 33, PourcentagePaye(&v))
	v = vente(300, 200, model.StatutConfirmee, model.PaiementPartiel)
	assert.Equal(t, 67, PourcentagePaye(&v))
}

func TestPourcentagePayeTotalZero(t *testing.T) {
	v := vente(0, 0, model.StatutBrouillon, model.PaiementNonPaye)
	assert.Equal(t, 0, PourcentagePaye(&v), "total zero must never divide")
}

func TestPourcentagePayeBornes(t *testing.T) {
	for _, paye := range []float64{0, 1, 499.99, 500, 999.99, 1000} {
		v := vente(1000, paye, model.StatutConfirmee, model.PaiementPartiel)
		pct := PourcentagePaye(&v)
		assert.GreaterOrEqual(t, pct, 0)
		assert.LessOrEqual(t, pct, 100)
	}
}

func TestEstEnRetard(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	hier := now.Add(-24 * time.Hour)
	demain := now.Add(24 * time.Hour)

	v := vente(1000, 400, model.StatutConfirmee, model.PaiementNonPaye)
	v.DateEcheance = &hier
	assert.True(t, EstEnRetard(&v, now),
		"échéance passée avec solde restant: en retard même si le statut stocké dit non_paye")

	v.DateEcheance = &demain
	assert.False(t, EstEnRetard(&v, now))

	v.DateEcheance = nil
	assert.False(t, EstEnRetard(&v, now), "pas d'échéance: jamais en retard")

	paye := vente(1000, 1000, model.StatutConfirmee, model.PaiementPaye)
	paye.DateEcheance = &hier
	assert.False(t, EstEnRetard(&paye, now), "vente soldée: jamais en retard")
}

func TestStatutPaiementEffectif(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	hier := now.Add(-24 * time.Hour)

	v := vente(1000, 400, model.StatutConfirmee, model.PaiementPartiel)
	assert.Equal(t, model.PaiementPartiel, StatutPaiementEffectif(&v, now))

	v.DateEcheance = &hier
	assert.Equal(t, model.PaiementRetard, StatutPaiementEffectif(&v, now))
}

func TestCalculerAgregats(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	hier := now.Add(-24 * time.Hour)

	central := &model.Entrepot{Nom: "Central"}
	annexe := &model.Entrepot{Nom: "Annexe"}

	v1 := vente(1000, 400, model.StatutConfirmee, model.PaiementPartiel)
	v1.Lignes = []model.VenteLigne{{Entrepot: central}}
	v2 := vente(500, 500, model.StatutConfirmee, model.PaiementPaye)
	v2.Lignes = []model.VenteLigne{{Entrepot: central}, {Entrepot: annexe}}
	v3 := vente(250, 0, model.StatutBrouillon, model.PaiementNonPaye)
	v4 := vente(800, 0, model.StatutConfirmee, model.PaiementNonPaye)
	v4.DateEcheance = &hier

	ag := CalculerAgregats([]model.Vente{v1, v2, v3, v4}, now)

	assert.Equal(t, 3, ag.ParStatut[model.StatutConfirmee])
	assert.Equal(t, 1, ag.ParStatut[model.StatutBrouillon])
	assert.Equal(t, 1, ag.ParStatutPaiement[model.PaiementPartiel])
	assert.Equal(t, 1, ag.ParStatutPaiement[model.PaiementPaye])
	assert.Equal(t, 1, ag.ParStatutPaiement[model.PaiementNonPaye])
	assert.Equal(t, 1, ag.ParStatutPaiement[model.PaiementRetard],
		"l'échéance dépassée doit être comptée en_retard, pas non_paye")

	// revenue = confirmed totals only; receivables = confirmed remaining only
	assert.True(t, ag.ChiffreAffaires.Equal(decimal.NewFromInt(2300)), ag.ChiffreAffaires.String())
	assert.True(t, ag.Creances.Equal(decimal.NewFromInt(1400)), ag.Creances.String())

	assert.Equal(t, []string{"Central", "Annexe"}, ag.Entrepots)
}

func TestSousTotalLigne(t *testing.T) {
	prix := decimal.NewFromFloat(150.50)

	st := SousTotalLigne(3, prix, decimal.Zero)
	assert.True(t, st.Equal(decimal.NewFromFloat(451.50)), st.String())

	st = SousTotalLigne(2, decimal.NewFromInt(100), decimal.NewFromInt(10))
	assert.True(t, st.Equal(decimal.NewFromInt(180)), st.String())

	st = SousTotalLigne(1, decimal.NewFromInt(100), decimal.NewFromInt(100))
	assert.True(t, st.IsZero(), st.String())
}
