package ledger

import (
	"fmt"
	"testing"
	"time"

	"github.com/Kountade/MSG-SARL-sub002/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jeuDeVentes() []model.Vente {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	ventes := make([]model.Vente, 0, 12)
	for i := 0; i < 12; i++ {
		statut := model.StatutConfirmee
		if i%4 == 0 {
			statut = model.StatutBrouillon
		}
		notes := fmt.Sprintf("commande mensuelle %d", i)
		ventes = append(ventes, model.Vente{
			Numero:         fmt.Sprintf("VT-%06d", i+1),
			Statut:         statut,
			StatutPaiement: model.PaiementNonPaye,
			MontantTotal:   decimal.NewFromInt(int64(100 * (i + 1))),
			Client:         &model.Client{Nom: fmt.Sprintf("Client %d", i)},
			Notes:          &notes,
			CreatedAt:      base.Add(time.Duration(i) * 24 * time.Hour),
		})
	}
	return ventes
}

func TestFiltreToutSatisfaitLePredicat(t *testing.T) {
	now := time.Now()
	ventes := jeuDeVentes()
	f := FiltreVentes{
		Statut:     model.StatutConfirmee,
		Pagination: Pagination{Page: 0, Taille: 100},
	}
	res := AppliquerFiltre(ventes, f, now)
	assert.LessOrEqual(t, len(res.Items), res.TotalCorrespondant)
	for _, v := range res.Items {
		assert.Equal(t, model.StatutConfirmee, v.Statut)
	}
	assert.Equal(t, 9, res.TotalCorrespondant)
}

func TestFiltreOrdreStable(t *testing.T) {
	ventes := jeuDeVentes()
	f := FiltreVentes{Pagination: Pagination{Taille: 100}}
	res := AppliquerFiltre(ventes, f, time.Now())
	require.Len(t, res.Items, 12)
	for i, v := range res.Items {
		assert.Equal(t, ventes[i].Numero, v.Numero, "aucun tri implicite")
	}
}

func TestFiltreRechercheInsensibleALaCasse(t *testing.T) {
	ventes := jeuDeVentes()
	f := FiltreVentes{Recherche: "vt-000003", Pagination: Pagination{Taille: 25}}
	res := AppliquerFiltre(ventes, f, time.Now())
	require.Equal(t, 1, res.TotalCorrespondant)
	assert.Equal(t, "VT-000003", res.Items[0].Numero)

	// ANY designated field may match — here the client name
	f = FiltreVentes{Recherche: "CLIENT 7", Pagination: Pagination{Taille: 25}}
	res = AppliquerFiltre(ventes, f, time.Now())
	require.Equal(t, 1, res.TotalCorrespondant)
	assert.Equal(t, "VT-000008", res.Items[0].Numero)

	// and the notes
	f = FiltreVentes{Recherche: "Mensuelle 11", Pagination: Pagination{Taille: 25}}
	res = AppliquerFiltre(ventes, f, time.Now())
	assert.Equal(t, 1, res.TotalCorrespondant)
}

func TestFiltrePseudoStatutEnRetard(t *testing.T) {
	now := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	hier := now.Add(-24 * time.Hour)
	ventes := jeuDeVentes()
	ventes[2].DateEcheance = &hier
	ventes[5].DateEcheance = &hier
	ventes[5].StatutPaiement = model.PaiementPaye // soldée: pas en retard

	f := FiltreVentes{StatutPaiement: model.PaiementRetard, Pagination: Pagination{Taille: 25}}
	res := AppliquerFiltre(ventes, f, now)
	require.Equal(t, 1, res.TotalCorrespondant)
	assert.Equal(t, "VT-000003", res.Items[0].Numero)
}

func TestFiltrePlageDeDates(t *testing.T) {
	ventes := jeuDeVentes()
	debut := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
	fin := time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC)
	f := FiltreVentes{DateDebut: &debut, DateFin: &fin, Pagination: Pagination{Taille: 25}}
	res := AppliquerFiltre(ventes, f, time.Now())
	assert.Equal(t, 3, res.TotalCorrespondant) // 3, 4, 5 mars
}

func TestFiltrePagination(t *testing.T) {
	ventes := jeuDeVentes()
	f := FiltreVentes{Pagination: Pagination{Page: 1, Taille: 10}}
	res := AppliquerFiltre(ventes, f, time.Now())
	assert.Equal(t, 12, res.TotalCorrespondant)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "VT-000011", res.Items[0].Numero)
}

func TestFiltrePageClampee(t *testing.T) {
	ventes := jeuDeVentes()
	f := FiltreVentes{Pagination: Pagination{Page: 50, Taille: 10}}
	res := AppliquerFiltre(ventes, f, time.Now())
	require.Len(t, res.Items, 2, "page hors bornes ramenée à la dernière page")
	assert.Equal(t, "VT-000011", res.Items[0].Numero)

	// collection vide: page 0, aucun item
	res = AppliquerFiltre(nil, f, time.Now())
	assert.Empty(t, res.Items)
	assert.Equal(t, 0, res.TotalCorrespondant)
}

func TestChangerTailleRemetALaPremierePage(t *testing.T) {
	p := Pagination{Page: 4, Taille: 10}
	p.ChangerTaille(50)
	assert.Equal(t, 0, p.Page)
	assert.Equal(t, 50, p.Taille)

	p.Page = 3
	p.ChangerTaille(999) // taille inconnue: retombe sur la valeur par défaut
	assert.Equal(t, 0, p.Page)
	assert.Equal(t, TaillePageParDefaut, p.Taille)
}
