package service_test

import (
	"context"
	"testing"

	"github.com/Kountade/MSG-SARL-sub002/internal/dto"
	"github.com/Kountade/MSG-SARL-sub002/internal/model"
	"github.com/Kountade/MSG-SARL-sub002/internal/repository"
	"github.com/Kountade/MSG-SARL-sub002/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubClientRepo struct {
	clients map[uuid.UUID]*model.Client
}

func (r *stubClientRepo) Create(_ context.Context, c *model.Client) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.clients[c.ID] = c
	return nil
}

func (r *stubClientRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Client, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubClientRepo) List(_ context.Context) ([]model.Client, error) {
	var out []model.Client
	for _, c := range r.clients {
		if c.Actif {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubClientRepo) Update(_ context.Context, c *model.Client) error {
	r.clients[c.ID] = c
	return nil
}

var _ repository.ClientRepository = (*stubClientRepo)(nil)

func TestCreerClientConsigneAuJournal(t *testing.T) {
	clients := &stubClientRepo{clients: make(map[uuid.UUID]*model.Client)}
	journal := &stubJournal{}
	svc := service.NewClientService(clients, newStubVenteRepo(), journal)

	resp, err := svc.Creer(context.Background(), uuid.New(), dto.CreerClientRequest{Nom: "Boutique Sandaga"})
	require.NoError(t, err)
	assert.True(t, resp.Actif)
	assert.Equal(t, model.ActionCreation, journal.dernier().action)
	assert.Equal(t, "client", journal.dernier().modele)
}

func TestHistoriqueClient(t *testing.T) {
	clients := &stubClientRepo{clients: make(map[uuid.UUID]*model.Client)}
	ventes := newStubVenteRepo()
	svc := service.NewClientService(clients, ventes, &stubJournal{})

	clientID := uuid.New()
	autreID := uuid.New()
	clients.clients[clientID] = &model.Client{ID: clientID, Nom: "Boutique Sandaga", Actif: true}

	seme := func(numero string, cid uuid.UUID, statut string, total, restant int64) {
		v := &model.Vente{
			Numero:         numero,
			Statut:         statut,
			StatutPaiement: model.PaiementPartiel,
			MontantTotal:   decimal.NewFromInt(total),
			MontantPaye:    decimal.NewFromInt(total - restant),
			MontantRestant: decimal.NewFromInt(restant),
			ClientID:       &cid,
			UtilisateurID:  uuid.New(),
		}
		require.NoError(t, ventes.Create(context.Background(), nil, v))
	}
	seme("VT-000001", clientID, model.StatutConfirmee, 8000, 3000)
	seme("VT-000002", autreID, model.StatutConfirmee, 9999, 0)
	seme("VT-000003", clientID, model.StatutBrouillon, 2000, 2000)

	resp, err := svc.Historique(context.Background(), clientID)
	require.NoError(t, err)

	assert.Equal(t, "Boutique Sandaga", resp.Client.Nom)
	require.Len(t, resp.Ventes, 2, "les ventes des autres clients sont exclues")
	assert.True(t, resp.Agregats.ChiffreAffaires.Equal(decimal.NewFromInt(8000)),
		"seules les ventes confirmées comptent dans le chiffre d'affaires")
	assert.True(t, resp.Agregats.Creances.Equal(decimal.NewFromInt(3000)))
	assert.Equal(t, 1, resp.Agregats.ParStatut[model.StatutBrouillon])
}

func TestHistoriqueClientIntrouvable(t *testing.T) {
	clients := &stubClientRepo{clients: make(map[uuid.UUID]*model.Client)}
	svc := service.NewClientService(clients, newStubVenteRepo(), &stubJournal{})

	_, err := svc.Historique(context.Background(), uuid.New())
	assert.ErrorIs(t, err, service.ErrClientIntrouvable)
}
