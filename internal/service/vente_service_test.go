package service_test

import (
	"context"
	"testing"
	"time"

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

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubVenteRepo is an in-memory VenteRepository. Lines and payments live in
// side maps and are re-attached on every read, the way a preload would.
type stubVenteRepo struct {
	ventes    map[uuid.UUID]*model.Vente
	lignes    map[uuid.UUID][]model.VenteLigne
	paiements map[uuid.UUID][]model.Paiement
	ordre     []uuid.UUID
	seq       int
}

func newStubVenteRepo() *stubVenteRepo {
	return &stubVenteRepo{
		ventes:    make(map[uuid.UUID]*model.Vente),
		lignes:    make(map[uuid.UUID][]model.VenteLigne),
		paiements: make(map[uuid.UUID][]model.Paiement),
	}
}

func (r *stubVenteRepo) Create(_ context.Context, _ *gorm.DB, v *model.Vente) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now()
	}
	r.lignes[v.ID] = v.Lignes
	cp := *v
	cp.Lignes = nil
	r.ventes[v.ID] = &cp
	r.ordre = append(r.ordre, v.ID)
	return nil
}

func (r *stubVenteRepo) compose(v *model.Vente) *model.Vente {
	cp := *v
	cp.Lignes = r.lignes[v.ID]
	cp.Paiements = r.paiements[v.ID]
	return &cp
}

func (r *stubVenteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Vente, error) {
	v, ok := r.ventes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r.compose(v), nil
}

func (r *stubVenteRepo) ListAll(_ context.Context) ([]model.Vente, error) {
	out := make([]model.Vente, 0, len(r.ordre))
	for i := len(r.ordre) - 1; i >= 0; i-- { // newest first
		if v, ok := r.ventes[r.ordre[i]]; ok {
			out = append(out, *r.compose(v))
		}
	}
	return out, nil
}

func (r *stubVenteRepo) ListByClient(ctx context.Context, clientID uuid.UUID) ([]model.Vente, error) {
	tous, _ := r.ListAll(ctx)
	var out []model.Vente
	for _, v := range tous {
		if v.ClientID != nil && *v.ClientID == clientID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *stubVenteRepo) UpdateTx(_ *gorm.DB, v *model.Vente) error {
	if _, ok := r.ventes[v.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *v
	cp.Lignes = nil
	cp.Paiements = nil
	r.ventes[v.ID] = &cp
	return nil
}

func (r *stubVenteRepo) ReplaceLignesTx(_ *gorm.DB, venteID uuid.UUID, lignes []model.VenteLigne) error {
	r.lignes[venteID] = lignes
	return nil
}

func (r *stubVenteRepo) CreatePaiementTx(_ *gorm.DB, p *model.Paiement) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = time.Now()
	r.paiements[p.VenteID] = append(r.paiements[p.VenteID], *p)
	return nil
}

func (r *stubVenteRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.ventes, id)
	delete(r.lignes, id)
	delete(r.paiements, id)
	return nil
}

func (r *stubVenteRepo) NextNumero(_ context.Context, _ *gorm.DB) (int, error) {
	r.seq++
	return r.seq, nil
}

func (r *stubVenteRepo) DB() *gorm.DB { return nil }

var _ repository.VenteRepository = (*stubVenteRepo)(nil)

// stubProduitRepo serves a fixed catalog.
type stubProduitRepo struct {
	produits map[uuid.UUID]*model.Produit
}

func (r *stubProduitRepo) Create(_ context.Context, p *model.Produit) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.produits[p.ID] = p
	return nil
}

func (r *stubProduitRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Produit, error) {
	p, ok := r.produits[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProduitRepo) List(_ context.Context) ([]model.Produit, error) {
	var out []model.Produit
	for _, p := range r.produits {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubProduitRepo) Update(_ context.Context, p *model.Produit) error {
	r.produits[p.ID] = p
	return nil
}

var _ repository.ProduitRepository = (*stubProduitRepo)(nil)

type cleStock struct{ produit, entrepot uuid.UUID }

// stubEntrepotRepo tracks quantities per (produit, entrepot) pair and records
// every movement it is asked to create.
type stubEntrepotRepo struct {
	entrepots  map[uuid.UUID]*model.Entrepot
	stocks     map[cleStock]int
	mouvements []model.MouvementStock
}

func newStubEntrepotRepo() *stubEntrepotRepo {
	return &stubEntrepotRepo{
		entrepots: make(map[uuid.UUID]*model.Entrepot),
		stocks:    make(map[cleStock]int),
	}
}

func (r *stubEntrepotRepo) Create(_ context.Context, e *model.Entrepot) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	r.entrepots[e.ID] = e
	return nil
}

func (r *stubEntrepotRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Entrepot, error) {
	e, ok := r.entrepots[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return e, nil
}

func (r *stubEntrepotRepo) List(_ context.Context) ([]model.Entrepot, error) {
	var out []model.Entrepot
	for _, e := range r.entrepots {
		out = append(out, *e)
	}
	return out, nil
}

func (r *stubEntrepotRepo) StockParProduit(_ context.Context, produitID uuid.UUID) ([]model.StockEntrepot, error) {
	var out []model.StockEntrepot
	for k, q := range r.stocks {
		if k.produit == produitID {
			out = append(out, model.StockEntrepot{ProduitID: k.produit, EntrepotID: k.entrepot, Quantite: q})
		}
	}
	return out, nil
}

func (r *stubEntrepotRepo) FindStockTx(_ *gorm.DB, produitID, entrepotID uuid.UUID) (*model.StockEntrepot, error) {
	q, ok := r.stocks[cleStock{produitID, entrepotID}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &model.StockEntrepot{ProduitID: produitID, EntrepotID: entrepotID, Quantite: q}, nil
}

func (r *stubEntrepotRepo) AjusterStockTx(_ *gorm.DB, produitID, entrepotID uuid.UUID, delta int) error {
	r.stocks[cleStock{produitID, entrepotID}] += delta
	return nil
}

func (r *stubEntrepotRepo) CreateMouvementTx(_ *gorm.DB, m *model.MouvementStock) error {
	r.mouvements = append(r.mouvements, *m)
	return nil
}

var _ repository.EntrepotRepository = (*stubEntrepotRepo)(nil)

// stubJournal records what would have been consigned.
type entreeJournal struct {
	action      string
	modele      string
	description string
}

type stubJournal struct {
	entrees []entreeJournal
}

func (j *stubJournal) Consigner(_ context.Context, action, modele string, _, _ uuid.UUID, description string, _ any) {
	j.entrees = append(j.entrees, entreeJournal{action, modele, description})
}

func (j *stubJournal) ConsignerTx(_ *gorm.DB, action, modele string, _, _ uuid.UUID, description string, _ any) error {
	j.entrees = append(j.entrees, entreeJournal{action, modele, description})
	return nil
}

func (j *stubJournal) Lister(_ context.Context, _ dto.JournalFilter) (*dto.JournalListResponse, error) {
	return &dto.JournalListResponse{}, nil
}

func (j *stubJournal) dernier() entreeJournal {
	if len(j.entrees) == 0 {
		return entreeJournal{}
	}
	return j.entrees[len(j.entrees)-1]
}

var _ service.JournalService = (*stubJournal)(nil)

// ── Fixture ───────────────────────────────────────────────────────────────────

type fixture struct {
	ventes    *stubVenteRepo
	produits  *stubProduitRepo
	entrepots *stubEntrepotRepo
	journal   *stubJournal
	svc       service.VenteService

	clavier uuid.UUID // 15000
	souris  uuid.UUID // 5000
	dakar   uuid.UUID
	vendeur uuid.UUID
}

func newFixture() *fixture {
	f := &fixture{
		ventes:    newStubVenteRepo(),
		produits:  &stubProduitRepo{produits: make(map[uuid.UUID]*model.Produit)},
		entrepots: newStubEntrepotRepo(),
		journal:   &stubJournal{},
		clavier:   uuid.New(),
		souris:    uuid.New(),
		dakar:     uuid.New(),
		vendeur:   uuid.New(),
	}
	f.produits.produits[f.clavier] = &model.Produit{
		ID: f.clavier, Reference: "CLV-001", Nom: "Clavier",
		PrixVente: decimal.NewFromInt(15000), Actif: true,
	}
	f.produits.produits[f.souris] = &model.Produit{
		ID: f.souris, Reference: "SRS-001", Nom: "Souris",
		PrixVente: decimal.NewFromInt(5000), Actif: true,
	}
	f.entrepots.entrepots[f.dakar] = &model.Entrepot{ID: f.dakar, Nom: "Dakar", Actif: true}
	f.svc = service.NewVenteService(f.ventes, f.produits, f.entrepots, f.journal, nil)
	return f
}

func (f *fixture) stock(produit uuid.UUID, quantite int) {
	f.entrepots.stocks[cleStock{produit, f.dakar}] = quantite
}

func (f *fixture) creerBrouillon(t *testing.T, req dto.CreerVenteRequest) *dto.VenteResponse {
	t.Helper()
	resp, err := f.svc.CreerVente(context.Background(), f.vendeur, req)
	require.NoError(t, err)
	return resp
}

func montant(v int64) dto.Montant { return dto.NewMontant(decimal.NewFromInt(v)) }

func ligne(produit, entrepot uuid.UUID, quantite int) dto.LigneVenteRequest {
	return dto.LigneVenteRequest{
		ProduitID:  produit.String(),
		EntrepotID: entrepot.String(),
		Quantite:   quantite,
	}
}

// ── Création ──────────────────────────────────────────────────────────────────

func TestCreerVenteCalculeTotaux(t *testing.T) {
	f := newFixture()

	// 2×15000 + 4×5000×0.75 = 45000, remise globale 5000
	l2 := ligne(f.souris, f.dakar, 4)
	l2.RemisePct = montant(25)
	resp := f.creerBrouillon(t, dto.CreerVenteRequest{
		Lignes: []dto.LigneVenteRequest{ligne(f.clavier, f.dakar, 2), l2},
		Remise: montant(5000),
	})

	assert.Equal(t, "VT-000001", resp.Numero)
	assert.Equal(t, model.StatutBrouillon, resp.Statut)
	assert.Equal(t, model.PaiementNonPaye, resp.StatutPaiement)
	assert.True(t, resp.MontantTotal.Equal(decimal.NewFromInt(40000)), "total = %s", resp.MontantTotal)
	assert.True(t, resp.MontantRestant.Equal(decimal.NewFromInt(40000)))
	assert.True(t, resp.MontantPaye.IsZero())
	require.Len(t, resp.Lignes, 2)
	assert.True(t, resp.Lignes[0].PrixUnitaire.Equal(decimal.NewFromInt(15000)), "prix figé à la création")
	assert.True(t, resp.Lignes[1].SousTotal.Equal(decimal.NewFromInt(15000)))

	assert.Equal(t, model.ActionCreation, f.journal.dernier().action)
	assert.Equal(t, "vente", f.journal.dernier().modele)
}

func TestCreerVenteNumerotationSequentielle(t *testing.T) {
	f := newFixture()
	lignes := []dto.LigneVenteRequest{ligne(f.clavier, f.dakar, 1)}

	a := f.creerBrouillon(t, dto.CreerVenteRequest{Lignes: lignes})
	b := f.creerBrouillon(t, dto.CreerVenteRequest{Lignes: lignes})

	assert.Equal(t, "VT-000001", a.Numero)
	assert.Equal(t, "VT-000002", b.Numero)
}

func TestCreerVenteRemiseExcessive(t *testing.T) {
	f := newFixture()

	_, err := f.svc.CreerVente(context.Background(), f.vendeur, dto.CreerVenteRequest{
		Lignes: []dto.LigneVenteRequest{ligne(f.souris, f.dakar, 1)}, // 5000
		Remise: montant(6000),
	})

	require.ErrorIs(t, err, service.ErrRemiseInvalide)
	assert.Empty(t, f.ventes.ventes, "rien ne doit être persisté")
}

func TestCreerVenteProduitInactif(t *testing.T) {
	f := newFixture()
	f.produits.produits[f.souris].Actif = false

	_, err := f.svc.CreerVente(context.Background(), f.vendeur, dto.CreerVenteRequest{
		Lignes: []dto.LigneVenteRequest{ligne(f.souris, f.dakar, 1)},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "inactif")
}

// ── Modification ──────────────────────────────────────────────────────────────

func TestModifierVenteRemplaceLignes(t *testing.T) {
	f := newFixture()
	resp := f.creerBrouillon(t, dto.CreerVenteRequest{
		Lignes: []dto.LigneVenteRequest{ligne(f.clavier, f.dakar, 1)},
	})
	id := uuid.MustParse(resp.ID)

	maj, err := f.svc.ModifierVente(context.Background(), id, f.vendeur, dto.ModifierVenteRequest{
		Lignes: []dto.LigneVenteRequest{ligne(f.souris, f.dakar, 3)},
	})
	require.NoError(t, err)

	assert.True(t, maj.MontantTotal.Equal(decimal.NewFromInt(15000)))
	require.Len(t, maj.Lignes, 1)
	assert.Equal(t, f.souris.String(), maj.Lignes[0].ProduitID)
	assert.Equal(t, model.ActionModification, f.journal.dernier().action)
}

func TestModifierVenteConfirmeeRejetee(t *testing.T) {
	f := newFixture()
	f.stock(f.clavier, 10)
	resp := f.creerBrouillon(t, dto.CreerVenteRequest{
		Lignes: []dto.LigneVenteRequest{ligne(f.clavier, f.dakar, 1)},
	})
	id := uuid.MustParse(resp.ID)
	_, err := f.svc.ConfirmerVente(context.Background(), id, f.vendeur)
	require.NoError(t, err)

	notes := "trop tard"
	_, err = f.svc.ModifierVente(context.Background(), id, f.vendeur, dto.ModifierVenteRequest{Notes: &notes})
	assert.ErrorIs(t, err, service.ErrVenteNonModifiable)
}

// ── Confirmation ──────────────────────────────────────────────────────────────

func TestConfirmerVenteDecrementeStock(t *testing.T) {
	f := newFixture()
	f.stock(f.clavier, 10)
	resp := f.creerBrouillon(t, dto.CreerVenteRequest{
		Lignes: []dto.LigneVenteRequest{ligne(f.clavier, f.dakar, 4)},
	})
	id := uuid.MustParse(resp.ID)

	conf, err := f.svc.ConfirmerVente(context.Background(), id, f.vendeur)
	require.NoError(t, err)

	assert.Equal(t, model.StatutConfirmee, conf.Vente.Statut)
	assert.False(t, conf.Vente.ConflitStock)
	assert.Empty(t, conf.Avertissements)
	assert.Equal(t, 6, f.entrepots.stocks[cleStock{f.clavier, f.dakar}])

	require.Len(t, f.entrepots.mouvements, 1)
	m := f.entrepots.mouvements[0]
	assert.Equal(t, "vente", m.Type)
	assert.Equal(t, -4, m.Quantite)
	assert.Equal(t, 10, m.StockAvant)
	assert.Equal(t, 6, m.StockApres)
	require.NotNil(t, m.ReferenceID)
	assert.Equal(t, id, *m.ReferenceID)

	assert.Equal(t, model.ActionConfirmation, f.journal.dernier().action)
}

func TestConfirmerVenteStockInsuffisant(t *testing.T) {
	f := newFixture()
	f.stock(f.souris, 2)
	resp := f.creerBrouillon(t, dto.CreerVenteRequest{
		Lignes: []dto.LigneVenteRequest{ligne(f.souris, f.dakar, 5)},
	})
	id := uuid.MustParse(resp.ID)

	conf, err := f.svc.ConfirmerVente(context.Background(), id, f.vendeur)
	require.NoError(t, err, "le manque de stock ne bloque jamais la confirmation")

	assert.Equal(t, model.StatutConfirmee, conf.Vente.Statut)
	assert.True(t, conf.Vente.ConflitStock)
	require.Len(t, conf.Avertissements, 1)
	assert.Equal(t, 5, conf.Avertissements[0].Demande)
	assert.Equal(t, 2, conf.Avertissements[0].Disponible)
	assert.Equal(t, -3, f.entrepots.stocks[cleStock{f.souris, f.dakar}], "le stock devient négatif")
}

func TestConfirmerVenteSansLigneDeStock(t *testing.T) {
	f := newFixture()
	resp := f.creerBrouillon(t, dto.CreerVenteRequest{
		Lignes: []dto.LigneVenteRequest{ligne(f.clavier, f.dakar, 2)},
	})
	id := uuid.MustParse(resp.ID)

	conf, err := f.svc.ConfirmerVente(context.Background(), id, f.vendeur)
	require.NoError(t, err)

	assert.True(t, conf.Vente.ConflitStock)
	require.Len(t, conf.Avertissements, 1)
	assert.Equal(t, 0, conf.Avertissements[0].Disponible)
	assert.Empty(t, f.entrepots.mouvements, "pas de ligne de stock, pas de mouvement")
	_, existe := f.entrepots.stocks[cleStock{f.clavier, f.dakar}]
	assert.False(t, existe, "aucune ligne de stock ne doit apparaître")
}

func TestConfirmerVenteDejaConfirmee(t *testing.T) {
	f := newFixture()
	f.stock(f.clavier, 10)
	resp := f.creerBrouillon(t, dto.CreerVenteRequest{
		Lignes: []dto.LigneVenteRequest{ligne(f.clavier, f.dakar, 1)},
	})
	id := uuid.MustParse(resp.ID)
	_, err := f.svc.ConfirmerVente(context.Background(), id, f.vendeur)
	require.NoError(t, err)

	_, err = f.svc.ConfirmerVente(context.Background(), id, f.vendeur)
	assert.ErrorIs(t, err, service.ErrVenteDejaConfirmee)
	assert.Equal(t, 9, f.entrepots.stocks[cleStock{f.clavier, f.dakar}], "pas de double décompte")
}

// ── Paiements ─────────────────────────────────────────────────────────────────

func (f *fixture) venteConfirmee(t *testing.T) uuid.UUID {
	t.Helper()
	f.stock(f.souris, 100)
	resp := f.creerBrouillon(t, dto.CreerVenteRequest{
		Lignes: []dto.LigneVenteRequest{ligne(f.souris, f.dakar, 2)}, // total 10000
	})
	id := uuid.MustParse(resp.ID)
	_, err := f.svc.ConfirmerVente(context.Background(), id, f.vendeur)
	require.NoError(t, err)
	return id
}

func TestEnregistrerPaiementPartielPuisTotal(t *testing.T) {
	f := newFixture()
	id := f.venteConfirmee(t) // total 10000

	resp, err := f.svc.EnregistrerPaiement(context.Background(), id, f.vendeur, dto.EnregistrerPaiementRequest{
		Montant: montant(4000), ModePaiement: "especes",
	})
	require.NoError(t, err)
	assert.Equal(t, model.PaiementPartiel, resp.StatutPaiement)
	assert.True(t, resp.MontantRestant.Equal(decimal.NewFromInt(6000)))
	assert.Equal(t, 40, resp.PourcentagePaye)
	assert.Equal(t, model.ActionPaiement, f.journal.dernier().action)

	resp, err = f.svc.EnregistrerPaiement(context.Background(), id, f.vendeur, dto.EnregistrerPaiementRequest{
		Montant: montant(6000), ModePaiement: "virement",
	})
	require.NoError(t, err)
	assert.Equal(t, model.PaiementPaye, resp.StatutPaiement)
	assert.True(t, resp.MontantRestant.IsZero())
	assert.Equal(t, 100, resp.PourcentagePaye)
	require.Len(t, resp.Paiements, 2)
	assert.Equal(t, "especes", resp.Paiements[0].ModePaiement)
	assert.Equal(t, "virement", resp.Paiements[1].ModePaiement)
}

func TestEnregistrerPaiementRejets(t *testing.T) {
	f := newFixture()
	id := f.venteConfirmee(t) // total 10000

	cas := []struct {
		nom string
		req dto.EnregistrerPaiementRequest
		err error
	}{
		{"montant nul", dto.EnregistrerPaiementRequest{Montant: montant(0), ModePaiement: "especes"}, service.ErrMontantInvalide},
		{"montant négatif", dto.EnregistrerPaiementRequest{Montant: montant(-50), ModePaiement: "especes"}, service.ErrMontantInvalide},
		{"dépassement", dto.EnregistrerPaiementRequest{Montant: montant(10001), ModePaiement: "especes"}, service.ErrMontantExcedant},
		{"mode inconnu", dto.EnregistrerPaiementRequest{Montant: montant(100), ModePaiement: "troc"}, service.ErrModePaiementInvalide},
	}
	for _, c := range cas {
		t.Run(c.nom, func(t *testing.T) {
			_, err := f.svc.EnregistrerPaiement(context.Background(), id, f.vendeur, c.req)
			assert.ErrorIs(t, err, c.err)
		})
	}

	// Aucun des rejets ne doit avoir touché la vente.
	apres, err := f.svc.GetVente(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, apres.MontantPaye.IsZero())
	assert.Equal(t, model.PaiementNonPaye, apres.StatutPaiement)
	assert.Empty(t, apres.Paiements)
}

func TestEnregistrerPaiementSurBrouillon(t *testing.T) {
	f := newFixture()
	resp := f.creerBrouillon(t, dto.CreerVenteRequest{
		Lignes: []dto.LigneVenteRequest{ligne(f.souris, f.dakar, 1)},
	})

	_, err := f.svc.EnregistrerPaiement(context.Background(), uuid.MustParse(resp.ID), f.vendeur,
		dto.EnregistrerPaiementRequest{Montant: montant(100), ModePaiement: "especes"})
	assert.ErrorIs(t, err, service.ErrVenteNonConfirmee)
}

// ── Suppression ───────────────────────────────────────────────────────────────

func TestSupprimerVenteBrouillonSeulement(t *testing.T) {
	f := newFixture()
	brouillon := f.creerBrouillon(t, dto.CreerVenteRequest{
		Lignes: []dto.LigneVenteRequest{ligne(f.clavier, f.dakar, 1)},
	})
	idBrouillon := uuid.MustParse(brouillon.ID)
	idConfirmee := f.venteConfirmee(t)

	require.NoError(t, f.svc.SupprimerVente(context.Background(), idBrouillon, f.vendeur))
	_, err := f.svc.GetVente(context.Background(), idBrouillon)
	assert.ErrorIs(t, err, service.ErrVenteIntrouvable)
	assert.Equal(t, model.ActionSuppression, f.journal.dernier().action)

	err = f.svc.SupprimerVente(context.Background(), idConfirmee, f.vendeur)
	assert.ErrorIs(t, err, service.ErrVenteNonModifiable)
	_, err = f.svc.GetVente(context.Background(), idConfirmee)
	assert.NoError(t, err, "la vente confirmée reste en place")
}

func TestSupprimerVenteIntrouvable(t *testing.T) {
	f := newFixture()
	err := f.svc.SupprimerVente(context.Background(), uuid.New(), f.vendeur)
	assert.ErrorIs(t, err, service.ErrVenteIntrouvable)
}

// ── Liste ─────────────────────────────────────────────────────────────────────

func (f *fixture) seedListe(t *testing.T) {
	t.Helper()
	hier := time.Now().AddDate(0, 0, -1)
	seme := func(numero, statut, statutPaiement string, total, restant int64, echeance *time.Time) {
		v := &model.Vente{
			Numero:         numero,
			Statut:         statut,
			StatutPaiement: statutPaiement,
			MontantTotal:   decimal.NewFromInt(total),
			MontantPaye:    decimal.NewFromInt(total - restant),
			MontantRestant: decimal.NewFromInt(restant),
			DateEcheance:   echeance,
			UtilisateurID:  f.vendeur,
		}
		require.NoError(t, f.ventes.Create(context.Background(), nil, v))
	}
	seme("VT-000001", model.StatutConfirmee, model.PaiementPaye, 10000, 0, nil)
	seme("VT-000002", model.StatutConfirmee, model.PaiementPartiel, 20000, 15000, &hier)
	seme("VT-000003", model.StatutBrouillon, model.PaiementNonPaye, 5000, 5000, nil)
}

func TestListVentesFiltreParStatut(t *testing.T) {
	f := newFixture()
	f.seedListe(t)

	resp, err := f.svc.ListVentes(context.Background(), dto.VenteFilter{Statut: model.StatutConfirmee, Taille: 25})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Total)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "VT-000002", resp.Data[0].Numero, "la plus récente d'abord")

	assert.True(t, resp.Agregats.ChiffreAffaires.Equal(decimal.NewFromInt(30000)))
	assert.True(t, resp.Agregats.Creances.Equal(decimal.NewFromInt(15000)))
	assert.Equal(t, 2, resp.Agregats.ParStatut[model.StatutConfirmee])
}

func TestListVentesPseudoStatutEnRetard(t *testing.T) {
	f := newFixture()
	f.seedListe(t)

	resp, err := f.svc.ListVentes(context.Background(), dto.VenteFilter{StatutPaiement: model.PaiementRetard, Taille: 25})
	require.NoError(t, err)

	require.Len(t, resp.Data, 1)
	assert.Equal(t, "VT-000002", resp.Data[0].Numero)
	assert.True(t, resp.Data[0].EnRetard)
	assert.Equal(t, model.PaiementRetard, resp.Data[0].StatutPaiement, "statut promu à la lecture")
}

func TestListVentesPageHorsBornes(t *testing.T) {
	f := newFixture()
	f.seedListe(t)

	resp, err := f.svc.ListVentes(context.Background(), dto.VenteFilter{Page: 7, Taille: 10})
	require.NoError(t, err)

	assert.Equal(t, 0, resp.Page, "page ramenée dans les bornes")
	assert.Len(t, resp.Data, 3, "jamais de page vide sur un ensemble non vide")
	assert.Equal(t, 3, resp.Total)
}

func TestListVentesTailleInconnue(t *testing.T) {
	f := newFixture()
	f.seedListe(t)

	resp, err := f.svc.ListVentes(context.Background(), dto.VenteFilter{Taille: 7})
	require.NoError(t, err)
	assert.Equal(t, 25, resp.Taille)
}

func TestListVentesAgregatsSurToutLEnsemble(t *testing.T) {
	f := newFixture()
	f.seedListe(t)

	resp, err := f.svc.ListVentes(context.Background(), dto.VenteFilter{Taille: 10, Page: 0})
	require.NoError(t, err)
	require.Len(t, resp.Data, 3)

	assert.Equal(t, 2, resp.Agregats.ParStatut[model.StatutConfirmee])
	assert.Equal(t, 1, resp.Agregats.ParStatut[model.StatutBrouillon])
	assert.True(t, resp.Agregats.ChiffreAffaires.Equal(decimal.NewFromInt(30000)))
}
