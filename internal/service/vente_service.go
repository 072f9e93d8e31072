package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Kountade/MSG-SARL-sub002/internal/dto"
	"github.com/Kountade/MSG-SARL-sub002/internal/ledger"
	"github.com/Kountade/MSG-SARL-sub002/internal/model"
	"github.com/Kountade/MSG-SARL-sub002/internal/repository"
	"github.com/Kountade/MSG-SARL-sub002/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Sentinel errors mapped to HTTP statuses by the handlers.
var (
	ErrVenteIntrouvable     = errors.New("vente introuvable")
	ErrVenteNonModifiable   = errors.New("seule une vente en brouillon peut être modifiée")
	ErrVenteDejaConfirmee   = errors.New("la vente est déjà confirmée")
	ErrVenteAnnulee         = errors.New("la vente est annulée")
	ErrVenteNonConfirmee    = errors.New("la vente doit être confirmée avant d'accepter un paiement")
	ErrMontantInvalide      = errors.New("le montant du paiement doit être strictement positif")
	ErrMontantExcedant      = errors.New("le montant du paiement dépasse le restant dû")
	ErrModePaiementInvalide = errors.New("mode de paiement invalide")
	ErrRemiseInvalide       = errors.New("la remise dépasse le total des lignes")
)

type VenteService interface {
	CreerVente(ctx context.Context, utilisateurID uuid.UUID, req dto.CreerVenteRequest) (*dto.VenteResponse, error)
	ModifierVente(ctx context.Context, id, utilisateurID uuid.UUID, req dto.ModifierVenteRequest) (*dto.VenteResponse, error)
	ConfirmerVente(ctx context.Context, id, utilisateurID uuid.UUID) (*dto.ConfirmerVenteResponse, error)
	SupprimerVente(ctx context.Context, id, utilisateurID uuid.UUID) error
	EnregistrerPaiement(ctx context.Context, id, utilisateurID uuid.UUID, req dto.EnregistrerPaiementRequest) (*dto.VenteResponse, error)
	ListVentes(ctx context.Context, filter dto.VenteFilter) (*dto.VenteListResponse, error)
	GetVente(ctx context.Context, id uuid.UUID) (*dto.VenteResponse, error)
}

type venteService struct {
	repo         repository.VenteRepository
	produitRepo  repository.ProduitRepository
	entrepotRepo repository.EntrepotRepository
	journal      JournalService
	dispatcher   *worker.Dispatcher
}

func NewVenteService(
	repo repository.VenteRepository,
	produitRepo repository.ProduitRepository,
	entrepotRepo repository.EntrepotRepository,
	journal JournalService,
	dispatcher *worker.Dispatcher,
) VenteService {
	return &venteService{
		repo:         repo,
		produitRepo:  produitRepo,
		entrepotRepo: entrepotRepo,
		journal:      journal,
		dispatcher:   dispatcher,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── CreerVente ────────────────────────────────────────────────────────────────
// Creates a draft sale:
//  1. Resolve every line against the product catalog (price snapshot)
//  2. Compute line subtotals and the sale total
//  3. BEGIN TX: nextval numero, create vente + lignes, audit entry
//  4. COMMIT
//
// No stock is touched until confirmation.

func (s *venteService) CreerVente(ctx context.Context, utilisateurID uuid.UUID, req dto.CreerVenteRequest) (*dto.VenteResponse, error) {
	clientID, err := parseClientID(req.ClientID)
	if err != nil {
		return nil, err
	}
	echeance, err := parseEcheance(req.DateEcheance)
	if err != nil {
		return nil, err
	}

	lignes, totalLignes, err := s.resoudreLignes(ctx, req.Lignes)
	if err != nil {
		return nil, err
	}

	remise := req.Remise.Decimal
	total := totalLignes.Sub(remise)
	if total.IsNegative() {
		return nil, ErrRemiseInvalide
	}

	var vente model.Vente
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		num, err := s.repo.NextNumero(ctx, tx)
		if err != nil {
			return err
		}

		vente = model.Vente{
			Numero:         fmt.Sprintf("VT-%06d", num),
			Statut:         model.StatutBrouillon,
			StatutPaiement: model.PaiementNonPaye,
			MontantTotal:   total,
			Remise:         remise,
			MontantPaye:    decimal.Zero,
			MontantRestant: total,
			ClientID:       clientID,
			DateEcheance:   echeance,
			Notes:          req.Notes,
			UtilisateurID:  utilisateurID,
			Lignes:         lignes,
		}
		if err := s.repo.Create(ctx, tx, &vente); err != nil {
			return err
		}

		return s.journal.ConsignerTx(tx, model.ActionCreation, "vente", vente.ID, utilisateurID,
			fmt.Sprintf("Création de la vente %s", vente.Numero),
			map[string]any{"montant_total": total, "lignes": len(lignes)})
	})
	if txErr != nil {
		return nil, txErr
	}

	return s.relireVente(ctx, vente.ID, &vente)
}

// ── ModifierVente ─────────────────────────────────────────────────────────────
// Only drafts are mutable. When the request carries lines they replace the
// whole existing set; totals are recomputed from scratch.

func (s *venteService) ModifierVente(ctx context.Context, id, utilisateurID uuid.UUID, req dto.ModifierVenteRequest) (*dto.VenteResponse, error) {
	vente, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrVenteIntrouvable
	}
	if vente.Statut != model.StatutBrouillon {
		return nil, ErrVenteNonModifiable
	}

	if req.ClientID != nil {
		clientID, err := parseClientID(req.ClientID)
		if err != nil {
			return nil, err
		}
		vente.ClientID = clientID
	}
	if req.DateEcheance != nil {
		echeance, err := parseEcheance(req.DateEcheance)
		if err != nil {
			return nil, err
		}
		vente.DateEcheance = echeance
	}
	if req.Notes != nil {
		vente.Notes = req.Notes
	}
	if req.Remise != nil {
		vente.Remise = req.Remise.Decimal
	}

	var nouvellesLignes []model.VenteLigne
	totalLignes := decimal.Zero
	if len(req.Lignes) > 0 {
		nouvellesLignes, totalLignes, err = s.resoudreLignes(ctx, req.Lignes)
		if err != nil {
			return nil, err
		}
	} else {
		for _, l := range vente.Lignes {
			totalLignes = totalLignes.Add(l.SousTotal)
		}
	}

	total := totalLignes.Sub(vente.Remise)
	if total.IsNegative() {
		return nil, ErrRemiseInvalide
	}
	vente.MontantTotal = total
	vente.MontantRestant = total.Sub(vente.MontantPaye)

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if nouvellesLignes != nil {
			if err := s.repo.ReplaceLignesTx(tx, vente.ID, nouvellesLignes); err != nil {
				return err
			}
			vente.Lignes = nil // avoid Save re-inserting the stale line set
		}
		if err := s.repo.UpdateTx(tx, vente); err != nil {
			return err
		}
		return s.journal.ConsignerTx(tx, model.ActionModification, "vente", vente.ID, utilisateurID,
			fmt.Sprintf("Modification de la vente %s", vente.Numero),
			map[string]any{"montant_total": total})
	})
	if txErr != nil {
		return nil, txErr
	}

	return s.relireVente(ctx, vente.ID, vente)
}

// ── ConfirmerVente ────────────────────────────────────────────────────────────
// Confirmation is the point of no return: lines freeze, stock is decremented
// and a movement is recorded per line. Insufficient stock does NOT block the
// confirmation; the sale is flagged (conflit_stock) and a warning per
// deficient line is returned for the supervisor to review.

func (s *venteService) ConfirmerVente(ctx context.Context, id, utilisateurID uuid.UUID) (*dto.ConfirmerVenteResponse, error) {
	vente, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrVenteIntrouvable
	}
	switch vente.Statut {
	case model.StatutConfirmee:
		return nil, ErrVenteDejaConfirmee
	case model.StatutAnnulee:
		return nil, ErrVenteAnnulee
	}

	var avertissements []dto.AvertissementStock

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		conflit := false
		for _, ligne := range vente.Lignes {
			stock, err := s.entrepotRepo.FindStockTx(tx, ligne.ProduitID, ligne.EntrepotID)
			if err != nil {
				// No stock row: nothing to decrement, flag the line.
				conflit = true
				avertissements = append(avertissements, avertissement(&ligne, 0))
				continue
			}
			if stock.Quantite < ligne.Quantite {
				conflit = true
				avertissements = append(avertissements, avertissement(&ligne, stock.Quantite))
			}

			// Soft guard: decrement even into negative territory.
			if err := s.entrepotRepo.AjusterStockTx(tx, ligne.ProduitID, ligne.EntrepotID, -ligne.Quantite); err != nil {
				return err
			}
			ref := vente.ID
			mouvement := &model.MouvementStock{
				ProduitID:   ligne.ProduitID,
				EntrepotID:  ligne.EntrepotID,
				Type:        "vente",
				Quantite:    -ligne.Quantite,
				StockAvant:  stock.Quantite,
				StockApres:  stock.Quantite - ligne.Quantite,
				Motif:       fmt.Sprintf("Vente %s", vente.Numero),
				ReferenceID: &ref,
			}
			if err := s.entrepotRepo.CreateMouvementTx(tx, mouvement); err != nil {
				return err
			}
		}

		vente.Statut = model.StatutConfirmee
		vente.ConflitStock = conflit
		if err := s.repo.UpdateTx(tx, vente); err != nil {
			return err
		}
		return s.journal.ConsignerTx(tx, model.ActionConfirmation, "vente", vente.ID, utilisateurID,
			fmt.Sprintf("Confirmation de la vente %s", vente.Numero),
			map[string]any{"conflit_stock": conflit, "avertissements": len(avertissements)})
	})
	if txErr != nil {
		return nil, txErr
	}

	// Async invoice generation (best-effort, fire & forget)
	if s.dispatcher != nil {
		payload := worker.FactureJobPayload{VenteID: vente.ID.String()}
		if vente.Client != nil && vente.Client.Email != nil {
			payload.ClientEmail = vente.Client.Email
		}
		_ = s.dispatcher.EnqueueFacture(ctx, payload)
	}

	resp, err := s.relireVente(ctx, vente.ID, vente)
	if err != nil {
		return nil, err
	}
	return &dto.ConfirmerVenteResponse{Vente: *resp, Avertissements: avertissements}, nil
}

// ── SupprimerVente ────────────────────────────────────────────────────────────

func (s *venteService) SupprimerVente(ctx context.Context, id, utilisateurID uuid.UUID) error {
	vente, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ErrVenteIntrouvable
	}
	if vente.Statut != model.StatutBrouillon {
		return ErrVenteNonModifiable
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.journal.Consigner(ctx, model.ActionSuppression, "vente", id, utilisateurID,
		fmt.Sprintf("Suppression du brouillon %s", vente.Numero), nil)
	return nil
}

// ── EnregistrerPaiement ───────────────────────────────────────────────────────
// Appends a settlement to a confirmed sale. Preconditions are checked before
// any write; a rejected payment leaves the sale byte-identical. The payment
// status is recomputed from the stored amounts, never trusted from input.

func (s *venteService) EnregistrerPaiement(ctx context.Context, id, utilisateurID uuid.UUID, req dto.EnregistrerPaiementRequest) (*dto.VenteResponse, error) {
	vente, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrVenteIntrouvable
	}
	switch vente.Statut {
	case model.StatutBrouillon:
		return nil, ErrVenteNonConfirmee
	case model.StatutAnnulee:
		return nil, ErrVenteAnnulee
	}

	montant := req.Montant.Decimal
	if !montant.IsPositive() {
		return nil, ErrMontantInvalide
	}
	if montant.GreaterThan(vente.MontantRestant) {
		return nil, ErrMontantExcedant
	}
	if !model.ModePaiementValide(req.ModePaiement) {
		return nil, ErrModePaiementInvalide
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		paiement := &model.Paiement{
			VenteID:      vente.ID,
			Montant:      montant,
			ModePaiement: req.ModePaiement,
			Reference:    req.Reference,
			Notes:        req.Notes,
		}
		if err := s.repo.CreatePaiementTx(tx, paiement); err != nil {
			return err
		}

		vente.MontantPaye = vente.MontantPaye.Add(montant)
		vente.MontantRestant = vente.MontantTotal.Sub(vente.MontantPaye)
		switch {
		case vente.MontantRestant.IsZero():
			vente.StatutPaiement = model.PaiementPaye
		case vente.MontantPaye.IsPositive():
			vente.StatutPaiement = model.PaiementPartiel
		default:
			vente.StatutPaiement = model.PaiementNonPaye
		}
		vente.Lignes = nil // untouched, keep Save from cascading
		if err := s.repo.UpdateTx(tx, vente); err != nil {
			return err
		}

		return s.journal.ConsignerTx(tx, model.ActionPaiement, "vente", vente.ID, utilisateurID,
			fmt.Sprintf("Paiement de %s sur la vente %s", montant.StringFixed(2), vente.Numero),
			map[string]any{"montant": montant, "mode": req.ModePaiement})
	})
	if txErr != nil {
		return nil, txErr
	}

	return s.relireVente(ctx, vente.ID, vente)
}

// ── Lectures ──────────────────────────────────────────────────────────────────

func (s *venteService) GetVente(ctx context.Context, id uuid.UUID) (*dto.VenteResponse, error) {
	vente, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrVenteIntrouvable
	}
	return venteToResponse(vente, time.Now()), nil
}

// ListVentes loads the full collection, applies the shared in-memory filter
// and derives the dashboard aggregates over the whole match set (not just the
// returned page).
func (s *venteService) ListVentes(ctx context.Context, filter dto.VenteFilter) (*dto.VenteListResponse, error) {
	ventes, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now()

	f := ledger.FiltreVentes{
		Recherche:      filter.Recherche,
		Statut:         filter.Statut,
		StatutPaiement: filter.StatutPaiement,
		Pagination:     ledger.Pagination{Page: filter.Page, Taille: tailleValide(filter.Taille)},
	}
	if filter.DateDebut != "" {
		if t, err := time.Parse("2006-01-02", filter.DateDebut); err == nil {
			f.DateDebut = &t
		}
	}
	if filter.DateFin != "" {
		if t, err := time.Parse("2006-01-02", filter.DateFin); err == nil {
			fin := t.AddDate(0, 0, 1)
			f.DateFin = &fin
		}
	}

	page := ledger.AppliquerFiltre(ventes, f, now)

	fTout := f
	fTout.Pagination = ledger.Pagination{Page: 0, Taille: len(ventes) + 1}
	tout := ledger.AppliquerFiltre(ventes, fTout, now)
	agregats := ledger.CalculerAgregats(tout.Items, now)

	items := make([]dto.VenteListItem, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, *venteToListItem(&page.Items[i], now))
	}

	pageEffective := filter.Page
	if pageEffective < 0 {
		pageEffective = 0
	}
	if max := ledger.DernierePage(page.TotalCorrespondant, f.Pagination.Taille); pageEffective > max {
		pageEffective = max
	}

	return &dto.VenteListResponse{
		Data:     items,
		Total:    page.TotalCorrespondant,
		Page:     pageEffective,
		Taille:   f.Pagination.Taille,
		Agregats: agregatsToDTO(agregats),
	}, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// resoudreLignes snapshots product prices and computes line subtotals.
func (s *venteService) resoudreLignes(ctx context.Context, reqs []dto.LigneVenteRequest) ([]model.VenteLigne, decimal.Decimal, error) {
	var lignes []model.VenteLigne
	total := decimal.Zero
	for _, l := range reqs {
		produitID, err := uuid.Parse(l.ProduitID)
		if err != nil {
			return nil, decimal.Zero, fmt.Errorf("produit_id invalide: %w", err)
		}
		entrepotID, err := uuid.Parse(l.EntrepotID)
		if err != nil {
			return nil, decimal.Zero, fmt.Errorf("entrepot_id invalide: %w", err)
		}
		produit, err := s.produitRepo.FindByID(ctx, produitID)
		if err != nil {
			return nil, decimal.Zero, fmt.Errorf("produit %s introuvable", l.ProduitID)
		}
		if !produit.Actif {
			return nil, decimal.Zero, fmt.Errorf("le produit %s est inactif", produit.Nom)
		}

		sousTotal := ledger.SousTotalLigne(l.Quantite, produit.PrixVente, l.RemisePct.Decimal)
		total = total.Add(sousTotal)
		lignes = append(lignes, model.VenteLigne{
			ProduitID:    produitID,
			EntrepotID:   entrepotID,
			Quantite:     l.Quantite,
			PrixUnitaire: produit.PrixVente,
			RemisePct:    l.RemisePct.Decimal,
			SousTotal:    sousTotal,
		})
	}
	return lignes, total, nil
}

// relireVente re-reads the authoritative row after a mutation so the response
// reflects exactly what was committed. Falls back to the in-memory copy when
// the re-read fails (unit test stubs without FindByID data).
func (s *venteService) relireVente(ctx context.Context, id uuid.UUID, fallback *model.Vente) (*dto.VenteResponse, error) {
	now := time.Now()
	if v, err := s.repo.FindByID(ctx, id); err == nil {
		return venteToResponse(v, now), nil
	}
	return venteToResponse(fallback, now), nil
}

func avertissement(l *model.VenteLigne, disponible int) dto.AvertissementStock {
	nom := ""
	if l.Produit != nil {
		nom = l.Produit.Nom
	}
	return dto.AvertissementStock{
		ProduitID:  l.ProduitID.String(),
		Produit:    nom,
		EntrepotID: l.EntrepotID.String(),
		Demande:    l.Quantite,
		Disponible: disponible,
	}
}

func parseClientID(raw *string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, fmt.Errorf("client_id invalide: %w", err)
	}
	return &id, nil
}

func parseEcheance(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *raw)
	if err != nil {
		return nil, fmt.Errorf("date_echeance invalide: %w", err)
	}
	return &t, nil
}

func tailleValide(taille int) int {
	for _, t := range ledger.TaillesPage {
		if t == taille {
			return taille
		}
	}
	return ledger.TaillePageParDefaut
}

func agregatsToDTO(ag ledger.Agregats) dto.AgregatsDTO {
	return dto.AgregatsDTO{
		ParStatut:         ag.ParStatut,
		ParStatutPaiement: ag.ParStatutPaiement,
		ChiffreAffaires:   ag.ChiffreAffaires,
		Creances:          ag.Creances,
		Entrepots:         ag.Entrepots,
	}
}

// ── Mapping ───────────────────────────────────────────────────────────────────

func venteToListItem(v *model.Vente, now time.Time) *dto.VenteListItem {
	clientNom := ""
	if v.Client != nil {
		clientNom = v.Client.Nom
	}
	var echeance *string
	if v.DateEcheance != nil {
		e := v.DateEcheance.Format("2006-01-02")
		echeance = &e
	}
	return &dto.VenteListItem{
		ID:              v.ID.String(),
		Numero:          v.Numero,
		Statut:          v.Statut,
		StatutPaiement:  ledger.StatutPaiementEffectif(v, now),
		MontantTotal:    v.MontantTotal,
		Remise:          v.Remise,
		MontantPaye:     v.MontantPaye,
		MontantRestant:  v.MontantRestant,
		PourcentagePaye: ledger.PourcentagePaye(v),
		EnRetard:        ledger.EstEnRetard(v, now),
		ClientNom:       clientNom,
		DateEcheance:    echeance,
		CreatedAt:       v.CreatedAt.Format(time.RFC3339),
	}
}

func venteToResponse(v *model.Vente, now time.Time) *dto.VenteResponse {
	lignes := make([]dto.LigneVenteResponse, 0, len(v.Lignes))
	for _, l := range v.Lignes {
		produit := ""
		if l.Produit != nil {
			produit = l.Produit.Nom
		}
		entrepot := ""
		if l.Entrepot != nil {
			entrepot = l.Entrepot.Nom
		}
		lignes = append(lignes, dto.LigneVenteResponse{
			ProduitID:    l.ProduitID.String(),
			Produit:      produit,
			EntrepotID:   l.EntrepotID.String(),
			Entrepot:     entrepot,
			Quantite:     l.Quantite,
			PrixUnitaire: l.PrixUnitaire,
			RemisePct:    l.RemisePct,
			SousTotal:    l.SousTotal,
		})
	}
	paiements := make([]dto.PaiementResponse, 0, len(v.Paiements))
	for _, p := range v.Paiements {
		paiements = append(paiements, dto.PaiementResponse{
			ID:           p.ID.String(),
			Montant:      p.Montant,
			ModePaiement: p.ModePaiement,
			Reference:    p.Reference,
			Notes:        p.Notes,
			CreatedAt:    p.CreatedAt.Format(time.RFC3339),
		})
	}
	var clientID *string
	clientNom := ""
	if v.ClientID != nil {
		id := v.ClientID.String()
		clientID = &id
	}
	if v.Client != nil {
		clientNom = v.Client.Nom
	}
	var echeance *string
	if v.DateEcheance != nil {
		e := v.DateEcheance.Format("2006-01-02")
		echeance = &e
	}
	return &dto.VenteResponse{
		ID:              v.ID.String(),
		Numero:          v.Numero,
		Statut:          v.Statut,
		StatutPaiement:  ledger.StatutPaiementEffectif(v, now),
		Lignes:          lignes,
		Paiements:       paiements,
		MontantTotal:    v.MontantTotal,
		Remise:          v.Remise,
		MontantPaye:     v.MontantPaye,
		MontantRestant:  v.MontantRestant,
		PourcentagePaye: ledger.PourcentagePaye(v),
		EnRetard:        ledger.EstEnRetard(v, now),
		ConflitStock:    v.ConflitStock,
		ClientID:        clientID,
		ClientNom:       clientNom,
		DateEcheance:    echeance,
		Notes:           v.Notes,
		CreatedAt:       v.CreatedAt.Format(time.RFC3339),
	}
}
