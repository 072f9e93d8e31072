package service

import (
	"context"
	"errors"

	"github.com/Kountade/MSG-SARL-sub002/internal/dto"
	"github.com/Kountade/MSG-SARL-sub002/internal/model"
	"github.com/Kountade/MSG-SARL-sub002/internal/repository"

	"github.com/google/uuid"
)

var ErrProduitIntrouvable = errors.New("produit introuvable")

// StockService covers the product catalog, warehouses and the per-warehouse
// availability view consumed by the sale entry screen.
type StockService interface {
	CreerProduit(ctx context.Context, utilisateurID uuid.UUID, req dto.CreerProduitRequest) (*dto.ProduitResponse, error)
	ListerProduits(ctx context.Context) ([]dto.ProduitResponse, error)
	CreerEntrepot(ctx context.Context, utilisateurID uuid.UUID, req dto.CreerEntrepotRequest) (*dto.EntrepotResponse, error)
	ListerEntrepots(ctx context.Context) ([]dto.EntrepotResponse, error)
	StockDisponible(ctx context.Context, produitID uuid.UUID) (*dto.StockDisponibleResponse, error)
}

type stockService struct {
	produitRepo  repository.ProduitRepository
	entrepotRepo repository.EntrepotRepository
	journal      JournalService
}

func NewStockService(produitRepo repository.ProduitRepository, entrepotRepo repository.EntrepotRepository, journal JournalService) StockService {
	return &stockService{produitRepo: produitRepo, entrepotRepo: entrepotRepo, journal: journal}
}

func (s *stockService) CreerProduit(ctx context.Context, utilisateurID uuid.UUID, req dto.CreerProduitRequest) (*dto.ProduitResponse, error) {
	produit := &model.Produit{
		Reference:   req.Reference,
		Nom:         req.Nom,
		Description: req.Description,
		PrixVente:   req.PrixVente.Decimal,
		Actif:       true,
	}
	if err := s.produitRepo.Create(ctx, produit); err != nil {
		return nil, err
	}
	s.journal.Consigner(ctx, model.ActionCreation, "produit", produit.ID, utilisateurID,
		"Création du produit "+produit.Nom, nil)
	return produitToResponse(produit), nil
}

func (s *stockService) ListerProduits(ctx context.Context) ([]dto.ProduitResponse, error) {
	produits, err := s.produitRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ProduitResponse, len(produits))
	for i := range produits {
		resp[i] = *produitToResponse(&produits[i])
	}
	return resp, nil
}

func (s *stockService) CreerEntrepot(ctx context.Context, utilisateurID uuid.UUID, req dto.CreerEntrepotRequest) (*dto.EntrepotResponse, error) {
	entrepot := &model.Entrepot{
		Nom:     req.Nom,
		Adresse: req.Adresse,
		Actif:   true,
	}
	if err := s.entrepotRepo.Create(ctx, entrepot); err != nil {
		return nil, err
	}
	s.journal.Consigner(ctx, model.ActionCreation, "entrepot", entrepot.ID, utilisateurID,
		"Création de l'entrepôt "+entrepot.Nom, nil)
	return entrepotToResponse(entrepot), nil
}

func (s *stockService) ListerEntrepots(ctx context.Context) ([]dto.EntrepotResponse, error) {
	entrepots, err := s.entrepotRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.EntrepotResponse, len(entrepots))
	for i := range entrepots {
		resp[i] = *entrepotToResponse(&entrepots[i])
	}
	return resp, nil
}

func (s *stockService) StockDisponible(ctx context.Context, produitID uuid.UUID) (*dto.StockDisponibleResponse, error) {
	produit, err := s.produitRepo.FindByID(ctx, produitID)
	if err != nil {
		return nil, ErrProduitIntrouvable
	}
	stocks, err := s.entrepotRepo.StockParProduit(ctx, produitID)
	if err != nil {
		return nil, err
	}

	resp := &dto.StockDisponibleResponse{
		ProduitID: produit.ID.String(),
		Produit:   produit.Nom,
		Entrepots: make([]dto.StockDisponibleItem, 0, len(stocks)),
	}
	for i := range stocks {
		st := &stocks[i]
		nom := ""
		if st.Entrepot != nil {
			nom = st.Entrepot.Nom
		}
		resp.Total += st.Quantite
		resp.Entrepots = append(resp.Entrepots, dto.StockDisponibleItem{
			EntrepotID: st.EntrepotID.String(),
			Entrepot:   nom,
			Quantite:   st.Quantite,
		})
	}
	return resp, nil
}

func produitToResponse(p *model.Produit) *dto.ProduitResponse {
	return &dto.ProduitResponse{
		ID:          p.ID.String(),
		Reference:   p.Reference,
		Nom:         p.Nom,
		Description: p.Description,
		PrixVente:   p.PrixVente,
		Actif:       p.Actif,
	}
}

func entrepotToResponse(e *model.Entrepot) *dto.EntrepotResponse {
	return &dto.EntrepotResponse{
		ID:      e.ID.String(),
		Nom:     e.Nom,
		Adresse: e.Adresse,
		Actif:   e.Actif,
	}
}
