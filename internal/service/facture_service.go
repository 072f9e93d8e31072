package service

import (
	"context"
	"time"

	"github.com/Kountade/MSG-SARL-sub002/internal/config"
	"github.com/Kountade/MSG-SARL-sub002/internal/facture"
	"github.com/Kountade/MSG-SARL-sub002/internal/infra"
	"github.com/Kountade/MSG-SARL-sub002/internal/repository"

	"github.com/google/uuid"
)

// FactureService renders the invoice PDF of a sale. The same path serves the
// synchronous download endpoint and the async worker.
type FactureService interface {
	// Generer renders the invoice and returns the bytes plus the
	// suggested file name.
	Generer(ctx context.Context, venteID uuid.UUID) ([]byte, string, error)
}

type factureService struct {
	venteRepo repository.VenteRepository
	logos     *infra.LogoFetcher
	rendu     facture.Rendu
	ent       facture.Entreprise
}

func NewFactureService(venteRepo repository.VenteRepository, logos *infra.LogoFetcher, cfg *config.Config) FactureService {
	return &factureService{
		venteRepo: venteRepo,
		logos:     logos,
		rendu:     facture.RenduPDF{},
		ent: facture.Entreprise{
			Nom:       cfg.EntrepriseNom,
			Adresse:   cfg.EntrepriseAdresse,
			Telephone: cfg.EntrepriseTelephone,
			Email:     cfg.EntrepriseEmail,
		},
	}
}

func (s *factureService) Generer(ctx context.Context, venteID uuid.UUID) ([]byte, string, error) {
	vente, err := s.venteRepo.FindByID(ctx, venteID)
	if err != nil {
		return nil, "", ErrVenteIntrouvable
	}

	ent := s.ent
	if s.logos != nil {
		ent.Logo = s.logos.Fetch(ctx)
	}

	genereLe := time.Now()
	doc := facture.Construire(vente, ent, genereLe)
	pdf, err := s.rendu.Rendre(doc)
	if err != nil {
		return nil, "", err
	}
	return pdf, facture.NomFichier(vente.Numero, genereLe), nil
}
