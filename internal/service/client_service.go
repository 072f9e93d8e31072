package service

import (
	"context"
	"errors"
	"time"

	"github.com/Kountade/MSG-SARL-sub002/internal/dto"
	"github.com/Kountade/MSG-SARL-sub002/internal/ledger"
	"github.com/Kountade/MSG-SARL-sub002/internal/model"
	"github.com/Kountade/MSG-SARL-sub002/internal/repository"

	"github.com/google/uuid"
)

var ErrClientIntrouvable = errors.New("client introuvable")

type ClientService interface {
	Creer(ctx context.Context, utilisateurID uuid.UUID, req dto.CreerClientRequest) (*dto.ClientResponse, error)
	Lister(ctx context.Context) ([]dto.ClientResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ClientResponse, error)
	// Historique returns the customer profile, their full sale history and
	// the derived figures in one payload.
	Historique(ctx context.Context, id uuid.UUID) (*dto.HistoriqueClientResponse, error)
}

type clientService struct {
	repo      repository.ClientRepository
	venteRepo repository.VenteRepository
	journal   JournalService
}

func NewClientService(repo repository.ClientRepository, venteRepo repository.VenteRepository, journal JournalService) ClientService {
	return &clientService{repo: repo, venteRepo: venteRepo, journal: journal}
}

func (s *clientService) Creer(ctx context.Context, utilisateurID uuid.UUID, req dto.CreerClientRequest) (*dto.ClientResponse, error) {
	client := &model.Client{
		Nom:       req.Nom,
		Adresse:   req.Adresse,
		Telephone: req.Telephone,
		Email:     req.Email,
		Actif:     true,
	}
	if err := s.repo.Create(ctx, client); err != nil {
		return nil, err
	}
	s.journal.Consigner(ctx, model.ActionCreation, "client", client.ID, utilisateurID,
		"Création du client "+client.Nom, nil)
	return clientToResponse(client), nil
}

func (s *clientService) Lister(ctx context.Context) ([]dto.ClientResponse, error) {
	clients, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ClientResponse, len(clients))
	for i := range clients {
		resp[i] = *clientToResponse(&clients[i])
	}
	return resp, nil
}

func (s *clientService) Get(ctx context.Context, id uuid.UUID) (*dto.ClientResponse, error) {
	client, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrClientIntrouvable
	}
	return clientToResponse(client), nil
}

func (s *clientService) Historique(ctx context.Context, id uuid.UUID) (*dto.HistoriqueClientResponse, error) {
	client, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrClientIntrouvable
	}
	ventes, err := s.venteRepo.ListByClient(ctx, id)
	if err != nil {
		return nil, err
	}
	now := time.Now()

	items := make([]dto.VenteListItem, 0, len(ventes))
	for i := range ventes {
		items = append(items, *venteToListItem(&ventes[i], now))
	}

	return &dto.HistoriqueClientResponse{
		Client:   *clientToResponse(client),
		Ventes:   items,
		Agregats: agregatsToDTO(ledger.CalculerAgregats(ventes, now)),
	}, nil
}

func clientToResponse(c *model.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:        c.ID.String(),
		Nom:       c.Nom,
		Adresse:   c.Adresse,
		Telephone: c.Telephone,
		Email:     c.Email,
		Actif:     c.Actif,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
}
