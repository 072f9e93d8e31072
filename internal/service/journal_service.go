package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Kountade/MSG-SARL-sub002/internal/dto"
	"github.com/Kountade/MSG-SARL-sub002/internal/model"
	"github.com/Kountade/MSG-SARL-sub002/internal/repository"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// seuilCompression: change payloads above this size are stored
// zstd-compressed instead of as plain jsonb.
const seuilCompression = 10 << 10

var (
	zstdEnc, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	zstdDec, _ = zstd.NewReader(nil)
)

// JournalService writes and reads the immutable audit log. Every mutating
// operation of the system goes through Consigner (or ConsignerTx when it must
// commit atomically with the mutation).
type JournalService interface {
	Consigner(ctx context.Context, action, modele string, objetID, utilisateurID uuid.UUID, description string, details any)
	ConsignerTx(tx *gorm.DB, action, modele string, objetID, utilisateurID uuid.UUID, description string, details any) error
	Lister(ctx context.Context, filter dto.JournalFilter) (*dto.JournalListResponse, error)
}

type journalService struct {
	repo repository.JournalRepository
}

func NewJournalService(repo repository.JournalRepository) JournalService {
	return &journalService{repo: repo}
}

// Consigner writes an audit entry outside any transaction. Failures are
// logged, never propagated: audit must not break the business operation.
func (s *journalService) Consigner(ctx context.Context, action, modele string, objetID, utilisateurID uuid.UUID, description string, details any) {
	entree, err := construireEntree(action, modele, objetID, utilisateurID, description, details)
	if err != nil {
		log.Error().Err(err).Str("action", action).Str("modele", modele).Msg("journal: marshal details")
		return
	}
	if err := s.repo.Create(ctx, entree); err != nil {
		log.Error().Err(err).Str("action", action).Str("modele", modele).Msg("journal: create entry")
	}
}

// ConsignerTx writes an audit entry inside the caller's transaction so the
// entry commits or rolls back with the mutation it describes.
func (s *journalService) ConsignerTx(tx *gorm.DB, action, modele string, objetID, utilisateurID uuid.UUID, description string, details any) error {
	entree, err := construireEntree(action, modele, objetID, utilisateurID, description, details)
	if err != nil {
		return err
	}
	if tx == nil {
		return nil
	}
	return s.repo.CreateTx(tx, entree)
}

func construireEntree(action, modele string, objetID, utilisateurID uuid.UUID, description string, details any) (*model.JournalEntree, error) {
	entree := &model.JournalEntree{
		Action:        action,
		Modele:        modele,
		ObjetID:       objetID,
		UtilisateurID: utilisateurID,
		Description:   description,
		Compression:   "none",
	}
	if details != nil {
		raw, err := json.Marshal(details)
		if err != nil {
			return nil, err
		}
		if len(raw) > seuilCompression {
			entree.DetailsCompresses = zstdEnc.EncodeAll(raw, nil)
			entree.Compression = "zstd"
		} else {
			entree.Details = raw
		}
	}
	return entree, nil
}

func (s *journalService) Lister(ctx context.Context, filter dto.JournalFilter) (*dto.JournalListResponse, error) {
	q := repository.JournalQuery{
		Recherche: filter.Recherche,
		Action:    filter.Action,
		Modele:    filter.Modele,
		Offset:    filter.Page * filter.Taille,
		Limit:     filter.Taille,
	}
	if filter.DateDebut != "" {
		if t, err := time.Parse("2006-01-02", filter.DateDebut); err == nil {
			q.DateDebut = &t
		}
	}
	if filter.DateFin != "" {
		// exclusive upper bound: the whole end day is included
		if t, err := time.Parse("2006-01-02", filter.DateFin); err == nil {
			fin := t.AddDate(0, 0, 1)
			q.DateFin = &fin
		}
	}

	entrees, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}

	data := make([]dto.JournalEntreeResponse, 0, len(entrees))
	for i := range entrees {
		data = append(data, *journalToResponse(&entrees[i]))
	}
	return &dto.JournalListResponse{
		Data:   data,
		Total:  total,
		Page:   filter.Page,
		Taille: filter.Taille,
	}, nil
}

func journalToResponse(e *model.JournalEntree) *dto.JournalEntreeResponse {
	details := e.Details
	if e.Compression == "zstd" && len(e.DetailsCompresses) > 0 {
		if raw, err := zstdDec.DecodeAll(e.DetailsCompresses, nil); err == nil {
			details = raw
		} else {
			log.Warn().Err(err).Str("entree_id", e.ID.String()).Msg("journal: decompress details")
		}
	}
	utilisateur := ""
	if e.Utilisateur != nil {
		utilisateur = e.Utilisateur.Nom
	}
	return &dto.JournalEntreeResponse{
		ID:          e.ID.String(),
		Action:      e.Action,
		Modele:      e.Modele,
		ObjetID:     e.ObjetID.String(),
		Utilisateur: utilisateur,
		Description: e.Description,
		Details:     details,
		CreatedAt:   e.CreatedAt.Format(time.RFC3339),
	}
}
