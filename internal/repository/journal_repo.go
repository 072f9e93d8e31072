package repository

import (
	"context"
	"time"

	"github.com/Kountade/MSG-SARL-sub002/internal/model"

	"gorm.io/gorm"
)

// JournalQuery carries the filtering options of the audit log listing.
// Zero values mean "no filter"; DateFin is exclusive.
type JournalQuery struct {
	Recherche string
	Action    string
	Modele    string
	DateDebut *time.Time
	DateFin   *time.Time
	Offset    int
	Limit     int
}

type JournalRepository interface {
	Create(ctx context.Context, e *model.JournalEntree) error
	CreateTx(tx *gorm.DB, e *model.JournalEntree) error
	List(ctx context.Context, q JournalQuery) ([]model.JournalEntree, int64, error)
}

type journalRepo struct{ db *gorm.DB }

func NewJournalRepository(db *gorm.DB) JournalRepository { return &journalRepo{db: db} }

func (r *journalRepo) Create(ctx context.Context, e *model.JournalEntree) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *journalRepo) CreateTx(tx *gorm.DB, e *model.JournalEntree) error {
	return tx.Create(e).Error
}

func (r *journalRepo) List(ctx context.Context, q JournalQuery) ([]model.JournalEntree, int64, error) {
	base := r.db.WithContext(ctx).Model(&model.JournalEntree{})

	if q.Recherche != "" {
		base = base.Where("description ILIKE ?", "%"+q.Recherche+"%")
	}
	if q.Action != "" {
		base = base.Where("action = ?", q.Action)
	}
	if q.Modele != "" {
		base = base.Where("modele = ?", q.Modele)
	}
	if q.DateDebut != nil {
		base = base.Where("created_at >= ?", *q.DateDebut)
	}
	if q.DateFin != nil {
		base = base.Where("created_at < ?", *q.DateFin)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entrees []model.JournalEntree
	err := base.Preload("Utilisateur").
		Order("created_at DESC").
		Offset(q.Offset).
		Limit(q.Limit).
		Find(&entrees).Error
	return entrees, total, err
}
