package repository

import (
	"context"

	"github.com/Kountade/MSG-SARL-sub002/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UtilisateurRepository interface {
	Create(ctx context.Context, u *model.Utilisateur) error
	FindByUsername(ctx context.Context, username string) (*model.Utilisateur, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Utilisateur, error)
	List(ctx context.Context) ([]model.Utilisateur, error)
	Update(ctx context.Context, u *model.Utilisateur) error
	Desactiver(ctx context.Context, id uuid.UUID) error
	Reactiver(ctx context.Context, id uuid.UUID) error
}

type utilisateurRepo struct{ db *gorm.DB }

func NewUtilisateurRepository(db *gorm.DB) UtilisateurRepository { return &utilisateurRepo{db: db} }

func (r *utilisateurRepo) Create(ctx context.Context, u *model.Utilisateur) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *utilisateurRepo) FindByUsername(ctx context.Context, username string) (*model.Utilisateur, error) {
	var u model.Utilisateur
	// Accept login by username OR email (case-insensitive email match)
	err := r.db.WithContext(ctx).
		Where("(username = ? OR LOWER(email::text) = LOWER(?)) AND actif = true", username, username).
		First(&u).Error
	return &u, err
}

func (r *utilisateurRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Utilisateur, error) {
	var u model.Utilisateur
	err := r.db.WithContext(ctx).First(&u, id).Error
	return &u, err
}

func (r *utilisateurRepo) List(ctx context.Context) ([]model.Utilisateur, error) {
	var users []model.Utilisateur
	err := r.db.WithContext(ctx).Where("actif = true").Order("username").Find(&users).Error
	return users, err
}

func (r *utilisateurRepo) Update(ctx context.Context, u *model.Utilisateur) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *utilisateurRepo) Desactiver(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Utilisateur{}).Where("id = ?", id).Update("actif", false).Error
}

func (r *utilisateurRepo) Reactiver(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Utilisateur{}).Where("id = ?", id).Update("actif", true).Error
}
