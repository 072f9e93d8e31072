package repository

import (
	"context"

	"github.com/Kountade/MSG-SARL-sub002/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProduitRepository interface {
	Create(ctx context.Context, p *model.Produit) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Produit, error)
	List(ctx context.Context) ([]model.Produit, error)
	Update(ctx context.Context, p *model.Produit) error
}

type produitRepo struct{ db *gorm.DB }

func NewProduitRepository(db *gorm.DB) ProduitRepository { return &produitRepo{db: db} }

func (r *produitRepo) Create(ctx context.Context, p *model.Produit) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *produitRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Produit, error) {
	var p model.Produit
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *produitRepo) List(ctx context.Context) ([]model.Produit, error) {
	var produits []model.Produit
	err := r.db.WithContext(ctx).Where("actif = true").Order("nom").Find(&produits).Error
	return produits, err
}

func (r *produitRepo) Update(ctx context.Context, p *model.Produit) error {
	return r.db.WithContext(ctx).Save(p).Error
}
