package repository

import (
	"context"

	"github.com/Kountade/MSG-SARL-sub002/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EntrepotRepository covers warehouses, their per-product stock rows and the
// immutable stock movement journal.
type EntrepotRepository interface {
	Create(ctx context.Context, e *model.Entrepot) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Entrepot, error)
	List(ctx context.Context) ([]model.Entrepot, error)

	// StockParProduit returns the per-warehouse quantities of one product,
	// warehouse preloaded.
	StockParProduit(ctx context.Context, produitID uuid.UUID) ([]model.StockEntrepot, error)

	// Used inside transactions — callers must pass the tx instance.
	FindStockTx(tx *gorm.DB, produitID, entrepotID uuid.UUID) (*model.StockEntrepot, error)
	AjusterStockTx(tx *gorm.DB, produitID, entrepotID uuid.UUID, delta int) error
	CreateMouvementTx(tx *gorm.DB, m *model.MouvementStock) error
}

type entrepotRepo struct{ db *gorm.DB }

func NewEntrepotRepository(db *gorm.DB) EntrepotRepository { return &entrepotRepo{db: db} }

func (r *entrepotRepo) Create(ctx context.Context, e *model.Entrepot) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *entrepotRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Entrepot, error) {
	var e model.Entrepot
	err := r.db.WithContext(ctx).First(&e, id).Error
	return &e, err
}

func (r *entrepotRepo) List(ctx context.Context) ([]model.Entrepot, error) {
	var entrepots []model.Entrepot
	err := r.db.WithContext(ctx).Where("actif = true").Order("nom").Find(&entrepots).Error
	return entrepots, err
}

func (r *entrepotRepo) StockParProduit(ctx context.Context, produitID uuid.UUID) ([]model.StockEntrepot, error) {
	var stocks []model.StockEntrepot
	err := r.db.WithContext(ctx).
		Preload("Entrepot").
		Where("produit_id = ?", produitID).
		Find(&stocks).Error
	return stocks, err
}

func (r *entrepotRepo) FindStockTx(tx *gorm.DB, produitID, entrepotID uuid.UUID) (*model.StockEntrepot, error) {
	var s model.StockEntrepot
	err := tx.Where("produit_id = ? AND entrepot_id = ?", produitID, entrepotID).First(&s).Error
	return &s, err
}

func (r *entrepotRepo) AjusterStockTx(tx *gorm.DB, produitID, entrepotID uuid.UUID, delta int) error {
	return tx.Model(&model.StockEntrepot{}).
		Where("produit_id = ? AND entrepot_id = ?", produitID, entrepotID).
		UpdateColumn("quantite", gorm.Expr("quantite + ?", delta)).Error
}

func (r *entrepotRepo) CreateMouvementTx(tx *gorm.DB, m *model.MouvementStock) error {
	return tx.Create(m).Error
}
