package repository

import (
	"context"

	"github.com/Kountade/MSG-SARL-sub002/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VenteRepository defines the data access contract for sales. Services
// depend on this interface, not on the concrete GORM implementation, so the
// pure core stays unit-testable with in-memory stubs.
type VenteRepository interface {
	Create(ctx context.Context, tx *gorm.DB, v *model.Vente) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Vente, error)
	ListAll(ctx context.Context) ([]model.Vente, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]model.Vente, error)
	UpdateTx(tx *gorm.DB, v *model.Vente) error
	ReplaceLignesTx(tx *gorm.DB, venteID uuid.UUID, lignes []model.VenteLigne) error
	CreatePaiementTx(tx *gorm.DB, p *model.Paiement) error
	Delete(ctx context.Context, id uuid.UUID) error
	NextNumero(ctx context.Context, tx *gorm.DB) (int, error)
	DB() *gorm.DB // exposes the DB for transaction creation in the service layer
}

type venteRepo struct{ db *gorm.DB }

func NewVenteRepository(db *gorm.DB) VenteRepository { return &venteRepo{db: db} }

func (r *venteRepo) DB() *gorm.DB { return r.db }

func (r *venteRepo) Create(ctx context.Context, tx *gorm.DB, v *model.Vente) error {
	return tx.WithContext(ctx).Create(v).Error
}

func (r *venteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Vente, error) {
	var v model.Vente
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Lignes.Produit").
		Preload("Lignes.Entrepot").
		Preload("Paiements").
		First(&v, id).Error
	return &v, err
}

// ListAll returns every sale, newest first, fully preloaded. Filtering and
// pagination happen in memory (internal/ledger) so the list views share one
// predicate implementation with the dashboards.
func (r *venteRepo) ListAll(ctx context.Context) ([]model.Vente, error) {
	var ventes []model.Vente
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Lignes.Produit").
		Preload("Lignes.Entrepot").
		Preload("Paiements").
		Order("created_at DESC").
		Find(&ventes).Error
	return ventes, err
}

func (r *venteRepo) ListByClient(ctx context.Context, clientID uuid.UUID) ([]model.Vente, error) {
	var ventes []model.Vente
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Lignes.Produit").
		Preload("Lignes.Entrepot").
		Preload("Paiements").
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Find(&ventes).Error
	return ventes, err
}

func (r *venteRepo) UpdateTx(tx *gorm.DB, v *model.Vente) error {
	return tx.Save(v).Error
}

// ReplaceLignesTx swaps the full line set of a draft sale.
func (r *venteRepo) ReplaceLignesTx(tx *gorm.DB, venteID uuid.UUID, lignes []model.VenteLigne) error {
	if err := tx.Where("vente_id = ?", venteID).Delete(&model.VenteLigne{}).Error; err != nil {
		return err
	}
	for i := range lignes {
		lignes[i].VenteID = venteID
	}
	return tx.Create(&lignes).Error
}

func (r *venteRepo) CreatePaiementTx(tx *gorm.DB, p *model.Paiement) error {
	return tx.Create(p).Error
}

func (r *venteRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Select("Lignes", "Paiements").Delete(&model.Vente{ID: id}).Error
}

func (r *venteRepo) NextNumero(ctx context.Context, tx *gorm.DB) (int, error) {
	// PostgreSQL sequence keeps numero assignment atomic across instances.
	var num int
	err := tx.WithContext(ctx).Raw("SELECT nextval('ventes_numero_seq')").Scan(&num).Error
	return num, err
}
