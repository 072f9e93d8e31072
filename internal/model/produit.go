package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Produit represents a sellable product. Stock quantities live per warehouse
// in StockEntrepot, never on the product itself.
type Produit struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Reference   string    `gorm:"uniqueIndex;not null"`
	Nom         string    `gorm:"index;not null"`
	Description *string
	PrixVente   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Actif       bool            `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Produit) TableName() string { return "produits" }
