package model

import (
	"time"

	"github.com/google/uuid"
)

// Entrepot is a physical storage location sales draw stock from.
type Entrepot struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nom       string    `gorm:"uniqueIndex;not null"`
	Adresse   *string
	Actif     bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Entrepot) TableName() string { return "entrepots" }

// StockEntrepot holds the available quantity of one product in one warehouse.
type StockEntrepot struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProduitID  uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_produit_entrepot;not null"`
	EntrepotID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_produit_entrepot;not null"`
	Quantite   int       `gorm:"not null;default:0"`
	UpdatedAt  time.Time

	Produit  *Produit  `gorm:"foreignKey:ProduitID"`
	Entrepot *Entrepot `gorm:"foreignKey:EntrepotID"`
}

func (StockEntrepot) TableName() string { return "stock_entrepots" }

// MouvementStock records every stock change in a warehouse.
// Created automatically when a sale is confirmed or stock is adjusted.
type MouvementStock struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProduitID  uuid.UUID `gorm:"type:uuid;not null;index"`
	EntrepotID uuid.UUID `gorm:"type:uuid;not null;index"`
	Type       string    `gorm:"not null"` // "vente" | "ajustement" | "restauration"
	Quantite   int       `gorm:"not null"` // positive = entrée, negative = sortie
	StockAvant int       `gorm:"not null"`
	StockApres int       `gorm:"not null"`
	Motif      string
	// ReferenceID links back to the originating Vente when applicable.
	ReferenceID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt   time.Time
}

func (MouvementStock) TableName() string { return "mouvements_stock" }
