package model

import (
	"time"

	"github.com/google/uuid"
)

// Client represents a customer referenced by sales.
type Client struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nom       string    `gorm:"index;not null"`
	Adresse   *string
	Telephone *string
	Email     *string
	Actif     bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Client) TableName() string { return "clients" }
