package model

import (
	"time"

	"github.com/google/uuid"
)

// Actions journalisées.
const (
	ActionCreation     = "creation"
	ActionModification = "modification"
	ActionSuppression  = "suppression"
	ActionConfirmation = "confirmation"
	ActionPaiement     = "paiement"
)

// JournalEntree is one immutable audit log record. Large change payloads are
// stored zstd-compressed in DetailsCompresses; small ones stay as plain JSON
// in Details. Exactly one of the two is set.
type JournalEntree struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Action string    `gorm:"type:varchar(20);not null;index"`
	// Modele is the entity kind: "vente" | "client" | "produit" | "entrepot" | ...
	Modele            string    `gorm:"type:varchar(30);not null;index"`
	ObjetID           uuid.UUID `gorm:"type:uuid;not null"`
	UtilisateurID     uuid.UUID `gorm:"type:uuid;not null"`
	Description       string    `gorm:"not null"`
	Details           []byte    `gorm:"type:jsonb"`
	DetailsCompresses []byte
	// Compression: "none" | "zstd"
	Compression string    `gorm:"type:varchar(10);not null;default:'none'"`
	CreatedAt   time.Time `gorm:"index"`

	Utilisateur *Utilisateur `gorm:"foreignKey:UtilisateurID"`
}

func (JournalEntree) TableName() string { return "journal_entrees" }
