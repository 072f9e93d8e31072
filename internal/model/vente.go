package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Statuts de vente.
// Une vente naît en brouillon, passe à confirmée (stock décompté) ou annulée.
const (
	StatutBrouillon = "brouillon"
	StatutConfirmee = "confirmee"
	StatutAnnulee   = "annulee"
)

// Statuts de paiement stockés. "en_retard" n'est jamais stocké : il est
// dérivé de la date d'échéance au moment de la lecture (voir internal/ledger).
const (
	PaiementNonPaye = "non_paye"
	PaiementPartiel = "partiel"
	PaiementPaye    = "paye"
	PaiementRetard  = "en_retard"
)

// Modes de paiement acceptés pour un règlement.
var ModesPaiement = []string{"especes", "carte", "cheque", "virement", "mobile_money"}

// ModePaiementValide reports whether mode is one of ModesPaiement.
func ModePaiementValide(mode string) bool {
	for _, m := range ModesPaiement {
		if m == mode {
			return true
		}
	}
	return false
}

// Vente represents a sale transaction: draft or confirmed, with its line
// items and settlement history. Invariants maintained by the service layer:
//
//	MontantTotal   = Σ ligne.SousTotal − Remise
//	MontantRestant = MontantTotal − MontantPaye
//
// both non-negative.
type Vente struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Numero string    `gorm:"uniqueIndex;not null"`
	Statut string    `gorm:"type:varchar(20);not null;default:'brouillon'"`
	// StatutPaiement: non_paye | partiel | paye — recomputed on every payment.
	StatutPaiement string `gorm:"type:varchar(20);not null;default:'non_paye'"`

	MontantTotal   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Remise         decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	MontantPaye    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	MontantRestant decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	ClientID      *uuid.UUID `gorm:"type:uuid;index"`
	DateEcheance  *time.Time
	Notes         *string
	UtilisateurID uuid.UUID `gorm:"type:uuid;not null"`
	// ConflitStock is raised when the confirmation found insufficient stock
	// on at least one line. The sale is accepted anyway (soft guard).
	ConflitStock bool `gorm:"not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Client      *Client      `gorm:"foreignKey:ClientID"`
	Utilisateur *Utilisateur `gorm:"foreignKey:UtilisateurID"`
	Lignes      []VenteLigne `gorm:"foreignKey:VenteID"`
	Paiements   []Paiement   `gorm:"foreignKey:VenteID"`
}

func (Vente) TableName() string { return "ventes" }

// VenteLigne is one product line of a Vente, sourced from one warehouse.
// Immutable once the parent is confirmed.
// SousTotal = Quantite × PrixUnitaire × (1 − RemisePct/100).
type VenteLigne struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VenteID    uuid.UUID `gorm:"type:uuid;index;not null"`
	ProduitID  uuid.UUID `gorm:"type:uuid;not null"`
	EntrepotID uuid.UUID `gorm:"type:uuid;not null"`

	Quantite     int             `gorm:"not null"`
	PrixUnitaire decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	RemisePct    decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	SousTotal    decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Produit  *Produit  `gorm:"foreignKey:ProduitID"`
	Entrepot *Entrepot `gorm:"foreignKey:EntrepotID"`
}

func (VenteLigne) TableName() string { return "vente_lignes" }

// Paiement is an append-only settlement event against a confirmed Vente.
// Payments are NEVER modified or deleted.
type Paiement struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VenteID      uuid.UUID       `gorm:"type:uuid;index;not null"`
	Montant      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ModePaiement string          `gorm:"type:varchar(20);not null"`
	Reference    *string
	Notes        *string
	CreatedAt    time.Time
}

func (Paiement) TableName() string { return "paiements" }
