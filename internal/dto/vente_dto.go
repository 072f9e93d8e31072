package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// VenteFilter is bound from the query string of GET /v1/ventes.
// StatutPaiement accepts the pseudo-statut "en_retard", resolved against the
// due date rather than the stored field.
type VenteFilter struct {
	Recherche      string `form:"recherche"`
	Statut         string `form:"statut"`          // brouillon | confirmee | annulee
	StatutPaiement string `form:"statut_paiement"` // non_paye | partiel | paye | en_retard
	DateDebut      string `form:"date_debut"`      // YYYY-MM-DD
	DateFin        string `form:"date_fin"`        // YYYY-MM-DD
	Page           int    `form:"page,default=0"    validate:"min=0"`
	Taille         int    `form:"taille,default=25" validate:"min=1,max=100"`
}

// VenteListItem is one row of GET /v1/ventes, annotated with the figures
// derived by internal/ledger.
type VenteListItem struct {
	ID              string          `json:"id"`
	Numero          string          `json:"numero"`
	Statut          string          `json:"statut"`
	StatutPaiement  string          `json:"statut_paiement"`
	MontantTotal    decimal.Decimal `json:"montant_total"`
	Remise          decimal.Decimal `json:"remise"`
	MontantPaye     decimal.Decimal `json:"montant_paye"`
	MontantRestant  decimal.Decimal `json:"montant_restant"`
	PourcentagePaye int             `json:"pourcentage_paye"`
	EnRetard        bool            `json:"en_retard"`
	ClientNom       string          `json:"client_nom"`
	DateEcheance    *string         `json:"date_echeance"`
	CreatedAt       string          `json:"created_at"`
}

type VenteListResponse struct {
	Data     []VenteListItem `json:"data"`
	Total    int             `json:"total"`
	Page     int             `json:"page"`
	Taille   int             `json:"taille"`
	Agregats AgregatsDTO     `json:"agregats"`
}

// AgregatsDTO carries the dashboard figures computed over the full
// (pre-pagination) result set.
type AgregatsDTO struct {
	ParStatut         map[string]int  `json:"par_statut"`
	ParStatutPaiement map[string]int  `json:"par_statut_paiement"`
	ChiffreAffaires   decimal.Decimal `json:"chiffre_affaires"`
	Creances          decimal.Decimal `json:"creances"`
	Entrepots         []string        `json:"entrepots"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LigneVenteRequest struct {
	ProduitID  string  `json:"produit_id"  validate:"required,uuid"`
	EntrepotID string  `json:"entrepot_id" validate:"required,uuid"`
	Quantite   int     `json:"quantite"    validate:"required,min=1"`
	RemisePct  Montant `json:"remise_pct"`
}

type CreerVenteRequest struct {
	ClientID     *string             `json:"client_id"     validate:"omitempty,uuid"`
	Lignes       []LigneVenteRequest `json:"lignes"        validate:"required,min=1,dive"`
	Remise       Montant             `json:"remise"`
	DateEcheance *string             `json:"date_echeance" validate:"omitempty,datetime=2006-01-02"`
	Notes        *string             `json:"notes"`
}

// ModifierVenteRequest replaces the mutable fields of a draft sale.
// Lignes, when present, replace the whole line set.
type ModifierVenteRequest struct {
	ClientID     *string             `json:"client_id"     validate:"omitempty,uuid"`
	Lignes       []LigneVenteRequest `json:"lignes"        validate:"omitempty,min=1,dive"`
	Remise       *Montant            `json:"remise"`
	DateEcheance *string             `json:"date_echeance" validate:"omitempty,datetime=2006-01-02"`
	Notes        *string             `json:"notes"`
}

type EnregistrerPaiementRequest struct {
	Montant      Montant `json:"montant"`
	ModePaiement string  `json:"mode_paiement" validate:"required,oneof=especes carte cheque virement mobile_money"`
	Reference    *string `json:"reference"`
	Notes        *string `json:"notes"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type LigneVenteResponse struct {
	ProduitID    string          `json:"produit_id"`
	Produit      string          `json:"produit"`
	EntrepotID   string          `json:"entrepot_id"`
	Entrepot     string          `json:"entrepot"`
	Quantite     int             `json:"quantite"`
	PrixUnitaire decimal.Decimal `json:"prix_unitaire"`
	RemisePct    decimal.Decimal `json:"remise_pct"`
	SousTotal    decimal.Decimal `json:"sous_total"`
}

type PaiementResponse struct {
	ID           string          `json:"id"`
	Montant      decimal.Decimal `json:"montant"`
	ModePaiement string          `json:"mode_paiement"`
	Reference    *string         `json:"reference"`
	Notes        *string         `json:"notes"`
	CreatedAt    string          `json:"created_at"`
}

type VenteResponse struct {
	ID              string               `json:"id"`
	Numero          string               `json:"numero"`
	Statut          string               `json:"statut"`
	StatutPaiement  string               `json:"statut_paiement"`
	Lignes          []LigneVenteResponse `json:"lignes"`
	Paiements       []PaiementResponse   `json:"paiements"`
	MontantTotal    decimal.Decimal      `json:"montant_total"`
	Remise          decimal.Decimal      `json:"remise"`
	MontantPaye     decimal.Decimal      `json:"montant_paye"`
	MontantRestant  decimal.Decimal      `json:"montant_restant"`
	PourcentagePaye int                  `json:"pourcentage_paye"`
	EnRetard        bool                 `json:"en_retard"`
	ConflitStock    bool                 `json:"conflit_stock"`
	ClientID        *string              `json:"client_id"`
	ClientNom       string               `json:"client_nom"`
	DateEcheance    *string              `json:"date_echeance"`
	Notes           *string              `json:"notes"`
	CreatedAt       string               `json:"created_at"`
}

// AvertissementStock is returned by the confirmation flow when a line lacks
// stock: informative only, never blocking.
type AvertissementStock struct {
	ProduitID  string `json:"produit_id"`
	Produit    string `json:"produit"`
	EntrepotID string `json:"entrepot_id"`
	Demande    int    `json:"demande"`
	Disponible int    `json:"disponible"`
}

type ConfirmerVenteResponse struct {
	Vente          VenteResponse        `json:"vente"`
	Avertissements []AvertissementStock `json:"avertissements,omitempty"`
}
