package dto

import "github.com/shopspring/decimal"

// StockDisponibleItem is the available quantity of a product in one
// warehouse (GET /v1/stock-disponible?produit=).
type StockDisponibleItem struct {
	EntrepotID string `json:"entrepot_id"`
	Entrepot   string `json:"entrepot"`
	Quantite   int    `json:"quantite"`
}

type StockDisponibleResponse struct {
	ProduitID string                `json:"produit_id"`
	Produit   string                `json:"produit"`
	Total     int                   `json:"total"`
	Entrepots []StockDisponibleItem `json:"entrepots"`
}

type ProduitResponse struct {
	ID          string          `json:"id"`
	Reference   string          `json:"reference"`
	Nom         string          `json:"nom"`
	Description *string         `json:"description"`
	PrixVente   decimal.Decimal `json:"prix_vente"`
	Actif       bool            `json:"actif"`
}

type EntrepotResponse struct {
	ID      string  `json:"id"`
	Nom     string  `json:"nom"`
	Adresse *string `json:"adresse"`
	Actif   bool    `json:"actif"`
}

type CreerEntrepotRequest struct {
	Nom     string  `json:"nom" validate:"required,min=2"`
	Adresse *string `json:"adresse"`
}

type CreerProduitRequest struct {
	Reference   string  `json:"reference" validate:"required"`
	Nom         string  `json:"nom"       validate:"required,min=2"`
	Description *string `json:"description"`
	PrixVente   Montant `json:"prix_vente"`
}
