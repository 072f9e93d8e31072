package dto

import "encoding/json"

// JournalFilter is bound from the query string of GET /v1/journal.
type JournalFilter struct {
	Recherche string `form:"search"`
	Action    string `form:"action"`
	Modele    string `form:"modele"`
	DateDebut string `form:"date_debut"` // YYYY-MM-DD
	DateFin   string `form:"date_fin"`   // YYYY-MM-DD
	Page      int    `form:"page,default=0"    validate:"min=0"`
	Taille    int    `form:"taille,default=50" validate:"min=1,max=200"`
}

type JournalEntreeResponse struct {
	ID          string          `json:"id"`
	Action      string          `json:"action"`
	Modele      string          `json:"modele"`
	ObjetID     string          `json:"objet_id"`
	Utilisateur string          `json:"utilisateur"`
	Description string          `json:"description"`
	Details     json.RawMessage `json:"details,omitempty"`
	CreatedAt   string          `json:"created_at"`
}

type JournalListResponse struct {
	Data   []JournalEntreeResponse `json:"data"`
	Total  int64                   `json:"total"`
	Page   int                     `json:"page"`
	Taille int                     `json:"taille"`
}
