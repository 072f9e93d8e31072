package dto

type CreerClientRequest struct {
	Nom       string  `json:"nom" validate:"required,min=2"`
	Adresse   *string `json:"adresse"`
	Telephone *string `json:"telephone"`
	Email     *string `json:"email" validate:"omitempty,email"`
}

type ClientResponse struct {
	ID        string  `json:"id"`
	Nom       string  `json:"nom"`
	Adresse   *string `json:"adresse"`
	Telephone *string `json:"telephone"`
	Email     *string `json:"email"`
	Actif     bool    `json:"actif"`
	CreatedAt string  `json:"created_at"`
}

// HistoriqueClientResponse is the payload of GET /v1/historique-client:
// the profile plus the full sale history and its derived figures, fetched in
// one round trip.
type HistoriqueClientResponse struct {
	Client   ClientResponse  `json:"client"`
	Ventes   []VenteListItem `json:"ventes"`
	Agregats AgregatsDTO     `json:"agregats"`
}
