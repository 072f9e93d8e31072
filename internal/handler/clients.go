package handler

import (
	"net/http"

	"github.com/Kountade/MSG-SARL-sub002/internal/apierror"
	"github.com/Kountade/MSG-SARL-sub002/internal/dto"
	"github.com/Kountade/MSG-SARL-sub002/internal/middleware"
	"github.com/Kountade/MSG-SARL-sub002/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ClientsHandler struct{ svc service.ClientService }

func NewClientsHandler(svc service.ClientService) *ClientsHandler { return &ClientsHandler{svc: svc} }

// CreerClient godoc
// @Summary      Créer un client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreerClientRequest true "Profil du client"
// @Success      201 {object} dto.ClientResponse
// @Failure      422 {object} apierror.ValidationError
// @Router       /v1/clients [post]
func (h *ClientsHandler) CreerClient(c *gin.Context) {
	var req dto.CreerClientRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	utilisateurID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.Creer(c.Request.Context(), utilisateurID, req)
	if err != nil {
		repondreErreur(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListerClients godoc
// @Summary      Lister les clients actifs
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.ClientResponse
// @Router       /v1/clients [get]
func (h *ClientsHandler) ListerClients(c *gin.Context) {
	resp, err := h.svc.Lister(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erreur lors du listage des clients"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetClient godoc
// @Summary      Détail d'un client
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID du client"
// @Success      200 {object} dto.ClientResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/clients/{id} [get]
func (h *ClientsHandler) GetClient(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		repondreErreur(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// HistoriqueClient godoc
// @Summary      Historique d'achats d'un client
// @Description  Retourne le profil, toutes les ventes du client et les agrégats dérivés en un seul appel.
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        client_id query string true "UUID du client"
// @Success      200 {object} dto.HistoriqueClientResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/historique-client [get]
func (h *ClientsHandler) HistoriqueClient(c *gin.Context) {
	id, err := uuid.Parse(c.Query("client_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Paramètre client_id invalide"))
		return
	}
	resp, err := h.svc.Historique(c.Request.Context(), id)
	if err != nil {
		repondreErreur(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
