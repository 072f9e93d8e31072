package handler

import (
	"fmt"
	"net/http"

	"github.com/Kountade/MSG-SARL-sub002/internal/apierror"
	"github.com/Kountade/MSG-SARL-sub002/internal/dto"
	"github.com/Kountade/MSG-SARL-sub002/internal/middleware"
	"github.com/Kountade/MSG-SARL-sub002/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type VentesHandler struct {
	svc      service.VenteService
	factures service.FactureService
}

func NewVentesHandler(svc service.VenteService, factures service.FactureService) *VentesHandler {
	return &VentesHandler{svc: svc, factures: factures}
}

// CreerVente godoc
// @Summary      Créer une vente en brouillon
// @Description  Crée une vente avec ses lignes. Le stock n'est pas touché avant la confirmation.
// @Tags         ventes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreerVenteRequest true "Détail de la vente"
// @Success      201  {object} dto.VenteResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/ventes [post]
func (h *VentesHandler) CreerVente(c *gin.Context) {
	var req dto.CreerVenteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	utilisateurID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.CreerVente(c.Request.Context(), utilisateurID, req)
	if err != nil {
		repondreErreur(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListerVentes godoc
// @Summary      Lister les ventes
// @Description  Liste paginée avec recherche plein champ, filtres de statut et agrégats de tableau de bord.
// @Tags         ventes
// @Produce      json
// @Security     BearerAuth
// @Param        recherche       query string false "Terme cherché dans numéro, client et notes"
// @Param        statut          query string false "brouillon | confirmee | annulee"
// @Param        statut_paiement query string false "non_paye | partiel | paye | en_retard"
// @Param        date_debut      query string false "YYYY-MM-DD"
// @Param        date_fin        query string false "YYYY-MM-DD (inclus)"
// @Param        page            query int    false "Page (base 0)"
// @Param        taille          query int    false "10 | 25 | 50 | 100"
// @Success      200 {object} dto.VenteListResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/ventes [get]
func (h *VentesHandler) ListerVentes(c *gin.Context) {
	var filter dto.VenteFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListVentes(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erreur lors du listage des ventes"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetVente godoc
// @Summary      Détail d'une vente
// @Tags         ventes
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID de la vente"
// @Success      200 {object} dto.VenteResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/ventes/{id} [get]
func (h *VentesHandler) GetVente(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.GetVente(c.Request.Context(), id)
	if err != nil {
		repondreErreur(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ModifierVente godoc
// @Summary      Modifier un brouillon
// @Description  Remplace les champs mutables d'une vente en brouillon. Les lignes fournies remplacent le jeu complet.
// @Tags         ventes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID de la vente"
// @Param        body body dto.ModifierVenteRequest true "Champs à modifier"
// @Success      200 {object} dto.VenteResponse
// @Failure      409 {object} apierror.APIError
// @Router       /v1/ventes/{id} [patch]
func (h *VentesHandler) ModifierVente(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.ModifierVenteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	utilisateurID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.ModifierVente(c.Request.Context(), id, utilisateurID, req)
	if err != nil {
		repondreErreur(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ConfirmerVente godoc
// @Summary      Confirmer une vente
// @Description  Fige les lignes, décompte le stock et journalise les mouvements. Un déficit de stock n'empêche pas la confirmation : la vente est marquée conflit_stock et des avertissements sont retournés.
// @Tags         ventes
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID de la vente"
// @Success      200 {object} dto.ConfirmerVenteResponse
// @Failure      409 {object} apierror.APIError
// @Router       /v1/ventes/{id}/confirmer [post]
func (h *VentesHandler) ConfirmerVente(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	claims := middleware.GetClaims(c)
	utilisateurID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.ConfirmerVente(c.Request.Context(), id, utilisateurID)
	if err != nil {
		repondreErreur(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SupprimerVente godoc
// @Summary      Supprimer un brouillon
// @Tags         ventes
// @Security     BearerAuth
// @Param        id path string true "UUID de la vente"
// @Success      204
// @Failure      409 {object} apierror.APIError
// @Router       /v1/ventes/{id} [delete]
func (h *VentesHandler) SupprimerVente(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	claims := middleware.GetClaims(c)
	utilisateurID, _ := uuid.Parse(claims.UserID)

	if err := h.svc.SupprimerVente(c.Request.Context(), id, utilisateurID); err != nil {
		repondreErreur(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// EnregistrerPaiement godoc
// @Summary      Enregistrer un paiement
// @Description  Ajoute un règlement à une vente confirmée. Rejeté si le montant n'est pas strictement positif ou dépasse le restant dû ; un rejet ne modifie rien.
// @Tags         ventes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID de la vente"
// @Param        body body dto.EnregistrerPaiementRequest true "Détail du paiement"
// @Success      200 {object} dto.VenteResponse
// @Failure      422 {object} apierror.APIError
// @Router       /v1/ventes/{id}/enregistrer_paiement [post]
func (h *VentesHandler) EnregistrerPaiement(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.EnregistrerPaiementRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	utilisateurID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.EnregistrerPaiement(c.Request.Context(), id, utilisateurID, req)
	if err != nil {
		repondreErreur(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// TelechargerFacture godoc
// @Summary      Télécharger la facture PDF
// @Description  Génère la facture à la volée et la renvoie en téléchargement.
// @Tags         ventes
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id path string true "UUID de la vente"
// @Success      200 {file} binary
// @Failure      404 {object} apierror.APIError
// @Router       /v1/ventes/{id}/facture [get]
func (h *VentesHandler) TelechargerFacture(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	pdf, nom, err := h.factures.Generer(c.Request.Context(), id)
	if err != nil {
		repondreErreur(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", nom))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalide"))
		return uuid.Nil, false
	}
	return id, true
}
