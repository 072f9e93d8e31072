package handler

import (
	"net/http"

	"github.com/Kountade/MSG-SARL-sub002/internal/apierror"
	"github.com/Kountade/MSG-SARL-sub002/internal/dto"
	"github.com/Kountade/MSG-SARL-sub002/internal/service"

	"github.com/gin-gonic/gin"
)

type UtilisateursHandler struct{ svc service.AuthService }

func NewUtilisateursHandler(svc service.AuthService) *UtilisateursHandler {
	return &UtilisateursHandler{svc: svc}
}

// CreerUtilisateur godoc
// @Summary      Créer un utilisateur
// @Tags         utilisateurs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreerUtilisateurRequest true "Utilisateur"
// @Success      201 {object} dto.UtilisateurResponse
// @Failure      422 {object} apierror.ValidationError
// @Router       /v1/utilisateurs [post]
func (h *UtilisateursHandler) CreerUtilisateur(c *gin.Context) {
	var req dto.CreerUtilisateurRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreerUtilisateur(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListerUtilisateurs godoc
// @Summary      Lister les utilisateurs actifs
// @Tags         utilisateurs
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.UtilisateurResponse
// @Router       /v1/utilisateurs [get]
func (h *UtilisateursHandler) ListerUtilisateurs(c *gin.Context) {
	resp, err := h.svc.ListerUtilisateurs(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erreur lors du listage des utilisateurs"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ModifierUtilisateur godoc
// @Summary      Modifier un utilisateur
// @Tags         utilisateurs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID de l'utilisateur"
// @Param        body body dto.ModifierUtilisateurRequest true "Champs à modifier"
// @Success      200 {object} dto.UtilisateurResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/utilisateurs/{id} [put]
func (h *UtilisateursHandler) ModifierUtilisateur(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.ModifierUtilisateurRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ModifierUtilisateur(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DesactiverUtilisateur godoc
// @Summary      Désactiver un utilisateur
// @Tags         utilisateurs
// @Security     BearerAuth
// @Param        id path string true "UUID de l'utilisateur"
// @Success      204
// @Router       /v1/utilisateurs/{id} [delete]
func (h *UtilisateursHandler) DesactiverUtilisateur(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.DesactiverUtilisateur(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// ReactiverUtilisateur godoc
// @Summary      Réactiver un utilisateur
// @Tags         utilisateurs
// @Security     BearerAuth
// @Param        id path string true "UUID de l'utilisateur"
// @Success      204
// @Router       /v1/utilisateurs/{id}/reactiver [post]
func (h *UtilisateursHandler) ReactiverUtilisateur(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.ReactiverUtilisateur(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
