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

type StockHandler struct{ svc service.StockService }

func NewStockHandler(svc service.StockService) *StockHandler { return &StockHandler{svc: svc} }

// CreerProduit godoc
// @Summary      Créer un produit
// @Tags         stock
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreerProduitRequest true "Produit"
// @Success      201 {object} dto.ProduitResponse
// @Failure      422 {object} apierror.ValidationError
// @Router       /v1/produits [post]
func (h *StockHandler) CreerProduit(c *gin.Context) {
	var req dto.CreerProduitRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	utilisateurID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.CreerProduit(c.Request.Context(), utilisateurID, req)
	if err != nil {
		repondreErreur(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListerProduits godoc
// @Summary      Lister les produits actifs
// @Tags         stock
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.ProduitResponse
// @Router       /v1/produits [get]
func (h *StockHandler) ListerProduits(c *gin.Context) {
	resp, err := h.svc.ListerProduits(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erreur lors du listage des produits"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CreerEntrepot godoc
// @Summary      Créer un entrepôt
// @Tags         stock
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreerEntrepotRequest true "Entrepôt"
// @Success      201 {object} dto.EntrepotResponse
// @Failure      422 {object} apierror.ValidationError
// @Router       /v1/entrepots [post]
func (h *StockHandler) CreerEntrepot(c *gin.Context) {
	var req dto.CreerEntrepotRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	utilisateurID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.CreerEntrepot(c.Request.Context(), utilisateurID, req)
	if err != nil {
		repondreErreur(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListerEntrepots godoc
// @Summary      Lister les entrepôts actifs
// @Tags         stock
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.EntrepotResponse
// @Router       /v1/entrepots [get]
func (h *StockHandler) ListerEntrepots(c *gin.Context) {
	resp, err := h.svc.ListerEntrepots(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erreur lors du listage des entrepôts"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// StockDisponible godoc
// @Summary      Stock disponible par entrepôt
// @Description  Quantités d'un produit dans chaque entrepôt, pour l'écran de saisie de vente.
// @Tags         stock
// @Produce      json
// @Security     BearerAuth
// @Param        produit query string true "UUID du produit"
// @Success      200 {object} dto.StockDisponibleResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/stock-disponible [get]
func (h *StockHandler) StockDisponible(c *gin.Context) {
	id, err := uuid.Parse(c.Query("produit"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Paramètre produit invalide"))
		return
	}
	resp, err := h.svc.StockDisponible(c.Request.Context(), id)
	if err != nil {
		repondreErreur(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
