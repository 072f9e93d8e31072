package handler

import (
	"net/http"

	"github.com/Kountade/MSG-SARL-sub002/internal/apierror"
	"github.com/Kountade/MSG-SARL-sub002/internal/dto"
	"github.com/Kountade/MSG-SARL-sub002/internal/service"

	"github.com/gin-gonic/gin"
)

type JournalHandler struct{ svc service.JournalService }

func NewJournalHandler(svc service.JournalService) *JournalHandler {
	return &JournalHandler{svc: svc}
}

// ListerJournal godoc
// @Summary      Consulter le journal d'audit
// @Description  Liste paginée des entrées, filtrable par texte de description, action, modèle et plage de dates.
// @Tags         journal
// @Produce      json
// @Security     BearerAuth
// @Param        search     query string false "Terme cherché dans la description"
// @Param        action     query string false "creation | modification | suppression | confirmation | paiement"
// @Param        modele     query string false "vente | client | produit | entrepot"
// @Param        date_debut query string false "YYYY-MM-DD"
// @Param        date_fin   query string false "YYYY-MM-DD (inclus)"
// @Param        page       query int    false "Page (base 0)"
// @Param        taille     query int    false "Entrées par page (default 50)"
// @Success      200 {object} dto.JournalListResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/journal [get]
func (h *JournalHandler) ListerJournal(c *gin.Context) {
	var filter dto.JournalFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Lister(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erreur lors de la lecture du journal"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
