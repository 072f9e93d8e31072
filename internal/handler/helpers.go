package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/Kountade/MSG-SARL-sub002/internal/apierror"
	"github.com/Kountade/MSG-SARL-sub002/internal/dto"
	"github.com/Kountade/MSG-SARL-sub002/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal and dto.Montant as numeric types so that
	// validator tags like min=0, gt=0, required work without panicking
	// ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		switch v := field.Interface().(type) {
		case decimal.Decimal:
			f, _ := v.Float64()
			return f
		case dto.Montant:
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{}, dto.Montant{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalide: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// repondreErreur maps service sentinel errors to HTTP statuses.
func repondreErreur(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrVenteIntrouvable),
		errors.Is(err, service.ErrClientIntrouvable),
		errors.Is(err, service.ErrProduitIntrouvable):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case errors.Is(err, service.ErrVenteNonModifiable),
		errors.Is(err, service.ErrVenteDejaConfirmee),
		errors.Is(err, service.ErrVenteAnnulee),
		errors.Is(err, service.ErrVenteNonConfirmee):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	case errors.Is(err, service.ErrMontantInvalide),
		errors.Is(err, service.ErrMontantExcedant),
		errors.Is(err, service.ErrModePaiementInvalide),
		errors.Is(err, service.ErrRemiseInvalide):
		c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))
	default:
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	}
}
