package http

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/kaguna7-ai/ADVANCEDFOREXBOT/internal/console/dto"
	"github.com/kaguna7-ai/ADVANCEDFOREXBOT/pkg/apperrors"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// RequestValidator adapts go-playground/validator to echo's Validator
// interface for payload binding checks.
type RequestValidator struct {
	Validator *validator.Validate
}

// NewRequestValidator creates the echo request validator. Failed fields
// are reported under their JSON names so the client can highlight the
// offending input.
func NewRequestValidator() *RequestValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &RequestValidator{Validator: v}
}

// Validate implements echo.Validator.
func (v *RequestValidator) Validate(i interface{}) error {
	return v.Validator.Struct(i)
}

// writeError maps the application error taxonomy to HTTP responses.
// Validation failures name the field; transport failures get a generic
// retryable message so no collaborator detail leaks.
func writeError(c echo.Context, err error) error {
	var ve *apperrors.ValidationError
	var fieldErrs validator.ValidationErrors
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: ve.Message, Field: ve.Field})
	case errors.As(err, &fieldErrs) && len(fieldErrs) > 0:
		fe := fieldErrs[0]
		msg := "is invalid"
		if fe.Tag() == "required" {
			msg = "is required"
		}
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: msg, Field: fe.Field()})
	case errors.Is(err, apperrors.ErrMutationInFlight):
		return c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrUnauthenticated):
		return c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "authentication required"})
	case errors.Is(err, apperrors.ErrNotFound):
		return c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "not found"})
	default:
		return c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Error: "service temporarily unavailable, please retry"})
	}
}
