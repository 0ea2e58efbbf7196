package http

import (
	"errors"
	"net/http"

	"orderhub/internal/core/application/usecases/commands"
	"orderhub/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the uniform error body of the API.
type ErrorResponse struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
}

// FieldError names one invalid request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func errorBody(code int, message string) ErrorResponse {
	return ErrorResponse{Code: code, Message: message}
}

// writeError maps a use case error onto the API's status codes. Validation
// failures carry their field list so clients can correct every issue in one
// round trip.
func writeError(c echo.Context, err error) error {
	var validationErr *errs.ValidationError
	if errors.As(err, &validationErr) {
		body := errorBody(http.StatusUnprocessableEntity, "Validation failed")
		for _, f := range validationErr.Fields {
			body.Fields = append(body.Fields, FieldError{Field: f.Field, Message: f.Message})
		}
		return c.JSON(http.StatusUnprocessableEntity, body)
	}

	switch {
	case errors.Is(err, commands.ErrPaymentDeclined):
		return c.JSON(http.StatusPaymentRequired,
			errorBody(http.StatusPaymentRequired, "Payment was declined"))
	case errors.Is(err, errs.ErrObjectNotFound):
		return c.JSON(http.StatusNotFound,
			errorBody(http.StatusNotFound, "Order not found"))
	case errors.Is(err, errs.ErrTenantMismatch):
		return c.JSON(http.StatusForbidden,
			errorBody(http.StatusForbidden, "Not permitted to act for the requested restaurant"))
	case errors.Is(err, errs.ErrUnauthorized):
		return c.JSON(http.StatusForbidden,
			errorBody(http.StatusForbidden, "Role does not permit this operation"))
	case errors.Is(err, errs.ErrInvalidTransition):
		return c.JSON(http.StatusUnprocessableEntity,
			errorBody(http.StatusUnprocessableEntity, err.Error()))
	case errors.Is(err, errs.ErrConcurrentModification):
		return c.JSON(http.StatusConflict,
			errorBody(http.StatusConflict, "Order was modified concurrently, reload and retry"))
	case errors.Is(err, errs.ErrUpstreamFailure):
		return c.JSON(http.StatusBadGateway,
			errorBody(http.StatusBadGateway, "An upstream collaborator is unavailable"))
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return c.JSON(http.StatusUnprocessableEntity,
			errorBody(http.StatusUnprocessableEntity, err.Error()))
	default:
		return c.JSON(http.StatusInternalServerError,
			errorBody(http.StatusInternalServerError, "Internal server error"))
	}
}
