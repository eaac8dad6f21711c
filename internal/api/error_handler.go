package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/kardexlab/inventory-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
// Detalle is only populated for unexpected failures and carries a short
// diagnostic string, never internals such as the signing secret.
type errorResponse struct {
	Mensaje string `json:"mensaje"`
	Detalle string `json:"detalle,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"mensaje": "...", "detalle": "..."}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (guard rejections, bind failures, 404 from router).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Mensaje: fmt.Sprintf("%v", he.Message)}
	}

	// Known domain errors map to deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorResponse{Mensaje: "invalid credentials"}
	case errors.Is(err, domain.ErrUserInactive):
		return http.StatusUnauthorized, errorResponse{Mensaje: "user is deactivated, contact an administrator"}
	case errors.Is(err, domain.ErrTokenInvalid):
		return http.StatusUnauthorized, errorResponse{Mensaje: "invalid or expired token"}
	case errors.Is(err, domain.ErrSelfDeactivation):
		return http.StatusBadRequest, errorResponse{Mensaje: "cannot deactivate your own account"}
	case errors.Is(err, domain.ErrPasswordMismatch):
		return http.StatusBadRequest, errorResponse{Mensaje: "current password is incorrect"}
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusBadRequest, errorResponse{Mensaje: "a user with this email or username already exists"}
	case errors.Is(err, domain.ErrRoleExists):
		return http.StatusBadRequest, errorResponse{Mensaje: "a role with this name already exists"}
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, errorResponse{Mensaje: "user not found"}
	case errors.Is(err, domain.ErrRoleNotFound):
		return http.StatusNotFound, errorResponse{Mensaje: "role not found"}
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound, errorResponse{Mensaje: "product not found"}
	case errors.Is(err, domain.ErrProductExists):
		return http.StatusBadRequest, errorResponse{Mensaje: "a product with this code already exists"}
	case errors.Is(err, domain.ErrInvalidMovement):
		return http.StatusBadRequest, errorResponse{Mensaje: "invalid movement type or quantity"}
	case errors.Is(err, domain.ErrInsufficientStock):
		return http.StatusBadRequest, errorResponse{Mensaje: "insufficient stock for this movement"}
	}

	// Unexpected error: log the real cause, return a generic message with a
	// short diagnostic.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{
		Mensaje: "internal server error",
		Detalle: err.Error(),
	}
}
