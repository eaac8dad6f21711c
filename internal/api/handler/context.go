package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kardexlab/inventory-api/internal/api/middleware"
	"github.com/kardexlab/inventory-api/internal/core/domain"
)

// currentIdentity extracts the identity published by the identity middleware
// and fast-fails before any service call. Absence here means a route guard
// was skipped or misconfigured; reject rather than proceed anonymously.
func currentIdentity(c echo.Context) (domain.Identity, error) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return identity, nil
}

// messageResponse is the envelope for plain confirmation responses.
type messageResponse struct {
	Mensaje string `json:"mensaje"`
}
