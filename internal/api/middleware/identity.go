package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/kardexlab/inventory-api/internal/api/metrics"
	"github.com/kardexlab/inventory-api/internal/core/domain"
	"github.com/kardexlab/inventory-api/internal/core/ports"
)

// publicPrefixes are surfaces that never require authentication, matched on
// the raw request path before any route policy is consulted.
var publicPrefixes = []string{
	"/swagger",
	"/metrics",
	"/health",
	"/api/auth/login",
	"/api/auth/register",
}

// staticSuffixes cover documentation assets served next to the swagger UI.
var staticSuffixes = []string{".js", ".css", ".png", ".ico"}

// AccessRecorder receives fire-and-forget last-access notifications.
type AccessRecorder interface {
	Record(userID string)
}

// Identity resolves the caller's identity on every request. It rejects
// unauthenticated, invalid or inactive callers before business logic runs,
// unless the path is public or the matched route is tagged Anonymous.
func Identity(tokens ports.TokenService, users ports.UserRepository, policies *PolicyRegistry, recorder AccessRecorder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if isPublicPath(c.Request().URL.Path) {
				return next(c)
			}

			if policies.Lookup(c.Request().Method, c.Path()) == Anonymous {
				// Resolve opportunistically; an invalid token on an
				// anonymous route is ignored, not rejected.
				if identity, ok := resolve(c, tokens, users); ok {
					SetIdentity(c, identity)
				}
				return next(c)
			}

			token, err := bearerToken(c)
			if err != nil {
				return err
			}

			userID, err := tokens.Validate(token)
			if err != nil {
				metrics.TokenValidationsTotal.WithLabelValues("invalid").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}
			metrics.TokenValidationsTotal.WithLabelValues("ok").Inc()

			user, err := users.FindByID(c.Request().Context(), userID)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					return echo.NewHTTPError(http.StatusUnauthorized, "user not found or inactive")
				}
				return err
			}
			if !user.Active {
				return echo.NewHTTPError(http.StatusUnauthorized, "user not found or inactive")
			}

			SetIdentity(c, domain.Identity{
				UserID:   user.ID,
				Username: user.Username,
				Role:     user.RoleName,
			})

			// Advisory telemetry off the request path; never fails the
			// request.
			if recorder != nil {
				recorder.Record(user.ID)
			}

			return next(c)
		}
	}
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(c echo.Context) (string, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "authentication token not provided")
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
	}
	return strings.TrimSpace(parts[1]), nil
}

// resolve attempts identity resolution without rejecting on failure.
func resolve(c echo.Context, tokens ports.TokenService, users ports.UserRepository) (domain.Identity, bool) {
	token, err := bearerToken(c)
	if err != nil {
		return domain.Identity{}, false
	}
	userID, err := tokens.Validate(token)
	if err != nil {
		return domain.Identity{}, false
	}
	user, err := users.FindByID(c.Request().Context(), userID)
	if err != nil || !user.Active {
		return domain.Identity{}, false
	}
	return domain.Identity{UserID: user.ID, Username: user.Username, Role: user.RoleName}, true
}

func isPublicPath(path string) bool {
	lower := strings.ToLower(path)
	for _, prefix := range publicPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	for _, suffix := range staticSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}
