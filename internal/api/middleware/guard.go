package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kardexlab/inventory-api/internal/core/domain"
)

// Access is the declarative policy tag attached to a route.
type Access string

const (
	// Anonymous marks a route the identity middleware must never reject.
	Anonymous Access = "anonymous"
	// Authenticated requires a resolved identity.
	Authenticated Access = "authenticated"
	// Admin requires a resolved identity holding the Administrator role.
	Admin Access = "admin"
)

// PolicyRegistry maps registered routes (method + echo route path) to their
// access policy. Routes without a tag default to Authenticated, so a
// forgotten tag fails closed.
type PolicyRegistry struct {
	policies map[string]Access
}

func NewPolicyRegistry() *PolicyRegistry {
	return &PolicyRegistry{policies: make(map[string]Access)}
}

// Tag records the policy for a route. Called once per route at wiring time;
// the registry is read-only afterwards.
func (r *PolicyRegistry) Tag(method, path string, access Access) {
	r.policies[method+" "+path] = access
}

// Lookup returns the policy for a matched route.
func (r *PolicyRegistry) Lookup(method, path string) Access {
	if access, ok := r.policies[method+" "+path]; ok {
		return access
	}
	return Authenticated
}

const identityContextKey = "identity"

// SetIdentity publishes the request identity context. Owned by the identity
// middleware; handlers and guards only read it.
func SetIdentity(c echo.Context, identity domain.Identity) {
	c.Set(identityContextKey, identity)
}

// IdentityFrom returns the request identity context, if present. Absence
// means the request is anonymous.
func IdentityFrom(c echo.Context) (domain.Identity, bool) {
	identity, ok := c.Get(identityContextKey).(domain.Identity)
	return identity, ok
}

// Require returns the route-level guard for an access policy. Guards run
// after the identity middleware has had the chance to populate the context
// and operate purely on it. Authentication is always checked before role so
// that 401 and 403 stay distinguishable.
func Require(access Access) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if access == Anonymous {
				return next(c)
			}

			identity, ok := IdentityFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			if access == Admin && !identity.IsAdmin() {
				return echo.NewHTTPError(http.StatusForbidden, "administrator role required")
			}
			return next(c)
		}
	}
}
