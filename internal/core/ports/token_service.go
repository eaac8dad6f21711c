package ports

import (
	"time"

	"github.com/kardexlab/inventory-api/internal/core/domain"
)

// TokenService issues and validates signed identity tokens.
type TokenService interface {
	// Issue returns a signed token asserting the user's id, username and
	// role, together with its expiry instant. Pure computation, no side
	// effects.
	Issue(user *domain.User) (token string, expiresAt time.Time, err error)
	// Validate returns the user id embedded in a valid token. Every
	// verification failure collapses to domain.ErrTokenInvalid so that
	// callers cannot distinguish failure modes.
	Validate(token string) (userID string, err error)
}

// PasswordHasher is the one-way credential hashing collaborator.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}
