package ports

import (
	"context"
	"time"

	"github.com/kardexlab/inventory-api/internal/core/domain"
)

// UserRepository defines the persistence contract for user accounts.
// Every call is assumed atomic; uniqueness of email and username is
// enforced by the store.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	SetActive(ctx context.Context, id string, active bool) error
	SetRole(ctx context.Context, id, roleID string) error
	// UpdateLastAccess is advisory telemetry: lost updates are acceptable
	// and callers treat failures as non-fatal.
	UpdateLastAccess(ctx context.Context, id string, at time.Time) error
	CountByRole(ctx context.Context, roleID string) (int64, error)
}
