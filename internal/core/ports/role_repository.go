package ports

import (
	"context"

	"github.com/kardexlab/inventory-api/internal/core/domain"
)

// RoleRepository defines the persistence contract for roles.
type RoleRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Role, error)
	FindByName(ctx context.Context, name string) (*domain.Role, error)
	List(ctx context.Context) ([]domain.Role, error)
	Create(ctx context.Context, role *domain.Role) (*domain.Role, error)
}
