package ports

import (
	"context"

	"github.com/kardexlab/inventory-api/internal/core/domain"
)

// RoleSummary is a role together with how many users currently hold it.
type RoleSummary struct {
	Role      domain.Role `json:"role"`
	UserCount int64       `json:"user_count"`
}

// CreateRoleInput carries the data for a new role.
type CreateRoleInput struct {
	Name        string
	Description string
}

// UserAdminService covers administrator-only user and role management.
// All operations assume the Admin guard has already run; SetUserStatus
// additionally enforces the self-protection rule using the acting admin's
// identity.
type UserAdminService interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	CreateUser(ctx context.Context, input RegisterInput, roleID string) (*domain.User, error)
	SetUserStatus(ctx context.Context, actorID, userID string, active bool) (*domain.User, error)
	ListRoles(ctx context.Context) ([]RoleSummary, error)
	CreateRole(ctx context.Context, input CreateRoleInput) (*domain.Role, error)
	AssignRole(ctx context.Context, userID, roleID string) (*domain.User, error)
}
