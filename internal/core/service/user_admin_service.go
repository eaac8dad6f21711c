package service

import (
	"context"
	"errors"
	"time"

	"github.com/kardexlab/inventory-api/internal/core/domain"
	"github.com/kardexlab/inventory-api/internal/core/ports"
)

// UserAdminService implements administrator-only user and role management.
type UserAdminService struct {
	users  ports.UserRepository
	roles  ports.RoleRepository
	hasher ports.PasswordHasher
}

func NewUserAdminService(users ports.UserRepository, roles ports.RoleRepository, hasher ports.PasswordHasher) *UserAdminService {
	return &UserAdminService{users: users, roles: roles, hasher: hasher}
}

func (s *UserAdminService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// CreateUser creates an account with an explicit role. An empty roleID
// falls back to the default User role.
func (s *UserAdminService) CreateUser(ctx context.Context, input ports.RegisterInput, roleID string) (*domain.User, error) {
	if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if _, err := s.users.FindByUsername(ctx, input.Username); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	var role *domain.Role
	var err error
	if roleID == "" {
		role, err = s.roles.FindByName(ctx, domain.RoleUser)
	} else {
		role, err = s.roles.FindByID(ctx, roleID)
	}
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	return s.users.Create(ctx, &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		FullName:     input.FullName,
		Active:       true,
		RoleID:       role.ID,
		RoleName:     role.Name,
		CreatedAt:    time.Now().UTC(),
	})
}

// SetUserStatus activates or deactivates an account. An administrator can
// never deactivate the account matching their own identity.
func (s *UserAdminService) SetUserStatus(ctx context.Context, actorID, userID string, active bool) (*domain.User, error) {
	if userID == actorID && !active {
		return nil, domain.ErrSelfDeactivation
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.users.SetActive(ctx, user.ID, active); err != nil {
		return nil, err
	}
	user.Active = active
	return user, nil
}

func (s *UserAdminService) ListRoles(ctx context.Context) ([]ports.RoleSummary, error) {
	roles, err := s.roles.List(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]ports.RoleSummary, 0, len(roles))
	for _, role := range roles {
		count, err := s.users.CountByRole(ctx, role.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, ports.RoleSummary{Role: role, UserCount: count})
	}
	return summaries, nil
}

func (s *UserAdminService) CreateRole(ctx context.Context, input ports.CreateRoleInput) (*domain.Role, error) {
	if _, err := s.roles.FindByName(ctx, input.Name); err == nil {
		return nil, domain.ErrRoleExists
	} else if !errors.Is(err, domain.ErrRoleNotFound) {
		return nil, err
	}

	return s.roles.Create(ctx, &domain.Role{
		Name:        input.Name,
		Description: input.Description,
		CreatedAt:   time.Now().UTC(),
	})
}

// AssignRole moves a user to a different role. Every user holds exactly one
// role at any time.
func (s *UserAdminService) AssignRole(ctx context.Context, userID, roleID string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	role, err := s.roles.FindByID(ctx, roleID)
	if err != nil {
		return nil, err
	}

	if err := s.users.SetRole(ctx, user.ID, role.ID); err != nil {
		return nil, err
	}
	user.RoleID = role.ID
	user.RoleName = role.Name
	return user, nil
}
