package domain

import "time"

const (
	RoleAdministrator = "Administrator"
	RoleUser          = "User"
)

// User models an account in the system. Accounts are never hard-deleted;
// deactivation flips Active instead.
type User struct {
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	FullName     string     `json:"full_name,omitempty"`
	Active       bool       `json:"active"`
	RoleID       string     `json:"role_id"`
	RoleName     string     `json:"role"`
	CreatedAt    time.Time  `json:"created_at"`
	LastAccess   *time.Time `json:"last_access,omitempty"`
}

// Role is a named access level. Two roles are seeded at bootstrap:
// Administrator and User.
type Role struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// IsAdmin reports whether the user carries the Administrator role.
func (u *User) IsAdmin() bool {
	return u.RoleName == RoleAdministrator
}
