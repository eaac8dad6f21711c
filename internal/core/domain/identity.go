package domain

// Identity is the request-scoped record of the authenticated caller. It is
// built by the identity middleware after token validation and user lookup,
// lives only for the duration of one request, and is never cached or shared.
type Identity struct {
	UserID   string
	Username string
	Role     string
}

// IsAdmin reports whether the caller holds the Administrator role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdministrator
}
