package domain

import "errors"

// Authentication and authorization.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("user is deactivated")
	// ErrTokenInvalid is the single outcome for every token verification
	// failure: bad signature, expired, malformed, wrong issuer or audience.
	// Callers must not be able to tell these apart.
	ErrTokenInvalid     = errors.New("invalid or expired token")
	ErrSelfDeactivation = errors.New("cannot deactivate your own account")
	ErrPasswordMismatch = errors.New("current password is incorrect")
)

// Users and roles.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
	ErrRoleNotFound = errors.New("role not found")
	ErrRoleExists   = errors.New("role already exists")
)

// Catalogue and stock.
var (
	ErrProductNotFound   = errors.New("product not found")
	ErrProductExists     = errors.New("product code already exists")
	ErrInvalidMovement   = errors.New("invalid movement")
	ErrInsufficientStock = errors.New("insufficient stock")
)
