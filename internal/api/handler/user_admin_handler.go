package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/kardexlab/inventory-api/internal/core/ports"
)

// UserAdminHandler exposes the administrator-only user and role endpoints.
// All routes carry the Admin policy; the self-protection rule is enforced in
// the service using the acting admin's identity.
type UserAdminHandler struct {
	admin ports.UserAdminService
}

func NewUserAdminHandler(admin ports.UserAdminService) *UserAdminHandler {
	return &UserAdminHandler{admin: admin}
}

type createUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"full_name,omitempty" validate:"omitempty,max=100"`
	RoleID   string `json:"role_id,omitempty"`
}

type createRoleRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=50"`
	Description string `json:"description,omitempty" validate:"omitempty,max=200"`
}

type assignRoleRequest struct {
	UserID string `json:"user_id" validate:"required"`
	RoleID string `json:"role_id" validate:"required"`
}

// ListUsers returns every account with its role name.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.User
// @Failure      403  {object}  map[string]string
// @Router       /api/auth/users [get]
func (h *UserAdminHandler) ListUsers(c echo.Context) error {
	users, err := h.admin.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// CreateUser creates an account with an explicit role.
//
// @Summary      Create user with role
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "User details"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Router       /api/auth/users [post]
func (h *UserAdminHandler) CreateUser(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.admin.CreateUser(c.Request().Context(), ports.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	}, req.RoleID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

// SetUserStatus activates or deactivates an account. Self-deactivation is
// rejected.
//
// @Summary      Activate or deactivate a user
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id      path      string  true  "User id"
// @Param        active  query     bool    true  "Desired active state"
// @Success      200     {object}  map[string]string
// @Failure      400     {object}  map[string]string
// @Failure      404     {object}  map[string]string
// @Router       /api/auth/users/{id}/status [put]
func (h *UserAdminHandler) SetUserStatus(c echo.Context) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	active, err := strconv.ParseBool(c.QueryParam("active"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "active must be true or false")
	}

	user, err := h.admin.SetUserStatus(c.Request().Context(), identity.UserID, c.Param("id"), active)
	if err != nil {
		return err
	}

	msg := "user deactivated"
	if user.Active {
		msg = "user activated"
	}
	return c.JSON(http.StatusOK, messageResponse{Mensaje: msg})
}

// ListRoles returns every role with its user count.
//
// @Summary      List roles
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   ports.RoleSummary
// @Failure      403  {object}  map[string]string
// @Router       /api/auth/roles [get]
func (h *UserAdminHandler) ListRoles(c echo.Context) error {
	roles, err := h.admin.ListRoles(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, roles)
}

// CreateRole creates a role with a unique name.
//
// @Summary      Create role
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createRoleRequest  true  "Role details"
// @Success      201   {object}  domain.Role
// @Failure      400   {object}  map[string]string
// @Router       /api/auth/roles [post]
func (h *UserAdminHandler) CreateRole(c echo.Context) error {
	var req createRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	role, err := h.admin.CreateRole(c.Request().Context(), ports.CreateRoleInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, role)
}

// AssignRole moves a user to a different role.
//
// @Summary      Assign role to user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      assignRoleRequest  true  "User and role ids"
// @Success      200   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/auth/roles/assign [put]
func (h *UserAdminHandler) AssignRole(c echo.Context) error {
	var req assignRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.admin.AssignRole(c.Request().Context(), req.UserID, req.RoleID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{
		Mensaje: fmt.Sprintf("role %q assigned to user %q", user.RoleName, user.Username),
	})
}
