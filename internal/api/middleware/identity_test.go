package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kardexlab/inventory-api/internal/core/domain"
)

type fakeTokens struct {
	valid map[string]string // token -> user id
}

func (f *fakeTokens) Issue(user *domain.User) (string, time.Time, error) {
	return "token-" + user.ID, time.Now().Add(time.Hour), nil
}

func (f *fakeTokens) Validate(token string) (string, error) {
	if id, ok := f.valid[token]; ok {
		return id, nil
	}
	return "", domain.ErrTokenInvalid
}

type fakeUsers struct {
	users map[string]*domain.User
}

func (f *fakeUsers) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := f.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUsers) FindByEmail(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (f *fakeUsers) FindByUsername(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (f *fakeUsers) List(context.Context) ([]domain.User, error) { return nil, nil }

func (f *fakeUsers) Create(_ context.Context, u *domain.User) (*domain.User, error) { return u, nil }

func (f *fakeUsers) UpdatePassword(context.Context, string, string) error { return nil }

func (f *fakeUsers) SetActive(context.Context, string, bool) error { return nil }

func (f *fakeUsers) SetRole(context.Context, string, string) error { return nil }

func (f *fakeUsers) UpdateLastAccess(context.Context, string, time.Time) error { return nil }

func (f *fakeUsers) CountByRole(context.Context, string) (int64, error) { return 0, nil }

type recordedAccess struct {
	ids []string
}

func (r *recordedAccess) Record(userID string) { r.ids = append(r.ids, userID) }

// newTestServer wires a minimal echo instance the way the router does: the
// identity middleware is global, guards are per route.
func newTestServer(tokens *fakeTokens, users *fakeUsers, recorder AccessRecorder) (*echo.Echo, *PolicyRegistry) {
	e := echo.New()
	policies := NewPolicyRegistry()
	e.Use(Identity(tokens, users, policies, recorder))

	echoed := func(c echo.Context) error {
		if identity, ok := IdentityFrom(c); ok {
			return c.JSON(http.StatusOK, identity)
		}
		return c.NoContent(http.StatusNoContent)
	}

	policies.Tag(http.MethodGet, "/protected", Authenticated)
	e.GET("/protected", echoed, Require(Authenticated))

	policies.Tag(http.MethodGet, "/admin-only", Admin)
	e.GET("/admin-only", echoed, Require(Admin))

	policies.Tag(http.MethodPost, "/open", Anonymous)
	e.POST("/open", echoed, Require(Anonymous))

	e.GET("/health", echoed)

	return e, policies
}

func activeUser() *domain.User {
	return &domain.User{
		ID:       "user-1",
		Username: "alice",
		Active:   true,
		RoleName: domain.RoleUser,
	}
}

func do(e *echo.Echo, method, path, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestIdentity_ValidToken(t *testing.T) {
	tokens := &fakeTokens{valid: map[string]string{"good": "user-1"}}
	users := &fakeUsers{users: map[string]*domain.User{"user-1": activeUser()}}
	recorder := &recordedAccess{}
	e, _ := newTestServer(tokens, users, recorder)

	rec := do(e, http.MethodGet, "/protected", "Bearer good")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(recorder.ids) != 1 || recorder.ids[0] != "user-1" {
		t.Fatalf("expected last-access record for user-1, got %v", recorder.ids)
	}
}

func TestIdentity_MissingHeader(t *testing.T) {
	e, _ := newTestServer(&fakeTokens{}, &fakeUsers{}, nil)

	rec := do(e, http.MethodGet, "/protected", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestIdentity_MalformedHeader(t *testing.T) {
	e, _ := newTestServer(&fakeTokens{valid: map[string]string{"good": "user-1"}}, &fakeUsers{}, nil)

	for _, header := range []string{"good", "Basic good", "Bearer "} {
		rec := do(e, http.MethodGet, "/protected", header)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 for header %q, got %d", header, rec.Code)
		}
	}
}

func TestIdentity_InvalidToken(t *testing.T) {
	e, _ := newTestServer(&fakeTokens{}, &fakeUsers{}, nil)

	rec := do(e, http.MethodGet, "/protected", "Bearer forged")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestIdentity_UnknownUser(t *testing.T) {
	tokens := &fakeTokens{valid: map[string]string{"good": "ghost"}}
	e, _ := newTestServer(tokens, &fakeUsers{users: map[string]*domain.User{}}, nil)

	rec := do(e, http.MethodGet, "/protected", "Bearer good")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestIdentity_InactiveUser(t *testing.T) {
	inactive := activeUser()
	inactive.Active = false
	tokens := &fakeTokens{valid: map[string]string{"good": "user-1"}}
	users := &fakeUsers{users: map[string]*domain.User{"user-1": inactive}}
	recorder := &recordedAccess{}
	e, _ := newTestServer(tokens, users, recorder)

	rec := do(e, http.MethodGet, "/protected", "Bearer good")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if len(recorder.ids) != 0 {
		t.Fatalf("rejected request must not record last access, got %v", recorder.ids)
	}
}

func TestIdentity_AnonymousRouteIgnoresInvalidToken(t *testing.T) {
	e, _ := newTestServer(&fakeTokens{}, &fakeUsers{}, nil)

	rec := do(e, http.MethodPost, "/open", "Bearer forged")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestIdentity_AnonymousRouteResolvesValidToken(t *testing.T) {
	tokens := &fakeTokens{valid: map[string]string{"good": "user-1"}}
	users := &fakeUsers{users: map[string]*domain.User{"user-1": activeUser()}}
	e, _ := newTestServer(tokens, users, nil)

	rec := do(e, http.MethodPost, "/open", "Bearer good")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with resolved identity, got %d", rec.Code)
	}
}

func TestIdentity_PublicPathBypass(t *testing.T) {
	e, _ := newTestServer(&fakeTokens{}, &fakeUsers{}, nil)

	rec := do(e, http.MethodGet, "/health", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestIdentity_BearerSchemeIsCaseInsensitive(t *testing.T) {
	tokens := &fakeTokens{valid: map[string]string{"good": "user-1"}}
	users := &fakeUsers{users: map[string]*domain.User{"user-1": activeUser()}}
	e, _ := newTestServer(tokens, users, nil)

	rec := do(e, http.MethodGet, "/protected", "bearer good")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
