package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kardexlab/inventory-api/internal/core/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:       "user-1",
		Username: "alice",
		RoleName: domain.RoleAdministrator,
	}
}

func TestTokenService_RoundTrip(t *testing.T) {
	svc := NewTokenService("secret", "inventory-api", "inventory-api-clients", time.Hour)

	token, expiresAt, err := svc.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if remaining := time.Until(expiresAt); remaining < 59*time.Minute || remaining > time.Hour {
		t.Fatalf("unexpected expiry: %v from now", remaining)
	}

	userID, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if userID != "user-1" {
		t.Fatalf("expected user-1, got %s", userID)
	}
}

func TestTokenService_ClaimsPayload(t *testing.T) {
	svc := NewTokenService("secret", "inventory-api", "inventory-api-clients", time.Hour)

	token, _, err := svc.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["sub"] != "user-1" {
		t.Fatalf("expected subject user-1, got %v", claims["sub"])
	}
	if claims["username"] != "alice" {
		t.Fatalf("expected username alice, got %v", claims["username"])
	}
	if claims["role"] != domain.RoleAdministrator {
		t.Fatalf("expected role %s, got %v", domain.RoleAdministrator, claims["role"])
	}
	if claims["iss"] != "inventory-api" {
		t.Fatalf("expected issuer inventory-api, got %v", claims["iss"])
	}
}

func TestTokenService_Expired(t *testing.T) {
	svc := NewTokenService("secret", "inventory-api", "inventory-api-clients", time.Hour)

	token, _, err := svc.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	// Move the validation clock one second past expiry. No leeway applies.
	svc.now = func() time.Time { return time.Now().Add(time.Hour + time.Second) }
	if _, err := svc.Validate(token); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestTokenService_ValidUntilExpiry(t *testing.T) {
	svc := NewTokenService("secret", "inventory-api", "inventory-api-clients", time.Hour)

	token, _, err := svc.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	svc.now = func() time.Time { return time.Now().Add(time.Hour - time.Second) }
	if _, err := svc.Validate(token); err != nil {
		t.Fatalf("token should still be valid just before expiry: %v", err)
	}
}

func TestTokenService_WrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-a", "inventory-api", "inventory-api-clients", time.Hour)
	verifier := NewTokenService("secret-b", "inventory-api", "inventory-api-clients", time.Hour)

	token, _, err := issuer.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if _, err := verifier.Validate(token); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestTokenService_WrongIssuerOrAudience(t *testing.T) {
	issuer := NewTokenService("secret", "other-service", "inventory-api-clients", time.Hour)
	verifier := NewTokenService("secret", "inventory-api", "inventory-api-clients", time.Hour)

	token, _, err := issuer.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if _, err := verifier.Validate(token); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for wrong issuer, got %v", err)
	}

	issuer = NewTokenService("secret", "inventory-api", "other-clients", time.Hour)
	token, _, err = issuer.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if _, err := verifier.Validate(token); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for wrong audience, got %v", err)
	}
}

func TestTokenService_MalformedToken(t *testing.T) {
	svc := NewTokenService("secret", "inventory-api", "inventory-api-clients", time.Hour)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		if _, err := svc.Validate(token); !errors.Is(err, domain.ErrTokenInvalid) {
			t.Fatalf("expected ErrTokenInvalid for %q, got %v", token, err)
		}
	}
}

func TestTokenService_RejectsUnsignedToken(t *testing.T) {
	svc := NewTokenService("secret", "inventory-api", "inventory-api-clients", time.Hour)

	claims := identityClaims{
		Username: "alice",
		Role:     domain.RoleAdministrator,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			Issuer:    "inventory-api",
			Audience:  jwt.ClaimStrings{"inventory-api-clients"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("signing with none failed: %v", err)
	}

	if _, err := svc.Validate(token); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for alg=none, got %v", err)
	}
}
