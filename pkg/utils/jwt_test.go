package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	employeeID := uuid.New()
	tenantID := uuid.New()

	token, err := manager.GenerateAccessToken(employeeID, tenantID, "sam@garage.test", "mechanic")
	if err != nil {
		t.Fatalf("generate token failed: %v", err)
	}

	claims, err := manager.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("validate token failed: %v", err)
	}
	if claims.EmployeeID != employeeID {
		t.Errorf("expected employee ID %s, got %s", employeeID, claims.EmployeeID)
	}
	if claims.TenantID != tenantID {
		t.Errorf("expected tenant ID %s, got %s", tenantID, claims.TenantID)
	}
	if claims.Role != "mechanic" {
		t.Errorf("expected role mechanic, got %s", claims.Role)
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	manager := NewJWTManager("secret-a", time.Hour, 24*time.Hour)
	other := NewJWTManager("secret-b", time.Hour, 24*time.Hour)

	token, err := manager.GenerateAccessToken(uuid.New(), uuid.New(), "sam@garage.test", "mechanic")
	if err != nil {
		t.Fatalf("generate token failed: %v", err)
	}

	if _, err := other.ValidateAccessToken(token); err == nil {
		t.Fatalf("expected token signed with a different secret to be rejected")
	}
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	manager := NewJWTManager("test-secret", -time.Minute, 24*time.Hour)

	token, err := manager.GenerateAccessToken(uuid.New(), uuid.New(), "sam@garage.test", "mechanic")
	if err != nil {
		t.Fatalf("generate token failed: %v", err)
	}

	if _, err := manager.ValidateAccessToken(token); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestGenerateRefreshToken(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour, 24*time.Hour)

	token, err := manager.GenerateRefreshToken(uuid.New())
	if err != nil {
		t.Fatalf("generate refresh token failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected non-empty refresh token")
	}
}

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Main Street Garage", "main-street-garage"},
		{"Bob's  Detailing!", "bobs-detailing"},
		{"--Already-Sluggy--", "already-sluggy"},
	}
	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
