package middleware

import (
	"testing"
)

func TestGetJWTSecret(t *testing.T) {
	t.Run("configured secret wins", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "configured-secret")
		t.Setenv("GIN_MODE", "release")
		if got := string(GetJWTSecret()); got != "configured-secret" {
			t.Errorf("GetJWTSecret() = %q, want configured value", got)
		}
	})

	t.Run("development fallback when unset", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		t.Setenv("GIN_MODE", "debug")
		if got := string(GetJWTSecret()); got == "" {
			t.Error("GetJWTSecret() returned empty secret in development mode")
		}
	})

	t.Run("panics when unset in release mode", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		t.Setenv("GIN_MODE", "release")
		defer func() {
			if recover() == nil {
				t.Error("GetJWTSecret() did not panic without a secret in release mode")
			}
		}()
		GetJWTSecret()
	})
}
