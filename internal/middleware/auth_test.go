package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/CtIaMbaCK/betterus-server/internal/auth"
	"github.com/CtIaMbaCK/betterus-server/internal/constants"
)

func claimsEcho(t *testing.T, gotUserID *string) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			t.Error("Expected claims on the request context")
			return
		}
		*gotUserID = claims.UserID()
	})
}

func TestAuthMiddleware_BearerToken(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	signed, err := tokens.Issue("user-123", constants.RoleVolunteer)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	var gotUserID string
	handler := AuthMiddleware(tokens, nil)(claimsEcho(t, &gotUserID))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if gotUserID != "user-123" {
		t.Errorf("Expected user-123 on the context, got %q", gotUserID)
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	handler := AuthMiddleware(tokens, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("Handler must not run for an invalid token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_MissingCredentials(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	handler := AuthMiddleware(tokens, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("Handler must not run without credentials")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401, got %d", rec.Code)
	}
}

func TestRequireRole(t *testing.T) {
	var called bool
	handler := IsAdminMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	// A volunteer hitting an admin route.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/volunteers", nil)
	ctx := auth.SetUserClaims(req.Context(), &auth.JWTClaims{UserUUID: "u1", RoleValue: constants.RoleVolunteer})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req.WithContext(ctx))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("Expected 403 for a volunteer, got %d", rec.Code)
	}
	if called {
		t.Error("Handler must not run for the wrong role")
	}

	// An admin passes through.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/admin/volunteers", nil)
	ctx = auth.SetUserClaims(req.Context(), &auth.JWTClaims{UserUUID: "u2", RoleValue: constants.RoleAdmin})
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req.WithContext(ctx))

	if rec.Code != http.StatusOK || !called {
		t.Fatalf("Expected the admin through, got %d", rec.Code)
	}

	// No claims at all.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/admin/volunteers", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401 without claims, got %d", rec.Code)
	}
}
