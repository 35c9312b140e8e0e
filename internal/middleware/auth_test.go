package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aiteam4i/AITeamInterns/internal/crypto"
)

func protectedHandler(t *testing.T, wantUserID int64) http.Handler {
	t.Helper()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserIDFromContext(r.Context())
		if !ok {
			t.Error("UserIDFromContext() missing user ID in protected handler")
		}
		if userID != wantUserID {
			t.Errorf("UserIDFromContext() = %d, want %d", userID, wantUserID)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	handler := JWTAuth("test-secret")(protectedHandler(t, 0))

	req := httptest.NewRequest(http.MethodPost, "/api/query", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d for missing header", rec.Code, http.StatusUnauthorized)
	}
}

func TestJWTAuth_MalformedHeader(t *testing.T) {
	handler := JWTAuth("test-secret")(protectedHandler(t, 0))

	req := httptest.NewRequest(http.MethodPost, "/api/query", nil)
	req.Header.Set("Authorization", "Token abc123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d for malformed header", rec.Code, http.StatusUnauthorized)
	}
}

func TestJWTAuth_InvalidToken(t *testing.T) {
	handler := JWTAuth("test-secret")(protectedHandler(t, 0))

	req := httptest.NewRequest(http.MethodPost, "/api/query", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d for invalid token", rec.Code, http.StatusForbidden)
	}
}

func TestJWTAuth_WrongSecret(t *testing.T) {
	token, err := crypto.GenerateToken(42, "ada@x.com", "other-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	handler := JWTAuth("test-secret")(protectedHandler(t, 0))

	req := httptest.NewRequest(http.MethodPost, "/api/query", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d for token signed with wrong secret", rec.Code, http.StatusForbidden)
	}
}

func TestJWTAuth_ValidToken(t *testing.T) {
	token, err := crypto.GenerateToken(42, "ada@x.com", "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	handler := JWTAuth("test-secret")(protectedHandler(t, 42))

	req := httptest.NewRequest(http.MethodPost, "/api/query", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d for valid token", rec.Code, http.StatusOK)
	}
}
