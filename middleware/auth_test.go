package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": subject,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func authProbe(t *testing.T, authHeader string) (*httptest.ResponseRecorder, string) {
	t.Helper()

	var gotSubject string
	handler := AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSubject, _ = r.Context().Value(UserContextKey).(string)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/profile", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec, gotSubject
}

func TestAuthMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	t.Run("valid token passes subject through", func(t *testing.T) {
		rec, subject := authProbe(t, "Bearer "+signToken(t, testSecret, "user-42"))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
		}
		if subject != "user-42" {
			t.Errorf("subject = %q, want user-42", subject)
		}
	})

	t.Run("missing header rejected", func(t *testing.T) {
		rec, _ := authProbe(t, "")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("malformed header rejected", func(t *testing.T) {
		rec, _ := authProbe(t, "Token abc")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("wrong signature rejected", func(t *testing.T) {
		rec, _ := authProbe(t, "Bearer "+signToken(t, "other-secret", "user-42"))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("token without subject rejected", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		signed, _ := token.SignedString([]byte(testSecret))
		rec, _ := authProbe(t, "Bearer "+signed)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("expired token rejected", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": "user-42",
			"exp": time.Now().Add(-time.Hour).Unix(),
		})
		signed, _ := token.SignedString([]byte(testSecret))
		rec, _ := authProbe(t, "Bearer "+signed)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})
}

func TestAPIKeyMiddleware(t *testing.T) {
	t.Setenv("INGESTION_API_KEY", "mess-office-key")

	handler := APIKeyMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("correct key passes", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/ingest/menu", nil)
		req.Header.Set("X-API-Key", "mess-office-key")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
	})

	t.Run("wrong key rejected", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/ingest/menu", nil)
		req.Header.Set("X-API-Key", "nope")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", rec.Code)
		}
	})

	t.Run("unconfigured key rejects everything", func(t *testing.T) {
		t.Setenv("INGESTION_API_KEY", "")
		req := httptest.NewRequest("POST", "/ingest/menu", nil)
		req.Header.Set("X-API-Key", "")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", rec.Code)
		}
	})
}
