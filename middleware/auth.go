package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/ARYAMAN170/DontMessIt/config"
	"github.com/golang-jwt/jwt/v4"
)

type contextKey string

// UserContextKey carries the authenticated subject (token sub claim)
// through the request context.
const UserContextKey contextKey = "user_subject"

// AuthMiddleware validates the bearer token on protected routes. Tokens
// are HS256 JWTs issued by the external auth provider (magic link /
// OAuth); this service only verifies the signature and pulls the subject.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Unauthorized: No Authorization header", http.StatusUnauthorized)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			http.Error(w, "Unauthorized: Invalid Authorization format", http.StatusUnauthorized)
			return
		}

		subject, err := verifyToken(parts[1])
		if err != nil {
			http.Error(w, "Unauthorized: "+err.Error(), http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func verifyToken(tokenString string) (string, error) {
	secret := config.GetEnv("JWT_SECRET", "")
	if secret == "" {
		return "", jwt.ErrTokenUnverifiable
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", jwt.ErrTokenInvalidClaims
	}
	subject, _ := claims["sub"].(string)
	if subject == "" {
		return "", errors.New("token has no subject claim")
	}
	return subject, nil
}

// APIKeyMiddleware protects ingestion and dictionary-admin endpoints used
// by mess staff tooling. Checks X-API-Key header.
func APIKeyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey := r.Header.Get("X-API-Key")
		expectedKey := config.GetEnv("INGESTION_API_KEY", "")

		if expectedKey == "" || apiKey != expectedKey {
			http.Error(w, "Forbidden: Invalid API Key", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}
