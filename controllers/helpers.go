package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/ARYAMAN170/DontMessIt/database"
	"github.com/ARYAMAN170/DontMessIt/middleware"
	"github.com/ARYAMAN170/DontMessIt/models"
)

// getUser resolves the authenticated user from the request context,
// auto-provisioning a row the first time a subject is seen. Profile setup
// happens separately via onboarding.
func getUser(r *http.Request) (*models.User, error) {
	val := r.Context().Value(middleware.UserContextKey)
	subject, ok := val.(string)
	if !ok || subject == "" {
		return nil, http.ErrNoCookie
	}

	var user models.User
	if err := database.DB.Where("subject = ?", subject).FirstOrCreate(&user, models.User{Subject: subject}).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
