package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ARYAMAN170/DontMessIt/database"
	"github.com/ARYAMAN170/DontMessIt/jobs"
	"github.com/ARYAMAN170/DontMessIt/models"
)

type ScanRequest struct {
	ImageURL string `json:"image_url"`
	Date     string `json:"date"` // defaults to today
	MessID   string `json:"mess_id"`
	MealType int    `json:"meal_type"`
}

// ScanPlate queues a plate-photo scan against the meal's menu. The result
// arrives on the SSE stream; the user reviews it and commits via the
// normal log endpoint, so the scanner never writes to the ledger itself.
func ScanPlate(w http.ResponseWriter, r *http.Request) {
	user, err := getUser(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ImageURL == "" {
		writeError(w, http.StatusBadRequest, "image_url is required")
		return
	}
	if req.MealType < models.MealBreakfast || req.MealType > models.MealDinner {
		writeError(w, http.StatusBadRequest, "meal_type must be 1-4")
		return
	}
	if req.Date == "" {
		req.Date = time.Now().Format("2006-01-02")
	}

	// Scans are constrained to the day's printed menu; without one there
	// is nothing for the model to match against.
	var menu models.DailyMenu
	if err := database.DB.Where("date = ? AND mess_id = ? AND meal_type = ?", req.Date, req.MessID, req.MealType).First(&menu).Error; err != nil {
		writeError(w, http.StatusNotFound, "No menu found for that meal")
		return
	}
	items := menu.Items()
	if len(items) == 0 {
		writeError(w, http.StatusNotFound, "Menu for that meal is empty")
		return
	}

	queued := jobs.GetWorker().Enqueue(jobs.ScanJob{
		UserID:   user.ID,
		Date:     req.Date,
		MealType: req.MealType,
		ImageURL: req.ImageURL,
		Menu:     items,
	})
	if !queued {
		writeError(w, http.StatusServiceUnavailable, "Scanner is busy, try again shortly")
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "queued"})
}
