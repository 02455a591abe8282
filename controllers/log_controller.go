package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/ARYAMAN170/DontMessIt/database"
	"github.com/ARYAMAN170/DontMessIt/engine"
	"github.com/ARYAMAN170/DontMessIt/logger"
	"github.com/ARYAMAN170/DontMessIt/models"
	"github.com/go-chi/chi/v5"
)

type CreateLogRequest struct {
	Date     string              `json:"date"` // defaults to today
	MealType int                 `json:"meal_type"`
	Source   string              `json:"source"` // manual (default) or scan
	Items    []engine.LoggedItem `json:"items"`
}

// CreateLog commits a tally — a manual count from the menu explorer or a
// user-confirmed plate scan — to the day's consumed ledger. Each call
// appends its delta; there is no dedup, so submitting the same plate
// twice counts twice.
func CreateLog(w http.ResponseWriter, r *http.Request) {
	user, err := getUser(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req CreateLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Items) == 0 {
		writeError(w, http.StatusBadRequest, "items is required")
		return
	}
	if req.Date == "" {
		req.Date = time.Now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date")
		return
	}
	if req.Source != "scan" {
		req.Source = "manual"
	}

	var dictionary []models.FoodItem
	if err := database.DB.Find(&dictionary).Error; err != nil {
		logger.Error("Failed to fetch food dictionary", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch food dictionary")
		return
	}

	delta := engine.MergeLog(req.Items, dictionary)

	itemsJSON, _ := json.Marshal(req.Items)
	entry := models.MealLog{
		UserID:   user.ID,
		Date:     req.Date,
		MealType: req.MealType,
		Source:   req.Source,
		Calories: delta.Calories,
		Protein:  delta.Protein,
		Items:    string(itemsJSON),
		LoggedAt: time.Now(),
	}
	if err := database.DB.Create(&entry).Error; err != nil {
		logger.Error("Failed to save meal log", "user_id", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to save meal log")
		return
	}

	logger.Info("Meal logged", "user_id", user.ID, "source", req.Source,
		"calories", delta.Calories, "protein", delta.Protein)

	consumed := sumConsumed(user.ID, req.Date)

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"log_id":   entry.ID,
		"delta":    delta,
		"consumed": consumed,
	})
}

// sumConsumed totals the day's ledger. A new date naturally starts from
// zero — that is the whole day-rollover story.
func sumConsumed(userID uint, date string) engine.ConsumedDelta {
	var logs []models.MealLog
	database.DB.Where("user_id = ? AND date = ?", userID, date).Find(&logs)

	var total engine.ConsumedDelta
	for _, l := range logs {
		total.Calories += l.Calories
		total.Protein += l.Protein
	}
	return total
}

// GetDailyProgress returns consumed vs. goal for the day, the number the
// header's macro rings are drawn from.
func GetDailyProgress(w http.ResponseWriter, r *http.Request) {
	user, err := getUser(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date")
		return
	}

	var logs []models.MealLog
	if err := database.DB.Where("user_id = ? AND date = ?", user.ID, date).Order("logged_at asc").Find(&logs).Error; err != nil {
		logger.Error("Failed to fetch meal logs", "user_id", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch meal logs")
		return
	}

	consumed := engine.ConsumedDelta{}
	for _, l := range logs {
		consumed.Calories += l.Calories
		consumed.Protein += l.Protein
	}

	goals, _ := loadGoals(user.ID)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"date":     date,
		"consumed": consumed,
		"goals": map[string]float64{
			"calories": goals.DailyCalories,
			"protein":  goals.DailyProtein,
		},
		"remaining": map[string]float64{
			"calories": goals.DailyCalories - consumed.Calories,
			"protein":  goals.DailyProtein - consumed.Protein,
		},
		"logs": logs,
	})
}

// DeleteLog removes a ledger entry (mis-tap recovery). The day's totals
// are recomputed from the remaining rows on the next read.
func DeleteLog(w http.ResponseWriter, r *http.Request) {
	user, err := getUser(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	logID, err := strconv.ParseUint(chi.URLParam(r, "log_id"), 10, 32)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid log ID")
		return
	}

	result := database.DB.Where("id = ? AND user_id = ?", logID, user.ID).Delete(&models.MealLog{})
	if result.Error != nil {
		logger.Error("Failed to delete meal log", "log_id", logID, "error", result.Error)
		writeError(w, http.StatusInternalServerError, "Failed to delete meal log")
		return
	}
	if result.RowsAffected == 0 {
		writeError(w, http.StatusNotFound, "Meal log not found")
		return
	}

	logger.Info("Meal log deleted", "user_id", user.ID, "log_id", logID)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Meal log deleted"})
}
