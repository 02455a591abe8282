package controllers

import (
	"net/http"
	"time"

	"github.com/ARYAMAN170/DontMessIt/database"
	"github.com/ARYAMAN170/DontMessIt/logger"
	"github.com/ARYAMAN170/DontMessIt/models"
)

// GetMesses lists the selectable dining halls.
func GetMesses(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.MessOptions)
}

// menuQuery validates the date/mess pair every menu-ish endpoint takes.
// Date defaults to today (mess timezone is the server timezone).
func menuQuery(r *http.Request) (date, messID string, ok bool) {
	date = r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		return "", "", false
	}

	messID = r.URL.Query().Get("mess_id")
	for _, m := range models.MessOptions {
		if m.ID == messID {
			return date, messID, true
		}
	}
	return "", "", false
}

// GetMenus returns the day's menu rows for a mess, ordered by meal.
// An empty day is an empty list, not an error.
func GetMenus(w http.ResponseWriter, r *http.Request) {
	date, messID, ok := menuQuery(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid or missing date/mess_id")
		return
	}

	var menus []models.DailyMenu
	if err := database.DB.Where("date = ? AND mess_id = ?", date, messID).Order("meal_type asc").Find(&menus).Error; err != nil {
		logger.Error("Failed to fetch menus", "date", date, "mess_id", messID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch menus")
		return
	}

	writeJSON(w, http.StatusOK, menus)
}
