package controllers

import (
	"io"
	"net/http"
	"os"
	"time"

	"github.com/ARYAMAN170/DontMessIt/database"
	"github.com/ARYAMAN170/DontMessIt/extractor"
	"github.com/ARYAMAN170/DontMessIt/logger"
	"github.com/ARYAMAN170/DontMessIt/models"
)

// IngestMenu accepts a mess menu PDF (multipart field "menu", plus "date"
// and "mess_id") and upserts one DailyMenu row per meal section found in
// it. API-key protected; used by the mess office upload script.
func IngestMenu(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	date := r.FormValue("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}
	messID := r.FormValue("mess_id")
	validMess := false
	for _, m := range models.MessOptions {
		if m.ID == messID {
			validMess = true
			break
		}
	}
	if !validMess {
		writeError(w, http.StatusBadRequest, "Invalid mess_id")
		return
	}

	file, _, err := r.FormFile("menu")
	if err != nil {
		writeError(w, http.StatusBadRequest, "menu file is required")
		return
	}
	defer file.Close()

	// The pdf reader wants a seekable file on disk.
	tmp, err := os.CreateTemp("", "menu-*.pdf")
	if err != nil {
		logger.Error("Failed to create temp file", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to process upload")
		return
	}
	defer os.Remove(tmp.Name())
	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		logger.Error("Failed to write temp file", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to process upload")
		return
	}
	tmp.Close()

	meals, err := extractor.ParseMenu(tmp.Name())
	if err != nil {
		logger.Error("Failed to parse menu PDF", "error", err)
		writeError(w, http.StatusUnprocessableEntity, "Could not parse menu PDF")
		return
	}
	if len(meals) == 0 {
		writeError(w, http.StatusUnprocessableEntity, "No meal sections found in PDF")
		return
	}

	ingested := make(map[string]int, len(meals))
	for mealType, items := range meals {
		menu := models.DailyMenu{Date: date, MealType: mealType, MessID: messID}
		menu.SetItems(items)

		// Upsert on the (date, meal, mess) slot; re-uploads replace.
		var existing models.DailyMenu
		err := database.DB.Where("date = ? AND meal_type = ? AND mess_id = ?", date, mealType, messID).First(&existing).Error
		if err == nil {
			existing.RawItems = menu.RawItems
			err = database.DB.Save(&existing).Error
		} else {
			err = database.DB.Create(&menu).Error
		}
		if err != nil {
			logger.Error("Failed to save menu", "date", date, "meal_type", mealType, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to save menu")
			return
		}
		ingested[models.MealName(mealType)] = len(items)
	}

	logger.Info("Menu ingested", "date", date, "mess_id", messID, "meals", len(meals))
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"status": "ingested",
		"date":   date,
		"mess":   messID,
		"meals":  ingested,
	})
}
