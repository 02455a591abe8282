package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/ARYAMAN170/DontMessIt/database"
	"github.com/ARYAMAN170/DontMessIt/logger"
	"github.com/ARYAMAN170/DontMessIt/models"
	"github.com/ARYAMAN170/DontMessIt/services"
)

type OnboardingRequest struct {
	HeightCM       int     `json:"height_cm"`
	WeightKG       float64 `json:"weight_kg"`
	TargetWeightKG float64 `json:"target_weight_kg"`
	WeeksToGoal    int     `json:"weeks_to_goal"`
	DietPreference string  `json:"diet_preference"`
}

// GetProfile returns the user's profile, or is_onboarded=false if they
// haven't completed onboarding yet.
func GetProfile(w http.ResponseWriter, r *http.Request) {
	user, err := getUser(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var profile models.Profile
	if err := database.DB.Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{"is_onboarded": false})
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// Onboard computes daily macro goals from the onboarding measurements and
// saves the profile.
func Onboard(w http.ResponseWriter, r *http.Request) {
	user, err := getUser(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req OnboardingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	goals, err := services.ComputeMacroGoals(req.HeightCM, req.WeightKG, req.TargetWeightKG, req.WeeksToGoal)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	profile := models.Profile{
		UserID:           user.ID,
		HeightCM:         req.HeightCM,
		WeightKG:         req.WeightKG,
		TargetWeightKG:   req.TargetWeightKG,
		WeeksToGoal:      req.WeeksToGoal,
		DietPreference:   req.DietPreference,
		Goal:             goals.Goal,
		DailyCalorieGoal: goals.DailyCalorieGoal,
		DailyProteinGoal: goals.DailyProteinGoal,
		IsOnboarded:      true,
	}

	// Upsert on user_id
	if err := database.DB.Where("user_id = ?", user.ID).Assign(profile).FirstOrCreate(&profile).Error; err != nil {
		logger.Error("Failed to save profile", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to save profile")
		return
	}
	database.DB.Save(&profile)

	logger.Info("User onboarded", "user_id", user.ID,
		"calorie_goal", goals.DailyCalorieGoal, "protein_goal", goals.DailyProteinGoal, "goal", goals.Goal)

	writeJSON(w, http.StatusCreated, profile)
}

type UpdateProfileRequest struct {
	DailyCalorieGoal *int    `json:"daily_calorie_goal"`
	DailyProteinGoal *int    `json:"daily_protein_goal"`
	Goal             *string `json:"goal"`
}

// UpdateProfile lets the user override the computed daily goals or the
// goal direction from the settings panel.
func UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, err := getUser(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var profile models.Profile
	if err := database.DB.Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
		writeError(w, http.StatusNotFound, "Profile not found; complete onboarding first")
		return
	}

	updates := map[string]interface{}{}
	if req.DailyCalorieGoal != nil && *req.DailyCalorieGoal > 0 {
		updates["daily_calorie_goal"] = *req.DailyCalorieGoal
	}
	if req.DailyProteinGoal != nil && *req.DailyProteinGoal > 0 {
		updates["daily_protein_goal"] = *req.DailyProteinGoal
	}
	if req.Goal != nil {
		switch *req.Goal {
		case "gain_weight", "lose_weight", "maintain":
			updates["goal"] = *req.Goal
		default:
			writeError(w, http.StatusBadRequest, "Invalid goal")
			return
		}
	}
	if len(updates) == 0 {
		writeError(w, http.StatusBadRequest, "Nothing to update")
		return
	}

	if err := database.DB.Model(&profile).Updates(updates).Error; err != nil {
		logger.Error("Failed to update profile", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	writeJSON(w, http.StatusOK, profile)
}
