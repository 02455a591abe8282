package controllers

import (
	"net/http"
	"strconv"

	"github.com/ARYAMAN170/DontMessIt/database"
	"github.com/ARYAMAN170/DontMessIt/engine"
	"github.com/ARYAMAN170/DontMessIt/logger"
	"github.com/ARYAMAN170/DontMessIt/models"
)

// Fallbacks for users who haven't finished onboarding; better to show a
// plausible plate than to block the dashboard.
const (
	defaultDailyProtein  = 140
	defaultDailyCalories = 2800
)

// loadGoals reads the user's daily goals and goal direction, falling back
// to defaults when no profile exists.
func loadGoals(userID uint) (engine.Goals, engine.UserGoal) {
	goals := engine.Goals{DailyProtein: defaultDailyProtein, DailyCalories: defaultDailyCalories}
	userGoal := engine.LoseWeight

	var profile models.Profile
	if err := database.DB.Where("user_id = ?", userID).First(&profile).Error; err == nil {
		if profile.DailyProteinGoal > 0 {
			goals.DailyProtein = float64(profile.DailyProteinGoal)
		}
		if profile.DailyCalorieGoal > 0 {
			goals.DailyCalories = float64(profile.DailyCalorieGoal)
		}
		if profile.Goal == "gain_weight" {
			userGoal = engine.GainWeight
		}
	}
	return goals, userGoal
}

// MealPlate pairs a menu row with its computed allocation.
type MealPlate struct {
	MealType int                    `json:"meal_type"`
	MealName string                 `json:"meal_name"`
	RawItems []string               `json:"raw_items"`
	Plate    engine.PlateAllocation `json:"plate"`
}

// GetPlates returns a plate blueprint for every meal of the day at one
// mess — the dashboard call. Each allocation is computed fresh; the
// engine is cheap and pure, so nothing is cached.
func GetPlates(w http.ResponseWriter, r *http.Request) {
	user, err := getUser(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	date, messID, ok := menuQuery(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid or missing date/mess_id")
		return
	}

	var menus []models.DailyMenu
	if err := database.DB.Where("date = ? AND mess_id = ?", date, messID).Order("meal_type asc").Find(&menus).Error; err != nil {
		logger.Error("Failed to fetch menus for plates", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch menus")
		return
	}

	var dictionary []models.FoodItem
	if err := database.DB.Order("id asc").Find(&dictionary).Error; err != nil {
		logger.Error("Failed to fetch food dictionary", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch food dictionary")
		return
	}

	goals, userGoal := loadGoals(user.ID)

	plates := make([]MealPlate, 0, len(menus))
	for _, menu := range menus {
		items := menu.Items()
		plates = append(plates, MealPlate{
			MealType: menu.MealType,
			MealName: models.MealName(menu.MealType),
			RawItems: items,
			Plate:    engine.BuildPersonalizedPlate(items, menu.MealType, goals, userGoal, dictionary),
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"date":    date,
		"mess_id": messID,
		"plates":  plates,
	})
}

// GetPlate returns the blueprint for a single meal.
func GetPlate(w http.ResponseWriter, r *http.Request) {
	user, err := getUser(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	date, messID, ok := menuQuery(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid or missing date/mess_id")
		return
	}

	mealType, err := strconv.Atoi(r.URL.Query().Get("meal_type"))
	if err != nil || mealType < models.MealBreakfast || mealType > models.MealDinner {
		writeError(w, http.StatusBadRequest, "meal_type must be 1-4")
		return
	}

	// Missing menu row degrades to an empty plate, same as an empty menu.
	var menu models.DailyMenu
	database.DB.Where("date = ? AND mess_id = ? AND meal_type = ?", date, messID, mealType).First(&menu)

	var dictionary []models.FoodItem
	if err := database.DB.Order("id asc").Find(&dictionary).Error; err != nil {
		logger.Error("Failed to fetch food dictionary", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch food dictionary")
		return
	}

	goals, userGoal := loadGoals(user.ID)
	items := menu.Items()

	writeJSON(w, http.StatusOK, MealPlate{
		MealType: mealType,
		MealName: models.MealName(mealType),
		RawItems: items,
		Plate:    engine.BuildPersonalizedPlate(items, mealType, goals, userGoal, dictionary),
	})
}
