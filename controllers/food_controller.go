package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/ARYAMAN170/DontMessIt/database"
	"github.com/ARYAMAN170/DontMessIt/engine"
	"github.com/ARYAMAN170/DontMessIt/logger"
	"github.com/ARYAMAN170/DontMessIt/models"
	"github.com/go-chi/chi/v5"
)

// GetFoods returns the full food dictionary. The client keeps it around
// for the whole session; it changes rarely.
func GetFoods(w http.ResponseWriter, r *http.Request) {
	var foods []models.FoodItem
	if err := database.DB.Order("item_name asc").Find(&foods).Error; err != nil {
		logger.Error("Failed to fetch food dictionary", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch food dictionary")
		return
	}
	writeJSON(w, http.StatusOK, foods)
}

type FoodItemRequest struct {
	ItemName           string  `json:"item_name"`
	ProteinPerServing  float64 `json:"protein_per_serving"`
	CaloriesPerServing int     `json:"calories_per_serving"`
	ServingUnit        string  `json:"serving_unit"`
	IsLimited          bool    `json:"is_limited"`
	MaxServings        int     `json:"max_servings"`
	Category           string  `json:"category"`
	DietTag            string  `json:"diet_tag"`
}

func (req *FoodItemRequest) validate() string {
	if req.ItemName == "" {
		return "item_name is required"
	}
	if req.ProteinPerServing < 0 || req.CaloriesPerServing < 0 {
		return "per-serving values must be non-negative"
	}
	if req.MaxServings < 0 {
		return "max_servings must be non-negative"
	}
	if req.Category != "" && engine.ParseCategory(req.Category) == engine.CategoryUnknown {
		return "unknown category"
	}
	return ""
}

// CreateFood adds a dictionary entry (mess staff tooling).
func CreateFood(w http.ResponseWriter, r *http.Request) {
	var req FoodItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	food := models.FoodItem{
		ItemName:           req.ItemName,
		ProteinPerServing:  req.ProteinPerServing,
		CaloriesPerServing: req.CaloriesPerServing,
		ServingUnit:        req.ServingUnit,
		IsLimited:          req.IsLimited,
		MaxServings:        req.MaxServings,
		Category:           req.Category,
		DietTag:            req.DietTag,
	}
	if err := database.DB.Create(&food).Error; err != nil {
		logger.Error("Failed to create food item", "item", req.ItemName, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create food item")
		return
	}

	logger.Info("Food item created", "item", food.ItemName, "category", food.Category)
	writeJSON(w, http.StatusCreated, food)
}

// UpdateFood edits a dictionary entry (the admin long-press edit flow).
func UpdateFood(w http.ResponseWriter, r *http.Request) {
	foodID, err := strconv.ParseUint(chi.URLParam(r, "food_id"), 10, 32)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid food ID")
		return
	}

	var food models.FoodItem
	if err := database.DB.First(&food, foodID).Error; err != nil {
		writeError(w, http.StatusNotFound, "Food item not found")
		return
	}

	var req FoodItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	food.ItemName = req.ItemName
	food.ProteinPerServing = req.ProteinPerServing
	food.CaloriesPerServing = req.CaloriesPerServing
	food.ServingUnit = req.ServingUnit
	food.IsLimited = req.IsLimited
	food.MaxServings = req.MaxServings
	food.Category = req.Category
	food.DietTag = req.DietTag

	if err := database.DB.Save(&food).Error; err != nil {
		logger.Error("Failed to update food item", "food_id", foodID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to update food item")
		return
	}

	logger.Info("Food item updated", "food_id", foodID, "item", food.ItemName)
	writeJSON(w, http.StatusOK, food)
}
