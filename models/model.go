package models

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// Meal type codes as printed on the mess board.
const (
	MealBreakfast = 1
	MealLunch     = 2
	MealSnacks    = 3
	MealDinner    = 4
)

// MealName returns the display name for a meal type code.
func MealName(mealType int) string {
	switch mealType {
	case MealBreakfast:
		return "Breakfast"
	case MealLunch:
		return "Lunch"
	case MealSnacks:
		return "Snacks"
	case MealDinner:
		return "Dinner"
	default:
		return "Unknown"
	}
}

// Mess is one of the campus dining halls.
type Mess struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// MessOptions lists the selectable messes. Static for now; the mess admin
// office changes these about once a decade.
var MessOptions = []Mess{
	{ID: "men-spc", Label: "Men Special"},
	{ID: "men-veg", Label: "Men Veg"},
	{ID: "men-nv", Label: "Men Non-Veg"},
	{ID: "wmn-spc", Label: "Women Special"},
	{ID: "wmn-veg", Label: "Women Veg"},
	{ID: "wmn-nv", Label: "Women Non-Veg"},
}

// User represents an authenticated student. Rows are auto-provisioned the
// first time a valid token for the subject is seen; identity issuance
// (magic link / OAuth) lives outside this service.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Subject   string         `gorm:"size:255;uniqueIndex;not null" json:"-"` // token sub claim
	Email     string         `gorm:"size:255;index" json:"email"`
	Name      string         `gorm:"size:255" json:"name"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Profile *Profile `json:"profile,omitempty"`
}

// Profile holds onboarding measurements and the derived daily macro goals.
type Profile struct {
	ID             uint    `gorm:"primaryKey" json:"id"`
	UserID         uint    `gorm:"not null;uniqueIndex" json:"user_id"`
	HeightCM       int     `json:"height_cm"`
	WeightKG       float64 `json:"weight_kg"`
	TargetWeightKG float64 `json:"target_weight_kg"`
	WeeksToGoal    int     `json:"weeks_to_goal"`
	DietPreference string  `gorm:"size:20" json:"diet_preference"` // veg, non-veg

	// gain_weight, lose_weight or maintain; drives Stage-2 ordering
	Goal string `gorm:"size:20;default:'maintain'" json:"goal"`

	DailyCalorieGoal int       `json:"daily_calorie_goal"`
	DailyProteinGoal int       `json:"daily_protein_goal"`
	IsOnboarded      bool      `gorm:"default:false" json:"is_onboarded"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// FoodItem is one row of the food dictionary: nutrition facts and serving
// policy for a dish as the mess serves it. item_name matching is
// case-insensitive everywhere; the stored spelling is the display form.
type FoodItem struct {
	ID                 uint    `gorm:"primaryKey" json:"id"`
	ItemName           string  `gorm:"size:255;uniqueIndex;not null" json:"item_name"`
	ProteinPerServing  float64 `gorm:"default:0" json:"protein_per_serving"`
	CaloriesPerServing int     `gorm:"default:0" json:"calories_per_serving"`
	ServingUnit        string  `gorm:"size:50" json:"serving_unit"` // bowl, piece, glass
	IsLimited          bool    `gorm:"default:false" json:"is_limited"`
	MaxServings        int     `gorm:"default:0" json:"max_servings"` // 0 = use default policy
	Category           string  `gorm:"size:50;index" json:"category"`
	DietTag            string  `gorm:"size:50" json:"diet_tag"` // volume_filler, dense_calorie, lean_protein, neutral

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DailyMenu is one meal of one mess on one date, as transcribed from the
// menu board. RawItems is a JSON array of free-text names; items with no
// dictionary entry are expected and fine.
type DailyMenu struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Date     string `gorm:"size:10;not null;uniqueIndex:idx_menu_slot" json:"date"` // YYYY-MM-DD
	MealType int    `gorm:"not null;uniqueIndex:idx_menu_slot" json:"meal_type"`
	MessID   string `gorm:"size:20;not null;uniqueIndex:idx_menu_slot" json:"mess_id"`
	RawItems string `gorm:"type:text" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Items decodes the raw item list. A corrupt column yields an empty menu
// rather than an error; the engine treats that as "nothing matched".
func (m *DailyMenu) Items() []string {
	var items []string
	if err := json.Unmarshal([]byte(m.RawItems), &items); err != nil {
		return nil
	}
	return items
}

// SetItems encodes the raw item list.
func (m *DailyMenu) SetItems(items []string) {
	data, _ := json.Marshal(items)
	m.RawItems = string(data)
}

// MarshalJSON inlines the decoded item list as raw_items.
func (m DailyMenu) MarshalJSON() ([]byte, error) {
	type alias DailyMenu
	return json.Marshal(struct {
		alias
		RawItems []string `json:"raw_items"`
	}{alias(m), m.Items()})
}

// MealLog is one append to the day's consumed-macros ledger: a committed
// manual tally or a confirmed plate scan. The day's ConsumedMacros is the
// sum over its rows; a new date starts the sum from zero.
type MealLog struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	UserID   uint    `gorm:"not null;index" json:"user_id"`
	Date     string  `gorm:"size:10;not null;index" json:"date"`
	MealType int     `json:"meal_type"`
	Source   string  `gorm:"size:20;default:'manual'" json:"source"` // manual, scan
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Items    string  `gorm:"type:text" json:"items"` // JSON of the logged {item_name, servings} list

	LoggedAt  time.Time `json:"logged_at"`
	CreatedAt time.Time `json:"created_at"`
}
