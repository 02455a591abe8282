package engine

import (
	"math"
	"reflect"
	"testing"

	"github.com/ARYAMAN170/DontMessIt/models"
)

func lunchDictionary() []models.FoodItem {
	return []models.FoodItem{
		{ItemName: "Rice", ProteinPerServing: 2, CaloriesPerServing: 150, ServingUnit: "bowl", Category: "carb_main", MaxServings: 2},
		{ItemName: "Dal", ProteinPerServing: 8, CaloriesPerServing: 120, ServingUnit: "bowl", Category: "liquid_side", MaxServings: 2},
		{ItemName: "Paneer", ProteinPerServing: 18, CaloriesPerServing: 250, ServingUnit: "bowl", Category: "protein_main", MaxServings: 2},
	}
}

func findItem(t *testing.T, plate PlateAllocation, name string) PlateItem {
	t.Helper()
	for _, item := range plate.Recommendations {
		if item.Item == name {
			return item
		}
	}
	t.Fatalf("expected %q in recommendations, got %+v", name, plate.Recommendations)
	return PlateItem{}
}

func TestBuildPersonalizedPlateLunch(t *testing.T) {
	goals := Goals{DailyProtein: 140, DailyCalories: 2800}
	plate := BuildPersonalizedPlate([]string{"Rice", "Dal", "Paneer"}, models.MealLunch, goals, GainWeight, lunchDictionary())

	// Stage 1: one base Rice, Paneer to its cap (36g still short of the
	// 41.67g target), one Dal closes the gap. Stage 2: 770 kcal is short
	// of the 793.3 target, so Rice is revisited for a second serving.
	rice := findItem(t, plate, "Rice")
	if rice.Servings != 2 {
		t.Errorf("Rice servings = %d, want 2", rice.Servings)
	}
	paneer := findItem(t, plate, "Paneer")
	if paneer.Servings != 2 {
		t.Errorf("Paneer servings = %d, want 2", paneer.Servings)
	}
	dal := findItem(t, plate, "Dal")
	if dal.Servings != 1 {
		t.Errorf("Dal servings = %d, want 1", dal.Servings)
	}

	if plate.TotalEstimatedProtein != 48 {
		t.Errorf("total protein = %v, want 48", plate.TotalEstimatedProtein)
	}
	if plate.TotalEstimatedCalories != 920 {
		t.Errorf("total calories = %d, want 920", plate.TotalEstimatedCalories)
	}

	// Protein target (140-15)/3 = 41.67g must be met
	if plate.TotalEstimatedProtein < (goals.DailyProtein-15)/3 {
		t.Errorf("protein target missed: %v", plate.TotalEstimatedProtein)
	}
}

func TestSnacksUseFlatTargets(t *testing.T) {
	dict := []models.FoodItem{
		{ItemName: "Paneer", ProteinPerServing: 18, CaloriesPerServing: 250, Category: "protein_main", MaxServings: 2},
	}

	// Snack targets are 15g / 15% of daily calories, regardless of the
	// daily protein goal: both goals produce the same plate.
	lo := BuildPersonalizedPlate([]string{"Paneer"}, models.MealSnacks, Goals{DailyProtein: 60, DailyCalories: 2000}, LoseWeight, dict)
	hi := BuildPersonalizedPlate([]string{"Paneer"}, models.MealSnacks, Goals{DailyProtein: 300, DailyCalories: 2000}, LoseWeight, dict)

	if !reflect.DeepEqual(lo, hi) {
		t.Errorf("snack plate depends on daily protein goal: %+v vs %+v", lo, hi)
	}
	if item := findItem(t, lo, "Paneer"); item.Servings != 1 {
		t.Errorf("Paneer servings = %d, want 1 (15g target, 18g per serving)", item.Servings)
	}
}

func TestLimitedItemDefaultsToOneServing(t *testing.T) {
	dict := []models.FoodItem{
		{ItemName: "Chicken", ProteinPerServing: 20, CaloriesPerServing: 200, Category: "protein_main", IsLimited: true},
	}
	// Huge target so the engine would happily request 5+ servings
	plate := BuildPersonalizedPlate([]string{"Chicken"}, models.MealLunch, Goals{DailyProtein: 400, DailyCalories: 4000}, GainWeight, dict)

	if item := findItem(t, plate, "Chicken"); item.Servings != 1 {
		t.Errorf("limited item servings = %d, want 1", item.Servings)
	}
}

func TestGlobalLiquidCap(t *testing.T) {
	dict := []models.FoodItem{
		{ItemName: "Dal", ProteinPerServing: 8, CaloriesPerServing: 120, Category: "liquid_side", MaxServings: 2},
		{ItemName: "Milk", ProteinPerServing: 7, CaloriesPerServing: 150, Category: "liquid_side", MaxServings: 2},
		{ItemName: "Curd", ProteinPerServing: 5, CaloriesPerServing: 90, Category: "liquid_side", MaxServings: 2},
	}
	plate := BuildPersonalizedPlate([]string{"Dal", "Milk", "Curd"}, models.MealLunch, Goals{DailyProtein: 200, DailyCalories: 3000}, GainWeight, dict)

	totalLiquid := 0
	for _, item := range plate.Recommendations {
		if item.Category == "liquid_side" {
			totalLiquid += item.Servings
		}
	}
	if totalLiquid > 2 {
		t.Errorf("total liquid servings = %d, want <= 2", totalLiquid)
	}
	// Richest liquid gets the whole budget
	if item := findItem(t, plate, "Dal"); item.Servings != 2 {
		t.Errorf("Dal servings = %d, want 2", item.Servings)
	}
}

func TestBaseCarbAlwaysSecured(t *testing.T) {
	dict := []models.FoodItem{
		{ItemName: "Roti", ProteinPerServing: 3, CaloriesPerServing: 100, Category: "carb_main", MaxServings: 3},
		{ItemName: "Paneer", ProteinPerServing: 18, CaloriesPerServing: 250, Category: "protein_main", MaxServings: 2},
	}
	// Target already trivially satisfied; the base carb still shows up
	plate := BuildPersonalizedPlate([]string{"Paneer", "Roti"}, models.MealLunch, Goals{DailyProtein: 16, DailyCalories: 100}, LoseWeight, dict)

	if item := findItem(t, plate, "Roti"); item.Servings < 1 {
		t.Errorf("base carb servings = %d, want >= 1", item.Servings)
	}
}

func TestGoalDirectionChangesStageTwo(t *testing.T) {
	dict := []models.FoodItem{
		{ItemName: "Roti", ProteinPerServing: 3, CaloriesPerServing: 100, Category: "carb_main", MaxServings: 3},
		{ItemName: "Paneer", ProteinPerServing: 18, CaloriesPerServing: 250, Category: "protein_main", MaxServings: 2},
		{ItemName: "Salad", ProteinPerServing: 1, CaloriesPerServing: 30, Category: "side", MaxServings: 2},
		{ItemName: "Kheer", ProteinPerServing: 4, CaloriesPerServing: 300, Category: "side", MaxServings: 2},
	}
	menu := []string{"Roti", "Paneer", "Salad", "Kheer"}
	goals := Goals{DailyProtein: 60, DailyCalories: 1800} // lunch targets: 15g, 510 kcal

	gain := BuildPersonalizedPlate(menu, models.MealLunch, goals, GainWeight, dict)
	lose := BuildPersonalizedPlate(menu, models.MealLunch, goals, LoseWeight, dict)

	// Bulk: densest first — one Kheer blows past the gap, Salad untouched
	findItem(t, gain, "Kheer")
	for _, item := range gain.Recommendations {
		if item.Item == "Salad" {
			t.Errorf("gain_weight plate should not include Salad: %+v", gain.Recommendations)
		}
	}
	if gain.TotalEstimatedCalories != 650 {
		t.Errorf("gain calories = %d, want 650", gain.TotalEstimatedCalories)
	}

	// Cut: lightest first — Salad fills, a second Roti lands exactly on
	// target, Kheer never gets touched
	if item := findItem(t, lose, "Salad"); item.Servings != 2 {
		t.Errorf("lose Salad servings = %d, want 2", item.Servings)
	}
	if item := findItem(t, lose, "Roti"); item.Servings != 2 {
		t.Errorf("lose Roti servings = %d, want 2", item.Servings)
	}
	for _, item := range lose.Recommendations {
		if item.Item == "Kheer" {
			t.Errorf("lose_weight plate should not include Kheer: %+v", lose.Recommendations)
		}
	}
	if lose.TotalEstimatedCalories != 510 {
		t.Errorf("lose calories = %d, want 510", lose.TotalEstimatedCalories)
	}
}

func TestZeroNutritionItemsAreSkippedNotDividedBy(t *testing.T) {
	dict := []models.FoodItem{
		{ItemName: "Water", ProteinPerServing: 0, CaloriesPerServing: 0, Category: "protein_main", MaxServings: 99},
		{ItemName: "Mystery", ProteinPerServing: 0, CaloriesPerServing: 0, Category: "side", MaxServings: 99},
		{ItemName: "Dal", ProteinPerServing: 8, CaloriesPerServing: 120, Category: "liquid_side", MaxServings: 2},
	}
	// Must terminate and must not allocate the zero-yield items
	plate := BuildPersonalizedPlate([]string{"Water", "Mystery", "Dal"}, models.MealLunch, Goals{DailyProtein: 140, DailyCalories: 2800}, GainWeight, dict)

	for _, item := range plate.Recommendations {
		if item.Item == "Water" || item.Item == "Mystery" {
			t.Errorf("zero-yield item %q was allocated", item.Item)
		}
	}
	if item := findItem(t, plate, "Dal"); item.Servings != 2 {
		t.Errorf("Dal servings = %d, want 2", item.Servings)
	}
}

func TestUnknownCategoryIsExcluded(t *testing.T) {
	dict := []models.FoodItem{
		{ItemName: "Pickle", ProteinPerServing: 1, CaloriesPerServing: 50, Category: "condiment", MaxServings: 2},
	}
	plate := BuildPersonalizedPlate([]string{"Pickle"}, models.MealLunch, Goals{DailyProtein: 140, DailyCalories: 2800}, GainWeight, dict)

	if len(plate.Recommendations) != 0 {
		t.Errorf("unknown-category item was allocated: %+v", plate.Recommendations)
	}
}

func TestEmptyInputsYieldEmptyAllocation(t *testing.T) {
	goals := Goals{DailyProtein: 140, DailyCalories: 2800}

	for name, plate := range map[string]PlateAllocation{
		"empty menu":       BuildPersonalizedPlate(nil, models.MealLunch, goals, GainWeight, lunchDictionary()),
		"empty dictionary": BuildPersonalizedPlate([]string{"Rice", "Dal"}, models.MealLunch, goals, GainWeight, nil),
	} {
		if len(plate.Recommendations) != 0 {
			t.Errorf("%s: recommendations = %+v, want empty", name, plate.Recommendations)
		}
		if plate.TotalEstimatedProtein != 0 || plate.TotalEstimatedCalories != 0 {
			t.Errorf("%s: totals = %v/%v, want 0/0", name, plate.TotalEstimatedProtein, plate.TotalEstimatedCalories)
		}
	}
}

func TestDeterminism(t *testing.T) {
	menu := []string{"Rice", "Dal", "Paneer"}
	goals := Goals{DailyProtein: 140, DailyCalories: 2800}

	first := BuildPersonalizedPlate(menu, models.MealLunch, goals, GainWeight, lunchDictionary())
	second := BuildPersonalizedPlate(menu, models.MealLunch, goals, GainWeight, lunchDictionary())

	if !reflect.DeepEqual(first, second) {
		t.Errorf("identical inputs produced different output:\n%+v\n%+v", first, second)
	}
}

func TestCapsAndNonNegativityInvariants(t *testing.T) {
	plate := BuildPersonalizedPlate([]string{"Rice", "Dal", "Paneer"}, models.MealLunch,
		Goals{DailyProtein: 500, DailyCalories: 6000}, GainWeight, lunchDictionary())

	for _, item := range plate.Recommendations {
		if item.Servings <= 0 {
			t.Errorf("%s: servings = %d, want > 0", item.Item, item.Servings)
		}
		if item.Servings > 2 {
			t.Errorf("%s: servings = %d exceed max 2", item.Item, item.Servings)
		}
		if item.Protein < 0 || item.Calories < 0 {
			t.Errorf("%s: negative macros %v/%v", item.Item, item.Protein, item.Calories)
		}
	}
}

func TestMealTargets(t *testing.T) {
	goals := Goals{DailyProtein: 140, DailyCalories: 2800}

	tests := []struct {
		mealType     int
		wantProtein  float64
		wantCalories float64
	}{
		{models.MealBreakfast, 125.0 / 3, 2380.0 / 3},
		{models.MealLunch, 125.0 / 3, 2380.0 / 3},
		{models.MealSnacks, 15, 420},
		{models.MealDinner, 125.0 / 3, 2380.0 / 3},
	}
	const eps = 1e-9
	for _, tt := range tests {
		gotProtein, gotCalories := mealTargets(tt.mealType, goals)
		if math.Abs(gotProtein-tt.wantProtein) > eps || math.Abs(gotCalories-tt.wantCalories) > eps {
			t.Errorf("mealTargets(%d) = (%v, %v), want (%v, %v)",
				tt.mealType, gotProtein, gotCalories, tt.wantProtein, tt.wantCalories)
		}
	}
}

func TestAddServingMergesDuplicateStages(t *testing.T) {
	// Rice is touched by Stage 1 (base) and Stage 2 (top-up); it must
	// appear once with merged servings, never as two entries.
	plate := BuildPersonalizedPlate([]string{"Rice", "Dal", "Paneer"}, models.MealLunch,
		Goals{DailyProtein: 140, DailyCalories: 2800}, GainWeight, lunchDictionary())

	seen := map[string]bool{}
	for _, item := range plate.Recommendations {
		if seen[item.Item] {
			t.Errorf("duplicate entry for %s", item.Item)
		}
		seen[item.Item] = true
	}
}
