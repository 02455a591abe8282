package services

import (
	"fmt"
	"math"
)

// Mifflin-St Jeor, simplified for the campus population: everyone is
// assumed to be a 20-year-old male student with moderate activity
// (walking between hostels plus the gym). Matches the onboarding form,
// which doesn't ask for age or sex.
const (
	assumedAge         = 20
	activityMultiplier = 1.55
	caloriesPerKG      = 7700 // ~energy content of 1 kg body weight
	proteinPerKG       = 2.2  // g protein per kg bodyweight
)

// MacroGoals is the output of onboarding: daily targets plus the goal
// direction that steers the plate engine's Stage-2 ordering.
type MacroGoals struct {
	DailyCalorieGoal int
	DailyProteinGoal int
	Goal             string // gain_weight, lose_weight, maintain
}

// ComputeMacroGoals derives daily macro targets from the onboarding
// measurements. The calorie goal is TDEE adjusted by the daily surplus or
// deficit needed to reach the target weight in the given number of weeks.
func ComputeMacroGoals(heightCM int, weightKG, targetWeightKG float64, weeksToGoal int) (MacroGoals, error) {
	if heightCM <= 0 || weightKG <= 0 || targetWeightKG <= 0 {
		return MacroGoals{}, fmt.Errorf("height and weights must be positive")
	}
	if weeksToGoal <= 0 {
		return MacroGoals{}, fmt.Errorf("weeks_to_goal must be positive")
	}

	bmr := 10*weightKG + 6.25*float64(heightCM) - 5*assumedAge + 5
	tdee := bmr * activityMultiplier

	weightDelta := targetWeightKG - weightKG
	dailyOffset := weightDelta * caloriesPerKG / (float64(weeksToGoal) * 7)

	goals := MacroGoals{
		DailyCalorieGoal: int(math.Round(tdee + dailyOffset)),
		DailyProteinGoal: int(math.Round(weightKG * proteinPerKG)),
		Goal:             "maintain",
	}
	if weightDelta > 0 {
		goals.Goal = "gain_weight"
	} else if weightDelta < 0 {
		goals.Goal = "lose_weight"
	}
	return goals, nil
}
