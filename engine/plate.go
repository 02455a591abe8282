package engine

import (
	"math"
	"sort"

	"github.com/ARYAMAN170/DontMessIt/models"
)

// UserGoal steers Stage-2 ordering: bulkers front-load calorie-dense items,
// cutters prefer low-calorie volume first.
type UserGoal string

const (
	GainWeight UserGoal = "gain_weight"
	LoseWeight UserGoal = "lose_weight"
)

// Goals are the student's daily macro targets, set at onboarding or
// overridden later. The engine reads them, never mutates them.
type Goals struct {
	DailyProtein  float64
	DailyCalories float64
}

// PlateItem is one recommended line on the plate blueprint.
type PlateItem struct {
	Item      string  `json:"item"`
	Servings  int     `json:"servings"`
	Unit      string  `json:"unit"`
	Protein   float64 `json:"protein"`
	Calories  int     `json:"calories"`
	IsLimited bool    `json:"is_limited"`
	Category  string  `json:"category"`
}

// PlateAllocation is the engine's output for one meal. Recommendations are
// in first-insertion order: base carb, proteins, liquids, then Stage-2
// top-ups, so identical inputs serialize identically.
type PlateAllocation struct {
	Recommendations        []PlateItem `json:"recommendations"`
	TotalEstimatedProtein  float64     `json:"total_estimated_protein"`
	TotalEstimatedCalories int         `json:"total_estimated_calories"`
}

const (
	// Hard cap on total liquid servings per meal, across all liquid items.
	maxLiquidServingsPerMeal = 2

	// Snacks get a flat protein target and a fixed share of daily calories;
	// the three main meals split the remainder evenly. Policy constants,
	// not derived from data.
	snackProteinGrams = 15.0
	snackCalorieShare = 0.15

	defaultMaxServings        = 2
	defaultMaxLimitedServings = 1
)

// mealTargets derives the per-meal macro targets from the daily goals.
func mealTargets(mealType int, goals Goals) (targetProtein, targetCalories float64) {
	if mealType == models.MealSnacks {
		return snackProteinGrams, goals.DailyCalories * snackCalorieShare
	}
	targetProtein = (goals.DailyProtein - snackProteinGrams) / 3
	targetCalories = goals.DailyCalories * (1 - snackCalorieShare) / 3
	return targetProtein, targetCalories
}

// plateBuilder is the accumulator threaded through both stages. Each
// BuildPersonalizedPlate call owns its own instance, so concurrent calls
// never share state.
type plateBuilder struct {
	entries        map[string]*PlateItem
	order          []string
	currentProtein float64
	totalCalories  int
	liquidServings int
}

func newPlateBuilder() *plateBuilder {
	return &plateBuilder{entries: make(map[string]*PlateItem)}
}

func (b *plateBuilder) protein() float64  { return b.currentProtein }
func (b *plateBuilder) calories() float64 { return float64(b.totalCalories) }

// addServing is the sole mutation point. It clamps the request to the
// item's own cap (max_servings, defaulting to 1 for limited items and 2
// otherwise) and, for liquids, to the global per-meal liquid budget.
// A request with no room left is a silent no-op, not an error.
func (b *plateBuilder) addServing(item models.FoodItem, count int) {
	existing := 0
	if entry, ok := b.entries[item.ItemName]; ok {
		existing = entry.Servings
	}

	maxAllowed := item.MaxServings
	if maxAllowed <= 0 {
		if item.IsLimited {
			maxAllowed = defaultMaxLimitedServings
		} else {
			maxAllowed = defaultMaxServings
		}
	}

	liquid := ParseCategory(item.Category) == CategoryLiquidSide
	if liquid {
		room := maxLiquidServingsPerMeal - b.liquidServings
		if room <= 0 {
			return
		}
		if existing+room < maxAllowed {
			maxAllowed = existing + room
		}
	}

	canAdd := count
	if maxAllowed-existing < canAdd {
		canAdd = maxAllowed - existing
	}
	if canAdd <= 0 {
		return
	}

	if liquid {
		b.liquidServings += canAdd
	}

	proteinYield := item.ProteinPerServing * float64(canAdd)
	calorieYield := item.CaloriesPerServing * canAdd

	entry, ok := b.entries[item.ItemName]
	if !ok {
		entry = &PlateItem{
			Item:      item.ItemName,
			Unit:      item.ServingUnit,
			IsLimited: item.IsLimited,
			Category:  item.Category,
		}
		b.entries[item.ItemName] = entry
		b.order = append(b.order, item.ItemName)
	}
	entry.Servings += canAdd
	entry.Protein = round1(entry.Protein + proteinYield)
	entry.Calories += calorieYield

	b.currentProtein += proteinYield
	b.totalCalories += calorieYield
}

// topUpToTarget greedily adds servings of each pool item, in pool order,
// until value() reaches target. Each request asks for the ceiling of the
// remaining shortfall over the item's per-serving yield; addServing may
// fulfill it partially or not at all. Items with a zero or negative yield
// cannot close the gap and are skipped outright (never divided by), and a
// request that makes no progress ends that item's loop, so a capped item
// can never spin forever.
func (b *plateBuilder) topUpToTarget(pool []models.FoodItem, target float64, value func() float64, perServing func(models.FoodItem) float64) {
	for _, item := range pool {
		for value() < target {
			per := perServing(item)
			if per <= 0 {
				break
			}
			request := int(math.Ceil((target - value()) / per))
			if request < 1 {
				request = 1
			}
			before := value()
			b.addServing(item, request)
			if value() <= before {
				break
			}
		}
	}
}

// allocation snapshots the builder into the output form.
func (b *plateBuilder) allocation() PlateAllocation {
	recommendations := make([]PlateItem, 0, len(b.order))
	for _, name := range b.order {
		recommendations = append(recommendations, *b.entries[name])
	}
	return PlateAllocation{
		Recommendations:        recommendations,
		TotalEstimatedProtein:  round1(b.currentProtein),
		TotalEstimatedCalories: b.totalCalories,
	}
}

// BuildPersonalizedPlate runs the two-stage allocation for one meal.
//
// Stage 1 lays the protein foundation: one serving of the first carb on
// the menu is always secured as the base, then protein mains (richest
// first) and liquid sides (richest first, within the liquid budget) are
// topped up toward the meal's protein target.
//
// Stage 2 runs only if the meal is still short on calories: sides, healthy
// extras and all carbs (the base carb included — its cap already prevents
// double-securing) are revisited in goal-dependent calorie order until the
// calorie target is met or the pool is exhausted.
//
// An empty menu, an empty dictionary, or a menu with no dictionary matches
// all yield an empty allocation with zero totals.
func BuildPersonalizedPlate(rawItems []string, mealType int, goals Goals, userGoal UserGoal, dictionary []models.FoodItem) PlateAllocation {
	matched := MatchMenuItems(rawItems, dictionary)
	targetProtein, targetCalories := mealTargets(mealType, goals)

	var proteins, liquids, carbs, extras []models.FoodItem
	for _, item := range matched {
		switch ParseCategory(item.Category) {
		case CategoryProteinMain:
			proteins = append(proteins, item)
		case CategoryLiquidSide:
			liquids = append(liquids, item)
		case CategoryCarbMain:
			carbs = append(carbs, item)
		case CategoryHealthyExtra, CategorySide:
			extras = append(extras, item)
		}
	}
	sort.SliceStable(proteins, func(i, j int) bool {
		return proteins[i].ProteinPerServing > proteins[j].ProteinPerServing
	})
	sort.SliceStable(liquids, func(i, j int) bool {
		return liquids[i].ProteinPerServing > liquids[j].ProteinPerServing
	})

	b := newPlateBuilder()

	if len(carbs) > 0 {
		b.addServing(carbs[0], 1)
	}
	proteinPer := func(item models.FoodItem) float64 { return item.ProteinPerServing }
	b.topUpToTarget(proteins, targetProtein, b.protein, proteinPer)
	b.topUpToTarget(liquids, targetProtein, b.protein, proteinPer)

	if b.calories() < targetCalories {
		pool := make([]models.FoodItem, 0, len(extras)+len(carbs))
		pool = append(pool, extras...)
		pool = append(pool, carbs...)
		if userGoal == GainWeight {
			sort.SliceStable(pool, func(i, j int) bool {
				return pool[i].CaloriesPerServing > pool[j].CaloriesPerServing
			})
		} else {
			sort.SliceStable(pool, func(i, j int) bool {
				return pool[i].CaloriesPerServing < pool[j].CaloriesPerServing
			})
		}
		b.topUpToTarget(pool, targetCalories, b.calories, func(item models.FoodItem) float64 {
			return float64(item.CaloriesPerServing)
		})
	}

	return b.allocation()
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
