package engine

import (
	"strings"

	"github.com/ARYAMAN170/DontMessIt/models"
)

// LoggedItem is one line of a user-confirmed tally: a manual count from
// the menu explorer or a serving estimate from a plate scan.
type LoggedItem struct {
	ItemName string  `json:"item_name"`
	Servings float64 `json:"servings"`
}

// ConsumedDelta is the macro contribution of one logged plate.
type ConsumedDelta struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
}

// MergeLog computes the macro delta of a logged item list against the food
// dictionary. Items without a dictionary entry contribute zero. This is a
// ledger append, not a set union: callers add the delta to the day's
// consumed accumulator, and logging the same plate twice double-counts.
func MergeLog(logged []LoggedItem, dictionary []models.FoodItem) ConsumedDelta {
	index := dictionaryIndex(dictionary)

	var delta ConsumedDelta
	for _, entry := range logged {
		item, ok := index[strings.ToLower(strings.TrimSpace(entry.ItemName))]
		if !ok {
			continue
		}
		delta.Calories += float64(item.CaloriesPerServing) * entry.Servings
		delta.Protein += item.ProteinPerServing * entry.Servings
	}
	return delta
}
