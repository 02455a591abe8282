package engine

import (
	"testing"

	"github.com/ARYAMAN170/DontMessIt/models"
)

func TestMergeLog(t *testing.T) {
	dict := []models.FoodItem{
		{ItemName: "Rice", ProteinPerServing: 2, CaloriesPerServing: 150},
		{ItemName: "Paneer", ProteinPerServing: 18, CaloriesPerServing: 250},
	}

	t.Run("sums servings times per-serving macros", func(t *testing.T) {
		delta := MergeLog([]LoggedItem{
			{ItemName: "Rice", Servings: 2},
			{ItemName: "Paneer", Servings: 1},
		}, dict)

		if delta.Calories != 550 {
			t.Errorf("calories = %v, want 550", delta.Calories)
		}
		if delta.Protein != 22 {
			t.Errorf("protein = %v, want 22", delta.Protein)
		}
	})

	t.Run("fractional servings from scans", func(t *testing.T) {
		delta := MergeLog([]LoggedItem{{ItemName: "paneer", Servings: 0.5}}, dict)
		if delta.Calories != 125 || delta.Protein != 9 {
			t.Errorf("delta = %+v, want {125 9}", delta)
		}
	})

	t.Run("unmatched items contribute zero", func(t *testing.T) {
		delta := MergeLog([]LoggedItem{
			{ItemName: "Gulab Jamun", Servings: 3},
			{ItemName: "Rice", Servings: 1},
		}, dict)
		if delta.Calories != 150 || delta.Protein != 2 {
			t.Errorf("delta = %+v, want {150 2}", delta)
		}
	})

	t.Run("ledger append double-counts by design", func(t *testing.T) {
		items := []LoggedItem{{ItemName: "Rice", Servings: 1}}
		first := MergeLog(items, dict)
		second := MergeLog(items, dict)
		if first.Calories+second.Calories != 300 {
			t.Errorf("two merges = %v, want 300", first.Calories+second.Calories)
		}
	})

	t.Run("empty inputs", func(t *testing.T) {
		if delta := MergeLog(nil, dict); delta != (ConsumedDelta{}) {
			t.Errorf("nil items delta = %+v, want zero", delta)
		}
		if delta := MergeLog([]LoggedItem{{ItemName: "Rice", Servings: 1}}, nil); delta != (ConsumedDelta{}) {
			t.Errorf("nil dictionary delta = %+v, want zero", delta)
		}
	})
}
