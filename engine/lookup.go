package engine

import (
	"strings"

	"github.com/ARYAMAN170/DontMessIt/models"
)

// dictionaryIndex builds a lowercase name index over the food dictionary.
// On duplicate names the first row wins, so lookup results follow
// dictionary order deterministically.
func dictionaryIndex(dictionary []models.FoodItem) map[string]models.FoodItem {
	index := make(map[string]models.FoodItem, len(dictionary))
	for _, item := range dictionary {
		key := strings.ToLower(item.ItemName)
		if _, ok := index[key]; !ok {
			index[key] = item
		}
	}
	return index
}

// MatchMenuItems resolves raw menu-board names against the food dictionary
// by case-insensitive exact match. Menu order is preserved, unmatched names
// are silently dropped (condiments and untracked dishes are expected), and
// repeated raw names are NOT deduplicated here — they stay independent
// candidates until the plate builder groups by category.
func MatchMenuItems(rawItems []string, dictionary []models.FoodItem) []models.FoodItem {
	index := dictionaryIndex(dictionary)

	matched := make([]models.FoodItem, 0, len(rawItems))
	for _, raw := range rawItems {
		if item, ok := index[strings.ToLower(strings.TrimSpace(raw))]; ok {
			matched = append(matched, item)
		}
	}
	return matched
}
