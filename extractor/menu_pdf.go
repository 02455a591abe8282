// Package extractor parses the mess office's menu PDFs into per-meal item
// lists. The PDFs are text-based exports of the weekly menu sheet: each
// meal section starts with its name (BREAKFAST, LUNCH, SNACKS, DINNER)
// and lists dishes separated by commas, bullets or line breaks.
package extractor

import (
	"strings"

	"github.com/ARYAMAN170/DontMessIt/models"
	"github.com/ledongthuc/pdf"
)

// ParseMenu extracts the per-meal raw item lists from a menu PDF. Meals
// with no section in the document are simply absent from the result; item
// spellings are kept as printed, since dictionary matching downstream is
// case-insensitive anyway.
func ParseMenu(path string) (map[int][]string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	totalPage := r.NumPage()
	for i := 1; i <= totalPage; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}

		rows, err := p.GetTextByRow()
		if err != nil {
			continue
		}
		for _, row := range rows {
			var sb strings.Builder
			for _, word := range row.Content {
				sb.WriteString(word.S)
				sb.WriteString(" ")
			}
			if line := strings.TrimSpace(sb.String()); line != "" {
				lines = append(lines, line)
			}
		}
	}

	return parseMenuLines(lines), nil
}

// parseMenuLines walks the extracted text lines, switching meals on
// section headers and collecting item names under the current meal.
func parseMenuLines(lines []string) map[int][]string {
	menu := make(map[int][]string)
	currentMeal := 0

	for _, line := range lines {
		if meal, rest, ok := mealHeader(line); ok {
			currentMeal = meal
			if rest != "" {
				menu[currentMeal] = append(menu[currentMeal], splitItems(rest)...)
			}
			continue
		}
		if currentMeal == 0 {
			continue // preamble: mess name, date, notes
		}
		menu[currentMeal] = append(menu[currentMeal], splitItems(line)...)
	}
	return menu
}

// mealHeader reports whether the line starts a meal section, returning
// the meal type and any items printed on the same line after the name
// (e.g. "SNACKS: Samosa, Tea").
func mealHeader(line string) (mealType int, rest string, ok bool) {
	trimmed := strings.TrimSpace(line)
	upper := strings.ToUpper(trimmed)

	headers := []struct {
		name string
		meal int
	}{
		{"BREAKFAST", models.MealBreakfast},
		{"LUNCH", models.MealLunch},
		{"SNACKS", models.MealSnacks},
		{"DINNER", models.MealDinner},
	}
	for _, h := range headers {
		if !strings.HasPrefix(upper, h.name) {
			continue
		}
		rest = strings.TrimSpace(trimmed[len(h.name):])
		rest = strings.TrimLeft(rest, ":-– ")
		return h.meal, rest, true
	}
	return 0, "", false
}

// splitItems splits a menu line into item names. Commas, bullets and
// pipes all show up in the real sheets depending on who typed them.
func splitItems(line string) []string {
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || r == '|' || r == '•' || r == ';'
	})

	items := make([]string, 0, len(fields))
	for _, f := range fields {
		item := strings.Trim(strings.TrimSpace(f), "-– ")
		if item == "" {
			continue
		}
		items = append(items, item)
	}
	return items
}
