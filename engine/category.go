// Package engine implements the Thali Engine: the pure, deterministic
// plate-allocation algorithm that turns a day's menu, the food dictionary
// and a student's macro goals into a recommended set of servings, plus the
// log-merge math that tracks what was actually eaten. Nothing in this
// package touches the network or the database; every call owns its own
// state and is safe to run concurrently.
package engine

// Category classifies a dictionary item for plate assembly. The dictionary
// stores free-form strings; anything unrecognized parses to
// CategoryUnknown and is skipped by every stage rather than silently
// falling into a bucket.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryCarbMain
	CategoryProteinMain
	CategoryLiquidSide
	CategoryHealthyExtra
	CategorySide
)

// ParseCategory maps a dictionary category string to its Category.
func ParseCategory(s string) Category {
	switch s {
	case "carb_main":
		return CategoryCarbMain
	case "protein_main":
		return CategoryProteinMain
	case "liquid_side":
		return CategoryLiquidSide
	case "healthy_extra":
		return CategoryHealthyExtra
	case "side":
		return CategorySide
	default:
		return CategoryUnknown
	}
}

func (c Category) String() string {
	switch c {
	case CategoryCarbMain:
		return "carb_main"
	case CategoryProteinMain:
		return "protein_main"
	case CategoryLiquidSide:
		return "liquid_side"
	case CategoryHealthyExtra:
		return "healthy_extra"
	case CategorySide:
		return "side"
	default:
		return "unknown"
	}
}
