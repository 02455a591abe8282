package engine

import "testing"

func TestParseCategoryRoundTrip(t *testing.T) {
	known := []string{"carb_main", "protein_main", "liquid_side", "healthy_extra", "side"}
	for _, s := range known {
		c := ParseCategory(s)
		if c == CategoryUnknown {
			t.Errorf("ParseCategory(%q) = Unknown", s)
		}
		if c.String() != s {
			t.Errorf("ParseCategory(%q).String() = %q", s, c.String())
		}
	}

	for _, s := range []string{"", "condiment", "CARB_MAIN", "dessert"} {
		if c := ParseCategory(s); c != CategoryUnknown {
			t.Errorf("ParseCategory(%q) = %v, want Unknown", s, c)
		}
	}
}
