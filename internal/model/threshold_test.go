package model

import "testing"

// TestFontThreshold tests the large-text threshold rule.
func TestFontThreshold(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		fontSize   string
		fontWeight string
		want       float64
	}{
		{"large regular", "24px", "400", 3.0},
		{"above large regular", "32px", "400", 3.0},
		{"normal regular", "16px", "400", 4.5},
		{"just below large regular", "23.9px", "400", 4.5},
		{"bold large boundary", "18.67px", "700", 3.0},
		{"bold below boundary", "18px", "700", 4.5},
		{"bold above boundary", "20px", "800", 3.0},
		{"heavy weight small size", "12px", "900", 4.5},
		{"large overrides weight", "24px", "100", 3.0},
		{"unparsable size", "medium", "700", 4.5},
		{"empty size", "", "400", 4.5},
		{"unparsable weight", "20px", "bold", 4.5},
		{"empty weight", "20px", "", 4.5},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := FontThreshold(tc.fontSize, tc.fontWeight)
			if got != tc.want {
				t.Errorf("FontThreshold(%q, %q) = %v, expected %v", tc.fontSize, tc.fontWeight, got, tc.want)
			}
		})
	}
}
