package model

import "testing"

// TestContrastRatioExtremes tests the boundary values of the WCAG scale.
func TestContrastRatioExtremes(t *testing.T) {
	t.Parallel()

	white := RGB{255, 255, 255}
	black := RGB{0, 0, 0}

	if got := ContrastRatio(white, black); got != 21.0 {
		t.Errorf("ContrastRatio(white, black) = %v, expected 21.0", got)
	}

	for _, c := range []RGB{white, black, {118, 118, 118}, {12, 200, 56}} {
		if got := ContrastRatio(c, c); got != 1.0 {
			t.Errorf("ContrastRatio(%v, %v) = %v, expected 1.0", c, c, got)
		}
	}
}

// TestContrastRatioSymmetric tests ratio(a,b) == ratio(b,a).
func TestContrastRatioSymmetric(t *testing.T) {
	t.Parallel()

	pairs := [][2]RGB{
		{{255, 255, 255}, {0, 0, 0}},
		{{118, 118, 118}, {255, 255, 255}},
		{{10, 20, 30}, {200, 180, 160}},
		{{0, 128, 255}, {255, 128, 0}},
	}

	for _, p := range pairs {
		ab := ContrastRatio(p[0], p[1])
		ba := ContrastRatio(p[1], p[0])
		if ab != ba {
			t.Errorf("ContrastRatio(%v, %v) = %v but reversed = %v", p[0], p[1], ab, ba)
		}
	}
}

// TestContrastRatioKnownValues tests ratios against independently
// computed WCAG values.
func TestContrastRatioKnownValues(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		a, b RGB
		want float64
	}{
		{"gray 118 on white", RGB{118, 118, 118}, RGB{255, 255, 255}, 4.54},
		// The "just fails AA" gray on white.
		{"gray 119 on white", RGB{119, 119, 119}, RGB{255, 255, 255}, 4.48},
		{"red on white", RGB{255, 0, 0}, RGB{255, 255, 255}, 4.0},
		{"mid gray on black", RGB{128, 128, 128}, RGB{0, 0, 0}, 5.32},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := ContrastRatio(tc.a, tc.b); got != tc.want {
				t.Errorf("ContrastRatio(%v, %v) = %v, expected %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

// TestLuminanceBounds tests that luminance stays within [0, 1].
func TestLuminanceBounds(t *testing.T) {
	t.Parallel()

	if got := Luminance(RGB{0, 0, 0}); got != 0 {
		t.Errorf("Luminance(black) = %v, expected 0", got)
	}
	if got := Luminance(RGB{255, 255, 255}); got < 0.999 || got > 1.0 {
		t.Errorf("Luminance(white) = %v, expected ~1.0", got)
	}
}
