package model

import (
	"regexp"
	"strconv"
	"strings"
)

// RGB is an 8-bit-per-channel sRGB color as reported by the browser.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// rgbaRE matches the contents of rgb(...) and rgba(...) CSS functions.
// The match is a search, not a full-string match, because computed style
// values occasionally carry surrounding whitespace.
var rgbaRE = regexp.MustCompile(`(?i)rgba?\(([^)]+)\)`)

// ParseCSSColor converts a CSS color string to an RGB triple.
//
// Only rgb(...) and rgba(...) syntaxes are supported, which is what
// window.getComputedStyle returns in practice. The literal "transparent"
// and any rgba(...) with alpha == 0 are treated as "no color" and return
// ok=false; they are never defaulted to black. Hex, named colors, and
// hsl(...) are likewise unsupported and return ok=false.
//
// Design decision: unsupported syntax degrades to "unparsable" rather
// than an error because a missing color simply removes the affected
// contrast channel from measurement. Fabricating a fallback color would
// produce fake ratios.
func ParseCSSColor(color string) (rgb RGB, ok bool) {
	c := strings.ToLower(strings.TrimSpace(color))
	if c == "" || c == "transparent" {
		return RGB{}, false
	}

	m := rgbaRE.FindStringSubmatch(c)
	if m == nil {
		return RGB{}, false
	}

	parts := strings.Split(m[1], ",")
	if len(parts) < 3 {
		return RGB{}, false
	}

	channels := make([]uint8, 3)
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if err != nil {
			return RGB{}, false
		}
		channels[i] = clampChannel(f)
	}

	// Fully transparent rgba carries no visible color.
	if len(parts) >= 4 {
		alpha, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil {
			return RGB{}, false
		}
		if alpha == 0 {
			return RGB{}, false
		}
	}

	return RGB{R: channels[0], G: channels[1], B: channels[2]}, true
}

// clampChannel truncates a float channel value and clamps it to 0..255.
func clampChannel(f float64) uint8 {
	v := int(f)
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	return uint8(v)
}
