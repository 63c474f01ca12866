package model

import (
	"strconv"
	"strings"
)

// Contrast thresholds from WCAG 2.x level AA.
const (
	// AAThresholdNormal is the required ratio for normal-size text.
	AAThresholdNormal = 4.5

	// AAThresholdLarge is the required ratio for large text.
	AAThresholdLarge = 3.0

	// IndicatorThreshold is the fixed requirement for non-text
	// indicators (borders and outlines), regardless of font metrics.
	IndicatorThreshold = 3.0

	// LargeTextMinPx is the size at which any text counts as large.
	LargeTextMinPx = 24.0

	// BoldLargeTextMinPx is the size at which bold text counts as large.
	// 18.67px is the usual browser rendering of 14pt.
	BoldLargeTextMinPx = 18.67

	// BoldMinWeight is the minimum font-weight treated as bold.
	BoldMinWeight = 700.0
)

// FontThreshold returns the required contrast ratio for text rendered
// at the given computed font-size (a px-suffixed string) and font-weight.
//
// Large text (>= 24px, or bold >= 18.67px) requires 3.0; everything else
// requires 4.5. An unparsable size defaults to 0px and an unparsable
// weight to 0, both of which force the stricter 4.5 requirement.
func FontThreshold(fontSize, fontWeight string) float64 {
	px := parsePx(fontSize)
	weight := parseFloat(fontWeight)

	if px >= LargeTextMinPx {
		return AAThresholdLarge
	}
	if weight >= BoldMinWeight && px >= BoldLargeTextMinPx {
		return AAThresholdLarge
	}
	return AAThresholdNormal
}

// parsePx extracts the numeric value from a px-suffixed length.
// Unparsable input yields 0.
func parsePx(s string) float64 {
	return parseFloat(strings.ReplaceAll(s, "px", ""))
}

// parseFloat parses a float, returning 0 on any failure.
func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}
