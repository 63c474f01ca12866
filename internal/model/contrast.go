package model

import "math"

// Luminance returns the WCAG relative luminance of a color.
//
// Each channel is gamma-linearized (v/12.92 below the 0.04045 knee,
// ((v+0.055)/1.055)^2.4 above it) and the linear channels are combined
// with the Rec. 709 coefficients.
func Luminance(c RGB) float64 {
	r := linearize(float64(c.R))
	g := linearize(float64(c.G))
	b := linearize(float64(c.B))
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// linearize converts one 0..255 sRGB channel to linear light.
func linearize(v255 float64) float64 {
	v := v255 / 255.0
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// ContrastRatio returns the WCAG contrast ratio between two colors,
// rounded to two decimal places. The result is in [1, 21] and is
// symmetric: ContrastRatio(a, b) == ContrastRatio(b, a).
func ContrastRatio(a, b RGB) float64 {
	la := Luminance(a)
	lb := Luminance(b)
	lighter := math.Max(la, lb)
	darker := math.Min(la, lb)
	return round2((lighter + 0.05) / (darker + 0.05))
}

// round2 rounds to two decimal places, the precision WCAG ratios are
// conventionally reported at.
func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
