package simulate

import (
	"fmt"
	"math"

	"github.com/nao1215/contrastscan/internal/model"
)

// Machado2009 implements the physiologically-based dichromacy simulation
// of Machado, Oliveira and Fernandes (2009), "A Physiologically-based
// Model for Simulation of Color Vision Deficiency", at full severity.
//
// The published model reduces to one 3x3 matrix per deficiency applied
// in linear RGB. The severity-1.0 matrices below are the standard
// published coefficients.
type Machado2009 struct{}

// matrix is a row-major 3x3 linear-RGB transform.
type matrix [3][3]float64

var machadoMatrices = map[model.Vision]matrix{
	model.VisionProtanopia: {
		{0.152286, 1.052583, -0.204868},
		{0.114503, 0.786281, 0.099216},
		{-0.003882, -0.048116, 1.051998},
	},
	model.VisionDeuteranopia: {
		{0.367322, 0.860646, -0.227968},
		{0.280085, 0.672501, 0.047413},
		{-0.011820, 0.042940, 0.968881},
	},
	model.VisionTritanopia: {
		{1.255528, -0.076749, -0.178779},
		{-0.078411, 0.930809, 0.147602},
		{0.004733, 0.691367, 0.303900},
	},
}

// Simulate applies the deficiency transform to one color.
// It panics on a vision type without a simulation matrix (including
// VisionNormal): requesting an unknown deficiency is a programming
// error, not an input condition.
func (Machado2009) Simulate(c model.RGB, deficiency model.Vision) model.RGB {
	m, ok := machadoMatrices[deficiency]
	if !ok {
		panic(fmt.Sprintf("simulate: no simulation matrix for vision type %q", deficiency))
	}

	r := srgbToLinear(c.R)
	g := srgbToLinear(c.G)
	b := srgbToLinear(c.B)

	return model.RGB{
		R: linearToSRGB(m[0][0]*r + m[0][1]*g + m[0][2]*b),
		G: linearToSRGB(m[1][0]*r + m[1][1]*g + m[1][2]*b),
		B: linearToSRGB(m[2][0]*r + m[2][1]*g + m[2][2]*b),
	}
}

// srgbToLinear converts one 0..255 sRGB channel to linear light.
func srgbToLinear(v255 uint8) float64 {
	v := float64(v255) / 255.0
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// linearToSRGB converts linear light back to a clamped 0..255 channel.
func linearToSRGB(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	var s float64
	if v <= 0.0031308 {
		s = v * 12.92
	} else {
		s = 1.055*math.Pow(v, 1.0/2.4) - 0.055
	}
	s = math.Round(s * 255.0)
	if s >= 255 {
		return 255
	}
	if s <= 0 {
		return 0
	}
	return uint8(s)
}
