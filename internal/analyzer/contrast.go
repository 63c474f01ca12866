package analyzer

import (
	"github.com/nao1215/contrastscan/internal/model"
	"github.com/nao1215/contrastscan/internal/simulate"
)

// ComputeContrast measures a token's three channels (text, border,
// outline, each against the background) under normal vision and all
// simulated deficiencies, and stores the result on the token.
//
// A channel is present only when both of its colors parse; otherwise it
// stays nil and is excluded from classification entirely. A present
// channel is always populated for all four vision types, never
// partially. Tokens that arrived with precomputed contrast keep it.
func ComputeContrast(tok *model.StyleToken, sim simulate.Simulator) {
	if tok.Contrast != nil {
		return
	}

	bg, bgOK := model.ParseCSSColor(tok.BackgroundColor)

	result := &model.ContrastResult{}
	foregrounds := map[model.Channel]string{
		model.ChannelText:    tok.TextColor,
		model.ChannelBorder:  tok.BorderColor,
		model.ChannelOutline: tok.OutlineColor,
	}

	for _, ch := range model.Channels {
		fg, fgOK := model.ParseCSSColor(foregrounds[ch])
		if !fgOK || !bgOK {
			continue
		}
		result.Set(ch, visionRatios(fg, bg, sim))
	}

	tok.Contrast = result
}

// visionRatios computes the ratio for one parsed color pair under every
// vision type. Both sides of the pair are simulated; contrast is always
// measured between two colors as the same observer sees them.
func visionRatios(fg, bg model.RGB, sim simulate.Simulator) *model.VisionRatios {
	ratios := &model.VisionRatios{}
	ratios.Set(model.VisionNormal, model.ContrastRatio(fg, bg))

	for _, v := range model.CVDVisions {
		simFG := sim.Simulate(fg, v)
		simBG := sim.Simulate(bg, v)
		ratios.Set(v, model.ContrastRatio(simFG, simBG))
	}
	return ratios
}
