package analyzer

import (
	"testing"

	"github.com/nao1215/contrastscan/internal/model"
	"github.com/nao1215/contrastscan/internal/simulate"
)

// identitySimulator passes colors through unchanged, so every vision
// type sees the same ratio as normal vision.
type identitySimulator struct{}

func (identitySimulator) Simulate(c model.RGB, _ model.Vision) model.RGB { return c }

// TestComputeContrastAllVisions tests that a parsable pair is measured
// for all four vision types.
func TestComputeContrastAllVisions(t *testing.T) {
	t.Parallel()

	tok := &model.StyleToken{
		TextColor:       "rgb(0, 0, 0)",
		BackgroundColor: "rgb(255, 255, 255)",
	}
	ComputeContrast(tok, identitySimulator{})

	if tok.Contrast == nil || tok.Contrast.TextOnBg == nil {
		t.Fatal("text channel not measured")
	}
	for _, v := range model.Visions {
		r := tok.Contrast.TextOnBg.Get(v)
		if r == nil {
			t.Fatalf("no ratio for %v", v)
		}
		if *r != 21.0 {
			t.Errorf("%v ratio = %v, expected 21.0", v, *r)
		}
	}
}

// TestComputeContrastUnparsableChannels tests the nil-channel rule: a
// channel exists only when both of its colors parse.
func TestComputeContrastUnparsableChannels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		token       model.StyleToken
		wantText    bool
		wantBorder  bool
		wantOutline bool
	}{
		{
			name: "transparent text drops only the text channel",
			token: model.StyleToken{
				TextColor:       "transparent",
				BackgroundColor: "rgb(255, 255, 255)",
				BorderColor:     "rgb(118, 118, 118)",
			},
			wantBorder: true,
		},
		{
			name: "unparsable background drops every channel",
			token: model.StyleToken{
				TextColor:       "rgb(0, 0, 0)",
				BackgroundColor: "#ffffff",
				BorderColor:     "rgb(0, 0, 0)",
				OutlineColor:    "rgb(0, 0, 0)",
			},
		},
		{
			name: "zero alpha foreground is absent",
			token: model.StyleToken{
				TextColor:       "rgba(0, 0, 0, 0)",
				BackgroundColor: "rgb(255, 255, 255)",
				OutlineColor:    "rgb(0, 0, 255)",
			},
			wantOutline: true,
		},
		{
			name: "empty border and outline stay absent",
			token: model.StyleToken{
				TextColor:       "rgb(0, 0, 0)",
				BackgroundColor: "rgb(255, 255, 255)",
			},
			wantText: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tok := tt.token
			ComputeContrast(&tok, identitySimulator{})

			if tok.Contrast == nil {
				t.Fatal("Contrast is nil, expected a result with absent channels")
			}
			if got := tok.Contrast.TextOnBg != nil; got != tt.wantText {
				t.Errorf("text channel present = %v, expected %v", got, tt.wantText)
			}
			if got := tok.Contrast.BorderOnBg != nil; got != tt.wantBorder {
				t.Errorf("border channel present = %v, expected %v", got, tt.wantBorder)
			}
			if got := tok.Contrast.OutlineOnBg != nil; got != tt.wantOutline {
				t.Errorf("outline channel present = %v, expected %v", got, tt.wantOutline)
			}
		})
	}
}

// TestComputeContrastKeepsPrecomputed tests that a token arriving with
// collaborator-supplied ratios is left untouched.
func TestComputeContrastKeepsPrecomputed(t *testing.T) {
	t.Parallel()

	pre := &model.ContrastResult{TextOnBg: &model.VisionRatios{}}
	pre.TextOnBg.Set(model.VisionNormal, 7.77)

	tok := &model.StyleToken{
		TextColor:       "rgb(0, 0, 0)",
		BackgroundColor: "rgb(255, 255, 255)",
		Contrast:        pre,
	}
	ComputeContrast(tok, identitySimulator{})

	if tok.Contrast != pre {
		t.Fatal("precomputed contrast was replaced")
	}
}

// TestComputeContrastSimulatesBothSides tests that deficiency ratios
// come from the simulated colors: pure red dims sharply under
// protanopia, so its contrast against black drops below normal vision.
func TestComputeContrastSimulatesBothSides(t *testing.T) {
	t.Parallel()

	tok := &model.StyleToken{
		TextColor:       "rgb(255, 0, 0)",
		BackgroundColor: "rgb(0, 0, 0)",
	}
	ComputeContrast(tok, simulate.NewCache(simulate.Machado2009{}))

	ratios := tok.Contrast.TextOnBg
	if ratios == nil {
		t.Fatal("text channel not measured")
	}
	normal := ratios.Get(model.VisionNormal)
	protan := ratios.Get(model.VisionProtanopia)
	if normal == nil || protan == nil {
		t.Fatal("missing ratios")
	}
	if *protan >= *normal {
		t.Errorf("protanopia ratio %v did not drop below normal %v", *protan, *normal)
	}
}
