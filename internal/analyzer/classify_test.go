package analyzer

import (
	"testing"

	"github.com/nao1215/contrastscan/internal/model"
)

// ratios builds a fully populated VisionRatios in the fixed order
// normal, protanopia, deuteranopia, tritanopia.
func ratios(normal, protan, deutan, tritan float64) *model.VisionRatios {
	r := &model.VisionRatios{}
	r.Set(model.VisionNormal, normal)
	r.Set(model.VisionProtanopia, protan)
	r.Set(model.VisionDeuteranopia, deutan)
	r.Set(model.VisionTritanopia, tritan)
	return r
}

// textToken builds a normal-size token with the given text ratios.
func textToken(r *model.VisionRatios) *model.StyleToken {
	return &model.StyleToken{
		FontSize:   "16px",
		FontWeight: "400",
		Contrast:   &model.ContrastResult{TextOnBg: r},
	}
}

// TestClassifyCVDOnly tests the defining case: normal vision passes,
// one deficiency fails, so the token is both vulnerable and CVD-only.
func TestClassifyCVDOnly(t *testing.T) {
	t.Parallel()

	tok := textToken(ratios(5.0, 3.9, 5.2, 5.5))
	Classify(tok)

	v := tok.Verdict
	if v == nil {
		t.Fatal("no verdict")
	}
	if !v.IsVulnerable {
		t.Error("expected IsVulnerable")
	}
	cv := v.Channel(model.ChannelText)
	if cv == nil {
		t.Fatal("no text channel verdict")
	}
	if !cv.Fails {
		t.Error("expected Fails")
	}
	if !cv.CVDOnly {
		t.Error("expected CVDOnly")
	}
	if cv.Worst != 3.9 || cv.WorstVision != model.VisionProtanopia {
		t.Errorf("worst = %v @ %v, expected 3.9 @ protanopia", cv.Worst, cv.WorstVision)
	}
	want := "text<4.5 (worst 3.9 @ protanopia)"
	if len(v.Reasons) != 1 || v.Reasons[0] != want {
		t.Errorf("Reasons = %v, expected [%q]", v.Reasons, want)
	}
}

// TestClassifyNormalFailureIsNotCVDOnly tests that a token failing for
// normal vision is vulnerable but never CVD-only, even when deficiency
// ratios also fall below the threshold.
func TestClassifyNormalFailureIsNotCVDOnly(t *testing.T) {
	t.Parallel()

	tok := textToken(ratios(3.0, 2.5, 3.0, 3.0))
	Classify(tok)

	cv := tok.Verdict.Channel(model.ChannelText)
	if cv == nil {
		t.Fatal("no text channel verdict")
	}
	if !cv.Fails {
		t.Error("expected Fails")
	}
	if cv.CVDOnly {
		t.Error("CVDOnly must be false when normal vision fails")
	}
}

// TestClassifyPassingToken tests that a comfortably passing token has
// no reasons and no vulnerability.
func TestClassifyPassingToken(t *testing.T) {
	t.Parallel()

	tok := textToken(ratios(10.0, 9.5, 9.8, 10.2))
	Classify(tok)

	if tok.Verdict.IsVulnerable {
		t.Error("unexpected IsVulnerable")
	}
	if len(tok.Verdict.Reasons) != 0 {
		t.Errorf("unexpected reasons: %v", tok.Verdict.Reasons)
	}
	cv := tok.Verdict.Channel(model.ChannelText)
	if cv == nil || cv.Fails || cv.CVDOnly {
		t.Errorf("unexpected channel verdict: %+v", cv)
	}
}

// TestClassifyLargeTextThreshold tests that large text is held to 3.0
// rather than 4.5.
func TestClassifyLargeTextThreshold(t *testing.T) {
	t.Parallel()

	tok := textToken(ratios(3.5, 3.2, 3.4, 3.6))
	tok.FontSize = "24px"
	Classify(tok)

	if tok.Verdict.FontThreshold != model.AAThresholdLarge {
		t.Fatalf("FontThreshold = %v, expected 3.0", tok.Verdict.FontThreshold)
	}
	if tok.Verdict.IsVulnerable {
		t.Error("large text at 3.2 worst must pass the 3.0 requirement")
	}
}

// TestClassifyIndicatorChannels tests that borders and outlines use the
// fixed indicator requirement regardless of font metrics, and that
// reasons keep the fixed text, border, outline order.
func TestClassifyIndicatorChannels(t *testing.T) {
	t.Parallel()

	tok := &model.StyleToken{
		FontSize:   "16px",
		FontWeight: "400",
		Contrast: &model.ContrastResult{
			TextOnBg:    ratios(4.0, 4.1, 4.2, 4.3),
			BorderOnBg:  ratios(3.5, 2.8, 3.6, 3.7),
			OutlineOnBg: ratios(2.0, 1.9, 2.1, 2.2),
		},
	}
	Classify(tok)

	v := tok.Verdict
	if len(v.Channels) != 3 {
		t.Fatalf("expected 3 channel verdicts, got %d", len(v.Channels))
	}
	border := v.Channel(model.ChannelBorder)
	if border.Threshold != model.IndicatorThreshold {
		t.Errorf("border threshold = %v, expected 3.0", border.Threshold)
	}
	if !border.CVDOnly {
		t.Error("border passes normal vision and fails protanopia, expected CVDOnly")
	}

	want := []string{
		"text<4.5 (worst 4.0 @ normal)",
		"border<3.0 (worst 2.8 @ protanopia)",
		"outline<3.0 (worst 1.9 @ protanopia)",
	}
	if len(v.Reasons) != len(want) {
		t.Fatalf("Reasons = %v, expected %v", v.Reasons, want)
	}
	for i, w := range want {
		if v.Reasons[i] != w {
			t.Errorf("Reasons[%d] = %q, expected %q", i, v.Reasons[i], w)
		}
	}
}

// TestClassifyAbsentChannels tests that unmeasured channels contribute
// nothing: a token with no contrast at all gets an empty verdict.
func TestClassifyAbsentChannels(t *testing.T) {
	t.Parallel()

	tok := &model.StyleToken{FontSize: "16px", FontWeight: "400"}
	Classify(tok)

	if tok.Verdict == nil {
		t.Fatal("no verdict")
	}
	if tok.Verdict.IsVulnerable || len(tok.Verdict.Channels) != 0 {
		t.Errorf("unexpected verdict: %+v", tok.Verdict)
	}

	// A present text channel alongside absent indicators still yields a
	// single channel verdict.
	tok2 := textToken(ratios(2.0, 2.0, 2.0, 2.0))
	Classify(tok2)
	if len(tok2.Verdict.Channels) != 1 {
		t.Errorf("expected 1 channel verdict, got %d", len(tok2.Verdict.Channels))
	}
}

// TestClassifyWorstTieBreak tests that ties on the worst ratio resolve
// to the earliest vision type in the fixed order.
func TestClassifyWorstTieBreak(t *testing.T) {
	t.Parallel()

	tok := textToken(ratios(4.0, 4.0, 4.0, 4.0))
	Classify(tok)

	cv := tok.Verdict.Channel(model.ChannelText)
	if cv.WorstVision != model.VisionNormal {
		t.Errorf("WorstVision = %v, expected normal on a tie", cv.WorstVision)
	}
}

// TestFormatRatio tests the reason-string number rendering.
func TestFormatRatio(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float64
		want string
	}{
		{3.0, "3.0"},
		{4.5, "4.5"},
		{3.9, "3.9"},
		{4.54, "4.54"},
		{21.0, "21.0"},
	}
	for _, tt := range tests {
		if got := formatRatio(tt.in); got != tt.want {
			t.Errorf("formatRatio(%v) = %q, expected %q", tt.in, got, tt.want)
		}
	}
}
