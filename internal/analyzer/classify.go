package analyzer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nao1215/contrastscan/internal/model"
)

// Classify scores a token's measured channels against their thresholds
// and stores the verdict on the token. Text uses the font-derived
// threshold; borders and outlines use the fixed indicator requirement.
// Tokens with no contrast measurement get an empty, non-vulnerable
// verdict.
func Classify(tok *model.StyleToken) {
	verdict := &model.VulnerabilityVerdict{
		FontThreshold: model.FontThreshold(tok.FontSize, tok.FontWeight),
	}

	if tok.Contrast != nil {
		for _, ch := range model.Channels {
			ratios := tok.Contrast.Get(ch)
			if ratios == nil {
				continue
			}
			threshold := verdict.FontThreshold
			if ch != model.ChannelText {
				threshold = model.IndicatorThreshold
			}
			cv, ok := classifyChannel(ch, ratios, threshold)
			if !ok {
				continue
			}
			verdict.Channels = append(verdict.Channels, cv)
			if cv.Fails {
				verdict.IsVulnerable = true
				verdict.Reasons = append(verdict.Reasons, failureReason(cv))
			}
		}
	}

	tok.Verdict = verdict
}

// classifyChannel evaluates one channel. ok is false when the channel
// carries no measured ratios at all.
func classifyChannel(ch model.Channel, ratios *model.VisionRatios, threshold float64) (model.ChannelVerdict, bool) {
	worst, worstVision, ok := ratios.Worst()
	if !ok {
		return model.ChannelVerdict{}, false
	}

	cv := model.ChannelVerdict{
		Channel:     ch,
		Threshold:   threshold,
		Worst:       worst,
		WorstVision: worstVision,
		Fails:       worst < threshold,
	}

	// CVD-only: the normal-vision ratio meets the requirement but at
	// least one simulated deficiency falls below it. This is a separate
	// predicate from Fails, never its complement.
	if normal := ratios.Get(model.VisionNormal); normal != nil && *normal >= threshold {
		for _, v := range model.CVDVisions {
			if r := ratios.Get(v); r != nil && *r < threshold {
				cv.CVDOnly = true
				break
			}
		}
	}
	return cv, true
}

// failureReason renders one channel failure, e.g.
// "text<4.5 (worst 3.9 @ protanopia)".
func failureReason(cv model.ChannelVerdict) string {
	return fmt.Sprintf("%s<%s (worst %s @ %s)",
		cv.Channel, formatRatio(cv.Threshold), formatRatio(cv.Worst), cv.WorstVision)
}

// formatRatio prints a ratio with its natural precision, keeping one
// decimal on integral values so thresholds read "3.0" rather than "3".
func formatRatio(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
