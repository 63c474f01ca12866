package model

import (
	"encoding/json"
	"fmt"
)

// Channel identifies one foreground-on-background contrast pair of a
// style token.
type Channel int

const (
	// ChannelText is the element's text color against its background.
	ChannelText Channel = iota

	// ChannelBorder is the border color against the background.
	ChannelBorder

	// ChannelOutline is the outline color against the background.
	ChannelOutline
)

// Channels is the fixed evaluation and reporting order.
var Channels = [...]Channel{ChannelText, ChannelBorder, ChannelOutline}

// String returns the short channel name used in failure reasons.
func (c Channel) String() string {
	switch c {
	case ChannelText:
		return "text"
	case ChannelBorder:
		return "border"
	case ChannelOutline:
		return "outline"
	default:
		return "unknown"
	}
}

// wireName returns the channel key used in scan documents and reports.
func (c Channel) wireName() string {
	switch c {
	case ChannelText:
		return "text_on_bg"
	case ChannelBorder:
		return "border_on_bg"
	case ChannelOutline:
		return "outline_on_bg"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the channel as its wire name.
func (c Channel) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.wireName() + `"`), nil
}

// UnmarshalJSON decodes a channel from its wire name.
func (c *Channel) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for _, ch := range Channels {
		if ch.wireName() == name {
			*c = ch
			return nil
		}
	}
	return fmt.Errorf("unknown channel %q", name)
}

// VisionRatios holds one contrast ratio per vision type for a single
// channel. A nil entry means the ratio could not be measured for that
// vision type; in practice either all four entries are populated or the
// whole channel is absent, since simulation is total over parsable
// colors.
type VisionRatios struct {
	Normal       *float64 `json:"normal"`
	Protanopia   *float64 `json:"protanopia"`
	Deuteranopia *float64 `json:"deuteranopia"`
	Tritanopia   *float64 `json:"tritanopia"`
}

// Get returns the ratio for a vision type, or nil if unmeasured.
func (r *VisionRatios) Get(v Vision) *float64 {
	switch v {
	case VisionNormal:
		return r.Normal
	case VisionProtanopia:
		return r.Protanopia
	case VisionDeuteranopia:
		return r.Deuteranopia
	case VisionTritanopia:
		return r.Tritanopia
	default:
		return nil
	}
}

// Set stores the ratio for a vision type.
func (r *VisionRatios) Set(v Vision, ratio float64) {
	switch v {
	case VisionNormal:
		r.Normal = &ratio
	case VisionProtanopia:
		r.Protanopia = &ratio
	case VisionDeuteranopia:
		r.Deuteranopia = &ratio
	case VisionTritanopia:
		r.Tritanopia = &ratio
	}
}

// Worst returns the minimum ratio across the populated vision entries
// and the vision type that produced it. Ties resolve to the earliest
// type in the fixed order (normal, protanopia, deuteranopia,
// tritanopia). ok is false when no entry is populated.
func (r *VisionRatios) Worst() (worst float64, vision Vision, ok bool) {
	for _, v := range Visions {
		ratio := r.Get(v)
		if ratio == nil {
			continue
		}
		if !ok || *ratio < worst {
			worst = *ratio
			vision = v
			ok = true
		}
	}
	return worst, vision, ok
}

// ContrastResult holds the measured ratios of one style token, one entry
// per channel. A nil channel means either side of the pair had no
// parsable color; such channels are excluded from classification
// entirely rather than coerced to a pass or a fail.
//
// Known gap: unparsable colors (hex, named, hsl) silently remove a
// channel from measurement with no distinct "unmeasured" reporting
// category. This mirrors the scanner's established behavior.
type ContrastResult struct {
	TextOnBg    *VisionRatios `json:"text_on_bg"`
	BorderOnBg  *VisionRatios `json:"border_on_bg"`
	OutlineOnBg *VisionRatios `json:"outline_on_bg"`
}

// Get returns the ratios for a channel, or nil if the channel is absent.
func (c *ContrastResult) Get(ch Channel) *VisionRatios {
	switch ch {
	case ChannelText:
		return c.TextOnBg
	case ChannelBorder:
		return c.BorderOnBg
	case ChannelOutline:
		return c.OutlineOnBg
	default:
		return nil
	}
}

// Set stores the ratios for a channel.
func (c *ContrastResult) Set(ch Channel, ratios *VisionRatios) {
	switch ch {
	case ChannelText:
		c.TextOnBg = ratios
	case ChannelBorder:
		c.BorderOnBg = ratios
	case ChannelOutline:
		c.OutlineOnBg = ratios
	}
}

// ChannelVerdict is the assessment of one measurable channel.
//
// Fails and CVDOnly are intentionally independent predicates, not
// complements: Fails uses the worst case across all vision types
// including normal, while CVDOnly requires a normal-vision pass plus at
// least one deficiency failure. A token that already fails for normal
// vision is vulnerable but not CVD-only.
type ChannelVerdict struct {
	// Channel identifies which pair this verdict covers.
	Channel Channel `json:"channel"`

	// Threshold is the required ratio applied to this channel.
	Threshold float64 `json:"threshold"`

	// Worst is the minimum ratio across vision types, and WorstVision
	// the type that produced it.
	Worst       float64 `json:"worst"`
	WorstVision Vision  `json:"worst_vision"`

	// Fails reports Worst < Threshold.
	Fails bool `json:"fails"`

	// CVDOnly reports a normal-vision pass combined with at least one
	// deficiency-type failure.
	CVDOnly bool `json:"cvd_only"`
}

// VulnerabilityVerdict is the full classification of one style token.
type VulnerabilityVerdict struct {
	// FontThreshold is the text requirement derived from font metrics.
	FontThreshold float64 `json:"font_threshold"`

	// Channels holds one verdict per measurable channel, in the fixed
	// order text, border, outline. Absent channels contribute nothing.
	Channels []ChannelVerdict `json:"channels,omitempty"`

	// Reasons lists human-readable failure descriptions in channel
	// order, each embedding the threshold, the worst ratio, and the
	// vision type responsible.
	Reasons []string `json:"reasons,omitempty"`

	// IsVulnerable reports whether any channel fails.
	IsVulnerable bool `json:"is_vulnerable"`
}

// Channel returns the verdict for a channel, or nil if it was absent.
func (v *VulnerabilityVerdict) Channel(ch Channel) *ChannelVerdict {
	for i := range v.Channels {
		if v.Channels[i].Channel == ch {
			return &v.Channels[i]
		}
	}
	return nil
}

// CVDOnlyAny reports whether any channel is CVD-only vulnerable.
func (v *VulnerabilityVerdict) CVDOnlyAny() bool {
	for i := range v.Channels {
		if v.Channels[i].CVDOnly {
			return true
		}
	}
	return false
}
