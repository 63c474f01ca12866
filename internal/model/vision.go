package model

import "fmt"

// Vision identifies the vision type under which a contrast ratio was
// computed: normal vision or one of the three dichromatic color vision
// deficiencies.
//
// Design decision: iota-based constants rather than strings so the fixed
// evaluation order (normal, protanopia, deuteranopia, tritanopia) is the
// natural ordering of the type. The String method and JSON marshaling
// provide the wire names.
type Vision int

const (
	// VisionNormal is unimpaired color vision.
	VisionNormal Vision = iota

	// VisionProtanopia is the absence of L (red) cones.
	VisionProtanopia

	// VisionDeuteranopia is the absence of M (green) cones.
	VisionDeuteranopia

	// VisionTritanopia is the absence of S (blue) cones.
	VisionTritanopia
)

// Visions is the fixed evaluation order for all vision types.
// Worst-case ties resolve to the earliest entry in this order.
var Visions = [...]Vision{VisionNormal, VisionProtanopia, VisionDeuteranopia, VisionTritanopia}

// CVDVisions lists only the simulated deficiency types, in evaluation order.
var CVDVisions = [...]Vision{VisionProtanopia, VisionDeuteranopia, VisionTritanopia}

// String returns the canonical lowercase name used in scan documents
// and reports.
func (v Vision) String() string {
	switch v {
	case VisionNormal:
		return "normal"
	case VisionProtanopia:
		return "protanopia"
	case VisionDeuteranopia:
		return "deuteranopia"
	case VisionTritanopia:
		return "tritanopia"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the vision type as its canonical name.
func (v Vision) MarshalJSON() ([]byte, error) {
	return []byte(`"` + v.String() + `"`), nil
}

// UnmarshalJSON decodes a vision type from its canonical name.
func (v *Vision) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, ok := ParseVision(s)
	if !ok {
		return fmt.Errorf("unknown vision type %q", s)
	}
	*v = parsed
	return nil
}

// ParseVision converts a canonical name back to a Vision.
func ParseVision(s string) (Vision, bool) {
	switch s {
	case "normal":
		return VisionNormal, true
	case "protanopia":
		return VisionProtanopia, true
	case "deuteranopia":
		return VisionDeuteranopia, true
	case "tritanopia":
		return VisionTritanopia, true
	default:
		return VisionNormal, false
	}
}
