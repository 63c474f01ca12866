package model

import (
	"encoding/json"
	"fmt"
)

// RiskCategory buckets a site's Component Vulnerability Index.
type RiskCategory int

const (
	// RiskFullyAccessible means no style token is CVD-only vulnerable.
	RiskFullyAccessible RiskCategory = iota

	// RiskMinor covers CVI up to 5%.
	RiskMinor

	// RiskModerate covers CVI up to 15%.
	RiskModerate

	// RiskHigh covers CVI up to 30%.
	RiskHigh

	// RiskCritical covers everything above 30%.
	RiskCritical
)

// String returns the human-readable category name.
func (r RiskCategory) String() string {
	switch r {
	case RiskFullyAccessible:
		return "Fully Accessible"
	case RiskMinor:
		return "Minor Risk"
	case RiskModerate:
		return "Moderate Risk"
	case RiskHigh:
		return "High Risk"
	case RiskCritical:
		return "Critical Risk"
	default:
		return "Unknown"
	}
}

// MarshalJSON encodes the category as its human-readable name.
func (r RiskCategory) MarshalJSON() ([]byte, error) {
	return []byte(`"` + r.String() + `"`), nil
}

// UnmarshalJSON decodes a category from its human-readable name.
func (r *RiskCategory) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for _, cat := range []RiskCategory{RiskFullyAccessible, RiskMinor, RiskModerate, RiskHigh, RiskCritical} {
		if cat.String() == name {
			*r = cat
			return nil
		}
	}
	return fmt.Errorf("unknown risk category %q", name)
}

// RiskFromCVI maps a CVI value to its category. Breakpoints are ordered
// and inclusive; the first match wins (cvi==0.15 is Moderate, not High).
func RiskFromCVI(cvi float64) RiskCategory {
	switch {
	case cvi == 0:
		return RiskFullyAccessible
	case cvi <= 0.05:
		return RiskMinor
	case cvi <= 0.15:
		return RiskModerate
	case cvi <= 0.30:
		return RiskHigh
	default:
		return RiskCritical
	}
}

// ChannelFailure is one failing channel of a vulnerable example, with
// the detail an auditor needs to reproduce the finding.
type ChannelFailure struct {
	Channel   Channel `json:"channel"`
	Threshold float64 `json:"threshold"`

	// Normal is the normal-vision ratio, nil when unmeasured.
	Normal *float64 `json:"normal"`

	Worst       float64 `json:"worst"`
	WorstVision Vision  `json:"worst_vision"`

	// FailingCVD maps each deficiency type whose ratio is below the
	// threshold to that ratio. AllCVD maps every measured deficiency
	// type to its ratio for context.
	FailingCVD map[string]float64 `json:"failing_cvd,omitempty"`
	AllCVD     map[string]float64 `json:"all_cvd,omitempty"`
}

// VulnerableExample is one row of a site's ranked vulnerable-token list.
type VulnerableExample struct {
	Category Category `json:"category"`
	State    State    `json:"state"`
	Count    int      `json:"count"`

	SampleLabel string `json:"sample_label"`

	TextColor       string `json:"textColor"`
	BackgroundColor string `json:"backgroundColor"`
	BorderColor     string `json:"borderColor,omitempty"`
	OutlineColor    string `json:"outlineColor,omitempty"`
	FontSize        string `json:"fontSize"`

	Reasons  []string         `json:"reasons"`
	Failures []ChannelFailure `json:"failures"`
}

// SiteSummary aggregates one site's tokens and verdicts.
//
// CVI is a pointer because it is undefined for a site with zero tokens:
// the value is omitted, never reported as 0.
type SiteSummary struct {
	Site string `json:"site"`
	URL  string `json:"url,omitempty"`

	Matched           int `json:"matched"`
	Scanned           int `json:"scanned"`
	Kept              int `json:"kept"`
	UniqueStyleGroups int `json:"unique_style_groups"`

	// Rollup counts over style tokens.
	VulnerableGroupsText      int `json:"vulnerable_groups_text"`
	VulnerableGroupsIndicator int `json:"vulnerable_groups_indicator"`
	CVDOnlyFailText           int `json:"cvd_only_fail_text"`
	CVDOnlyFailIndicator      int `json:"cvd_only_fail_indicator"`

	// TotalVulnerable counts tokens failing any channel; CVDOnlyCount
	// counts tokens with at least one CVD-only channel (the CVI
	// numerator).
	TotalVulnerable int `json:"total_vulnerable"`
	CVDOnlyCount    int `json:"cvd_only_count"`

	// CVI is CVDOnlyCount / UniqueStyleGroups, in [0,1].
	CVI *float64 `json:"cvi,omitempty"`

	// Risk is only meaningful when CVI is defined.
	Risk RiskCategory `json:"risk_category"`

	// CategoryCounts tallies kept elements per category.
	CategoryCounts map[Category]int `json:"category_counts,omitempty"`

	// TopVulnerableExamples is the ranked vulnerable-token list,
	// descending by element count with discovery order as tie-break.
	TopVulnerableExamples []VulnerableExample `json:"top_vulnerable_examples,omitempty"`
}

// HasCVI reports whether the site has a defined vulnerability index.
func (s *SiteSummary) HasCVI() bool {
	return s.CVI != nil
}

// CVIRow is one row of the cross-site CVI table. Sites with scan errors
// or zero tokens never appear here.
type CVIRow struct {
	Site            string       `json:"site"`
	CVI             float64      `json:"cvi"`
	Category        RiskCategory `json:"category"`
	TotalVulnerable int          `json:"total_vulnerable"`
	TotalStyles     int          `json:"total_styles"`
}
