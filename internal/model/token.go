package model

import "strings"

// Layer distinguishes interactive controls from plain content elements.
type Layer string

const (
	// LayerInteractive covers elements a user operates (links, buttons, inputs).
	LayerInteractive Layer = "interactive"

	// LayerContent covers non-operable text content.
	LayerContent Layer = "content"
)

// State identifies which visual state of an element a token describes.
type State string

const (
	// StateBase is the resting appearance of an element.
	StateBase State = "base"

	// StateError is the appearance after form validation failed.
	StateError State = "error"
)

// Category is the closed set of element categories a token can belong to.
// Classification is tag-based first, with an ARIA-role fallback for
// generic tags; see Classify.
type Category string

const (
	CategoryButton           Category = "button"
	CategoryLink             Category = "link"
	CategoryInput            Category = "input"
	CategoryNavigation       Category = "navigation"
	CategoryLabel            Category = "label"
	CategoryListItem         Category = "listitem"
	CategoryHeading          Category = "heading"
	CategoryParagraph        Category = "paragraph"
	CategoryTextbox          Category = "textbox"
	CategoryTab              Category = "tab"
	CategoryCheckbox         Category = "checkbox"
	CategoryRadio            Category = "radio"
	CategoryInteractiveOther Category = "interactive_other"
	CategoryOther            Category = "other"
)

// roleCategories are the ARIA roles accepted as a category when the tag
// itself is generic (div, span, ...).
var roleCategories = map[string]Category{
	"button":     CategoryButton,
	"link":       CategoryLink,
	"navigation": CategoryNavigation,
	"textbox":    CategoryTextbox,
	"tab":        CategoryTab,
	"checkbox":   CategoryCheckbox,
	"radio":      CategoryRadio,
}

// Classify maps an element's tag and ARIA role to its category.
//
// The mapping is a fixed closed set: tags win over roles, and anything
// unrecognized falls back to interactive_other on the interactive layer
// or other on the content layer.
func Classify(tag, role string, layer Layer) Category {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "button":
		return CategoryButton
	case "a":
		return CategoryLink
	case "input", "select", "textarea":
		return CategoryInput
	case "nav":
		return CategoryNavigation
	case "label":
		return CategoryLabel
	case "li":
		return CategoryListItem
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return CategoryHeading
	case "p":
		return CategoryParagraph
	}

	if cat, ok := roleCategories[strings.ToLower(strings.TrimSpace(role))]; ok {
		return cat
	}

	if layer == LayerContent {
		return CategoryOther
	}
	return CategoryInteractiveOther
}

// StyleKey is the canonical identity of a style token: the 14 key fields
// joined with "|". Two tokens merge if and only if their keys are equal;
// there is no fuzzy matching.
//
// Design decision: the key is an explicit string rather than a struct
// used as a map key so that equality semantics are portable (the key can
// be stored, logged, and compared across processes unchanged).
type StyleKey string

// Bounded sample list sizes. Samples exist for reporting, not analysis,
// so a handful of examples per token is enough.
const (
	maxSampleLabels = 5
	maxSampleNames  = 10
)

// AccessibilityCounters tallies accessibility-relevant flags across the
// elements merged into one token.
type AccessibilityCounters struct {
	// RequiredExamples counts elements marked required or aria-required.
	RequiredExamples int `json:"required_examples"`

	// AriaInvalidExamples counts elements carrying aria-invalid.
	AriaInvalidExamples int `json:"aria_invalid_examples"`
}

// StyleToken is the deduplicated canonical representation of one shared
// visual style combination. All elements with an identical StyleKey
// collapse into a single token that is scored once.
type StyleToken struct {
	Layer    Layer    `json:"layer"`
	Category Category `json:"category"`
	State    State    `json:"state"`

	TextColor       string `json:"textColor"`
	BackgroundColor string `json:"backgroundColor"`
	FontSize        string `json:"fontSize"`
	FontWeight      string `json:"fontWeight"`
	TextDecoration  string `json:"textDecoration"`
	BorderColor     string `json:"borderColor"`
	BorderWidth     string `json:"borderWidth"`
	BorderStyle     string `json:"borderStyle"`
	OutlineColor    string `json:"outlineColor"`
	OutlineWidth    string `json:"outlineWidth"`
	OutlineStyle    string `json:"outlineStyle"`

	// Count is the number of scanned elements merged into this token.
	Count int `json:"count"`

	// SampleLabels holds up to 5 distinct labels in first-seen order.
	SampleLabels []string `json:"sampleLabels,omitempty"`

	// SampleTags and SampleRoles hold up to 10 distinct entries each,
	// in first-seen order.
	SampleTags  []string `json:"sampleTags,omitempty"`
	SampleRoles []string `json:"sampleRoles,omitempty"`

	// A11y tallies accessibility flags across merged elements.
	A11y AccessibilityCounters `json:"a11y"`

	// Contrast holds the per-channel, per-vision ratios once computed.
	Contrast *ContrastResult `json:"contrast,omitempty"`

	// Verdict holds the pass/fail classification once computed.
	Verdict *VulnerabilityVerdict `json:"verdict,omitempty"`
}

// Key returns the canonical 14-field identity of the token.
func (t *StyleToken) Key() StyleKey {
	return makeStyleKey(
		t.Layer, t.Category, t.State,
		t.TextColor, t.BackgroundColor,
		t.FontSize, t.FontWeight, t.TextDecoration,
		t.BorderColor, t.BorderWidth, t.BorderStyle,
		t.OutlineColor, t.OutlineWidth, t.OutlineStyle,
	)
}

// makeStyleKey joins the 14 identity fields with "|".
func makeStyleKey(layer Layer, category Category, state State, fields ...string) StyleKey {
	parts := make([]string, 0, 14)
	parts = append(parts, string(layer), string(category), string(state))
	parts = append(parts, fields...)
	return StyleKey(strings.Join(parts, "|"))
}

// SampleLabel returns the first sample label, or "" if none were kept.
func (t *StyleToken) SampleLabel() string {
	if len(t.SampleLabels) == 0 {
		return ""
	}
	return t.SampleLabels[0]
}

// appendUnique appends value to items if it is non-empty, not already
// present, and the list is below limit. Linear membership check is fine
// at these sizes.
func appendUnique(items []string, value string, limit int) []string {
	if value == "" || len(items) >= limit {
		return items
	}
	for _, it := range items {
		if it == value {
			return items
		}
	}
	return append(items, value)
}
