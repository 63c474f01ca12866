package model

// RawElementRecord is one scanned element as delivered by the external
// scan collaborator. The collaborator has already resolved the effective
// background by walking ancestor nodes, so every color field is a final
// computed value.
//
// Records arrive in one of two shapes: per-element (singular Tag, Role,
// Label, Count omitted) or pre-grouped (Count plus sample lists and a11y
// counters). Both shapes flow through the same merge; a per-element
// record is simply a group of one.
type RawElementRecord struct {
	Tag   string `json:"tag,omitempty"`
	Role  string `json:"role,omitempty"`
	Label string `json:"label,omitempty"`

	Layer    Layer    `json:"layer,omitempty"`
	State    State    `json:"state,omitempty"`
	Category Category `json:"category,omitempty"`

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

	// Required reports the required/aria-required flag for per-element
	// records. AriaInvalid carries the raw aria-invalid attribute value;
	// any non-empty value counts as flagged.
	Required    bool   `json:"required,omitempty"`
	AriaInvalid string `json:"ariaInvalid,omitempty"`

	// Pre-grouped metadata. Count defaults to 1 when omitted.
	Count        int                    `json:"count,omitempty"`
	SampleLabels []string               `json:"sampleLabels,omitempty"`
	SampleTags   []string               `json:"sampleTags,omitempty"`
	SampleRoles  []string               `json:"sampleRoles,omitempty"`
	A11y         *AccessibilityCounters `json:"a11y,omitempty"`

	// Contrast carries precomputed ratios when the collaborator already
	// measured them. When nil, this core computes the ratios itself.
	Contrast *ContrastResult `json:"contrast,omitempty"`
}

// ResolvedLayer returns the record's layer, defaulting to interactive.
func (r *RawElementRecord) ResolvedLayer() Layer {
	if r.Layer == "" {
		return LayerInteractive
	}
	return r.Layer
}

// ResolvedState returns the record's state, defaulting to base.
func (r *RawElementRecord) ResolvedState() State {
	if r.State == "" {
		return StateBase
	}
	return r.State
}

// ResolvedCategory returns the record's category, classifying from tag
// and role when the collaborator did not assign one.
func (r *RawElementRecord) ResolvedCategory() Category {
	if r.Category != "" {
		return r.Category
	}
	return Classify(r.Tag, r.Role, r.ResolvedLayer())
}

// ResolvedCount returns the number of elements this record represents.
func (r *RawElementRecord) ResolvedCount() int {
	if r.Count <= 0 {
		return 1
	}
	return r.Count
}

// Key returns the canonical 14-field identity of the record. Records
// with equal keys merge into a single style token.
func (r *RawElementRecord) Key() StyleKey {
	return makeStyleKey(
		r.ResolvedLayer(), r.ResolvedCategory(), r.ResolvedState(),
		r.TextColor, r.BackgroundColor,
		r.FontSize, r.FontWeight, r.TextDecoration,
		r.BorderColor, r.BorderWidth, r.BorderStyle,
		r.OutlineColor, r.OutlineWidth, r.OutlineStyle,
	)
}

// NewStyleToken seeds a token from the first record observed for a key.
func NewStyleToken(r RawElementRecord) *StyleToken {
	t := &StyleToken{
		Layer:           r.ResolvedLayer(),
		Category:        r.ResolvedCategory(),
		State:           r.ResolvedState(),
		TextColor:       r.TextColor,
		BackgroundColor: r.BackgroundColor,
		FontSize:        r.FontSize,
		FontWeight:      r.FontWeight,
		TextDecoration:  r.TextDecoration,
		BorderColor:     r.BorderColor,
		BorderWidth:     r.BorderWidth,
		BorderStyle:     r.BorderStyle,
		OutlineColor:    r.OutlineColor,
		OutlineWidth:    r.OutlineWidth,
		OutlineStyle:    r.OutlineStyle,
		Contrast:        r.Contrast,
	}
	t.Absorb(r)
	return t
}

// Absorb merges one record into the token: the count grows by the
// record's element count, sample lists extend up to their caps without
// duplicates, and accessibility counters accumulate.
//
// Absorb is commutative and associative over records sharing a key
// except for sample-list contents, which deliberately keep first-seen
// order (they are illustrative, not analytical).
func (t *StyleToken) Absorb(r RawElementRecord) {
	t.Count += r.ResolvedCount()

	for _, label := range r.sampleLabelValues() {
		t.SampleLabels = appendUnique(t.SampleLabels, label, maxSampleLabels)
	}
	for _, tag := range r.sampleTagValues() {
		t.SampleTags = appendUnique(t.SampleTags, tag, maxSampleNames)
	}
	for _, role := range r.sampleRoleValues() {
		t.SampleRoles = appendUnique(t.SampleRoles, role, maxSampleNames)
	}

	if r.A11y != nil {
		t.A11y.RequiredExamples += r.A11y.RequiredExamples
		t.A11y.AriaInvalidExamples += r.A11y.AriaInvalidExamples
	} else {
		if r.Required {
			t.A11y.RequiredExamples++
		}
		if r.AriaInvalid != "" {
			t.A11y.AriaInvalidExamples++
		}
	}

	// Precomputed contrast travels with whichever record supplied it
	// first; all records under one key describe the same colors.
	if t.Contrast == nil && r.Contrast != nil {
		t.Contrast = r.Contrast
	}
}

func (r *RawElementRecord) sampleLabelValues() []string {
	if len(r.SampleLabels) > 0 {
		return r.SampleLabels
	}
	if r.Label != "" {
		return []string{r.Label}
	}
	return nil
}

func (r *RawElementRecord) sampleTagValues() []string {
	if len(r.SampleTags) > 0 {
		return r.SampleTags
	}
	if r.Tag != "" {
		return []string{r.Tag}
	}
	return nil
}

func (r *RawElementRecord) sampleRoleValues() []string {
	if len(r.SampleRoles) > 0 {
		return r.SampleRoles
	}
	if r.Role != "" {
		return []string{r.Role}
	}
	return nil
}
