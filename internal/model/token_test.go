package model

import (
	"strings"
	"testing"
)

// TestClassify tests the closed tag/role category mapping.
func TestClassify(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		tag   string
		role  string
		layer Layer
		want  Category
	}{
		{"button tag", "button", "", LayerInteractive, CategoryButton},
		{"button tag uppercase", "BUTTON", "", LayerInteractive, CategoryButton},
		{"anchor", "a", "", LayerInteractive, CategoryLink},
		{"input", "input", "", LayerInteractive, CategoryInput},
		{"select", "select", "", LayerInteractive, CategoryInput},
		{"textarea", "textarea", "", LayerInteractive, CategoryInput},
		{"nav", "nav", "", LayerContent, CategoryNavigation},
		{"label", "label", "", LayerContent, CategoryLabel},
		{"list item", "li", "", LayerContent, CategoryListItem},
		{"h1", "h1", "", LayerContent, CategoryHeading},
		{"h6", "h6", "", LayerContent, CategoryHeading},
		{"paragraph", "p", "", LayerContent, CategoryParagraph},
		{"tag wins over role", "button", "link", LayerInteractive, CategoryButton},
		{"role button", "div", "button", LayerInteractive, CategoryButton},
		{"role link", "span", "link", LayerInteractive, CategoryLink},
		{"role textbox", "div", "textbox", LayerInteractive, CategoryTextbox},
		{"role tab", "div", "tab", LayerInteractive, CategoryTab},
		{"role checkbox", "div", "checkbox", LayerInteractive, CategoryCheckbox},
		{"role radio", "div", "radio", LayerInteractive, CategoryRadio},
		{"role navigation", "div", "navigation", LayerContent, CategoryNavigation},
		{"unknown interactive", "div", "", LayerInteractive, CategoryInteractiveOther},
		{"unknown role interactive", "div", "menuitem", LayerInteractive, CategoryInteractiveOther},
		{"unknown content", "span", "", LayerContent, CategoryOther},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := Classify(tc.tag, tc.role, tc.layer)
			if got != tc.want {
				t.Errorf("Classify(%q, %q, %q) = %q, expected %q", tc.tag, tc.role, tc.layer, got, tc.want)
			}
		})
	}
}

// testRecord returns a record with a fully populated style tuple.
func testRecord(label string) RawElementRecord {
	return RawElementRecord{
		Tag:             "button",
		Label:           label,
		Layer:           LayerInteractive,
		State:           StateBase,
		TextColor:       "rgb(255, 255, 255)",
		BackgroundColor: "rgb(0, 122, 255)",
		FontSize:        "16px",
		FontWeight:      "400",
		TextDecoration:  "none",
		BorderColor:     "rgb(0, 122, 255)",
		BorderWidth:     "1px",
		BorderStyle:     "solid",
		OutlineColor:    "rgb(0, 0, 0)",
		OutlineWidth:    "0px",
		OutlineStyle:    "none",
	}
}

// TestStyleKeyFields tests that all 14 identity fields participate in
// the key.
func TestStyleKeyFields(t *testing.T) {
	t.Parallel()

	base := testRecord("Submit")
	baseKey := base.Key()

	if got := len(strings.Split(string(baseKey), "|")); got != 14 {
		t.Fatalf("key has %d fields, expected 14", got)
	}

	mutations := map[string]func(*RawElementRecord){
		"layer":           func(r *RawElementRecord) { r.Layer = LayerContent },
		"state":           func(r *RawElementRecord) { r.State = StateError },
		"category":        func(r *RawElementRecord) { r.Tag = "a" },
		"textColor":       func(r *RawElementRecord) { r.TextColor = "rgb(0, 0, 0)" },
		"backgroundColor": func(r *RawElementRecord) { r.BackgroundColor = "rgb(1, 2, 3)" },
		"fontSize":        func(r *RawElementRecord) { r.FontSize = "18px" },
		"fontWeight":      func(r *RawElementRecord) { r.FontWeight = "700" },
		"textDecoration":  func(r *RawElementRecord) { r.TextDecoration = "underline" },
		"borderColor":     func(r *RawElementRecord) { r.BorderColor = "rgb(9, 9, 9)" },
		"borderWidth":     func(r *RawElementRecord) { r.BorderWidth = "2px" },
		"borderStyle":     func(r *RawElementRecord) { r.BorderStyle = "dashed" },
		"outlineColor":    func(r *RawElementRecord) { r.OutlineColor = "rgb(7, 7, 7)" },
		"outlineWidth":    func(r *RawElementRecord) { r.OutlineWidth = "3px" },
		"outlineStyle":    func(r *RawElementRecord) { r.OutlineStyle = "dotted" },
	}

	for field, mutate := range mutations {
		field, mutate := field, mutate
		t.Run(field, func(t *testing.T) {
			t.Parallel()
			rec := testRecord("Submit")
			mutate(&rec)
			if rec.Key() == baseKey {
				t.Errorf("changing %s did not change the style key", field)
			}
		})
	}

	// A label difference must NOT change the key.
	other := testRecord("Cancel")
	if other.Key() != baseKey {
		t.Error("label participated in the style key")
	}
}

// TestStyleTokenAbsorb tests merging records into a token.
func TestStyleTokenAbsorb(t *testing.T) {
	t.Parallel()

	t.Run("identical keys merge with labels retained", func(t *testing.T) {
		t.Parallel()

		a := testRecord("Submit")
		b := testRecord("Cancel")
		if a.Key() != b.Key() {
			t.Fatal("test records must share a key")
		}

		tok := NewStyleToken(a)
		tok.Absorb(b)

		if tok.Count != 2 {
			t.Errorf("count = %d, expected 2", tok.Count)
		}
		want := []string{"Submit", "Cancel"}
		if len(tok.SampleLabels) != 2 || tok.SampleLabels[0] != want[0] || tok.SampleLabels[1] != want[1] {
			t.Errorf("sample labels = %v, expected %v", tok.SampleLabels, want)
		}
	})

	t.Run("label cap and dedup", func(t *testing.T) {
		t.Parallel()

		tok := NewStyleToken(testRecord("L0"))
		for _, label := range []string{"L1", "L2", "L0", "L3", "L4", "L5", "L6"} {
			tok.Absorb(testRecord(label))
		}

		if len(tok.SampleLabels) != 5 {
			t.Fatalf("sample labels = %v, expected 5 entries", tok.SampleLabels)
		}
		want := []string{"L0", "L1", "L2", "L3", "L4"}
		for i, l := range want {
			if tok.SampleLabels[i] != l {
				t.Errorf("sampleLabels[%d] = %q, expected %q", i, tok.SampleLabels[i], l)
			}
		}
		if tok.Count != 8 {
			t.Errorf("count = %d, expected 8", tok.Count)
		}
	})

	t.Run("pre-grouped record", func(t *testing.T) {
		t.Parallel()

		a := testRecord("Submit")
		grouped := testRecord("")
		grouped.Label = ""
		grouped.Count = 7
		grouped.SampleLabels = []string{"Buy now", "Submit"}
		grouped.SampleTags = []string{"button"}
		grouped.A11y = &AccessibilityCounters{RequiredExamples: 3, AriaInvalidExamples: 1}

		tok := NewStyleToken(a)
		tok.Absorb(grouped)

		if tok.Count != 8 {
			t.Errorf("count = %d, expected 8", tok.Count)
		}
		want := []string{"Submit", "Buy now"}
		if len(tok.SampleLabels) != 2 || tok.SampleLabels[0] != want[0] || tok.SampleLabels[1] != want[1] {
			t.Errorf("sample labels = %v, expected %v", tok.SampleLabels, want)
		}
		if tok.A11y.RequiredExamples != 3 || tok.A11y.AriaInvalidExamples != 1 {
			t.Errorf("a11y counters = %+v", tok.A11y)
		}
	})

	t.Run("per element accessibility flags", func(t *testing.T) {
		t.Parallel()

		a := testRecord("Email")
		a.Required = true
		b := testRecord("Email")
		b.AriaInvalid = "true"

		tok := NewStyleToken(a)
		tok.Absorb(b)

		if tok.A11y.RequiredExamples != 1 {
			t.Errorf("required = %d, expected 1", tok.A11y.RequiredExamples)
		}
		if tok.A11y.AriaInvalidExamples != 1 {
			t.Errorf("ariaInvalid = %d, expected 1", tok.A11y.AriaInvalidExamples)
		}
	})

	t.Run("merge order independent state", func(t *testing.T) {
		t.Parallel()

		recs := []RawElementRecord{testRecord("A"), testRecord("B"), testRecord("C")}

		forward := NewStyleToken(recs[0])
		forward.Absorb(recs[1])
		forward.Absorb(recs[2])

		reverse := NewStyleToken(recs[2])
		reverse.Absorb(recs[1])
		reverse.Absorb(recs[0])

		if forward.Count != reverse.Count {
			t.Errorf("count differs by order: %d vs %d", forward.Count, reverse.Count)
		}
		if forward.Key() != reverse.Key() {
			t.Error("key differs by merge order")
		}
		if len(forward.SampleLabels) != len(reverse.SampleLabels) {
			t.Error("label set size differs by merge order")
		}
	})
}

// TestResolvedCategory tests category defaulting on records.
func TestResolvedCategory(t *testing.T) {
	t.Parallel()

	rec := RawElementRecord{Tag: "a", Layer: LayerInteractive}
	if got := rec.ResolvedCategory(); got != CategoryLink {
		t.Errorf("ResolvedCategory() = %q, expected link", got)
	}

	rec.Category = CategoryButton
	if got := rec.ResolvedCategory(); got != CategoryButton {
		t.Errorf("explicit category ignored: got %q", got)
	}
}
