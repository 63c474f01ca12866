package analyzer

import "github.com/nao1215/contrastscan/internal/model"

// Tokenizer deduplicates raw element records into style tokens.
// Records are consumed in scan-discovery order; tokens come back out in
// the order their keys were first seen. Identity is exact equality on
// the 14-field style key, nothing fuzzier.
type Tokenizer struct {
	tokens map[model.StyleKey]*model.StyleToken
	order  []model.StyleKey
}

// NewTokenizer creates an empty Tokenizer.
func NewTokenizer() *Tokenizer {
	return &Tokenizer{
		tokens: make(map[model.StyleKey]*model.StyleToken),
	}
}

// Add merges one record. A new key creates a token seeded from the
// record; an existing key absorbs the record into its token.
func (t *Tokenizer) Add(rec model.RawElementRecord) {
	key := rec.Key()
	if tok, ok := t.tokens[key]; ok {
		tok.Absorb(rec)
		return
	}
	t.tokens[key] = model.NewStyleToken(rec)
	t.order = append(t.order, key)
}

// Tokens returns the deduplicated tokens in discovery order.
func (t *Tokenizer) Tokens() []*model.StyleToken {
	out := make([]*model.StyleToken, len(t.order))
	for i, key := range t.order {
		out[i] = t.tokens[key]
	}
	return out
}

// Len returns the number of distinct style tokens seen so far.
func (t *Tokenizer) Len() int {
	return len(t.order)
}

// Tokenize is a convenience for the common single-pass case.
func Tokenize(records []model.RawElementRecord) []*model.StyleToken {
	tk := NewTokenizer()
	for _, rec := range records {
		tk.Add(rec)
	}
	return tk.Tokens()
}
