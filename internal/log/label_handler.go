package log

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"
)

// labelKeys contains attribute keys whose values come from scraped page
// content (element labels, reasons, sample text). These values are
// untrusted and may be arbitrarily long.
var labelKeys = map[string]bool{
	"label":        true,
	"sample_label": true,
	"labels":       true,
	"text":         true,
	"reason":       true,
	"reasons":      true,
}

// MaxLabelRunes is the length at which scraped label values are
// truncated in log output. Long enough to identify the element, short
// enough to keep one record on one line.
const MaxLabelRunes = 140

// Ellipsis marks a truncated value.
const Ellipsis = "..."

// LabelHandler wraps an slog.Handler to sanitize scraped page content.
// Element labels come straight from audited pages, so they can contain
// control characters, ANSI escapes, and newlines that would corrupt
// terminal output or allow log forgery. The handler strips control
// characters from every string attribute and truncates label-like
// attributes to a bounded length.
//
// Design decision: We use a handler wrapper rather than a custom logger
// because:
//  1. It integrates seamlessly with standard slog APIs
//  2. It works with any underlying handler (text, JSON, etc.)
//  3. Sanitization happens once, regardless of which logger logs the value
type LabelHandler struct {
	// handler is the underlying slog handler that receives sanitized records.
	handler slog.Handler
}

// NewLabelHandler creates a new LabelHandler wrapping the given handler.
// If handler is nil, the returned LabelHandler uses slog.Default().Handler().
func NewLabelHandler(handler slog.Handler) *LabelHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &LabelHandler{handler: handler}
}

// Enabled reports whether the handler handles records at the given level.
// It delegates to the underlying handler.
func (h *LabelHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle sanitizes the record's attributes and passes it to the
// underlying handler.
func (h *LabelHandler) Handle(ctx context.Context, r slog.Record) error {
	sanitized := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		sanitized.AddAttrs(h.sanitizeAttr(a))
		return true
	})

	return h.handler.Handle(ctx, sanitized)
}

// WithAttrs returns a new handler with the given attributes added.
// Attributes are sanitized before being added.
func (h *LabelHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	sanitizedAttrs := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		sanitizedAttrs[i] = h.sanitizeAttr(a)
	}
	return &LabelHandler{handler: h.handler.WithAttrs(sanitizedAttrs)}
}

// WithGroup returns a new handler with the given group name.
func (h *LabelHandler) WithGroup(name string) slog.Handler {
	return &LabelHandler{handler: h.handler.WithGroup(name)}
}

// sanitizeAttr sanitizes a single attribute, recursively handling groups.
func (h *LabelHandler) sanitizeAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		sanitizedAttrs := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			sanitizedAttrs[i] = h.sanitizeAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(sanitizedAttrs...)}
	}

	if a.Value.Kind() != slog.KindString {
		return a
	}

	val := stripControl(a.Value.String())
	if labelKeys[strings.ToLower(a.Key)] {
		val = truncateRunes(val, MaxLabelRunes)
	}
	return slog.String(a.Key, val)
}

// stripControl replaces control characters (including newlines and ANSI
// escape introducers) with spaces, collapsing nothing else.
func stripControl(s string) string {
	if !strings.ContainsFunc(s, unicode.IsControl) {
		return s
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)
}

// truncateRunes shortens s to at most n runes, appending an ellipsis
// when anything was cut.
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + Ellipsis
}

// NewLogger creates a new slog.Logger with label sanitization writing
// text records.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - verbose: If true, sets log level to Debug; otherwise Info
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	textHandler := slog.NewTextHandler(w, opts)
	return slog.New(NewLabelHandler(textHandler))
}

// NewJSONLogger creates a new slog.Logger with label sanitization that
// outputs JSON format. Useful for structured log aggregation.
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	jsonHandler := slog.NewJSONHandler(w, opts)
	return slog.New(NewLabelHandler(jsonHandler))
}
