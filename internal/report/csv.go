package report

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/contrastscan/internal/model"
)

// csvHeader is the fixed column order of the vulnerable-example export.
// One row per ranked example, flattened per channel so the file loads
// directly into spreadsheet tooling.
var csvHeader = []string{
	"site",
	"url",
	"category",
	"state",
	"count",
	"sample",
	"text_color",
	"background_color",
	"border_color",
	"outline_color",
	"font_size",
	"text_worst",
	"text_worst_vision",
	"border_worst",
	"border_worst_vision",
	"outline_worst",
	"outline_worst_vision",
	"cvd_only_text",
	"cvd_only_border",
	"cvd_only_outline",
	"reasons",
}

// CSVWriter exports the ranked vulnerable examples as CSV rows.
// This format is designed for spreadsheet analysis and data pipelines.
//
// Design decision: We use standard encoding/csv rather than a third-party
// CSV library because the export is a flat write-only table with a fixed
// header; quoting and RFC 4180 compliance are all we need.
type CSVWriter struct {
	baseWriter
}

// NewCSVWriter creates a CSVWriter that outputs to the given writer.
func NewCSVWriter(output io.Writer) *CSVWriter {
	return &CSVWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write exports the vulnerable examples of every measurable site.
// Byte counts are not tracked by encoding/csv, so the returned count is
// the number of data rows written instead.
func (w *CSVWriter) Write(report *model.AuditReport) (int, error) {
	cw := csv.NewWriter(w.output)
	if err := cw.Write(csvHeader); err != nil {
		return 0, err
	}

	var rows int
	for _, site := range report.Sites {
		if site.Failed() || site.Summary == nil {
			continue
		}
		n, err := w.writeSummaryRows(cw, site.Summary)
		rows += n
		if err != nil {
			return rows, err
		}
	}

	cw.Flush()
	return rows, cw.Error()
}

// WriteSite exports a single site's vulnerable examples.
func (w *CSVWriter) WriteSite(summary *model.SiteSummary) (int, error) {
	cw := csv.NewWriter(w.output)
	if err := cw.Write(csvHeader); err != nil {
		return 0, err
	}

	rows, err := w.writeSummaryRows(cw, summary)
	if err != nil {
		return rows, err
	}

	cw.Flush()
	return rows, cw.Error()
}

// writeSummaryRows emits one row per ranked example of a summary.
func (w *CSVWriter) writeSummaryRows(cw *csv.Writer, summary *model.SiteSummary) (int, error) {
	for i, ex := range summary.TopVulnerableExamples {
		if err := cw.Write(exampleRow(summary, ex)); err != nil {
			return i, err
		}
	}
	return len(summary.TopVulnerableExamples), nil
}

// exampleRow flattens one vulnerable example into the fixed column order.
func exampleRow(summary *model.SiteSummary, ex model.VulnerableExample) []string {
	textWorst, textVision, textCVDOnly := channelColumns(ex, model.ChannelText)
	borderWorst, borderVision, borderCVDOnly := channelColumns(ex, model.ChannelBorder)
	outlineWorst, outlineVision, outlineCVDOnly := channelColumns(ex, model.ChannelOutline)

	return []string{
		summary.Site,
		summary.URL,
		string(ex.Category),
		string(ex.State),
		strconv.Itoa(ex.Count),
		strings.ReplaceAll(ex.SampleLabel, "\n", " "),
		ex.TextColor,
		ex.BackgroundColor,
		ex.BorderColor,
		ex.OutlineColor,
		ex.FontSize,
		textWorst,
		textVision,
		borderWorst,
		borderVision,
		outlineWorst,
		outlineVision,
		textCVDOnly,
		borderCVDOnly,
		outlineCVDOnly,
		strings.Join(ex.Reasons, "; "),
	}
}

// channelColumns extracts the worst ratio, the vision type behind it, and
// the CVD-only flag for one channel. Channels without a recorded failure
// yield empty cells.
func channelColumns(ex model.VulnerableExample, ch model.Channel) (worst, vision, cvdOnly string) {
	for _, f := range ex.Failures {
		if f.Channel != ch {
			continue
		}
		worst = strconv.FormatFloat(f.Worst, 'f', -1, 64)
		vision = f.WorstVision.String()
		cvdOnly = strconv.FormatBool(f.Normal != nil && *f.Normal >= f.Threshold)
		return worst, vision, cvdOnly
	}
	return "", "", ""
}
