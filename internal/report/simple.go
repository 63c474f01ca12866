package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/contrastscan/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with a cross-site CVI
// ranking and clear section formatting.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether sections with no entries are shown.
	showEmpty bool

	// verbose enables per-site vulnerable example listings.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show empty sections.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// WithVerbose enables verbose output with per-site example details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		showEmpty:  false,
		verbose:    false,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the full audit report in human-readable format.
func (w *SimpleWriter) Write(report *model.AuditReport) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeRanking(&sb, report)
	w.writeRiskSummary(&sb, report)
	w.writeFailedSites(&sb, report)

	if w.verbose {
		for _, site := range report.Sites {
			if site.Failed() || site.Summary == nil {
				continue
			}
			w.writeSiteDetail(&sb, site.Summary)
		}
	}

	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// WriteSite outputs a single site summary in human-readable format.
func (w *SimpleWriter) WriteSite(summary *model.SiteSummary) (int, error) {
	var sb strings.Builder
	w.writeSiteDetail(&sb, summary)
	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report header with audit metadata.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.AuditReport) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                      CONTRASTSCAN AUDIT REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Scan Date:   %s\n", report.ScanDate))
	sb.WriteString(fmt.Sprintf("CVD Model:   %s\n", report.CVDModel))
	sb.WriteString(fmt.Sprintf("Generated:   %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("Sites:       %d\n", len(report.Sites)))
	sb.WriteString("\n")
}

// writeRanking writes the cross-site CVI table. Sites with scan errors
// or zero style tokens never appear here.
func (w *SimpleWriter) writeRanking(sb *strings.Builder, report *model.AuditReport) {
	rows := report.CVITable()
	if len(rows) == 0 && !w.showEmpty {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("SITE RANKING (CVI)\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	if len(rows) == 0 {
		sb.WriteString("  No measurable sites\n\n")
		return
	}

	for _, row := range rows {
		indicator := riskIndicator(row.Category)
		sb.WriteString(fmt.Sprintf("  [%s] %-30s CVI %6s  %s (%d/%d vulnerable)\n",
			indicator, row.Site, formatCVI(row.CVI), row.Category, row.TotalVulnerable, row.TotalStyles))
	}
	sb.WriteString("\n")
}

// writeRiskSummary writes counts per risk category over measurable sites.
func (w *SimpleWriter) writeRiskSummary(sb *strings.Builder, report *model.AuditReport) {
	rows := report.CVITable()
	if len(rows) == 0 && !w.showEmpty {
		return
	}

	counts := make(map[model.RiskCategory]int, len(rows))
	for _, row := range rows {
		counts[row.Category]++
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("RISK SUMMARY\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("  CRITICAL:         %d\n", counts[model.RiskCritical]))
	sb.WriteString(fmt.Sprintf("  HIGH:             %d\n", counts[model.RiskHigh]))
	sb.WriteString(fmt.Sprintf("  MODERATE:         %d\n", counts[model.RiskModerate]))
	sb.WriteString(fmt.Sprintf("  MINOR:            %d\n", counts[model.RiskMinor]))
	sb.WriteString(fmt.Sprintf("  FULLY ACCESSIBLE: %d\n", counts[model.RiskFullyAccessible]))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  TOTAL:            %d sites measured\n", len(rows)))
	sb.WriteString("\n")
}

// writeFailedSites writes the sites whose upstream scan failed.
func (w *SimpleWriter) writeFailedSites(sb *strings.Builder, report *model.AuditReport) {
	failed := report.FailedSites()
	if len(failed) == 0 && !w.showEmpty {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("FAILED SITES\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	if len(failed) == 0 {
		sb.WriteString("  No failed sites\n")
	} else {
		for _, site := range failed {
			sb.WriteString(fmt.Sprintf("  [x] %s: %s\n", site.Site, site.ScanError))
		}
	}
	sb.WriteString("\n")
}

// writeSiteDetail writes one site's counters and its ranked vulnerable
// examples.
func (w *SimpleWriter) writeSiteDetail(sb *strings.Builder, summary *model.SiteSummary) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("SITE: %s\n", summary.Site))
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	if summary.URL != "" {
		sb.WriteString(fmt.Sprintf("  URL:                %s\n", summary.URL))
	}
	sb.WriteString(fmt.Sprintf("  Elements kept:      %d (of %d scanned)\n", summary.Kept, summary.Scanned))
	sb.WriteString(fmt.Sprintf("  Style groups:       %d\n", summary.UniqueStyleGroups))
	sb.WriteString(fmt.Sprintf("  Vulnerable groups:  %d\n", summary.TotalVulnerable))
	sb.WriteString(fmt.Sprintf("  CVD-only failures:  %d\n", summary.CVDOnlyCount))

	if summary.HasCVI() {
		sb.WriteString(fmt.Sprintf("  CVI:                %s (%s)\n", formatCVI(*summary.CVI), summary.Risk))
	} else {
		sb.WriteString("  CVI:                not measurable\n")
	}
	sb.WriteString("\n")

	if len(summary.TopVulnerableExamples) == 0 {
		if w.showEmpty {
			sb.WriteString("  No vulnerable examples\n\n")
		}
		return
	}

	sb.WriteString("  Top vulnerable examples:\n")
	for _, ex := range summary.TopVulnerableExamples {
		sb.WriteString(fmt.Sprintf("  * %s (%s, %d elements)\n", humanizeCategory(ex.Category), ex.State, ex.Count))
		if ex.SampleLabel != "" {
			sb.WriteString(fmt.Sprintf("    Sample: %s\n", ex.SampleLabel))
		}
		sb.WriteString(fmt.Sprintf("    Colors: %s on %s\n", ex.TextColor, ex.BackgroundColor))
		for _, reason := range ex.Reasons {
			sb.WriteString(fmt.Sprintf("    Reason: %s\n", reason))
		}
	}
	sb.WriteString("\n")
}

// riskIndicator returns a visual indicator for the risk category.
func riskIndicator(category model.RiskCategory) string {
	switch category {
	case model.RiskCritical:
		return "!!!"
	case model.RiskHigh:
		return "!!"
	case model.RiskModerate:
		return "!"
	case model.RiskMinor:
		return "-"
	case model.RiskFullyAccessible:
		return "+"
	default:
		return "?"
	}
}

// formatCVI renders a CVI value as a percentage with one decimal.
func formatCVI(cvi float64) string {
	return fmt.Sprintf("%.1f%%", cvi*100)
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("Report generated by contrastscan\n")
	sb.WriteString("https://github.com/nao1215/contrastscan\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}
