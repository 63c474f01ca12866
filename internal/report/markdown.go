package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/contrastscan/internal/model"
	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the full audit report in Markdown format.
func (w *MarkdownWriter) Write(report *model.AuditReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeRanking(md, report)
	w.writeFailedSites(md, report)

	for _, site := range report.Sites {
		if site.Failed() || site.Summary == nil {
			continue
		}
		w.writeSiteSection(md, site.Summary)
	}

	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// WriteSite outputs a single site summary in Markdown format.
func (w *MarkdownWriter) WriteSite(summary *model.SiteSummary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Contrast Audit: " + summary.Site)
	md.PlainText("")
	w.writeSiteSection(md, summary)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with audit metadata.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.AuditReport) {
	md.H1("Contrast Audit Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Scan Date", report.ScanDate},
			{"CVD Model", "`" + report.CVDModel + "`"},
			{"Generated", report.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
			{"Sites", strconv.Itoa(len(report.Sites))},
		},
	})
	md.PlainText("")
}

// writeRanking writes the cross-site CVI table, the risk distribution
// chart, and an alert keyed on the worst category present.
func (w *MarkdownWriter) writeRanking(md *markdown.Markdown, report *model.AuditReport) {
	md.H2("Site Ranking (CVI)")
	md.PlainText("")

	rows := report.CVITable()
	if len(rows) == 0 {
		md.PlainText("No measurable sites.")
		md.PlainText("")
		return
	}

	tableRows := make([][]string, len(rows))
	for i, row := range rows {
		tableRows[i] = []string{
			"`" + row.Site + "`",
			formatCVI(row.CVI),
			riskBadge(row.Category),
			strconv.Itoa(row.TotalVulnerable),
			strconv.Itoa(row.TotalStyles),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Site", "CVI", "Risk", "Vulnerable", "Style Groups"},
		Rows:   tableRows,
	})
	md.PlainText("")

	w.writePieChart(md, rows)
	w.writeAlert(md, rows)
}

// riskBadge returns the category name with a color indicator.
func riskBadge(category model.RiskCategory) string {
	switch category {
	case model.RiskCritical:
		return "🔴 " + category.String()
	case model.RiskHigh:
		return "🟠 " + category.String()
	case model.RiskModerate:
		return "🟡 " + category.String()
	case model.RiskMinor:
		return "🔵 " + category.String()
	case model.RiskFullyAccessible:
		return "🟢 " + category.String()
	default:
		return category.String()
	}
}

// writePieChart writes a mermaid pie chart of the risk distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, rows []model.CVIRow) {
	counts := make(map[model.RiskCategory]int, len(rows))
	for _, row := range rows {
		counts[row.Category]++
	}

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Site Risk Distribution"),
		piechart.WithShowData(true),
	)

	for _, category := range []model.RiskCategory{
		model.RiskCritical,
		model.RiskHigh,
		model.RiskModerate,
		model.RiskMinor,
		model.RiskFullyAccessible,
	} {
		if counts[category] > 0 {
			chart.LabelAndIntValue(category.String(), uint64(counts[category]))
		}
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an appropriate alert based on the worst risk present.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, rows []model.CVIRow) {
	counts := make(map[model.RiskCategory]int, len(rows))
	for _, row := range rows {
		counts[row.Category]++
	}

	switch {
	case counts[model.RiskCritical] > 0:
		md.Cautionf(
			"Critical accessibility risk detected! %d site(s) have a CVI above 30%%.",
			counts[model.RiskCritical],
		)
	case counts[model.RiskHigh] > 0:
		md.Warningf(
			"High accessibility risk detected. %d site(s) have a CVI above 15%%.",
			counts[model.RiskHigh],
		)
	case counts[model.RiskModerate] > 0:
		md.Importantf(
			"Moderate accessibility risk found. %d site(s) have color-blind-only contrast failures worth fixing.",
			counts[model.RiskModerate],
		)
	case counts[model.RiskMinor] > 0:
		md.Note("Only minor color-blind contrast issues detected.")
	default:
		md.Tip("All measurable sites are fully accessible for the simulated vision types.")
	}
	md.PlainText("")
}

// writeFailedSites writes the sites whose upstream scan failed.
func (w *MarkdownWriter) writeFailedSites(md *markdown.Markdown, report *model.AuditReport) {
	failed := report.FailedSites()
	if len(failed) == 0 {
		return
	}

	md.H2("Failed Sites")
	md.PlainText("")

	rows := make([][]string, len(failed))
	for i, site := range failed {
		rows[i] = []string{"`" + site.Site + "`", truncateString(site.ScanError, 60)}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Site", "Error"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeSiteSection writes one site's counters and example table.
func (w *MarkdownWriter) writeSiteSection(md *markdown.Markdown, summary *model.SiteSummary) {
	md.H2(summary.Site)
	md.PlainText("")

	cvi := "not measurable"
	if summary.HasCVI() {
		cvi = formatCVI(*summary.CVI) + " (" + summary.Risk.String() + ")"
	}

	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Elements kept", strconv.Itoa(summary.Kept)},
			{"Style groups", strconv.Itoa(summary.UniqueStyleGroups)},
			{"Vulnerable groups", strconv.Itoa(summary.TotalVulnerable)},
			{"CVD-only failures", strconv.Itoa(summary.CVDOnlyCount)},
			{"CVI", cvi},
		},
	})
	md.PlainText("")

	if len(summary.TopVulnerableExamples) == 0 {
		md.PlainText("No vulnerable examples.")
		md.PlainText("")
		return
	}

	w.writeExamplesTable(md, summary.TopVulnerableExamples)
}

// writeExamplesTable writes the ranked vulnerable-example table with
// expandable failure details.
func (w *MarkdownWriter) writeExamplesTable(md *markdown.Markdown, examples []model.VulnerableExample) {
	headers := []string{"Category", "State", "Count", "Sample", "Colors", "Reasons"}

	rows := make([][]string, len(examples))
	for i, ex := range examples {
		sample := ex.SampleLabel
		if sample == "" {
			sample = "-"
		}

		rows[i] = []string{
			humanizeCategory(ex.Category),
			string(ex.State),
			strconv.Itoa(ex.Count),
			truncateString(sample, 40),
			"`" + ex.TextColor + "` on `" + ex.BackgroundColor + "`",
			truncateString(strings.Join(ex.Reasons, "; "), 60),
		}
	}

	md.Table(markdown.TableSet{
		Header: headers,
		Rows:   rows,
	})
	md.PlainText("")

	// Full per-vision ratios for auditors who want to reproduce a finding.
	for _, ex := range examples {
		if len(ex.Failures) == 0 {
			continue
		}
		md.Details(
			humanizeCategory(ex.Category)+" ("+string(ex.State)+"): "+truncateString(ex.SampleLabel, 40),
			failureDetail(ex),
		)
	}
	md.PlainText("")
}

// failureDetail renders the failing channels of one example as text.
func failureDetail(ex model.VulnerableExample) string {
	var sb strings.Builder
	for _, f := range ex.Failures {
		sb.WriteString(f.Channel.String())
		sb.WriteString(": threshold ")
		sb.WriteString(strconv.FormatFloat(f.Threshold, 'f', -1, 64))
		sb.WriteString(", worst ")
		sb.WriteString(strconv.FormatFloat(f.Worst, 'f', -1, 64))
		sb.WriteString(" @ ")
		sb.WriteString(f.WorstVision.String())
		if f.Normal != nil {
			sb.WriteString(", normal ")
			sb.WriteString(strconv.FormatFloat(*f.Normal, 'f', -1, 64))
		}
		sb.WriteString("<br>")
	}
	return sb.String()
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [contrastscan](https://github.com/nao1215/contrastscan)*")
}

// truncateString truncates a string to maxLen characters with ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
