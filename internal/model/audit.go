package model

import (
	"sort"
	"time"
)

// SiteReport is the unit of work flowing through the analysis pipeline:
// one site's raw records, the tokens they collapse into, and the
// resulting summary. Steps fill it in sequence.
type SiteReport struct {
	// Site is the site name (typically the domain without "www.").
	Site string `json:"site"`
	URL  string `json:"url,omitempty"`

	// Scan statistics passed through from the collaborator.
	Matched      int `json:"matched"`
	Scanned      int `json:"scanned"`
	ElementsKept int `json:"elements_kept"`

	// ScanError is the collaborator's opaque failure message. A site
	// with a scan error carries no tokens and is excluded from the CVI
	// table and all aggregates; it is never treated as zero
	// vulnerabilities.
	ScanError string `json:"scan_error,omitempty"`

	// Records are the raw element records in scan-discovery order.
	// Consumed to build tokens; never mutated afterwards.
	Records []RawElementRecord `json:"-"`

	// Tokens are the deduplicated style tokens in discovery order.
	Tokens []*StyleToken `json:"tokens,omitempty"`

	// Summary is the aggregated result, present once analysis ran.
	Summary *SiteSummary `json:"summary,omitempty"`

	// PerformedSteps names the pipeline steps that ran, in order.
	PerformedSteps []string `json:"performed_steps,omitempty"`

	// ErrorMessage records a pipeline failure for this site, if any.
	ErrorMessage string `json:"error,omitempty"`
}

// NewSiteReport builds a report shell from one scan-document entry.
func NewSiteReport(site string, entry SiteEntry) *SiteReport {
	r := &SiteReport{
		Site:      site,
		URL:       entry.URL,
		ScanError: entry.Error,
	}
	if entry.Result != nil {
		if r.URL == "" {
			r.URL = entry.Result.URL
		}
		r.Matched = entry.Result.Matched
		r.Scanned = entry.Result.Scanned
		r.ElementsKept = entry.Result.ElementsKept
		r.Records = entry.Result.Groups
	}
	return r
}

// Failed reports whether the upstream scan failed for this site.
func (r *SiteReport) Failed() bool {
	return r.ScanError != ""
}

// AuditReport is the complete result of one audit run across all sites.
type AuditReport struct {
	// ScanDate and CVDModel are echoed from the scan document.
	ScanDate string `json:"scan_date"`
	CVDModel string `json:"cvd_model"`

	// GeneratedAt is when this audit was computed.
	GeneratedAt time.Time `json:"generated_at"`

	// Sites holds one report per site, sorted by site name for
	// deterministic output.
	Sites []*SiteReport `json:"sites"`
}

// NewAuditReport creates an audit report shell for the given document
// metadata.
func NewAuditReport(scanDate, cvdModel string) *AuditReport {
	return &AuditReport{
		ScanDate:    scanDate,
		CVDModel:    cvdModel,
		GeneratedAt: time.Now(),
	}
}

// SortSites orders the per-site reports by site name. Scan documents
// carry sites in a map, so ordering must be imposed for reports and
// persistence to be reproducible.
func (a *AuditReport) SortSites() {
	sort.Slice(a.Sites, func(i, j int) bool {
		return a.Sites[i].Site < a.Sites[j].Site
	})
}

// CVITable builds the cross-site CVI rows. Sites with scan errors or an
// undefined CVI (zero tokens) are excluded rather than reported as 0.
func (a *AuditReport) CVITable() []CVIRow {
	rows := make([]CVIRow, 0, len(a.Sites))
	for _, site := range a.Sites {
		if site.Failed() || site.Summary == nil || !site.Summary.HasCVI() {
			continue
		}
		s := site.Summary
		rows = append(rows, CVIRow{
			Site:            site.Site,
			CVI:             *s.CVI,
			Category:        s.Risk,
			TotalVulnerable: s.TotalVulnerable,
			TotalStyles:     s.UniqueStyleGroups,
		})
	}
	return rows
}

// FailedSites returns the sites whose upstream scan failed.
func (a *AuditReport) FailedSites() []*SiteReport {
	var failed []*SiteReport
	for _, site := range a.Sites {
		if site.Failed() {
			failed = append(failed, site)
		}
	}
	return failed
}
