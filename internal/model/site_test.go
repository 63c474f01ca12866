package model

import "testing"

// TestRiskFromCVI tests the ordered inclusive breakpoints.
func TestRiskFromCVI(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		cvi  float64
		want RiskCategory
	}{
		{"zero", 0, RiskFullyAccessible},
		{"tiny", 0.001, RiskMinor},
		{"minor boundary", 0.05, RiskMinor},
		{"just above minor", 0.0501, RiskModerate},
		{"moderate boundary", 0.15, RiskModerate},
		{"just above moderate", 0.151, RiskHigh},
		{"high boundary", 0.30, RiskHigh},
		{"critical", 0.31, RiskCritical},
		{"everything", 1.0, RiskCritical},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := RiskFromCVI(tc.cvi); got != tc.want {
				t.Errorf("RiskFromCVI(%v) = %v, expected %v", tc.cvi, got, tc.want)
			}
		})
	}
}

// TestRiskCategoryString tests the report labels.
func TestRiskCategoryString(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		risk     RiskCategory
		expected string
	}{
		{RiskFullyAccessible, "Fully Accessible"},
		{RiskMinor, "Minor Risk"},
		{RiskModerate, "Moderate Risk"},
		{RiskHigh, "High Risk"},
		{RiskCritical, "Critical Risk"},
		{RiskCategory(42), "Unknown"},
	}

	for _, tc := range testCases {
		tc := tc
		if tc.risk.String() != tc.expected {
			t.Errorf("got %q, expected %q", tc.risk.String(), tc.expected)
		}
	}
}

// TestCVITableExclusions tests that failed and empty sites never
// produce CVI rows.
func TestCVITableExclusions(t *testing.T) {
	t.Parallel()

	cvi := 0.15
	report := NewAuditReport("2026-08-01", "machado2009")
	report.Sites = []*SiteReport{
		{
			Site: "ok.example",
			Summary: &SiteSummary{
				Site:              "ok.example",
				UniqueStyleGroups: 20,
				TotalVulnerable:   5,
				CVDOnlyCount:      3,
				CVI:               &cvi,
				Risk:              RiskFromCVI(cvi),
			},
		},
		{Site: "broken.example", ScanError: "timeout after 60s"},
		{Site: "empty.example", Summary: &SiteSummary{Site: "empty.example"}},
	}

	rows := report.CVITable()
	if len(rows) != 1 {
		t.Fatalf("CVITable() returned %d rows, expected 1", len(rows))
	}
	row := rows[0]
	if row.Site != "ok.example" || row.CVI != 0.15 || row.Category != RiskModerate {
		t.Errorf("unexpected row: %+v", row)
	}
	if row.TotalStyles != 20 || row.TotalVulnerable != 5 {
		t.Errorf("unexpected totals: %+v", row)
	}

	failed := report.FailedSites()
	if len(failed) != 1 || failed[0].Site != "broken.example" {
		t.Errorf("FailedSites() = %v", failed)
	}
}

// TestSortSites tests deterministic site ordering.
func TestSortSites(t *testing.T) {
	t.Parallel()

	report := NewAuditReport("2026-08-01", "machado2009")
	report.Sites = []*SiteReport{{Site: "zeta.example"}, {Site: "alpha.example"}, {Site: "mid.example"}}
	report.SortSites()

	want := []string{"alpha.example", "mid.example", "zeta.example"}
	for i, site := range report.Sites {
		if site.Site != want[i] {
			t.Errorf("Sites[%d] = %q, expected %q", i, site.Site, want[i])
		}
	}
}
