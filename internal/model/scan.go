package model

// ScanDocument is the input delivered by the external scan collaborator,
// one document per run.
type ScanDocument struct {
	// ScanDate is the collaborator's scan date, passed through verbatim.
	ScanDate string `json:"scan_date"`

	// CVDModel names the simulation model the collaborator assumed
	// (informational; this core applies its own simulator).
	CVDModel string `json:"cvd_model"`

	// Sites maps site name to either a scan result or an opaque error.
	Sites map[string]SiteEntry `json:"sites"`
}

// SiteEntry is one site's slot in the scan document: exactly one of
// Result or Error is populated.
type SiteEntry struct {
	Result *ScanResult `json:"result,omitempty"`
	Error  string      `json:"error,omitempty"`
	URL    string      `json:"url,omitempty"`
}

// ScanResult is the successful scan payload for one site.
type ScanResult struct {
	URL          string             `json:"url,omitempty"`
	Matched      int                `json:"matched"`
	Scanned      int                `json:"scanned"`
	ElementsKept int                `json:"elements_kept"`
	Groups       []RawElementRecord `json:"groups"`
}
