package ingest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/nao1215/contrastscan/internal/model"
)

var (
	// ErrOpenScanFile means the scan document could not be opened.
	ErrOpenScanFile = errors.New("failed to open scan document")

	// ErrDecodeScanFile means the scan document is not valid JSON or
	// does not match the expected shape.
	ErrDecodeScanFile = errors.New("failed to decode scan document")

	// ErrNoSites means the scan document contains no site entries.
	ErrNoSites = errors.New("scan document contains no sites")
)

// Load reads and decodes a scan document from a file.
func Load(path string) (*model.ScanDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrOpenScanFile, path, err)
	}
	defer f.Close() //nolint:errcheck // Read-only file

	doc, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Decode parses a scan document from a reader.
func Decode(r io.Reader) (*model.ScanDocument, error) {
	var doc model.ScanDocument
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeScanFile, err)
	}
	if len(doc.Sites) == 0 {
		return nil, ErrNoSites
	}
	return &doc, nil
}

// SiteReports builds one report shell per site, sorted by site name.
// The document stores sites in a map, so ordering must be imposed here
// for the rest of the run to be deterministic.
func SiteReports(doc *model.ScanDocument) []*model.SiteReport {
	names := make([]string, 0, len(doc.Sites))
	for name := range doc.Sites {
		names = append(names, name)
	}
	sort.Strings(names)

	reports := make([]*model.SiteReport, 0, len(names))
	for _, name := range names {
		reports = append(reports, model.NewSiteReport(name, doc.Sites[name]))
	}
	return reports
}
