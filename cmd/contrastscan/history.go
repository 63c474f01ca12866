package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/nao1215/contrastscan/internal/config"
	"github.com/nao1215/contrastscan/internal/database"
	"github.com/spf13/cobra"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [site]",
		Short: "Show stored audit history",
		Long: `History shows audits recorded in the local database.

Without arguments it lists all audited sites and stored runs. With a
site argument it shows that site's CVI trajectory across runs, so a
regression after a redesign is visible immediately.

Examples:
  # List audited sites and stored runs
  contrastscan history

  # Show one site's CVI across runs
  contrastscan history shop.example.com

  # Machine-readable output
  contrastscan history --json shop.example.com`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().BoolP("json", "j", false, "Output history as JSON")
	cmd.Flags().String("db-dir", "",
		"Directory of the audit history database (default: XDG data directory)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return err
	}
	if dbDir == "" {
		dbDir = config.XDGDataDir()
	}

	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	// Never create a fresh database here; an empty history is an error
	// the user can act on, not a state worth persisting.
	opts := database.Options{CreateIfNotExists: false, EnableWAL: true}
	db, err := database.Open(dbDir, opts)
	if err != nil {
		return fmt.Errorf("no audit history found in %s (run 'contrastscan audit' first): %w", dbDir, err)
	}
	defer db.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if len(args) == 0 {
		return listAudits(ctx, db, jsonOutput)
	}
	return listSiteHistory(ctx, db, args[0], jsonOutput)
}

// listAudits prints the stored runs and the distinct audited sites.
func listAudits(ctx context.Context, db *database.AuditDB, jsonOutput bool) error {
	audits, err := db.ListAudits(ctx)
	if err != nil {
		return fmt.Errorf("failed to list audits: %w", err)
	}

	sites, err := db.ListAuditedSites(ctx)
	if err != nil {
		return fmt.Errorf("failed to list audited sites: %w", err)
	}

	if jsonOutput {
		payload := struct {
			Audits []auditMetadataJSON `json:"audits"`
			Sites  []string            `json:"sites"`
		}{
			Audits: make([]auditMetadataJSON, 0, len(audits)),
			Sites:  sites,
		}
		for _, a := range audits {
			payload.Audits = append(payload.Audits, newAuditMetadataJSON(a))
		}
		return writeJSON(payload)
	}

	if len(audits) == 0 {
		fmt.Println("No audits recorded yet.")
		return nil
	}

	fmt.Printf("Stored audits (%d):\n", len(audits))
	for _, a := range audits {
		fmt.Printf("  #%d  scan date %s  model %s  %d site(s)  saved %s\n",
			a.ID, a.ScanDate, a.CVDModel, a.Sites, a.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Printf("\nAudited sites (%d):\n", len(sites))
	for _, site := range sites {
		fmt.Printf("  %s\n", site)
	}

	return nil
}

// listSiteHistory prints one site's CVI trajectory across runs.
func listSiteHistory(ctx context.Context, db *database.AuditDB, site string, jsonOutput bool) error {
	history, err := db.SiteHistory(ctx, site)
	if err != nil {
		return fmt.Errorf("failed to load history for %s: %w", site, err)
	}

	if jsonOutput {
		entries := make([]siteHistoryJSON, 0, len(history))
		for _, e := range history {
			entries = append(entries, newSiteHistoryJSON(e))
		}
		return writeJSON(entries)
	}

	if len(history) == 0 {
		fmt.Printf("No history recorded for %s.\n", site)
		return nil
	}

	fmt.Printf("History for %s (%d run(s), newest first):\n\n", site, len(history))
	for _, e := range history {
		switch {
		case e.ScanError != "":
			fmt.Printf("  %s  scan failed: %s\n", e.ScanDate, e.ScanError)
		case e.CVI == nil:
			fmt.Printf("  %s  no measurable style groups\n", e.ScanDate)
		default:
			fmt.Printf("  %s  CVI %5.1f%%  %-18s %d/%d vulnerable, %d cvd-only\n",
				e.ScanDate, *e.CVI*100, e.Risk, e.TotalVulnerable, e.TotalStyles, e.CVDOnly)
		}
	}

	return nil
}

// auditMetadataJSON is the machine-readable shape of one stored run.
type auditMetadataJSON struct {
	ID        int64     `json:"id"`
	ScanDate  string    `json:"scan_date"`
	CVDModel  string    `json:"cvd_model"`
	CreatedAt time.Time `json:"created_at"`
	Sites     int       `json:"sites"`
}

func newAuditMetadataJSON(a database.AuditMetadata) auditMetadataJSON {
	return auditMetadataJSON{
		ID:        a.ID,
		ScanDate:  a.ScanDate,
		CVDModel:  a.CVDModel,
		CreatedAt: a.CreatedAt,
		Sites:     a.Sites,
	}
}

// siteHistoryJSON is the machine-readable shape of one history entry.
type siteHistoryJSON struct {
	AuditID         int64     `json:"audit_id"`
	ScanDate        string    `json:"scan_date"`
	CreatedAt       time.Time `json:"created_at"`
	CVI             *float64  `json:"cvi"`
	Risk            string    `json:"risk,omitempty"`
	TotalStyles     int       `json:"total_styles"`
	TotalVulnerable int       `json:"total_vulnerable"`
	CVDOnly         int       `json:"cvd_only"`
	ScanError       string    `json:"scan_error,omitempty"`
}

func newSiteHistoryJSON(e database.SiteHistoryEntry) siteHistoryJSON {
	return siteHistoryJSON{
		AuditID:         e.AuditID,
		ScanDate:        e.ScanDate,
		CreatedAt:       e.CreatedAt,
		CVI:             e.CVI,
		Risk:            e.Risk,
		TotalStyles:     e.TotalStyles,
		TotalVulnerable: e.TotalVulnerable,
		CVDOnly:         e.CVDOnly,
		ScanError:       e.ScanError,
	}
}

// writeJSON pretty-prints a value to stdout.
func writeJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
