package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/contrastscan/internal/model"
)

// AuditDB provides SQLite-based storage for audit runs and per-site
// results. It manages connection pooling and provides methods for
// persistence and history queries.
//
// Design decision: We use a single database file for all audits rather
// than one file per run. This makes per-site history queries trivial
// and keeps backup/restore to a single file.
type AuditDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures AuditDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent
	// performance. This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates an AuditDB at the specified directory.
// If CreateIfNotExists is true, the directory and database file are
// created; otherwise a missing database is an error.
func Open(dbDir string, opts Options) (*AuditDB, error) {
	dbPath := filepath.Join(dbDir, "contrastscan.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite uses mode=rw to refuse creating new files and
	// mode=rwc to allow creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer; a single connection avoids
	// SQLITE_BUSY under concurrent saves.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	adb := &AuditDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := adb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return adb, nil
}

// Close closes the database connection.
func (adb *AuditDB) Close() error {
	return adb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (adb *AuditDB) createTables() error {
	schema := `
	-- One row per audit run
	CREATE TABLE IF NOT EXISTS audits (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		scan_date TEXT NOT NULL,
		cvd_model TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_audits_created ON audits(created_at);

	-- One row per site per audit run. cvi is NULL for failed or empty
	-- sites so history queries never mistake "unmeasured" for 0.
	CREATE TABLE IF NOT EXISTS site_results (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		audit_id INTEGER NOT NULL REFERENCES audits(id),
		site TEXT NOT NULL,
		cvi REAL,
		risk TEXT,
		total_styles INTEGER NOT NULL DEFAULT 0,
		total_vulnerable INTEGER NOT NULL DEFAULT 0,
		cvd_only INTEGER NOT NULL DEFAULT 0,
		scan_error TEXT,
		summary_json TEXT,
		UNIQUE(audit_id, site)
	);

	CREATE INDEX IF NOT EXISTS idx_site_results_site ON site_results(site);
	CREATE INDEX IF NOT EXISTS idx_site_results_audit ON site_results(audit_id);
	`

	_, err := adb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveAudit persists one audit run with all its per-site results.
// Returns the new audit's database ID.
func (adb *AuditDB) SaveAudit(ctx context.Context, report *model.AuditReport) (int64, error) {
	tx, err := adb.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after commit

	result, err := tx.ExecContext(ctx,
		`INSERT INTO audits (scan_date, cvd_model) VALUES (?, ?)`,
		report.ScanDate, report.CVDModel,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert audit: %w", err)
	}
	auditID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read audit id: %w", err)
	}

	for _, site := range report.Sites {
		if err := insertSiteResult(ctx, tx, auditID, site); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit audit: %w", err)
	}
	return auditID, nil
}

// insertSiteResult writes one site's row under the given audit.
func insertSiteResult(ctx context.Context, tx *sql.Tx, auditID int64, site *model.SiteReport) error {
	var (
		cvi             sql.NullFloat64
		risk            sql.NullString
		totalStyles     int
		totalVulnerable int
		cvdOnly         int
		summaryJSON     sql.NullString
	)

	if s := site.Summary; s != nil {
		if s.HasCVI() {
			cvi = sql.NullFloat64{Float64: *s.CVI, Valid: true}
			risk = sql.NullString{String: s.Risk.String(), Valid: true}
		}
		totalStyles = s.UniqueStyleGroups
		totalVulnerable = s.TotalVulnerable
		cvdOnly = s.CVDOnlyCount

		data, err := json.Marshal(s)
		if err != nil {
			return fmt.Errorf("failed to serialize summary for %s: %w", site.Site, err)
		}
		summaryJSON = sql.NullString{String: string(data), Valid: true}
	}

	_, err := tx.ExecContext(ctx, `
	INSERT INTO site_results (audit_id, site, cvi, risk, total_styles, total_vulnerable, cvd_only, scan_error, summary_json)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		auditID, site.Site, cvi, risk,
		totalStyles, totalVulnerable, cvdOnly,
		nullableString(site.ScanError), summaryJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to insert site result for %s: %w", site.Site, err)
	}
	return nil
}

func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// AuditMetadata contains summary information about a stored audit run.
type AuditMetadata struct {
	// ID is the audit's database identifier.
	ID int64

	// ScanDate is the collaborator's scan date echoed from the document.
	ScanDate string

	// CVDModel names the simulation model.
	CVDModel string

	// CreatedAt is when the audit was saved.
	CreatedAt time.Time

	// Sites is the number of site rows stored under this audit.
	Sites int
}

// ListAudits returns all stored audits, newest first.
func (adb *AuditDB) ListAudits(ctx context.Context) ([]AuditMetadata, error) {
	rows, err := adb.db.QueryContext(ctx, `
	SELECT a.id, a.scan_date, COALESCE(a.cvd_model, ''), a.created_at, COUNT(s.id)
	FROM audits a
	LEFT JOIN site_results s ON s.audit_id = a.id
	GROUP BY a.id
	ORDER BY a.created_at DESC, a.id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list audits: %w", err)
	}
	defer rows.Close()

	var results []AuditMetadata
	for rows.Next() {
		var meta AuditMetadata
		var created string
		if err := rows.Scan(&meta.ID, &meta.ScanDate, &meta.CVDModel, &created, &meta.Sites); err != nil {
			return nil, fmt.Errorf("failed to scan audit metadata: %w", err)
		}
		meta.CreatedAt = parseTimestamp(created)
		results = append(results, meta)
	}

	return results, rows.Err()
}

// SiteHistoryEntry is one audited data point in a site's CVI history.
type SiteHistoryEntry struct {
	// AuditID identifies the run this entry belongs to.
	AuditID int64

	// ScanDate and CreatedAt locate the run in time.
	ScanDate  string
	CreatedAt time.Time

	// CVI is nil when the site failed to scan or had no tokens.
	CVI *float64

	// Risk is the category name, empty when CVI is nil.
	Risk string

	TotalStyles     int
	TotalVulnerable int
	CVDOnly         int

	// ScanError carries the upstream failure message, if any.
	ScanError string
}

// SiteHistory returns a site's results across all stored audits,
// newest first.
func (adb *AuditDB) SiteHistory(ctx context.Context, site string) ([]SiteHistoryEntry, error) {
	rows, err := adb.db.QueryContext(ctx, `
	SELECT s.audit_id, a.scan_date, a.created_at,
	       s.cvi, COALESCE(s.risk, ''),
	       s.total_styles, s.total_vulnerable, s.cvd_only,
	       COALESCE(s.scan_error, '')
	FROM site_results s
	JOIN audits a ON a.id = s.audit_id
	WHERE s.site = ?
	ORDER BY a.created_at DESC, a.id DESC
	`, site)
	if err != nil {
		return nil, fmt.Errorf("failed to query site history: %w", err)
	}
	defer rows.Close()

	var results []SiteHistoryEntry
	for rows.Next() {
		var entry SiteHistoryEntry
		var created string
		var cvi sql.NullFloat64

		if err := rows.Scan(
			&entry.AuditID, &entry.ScanDate, &created,
			&cvi, &entry.Risk,
			&entry.TotalStyles, &entry.TotalVulnerable, &entry.CVDOnly,
			&entry.ScanError,
		); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}

		entry.CreatedAt = parseTimestamp(created)
		if cvi.Valid {
			v := cvi.Float64
			entry.CVI = &v
		}
		results = append(results, entry)
	}

	return results, rows.Err()
}

// ListAuditedSites returns the distinct site names stored in the
// database, sorted.
func (adb *AuditDB) ListAuditedSites(ctx context.Context) ([]string, error) {
	rows, err := adb.db.QueryContext(ctx, `
	SELECT DISTINCT site FROM site_results ORDER BY site
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sites: %w", err)
	}
	defer rows.Close()

	var sites []string
	for rows.Next() {
		var site string
		if err := rows.Scan(&site); err != nil {
			return nil, fmt.Errorf("failed to scan site: %w", err)
		}
		sites = append(sites, site)
	}

	return sites, rows.Err()
}

// GetSiteSummary retrieves a stored site summary from one audit run.
// Returns nil when the site has no row or no summary under that audit.
func (adb *AuditDB) GetSiteSummary(ctx context.Context, auditID int64, site string) (*model.SiteSummary, error) {
	var summaryJSON sql.NullString
	err := adb.db.QueryRowContext(ctx, `
	SELECT summary_json FROM site_results WHERE audit_id = ? AND site = ?
	`, auditID, site).Scan(&summaryJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get site summary: %w", err)
	}
	if !summaryJSON.Valid || summaryJSON.String == "" {
		return nil, nil
	}

	var summary model.SiteSummary
	if err := json.Unmarshal([]byte(summaryJSON.String), &summary); err != nil {
		return nil, fmt.Errorf("failed to parse site summary: %w", err)
	}
	return &summary, nil
}

// timestampFormats contains the timestamp formats that SQLite may
// return. The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple
// formats. SQLite may return timestamps in different formats depending
// on configuration. If parsing fails with all formats, returns zero
// time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
