// Package database provides SQLite-based storage for audit history.
//
// Each audit run is stored as one row in the audits table plus one row
// per site in site_results, keyed by (audit_id, site). The per-site row
// carries the CVI, risk category, and headline counters in dedicated
// columns for cheap history queries, with the full SiteSummary kept as
// JSON for detail views. A NULL cvi column marks a failed or empty
// site, never a perfect score.
//
// Design decision: We use SQLite (via modernc.org/sqlite) instead of
// other databases because:
// 1. No external dependencies - the database is a single file
// 2. CGO-free implementation allows easy cross-compilation
// 3. Sufficient performance for our use case
// 4. WAL mode provides good concurrent read performance
package database
