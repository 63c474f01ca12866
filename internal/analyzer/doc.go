// Package analyzer turns raw element records into scored style tokens:
// deduplication into canonical tokens, per-token contrast measurement
// under normal and simulated deficient vision, pass/fail classification
// per channel, and per-site aggregation into the Component Vulnerability
// Index.
package analyzer
