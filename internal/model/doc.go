// Package model defines the core data structures and pure color science
// used by contrastscan: CSS color parsing, WCAG contrast computation,
// vision types, style tokens with their canonical deduplication keys,
// vulnerability verdicts, and per-site summaries.
//
// Everything in this package is a pure function or a plain data type.
// Simulation, analysis, and I/O live in their own packages and operate
// on these types.
package model
