// Package ingest loads scan documents produced by the external scan
// collaborator and turns them into per-site reports ready for the
// analysis pipeline.
package ingest
