package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoInput is returned when no scan document path is specified.
	ErrNoInput = errors.New("no input specified: provide a scan document path")

	// ErrInvalidBatchSize is returned when the batch size is not
	// positive. A batch size of zero would mean no sites get analyzed.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrInvalidTopExamples is returned when the ranked-example bound
	// is not positive.
	ErrInvalidTopExamples = errors.New("invalid top examples: must be positive")

	// ErrConflictingReportFormats is returned when both --json and
	// --markdown are specified. Only one output format can be used at a
	// time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")
)
