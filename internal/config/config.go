package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultBatchSize of 4 concurrent site analyses keeps the run fast
	// without saturating small machines. Analysis is CPU-bound, so there
	// is little point going far beyond the core count.
	DefaultBatchSize = 4

	// DefaultTopExamples is the number of ranked vulnerable examples
	// kept per site. Ten rows is enough for an auditor to see the worst
	// offenders without drowning the report.
	DefaultTopExamples = 10

	// AppName is the application name used for XDG directory paths.
	AppName = "contrastscan"
)

// Config holds all configuration options for contrastscan.
// This struct is designed to be populated from CLI flags and passed
// through the application via dependency injection rather than global
// state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., ReportConfig, DBConfig) for simplicity. The number of options
// is manageable, and nesting would add complexity without significant
// benefit.
type Config struct {
	// InputFile is the path to the scan document produced by the
	// external scan collaborator.
	InputFile string

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only info and above are logged.
	Verbose bool

	// BatchSize is the number of sites analyzed concurrently.
	BatchSize int

	// TopExamples bounds the ranked vulnerable-example list per site.
	TopExamples int

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .contrastscan in the current
	// directory and then in the user's home directory.
	ConfigFilePath string

	// SiteConfigs holds site-specific configurations loaded from the
	// config file. This is populated by LoadConfigFile.
	SiteConfigs *File

	// JSONReport enables JSON report output instead of human-readable
	// format. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output with tables,
	// alerts, and a risk pie chart. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	// Directories are created automatically if they don't exist.
	ReportFile string

	// CSVFile is an optional path for the per-example CSV export.
	CSVFile string

	// DBDir is the directory path for storing the SQLite database.
	// When set, audit results are saved for historical comparison.
	// Defaults to the XDG data directory.
	DBDir string

	// SaveToDB indicates whether to save audit results to the database.
	SaveToDB bool
}

// NewConfig creates a new Config with default values.
//
// Design decision: We use a constructor function instead of relying on
// zero values because several defaults are non-zero. This also serves
// as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		BatchSize:   DefaultBatchSize,
		TopExamples: DefaultTopExamples,
	}
}

// XDGDataDir returns the XDG data directory for contrastscan.
// On Linux: ~/.local/share/contrastscan
// On macOS: ~/Library/Application Support/contrastscan
// On Windows: %LOCALAPPDATA%\contrastscan
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for contrastscan.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before any analysis begins.
func (c *Config) Validate() error {
	if c.InputFile == "" {
		return ErrNoInput
	}

	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	if c.TopExamples <= 0 {
		return ErrInvalidTopExamples
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	return nil
}
