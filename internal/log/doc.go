// Package log provides logging functionality with automatic
// sanitization of scraped page content, built on top of the standard
// slog package.
//
// Element labels and sample text logged during an audit come straight
// from audited pages. They may contain control characters, ANSI escape
// sequences, newlines, or be arbitrarily long. The LabelHandler strips
// control characters from every string attribute and truncates
// label-like attributes so one log record stays one readable line.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//
//	logger.Info("token classified",
//	    "label", scrapedLabel, // control chars stripped, truncated
//	    "site", "example.org",
//	)
//
//	slog.SetDefault(logger)
package log
