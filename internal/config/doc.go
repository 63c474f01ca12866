// Package config provides configuration structures and utilities for
// contrastscan. It defines the main configuration options for loading
// scan documents, running the analysis, and report generation
// preferences.
package config
