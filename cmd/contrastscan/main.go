// Package main provides the entry point for the contrastscan CLI.
//
// contrastscan analyzes scan documents produced by a UI scan collaborator
// and reports color-vision-deficiency contrast risks per site.
//
// Usage:
//
//	contrastscan audit <scan-file>
//	contrastscan history <site>
//
// See --help for all available options.
package main

// main is the entry point for contrastscan.
func main() {
	Execute()
}
