// Package main provides the entry point for the contrastscan CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for contrastscan.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contrastscan",
		Short: "Color-vision contrast auditing for scanned web UIs",
		Long: `contrastscan analyzes scan documents produced by a UI scan collaborator
and measures WCAG contrast ratios under simulated color vision deficiencies
(protanopia, deuteranopia, tritanopia).

Each site receives a Component Vulnerability Index (CVI): the share of its
unique style groups that pass for normal vision but fail for at least one
simulated deficiency.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewAuditCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
