package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for framescan
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "framescan",
		Short: "Frame sequence detection for file listings",
		Long: `Framescan groups numbered files (render.0001.exr, render.0002.exr, ...)
into frame sequences, reporting ranges, missing frames, and padding issues.

Input comes from a directory scan or from a manifest file (plain text,
CSV with stat columns, or markdown with file listings in code blocks).`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	// Add subcommands
	cmd.AddCommand(NewScanCommand())
	cmd.AddCommand(NewManifestCommand())
	cmd.AddCommand(NewConfigCommand())
	cmd.AddCommand(NewCacheCommand())

	return cmd
}
