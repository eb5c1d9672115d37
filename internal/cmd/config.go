package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/framescan/internal/config"
)

// NewConfigCommand creates and returns the config subcommand
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "config",
		Short:        "Manage framescan configuration",
		SilenceUsage: true,
	}

	cmd.AddCommand(newConfigInitCommand())

	return cmd
}

// newConfigInitCommand creates the config init subcommand
func newConfigInitCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Long: `Write the default configuration as YAML. An existing file is left
untouched; edit it in place instead of re-running init.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configPath
			if path == "" {
				path = config.DefaultPath()
			}
			if err := config.WriteDefault(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote default config to %s\n", path)
			return nil
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(&configPath, "config", "", "config file to write (default ~/"+config.DefaultFileName+")")

	return cmd
}
