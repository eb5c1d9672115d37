package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/framescan/internal/config"
)

// loadSettings loads the config file and layers explicitly-set command flags
// on top of it. Flags left at their defaults never shadow file values, so a
// config file with recursive: true survives a plain "framescan scan".
func loadSettings(cmd *cobra.Command, configPath string) (*config.Config, error) {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("recursive") {
		cfg.Recursive, _ = flags.GetBool("recursive")
	}
	if flags.Changed("stats") {
		cfg.CollectStats, _ = flags.GetBool("stats")
	}
	if flags.Changed("include") {
		cfg.IncludeExts, _ = flags.GetStringSlice("include")
	}
	if flags.Changed("exclude") {
		cfg.ExcludeExts, _ = flags.GetStringSlice("exclude")
	}
	if flags.Changed("strict-padding") {
		strict, _ := flags.GetBool("strict-padding")
		cfg.IgnorePadding = !strict
	}
	if flags.Changed("format") {
		cfg.Format, _ = flags.GetString("format")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("csv") {
		cfg.CSV, _ = flags.GetBool("csv")
	}
	if flags.Changed("separator") {
		sep, _ := flags.GetString("separator")
		if len(sep) != 1 && sep != "\\t" {
			return nil, fmt.Errorf("separator must be a single character, got %q", sep)
		}
		cfg.CSVSeparator = sep
	}
	if flags.Changed("stat-order") {
		cfg.StatOrder, _ = flags.GetStringSlice("stat-order")
	}

	return cfg, nil
}
