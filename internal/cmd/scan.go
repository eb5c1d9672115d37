package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/harrison/framescan/internal/classify"
	"github.com/harrison/framescan/internal/config"
	"github.com/harrison/framescan/internal/display"
	"github.com/harrison/framescan/internal/logger"
	"github.com/harrison/framescan/internal/scanner"
	"github.com/harrison/framescan/internal/statcache"
)

// NewScanCommand creates and returns the scan subcommand
func NewScanCommand() *cobra.Command {
	var (
		configPath    string
		statCachePath string
		verbose       bool
	)

	cmd := &cobra.Command{
		Use:   "scan <directory>",
		Short: "Scan a directory for frame sequences",
		Long: `Walk a directory, group numbered files into frame sequences, and report
each sequence with its frame range and any missing frames.

Symbolic links are skipped. With --stat-cache, collected file metadata is
stored in a SQLite database for later manifest runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadSettings(cmd, configPath)
			if err != nil {
				return err
			}
			return runScan(args[0], cfg, statCachePath, verbose,
				cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(&configPath, "config", "", "config file (default ~/"+config.DefaultFileName+")")
	cmd.Flags().BoolP("recursive", "r", false, "descend into child directories")
	cmd.Flags().Bool("stats", false, "collect file metadata while scanning")
	cmd.Flags().StringVar(&statCachePath, "stat-cache", "", "SQLite database to store collected metadata in")
	cmd.Flags().StringSlice("include", nil, "only classify these extensions")
	cmd.Flags().StringSlice("exclude", nil, "never classify these extensions")
	cmd.Flags().Bool("strict-padding", false, "split differently padded files into separate sequences")
	cmd.Flags().String("format", "", "sequence format template")
	cmd.Flags().String("log-level", "", "log verbosity (trace, debug, info, warn, error)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "list individual files per bucket")

	return cmd
}

// runScan scans a directory and renders the classification report. An
// unusable scan root logs a warning and yields an empty report rather than
// failing the command.
func runScan(dir string, cfg *config.Config, statCachePath string, verbose bool, out, errOut io.Writer) error {
	log := logger.New(errOut, cfg.LogLevel)

	collectStats := cfg.CollectStats || statCachePath != ""
	classifier := classify.New(classify.Options{
		IncludeExts:   cfg.IncludeExts,
		ExcludeExts:   cfg.ExcludeExts,
		IgnorePadding: cfg.IgnorePadding,
		CollectStats:  cfg.CollectStats,
	})
	report := display.Report{Template: cfg.Format, Verbose: verbose}

	scanResult, err := scanner.Scan(dir, scanner.Options{
		Recursive:    cfg.Recursive,
		CollectStats: collectStats,
	})
	if err != nil {
		log.Warn("cannot scan %s: %v", dir, err)
		return report.Render(out, classifier.Run(nil))
	}
	for _, scanErr := range scanResult.Errors {
		log.Warn("%v", scanErr)
	}
	log.Debug("scanned %d file(s) under %s", len(scanResult.Entries), dir)

	if statCachePath != "" {
		if err := refreshStatCache(statCachePath, scanResult.Entries, log); err != nil {
			log.Warn("stat cache: %v", err)
		}
	}

	return report.Render(out, classifier.Run(scanResult.Entries))
}

// refreshStatCache stores the scan's stat snapshots so manifest runs can
// reuse them.
func refreshStatCache(path string, entries []classify.Entry, log *logger.ConsoleLogger) error {
	store, err := statcache.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	stored := 0
	for _, entry := range entries {
		if entry.Stat == nil {
			continue
		}
		if err := store.Put(entry.Path, entry.Stat); err != nil {
			log.Debug("stat cache: %v", err)
			continue
		}
		stored++
	}
	log.Debug("stat cache: stored %d snapshot(s) in %s", stored, path)
	return nil
}
