package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/harrison/framescan/internal/classify"
	"github.com/harrison/framescan/internal/config"
	"github.com/harrison/framescan/internal/display"
	"github.com/harrison/framescan/internal/logger"
	"github.com/harrison/framescan/internal/manifest"
	"github.com/harrison/framescan/internal/statcache"
)

// NewManifestCommand creates and returns the manifest subcommand
func NewManifestCommand() *cobra.Command {
	var (
		configPath    string
		statCachePath string
		verbose       bool
	)

	cmd := &cobra.Command{
		Use:   "manifest <file>",
		Short: "Classify frame sequences from a manifest file",
		Long: `Read a file listing from a manifest and group its paths into frame
sequences without touching the filesystem.

Manifests named *.md or *.markdown contribute the lines of their code
blocks; other files are read line by line. With --csv, lines are
separator-delimited with the path first and stat values after, mapped
through --stat-order. With --stat-cache, rows without stat columns take
the metadata a previous scan stored.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadSettings(cmd, configPath)
			if err != nil {
				return err
			}
			return runManifest(args[0], cfg, statCachePath, verbose,
				cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(&configPath, "config", "", "config file (default ~/"+config.DefaultFileName+")")
	cmd.Flags().Bool("csv", false, "treat manifest lines as separator-delimited columns")
	cmd.Flags().String("separator", "", `CSV column separator (default "\t")`)
	cmd.Flags().StringSlice("stat-order", nil, "stat field names for CSV columns after the path")
	cmd.Flags().Bool("stats", false, "stat listed paths on disk when the row carries none")
	cmd.Flags().StringVar(&statCachePath, "stat-cache", "", "SQLite database to fill missing stats from")
	cmd.Flags().StringSlice("include", nil, "only classify these extensions")
	cmd.Flags().StringSlice("exclude", nil, "never classify these extensions")
	cmd.Flags().Bool("strict-padding", false, "split differently padded files into separate sequences")
	cmd.Flags().String("format", "", "sequence format template")
	cmd.Flags().String("log-level", "", "log verbosity (trace, debug, info, warn, error)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "list individual files per bucket")

	return cmd
}

// runManifest reads a manifest and renders the classification report.
// Unlike scan, an unreadable manifest fails the command: there is nothing
// sensible to report without it.
func runManifest(path string, cfg *config.Config, statCachePath string, verbose bool, out, errOut io.Writer) error {
	log := logger.New(errOut, cfg.LogLevel)

	manifestResult, err := manifest.Read(path, manifest.Options{
		CSV:       cfg.CSV,
		Separator: cfg.Separator(),
		StatOrder: cfg.StatOrder,
	})
	if err != nil {
		return err
	}
	for _, warning := range manifestResult.Warnings {
		log.Warn("%s: %s", path, warning)
	}
	log.Debug("read %d entr(ies) from %s", len(manifestResult.Entries), path)

	entries := manifestResult.Entries
	if statCachePath != "" {
		if err := fillFromStatCache(statCachePath, entries, log); err != nil {
			log.Warn("stat cache: %v", err)
		}
	}

	classifier := classify.New(classify.Options{
		IncludeExts:   cfg.IncludeExts,
		ExcludeExts:   cfg.ExcludeExts,
		IgnorePadding: cfg.IgnorePadding,
		CollectStats:  cfg.CollectStats,
	})
	report := display.Report{Template: cfg.Format, Verbose: verbose}
	return report.Render(out, classifier.Run(entries))
}

// fillFromStatCache attaches cached stat snapshots to entries that carry
// none. Manifest rows have no mtime to validate against, so the most recent
// snapshot per path is taken as is.
func fillFromStatCache(path string, entries []classify.Entry, log *logger.ConsoleLogger) error {
	store, err := statcache.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	hits := 0
	for i := range entries {
		if entries[i].Stat != nil {
			continue
		}
		stat, ok, err := store.Latest(entries[i].Path)
		if err != nil {
			log.Debug("stat cache: %v", err)
			continue
		}
		if ok {
			entries[i].Stat = stat
			hits++
		}
	}
	log.Debug("stat cache: filled %d entr(ies) from %s", hits, path)
	return nil
}
