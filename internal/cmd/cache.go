package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/harrison/framescan/internal/statcache"
)

// NewCacheCommand creates and returns the cache subcommand
func NewCacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "cache",
		Short:        "Manage stat cache databases",
		SilenceUsage: true,
	}

	cmd.AddCommand(newCachePruneCommand())

	return cmd
}

// newCachePruneCommand creates the cache prune subcommand
func newCachePruneCommand() *cobra.Command {
	var olderThan time.Duration

	cmd := &cobra.Command{
		Use:   "prune <database>",
		Short: "Remove stale entries from a stat cache database",
		Long: `Delete cache entries that have not been refreshed by a scan within the
given age. Pruning keeps long-lived caches from accumulating snapshots for
files that no longer exist.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := statcache.Open(args[0])
			if err != nil {
				return err
			}
			defer store.Close()

			removed, err := store.Prune(time.Now().Add(-olderThan))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d stale entr(ies) from %s\n", removed, args[0])
			return nil
		},
		SilenceUsage: true,
	}

	cmd.Flags().DurationVar(&olderThan, "older-than", 30*24*time.Hour,
		"remove entries last refreshed longer ago than this")

	return cmd
}
