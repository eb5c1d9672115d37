package cmd

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/harrison/framescan/internal/statcache"
)

// TestCachePruneCommand tests removing stale entries from a scanned cache
func TestCachePruneCommand(t *testing.T) {
	dir := writeFiles(t, "shot.0001.exr", "shot.0002.exr")
	dbPath := filepath.Join(t.TempDir(), "stats.db")

	_, _, err := executeCommand(t,
		"scan", dir, "--stat-cache", dbPath, "--config", missingConfig(t))
	require.NoError(t, err)

	// Fresh entries survive the default cutoff.
	out, _, err := executeCommand(t, "cache", "prune", dbPath)
	require.NoError(t, err)
	require.Contains(t, out, "Removed 0 stale entr(ies)")

	// A cutoff in the future sweeps everything.
	out, _, err = executeCommand(t, "cache", "prune", dbPath, "--older-than", "-1h")
	require.NoError(t, err)
	if !strings.Contains(out, "Removed 2 stale entr(ies)") {
		t.Errorf("expected both entries pruned, got:\n%s", out)
	}

	store, err := statcache.Open(dbPath)
	require.NoError(t, err)
	defer store.Close()
	count, err := store.Len()
	require.NoError(t, err)
	require.Zero(t, count)
}

// TestCachePruneCommandRequiresDatabase tests argument validation
func TestCachePruneCommandRequiresDatabase(t *testing.T) {
	_, _, err := executeCommand(t, "cache", "prune")
	require.Error(t, err)
}
