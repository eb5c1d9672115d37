package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// TestManifestCommand tests classifying a plain text manifest
func TestManifestCommand(t *testing.T) {
	path := writeManifest(t, "files.txt",
		"/r/shot.0001.exr\n/r/shot.0002.exr\n/r/shot.0005.exr\n/r/notes.txt\n")

	out, _, err := executeCommand(t, "manifest", path, "--config", missingConfig(t))
	require.NoError(t, err)

	if !strings.Contains(out, "shot.%04d.exr [1-2, 5] (3 frames)") {
		t.Errorf("output missing formatted sequence:\n%s", out)
	}
	if !strings.Contains(out, "Non-sequences (1)") {
		t.Errorf("output missing non-sequence bucket:\n%s", out)
	}
}

// TestManifestCommandCSV tests CSV mode with stat columns
func TestManifestCommandCSV(t *testing.T) {
	path := writeManifest(t, "files.csv",
		"/r/shot.0001.exr,100\n/r/shot.0002.exr,200\n/r/shot.0003.exr,bad\n")

	out, errOut, err := executeCommand(t,
		"manifest", path, "--csv", "--separator", ",", "--stat-order", "size",
		"--log-level", "warn", "--config", missingConfig(t))
	require.NoError(t, err)

	if !strings.Contains(out, "Sequences (1)") {
		t.Errorf("output missing sequence:\n%s", out)
	}
	// The unparseable row is skipped with a warning, not a failure.
	if !strings.Contains(out, "[1-2]") {
		t.Errorf("bad row should be dropped from the range:\n%s", out)
	}
	if !strings.Contains(errOut, "line 3") {
		t.Errorf("expected row warning on stderr, got:\n%s", errOut)
	}
}

// TestManifestCommandMarkdown tests reading listings from code blocks
func TestManifestCommandMarkdown(t *testing.T) {
	path := writeManifest(t, "delivery.md", `# Delivery

Final renders:

`+"```"+`
/r/final.0001.dpx
/r/final.0002.dpx
`+"```"+`

Please confirm receipt.
`)

	out, _, err := executeCommand(t, "manifest", path, "--config", missingConfig(t))
	require.NoError(t, err)

	if !strings.Contains(out, "final.%04d.dpx [1-2]") {
		t.Errorf("output missing markdown-sourced sequence:\n%s", out)
	}
}

// TestManifestCommandMissingFile tests that an unreadable manifest fails
func TestManifestCommandMissingFile(t *testing.T) {
	_, _, err := executeCommand(t,
		"manifest", filepath.Join(t.TempDir(), "gone.txt"), "--config", missingConfig(t))
	require.Error(t, err)
}

// TestManifestCommandBadSeparator tests separator flag validation
func TestManifestCommandBadSeparator(t *testing.T) {
	path := writeManifest(t, "files.txt", "/r/a.txt\n")

	_, _, err := executeCommand(t,
		"manifest", path, "--csv", "--separator", "::", "--config", missingConfig(t))
	require.Error(t, err)
	require.Contains(t, err.Error(), "single character")
}

// TestManifestCommandStatCacheFill tests enriching manifest rows from a
// previous scan's cache
func TestManifestCommandStatCacheFill(t *testing.T) {
	dir := writeFiles(t, "shot.0001.exr", "shot.0002.exr")
	dbPath := filepath.Join(t.TempDir(), "stats.db")

	_, _, err := executeCommand(t,
		"scan", dir, "--stat-cache", dbPath, "--config", missingConfig(t))
	require.NoError(t, err)

	path := writeManifest(t, "files.txt",
		filepath.Join(dir, "shot.0001.exr")+"\n"+filepath.Join(dir, "shot.0002.exr")+"\n")

	out, errOut, err := executeCommand(t,
		"manifest", path, "--stat-cache", dbPath,
		"--log-level", "debug", "--config", missingConfig(t))
	require.NoError(t, err)

	if !strings.Contains(out, "Sequences (1)") {
		t.Errorf("output missing sequence:\n%s", out)
	}
	if !strings.Contains(errOut, "filled 2 entr(ies)") {
		t.Errorf("expected cache fill debug line, got:\n%s", errOut)
	}
}
