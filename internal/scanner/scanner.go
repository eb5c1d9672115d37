// Package scanner walks directories and assembles classifier input. It is a
// collaborator of the classification engine: it only produces ordered
// (path, optional stats) pairs and never interprets filenames itself.
package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/harrison/framescan/internal/classify"
	"github.com/harrison/framescan/internal/sequence"
)

// Options configures the directory scan behavior.
type Options struct {
	// Recursive enables descending into child directories.
	Recursive bool
	// CollectStats attaches filesystem metadata to each entry as it is
	// discovered, saving a second stat during classification.
	CollectStats bool
}

// Result contains the entries of a directory scan.
type Result struct {
	// Entries contains the discovered files in sorted path order.
	Entries []classify.Entry
	// Errors contains any per-path errors encountered while scanning.
	// They do not abort the scan.
	Errors []error
}

// Scan walks dir for regular files and returns classifier entries.
// Symbolic links are skipped entirely, matching the traversal contract of
// the sequencer: link targets never appear in any bucket. Per-file errors
// accumulate in the result; only an unusable root fails the scan.
func Scan(dir string, opts Options) (*Result, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", dir)
	}

	result := &Result{
		Entries: make([]classify.Entry, 0),
		Errors:  make([]error, 0),
	}

	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("error accessing %s: %w", path, err))
			return nil // Continue walking
		}

		if path == dir {
			return nil
		}

		if d.IsDir() {
			if !opts.Recursive {
				return filepath.SkipDir
			}
			return nil
		}

		// Skip links so broken or cyclic targets never reach the
		// classifier.
		if d.Type()&os.ModeSymlink != 0 {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		entry := classify.Entry{Path: path}
		if opts.CollectStats {
			fileInfo, err := d.Info()
			if err != nil {
				result.Errors = append(result.Errors, fmt.Errorf("failed to stat %s: %w", path, err))
			} else {
				entry.Stat = sequence.StatFromFileInfo(fileInfo)
			}
		}

		result.Entries = append(result.Entries, entry)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	// Sort entries for consistent output
	sort.Slice(result.Entries, func(i, j int) bool {
		return result.Entries[i].Path < result.Entries[j].Path
	})

	return result, nil
}
