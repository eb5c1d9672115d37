// Package manifest reads file listings from manifest files: plain text
// lists, CSV listings with stat columns, and markdown documents whose
// fenced code blocks carry file lists. Manifests are classifier input
// producers; they perform no sequence detection themselves.
package manifest

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/harrison/framescan/internal/classify"
	"github.com/harrison/framescan/internal/sequence"
)

// DefaultSeparator is the CSV column separator used when none is
// configured.
const DefaultSeparator = '\t'

// Options configures manifest reading.
type Options struct {
	// CSV treats each line as separator-delimited columns with the path
	// first and stat values after, mapped through StatOrder.
	CSV bool
	// Separator is the CSV column separator; zero means DefaultSeparator.
	Separator rune
	// StatOrder names the stat fields carried by the CSV columns after
	// the path, in order. Names follow sequence.StatFieldOrder.
	StatOrder []string
}

// Result contains the entries read from one manifest.
type Result struct {
	// Entries contains one classifier entry per usable manifest row, in
	// file order.
	Entries []classify.Entry
	// Warnings describes rows that were skipped. Malformed rows never
	// abort the whole read.
	Warnings []string
}

// Read parses the manifest at path. Files named *.md or *.markdown are
// treated as markdown and their fenced code blocks read as plain listings;
// everything else is read line by line, as CSV when configured.
func Read(path string, opts Options) (*Result, error) {
	if err := validateStatOrder(opts.StatOrder); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return readMarkdown(f)
	default:
		if opts.CSV {
			return readCSV(f, opts)
		}
		return readPlain(f)
	}
}

// validateStatOrder rejects unknown stat field names before any rows are
// consumed, so a typo fails the whole read instead of every row.
func validateStatOrder(order []string) error {
	known := make(map[string]bool, len(sequence.StatFieldOrder))
	for _, name := range sequence.StatFieldOrder {
		known[name] = true
	}
	for _, name := range order {
		if !known[name] {
			return fmt.Errorf("unknown stat field %q in stat order", name)
		}
	}
	return nil
}

func readPlain(r io.Reader) (*Result, error) {
	result := &Result{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		result.Entries = append(result.Entries, classify.Entry{Path: line})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return result, nil
}

func readCSV(r io.Reader, opts Options) (*Result, error) {
	sep := opts.Separator
	if sep == 0 {
		sep = DefaultSeparator
	}

	reader := csv.NewReader(r)
	reader.Comma = sep
	reader.FieldsPerRecord = -1

	result := &Result{}
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("line %d: %v", line, err))
			continue
		}
		if len(record) == 0 || strings.TrimSpace(record[0]) == "" {
			continue
		}

		entry := classify.Entry{Path: strings.TrimSpace(record[0])}
		if len(opts.StatOrder) > 0 {
			stat, err := mapStats(opts.StatOrder, record[1:])
			if err != nil {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("line %d: %v", line, err))
				continue
			}
			entry.Stat = stat
		}
		result.Entries = append(result.Entries, entry)
	}
	return result, nil
}

// mapStats zips the configured stat order with a row's stat columns.
func mapStats(order []string, columns []string) (*sequence.Stat, error) {
	if len(columns) != len(order) {
		return nil, fmt.Errorf("got %d stat columns, stat order has %d fields",
			len(columns), len(order))
	}
	fields := make(map[string]float64, len(order))
	for i, name := range order {
		value, err := strconv.ParseFloat(strings.TrimSpace(columns[i]), 64)
		if err != nil {
			return nil, fmt.Errorf("stat field %q: %w", name, err)
		}
		fields[name] = value
	}
	return sequence.StatFromMap(fields)
}

// readMarkdown extracts file listings from the fenced and indented code
// blocks of a markdown document. Prose outside code blocks is ignored, so
// delivery notes can carry the file list inline.
func readMarkdown(r io.Reader) (*Result, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(content))

	result := &Result{}
	err = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindFencedCodeBlock, ast.KindCodeBlock:
			for i := 0; i < n.Lines().Len(); i++ {
				segment := n.Lines().At(i)
				line := strings.TrimSpace(string(segment.Value(content)))
				if line == "" {
					continue
				}
				result.Entries = append(result.Entries, classify.Entry{Path: line})
			}
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk markdown manifest: %w", err)
	}
	return result, nil
}
