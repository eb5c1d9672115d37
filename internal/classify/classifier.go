// Package classify routes files into frame sequences and classification
// buckets: multi-frame sequences, singleton frames, non-sequenceable files,
// extension-excluded files, and frame-number collisions.
package classify

import (
	"errors"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/harrison/framescan/internal/sequence"
)

// Entry is one unit of classifier input: a path plus optional pre-supplied
// stat metadata, as produced by the directory scanner or a manifest reader.
type Entry struct {
	Path string
	Stat *sequence.Stat
}

// Options configures a classification run.
type Options struct {
	// IncludeExts, when non-empty, restricts classification to these
	// extensions (dot-less, case-insensitive). Everything else is excluded.
	IncludeExts []string
	// ExcludeExts always excludes these extensions, even when listed in
	// IncludeExts.
	ExcludeExts []string
	// IgnorePadding groups files regardless of frame padding. When false,
	// files with different padding form separate sequences.
	IgnorePadding bool
	// CollectStats stats each file on disk during classification when its
	// entry carries no pre-supplied metadata.
	CollectStats bool
}

// Result holds the read-only buckets of one completed run.
type Result struct {
	// RunID uniquely identifies the classification run.
	RunID string
	// Sequences are groups with two or more frames, ordered by name.
	Sequences []*sequence.Sequence
	// SingleFrames are sequenceable files whose key matched nothing else.
	SingleFrames []*sequence.File
	// NonSequences are files with no extractable frame number.
	NonSequences []*sequence.File
	// Excluded are files filtered out by extension.
	Excluded []*sequence.File
	// Collisions are files that mapped to an already-occupied frame.
	Collisions []*sequence.File
}

// Classifier groups files into sequences keyed by their non-numeric
// structure. A Classifier owns its buckets exclusively for the duration of
// one Run and resets them when the next begins; concurrent runs against the
// same instance are not supported.
type Classifier struct {
	includeExts map[string]bool
	excludeExts map[string]bool
	opts        Options

	sequences map[string]*sequence.Sequence
	result    *Result
	parsed    bool
}

// New creates a Classifier with the given options.
func New(opts Options) *Classifier {
	c := &Classifier{
		includeExts: make(map[string]bool),
		excludeExts: make(map[string]bool),
		opts:        opts,
	}
	for _, ext := range opts.IncludeExts {
		c.includeExts[normalizeExt(ext)] = true
	}
	for _, ext := range opts.ExcludeExts {
		c.excludeExts[normalizeExt(ext)] = true
	}
	return c
}

// normalizeExt lower-cases an extension and strips a leading dot so config
// lists may use either "exr" or ".exr".
func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// Parsed reports whether the classifier has completed a run.
func (c *Classifier) Parsed() bool {
	return c.parsed
}

// Run classifies the entries in order and returns the finalized buckets.
// Sequences that end the run with exactly one frame are unwrapped into the
// SingleFrames bucket. Collisions are routed to their bucket and never
// abort the run.
func (c *Classifier) Run(entries []Entry) *Result {
	c.reset()

	for _, entry := range entries {
		c.sortFile(entry)
	}

	c.finalize()
	return c.result
}

func (c *Classifier) reset() {
	c.sequences = make(map[string]*sequence.Sequence)
	c.result = &Result{RunID: uuid.NewString()}
	c.parsed = false
}

func (c *Classifier) sortFile(entry Entry) {
	lookup := c.opts.CollectStats && entry.Stat == nil
	file := sequence.NewFile(entry.Path, entry.Stat, lookup)

	ext := normalizeExt(file.Ext)
	if (len(c.includeExts) > 0 && !c.includeExts[ext]) || c.excludeExts[ext] {
		c.result.Excluded = append(c.result.Excluded, file)
		return
	}

	if _, ok := file.Frame(); !ok {
		c.result.NonSequences = append(c.result.NonSequences, file)
		return
	}

	key := file.SeqKey(c.opts.IgnorePadding)
	seq, ok := c.sequences[key]
	if !ok {
		seq = sequence.NewSequence(c.opts.IgnorePadding)
		c.sequences[key] = seq
	}
	if err := seq.Append(file); err != nil {
		if errors.Is(err, sequence.ErrFrameCollision) {
			c.result.Collisions = append(c.result.Collisions, file)
		}
		// A key mismatch cannot happen here: the map key and the
		// sequence identity derive from the same SeqKey call.
		return
	}
}

func (c *Classifier) finalize() {
	for _, seq := range c.sequences {
		if seq.FrameCount() == 1 {
			file, _ := seq.First()
			c.result.SingleFrames = append(c.result.SingleFrames, file)
			continue
		}
		c.result.Sequences = append(c.result.Sequences, seq)
	}
	c.sequences = nil

	sort.Slice(c.result.Sequences, func(i, j int) bool {
		return c.result.Sequences[i].Name() < c.result.Sequences[j].Name()
	})
	sortFiles(c.result.SingleFrames)
	sortFiles(c.result.NonSequences)
	sortFiles(c.result.Excluded)
	sortFiles(c.result.Collisions)

	c.parsed = true
}

func sortFiles(files []*sequence.File) {
	sort.Slice(files, func(i, j int) bool {
		return files[i].AbsPath < files[j].AbsPath
	})
}
