// Package display renders classification results for the terminal.
package display

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/harrison/framescan/internal/classify"
	"github.com/harrison/framescan/internal/sequence"
)

// Report renders a classification result section by section.
type Report struct {
	// Template is the sequence format template for sequence lines.
	Template string
	// Verbose also lists single frames, non-sequences, excluded files,
	// and collisions individually instead of only counting them.
	Verbose bool
}

// Render writes the report for result to out. Sequence lines that fail to
// format (for example with a user template referencing an unknown
// directive) fall back to the raw sequence name; the error is reported once
// at the end.
func (r Report) Render(out io.Writer, result *classify.Result) error {
	header := color.New(color.FgCyan, color.Bold)
	dim := color.New(color.FgHiBlack)

	var formatErr error

	header.Fprintf(out, "Sequences (%d)\n", len(result.Sequences))
	for _, seq := range result.Sequences {
		line, err := seq.Format(r.Template)
		if err != nil {
			if formatErr == nil {
				formatErr = err
			}
			line = seq.Name()
		}
		fmt.Fprintf(out, "  %s\n", line)
		if seq.InconsistentPadding() {
			color.New(color.FgYellow).Fprintf(out, "    inconsistent padding (now %d digits)\n", seq.Padding())
		}
		if seq.IsMissingFrames() {
			color.New(color.FgYellow).Fprintf(out, "    missing %d frame(s): %s\n",
				seq.MissingFrameCount(), sequence.CompressRange(seq.MissingFrameNumbers()))
		}
	}

	r.renderFiles(out, "Single frames", result.SingleFrames)
	r.renderFiles(out, "Non-sequences", result.NonSequences)
	r.renderFiles(out, "Excluded", result.Excluded)
	r.renderFiles(out, "Collisions", result.Collisions)

	dim.Fprintf(out, "run %s\n", result.RunID)

	if formatErr != nil {
		return fmt.Errorf("some sequences could not be formatted: %w", formatErr)
	}
	return nil
}

func (r Report) renderFiles(out io.Writer, title string, files []*sequence.File) {
	if len(files) == 0 {
		return
	}
	color.New(color.FgCyan, color.Bold).Fprintf(out, "%s (%d)\n", title, len(files))
	if !r.Verbose {
		return
	}
	for _, file := range files {
		fmt.Fprintf(out, "  %s\n", file.AbsPath)
	}
}
