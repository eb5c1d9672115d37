package sequence

import (
	"fmt"
	"strings"
)

// DefaultTemplate is the format used when a caller supplies none. It renders
// the full head, a padding placeholder, the tail, and the frame count, e.g.
// "/path/to/shot.%04d.exr [1-10] (10 frames)".
const DefaultTemplate = "%H%P%T %R (%f frames)"

// directive enumerates the format placeholders understood by Format. The
// set is closed: rendering switches over every kind exhaustively and
// unknown letters never reach a directive value.
type directive int

const (
	dirPercent directive = iota // %% literal percent
	dirPath                     // %p directory path
	dirNameHead                 // %h head text of the filename only
	dirHead                     // %H full head, directory included
	dirFrameCount               // %f count of frames present
	dirImpliedRange             // %r implied range from literal frame strings
	dirExplicitRange            // %R compressed present-frame ranges
	dirMissingCount             // %m count of missing frames
	dirMissingRange             // %M compressed missing-frame ranges
	dirPoundPadding             // %D padding as repeated '#'
	dirPrintfPadding            // %P padding as zero-pad specifier
	dirTailNoExt                // %t tail without the extension segment
	dirTail                     // %T full tail including extension
	dirExt                      // %e extension without the dot
)

// directives maps template letters to directive kinds. Lookups that miss
// this table are a FormatError.
var directives = map[byte]directive{
	'%': dirPercent,
	'p': dirPath,
	'h': dirNameHead,
	'H': dirHead,
	'f': dirFrameCount,
	'r': dirImpliedRange,
	'R': dirExplicitRange,
	'm': dirMissingCount,
	'M': dirMissingRange,
	'D': dirPoundPadding,
	'P': dirPrintfPadding,
	't': dirTailNoExt,
	'T': dirTail,
	'e': dirExt,
}

// frameDependent reports whether a directive needs at least one frame to
// render. Such directives on an empty sequence return ErrEmptySequence
// rather than rendering placeholder text.
func (d directive) frameDependent() bool {
	switch d {
	case dirImpliedRange, dirExplicitRange, dirMissingCount, dirMissingRange:
		return true
	}
	return false
}

// Format renders the template left to right. A '%' followed by a directive
// letter consumes both characters and emits the directive's expansion;
// "%%" emits a literal '%'; every other character passes through. An
// unrecognized directive letter, or a dangling '%' at the end of the
// template, is a FormatError.
func (s *Sequence) Format(template string) (string, error) {
	var out strings.Builder
	for i := 0; i < len(template); i++ {
		c := template[i]
		if c != '%' {
			out.WriteByte(c)
			continue
		}
		if i+1 >= len(template) {
			return "", &FormatError{Directive: "%"}
		}
		i++
		dir, ok := directives[template[i]]
		if !ok {
			return "", &FormatError{Directive: "%" + string(template[i])}
		}
		expanded, err := s.expand(dir)
		if err != nil {
			return "", err
		}
		out.WriteString(expanded)
	}
	return out.String(), nil
}

// String renders the sequence with the default template, falling back to
// the raw sequence name if rendering fails.
func (s *Sequence) String() string {
	rendered, err := s.Format(DefaultTemplate)
	if err != nil {
		return s.name
	}
	return rendered
}

func (s *Sequence) expand(dir directive) (string, error) {
	if dir.frameDependent() && s.FrameCount() == 0 {
		return "", fmt.Errorf("cannot render frame directive: %w", ErrEmptySequence)
	}

	switch dir {
	case dirPercent:
		return "%", nil
	case dirPath:
		return s.dir, nil
	case dirNameHead:
		return s.nameHead, nil
	case dirHead:
		return s.head, nil
	case dirFrameCount:
		return fmt.Sprintf("%d", s.FrameCount()), nil
	case dirImpliedRange:
		first, _ := s.First()
		end, _ := s.End()
		last := s.frames[end]
		return "[" + first.FrameString() + "-" + last.FrameString() + "]", nil
	case dirExplicitRange:
		return CompressRange(s.FrameNumbers()), nil
	case dirMissingCount:
		return fmt.Sprintf("%d", s.MissingFrameCount()), nil
	case dirMissingRange:
		return CompressRange(s.MissingFrameNumbers()), nil
	case dirPoundPadding:
		return strings.Repeat("#", s.padding), nil
	case dirPrintfPadding:
		return fmt.Sprintf("%%0%dd", s.padding), nil
	case dirTailNoExt:
		if i := strings.LastIndexByte(s.tail, '.'); i >= 0 {
			return s.tail[:i], nil
		}
		return "", nil
	case dirTail:
		return s.tail, nil
	case dirExt:
		return s.ext, nil
	}
	return "", &FormatError{Directive: fmt.Sprintf("directive(%d)", dir)}
}
