package sequence

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by Sequence and File operations. Callers match
// them with errors.Is; wrapped forms carry the offending path or frame.
var (
	// ErrCannotSequence indicates a file with no extractable frame number
	// was offered where a sequenceable file is required.
	ErrCannotSequence = errors.New("file cannot be sequenced")

	// ErrFrameCollision indicates two distinct files resolved to the same
	// sequence key and the same frame number. Appends never overwrite.
	ErrFrameCollision = errors.New("frame already present in sequence")

	// ErrKeyMismatch indicates an operation across two different sequence
	// keys, such as appending a foreign file or comparing unrelated files.
	ErrKeyMismatch = errors.New("sequence key mismatch")

	// ErrEmptySequence indicates a frame-dependent operation on a sequence
	// that has no frames yet.
	ErrEmptySequence = errors.New("sequence has no frames")
)

// FormatError reports an unrecognized directive in a format template.
type FormatError struct {
	// Directive is the offending directive text, e.g. "%z". A dangling
	// trailing "%" is reported as "%".
	Directive string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("unknown format directive %q", e.Directive)
}
