package sequence

import (
	"fmt"
	"sort"
)

// Sequence is an ordered-by-frame-number collection of Files that share the
// same naming structure. Frames are stored in a map keyed by frame number,
// so membership and collision checks are constant time. The sequence adopts
// its naming identity from the first appended File and is read-only once
// classification finishes.
type Sequence struct {
	frames map[int]*File

	name          string
	looseKey      string
	dir           string
	nameHead      string
	head          string
	tail          string
	ext           string
	padding       int
	inconsistent  bool
	ignorePadding bool
}

// NewSequence creates an empty sequence. With ignorePadding the sequence
// key uses a literal "#" placeholder; otherwise a zero-pad specifier sized
// to the first file's padding.
func NewSequence(ignorePadding bool) *Sequence {
	return &Sequence{
		frames:        make(map[int]*File),
		ignorePadding: ignorePadding,
	}
}

// NewSequenceOf creates a sequence seeded with one file.
func NewSequenceOf(file *File, ignorePadding bool) (*Sequence, error) {
	s := NewSequence(ignorePadding)
	if err := s.Append(file); err != nil {
		return nil, err
	}
	return s, nil
}

// Append adds a file to the sequence.
//
// A file with no frame number is rejected with ErrCannotSequence. A file
// whose naming structure differs from the sequence's is rejected with
// ErrKeyMismatch. A frame number already present is rejected with
// ErrFrameCollision; appends never overwrite. A later file whose padding
// exceeds the current maximum marks the sequence as inconsistently padded
// and raises the stored padding; a smaller padding is accepted silently.
func (s *Sequence) Append(file *File) error {
	frame, ok := file.Frame()
	if !ok {
		return fmt.Errorf("%s: %w", file, ErrCannotSequence)
	}

	if len(s.frames) == 0 {
		s.name = file.SeqKey(s.ignorePadding)
		s.looseKey = file.SeqKey(true)
		s.dir = file.Dir
		s.nameHead = file.NameHead
		s.head = file.Head
		s.tail = file.Tail
		s.ext = file.Ext
		s.padding = file.Padding
		s.frames[frame] = file
		return nil
	}

	if file.SeqKey(true) != s.looseKey {
		return fmt.Errorf("%s does not belong to %s: %w", file, s.name, ErrKeyMismatch)
	}
	if existing, ok := s.frames[frame]; ok {
		return fmt.Errorf("%s: frame %d already present as %s: %w",
			file, frame, existing.Name, ErrFrameCollision)
	}
	if file.Padding > s.padding {
		s.inconsistent = true
		s.padding = file.Padding
	}
	s.frames[frame] = file
	return nil
}

// Name returns the sequence key fixed at creation from the first file.
func (s *Sequence) Name() string { return s.name }

// Dir returns the directory shared by the sequence's files.
func (s *Sequence) Dir() string { return s.dir }

// NameHead returns the pre-frame filename text without the directory.
func (s *Sequence) NameHead() string { return s.nameHead }

// Head returns the full pre-frame text including the directory.
func (s *Sequence) Head() string { return s.head }

// Tail returns the post-frame text including the dotted extension.
func (s *Sequence) Tail() string { return s.tail }

// Ext returns the extension without the dot.
func (s *Sequence) Ext() string { return s.ext }

// Padding returns the widest frame padding seen so far.
func (s *Sequence) Padding() int { return s.padding }

// InconsistentPadding reports whether a later-appended file widened the
// sequence's padding. The flag is order dependent: a narrower file appended
// after a wider one does not raise it.
func (s *Sequence) InconsistentPadding() bool { return s.inconsistent }

// FrameCount returns the number of frames actually present.
func (s *Sequence) FrameCount() int { return len(s.frames) }

// Start returns the lowest frame number. The second return is false for an
// empty sequence.
func (s *Sequence) Start() (int, bool) {
	if len(s.frames) == 0 {
		return 0, false
	}
	first := true
	var min int
	for frame := range s.frames {
		if first || frame < min {
			min = frame
			first = false
		}
	}
	return min, true
}

// End returns the highest frame number. The second return is false for an
// empty sequence.
func (s *Sequence) End() (int, bool) {
	if len(s.frames) == 0 {
		return 0, false
	}
	first := true
	var max int
	for frame := range s.frames {
		if first || frame > max {
			max = frame
			first = false
		}
	}
	return max, true
}

// ImpliedFrames returns the inclusive span from first to last frame,
// regardless of gaps. Zero for an empty sequence.
func (s *Sequence) ImpliedFrames() int {
	start, ok := s.Start()
	if !ok {
		return 0
	}
	end, _ := s.End()
	return end - start + 1
}

// MissingFrameCount returns how many frames inside the implied range are
// absent.
func (s *Sequence) MissingFrameCount() int {
	return s.ImpliedFrames() - s.FrameCount()
}

// IsMissingFrames reports whether the sequence has gaps.
func (s *Sequence) IsMissingFrames() bool {
	return s.FrameCount() != s.ImpliedFrames()
}

// FrameNumbers returns the present frame numbers in ascending order.
func (s *Sequence) FrameNumbers() []int {
	numbers := make([]int, 0, len(s.frames))
	for frame := range s.frames {
		numbers = append(numbers, frame)
	}
	sort.Ints(numbers)
	return numbers
}

// MissingFrameNumbers returns the frame numbers inside the implied range
// that are absent, in ascending order.
func (s *Sequence) MissingFrameNumbers() []int {
	start, ok := s.Start()
	if !ok {
		return []int{}
	}
	end, _ := s.End()
	missing := []int{}
	for frame := start; frame <= end; frame++ {
		if _, present := s.frames[frame]; !present {
			missing = append(missing, frame)
		}
	}
	return missing
}

// Frame returns the file stored under the given frame number.
func (s *Sequence) Frame(frame int) (*File, bool) {
	file, ok := s.frames[frame]
	return file, ok
}

// Files returns the sequence's files in ascending frame order.
func (s *Sequence) Files() []*File {
	files := make([]*File, 0, len(s.frames))
	for _, frame := range s.FrameNumbers() {
		files = append(files, s.frames[frame])
	}
	return files
}

// First returns the file at the lowest frame number.
func (s *Sequence) First() (*File, bool) {
	start, ok := s.Start()
	if !ok {
		return nil, false
	}
	return s.frames[start], true
}

// TotalSize sums the sizes of all files in the sequence. The second return
// is false when any individual size is unknown.
func (s *Sequence) TotalSize() (int64, bool) {
	var total int64
	for _, file := range s.frames {
		size, ok := file.Size()
		if !ok {
			return 0, false
		}
		total += size
	}
	return total, true
}
