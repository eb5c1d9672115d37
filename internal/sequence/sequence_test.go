package sequence

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
)

func mustAppend(t *testing.T, s *Sequence, paths ...string) {
	t.Helper()
	for _, p := range paths {
		if err := s.Append(NewFile(p, nil, false)); err != nil {
			t.Fatalf("Append(%s) returned error: %v", p, err)
		}
	}
}

// TestSequenceAdoptsFirstFileIdentity tests naming parts copied on first
// append
func TestSequenceAdoptsFirstFileIdentity(t *testing.T) {
	s := NewSequence(true)
	mustAppend(t, s, "/renders/shot.0001.exr")

	if s.Name() != "/renders/shot.#.exr" {
		t.Errorf("Name = %q, want %q", s.Name(), "/renders/shot.#.exr")
	}
	if s.Dir() != "/renders" || s.NameHead() != "shot." || s.Tail() != ".exr" || s.Ext() != "exr" {
		t.Errorf("identity parts = (%q, %q, %q, %q)", s.Dir(), s.NameHead(), s.Tail(), s.Ext())
	}
	if s.Padding() != 4 {
		t.Errorf("Padding = %d, want 4", s.Padding())
	}
}

// TestSequenceStrictKey tests the zero-pad key in strict padding mode
func TestSequenceStrictKey(t *testing.T) {
	s := NewSequence(false)
	mustAppend(t, s, "/renders/shot.0001.exr")
	if s.Name() != "/renders/shot.%04d.exr" {
		t.Errorf("Name = %q, want %q", s.Name(), "/renders/shot.%04d.exr")
	}
}

// TestSequenceAppendErrors tests the append rejection taxonomy
func TestSequenceAppendErrors(t *testing.T) {
	tests := []struct {
		name    string
		seed    []string
		path    string
		wantErr error
	}{
		{
			name:    "frameless file cannot be sequenced",
			path:    "/docs/notes.txt",
			wantErr: ErrCannotSequence,
		},
		{
			name:    "duplicate frame is a collision",
			seed:    []string{"/renders/shot.0001.exr"},
			path:    "/renders/shot.0001.exr",
			wantErr: ErrFrameCollision,
		},
		{
			name:    "foreign key is rejected",
			seed:    []string{"/renders/shot.0001.exr"},
			path:    "/renders/other.0002.exr",
			wantErr: ErrKeyMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSequence(true)
			mustAppend(t, s, tt.seed...)
			err := s.Append(NewFile(tt.path, nil, false))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Append error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestSequenceCollisionNeverOverwrites verifies the original file survives a
// collision regardless of append order
func TestSequenceCollisionNeverOverwrites(t *testing.T) {
	s := NewSequence(true)
	mustAppend(t, s, "/renders/shot.0005.exr")

	dup := NewFile("/renders/shot.0005.exr", nil, false)
	if err := s.Append(dup); !errors.Is(err, ErrFrameCollision) {
		t.Fatalf("Append duplicate = %v, want ErrFrameCollision", err)
	}
	if s.FrameCount() != 1 {
		t.Errorf("FrameCount after collision = %d, want 1", s.FrameCount())
	}
	// Re-appending keeps colliding; there is no silent second-time accept.
	if err := s.Append(dup); !errors.Is(err, ErrFrameCollision) {
		t.Errorf("second duplicate Append = %v, want ErrFrameCollision", err)
	}
}

// TestSequenceAppendPaddingOrderAsymmetry pins the order-dependent
// inconsistent-padding rule: only a later, wider file raises the flag.
// A narrower file appended after a wider one never does. This mirrors the
// historical behavior on purpose; changing it is a product decision.
func TestSequenceAppendPaddingOrderAsymmetry(t *testing.T) {
	wideLast := NewSequence(true)
	mustAppend(t, wideLast, "/r/shot.001.exr", "/r/shot.00002.exr")
	if !wideLast.InconsistentPadding() {
		t.Error("wider file appended later should raise InconsistentPadding")
	}
	if wideLast.Padding() != 5 {
		t.Errorf("Padding = %d, want 5", wideLast.Padding())
	}

	narrowLast := NewSequence(true)
	mustAppend(t, narrowLast, "/r/shot.00002.exr", "/r/shot.001.exr")
	if narrowLast.InconsistentPadding() {
		t.Error("narrower file appended later must not raise InconsistentPadding")
	}
	if narrowLast.Padding() != 5 {
		t.Errorf("Padding = %d, want 5", narrowLast.Padding())
	}
}

// TestSequenceRangeFacts tests the computed range properties on a gapped
// frame set
func TestSequenceRangeFacts(t *testing.T) {
	s := NewSequence(true)
	for _, n := range []int{10, 11, 14, 15, 20} {
		mustAppend(t, s, fmt.Sprintf("/r/shot.%04d.exr", n))
	}

	if start, _ := s.Start(); start != 10 {
		t.Errorf("Start = %d, want 10", start)
	}
	if end, _ := s.End(); end != 20 {
		t.Errorf("End = %d, want 20", end)
	}
	if s.FrameCount() != 5 {
		t.Errorf("FrameCount = %d, want 5", s.FrameCount())
	}
	if s.ImpliedFrames() != 11 {
		t.Errorf("ImpliedFrames = %d, want 11", s.ImpliedFrames())
	}
	if s.MissingFrameCount() != 6 {
		t.Errorf("MissingFrameCount = %d, want 6", s.MissingFrameCount())
	}
	if !s.IsMissingFrames() {
		t.Error("IsMissingFrames = false, want true")
	}
	wantMissing := []int{12, 13, 16, 17, 18, 19}
	if got := s.MissingFrameNumbers(); !reflect.DeepEqual(got, wantMissing) {
		t.Errorf("MissingFrameNumbers = %v, want %v", got, wantMissing)
	}
}

// TestSequenceContiguous tests a gap-free ten frame sequence
func TestSequenceContiguous(t *testing.T) {
	s := NewSequence(true)
	for n := 1; n <= 10; n++ {
		mustAppend(t, s, fmt.Sprintf("/r/shot.%04d.exr", n))
	}

	if s.FrameCount() != 10 || s.ImpliedFrames() != 10 {
		t.Errorf("counts = (%d, %d), want (10, 10)", s.FrameCount(), s.ImpliedFrames())
	}
	if s.IsMissingFrames() {
		t.Error("IsMissingFrames = true for contiguous sequence")
	}
	if s.MissingFrameCount() != 0 {
		t.Errorf("MissingFrameCount = %d, want 0", s.MissingFrameCount())
	}
	if len(s.MissingFrameNumbers()) != 0 {
		t.Errorf("MissingFrameNumbers = %v, want empty", s.MissingFrameNumbers())
	}
}

// TestSequenceEmpty tests range facts on an empty sequence
func TestSequenceEmpty(t *testing.T) {
	s := NewSequence(true)
	if _, ok := s.Start(); ok {
		t.Error("Start reported a value for empty sequence")
	}
	if _, ok := s.End(); ok {
		t.Error("End reported a value for empty sequence")
	}
	if s.ImpliedFrames() != 0 || s.MissingFrameCount() != 0 {
		t.Errorf("implied/missing = (%d, %d), want (0, 0)",
			s.ImpliedFrames(), s.MissingFrameCount())
	}
	if s.IsMissingFrames() {
		t.Error("IsMissingFrames = true for empty sequence")
	}
}

// TestSequenceFilesOrdered tests ascending frame ordering of Files
func TestSequenceFilesOrdered(t *testing.T) {
	s := NewSequence(true)
	mustAppend(t, s, "/r/shot.0003.exr", "/r/shot.0001.exr", "/r/shot.0002.exr")

	files := s.Files()
	want := []string{"shot.0001.exr", "shot.0002.exr", "shot.0003.exr"}
	for i, f := range files {
		if f.Name != want[i] {
			t.Errorf("Files()[%d] = %s, want %s", i, f.Name, want[i])
		}
	}

	first, ok := s.First()
	if !ok || first.Name != "shot.0001.exr" {
		t.Errorf("First = %v, want shot.0001.exr", first)
	}
}

// TestSequenceTotalSize tests size aggregation and its unknown propagation
func TestSequenceTotalSize(t *testing.T) {
	s := NewSequence(true)
	for n := 1; n <= 3; n++ {
		stat, err := StatFromMap(map[string]float64{"size": 100})
		if err != nil {
			t.Fatal(err)
		}
		path := fmt.Sprintf("/nonexistent/shot.%04d.exr", n)
		if err := s.Append(NewFile(path, stat, false)); err != nil {
			t.Fatal(err)
		}
	}

	total, ok := s.TotalSize()
	if !ok || total != 300 {
		t.Errorf("TotalSize = (%d, %v), want (300, true)", total, ok)
	}

	// One unknown size makes the aggregate unknown.
	if err := s.Append(NewFile("/nonexistent/shot.0004.exr", nil, false)); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.TotalSize(); ok {
		t.Error("TotalSize reported a value with an unknown member size")
	}
}

// TestNewSequenceOf tests the seeded constructor rejection path
func TestNewSequenceOf(t *testing.T) {
	if _, err := NewSequenceOf(NewFile("/docs/notes.txt", nil, false), true); !errors.Is(err, ErrCannotSequence) {
		t.Errorf("NewSequenceOf(frameless) error = %v, want ErrCannotSequence", err)
	}

	s, err := NewSequenceOf(NewFile("/r/shot.0001.exr", nil, false), true)
	if err != nil {
		t.Fatalf("NewSequenceOf returned error: %v", err)
	}
	if s.FrameCount() != 1 {
		t.Errorf("FrameCount = %d, want 1", s.FrameCount())
	}
}
