package sequence

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// File represents a single file on disk or one manifest line, split into the
// naming parts the sequencer groups on. A File is immutable after
// construction except for lazy stat resolution: an unknown stat field may be
// filled from disk on first access if the file still exists.
type File struct {
	// AbsPath is the path the File was constructed from.
	AbsPath string
	// Dir is the directory portion of the path.
	Dir string
	// Name is the base filename including extension.
	Name string
	// NameHead is the filename text preceding the frame number, without
	// the directory.
	NameHead string
	// Head is the full text preceding the frame number: directory joined
	// with NameHead.
	Head string
	// Tail is the text following the frame number, including the dotted
	// extension when one exists.
	Tail string
	// Ext is the extension without the dot, original case preserved.
	// Comparisons against extension filters lower-case it.
	Ext string
	// Padding is the digit count of the literal frame string.
	Padding int

	frameStr string
	stat     *Stat
}

// NewFile constructs a File from a path and optional pre-supplied stats.
// When lookupStat is true the file is stat'ed on disk; a file that no
// longer exists falls back to the supplied stats. Construction never fails:
// missing stats are a normal, representable state.
func NewFile(path string, stat *Stat, lookupStat bool) *File {
	f := &File{AbsPath: path}
	f.Dir = filepath.Dir(path)
	f.Name = filepath.Base(path)

	stem, ext := SplitExtension(f.Name)
	f.Ext = ext

	head, frame, tail := ExtractFrame(stem)
	f.NameHead = head
	f.frameStr = frame
	f.Padding = len(frame)
	f.Head = joinHead(f.Dir, f.NameHead)
	if ext == "" {
		f.Tail = tail
	} else {
		f.Tail = tail + "." + ext
	}

	if lookupStat {
		if info, err := os.Stat(path); err == nil {
			f.stat = StatFromFileInfo(info)
		}
	}
	if f.stat == nil {
		if stat != nil {
			f.stat = stat
		} else {
			f.stat = &Stat{}
		}
	}
	return f
}

func (f *File) String() string {
	return f.AbsPath
}

// joinHead recombines directory and pre-frame filename text. An empty
// nameHead (digits-only stem, e.g. 0001.exr) must keep the directory's
// trailing separator: head + frame + tail reassembles the path, and a bare
// directory as the head would collide with sibling names like renders0001.exr.
func joinHead(dir, nameHead string) string {
	if nameHead != "" {
		return filepath.Join(dir, nameHead)
	}
	switch {
	case dir == ".":
		return ""
	case strings.HasSuffix(dir, string(filepath.Separator)):
		return dir
	default:
		return dir + string(filepath.Separator)
	}
}

// Frame returns the integer frame number and whether one was found in the
// filename. The literal digit string is preserved separately in
// FrameString.
func (f *File) Frame() (int, bool) {
	if f.frameStr == "" {
		return 0, false
	}
	n, err := strconv.Atoi(f.frameStr)
	if err != nil {
		return 0, false
	}
	return n, true
}

// FrameString returns the frame number exactly as it appeared in the
// filename, leading zeros included. Empty when the file has no frame.
func (f *File) FrameString() string {
	return f.frameStr
}

// SeqKey returns the sequence identity for this file: head, a frame
// placeholder, then tail. With ignorePadding the placeholder is a literal
// "#"; otherwise it is a printf-style zero-pad specifier sized to this
// file's padding. Files with no frame number use no placeholder at all.
func (f *File) SeqKey(ignorePadding bool) string {
	var digits string
	switch {
	case f.frameStr == "":
		digits = ""
	case ignorePadding:
		digits = "#"
	default:
		digits = fmt.Sprintf("%%0%dd", f.Padding)
	}
	return f.Head + digits + f.Tail
}

// Compare orders two files of the same sequence by their literal frame
// strings. Lexical comparison preserves zero-padded ordering within equal
// padding; cross-key comparisons return ErrKeyMismatch rather than a
// meaningless result.
func (f *File) Compare(other *File) (int, error) {
	if other == nil {
		return 0, fmt.Errorf("compare %s against nil file: %w", f, ErrKeyMismatch)
	}
	if f.SeqKey(true) != other.SeqKey(true) {
		return 0, fmt.Errorf("compare %s against %s: %w", f, other, ErrKeyMismatch)
	}
	return strings.Compare(f.frameStr, other.frameStr), nil
}

// resolveStat fills unknown stat fields from disk. Failure is silent: the
// fields simply stay unknown.
func (f *File) resolveStat() {
	info, err := os.Stat(f.AbsPath)
	if err != nil {
		return
	}
	f.stat.merge(StatFromFileInfo(info))
}

func (f *File) lazyInt(field **int64) (int64, bool) {
	if *field == nil {
		f.resolveStat()
	}
	if *field == nil {
		return 0, false
	}
	return **field, true
}

func (f *File) lazyTime(field **time.Time) (time.Time, bool) {
	if *field == nil {
		f.resolveStat()
	}
	if *field == nil {
		return time.Time{}, false
	}
	return **field, true
}

// Size returns the file size, resolving it from disk on first access when
// it was not supplied. The second return is false when it is unknown.
func (f *File) Size() (int64, bool) { return f.lazyInt(&f.stat.Size) }

// Inode returns the inode number if known or resolvable.
func (f *File) Inode() (int64, bool) { return f.lazyInt(&f.stat.Inode) }

// Nlink returns the hard link count if known or resolvable.
func (f *File) Nlink() (int64, bool) { return f.lazyInt(&f.stat.Nlink) }

// Dev returns the device number if known or resolvable.
func (f *File) Dev() (int64, bool) { return f.lazyInt(&f.stat.Dev) }

// Mode returns the file mode bits if known or resolvable.
func (f *File) Mode() (int64, bool) { return f.lazyInt(&f.stat.Mode) }

// UID returns the owner id if known or resolvable.
func (f *File) UID() (int64, bool) { return f.lazyInt(&f.stat.UID) }

// GID returns the group id if known or resolvable.
func (f *File) GID() (int64, bool) { return f.lazyInt(&f.stat.GID) }

// Atime returns the access time if known or resolvable.
func (f *File) Atime() (time.Time, bool) { return f.lazyTime(&f.stat.Atime) }

// Mtime returns the modification time if known or resolvable.
func (f *File) Mtime() (time.Time, bool) { return f.lazyTime(&f.stat.Mtime) }

// Ctime returns the change time if known or resolvable.
func (f *File) Ctime() (time.Time, bool) { return f.lazyTime(&f.stat.Ctime) }
