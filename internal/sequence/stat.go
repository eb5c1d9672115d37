package sequence

import (
	"fmt"
	"math"
	"os"
	"time"
)

// StatFieldOrder is the canonical field order for stat values supplied as a
// positional slice, e.g. from CSV manifest columns.
var StatFieldOrder = []string{
	"size", "inode", "ctime", "mtime", "atime",
	"mode", "dev", "nlink", "uid", "gid",
}

// Stat is a snapshot of filesystem metadata for one file. Every field is
// independently optional: a nil pointer means the value is unknown, never
// that it is zero. Stats may come from disk, from a manifest column, or not
// at all.
type Stat struct {
	Size  *int64
	Inode *int64
	Nlink *int64
	Dev   *int64
	Mode  *int64
	UID   *int64
	GID   *int64
	Atime *time.Time
	Mtime *time.Time
	Ctime *time.Time
}

// StatFromFileInfo builds a Stat from an os.FileInfo. Ownership, inode, and
// link fields are populated when the platform exposes them through
// FileInfo.Sys; otherwise only size, mode, and mtime are known.
func StatFromFileInfo(info os.FileInfo) *Stat {
	s := &Stat{}
	size := info.Size()
	s.Size = &size
	mode := int64(info.Mode())
	s.Mode = &mode
	mtime := info.ModTime()
	s.Mtime = &mtime

	s.fillFromSys(info)
	return s
}

// StatFromMap builds a Stat from field-name-to-value pairs. Keys follow
// StatFieldOrder names; time fields are Unix seconds and may carry a
// fractional part. Unknown keys are rejected so manifest column typos
// surface instead of silently dropping data.
func StatFromMap(fields map[string]float64) (*Stat, error) {
	s := &Stat{}
	for name, value := range fields {
		if err := s.setField(name, value); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// StatFromValues builds a Stat from values in StatFieldOrder. Shorter
// slices leave the remaining fields unknown; longer slices are an error.
func StatFromValues(values []float64) (*Stat, error) {
	if len(values) > len(StatFieldOrder) {
		return nil, fmt.Errorf("got %d stat values, canonical order has %d fields",
			len(values), len(StatFieldOrder))
	}
	s := &Stat{}
	for i, value := range values {
		if err := s.setField(StatFieldOrder[i], value); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Stat) setField(name string, value float64) error {
	setInt := func(dst **int64) {
		v := int64(value)
		*dst = &v
	}
	setTime := func(dst **time.Time) {
		sec, frac := math.Modf(value)
		t := time.Unix(int64(sec), int64(frac*float64(time.Second)))
		*dst = &t
	}

	switch name {
	case "size":
		setInt(&s.Size)
	case "inode":
		setInt(&s.Inode)
	case "nlink":
		setInt(&s.Nlink)
	case "dev":
		setInt(&s.Dev)
	case "mode":
		setInt(&s.Mode)
	case "uid":
		setInt(&s.UID)
	case "gid":
		setInt(&s.GID)
	case "atime":
		setTime(&s.Atime)
	case "mtime":
		setTime(&s.Mtime)
	case "ctime":
		setTime(&s.Ctime)
	default:
		return fmt.Errorf("unknown stat field %q", name)
	}
	return nil
}

// merge fills unknown fields of s from other, leaving known fields alone.
func (s *Stat) merge(other *Stat) {
	if other == nil {
		return
	}
	if s.Size == nil {
		s.Size = other.Size
	}
	if s.Inode == nil {
		s.Inode = other.Inode
	}
	if s.Nlink == nil {
		s.Nlink = other.Nlink
	}
	if s.Dev == nil {
		s.Dev = other.Dev
	}
	if s.Mode == nil {
		s.Mode = other.Mode
	}
	if s.UID == nil {
		s.UID = other.UID
	}
	if s.GID == nil {
		s.GID = other.GID
	}
	if s.Atime == nil {
		s.Atime = other.Atime
	}
	if s.Mtime == nil {
		s.Mtime = other.Mtime
	}
	if s.Ctime == nil {
		s.Ctime = other.Ctime
	}
}
