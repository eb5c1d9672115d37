//go:build !linux && !darwin

package sequence

import "os"

// fillFromSys is a no-op on platforms without a syscall.Stat_t; only size,
// mode, and mtime are known from the portable FileInfo surface.
func (s *Stat) fillFromSys(_ os.FileInfo) {}
