//go:build linux

package sequence

import (
	"os"
	"syscall"
	"time"
)

// fillFromSys populates ownership, inode, and timestamp fields from the
// platform stat structure when the FileInfo carries one.
func (s *Stat) fillFromSys(info os.FileInfo) {
	sys, ok := info.Sys().(*syscall.Stat_t)
	if !ok || sys == nil {
		return
	}
	ino := int64(sys.Ino)
	nlink := int64(sys.Nlink)
	dev := int64(sys.Dev)
	uid := int64(sys.Uid)
	gid := int64(sys.Gid)
	s.Inode = &ino
	s.Nlink = &nlink
	s.Dev = &dev
	s.UID = &uid
	s.GID = &gid
	atime := time.Unix(sys.Atim.Unix())
	ctime := time.Unix(sys.Ctim.Unix())
	s.Atime = &atime
	s.Ctime = &ctime
}
