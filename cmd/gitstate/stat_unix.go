//go:build linux || darwin

package main

import (
	"io/fs"
	"syscall"

	"github.com/gitstate-io/gitstate/index"
)

// fileStat extracts the cached stat metadata the index stores for change
// detection. All values are truncated to 32 bits, matching the on-disk
// encoding.
func fileStat(info fs.FileInfo) index.Stat {
	sys, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return fallbackStat(info)
	}
	ctime := statCtime(sys)
	mtime := statMtime(sys)
	return index.Stat{
		CtimeSec:  uint32(ctime.Sec),
		CtimeNsec: uint32(ctime.Nsec),
		MtimeSec:  uint32(mtime.Sec),
		MtimeNsec: uint32(mtime.Nsec),
		Dev:       uint32(sys.Dev),
		Ino:       uint32(sys.Ino),
		UID:       sys.Uid,
		GID:       sys.Gid,
		Size:      uint32(info.Size()),
	}
}
