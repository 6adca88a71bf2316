package main

import (
	"io/fs"

	"github.com/gitstate-io/gitstate/index"
)

// fallbackStat fills what portable file info can offer. Dev, inode and
// ownership stay zero, which only costs extra content comparisons on the
// read side.
func fallbackStat(info fs.FileInfo) index.Stat {
	mtime := info.ModTime()
	return index.Stat{
		CtimeSec:  uint32(mtime.Unix()),
		CtimeNsec: uint32(mtime.Nanosecond()),
		MtimeSec:  uint32(mtime.Unix()),
		MtimeNsec: uint32(mtime.Nanosecond()),
		Size:      uint32(info.Size()),
	}
}
