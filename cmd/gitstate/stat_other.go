//go:build !linux && !darwin

package main

import (
	"io/fs"

	"github.com/gitstate-io/gitstate/index"
)

func fileStat(info fs.FileInfo) index.Stat {
	return fallbackStat(info)
}
