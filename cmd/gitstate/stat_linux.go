//go:build linux

package main

import "syscall"

func statCtime(sys *syscall.Stat_t) syscall.Timespec {
	return sys.Ctim
}

func statMtime(sys *syscall.Stat_t) syscall.Timespec {
	return sys.Mtim
}
