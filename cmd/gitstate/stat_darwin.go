//go:build darwin

package main

import "syscall"

func statCtime(sys *syscall.Stat_t) syscall.Timespec {
	return sys.Ctimespec
}

func statMtime(sys *syscall.Stat_t) syscall.Timespec {
	return sys.Mtimespec
}
