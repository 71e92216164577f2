//go:build linux

package term

import (
	"os"

	"golang.org/x/sys/unix"
)

var infoSignals []os.Signal

func getTermios(fd int) (*unix.Termios, error) {
	return unix.IoctlGetTermios(fd, unix.TCGETS)
}

func setTermios(fd int, t *unix.Termios) error {
	return unix.IoctlSetTermios(fd, unix.TCSETS, t)
}
