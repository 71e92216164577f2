//go:build unix && !linux && !darwin && !dragonfly && !freebsd && !netbsd && !openbsd

package term

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

var infoSignals []os.Signal

var errNoTermios = errors.New("termios ioctl not supported")

func getTermios(int) (*unix.Termios, error) {
	return nil, errNoTermios
}

func setTermios(int, *unix.Termios) error {
	return errNoTermios
}
