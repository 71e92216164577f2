//go:build unix

// Package term connects a line.Readline to the process's controlling
// terminal.
package term

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"unicode/utf8"

	"github.com/alimpfard/line/v2"
	"github.com/mattn/go-isatty"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

const (
	bracketedPasteOn  = "\x1b[?2004h"
	bracketedPasteOff = "\x1b[?2004l"
)

// Terminal is a line.Connection over a pair of tty files, normally stdin and
// stdout. Input read while no input handler is installed waits until one is.
type Terminal struct {
	in, out *os.File
	tty     bool

	mu     sync.Mutex
	cond   *sync.Cond
	input  func([]rune)
	size   func(line.Size)
	signal func(line.Signal)
	eof    bool
	closed bool

	// saved is the terminal state from before raw mode, nil when not raw.
	saved   *unix.Termios
	rawFall *term.State

	sigs chan os.Signal
}

// Open returns a Terminal on stdin and stdout.
func Open() (*Terminal, error) {
	return New(os.Stdin, os.Stdout)
}

// New returns a Terminal reading in and writing out. When in is not a
// terminal, raw mode is a no-op and input is read as is.
func New(in, out *os.File) (*Terminal, error) {
	if in == nil || out == nil {
		return nil, errors.New("term: nil file")
	}
	fd := in.Fd()
	t := &Terminal{
		in:   in,
		out:  out,
		tty:  isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd),
		sigs: make(chan os.Signal, 4),
	}
	t.cond = sync.NewCond(&t.mu)
	go t.readLoop()
	go t.signalLoop()
	return t, nil
}

// IsTerminal reports whether input comes from a terminal.
func (t *Terminal) IsTerminal() bool {
	return t.tty
}

func (t *Terminal) Write(out []rune) {
	t.mu.Lock()
	closed := t.closed
	t.mu.Unlock()
	if closed {
		return
	}
	_, _ = io.WriteString(t.out, string(out))
}

// Size returns the terminal size, 80x24 when it cannot be found out.
func (t *Terminal) Size() line.Size {
	if w, h, err := term.GetSize(int(t.out.Fd())); err == nil && w > 0 {
		return line.Size{Width: w, Height: h}
	}
	// stdout may be redirected; ask the controlling terminal.
	if fd, err := unix.Open("/dev/tty", unix.O_RDONLY, 0); err == nil {
		ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
		_ = unix.Close(fd)
		if err == nil && ws.Col > 0 {
			return line.Size{Width: int(ws.Col), Height: int(ws.Row)}
		}
	}
	return line.Size{Width: 80, Height: 24}
}

func (t *Terminal) SetInputHandler(h func([]rune)) func([]rune) {
	t.mu.Lock()
	defer t.mu.Unlock()
	prev := t.input
	t.input = h
	t.cond.Broadcast()
	return prev
}

func (t *Terminal) SetSizeHandler(h func(line.Size)) func(line.Size) {
	t.mu.Lock()
	defer t.mu.Unlock()
	prev := t.size
	t.size = h
	t.notify()
	return prev
}

func (t *Terminal) SetSignalHandler(h func(line.Signal)) func(line.Signal) {
	t.mu.Lock()
	defer t.mu.Unlock()
	prev := t.signal
	t.signal = h
	t.notify()
	if t.eof && h != nil {
		// Input ended before this handler was installed; the caller is
		// still setting up, so tell it from another goroutine.
		go h(line.SignalEOF)
	}
	return prev
}

// notify subscribes to the signals that have a handler. The caller holds
// t.mu.
func (t *Terminal) notify() {
	signal.Stop(t.sigs)
	if t.closed {
		return
	}
	var sigs []os.Signal
	if t.size != nil {
		sigs = append(sigs, unix.SIGWINCH)
	}
	if t.signal != nil {
		sigs = append(sigs, unix.SIGINT, unix.SIGQUIT, unix.SIGCONT, unix.SIGTSTP)
		sigs = append(sigs, infoSignals...)
	}
	if len(sigs) > 0 {
		signal.Notify(t.sigs, sigs...)
	}
}

// EnterRawMode turns off echo, line buffering, and input translation and
// turns on bracketed paste. Signal generating keys keep working.
func (t *Terminal) EnterRawMode() (func() error, error) {
	if !t.tty {
		return func() error { return nil }, nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.enterRaw(); err != nil {
		return nil, fmt.Errorf("term: %w", err)
	}
	_, _ = io.WriteString(t.out, bracketedPasteOn)
	return t.restoreLocked, nil
}

func (t *Terminal) enterRaw() error {
	fd := int(t.in.Fd())
	cur, err := getTermios(fd)
	if err != nil {
		// No termios ioctl here; let x/term do it.
		st, err := term.MakeRaw(fd)
		if err != nil {
			return err
		}
		if t.rawFall == nil {
			t.rawFall = st
		}
		return nil
	}
	if t.saved == nil {
		saved := *cur
		t.saved = &saved
	}
	raw := *cur
	raw.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN
	raw.Iflag &^= unix.IXON | unix.ICRNL
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0
	return setTermios(fd, &raw)
}

func (t *Terminal) restoreLocked() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.restore()
}

// restore puts back the state from before raw mode. The caller holds t.mu.
func (t *Terminal) restore() error {
	fd := int(t.in.Fd())
	switch {
	case t.saved != nil:
		_, _ = io.WriteString(t.out, bracketedPasteOff)
		err := setTermios(fd, t.saved)
		t.saved = nil
		return err
	case t.rawFall != nil:
		_, _ = io.WriteString(t.out, bracketedPasteOff)
		err := term.Restore(fd, t.rawFall)
		t.rawFall = nil
		return err
	}
	return nil
}

// Close stops signal handling, restores the terminal, and drops any further
// input. The files are left open.
func (t *Terminal) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true
	signal.Stop(t.sigs)
	close(t.sigs)
	t.cond.Broadcast()
	return t.restore()
}

// readLoop decodes input into runes, carrying a split UTF-8 sequence over to
// the next read.
func (t *Terminal) readLoop() {
	buf := make([]byte, 4096)
	var carry []byte
	for {
		n, err := t.in.Read(buf)
		if n > 0 {
			data := append(carry, buf[:n]...)
			carry = nil
			var rs []rune
			for len(data) > 0 {
				if !utf8.FullRune(data) {
					carry = append([]byte(nil), data...)
					break
				}
				r, size := utf8.DecodeRune(data)
				rs = append(rs, r)
				data = data[size:]
			}
			if len(rs) > 0 && !t.deliver(rs) {
				return
			}
		}
		if err != nil {
			t.endOfInput()
			return
		}
	}
}

// deliver waits for an input handler and hands it rs. It reports false once
// the terminal is closed.
func (t *Terminal) deliver(rs []rune) bool {
	t.mu.Lock()
	for t.input == nil && !t.closed {
		t.cond.Wait()
	}
	h, closed := t.input, t.closed
	t.mu.Unlock()
	if closed {
		return false
	}
	h(rs)
	return true
}

func (t *Terminal) endOfInput() {
	t.mu.Lock()
	t.eof = true
	h := t.signal
	t.mu.Unlock()
	if h != nil {
		h(line.SignalEOF)
	}
}

func (t *Terminal) signalLoop() {
	for sig := range t.sigs {
		t.mu.Lock()
		size, handler := t.size, t.signal
		t.mu.Unlock()

		if sig == unix.SIGWINCH {
			if size != nil {
				size(t.Size())
			}
			continue
		}
		if handler == nil {
			continue
		}
		switch sig {
		case unix.SIGINT:
			handler(line.SignalInt)
		case unix.SIGQUIT:
			handler(line.SignalQuit)
		case unix.SIGCONT:
			handler(line.SignalCont)
		case unix.SIGTSTP:
			t.suspend(handler)
		default:
			handler(line.SignalInfo)
		}
	}
}

// suspend gives the terminal back and stops the process, as the default
// SIGTSTP action would have. SIGCONT brings it back into raw mode.
func (t *Terminal) suspend(handler func(line.Signal)) {
	t.mu.Lock()
	if err := t.restore(); err != nil {
		fmt.Fprintf(os.Stderr, "term: restore: %v\n", err)
	}
	t.mu.Unlock()
	handler(line.SignalSusp)
	_ = unix.Kill(os.Getpid(), unix.SIGSTOP)
}
