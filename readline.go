// Package line is a line editor for terminal applications. It is driven by
// input pushed to it through a Connection rather than by reading a file
// descriptor, so the same engine serves a local tty, a pty behind an SSH
// server, or a test.
package line

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrReadInProgress is returned by Read while an earlier read has not
	// finished.
	ErrReadInProgress = errors.New("line: read already in progress")
	// ErrClosed is returned when the connection went away during a read.
	ErrClosed = errors.New("line: connection closed")
)

// Size is a terminal size in cells.
type Size struct {
	Width  int
	Height int
}

// Signal is an out-of-band event from the terminal.
type Signal int

const (
	SignalInt Signal = iota
	SignalQuit
	SignalSusp
	SignalCont
	SignalEOF
	SignalInfo
)

func (s Signal) String() string {
	switch s {
	case SignalInt:
		return "INT"
	case SignalQuit:
		return "QUIT"
	case SignalSusp:
		return "SUSP"
	case SignalCont:
		return "CONT"
	case SignalEOF:
		return "EOF"
	case SignalInfo:
		return "INFO"
	}
	return fmt.Sprintf("Signal(%d)", int(s))
}

// Connection is the terminal the editor talks to. Each Set*Handler installs
// a handler and returns the one it replaced, which may be nil.
type Connection interface {
	Write(out []rune)
	Size() Size
	SetInputHandler(func([]rune)) func([]rune)
	SetSizeHandler(func(Size)) func(Size)
	SetSignalHandler(func(Signal)) func(Signal)
	// EnterRawMode switches the terminal to raw mode and returns a function
	// that restores the previous mode.
	EnterRawMode() (restore func() error, err error)
	Close() error
}

// Flags tune a single read.
type Flags struct {
	// NoPromptRedrawOnInterrupt leaves the screen after ^C to the
	// application instead of drawing a fresh prompt.
	NoPromptRedrawOnInterrupt bool
	// IgnoreEOF is how many EOFs in a row on an empty line are ignored
	// before the read ends with io.EOF.
	IgnoreEOF int
	// NoMultilineOnQuote lists the quote kinds that do not continue input
	// onto another line when left open.
	NoMultilineOnQuote QuoteKind
}

// ReadOptions configure a single read.
type ReadOptions struct {
	Prompt     *Prompt
	Completers []Completer
	// Preprocessors rewrite the accepted line before it is recorded and
	// returned, in order.
	Preprocessors  []func(string) string
	History        History
	CursorListener CursorListener
	// Flags replaces the configured defaults for this read when set.
	Flags          *Flags
}

// Readline reads lines from one connection, one read at a time. The edit
// mode and history persist across reads.
type Readline struct {
	mu sync.Mutex

	conn    Connection
	mode    *EditMode
	history History
	decoder *KeyDecoder

	// typeahead holds keys that arrived after the line that ended the last
	// read; the next read starts with them.
	typeahead []Key
	current   *processor

	flags       Flags
	historyFile string
}

func New(conn Connection) *Readline {
	return &Readline{
		conn:    conn,
		mode:    NewEditMode(ModeEmacs),
		history: NewMemoryHistory(DefaultHistorySize),
		decoder: NewKeyDecoder(),
	}
}

// EditMode returns the key binding state shared by all reads.
func (r *Readline) EditMode() *EditMode {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.mode
}

func (r *Readline) History() History {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.history
}

func (r *Readline) SetHistory(h History) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.history = h
}

// SaveHistory writes the history to the file named in the configuration,
// if any.
func (r *Readline) SaveHistory() error {
	r.mu.Lock()
	path, h := r.historyFile, r.history
	r.mu.Unlock()
	if path == "" {
		return nil
	}
	mh, ok := h.(*MemoryHistory)
	if !ok {
		return nil
	}
	return mh.SaveFile(path)
}

// Read starts reading a line and returns at once. done is called with the
// line, or with io.EOF or ErrClosed, once the read is over; it runs after
// the read has released the Readline, so it may start the next read.
func (r *Readline) Read(opts ReadOptions, done func(line string, err error)) error {
	var err error
	r.dispatch(func() []func() {
		if r.current != nil {
			err = ErrReadInProgress
			return nil
		}
		if opts.History == nil {
			opts.History = r.history
		}
		if opts.Flags == nil {
			flags := r.flags
			opts.Flags = &flags
		}
		p := newProcessor(r, opts, done)
		if err = p.start(); err != nil {
			return nil
		}
		r.current = p
		return p.drain(r.takeTypeahead())
	})
	return err
}

// ReadLine reads a line, blocking until it is complete or ctx is done. A
// cancelled read is interrupted and its line dropped.
func (r *Readline) ReadLine(ctx context.Context, opts ReadOptions) (string, error) {
	type result struct {
		line string
		err  error
	}
	ch := make(chan result, 1)
	if err := r.Read(opts, func(line string, err error) {
		ch <- result{line, err}
	}); err != nil {
		return "", err
	}
	select {
	case res := <-ch:
		return res.line, res.err
	case <-ctx.Done():
		r.abort(ctx.Err())
		res := <-ch
		if res.err == nil {
			res.err = ctx.Err()
		}
		return "", res.err
	}
}

// abort ends the read in progress with err.
func (r *Readline) abort(err error) {
	r.dispatch(func() []func() {
		if r.current == nil {
			return nil
		}
		return r.current.end("", err)
	})
}

// Close ends the read in progress, if any, with ErrClosed and closes the
// connection.
func (r *Readline) Close() error {
	r.abort(ErrClosed)
	return r.conn.Close()
}

func (r *Readline) takeTypeahead() []Key {
	keys := r.typeahead
	r.typeahead = nil
	return keys
}

// dispatch runs fn under the lock, then runs what it returned after
// unlocking. Completion callbacks go through here.
func (r *Readline) dispatch(fn func() []func()) {
	r.mu.Lock()
	deferred := fn()
	r.mu.Unlock()
	for _, f := range deferred {
		f()
	}
}
