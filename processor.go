package line

import (
	"fmt"
	"io"
)

// processor runs one read: it owns the connection's handlers from start
// until the read ends, and turns everything they receive into actions on
// its ConsoleBuffer. All its methods run with the Readline locked.
type processor struct {
	r    *Readline
	c    *ConsoleBuffer
	opts ReadOptions
	done func(string, error)

	restore    func() error
	prevInput  func([]rune)
	prevSize   func(Size)
	prevSignal func(Signal)
	ended      bool
}

func newProcessor(r *Readline, opts ReadOptions, done func(string, error)) *processor {
	r.mode.Reset()
	return &processor{
		r:    r,
		c:    newConsoleBuffer(r.conn, r.mode, opts.History, opts),
		opts: opts,
		done: done,
	}
}

func (p *processor) start() error {
	conn := p.r.conn
	restore, err := conn.EnterRawMode()
	if err != nil {
		return fmt.Errorf("line: enter raw mode: %w", err)
	}
	p.restore = restore
	p.prevInput = conn.SetInputHandler(p.onInput)
	p.prevSize = conn.SetSizeHandler(p.onSize)
	p.prevSignal = conn.SetSignalHandler(p.onSignal)

	p.c.history.ResetCursor()
	p.c.write(p.c.buffer.DrawLine())
	return nil
}

func (p *processor) active() bool {
	return !p.ended && p.r.current == p
}

func (p *processor) onInput(chunk []rune) {
	p.r.dispatch(func() []func() {
		if !p.active() {
			return nil
		}
		return p.drain(p.r.decoder.Decode(chunk))
	})
}

func (p *processor) onSize(s Size) {
	p.r.dispatch(func() []func() {
		if !p.active() {
			return nil
		}
		p.c.resize(s)
		if p.prevSize == nil {
			return nil
		}
		return []func(){func() { p.prevSize(s) }}
	})
}

func (p *processor) onSignal(s Signal) {
	p.r.dispatch(func() []func() {
		if !p.active() {
			return nil
		}
		c := p.c
		forward := false

		switch s {
		case SignalInt:
			switch {
			case c.focus != nil:
				p.key(KeyCtrlC)
			case c.mode.IsInChainedAction():
				p.key(c.mode.CancelKey())
			default:
				c.interrupt()
				forward = true
			}
		case SignalCont:
			if _, err := p.r.conn.EnterRawMode(); err != nil {
				debugf("re-enter raw mode: %v", err)
			}
			c.resize(p.r.conn.Size())
		case SignalEOF:
			// Whatever the decoder still holds will not be completed now.
			if end := p.drain(p.r.decoder.Flush()); c.done {
				return end
			}
			if c.mode.IsInChainedAction() {
				p.key(c.mode.CancelKey())
			}
			p.key(KeyCtrlD)
		default:
			forward = true
		}

		var deferred []func()
		if forward && p.prevSignal != nil {
			deferred = append(deferred, func() { p.prevSignal(s) })
		}
		if c.done {
			deferred = append(deferred, p.end(c.result, c.err)...)
		}
		return deferred
	})
}

// drain feeds keys in order. If one of them ends the read, the rest are kept
// for the next read.
func (p *processor) drain(keys []Key) []func() {
	for i, k := range keys {
		p.key(k)
		if p.c.done {
			p.r.typeahead = append(keys[i+1:len(keys):len(keys)], p.r.typeahead...)
			return p.end(p.c.result, p.c.err)
		}
	}
	return nil
}

func (p *processor) key(k Key) {
	c := p.c
	c.lastWasEOF, c.sawEOF = c.sawEOF, false
	before := c.buffer.Index()

	p.parse(k)

	if l := p.opts.CursorListener; l != nil && !c.done && c.buffer.Index() != before {
		l(CursorView{c: c})
	}
}

// parse hands k to the focus session, if any, and then to the edit mode.
func (p *processor) parse(k Key) {
	c := p.c
	if f := c.focus; f != nil {
		redispatch := f.handle(c, k)
		if !f.keepsFocus() && c.focus == f {
			c.focus = nil
		}
		if !redispatch || c.done {
			return
		}
	}

	if text, ok := k.Pasted(); ok {
		c.insertText(text)
		return
	}

	a, ok := c.mode.Parse(k)
	if !ok {
		if k.IsPrintable() && !c.mode.InCommandMode() {
			c.insertText(k.Runes())
			return
		}
		debugf("unbound key %v", k)
		if c.mode.InCommandMode() {
			c.write(Frame(nil).bell())
		}
		return
	}
	c.Execute(a)
}

// end finishes the read: the terminal and handlers are put back and the
// returned function delivers the result.
func (p *processor) end(line string, err error) []func() {
	if p.ended {
		return nil
	}
	p.ended = true
	c := p.c
	conn := p.r.conn

	if err != io.EOF {
		f := c.buffer.MoveToEnd()
		c.write(append(f, '\r', '\n'))
	}
	conn.SetInputHandler(p.prevInput)
	conn.SetSizeHandler(p.prevSize)
	conn.SetSignalHandler(p.prevSignal)
	if p.restore != nil {
		if rerr := p.restore(); rerr != nil {
			debugf("restore terminal: %v", rerr)
		}
	}

	if err == nil {
		for _, pre := range p.opts.Preprocessors {
			line = pre(line)
		}
		if _, masked := c.prompt.Masked(); !masked {
			c.history.Push(line)
		}
	}
	c.focus = nil
	p.r.current = nil

	if p.done == nil {
		return nil
	}
	return []func(){func() { p.done(line, err) }}
}
