package line

import (
	"fmt"
	"io"
)

// focusSession is an interaction that takes keys ahead of the edit mode
// until it is over: an incremental search or a completion prompt.
type focusSession interface {
	keepsFocus() bool
	// handle consumes k. It returns true when k should also go through the
	// edit mode.
	handle(c *ConsoleBuffer, k Key) bool
}

// ConsoleBuffer holds everything one read works on. Every action executes
// through it, and it is the only thing that writes to the connection while
// the read is active.
type ConsoleBuffer struct {
	conn       Connection
	prompt     *Prompt
	buffer     *Buffer
	history    History
	undo       *UndoManager
	paste      *PasteManager
	completers []Completer
	mode       *EditMode
	size       Size
	flags      Flags
	focus      focusSession

	eofCount   int
	lastWasEOF bool
	sawEOF     bool
	inserting  bool

	done   bool
	result string
	err    error
}

func newConsoleBuffer(conn Connection, mode *EditMode, h History, opts ReadOptions) *ConsoleBuffer {
	size := conn.Size()
	p := opts.Prompt
	if p == nil {
		p = NewPrompt("")
	}
	c := &ConsoleBuffer{
		conn:       conn,
		prompt:     p,
		buffer:     NewBuffer(p, size.Width),
		history:    h,
		undo:       NewUndoManager(),
		paste:      NewPasteManager(),
		completers: opts.Completers,
		mode:       mode,
		size:       size,
		flags:      *opts.Flags,
	}
	c.buffer.clampEnd = mode.InCommandMode()
	return c
}

func (c *ConsoleBuffer) write(f Frame) {
	if len(f) == 0 {
		return
	}
	c.conn.Write(f)
}

// finish ends the read with line, or with err when it is not nil.
func (c *ConsoleBuffer) finish(line string, err error) {
	c.done = true
	c.result = line
	c.err = err
}

// accept finishes the read with the current input, unless the input asks to
// be continued on another line.
func (c *ConsoleBuffer) accept() {
	b := c.buffer
	if cont, quoted := b.continuation(c.flags.NoMultilineOnQuote); cont {
		c.inserting = false
		c.write(b.Continue(quoted))
		return
	}
	c.finish(b.String(), nil)
}

// insertText inserts typed or pasted text. A run of inserts is undone as one.
func (c *ConsoleBuffer) insertText(rs []rune) {
	if !c.inserting {
		c.undo.Push(c.buffer.Line(), c.buffer.Cursor())
		c.inserting = true
	}
	c.write(c.buffer.Insert(rs))
}

// reset drops the line and starts over under the read's prompt.
func (c *ConsoleBuffer) reset() {
	c.buffer = NewBuffer(c.prompt, c.buffer.Width())
	c.history.ResetCursor()
	c.undo = NewUndoManager()
	c.focus = nil
	c.inserting = false
	c.mode.Reset()
}

// interrupt abandons the line as C-c does.
func (c *ConsoleBuffer) interrupt() {
	f := c.buffer.MoveToEnd()
	f = f.text("^C\r\n")
	c.reset()
	if !c.flags.NoPromptRedrawOnInterrupt {
		f = append(f, c.buffer.DrawLine()...)
	}
	c.write(f)
}

func (c *ConsoleBuffer) resize(s Size) {
	c.size = s
	c.write(c.buffer.Resize(s.Width))
}

// Execute runs a. It panics on an action kind it does not know, which is a
// programming error.
func (c *ConsoleBuffer) Execute(a Action) {
	b := c.buffer
	if a.changesLine() {
		c.undo.Push(b.Line(), b.Cursor())
	}
	c.inserting = false
	if !c.mode.InCommandMode() {
		c.write(b.SetClampEnd(false))
	}

	switch a.Kind {
	case ActionNone:
	case ActionMove:
		c.write(b.SetCursor(target(b.Line(), b.Cursor(), a.Motion, a.count())))
	case ActionOperate:
		c.operate(a)
	case ActionBackwardDeleteChar:
		if b.Cursor() == 0 {
			c.write(Frame(nil).bell())
			return
		}
		c.write(b.Delete(-a.count()))
	case ActionDeleteChar:
		c.write(b.Delete(a.count()))
	case ActionDeleteCharOrEOF:
		c.sawEOF = true
		c.deleteCharOrEOF()
	case ActionAcceptLine:
		c.accept()
	case ActionComplete:
		c.complete()
	case ActionHistoryPrevious:
		c.historyStep(func() (string, bool) { return c.history.Previous(string(b.Line())) }, a.count())
	case ActionHistoryNext:
		c.historyStep(c.history.Next, a.count())
	case ActionSearchBackward:
		c.focus = newSearchSession(c, true)
	case ActionSearchForward:
		c.focus = newSearchSession(c, false)
	case ActionUndo:
		line, cursor, ok := c.undo.Pop()
		if !ok {
			c.write(Frame(nil).bell())
			return
		}
		c.write(b.ReplaceRange(0, b.Len(), line, cursor))
	case ActionYank:
		text, ok := c.paste.Get()
		if !ok {
			c.write(Frame(nil).bell())
			return
		}
		c.write(b.Insert(text))
	case ActionPasteAfter:
		text, ok := c.paste.Get()
		if !ok {
			c.write(Frame(nil).bell())
			return
		}
		at := min(b.Cursor()+1, b.Len())
		c.write(b.ReplaceRange(at, at, text, at+len(text)-1))
	case ActionTransposeChars:
		f, ok := b.Transpose()
		if !ok {
			f = f.bell()
		}
		c.write(f)
	case ActionToggleCase:
		c.write(b.ToggleCase(a.count()))
	case ActionReplaceChar:
		f, ok := b.ReplaceChar(a.Char, a.count())
		if !ok {
			f = f.bell()
		}
		c.write(f)
	case ActionInsertMode:
		c.write(b.SetCursor(target(b.Line(), b.Cursor(), a.Motion, 1)))
	case ActionCommandMode:
		if c.mode.Mode() == ModeVi {
			c.write(b.Move(-1))
		}
	case ActionClearScreen:
		c.write(b.ClearScreen())
	case ActionCancel:
		if c.mode.Mode() == ModeEmacs {
			c.write(Frame(nil).bell())
		}
	case ActionInterrupt:
		c.interrupt()
	case ActionToggleEditMode, ActionViEditingMode, ActionEmacsEditingMode:
	case ActionYankLastArg:
		n := c.history.Len()
		if n == 0 {
			c.write(Frame(nil).bell())
			return
		}
		word := lastWord([]rune(c.history.Get(n - 1)))
		if len(word) == 0 {
			c.write(Frame(nil).bell())
			return
		}
		c.write(b.Insert(word))
	default:
		panic(fmt.Sprintf("line: unhandled action %v", a))
	}

	if c.mode.InCommandMode() {
		c.write(c.buffer.SetClampEnd(true))
	}
}

func (c *ConsoleBuffer) operate(a Action) {
	b := c.buffer
	line := b.Line()
	from, to := motionRange(line, b.Cursor(), a.Motion, a.count())

	switch a.Status {
	case StatusDelete, StatusChange:
		if from >= to {
			if a.Status == StatusDelete {
				c.write(Frame(nil).bell())
			}
			return
		}
		c.paste.Add(line[from:to])
		c.write(b.DeleteRange(from, to))
	case StatusYank:
		c.paste.Add(line[from:to])
		if a.Motion != MotionWholeLine {
			c.write(b.SetCursor(from))
		}
	case StatusMove:
		c.write(b.SetCursor(target(line, b.Cursor(), a.Motion, a.count())))
	case StatusUpCase, StatusDownCase, StatusCapitalize:
		f := b.ChangeCase(from, to, a.Status)
		if c.mode.Mode() == ModeEmacs {
			f = append(f, b.SetCursor(to)...)
		} else {
			f = append(f, b.SetCursor(from)...)
		}
		c.write(f)
	default:
		panic(fmt.Sprintf("line: unhandled operator %v", a.Status))
	}
}

// historyStep replaces the line with the entry count steps away.
func (c *ConsoleBuffer) historyStep(step func() (string, bool), count int) {
	var entry string
	moved := false
	for range count {
		s, ok := step()
		if !ok {
			break
		}
		entry, moved = s, true
	}
	if !moved {
		c.write(Frame(nil).bell())
		return
	}
	c.write(c.buffer.Replace([]rune(entry)))
}

// deleteCharOrEOF deletes forward, or treats the key as end of input when
// there is nothing to delete. With IgnoreEOF set, that many repeated EOFs in
// a row are ignored first.
func (c *ConsoleBuffer) deleteCharOrEOF() {
	b := c.buffer
	if b.Len() > 0 || b.IsMultiLine() {
		if b.Cursor() >= b.Len() {
			c.write(Frame(nil).bell())
			return
		}
		c.write(b.Delete(1))
		return
	}

	if c.flags.IgnoreEOF > 0 {
		if c.lastWasEOF {
			c.eofCount++
		} else {
			c.eofCount = 0
		}
		if c.eofCount <= c.flags.IgnoreEOF {
			debugf("ignoring EOF %d of %d", c.eofCount, c.flags.IgnoreEOF)
			return
		}
	}
	if err := c.conn.Close(); err != nil {
		debugf("close: %v", err)
	}
	c.finish("", io.EOF)
}

// CursorListener is told about the cursor after every key that moved it.
type CursorListener func(CursorView)

// CursorView is the read-only view of the input a CursorListener gets, plus
// the means to run cursor transactions against it.
type CursorView struct {
	c *ConsoleBuffer
}

// Index is the cursor as an index into the whole input.
func (v CursorView) Index() int { return v.c.buffer.Index() }

// Line is the whole input, continuation segments included.
func (v CursorView) Line() string { return v.c.buffer.String() }

func (v CursorView) Position() (Position, bool) {
	return v.c.buffer.Locate(v.c.buffer.Index())
}

func (v CursorView) Transaction() *CursorTransaction {
	return v.c.buffer.Transaction()
}

// Run writes the transaction out.
func (v CursorView) Run(t *CursorTransaction) {
	v.c.write(t.Frame())
}
