package line

import (
	"slices"
	"unicode"
)

// MaxLineLength is how many codepoints a Buffer holds before further input
// is dropped.
const MaxLineLength = 8192

const defaultWidth = 80

const continuationPrompt = "> "

// QuoteKind selects quote characters. It is used as a set of kinds that do
// not start a multi-line continuation when left open.
type QuoteKind int

const (
	QuoteNone   QuoteKind = 0
	QuoteDouble QuoteKind = 1 << 0
	QuoteSingle QuoteKind = 1 << 1
)

// Buffer is the line being edited together with what has been drawn of it.
// Every method that changes the line or the cursor returns the frame that
// brings the terminal up to date.
type Buffer struct {
	line   []rune
	cursor int
	prompt *Prompt

	// delta is the net length change since the last flush and dirtyFrom the
	// leftmost index touched; dirtyFrom is -1 when nothing changed.
	delta      int
	deltaAtEnd bool
	dirtyFrom  int

	// drawn is the index the terminal cursor sits at.
	drawn int
	width int

	// clampEnd keeps the cursor on the last character rather than past it,
	// as vi command mode wants.
	clampEnd bool

	multi    []rune
	locator  *CursorLocator
	capacity int
}

func NewBuffer(p *Prompt, width int) *Buffer {
	if p == nil {
		p = NewPrompt("")
	}
	if width <= 0 {
		width = defaultWidth
	}
	return &Buffer{
		prompt:    p,
		dirtyFrom: -1,
		width:     width,
		locator:   &CursorLocator{},
		capacity:  MaxLineLength,
	}
}

// String returns the whole input: committed continuation segments and the
// live line.
func (b *Buffer) String() string {
	if len(b.multi) == 0 {
		return string(b.line)
	}
	return string(b.multi) + string(b.line)
}

// Line returns the live line.
func (b *Buffer) Line() []rune { return b.line }
func (b *Buffer) Len() int     { return len(b.line) }
func (b *Buffer) Cursor() int  { return b.cursor }
func (b *Buffer) Prompt() *Prompt {
	return b.prompt
}

// IsMultiLine reports whether continuation segments have been committed.
func (b *Buffer) IsMultiLine() bool {
	return len(b.locator.segments) > 0
}

// Index returns the cursor as an index into the whole input.
func (b *Buffer) Index() int {
	return len(b.multi) + b.cursor
}

func (b *Buffer) Locator() *CursorLocator {
	return b.locator
}

// Locate returns where index into the whole input is on the terminal.
func (b *Buffer) Locate(index int) (Position, bool) {
	return b.locator.Locate(index, b.width, b.liveSegment())
}

func (b *Buffer) liveSegment() segment {
	return segment{
		length:    len(b.line),
		display:   b.cols(len(b.line)),
		promptLen: b.prompt.Length(),
	}
}

func (b *Buffer) displayRuneAt(index int) (rune, bool) {
	if b.prompt.Silent() || index < 0 {
		return 0, false
	}
	var r rune
	switch {
	case index < len(b.multi):
		r = b.multi[index]
	case index-len(b.multi) < len(b.line):
		r = b.line[index-len(b.multi)]
	default:
		return 0, false
	}
	if r == '\n' {
		return 0, false
	}
	if m, ok := b.prompt.Masked(); ok {
		r = m
	}
	return r, true
}

// cols returns how many columns the first i codepoints take on screen.
func (b *Buffer) cols(i int) int {
	if b.prompt.Silent() {
		return 0
	}
	return i
}

func (b *Buffer) rowCol(i int) (int, int) {
	abs := b.prompt.Length() + b.cols(i)
	return abs / b.width, abs % b.width
}

func (b *Buffer) maxCursor() int {
	if b.clampEnd && len(b.line) > 0 {
		return len(b.line) - 1
	}
	return len(b.line)
}

func (b *Buffer) clampCursor() {
	b.cursor = max(0, min(b.cursor, b.maxCursor()))
}

// SetClampEnd switches between insert style cursor bounds (0..len) and vi
// command style bounds (0..len-1).
func (b *Buffer) SetClampEnd(clamp bool) Frame {
	b.clampEnd = clamp
	b.clampCursor()
	return b.flush()
}

// splice replaces line[from:to] with data and returns how many codepoints of
// data made it in under the capacity limit.
func (b *Buffer) splice(from, to int, data []rune) int {
	assertf(0 <= from && from <= to && to <= len(b.line), "splice [%d,%d) out of range 0..%d", from, to, len(b.line))
	from = max(0, min(from, len(b.line)))
	to = max(from, min(to, len(b.line)))

	if room := b.capacity - (len(b.line) - (to - from)); len(data) > room {
		debugf("line full, dropping %d codepoints", len(data)-max(room, 0))
		data = data[:max(room, 0)]
	}
	if from == to && len(data) == 0 {
		return 0
	}

	oldLen := len(b.line)
	b.line = slices.Replace(b.line, from, to, data...)
	b.delta += len(data) - (to - from)
	b.deltaAtEnd = to == oldLen
	if b.dirtyFrom < 0 || from < b.dirtyFrom {
		b.dirtyFrom = from
	}
	return len(data)
}

// Render returns whatever output is still owed to the terminal; nothing
// when the screen is already in sync.
func (b *Buffer) Render() Frame {
	return b.flush()
}

func (b *Buffer) flush() Frame {
	defer b.resetDelta()

	if b.prompt.Silent() {
		b.drawn = b.cursor
		return nil
	}

	var f Frame
	if b.dirtyFrom < 0 {
		f = b.moveCursor(f, b.drawn, b.cursor)
		b.drawn = b.cursor
		return f
	}

	n := len(b.line)
	d := b.dirtyFrom
	oldLen := n - b.delta
	oldRow, _ := b.rowCol(oldLen)
	newRow, _ := b.rowCol(n)

	switch {
	case b.delta > 0 && b.deltaAtEnd && b.drawn == d:
		// Appending where the cursor already is.
		f = b.printLine(f, d)
		f = b.guard(f, true)
	case b.delta >= 0 || oldRow == newRow:
		f = b.moveCursor(f, b.drawn, d)
		f = b.printLine(f, d)
		f = b.guard(f, d < n)
		if b.delta < 0 {
			f = f.vtClearToEndOfLine()
		}
	default:
		// The old content ran onto rows the new content does not reach.
		f = b.clearRows(f, max(oldLen, n), 0)
		f = append(f, b.prompt.lastRendered()...)
		f = b.printLine(f, 0)
		f = b.guard(f, true)
	}
	b.drawn = n

	f = b.moveCursor(f, b.drawn, b.cursor)
	b.drawn = b.cursor
	return f
}

func (b *Buffer) resetDelta() {
	b.delta = 0
	b.deltaAtEnd = false
	b.dirtyFrom = -1
}

// printLine writes line[from:] as it appears on screen.
func (b *Buffer) printLine(f Frame, from int) Frame {
	m, masked := b.prompt.Masked()
	switch {
	case !masked:
		return append(f, b.line[from:]...)
	case m == 0:
		return f
	}
	for range b.line[from:] {
		f = append(f, m)
	}
	return f
}

// guard follows output that ended exactly on the right margin with a space
// and a carriage return, so the terminal wraps now instead of on whatever it
// is sent next.
func (b *Buffer) guard(f Frame, wrote bool) Frame {
	end := b.prompt.Length() + b.cols(len(b.line))
	if wrote && end > 0 && end%b.width == 0 {
		f = append(f, ' ', '\r')
	}
	return f
}

func (b *Buffer) moveCursor(f Frame, from, to int) Frame {
	fr, fc := b.rowCol(from)
	tr, tc := b.rowCol(to)
	if tc == 0 && tr != fr {
		return f.vtMoveLines(tr - fr)
	}
	return f.vtMoveRelative(tr-fr, tc-fc)
}

// clearRows erases every row from the prompt's last row down to the row of
// index last, plus extra rows above, leaving the cursor at column 0 of the
// top one.
func (b *Buffer) clearRows(f Frame, last, extra int) Frame {
	cur, _ := b.rowCol(b.drawn)
	end, _ := b.rowCol(last)
	return f.vtClearLines(cur+extra, max(end-cur, 0))
}

// DrawLine draws the prompt and line from the start of the current row.
func (b *Buffer) DrawLine() Frame {
	f := Frame(nil)
	f = append(f, b.prompt.ansi...)
	f = b.printLine(f, 0)
	f = b.guard(f, true)
	b.drawn = len(b.line)
	b.resetDelta()
	if b.prompt.Silent() {
		b.drawn = b.cursor
		return f
	}
	f = b.moveCursor(f, b.drawn, b.cursor)
	b.drawn = b.cursor
	return f
}

// Redraw erases the prompt and line and draws them again.
func (b *Buffer) Redraw() Frame {
	f := b.clearRows(nil, len(b.line), b.prompt.Rows())
	return append(f, b.DrawLine()...)
}

// Resize redraws the prompt and line for a new terminal width.
func (b *Buffer) Resize(width int) Frame {
	if width <= 0 {
		width = defaultWidth
	}
	row, _ := b.rowCol(b.drawn)
	f := Frame(nil).vtMoveLines(-(row + b.prompt.Rows()))
	f = f.vtClearToEndOfScreen()
	b.width = width
	return append(f, b.DrawLine()...)
}

func (b *Buffer) Width() int {
	return b.width
}

// ClearScreen clears the terminal and draws the prompt and line at the top.
func (b *Buffer) ClearScreen() Frame {
	f := Frame(nil).vtClearScreen()
	return append(f, b.DrawLine()...)
}

// SwapPrompt replaces the prompt and the line in one go, redrawing the row
// the prompt ends on. Rows belonging to earlier prompt lines are left alone.
func (b *Buffer) SwapPrompt(p *Prompt, line []rune, cursor int) Frame {
	f := b.clearRows(nil, len(b.line), 0)
	b.prompt = p
	b.line = append(b.line[:0], line...)
	if len(b.line) > b.capacity {
		b.line = b.line[:b.capacity]
	}
	b.cursor = cursor
	b.clampCursor()
	b.resetDelta()

	f = append(f, p.lastRendered()...)
	f = b.printLine(f, 0)
	f = b.guard(f, true)
	if p.Silent() {
		b.drawn = b.cursor
		return f
	}
	b.drawn = len(b.line)
	f = b.moveCursor(f, b.drawn, b.cursor)
	b.drawn = b.cursor
	return f
}

// Insert inserts data at the cursor and moves the cursor past it.
func (b *Buffer) Insert(data []rune) Frame {
	n := b.splice(b.cursor, b.cursor, data)
	b.cursor += n
	b.clampCursor()
	return b.flush()
}

// Delete removes n codepoints after the cursor, or -n before it when n is
// negative.
func (b *Buffer) Delete(n int) Frame {
	if n < 0 {
		return b.DeleteRange(b.cursor+n, b.cursor)
	}
	return b.DeleteRange(b.cursor, b.cursor+n)
}

// DeleteRange removes line[from:to] and leaves the cursor at from.
func (b *Buffer) DeleteRange(from, to int) Frame {
	from = max(0, from)
	to = min(to, len(b.line))
	if from >= to {
		return nil
	}
	b.splice(from, to, nil)
	b.cursor = from
	b.clampCursor()
	return b.flush()
}

// ReplaceRange swaps line[from:to] for data and puts the cursor at cursor.
func (b *Buffer) ReplaceRange(from, to int, data []rune, cursor int) Frame {
	from = max(0, min(from, len(b.line)))
	to = max(from, min(to, len(b.line)))
	b.splice(from, to, data)
	b.cursor = cursor
	b.clampCursor()
	return b.flush()
}

// Replace swaps the whole line for data, cursor at the end.
func (b *Buffer) Replace(data []rune) Frame {
	return b.ReplaceRange(0, len(b.line), data, len(data))
}

// ChangeCase upcases, downcases or capitalizes line[from:to].
func (b *Buffer) ChangeCase(from, to int, s Status) Frame {
	from = max(0, from)
	to = min(to, len(b.line))
	if from >= to {
		return nil
	}
	out := make([]rune, 0, to-from)
	inWord := from > 0 && isWordRune(b.line[from-1])
	for _, r := range b.line[from:to] {
		switch s {
		case StatusUpCase:
			r = unicode.ToUpper(r)
		case StatusDownCase:
			r = unicode.ToLower(r)
		case StatusCapitalize:
			if inWord {
				r = unicode.ToLower(r)
			} else {
				r = unicode.ToUpper(r)
			}
			inWord = isWordRune(r)
		}
		out = append(out, r)
	}
	b.splice(from, to, out)
	return b.flush()
}

// ToggleCase flips the case of count characters from the cursor and moves
// past them.
func (b *Buffer) ToggleCase(count int) Frame {
	from := b.cursor
	to := min(from+max(count, 1), len(b.line))
	if from >= to {
		return nil
	}
	out := make([]rune, 0, to-from)
	for _, r := range b.line[from:to] {
		if unicode.IsUpper(r) {
			r = unicode.ToLower(r)
		} else {
			r = unicode.ToUpper(r)
		}
		out = append(out, r)
	}
	b.splice(from, to, out)
	b.cursor = to
	b.clampCursor()
	return b.flush()
}

// Transpose swaps the character before the cursor with the one under it, or
// the last two characters when the cursor is at the end.
func (b *Buffer) Transpose() (Frame, bool) {
	c := b.cursor
	if c >= len(b.line) {
		c = len(b.line) - 1
	}
	if c < 1 {
		return nil, false
	}
	b.splice(c-1, c+1, []rune{b.line[c], b.line[c-1]})
	b.cursor = c + 1
	b.clampCursor()
	return b.flush(), true
}

// ReplaceChar overwrites count characters from the cursor with r, leaving
// the cursor on the last one. Nothing happens if fewer than count remain.
func (b *Buffer) ReplaceChar(r rune, count int) (Frame, bool) {
	count = max(count, 1)
	if b.cursor+count > len(b.line) {
		return nil, false
	}
	b.splice(b.cursor, b.cursor+count, slices.Repeat([]rune{r}, count))
	b.cursor += count - 1
	b.clampCursor()
	return b.flush(), true
}

// Move moves the cursor by delta, staying within bounds.
func (b *Buffer) Move(delta int) Frame {
	return b.SetCursor(b.cursor + delta)
}

func (b *Buffer) SetCursor(i int) Frame {
	b.cursor = i
	b.clampCursor()
	return b.flush()
}

// MoveToEnd puts the cursor after the last character regardless of vi
// bounds.
func (b *Buffer) MoveToEnd() Frame {
	b.cursor = len(b.line)
	return b.flush()
}

// continuation reports whether the input is unfinished: the line ends in an
// unescaped backslash, or a quote of a kind not in disabled is left open.
// quoted is set for the latter.
func (b *Buffer) continuation(disabled QuoteKind) (cont, quoted bool) {
	var quote rune
	escaped := false
	scan := func(rs []rune) {
		for _, r := range rs {
			switch {
			case escaped:
				escaped = false
			case r == '\\' && quote != '\'':
				escaped = true
			case quote == 0 && (r == '\'' || r == '"'):
				quote = r
			case r == quote:
				quote = 0
			}
		}
	}
	scan(b.multi)
	scan(b.line)

	if escaped {
		return true, false
	}
	switch {
	case quote == '"' && disabled&QuoteDouble == 0:
		return true, true
	case quote == '\'' && disabled&QuoteSingle == 0:
		return true, true
	}
	return false, false
}

// Continue commits the live line as a continuation segment and starts an
// empty one under the continuation prompt. A trailing backslash is dropped;
// a line continued for an open quote keeps its newline.
func (b *Buffer) Continue(quoted bool) Frame {
	f := b.MoveToEnd()

	seg := segment{
		display:   b.cols(len(b.line)),
		promptLen: b.prompt.Length(),
	}
	text := slices.Clone(b.line)
	if quoted {
		text = append(text, '\n')
	} else if n := len(text); n > 0 && text[n-1] == '\\' {
		text = text[:n-1]
	}
	seg.length = len(text)
	b.locator.add(seg)
	b.multi = append(b.multi, text...)

	f = append(f, '\r', '\n')
	b.prompt = b.prompt.withText(continuationPrompt)
	b.line = b.line[:0]
	b.cursor = 0
	b.resetDelta()
	return append(f, b.DrawLine()...)
}
