package line

// Position is a terminal cell relative to the row the input starts on.
type Position struct {
	Row int
	Col int
}

// segment describes one committed piece of a multi-line input.
type segment struct {
	length    int // codepoints, including a kept newline
	display   int // columns the segment took on screen
	promptLen int
}

func (s segment) rows(width int) int {
	return (s.promptLen+s.display)/width + 1
}

// CursorLocator maps an index into the whole input (committed continuation
// segments followed by the live line) to where it sits on the terminal.
type CursorLocator struct {
	segments []segment
	invalid  bool
}

func (l *CursorLocator) add(s segment) {
	l.segments = append(l.segments, s)
}

// Invalidate makes every later Locate report the position as unknown. Used
// once output has been written below the input that may have scrolled the
// committed segments out of reach.
func (l *CursorLocator) Invalidate() {
	l.invalid = true
}

func (l *CursorLocator) Invalidated() bool {
	return l.invalid
}

// Locate returns the position of index, where live describes the line being
// edited.
func (l *CursorLocator) Locate(index, width int, live segment) (Position, bool) {
	if l.invalid || index < 0 || width <= 0 {
		return Position{}, false
	}

	row := 0
	for _, s := range l.segments {
		if index < s.length {
			return s.at(index, width, row), true
		}
		index -= s.length
		row += s.rows(width)
	}
	if index > live.length {
		return Position{}, false
	}
	return live.at(index, width, row), true
}

func (s segment) at(offset, width, row int) Position {
	abs := s.promptLen + min(offset, s.display)
	return Position{Row: row + abs/width, Col: abs % width}
}

type txStep struct {
	index    int
	colorize bool
	sgr      []int
}

// CursorTransaction is a batch of cursor moves and single character recolors
// that runs with the cursor saved beforehand and restored afterwards. A step
// that cannot be located aborts the rest of the batch.
type CursorTransaction struct {
	b     *Buffer
	index int
	steps []txStep
}

// Transaction starts a transaction at the current cursor.
func (b *Buffer) Transaction() *CursorTransaction {
	return &CursorTransaction{b: b, index: b.Index()}
}

func (t *CursorTransaction) MoveTo(index int) *CursorTransaction {
	t.index = index
	t.steps = append(t.steps, txStep{index: index})
	return t
}

func (t *CursorTransaction) MoveBy(delta int) *CursorTransaction {
	return t.MoveTo(t.index + delta)
}

// Colorize redraws the character at index with the given SGR parameters.
func (t *CursorTransaction) Colorize(index int, sgr ...int) *CursorTransaction {
	t.index = index
	t.steps = append(t.steps, txStep{index: index, colorize: true, sgr: sgr})
	return t
}

// Frame renders the transaction. It is empty when even the starting
// position cannot be located.
func (t *CursorTransaction) Frame() Frame {
	b := t.b
	at, ok := b.Locate(b.Index())
	if !ok {
		debugf("cursor transaction: cursor position unknown")
		return nil
	}

	f := Frame(nil).vtSaveCursor()
	for _, s := range t.steps {
		to, ok := b.Locate(s.index)
		if !ok {
			debugf("cursor transaction: index %d not locatable, aborting", s.index)
			break
		}
		f = f.vtMoveRelative(to.Row-at.Row, to.Col-at.Col)
		at = to
		if !s.colorize {
			continue
		}
		r, ok := b.displayRuneAt(s.index)
		if !ok {
			break
		}
		f = f.vtApplyStyle(s.sgr...)
		f = append(f, r)
		f = f.vtResetStyle()
		if at.Col < b.width-1 {
			at.Col++
		}
	}
	return f.vtRestoreCursor()
}
