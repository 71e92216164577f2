package line

import (
	"strconv"
)

// Frame is a run of terminal output: text interleaved with ANSI control
// sequences. Buffer mutations return the frame that brings the terminal in
// line with the new state; the caller writes it to the sink.
type Frame []rune

func (f Frame) String() string {
	return string(f)
}

func (f Frame) text(s string) Frame {
	for _, r := range s {
		f = append(f, r)
	}
	return f
}

// csi appends ESC [ n final. Single digit counts take the fixed four rune
// form; larger counts are written out in decimal.
func (f Frame) csi(n int, final rune) Frame {
	if n >= 0 && n < 10 {
		return append(f, esc, '[', rune('0'+n), final)
	}
	f = append(f, esc, '[')
	for _, r := range strconv.Itoa(n) {
		f = append(f, r)
	}
	return append(f, final)
}

func (f Frame) vtMoveRelative(row, col int) Frame {
	rowOp := 'A'
	colOp := 'D'

	if row > 0 {
		rowOp = 'B'
	} else {
		row = -row
	}

	if col > 0 {
		colOp = 'C'
	} else {
		col = -col
	}

	if row > 0 {
		f = f.csi(row, rowOp)
	}
	if col > 0 {
		f = f.csi(col, colOp)
	}
	return f
}

// vtMoveLines moves row lines down (or up when negative) and to column 0
// in one sequence.
func (f Frame) vtMoveLines(row int) Frame {
	switch {
	case row > 0:
		return f.csi(row, 'E')
	case row < 0:
		return f.csi(-row, 'F')
	}
	return append(f, '\r')
}

// vtClearLines clears the current row plus above rows before it and below
// rows after it, and leaves the cursor at column 0 of the topmost one.
func (f Frame) vtClearLines(above, below int) Frame {
	// Go down below lines...
	if below > 0 {
		f = f.csi(below, 'B')
	}
	// ...and clear lines going up.
	for i := above + below; i >= 0; i-- {
		f = append(f, esc, '[', '2', 'K')
		if i != 0 {
			f = append(f, esc, '[', 'A')
		}
	}
	return append(f, '\r')
}

func (f Frame) vtClearToEndOfLine() Frame {
	return append(f, esc, '[', 'K')
}

func (f Frame) vtClearToEndOfScreen() Frame {
	return append(f, esc, '[', 'J')
}

func (f Frame) vtClearScreen() Frame {
	return append(f, esc, '[', '2', 'J', esc, '[', 'H')
}

func (f Frame) vtSaveCursor() Frame {
	return append(f, esc, '[', 's')
}

func (f Frame) vtRestoreCursor() Frame {
	return append(f, esc, '[', 'u')
}

// vtApplyStyle appends an SGR sequence with the given parameters.
func (f Frame) vtApplyStyle(sgr ...int) Frame {
	f = append(f, esc, '[')
	for i, p := range sgr {
		if i > 0 {
			f = append(f, ';')
		}
		for _, r := range strconv.Itoa(p) {
			f = append(f, r)
		}
	}
	return append(f, 'm')
}

func (f Frame) vtResetStyle() Frame {
	return append(f, esc, '[', '0', 'm')
}

func (f Frame) bell() Frame {
	return append(f, '\a')
}
