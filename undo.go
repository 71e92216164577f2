package line

import (
	"slices"
)

const (
	undoLimit     = 50
	killRingLimit = 10
)

type snapshot struct {
	line   []rune
	cursor int
}

// UndoManager keeps the line as it was before each change, newest last.
type UndoManager struct {
	undo  []snapshot
	limit int
}

func NewUndoManager() *UndoManager {
	return &UndoManager{limit: undoLimit}
}

// Push records a state. A state equal to the newest one is not recorded
// twice.
func (u *UndoManager) Push(line []rune, cursor int) {
	if n := len(u.undo); n > 0 && slices.Equal(u.undo[n-1].line, line) {
		return
	}
	u.undo = append(u.undo, snapshot{line: slices.Clone(line), cursor: cursor})
	if len(u.undo) > u.limit {
		u.undo = u.undo[len(u.undo)-u.limit:]
	}
}

func (u *UndoManager) Pop() (line []rune, cursor int, ok bool) {
	n := len(u.undo)
	if n == 0 {
		return nil, 0, false
	}
	s := u.undo[n-1]
	u.undo = u.undo[:n-1]
	return s.line, s.cursor, true
}

func (u *UndoManager) CanUndo() bool { return len(u.undo) > 0 }

// PasteManager is the kill ring: text removed by kill and yank commands,
// newest last.
type PasteManager struct {
	ring  [][]rune
	limit int
}

func NewPasteManager() *PasteManager {
	return &PasteManager{limit: killRingLimit}
}

func (p *PasteManager) Add(text []rune) {
	if len(text) == 0 {
		return
	}
	p.ring = append(p.ring, slices.Clone(text))
	if len(p.ring) > p.limit {
		p.ring = p.ring[len(p.ring)-p.limit:]
	}
}

// Get returns the most recent entry.
func (p *PasteManager) Get() ([]rune, bool) {
	if len(p.ring) == 0 {
		return nil, false
	}
	return p.ring[len(p.ring)-1], true
}
