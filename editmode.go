package line

import (
	"fmt"
	"strings"
)

// Mode is the key binding style.
type Mode int

const (
	ModeEmacs Mode = iota
	ModeVi
)

func (m Mode) String() string {
	if m == ModeVi {
		return "vi"
	}
	return "emacs"
}

// ParseMode reads "emacs" or "vi".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "emacs":
		return ModeEmacs, nil
	case "vi", "vim":
		return ModeVi, nil
	}
	return ModeEmacs, fmt.Errorf("line: unknown editing mode %q", s)
}

// Names of the keymaps, as used for Bind and in the configuration file.
const (
	KeymapEmacs     = "emacs"
	KeymapViInsert  = "vi-insert"
	KeymapViCommand = "vi-command"
)

type keyNode struct {
	children map[Key]*keyNode
	action   *Action
}

type keymap struct {
	name string
	root *keyNode
}

func newKeymap(name string) *keymap {
	return &keymap{name: name, root: &keyNode{children: make(map[Key]*keyNode)}}
}

func (m *keymap) bind(a Action, keys ...Key) {
	node := m.root
	for _, k := range keys {
		child, ok := node.children[k]
		if !ok {
			child = &keyNode{children: make(map[Key]*keyNode)}
			node.children[k] = child
		}
		node = child
	}
	node.action = &a
}

func (m *keymap) unbind(keys ...Key) {
	node := m.root
	for _, k := range keys {
		child, ok := node.children[k]
		if !ok {
			return
		}
		node = child
	}
	node.action = nil
}

// lookup matches seq against the keymap. exact is set when seq itself is
// bound; more when a longer binding starts with seq.
func (m *keymap) lookup(seq []Key) (a Action, exact, more bool) {
	node := m.root
	for _, k := range seq {
		child, ok := node.children[k]
		if !ok {
			return Action{}, false, false
		}
		node = child
	}
	if node.action != nil {
		a, exact = *node.action, true
	}
	return a, exact, len(node.children) > 0
}

// EditMode turns keys into actions. It tracks the binding mode, the status
// within it, and any chain in progress: a count being typed, an operator
// waiting for its motion, or a multi-key binding partly entered.
type EditMode struct {
	mode    Mode
	status  Status
	keymaps map[string]*keymap

	pending   []Key
	count     int
	opCount   int
	replacing bool
	lastKey   Key
}

func NewEditMode(mode Mode) *EditMode {
	e := &EditMode{
		mode: mode,
		keymaps: map[string]*keymap{
			KeymapEmacs:     emacsKeymap(),
			KeymapViInsert:  viInsertKeymap(),
			KeymapViCommand: viCommandKeymap(),
		},
	}
	e.Reset()
	return e
}

func (e *EditMode) Mode() Mode     { return e.mode }
func (e *EditMode) Status() Status { return e.status }
func (e *EditMode) LastKey() Key   { return e.lastKey }

// SetMode switches binding style and drops any chain in progress.
func (e *EditMode) SetMode(m Mode) {
	e.mode = m
	e.Reset()
}

// Reset returns to the starting status of the mode, which is insert for
// both emacs and vi.
func (e *EditMode) Reset() {
	e.resetChain()
	e.status = StatusInsert
}

func (e *EditMode) resetChain() {
	e.pending = nil
	e.count = 0
	e.opCount = 0
	e.replacing = false
	if e.status.isOperator() {
		e.status = e.baseStatus()
	}
}

// baseStatus is where an operator returns to once resolved or cancelled.
func (e *EditMode) baseStatus() Status {
	if e.mode == ModeVi {
		return StatusCommand
	}
	return StatusInsert
}

// IsInChainedAction reports whether the next key continues an earlier one.
func (e *EditMode) IsInChainedAction() bool {
	return len(e.pending) > 0 || e.count > 0 || e.replacing || e.status.isOperator()
}

// CancelKey is the key that abandons a chain in the current mode.
func (e *EditMode) CancelKey() Key {
	if e.mode == ModeVi {
		return KeyEscape
	}
	return Ctrl('g')
}

// InCommandMode reports whether keys are commands rather than text.
func (e *EditMode) InCommandMode() bool {
	return e.mode == ModeVi && e.status != StatusInsert
}

func (e *EditMode) keymap() *keymap {
	switch {
	case e.mode == ModeEmacs:
		return e.keymaps[KeymapEmacs]
	case e.status == StatusInsert:
		return e.keymaps[KeymapViInsert]
	}
	return e.keymaps[KeymapViCommand]
}

// Bind binds the key sequence to a function from ActionByName in the named
// keymap. An empty name removes the binding.
func (e *EditMode) Bind(keymapName string, keys []Key, name string) error {
	km, ok := e.keymaps[keymapName]
	if !ok {
		return fmt.Errorf("line: unknown keymap %q", keymapName)
	}
	if len(keys) == 0 {
		return fmt.Errorf("line: empty key sequence for %q", name)
	}
	if name == "" {
		km.unbind(keys...)
		return nil
	}
	a, ok := ActionByName(name)
	if !ok {
		return fmt.Errorf("line: unknown function %q", name)
	}
	km.bind(a, keys...)
	return nil
}

// Parse resolves k. It returns false when k is not bound, in which case a
// printable key is text to insert unless in vi command mode. A key that only
// advances a chain resolves to ActionNone.
func (e *EditMode) Parse(k Key) (Action, bool) {
	defer func() { e.lastKey = k }()

	if e.IsInChainedAction() && k == e.CancelKey() {
		e.resetChain()
		return Action{Kind: ActionCancel}, true
	}

	if e.replacing {
		e.replacing = false
		count := e.takeCount()
		rs := k.Runes()
		if !k.IsPrintable() {
			return Action{Kind: ActionCancel}, true
		}
		return Action{Kind: ActionReplaceChar, Char: rs[0], Count: count}, true
	}

	if e.InCommandMode() && len(e.pending) == 0 {
		if rs := k.Runes(); len(rs) == 1 && (rs[0] >= '1' && rs[0] <= '9' || rs[0] == '0' && e.count > 0) {
			e.count = e.count*10 + int(rs[0]-'0')
			return Action{}, true
		}
	}

	seq := append(e.pending, k)
	a, exact, more := e.keymap().lookup(seq)
	if more && !exact {
		e.pending = seq
		return Action{}, true
	}
	chained := e.IsInChainedAction()
	e.pending = nil
	if !exact {
		if chained {
			e.resetChain()
			return Action{Kind: ActionCancel}, true
		}
		return Action{}, false
	}
	return e.resolve(a), true
}

func (e *EditMode) takeCount() int {
	c := e.count
	e.count = 0
	return c
}

func (e *EditMode) resolve(a Action) Action {
	switch {
	case a.Kind == ActionOperate && a.Motion == MotionNone:
		if !e.status.isOperator() {
			e.status = a.Status
			e.opCount = e.takeCount()
			return Action{}
		}
		if a.Status != e.status {
			e.resetChain()
			return Action{Kind: ActionCancel}
		}
		// dd, cc, yy and gUgU work on the whole line.
		a.Motion = MotionWholeLine
		return e.finishOperator(a)

	case a.Kind == ActionMove && e.status.isOperator():
		op := Action{Kind: ActionOperate, Status: e.status, Motion: a.Motion}
		if e.status == StatusChange {
			// cw behaves as ce.
			switch a.Motion {
			case MotionNextWord:
				op.Motion = MotionWordEnd
			case MotionNextBigWord:
				op.Motion = MotionBigWordEnd
			}
		}
		return e.finishOperator(op)

	case e.status.isOperator():
		e.resetChain()
		return Action{Kind: ActionCancel}

	case a.Kind == ActionReplaceChar && a.Char == 0:
		e.replacing = true
		return Action{}
	}

	if c := e.takeCount(); c > 0 {
		a.Count = c
	}
	switch a.Kind {
	case ActionInsertMode:
		e.status = StatusInsert
	case ActionCommandMode:
		if e.mode == ModeVi {
			e.status = StatusCommand
		}
	case ActionOperate:
		if e.mode == ModeVi && a.Status == StatusChange {
			e.status = StatusInsert
		}
	case ActionToggleEditMode:
		if e.mode == ModeVi {
			e.SetMode(ModeEmacs)
		} else {
			e.SetMode(ModeVi)
		}
	case ActionViEditingMode:
		e.SetMode(ModeVi)
	case ActionEmacsEditingMode:
		e.SetMode(ModeEmacs)
	}
	return a
}

// finishOperator completes a chained operator with its motion: counts
// typed before the operator and before the motion multiply.
func (e *EditMode) finishOperator(a Action) Action {
	a.Kind = ActionOperate
	a.Count = max(e.opCount, 1) * max(e.takeCount(), 1)
	e.opCount = 0
	if a.Status == StatusChange {
		e.status = StatusInsert
	} else {
		e.status = e.baseStatus()
	}
	return a
}
