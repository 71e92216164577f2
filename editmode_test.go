package line

import (
	"testing"
)

// feed parses keys in order and returns the actions that did something.
func feed(e *EditMode, keys ...Key) []Action {
	var out []Action
	for _, k := range keys {
		a, ok := e.Parse(k)
		if ok && a.Kind != ActionNone {
			out = append(out, a)
		}
	}
	return out
}

func commandMode(t *testing.T) *EditMode {
	t.Helper()
	e := NewEditMode(ModeVi)
	if got := feed(e, KeyEscape); len(got) != 1 || got[0].Kind != ActionCommandMode {
		t.Fatalf("Esc gave %v", got)
	}
	if !e.InCommandMode() {
		t.Fatal("not in command mode after Esc")
	}
	return e
}

func TestEmacsBindings(t *testing.T) {
	tests := []struct {
		key  Key
		want Action
	}{
		{Ctrl('a'), Action{Kind: ActionMove, Motion: MotionLineStart}},
		{Ctrl('e'), Action{Kind: ActionMove, Motion: MotionLineEnd}},
		{Meta('f'), Action{Kind: ActionMove, Motion: MotionForwardWord}},
		{Ctrl('k'), Action{Kind: ActionOperate, Status: StatusDelete, Motion: MotionLineEnd}},
		{Meta('u'), Action{Kind: ActionOperate, Status: StatusUpCase, Motion: MotionForwardWord}},
		{Meta('c'), Action{Kind: ActionOperate, Status: StatusCapitalize, Motion: MotionForwardWord}},
		{Ctrl('d'), Action{Kind: ActionDeleteCharOrEOF}},
		{Ctrl('r'), Action{Kind: ActionSearchBackward}},
		{KeyTab, Action{Kind: ActionComplete}},
		{KeyEnter, Action{Kind: ActionAcceptLine}},
		{KeyLeft, Action{Kind: ActionMove, Motion: MotionLeft}},
		{KeyCtrlLeft, Action{Kind: ActionMove, Motion: MotionBackwardWord}},
		{Meta('.'), Action{Kind: ActionYankLastArg}},
	}

	for _, tt := range tests {
		e := NewEditMode(ModeEmacs)
		got, ok := e.Parse(tt.key)
		if !ok || got != tt.want {
			t.Errorf("Parse(%v) = %v, %v, want %v", tt.key, got, ok, tt.want)
		}
	}
}

func TestEmacsUnboundPrintable(t *testing.T) {
	e := NewEditMode(ModeEmacs)
	if _, ok := e.Parse("a"); ok {
		t.Fatal("printable key reported as bound")
	}
}

func TestEmacsPrefixChain(t *testing.T) {
	e := NewEditMode(ModeEmacs)
	a, ok := e.Parse(Ctrl('x'))
	if !ok || a.Kind != ActionNone {
		t.Fatalf("C-x gave %v, %v", a, ok)
	}
	if !e.IsInChainedAction() {
		t.Fatal("not chained after C-x")
	}
	a, _ = e.Parse(Ctrl('u'))
	if a.Kind != ActionUndo {
		t.Fatalf("C-x C-u gave %v, want undo", a)
	}
	if e.IsInChainedAction() {
		t.Fatal("still chained")
	}

	e.Parse(Ctrl('x'))
	if a, _ := e.Parse(e.CancelKey()); a.Kind != ActionCancel {
		t.Fatalf("C-x C-g gave %v, want cancel", a)
	}
	if e.IsInChainedAction() {
		t.Fatal("still chained after cancel")
	}
}

func TestViOperators(t *testing.T) {
	tests := []struct {
		name string
		keys []Key
		want Action
	}{
		{"dw", []Key{"d", "w"}, Action{Kind: ActionOperate, Status: StatusDelete, Motion: MotionNextWord, Count: 1}},
		{"dd", []Key{"d", "d"}, Action{Kind: ActionOperate, Status: StatusDelete, Motion: MotionWholeLine, Count: 1}},
		{"cw is ce", []Key{"c", "w"}, Action{Kind: ActionOperate, Status: StatusChange, Motion: MotionWordEnd, Count: 1}},
		{"counts multiply", []Key{"2", "d", "3", "w"}, Action{Kind: ActionOperate, Status: StatusDelete, Motion: MotionNextWord, Count: 6}},
		{"y$", []Key{"y", "$"}, Action{Kind: ActionOperate, Status: StatusYank, Motion: MotionLineEnd, Count: 1}},
		{"gUw", []Key{"g", "U", "w"}, Action{Kind: ActionOperate, Status: StatusUpCase, Motion: MotionNextWord, Count: 1}},
		{"3x", []Key{"3", "x"}, Action{Kind: ActionOperate, Status: StatusDelete, Motion: MotionRight, Count: 3}},
		{"10l", []Key{"1", "0", "l"}, Action{Kind: ActionMove, Motion: MotionRight, Count: 10}},
		{"0 is a motion", []Key{"0"}, Action{Kind: ActionMove, Motion: MotionLineStart}},
		{"r", []Key{"r", "z"}, Action{Kind: ActionReplaceChar, Char: 'z'}},
		{"2r", []Key{"2", "r", "z"}, Action{Kind: ActionReplaceChar, Char: 'z', Count: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := commandMode(t)
			got := feed(e, tt.keys...)
			if len(got) != 1 || got[0] != tt.want {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			if e.IsInChainedAction() {
				t.Fatal("still chained")
			}
		})
	}
}

func TestViStatusTransitions(t *testing.T) {
	e := commandMode(t)

	feed(e, "d")
	if e.Status() != StatusDelete {
		t.Fatalf("status %v after d, want delete", e.Status())
	}
	feed(e, KeyEscape)
	if e.Status() != StatusCommand {
		t.Fatalf("status %v after d Esc, want command", e.Status())
	}

	feed(e, "c", "w")
	if e.Status() != StatusInsert {
		t.Fatalf("status %v after cw, want insert", e.Status())
	}

	feed(e, KeyEscape, "A")
	if e.Status() != StatusInsert {
		t.Fatalf("status %v after A, want insert", e.Status())
	}

	feed(e, KeyEscape, "d", "q")
	if e.Status() != StatusCommand || e.IsInChainedAction() {
		t.Fatalf("status %v, chained %v after an unbound motion", e.Status(), e.IsInChainedAction())
	}
}

func TestViCommandModeIgnoresText(t *testing.T) {
	e := commandMode(t)
	if _, ok := e.Parse("q"); ok {
		t.Fatal("q is bound in command mode")
	}
	if !e.InCommandMode() {
		t.Fatal("left command mode")
	}
}

func TestToggleEditMode(t *testing.T) {
	e := NewEditMode(ModeEmacs)
	feed(e, Meta('\n'))
	if e.Mode() != ModeVi || e.Status() != StatusInsert {
		t.Fatalf("mode %v status %v, want vi insert", e.Mode(), e.Status())
	}
	feed(e, KeyEscape, Ctrl('e'))
	if e.Mode() != ModeEmacs {
		t.Fatalf("mode %v, want emacs", e.Mode())
	}
}

func TestBindEditingModeFunctions(t *testing.T) {
	tests := []struct {
		start Mode
		fn    string
		want  Mode
	}{
		{ModeVi, "vi-editing-mode", ModeVi},
		{ModeVi, "emacs-editing-mode", ModeEmacs},
		{ModeEmacs, "emacs-editing-mode", ModeEmacs},
		{ModeEmacs, "vi-editing-mode", ModeVi},
		{ModeEmacs, "toggle-editing-mode", ModeVi},
	}

	for _, tt := range tests {
		e := NewEditMode(tt.start)
		for _, km := range []string{KeymapEmacs, KeymapViInsert} {
			if err := e.Bind(km, []Key{Ctrl('t')}, tt.fn); err != nil {
				t.Fatal(err)
			}
		}
		feed(e, Ctrl('t'))
		if e.Mode() != tt.want {
			t.Errorf("%v then %s: mode %v, want %v", tt.start, tt.fn, e.Mode(), tt.want)
		}
	}
}

func TestBind(t *testing.T) {
	e := NewEditMode(ModeEmacs)
	if err := e.Bind(KeymapEmacs, []Key{Ctrl('t')}, "beginning-of-line"); err != nil {
		t.Fatal(err)
	}
	if a, _ := e.Parse(Ctrl('t')); a.Kind != ActionMove || a.Motion != MotionLineStart {
		t.Fatalf("C-t gave %v", a)
	}

	if err := e.Bind(KeymapEmacs, []Key{Ctrl('t')}, ""); err != nil {
		t.Fatal(err)
	}
	if _, ok := e.Parse(Ctrl('t')); ok {
		t.Fatal("C-t still bound")
	}

	if err := e.Bind("nope", []Key{"a"}, "undo"); err == nil {
		t.Error("unknown keymap accepted")
	}
	if err := e.Bind(KeymapEmacs, []Key{"a"}, "nope"); err == nil {
		t.Error("unknown function accepted")
	}
	if err := e.Bind(KeymapEmacs, nil, "undo"); err == nil {
		t.Error("empty sequence accepted")
	}
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"vi": ModeVi, "Emacs": ModeEmacs, "vim": ModeVi} {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Errorf("ParseMode(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseMode("ed"); err == nil {
		t.Error("ParseMode(ed) succeeded")
	}
}
