package line

import (
	"testing"
)

func TestUndoManager(t *testing.T) {
	u := NewUndoManager()
	if _, _, ok := u.Pop(); ok {
		t.Fatal("Pop on empty manager succeeded")
	}

	u.Push([]rune("a"), 1)
	u.Push([]rune("a"), 1)
	u.Push([]rune("ab"), 2)

	steps := []struct {
		line   string
		cursor int
	}{
		{"ab", 2},
		{"a", 1},
	}
	for _, s := range steps {
		line, cursor, ok := u.Pop()
		if !ok || string(line) != s.line || cursor != s.cursor {
			t.Fatalf("Pop() = %q, %d, %v, want %q, %d", string(line), cursor, ok, s.line, s.cursor)
		}
	}
	if u.CanUndo() {
		t.Fatal("CanUndo() after draining")
	}
}

func TestUndoManagerLimit(t *testing.T) {
	u := NewUndoManager()
	for i := range undoLimit + 5 {
		u.Push([]rune{rune('a' + i%26), rune('0' + i/26)}, i)
	}
	n := 0
	var cursor int
	for u.CanUndo() {
		_, cursor, _ = u.Pop()
		n++
	}
	if n != undoLimit {
		t.Fatalf("kept %d states, want %d", n, undoLimit)
	}
	if cursor != 5 {
		t.Fatalf("oldest kept cursor %d, want 5", cursor)
	}
}

func TestUndoManagerCopies(t *testing.T) {
	u := NewUndoManager()
	line := []rune("abc")
	u.Push(line, 0)
	line[0] = 'x'
	if got, _, _ := u.Pop(); string(got) != "abc" {
		t.Fatalf("snapshot changed to %q", string(got))
	}
}

func TestPasteManager(t *testing.T) {
	p := NewPasteManager()
	if _, ok := p.Get(); ok {
		t.Fatal("Get on empty ring succeeded")
	}
	p.Add(nil)
	if _, ok := p.Get(); ok {
		t.Fatal("empty text was added")
	}
	for i := range killRingLimit + 3 {
		p.Add([]rune{rune('a' + i)})
	}
	if len(p.ring) != killRingLimit {
		t.Fatalf("ring holds %d entries, want %d", len(p.ring), killRingLimit)
	}
	got, _ := p.Get()
	if want := string(rune('a' + killRingLimit + 2)); string(got) != want {
		t.Fatalf("Get() = %q, want %q", string(got), want)
	}
}
