package line

import (
	"testing"
)

func newTestBuffer(width int) *Buffer {
	return NewBuffer(NewPrompt("> "), width)
}

func TestBufferInsertFrames(t *testing.T) {
	b := newTestBuffer(80)

	steps := []struct {
		name string
		do   func() Frame
		want string
		line string
	}{
		{"append", func() Frame { return b.Insert([]rune("abc")) }, "abc", "abc"},
		{"left", func() Frame { return b.Move(-1) }, "\x1b[1D", "abc"},
		{"insert middle", func() Frame { return b.Insert([]rune("X")) }, "Xc\x1b[1D", "abXc"},
		{"backspace", func() Frame { return b.Delete(-1) }, "\x1b[1Dc\x1b[K\x1b[1D", "abc"},
		{"no change", func() Frame { return b.Render() }, "", "abc"},
	}

	for _, s := range steps {
		got := s.do().String()
		if got != s.want {
			t.Fatalf("%s: frame %q, want %q", s.name, got, s.want)
		}
		if string(b.Line()) != s.line {
			t.Fatalf("%s: line %q, want %q", s.name, string(b.Line()), s.line)
		}
	}
}

func TestBufferWrapGuard(t *testing.T) {
	b := newTestBuffer(10)
	got := b.Insert([]rune("12345678")).String()
	if want := "12345678 \r"; got != want {
		t.Fatalf("frame %q, want %q", got, want)
	}
}

func TestBufferCursorBounds(t *testing.T) {
	b := newTestBuffer(80)
	b.Insert([]rune("abc"))

	b.Move(-10)
	if b.Cursor() != 0 {
		t.Fatalf("cursor %d, want 0", b.Cursor())
	}
	b.Move(10)
	if b.Cursor() != 3 {
		t.Fatalf("cursor %d, want 3", b.Cursor())
	}
	b.SetClampEnd(true)
	if b.Cursor() != 2 {
		t.Fatalf("clamped cursor %d, want 2", b.Cursor())
	}
	b.SetClampEnd(false)
	b.MoveToEnd()
	if b.Cursor() != 3 {
		t.Fatalf("cursor %d, want 3", b.Cursor())
	}
}

func TestBufferCapacity(t *testing.T) {
	b := newTestBuffer(80)
	b.capacity = 5
	b.Insert([]rune("abcdefg"))
	if got := string(b.Line()); got != "abcde" {
		t.Fatalf("line %q, want %q", got, "abcde")
	}
	b.Insert([]rune("x"))
	if got := string(b.Line()); got != "abcde" {
		t.Fatalf("line %q after full insert, want %q", got, "abcde")
	}
}

func TestBufferMasking(t *testing.T) {
	b := NewBuffer(NewMaskedPrompt("pw: ", '*'), 80)
	if got := b.Insert([]rune("secret")).String(); got != "******" {
		t.Fatalf("masked frame %q", got)
	}
	if got := string(b.Line()); got != "secret" {
		t.Fatalf("line %q", got)
	}

	silent := NewBuffer(NewMaskedPrompt("pw: ", 0), 80)
	if got := silent.Insert([]rune("secret")); len(got) != 0 {
		t.Fatalf("silent frame %q, want nothing", got.String())
	}
	if got := silent.Move(-3); len(got) != 0 {
		t.Fatalf("silent move frame %q, want nothing", got.String())
	}
}

func TestBufferEdits(t *testing.T) {
	tests := []struct {
		name        string
		line        string
		cursor      int
		edit        func(b *Buffer)
		want        string
		cursorAfter int
	}{
		{"capitalize", "hello world", 0, func(b *Buffer) { b.ChangeCase(0, 11, StatusCapitalize) }, "Hello World", 0},
		{"upcase part", "hello world", 0, func(b *Buffer) { b.ChangeCase(6, 11, StatusUpCase) }, "hello WORLD", 0},
		{"toggle case", "aBc", 0, func(b *Buffer) { b.ToggleCase(2) }, "Abc", 2},
		{"transpose at end", "ab", 2, func(b *Buffer) { b.Transpose() }, "ba", 2},
		{"transpose middle", "abc", 1, func(b *Buffer) { b.Transpose() }, "bac", 2},
		{"replace char", "abc", 0, func(b *Buffer) { b.ReplaceChar('x', 2) }, "xxc", 1},
		{"replace range", "hello world", 0, func(b *Buffer) { b.ReplaceRange(0, 5, []rune("bye"), 3) }, "bye world", 3},
		{"delete range", "hello world", 11, func(b *Buffer) { b.DeleteRange(5, 11) }, "hello", 5},
		{"replace all", "abc", 1, func(b *Buffer) { b.Replace([]rune("xyz1")) }, "xyz1", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBuffer(80)
			b.Insert([]rune(tt.line))
			b.SetCursor(tt.cursor)
			tt.edit(b)
			if got := string(b.Line()); got != tt.want {
				t.Fatalf("line %q, want %q", got, tt.want)
			}
			if b.Cursor() != tt.cursorAfter {
				t.Fatalf("cursor %d, want %d", b.Cursor(), tt.cursorAfter)
			}
		})
	}
}

func TestBufferRefusedEdits(t *testing.T) {
	b := newTestBuffer(80)
	b.Insert([]rune("a"))
	if _, ok := b.Transpose(); ok {
		t.Fatal("Transpose on one character succeeded")
	}
	b.SetCursor(0)
	if _, ok := b.ReplaceChar('x', 5); ok {
		t.Fatal("ReplaceChar past the end succeeded")
	}
	if got := string(b.Line()); got != "a" {
		t.Fatalf("line %q, want %q", got, "a")
	}
}

func TestBufferContinuation(t *testing.T) {
	tests := []struct {
		line     string
		disabled QuoteKind
		cont     bool
		quoted   bool
	}{
		{`foo`, QuoteNone, false, false},
		{`foo \`, QuoteNone, true, false},
		{`foo \\`, QuoteNone, false, false},
		{`say "hi`, QuoteNone, true, true},
		{`say "hi"`, QuoteNone, false, false},
		{`say "hi`, QuoteDouble, false, false},
		{`it's`, QuoteNone, true, true},
		{`it's`, QuoteSingle, false, false},
		{`it's`, QuoteDouble, true, true},
		{`'a\'`, QuoteNone, false, false},
	}

	for _, tt := range tests {
		b := newTestBuffer(80)
		b.Insert([]rune(tt.line))
		cont, quoted := b.continuation(tt.disabled)
		if cont != tt.cont || quoted != tt.quoted {
			t.Errorf("continuation(%q, %d) = %v, %v, want %v, %v", tt.line, tt.disabled, cont, quoted, tt.cont, tt.quoted)
		}
	}
}

func TestBufferContinue(t *testing.T) {
	b := newTestBuffer(80)
	b.Insert([]rune(`foo \`))
	f := b.Continue(false).String()
	if f != "\r\n> " {
		t.Fatalf("frame %q, want %q", f, "\r\n> ")
	}
	b.Insert([]rune("bar"))
	if got := b.String(); got != "foo bar" {
		t.Fatalf("String() = %q, want %q", got, "foo bar")
	}
	if !b.IsMultiLine() {
		t.Fatal("IsMultiLine() = false")
	}
	if b.Index() != 7 {
		t.Fatalf("Index() = %d, want 7", b.Index())
	}

	q := newTestBuffer(80)
	q.Insert([]rune(`say "a`))
	q.Continue(true)
	q.Insert([]rune(`b"`))
	if got := q.String(); got != "say \"a\nb\"" {
		t.Fatalf("String() = %q", got)
	}
}

func TestBufferRedrawFrames(t *testing.T) {
	b := newTestBuffer(80)
	b.Insert([]rune("abc"))
	b.Move(-1)

	if got, want := b.DrawLine().String(), "> abc\x1b[1D"; got != want {
		t.Fatalf("DrawLine() = %q, want %q", got, want)
	}
	if got, want := b.ClearScreen().String(), "\x1b[2J\x1b[H> abc\x1b[1D"; got != want {
		t.Fatalf("ClearScreen() = %q, want %q", got, want)
	}
	if got, want := b.Redraw().String(), "\x1b[2K\r> abc\x1b[1D"; got != want {
		t.Fatalf("Redraw() = %q, want %q", got, want)
	}
}

func TestBufferResize(t *testing.T) {
	b := newTestBuffer(80)
	b.Insert([]rune("0123456789"))
	b.Resize(5)
	if b.Width() != 5 {
		t.Fatalf("Width() = %d", b.Width())
	}
	pos, ok := b.Locate(b.Index())
	if !ok {
		t.Fatal("Locate failed")
	}
	if want := (Position{Row: 2, Col: 2}); pos != want {
		t.Fatalf("cursor at %+v, want %+v", pos, want)
	}
}
