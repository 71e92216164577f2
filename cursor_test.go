package line

import (
	"testing"
)

func TestLocateSingleLine(t *testing.T) {
	b := newTestBuffer(10)
	b.Insert([]rune("0123456789abc"))

	tests := []struct {
		index int
		want  Position
	}{
		{0, Position{0, 2}},
		{7, Position{0, 9}},
		{8, Position{1, 0}},
		{13, Position{1, 5}},
	}
	for _, tt := range tests {
		got, ok := b.Locate(tt.index)
		if !ok {
			t.Errorf("Locate(%d) failed", tt.index)
			continue
		}
		if got != tt.want {
			t.Errorf("Locate(%d) = %+v, want %+v", tt.index, got, tt.want)
		}
	}

	if _, ok := b.Locate(14); ok {
		t.Error("Locate past the end succeeded")
	}
	if _, ok := b.Locate(-1); ok {
		t.Error("Locate(-1) succeeded")
	}
}

func TestLocateContinuation(t *testing.T) {
	b := newTestBuffer(80)
	b.Insert([]rune(`foo \`))
	b.Continue(false)
	b.Insert([]rune("bar"))

	tests := []struct {
		index int
		want  Position
	}{
		{1, Position{0, 3}},
		{4, Position{1, 2}},
		{7, Position{1, 5}},
	}
	for _, tt := range tests {
		got, ok := b.Locate(tt.index)
		if !ok || got != tt.want {
			t.Errorf("Locate(%d) = %+v, %v, want %+v", tt.index, got, ok, tt.want)
		}
	}

	b.Locator().Invalidate()
	if _, ok := b.Locate(4); ok {
		t.Error("Locate succeeded after Invalidate")
	}
}

func TestCursorTransaction(t *testing.T) {
	b := newTestBuffer(80)
	b.Insert([]rune("abc"))

	tests := []struct {
		name string
		tx   func() *CursorTransaction
		want string
	}{
		{
			name: "move",
			tx:   func() *CursorTransaction { return b.Transaction().MoveTo(0) },
			want: "\x1b[s\x1b[3D\x1b[u",
		},
		{
			name: "colorize",
			tx:   func() *CursorTransaction { return b.Transaction().Colorize(1, 31) },
			want: "\x1b[s\x1b[2D\x1b[31mb\x1b[0m\x1b[u",
		},
		{
			name: "move by",
			tx:   func() *CursorTransaction { return b.Transaction().MoveBy(-1).MoveBy(-1) },
			want: "\x1b[s\x1b[1D\x1b[1D\x1b[u",
		},
		{
			name: "abort",
			tx:   func() *CursorTransaction { return b.Transaction().MoveTo(100).MoveTo(0) },
			want: "\x1b[s\x1b[u",
		},
	}

	for _, tt := range tests {
		if got := tt.tx().Frame().String(); got != tt.want {
			t.Errorf("%s: frame %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestCursorTransactionInvalidated(t *testing.T) {
	b := newTestBuffer(80)
	b.Insert([]rune("abc"))
	b.Locator().Invalidate()
	if got := b.Transaction().MoveTo(0).Frame(); len(got) != 0 {
		t.Fatalf("frame %q, want nothing", got.String())
	}
}
