package line

import (
	"slices"
	"testing"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Key
	}{
		{"plain", "abc", []Key{"a", "b", "c"}},
		{"arrow", "\x1b[A", []Key{KeyUp}},
		{"modified arrow", "\x1b[1;5D", []Key{KeyCtrlLeft}},
		{"ss3 arrow", "\x1bOA", []Key{KeyUp}},
		{"home variants", "\x1b[1~\x1bOH\x1b[7~", []Key{KeyHome, KeyHome, KeyHome}},
		{"delete", "x\x1b[3~y", []Key{"x", KeyDelete, "y"}},
		{"function key", "\x1b[15~", []Key{KeyF5}},
		{"meta", "\x1bf", []Key{Meta('f')}},
		{"lone escape", "\x1b", []Key{KeyEscape}},
		{"unknown csi", "\x1b[99x", []Key{"\x1b[99x"}},
		{"control", "\x01\x7f", []Key{KeyCtrlA, KeyBackspace}},
		{"unicode", "héllo", []Key{"h", "é", "l", "l", "o"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewKeyDecoder()
			got := d.Decode([]rune(tt.input))
			if !slices.Equal(got, tt.want) {
				t.Fatalf("Decode(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if d.Pending() {
				t.Fatalf("Decode(%q) left input pending", tt.input)
			}
		})
	}
}

func TestDecodeSplitSequence(t *testing.T) {
	d := NewKeyDecoder()
	if got := d.Decode([]rune("ab\x1b[")); !slices.Equal(got, []Key{"a", "b"}) {
		t.Fatalf("first chunk: got %q", got)
	}
	if !d.Pending() {
		t.Fatal("expected a pending prefix")
	}
	if got := d.Decode([]rune("1;5")); len(got) != 0 {
		t.Fatalf("second chunk: got %q, want nothing", got)
	}
	if got := d.Decode([]rune("Cz")); !slices.Equal(got, []Key{KeyCtrlRight, "z"}) {
		t.Fatalf("third chunk: got %q", got)
	}
}

func TestDecodeTrailingEscape(t *testing.T) {
	d := NewKeyDecoder()
	if got := d.Decode([]rune("a\x1b")); !slices.Equal(got, []Key{"a"}) {
		t.Fatalf("got %q, want [a]", got)
	}
	if got := d.Decode([]rune("b")); !slices.Equal(got, []Key{Meta('b')}) {
		t.Fatalf("got %q, want [<A-b>]", got)
	}
}

func TestDecodeFlush(t *testing.T) {
	d := NewKeyDecoder()
	d.Decode([]rune("\x1b["))
	got := d.Flush()
	if want := []Key{KeyEscape, "["}; !slices.Equal(got, want) {
		t.Fatalf("Flush() = %q, want %q", got, want)
	}
	if d.Pending() {
		t.Fatal("still pending after Flush")
	}
}

func TestDecodePaste(t *testing.T) {
	d := NewKeyDecoder()
	got := d.Decode([]rune("x\x1b[200~hi\rthere\x1b[201~y"))
	if len(got) != 3 || got[0] != "x" || got[2] != "y" {
		t.Fatalf("got %q", got)
	}
	text, ok := got[1].Pasted()
	if !ok || string(text) != "hi\rthere" {
		t.Fatalf("Pasted() = %q, %v", string(text), ok)
	}
}

func TestDecodePasteAcrossChunks(t *testing.T) {
	d := NewKeyDecoder()
	if got := d.Decode([]rune("\x1b[200~ab\x1b[2")); len(got) != 0 {
		t.Fatalf("first chunk: got %q", got)
	}
	got := d.Decode([]rune("01~"))
	if len(got) != 1 {
		t.Fatalf("second chunk: got %q", got)
	}
	if text, _ := got[0].Pasted(); string(text) != "ab" {
		t.Fatalf("pasted %q, want %q", string(text), "ab")
	}
}
