package line

import (
	"slices"
)

// knownSequences holds every escape sequence the decoder recognizes,
// longest first so that e.g. ESC[1;5D wins over any shorter prefix match.
var knownSequences = func() []Key {
	seqs := []Key{
		KeyUp, KeyDown, KeyRight, KeyLeft, KeyHome, KeyEnd, KeyShiftTab,
		KeyInsert, KeyDelete, KeyPageUp, KeyPageDown,
		keyUpSS3, keyDownSS3, keyRightSS3, keyLeftSS3, keyHomeSS3, keyEndSS3,
		keyHome1, keyEnd4, keyHome7, keyEnd8,
		KeyCtrlUp, KeyCtrlDown, KeyCtrlRight, KeyCtrlLeft,
		KeyAltRight, KeyAltLeft, KeyShiftRight, KeyShiftLeft, KeyCtrlDelete,
		KeyF1, KeyF2, KeyF3, KeyF4, KeyF5, KeyF6,
		KeyF7, KeyF8, KeyF9, KeyF10, KeyF11, KeyF12,
		keyPasteStart,
	}
	slices.SortStableFunc(seqs, func(a, b Key) int {
		return len(b.Runes()) - len(a.Runes())
	})
	return seqs
}()

// aliases folds alternative encodings of the same key onto one Key so the
// keymaps only need to bind one of them.
var aliases = map[Key]Key{
	keyUpSS3:    KeyUp,
	keyDownSS3:  KeyDown,
	keyRightSS3: KeyRight,
	keyLeftSS3:  KeyLeft,
	keyHomeSS3:  KeyHome,
	keyEndSS3:   KeyEnd,
	keyHome1:    KeyHome,
	keyHome7:    KeyHome,
	keyEnd4:     KeyEnd,
	keyEnd8:     KeyEnd,
}

// maxCSILength bounds how long an unterminated CSI sequence is buffered
// before the decoder gives up and treats the ESC as a key of its own.
const maxCSILength = 32

// KeyDecoder turns chunks of input codepoints into keys. Chunks may end in
// the middle of an escape sequence; the incomplete tail is held until the
// next chunk arrives.
type KeyDecoder struct {
	pending []rune
	pasting bool
	paste   []rune
}

func NewKeyDecoder() *KeyDecoder {
	return &KeyDecoder{}
}

// Pending reports whether input is buffered waiting for more codepoints.
func (d *KeyDecoder) Pending() bool {
	return len(d.pending) > 0 || d.pasting
}

// Decode appends chunk to the buffered input and returns all complete keys.
func (d *KeyDecoder) Decode(chunk []rune) []Key {
	// A chunk consisting of nothing but ESC is the user pressing Escape.
	loneEscape := len(d.pending) == 0 && len(chunk) == 1 && chunk[0] == esc
	d.pending = append(d.pending, chunk...)

	var keys []Key
	for len(d.pending) > 0 {
		if d.pasting {
			k, ok := d.continuePaste()
			if !ok {
				break
			}
			keys = append(keys, k)
			continue
		}

		if d.pending[0] != esc {
			keys = append(keys, Key(string(d.pending[0])))
			d.pending = d.pending[1:]
			continue
		}

		k, n, incomplete := matchEscape(d.pending)
		if incomplete {
			if loneEscape && len(d.pending) == 1 {
				keys = append(keys, KeyEscape)
				d.pending = d.pending[:0]
			}
			break
		}
		d.pending = d.pending[n:]
		if k == keyPasteStart {
			d.pasting = true
			d.paste = d.paste[:0]
			continue
		}
		if alias, ok := aliases[k]; ok {
			k = alias
		}
		keys = append(keys, k)
	}

	if len(d.pending) == 0 {
		d.pending = nil
	}
	return keys
}

// Flush returns whatever is buffered as literal keys.
func (d *KeyDecoder) Flush() []Key {
	var keys []Key
	if d.pasting {
		d.paste = append(d.paste, d.pending...)
		keys = append(keys, pasteKey(d.paste))
		d.pasting = false
		d.paste = nil
		d.pending = nil
		return keys
	}
	for _, r := range d.pending {
		keys = append(keys, Key(string(r)))
	}
	d.pending = nil
	return keys
}

func (d *KeyDecoder) continuePaste() (Key, bool) {
	end := keyPasteEnd.Runes()
	if i := indexRunes(d.pending, end); i >= 0 {
		d.paste = append(d.paste, d.pending[:i]...)
		d.pending = d.pending[i+len(end):]
		d.pasting = false
		k := pasteKey(d.paste)
		d.paste = nil
		return k, true
	}

	// Keep a tail that might be the start of the end marker.
	keep := 0
	for n := min(len(end)-1, len(d.pending)); n > 0; n-- {
		if slices.Equal(d.pending[len(d.pending)-n:], end[:n]) {
			keep = n
			break
		}
	}
	d.paste = append(d.paste, d.pending[:len(d.pending)-keep]...)
	d.pending = append(d.pending[:0], d.pending[len(d.pending)-keep:]...)
	return "", false
}

func pasteKey(text []rune) Key {
	return keyPasteStart + Key(string(text)) + keyPasteEnd
}

// matchEscape resolves the escape sequence at the start of p. It returns the
// key and the number of codepoints it spans, or incomplete when p is a strict
// prefix of something that could still turn into a known sequence.
func matchEscape(p []rune) (k Key, n int, incomplete bool) {
	for _, seq := range knownSequences {
		rs := seq.Runes()
		if hasRunePrefix(p, rs) {
			return seq, len(rs), false
		}
	}
	for _, seq := range knownSequences {
		if rs := seq.Runes(); len(p) < len(rs) && hasRunePrefix(rs, p) {
			return "", 0, true
		}
	}

	if len(p) == 1 {
		return "", 0, true
	}

	switch p[1] {
	case '[':
		return matchCSI(p)
	case 'O':
		if len(p) < 3 {
			return "", 0, true
		}
		debugf("unknown SS3 sequence %q", string(p[:3]))
		return Key(string(p[:3])), 3, false
	}

	// ESC followed by anything else is Alt+that key.
	return Key(string(p[:2])), 2, false
}

// matchCSI scans ESC [ parameters intermediates final.
func matchCSI(p []rune) (Key, int, bool) {
	i := 2
	for i < len(p) && p[i] >= 0x30 && p[i] <= 0x3f {
		i++
	}
	for i < len(p) && p[i] >= 0x20 && p[i] <= 0x2f {
		i++
	}
	if i >= len(p) {
		if len(p) < maxCSILength {
			return "", 0, true
		}
		return KeyEscape, 1, false
	}
	if p[i] >= 0x40 && p[i] <= 0x7e {
		k := Key(string(p[:i+1]))
		debugf("unknown CSI sequence %q", string(k))
		return k, i + 1, false
	}
	// Not a CSI sequence after all; ESC stands alone and the rest is
	// decoded as ordinary input.
	return KeyEscape, 1, false
}

func hasRunePrefix(s, prefix []rune) bool {
	return len(s) >= len(prefix) && slices.Equal(s[:len(prefix)], prefix)
}

func indexRunes(s, sub []rune) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if slices.Equal(s[i:i+len(sub)], sub) {
			return i
		}
	}
	return -1
}
