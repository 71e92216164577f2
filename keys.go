package line

import (
	"fmt"
	"strings"
	"unicode"
)

// Key is one decoded unit of input: either a single codepoint or a whole
// escape sequence. Two keys are the same key when their codepoint sequences
// are identical.
type Key string

const (
	ModifierShift = 1
	ModifierAlt   = 2
	ModifierCtrl  = 4
)

const esc = '\x1b'

const (
	KeyCtrlSpace      Key = "\x00"
	KeyCtrlA          Key = "\x01"
	KeyCtrlB          Key = "\x02"
	KeyCtrlC          Key = "\x03"
	KeyCtrlD          Key = "\x04"
	KeyCtrlE          Key = "\x05"
	KeyCtrlF          Key = "\x06"
	KeyCtrlG          Key = "\x07"
	KeyCtrlH          Key = "\x08"
	KeyTab            Key = "\x09"
	KeyCtrlJ          Key = "\x0a"
	KeyCtrlK          Key = "\x0b"
	KeyCtrlL          Key = "\x0c"
	KeyEnter          Key = "\x0d"
	KeyCtrlN          Key = "\x0e"
	KeyCtrlO          Key = "\x0f"
	KeyCtrlP          Key = "\x10"
	KeyCtrlQ          Key = "\x11"
	KeyCtrlR          Key = "\x12"
	KeyCtrlS          Key = "\x13"
	KeyCtrlT          Key = "\x14"
	KeyCtrlU          Key = "\x15"
	KeyCtrlV          Key = "\x16"
	KeyCtrlW          Key = "\x17"
	KeyCtrlX          Key = "\x18"
	KeyCtrlY          Key = "\x19"
	KeyCtrlZ          Key = "\x1a"
	KeyEscape         Key = "\x1b"
	KeyCtrlUnderscore Key = "\x1f"
	KeyBackspace      Key = "\x7f"

	KeyUp       Key = "\x1b[A"
	KeyDown     Key = "\x1b[B"
	KeyRight    Key = "\x1b[C"
	KeyLeft     Key = "\x1b[D"
	KeyHome     Key = "\x1b[H"
	KeyEnd      Key = "\x1b[F"
	KeyShiftTab Key = "\x1b[Z"
	KeyInsert   Key = "\x1b[2~"
	KeyDelete   Key = "\x1b[3~"
	KeyPageUp   Key = "\x1b[5~"
	KeyPageDown Key = "\x1b[6~"

	keyUpSS3    Key = "\x1bOA"
	keyDownSS3  Key = "\x1bOB"
	keyRightSS3 Key = "\x1bOC"
	keyLeftSS3  Key = "\x1bOD"
	keyHomeSS3  Key = "\x1bOH"
	keyEndSS3   Key = "\x1bOF"
	keyHome1    Key = "\x1b[1~"
	keyEnd4     Key = "\x1b[4~"
	keyHome7    Key = "\x1b[7~"
	keyEnd8     Key = "\x1b[8~"

	KeyCtrlUp     Key = "\x1b[1;5A"
	KeyCtrlDown   Key = "\x1b[1;5B"
	KeyCtrlRight  Key = "\x1b[1;5C"
	KeyCtrlLeft   Key = "\x1b[1;5D"
	KeyAltRight   Key = "\x1b[1;3C"
	KeyAltLeft    Key = "\x1b[1;3D"
	KeyShiftRight Key = "\x1b[1;2C"
	KeyShiftLeft  Key = "\x1b[1;2D"
	KeyCtrlDelete Key = "\x1b[3;5~"

	KeyF1  Key = "\x1bOP"
	KeyF2  Key = "\x1bOQ"
	KeyF3  Key = "\x1bOR"
	KeyF4  Key = "\x1bOS"
	KeyF5  Key = "\x1b[15~"
	KeyF6  Key = "\x1b[17~"
	KeyF7  Key = "\x1b[18~"
	KeyF8  Key = "\x1b[19~"
	KeyF9  Key = "\x1b[20~"
	KeyF10 Key = "\x1b[21~"
	KeyF11 Key = "\x1b[23~"
	KeyF12 Key = "\x1b[24~"

	keyPasteStart Key = "\x1b[200~"
	keyPasteEnd   Key = "\x1b[201~"
)

// Ctrl returns the control key for k, so Ctrl('a') and Ctrl('A') are both ^A.
func Ctrl(k rune) Key {
	return Key(string(unicode.ToUpper(k) & 0x1f))
}

// Meta returns the key sent for Alt+k by terminals that prefix with ESC.
func Meta(k rune) Key {
	return Key(string([]rune{esc, k}))
}

// Runes returns the codepoints of the key.
func (k Key) Runes() []rune {
	return []rune(string(k))
}

// IsPrintable reports whether k is a single printable codepoint.
func (k Key) IsPrintable() bool {
	rs := k.Runes()
	return len(rs) == 1 && unicode.IsPrint(rs[0])
}

// Pasted returns the text carried by a bracketed-paste key.
func (k Key) Pasted() ([]rune, bool) {
	s := string(k)
	if !strings.HasPrefix(s, string(keyPasteStart)) || !strings.HasSuffix(s, string(keyPasteEnd)) {
		return nil, false
	}
	if len(s) < len(keyPasteStart)+len(keyPasteEnd) {
		return nil, false
	}
	return []rune(s[len(keyPasteStart) : len(s)-len(keyPasteEnd)]), true
}

var keyNames = map[Key]string{
	KeyEscape:     "Esc",
	KeyEnter:      "CR",
	KeyTab:        "Tab",
	KeyBackspace:  "BS",
	KeyUp:         "Up",
	KeyDown:       "Down",
	KeyLeft:       "Left",
	KeyRight:      "Right",
	KeyHome:       "Home",
	KeyEnd:        "End",
	KeyInsert:     "Insert",
	KeyDelete:     "Del",
	KeyPageUp:     "PageUp",
	KeyPageDown:   "PageDown",
	KeyShiftTab:   "S-Tab",
	KeyCtrlUp:     "C-Up",
	KeyCtrlDown:   "C-Down",
	KeyCtrlLeft:   "C-Left",
	KeyCtrlRight:  "C-Right",
	KeyAltLeft:    "A-Left",
	KeyAltRight:   "A-Right",
	KeyShiftLeft:  "S-Left",
	KeyShiftRight: "S-Right",
	KeyCtrlDelete: "C-Del",
	KeyF1:         "F1",
	KeyF2:         "F2",
	KeyF3:         "F3",
	KeyF4:         "F4",
	KeyF5:         "F5",
	KeyF6:         "F6",
	KeyF7:         "F7",
	KeyF8:         "F8",
	KeyF9:         "F9",
	KeyF10:        "F10",
	KeyF11:        "F11",
	KeyF12:        "F12",
}

// String returns the key in vim notation, the same notation ParseKey reads.
func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return "<" + name + ">"
	}
	if _, ok := k.Pasted(); ok {
		return "<Paste>"
	}
	rs := k.Runes()
	switch {
	case len(rs) == 1 && rs[0] < 0x20:
		return fmt.Sprintf("<C-%c>", unicode.ToLower(rs[0]+'@'))
	case len(rs) == 1:
		return string(rs)
	case len(rs) == 2 && rs[0] == esc && rs[1] < 0x20:
		return fmt.Sprintf("<A-C-%c>", unicode.ToLower(rs[1]+'@'))
	case len(rs) == 2 && rs[0] == esc:
		return fmt.Sprintf("<A-%c>", rs[1])
	}
	return fmt.Sprintf("%q", string(k))
}

var specialKeys = map[string]Key{
	"esc":      KeyEscape,
	"escape":   KeyEscape,
	"cr":       KeyEnter,
	"enter":    KeyEnter,
	"return":   KeyEnter,
	"nl":       KeyCtrlJ,
	"tab":      KeyTab,
	"space":    " ",
	"bs":       KeyBackspace,
	"del":      KeyDelete,
	"delete":   KeyDelete,
	"insert":   KeyInsert,
	"up":       KeyUp,
	"down":     KeyDown,
	"left":     KeyLeft,
	"right":    KeyRight,
	"home":     KeyHome,
	"end":      KeyEnd,
	"pageup":   KeyPageUp,
	"pagedown": KeyPageDown,
	"f1":       KeyF1,
	"f2":       KeyF2,
	"f3":       KeyF3,
	"f4":       KeyF4,
	"f5":       KeyF5,
	"f6":       KeyF6,
	"f7":       KeyF7,
	"f8":       KeyF8,
	"f9":       KeyF9,
	"f10":      KeyF10,
	"f11":      KeyF11,
	"f12":      KeyF12,
}

// csiFinals maps keys that take an xterm modifier parameter to the final
// byte of their CSI sequence.
var csiFinals = map[Key]rune{
	KeyUp:    'A',
	KeyDown:  'B',
	KeyRight: 'C',
	KeyLeft:  'D',
	KeyHome:  'H',
	KeyEnd:   'F',
}

// ParseKey parses a single key written in vim notation:
//
//	"a"        → a
//	"<C-a>"    → Ctrl+A
//	"<A-f>"    → Alt+F (ESC f)
//	"<M-f>"    → same as <A-f>
//	"<C-Left>" → ESC [ 1 ; 5 D
//	"<S-Tab>"  → ESC [ Z
//	"<Esc>", "<CR>", "<BS>", "<Del>", "<F1>" ... named keys
func ParseKey(notation string) (Key, error) {
	rs := []rune(notation)
	if len(rs) == 1 {
		return Key(notation), nil
	}
	if len(rs) < 3 || rs[0] != '<' || rs[len(rs)-1] != '>' {
		return "", fmt.Errorf("line: invalid key notation %q", notation)
	}

	parts := strings.Split(string(rs[1:len(rs)-1]), "-")
	// "<C-->" splits into an empty final part; that is the '-' key.
	if len(parts) > 1 && parts[len(parts)-1] == "" {
		parts = append(parts[:len(parts)-2], "-")
	}

	mods := 0
	for _, p := range parts[:len(parts)-1] {
		switch strings.ToLower(p) {
		case "c":
			mods |= ModifierCtrl
		case "a", "m":
			mods |= ModifierAlt
		case "s":
			mods |= ModifierShift
		default:
			return "", fmt.Errorf("line: unknown modifier %q in %q", p, notation)
		}
	}

	final := parts[len(parts)-1]
	if special, ok := specialKeys[strings.ToLower(final)]; ok {
		return applyModifiers(special, mods, notation)
	}
	fr := []rune(final)
	if len(fr) != 1 {
		return "", fmt.Errorf("line: unknown key %q in %q", final, notation)
	}

	k := Key(final)
	if mods&ModifierShift != 0 {
		k = Key(string(unicode.ToUpper(fr[0])))
	}
	if mods&ModifierCtrl != 0 {
		k = Ctrl(fr[0])
	}
	if mods&ModifierAlt != 0 {
		k = Key(string(esc)) + k
	}
	return k, nil
}

func applyModifiers(k Key, mods int, notation string) (Key, error) {
	if mods == 0 {
		return k, nil
	}
	if k == KeyTab && mods == ModifierShift {
		return KeyShiftTab, nil
	}
	if final, ok := csiFinals[k]; ok {
		return Key(fmt.Sprintf("\x1b[1;%d%c", mods+1, final)), nil
	}
	if k == KeyDelete {
		return Key(fmt.Sprintf("\x1b[3;%d~", mods+1)), nil
	}
	if mods == ModifierAlt {
		return Key(string(esc)) + k, nil
	}
	return "", fmt.Errorf("line: modifiers not supported on %q", notation)
}

// ParseKeys parses a key sequence in vim notation, such as "<C-x><C-u>" or
// "gU".
func ParseKeys(pattern string) ([]Key, error) {
	var keys []Key
	rs := []rune(pattern)
	for i := 0; i < len(rs); {
		if rs[i] == '<' {
			end := i + 1
			for end < len(rs) && rs[end] != '>' {
				end++
			}
			// "<C->>" names the '>' key.
			if end+1 < len(rs) && rs[end+1] == '>' && rs[end-1] == '-' {
				end++
			}
			if end < len(rs) && end > i+1 {
				k, err := ParseKey(string(rs[i : end+1]))
				if err != nil {
					return nil, err
				}
				keys = append(keys, k)
				i = end + 1
				continue
			}
		}
		keys = append(keys, Key(string(rs[i])))
		i++
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("line: empty key sequence")
	}
	return keys, nil
}
