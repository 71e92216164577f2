package line

import (
	"strings"
)

// Prompt is the text drawn in front of the editable line.
type Prompt struct {
	text []rune // what the user sees, escapes stripped
	ansi []rune // what is written to the terminal
	mask *rune
}

// NewPrompt creates a prompt. s may carry SGR or OSC title sequences; they are
// written as is but do not count towards the prompt's width.
func NewPrompt(s string) *Prompt {
	s = strings.ReplaceAll(strings.ReplaceAll(s, "\r\n", "\n"), "\n", "\r\n")
	return &Prompt{
		text: stripEscapes([]rune(s)),
		ansi: []rune(s),
	}
}

// NewMaskedPrompt creates a prompt whose input is echoed as mask. A mask of 0
// echoes nothing at all.
func NewMaskedPrompt(s string, mask rune) *Prompt {
	p := NewPrompt(s)
	p.mask = &mask
	return p
}

func (p *Prompt) String() string {
	return string(p.text)
}

// Masked reports whether input under this prompt is masked, and with which rune.
func (p *Prompt) Masked() (rune, bool) {
	if p.mask == nil {
		return 0, false
	}
	return *p.mask, true
}

// Silent reports whether input is masked with no echo.
func (p *Prompt) Silent() bool {
	return p.mask != nil && *p.mask == 0
}

// Length returns the width of the last line of the prompt, the one the input
// starts on.
func (p *Prompt) Length() int {
	return len(lastLine(p.text))
}

// Rows returns how many rows the prompt occupies above the input row.
func (p *Prompt) Rows() int {
	n := 0
	for _, r := range p.text {
		if r == '\n' {
			n++
		}
	}
	return n
}

func (p *Prompt) withText(s string) *Prompt {
	q := NewPrompt(s)
	q.mask = p.mask
	return q
}

// lastRendered returns the styled last line of the prompt.
func (p *Prompt) lastRendered() []rune {
	return lastLine(p.ansi)
}

func lastLine(rs []rune) []rune {
	for i := len(rs) - 1; i >= 0; i-- {
		if rs[i] == '\n' {
			return rs[i+1:]
		}
	}
	return rs
}

type vtState int

const (
	vtStateFree vtState = iota
	vtStateEscape
	vtStateBracket
	vtStateBracketArgsSemi
	vtStateTitle
)

// stripEscapes removes CSI and OSC sequences and carriage returns.
func stripEscapes(rs []rune) []rune {
	out := make([]rune, 0, len(rs))
	state := vtStateFree
	for i, c := range rs {
		var next rune
		if i+1 < len(rs) {
			next = rs[i+1]
		}
		var keep bool
		state, keep = vtStep(state, c, next)
		if keep {
			out = append(out, c)
		}
	}
	return out
}

func vtStep(state vtState, c, next rune) (vtState, bool) {
	switch state {
	case vtStateFree:
		if c == esc {
			return vtStateEscape, false
		}
		if c == '\r' {
			return state, false
		}
		return state, true
	case vtStateEscape:
		if c == ']' {
			if next == '0' {
				return vtStateTitle, false
			}
			return vtStateFree, false
		}
		if c == '[' {
			return vtStateBracket, false
		}
		return vtStateFree, false
	case vtStateBracket:
		if c >= '0' && c <= '9' {
			return vtStateBracketArgsSemi, false
		}
		return vtStateFree, false
	case vtStateBracketArgsSemi:
		if c == ';' {
			return vtStateBracket, false
		}
		if c >= '0' && c <= '9' {
			return state, false
		}
		return vtStateFree, false
	case vtStateTitle:
		if c == '\a' {
			return vtStateFree, false
		}
		return state, false
	}
	return state, false
}
