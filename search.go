package line

import (
	"fmt"
)

type searchState int

const (
	searchNotStarted searchState = iota
	searchPrev
	searchNext
	searchDelete
	searchMovePrev
	searchMoveNext
	searchMoveLeft
	searchMoveRight
	searchEnd
	searchExit
	searchInterrupt
)

// searchSession is one incremental history search. The term it shows always
// matches the entry it shows: a key that would make it match nothing is
// refused.
type searchSession struct {
	state    searchState
	backward bool
	term     []rune
	match    int
	prompt   *Prompt
}

func newSearchSession(c *ConsoleBuffer, backward bool) *searchSession {
	s := &searchSession{
		backward: backward,
		match:    -1,
		prompt:   c.buffer.Prompt(),
	}
	c.write(s.render(c))
	return s
}

func (s *searchSession) keepsFocus() bool {
	switch s.state {
	case searchEnd, searchExit, searchInterrupt:
		return false
	}
	return true
}

func (s *searchSession) handle(c *ConsoleBuffer, k Key) bool {
	switch k {
	case Ctrl('r'):
		s.state = searchPrev
	case Ctrl('s'):
		s.state = searchNext
	case KeyBackspace, Ctrl('h'):
		s.state = searchDelete
	case KeyUp, Ctrl('p'):
		s.state = searchMovePrev
	case KeyDown, Ctrl('n'):
		s.state = searchMoveNext
	case KeyLeft, Ctrl('b'):
		s.state = searchMoveLeft
	case KeyRight, Ctrl('f'):
		s.state = searchMoveRight
	case KeyEnter, KeyCtrlJ:
		s.state = searchEnd
	case KeyEscape, Ctrl('g'):
		s.state = searchExit
	case KeyCtrlC:
		s.state = searchInterrupt
	default:
		if !k.IsPrintable() {
			// Leave the search with what it found and let the key do
			// whatever it normally does.
			s.state = searchExit
			s.install(c, 0)
			return true
		}
		s.extend(c, k.Runes()[0])
		return false
	}

	switch s.state {
	case searchPrev:
		s.step(c, true, true)
	case searchNext:
		s.step(c, false, true)
	case searchMovePrev:
		s.step(c, true, false)
	case searchMoveNext:
		s.step(c, false, false)
	case searchDelete:
		s.shrink(c)
	case searchMoveLeft:
		s.install(c, -1)
		s.state = searchExit
	case searchMoveRight:
		s.install(c, 1)
		s.state = searchExit
	case searchEnd:
		s.install(c, 0)
		c.accept()
	case searchExit:
		s.install(c, 0)
	case searchInterrupt:
		c.write(c.buffer.SwapPrompt(s.prompt, nil, 0))
	}
	return false
}

func (s *searchSession) find(c *ConsoleBuffer, term []rune, from int, backward bool) (int, bool) {
	if from < 0 {
		if backward {
			return -1, false
		}
		from = 0
	}
	return c.history.Find(string(term), from, backward)
}

// extend appends r to the term if some entry still matches.
func (s *searchSession) extend(c *ConsoleBuffer, r rune) {
	term := append(append([]rune(nil), s.term...), r)
	from := s.match
	if from < 0 {
		from = s.origin(c)
	}
	i, ok := s.find(c, term, from, s.backward)
	if !ok {
		c.write(Frame(nil).bell())
		return
	}
	s.term = term
	s.match = i
	c.write(s.render(c))
}

// step moves to the next match towards older entries, or newer ones
// when backward is false. turn makes that the search direction from now on.
func (s *searchSession) step(c *ConsoleBuffer, backward, turn bool) {
	if turn {
		s.backward = backward
	}
	if len(s.term) == 0 || s.match < 0 {
		c.write(s.render(c).bell())
		return
	}
	from := s.match + 1
	if backward {
		from = s.match - 1
	}
	i, ok := s.find(c, s.term, from, backward)
	if !ok {
		c.write(s.render(c).bell())
		return
	}
	s.match = i
	c.write(s.render(c))
}

func (s *searchSession) shrink(c *ConsoleBuffer) {
	if len(s.term) == 0 {
		c.write(Frame(nil).bell())
		return
	}
	s.term = s.term[:len(s.term)-1]
	s.match = -1
	if len(s.term) > 0 {
		if i, ok := s.find(c, s.term, s.origin(c), s.backward); ok {
			s.match = i
		}
	}
	c.write(s.render(c))
}

// origin is where a fresh lookup starts: the newest entry when searching
// backwards, the oldest otherwise.
func (s *searchSession) origin(c *ConsoleBuffer) int {
	if s.backward {
		return c.history.Len() - 1
	}
	return 0
}

func (s *searchSession) matched(c *ConsoleBuffer) ([]rune, int) {
	if s.match < 0 {
		return nil, 0
	}
	line := []rune(c.history.Get(s.match))
	pos := max(indexRunes(line, s.term), 0)
	return line, pos
}

func (s *searchSession) render(c *ConsoleBuffer) Frame {
	kind := "reverse-i-search"
	if !s.backward {
		kind = "i-search"
	}
	line, pos := s.matched(c)
	p := s.prompt.withText(fmt.Sprintf("(%s)`%s': ", kind, string(s.term)))
	return c.buffer.SwapPrompt(p, line, pos)
}

// install puts the match, or an empty line, back under the original prompt
// with the cursor moved by shift from where the term matched.
func (s *searchSession) install(c *ConsoleBuffer, shift int) {
	line, pos := s.matched(c)
	c.write(c.buffer.SwapPrompt(s.prompt, line, max(pos+shift, 0)))
}
