package line

import (
	"unicode"
)

func isAlphaNumeric(c rune) bool {
	return unicode.IsLetter(c) || unicode.IsDigit(c)
}

func isSpace(c rune) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isWordRune(c rune) bool {
	return isAlphaNumeric(c) || c == '_'
}

// charClass groups characters for vi word motions: blanks, word characters
// and punctuation. With big set only blanks and non-blanks are told apart.
func charClass(c rune, big bool) int {
	switch {
	case isSpace(c):
		return 0
	case big || isWordRune(c):
		return 1
	}
	return 2
}

// target returns where motion m, repeated count times, takes the cursor
// from pos in line.
func target(line []rune, pos int, m Motion, count int) int {
	count = max(count, 1)
	switch m {
	case MotionNone:
		return pos
	case MotionLeft:
		return max(pos-count, 0)
	case MotionRight:
		return min(pos+count, len(line))
	case MotionLineStart, MotionWholeLine:
		return 0
	case MotionLineEnd:
		return len(line)
	case MotionFirstNonBlank:
		i := 0
		for i < len(line) && isSpace(line[i]) {
			i++
		}
		return i
	}

	for ; count > 0; count-- {
		switch m {
		case MotionNextWord, MotionNextBigWord:
			pos = nextWord(line, pos, m == MotionNextBigWord)
		case MotionPrevWord, MotionPrevBigWord:
			pos = prevWord(line, pos, m == MotionPrevBigWord)
		case MotionWordEnd, MotionBigWordEnd:
			pos = wordEnd(line, pos, m == MotionBigWordEnd)
		case MotionForwardWord:
			pos = forwardWord(line, pos)
		case MotionBackwardWord:
			pos = backwardWord(line, pos)
		default:
			panic("line: unhandled motion")
		}
	}
	return pos
}

func nextWord(line []rune, pos int, big bool) int {
	if pos >= len(line) {
		return len(line)
	}
	if class := charClass(line[pos], big); class != 0 {
		for pos < len(line) && charClass(line[pos], big) == class {
			pos++
		}
	}
	for pos < len(line) && isSpace(line[pos]) {
		pos++
	}
	return pos
}

func prevWord(line []rune, pos int, big bool) int {
	pos = min(pos, len(line))
	for pos > 0 && isSpace(line[pos-1]) {
		pos--
	}
	if pos == 0 {
		return 0
	}
	class := charClass(line[pos-1], big)
	for pos > 0 && charClass(line[pos-1], big) == class {
		pos--
	}
	return pos
}

// wordEnd lands on the last character of the current or next word.
func wordEnd(line []rune, pos int, big bool) int {
	if len(line) == 0 {
		return 0
	}
	pos++
	for pos < len(line) && isSpace(line[pos]) {
		pos++
	}
	if pos >= len(line) {
		return len(line) - 1
	}
	class := charClass(line[pos], big)
	for pos+1 < len(line) && charClass(line[pos+1], big) == class {
		pos++
	}
	return pos
}

// forwardWord and backwardWord treat runs of alphanumerics as words, so
// `foo=bar baz` is three words.
func forwardWord(line []rune, pos int) int {
	for pos < len(line) && !isAlphaNumeric(line[pos]) {
		pos++
	}
	for pos < len(line) && isAlphaNumeric(line[pos]) {
		pos++
	}
	return pos
}

func backwardWord(line []rune, pos int) int {
	pos = min(pos, len(line))
	for pos > 0 && !isAlphaNumeric(line[pos-1]) {
		pos--
	}
	for pos > 0 && isAlphaNumeric(line[pos-1]) {
		pos--
	}
	return pos
}

// motionRange returns the span an operator over motion m covers.
func motionRange(line []rune, pos int, m Motion, count int) (from, to int) {
	if m == MotionWholeLine {
		return 0, len(line)
	}
	t := target(line, pos, m, count)
	if m.inclusive() && t >= pos && len(line) > 0 {
		t++
	}
	if t < pos {
		return t, pos
	}
	return pos, min(t, len(line))
}

// lastWord returns the last blank separated word of s.
func lastWord(s []rune) []rune {
	end := len(s)
	for end > 0 && isSpace(s[end-1]) {
		end--
	}
	start := end
	for start > 0 && !isSpace(s[start-1]) {
		start--
	}
	return s[start:end]
}
