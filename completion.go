package line

import (
	"fmt"
	"slices"

	"github.com/mattn/go-runewidth"
)

// Completion is one candidate. DisplayTrivia is shown next to the text in
// listings but never inserted.
type Completion struct {
	Text          string
	DisplayTrivia string
}

// CompleteOperation is handed to each Completer. Completers read the line
// and cursor and add candidates; they may move Offset, the start of the text
// a candidate replaces, and change or suppress the separator appended after
// a sole candidate.
type CompleteOperation struct {
	Buffer string
	Cursor int

	Offset      int
	Separator   rune
	NoSeparator bool

	completions []Completion
}

// Completer contributes candidates for the text before the cursor.
type Completer func(op *CompleteOperation)

func (o *CompleteOperation) Add(texts ...string) {
	for _, t := range texts {
		o.completions = append(o.completions, Completion{Text: t})
	}
}

func (o *CompleteOperation) AddCompletion(c ...Completion) {
	o.completions = append(o.completions, c...)
}

// Word returns the text between Offset and the cursor.
func (o *CompleteOperation) Word() string {
	rs := []rune(o.Buffer)
	from := max(0, min(o.Offset, o.Cursor))
	return string(rs[from:min(o.Cursor, len(rs))])
}

func (o *CompleteOperation) Completions() []Completion {
	return o.completions
}

func wordStart(line []rune, cursor int) int {
	i := min(cursor, len(line))
	for i > 0 && !isSpace(line[i-1]) {
		i--
	}
	return i
}

func newCompleteOperation(line []rune, cursor int) *CompleteOperation {
	return &CompleteOperation{
		Buffer:    string(line),
		Cursor:    cursor,
		Offset:    wordStart(line, cursor),
		Separator: ' ',
	}
}

// collect runs every completer and drops duplicate candidates.
func collect(completers []Completer, line []rune, cursor int) *CompleteOperation {
	op := newCompleteOperation(line, cursor)
	for _, complete := range completers {
		complete(op)
	}
	seen := make(map[string]bool, len(op.completions))
	op.completions = slices.DeleteFunc(op.completions, func(c Completion) bool {
		dup := seen[c.Text]
		seen[c.Text] = true
		return dup
	})
	op.Offset = max(0, min(op.Offset, cursor))
	return op
}

func commonPrefix(cs []Completion) []rune {
	if len(cs) == 0 {
		return nil
	}
	prefix := []rune(cs[0].Text)
	for _, c := range cs[1:] {
		rs := []rune(c.Text)
		n := 0
		for n < len(prefix) && n < len(rs) && prefix[n] == rs[n] {
			n++
		}
		prefix = prefix[:n]
	}
	return prefix
}

// complete runs the completers against the live line.
func (c *ConsoleBuffer) complete() {
	b := c.buffer
	op := collect(c.completers, b.Line(), b.Cursor())
	cs := op.completions

	switch len(cs) {
	case 0:
		c.write(Frame(nil).bell())
		return
	case 1:
		text := []rune(cs[0].Text)
		if !op.NoSeparator && op.Separator != 0 {
			text = append(text, op.Separator)
		}
		c.write(b.ReplaceRange(op.Offset, op.Cursor, text, op.Offset+len(text)))
		return
	}

	if prefix := commonPrefix(cs); len(prefix) > op.Cursor-op.Offset {
		c.write(b.ReplaceRange(op.Offset, op.Cursor, prefix, op.Offset+len(prefix)))
		return
	}

	listing := layoutCompletions(cs, b.Width())
	lineRows, _ := b.rowCol(b.Len())
	if c.size.Height > 0 && len(listing)+lineRows+b.Prompt().Rows()+1 > c.size.Height {
		c.write(b.MoveToEnd())
		c.write(Frame(nil).text(fmt.Sprintf("\r\nDisplay all %d possibilities? (y or n)", len(cs))))
		c.focus = &confirmSession{listing: listing, cursor: op.Cursor}
		return
	}
	c.showListing(listing, op.Cursor)
}

// showListing prints rows below the input and draws the prompt and line
// again underneath.
func (c *ConsoleBuffer) showListing(rows []string, cursor int) {
	b := c.buffer
	f := b.MoveToEnd()
	f = append(f, '\r', '\n')
	for _, row := range rows {
		f = f.text(row)
		f = append(f, '\r', '\n')
	}
	b.cursor = cursor
	f = append(f, b.DrawLine()...)
	if b.IsMultiLine() {
		b.Locator().Invalidate()
	}
	c.write(f)
}

// layoutCompletions arranges candidates in columns, filling each row left to
// right.
func layoutCompletions(cs []Completion, width int) []string {
	longest := 0
	cells := make([]string, len(cs))
	for i, comp := range cs {
		cells[i] = comp.Text
		if comp.DisplayTrivia != "" {
			cells[i] += "  " + comp.DisplayTrivia
		}
		longest = max(longest, runewidth.StringWidth(cells[i]))
	}

	colWidth := longest + 2
	perRow := max(1, width/colWidth)
	var rows []string
	for start := 0; start < len(cells); start += perRow {
		end := min(start+perRow, len(cells))
		row := ""
		for i, cell := range cells[start:end] {
			if start+i == end-1 {
				row += cell
				break
			}
			row += runewidth.FillRight(cell, colWidth)
		}
		rows = append(rows, runewidth.Truncate(row, width, ""))
	}
	return rows
}

// confirmSession asks whether a long listing should be shown. Only an answer
// ends it.
type confirmSession struct {
	listing []string
	cursor  int
	done    bool
}

func (s *confirmSession) keepsFocus() bool {
	return !s.done
}

func (s *confirmSession) handle(c *ConsoleBuffer, k Key) bool {
	switch k {
	case "y", "Y", " ", KeyTab:
		s.done = true
		c.showListing(s.listing, s.cursor)
	case "n", "N", KeyEscape, Ctrl('g'), KeyCtrlC, KeyBackspace:
		s.decline(c)
	case KeyCtrlD:
		// End of input still has to reach the line.
		s.decline(c)
		return true
	default:
		c.write(Frame(nil).bell())
	}
	return false
}

func (s *confirmSession) decline(c *ConsoleBuffer) {
	s.done = true
	b := c.buffer
	b.cursor = s.cursor
	f := Frame(nil).text("\r\n")
	c.write(append(f, b.DrawLine()...))
}
