package line

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"
)

// DefaultHistorySize is how many entries a MemoryHistory keeps unless told
// otherwise.
const DefaultHistorySize = 500

// History stores accepted lines, oldest first, and keeps the cursor used for
// stepping through them with previous/next.
type History interface {
	Push(line string)
	Get(i int) string
	Len() int
	Clear()

	// Previous steps back one entry. current is the line being edited; it
	// is kept so that stepping forward past the newest entry restores it.
	Previous(current string) (string, bool)
	Next() (string, bool)
	ResetCursor()

	// Find returns the index of the first entry containing term, starting
	// at from and walking towards older entries if backward is set.
	Find(term string, from int, backward bool) (int, bool)
}

type historyEntry struct {
	entry     string
	timestamp int64
}

// MemoryHistory is a bounded in-memory History. Empty lines and repeats of
// the newest entry are not recorded.
type MemoryHistory struct {
	entries []historyEntry
	max     int
	cursor  int
	pending string
}

func NewMemoryHistory(max int) *MemoryHistory {
	if max <= 0 {
		max = DefaultHistorySize
	}
	return &MemoryHistory{max: max}
}

func (h *MemoryHistory) Push(line string) {
	defer h.ResetCursor()
	if strings.TrimSpace(line) == "" {
		return
	}
	if n := len(h.entries); n > 0 && h.entries[n-1].entry == line {
		return
	}
	h.entries = append(h.entries, historyEntry{
		entry:     line,
		timestamp: time.Now().Unix(),
	})
	if over := len(h.entries) - h.max; over > 0 {
		h.entries = append(h.entries[:0], h.entries[over:]...)
	}
}

func (h *MemoryHistory) Get(i int) string {
	if i < 0 || i >= len(h.entries) {
		return ""
	}
	return h.entries[i].entry
}

// Time returns when entry i was pushed, as Unix seconds.
func (h *MemoryHistory) Time(i int) int64 {
	if i < 0 || i >= len(h.entries) {
		return 0
	}
	return h.entries[i].timestamp
}

func (h *MemoryHistory) Len() int {
	return len(h.entries)
}

func (h *MemoryHistory) Clear() {
	h.entries = nil
	h.ResetCursor()
}

// SetMax changes the size bound, dropping the oldest entries if needed.
func (h *MemoryHistory) SetMax(max int) {
	if max <= 0 {
		return
	}
	h.max = max
	if over := len(h.entries) - max; over > 0 {
		h.entries = append(h.entries[:0], h.entries[over:]...)
	}
	h.ResetCursor()
}

func (h *MemoryHistory) Previous(current string) (string, bool) {
	if h.cursor == 0 {
		return "", false
	}
	if h.cursor == len(h.entries) {
		h.pending = current
	}
	h.cursor--
	return h.entries[h.cursor].entry, true
}

func (h *MemoryHistory) Next() (string, bool) {
	if h.cursor >= len(h.entries) {
		return "", false
	}
	h.cursor++
	if h.cursor == len(h.entries) {
		return h.pending, true
	}
	return h.entries[h.cursor].entry, true
}

func (h *MemoryHistory) ResetCursor() {
	h.cursor = len(h.entries)
	h.pending = ""
}

func (h *MemoryHistory) Find(term string, from int, backward bool) (int, bool) {
	if backward {
		for i := min(from, len(h.entries)-1); i >= 0; i-- {
			if strings.Contains(h.entries[i].entry, term) {
				return i, true
			}
		}
		return -1, false
	}
	for i := max(from, 0); i < len(h.entries); i++ {
		if strings.Contains(h.entries[i].entry, term) {
			return i, true
		}
	}
	return -1, false
}

// History files hold one entry per line. Newlines inside an entry, left by
// a quote continued onto another line, are written as \n and backslashes
// as \\.
var historyEscaper = strings.NewReplacer(`\`, `\\`, "\n", `\n`)

func unescapeHistory(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			sb.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'n':
			sb.WriteByte('\n')
		case '\\':
			sb.WriteByte('\\')
		default:
			sb.WriteByte('\\')
			sb.WriteByte(s[i])
		}
	}
	return sb.String()
}

// LoadFile appends the entries of a history file, one per line.
func (h *MemoryHistory) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		h.Push(unescapeHistory(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("line: read history %s: %w", path, err)
	}
	return nil
}

// SaveFile writes every entry to path, one per line.
func (h *MemoryHistory) SaveFile(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(f)
	for _, entry := range h.entries {
		if _, err := w.WriteString(historyEscaper.Replace(entry.entry) + "\n"); err != nil {
			f.Close()
			return err
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
