package line

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is the user's editor configuration, read from config.toml:
//
//	editing-mode = "vi"
//	ignore-eof = 2
//	history-size = 1000
//	history-file = "~/.line_history"
//	no-multiline-on-quote = "single"
//
//	[bindings.emacs]
//	"<C-t>" = "transpose-chars"
type Config struct {
	EditingMode               string `toml:"editing-mode"`
	IgnoreEOF                 int    `toml:"ignore-eof"`
	HistorySize               int    `toml:"history-size"`
	HistoryFile               string `toml:"history-file"`
	NoPromptRedrawOnInterrupt bool   `toml:"no-prompt-redraw-on-interrupt"`
	NoMultilineOnQuote        string `toml:"no-multiline-on-quote"`

	// Bindings maps keymap name to key sequence to function name. An empty
	// function name removes the binding.
	Bindings map[string]map[string]string `toml:"bindings"`
}

// ConfigPath returns the default config file path:
// $XDG_CONFIG_HOME/line/config.toml, or ~/.config/line/config.toml.
func ConfigPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "line", "config.toml")
}

// LoadConfig reads the config file at path. A missing file gives an empty
// Config.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("line: config %s: %w", path, err)
	}
	for _, key := range md.Undecoded() {
		debugf("config %s: unknown key %s", path, key)
	}
	return cfg, nil
}

func parseQuoteKinds(s string) (QuoteKind, error) {
	var q QuoteKind
	for _, f := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' }) {
		switch strings.ToLower(f) {
		case "none":
		case "double":
			q |= QuoteDouble
		case "single":
			q |= QuoteSingle
		case "both":
			q |= QuoteDouble | QuoteSingle
		default:
			return 0, fmt.Errorf("unknown quote kind %q", f)
		}
	}
	return q, nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// ApplyConfig sets the editing mode, the default flags, the history size
// and file, and the key bindings from cfg. The history file is loaded into
// the history if it is a MemoryHistory. A read in progress keeps the flags
// it started with.
func (r *Readline) ApplyConfig(cfg *Config) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cfg.EditingMode != "" {
		m, err := ParseMode(cfg.EditingMode)
		if err != nil {
			return err
		}
		r.mode.SetMode(m)
	}

	quotes, err := parseQuoteKinds(cfg.NoMultilineOnQuote)
	if err != nil {
		return fmt.Errorf("line: config no-multiline-on-quote: %w", err)
	}
	r.flags = Flags{
		NoPromptRedrawOnInterrupt: cfg.NoPromptRedrawOnInterrupt,
		IgnoreEOF:                 cfg.IgnoreEOF,
		NoMultilineOnQuote:        quotes,
	}

	// Sorted for a stable order.
	keymaps := make([]string, 0, len(cfg.Bindings))
	for name := range cfg.Bindings {
		keymaps = append(keymaps, name)
	}
	sort.Strings(keymaps)
	for _, name := range keymaps {
		table := cfg.Bindings[name]
		patterns := make([]string, 0, len(table))
		for p := range table {
			patterns = append(patterns, p)
		}
		sort.Strings(patterns)
		for _, pattern := range patterns {
			keys, err := ParseKeys(pattern)
			if err != nil {
				return fmt.Errorf("line: config binding %q: %w", pattern, err)
			}
			if err := r.mode.Bind(name, keys, table[pattern]); err != nil {
				return err
			}
		}
	}

	mh, ok := r.history.(*MemoryHistory)
	if !ok {
		return nil
	}
	if cfg.HistorySize > 0 {
		mh.SetMax(cfg.HistorySize)
	}
	if cfg.HistoryFile != "" {
		r.historyFile = expandHome(cfg.HistoryFile)
		if err := mh.LoadFile(r.historyFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}
