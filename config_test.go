package line

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadAndApplyConfig(t *testing.T) {
	dir := t.TempDir()
	histPath := filepath.Join(dir, "history")
	lines := "a\nb\nc\nd\ne\n"
	if err := os.WriteFile(histPath, []byte(lines), 0o600); err != nil {
		t.Fatal(err)
	}

	path := writeConfig(t, fmt.Sprintf(`
editing-mode = "vi"
ignore-eof = 2
history-size = 3
history-file = %q
no-multiline-on-quote = "single, double"
no-prompt-redraw-on-interrupt = true
unknown-key = 1

[bindings.vi-command]
"<C-t>" = "end-of-line"

[bindings.emacs]
"<C-t>" = ""
`, histPath))

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.EditingMode != "vi" || cfg.IgnoreEOF != 2 || cfg.HistorySize != 3 {
		t.Fatalf("decoded %+v", cfg)
	}

	r := New(newFakeConn())
	if err := r.ApplyConfig(cfg); err != nil {
		t.Fatal(err)
	}

	want := Flags{NoPromptRedrawOnInterrupt: true, IgnoreEOF: 2, NoMultilineOnQuote: QuoteSingle | QuoteDouble}
	if r.flags != want {
		t.Errorf("flags %+v, want %+v", r.flags, want)
	}

	e := r.EditMode()
	if e.Mode() != ModeVi {
		t.Fatalf("mode %v, want vi", e.Mode())
	}
	e.Parse(KeyEscape)
	if a, _ := e.Parse(Ctrl('t')); a.Kind != ActionMove || a.Motion != MotionLineEnd {
		t.Errorf("vi C-t gave %v", a)
	}
	e.SetMode(ModeEmacs)
	if _, ok := e.Parse(Ctrl('t')); ok {
		t.Error("emacs C-t still bound")
	}

	h := r.History()
	if h.Len() != 3 || h.Get(0) != "c" {
		t.Fatalf("history has %d entries starting %q, want 3 from c", h.Len(), h.Get(0))
	}
	h.Push("f")
	if err := r.SaveHistory(); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(histPath)
	if err != nil {
		t.Fatal(err)
	}
	if got := string(data); got != "d\ne\nf\n" {
		t.Fatalf("saved history %q", got)
	}
}

func TestConfigFlagsApplyToReads(t *testing.T) {
	conn := newFakeConn()
	r := New(conn)
	if err := r.ApplyConfig(&Config{IgnoreEOF: 1}); err != nil {
		t.Fatal(err)
	}
	var res results
	if err := r.Read(ReadOptions{}, res.done); err != nil {
		t.Fatal(err)
	}
	conn.keys(KeyCtrlD)
	if res.count() != 0 {
		t.Fatal("first EOF ended the read")
	}
	conn.keys(KeyCtrlD, KeyCtrlD)
	if res.count() != 1 {
		t.Fatal("repeated EOFs did not end the read")
	}
}

func TestReadFlagsReplaceConfig(t *testing.T) {
	conn := newFakeConn()
	r := New(conn)
	if err := r.ApplyConfig(&Config{IgnoreEOF: 1}); err != nil {
		t.Fatal(err)
	}
	var res results
	if err := r.Read(ReadOptions{Flags: &Flags{}}, res.done); err != nil {
		t.Fatal(err)
	}
	conn.keys(KeyCtrlD)
	if res.count() != 1 {
		t.Fatal("zero IgnoreEOF did not override the configured value")
	}
}

func TestLoadConfigMissing(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.EditingMode != "" || cfg.Bindings != nil {
		t.Fatalf("config %+v, want empty", cfg)
	}

	if cfg, err := LoadConfig(""); err != nil || cfg == nil {
		t.Fatalf("LoadConfig(\"\") = %v, %v", cfg, err)
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	if _, err := LoadConfig(writeConfig(t, "editing-mode = \n")); err == nil {
		t.Fatal("malformed config loaded")
	}
}

func TestApplyConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"mode", Config{EditingMode: "ed"}},
		{"quote kind", Config{NoMultilineOnQuote: "backtick"}},
		{"keymap", Config{Bindings: map[string]map[string]string{"vi-visual": {"v": "undo"}}}},
		{"function", Config{Bindings: map[string]map[string]string{"emacs": {"<C-t>": "launch-rockets"}}}},
		{"notation", Config{Bindings: map[string]map[string]string{"emacs": {"<Q-t>": "undo"}}}},
	}
	for _, tt := range tests {
		r := New(newFakeConn())
		if err := r.ApplyConfig(&tt.cfg); err == nil {
			t.Errorf("%s: ApplyConfig succeeded", tt.name)
		}
	}
}

func TestParseQuoteKinds(t *testing.T) {
	tests := map[string]QuoteKind{
		"":              QuoteNone,
		"none":          QuoteNone,
		"double":        QuoteDouble,
		"Single":        QuoteSingle,
		"single,double": QuoteSingle | QuoteDouble,
		"both":          QuoteSingle | QuoteDouble,
	}
	for in, want := range tests {
		got, err := parseQuoteKinds(in)
		if err != nil || got != want {
			t.Errorf("parseQuoteKinds(%q) = %v, %v, want %v", in, got, err, want)
		}
	}
}

func TestConfigPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	if got, want := ConfigPath(), filepath.Join(dir, "line", "config.toml"); got != want {
		t.Fatalf("ConfigPath() = %q, want %q", got, want)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip(err)
	}
	if got := expandHome("~/.hist"); got != filepath.Join(home, ".hist") {
		t.Errorf("expandHome(~/.hist) = %q", got)
	}
	if got := expandHome("/tmp/~x"); got != "/tmp/~x" {
		t.Errorf("expandHome(/tmp/~x) = %q", got)
	}
}
