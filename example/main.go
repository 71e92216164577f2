package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alimpfard/line/v2"
	"github.com/alimpfard/line/v2/term"
)

var commands = []string{"exit", "echo", "history", "password", "vi", "emacs"}

func main() {
	t, err := term.Open()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer t.Close()

	rl := line.New(t)
	cfg, err := line.LoadConfig(line.ConfigPath())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	} else if err := rl.ApplyConfig(cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	defer func() {
		if err := rl.SaveHistory(); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}()

	complete := func(op *line.CompleteOperation) {
		// Only the command word is completed.
		if before := []rune(op.Buffer)[:op.Cursor]; strings.ContainsRune(string(before), ' ') {
			return
		}
		for _, c := range commands {
			if strings.HasPrefix(c, op.Word()) {
				op.Add(c)
			}
		}
	}

	// Every x gets painted blue while the cursor moves around.
	highlight := func(v line.CursorView) {
		tx := v.Transaction()
		for i, r := range []rune(v.Line()) {
			if r == 'x' {
				tx.Colorize(i, 34)
			}
		}
		v.Run(tx)
	}

	ctx := context.Background()
	for {
		input, err := rl.ReadLine(ctx, line.ReadOptions{
			Prompt:         line.NewPrompt("\x1b[1mline\x1b[0m> "),
			Completers:     []line.Completer{complete},
			CursorListener: highlight,
			Flags:          &line.Flags{IgnoreEOF: 1},
		})
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return
		}

		cmd, arg, _ := strings.Cut(input, " ")
		switch cmd {
		case "exit":
			return
		case "echo":
			fmt.Println(arg)
		case "history":
			h := rl.History()
			for i := range h.Len() {
				fmt.Printf("%4d  %s\n", i+1, h.Get(i))
			}
		case "password":
			secret, err := rl.ReadLine(ctx, line.ReadOptions{
				Prompt: line.NewMaskedPrompt("password: ", '*'),
			})
			if err != nil {
				return
			}
			fmt.Printf("%d characters\n", len([]rune(secret)))
		case "vi":
			rl.EditMode().SetMode(line.ModeVi)
		case "emacs":
			rl.EditMode().SetMode(line.ModeEmacs)
		default:
			fmt.Printf("read %q\n", input)
		}
	}
}
