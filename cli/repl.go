package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/sergev/vispel/log"
	"github.com/sergev/vispel/parser"
	"github.com/sergev/vispel/runtime"
)

const (
	prompt         = "vispel> "
	continuePrompt = ".... "
)

// repl accumulates input lines until they form a complete chunk, then runs
// the chunk in the session.
type repl struct {
	sess *runtime.Session
	out  io.Writer
	buf  strings.Builder
}

func (r *repl) prompt() string {
	if r.buf.Len() > 0 {
		return continuePrompt
	}
	return prompt
}

// abort drops a partially entered chunk.
func (r *repl) abort() {
	r.buf.Reset()
}

// step consumes one input line. It returns the text to record in history,
// if any, and whether the user asked to leave.
func (r *repl) step(line string) (entry string, quit bool) {
	if r.buf.Len() == 0 {
		if cmd, ok := strings.CutPrefix(strings.TrimSpace(line), ":"); ok {
			return ":" + cmd, r.command(strings.TrimSpace(cmd))
		}
	}

	r.buf.WriteString(line)
	r.buf.WriteByte('\n')
	src := r.buf.String()
	if parser.Incomplete(src) {
		return "", false
	}
	r.buf.Reset()
	r.sess.Run(src)
	return strings.TrimSpace(src), false
}

func (r *repl) command(name string) bool {
	switch name {
	case "quit", "q":
		return true
	case "reset":
		if err := r.sess.Reset(); err != nil {
			fmt.Fprintln(r.out, err)
		}
	case "globals":
		fmt.Fprintln(r.out, strings.Join(r.sess.Globals(), " "))
	case "help":
		fmt.Fprintln(r.out, "commands: :globals :reset :quit")
	default:
		fmt.Fprintf(r.out, "unknown command :%s (try :help)\n", name)
	}
	return false
}

// runInteractive drives the session from a line editor until end of input.
func runInteractive(ctx context.Context, sess *runtime.Session, history string, out io.Writer) error {
	state := liner.NewLiner()
	defer state.Close()
	state.SetCtrlCAborts(true)
	state.SetWordCompleter(wordCompleter(func() []string {
		return candidates(sess)
	}))

	loadHistory(state, history)
	defer saveHistory(state, history)

	r := &repl{sess: sess, out: out}
	for ctx.Err() == nil {
		line, err := state.Prompt(r.prompt())
		if err != nil {
			switch {
			case errors.Is(err, liner.ErrPromptAborted):
				fmt.Fprintln(out)
				r.abort()
				continue
			case errors.Is(err, io.EOF):
				fmt.Fprintln(out)
				return nil
			default:
				return fmt.Errorf("read line: %w", err)
			}
		}
		entry, quit := r.step(line)
		if entry != "" {
			state.AppendHistory(entry)
		}
		if quit {
			return nil
		}
	}
	return nil
}

func loadHistory(state *liner.State, path string) {
	if path == "" {
		return
	}
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()
	if _, err := state.ReadHistory(f); err != nil {
		log.Warn("read history", slog.String("path", path), slog.Any("error", err))
	}
}

func saveHistory(state *liner.State, path string) {
	if path == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), defaultDirMode); err != nil {
		log.Warn("save history", slog.String("path", path), slog.Any("error", err))
		return
	}
	f, err := os.Create(path)
	if err != nil {
		log.Warn("save history", slog.String("path", path), slog.Any("error", err))
		return
	}
	defer f.Close()
	if _, err := state.WriteHistory(f); err != nil {
		log.Warn("save history", slog.String("path", path), slog.Any("error", err))
	}
}
