package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/sergev/vispel/runtime"
)

type collector struct {
	msgs []string
}

func (c *collector) Report(err error) { c.msgs = append(c.msgs, err.Error()) }

func newTestREPL(t *testing.T) (*repl, *bytes.Buffer, *collector) {
	t.Helper()
	var out bytes.Buffer
	diags := &collector{}
	sess, err := runtime.NewSession(
		runtime.WithInput(strings.NewReader("")),
		runtime.WithOutput(&out),
		runtime.WithReporter(diags),
	)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return &repl{sess: sess, out: &out}, &out, diags
}

func TestREPLContinuation(t *testing.T) {
	r, out, diags := newTestREPL(t)

	lines := []struct {
		in     string
		prompt string
		entry  string
	}{
		{"function twice(n) {", continuePrompt, ""},
		{"  return n * 2;", continuePrompt, ""},
		{"}", prompt, "function twice(n) {\n  return n * 2;\n}"},
		{"print(twice(", continuePrompt, ""},
		{"21));", prompt, "print(twice(\n21));"},
		{`var s = "open`, continuePrompt, ""},
		{`closed";`, prompt, "var s = \"open\nclosed\";"},
	}
	for _, l := range lines {
		entry, quit := r.step(l.in)
		if quit {
			t.Fatalf("step(%q) quit", l.in)
		}
		if entry != l.entry {
			t.Fatalf("step(%q) entry = %q, want %q", l.in, entry, l.entry)
		}
		if got := r.prompt(); got != l.prompt {
			t.Fatalf("after %q prompt = %q, want %q", l.in, got, l.prompt)
		}
	}
	if out.String() != "42\n" {
		t.Fatalf("output = %q, want %q", out.String(), "42\n")
	}
	if len(diags.msgs) != 0 {
		t.Fatalf("diagnostics: %v", diags.msgs)
	}
}

func TestREPLAbort(t *testing.T) {
	r, out, _ := newTestREPL(t)
	r.step("var x = (1 +")
	if r.prompt() != continuePrompt {
		t.Fatalf("expected a pending chunk")
	}
	r.abort()
	if r.prompt() != prompt {
		t.Fatalf("abort left input pending")
	}
	r.step("1 + 1;")
	if out.String() != "2\n" {
		t.Fatalf("output = %q", out.String())
	}
}

func TestREPLErrorsAreReported(t *testing.T) {
	r, out, diags := newTestREPL(t)
	r.step(`assert 1 == 2; print "still";`)
	r.step(`nope;`)
	if out.String() != "still\n" {
		t.Fatalf("output = %q", out.String())
	}
	want := []string{"assert failed", "var `nope` not declared"}
	if diff := cmp.Diff(want, diags.msgs); diff != "" {
		t.Fatalf("diagnostics mismatch (-want +got):\n%s", diff)
	}
}

func TestREPLCommands(t *testing.T) {
	r, out, _ := newTestREPL(t)
	r.step("var answer = 42;")

	out.Reset()
	if _, quit := r.step(":globals"); quit {
		t.Fatalf(":globals quit")
	}
	if !strings.Contains(out.String(), "answer") || !strings.Contains(out.String(), "print") {
		t.Fatalf(":globals output = %q", out.String())
	}

	r.step(":reset")
	out.Reset()
	r.step(":globals")
	if strings.Contains(out.String(), "answer") {
		t.Fatalf("answer survived :reset: %q", out.String())
	}

	out.Reset()
	r.step(":bogus")
	if !strings.Contains(out.String(), "unknown command :bogus") {
		t.Fatalf(":bogus output = %q", out.String())
	}

	if entry, quit := r.step(" :quit "); !quit || entry != ":quit" {
		t.Fatalf(":quit = %q, %v", entry, quit)
	}
}

func TestCLIRunFile(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "prog.vp")
	src := "var l = list(1, 2);\nappend(l, 3);\nprint(l);\nget(l, 5);\nprint \"done\";\n"
	if err := os.WriteFile(script, []byte(src), 0o600); err != nil {
		t.Fatalf("write script: %v", err)
	}
	diagFile := filepath.Join(dir, "logs", "diag.log")

	var stdout, stderr bytes.Buffer
	c := &CLI{
		File:     script,
		DiagFile: diagFile,
		Color:    true,
		MaxDepth: 100,
		stdin:    strings.NewReader(""),
		stdout:   &stdout,
		stderr:   &stderr,
	}
	if err := c.Run(t.Context()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stdout.String() != "[1, 2, 3]\ndone\n" {
		t.Fatalf("stdout = %q", stdout.String())
	}
	const msg = "list index out of range: 5 for list length 3\n"
	if stderr.String() != msg {
		t.Fatalf("stderr = %q, want %q", stderr.String(), msg)
	}
	logged, err := os.ReadFile(diagFile)
	if err != nil {
		t.Fatalf("read diagnostics file: %v", err)
	}
	if string(logged) != msg {
		t.Fatalf("diagnostics file = %q, want %q", logged, msg)
	}

	c.File = filepath.Join(dir, "missing.vp")
	if err := c.Run(t.Context()); err == nil {
		t.Fatalf("Run of a missing script succeeded")
	}
}

func TestCLIRunStdin(t *testing.T) {
	var stdout, stderr bytes.Buffer
	c := &CLI{
		stdin:  strings.NewReader("var x = 6;\nx * 7;\n"),
		stdout: &stdout,
		stderr: &stderr,
	}
	if err := c.Run(t.Context()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stdout.String() != "42\n" || stderr.Len() != 0 {
		t.Fatalf("stdout = %q, stderr = %q", stdout.String(), stderr.String())
	}
}
