package runtime

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sergev/vispel/lang"
	"github.com/sergev/vispel/parser"
)

func TestSessionStatementIsolation(t *testing.T) {
	s, out, diags := newTestSession(t, "")
	_, err := s.Run(`assert false; print "ok";`)
	if !errors.Is(err, lang.ErrAssertion) {
		t.Fatalf("Run error = %v, want an assertion failure", err)
	}
	if out.String() != "ok\n" {
		t.Fatalf("output = %q, want %q", out.String(), "ok\n")
	}
	if diff := cmp.Diff([]string{"assert failed"}, diags.messages()); diff != "" {
		t.Fatalf("diagnostics mismatch (-want +got):\n%s", diff)
	}
}

func TestSessionSyntaxErrorDropsStatement(t *testing.T) {
	s, out, diags := newTestSession(t, "")
	s.Run("var x = 1 +;\nprint \"after\";")
	if out.String() != "after\n" {
		t.Fatalf("output = %q, want %q", out.String(), "after\n")
	}
	if diff := cmp.Diff([]string{"[1:12] expected expression, found `;`"}, diags.messages()); diff != "" {
		t.Fatalf("diagnostics mismatch (-want +got):\n%s", diff)
	}
}

func TestSessionResolveErrorSkipsChunk(t *testing.T) {
	s, out, diags := newTestSession(t, "")
	_, err := s.Run(`print "before"; undefined; other;`)
	var rerr *lang.ResolveError
	if !errors.As(err, &rerr) {
		t.Fatalf("Run error = %v, want a resolve error", err)
	}
	if out.String() != "" {
		t.Fatalf("chunk ran despite resolve errors: %q", out.String())
	}
	want := []string{"var `undefined` not declared", "var `other` not declared"}
	if diff := cmp.Diff(want, diags.messages()); diff != "" {
		t.Fatalf("diagnostics mismatch (-want +got):\n%s", diff)
	}

	if _, err := s.Run(`print "next";`); err != nil {
		t.Fatalf("next chunk: %v", err)
	}
	if out.String() != "next\n" {
		t.Fatalf("output = %q", out.String())
	}
}

func TestSessionUnknownCharacterIsTolerated(t *testing.T) {
	s, out, diags := newTestSession(t, "")
	s.Run("@ print(1);\nprint(2);")
	if out.String() != "2\n" {
		t.Fatalf("output = %q, want %q", out.String(), "2\n")
	}
	if len(diags.errs) == 0 || !strings.Contains(diags.errs[0].Error(), "unexpected character '@'") {
		t.Fatalf("diagnostics = %v, want the unknown byte reported first", diags.messages())
	}
}

func TestSessionChunksShareState(t *testing.T) {
	s, out, _ := newTestSession(t, "")
	mustRun(t, s, `
function counter() {
  var n = 0;
  function next() { n = n + 1; return n; }
  return next;
}
var c = counter();`)
	mustRun(t, s, `c(); c();`)
	v := mustRun(t, s, `c();`)
	if v.Int() != 3 {
		t.Fatalf("c() = %v, want 3", v)
	}
	if out.String() != "2\n3\n" {
		t.Fatalf("chunk results = %q, want %q", out.String(), "2\n3\n")
	}
	if !slices.Contains(s.Globals(), "counter") || !slices.Contains(s.Globals(), "print") {
		t.Fatalf("Globals() = %v", s.Globals())
	}
}

func TestSessionLineNumbersContinue(t *testing.T) {
	s, _, diags := newTestSession(t, "")
	s.Run("var a = 1;\nvar b = 2;\n")
	if got := s.Line(); got != 3 {
		t.Fatalf("Line() = %d, want 3", got)
	}
	s.Run("var = 3;")
	var perr *parser.Error
	if len(diags.errs) != 1 || !errors.As(diags.errs[0], &perr) || perr.Pos.Line != 3 {
		t.Fatalf("diagnostics = %v, want a syntax error on line 3", diags.messages())
	}
}

func TestSessionReset(t *testing.T) {
	s, _, _ := newTestSession(t, "")
	mustRun(t, s, "var x = 1;\n")
	if err := s.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if slices.Contains(s.Globals(), "x") {
		t.Fatalf("x survived Reset")
	}
	if !slices.Contains(s.Globals(), "length") {
		t.Fatalf("natives missing after Reset: %v", s.Globals())
	}
	if s.Line() != 1 {
		t.Fatalf("Line() = %d after Reset", s.Line())
	}
	mustRun(t, s, "var x = 2;")
}

func TestSessionProgram(t *testing.T) {
	s, out, _ := newTestSession(t, "")
	mustRun(t, s, `
// Collect the primes below 30.
function isPrime(n) {
  if (n < 2) return false;
  var d = 2;
  while (d * d <= n) {
    if (n - n / d * d == 0) return false;
    d = d + 1;
  }
  return true;
}
var primes = list();
var i = 0;
while (i < 30) {
  if (isPrime(i)) append(primes, i);
  i = i + 1;
}
print(primes);
length(primes);`)
	want := "[2, 3, 5, 7, 11, 13, 17, 19, 23, 29]\n10\n"
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestSessionArity(t *testing.T) {
	s, out, diags := newTestSession(t, "")
	_, err := s.Run(`function f(a, b) { print "body"; } f(1);`)
	if !errors.Is(err, lang.ErrArity) {
		t.Fatalf("Run error = %v, want an arity error", err)
	}
	if out.String() != "" {
		t.Fatalf("body ran: %q", out.String())
	}
	if len(diags.errs) != 1 {
		t.Fatalf("diagnostics = %v", diags.messages())
	}
}

func mustRun(t *testing.T, s *Session, src string) lang.Value {
	t.Helper()
	v, err := s.Run(src)
	if err != nil {
		t.Fatalf("Run(%q): %v", src, err)
	}
	return v
}
