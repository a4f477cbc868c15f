package runtime

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/sergev/vispel/lang"
	"github.com/sergev/vispel/log"
	"github.com/sergev/vispel/parser"
)

// Reporter receives every diagnostic a session produces. *log.Diagnostics
// satisfies it.
type Reporter interface {
	Report(err error)
}

type discardReporter struct{}

func (discardReporter) Report(error) {}

// Option configures a Session.
type Option func(*Session)

// WithInput sets the stream input() reads from.
func WithInput(r io.Reader) Option {
	return func(s *Session) { s.in = r }
}

// WithOutput sets the stream print() and chunk results are written to.
func WithOutput(w io.Writer) Option {
	return func(s *Session) { s.out = w }
}

// WithReporter sets where diagnostics go.
func WithReporter(r Reporter) Option {
	return func(s *Session) {
		if r != nil {
			s.report = r
		}
	}
}

// WithLogger sets the logger for interpreter trace records.
func WithLogger(l log.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithMaxDepth bounds nested user function calls.
func WithMaxDepth(n int) Option {
	return func(s *Session) { s.maxDepth = n }
}

// Session owns one interpreter: the global frame with the natives
// installed, the line counter, and the resolution results of every chunk
// run so far. Each chunk goes through lex, parse, resolve and evaluate.
type Session struct {
	in       io.Reader
	out      io.Writer
	report   Reporter
	logger   log.Logger
	maxDepth int

	lexer    *parser.Lexer
	registry *lang.Registry
	global   *lang.Env
	resolver *lang.Resolver
	eval     *lang.Evaluator
}

// NewSession creates a session with the standard library installed. It
// reads from stdin and writes to stdout unless told otherwise.
func NewSession(opts ...Option) (*Session, error) {
	s := &Session{
		in:     os.Stdin,
		out:    os.Stdout,
		report: discardReporter{},
		lexer:  parser.NewLexer(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.out == nil {
		s.out = io.Discard
	}

	reg, err := NewLibrary(s.in, s.out).Registry()
	if err != nil {
		return nil, fmt.Errorf("runtime bootstrap failed: %w", err)
	}
	s.registry = reg
	if err := s.Reset(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reset discards every global binding and restarts line numbering. The
// natives are installed again.
func (s *Session) Reset() error {
	s.lexer.Reset()
	s.global = lang.NewEnv(nil)
	if err := s.registry.Install(s.global); err != nil {
		return fmt.Errorf("install natives: %w", err)
	}
	opts := []lang.Option{
		lang.WithLogger(s.logger),
		lang.WithOutput(s.out),
		lang.WithMaxDepth(s.maxDepth),
	}
	s.resolver = lang.NewResolver(s.global, opts...)
	s.eval = lang.NewEvaluator(s.global, opts...)
	return nil
}

// Globals lists the names bound in the global frame.
func (s *Session) Globals() []string {
	return s.global.Names()
}

// Line is the line number the next chunk starts on.
func (s *Session) Line() int {
	return s.lexer.Line()
}

// Run executes one chunk. Syntax errors drop only the statements they occur
// in. Any resolution error stops the chunk before evaluation. A runtime
// error abandons its own top-level statement only. Every error is reported
// as it is collected; the joined errors are also returned.
func (s *Session) Run(src string) (lang.Value, error) {
	stmts, errs := parser.ParseChunk(s.lexer, src)
	s.reportAll(errs)

	locals, rerrs := s.resolver.Resolve(stmts)
	if len(rerrs) > 0 {
		s.reportAll(rerrs)
		s.logger.Debug("chunk not evaluated", slog.Int("resolve_errors", len(rerrs)))
		return lang.None, errors.Join(append(errs, rerrs...)...)
	}

	s.eval.Bind(locals)
	v, eerrs := s.eval.Interpret(stmts)
	s.reportAll(eerrs)
	return v, errors.Join(append(errs, eerrs...)...)
}

// RunReader reads r to EOF and runs it as one chunk.
func (s *Session) RunReader(r io.Reader) (lang.Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return lang.None, fmt.Errorf("read input: %w", err)
	}
	v, _ := s.Run(string(data))
	return v, nil
}

// RunFile runs the script at path as one chunk. A leading #! line is
// skipped. Only a failure to read the file is returned; language errors go
// to the reporter.
func (s *Session) RunFile(path string) (lang.Value, error) {
	data, err := readFileSkippingShebang(path)
	if err != nil {
		return lang.None, err
	}
	return s.RunReader(bytes.NewReader(data))
}

func (s *Session) reportAll(errs []error) {
	for _, err := range errs {
		s.report.Report(err)
	}
}

func readFileSkippingShebang(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if bytes.HasPrefix(data, []byte("#!")) {
		if idx := bytes.IndexByte(data, '\n'); idx >= 0 {
			// Keep the newline so line numbers match the file.
			return data[idx:], nil
		}
		return []byte{}, nil
	}
	return data, nil
}
