package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Diagnostics shows user-facing error reports. Every report is written to
// the terminal stream, red when that stream is a terminal and color is
// enabled, and appended uncolored to an optional log file.
type Diagnostics struct {
	mu     sync.Mutex
	out    io.Writer
	file   io.WriteCloser
	styled bool
	style  lipgloss.Style
	logger Logger
	count  int
}

// DiagOption configures a [Diagnostics].
type DiagOption func(*Diagnostics) error

// WithDiagFile appends every report to the file at path, creating parent
// directories as needed. An empty path disables the file.
func WithDiagFile(path string) DiagOption {
	return func(d *Diagnostics) error {
		if path == "" {
			return nil
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("create diagnostics directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open diagnostics file: %w", err)
		}
		d.file = f
		return nil
	}
}

// WithDiagWriter appends every report to w. The writer is closed with the
// sink when it implements io.Closer.
func WithDiagWriter(w io.Writer) DiagOption {
	return func(d *Diagnostics) error {
		if wc, ok := w.(io.WriteCloser); ok {
			d.file = wc
		} else {
			d.file = nopCloser{w}
		}
		return nil
	}
}

// WithDiagColor enables red output when the stream is a terminal.
func WithDiagColor(enable bool) DiagOption {
	return func(d *Diagnostics) error {
		d.styled = enable && IsTerminal(d.out)
		return nil
	}
}

// WithDiagLogger mirrors every report as a debug record.
func WithDiagLogger(l Logger) DiagOption {
	return func(d *Diagnostics) error {
		d.logger = l
		return nil
	}
}

// NewDiagnostics creates a sink writing to out.
func NewDiagnostics(out io.Writer, opts ...DiagOption) (*Diagnostics, error) {
	if out == nil {
		out = io.Discard
	}
	d := &Diagnostics{
		out:   out,
		style: lipgloss.NewRenderer(out).NewStyle().Foreground(lipgloss.Color("1")),
	}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			d.Close()
			return nil, err
		}
	}
	return d, nil
}

// Report shows err. Nil errors are ignored.
func (d *Diagnostics) Report(err error) {
	if err == nil {
		return
	}
	msg := err.Error()

	d.mu.Lock()
	defer d.mu.Unlock()

	d.count++
	line := msg
	if d.styled {
		line = d.style.Render(msg)
	}
	fmt.Fprintln(d.out, line)
	if d.file != nil {
		fmt.Fprintln(d.file, msg)
	}
	d.logger.Debug("diagnostic", slog.Any("error", err))
}

// Count is the number of reports so far.
func (d *Diagnostics) Count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.count
}

// Close releases the log file.
func (d *Diagnostics) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.file == nil {
		return nil
	}
	err := d.file.Close()
	d.file = nil
	return err
}

// IsTerminal reports whether w is a terminal or Cygwin pseudo-terminal.
func IsTerminal(w any) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
