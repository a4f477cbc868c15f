package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

type palette struct {
	key, str, num, time lipgloss.Style
	trace, debug, info  lipgloss.Style
	warn, err           lipgloss.Style
}

func makePalette(r *lipgloss.Renderer) palette {
	color := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}
	return palette{
		key:   color("8"),
		str:   color("6"),
		num:   color("3"),
		time:  color("4"),
		trace: color("5"),
		debug: color("4"),
		info:  color("2"),
		warn:  color("3").Bold(true),
		err:   color("1").Bold(true),
	}
}

// prettyTextHandler writes key=value records, colored when the output is a
// terminal. Colors are chosen by a lipgloss renderer bound to the writer, so
// redirected output stays plain.
type prettyTextHandler struct {
	opts       slog.HandlerOptions
	formatTime FormatTime
	colors     palette
	mu         *sync.Mutex
	w          io.Writer
	prefix     string // pre-rendered attrs from WithAttrs
	groups     []string
}

func newPrettyTextHandler(w io.Writer, opts *slog.HandlerOptions, formatTime FormatTime) *prettyTextHandler {
	return &prettyTextHandler{
		opts:       *opts,
		formatTime: formatTime,
		colors:     makePalette(lipgloss.NewRenderer(w)),
		mu:         &sync.Mutex{},
		w:          w,
	}
}

func (h *prettyTextHandler) Enabled(_ context.Context, level slog.Level) bool {
	threshold := slog.LevelInfo
	if h.opts.Level != nil {
		threshold = h.opts.Level.Level()
	}
	return level >= threshold
}

func (h *prettyTextHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	if !r.Time.IsZero() && h.formatTime != nil {
		if ts := h.formatTime(r.Time); ts != "" {
			buf.WriteString(h.colors.time.Render(ts))
		}
	}
	h.sep(buf)
	buf.WriteString(h.levelStyle(r.Level).Render(fmt.Sprintf("%-5s", strings.ToUpper(Level(r.Level).String()))))

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			h.sep(buf)
			buf.WriteString(h.colors.key.Render(fmt.Sprintf("%s:%d", src.File, src.Line)))
		}
	}
	h.sep(buf)
	buf.WriteString(r.Message)

	if h.prefix != "" {
		buf.WriteByte(' ')
		buf.WriteString(h.prefix)
	}
	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(buf, h.groups, a)
		return true
	})
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(buf.Bytes())
	return err
}

func (h *prettyTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	buf := new(bytes.Buffer)
	buf.WriteString(h.prefix)
	for _, a := range attrs {
		h.writeAttr(buf, h.groups, a)
	}
	clone := *h
	clone.prefix = strings.TrimLeft(buf.String(), " ")
	return &clone
}

func (h *prettyTextHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.groups = append(h.groups[:len(h.groups):len(h.groups)], name)
	return &clone
}

func (h *prettyTextHandler) sep(buf *bytes.Buffer) {
	if buf.Len() > 0 {
		buf.WriteByte(' ')
	}
}

func (h *prettyTextHandler) levelStyle(level slog.Level) lipgloss.Style {
	switch {
	case level >= slog.LevelError:
		return h.colors.err
	case level >= slog.LevelWarn:
		return h.colors.warn
	case level >= slog.LevelInfo:
		return h.colors.info
	case level >= slog.LevelDebug:
		return h.colors.debug
	default:
		return h.colors.trace
	}
}

func (h *prettyTextHandler) writeAttr(buf *bytes.Buffer, groups []string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		sub := groups
		if a.Key != "" {
			sub = append(groups[:len(groups):len(groups)], a.Key)
		}
		for _, ga := range a.Value.Group() {
			h.writeAttr(buf, sub, ga)
		}
		return
	}
	key := a.Key
	if len(groups) > 0 {
		key = strings.Join(groups, ".") + "." + key
	}
	buf.WriteByte(' ')
	buf.WriteString(h.colors.key.Render(key + "="))
	h.writeValue(buf, a.Value)
}

func (h *prettyTextHandler) writeValue(buf *bytes.Buffer, v slog.Value) {
	switch v.Kind() {
	case slog.KindInt64:
		buf.WriteString(h.colors.num.Render(strconv.FormatInt(v.Int64(), 10)))
	case slog.KindUint64:
		buf.WriteString(h.colors.num.Render(strconv.FormatUint(v.Uint64(), 10)))
	case slog.KindFloat64:
		buf.WriteString(h.colors.num.Render(strconv.FormatFloat(v.Float64(), 'g', -1, 64)))
	case slog.KindBool:
		buf.WriteString(h.colors.num.Render(strconv.FormatBool(v.Bool())))
	case slog.KindDuration:
		buf.WriteString(h.colors.num.Render(v.Duration().String()))
	case slog.KindTime:
		buf.WriteString(h.colors.time.Render(v.Time().Format(DefaultTimeLayout)))
	default:
		s := v.String()
		if strings.ContainsAny(s, " \t\n\"=") {
			s = strconv.Quote(s)
		}
		buf.WriteString(h.colors.str.Render(s))
	}
}
