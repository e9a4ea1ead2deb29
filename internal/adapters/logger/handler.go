package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/brokenpkg/internal/ui/output"
	"go.trai.ch/brokenpkg/internal/ui/style"
)

// levelMark is the icon and color of records at or above min.
type levelMark struct {
	min   slog.Level
	icon  string
	color lipgloss.Color
}

// levelMarks is ordered from the most to the least severe level.
var levelMarks = []levelMark{
	{min: slog.LevelError, icon: style.Cross, color: style.Red},
	{min: slog.LevelWarn, icon: style.Warning, color: style.Yellow},
	{min: slog.LevelInfo, color: style.Slate},
}

var debugMark = levelMark{icon: style.Dot, color: style.Iris}

func markFor(level slog.Level) levelMark {
	for _, m := range levelMarks {
		if level >= m.min {
			return m
		}
	}
	return debugMark
}

// sink serializes writes from a handler and all handlers derived from it.
type sink struct {
	mu  sync.Mutex
	out *termenv.Output
}

// PrettyHandler is a slog.Handler writing one colored line per record.
// Attributes are rendered as key=value pairs after the message.
type PrettyHandler struct {
	sink   *sink
	level  slog.Leveler
	prefix string // group path for attributes added later, ending in "."
	attrs  string // attributes bound through WithAttrs, already rendered
}

// NewPrettyHandler creates a PrettyHandler writing to w, or to stderr when w is nil.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}
	h := &PrettyHandler{
		sink:  &sink{out: output.New(w)},
		level: slog.LevelInfo,
	}
	if opts != nil && opts.Level != nil {
		h.level = opts.Level
	}
	return h
}

// Enabled reports whether level passes the configured minimum.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle writes r as a single line.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	mark := markFor(r.Level)

	var line strings.Builder
	if mark.icon != "" {
		line.WriteString(mark.icon)
		line.WriteByte(' ')
	}
	line.WriteString(r.Message)
	line.WriteString(h.attrs)
	r.Attrs(func(a slog.Attr) bool {
		appendAttr(&line, h.prefix, a)
		return true
	})

	text := h.sink.out.String(line.String()).Foreground(termenv.RGBColor(string(mark.color))).String()

	h.sink.mu.Lock()
	defer h.sink.mu.Unlock()
	_, err := h.sink.out.WriteString(text + "\n")
	return err
}

// WithAttrs returns a handler that renders attrs on every record.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	var b strings.Builder
	b.WriteString(h.attrs)
	for _, a := range attrs {
		appendAttr(&b, h.prefix, a)
	}
	next := *h
	next.attrs = b.String()
	return &next
}

// WithGroup returns a handler that qualifies later attribute keys with name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.prefix = h.prefix + name + "."
	return &next
}

// appendAttr writes " key=value" for a, flattening groups into dotted keys.
func appendAttr(b *strings.Builder, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		inner := prefix
		if a.Key != "" {
			inner += a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			appendAttr(b, inner, ga)
		}
		return
	}

	value := a.Value.String()
	if strings.ContainsAny(value, " \t\n\"=") {
		value = strconv.Quote(value)
	}
	b.WriteByte(' ')
	b.WriteString(prefix)
	b.WriteString(a.Key)
	b.WriteByte('=')
	b.WriteString(value)
}
