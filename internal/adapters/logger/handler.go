package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/nest/internal/ui/output"
	"go.trai.ch/nest/internal/ui/style"
)

// levelMark is the symbol and color of records at or above level.
type levelMark struct {
	level  slog.Level
	symbol string
	color  lipgloss.Color
}

// levelMarks is ordered from the most to the least severe level.
var levelMarks = []levelMark{
	{level: slog.LevelError, symbol: style.Cross, color: style.Red},
	{level: slog.LevelWarn, symbol: style.Warning, color: style.Yellow},
	{level: slog.LevelInfo, color: style.Slate},
	{level: slog.LevelDebug - 4, symbol: style.Dot, color: style.Iris},
}

func markFor(level slog.Level) levelMark {
	for _, m := range levelMarks {
		if level >= m.level {
			return m
		}
	}
	return levelMarks[len(levelMarks)-1]
}

// PrettyHandler is a slog.Handler writing one colored line per record:
// an optional level symbol, the message and key=value attributes.
type PrettyHandler struct {
	out    *termenv.Output
	level  slog.Leveler
	prefix string // group path of attributes added from now on, "a.b."
	attrs  string // attributes added by WithAttrs, already rendered
}

// NewPrettyHandler creates a new PrettyHandler writing to the provided writer.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}

	return &PrettyHandler{out: output.New(w), level: level}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and outputs the log record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	mark := markFor(r.Level)

	var line strings.Builder
	if mark.symbol != "" {
		line.WriteString(mark.symbol + " ")
	}
	line.WriteString(r.Message)
	line.WriteString(h.attrs)
	r.Attrs(func(attr slog.Attr) bool {
		appendAttr(&line, h.prefix, attr)
		return true
	})

	styled := h.out.String(line.String()).Foreground(termenv.RGBColor(string(mark.color)))
	_, err := h.out.WriteString(styled.String() + "\n")
	return err
}

// WithAttrs returns a new Handler with the given attributes appended.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	var b strings.Builder
	b.WriteString(h.attrs)
	for _, attr := range attrs {
		appendAttr(&b, h.prefix, attr)
	}

	next := *h
	next.attrs = b.String()
	return &next
}

// WithGroup returns a new Handler qualifying later attribute keys with name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	next := *h
	next.prefix = h.prefix + name + "."
	return &next
}

func appendAttr(b *strings.Builder, prefix string, attr slog.Attr) {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return
	}

	if attr.Value.Kind() == slog.KindGroup {
		if attr.Key != "" {
			prefix += attr.Key + "."
		}
		for _, member := range attr.Value.Group() {
			appendAttr(b, prefix, member)
		}
		return
	}

	b.WriteString(" " + prefix + attr.Key + "=" + attr.Value.String())
}
