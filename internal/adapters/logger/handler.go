package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rsnakamura/theape/internal/ui/output"
	"github.com/rsnakamura/theape/internal/ui/style"
)

// PrettyHandler writes one colored line per record: a level marker, the
// message and then the attributes as key=value pairs in a muted color.
type PrettyHandler struct {
	out    *termenv.Output
	level  slog.Leveler
	attrs  []string // already qualified and formatted
	groups []string
}

// NewPrettyHandler creates a new PrettyHandler writing to the provided writer.
// The level is read on every record, so a *slog.LevelVar can be changed later.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}

	return &PrettyHandler{
		out:   output.New(w),
		level: level,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and outputs the log record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	marker, color := levelStyle(r.Level)

	msg := r.Message
	if marker != "" {
		msg = marker + " " + msg
	}

	var b strings.Builder
	b.WriteString(h.paint(msg, color))

	pairs := cloneStrings(h.attrs)
	r.Attrs(func(attr slog.Attr) bool {
		pairs = appendAttr(pairs, h.groups, attr)
		return true
	})
	if len(pairs) > 0 {
		b.WriteString(" ")
		b.WriteString(h.paint(strings.Join(pairs, " "), style.Slate))
	}
	b.WriteString("\n")

	_, err := h.out.WriteString(b.String())
	return err
}

// WithAttrs returns a new Handler with the given attributes appended.
// They are qualified by the groups open at the time of the call.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = cloneStrings(h.attrs)
	for _, attr := range attrs {
		next.attrs = appendAttr(next.attrs, h.groups, attr)
	}
	return &next
}

// WithGroup returns a new Handler that qualifies later attributes with name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.groups = append(cloneStrings(h.groups), name)
	return &next
}

func (h *PrettyHandler) paint(s string, color lipgloss.Color) string {
	if color == "" {
		return s
	}
	return h.out.String(s).Foreground(h.out.Color(string(color))).String()
}

// levelStyle returns the marker and color of a level. Info is left unstyled.
func levelStyle(level slog.Level) (string, lipgloss.Color) {
	switch {
	case level < slog.LevelInfo:
		return style.Dot, style.Iris
	case level >= slog.LevelError:
		return style.Cross, style.Red
	case level >= slog.LevelWarn:
		return style.Warning, style.Yellow
	default:
		return "", ""
	}
}

// appendAttr formats attr as key=value pairs. Group attributes are flattened
// with dotted keys and empty keys are dropped.
func appendAttr(pairs, groups []string, attr slog.Attr) []string {
	attr.Value = attr.Value.Resolve()

	if attr.Value.Kind() == slog.KindGroup {
		inner := groups
		if attr.Key != "" {
			inner = append(cloneStrings(groups), attr.Key)
		}
		for _, a := range attr.Value.Group() {
			pairs = appendAttr(pairs, inner, a)
		}
		return pairs
	}
	if attr.Key == "" {
		return pairs
	}

	key := attr.Key
	if len(groups) > 0 {
		key = strings.Join(groups, ".") + "." + key
	}
	return append(pairs, key+"="+quoteValue(attr.Value.String()))
}

func quoteValue(v string) string {
	if v == "" || strings.ContainsAny(v, " \t\n\"=") {
		return strconv.Quote(v)
	}
	return v
}

func cloneStrings(s []string) []string {
	return append([]string(nil), s...)
}
