package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// ConsoleOptions configures a ConsoleHandler
type ConsoleOptions struct {
	// Level is the minimum level printed. Defaults to info.
	Level slog.Leveler

	// NoColor disables colored prefixes even on a terminal
	NoColor bool
}

// ConsoleHandler writes each record as a single human-readable line.
// Info records carry no prefix; other levels are prefixed with their name.
// Attributes follow the message as key=value pairs.
type ConsoleHandler struct {
	mu     *sync.Mutex
	w      io.Writer
	level  slog.Leveler
	color  bool
	attrs  []slog.Attr
	prefix string
}

// NewConsoleHandler creates a console handler writing to w
func NewConsoleHandler(w io.Writer, opts *ConsoleOptions) *ConsoleHandler {
	if opts == nil {
		opts = &ConsoleOptions{}
	}
	level := opts.Level
	if level == nil {
		level = slog.LevelInfo
	}

	return &ConsoleHandler{
		mu:    &sync.Mutex{},
		w:     w,
		level: level,
		color: !opts.NoColor && isTTY(w),
	}
}

// Enabled implements slog.Handler
func (h *ConsoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle implements slog.Handler
func (h *ConsoleHandler) Handle(_ context.Context, r slog.Record) error {
	var sb strings.Builder

	if p := h.levelPrefix(r.Level); p != "" {
		sb.WriteString(p)
		sb.WriteString(" ")
	}
	sb.WriteString(r.Message)

	for _, a := range h.attrs {
		writeAttr(&sb, "", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&sb, h.prefix, a)
		return true
	})
	sb.WriteString("\n")

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, sb.String())
	return err
}

// WithAttrs implements slog.Handler
func (h *ConsoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h2 := *h
	h2.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	h2.attrs = append(h2.attrs, h.attrs...)
	for _, a := range attrs {
		a.Key = h.prefix + a.Key
		h2.attrs = append(h2.attrs, a)
	}
	return &h2
}

// WithGroup implements slog.Handler
func (h *ConsoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	h2.prefix = h.prefix + name + "."
	return &h2
}

func (h *ConsoleHandler) levelPrefix(level slog.Level) string {
	var attr color.Attribute
	switch {
	case level >= slog.LevelError:
		attr = color.FgRed
	case level >= slog.LevelWarn:
		attr = color.FgYellow
	case level >= slog.LevelInfo:
		return ""
	default:
		attr = color.FgBlue
	}

	label := LevelName(level) + ":"
	if !h.color {
		return label
	}
	c := color.New(attr, color.Bold)
	c.EnableColor()
	return c.Sprint(label)
}

func writeAttr(sb *strings.Builder, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			writeAttr(sb, prefix+a.Key+".", ga)
		}
		return
	}
	fmt.Fprintf(sb, " %s%s=%v", prefix, a.Key, a.Value.Any())
}

func isTTY(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return false
}
