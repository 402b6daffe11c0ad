// Package logging configures the slog loggers shared by toolbase components.
//
// Interactive tools talk to their user through the logger: prompts are
// rendered at info, failures at warning or error, and accumulated error
// reports at LevelVerbose. The console handler prints those records as plain
// lines so they read like terminal output rather than log records.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// LevelVerbose sits between debug and info. Error-registry reports are
// emitted at this level.
const LevelVerbose = slog.Level(-2)

// Log formats accepted by Setup
const (
	FormatConsole = "console"
	FormatText    = "text"
	FormatJSON    = "json"
)

// Options holds logger settings
type Options struct {
	// Verbose lowers the level to debug
	Verbose bool

	// NoColor disables colored console prefixes
	NoColor bool

	// Format is one of console, text or json. Empty means console.
	Format string

	// Writer receives log output. Defaults to os.Stderr.
	Writer io.Writer
}

// New builds a logger from the options without touching the default logger
func New(opts Options) *slog.Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}

	handlerOpts := &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: replaceLevelName,
	}

	var handler slog.Handler
	switch strings.ToLower(opts.Format) {
	case FormatJSON:
		handler = slog.NewJSONHandler(w, handlerOpts)
	case FormatText:
		handler = slog.NewTextHandler(w, handlerOpts)
	default:
		handler = NewConsoleHandler(w, &ConsoleOptions{
			Level:   level,
			NoColor: opts.NoColor,
		})
	}

	return slog.New(handler)
}

// Setup builds a logger and installs it as the slog default
func Setup(opts Options) *slog.Logger {
	logger := New(opts)
	slog.SetDefault(logger)
	return logger
}

// LevelName returns the display name of a level, including LevelVerbose
func LevelName(level slog.Level) string {
	if level == LevelVerbose {
		return "VERBOSE"
	}
	return level.String()
}

func replaceLevelName(groups []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey || len(groups) != 0 {
		return a
	}
	if level, ok := a.Value.Any().(slog.Level); ok {
		a.Value = slog.StringValue(LevelName(level))
	}
	return a
}
