package output

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// ColorScheme provides color functions for different output elements
type ColorScheme struct {
	// Header colors column headers
	Header func(format string, a ...interface{}) string

	// Key colors field names in key/value listings
	Key func(format string, a ...interface{}) string

	// Success colors accepted answers
	Success func(format string, a ...interface{}) string

	// Error colors failures
	Error func(format string, a ...interface{}) string

	// Disabled indicates if colors are disabled
	Disabled bool
}

// NewColorScheme creates a new color scheme
// Colors are automatically disabled for non-TTY outputs or when noColor is true
func NewColorScheme(w io.Writer, noColor bool) *ColorScheme {
	useColor := !noColor && isTTY(w)

	if !useColor {
		plain := color.New()
		plain.DisableColor()
		return &ColorScheme{
			Header:   plain.Sprintf,
			Key:      plain.Sprintf,
			Success:  plain.Sprintf,
			Error:    plain.Sprintf,
			Disabled: true,
		}
	}

	return &ColorScheme{
		Header:   enabled(color.FgWhite, color.Bold).Sprintf,
		Key:      enabled(color.FgCyan).Sprintf,
		Success:  enabled(color.FgGreen).Sprintf,
		Error:    enabled(color.FgRed, color.Bold).Sprintf,
		Disabled: false,
	}
}

// enabled builds a color that ignores the global NO_COLOR detection, since
// the TTY check has already been made against the actual writer
func enabled(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	c.EnableColor()
	return c
}

// isTTY checks if the writer is a TTY
func isTTY(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return false
}
