package output

import (
	"io"
	"strings"

	"github.com/aryankumar/toolbase/internal/util"
)

// Format represents the output format type
type Format string

const (
	// FormatColumns outputs space-padded, left-justified columns
	FormatColumns Format = "columns"
	// FormatTable outputs data in a table format (kubectl-style)
	FormatTable Format = "table"
	// FormatJSON outputs data in JSON format
	FormatJSON Format = "json"
	// FormatYAML outputs data in YAML format
	FormatYAML Format = "yaml"
)

// DefaultGutter is the number of spaces added to every column width
const DefaultGutter = 5

// ParseFormat returns the format named by s. Empty selects columns.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatColumns, nil
	case FormatColumns, FormatTable, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", util.NewValidationError("output", s, "want columns, table, json or yaml")
	}
}

// Formatter renders records that have already been validated and ordered
type Formatter interface {
	// Format writes rows to w, one per record, showing fields in order
	Format(w io.Writer, rows []Record, fields []string) error
}

// Option is a functional option for configuring formatters
type Option func(*Options)

// Options holds configuration for formatters
type Options struct {
	// NoColor disables color output
	NoColor bool

	// NoHeaders disables the header line
	NoHeaders bool

	// Gutter is the padding added to each column width. Zero means DefaultGutter.
	Gutter int
}

// WithNoColor disables color output
func WithNoColor(noColor bool) Option {
	return func(o *Options) {
		o.NoColor = noColor
	}
}

// WithNoHeaders disables the header line
func WithNoHeaders(noHeaders bool) Option {
	return func(o *Options) {
		o.NoHeaders = noHeaders
	}
}

// WithGutter sets the column padding
func WithGutter(gutter int) Option {
	return func(o *Options) {
		o.Gutter = gutter
	}
}

// NewFormatter creates a new formatter based on the specified format
func NewFormatter(format Format, opts ...Option) Formatter {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}

	switch format {
	case FormatJSON:
		return NewJSONFormatter(options)
	case FormatYAML:
		return NewYAMLFormatter(options)
	case FormatTable:
		return NewTableFormatter(options)
	case FormatColumns:
		fallthrough
	default:
		return NewColumnsFormatter(options)
	}
}
