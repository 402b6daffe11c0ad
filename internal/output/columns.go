package output

import (
	"fmt"
	"io"
)

// ColumnsFormatter writes left-justified columns padded to their widest
// value plus a gutter
type ColumnsFormatter struct {
	options *Options
}

// NewColumnsFormatter creates a new columns formatter
func NewColumnsFormatter(opts *Options) *ColumnsFormatter {
	if opts == nil {
		opts = &Options{}
	}
	return &ColumnsFormatter{
		options: opts,
	}
}

// Format writes the header line and one line per row
func (f *ColumnsFormatter) Format(w io.Writer, rows []Record, fields []string) error {
	gutter := f.options.Gutter
	if gutter <= 0 {
		gutter = DefaultGutter
	}

	var header func(string, ...interface{}) string
	if colors := NewColorScheme(w, f.options.NoColor); !colors.Disabled {
		header = colors.Header
	}

	lines := columnLines(rows, fields, gutter, header)
	if f.options.NoHeaders {
		lines = lines[1:]
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
