package output

import (
	"io"

	"github.com/olekukonko/tablewriter"
)

// TableFormatter formats output as a table (kubectl-style)
type TableFormatter struct {
	options *Options
}

// NewTableFormatter creates a new table formatter
func NewTableFormatter(opts *Options) *TableFormatter {
	if opts == nil {
		opts = &Options{}
	}
	return &TableFormatter{
		options: opts,
	}
}

// Format writes rows as a borderless table with upper-cased headers
func (f *TableFormatter) Format(w io.Writer, rows []Record, fields []string) error {
	table := f.createTable(w)
	colors := NewColorScheme(w, f.options.NoColor)

	if !f.options.NoHeaders {
		headers := make([]string, len(fields))
		for i, field := range fields {
			headers[i] = field
			if !colors.Disabled {
				headers[i] = colors.Header("%s", field)
			}
		}
		table.SetHeader(headers)
	}

	for _, row := range rows {
		cells := make([]string, len(fields))
		for i, field := range fields {
			cells[i] = valueString(row[field])
		}
		table.Append(cells)
	}

	table.Render()
	return nil
}

// createTable creates a new table with kubectl-style configuration
func (f *TableFormatter) createTable(w io.Writer) *tablewriter.Table {
	table := tablewriter.NewWriter(w)

	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	table.SetNoWhiteSpace(true)

	return table
}
