package output

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/aryankumar/toolbase/internal/util"
	"github.com/mattn/go-runewidth"
)

// Record is a single row of named values
type Record map[string]interface{}

// lookup returns the value of field in the i-th record or a FieldError
func (r Record) lookup(i int, field string) (interface{}, error) {
	v, ok := r[field]
	if !ok {
		return nil, &util.FieldError{Field: field, Index: i}
	}
	return v, nil
}

// Order validates records and returns them grouped by groupField and sorted
// by uniqueField within each group. Groups are ordered by the text of their
// key. The input slice is not modified.
func Order(records []Record, fields []string, uniqueField, groupField string) ([]Record, error) {
	if len(fields) == 0 {
		return nil, &util.ValidationError{
			Field:   "fields",
			Message: "at least one field is required",
			Err:     util.ErrInvalidConfig,
		}
	}

	type keyed struct {
		rec    Record
		group  string
		unique interface{}
	}

	rows := make([]keyed, 0, len(records))
	for i, rec := range records {
		for _, field := range fields {
			if _, err := rec.lookup(i, field); err != nil {
				return nil, err
			}
		}
		g, err := rec.lookup(i, groupField)
		if err != nil {
			return nil, err
		}
		u, err := rec.lookup(i, uniqueField)
		if err != nil {
			return nil, err
		}
		rows = append(rows, keyed{rec: rec, group: valueString(g), unique: u})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].group != rows[j].group {
			return rows[i].group < rows[j].group
		}
		return compareValues(rows[i].unique, rows[j].unique) < 0
	})

	ordered := make([]Record, len(rows))
	for i, row := range rows {
		ordered[i] = row.rec
	}
	return ordered, nil
}

// FormatDictList returns the header line followed by one line per record.
// Each cell is left-justified to its column width plus DefaultGutter and
// cells are joined by a single space.
func FormatDictList(records []Record, fields []string, uniqueField, groupField string) ([]string, error) {
	ordered, err := Order(records, fields, uniqueField, groupField)
	if err != nil {
		return nil, err
	}
	return columnLines(ordered, fields, DefaultGutter, nil), nil
}

// columnLines renders already ordered rows. header, when set, decorates the
// padded header cells.
func columnLines(rows []Record, fields []string, gutter int, header func(string, ...interface{}) string) []string {
	widths := ColumnWidths(rows, fields)

	lines := make([]string, 0, len(rows)+1)

	cells := make([]string, len(fields))
	for i, field := range fields {
		cells[i] = runewidth.FillRight(field, widths[i]+gutter)
		if header != nil {
			cells[i] = header("%s", cells[i])
		}
	}
	lines = append(lines, strings.Join(cells, " "))

	for _, row := range rows {
		cells := make([]string, len(fields))
		for i, field := range fields {
			cells[i] = runewidth.FillRight(valueString(row[field]), widths[i]+gutter)
		}
		lines = append(lines, strings.Join(cells, " "))
	}

	return lines
}

// ColumnWidths returns, per field, the display width of the widest of the
// field name and every record's value for it
func ColumnWidths(records []Record, fields []string) []int {
	widths := make([]int, len(fields))
	for i, field := range fields {
		widths[i] = runewidth.StringWidth(field)
		for _, rec := range records {
			if w := runewidth.StringWidth(valueString(rec[field])); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

// Printer writes ordered record listings in a configured format
type Printer struct {
	out       io.Writer
	formatter Formatter
}

// NewPrinter creates a printer writing to w (os.Stdout when nil)
func NewPrinter(w io.Writer, format Format, opts ...Option) *Printer {
	if w == nil {
		w = os.Stdout
	}
	return &Printer{
		out:       w,
		formatter: NewFormatter(format, opts...),
	}
}

// PrintFormattedDictList orders records by groupField then uniqueField and
// writes them showing fields. Nothing is written if a record is missing
// one of the named fields.
func (p *Printer) PrintFormattedDictList(records []Record, fields []string, uniqueField, groupField string) error {
	ordered, err := Order(records, fields, uniqueField, groupField)
	if err != nil {
		return err
	}
	return p.formatter.Format(p.out, ordered, fields)
}

func valueString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// compareValues orders numbers numerically and everything else by text.
// Numbers sort before non-numbers so mixed fields still have a total order.
func compareValues(a, b interface{}) int {
	fa, aok := toFloat(a)
	fb, bok := toFloat(b)
	switch {
	case aok && bok:
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		default:
			return 0
		}
	case aok:
		return -1
	case bok:
		return 1
	}
	return strings.Compare(valueString(a), valueString(b))
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
