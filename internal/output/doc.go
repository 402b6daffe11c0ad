// Package output renders lists of records for toolbase commands.
//
// Records are plain maps from field name to value. Before rendering they are
// grouped by one field and ordered by another, unique, field, so the output
// does not depend on the order records were supplied in.
//
// # Basic Usage
//
//	lines, err := output.FormatDictList(records,
//	    []string{"name", "site", "status"}, // displayed columns
//	    "name",                             // unique field
//	    "site",                             // group field
//	)
//
//	// or write them directly
//	printer := output.NewPrinter(os.Stdout, output.FormatColumns)
//	err := printer.PrintFormattedDictList(records, fields, "name", "site")
//
// # Formats
//
// Columns (default):
//   - Every cell left-justified to its column's widest value plus a gutter
//     of five spaces, cells joined by a single space
//   - Widths are display widths, so wide characters stay aligned
//
// Table:
//   - Borderless kubectl-style tables with upper-cased headers
//
// JSON and YAML:
//   - A list of objects holding only the displayed fields, in the same order
//
// # Missing fields
//
// A record lacking a displayed, unique or group field is rejected with an
// error wrapping util.ErrMissingField; nothing is printed in that case.
//
// # Color Support
//
// Headers are colored only when writing to a terminal and color is not
// disabled with WithNoColor(true).
package output
