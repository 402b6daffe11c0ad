package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/aryankumar/toolbase/internal/util"
	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "", want: FormatColumns},
		{in: "columns", want: FormatColumns},
		{in: "TABLE", want: FormatTable},
		{in: " json ", want: FormatJSON},
		{in: "yaml", want: FormatYAML},
		{in: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		format Format
		check  func(Formatter) bool
	}{
		{format: FormatColumns, check: func(f Formatter) bool { _, ok := f.(*ColumnsFormatter); return ok }},
		{format: FormatTable, check: func(f Formatter) bool { _, ok := f.(*TableFormatter); return ok }},
		{format: FormatJSON, check: func(f Formatter) bool { _, ok := f.(*JSONFormatter); return ok }},
		{format: FormatYAML, check: func(f Formatter) bool { _, ok := f.(*YAMLFormatter); return ok }},
		{format: Format("unknown"), check: func(f Formatter) bool { _, ok := f.(*ColumnsFormatter); return ok }},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			if f := NewFormatter(tt.format); !tt.check(f) {
				t.Errorf("NewFormatter(%q) returned %T", tt.format, f)
			}
		})
	}
}

func TestPrinter_Columns(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, FormatColumns, WithNoColor(true))

	if err := printer.PrintFormattedDictList(testJobs(), []string{"name", "status"}, "name", "site"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want, _ := FormatDictList(testJobs(), []string{"name", "status"}, "name", "site")
	got := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("printed lines mismatch (-want +got):\n%s", diff)
	}
}

func TestPrinter_ColumnsOptions(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, FormatColumns, WithNoHeaders(true), WithGutter(1))

	if err := printer.PrintFormattedDictList(testJobs(), []string{"name", "status"}, "name", "site"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines without header, got %d: %q", len(lines), lines)
	}
	if lines[0] != "job1   Failed  " {
		t.Errorf("unexpected first row %q", lines[0])
	}
}

func TestPrinter_MissingFieldWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, FormatTable)

	err := printer.PrintFormattedDictList(testJobs(), []string{"owner"}, "name", "site")
	if !errors.Is(err, util.ErrMissingField) {
		t.Fatalf("expected ErrMissingField, got %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestPrinter_Table(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, FormatTable, WithNoColor(true))

	if err := printer.PrintFormattedDictList(testJobs(), []string{"name", "site"}, "name", "site"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"NAME", "SITE", "job1", "DIRAC.PIC", "job10", "LCG.CERN"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q\nGot: %s", want, out)
		}
	}
	if strings.Index(out, "DIRAC.PIC") > strings.Index(out, "LCG.CERN") || strings.Index(out, "job10") > strings.Index(out, "job2") {
		t.Errorf("rows out of order\nGot: %s", out)
	}
}

func TestPrinter_JSON(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, FormatJSON)

	if err := printer.PrintFormattedDictList(testJobs(), []string{"name", "status"}, "name", "site"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got []map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}

	want := []map[string]interface{}{
		{"name": "job1", "status": "Failed"},
		{"name": "job10", "status": "Running"},
		{"name": "job2", "status": "Done"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("JSON mismatch (-want +got):\n%s", diff)
	}
}

func TestPrinter_YAML(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, FormatYAML)

	if err := printer.PrintFormattedDictList(testJobs(), []string{"status", "name"}, "name", "site"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "- status: Failed\n  name: job1\n") {
		t.Errorf("YAML should keep field order\nGot: %s", out)
	}

	var got []map[string]string
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid YAML: %v", err)
	}
	if len(got) != 3 || got[2]["name"] != "job2" {
		t.Errorf("unexpected YAML rows: %v", got)
	}
}
