package registry

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/aryankumar/toolbase/internal/logging"
	"github.com/google/go-cmp/cmp"
)

func newTestRegistry(buf *bytes.Buffer) *Registry {
	logger := slog.New(logging.NewConsoleHandler(buf, &logging.ConsoleOptions{Level: slog.LevelDebug}))
	return New(logger)
}

func TestRegistry_Report(t *testing.T) {
	tests := []struct {
		name     string
		scope    string
		callSite string
		message  string
		args     []Arg
		want     string
	}{
		{
			name:     "no arguments",
			callSite: "SubmitJob",
			message:  "boom",
			want:     "Problem with API.SubmitJob() call:\nArguments: \nMessage: boom",
		},
		{
			name:     "scope override",
			scope:    "Dirac",
			callSite: "SubmitJob",
			message:  "boom",
			want:     "Problem with Dirac.SubmitJob() call:\nArguments: \nMessage: boom",
		},
		{
			name:     "only non-zero arguments rendered in order",
			callSite: "GetOutput",
			message:  "no such job",
			args:     []Arg{A("jobID", 42), A("site", ""), A("verbose", false), A("dir", "/tmp")},
			want:     "Problem with API.GetOutput() call:\nArguments: jobID = 42 (int), dir = /tmp (string)\nMessage: no such job",
		},
		{
			name:     "empty call site",
			callSite: "",
			message:  "boom",
			want:     "Problem with API.unknown() call:\nArguments: \nMessage: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			r := newTestRegistry(&buf)

			err := r.Report(tt.scope, tt.callSite, tt.message, tt.args...)
			if err == nil {
				t.Fatal("expected a failure, got nil")
			}
			if err.Error() != tt.want {
				t.Errorf("report mismatch (-want +got):\n%s", cmp.Diff(tt.want, err.Error()))
			}
			if !strings.HasSuffix(err.Error(), tt.message) {
				t.Errorf("report should end in the submitted message, got %q", err.Error())
			}
			if !strings.Contains(buf.String(), "VERBOSE: "+tt.want) {
				t.Errorf("report not logged at verbose level, got %q", buf.String())
			}
		})
	}
}

func TestRegistry_Accumulates(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRegistry(&buf)

	r.Report("", "Submit", "first")
	r.Report("", "Status", "other site")
	r.Report("", "Submit", "second")

	if diff := cmp.Diff([]string{"Submit", "Status"}, r.Keys()); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
	if r.Len() != 2 {
		t.Errorf("expected 2 call sites, got %d", r.Len())
	}

	submit := r.Reports("Submit")
	if len(submit) != 2 {
		t.Fatalf("expected 2 reports under Submit, got %d", len(submit))
	}
	if !strings.HasSuffix(submit[0], "first") || !strings.HasSuffix(submit[1], "second") {
		t.Errorf("reports out of call order: %q", submit)
	}
	if len(r.Reports("Status")) != 1 {
		t.Errorf("expected 1 report under Status, got %d", len(r.Reports("Status")))
	}
}

func TestRegistry_Range(t *testing.T) {
	r := New(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	for _, site := range []string{"c", "a", "b", "a"} {
		r.Report("", site, "x")
	}

	var visited []string
	r.Range(func(site string, reports []string) bool {
		visited = append(visited, site)
		return site != "a"
	})

	if diff := cmp.Diff([]string{"c", "a"}, visited); diff != "" {
		t.Errorf("range order mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistry_ReportWrapsCause(t *testing.T) {
	r := New(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	cause := errors.New("proxy expired")

	err := r.Report("", "CurrentUser", "No proxy found", A("cause", cause))

	if !errors.Is(err, cause) {
		t.Error("expected report to wrap the error-valued argument")
	}

	var report *Report
	if !errors.As(err, &report) {
		t.Fatal("expected a *Report")
	}
	if report.CallSite != "CurrentUser" || report.Scope != DefaultScope {
		t.Errorf("unexpected report fields: %+v", report)
	}
	if !strings.Contains(err.Error(), "cause = proxy expired (*errors.errorString)") {
		t.Errorf("unexpected argument rendering: %q", err.Error())
	}
}

func TestRegistry_Err(t *testing.T) {
	r := New(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	if r.Err() != nil {
		t.Error("expected nil error for empty registry")
	}

	r.Report("", "a", "one")
	r.Report("", "b", "two")

	err := r.Err()
	if err == nil {
		t.Fatal("expected aggregated error")
	}
	if !strings.Contains(err.Error(), "2 errors occurred") {
		t.Errorf("unexpected aggregate message: %q", err.Error())
	}
}
