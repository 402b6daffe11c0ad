// Package registry accumulates formatted error reports keyed by the call
// site that raised them, for later batch inspection.
package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/aryankumar/toolbase/internal/logging"
	"github.com/aryankumar/toolbase/internal/util"
)

// DefaultScope is used when a report names no scope
const DefaultScope = "API"

// unknownCallSite keeps keys non-empty when a caller passes no call site
const unknownCallSite = "unknown"

// Arg is a named contextual value attached to a report
type Arg struct {
	Key   string
	Value interface{}
}

// A returns an Arg. It keeps report call sites short.
func A(key string, value interface{}) Arg {
	return Arg{Key: key, Value: value}
}

// Report is the failure returned by Registry.Report. Its message is the
// full formatted report.
type Report struct {
	Scope    string
	CallSite string
	Message  string
	Text     string
	cause    error
}

// Error implements the error interface
func (r *Report) Error() string {
	return r.Text
}

// Unwrap returns the first error-valued argument of the report, if any
func (r *Report) Unwrap() error {
	return r.cause
}

// Registry maps call sites to their reports.
// Keys iterate in the order they were first reported. The registry is not
// safe for concurrent use.
type Registry struct {
	keys    []string
	reports map[string][]string
	logger  *slog.Logger
}

// New creates an empty registry logging through logger
func New(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}

	return &Registry{
		reports: make(map[string][]string),
		logger:  logger,
	}
}

// Report formats a report, appends it under callSite, logs it at
// logging.LevelVerbose and returns it as an error. An empty scope means
// DefaultScope. Only args with non-zero values are rendered.
func (r *Registry) Report(scope, callSite, message string, args ...Arg) error {
	if scope == "" {
		scope = DefaultScope
	}
	if callSite == "" {
		callSite = unknownCallSite
	}

	report := &Report{
		Scope:    scope,
		CallSite: callSite,
		Message:  message,
	}

	rendered := make([]string, 0, len(args))
	for _, arg := range args {
		if isZero(arg.Value) {
			continue
		}
		if err, ok := arg.Value.(error); ok && report.cause == nil {
			report.cause = err
		}
		rendered = append(rendered, fmt.Sprintf("%s = %v (%T)", arg.Key, arg.Value, arg.Value))
	}

	report.Text = fmt.Sprintf("Problem with %s.%s() call:\nArguments: %s\nMessage: %s",
		scope, callSite, strings.Join(rendered, ", "), message)

	if _, ok := r.reports[callSite]; !ok {
		r.keys = append(r.keys, callSite)
	}
	r.reports[callSite] = append(r.reports[callSite], report.Text)

	r.logger.Log(context.Background(), logging.LevelVerbose, report.Text)

	return report
}

// Keys returns the call sites in first-reported order
func (r *Registry) Keys() []string {
	return r.keys
}

// Reports returns the reports recorded under callSite, oldest first
func (r *Registry) Reports(callSite string) []string {
	return r.reports[callSite]
}

// Len returns the number of call sites with reports
func (r *Registry) Len() int {
	return len(r.keys)
}

// Range calls fn for each call site in order until fn returns false
func (r *Registry) Range(fn func(callSite string, reports []string) bool) {
	for _, k := range r.keys {
		if !fn(k, r.reports[k]) {
			return
		}
	}
}

// Err aggregates every recorded report into a single error, or nil
func (r *Registry) Err() error {
	m := &util.MultiError{}
	r.Range(func(_ string, reports []string) bool {
		for _, text := range reports {
			m.Add(errors.New(text))
		}
		return true
	})
	return m.ErrorOrNil()
}

// isZero reports whether v is nil or the zero value of its type
func isZero(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice:
		return rv.Len() == 0
	}
	return rv.IsZero()
}
