package util

import (
	"errors"
	"fmt"
	"strings"
)

// Common error types for toolbase
var (
	// ErrInvalidConfig indicates a caller supplied an invalid combination of settings
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrNoSelection indicates an interactive prompt could not obtain a valid answer
	ErrNoSelection = errors.New("failed to determine user selection")

	// ErrNoCredential indicates no ambient credential was found
	ErrNoCredential = errors.New("no credential found in local environment")

	// ErrExpiredCredential indicates the ambient credential is outside its validity window
	ErrExpiredCredential = errors.New("credential is not valid at this time")

	// ErrMissingGroup indicates the credential carries no group attribute
	ErrMissingGroup = errors.New("credential does not contain a group")

	// ErrUnknownUser indicates a username could not be mapped to a distinguished name
	ErrUnknownUser = errors.New("unknown user")

	// ErrMissingField indicates a record lacks a requested field
	ErrMissingField = errors.New("missing field")
)

// MultiError aggregates multiple errors
type MultiError struct {
	Errors []error
}

// Error implements the error interface
func (m *MultiError) Error() string {
	if len(m.Errors) == 0 {
		return "no errors"
	}
	if len(m.Errors) == 1 {
		return m.Errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d errors occurred:", len(m.Errors)))
	for i, err := range m.Errors {
		if i < 10 {
			sb.WriteString(fmt.Sprintf("\n  %d. %v", i+1, err))
		} else if i == 10 {
			sb.WriteString(fmt.Sprintf("\n  ... and %d more errors", len(m.Errors)-10))
			break
		}
	}
	return sb.String()
}

// Unwrap returns the errors for errors.Is/As compatibility
func (m *MultiError) Unwrap() []error {
	return m.Errors
}

// Add adds an error to the multi-error
func (m *MultiError) Add(err error) {
	if err != nil {
		m.Errors = append(m.Errors, err)
	}
}

// ErrorOrNil returns nil if no errors were added, otherwise returns the MultiError
func (m *MultiError) ErrorOrNil() error {
	if len(m.Errors) == 0 {
		return nil
	}
	return m
}

// ValidationError represents a rejected setting or input value
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
	Err     error
}

// Error implements the error interface
func (v *ValidationError) Error() string {
	if v.Value != nil {
		return fmt.Sprintf("%s: %q (value: %v): %s", v.errText(), v.Field, v.Value, v.Message)
	}
	return fmt.Sprintf("%s: %q: %s", v.errText(), v.Field, v.Message)
}

func (v *ValidationError) errText() string {
	if v.Err != nil {
		return v.Err.Error()
	}
	return "validation failed"
}

// Unwrap returns the sentinel the validation failure belongs to
func (v *ValidationError) Unwrap() error {
	return v.Err
}

// NewValidationError creates a new validation error classified under ErrInvalidConfig
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
		Err:     ErrInvalidConfig,
	}
}

// FieldError reports a record lookup for a field that is not present
type FieldError struct {
	Field string
	Index int
}

// Error implements the error interface
func (f *FieldError) Error() string {
	return fmt.Sprintf("record %d: %v %q", f.Index, ErrMissingField, f.Field)
}

// Unwrap returns ErrMissingField
func (f *FieldError) Unwrap() error {
	return ErrMissingField
}

// IsCredentialError checks if an error comes from resolving the ambient credential
func IsCredentialError(err error) bool {
	return errors.Is(err, ErrNoCredential) ||
		errors.Is(err, ErrExpiredCredential) ||
		errors.Is(err, ErrMissingGroup) ||
		errors.Is(err, ErrUnknownUser)
}

// FriendlyError converts technical errors to user-friendly messages
func FriendlyError(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, ErrNoCredential):
		return "No credential found. Please check your kubeconfig and current context."
	case errors.Is(err, ErrExpiredCredential):
		return "Your client certificate has expired or is not yet valid."
	case errors.Is(err, ErrMissingGroup):
		return "Your credential carries no group. Ask your administrator for a certificate with an organization."
	case errors.Is(err, ErrUnknownUser):
		return "Your username is not known to any credential in the kubeconfig."
	case errors.Is(err, ErrNoSelection):
		return "No valid answer was given."
	case errors.Is(err, ErrMissingField):
		return "A record is missing a requested field. Please check the --fields, --unique and --group flags."
	case errors.Is(err, ErrInvalidConfig):
		return "Invalid configuration. Please check your config file and command-line flags."
	default:
		return err.Error()
	}
}

// CombineErrors combines multiple errors into a single error
// Returns nil if all errors are nil
func CombineErrors(errs ...error) error {
	m := &MultiError{}
	for _, err := range errs {
		m.Add(err)
	}
	return m.ErrorOrNil()
}

// WrapErrorf wraps an error with a formatted message
func WrapErrorf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// ErrorWithContext adds ordered key/value context to an error message
type ErrorWithContext struct {
	Err  error
	Keys []string
	Vals map[string]interface{}
}

// Error implements the error interface
func (e *ErrorWithContext) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Err.Error())
	if len(e.Keys) > 0 {
		sb.WriteString(" (")
		for i, k := range e.Keys {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(fmt.Sprintf("%s: %v", k, e.Vals[k]))
		}
		sb.WriteString(")")
	}
	return sb.String()
}

// Unwrap returns the wrapped error
func (e *ErrorWithContext) Unwrap() error {
	return e.Err
}

// AddContext adds context information to an error.
// Keys keep the order they were first added in.
func AddContext(err error, key string, value interface{}) error {
	if err == nil {
		return nil
	}

	var ctxErr *ErrorWithContext
	if errors.As(err, &ctxErr) {
		if _, ok := ctxErr.Vals[key]; !ok {
			ctxErr.Keys = append(ctxErr.Keys, key)
		}
		ctxErr.Vals[key] = value
		return ctxErr
	}

	return &ErrorWithContext{
		Err:  err,
		Keys: []string{key},
		Vals: map[string]interface{}{key: value},
	}
}
