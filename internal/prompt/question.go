package prompt

import (
	"strings"

	"github.com/aryankumar/toolbase/internal/util"
)

// Question describes one question put to the user.
// An empty Choices accepts any answer; an empty Default requires one.
type Question struct {
	Message string
	Choices []string
	Default string
}

// Option adjusts a Question
type Option func(*Question)

// WithChoices restricts answers to choices
func WithChoices(choices ...string) Option {
	return func(q *Question) {
		q.Choices = choices
	}
}

// FreeForm accepts any non-blank answer
func FreeForm() Option {
	return func(q *Question) {
		q.Choices = nil
	}
}

// WithDefault sets the answer used when the user enters nothing
func WithDefault(answer string) Option {
	return func(q *Question) {
		q.Default = answer
	}
}

// NoDefault requires the user to type an answer
func NoDefault() Option {
	return func(q *Question) {
		q.Default = ""
	}
}

// NewQuestion returns a yes/no question defaulting to "n", adjusted by opts
func NewQuestion(message string, opts ...Option) Question {
	q := Question{
		Message: message,
		Choices: []string{"y", "n"},
		Default: "n",
	}
	for _, opt := range opts {
		opt(&q)
	}
	return q
}

// Validate rejects a default that is not one of the choices
func (q Question) Validate() error {
	if len(q.Choices) > 0 && q.Default != "" && !q.allows(q.Default) {
		return util.NewValidationError("default", q.Default, "the default value is not a valid choice")
	}
	return nil
}

// Suffix lists the choices with the default bracketed in place, or the
// bracketed default alone when any answer is accepted
func (q Question) Suffix() string {
	if len(q.Choices) == 0 {
		if q.Default == "" {
			return ""
		}
		return "[" + q.Default + "]"
	}

	parts := make([]string, len(q.Choices))
	for i, c := range q.Choices {
		if q.Default != "" && c == q.Default {
			c = "[" + c + "]"
		}
		parts[i] = c
	}
	return strings.Join(parts, "/")
}

// Text is the line shown to the user
func (q Question) Text() string {
	if suffix := q.Suffix(); suffix != "" {
		return q.Message + " " + suffix + " :"
	}
	return q.Message + " :"
}

// resolve maps a raw response to an accepted answer
func (q Question) resolve(response string) (string, bool) {
	response = strings.TrimSpace(response)
	if response == "" {
		return q.Default, q.Default != ""
	}
	if len(q.Choices) > 0 && !q.allows(response) {
		return "", false
	}
	return response, true
}

func (q Question) allows(answer string) bool {
	for _, c := range q.Choices {
		if c == answer {
			return true
		}
	}
	return false
}
