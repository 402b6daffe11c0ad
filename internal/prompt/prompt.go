// Package prompt asks the user a question on the console and validates the
// answer, allowing a single retry.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aryankumar/toolbase/internal/util"
)

type state int

const (
	awaitingFirst state = iota
	awaitingRetry
	accepted
	failed
)

// Prompter reads answers line by line from one input.
// It is not safe for concurrent use.
type Prompter struct {
	in     *bufio.Reader
	logger *slog.Logger
}

// New creates a prompter reading from in (os.Stdin when nil). Questions
// are rendered through logger at info level.
func New(in io.Reader, logger *slog.Logger) *Prompter {
	if in == nil {
		in = os.Stdin
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Prompter{
		in:     bufio.NewReader(in),
		logger: logger,
	}
}

// Ask puts message to the user. Without options it is a y/n question
// defaulting to n.
func (p *Prompter) Ask(message string, opts ...Option) (string, error) {
	return p.AskQuestion(NewQuestion(message, opts...))
}

// AskQuestion asks the question described by q. A blank answer takes the
// default. An invalid or blank answer without default is asked once more;
// a second failure returns util.ErrNoSelection. An invalid question is
// rejected before anything is read.
func (p *Prompter) AskQuestion(q Question) (string, error) {
	if err := q.Validate(); err != nil {
		return "", err
	}

	var answer string
	st := awaitingFirst
	for {
		switch st {
		case awaitingFirst, awaitingRetry:
			p.render(q, st == awaitingRetry)

			line, err := p.readLine()
			if err != nil {
				return "", err
			}

			var ok bool
			answer, ok = q.resolve(line)
			switch {
			case ok:
				st = accepted
			case st == awaitingFirst:
				st = awaitingRetry
			default:
				st = failed
			}

		case accepted:
			return answer, nil

		case failed:
			p.logger.Error("Failed to determine user selection")
			return "", util.ErrNoSelection
		}
	}
}

func (p *Prompter) render(q Question, retry bool) {
	if retry && len(q.Choices) > 0 {
		p.logger.Info("Possible responses are: " + strings.Join(q.Choices, ", "))
	}
	p.logger.Info(q.Text())
}

// readLine returns the next line without its terminator. End of input
// counts as a blank line.
func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
