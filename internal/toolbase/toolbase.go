// Package toolbase is the shared base of interactive command-line tools.
//
// A Base bundles the pieces such tools keep reimplementing: an error
// registry keyed by call site, a column-aligned record printer, a
// console prompt with retry and defaults, and lookup of the invoking
// user's identity from the ambient kubeconfig credential.
package toolbase

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aryankumar/toolbase/internal/config"
	"github.com/aryankumar/toolbase/internal/identity"
	"github.com/aryankumar/toolbase/internal/output"
	"github.com/aryankumar/toolbase/internal/prompt"
	"github.com/aryankumar/toolbase/internal/registry"
	"github.com/aryankumar/toolbase/internal/util"
	"github.com/davecgh/go-spew/spew"
)

// Base is the state shared by the operations of an interactive tool.
// It is not safe for concurrent use; give each goroutine its own Base.
type Base struct {
	name     string
	logger   *slog.Logger
	out      io.Writer
	in       io.Reader
	strict   bool
	format   output.Format
	outOpts  []output.Option
	identity identity.Provider

	registry *registry.Registry
	printer  *output.Printer
	prompter *prompt.Prompter
}

// Option configures a Base
type Option func(*Base)

// WithName sets the component name used as the scope of error reports
func WithName(name string) Option {
	return func(b *Base) {
		b.name = name
	}
}

// WithLogger sets the logger prompts and reports go through
func WithLogger(logger *slog.Logger) Option {
	return func(b *Base) {
		b.logger = logger
	}
}

// WithOutput sets the writer records and dumps are printed to
func WithOutput(w io.Writer) Option {
	return func(b *Base) {
		b.out = w
	}
}

// WithInput sets the reader prompt answers are read from
func WithInput(r io.Reader) Option {
	return func(b *Base) {
		b.in = r
	}
}

// WithFormat selects how record listings are rendered
func WithFormat(format output.Format, opts ...output.Option) Option {
	return func(b *Base) {
		b.format = format
		b.outOpts = opts
	}
}

// WithIdentity sets the provider CurrentUser resolves the user with
func WithIdentity(p identity.Provider) Option {
	return func(b *Base) {
		b.identity = p
	}
}

// WithStrict makes CurrentUser reject credentials outside their validity window
func WithStrict(strict bool) Option {
	return func(b *Base) {
		b.strict = strict
	}
}

// WithConfig applies a loaded tool configuration. Options given after it
// take precedence.
func WithConfig(cfg *config.ToolConfig) Option {
	return func(b *Base) {
		if cfg == nil {
			return
		}
		if cfg.Scope != "" {
			b.name = cfg.Scope
		}
		if format, err := output.ParseFormat(cfg.Output.Format); err == nil {
			b.format = format
		}
		b.outOpts = []output.Option{
			output.WithNoColor(cfg.Output.NoColor),
			output.WithNoHeaders(cfg.Output.NoHeaders),
			output.WithGutter(cfg.Output.Gutter),
		}
		b.strict = cfg.Identity.Strict
		b.identity = identity.NewKubeconfigProvider(config.NewKubeconfigLoader(cfg.Kubeconfig, cfg.Context))
	}
}

// New creates a Base. Without options it reports under registry.DefaultScope,
// prints columns to stdout, reads answers from stdin and resolves identity
// from the default kubeconfig.
func New(opts ...Option) *Base {
	b := &Base{
		name:   registry.DefaultScope,
		out:    os.Stdout,
		in:     os.Stdin,
		format: output.FormatColumns,
	}
	for _, opt := range opts {
		opt(b)
	}

	if b.logger == nil {
		b.logger = slog.Default()
	}
	if b.identity == nil {
		b.identity = identity.NewKubeconfigProvider(config.NewKubeconfigLoader("", ""))
	}

	b.registry = registry.New(b.logger)
	b.printer = output.NewPrinter(b.out, b.format, b.outOpts...)
	b.prompter = prompt.New(b.in, b.logger)

	return b
}

// Name returns the scope error reports are filed under
func (b *Base) Name() string {
	return b.name
}

// Logger returns the logger of the base
func (b *Base) Logger() *slog.Logger {
	return b.logger
}

// ReportError records message under callSite and returns it as an error.
// Args with non-zero values are listed in the report.
func (b *Base) ReportError(callSite, message string, args ...registry.Arg) error {
	return b.registry.Report(b.name, callSite, message, args...)
}

// Errors returns the live error registry
func (b *Base) Errors() *registry.Registry {
	return b.registry
}

// ErrorReport logs message at warning and returns it as an error wrapping
// cause. Unlike ReportError nothing is recorded.
func (b *Base) ErrorReport(message string, cause error) error {
	b.logger.Warn(message)
	if cause == nil {
		return errors.New(message)
	}
	return fmt.Errorf("%s: %w", message, cause)
}

// FormatDictList returns the lines PrintFormattedDictList prints in column format
func (b *Base) FormatDictList(records []output.Record, fields []string, uniqueField, groupField string) ([]string, error) {
	return output.FormatDictList(records, fields, uniqueField, groupField)
}

// PrintFormattedDictList prints records grouped by groupField and ordered
// by uniqueField, showing fields
func (b *Base) PrintFormattedDictList(records []output.Record, fields []string, uniqueField, groupField string) error {
	return b.printer.PrintFormattedDictList(records, fields, uniqueField, groupField)
}

// PromptUser asks message on the console. Without options it is a y/n
// question defaulting to n.
func (b *Base) PromptUser(message string, opts ...prompt.Option) (string, error) {
	return b.prompter.Ask(message, opts...)
}

// PrettyPrint dumps v to the output writer
func (b *Base) PrettyPrint(v interface{}) {
	dumper := spew.ConfigState{
		Indent:                  "  ",
		SortKeys:                true,
		DisablePointerAddresses: true,
		DisableCapacities:       true,
	}
	dumper.Fdump(b.out, v)
}

// CurrentUser returns the username of the ambient credential. The
// credential must carry a group and the username must map to at least one
// distinguished name. Failures are recorded under call site "CurrentUser".
// The validity window of the credential is not checked unless the base was
// built WithStrict(true) or from a config with identity.strict set.
func (b *Base) CurrentUser() (string, error) {
	const callSite = "CurrentUser"

	info, err := b.identity.ProxyInfo(false, b.strict)
	if err != nil {
		if !util.IsCredentialError(err) {
			err = fmt.Errorf("%w: %v", util.ErrNoCredential, err)
		}
		return "", b.ReportError(callSite, "No proxy found in local environment", registry.A("cause", err))
	}
	b.logger.Debug(identity.Format(info))

	if !info.HasGroup() {
		return "", b.ReportError(callSite, "Proxy information does not contain the group",
			registry.A("username", info.Username), registry.A("cause", util.ErrMissingGroup))
	}

	if _, err := b.identity.DNForUsername(info.Username); err != nil {
		if !errors.Is(err, util.ErrUnknownUser) {
			err = fmt.Errorf("%w: %v", util.ErrUnknownUser, err)
		}
		return "", b.ReportError(callSite, "Failed to get proxies for user",
			registry.A("username", info.Username), registry.A("cause", err))
	}

	return info.Username, nil
}

// ProxyInfo describes the ambient credential without validating it for use.
// Failures are returned as-is and not recorded.
func (b *Base) ProxyInfo(extended bool) (*identity.Info, error) {
	return b.identity.ProxyInfo(extended, b.strict)
}
