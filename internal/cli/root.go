package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aryankumar/toolbase/internal/config"
	"github.com/aryankumar/toolbase/internal/logging"
	"github.com/aryankumar/toolbase/internal/output"
	"github.com/aryankumar/toolbase/internal/toolbase"
	"github.com/aryankumar/toolbase/pkg/version"
	"github.com/spf13/cobra"
)

// app holds the state shared by the commands of one invocation
type app struct {
	cfgFile    string
	showErrors bool

	manager *config.Manager
	config  *config.ToolConfig
	base    *toolbase.Base
}

// Execute runs the root command with the provided context
func Execute(ctx context.Context) error {
	a := &app{}
	rootCmd := a.newRootCmd()

	err := rootCmd.ExecuteContext(ctx)
	a.dumpErrors(rootCmd.ErrOrStderr())

	return err
}

// newRootCmd creates the root command
func newRootCmd() *cobra.Command {
	return (&app{}).newRootCmd()
}

func (a *app) newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "toolbase",
		Short: "Toolbase - building blocks for interactive grid tools",
		Long: `Toolbase exercises the shared base of interactive command-line tools.
It resolves who you are from your kubeconfig credential, prints record
listings in aligned columns, and asks questions on the console.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig(cmd)
		},
	}

	// Define persistent flags
	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.toolbase.yaml)")
	rootCmd.PersistentFlags().String("kubeconfig", "", "path to kubeconfig file (default is $HOME/.kube/config)")
	rootCmd.PersistentFlags().String("context", "", "kubeconfig context to take the credential from")
	rootCmd.PersistentFlags().StringP("output", "o", "", "output format (columns, table, json, yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output with debug logging")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	rootCmd.PersistentFlags().String("log-format", "", "log format (console, text, json)")
	rootCmd.PersistentFlags().BoolVar(&a.showErrors, "show-errors", false, "print accumulated error reports when the command finishes")

	// Add subcommands
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(a.newWhoamiCmd())
	rootCmd.AddCommand(a.newRecordsCmd())
	rootCmd.AddCommand(a.newAskCmd())

	return rootCmd
}

// initConfig loads configuration, sets up logging and builds the tool base
func (a *app) initConfig(cmd *cobra.Command) error {
	a.manager = config.NewManager(a.cfgFile)

	// Flags parsed for this command, inherited ones included
	if err := a.manager.BindFlags(cmd.Flags()); err != nil {
		return err
	}

	cfg, err := a.manager.Load()
	if err != nil {
		return err
	}
	if _, err := output.ParseFormat(cfg.Output.Format); err != nil {
		return err
	}
	a.config = cfg

	logger := logging.Setup(logging.Options{
		Verbose: cfg.Log.Verbose,
		NoColor: cfg.Output.NoColor,
		Format:  cfg.Log.Format,
		Writer:  cmd.ErrOrStderr(),
	})

	if cfg.Log.Verbose {
		slog.Debug("verbose logging enabled", "version", version.Get().Short())
		if used := a.manager.ConfigFileUsed(); used != "" {
			slog.Debug("loaded configuration", "file", used)
		}
	}

	a.base = toolbase.New(
		toolbase.WithConfig(cfg),
		toolbase.WithLogger(logger),
		toolbase.WithOutput(cmd.OutOrStdout()),
		toolbase.WithInput(cmd.InOrStdin()),
	)

	return nil
}

// dumpErrors prints the error registry when --show-errors is set
func (a *app) dumpErrors(w io.Writer) {
	if !a.showErrors || a.base == nil || a.base.Errors().Len() == 0 {
		return
	}

	colors := output.NewColorScheme(w, a.config.Output.NoColor)

	a.base.Errors().Range(func(callSite string, reports []string) bool {
		fmt.Fprintln(w, colors.Error("%s (%d):", callSite, len(reports)))
		for _, report := range reports {
			fmt.Fprintln(w, report)
		}
		return true
	})
}
