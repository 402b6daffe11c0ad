package cli

import (
	"fmt"
	"strings"

	"github.com/aryankumar/toolbase/internal/output"
	"github.com/aryankumar/toolbase/internal/prompt"
	"github.com/spf13/cobra"
)

func (a *app) newAskCmd() *cobra.Command {
	var (
		choices    []string
		defaultAns string
		freeForm   bool
	)

	cmd := &cobra.Command{
		Use:   "ask MESSAGE...",
		Short: "Ask a question and print the answer",
		Long: `Ask a question on the console and print the accepted answer to stdout.

An empty answer takes the default. An answer that is not one of the
choices is asked once more, listing the possible responses; a second
invalid answer fails. The question goes to stderr so the answer can be
captured by scripts.`,
		Example: `  # Yes/no question defaulting to no
  toolbase ask "Kill all jobs?"

  # Pick one of several answers
  toolbase ask "Which site?" --choices LCG.CERN.ch,DIRAC.PIC.es --default LCG.CERN.ch

  # Accept any answer, with a default
  toolbase ask "Job name" --free-form --default test`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := []prompt.Option{prompt.WithChoices(choices...), prompt.WithDefault(defaultAns)}
			if freeForm {
				opts[0] = prompt.FreeForm()
			}
			if defaultAns == "" {
				opts[1] = prompt.NoDefault()
			}

			answer, err := a.base.PromptUser(strings.Join(args, " "), opts...)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colors := output.NewColorScheme(out, a.config.Output.NoColor)
			fmt.Fprintln(out, colors.Success("%s", answer))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&choices, "choices", []string{"y", "n"}, "accepted answers")
	cmd.Flags().StringVar(&defaultAns, "default", "n", "answer taken on empty input (empty for none)")
	cmd.Flags().BoolVar(&freeForm, "free-form", false, "accept any answer")

	return cmd
}
