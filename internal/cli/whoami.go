package cli

import (
	"encoding/json"
	"fmt"

	"github.com/aryankumar/toolbase/internal/identity"
	"github.com/aryankumar/toolbase/internal/output"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func (a *app) newWhoamiCmd() *cobra.Command {
	var extended bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Print the user name of your credential",
		Long: `Print the user name behind the credential of the current kubeconfig context.

The credential must carry a group, and the user name must be known to at
least one client certificate in the kubeconfig. Certificates map their
common name to the user name and their organizations to groups.`,
		Example: `  # Print your user name
  toolbase whoami

  # Show every detail of the credential
  toolbase whoami --extended

  # Reject expired certificates
  toolbase whoami --strict

  # Details as JSON
  toolbase whoami --extended -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runWhoami(cmd, extended)
		},
	}

	cmd.Flags().BoolVar(&extended, "extended", false, "show issuer, serial, cluster and namespace of the credential")
	cmd.Flags().Bool("strict", false, "reject certificates outside their validity window")

	return cmd
}

func (a *app) runWhoami(cmd *cobra.Command, extended bool) error {
	out := cmd.OutOrStdout()

	username, err := a.base.CurrentUser()
	if err != nil {
		return err
	}

	if !extended {
		fmt.Fprintln(out, username)
		return nil
	}

	info, err := a.base.ProxyInfo(true)
	if err != nil {
		return err
	}

	format, _ := output.ParseFormat(a.config.Output.Format)
	switch format {
	case output.FormatJSON:
		data, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal credential info to JSON: %w", err)
		}
		fmt.Fprintln(out, string(data))
	case output.FormatYAML:
		data, err := yaml.Marshal(info)
		if err != nil {
			return fmt.Errorf("failed to marshal credential info to YAML: %w", err)
		}
		fmt.Fprint(out, string(data))
	default:
		colors := output.NewColorScheme(out, a.config.Output.NoColor)
		for _, f := range identity.Fields(info) {
			fmt.Fprintf(out, "%s: %s\n", colors.Key("%-12s", f.Key), f.Value)
		}
	}

	return nil
}
