package cli

import (
	"fmt"
	"io"

	"github.com/aryankumar/toolbase/internal/output"
	"github.com/aryankumar/toolbase/pkg/version"
	"github.com/spf13/cobra"
)

// newVersionCmd creates the version command
func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  "Display detailed version information for the toolbase CLI",
		// Version needs neither configuration nor a credential
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVersion(cmd)
		},
	}

	return cmd
}

func runVersion(cmd *cobra.Command) error {
	info := version.Get()
	out := cmd.OutOrStdout()
	outputFormat, _ := cmd.Flags().GetString("output")

	switch output.Format(outputFormat) {
	case output.FormatJSON:
		return outputJSON(out, info)
	case output.FormatYAML:
		return outputYAML(out, info)
	case output.FormatTable, output.FormatColumns:
		return outputListing(out, output.Format(outputFormat), info)
	default:
		// Default to human-readable format
		fmt.Fprintln(out, info.String())
		return nil
	}
}

func outputJSON(w io.Writer, info version.Info) error {
	data, err := info.JSON()
	if err != nil {
		return fmt.Errorf("failed to marshal version info to JSON: %w", err)
	}
	fmt.Fprintln(w, data)
	return nil
}

func outputYAML(w io.Writer, info version.Info) error {
	data, err := info.YAML()
	if err != nil {
		return fmt.Errorf("failed to marshal version info to YAML: %w", err)
	}
	fmt.Fprint(w, data)
	return nil
}

func outputListing(w io.Writer, format output.Format, info version.Info) error {
	rows := []output.Record{
		{"COMPONENT": "Version", "VALUE": info.Version},
		{"COMPONENT": "Commit", "VALUE": info.Commit},
		{"COMPONENT": "Build Time", "VALUE": info.BuildTime},
		{"COMPONENT": "Go Version", "VALUE": info.GoVersion},
		{"COMPONENT": "Platform", "VALUE": info.Platform},
	}
	return output.NewFormatter(format).Format(w, rows, []string{"COMPONENT", "VALUE"})
}
