package cli

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/aryankumar/toolbase/internal/output"
	"github.com/aryankumar/toolbase/internal/util"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func (a *app) newRecordsCmd() *cobra.Command {
	var (
		file        string
		fields      []string
		uniqueField string
		groupField  string
	)

	cmd := &cobra.Command{
		Use:     "records",
		Aliases: []string{"print"},
		Short:   "Print a list of records in aligned columns",
		Long: `Print the records of a YAML or JSON file as an aligned listing.

The file holds a list of objects. Records are grouped by the --group field
and ordered by the --unique field within each group. Numbers are compared
numerically, everything else as text. Each column is as wide as its widest
value plus a gutter, so nothing is truncated.`,
		Example: `  # List jobs grouped by site
  toolbase records -f jobs.yaml --fields JobID,Site,Status --unique JobID --group Site

  # Read the records from stdin
  cat jobs.json | toolbase records -f - --fields JobID,Status

  # Render as a table
  toolbase records -f jobs.yaml --fields JobID,Site -o table`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if uniqueField == "" && len(fields) > 0 {
				uniqueField = fields[0]
			}
			if groupField == "" {
				groupField = uniqueField
			}
			return a.runRecords(cmd, file, fields, uniqueField, groupField)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML or JSON file holding the records, - for stdin")
	cmd.Flags().StringSliceVar(&fields, "fields", nil, "fields to show, in column order")
	cmd.Flags().StringVar(&uniqueField, "unique", "", "field ordering records within a group (default first field)")
	cmd.Flags().StringVar(&groupField, "group", "", "field grouping records (default the unique field)")
	cmd.Flags().Bool("no-headers", false, "omit the header line")

	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("fields")
	_ = cmd.MarkFlagFilename("file", "yaml", "yml", "json")
	_ = cmd.RegisterFlagCompletionFunc("fields", completeFields(true))
	_ = cmd.RegisterFlagCompletionFunc("unique", completeFields(false))
	_ = cmd.RegisterFlagCompletionFunc("group", completeFields(false))

	return cmd
}

func (a *app) runRecords(cmd *cobra.Command, file string, fields []string, uniqueField, groupField string) error {
	if len(fields) == 0 {
		return util.NewValidationError("fields", nil, "at least one field is required")
	}

	records, err := loadRecords(cmd.InOrStdin(), file)
	if err != nil {
		return err
	}

	a.base.Logger().Debug("loaded records", "file", file, "count", len(records))

	if err := a.base.PrintFormattedDictList(records, fields, uniqueField, groupField); err != nil {
		return a.base.ErrorReport("Cannot print records", err)
	}
	return nil
}

// loadRecords reads a list of records from file, or from stdin when file is "-"
func loadRecords(stdin io.Reader, file string) ([]output.Record, error) {
	var (
		data []byte
		err  error
	)
	if file == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(file)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}

	var raw []map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse records from %s: %w", file, err)
	}

	records := make([]output.Record, 0, len(raw))
	for _, r := range raw {
		records = append(records, output.Record(r))
	}
	return records, nil
}

// completeFields suggests the field names found in the records file given
// with -f. In list mode the candidates extend a comma-separated value and
// skip fields already listed.
func completeFields(list bool) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		file, _ := cmd.Flags().GetString("file")
		if file == "" || file == "-" {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		records, err := loadRecords(nil, file)
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		directive := cobra.ShellCompDirectiveNoFileComp
		prefix := ""
		listed := map[string]bool{}
		if list {
			directive |= cobra.ShellCompDirectiveNoSpace
			if i := strings.LastIndex(toComplete, ","); i >= 0 {
				prefix = toComplete[:i+1]
				for _, f := range strings.Split(toComplete[:i], ",") {
					listed[f] = true
				}
			}
		}

		var candidates []string
		for _, name := range recordFields(records) {
			if listed[name] {
				continue
			}
			if c := prefix + name; strings.HasPrefix(c, toComplete) {
				candidates = append(candidates, c)
			}
		}
		return candidates, directive
	}
}

// recordFields returns every field name used by records, sorted
func recordFields(records []output.Record) []string {
	seen := map[string]bool{}
	var names []string
	for _, rec := range records {
		for name := range rec {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}
