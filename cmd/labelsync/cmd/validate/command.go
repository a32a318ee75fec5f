// Package validate provides the validate command implementation.
package validate

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/labelsync/cmd/application"
	"github.com/agentstation/labelsync/internal/cmd/emoji"
	"github.com/agentstation/labelsync/internal/cmd/output"
	"github.com/agentstation/labelsync/internal/cmd/table"
	"github.com/agentstation/labelsync/pkg/validation"
)

// NewCommand creates the validate command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var sources []string

	cmd := &cobra.Command{
		Use:     "validate",
		GroupID: "management",
		Short:   "Validate label configuration documents",
		Args:    cobra.NoArgs,
		Long: `Validate loads and merges the label configuration documents and checks
every label without contacting GitHub. All problems are reported at once.`,
		Example: `  labelsync validate
  labelsync validate -l labels.yml -l https://example.com/shared.json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("labels") {
				sources = app.Settings().Labels
			}

			configured, err := app.LoadLabels(cmd.Context(), sources)
			if err != nil {
				return err
			}
			if err := validation.Labels(configured); err != nil {
				return err
			}

			format, err := output.ParseFormat(app.OutputFormat())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			switch format {
			case output.FormatJSON, output.FormatYAML:
				return output.NewFormatter(format).Format(w, configured)
			case output.FormatTable:
				return output.NewFormatter(format).Format(w, table.ConfiguredToTableData(configured))
			default:
				_, err := fmt.Fprintf(w, "%s %d labels are valid\n", emoji.Success, len(configured))
				return err
			}
		},
	}

	cmd.Flags().StringArrayVarP(&sources, "labels", "l", nil,
		"the path or URL to look for the label configuration in (repeatable). Default: labels.json")

	return cmd
}
