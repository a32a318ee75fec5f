// Package sync provides the sync and diff command implementations.
package sync

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/labelsync/cmd/application"
)

// NewCommand creates the sync command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var flags *Flags

	cmd := &cobra.Command{
		Use:     "sync <owner/repo>...",
		GroupID: "core",
		Short:   "Synchronize repository labels with a label configuration",
		Args:    cobra.MinimumNArgs(1),
		Long: `Sync makes the labels of each repository match the label configuration.

For every repository the command:
• Validates the configured labels
• Lists the labels the repository has
• Calculates the labels to create, update, merge and delete
• Applies the changes, unless --dry-run is given

Labels listed as aliases of a configured label are renamed, or merged into
it when the configured label already exists: every issue and pull request
carrying the alias gets the configured label before the alias is deleted.

Repositories are processed one after another. The command fails if any
repository fails, after attempting all of them.`,
		Example: `  labelsync sync octo/hello                         # Sync using ./labels.json
  labelsync sync octo/hello -l labels.yml           # Use a YAML configuration
  labelsync sync octo/hello -l base.json -l extra.json
  labelsync sync octo/hello --dry-run               # Preview changes
  labelsync sync octo/hello -A                      # Keep unconfigured labels
  labelsync sync octo/a octo/b -o markdown          # Report for a CI summary`,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := flags.apply(cmd, app.Settings())
			return Execute(cmd.Context(), app, settings, args, cmd.OutOrStdout())
		},
	}

	flags = addFlags(cmd, true)

	return cmd
}

// NewDiffCommand creates the diff command: a sync that never applies changes.
func NewDiffCommand(app application.Application) *cobra.Command {
	var flags *Flags

	cmd := &cobra.Command{
		Use:     "diff <owner/repo>...",
		GroupID: "core",
		Short:   "Show the label changes a sync would make",
		Args:    cobra.MinimumNArgs(1),
		Long: `Diff calculates the label changes for each repository without applying
them. It is equivalent to "labelsync sync --dry-run".`,
		Example: `  labelsync diff octo/hello
  labelsync diff octo/hello -o patch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := flags.apply(cmd, app.Settings())
			settings.DryRun = true
			return Execute(cmd.Context(), app, settings, args, cmd.OutOrStdout())
		},
	}

	flags = addFlags(cmd, false)

	return cmd
}
