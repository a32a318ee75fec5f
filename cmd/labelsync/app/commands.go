package app

import (
	"github.com/spf13/cobra"

	synccmd "github.com/agentstation/labelsync/cmd/labelsync/cmd/sync"
	"github.com/agentstation/labelsync/cmd/labelsync/cmd/validate"
)

// CreateSyncCommand creates the sync command with app dependencies.
func (a *App) CreateSyncCommand() *cobra.Command {
	return synccmd.NewCommand(a)
}

// CreateDiffCommand creates the diff command with app dependencies.
func (a *App) CreateDiffCommand() *cobra.Command {
	return synccmd.NewDiffCommand(a)
}

// CreateValidateCommand creates the validate command with app dependencies.
func (a *App) CreateValidateCommand() *cobra.Command {
	return validate.NewCommand(a)
}

// CreateVersionCommand creates the version command.
func (a *App) CreateVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("labelsync %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}
