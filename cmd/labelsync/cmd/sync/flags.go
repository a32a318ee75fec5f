package sync

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/agentstation/labelsync/cmd/application"
)

// Flags holds the sync command flags.
type Flags struct {
	AccessToken      string
	Labels           []string
	DryRun           bool
	AllowAddedLabels bool
	Endpoint         string
	Concurrency      int
	Timeout          time.Duration
	Store            string
}

// addFlags registers the sync flags on cmd. dryRun is false for commands
// that always run dry.
func addFlags(cmd *cobra.Command, dryRun bool) *Flags {
	flags := &Flags{}
	f := cmd.Flags()

	f.StringVarP(&flags.AccessToken, "access-token", "a", "",
		"a GitHub access token (also settable with a GITHUB_ACCESS_TOKEN environment variable)")
	f.StringArrayVarP(&flags.Labels, "labels", "l", nil,
		"the path or URL to look for the label configuration in (repeatable). Default: labels.json")
	if dryRun {
		f.BoolVarP(&flags.DryRun, "dry-run", "d", false,
			"calculate the required label changes but do not apply them")
	}
	f.BoolVarP(&flags.AllowAddedLabels, "allow-added-labels", "A", false,
		"allow additional labels in the repo, and don't delete them")
	f.StringVarP(&flags.Endpoint, "endpoint", "e", "",
		"specify a GitHub enterprise installation API URL")
	f.IntVar(&flags.Concurrency, "concurrency", 0,
		"maximum number of GitHub requests in flight at once")
	f.DurationVar(&flags.Timeout, "timeout", 0,
		"abort a repository's sync after this long (0 for no limit)")
	f.StringVar(&flags.Store, "store", "",
		"label store: github or memory (offline rehearsal against an empty repository)")

	return flags
}

// apply overlays the flags the user set on settings.
func (f *Flags) apply(cmd *cobra.Command, settings application.Settings) application.Settings {
	changed := cmd.Flags().Changed

	if changed("access-token") {
		settings.AccessToken = f.AccessToken
	}
	if changed("labels") {
		settings.Labels = f.Labels
	}
	if changed("dry-run") {
		settings.DryRun = f.DryRun
	}
	if changed("allow-added-labels") {
		settings.AllowAddedLabels = f.AllowAddedLabels
	}
	if changed("endpoint") {
		settings.Endpoint = f.Endpoint
	}
	if changed("concurrency") {
		settings.Concurrency = f.Concurrency
	}
	if changed("timeout") {
		settings.Timeout = f.Timeout
	}
	if changed("store") {
		settings.Store = f.Store
	}
	return settings
}
