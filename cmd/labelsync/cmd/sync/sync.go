package sync

import (
	"context"
	"io"

	"github.com/agentstation/labelsync"
	"github.com/agentstation/labelsync/cmd/application"
	"github.com/agentstation/labelsync/internal/cmd/output"
	"github.com/agentstation/labelsync/pkg/errors"
	"github.com/agentstation/labelsync/pkg/validation"
)

// Execute loads the configured labels once and syncs every repository in
// repos, then writes the report to w. Errors from all repositories are
// returned together.
func Execute(ctx context.Context, app application.Application, settings application.Settings, repos []string, w io.Writer) error {
	logger := app.Logger()

	format, err := output.ParseFormat(app.OutputFormat())
	if err != nil {
		return err
	}

	configured, err := app.LoadLabels(ctx, settings.Labels)
	if err != nil {
		return err
	}
	if err := validation.Labels(configured); err != nil {
		return err
	}

	st, err := app.Store(settings)
	if err != nil {
		return err
	}

	opts := []labelsync.Option{
		labelsync.WithDryRun(settings.DryRun),
		labelsync.WithAllowAddedLabels(settings.AllowAddedLabels),
		labelsync.WithTimeout(settings.Timeout),
		labelsync.WithLogger(logger),
	}
	if settings.Concurrency > 0 {
		opts = append(opts, labelsync.WithConcurrency(settings.Concurrency))
	}

	results := make([]*labelsync.Result, 0, len(repos))
	var errs []error
	for _, repo := range repos {
		logger.Debug().Str("repo", repo).Bool("dry_run", settings.DryRun).Msg("Syncing labels")

		result, err := labelsync.Sync(ctx, st, repo, configured, opts...)
		if result != nil {
			results = append(results, result)
		}
		if err != nil {
			errs = append(errs, err)
			if ctx.Err() != nil {
				break
			}
		}
	}

	if err := output.Render(w, format, results, output.Options{Color: app.UseColor()}); err != nil {
		errs = append(errs, errors.WrapIO("write", "report", err))
	}
	return errors.Join(errs...)
}
