// Package labelsync reconciles the labels of a repository with a declared
// configuration. A run validates the configuration, reads the repository's
// labels, calculates the difference and, unless it is a dry run, applies
// the changes through a label store.
//
// Basic usage:
//
//	store := github.New(transport.New(&transport.BearerAuth{}, token))
//	result, err := labelsync.Sync(ctx, store, "octo/hello", configured,
//		labelsync.WithDryRun(true),
//	)
//	if err != nil {
//		return err
//	}
//	fmt.Println(result.Message())
package labelsync

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/agentstation/labelsync/pkg/differ"
	"github.com/agentstation/labelsync/pkg/errors"
	"github.com/agentstation/labelsync/pkg/labels"
	"github.com/agentstation/labelsync/pkg/logging"
	"github.com/agentstation/labelsync/pkg/reconciler"
	"github.com/agentstation/labelsync/pkg/store"
	"github.com/agentstation/labelsync/pkg/validation"
)

// Sync reconciles the labels of repo with configured.
//
// Invalid configuration, including repeated names with conflicting
// definitions, is reported with every violation at once before the store
// is contacted. When applying changes fails partway, Sync returns
// both the Result, describing every action, and the joined errors.
func Sync(ctx context.Context, s store.Store, repo string, configured []labels.ConfiguredLabel, opts ...Option) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if s == nil {
		return nil, &errors.ValidationError{Field: "store", Message: "cannot be nil"}
	}
	if repo == "" {
		return nil, &errors.ValidationError{Field: "repo", Message: "cannot be empty"}
	}

	cfg, err := defaultConfig().apply(opts...)
	if err != nil {
		return nil, err
	}

	if cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.timeout)
		defer cancel()
	}

	result := &Result{
		RunID:     uuid.NewString(),
		Repo:      repo,
		DryRun:    cfg.dryRun,
		StartTime: time.Now(),
	}
	defer func() {
		result.Duration = time.Since(result.StartTime)
	}()

	if cfg.logger != nil {
		ctx = logging.WithLogger(ctx, cfg.logger)
	}
	ctx = logging.WithRunID(ctx, result.RunID)
	ctx = logging.WithRepo(ctx, repo)
	log := logging.FromContext(ctx)

	configured, err = checkConfiguration(configured)
	if err != nil {
		log.Error().Err(err).Msg("Label configuration is invalid")
		return nil, err
	}

	log.Debug().Msg("Fetching current labels")
	current, err := s.ListLabels(ctx, repo)
	if err != nil {
		return nil, errors.WrapResource("list", "labels", repo, err)
	}
	result.Current = current

	diff, err := differ.Calculate(current, configured, cfg.allowAdded)
	if err != nil {
		return nil, err
	}
	result.Diff = diff
	result.Summary = differ.Summarize(diff)

	for _, line := range differ.Lines(diff) {
		log.Debug().Msg(line)
	}
	cfg.hooks.triggerEntries(diff)

	if len(diff) == 0 {
		log.Info().Msg(result.Message())
		return result, nil
	}
	if cfg.dryRun {
		log.Info().Str("summary", result.Summary.String()).Msg(result.Message())
		return result, nil
	}

	applied, err := reconciler.Apply(ctx, s, repo, diff,
		reconciler.WithConcurrency(cfg.concurrency),
		reconciler.WithLogger(log),
	)
	result.Applied = applied
	cfg.hooks.triggerOutcomes(applied)
	if err != nil {
		log.Error().Err(err).Msg("Applying label changes failed")
		return result, err
	}

	log.Info().
		Str("summary", result.Summary.String()).
		Int("relabeled", applied.Relabeled()).
		Msg(result.Message())
	return result, nil
}

// checkConfiguration validates every configured label and collapses
// repeated names. Schema violations and conflicting repeats are reported
// together.
func checkConfiguration(configured []labels.ConfiguredLabel) ([]labels.ConfiguredLabel, error) {
	invalid := validation.Labels(configured)
	deduped, conflict := differ.Dedupe(configured)
	if err := errors.Join(invalid, conflict); err != nil {
		return nil, err
	}
	return deduped, nil
}
