// Package reconciler turns a label diff into remote operations and runs
// them. Every action is dispatched concurrently and all are awaited; a
// failing action never stops the others, and every failure is reported.
//
// Merges are the one ordered protocol: records tagged with the retiring
// label are listed, those lacking the surviving label receive it
// concurrently, and only once every relabel call has succeeded is the
// retiring label deleted.
package reconciler

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/pool"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/agentstation/labelsync/pkg/errors"
	"github.com/agentstation/labelsync/pkg/labels"
	"github.com/agentstation/labelsync/pkg/logging"
	"github.com/agentstation/labelsync/pkg/store"
)

// Apply plans the actions for diff against repo and executes them.
func Apply(ctx context.Context, s store.Store, repo string, diff []labels.Entry, opts ...Option) (*Result, error) {
	if s == nil {
		return nil, &errors.ValidationError{Field: "store", Message: "cannot be nil"}
	}
	return Execute(ctx, Plan(s, repo, diff), opts...)
}

// Execute runs actions concurrently and waits for all of them to settle.
// The returned Result always describes every action; the error joins the
// failures of all failed actions in plan order.
func Execute(ctx context.Context, actions []Action, opts ...Option) (*Result, error) {
	o, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}

	logger := o.logger
	if logger == nil {
		logger = logging.FromContext(ctx)
	}

	e := &executor{
		sem:    semaphore.NewWeighted(int64(o.concurrency)),
		logger: logger,
	}

	result := &Result{
		Outcomes:  make([]Outcome, len(actions)),
		StartTime: time.Now(),
	}

	p := pool.New().WithMaxGoroutines(o.concurrency)
	for i, action := range actions {
		result.Outcomes[i].Action = action
		p.Go(func() {
			e.run(ctx, action, &result.Outcomes[i])
		})
	}
	p.Wait()

	result.Duration = time.Since(result.StartTime)
	return result, result.Err()
}

type executor struct {
	sem    *semaphore.Weighted
	logger *zerolog.Logger
}

func (e *executor) run(ctx context.Context, a Action, out *Outcome) {
	ctx = logging.WithOperation(logging.WithLogger(ctx, e.logger), string(a.Kind))
	ctx = logging.WithLabel(ctx, a.Target())
	log := logging.FromContext(ctx)

	log.Debug().Msg("Starting label action")

	var err error
	switch a.Kind {
	case KindCreate:
		err = e.call(ctx, func(ctx context.Context) error {
			_, err := a.store.CreateLabel(ctx, a.Repo, *a.Entry.Expected)
			return err
		})
	case KindUpdate:
		err = e.call(ctx, func(ctx context.Context) error {
			_, err := a.store.UpdateLabel(ctx, a.Repo, a.Target(), *a.Entry.Expected)
			return err
		})
	case KindMerge:
		err = e.merge(ctx, a, out, log)
	case KindDelete:
		err = e.delete(ctx, a, out)
	default:
		return
	}

	if err != nil {
		out.Err = errors.WrapResource(string(a.Kind), "label", a.Target(), err)
		log.Error().Err(err).Msg("Label action failed")
		return
	}
	log.Info().
		Int("relabeled", out.Relabeled).
		Int("skipped", out.Skipped).
		Bool("already_absent", out.AlreadyAbsent).
		Msg("Label action completed")
}

// merge folds the retiring label a.Target() into the surviving label.
func (e *executor) merge(ctx context.Context, a Action, out *Outcome, log *zerolog.Logger) error {
	retiring, surviving := a.Target(), a.Entry.Expected.Name

	var records []labels.Record
	err := e.call(ctx, func(ctx context.Context) error {
		var err error
		records, err = a.store.ListRecordsByLabel(ctx, a.Repo, retiring)
		return err
	})
	if err != nil {
		return err
	}

	pending := make([]labels.Record, 0, len(records))
	for _, rec := range records {
		if rec.HasLabel(surviving) {
			out.Skipped++
			continue
		}
		pending = append(pending, rec)
	}

	log.Debug().
		Int("records", len(records)).
		Int("pending", len(pending)).
		Str("into", surviving).
		Msg("Relabeling records")

	errs := make([]error, len(pending))
	var g errgroup.Group
	for i, rec := range pending {
		g.Go(func() error {
			errs[i] = e.call(ctx, func(ctx context.Context) error {
				return a.store.ApplyLabel(ctx, a.Repo, rec.Number, surviving)
			})
			return errs[i]
		})
	}
	if g.Wait() != nil {
		for _, err := range errs {
			if err == nil {
				out.Relabeled++
			}
		}
		return errors.Join(errs...)
	}
	out.Relabeled = len(pending)

	return e.delete(ctx, a, out)
}

// delete removes a.Target(). A label that is already gone counts as deleted.
func (e *executor) delete(ctx context.Context, a Action, out *Outcome) error {
	err := e.call(ctx, func(ctx context.Context) error {
		return a.store.DeleteLabel(ctx, a.Repo, a.Target())
	})
	if errors.IsNotFound(err) {
		out.AlreadyAbsent = true
		return nil
	}
	return err
}

// call runs one remote call while holding a concurrency slot.
func (e *executor) call(ctx context.Context, fn func(context.Context) error) error {
	if err := e.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer e.sem.Release(1)
	return fn(ctx)
}
