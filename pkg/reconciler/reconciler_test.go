package reconciler_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/agentstation/labelsync/pkg/errors"
	"github.com/agentstation/labelsync/pkg/labels"
	"github.com/agentstation/labelsync/pkg/logging"
	"github.com/agentstation/labelsync/pkg/reconciler"
	"github.com/agentstation/labelsync/pkg/store"
	"github.com/agentstation/labelsync/pkg/store/memory"
)

const repo = "octo/hello"

func label(name, color string) *labels.Label {
	return &labels.Label{Name: name, Color: color}
}

func quiet() reconciler.Option {
	return reconciler.WithLogger(logging.NewNopLogger())
}

func TestPlan(t *testing.T) {
	s := memory.New()
	diff := []labels.Entry{
		{Name: "new", Type: labels.Missing, Expected: label("new", "00ff00")},
		{Name: "old", Type: labels.Changed, Actual: label("old", "ff0000"), Expected: label("new name", "ff0000")},
		{Name: "dup", Type: labels.Merge, Actual: label("dup", "ff0000"), Expected: label("new", "00ff00")},
		{Name: "gone", Type: labels.Added, Actual: label("gone", "000000")},
		{Name: "weird", Type: "renamed"},
		{Name: "broken", Type: labels.Missing},
		{Name: "broken", Type: labels.Changed},
		{Type: labels.Added},
	}

	actions := reconciler.Plan(s, repo, diff)
	require.Len(t, actions, 4)

	kinds := make([]reconciler.Kind, 0, len(actions))
	for _, a := range actions {
		kinds = append(kinds, a.Kind)
		assert.Equal(t, repo, a.Repo)
	}
	assert.Equal(t, []reconciler.Kind{reconciler.KindCreate, reconciler.KindUpdate, reconciler.KindMerge, reconciler.KindDelete}, kinds)
	assert.Equal(t, "old", actions[1].Target())
}

func TestPlanNeverPanics(t *testing.T) {
	assert.NotPanics(t, func() {
		actions := reconciler.Plan(nil, repo, []labels.Entry{{}, {Type: labels.Merge}, {Type: labels.Added, Actual: label("x", "000000")}})
		assert.Len(t, actions, 1)
	})
}

func TestApply(t *testing.T) {
	ctx := context.Background()

	t.Run("missing creates the expected label", func(t *testing.T) {
		s := memory.New()
		expected := &labels.Label{Name: "bar", Color: "00ff00", Description: labels.String("Bar")}

		result, err := reconciler.Apply(ctx, s, repo, []labels.Entry{{Name: "bar", Type: labels.Missing, Expected: expected}}, quiet())
		require.NoError(t, err)
		assert.Equal(t, 1, result.Succeeded())

		calls := s.MutatingCalls()
		require.Len(t, calls, 1)
		assert.Equal(t, store.OpCreateLabel, calls[0].Op)
		assert.Equal(t, expected, calls[0].Label)
	})

	t.Run("changed updates by current name", func(t *testing.T) {
		s := memory.New(memory.WithLabels(repo, labels.Label{Name: "FOO", Color: "ff0000"}))

		_, err := reconciler.Apply(ctx, s, repo, []labels.Entry{
			{Name: "FOO", Type: labels.Changed, Actual: label("FOO", "ff0000"), Expected: label("foo", "00ff00")},
		}, quiet())
		require.NoError(t, err)

		calls := s.MutatingCalls()
		require.Len(t, calls, 1)
		assert.Equal(t, store.OpUpdateLabel, calls[0].Op)
		assert.Equal(t, "FOO", calls[0].Name)
		assert.Equal(t, "foo", calls[0].Label.Name)
		assert.Equal(t, []labels.Label{{Name: "foo", Color: "00ff00"}}, s.Labels(repo))
	})

	t.Run("added deletes the label", func(t *testing.T) {
		s := memory.New(memory.WithLabels(repo, labels.Label{Name: "gone", Color: "000000"}))

		_, err := reconciler.Apply(ctx, s, repo, []labels.Entry{
			{Name: "gone", Type: labels.Added, Actual: label("gone", "000000")},
		}, quiet())
		require.NoError(t, err)
		assert.Empty(t, s.Labels(repo))
	})

	t.Run("deleting an absent label succeeds", func(t *testing.T) {
		s := memory.New()

		result, err := reconciler.Apply(ctx, s, repo, []labels.Entry{
			{Name: "gone", Type: labels.Added, Actual: label("gone", "000000")},
		}, quiet())
		require.NoError(t, err)
		require.Len(t, result.Outcomes, 1)
		assert.True(t, result.Outcomes[0].AlreadyAbsent)
	})

	t.Run("unknown entries are ignored", func(t *testing.T) {
		s := memory.New()

		result, err := reconciler.Apply(ctx, s, repo, []labels.Entry{{Name: "x", Type: "bogus"}}, quiet())
		require.NoError(t, err)
		assert.Empty(t, result.Outcomes)
		assert.Empty(t, s.Calls())
	})

	t.Run("nil store is rejected", func(t *testing.T) {
		_, err := reconciler.Apply(ctx, nil, repo, nil)
		assert.True(t, pkgerrors.IsValidationError(err))
	})
}

func mergeStore(opts ...memory.Option) *memory.Store {
	base := []memory.Option{
		memory.WithLabels(repo,
			labels.Label{Name: "foo", Color: "0000ff"},
			labels.Label{Name: "bar", Color: "00ff00"},
		),
		memory.WithRecords(repo,
			labels.Record{Number: 1, Labels: []string{"bar"}},
			labels.Record{Number: 2, Labels: []string{"bar", "foo"}},
			labels.Record{Number: 3, Labels: []string{"bar"}},
			labels.Record{Number: 4, Labels: []string{"other"}},
		),
	}
	return memory.New(append(base, opts...)...)
}

var mergeEntry = labels.Entry{
	Name:     "bar",
	Type:     labels.Merge,
	Actual:   label("bar", "00ff00"),
	Expected: label("foo", "0000ff"),
}

func TestMerge(t *testing.T) {
	ctx := context.Background()

	t.Run("relabels before deleting", func(t *testing.T) {
		s := mergeStore(memory.WithDelay(time.Millisecond))

		result, err := reconciler.Apply(ctx, s, repo, []labels.Entry{mergeEntry}, quiet())
		require.NoError(t, err)

		calls := s.Calls()
		require.Len(t, calls, 4)
		assert.Equal(t, store.OpListRecordsByLabel, calls[0].Op)
		assert.Equal(t, "bar", calls[0].Name)

		applied := map[int]bool{}
		for _, c := range calls[1:3] {
			assert.Equal(t, store.OpApplyLabel, c.Op)
			assert.Equal(t, "foo", c.Name)
			applied[c.Number] = true
		}
		assert.Equal(t, map[int]bool{1: true, 3: true}, applied)

		assert.Equal(t, store.OpDeleteLabel, calls[3].Op)
		assert.Equal(t, "bar", calls[3].Name)

		outcome := result.Outcomes[0]
		assert.Equal(t, 2, outcome.Relabeled)
		assert.Equal(t, 1, outcome.Skipped)

		for _, n := range []int{1, 2, 3} {
			rec, _ := s.Record(repo, n)
			assert.Equal(t, []string{"foo"}, rec.Labels)
		}
		assert.Equal(t, []labels.Label{{Name: "foo", Color: "0000ff"}}, s.Labels(repo))
	})

	t.Run("records already labeled are never relabeled", func(t *testing.T) {
		s := mergeStore()

		_, err := reconciler.Apply(ctx, s, repo, []labels.Entry{mergeEntry}, quiet())
		require.NoError(t, err)

		for _, c := range s.CallsFor(store.OpApplyLabel) {
			assert.NotEqual(t, 2, c.Number)
		}
		assert.Len(t, s.CallsFor(store.OpDeleteLabel), 1)
	})

	t.Run("all records already labeled still deletes", func(t *testing.T) {
		s := memory.New(
			memory.WithLabels(repo, labels.Label{Name: "foo", Color: "0000ff"}, labels.Label{Name: "bar", Color: "00ff00"}),
			memory.WithRecords(repo, labels.Record{Number: 9, Labels: []string{"bar", "FOO"}}),
		)

		result, err := reconciler.Apply(ctx, s, repo, []labels.Entry{mergeEntry}, quiet())
		require.NoError(t, err)
		assert.Empty(t, s.CallsFor(store.OpApplyLabel))
		assert.Len(t, s.CallsFor(store.OpDeleteLabel), 1)
		assert.Equal(t, 1, result.Outcomes[0].Skipped)
	})

	t.Run("failed relabel keeps the retiring label", func(t *testing.T) {
		s := mergeStore()
		s.FailOn(store.OpApplyLabel, "foo", pkgerrors.NewAPIError("POST", "/repos/octo/hello/issues/1/labels", 502, "Bad Gateway"))

		result, err := reconciler.Apply(ctx, s, repo, []labels.Entry{mergeEntry}, quiet())
		require.Error(t, err)
		assert.True(t, pkgerrors.IsTransient(err))
		assert.Empty(t, s.CallsFor(store.OpDeleteLabel))
		assert.Len(t, s.Labels(repo), 2)
		assert.Zero(t, result.Outcomes[0].Relabeled)
	})

	t.Run("failed listing stops the merge", func(t *testing.T) {
		s := mergeStore()
		s.FailOn(store.OpListRecordsByLabel, "bar", pkgerrors.NewAPIError("GET", "/repos/octo/hello/issues", 500, "boom"))

		_, err := reconciler.Apply(ctx, s, repo, []labels.Entry{mergeEntry}, quiet())
		require.Error(t, err)
		assert.Len(t, s.Calls(), 1)
	})

	t.Run("rerun after completion is a no-op delete", func(t *testing.T) {
		s := mergeStore()
		_, err := reconciler.Apply(ctx, s, repo, []labels.Entry{mergeEntry}, quiet())
		require.NoError(t, err)
		s.ResetCalls()

		result, err := reconciler.Apply(ctx, s, repo, []labels.Entry{mergeEntry}, quiet())
		require.NoError(t, err)
		assert.Empty(t, s.CallsFor(store.OpApplyLabel))
		assert.True(t, result.Outcomes[0].AlreadyAbsent)
	})
}

func TestExecuteCollectsAllFailures(t *testing.T) {
	ctx := context.Background()
	s := memory.New(memory.WithLabels(repo, labels.Label{Name: "a", Color: "000000"}, labels.Label{Name: "b", Color: "000000"}))
	s.FailOn(store.OpCreateLabel, "new", pkgerrors.NewAPIError("POST", "/repos/octo/hello/labels", 422, "Validation Failed: already_exists"))
	s.FailOn(store.OpDeleteLabel, "b", pkgerrors.NewAPIError("DELETE", "/repos/octo/hello/labels/b", 503, "Unavailable"))

	diff := []labels.Entry{
		{Name: "new", Type: labels.Missing, Expected: label("new", "ffffff")},
		{Name: "a", Type: labels.Changed, Actual: label("a", "000000"), Expected: label("a", "111111")},
		{Name: "b", Type: labels.Added, Actual: label("b", "000000")},
	}

	result, err := reconciler.Apply(ctx, s, repo, diff, quiet())
	require.Error(t, err)
	assert.True(t, pkgerrors.IsAlreadyExists(err))
	assert.True(t, pkgerrors.IsTransient(err))

	assert.Equal(t, 1, result.Succeeded())
	failed := result.Failed()
	require.Len(t, failed, 2)
	assert.Equal(t, "new", failed[0].Action.Target())
	assert.Equal(t, "b", failed[1].Action.Target())
	assert.Contains(t, err.Error(), "failed to create label new")
	assert.Equal(t, []labels.Label{{Name: "a", Color: "111111"}, {Name: "b", Color: "000000"}}, s.Labels(repo))
}

func TestExecuteConcurrency(t *testing.T) {
	ctx := context.Background()
	var diff []labels.Entry
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		diff = append(diff, labels.Entry{Name: name, Type: labels.Missing, Expected: label(name, "000000")})
	}

	t.Run("dispatches concurrently", func(t *testing.T) {
		s := memory.New(memory.WithDelay(20 * time.Millisecond))
		_, err := reconciler.Apply(ctx, s, repo, diff, quiet(), reconciler.WithConcurrency(8))
		require.NoError(t, err)
		assert.Greater(t, s.MaxInFlight(), 1)
	})

	t.Run("bounded by the concurrency option", func(t *testing.T) {
		s := memory.New(memory.WithDelay(5 * time.Millisecond))
		_, err := reconciler.Apply(ctx, s, repo, diff, quiet(), reconciler.WithConcurrency(2))
		require.NoError(t, err)
		assert.LessOrEqual(t, s.MaxInFlight(), 2)
		assert.Len(t, s.Labels(repo), 8)
	})

	t.Run("bound covers merge fan-out", func(t *testing.T) {
		var records []labels.Record
		for n := 1; n <= 10; n++ {
			records = append(records, labels.Record{Number: n, Labels: []string{"bar"}})
		}
		s := memory.New(
			memory.WithDelay(2*time.Millisecond),
			memory.WithLabels(repo, labels.Label{Name: "foo", Color: "0000ff"}, labels.Label{Name: "bar", Color: "00ff00"}),
			memory.WithRecords(repo, records...),
		)

		_, err := reconciler.Apply(ctx, s, repo, append([]labels.Entry{mergeEntry}, diff...), quiet(), reconciler.WithConcurrency(3))
		require.NoError(t, err)
		assert.LessOrEqual(t, s.MaxInFlight(), 3)
		assert.Len(t, s.CallsFor(store.OpApplyLabel), 10)
	})

	t.Run("invalid concurrency", func(t *testing.T) {
		_, err := reconciler.Apply(ctx, memory.New(), repo, diff, reconciler.WithConcurrency(0))
		assert.True(t, pkgerrors.IsValidationError(err))
	})
}

func TestExecuteLogs(t *testing.T) {
	tl := logging.NewTestLogger(t)
	s := memory.New()

	_, err := reconciler.Apply(context.Background(), s, repo, []labels.Entry{
		{Name: "bar", Type: labels.Missing, Expected: label("bar", "00ff00")},
	}, reconciler.WithLogger(tl.Logger))
	require.NoError(t, err)

	tl.AssertContains(t, `"operation":"create"`)
	tl.AssertContains(t, `"label":"bar"`)
	tl.AssertContains(t, "Label action completed")
}
