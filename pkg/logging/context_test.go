package logging_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/labelsync/pkg/logging"
)

func TestContextFields(t *testing.T) {
	tests := []struct {
		name  string
		apply func(context.Context) context.Context
		want  string
	}{
		{"WithRepo", func(ctx context.Context) context.Context { return logging.WithRepo(ctx, "octo/hello") }, `"repo":"octo/hello"`},
		{"WithLabel", func(ctx context.Context) context.Context { return logging.WithLabel(ctx, "bug") }, `"label":"bug"`},
		{"WithOperation", func(ctx context.Context) context.Context { return logging.WithOperation(ctx, "merge") }, `"operation":"merge"`},
		{"WithRunID", func(ctx context.Context) context.Context { return logging.WithRunID(ctx, "run-1") }, `"run_id":"run-1"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tl := logging.NewTestLogger(t)
			ctx := tt.apply(logging.WithLogger(context.Background(), tl.Logger))

			logging.FromContext(ctx).Info().Msg("event")

			tl.AssertContains(t, tt.want)
		})
	}
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	assert.Same(t, logging.Default(), logging.FromContext(context.Background()))
	assert.Same(t, logging.Default(), logging.FromContext(nil)) //nolint:staticcheck
}
