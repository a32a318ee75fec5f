package logging_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/agentstation/labelsync/pkg/logging"
)

func TestSetDefault(t *testing.T) {
	original := *logging.Default()
	t.Cleanup(func() {
		logging.SetDefault(original)
	})

	buf := &bytes.Buffer{}
	logging.SetDefault(zerolog.New(buf))

	logging.FromContext(context.Background()).Warn().Msg("from default")
	assert.Contains(t, buf.String(), "from default")
}

func TestContextLogger(t *testing.T) {
	testLogger := logging.NewTestLogger(t)

	ctx := logging.WithLogger(context.Background(), testLogger.Logger)
	ctx = logging.WithRepo(ctx, "octo/hello")
	ctx = logging.WithLabel(ctx, "enhancement")

	logging.FromContext(ctx).Info().Msg("label updated")

	testLogger.AssertContains(t, "octo/hello")
	testLogger.AssertContains(t, "enhancement")
	testLogger.AssertContains(t, "label updated")
}

func TestTestLogger(t *testing.T) {
	tl := logging.NewTestLogger(t)

	tl.Info().Msg("message 1")
	tl.Error().Err(nil).Msg("message 2")

	tl.AssertContains(t, "message 1")
	tl.AssertNotContains(t, "message 3")
	tl.AssertCount(t, 2)
	assert.True(t, tl.ContainsAll("message 1", "message 2"))

	tl.Clear()
	assert.Zero(t, tl.Count())
}

func TestRetryLogger(t *testing.T) {
	tl := logging.NewTestLogger(t)
	rl := logging.NewRetryLogger(tl.Logger)

	rl.Debug("performing request", "method", "GET", "url", "https://api.github.com/repos/octo/hello/labels")
	rl.Warn("retrying request", "attempt", 2, "error", errors.New("connection reset"))
	rl.Error("giving up", "dangling")

	tl.AssertContains(t, `"method":"GET"`)
	tl.AssertContains(t, `"attempt":2`)
	tl.AssertContains(t, `"error":"connection reset"`)
	tl.AssertContains(t, `"level":"trace"`)
	tl.AssertContains(t, "giving up")
	tl.AssertNotContains(t, "dangling")
	tl.AssertCount(t, 3)
}
