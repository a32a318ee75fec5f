package labelsync

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/labelsync/pkg/constants"
	"github.com/agentstation/labelsync/pkg/errors"
)

// Option configures a sync run.
type Option func(*config) error

type config struct {
	dryRun      bool
	allowAdded  bool
	concurrency int
	timeout     time.Duration
	logger      *zerolog.Logger
	hooks       *hooks
}

func defaultConfig() *config {
	return &config{
		concurrency: constants.DefaultConcurrency,
		hooks:       newHooks(),
	}
}

func (c *config) apply(opts ...Option) (*config, error) {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// WithDryRun calculates the changes without applying them.
func WithDryRun(enabled bool) Option {
	return func(c *config) error {
		c.dryRun = enabled
		return nil
	}
}

// WithAllowAddedLabels keeps labels that exist in the repository but are
// not configured, instead of deleting them.
func WithAllowAddedLabels(enabled bool) Option {
	return func(c *config) error {
		c.allowAdded = enabled
		return nil
	}
}

// WithConcurrency bounds the number of remote calls in flight at once.
func WithConcurrency(n int) Option {
	return func(c *config) error {
		if n < 1 {
			return &errors.ValidationError{Field: "concurrency", Value: n, Message: "must be at least 1"}
		}
		c.concurrency = n
		return nil
	}
}

// WithTimeout bounds the whole run. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *config) error {
		if d < 0 {
			return &errors.ValidationError{Field: "timeout", Value: d, Message: "cannot be negative"}
		}
		c.timeout = d
		return nil
	}
}

// WithLogger sets the logger the run reports to. Without it the logger
// carried by the context is used.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) error {
		if logger == nil {
			return &errors.ValidationError{Field: "logger", Message: "cannot be nil"}
		}
		c.logger = logger
		return nil
	}
}

// WithEntryHook registers fn to be called with every diff entry, in diff
// order, before any change is applied.
func WithEntryHook(fn EntryHook) Option {
	return func(c *config) error {
		c.hooks.OnEntry(fn)
		return nil
	}
}

// WithOutcomeHook registers fn to be called with the outcome of every
// applied action, in plan order.
func WithOutcomeHook(fn OutcomeHook) Option {
	return func(c *config) error {
		c.hooks.OnOutcome(fn)
		return nil
	}
}
