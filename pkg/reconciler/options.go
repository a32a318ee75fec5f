package reconciler

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/labelsync/pkg/constants"
	"github.com/agentstation/labelsync/pkg/errors"
)

type options struct {
	concurrency int
	logger      *zerolog.Logger
}

func defaultOptions() *options {
	return &options{
		concurrency: constants.DefaultConcurrency,
	}
}

// Option configures how actions are executed.
type Option func(*options) error

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithConcurrency bounds the number of remote calls in flight at once,
// counting both top-level actions and the relabel calls of merges.
func WithConcurrency(n int) Option {
	return func(o *options) error {
		if n < 1 {
			return &errors.ValidationError{
				Field:   "concurrency",
				Value:   n,
				Message: "must be at least 1",
			}
		}
		o.concurrency = n
		return nil
	}
}

// WithLogger sets the logger actions report to. By default the logger
// carried by the context is used.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		if logger == nil {
			return &errors.ValidationError{
				Field:   "logger",
				Message: "cannot be nil",
			}
		}
		o.logger = logger
		return nil
	}
}
