package reconciler

import (
	"time"

	"github.com/agentstation/labelsync/pkg/errors"
)

// Outcome is what happened to one action.
type Outcome struct {
	Action Action
	Err    error

	// Relabeled counts records a merge applied the surviving label to.
	Relabeled int
	// Skipped counts records a merge found already carrying it.
	Skipped int
	// AlreadyAbsent is set when a delete found no label to delete.
	AlreadyAbsent bool
}

// Result is the outcome of executing a set of actions.
type Result struct {
	Outcomes  []Outcome
	StartTime time.Time
	Duration  time.Duration
}

// Succeeded returns the number of actions that completed without error.
func (r *Result) Succeeded() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Err == nil {
			n++
		}
	}
	return n
}

// Failed returns the outcomes of failed actions in plan order.
func (r *Result) Failed() []Outcome {
	var failed []Outcome
	for _, o := range r.Outcomes {
		if o.Err != nil {
			failed = append(failed, o)
		}
	}
	return failed
}

// Relabeled returns the number of records relabeled across all merges.
func (r *Result) Relabeled() int {
	n := 0
	for _, o := range r.Outcomes {
		n += o.Relabeled
	}
	return n
}

// Err joins the errors of all failed actions, or returns nil.
func (r *Result) Err() error {
	var errs []error
	for _, o := range r.Failed() {
		errs = append(errs, o.Err)
	}
	return errors.Join(errs...)
}
