package labelsync

import (
	"time"

	"github.com/agentstation/labelsync/pkg/differ"
	"github.com/agentstation/labelsync/pkg/labels"
	"github.com/agentstation/labelsync/pkg/reconciler"
)

// Status summarises how a run ended.
type Status string

// Run statuses.
const (
	StatusUpToDate Status = "up-to-date"
	StatusDryRun   Status = "dry-run"
	StatusUpdated  Status = "updated"
	StatusFailed   Status = "failed"
)

// Result describes one sync run against one repository.
type Result struct {
	RunID   string             `json:"run_id" yaml:"run_id"`
	Repo    string             `json:"repo" yaml:"repo"`
	Current []labels.Label     `json:"current" yaml:"current"`
	Diff    []labels.Entry     `json:"diff" yaml:"diff"`
	Summary differ.Summary     `json:"summary" yaml:"summary"`
	DryRun  bool               `json:"dry_run" yaml:"dry_run"`
	Applied *reconciler.Result `json:"-" yaml:"-"`

	StartTime time.Time     `json:"start_time" yaml:"start_time"`
	Duration  time.Duration `json:"duration" yaml:"duration"`
}

// Status reports the run status. A run whose diff is empty is up to date
// even when it was a dry run.
func (r *Result) Status() Status {
	switch {
	case len(r.Diff) == 0:
		return StatusUpToDate
	case r.DryRun:
		return StatusDryRun
	case r.Applied != nil && len(r.Applied.Failed()) > 0:
		return StatusFailed
	default:
		return StatusUpdated
	}
}

// Message is the human readable form of Status.
func (r *Result) Message() string {
	switch r.Status() {
	case StatusUpToDate:
		return "Labels are already up to date"
	case StatusDryRun:
		return "This is a dry run. No changes have been made"
	case StatusFailed:
		return "Some label changes failed"
	default:
		return "Labels updated"
	}
}

// Desired returns the label set the repository has once the diff is
// applied, in the order of the current labels followed by created labels.
func (r *Result) Desired() []labels.Label {
	byName := make(map[string]labels.Entry, len(r.Diff))
	var created []labels.Label
	for _, entry := range r.Diff {
		if entry.Type == labels.Missing && entry.Expected != nil {
			created = append(created, *entry.Expected)
			continue
		}
		if entry.Actual != nil {
			byName[entry.Actual.Name] = entry
		}
	}

	desired := make([]labels.Label, 0, len(r.Current)+len(created))
	for _, current := range r.Current {
		entry, ok := byName[current.Name]
		if !ok {
			desired = append(desired, current)
			continue
		}
		switch entry.Type {
		case labels.Changed:
			if entry.Expected != nil {
				desired = append(desired, *entry.Expected)
			}
		case labels.Merge, labels.Added:
			// removed from the repository
		default:
			desired = append(desired, current)
		}
	}
	return append(desired, created...)
}
