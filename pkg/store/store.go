// Package store defines the contract between the reconciliation engine and
// a remote collection of labels, such as a GitHub repository.
package store

import (
	"context"

	"github.com/agentstation/labelsync/pkg/labels"
)

// Store reads and mutates the labels of a repository.
//
// Listing methods return complete results, draining any pagination
// internally. Failed calls return an *errors.APIError identifying the
// method, endpoint and status, so callers can tell not found, conflict
// and transient failures apart with the pkg/errors predicates.
type Store interface {
	// ListLabels returns every label of repo.
	ListLabels(ctx context.Context, repo string) ([]labels.Label, error)

	// CreateLabel creates label in repo. It fails with a conflict if a
	// label of that name exists.
	CreateLabel(ctx context.Context, repo string, label labels.Label) (labels.Label, error)

	// UpdateLabel updates the label currently named name to match label.
	// A differing label.Name renames it.
	UpdateLabel(ctx context.Context, repo, name string, label labels.Label) (labels.Label, error)

	// ListRecordsByLabel returns every issue and pull request carrying name.
	ListRecordsByLabel(ctx context.Context, repo, name string) ([]labels.Record, error)

	// ApplyLabel adds the label name to record number.
	ApplyLabel(ctx context.Context, repo string, number int, name string) error

	// DeleteLabel deletes the label name. Deleting an absent label fails
	// with a not found error.
	DeleteLabel(ctx context.Context, repo, name string) error
}

// Operation names a Store method, used in logs and recorded calls.
type Operation string

const (
	OpListLabels         Operation = "list_labels"
	OpCreateLabel        Operation = "create_label"
	OpUpdateLabel        Operation = "update_label"
	OpListRecordsByLabel Operation = "list_records"
	OpApplyLabel         Operation = "apply_label"
	OpDeleteLabel        Operation = "delete_label"
)
