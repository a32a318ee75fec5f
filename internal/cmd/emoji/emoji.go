// Package emoji provides symbol constants for CLI output.
// These symbols create a consistent visual language across all command-line commands.
package emoji

import "github.com/agentstation/labelsync/pkg/labels"

// Status symbols.
const (
	// Success represents successful completion of an operation.
	// Used for: applied changes, valid label documents.
	Success = "✓"

	// Error represents a failed operation.
	// Used for: failed label actions, invalid label documents.
	Error = "✗"

	// Warning represents a non-critical issue, such as a missing access token.
	Warning = "!"

	// Info represents informational messages.
	Info = "i"

	// Pointer prefixes one reported diff line.
	Pointer = ">"
)

// Change symbols, one per diff entry type.
const (
	// Create marks a label that will be created.
	Create = "+"

	// Update marks a label that will be updated in place.
	Update = "~"

	// Merge marks a label that will be merged into another and deleted.
	Merge = "»"

	// Delete marks a label that will be deleted.
	Delete = "-"
)

// ForEntry returns the change symbol of an entry type.
func ForEntry(t labels.EntryType) string {
	switch t {
	case labels.Missing:
		return Create
	case labels.Changed:
		return Update
	case labels.Merge:
		return Merge
	case labels.Added:
		return Delete
	default:
		return "?"
	}
}
