package reconciler

import (
	"github.com/agentstation/labelsync/pkg/labels"
	"github.com/agentstation/labelsync/pkg/store"
)

// Kind is the remote operation an action performs.
type Kind string

const (
	// KindCreate creates a missing label.
	KindCreate Kind = "create"
	// KindUpdate edits a changed label in place, renaming it if needed.
	KindUpdate Kind = "update"
	// KindMerge moves records from a retiring label to the surviving one,
	// then deletes the retiring label.
	KindMerge Kind = "merge"
	// KindDelete deletes an added label.
	KindDelete Kind = "delete"
)

// Action is one planned remote operation derived from a diff entry.
type Action struct {
	Kind  Kind
	Repo  string
	Entry labels.Entry

	store store.Store
}

// Target returns the name of the label the action addresses in the
// repository as it currently is.
func (a Action) Target() string {
	return entryName(a.Entry)
}

// Plan maps each diff entry to the action that realizes it. Entries of
// unknown type, or lacking the label shapes their type requires, produce
// no action.
func Plan(s store.Store, repo string, diff []labels.Entry) []Action {
	actions := make([]Action, 0, len(diff))
	for _, entry := range diff {
		kind, ok := kindOf(entry)
		if !ok {
			continue
		}
		actions = append(actions, Action{Kind: kind, Repo: repo, Entry: entry, store: s})
	}
	return actions
}

func kindOf(entry labels.Entry) (Kind, bool) {
	switch entry.Type {
	case labels.Missing:
		return KindCreate, entry.Expected != nil && entry.Expected.Name != ""
	case labels.Changed:
		return KindUpdate, entry.Expected != nil && entryName(entry) != ""
	case labels.Merge:
		return KindMerge, entry.Expected != nil && entry.Expected.Name != "" && entryName(entry) != ""
	case labels.Added:
		return KindDelete, entryName(entry) != ""
	}
	return "", false
}

// entryName is the name the remote store knows the entry's label by.
func entryName(entry labels.Entry) string {
	if entry.Name != "" {
		return entry.Name
	}
	if entry.Actual != nil {
		return entry.Actual.Name
	}
	if entry.Expected != nil {
		return entry.Expected.Name
	}
	return ""
}
