package differ

import (
	"fmt"
	"strings"

	"github.com/agentstation/labelsync/pkg/labels"
)

// Summary counts diff entries per type.
type Summary struct {
	Missing int `json:"missing" yaml:"missing"`
	Changed int `json:"changed" yaml:"changed"`
	Merge   int `json:"merge" yaml:"merge"`
	Added   int `json:"added" yaml:"added"`
}

// Summarize counts the entries of diff by type. Unknown types are ignored.
func Summarize(diff []labels.Entry) Summary {
	var s Summary
	for _, entry := range diff {
		switch entry.Type {
		case labels.Missing:
			s.Missing++
		case labels.Changed:
			s.Changed++
		case labels.Merge:
			s.Merge++
		case labels.Added:
			s.Added++
		}
	}
	return s
}

// Total returns the number of counted entries.
func (s Summary) Total() int {
	return s.Missing + s.Changed + s.Merge + s.Added
}

// Count returns the count for one entry type.
func (s Summary) Count(t labels.EntryType) int {
	switch t {
	case labels.Missing:
		return s.Missing
	case labels.Changed:
		return s.Changed
	case labels.Merge:
		return s.Merge
	case labels.Added:
		return s.Added
	}
	return 0
}

// String implements fmt.Stringer.
func (s Summary) String() string {
	if s.Total() == 0 {
		return "no changes"
	}
	var parts []string
	for _, t := range labels.EntryTypes {
		if n := s.Count(t); n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, t))
		}
	}
	return strings.Join(parts, ", ")
}

// Lines describes each entry of diff in one human-readable line.
func Lines(diff []labels.Entry) []string {
	lines := make([]string, 0, len(diff))
	for _, entry := range diff {
		if line := Line(entry); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// Line describes a single entry. Entries of unknown type or missing the
// label shapes their type requires yield "".
func Line(entry labels.Entry) string {
	switch entry.Type {
	case labels.Missing:
		if entry.Expected == nil {
			return ""
		}
		return fmt.Sprintf("Missing: the %q label is missing from the repo. It will be created.", entry.Name)
	case labels.Changed:
		if entry.Expected == nil {
			return ""
		}
		return fmt.Sprintf("Changed: the %q label in the repo is out of date. It will be updated to %s.",
			entry.Name, describe(*entry.Expected))
	case labels.Merge:
		if entry.Expected == nil {
			return ""
		}
		return fmt.Sprintf("Merge: the %q label in the repo will be merged into %q and then deleted.",
			entry.Name, entry.Expected.Name)
	case labels.Added:
		return fmt.Sprintf("Added: the %q label in the repo is not expected. It will be deleted.", entry.Name)
	}
	return ""
}

func describe(l labels.Label) string {
	s := fmt.Sprintf("%q with color \"#%s\"", l.Name, l.Color)
	if l.Description != nil {
		s += fmt.Sprintf(" and description %q", *l.Description)
	}
	return s
}
