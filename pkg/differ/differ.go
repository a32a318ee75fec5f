// Package differ computes the difference between the labels a repository
// has and the labels a configuration declares. Calculation is pure: it
// performs no I/O and the same inputs always yield the same entries.
package differ

import (
	"github.com/agentstation/labelsync/pkg/errors"
	"github.com/agentstation/labelsync/pkg/labels"
)

// Calculate returns the ordered diff between current and configured labels.
//
// Entries follow the order of configured labels, each contributing the
// entries for its name match first and its alias matches after, followed
// by the current labels no configured label claimed. Unclaimed labels are
// reported as added unless allowAdded is set.
//
// Configured labels sharing a name but declaring different content abort
// the calculation with an *errors.ConfigError naming every conflict.
func Calculate(current []labels.Label, configured []labels.ConfiguredLabel, allowAdded bool) ([]labels.Entry, error) {
	configured, err := Dedupe(configured)
	if err != nil {
		return nil, err
	}

	diff := []labels.Entry{}
	resolved := labels.ResolvedSet{}

	for _, cfg := range configured {
		matches := matchIndices(current, cfg)
		for _, i := range matches {
			resolved.Add(i)
		}

		if len(matches) == 0 {
			if !cfg.Delete {
				diff = append(diff, missingEntry(cfg))
			}
			continue
		}

		for n, i := range matches {
			actual := current[i]
			if cfg.Delete {
				diff = append(diff, addedEntry(actual))
				continue
			}
			if !differs(actual, cfg) {
				continue
			}
			entry := changedEntry(actual, cfg)
			if n > 0 {
				entry.Type = labels.Merge
			}
			diff = append(diff, entry)
		}
	}

	if !allowAdded {
		for i, actual := range current {
			if !resolved.Has(i) {
				diff = append(diff, addedEntry(actual))
			}
		}
	}

	return diff, nil
}

// Dedupe collapses configured labels that repeat an earlier label's name
// with identical content, keeping the first occurrence. Repeats with
// different content are collected into a single configuration error.
func Dedupe(configured []labels.ConfiguredLabel) ([]labels.ConfiguredLabel, error) {
	seen := make(map[string]int, len(configured))
	out := make([]labels.ConfiguredLabel, 0, len(configured))
	var conflicts []string
	reported := make(map[string]bool)

	for _, cfg := range configured {
		key := labels.Fold(cfg.Name)
		first, ok := seen[key]
		if !ok {
			seen[key] = len(out)
			out = append(out, cfg)
			continue
		}
		if out[first].Equal(cfg) || reported[key] {
			continue
		}
		reported[key] = true
		conflicts = append(conflicts, cfg.Name)
	}

	if len(conflicts) > 0 {
		return nil, &errors.ConfigError{
			Component: "labels",
			Message:   "duplicate label names with conflicting definitions",
			Details:   conflicts,
			Err:       errors.ErrConflict,
		}
	}
	return out, nil
}

// matchIndices returns the indices of current labels matching cfg by name,
// followed by those matching one of its aliases. A label matched by name is
// not listed again as an alias match.
func matchIndices(current []labels.Label, cfg labels.ConfiguredLabel) []int {
	var byName, byAlias []int
	for i, actual := range current {
		if labels.EqualName(actual.Name, cfg.Name) {
			byName = append(byName, i)
		}
	}
	for i, actual := range current {
		if labels.EqualName(actual.Name, cfg.Name) {
			continue
		}
		for _, alias := range cfg.Aliases {
			if labels.EqualName(actual.Name, alias) {
				byAlias = append(byAlias, i)
				break
			}
		}
	}
	return append(byName, byAlias...)
}

func differs(actual labels.Label, cfg labels.ConfiguredLabel) bool {
	actualDescription := labels.NormalizeDescription(actual.Description, "")
	configuredDescription := labels.NormalizeDescription(cfg.Description, actualDescription)
	return actual.Name != cfg.Name ||
		!labels.EqualColor(actual.Color, cfg.Color) ||
		actualDescription != configuredDescription
}

func missingEntry(cfg labels.ConfiguredLabel) labels.Entry {
	expected := labels.Label{Name: cfg.Name, Color: labels.NormalizeColor(cfg.Color)}
	if d := labels.NormalizeDescription(cfg.Description, ""); d != "" {
		expected.Description = labels.String(d)
	}
	return labels.Entry{Name: cfg.Name, Type: labels.Missing, Expected: &expected}
}

// changedEntry carries descriptions on both sides only when at least one of
// them is non-empty, so a description-less label is not rewritten with "".
func changedEntry(actual labels.Label, cfg labels.ConfiguredLabel) labels.Entry {
	a := labels.Label{Name: actual.Name, Color: actual.Color}
	e := labels.Label{Name: cfg.Name, Color: labels.NormalizeColor(cfg.Color)}

	actualDescription := labels.NormalizeDescription(actual.Description, "")
	expectedDescription := labels.NormalizeDescription(cfg.Description, actualDescription)
	if actualDescription != expectedDescription || actualDescription != "" {
		a.Description = labels.String(actualDescription)
		e.Description = labels.String(expectedDescription)
	}

	return labels.Entry{Name: actual.Name, Type: labels.Changed, Actual: &a, Expected: &e}
}

func addedEntry(actual labels.Label) labels.Entry {
	a := labels.Label{Name: actual.Name, Color: actual.Color}
	if d := labels.NormalizeDescription(actual.Description, ""); d != "" {
		a.Description = labels.String(d)
	}
	return labels.Entry{Name: actual.Name, Type: labels.Added, Actual: &a}
}
