// Package labels defines the shared data model of a label reconciliation
// run: the labels that exist in a repository, the labels a configuration
// declares, the diff entries that connect the two, and the records (issues
// and pull requests) that carry labels.
package labels

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// Label is a label as it exists in a repository.
// A nil Description means the repository reported none, which is distinct
// from an explicitly empty description.
type Label struct {
	Name        string  `json:"name" yaml:"name"`
	Color       string  `json:"color" yaml:"color"`
	Description *string `json:"description,omitempty" yaml:"description,omitempty"`
}

// ConfiguredLabel is the declared, desired state of a label.
type ConfiguredLabel struct {
	Name        string   `json:"name" yaml:"name"`
	Color       string   `json:"color" yaml:"color"`
	Description *string  `json:"description,omitempty" yaml:"description,omitempty"`
	Aliases     []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	Delete      bool     `json:"delete,omitempty" yaml:"delete,omitempty"`
}

// Label returns the label shape that c describes, without aliases or the
// delete marker.
func (c ConfiguredLabel) Label() Label {
	return Label{Name: c.Name, Color: NormalizeColor(c.Color), Description: c.Description}
}

// Equal reports whether c and other declare the same label. Colors are
// compared after normalization and descriptions by value.
func (c ConfiguredLabel) Equal(other ConfiguredLabel) bool {
	return c.Name == other.Name &&
		strings.EqualFold(NormalizeColor(c.Color), NormalizeColor(other.Color)) &&
		equalDescription(c.Description, other.Description) &&
		c.Delete == other.Delete &&
		slices.Equal(c.Aliases, other.Aliases)
}

// Clone returns a copy of c that shares no memory with it.
func (c ConfiguredLabel) Clone() ConfiguredLabel {
	if c.Description != nil {
		c.Description = String(*c.Description)
	}
	c.Aliases = slices.Clone(c.Aliases)
	return c
}

// CloneAll returns deep copies of ls.
func CloneAll(ls []ConfiguredLabel) []ConfiguredLabel {
	if ls == nil {
		return nil
	}
	out := make([]ConfiguredLabel, len(ls))
	for i, l := range ls {
		out[i] = l.Clone()
	}
	return out
}

// MatchesName reports whether name equals the configured name or one of its
// aliases, ignoring case.
func (c ConfiguredLabel) MatchesName(name string) bool {
	if EqualName(c.Name, name) {
		return true
	}
	return slices.ContainsFunc(c.Aliases, func(alias string) bool {
		return EqualName(alias, name)
	})
}

// Record is an issue or pull request and the names of the labels it carries.
type Record struct {
	Number int      `json:"number" yaml:"number"`
	Labels []string `json:"labels" yaml:"labels"`
}

// HasLabel reports whether the record carries a label named name, ignoring case.
func (r Record) HasLabel(name string) bool {
	return slices.ContainsFunc(r.Labels, func(l string) bool {
		return EqualName(l, name)
	})
}

// NormalizeColor strips a leading '#' from a hex color.
func NormalizeColor(color string) string {
	return strings.TrimPrefix(strings.TrimSpace(color), "#")
}

// EqualColor reports whether two hex colors are the same color.
func EqualColor(a, b string) bool {
	return strings.EqualFold(NormalizeColor(a), NormalizeColor(b))
}

// NormalizeDescription resolves a possibly absent description for
// comparison. An absent description takes the fallback; a present one is
// trimmed. Passing the actual label's normalized description as fallback
// for the configured side makes an omitted description mean "leave as is".
func NormalizeDescription(description *string, fallback string) string {
	if description == nil {
		return fallback
	}
	return strings.TrimSpace(*description)
}

// Fold returns the case-folded form of a label name used for matching.
func Fold(name string) string {
	return cases.Fold().String(name)
}

// EqualName reports whether two label names match, ignoring case.
func EqualName(a, b string) bool {
	if a == b {
		return true
	}
	return Fold(a) == Fold(b)
}

// String returns a pointer to s, for building labels with descriptions.
func String(s string) *string {
	return &s
}

func equalDescription(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
