package labels

// EntryType classifies one discrepancy between desired and actual labels.
type EntryType string

const (
	// Missing: a configured label has no counterpart and will be created.
	Missing EntryType = "missing"
	// Changed: the first match of a configured label differs and will be updated.
	Changed EntryType = "changed"
	// Merge: a further match of a configured label will be folded into it.
	Merge EntryType = "merge"
	// Added: an actual label is undeclared or marked for deletion.
	Added EntryType = "added"
)

// EntryTypes lists every entry type in report order.
var EntryTypes = []EntryType{Missing, Changed, Merge, Added}

// Valid reports whether t is a known entry type.
func (t EntryType) Valid() bool {
	switch t {
	case Missing, Changed, Merge, Added:
		return true
	}
	return false
}

// String implements fmt.Stringer.
func (t EntryType) String() string {
	return string(t)
}

// Entry is one classified discrepancy. Name is the name of the actual
// label for changed, merge and added entries and the configured name for
// missing ones. Actual is nil for missing entries and Expected is nil for
// added entries.
type Entry struct {
	Name     string    `json:"name" yaml:"name"`
	Type     EntryType `json:"type" yaml:"type"`
	Actual   *Label    `json:"actual" yaml:"actual"`
	Expected *Label    `json:"expected" yaml:"expected"`
}

// ResolvedSet records which actual labels, by their index in the current
// label list, have been claimed by a configured label. Indices rather than
// names identify labels because names are not guaranteed unique in input.
type ResolvedSet map[int]struct{}

// Add marks the actual label at index i as resolved.
func (s ResolvedSet) Add(i int) {
	s[i] = struct{}{}
}

// Has reports whether the actual label at index i is resolved.
func (s ResolvedSet) Has(i int) bool {
	_, ok := s[i]
	return ok
}
