// Package validation checks configured labels before any remote call is
// made. Every violation of every label is collected so a configuration can
// be fixed in one pass.
package validation

import (
	"encoding/json"
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/agentstation/labelsync/pkg/constants"
	"github.com/agentstation/labelsync/pkg/errors"
	"github.com/agentstation/labelsync/pkg/labels"
)

var colorPattern = regexp.MustCompile(`^[a-fA-F0-9]{6}$`)

// FieldError is one violation: the path of the offending field and what
// is wrong with it.
type FieldError struct {
	Path    string
	Message string
}

// String renders the violation as "path message".
func (e FieldError) String() string {
	if e.Path == "" {
		return e.Message
	}
	return e.Path + " " + e.Message
}

// Label returns every violation found in l, or nil if it is valid.
func Label(l labels.ConfiguredLabel) []FieldError {
	var errs []FieldError

	switch {
	case l.Name == "":
		errs = append(errs, FieldError{Message: "must have required property 'name'"})
	default:
		errs = append(errs, checkName("name", l.Name)...)
	}

	if l.Color != "" && !colorPattern.MatchString(labels.NormalizeColor(l.Color)) {
		errs = append(errs, FieldError{Path: "color", Message: fmt.Sprintf("must match pattern %q", colorPattern.String())})
	}

	if l.Description != nil {
		d := *l.Description
		if utf8.RuneCountInString(d) > constants.MaxDescriptionLength {
			errs = append(errs, FieldError{Path: "description", Message: maxLength(constants.MaxDescriptionLength)})
		}
		if hasAstral(d) {
			errs = append(errs, FieldError{Path: "description", Message: `must match format "doesn't accept 4-byte Unicode"`})
		}
	}

	for i, alias := range l.Aliases {
		errs = append(errs, checkName(fmt.Sprintf("aliases/%d", i), alias)...)
	}

	return errs
}

// Labels validates every label and returns an *errors.ValidationReport
// listing each invalid label with all of its violations, or nil.
func Labels(ls []labels.ConfiguredLabel) error {
	var items []errors.InvalidItem
	for _, l := range ls {
		fieldErrs := Label(l)
		if len(fieldErrs) == 0 {
			continue
		}
		item := errors.InvalidItem{Item: serialize(l)}
		for _, fe := range fieldErrs {
			item.Violations = append(item.Violations, fe.String())
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		return nil
	}
	return &errors.ValidationReport{Items: items}
}

func checkName(path, name string) []FieldError {
	var errs []FieldError
	if utf8.RuneCountInString(name) > constants.MaxLabelNameLength {
		errs = append(errs, FieldError{Path: path, Message: maxLength(constants.MaxLabelNameLength)})
	}
	if onlyEmoji(name) {
		errs = append(errs, FieldError{Path: path, Message: `must match format "must contain more than native emoji"`})
	}
	return errs
}

func maxLength(n int) string {
	return fmt.Sprintf("must NOT have more than %d characters", n)
}

func serialize(l labels.ConfiguredLabel) string {
	data, err := json.Marshal(l)
	if err != nil {
		return fmt.Sprintf("%+v", l)
	}
	return string(data)
}
