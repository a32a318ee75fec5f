// Package table provides common table formatting utilities for CLI commands.
package table

import (
	"fmt"
	"strings"

	"github.com/agentstation/labelsync"
	"github.com/agentstation/labelsync/internal/cmd/emoji"
	"github.com/agentstation/labelsync/pkg/labels"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// maxDescription is the widest description shown in a cell.
const maxDescription = 60

// ResultsToTableData lists every diff entry of results, one row per entry.
// Repositories without changes get a single row carrying their status.
func ResultsToTableData(results []*labelsync.Result) Data {
	headers := []string{"Repo", "", "Change", "Label", "Current", "Desired"}

	var rows [][]string
	for _, result := range results {
		if result == nil {
			continue
		}
		if len(result.Diff) == 0 {
			rows = append(rows, []string{result.Repo, emoji.Success, string(result.Status()), "-", "-", "-"})
			continue
		}
		for _, entry := range result.Diff {
			rows = append(rows, []string{
				result.Repo,
				emoji.ForEntry(entry.Type),
				entry.Type.String(),
				entry.Name,
				FormatLabel(entry.Actual),
				FormatLabel(entry.Expected),
			})
		}
	}

	return Data{
		Headers:         headers,
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignCenter, AlignLeft, AlignLeft, AlignLeft, AlignLeft},
	}
}

// ConfiguredToTableData lists configured labels.
func ConfiguredToTableData(configured []labels.ConfiguredLabel) Data {
	headers := []string{"Name", "Color", "Description", "Aliases", "Delete"}

	rows := make([][]string, 0, len(configured))
	for _, cfg := range configured {
		deleted := ""
		if cfg.Delete {
			deleted = emoji.Success
		}
		rows = append(rows, []string{
			cfg.Name,
			"#" + labels.NormalizeColor(cfg.Color),
			FormatDescription(cfg.Description),
			FormatList(cfg.Aliases),
			deleted,
		})
	}

	return Data{
		Headers:         headers,
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignLeft, AlignLeft, AlignCenter},
	}
}

// FormatLabel formats a label as "name #color", followed by its quoted
// description when it has one. A nil label formats as "-".
func FormatLabel(l *labels.Label) string {
	if l == nil {
		return "-"
	}
	s := fmt.Sprintf("%s #%s", l.Name, l.Color)
	if l.Description != nil && *l.Description != "" {
		s += fmt.Sprintf(" %q", truncate(*l.Description, maxDescription))
	}
	return s
}

// FormatDescription formats an optional description, "-" when absent.
func FormatDescription(d *string) string {
	if d == nil || *d == "" {
		return "-"
	}
	return truncate(*d, maxDescription)
}

// FormatList joins names with commas, "-" when empty.
func FormatList(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
