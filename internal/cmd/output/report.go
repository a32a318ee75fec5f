package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	md "github.com/nao1215/markdown"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/agentstation/labelsync"
	"github.com/agentstation/labelsync/internal/cmd/emoji"
	"github.com/agentstation/labelsync/internal/cmd/table"
	"github.com/agentstation/labelsync/pkg/differ"
	"github.com/agentstation/labelsync/pkg/labels"
)

// Report is the structured form of one run, used for JSON and YAML.
type Report struct {
	RunID    string         `json:"run_id" yaml:"run_id"`
	Repo     string         `json:"repo" yaml:"repo"`
	Status   string         `json:"status" yaml:"status"`
	Message  string         `json:"message" yaml:"message"`
	DryRun   bool           `json:"dry_run" yaml:"dry_run"`
	Summary  differ.Summary `json:"summary" yaml:"summary"`
	Changes  []Change       `json:"changes" yaml:"changes"`
	Failures []string       `json:"failures,omitempty" yaml:"failures,omitempty"`
	Duration string         `json:"duration" yaml:"duration"`
}

// Change is one diff entry with its human readable description.
type Change struct {
	Type        labels.EntryType `json:"type" yaml:"type"`
	Label       string           `json:"label" yaml:"label"`
	Description string           `json:"description" yaml:"description"`
	Current     *labels.Label    `json:"current,omitempty" yaml:"current,omitempty"`
	Desired     *labels.Label    `json:"desired,omitempty" yaml:"desired,omitempty"`
}

// NewReport builds the report of result.
func NewReport(result *labelsync.Result) Report {
	r := Report{
		RunID:    result.RunID,
		Repo:     result.Repo,
		Status:   string(result.Status()),
		Message:  result.Message(),
		DryRun:   result.DryRun,
		Summary:  result.Summary,
		Changes:  make([]Change, 0, len(result.Diff)),
		Duration: result.Duration.String(),
	}
	for _, entry := range result.Diff {
		r.Changes = append(r.Changes, Change{
			Type:        entry.Type,
			Label:       entry.Name,
			Description: differ.Line(entry),
			Current:     entry.Actual,
			Desired:     entry.Expected,
		})
	}
	if result.Applied != nil {
		for _, failed := range result.Applied.Failed() {
			r.Failures = append(r.Failures, failed.Err.Error())
		}
	}
	return r
}

// Options controls report rendering.
type Options struct {
	Color bool
}

// Render writes results to w in format.
func Render(w io.Writer, format Format, results []*labelsync.Result, opts Options) error {
	results = nonNil(results)

	switch format {
	case FormatJSON, FormatYAML:
		reports := make([]Report, 0, len(results))
		for _, result := range results {
			reports = append(reports, NewReport(result))
		}
		return NewFormatter(format).Format(w, reports)
	case FormatTable:
		return NewFormatter(format).Format(w, table.ResultsToTableData(results))
	case FormatMarkdown:
		return renderMarkdown(w, results)
	case FormatPatch:
		return renderPatch(w, results)
	default:
		return renderText(w, results, newPalette(opts.Color))
	}
}

// palette holds the colors of the text report.
type palette struct {
	header  *color.Color
	pointer *color.Color
	success *color.Color
	warning *color.Color
	failure *color.Color
}

func newPalette(enabled bool) *palette {
	p := &palette{
		header:  color.New(color.FgCyan, color.Underline),
		pointer: color.New(color.FgCyan),
		success: color.New(color.FgGreen),
		warning: color.New(color.FgBlack, color.BgYellow),
		failure: color.New(color.FgRed),
	}
	for _, c := range []*color.Color{p.header, p.pointer, p.success, p.warning, p.failure} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func renderText(w io.Writer, results []*labelsync.Result, p *palette) error {
	for i, result := range results {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}

		lines := []string{p.header.Sprintf("Syncing labels for %q", result.Repo)}
		for _, line := range differ.Lines(result.Diff) {
			lines = append(lines, p.pointer.Sprint(" "+emoji.Pointer+" ")+line)
		}

		switch result.Status() {
		case labelsync.StatusDryRun:
			lines = append(lines, p.warning.Sprint(result.Message()))
		case labelsync.StatusFailed:
			lines = append(lines, p.failure.Sprint(result.Message()))
			for _, failed := range result.Applied.Failed() {
				lines = append(lines, p.failure.Sprintf("  %s %v", emoji.Error, failed.Err))
			}
		default:
			lines = append(lines, p.success.Sprint(result.Message()))
		}

		if _, err := fmt.Fprintln(w, strings.Join(lines, "\n")); err != nil {
			return err
		}
	}
	return nil
}

func renderMarkdown(w io.Writer, results []*labelsync.Result) error {
	doc := md.NewMarkdown(w)
	for _, result := range results {
		doc.H2("Labels for " + md.Code(result.Repo))
		doc.PlainText(md.Bold(result.Message()))

		if len(result.Diff) > 0 {
			doc.PlainText("")
			doc.PlainText(result.Summary.String())
			rows := make([][]string, 0, len(result.Diff))
			for _, entry := range result.Diff {
				rows = append(rows, []string{
					emoji.ForEntry(entry.Type) + " " + entry.Type.String(),
					md.Code(entry.Name),
					table.FormatLabel(entry.Actual),
					table.FormatLabel(entry.Expected),
				})
			}
			doc.Table(md.TableSet{
				Header: []string{"Change", "Label", "Current", "Desired"},
				Rows:   rows,
			})
		}

		if result.Applied != nil {
			if failed := result.Applied.Failed(); len(failed) > 0 {
				doc.H3("Failures")
				items := make([]string, 0, len(failed))
				for _, f := range failed {
					items = append(items, f.Err.Error())
				}
				doc.BulletList(items...)
			}
		}
	}
	return doc.Build()
}

func renderPatch(w io.Writer, results []*labelsync.Result) error {
	for _, result := range results {
		if len(result.Diff) == 0 {
			continue
		}
		text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        labelLines(result.Current),
			B:        labelLines(result.Desired()),
			FromFile: "a/" + result.Repo + "/labels",
			ToFile:   "b/" + result.Repo + "/labels",
			Context:  3,
		})
		if err != nil {
			return err
		}
		if _, err := io.WriteString(w, text); err != nil {
			return err
		}
	}
	return nil
}

// labelLines renders one line per label for diffing.
func labelLines(ls []labels.Label) []string {
	lines := make([]string, 0, len(ls))
	for _, l := range ls {
		lines = append(lines, table.FormatLabel(&l)+"\n")
	}
	return lines
}

func nonNil(results []*labelsync.Result) []*labelsync.Result {
	out := make([]*labelsync.Result, 0, len(results))
	for _, r := range results {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}
