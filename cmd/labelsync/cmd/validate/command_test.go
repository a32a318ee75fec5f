package validate

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/labelsync/cmd/application"
	pkgerrors "github.com/agentstation/labelsync/pkg/errors"
	"github.com/agentstation/labelsync/pkg/labels"
)

func run(t *testing.T, app application.Application, args ...string) (string, error) {
	t.Helper()
	root := &cobra.Command{Use: "labelsync", SilenceUsage: true, SilenceErrors: true}
	root.AddGroup(&cobra.Group{ID: "management", Title: "Management Commands:"})
	root.AddCommand(NewCommand(app))

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs(append([]string{"validate"}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestValidate(t *testing.T) {
	var got []string
	app := &application.Mock{
		SettingsFunc: func() application.Settings {
			return application.Settings{Labels: []string{"configured.json"}}
		},
		LoadLabelsFunc: func(_ context.Context, sources []string) ([]labels.ConfiguredLabel, error) {
			got = sources
			return []labels.ConfiguredLabel{{Name: "bug", Color: "d73a4a"}, {Name: "docs", Color: "0075ca"}}, nil
		},
	}

	out, err := run(t, app)
	require.NoError(t, err)
	assert.Equal(t, "✓ 2 labels are valid\n", out)
	assert.Equal(t, []string{"configured.json"}, got)

	_, err = run(t, app, "-l", "other.yml")
	require.NoError(t, err)
	assert.Equal(t, []string{"other.yml"}, got)
}

func TestValidateReportsEveryProblem(t *testing.T) {
	app := &application.Mock{
		LoadLabelsFunc: func(context.Context, []string) ([]labels.ConfiguredLabel, error) {
			return []labels.ConfiguredLabel{{Name: "bug", Color: "red"}, {Color: "ffffff"}}, nil
		},
	}

	_, err := run(t, app)
	require.Error(t, err)
	var report *pkgerrors.ValidationReport
	require.ErrorAs(t, err, &report)
	assert.Len(t, report.Items, 2)
}

func TestValidateJSON(t *testing.T) {
	app := &application.Mock{
		OutputFormatFunc: func() string { return "json" },
		LoadLabelsFunc: func(context.Context, []string) ([]labels.ConfiguredLabel, error) {
			return []labels.ConfiguredLabel{{Name: "bug", Color: "d73a4a"}}, nil
		},
	}

	out, err := run(t, app)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"bug","color":"d73a4a"}]`, out)
}
