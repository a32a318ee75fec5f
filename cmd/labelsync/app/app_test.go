package app

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agentstation/labelsync/cmd/application"
	"github.com/agentstation/labelsync/internal/cmd/output"
	"github.com/agentstation/labelsync/internal/github"
	"github.com/agentstation/labelsync/pkg/errors"
	"github.com/agentstation/labelsync/pkg/logging"
	"github.com/agentstation/labelsync/pkg/store/memory"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	resetViper(t)
	app, err := New("1.0.0", "abc123", "2024-01-01", "test",
		WithConfig(&Config{Concurrency: 2, LogOutput: "discard", Store: application.StoreGitHub}),
		WithLogger(logging.NewNopLogger()),
	)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return app
}

// run executes the root command with args and returns its output.
func run(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := app.createRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

// TestApp_New verifies app initialization.
func TestApp_New(t *testing.T) {
	app := newTestApp(t)

	if app.Version() != "1.0.0" {
		t.Errorf("Version() = %s, want 1.0.0", app.Version())
	}
	if app.Commit() != "abc123" {
		t.Errorf("Commit() = %s, want abc123", app.Commit())
	}
	if app.Date() != "2024-01-01" {
		t.Errorf("Date() = %s, want 2024-01-01", app.Date())
	}
	if app.BuiltBy() != "test" {
		t.Errorf("BuiltBy() = %s, want test", app.BuiltBy())
	}
	if app.Logger() == nil {
		t.Error("Logger() returned nil")
	}
	if app.OutputFormat() != "text" {
		t.Errorf("OutputFormat() = %s, want text", app.OutputFormat())
	}
}

// TestApp_OptionErrors verifies nil options are rejected.
func TestApp_OptionErrors(t *testing.T) {
	resetViper(t)

	if _, err := New("dev", "", "", "", WithConfig(nil)); !errors.IsValidationError(err) {
		t.Errorf("WithConfig(nil) error = %v, want validation error", err)
	}
	if _, err := New("dev", "", "", "", WithLogger(nil)); !errors.IsValidationError(err) {
		t.Errorf("WithLogger(nil) error = %v, want validation error", err)
	}
}

// TestApp_Store verifies store selection.
func TestApp_Store(t *testing.T) {
	app := newTestApp(t)

	st, err := app.Store(application.Settings{Store: application.StoreGitHub, Endpoint: "https://ghe.example.com/api/v3"})
	if err != nil {
		t.Fatalf("Store(github) failed: %v", err)
	}
	if _, ok := st.(*github.Store); !ok {
		t.Errorf("Store(github) = %T, want *github.Store", st)
	}

	st, err = app.Store(application.Settings{Store: application.StoreMemory})
	if err != nil {
		t.Fatalf("Store(memory) failed: %v", err)
	}
	if _, ok := st.(*memory.Store); !ok {
		t.Errorf("Store(memory) = %T, want *memory.Store", st)
	}

	if _, err := app.Store(application.Settings{Store: "gitlab"}); !errors.IsValidationError(err) {
		t.Errorf("Store(gitlab) error = %v, want validation error", err)
	}
}

// TestApp_Version verifies the version command.
func TestApp_Version(t *testing.T) {
	out, err := run(t, newTestApp(t), "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if out != "labelsync 1.0.0\n" {
		t.Errorf("version output = %q", out)
	}
}

// TestApp_DiffWithMemoryStore runs a dry sync end to end without GitHub.
func TestApp_DiffWithMemoryStore(t *testing.T) {
	app := newTestApp(t)

	path := filepath.Join(t.TempDir(), "labels.json")
	if err := os.WriteFile(path, []byte(`[{"name":"bug","color":"#d73a4a"}]`), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, app, "diff", "octo/hello", "--store", "memory", "-l", path, "-o", "json")
	if err != nil {
		t.Fatalf("diff failed: %v", err)
	}

	var reports []output.Report
	if err := json.Unmarshal([]byte(out), &reports); err != nil {
		t.Fatalf("invalid JSON output %q: %v", out, err)
	}
	if len(reports) != 1 {
		t.Fatalf("got %d reports, want 1", len(reports))
	}
	if reports[0].Status != "dry-run" || reports[0].Summary.Missing != 1 {
		t.Errorf("report = %+v", reports[0])
	}
}

// TestApp_InvalidFormat verifies unknown formats are rejected before running.
func TestApp_InvalidFormat(t *testing.T) {
	_, err := run(t, newTestApp(t), "validate", "-o", "xml")
	if err == nil || !strings.Contains(err.Error(), "format") {
		t.Errorf("error = %v, want format validation error", err)
	}
}

// TestApp_SyncReportsMissingLabels verifies a missing document is reported.
func TestApp_SyncReportsMissingLabels(t *testing.T) {
	_, err := run(t, newTestApp(t), "sync", "octo/hello", "--store", "memory", "-l", filepath.Join(t.TempDir(), "nope.json"))
	if err == nil || !strings.Contains(err.Error(), "no labels were found") {
		t.Errorf("error = %v, want missing labels error", err)
	}
}
