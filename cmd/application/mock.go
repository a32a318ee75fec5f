package application

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/labelsync/pkg/labels"
	"github.com/agentstation/labelsync/pkg/store"
	"github.com/agentstation/labelsync/pkg/store/memory"
)

// Mock provides a mock implementation of Application for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
type Mock struct {
	SettingsFunc     func() Settings
	StoreFunc        func(settings Settings) (store.Store, error)
	LoadLabelsFunc   func(ctx context.Context, sources []string) ([]labels.ConfiguredLabel, error)
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	UseColorFunc     func() bool
	VersionFunc      func() string
	CommitFunc       func() string
	DateFunc         func() string
	BuiltByFunc      func() string
}

// Settings returns settings using the mock function or zero settings with
// a concurrency of one.
func (m *Mock) Settings() Settings {
	if m.SettingsFunc != nil {
		return m.SettingsFunc()
	}
	return Settings{Concurrency: 1, Store: StoreMemory}
}

// Store returns a store using the mock function or an empty memory store.
func (m *Mock) Store(settings Settings) (store.Store, error) {
	if m.StoreFunc != nil {
		return m.StoreFunc(settings)
	}
	return memory.New(), nil
}

// LoadLabels returns labels using the mock function or none.
func (m *Mock) LoadLabels(ctx context.Context, sources []string) ([]labels.ConfiguredLabel, error) {
	if m.LoadLabelsFunc != nil {
		return m.LoadLabelsFunc(ctx, sources)
	}
	return nil, nil
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns output format using the mock function or "text".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "text"
}

// UseColor returns the mock function's answer or false.
func (m *Mock) UseColor() bool {
	if m.UseColorFunc != nil {
		return m.UseColorFunc()
	}
	return false
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builtBy using the mock function or "test".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "test"
}

// Ensure Mock implements Application at compile time.
var _ Application = (*Mock)(nil)
