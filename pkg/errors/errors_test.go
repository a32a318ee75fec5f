package errors_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/agentstation/labelsync/pkg/errors"
)

func TestNotFoundError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := pkgerrors.NewNotFoundError("label", "bug")
		assert.Equal(t, `label "bug" not found`, err.Error())
		assert.True(t, pkgerrors.IsNotFound(err))
	})

	t.Run("wrapped error", func(t *testing.T) {
		wrapped := fmt.Errorf("delete: %w", pkgerrors.NewNotFoundError("label", "bug"))
		assert.True(t, pkgerrors.IsNotFound(wrapped))
	})
}

func TestAlreadyExistsError(t *testing.T) {
	err := pkgerrors.NewAlreadyExistsError("label", "bug")
	assert.True(t, pkgerrors.IsAlreadyExists(err))
	assert.True(t, pkgerrors.IsConflict(err))
	assert.False(t, pkgerrors.IsNotFound(err))
}

func TestAPIError(t *testing.T) {
	t.Run("message carries method, endpoint and status", func(t *testing.T) {
		err := pkgerrors.NewAPIError(http.MethodPatch, "/repos/o/r/labels/bug", 500, "boom")
		assert.Contains(t, err.Error(), "PATCH")
		assert.Contains(t, err.Error(), "/repos/o/r/labels/bug")
		assert.Contains(t, err.Error(), "500")
	})

	t.Run("transport failure", func(t *testing.T) {
		base := errors.New("connection reset")
		err := &pkgerrors.APIError{Method: http.MethodGet, Endpoint: "/repos/o/r/labels", Err: base}
		assert.Contains(t, err.Error(), "connection reset")
		assert.Equal(t, base, err.Unwrap())
		assert.True(t, pkgerrors.IsTransient(err))
		assert.False(t, pkgerrors.IsCanceled(err))
	})

	t.Run("canceled call is not transient", func(t *testing.T) {
		for _, cause := range []error{context.Canceled, context.DeadlineExceeded} {
			err := fmt.Errorf("list: %w", &pkgerrors.APIError{
				Method:   http.MethodGet,
				Endpoint: "/repos/o/r/labels",
				Message:  cause.Error(),
				Err:      cause,
			})
			assert.True(t, pkgerrors.IsCanceled(err), cause)
			assert.False(t, pkgerrors.IsTransient(err), cause)
			assert.ErrorIs(t, err, cause)
		}
	})

	tests := []struct {
		name      string
		status    int
		message   string
		notFound  bool
		conflict  bool
		exists    bool
		transient bool
		auth      bool
	}{
		{name: "not found", status: 404, notFound: true},
		{name: "conflict", status: 409, conflict: true},
		{name: "already exists", status: 422, message: `{"errors":[{"code":"already_exists"}]}`, conflict: true, exists: true},
		{name: "unprocessable", status: 422, message: "invalid color", conflict: true},
		{name: "unauthorized", status: 401, auth: true},
		{name: "forbidden", status: 403, auth: true},
		{name: "rate limited", status: 429, transient: true},
		{name: "server error", status: 502, transient: true},
		{name: "bad request", status: 400},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error = pkgerrors.NewAPIError(http.MethodPost, "/x", tt.status, tt.message)
			err = fmt.Errorf("wrapped: %w", err)
			assert.Equal(t, tt.notFound, pkgerrors.IsNotFound(err))
			assert.Equal(t, tt.conflict, pkgerrors.IsConflict(err))
			assert.Equal(t, tt.exists, pkgerrors.IsAlreadyExists(err))
			assert.Equal(t, tt.transient, pkgerrors.IsTransient(err))
			assert.Equal(t, tt.auth, pkgerrors.IsAuthentication(err))

			apiErr, ok := pkgerrors.AsAPIError(err)
			require.True(t, ok)
			assert.Equal(t, tt.status, apiErr.StatusCode)
		})
	}
}

func TestValidationReport(t *testing.T) {
	report := &pkgerrors.ValidationReport{Items: []pkgerrors.InvalidItem{
		{Item: `{"name":""}`, Violations: []string{"name must not be empty"}},
		{Item: `{"name":"x","color":"zz"}`, Violations: []string{"color must match", "description too long"}},
	}}

	expected := "Invalid label:\n  {\"name\":\"\"}\n  - name must not be empty\n\n" +
		"Invalid label:\n  {\"name\":\"x\",\"color\":\"zz\"}\n  - color must match\n  - description too long"
	assert.Equal(t, expected, report.Error())
	assert.True(t, pkgerrors.IsValidationError(report))
}

func TestConfigError(t *testing.T) {
	err := &pkgerrors.ConfigError{
		Component: "labels",
		Message:   "conflicting label names",
		Details:   []string{"bug", "docs"},
	}
	assert.Equal(t, "configuration error in labels: conflicting label names: bug, docs", err.Error())
	assert.True(t, pkgerrors.IsValidationError(err))

	base := errors.New("missing file")
	wrapped := pkgerrors.NewConfigError("", "cannot load", base)
	assert.Equal(t, "configuration error: cannot load", wrapped.Error())
	assert.ErrorIs(t, wrapped, base)
}

func TestWrapHelpers(t *testing.T) {
	assert.NoError(t, pkgerrors.WrapIO("read", "labels.json", nil))
	assert.NoError(t, pkgerrors.WrapResource("create", "label", "bug", nil))
	assert.NoError(t, pkgerrors.WrapParse("yaml", "labels.yml", nil))

	base := errors.New("disk full")
	err := pkgerrors.WrapIO("read", "labels.json", base)
	var ioErr *pkgerrors.IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, "labels.json", ioErr.Path)

	err = pkgerrors.WrapResource("merge", "label", "bug", base)
	var resErr *pkgerrors.ResourceError
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, "merge", resErr.Operation)
	assert.Contains(t, err.Error(), "failed to merge label bug")

	err = pkgerrors.WrapParse("yaml", "labels.yml", base)
	assert.True(t, pkgerrors.IsValidationError(err))
	assert.ErrorIs(t, err, base)
}
