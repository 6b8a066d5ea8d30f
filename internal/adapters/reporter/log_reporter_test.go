package reporter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/covdir/internal/domain"
)

func TestLogReporter_LogsLookupErrorKind(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewLogReporterWithLogger(slog.New(slog.NewJSONHandler(&buf, nil)))

	reporter.Report(context.Background(), domain.NewLookupError(domain.LookupHTTPError, nil, "500 Internal Server Error: boom"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "HTTPError", entry["kind"])
	assert.Equal(t, "500 Internal Server Error: boom", entry["message"])
}

func TestLogReporter_PlainError(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewLogReporterWithLogger(slog.New(slog.NewJSONHandler(&buf, nil)))

	reporter.Report(context.Background(), errors.New("disk full"))

	assert.Contains(t, buf.String(), "disk full")
	assert.NotContains(t, buf.String(), "kind")
}

func TestLogReporter_IgnoresNil(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewLogReporterWithLogger(slog.New(slog.NewJSONHandler(&buf, nil)))

	reporter.Report(context.Background(), nil)

	assert.Empty(t, buf.String())
}

func TestNewLogReporter_UsesGlobalLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		NewLogReporter().Report(context.Background(), errors.New("x"))
	})
}
