package reporter

import (
	"context"
	"errors"
	"log/slog"

	"github.com/renato0307/covdir/internal/domain"
	"github.com/renato0307/covdir/internal/logging"
	"github.com/renato0307/covdir/internal/ports"
)

// LogReporter logs escalated errors and lets the caller carry on
type LogReporter struct {
	logger func() *slog.Logger
}

// Verify interface compliance at compile time
var _ ports.ErrorReporter = (*LogReporter)(nil)

// NewLogReporter reports through the package-global logger
func NewLogReporter() *LogReporter {
	return &LogReporter{logger: func() *slog.Logger { return logging.Logger }}
}

// NewLogReporterWithLogger reports through the given logger
func NewLogReporterWithLogger(logger *slog.Logger) *LogReporter {
	return &LogReporter{logger: func() *slog.Logger { return logger }}
}

// Report logs err at error level. A nil error is ignored.
func (r *LogReporter) Report(ctx context.Context, err error) {
	if err == nil {
		return
	}

	attrs := []any{"error", err.Error()}
	var lookupErr *domain.LookupError
	if errors.As(err, &lookupErr) {
		attrs = append(attrs, "kind", lookupErr.Name, "message", lookupErr.Message)
	}
	r.logger().ErrorContext(ctx, "Coverage lookup failed", attrs...)
}
