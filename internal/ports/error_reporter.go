package ports

import "context"

// ErrorReporter receives failures escalated past the view that hit them
type ErrorReporter interface {
	Report(ctx context.Context, err error)
}
