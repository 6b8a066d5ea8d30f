package ports

import (
	"context"

	"github.com/renato0307/covdir/internal/domain"
)

// CoverageLookup answers directory coverage queries
type CoverageLookup interface {
	// LookupDirectoryCoverage returns the raw records for the entries directly
	// under path at revision. Failures are *domain.LookupError.
	LookupDirectoryCoverage(ctx context.Context, revision, path, repoSource string) ([]domain.CoverageRecord, error)
}

type skipCacheKey struct{}

// WithoutCache marks ctx so a caching CoverageLookup answers from the remote
// service. The fresh result still replaces the cached one.
func WithoutCache(ctx context.Context) context.Context {
	return context.WithValue(ctx, skipCacheKey{}, true)
}

// CacheSkipped reports whether ctx was marked with WithoutCache
func CacheSkipped(ctx context.Context) bool {
	skip, _ := ctx.Value(skipCacheKey{}).(bool)
	return skip
}
