package services

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/renato0307/covdir/internal/domain"
	"github.com/renato0307/covdir/internal/logging"
	"github.com/renato0307/covdir/internal/ports"
)

// CoverageService answers coverage lookups from the snapshot cache when it
// holds a fresh listing, and from the remote service otherwise
type CoverageService struct {
	cache  ports.SnapshotRepository
	maxAge time.Duration
	now    func() time.Time
	remote ports.CoverageLookup
}

// Verify interface compliance at compile time
var _ ports.CoverageLookup = (*CoverageService)(nil)

// NewCoverageService creates a new CoverageService.
// cache may be nil to disable caching. A maxAge of zero keeps snapshots forever.
func NewCoverageService(remote ports.CoverageLookup, cache ports.SnapshotRepository, maxAge time.Duration) *CoverageService {
	return &CoverageService{
		cache:  cache,
		maxAge: maxAge,
		now:    time.Now,
		remote: remote,
	}
}

// CacheEnabled reports whether lookups go through the snapshot cache
func (s *CoverageService) CacheEnabled() bool {
	return s.cache != nil
}

// LookupDirectoryCoverage returns the raw records for a directory.
// A context marked with ports.WithoutCache skips the cache read.
func (s *CoverageService) LookupDirectoryCoverage(ctx context.Context, revision, path, repoSource string) ([]domain.CoverageRecord, error) {
	key := domain.SnapshotKey{Path: path, RepoSource: repoSource, Revision: revision}

	if ports.CacheSkipped(ctx) {
		logging.Logger.Debug("Skipping coverage cache", "revision", revision, "path", path)
	} else if records, ok := s.cached(ctx, key); ok {
		return records, nil
	}

	records, err := s.remote.LookupDirectoryCoverage(ctx, revision, path, repoSource)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		snapshot := domain.CoverageSnapshot{FetchedAt: s.now(), Key: key, Records: records}
		if err := s.cache.Save(ctx, snapshot); err != nil {
			logging.Logger.Warn("Failed to cache coverage snapshot",
				"error", err,
				"revision", revision,
				"path", path)
		}
	}

	return records, nil
}

func (s *CoverageService) cached(ctx context.Context, key domain.SnapshotKey) ([]domain.CoverageRecord, bool) {
	if s.cache == nil {
		return nil, false
	}

	snapshot, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrSnapshotNotFound) {
			logging.Logger.Warn("Failed to read coverage cache", "error", err)
		}
		return nil, false
	}

	age := s.now().Sub(snapshot.FetchedAt)
	if s.maxAge > 0 && age > s.maxAge {
		logging.Logger.Debug("Cached snapshot expired", "revision", key.Revision, "path", key.Path, "age", age)
		return nil, false
	}

	logging.Logger.Debug("Coverage cache hit", "revision", key.Revision, "path", key.Path, "entries", len(snapshot.Records))
	return snapshot.Records, true
}

// Prefetch warms the cache for a directory and each of its subdirectories.
// Subdirectories are fetched concurrently, at most concurrency at a time.
// Returns how many listings were fetched.
func (s *CoverageService) Prefetch(ctx context.Context, revision, path, repoSource string, concurrency int) (int, error) {
	if revision == "" {
		return 0, domain.ErrRevisionRequired
	}
	if concurrency < 1 {
		concurrency = 1
	}

	records, err := s.LookupDirectoryCoverage(ctx, revision, path, repoSource)
	if err != nil {
		return 0, err
	}

	var fetched atomic.Int64
	fetched.Add(1)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, record := range domain.Normalize(records) {
		if !record.IsDirectory {
			continue
		}
		subPath := domain.EntryPath(path, record)
		g.Go(func() error {
			if _, err := s.LookupDirectoryCoverage(ctx, revision, subPath, repoSource); err != nil {
				return fmt.Errorf("failed to prefetch %s: %w", subPath, err)
			}
			fetched.Add(1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return int(fetched.Load()), err
	}

	logging.Logger.Info("Prefetch completed", "revision", revision, "path", path, "listings", fetched.Load())
	return int(fetched.Load()), nil
}

// ListCached returns summaries of every cached snapshot
func (s *CoverageService) ListCached(ctx context.Context) ([]domain.SnapshotSummary, error) {
	if s.cache == nil {
		return nil, domain.ErrCacheDisabled
	}
	return s.cache.List(ctx)
}

// ClearCache removes every cached snapshot
func (s *CoverageService) ClearCache(ctx context.Context) (int64, error) {
	if s.cache == nil {
		return 0, domain.ErrCacheDisabled
	}
	removed, err := s.cache.Clear(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to clear cache: %w", err)
	}
	logging.Logger.Info("Coverage cache cleared", "snapshots", removed)
	return removed, nil
}

// Close releases the cache, if any
func (s *CoverageService) Close() error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Close()
}
