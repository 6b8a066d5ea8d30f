package ports

import (
	"context"

	"github.com/renato0307/covdir/internal/domain"
)

// SnapshotReader reads cached directory listings
type SnapshotReader interface {
	// Get returns domain.ErrSnapshotNotFound when nothing is cached for key
	Get(ctx context.Context, key domain.SnapshotKey) (*domain.CoverageSnapshot, error)
	List(ctx context.Context) ([]domain.SnapshotSummary, error)
}

// SnapshotWriter stores and evicts cached directory listings
type SnapshotWriter interface {
	Clear(ctx context.Context) (int64, error)
	Save(ctx context.Context, snapshot domain.CoverageSnapshot) error
}

// SnapshotRepository is the composite interface
type SnapshotRepository interface {
	SnapshotReader
	SnapshotWriter
	Close() error
}
