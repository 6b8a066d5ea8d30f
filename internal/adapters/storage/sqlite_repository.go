package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/renato0307/covdir/internal/config"
	"github.com/renato0307/covdir/internal/domain"
	"github.com/renato0307/covdir/internal/logging"
	"github.com/renato0307/covdir/internal/ports"
)

const (
	entryBatchSize = 500
	maxRetries     = 5
)

// SQLiteRepository implements ports.SnapshotRepository using GORM
type SQLiteRepository struct {
	db *gorm.DB
}

// Verify interface compliance at compile time
var _ ports.SnapshotRepository = (*SQLiteRepository)(nil)

// gormLogger wraps the covdir logger for GORM
type gormLogger struct {
	level logger.LogLevel
}

func (l *gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	return &gormLogger{level: level}
}

func (l *gormLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Info {
		logging.Logger.Info(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Warn {
		logging.Logger.Warn(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Error {
		logging.Logger.Error(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level < logger.Info {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logging.Logger.Error("gorm query error",
			"error", err,
			"duration", elapsed,
			"sql", sql,
			"rows", rows,
		)
	} else if elapsed > 200*time.Millisecond {
		logging.Logger.Warn("slow query",
			"duration", elapsed,
			"sql", sql,
			"rows", rows,
		)
	} else {
		logging.Logger.Debug("gorm query",
			"duration", elapsed,
			"sql", sql,
			"rows", rows,
		)
	}
}

func newGormLogger() logger.Interface {
	if os.Getenv("COVDIR_DEBUG") == "1" {
		return (&gormLogger{}).LogMode(logger.Info)
	}
	return (&gormLogger{}).LogMode(logger.Silent)
}

// NewSQLiteRepository opens (creating if needed) the snapshot cache at dbPath
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	dbPath = config.ExpandPath(dbPath)

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		PrepareStmt: false,
		NowFunc:     func() time.Time { return time.Now().UTC() },
		Logger:      newGormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL lets the TUI read while a prefetch writes
	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")
	db.Exec("PRAGMA synchronous=NORMAL")
	db.Exec("PRAGMA foreign_keys=ON")

	if err := db.AutoMigrate(&SnapshotModel{}, &EntryModel{}); err != nil {
		if !strings.Contains(err.Error(), "already exists") {
			return nil, fmt.Errorf("failed to migrate snapshot schema: %w", err)
		}
	}

	return &SQLiteRepository{db: db}, nil
}

// NewSQLiteRepositoryForHome opens the cache database under the given covdir home
func NewSQLiteRepositoryForHome(covdirHome string) (*SQLiteRepository, error) {
	return NewSQLiteRepository(filepath.Join(covdirHome, "cache.db"))
}

// Close closes the underlying database
func (r *SQLiteRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Get loads the snapshot stored under key with its entries in saved order
func (r *SQLiteRepository) Get(ctx context.Context, key domain.SnapshotKey) (*domain.CoverageSnapshot, error) {
	var model SnapshotModel
	err := withRetry(func() error {
		return r.db.WithContext(ctx).
			Preload("Entries", func(db *gorm.DB) *gorm.DB {
				return db.Order("position ASC")
			}).
			Where("repo_source = ? AND revision = ? AND path = ?", key.RepoSource, key.Revision, key.Path).
			First(&model).Error
	}, maxRetries)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}

	snapshot := snapshotModelToDomain(model)
	return &snapshot, nil
}

// Save replaces whatever is stored under the snapshot's key
func (r *SQLiteRepository) Save(ctx context.Context, snapshot domain.CoverageSnapshot) error {
	fetchedAt := snapshot.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = time.Now()
	}

	return withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var model SnapshotModel
			err := tx.Where("repo_source = ? AND revision = ? AND path = ?",
				snapshot.Key.RepoSource, snapshot.Key.Revision, snapshot.Key.Path).
				First(&model).Error

			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				model = SnapshotModel{
					FetchedAt:  fetchedAt.UTC(),
					Path:       snapshot.Key.Path,
					RepoSource: snapshot.Key.RepoSource,
					Revision:   snapshot.Key.Revision,
				}
				if err := tx.Create(&model).Error; err != nil {
					return fmt.Errorf("failed to create snapshot: %w", err)
				}
			case err != nil:
				return fmt.Errorf("failed to find snapshot: %w", err)
			default:
				if err := tx.Where("snapshot_id = ?", model.ID).Delete(&EntryModel{}).Error; err != nil {
					return fmt.Errorf("failed to delete old entries: %w", err)
				}
				if err := tx.Model(&model).Update("fetched_at", fetchedAt.UTC()).Error; err != nil {
					return fmt.Errorf("failed to update snapshot: %w", err)
				}
			}

			if len(snapshot.Records) == 0 {
				return nil
			}
			entries := domainToEntryModels(model.ID, snapshot.Records)
			if err := tx.CreateInBatches(entries, entryBatchSize).Error; err != nil {
				return fmt.Errorf("failed to save entries: %w", err)
			}
			return nil
		})
	}, maxRetries)
}

// List returns a summary of every cached snapshot, newest first
func (r *SQLiteRepository) List(ctx context.Context) ([]domain.SnapshotSummary, error) {
	var models []SnapshotModel
	err := withRetry(func() error {
		return r.db.WithContext(ctx).Order("fetched_at DESC").Find(&models).Error
	}, maxRetries)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}

	type entryCount struct {
		Count      int
		SnapshotID uint
	}
	var counts []entryCount
	err = withRetry(func() error {
		return r.db.WithContext(ctx).Model(&EntryModel{}).
			Select("snapshot_id, COUNT(*) AS count").
			Group("snapshot_id").
			Scan(&counts).Error
	}, maxRetries)
	if err != nil {
		return nil, fmt.Errorf("failed to count snapshot entries: %w", err)
	}

	countByID := make(map[uint]int, len(counts))
	for _, c := range counts {
		countByID[c.SnapshotID] = c.Count
	}

	summaries := make([]domain.SnapshotSummary, 0, len(models))
	for _, m := range models {
		summaries = append(summaries, domain.SnapshotSummary{
			Entries:   countByID[m.ID],
			FetchedAt: m.FetchedAt,
			Key:       snapshotKey(m),
		})
	}
	return summaries, nil
}

// Clear removes every cached snapshot and returns how many were removed
func (r *SQLiteRepository) Clear(ctx context.Context) (int64, error) {
	var removed int64
	err := withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			global := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
			if err := global.Delete(&EntryModel{}).Error; err != nil {
				return fmt.Errorf("failed to delete entries: %w", err)
			}
			result := global.Delete(&SnapshotModel{})
			if result.Error != nil {
				return fmt.Errorf("failed to delete snapshots: %w", result.Error)
			}
			removed = result.RowsAffected
			return nil
		})
	}, maxRetries)
	if err != nil {
		return 0, err
	}
	return removed, nil
}

// withRetry retries operations on SQLITE_BUSY with exponential backoff
func withRetry(fn func() error, maxRetries int) error {
	for i := 0; i < maxRetries; i++ {
		err := fn()
		if err == nil {
			return nil
		}

		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && (sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked) {
			time.Sleep(time.Millisecond * time.Duration(50*(i+1)))
			continue
		}

		return err
	}
	return fmt.Errorf("operation failed after %d retries", maxRetries)
}
