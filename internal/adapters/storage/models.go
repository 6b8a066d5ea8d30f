package storage

import "time"

// SnapshotModel is the GORM model for coverage_snapshots table
type SnapshotModel struct {
	CreatedAt  time.Time
	Entries    []EntryModel `gorm:"foreignKey:SnapshotID;constraint:OnDelete:CASCADE"`
	FetchedAt  time.Time    `gorm:"not null;index:idx_fetched_at"`
	ID         uint         `gorm:"primaryKey"`
	Path       string       `gorm:"not null;default:'';uniqueIndex:idx_snapshot_key"`
	RepoSource string       `gorm:"not null;uniqueIndex:idx_snapshot_key"`
	Revision   string       `gorm:"not null;uniqueIndex:idx_snapshot_key"`
	UpdatedAt  time.Time
}

// TableName specifies the table name for GORM
func (SnapshotModel) TableName() string { return "coverage_snapshots" }

// EntryModel is the GORM model for one record of a snapshot
type EntryModel struct {
	Covered     int    `gorm:"not null;default:0"`
	ID          uint   `gorm:"primaryKey"`
	IsDirectory bool   `gorm:"not null;default:false"`
	Name        string `gorm:"not null;default:''"`
	Position    int    `gorm:"not null;default:0"`
	SnapshotID  uint   `gorm:"not null;index:idx_entry_snapshot"`
	Uncovered   int    `gorm:"not null;default:0"`
}

// TableName specifies the table name for GORM
func (EntryModel) TableName() string { return "coverage_entries" }
