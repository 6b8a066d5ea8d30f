package storage

import (
	"github.com/renato0307/covdir/internal/domain"
)

// snapshotModelToDomain converts a SnapshotModel (GORM) with its entries to domain.CoverageSnapshot
func snapshotModelToDomain(m SnapshotModel) domain.CoverageSnapshot {
	records := make([]domain.CoverageRecord, 0, len(m.Entries))
	for _, e := range m.Entries {
		records = append(records, entryModelToDomain(e))
	}
	return domain.CoverageSnapshot{
		FetchedAt: m.FetchedAt,
		Key:       snapshotKey(m),
		Records:   records,
	}
}

func snapshotKey(m SnapshotModel) domain.SnapshotKey {
	return domain.SnapshotKey{
		Path:       m.Path,
		RepoSource: m.RepoSource,
		Revision:   m.Revision,
	}
}

func entryModelToDomain(e EntryModel) domain.CoverageRecord {
	return domain.CoverageRecord{
		Covered:     e.Covered,
		IsDirectory: e.IsDirectory,
		Name:        e.Name,
		Uncovered:   e.Uncovered,
	}
}

// domainToEntryModels converts records to EntryModels keeping their order in Position
func domainToEntryModels(snapshotID uint, records []domain.CoverageRecord) []EntryModel {
	entries := make([]EntryModel, 0, len(records))
	for i, r := range records {
		entries = append(entries, EntryModel{
			Covered:     r.Covered,
			IsDirectory: r.IsDirectory,
			Name:        r.Name,
			Position:    i,
			SnapshotID:  snapshotID,
			Uncovered:   r.Uncovered,
		})
	}
	return entries
}
