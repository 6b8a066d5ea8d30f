package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// DefaultRepoSource is the repository queried when none is given
const DefaultRepoSource = "mozilla-central"

// CoverageRecord holds one file or directory's coverage counts for a revision.
// On the wire it is the tuple [name, isDirectory, covered, uncovered].
type CoverageRecord struct {
	Covered     int
	IsDirectory bool
	Name        string
	Uncovered   int
}

// UnmarshalJSON decodes the [name, isDirectory, covered, uncovered] tuple.
// A null name decodes to the empty string.
func (r *CoverageRecord) UnmarshalJSON(data []byte) error {
	var tuple []json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		return fmt.Errorf("coverage record is not a tuple: %w", err)
	}
	if len(tuple) != 4 {
		return fmt.Errorf("coverage record has %d fields, want 4", len(tuple))
	}

	var name *string
	if err := json.Unmarshal(tuple[0], &name); err != nil {
		return fmt.Errorf("invalid coverage record name: %w", err)
	}
	var isDirectory *bool
	if err := json.Unmarshal(tuple[1], &isDirectory); err != nil {
		return fmt.Errorf("invalid coverage record directory flag: %w", err)
	}
	covered, err := decodeCount(tuple[2])
	if err != nil {
		return fmt.Errorf("invalid covered count: %w", err)
	}
	uncovered, err := decodeCount(tuple[3])
	if err != nil {
		return fmt.Errorf("invalid uncovered count: %w", err)
	}

	*r = CoverageRecord{}
	if name != nil {
		r.Name = *name
	}
	if isDirectory != nil {
		r.IsDirectory = *isDirectory
	}
	r.Covered = covered
	r.Uncovered = uncovered
	return nil
}

// maxCount is the largest count a float64 holds exactly
const maxCount = 1 << 53

// decodeCount reads a non-negative whole number. Null decodes to zero and
// integral floats such as 5.0 are accepted.
func decodeCount(raw json.RawMessage) (int, error) {
	var value *float64
	if err := json.Unmarshal(raw, &value); err != nil {
		return 0, err
	}
	if value == nil {
		return 0, nil
	}
	v := *value
	switch {
	case v < 0:
		return 0, fmt.Errorf("%v is negative", v)
	case v != math.Trunc(v):
		return 0, fmt.Errorf("%v is not a whole number", v)
	case v > maxCount:
		return 0, fmt.Errorf("%v is too large", v)
	}
	return int(v), nil
}

// MarshalJSON encodes the record back into its tuple form
func (r CoverageRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{r.Name, r.IsDirectory, r.Covered, r.Uncovered})
}

// Total returns covered plus uncovered units
func (r CoverageRecord) Total() int {
	return r.Covered + r.Uncovered
}

// SnapshotKey identifies one directory listing of one revision
type SnapshotKey struct {
	Path       string
	RepoSource string
	Revision   string
}

// CoverageSnapshot is a cached directory listing as returned by the lookup service
type CoverageSnapshot struct {
	FetchedAt time.Time
	Key       SnapshotKey
	Records   []CoverageRecord
}

// SnapshotSummary describes a cached snapshot without its records
type SnapshotSummary struct {
	Entries   int
	FetchedAt time.Time
	Key       SnapshotKey
}
