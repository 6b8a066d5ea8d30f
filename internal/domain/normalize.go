package domain

import (
	"slices"
	"strings"
)

// rejectedPrefixes are names injected by the coverage instrumentation
// that never map to a source file in the tree.
var rejectedPrefixes = []string{
	"/",
	"chrome:",
	"data:",
	"obj-firefox",
	"resource:",
}

// noneName is the placeholder the instrumentation uses for unknown sources
const noneName = "NONE"

// IsRejectedName reports whether a record with this name is noise.
// An empty name is treated as "/".
func IsRejectedName(name string) bool {
	if name == "" {
		name = "/"
	}
	if name == noneName {
		return true
	}
	for _, prefix := range rejectedPrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// FilterRecords drops noise records, keeping input order
func FilterRecords(records []CoverageRecord) []CoverageRecord {
	filtered := make([]CoverageRecord, 0, len(records))
	for _, r := range records {
		if IsRejectedName(r.Name) {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}

// CompareRecords orders directories before files, then by name
func CompareRecords(a, b CoverageRecord) int {
	if a.IsDirectory != b.IsDirectory {
		if a.IsDirectory {
			return -1
		}
		return 1
	}
	return strings.Compare(a.Name, b.Name)
}

// SortRecords stable-sorts records in place using CompareRecords
func SortRecords(records []CoverageRecord) {
	slices.SortStableFunc(records, CompareRecords)
}

// Normalize turns raw lookup output into display order.
// The input slice is not modified. The result is never nil.
func Normalize(records []CoverageRecord) []CoverageRecord {
	normalized := FilterRecords(records)
	SortRecords(normalized)
	return normalized
}
