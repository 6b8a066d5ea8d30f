package domain

import (
	"fmt"
	"math"
)

// IndeterminateLabel is shown when a record has no instrumented units
const IndeterminateLabel = "n/a"

// CoverageLevel buckets a percentage for display
type CoverageLevel string

const (
	LevelHigh    CoverageLevel = "high"
	LevelLow     CoverageLevel = "low"
	LevelMedium  CoverageLevel = "medium"
	LevelUnknown CoverageLevel = "unknown"
)

// Default thresholds, matching the coverage dashboards
const (
	DefaultLowThreshold    = 20
	DefaultMediumThreshold = 70
)

// Thresholds are the upper bounds (exclusive) of the low and medium levels
type Thresholds struct {
	Low    int
	Medium int
}

// DefaultThresholds returns the stock low/medium bounds
func DefaultThresholds() Thresholds {
	return Thresholds{Low: DefaultLowThreshold, Medium: DefaultMediumThreshold}
}

// Validate checks that the bounds are ordered and within 0..100
func (t Thresholds) Validate() error {
	if t.Low < 0 || t.Medium > 100 {
		return fmt.Errorf("coverage thresholds must be within 0..100 (low=%d, medium=%d)", t.Low, t.Medium)
	}
	if t.Low > t.Medium {
		return fmt.Errorf("low threshold %d is above medium threshold %d", t.Low, t.Medium)
	}
	return nil
}

// Percent returns round(100*covered/total).
// ok is false when the record has zero total units.
func Percent(r CoverageRecord) (percent int, ok bool) {
	total := r.Total()
	if total <= 0 {
		return 0, false
	}
	ratio := 100 * float64(r.Covered) / float64(total)
	return int(math.Floor(ratio + 0.5)), true
}

// FormatPercent renders a percentage like "84%", or IndeterminateLabel
func FormatPercent(r CoverageRecord) string {
	percent, ok := Percent(r)
	if !ok {
		return IndeterminateLabel
	}
	return fmt.Sprintf("%d%%", percent)
}

// Level classifies a record against the thresholds
func (t Thresholds) Level(r CoverageRecord) CoverageLevel {
	percent, ok := Percent(r)
	if !ok {
		return LevelUnknown
	}
	if percent < t.Medium {
		if percent < t.Low {
			return LevelLow
		}
		return LevelMedium
	}
	return LevelHigh
}
