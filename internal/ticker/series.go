// Package ticker turns raw observation series into the display document the
// ticker widget consumes: per-commodity entries with a rounded price, a
// localized date label and percentage deltas, plus a fixed attribution line.
package ticker

import (
	"strconv"
	"strings"

	"tickerfeed/internal/provider"
)

// Point is one valid observation: a date and its parsed numeric value.
type Point struct {
	Date  string
	Value float64
}

// parseValue parses an observation value, rejecting the missing-sentinel
// and anything else that is not a number.
func parseValue(raw string) (float64, bool) {
	if raw == provider.Missing {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// LatestValid returns the chronologically last valid observation. The series
// arrives ordered by date ascending, so the scan runs from the end.
func LatestValid(series []provider.Observation) (Point, bool) {
	for i := len(series) - 1; i >= 0; i-- {
		if v, ok := parseValue(series[i].Value); ok {
			return Point{Date: series[i].Date, Value: v}, true
		}
	}
	return Point{}, false
}

// PreviousValid returns the second-most-recent valid observation, the one
// right before the latest. Needs at least two valid entries.
func PreviousValid(series []provider.Observation) (Point, bool) {
	seen := 0
	for i := len(series) - 1; i >= 0; i-- {
		v, ok := parseValue(series[i].Value)
		if !ok {
			continue
		}
		seen++
		if seen == 2 {
			return Point{Date: series[i].Date, Value: v}, true
		}
	}
	return Point{}, false
}

// YearlyAverage returns the arithmetic mean over the valid observations
// whose date falls in year (e.g. "2024").
func YearlyAverage(series []provider.Observation, year string) (float64, bool) {
	var sum float64
	var n int
	for _, o := range series {
		if !strings.HasPrefix(o.Date, year+"-") {
			continue
		}
		v, ok := parseValue(o.Value)
		if !ok {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// Pct is the percentage change of current against base. A zero base yields
// a non-finite result, which the annotation formatter drops.
func Pct(current, base float64) float64 {
	return (current - base) / base * 100
}
