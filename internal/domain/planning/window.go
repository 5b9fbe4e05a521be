// Package planning contains the decision/planning engine: a pure,
// deterministic pipeline that turns a household snapshot and a recipe
// catalog into a single proposed dinner plan with a full reasoning trace.
package planning

import (
	"sort"
	"time"

	"github.com/platewise/v1/internal/domain/household"
)

// TimeInterval is a half-open [Start, End) time range.
type TimeInterval struct {
	Start time.Time
	End   time.Time
}

// Minutes returns the interval's whole-minute duration. It is always
// recomputed from the endpoints, never carried alongside them.
func (i TimeInterval) Minutes() int {
	if !i.End.After(i.Start) {
		return 0
	}
	return int(i.End.Sub(i.Start) / time.Minute)
}

// SubtractBlocks removes the household's calendar blocks from the nominal
// cooking window and returns the free sub-intervals in chronological order.
// Blocks may arrive unsorted and overlapping; they are clipped to the
// window before subtraction. Zero-length gaps are dropped.
func SubtractBlocks(window TimeInterval, blocks []household.CalendarBlock) []TimeInterval {
	if !window.End.After(window.Start) {
		return nil
	}

	sorted := make([]household.CalendarBlock, len(blocks))
	copy(sorted, blocks)
	sort.Slice(sorted, func(a, b int) bool {
		return sorted[a].StartsAt.Before(sorted[b].StartsAt)
	})

	var free []TimeInterval
	cursor := window.Start
	for _, block := range sorted {
		start := block.StartsAt
		end := block.EndsAt
		if start.Before(window.Start) {
			start = window.Start
		}
		if end.After(window.End) {
			end = window.End
		}
		if !end.After(start) {
			// Block lies entirely outside the window.
			continue
		}
		if start.After(cursor) {
			free = append(free, TimeInterval{Start: cursor, End: start})
		}
		if end.After(cursor) {
			cursor = end
		}
	}
	if window.End.After(cursor) {
		free = append(free, TimeInterval{Start: cursor, End: window.End})
	}
	return free
}

// PickLongestThenEarliest selects the free interval to plan against: the
// one with the most whole minutes, ties broken by earliest start. The
// second return value is false when no interval exists, which callers
// must treat as a normal planning outcome rather than an error.
func PickLongestThenEarliest(intervals []TimeInterval) (TimeInterval, bool) {
	if len(intervals) == 0 {
		return TimeInterval{}, false
	}
	best := intervals[0]
	for _, candidate := range intervals[1:] {
		switch {
		case candidate.Minutes() > best.Minutes():
			best = candidate
		case candidate.Minutes() == best.Minutes() && candidate.Start.Before(best.Start):
			best = candidate
		}
	}
	return best, true
}
