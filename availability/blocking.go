package availability

import (
	"sort"
	"time"

	"github.com/salonkit/booking/schedule"
)

// BlockedIntervals merges a provider's non-cancelled bookings, time off, and
// blackout windows into a sorted, non-overlapping set of blocked absolute
// intervals for one calendar date.
//
// The date's bounds come from timezone-aware conversion of local midnight to
// midnight, never naive offset arithmetic, so the result stays correct across
// DST transitions. Every input interval is clamped to [dayStart, dayEnd);
// anything that clamps to empty is dropped.
func BlockedIntervals(date schedule.Date, loc *time.Location, bookings []Booking, timeOff []TimeOff, blackouts []Blackout) []Interval {
	dayStart, dayEnd := date.BoundsIn(loc)

	raw := make([]Interval, 0, len(bookings)+len(timeOff)+len(blackouts))
	for _, b := range bookings {
		if b.cancelled() {
			continue
		}
		raw = append(raw, Interval{Start: b.Start, End: b.End})
	}
	for _, t := range timeOff {
		raw = append(raw, Interval{Start: t.Start, End: t.End})
	}
	for _, b := range blackouts {
		raw = append(raw, Interval{Start: b.Start, End: b.End})
	}

	clamped := raw[:0]
	for _, iv := range raw {
		if iv.Start.Before(dayStart) {
			iv.Start = dayStart
		}
		if iv.End.After(dayEnd) {
			iv.End = dayEnd
		}
		if iv.empty() {
			continue
		}
		clamped = append(clamped, iv)
	}

	return mergeIntervals(clamped)
}

// mergeIntervals sorts by start and coalesces every interval whose start is
// at or before the running merge's end, so touching intervals fuse into one.
func mergeIntervals(intervals []Interval) []Interval {
	if len(intervals) == 0 {
		return nil
	}
	sort.Slice(intervals, func(i, j int) bool { return intervals[i].Start.Before(intervals[j].Start) })

	merged := []Interval{intervals[0]}
	for _, iv := range intervals[1:] {
		last := &merged[len(merged)-1]
		if !iv.Start.After(last.End) {
			if iv.End.After(last.End) {
				last.End = iv.End
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}
