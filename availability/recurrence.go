package availability

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

// RecurringBlackout is a salon closure that repeats per an RFC 5545
// recurrence rule: a weekly staff meeting, a public holiday series. Start
// anchors the rule and fixes the time of day; every occurrence blocks
// [occurrence, occurrence+Duration).
type RecurringBlackout struct {
	Rule     string // e.g. "FREQ=WEEKLY;BYDAY=MO"; empty means a single occurrence at Start
	Start    time.Time
	Duration time.Duration
}

// ExpandBlackouts materializes recurring closures into concrete blackout
// windows overlapping [from, to). The result feeds straight into
// BlockedIntervals, which clamps each window to the date being scanned.
func ExpandBlackouts(rules []RecurringBlackout, from, to time.Time) ([]Blackout, error) {
	var out []Blackout
	for _, rb := range rules {
		if rb.Duration <= 0 {
			return nil, fmt.Errorf("availability: recurring blackout duration must be positive")
		}
		if rb.Rule == "" {
			if rb.Start.Add(rb.Duration).After(from) && rb.Start.Before(to) {
				out = append(out, Blackout{Start: rb.Start, End: rb.Start.Add(rb.Duration)})
			}
			continue
		}
		rr, err := rrule.StrToRRule(rb.Rule)
		if err != nil {
			return nil, fmt.Errorf("availability: invalid recurrence rule %q: %w", rb.Rule, err)
		}
		rr.DTStart(rb.Start)
		// Widen the window so an occurrence that starts before `from` but
		// still covers part of it is not lost.
		for _, occ := range rr.Between(from.Add(-rb.Duration), to, true) {
			end := occ.Add(rb.Duration)
			if end.After(from) && occ.Before(to) {
				out = append(out, Blackout{Start: occ, End: end})
			}
		}
	}
	return out, nil
}
