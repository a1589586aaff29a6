package availability

import (
	"fmt"
	"time"

	"github.com/salonkit/booking/schedule"
)

// Request carries everything SlotGenerator needs for one provider on one
// date. All fields are read-only snapshots; Slots never mutates them. Now is
// the caller-supplied clock, which keeps generation deterministic.
type Request struct {
	Date        schedule.Date
	Location    *time.Location
	StepMinutes int
	Service     Service
	Provider    Provider
	Bookings    []Booking
	Blackouts   []Blackout
	Clamp       *schedule.Clamp
	Now         time.Time
}

func (r Request) validate() error {
	if r.Location == nil {
		return fmt.Errorf("availability: location is required")
	}
	if r.StepMinutes <= 0 {
		return fmt.Errorf("availability: step must be positive, got %d", r.StepMinutes)
	}
	if r.Service.DurationMinutes <= 0 {
		return fmt.Errorf("availability: service duration must be positive, got %d", r.Service.DurationMinutes)
	}
	if r.Service.BufferBeforeMinutes < 0 || r.Service.BufferAfterMinutes < 0 {
		return fmt.Errorf("availability: buffers must not be negative")
	}
	return nil
}

// Slots generates the bookable slots for one provider on one date, in
// ascending start order. An inactive provider or a date with no working
// windows yields an empty result, not an error.
//
// Every step-aligned candidate start inside a window is tested with the full
// service block against the window's breaks and the date's blocked set, all
// with half-open semantics. On the salon-local "today", candidate starts not
// strictly in the future are rejected.
func Slots(req Request) ([]Slot, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	if !req.Provider.Active {
		return nil, nil
	}
	windows := req.Provider.Schedule.WindowsOn(req.Date, req.Clamp)
	if len(windows) == 0 {
		return nil, nil
	}

	total := req.Service.TotalBlockMinutes()
	blocked := BlockedIntervals(req.Date, req.Location, req.Bookings, req.Provider.TimeOff, req.Blackouts)
	today := schedule.DateOf(req.Now, req.Location) == req.Date

	var slots []Slot
	for _, w := range windows {
		for m := alignUp(w.Start, req.StepMinutes); m+schedule.MinuteOfDay(total) <= w.End; m += schedule.MinuteOfDay(req.StepMinutes) {
			if overlapsBreak(m, m+schedule.MinuteOfDay(total), w.Breaks) {
				continue
			}
			start, ok := req.Date.MinuteIn(req.Location, m)
			if !ok {
				// Wall-clock time that does not exist on this date
				// (spring-forward gap).
				continue
			}
			if today && !start.After(req.Now) {
				continue
			}
			candidate := Interval{Start: start, End: start.Add(time.Duration(total) * time.Minute)}
			if overlapsBlocked(candidate, blocked) {
				continue
			}
			slots = append(slots, Slot{Start: candidate.Start, End: candidate.End, ProviderID: req.Provider.ID})
		}
	}
	return slots, nil
}

// alignUp returns the smallest minute >= m that sits on the step grid
// (minute mod step == 0).
func alignUp(m schedule.MinuteOfDay, step int) schedule.MinuteOfDay {
	rem := int(m) % step
	if rem == 0 {
		return m
	}
	return m + schedule.MinuteOfDay(step-rem)
}

func overlapsBreak(start, end schedule.MinuteOfDay, breaks []schedule.Break) bool {
	for _, b := range breaks {
		if start < b.End && b.Start < end {
			return true
		}
	}
	return false
}

func overlapsBlocked(candidate Interval, blocked []Interval) bool {
	for _, iv := range blocked {
		if candidate.Overlaps(iv) {
			return true
		}
	}
	return false
}
