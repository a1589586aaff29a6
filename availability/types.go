package availability

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/salonkit/booking/schedule"
)

// Interval is a half-open absolute time range [Start, End). A range whose end
// touches another range's start does not overlap it; back-to-back bookings
// with zero gap are allowed.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports half-open overlap with o.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start.Before(o.End) && o.Start.Before(i.End)
}

func (i Interval) empty() bool {
	return !i.End.After(i.Start)
}

// Booking is an existing appointment snapshot. Any status beginning with
// "cancelled" does not block the calendar.
type Booking struct {
	ID     uuid.UUID
	Start  time.Time
	End    time.Time
	Status string
}

func (b Booking) cancelled() bool {
	return strings.HasPrefix(b.Status, "cancelled")
}

// TimeOff is an approved absence, in absolute instants.
type TimeOff struct {
	Start  time.Time
	End    time.Time
	Reason string
}

// Blackout is an ad-hoc caller-supplied exclusion with the same blocking
// semantics as time off.
type Blackout struct {
	Start time.Time
	End   time.Time
}

// Service describes the bookable unit. The total block (buffer before +
// duration + buffer after) is what must fit unobstructed.
type Service struct {
	DurationMinutes     int
	BufferBeforeMinutes int
	BufferAfterMinutes  int
}

// TotalBlockMinutes is the full span a slot occupies on the calendar.
func (s Service) TotalBlockMinutes() int {
	return s.BufferBeforeMinutes + s.DurationMinutes + s.BufferAfterMinutes
}

// Provider is a bookable staff member snapshot. Inactive providers never
// yield slots.
type Provider struct {
	ID       uuid.UUID
	Active   bool
	Schedule schedule.Spec
	TimeOff  []TimeOff
}

// Slot is a bookable start for a single provider. End - Start equals the
// service's total block exactly.
type Slot struct {
	Start      time.Time
	End        time.Time
	ProviderID uuid.UUID
}

// PoolSlot is one bookable start across a provider pool, carrying every
// provider able to serve it.
type PoolSlot struct {
	Start       time.Time
	End         time.Time
	ProviderIDs []uuid.UUID
}
