package schedule

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a civil calendar date in the salon's local calendar. It carries no
// timezone; conversion to absolute instants happens explicitly via BoundsIn
// and MinuteIn so that DST transitions are handled in exactly one place.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate parses a "YYYY-MM-DD" date string. Anything else is rejected
// before it can reach the engine.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}, nil
}

// DateOf returns the civil date of t as observed in loc.
func DateOf(t time.Time, loc *time.Location) Date {
	y, m, d := t.In(loc).Date()
	return Date{Year: y, Month: m, Day: d}
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Weekday returns the day of week of the civil date.
func (d Date) Weekday() time.Weekday {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Weekday()
}

// AddDays returns the date n calendar days later (earlier for negative n).
func (d Date) AddDays(n int) Date {
	t := time.Date(d.Year, d.Month, d.Day+n, 0, 0, 0, 0, time.UTC)
	y, m, day := t.Date()
	return Date{Year: y, Month: m, Day: day}
}

// Before reports whether d is earlier than o.
func (d Date) Before(o Date) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

// StartIn returns the first instant of the date in loc. On dates where local
// midnight does not exist (some zones spring forward over 00:00), time.Date
// normalizes to the first valid wall time, which is what we want.
func (d Date) StartIn(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// BoundsIn returns the half-open absolute interval [start, end) covering the
// date in loc. end is the start of the following date, so the interval is 23,
// 24 or 25 hours long across DST transitions.
func (d Date) BoundsIn(loc *time.Location) (time.Time, time.Time) {
	return d.StartIn(loc), d.AddDays(1).StartIn(loc)
}

// MinuteIn converts a salon-local minute-from-midnight on this date to an
// absolute instant. ok is false when that wall-clock time does not exist on
// this date (spring-forward gap); ambiguous fall-back times resolve to the
// single instant time.Date yields, so every civil minute maps to at most one
// instant.
func (d Date) MinuteIn(loc *time.Location, m MinuteOfDay) (time.Time, bool) {
	t := time.Date(d.Year, d.Month, d.Day, 0, int(m), 0, 0, loc)
	if DateOf(t, loc) != d {
		return time.Time{}, false
	}
	if MinuteOfDay(t.Hour()*60+t.Minute()) != m {
		return time.Time{}, false
	}
	return t, true
}
