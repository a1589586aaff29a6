package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MinuteOfDay is a salon-local time of day expressed as minutes from
// midnight. 1440 ("24:00") is valid only as the end of a window.
type MinuteOfDay int

const EndOfDay MinuteOfDay = 24 * 60

// ParseMinuteOfDay parses an "HH:MM" wall-clock string. "24:00" is accepted
// as the exclusive end of a day.
func ParseMinuteOfDay(s string) (MinuteOfDay, error) {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok || len(hh) != 2 || len(mm) != 2 {
		return 0, fmt.Errorf("invalid time of day %q: want HH:MM", s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	m, err := strconv.Atoi(mm)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	if h == 24 && m == 0 {
		return EndOfDay, nil
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("time of day %q out of range", s)
	}
	return MinuteOfDay(h*60 + m), nil
}

func (m MinuteOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(m)/60, int(m)%60)
}

func (m MinuteOfDay) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *MinuteOfDay) UnmarshalText(b []byte) error {
	parsed, err := ParseMinuteOfDay(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

var weekdayNames = map[string]time.Weekday{
	"sunday": time.Sunday, "sun": time.Sunday,
	"monday": time.Monday, "mon": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday,
	"friday": time.Friday, "fri": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday,
}

// ParseWeekday parses a weekday name ("monday" or "mon", case-insensitive).
func ParseWeekday(s string) (time.Weekday, error) {
	if wd, ok := weekdayNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return wd, nil
	}
	return 0, fmt.Errorf("invalid weekday %q", s)
}

// WeekdayIndex validates a 0-6 weekday index (Sunday = 0).
func WeekdayIndex(n int) (time.Weekday, error) {
	if n < 0 || n > 6 {
		return 0, fmt.Errorf("weekday index %d out of range", n)
	}
	return time.Weekday(n), nil
}
