package schedule

import (
	"sort"
	"time"
)

// Break is a non-bookable stretch inside a working window, in salon-local
// minutes from midnight.
type Break struct {
	Start MinuteOfDay
	End   MinuteOfDay
}

// DayHours is the weekly-map form of a working day: one window plus optional
// breaks.
type DayHours struct {
	Start  MinuteOfDay
	End    MinuteOfDay
	Breaks []Break
}

// Shift is one entry of the shift-list form. A provider may carry several
// shifts for the same weekday (split shifts).
type Shift struct {
	Weekday time.Weekday
	Start   MinuteOfDay
	End     MinuteOfDay
}

// Span is a bare window used by date overrides.
type Span struct {
	Start MinuteOfDay
	End   MinuteOfDay
}

// WeekPlan is the recurring part of a schedule: either a WeeklyMap or a
// ShiftList. The variant is fixed by the type, not sniffed at runtime.
type WeekPlan interface {
	windowsOn(wd time.Weekday) []Window
}

// WeeklyMap maps weekday to a single working window with breaks.
type WeeklyMap map[time.Weekday]DayHours

func (w WeeklyMap) windowsOn(wd time.Weekday) []Window {
	day, ok := w[wd]
	if !ok {
		return nil
	}
	return []Window{{Start: day.Start, End: day.End, Breaks: day.Breaks}}
}

// ShiftList is a flat list of weekday shifts, supporting split shifts.
type ShiftList []Shift

func (s ShiftList) windowsOn(wd time.Weekday) []Window {
	var windows []Window
	for _, sh := range s {
		if sh.Weekday == wd {
			windows = append(windows, Window{Start: sh.Start, End: sh.End})
		}
	}
	return windows
}

// Spec is a provider's full schedule. Overrides take precedence over the week
// plan for their exact date: when an override list exists the week plan is
// ignored entirely for that date, even if the list is empty.
type Spec struct {
	Week      WeekPlan
	Overrides map[Date][]Span
}

// Window is a resolved working window on a specific date, in salon-local
// minutes from midnight.
type Window struct {
	Start  MinuteOfDay
	End    MinuteOfDay
	Breaks []Break
}

// Clamp optionally narrows every resolved window to an absolute day start and
// end. Breaks are left untouched.
type Clamp struct {
	DayStart *MinuteOfDay
	DayEnd   *MinuteOfDay
}

// WindowsOn resolves the working windows for a date. A date the provider does
// not work yields an empty result, not an error. Windows that are empty or
// reversed, before or after clamping, are silently discarded. The result is
// sorted by window start.
func (s Spec) WindowsOn(date Date, clamp *Clamp) []Window {
	var windows []Window
	if overrides, ok := s.Overrides[date]; ok {
		for _, span := range overrides {
			windows = append(windows, Window{Start: span.Start, End: span.End})
		}
	} else if s.Week != nil {
		windows = s.Week.windowsOn(date.Weekday())
	}

	valid := windows[:0]
	for _, w := range windows {
		if clamp != nil {
			if clamp.DayStart != nil && w.Start < *clamp.DayStart {
				w.Start = *clamp.DayStart
			}
			if clamp.DayEnd != nil && w.End > *clamp.DayEnd {
				w.End = *clamp.DayEnd
			}
		}
		if w.Start >= w.End {
			continue
		}
		valid = append(valid, w)
	}
	sort.Slice(valid, func(i, j int) bool { return valid[i].Start < valid[j].Start })
	if len(valid) == 0 {
		return nil
	}
	return valid
}
