package availability

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/salonkit/booking/schedule"
)

var staffID = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

// mondayRequest builds a baseline request for Monday 2025-06-02 in London,
// far from "now" so the today filter stays out of the way.
func mondayRequest(t *testing.T, day schedule.DayHours) Request {
	t.Helper()
	return Request{
		Date:        schedule.Date{Year: 2025, Month: time.June, Day: 2},
		Location:    mustLoc(t, "Europe/London"),
		StepMinutes: 30,
		Service:     Service{DurationMinutes: 30},
		Provider: Provider{
			ID:       staffID,
			Active:   true,
			Schedule: schedule.Spec{Week: schedule.WeeklyMap{time.Monday: day}},
		},
		Now: time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func localStarts(t *testing.T, slots []Slot, loc *time.Location) []string {
	t.Helper()
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Start.In(loc).Format("15:04"))
	}
	return out
}

func TestSlotsBasic(t *testing.T) {
	req := mondayRequest(t, schedule.DayHours{Start: 540, End: 660}) // 09:00-11:00
	day := func(h, m int) time.Time { return time.Date(2025, 6, 2, h, m, 0, 0, req.Location) }
	req.Bookings = []Booking{{Start: day(9, 30), End: day(10, 0), Status: "booked"}}

	slots, err := Slots(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 09:30 conflicts; 09:00 ends exactly at the booking's start and 10:00
	// starts exactly at its end, and zero-gap back-to-back is allowed.
	want := []string{"09:00", "10:00", "10:30"}
	if got := localStarts(t, slots, req.Location); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for _, s := range slots {
		if s.ProviderID != staffID {
			t.Fatalf("expected provider %s, got %s", staffID, s.ProviderID)
		}
		if got := s.End.Sub(s.Start); got != 30*time.Minute {
			t.Fatalf("expected 30m block, got %s", got)
		}
	}
}

func TestSlotsBuffersCountAgainstBlocking(t *testing.T) {
	req := mondayRequest(t, schedule.DayHours{Start: 540, End: 660}) // 09:00-11:00
	req.Service = Service{DurationMinutes: 30, BufferBeforeMinutes: 15, BufferAfterMinutes: 15}
	day := func(h, m int) time.Time { return time.Date(2025, 6, 2, h, m, 0, 0, req.Location) }
	req.Bookings = []Booking{{Start: day(10, 30), End: day(11, 0), Status: "booked"}}

	slots, err := Slots(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Total block is 60m. 10:00 would run 10:00-11:00 into the booking;
	// 09:30 runs 09:30-10:30 and only touches it.
	want := []string{"09:00", "09:30"}
	if got := localStarts(t, slots, req.Location); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for _, s := range slots {
		if got := s.End.Sub(s.Start); got != time.Hour {
			t.Fatalf("slot span must equal the total block, got %s", got)
		}
	}
}

func TestSlotsBreaksHalfOpen(t *testing.T) {
	req := mondayRequest(t, schedule.DayHours{
		Start:  540, // 09:00
		End:    720, // 12:00
		Breaks: []schedule.Break{{Start: 600, End: 630}}, // 10:00-10:30
	})

	slots, err := Slots(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"09:00", "09:30", "10:30", "11:00", "11:30"}
	if got := localStarts(t, slots, req.Location); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestSlotsStepGridAlignment(t *testing.T) {
	req := mondayRequest(t, schedule.DayHours{Start: 550, End: 660}) // 09:10-11:00
	req.StepMinutes = 15

	slots, err := Slots(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) == 0 {
		t.Fatalf("expected slots")
	}
	first := slots[0].Start.In(req.Location)
	if first.Hour() != 9 || first.Minute() != 15 {
		t.Fatalf("expected first grid-aligned start 09:15, got %s", first.Format("15:04"))
	}
	for _, s := range slots {
		local := s.Start.In(req.Location)
		if (local.Hour()*60+local.Minute())%req.StepMinutes != 0 {
			t.Fatalf("start %s not on the %dm grid", local.Format("15:04"), req.StepMinutes)
		}
	}
}

func TestSlotsInactiveProvider(t *testing.T) {
	req := mondayRequest(t, schedule.DayHours{Start: 540, End: 660})
	req.Provider.Active = false

	slots, err := Slots(req)
	if err != nil {
		t.Fatalf("inactive provider is not an error: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("inactive provider must yield no slots, got %d", len(slots))
	}
}

func TestSlotsNonWorkingDate(t *testing.T) {
	req := mondayRequest(t, schedule.DayHours{Start: 540, End: 660})
	req.Date = req.Date.AddDays(1) // Tuesday, no schedule entry

	slots, err := Slots(req)
	if err != nil || len(slots) != 0 {
		t.Fatalf("expected empty result, got %d slots err=%v", len(slots), err)
	}
}

func TestSlotsRejectsPastOnToday(t *testing.T) {
	req := mondayRequest(t, schedule.DayHours{Start: 540, End: 720}) // 09:00-12:00
	req.Now = time.Date(2025, 6, 2, 10, 5, 0, 0, req.Location)

	slots, err := Slots(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 09:00-10:00 are in the past; 10:00 start is not strictly future at
	// 10:05 either.
	want := []string{"10:30", "11:00", "11:30"}
	if got := localStarts(t, slots, req.Location); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestSlotsSpringForwardSkipsMissingHour(t *testing.T) {
	req := Request{
		Date:        schedule.Date{Year: 2025, Month: time.March, Day: 30}, // a Sunday
		Location:    mustLoc(t, "Europe/London"),
		StepMinutes: 30,
		Service:     Service{DurationMinutes: 60},
		Provider: Provider{
			ID:     staffID,
			Active: true,
			Schedule: schedule.Spec{
				Week: schedule.WeeklyMap{time.Sunday: {Start: 0, End: 240}}, // 00:00-04:00
			},
		},
		Now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	slots, err := Slots(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 01:00 and 01:30 do not exist that night.
	want := []string{"00:00", "00:30", "02:00", "02:30", "03:00"}
	if got := localStarts(t, slots, req.Location); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for _, s := range slots {
		if got := s.End.Sub(s.Start); got != time.Hour {
			t.Fatalf("absolute span must stay 1h across the transition, got %s", got)
		}
	}
}

func TestSlotsFallBackNoDuplicateStarts(t *testing.T) {
	req := Request{
		Date:        schedule.Date{Year: 2025, Month: time.October, Day: 26}, // a Sunday
		Location:    mustLoc(t, "Europe/London"),
		StepMinutes: 30,
		Service:     Service{DurationMinutes: 30},
		Provider: Provider{
			ID:     staffID,
			Active: true,
			Schedule: schedule.Spec{
				Week: schedule.WeeklyMap{time.Sunday: {Start: 0, End: 180}}, // 00:00-03:00
			},
		},
		Now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	slots, err := Slots(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 6 {
		t.Fatalf("expected 6 slots, got %d", len(slots))
	}
	seen := map[int64]bool{}
	for _, s := range slots {
		key := s.Start.UnixNano()
		if seen[key] {
			t.Fatalf("duplicate start instant %s", s.Start)
		}
		seen[key] = true
	}
}

func TestSlotsDeterministic(t *testing.T) {
	req := mondayRequest(t, schedule.DayHours{
		Start:  540,
		End:    1020,
		Breaks: []schedule.Break{{Start: 720, End: 780}},
	})
	day := func(h, m int) time.Time { return time.Date(2025, 6, 2, h, m, 0, 0, req.Location) }
	req.Bookings = []Booking{{Start: day(14, 0), End: day(15, 0), Status: "booked"}}
	req.Blackouts = []Blackout{{Start: day(16, 0), End: day(16, 30)}}

	first, err := Slots(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Slots(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identical inputs must yield identical output")
	}
}

func TestSlotsValidation(t *testing.T) {
	base := mondayRequest(t, schedule.DayHours{Start: 540, End: 660})

	bad := base
	bad.StepMinutes = 0
	if _, err := Slots(bad); err == nil {
		t.Fatalf("expected error for zero step")
	}

	bad = base
	bad.Location = nil
	if _, err := Slots(bad); err == nil {
		t.Fatalf("expected error for nil location")
	}

	bad = base
	bad.Service.DurationMinutes = 0
	if _, err := Slots(bad); err == nil {
		t.Fatalf("expected error for zero duration")
	}

	bad = base
	bad.Service.BufferBeforeMinutes = -5
	if _, err := Slots(bad); err == nil {
		t.Fatalf("expected error for negative buffer")
	}
}
