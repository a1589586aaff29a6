package availability

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/salonkit/booking/schedule"
)

type countingCache struct {
	store map[string][]schedule.Date
	gets  int
	sets  int
}

func newCountingCache() *countingCache {
	return &countingCache{store: map[string][]schedule.Date{}}
}

func (c *countingCache) Get(_ context.Context, key string) ([]schedule.Date, bool) {
	c.gets++
	dates, ok := c.store[key]
	return dates, ok
}

func (c *countingCache) Set(_ context.Context, key string, dates []schedule.Date) {
	c.sets++
	c.store[key] = dates
}

// mondaysOnlyPool has a single one-hour Monday window, so each Monday offers
// exactly one one-hour slot.
func mondaysOnlyPool(t *testing.T) PoolRequest {
	t.Helper()
	loc := mustLoc(t, "Europe/London")
	return PoolRequest{
		Location:    loc,
		StepMinutes: 60,
		Service:     Service{DurationMinutes: 60},
		Providers: []Provider{{
			ID:     anna,
			Active: true,
			Schedule: schedule.Spec{
				Week: schedule.WeeklyMap{time.Monday: {Start: 540, End: 600}},
			},
		}},
		Bookings: map[uuid.UUID][]Booking{},
		Now:      time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestFullyBookedDates(t *testing.T) {
	req := mondaysOnlyPool(t)
	loc := req.Location

	// Book out the first two Mondays of June 2025 (the 2nd and the 9th).
	req.Bookings[anna] = []Booking{
		{Start: time.Date(2025, 6, 2, 9, 0, 0, 0, loc), End: time.Date(2025, 6, 2, 10, 0, 0, 0, loc), Status: "booked"},
		{Start: time.Date(2025, 6, 9, 9, 0, 0, 0, loc), End: time.Date(2025, 6, 9, 10, 0, 0, 0, loc), Status: "booked"},
	}

	dates, err := FullyBookedDates(context.Background(), nil, req, 2025, time.June)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []schedule.Date{
		{Year: 2025, Month: time.June, Day: 2},
		{Year: 2025, Month: time.June, Day: 9},
	}
	if len(dates) != len(want) {
		t.Fatalf("expected %v, got %v", want, dates)
	}
	for i := range want {
		if dates[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, dates)
		}
	}
}

func TestFullyBookedDatesIgnoresNonWorkingDays(t *testing.T) {
	// No bookings at all: no date is fully booked, and in particular the
	// non-working Tuesday-Sunday days must not count as booked.
	dates, err := FullyBookedDates(context.Background(), nil, mondaysOnlyPool(t), 2025, time.June)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dates) != 0 {
		t.Fatalf("expected no fully booked dates, got %v", dates)
	}
}

func TestFullyBookedDatesUsesCache(t *testing.T) {
	req := mondaysOnlyPool(t)
	loc := req.Location
	req.Bookings[anna] = []Booking{
		{Start: time.Date(2025, 6, 2, 9, 0, 0, 0, loc), End: time.Date(2025, 6, 2, 10, 0, 0, 0, loc), Status: "booked"},
	}
	cache := newCountingCache()

	first, err := FullyBookedDates(context.Background(), cache, req, 2025, time.June)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := FullyBookedDates(context.Background(), cache, req, 2025, time.June)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cache.sets != 1 || cache.gets != 2 {
		t.Fatalf("expected one scan and one cache hit, got sets=%d gets=%d", cache.sets, cache.gets)
	}
	if len(first) != 1 || len(second) != 1 || first[0] != second[0] {
		t.Fatalf("cache must return the scanned result, got %v then %v", first, second)
	}
}

func TestLRUDateCacheRoundTrip(t *testing.T) {
	cache := NewLRUDateCache(4, 50*time.Millisecond)
	key := MonthKey("pool", 2025, time.June)
	dates := []schedule.Date{{Year: 2025, Month: time.June, Day: 2}}

	cache.Set(context.Background(), key, dates)
	got, ok := cache.Get(context.Background(), key)
	if !ok || len(got) != 1 || got[0] != dates[0] {
		t.Fatalf("expected cached dates back, got %v ok=%v", got, ok)
	}

	time.Sleep(80 * time.Millisecond)
	if _, ok := cache.Get(context.Background(), key); ok {
		t.Fatalf("expected entry to expire after the TTL")
	}
}

func TestMonthKey(t *testing.T) {
	if got := MonthKey("abc", 2025, time.June); got != "fully-booked:abc:2025-06" {
		t.Fatalf("unexpected key %s", got)
	}
}
