package availability

import (
	"context"
	"sort"
	"time"

	"github.com/salonkit/booking/schedule"
	"golang.org/x/sync/errgroup"
)

// scanConcurrency bounds the per-date fan-out of a month scan.
const scanConcurrency = 8

// FullyBookedDates returns the dates in one month on which the pool has at
// least one working window but yields zero slots. Dates nobody works are not
// "fully booked", since there was nothing to book.
//
// Dates are scanned independently in parallel; there is no ordering
// dependency between them. When cache is non-nil, results are served from
// and stored under MonthKey(PoolScope(req.Providers), year, month).
func FullyBookedDates(ctx context.Context, cache DateCache, req PoolRequest, year int, month time.Month) ([]schedule.Date, error) {
	key := MonthKey(PoolScope(req.Providers), year, month)
	if cache != nil {
		if dates, ok := cache.Get(ctx, key); ok {
			return dates, nil
		}
	}

	first := schedule.Date{Year: year, Month: month, Day: 1}
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()

	booked := make([]bool, daysInMonth)
	var g errgroup.Group
	g.SetLimit(scanConcurrency)

	for i := 0; i < daysInMonth; i++ {
		i := i
		g.Go(func() error {
			dayReq := req
			dayReq.Date = first.AddDays(i)
			if !poolWorks(dayReq) {
				return nil
			}
			slots, err := PoolSlots(dayReq)
			if err != nil {
				return err
			}
			booked[i] = len(slots) == 0
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var dates []schedule.Date
	for i, full := range booked {
		if full {
			dates = append(dates, first.AddDays(i))
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	if cache != nil {
		cache.Set(ctx, key, dates)
	}
	return dates, nil
}

// poolWorks reports whether any active provider has a working window on the
// request's date.
func poolWorks(req PoolRequest) bool {
	for _, p := range req.Providers {
		if !p.Active {
			continue
		}
		if len(p.Schedule.WindowsOn(req.Date, req.Clamp)) > 0 {
			return true
		}
	}
	return false
}
