package availability

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/salonkit/booking/schedule"
	"golang.org/x/sync/errgroup"
)

// poolConcurrency bounds the per-provider fan-out.
const poolConcurrency = 8

// PoolRequest asks for slots across a candidate pool of providers ("any
// available staff"). Bookings and blackouts are keyed by provider.
type PoolRequest struct {
	Date        schedule.Date
	Location    *time.Location
	StepMinutes int
	Service     Service
	Providers   []Provider
	Bookings    map[uuid.UUID][]Booking
	Blackouts   map[uuid.UUID][]Blackout
	Clamp       *schedule.Clamp
	Now         time.Time
}

func (r PoolRequest) requestFor(p Provider) Request {
	return Request{
		Date:        r.Date,
		Location:    r.Location,
		StepMinutes: r.StepMinutes,
		Service:     r.Service,
		Provider:    p,
		Bookings:    r.Bookings[p.ID],
		Blackouts:   r.Blackouts[p.ID],
		Clamp:       r.Clamp,
		Now:         r.Now,
	}
}

// PoolSlots runs slot generation once per active provider and folds the
// results by exact start instant, so customers choosing "any available
// staff" see one slot per start time with the full set of providers able to
// serve it. The result is sorted by start ascending; provider sets are
// sorted for determinism.
func PoolSlots(req PoolRequest) ([]PoolSlot, error) {
	type acc struct {
		end time.Time
		ids []uuid.UUID
	}
	byStart := make(map[int64]*acc)

	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(poolConcurrency)

	for _, p := range req.Providers {
		p := p
		g.Go(func() error {
			slots, err := Slots(req.requestFor(p))
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			for _, s := range slots {
				key := s.Start.UnixNano()
				a, ok := byStart[key]
				if !ok {
					a = &acc{end: s.End}
					byStart[key] = a
				}
				a.ids = append(a.ids, s.ProviderID)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	keys := make([]int64, 0, len(byStart))
	for k := range byStart {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	out := make([]PoolSlot, 0, len(keys))
	for _, k := range keys {
		a := byStart[k]
		sort.Slice(a.ids, func(i, j int) bool { return a.ids[i].String() < a.ids[j].String() })
		out = append(out, PoolSlot{
			Start:       time.Unix(0, k).In(req.Location),
			End:         a.end,
			ProviderIDs: a.ids,
		})
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}
