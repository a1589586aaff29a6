package availability

import "fmt"

// MaxHorizonDays bounds how far forward the next-available scan will walk.
const MaxHorizonDays = 90

func clampHorizon(days int) (int, error) {
	if days < 1 {
		return 0, fmt.Errorf("availability: horizon must be at least 1 day, got %d", days)
	}
	if days > MaxHorizonDays {
		return MaxHorizonDays, nil
	}
	return days, nil
}

// NextSlot walks forward from req.Date one calendar date at a time, up to
// horizonDays dates, and returns the first slot found. Slot generation emits
// in ascending order, so the first slot of the first non-empty date is the
// earliest. ok is false when the horizon is exhausted.
func NextSlot(req Request, horizonDays int) (Slot, bool, error) {
	days, err := clampHorizon(horizonDays)
	if err != nil {
		return Slot{}, false, err
	}
	from := req.Date
	for i := 0; i < days; i++ {
		req.Date = from.AddDays(i)
		slots, err := Slots(req)
		if err != nil {
			return Slot{}, false, err
		}
		if len(slots) > 0 {
			return slots[0], true, nil
		}
	}
	return Slot{}, false, nil
}

// NextPoolSlot is NextSlot in "any available staff" mode.
func NextPoolSlot(req PoolRequest, horizonDays int) (PoolSlot, bool, error) {
	days, err := clampHorizon(horizonDays)
	if err != nil {
		return PoolSlot{}, false, err
	}
	from := req.Date
	for i := 0; i < days; i++ {
		req.Date = from.AddDays(i)
		slots, err := PoolSlots(req)
		if err != nil {
			return PoolSlot{}, false, err
		}
		if len(slots) > 0 {
			return slots[0], true, nil
		}
	}
	return PoolSlot{}, false, nil
}
