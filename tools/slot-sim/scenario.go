package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/salonkit/booking/availability"
	"github.com/salonkit/booking/cancellation"
	"github.com/salonkit/booking/schedule"
	"gopkg.in/yaml.v3"
)

// scenario is the YAML input. Times of day, dates, and weekdays arrive as
// strings and are validated once here before anything reaches the engine.
type scenario struct {
	Timezone    string    `yaml:"timezone"`
	Date        string    `yaml:"date"`
	Now         time.Time `yaml:"now"`
	StepMinutes int       `yaml:"step_minutes"`
	HorizonDays int       `yaml:"horizon_days"`

	Service struct {
		DurationMinutes     int `yaml:"duration_minutes"`
		BufferBeforeMinutes int `yaml:"buffer_before_minutes"`
		BufferAfterMinutes  int `yaml:"buffer_after_minutes"`
	} `yaml:"service"`

	Providers []providerYAML `yaml:"providers"`

	Bookings  map[string][]bookingYAML  `yaml:"bookings"`
	Blackouts map[string][]intervalYAML `yaml:"blackouts"`

	RecurringBlackouts []recurringYAML `yaml:"recurring_blackouts"`

	Cancellation *cancelYAML `yaml:"cancellation"`
}

type providerYAML struct {
	ID        string                  `yaml:"id"`
	Active    bool                    `yaml:"active"`
	Weekly    map[string]dayHoursYAML `yaml:"weekly"`
	Shifts    []shiftYAML             `yaml:"shifts"`
	Overrides map[string][]spanYAML   `yaml:"overrides"`
	TimeOff   []timeOffYAML           `yaml:"time_off"`
}

type dayHoursYAML struct {
	Start  string     `yaml:"start"`
	End    string     `yaml:"end"`
	Breaks []spanYAML `yaml:"breaks"`
}

type shiftYAML struct {
	Weekday string `yaml:"weekday"`
	Start   string `yaml:"start"`
	End     string `yaml:"end"`
}

type spanYAML struct {
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

type timeOffYAML struct {
	Start  time.Time `yaml:"start"`
	End    time.Time `yaml:"end"`
	Reason string    `yaml:"reason"`
}

type bookingYAML struct {
	ID     string    `yaml:"id"`
	Start  time.Time `yaml:"start"`
	End    time.Time `yaml:"end"`
	Status string    `yaml:"status"`
}

type intervalYAML struct {
	Start time.Time `yaml:"start"`
	End   time.Time `yaml:"end"`
}

type recurringYAML struct {
	Rule            string    `yaml:"rule"`
	Start           time.Time `yaml:"start"`
	DurationMinutes int       `yaml:"duration_minutes"`
}

type cancelYAML struct {
	Policy struct {
		FreeCancelHours int      `yaml:"free_cancel_hours"`
		NoRefundHours   int      `yaml:"no_refund_hours"`
		PartialPercent  *float64 `yaml:"partial_percent"`
		PartialFixed    *int64   `yaml:"partial_fixed_minor_units"`
		AppliesTo       string   `yaml:"applies_to"`
		GraceMinutes    int      `yaml:"grace_minutes"`
		Currency        string   `yaml:"currency"`
	} `yaml:"policy"`
	Appointment struct {
		Start             time.Time `yaml:"start"`
		BookedAt          time.Time `yaml:"booked_at"`
		Mode              string    `yaml:"mode"`
		TotalMinorUnits   string    `yaml:"total_minor_units"`
		DepositMinorUnits string    `yaml:"deposit_minor_units"`
	} `yaml:"appointment"`
}

func loadScenario(path string) (*scenario, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc scenario
	if err := yaml.Unmarshal(body, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	return &sc, nil
}

func buildSpan(s spanYAML) (schedule.Span, error) {
	start, err := schedule.ParseMinuteOfDay(s.Start)
	if err != nil {
		return schedule.Span{}, err
	}
	end, err := schedule.ParseMinuteOfDay(s.End)
	if err != nil {
		return schedule.Span{}, err
	}
	return schedule.Span{Start: start, End: end}, nil
}

func buildProvider(p providerYAML) (availability.Provider, error) {
	id, err := uuid.Parse(p.ID)
	if err != nil {
		return availability.Provider{}, fmt.Errorf("provider id %q: %w", p.ID, err)
	}

	var week schedule.WeekPlan
	switch {
	case len(p.Weekly) > 0 && len(p.Shifts) > 0:
		return availability.Provider{}, fmt.Errorf("provider %s: weekly and shifts are mutually exclusive", p.ID)
	case len(p.Weekly) > 0:
		weekly := schedule.WeeklyMap{}
		for name, day := range p.Weekly {
			wd, err := schedule.ParseWeekday(name)
			if err != nil {
				return availability.Provider{}, err
			}
			start, err := schedule.ParseMinuteOfDay(day.Start)
			if err != nil {
				return availability.Provider{}, err
			}
			end, err := schedule.ParseMinuteOfDay(day.End)
			if err != nil {
				return availability.Provider{}, err
			}
			hours := schedule.DayHours{Start: start, End: end}
			for _, br := range day.Breaks {
				span, err := buildSpan(br)
				if err != nil {
					return availability.Provider{}, err
				}
				hours.Breaks = append(hours.Breaks, schedule.Break{Start: span.Start, End: span.End})
			}
			weekly[wd] = hours
		}
		week = weekly
	case len(p.Shifts) > 0:
		var shifts schedule.ShiftList
		for _, sh := range p.Shifts {
			wd, err := schedule.ParseWeekday(sh.Weekday)
			if err != nil {
				return availability.Provider{}, err
			}
			start, err := schedule.ParseMinuteOfDay(sh.Start)
			if err != nil {
				return availability.Provider{}, err
			}
			end, err := schedule.ParseMinuteOfDay(sh.End)
			if err != nil {
				return availability.Provider{}, err
			}
			shifts = append(shifts, schedule.Shift{Weekday: wd, Start: start, End: end})
		}
		week = shifts
	}

	spec := schedule.Spec{Week: week}
	for dateStr, spans := range p.Overrides {
		date, err := schedule.ParseDate(dateStr)
		if err != nil {
			return availability.Provider{}, err
		}
		if spec.Overrides == nil {
			spec.Overrides = map[schedule.Date][]schedule.Span{}
		}
		for _, s := range spans {
			span, err := buildSpan(s)
			if err != nil {
				return availability.Provider{}, err
			}
			spec.Overrides[date] = append(spec.Overrides[date], span)
		}
		if len(spans) == 0 {
			spec.Overrides[date] = nil
		}
	}

	provider := availability.Provider{ID: id, Active: p.Active, Schedule: spec}
	for _, t := range p.TimeOff {
		provider.TimeOff = append(provider.TimeOff, availability.TimeOff{Start: t.Start, End: t.End, Reason: t.Reason})
	}
	return provider, nil
}

func (sc *scenario) poolRequest(cfg simConfig) (availability.PoolRequest, error) {
	tz := sc.Timezone
	if tz == "" {
		tz = cfg.Timezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return availability.PoolRequest{}, fmt.Errorf("timezone %q: %w", tz, err)
	}

	date, err := schedule.ParseDate(sc.Date)
	if err != nil {
		return availability.PoolRequest{}, err
	}

	step := sc.StepMinutes
	if step == 0 {
		step = cfg.StepMinutes
	}

	req := availability.PoolRequest{
		Date:        date,
		Location:    loc,
		StepMinutes: step,
		Service: availability.Service{
			DurationMinutes:     sc.Service.DurationMinutes,
			BufferBeforeMinutes: sc.Service.BufferBeforeMinutes,
			BufferAfterMinutes:  sc.Service.BufferAfterMinutes,
		},
		Bookings:  map[uuid.UUID][]availability.Booking{},
		Blackouts: map[uuid.UUID][]availability.Blackout{},
		Now:       sc.Now,
	}
	if req.Now.IsZero() {
		req.Now = time.Now()
	}

	for _, p := range sc.Providers {
		provider, err := buildProvider(p)
		if err != nil {
			return availability.PoolRequest{}, err
		}
		req.Providers = append(req.Providers, provider)
	}

	for pid, items := range sc.Bookings {
		id, err := uuid.Parse(pid)
		if err != nil {
			return availability.PoolRequest{}, fmt.Errorf("booking provider id %q: %w", pid, err)
		}
		for _, b := range items {
			bookingID := uuid.Nil
			if b.ID != "" {
				if bookingID, err = uuid.Parse(b.ID); err != nil {
					return availability.PoolRequest{}, fmt.Errorf("booking id %q: %w", b.ID, err)
				}
			}
			req.Bookings[id] = append(req.Bookings[id], availability.Booking{
				ID: bookingID, Start: b.Start, End: b.End, Status: b.Status,
			})
		}
	}

	dayStart, dayEnd := date.BoundsIn(loc)
	var recurring []availability.RecurringBlackout
	for _, r := range sc.RecurringBlackouts {
		recurring = append(recurring, availability.RecurringBlackout{
			Rule:     r.Rule,
			Start:    r.Start,
			Duration: time.Duration(r.DurationMinutes) * time.Minute,
		})
	}
	expanded, err := availability.ExpandBlackouts(recurring, dayStart, dayEnd)
	if err != nil {
		return availability.PoolRequest{}, err
	}

	for pid, items := range sc.Blackouts {
		id, err := uuid.Parse(pid)
		if err != nil {
			return availability.PoolRequest{}, fmt.Errorf("blackout provider id %q: %w", pid, err)
		}
		for _, iv := range items {
			req.Blackouts[id] = append(req.Blackouts[id], availability.Blackout{Start: iv.Start, End: iv.End})
		}
	}
	// Recurring closures apply salon-wide.
	for _, p := range req.Providers {
		req.Blackouts[p.ID] = append(req.Blackouts[p.ID], expanded...)
	}

	return req, nil
}

func (sc *scenario) cancellationInput() (cancellation.Appointment, cancellation.Policy, error) {
	if sc.Cancellation == nil {
		return cancellation.Appointment{}, cancellation.Policy{}, fmt.Errorf("scenario has no cancellation section")
	}
	c := sc.Cancellation

	policy := cancellation.Policy{
		FreeCancelHours: c.Policy.FreeCancelHours,
		NoRefundHours:   c.Policy.NoRefundHours,
		Partial: cancellation.PartialRefund{
			Percent:         c.Policy.PartialPercent,
			FixedMinorUnits: c.Policy.PartialFixed,
		},
		AppliesTo:    cancellation.Scope(c.Policy.AppliesTo),
		GraceMinutes: c.Policy.GraceMinutes,
		CurrencyCode: c.Policy.Currency,
	}

	appt := cancellation.Appointment{
		Start:    c.Appointment.Start,
		BookedAt: c.Appointment.BookedAt,
		Payment: cancellation.PaymentSnapshot{
			Mode:              cancellation.Mode(c.Appointment.Mode),
			TotalMinorUnits:   cancellation.ParseMinorUnits(c.Appointment.TotalMinorUnits),
			DepositMinorUnits: cancellation.ParseMinorUnits(c.Appointment.DepositMinorUnits),
		},
	}
	return appt, policy, nil
}
