package cancellation

import (
	"math"
	"time"
)

// PaymentSnapshot is what was paid (or promised) for an appointment, in
// integral minor currency units.
type PaymentSnapshot struct {
	Mode              Mode
	TotalMinorUnits   int64
	DepositMinorUnits int64
}

// Appointment is the timing and payment snapshot of the booking being
// cancelled.
type Appointment struct {
	Start    time.Time
	BookedAt time.Time
	Payment  PaymentSnapshot
}

// Status classifies a cancellation outcome.
type Status string

const (
	StatusFullRefund    Status = "full_refund"
	StatusPartialRefund Status = "partial_refund"
	StatusNoRefund      Status = "no_refund"
)

// Reason codes explaining which policy tier decided the outcome.
const (
	ReasonBaseZero       = "base_zero"
	ReasonGraceWindow    = "grace_window"
	ReasonFreeWindow     = "free_window"
	ReasonInsideNoRefund = "inside_no_refund"
	ReasonPartialWindow  = "partial_window"
)

// Outcome is the monetary result of a cancellation. RefundMinorUnits is
// always within [0, base payable amount].
type Outcome struct {
	RefundMinorUnits int64
	Status           Status
	Reason           string
}

// Calculate evaluates a cancellation policy against an appointment at the
// supplied "now". Pure and deterministic: no clock reads, no side effects.
//
// Tiers apply in strict precedence: zero base, then the post-booking grace
// window (a cooling-off full refund regardless of proximity to the
// appointment), then the free-cancel window, then the no-refund band, then
// the partial tier. Hours to start and minutes since booking are civil
// durations in the salon's timezone, so a DST shift between now and the
// appointment does not distort the count.
func Calculate(appt Appointment, p Policy, now time.Time, loc *time.Location) Outcome {
	base := baseAmount(appt.Payment, p.AppliesTo)
	if base == 0 {
		return Outcome{RefundMinorUnits: 0, Status: StatusNoRefund, Reason: ReasonBaseZero}
	}

	hoursToStart := civilDuration(now, appt.Start, loc).Hours()
	minutesSinceBooked := civilDuration(appt.BookedAt, now, loc).Minutes()

	switch {
	case minutesSinceBooked <= float64(p.GraceMinutes):
		return Outcome{RefundMinorUnits: base, Status: StatusFullRefund, Reason: ReasonGraceWindow}
	case hoursToStart >= float64(p.FreeCancelHours):
		return Outcome{RefundMinorUnits: base, Status: StatusFullRefund, Reason: ReasonFreeWindow}
	case hoursToStart <= float64(p.NoRefundHours):
		return Outcome{RefundMinorUnits: 0, Status: StatusNoRefund, Reason: ReasonInsideNoRefund}
	}

	amount := partialAmount(base, p.Partial)
	status := StatusPartialRefund
	if amount == 0 {
		status = StatusNoRefund
	}
	return Outcome{RefundMinorUnits: amount, Status: status, Reason: ReasonPartialWindow}
}

// baseAmount picks the payable amount refunds are computed against. Paying
// in the salon means nothing was taken, so there is nothing to refund.
func baseAmount(pay PaymentSnapshot, scope Scope) int64 {
	total := clampMinor(pay.TotalMinorUnits)
	deposit := clampMinor(pay.DepositMinorUnits)

	switch {
	case pay.Mode == ModePayNow:
		return total
	case pay.Mode == ModeDeposit && scope == ScopeFull:
		return total
	case pay.Mode == ModeDeposit && scope == ScopeDepositOnly:
		return deposit
	default:
		return 0
	}
}

func partialAmount(base int64, partial PartialRefund) int64 {
	var amount int64
	switch {
	case partial.Percent != nil:
		pct := *partial.Percent
		if pct < 0 {
			pct = 0
		}
		if pct > 100 {
			pct = 100
		}
		// Round half up on the percent calculation only.
		amount = int64(math.Floor(float64(base)*pct/100 + 0.5))
	case partial.FixedMinorUnits != nil:
		amount = *partial.FixedMinorUnits
	}
	if amount < 0 {
		amount = 0
	}
	if amount > base {
		amount = base
	}
	return amount
}

// civilDuration is the salon-local wall-clock difference from one instant to
// another: the absolute difference corrected by the UTC-offset change
// between the two endpoints. Across a spring-forward gap the civil count is
// one hour more than the absolute count, matching what the customer sees on
// the wall.
func civilDuration(from, to time.Time, loc *time.Location) time.Duration {
	_, offFrom := from.In(loc).Zone()
	_, offTo := to.In(loc).Zone()
	return to.Sub(from) + time.Duration(offTo-offFrom)*time.Second
}
