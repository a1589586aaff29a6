package cancellation

import "strconv"

// Scope selects which paid amount a policy computes refunds against.
type Scope string

const (
	ScopeFull        Scope = "full"
	ScopeDepositOnly Scope = "deposit_only"
)

// Mode is how the customer paid for the appointment.
type Mode string

const (
	ModePayNow     Mode = "pay_now"
	ModeDeposit    Mode = "deposit"
	ModePayInSalon Mode = "pay_in_salon"
)

// PartialRefund is the partial-tier amount: a percentage of the base or a
// fixed number of minor units, whichever is set. When neither is set the
// partial tier resolves to zero rather than failing; an amount must always
// come back.
type PartialRefund struct {
	Percent         *float64
	FixedMinorUnits *int64
}

// Policy is a cancellation policy, scoped either to one provider or to the
// whole business.
type Policy struct {
	FreeCancelHours int
	NoRefundHours   int
	Partial         PartialRefund
	AppliesTo       Scope
	GraceMinutes    int
	CurrencyCode    string
}

// Resolve picks the effective policy: the provider-scoped one wins when both
// exist. ok is false when neither is configured.
func Resolve(provider, business *Policy) (Policy, bool) {
	if provider != nil {
		return *provider, true
	}
	if business != nil {
		return *business, true
	}
	return Policy{}, false
}

// ParseMinorUnits coerces a monetary string to integral minor units.
// Negative or unparsable values become 0; bad money never reaches the refund
// arithmetic.
func ParseMinorUnits(s string) int64 {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func clampMinor(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}
