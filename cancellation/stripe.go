package cancellation

import (
	"strings"

	"github.com/stripe/stripe-go/v79"
)

// RefundParams packages an outcome as the Stripe refund request the billing
// layer should execute. Returns nil when there is nothing to refund or no
// payment intent to refund against; executing the refund (and handling
// provider errors, retries, webhooks) stays with the caller.
func RefundParams(o Outcome, paymentIntentID string) *stripe.RefundParams {
	paymentIntentID = strings.TrimSpace(paymentIntentID)
	if o.RefundMinorUnits <= 0 || paymentIntentID == "" {
		return nil
	}
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(paymentIntentID),
		Amount:        stripe.Int64(o.RefundMinorUnits),
		Reason:        stripe.String(string(stripe.RefundReasonRequestedByCustomer)),
	}
	params.AddMetadata("outcome_status", string(o.Status))
	params.AddMetadata("reason_code", o.Reason)
	return params
}
