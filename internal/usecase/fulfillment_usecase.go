package usecase

import (
	"context"

	"lnlfit/internal/domain/service"
)

// FulfillmentUsecase reacts to verified payment webhook events. Bookkeeping is
// best-effort: individual step failures are logged and do not roll back prior
// steps, and the webhook boundary always acknowledges once the signature is
// verified.
type FulfillmentUsecase interface {
	// HandlePaymentCompleted records the order, marks the customer as
	// purchased, books any affiliate commission, creates the meal plan in
	// generating state and enqueues generation. Idempotent on the payment
	// session ID: redelivered events perform no new writes.
	HandlePaymentCompleted(ctx context.Context, event *service.PaymentCompletedEvent) error

	// HandlePaymentFailed records a failed payment intent for observability.
	HandlePaymentFailed(ctx context.Context, paymentIntentID string) error
}
