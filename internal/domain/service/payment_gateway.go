package service

import (
	"context"

	"lnlfit/internal/errors"
)

// Payment gateway errors.
var (
	// ErrPaymentNotConfigured is returned when required payment credentials or
	// identifiers are missing from configuration.
	ErrPaymentNotConfigured = errors.New("payment gateway not configured")
	// ErrWebhookSignatureInvalid is returned when a webhook payload fails
	// signature verification and must not be trusted.
	ErrWebhookSignatureInvalid = errors.New("webhook signature verification failed")
)

// Webhook event types surfaced to the fulfillment pipeline.
const (
	WebhookEventPaymentCompleted = "payment.completed"
	WebhookEventPaymentFailed    = "payment.failed"
	WebhookEventIgnored          = "ignored"
)

// CheckoutParams carries everything needed to create a hosted checkout session.
type CheckoutParams struct {
	CustomerEmail    string
	CustomerID       string
	ChatSessionToken string
	AffiliateCode    string
}

// CheckoutSession is the provider's hosted checkout handle.
type CheckoutSession struct {
	ID  string // Payment session ID; later correlated by the status poller.
	URL string // Redirect URL for the customer's browser.
}

// PaymentCompletedEvent is a verified "payment completed" notification.
// Metadata fields round-trip from CheckoutParams through the provider.
type PaymentCompletedEvent struct {
	PaymentSessionID string
	PaymentIntentID  string
	Amount           int64 // Minor currency units.
	Currency         string
	CustomerID       string
	ChatSessionToken string
	AffiliateCode    string
}

// WebhookEvent is the provider-agnostic view of a signed webhook delivery.
// Completed is non-nil only for WebhookEventPaymentCompleted.
type WebhookEvent struct {
	Type            string
	Completed       *PaymentCompletedEvent
	PaymentIntentID string // Set for payment failure events.
}

// PaymentGateway defines the interface to the hosted payments provider.
type PaymentGateway interface {
	// CreateCheckoutSession creates a hosted checkout session for the
	// configured product and returns its redirect URL and session ID.
	CreateCheckoutSession(ctx context.Context, params *CheckoutParams) (*CheckoutSession, error)

	// ParseWebhookEvent verifies the payload signature against the shared
	// secret and maps the event into the provider-agnostic form.
	// ErrWebhookSignatureInvalid means the payload must be discarded.
	ParseWebhookEvent(payload []byte, signature string) (*WebhookEvent, error)
}
