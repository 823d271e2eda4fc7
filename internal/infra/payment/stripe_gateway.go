// Package payment implements the PaymentGateway domain service on Stripe
// hosted checkout.
package payment

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"lnlfit/config"
	"lnlfit/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/webhook"
)

// Metadata keys round-tripped through the checkout session. The webhook
// reads these back to correlate the payment with our records.
const (
	metadataCustomerID       = "customerId"
	metadataChatSessionToken = "chatSessionToken"
	metadataAffiliateCode    = "affiliateCode"
)

// stripeGateway implements service.PaymentGateway using Stripe.
type stripeGateway struct {
	cfg    *config.StripeConfig
	ourURL string
	logger *slog.Logger
}

// NewStripeGateway is the constructor for stripeGateway. The secret key is
// installed process-wide, matching the stripe-go usage model.
func NewStripeGateway(cfg *config.Config, logger *slog.Logger) (service.PaymentGateway, error) {
	if cfg.Stripe == nil || cfg.Stripe.SecretKey == "" || cfg.Stripe.PriceID == "" {
		return nil, errors.WithStack(service.ErrPaymentNotConfigured)
	}

	stripe.Key = cfg.Stripe.SecretKey

	return &stripeGateway{
		cfg:    cfg.Stripe,
		ourURL: strings.TrimRight(cfg.HTTP.BaseURL, "/"),
		logger: logger,
	}, nil
}

// CreateCheckoutSession creates a hosted checkout session for the configured
// price. Our identifiers travel in metadata and come back on the webhook.
func (g *stripeGateway) CreateCheckoutSession(ctx context.Context, params *service.CheckoutParams) (*service.CheckoutSession, error) {
	metadata := map[string]string{
		metadataCustomerID: params.CustomerID,
	}
	if params.ChatSessionToken != "" {
		metadata[metadataChatSessionToken] = params.ChatSessionToken
	}
	if params.AffiliateCode != "" {
		metadata[metadataAffiliateCode] = params.AffiliateCode
	}

	sessionParams := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(g.cfg.PriceID),
				Quantity: stripe.Int64(1),
			},
		},
		CustomerEmail: stripe.String(params.CustomerEmail),
		// Stripe substitutes the session ID; the success page polls status with it.
		SuccessURL: stripe.String(g.ourURL + g.cfg.SuccessPath + "?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(g.ourURL + g.cfg.CancelPath),
		Metadata:   metadata,
	}
	sessionParams.Context = ctx

	checkoutSession, err := session.New(sessionParams)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Stripe checkout session")
	}

	g.logger.Info("[Stripe] Checkout session created",
		slog.String("payment_session_id", checkoutSession.ID),
	)

	return &service.CheckoutSession{
		ID:  checkoutSession.ID,
		URL: checkoutSession.URL,
	}, nil
}

// ParseWebhookEvent verifies the payload signature and maps the Stripe event
// into the provider-agnostic form. Event types outside our interest map to
// WebhookEventIgnored so the endpoint can acknowledge them.
func (g *stripeGateway) ParseWebhookEvent(payload []byte, signature string) (*service.WebhookEvent, error) {
	if g.cfg.WebhookSecret == "" {
		return nil, errors.WithStack(service.ErrPaymentNotConfigured)
	}

	event, err := webhook.ConstructEvent(payload, signature, g.cfg.WebhookSecret)
	if err != nil {
		return nil, errors.Wrapf(service.ErrWebhookSignatureInvalid, "%v", err)
	}

	switch event.Type {
	case "checkout.session.completed":
		var checkoutSession stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &checkoutSession); err != nil {
			return nil, errors.Wrap(err, "failed to decode checkout session payload")
		}

		completed := &service.PaymentCompletedEvent{
			PaymentSessionID: checkoutSession.ID,
			Amount:           checkoutSession.AmountTotal,
			Currency:         string(checkoutSession.Currency),
			CustomerID:       checkoutSession.Metadata[metadataCustomerID],
			ChatSessionToken: checkoutSession.Metadata[metadataChatSessionToken],
			AffiliateCode:    checkoutSession.Metadata[metadataAffiliateCode],
		}
		if checkoutSession.PaymentIntent != nil {
			completed.PaymentIntentID = checkoutSession.PaymentIntent.ID
		}

		return &service.WebhookEvent{
			Type:      service.WebhookEventPaymentCompleted,
			Completed: completed,
		}, nil

	case "payment_intent.payment_failed":
		var paymentIntent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &paymentIntent); err != nil {
			return nil, errors.Wrap(err, "failed to decode payment intent payload")
		}

		return &service.WebhookEvent{
			Type:            service.WebhookEventPaymentFailed,
			PaymentIntentID: paymentIntent.ID,
		}, nil

	default:
		return &service.WebhookEvent{Type: service.WebhookEventIgnored}, nil
	}
}
