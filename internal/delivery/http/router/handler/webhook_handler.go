package handler

import (
	"io"
	"log/slog"
	"net/http"

	"lnlfit/internal/delivery/http/response"
	"lnlfit/internal/domain/service"
	"lnlfit/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// headerStripeSignature carries the payload signature computed by Stripe.
const headerStripeSignature = "Stripe-Signature"

// WebhookHandler receives signed payment provider events. Once the signature
// is verified the endpoint always acknowledges with 200: processing failures
// are logged rather than surfaced, so the provider does not redeliver
// endlessly against a persistent downstream fault.
type WebhookHandler struct {
	gateway     service.PaymentGateway
	fulfillment usecase.FulfillmentUsecase
	logger      *slog.Logger
}

// NewWebhookHandler is the constructor for WebhookHandler, injected by Fx.
func NewWebhookHandler(gateway service.PaymentGateway, fulfillment usecase.FulfillmentUsecase, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{
		gateway:     gateway,
		fulfillment: fulfillment,
		logger:      logger,
	}
}

// HandleStripeWebhook verifies and dispatches one webhook delivery.
func (h *WebhookHandler) HandleStripeWebhook(c echo.Context) error {
	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		h.logger.Error("[Webhook] Failed to read payload", slog.Any("error", err))

		return response.BadRequest(c, "INVALID_PAYLOAD", "Failed to read webhook payload")
	}

	event, err := h.gateway.ParseWebhookEvent(payload, c.Request().Header.Get(headerStripeSignature))
	if err != nil {
		if errors.Is(err, service.ErrPaymentNotConfigured) {
			h.logger.Error("[Webhook] Webhook secret not configured")

			return response.InternalServerError(c, "NOT_CONFIGURED", "Webhook secret is not configured")
		}
		h.logger.Warn("[Webhook] Signature verification failed", slog.Any("error", err))

		return response.BadRequest(c, "INVALID_SIGNATURE", "Webhook signature verification failed")
	}

	ctx := c.Request().Context()

	switch event.Type {
	case service.WebhookEventPaymentCompleted:
		if err := h.fulfillment.HandlePaymentCompleted(ctx, event.Completed); err != nil {
			h.logger.Error("[Webhook] Fulfillment failed",
				slog.String("payment_session_id", event.Completed.PaymentSessionID),
				slog.Any("error", err),
			)
		}
	case service.WebhookEventPaymentFailed:
		if err := h.fulfillment.HandlePaymentFailed(ctx, event.PaymentIntentID); err != nil {
			h.logger.Error("[Webhook] Failed to record payment failure",
				slog.String("payment_intent_id", event.PaymentIntentID),
				slog.Any("error", err),
			)
		}
	default:
		h.logger.Info("[Webhook] Ignoring event type")
	}

	return response.Success(c, http.StatusOK, map[string]bool{"received": true}, "Webhook received")
}
