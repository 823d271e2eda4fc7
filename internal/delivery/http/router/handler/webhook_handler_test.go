package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"lnlfit/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	event *service.WebhookEvent
	err   error
}

func (f *fakeGateway) CreateCheckoutSession(_ context.Context, _ *service.CheckoutParams) (*service.CheckoutSession, error) {
	return &service.CheckoutSession{ID: "cs_test_1", URL: "https://checkout.example/cs_test_1"}, nil
}

func (f *fakeGateway) ParseWebhookEvent(_ []byte, _ string) (*service.WebhookEvent, error) {
	return f.event, f.err
}

type fakeFulfillment struct {
	completed     []*service.PaymentCompletedEvent
	failedIntents []string
	err           error
}

func (f *fakeFulfillment) HandlePaymentCompleted(_ context.Context, event *service.PaymentCompletedEvent) error {
	f.completed = append(f.completed, event)

	return f.err
}

func (f *fakeFulfillment) HandlePaymentFailed(_ context.Context, paymentIntentID string) error {
	f.failedIntents = append(f.failedIntents, paymentIntentID)

	return nil
}

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newWebhookContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/stripe", strings.NewReader(`{"id":"evt_1"}`))
	req.Header.Set(headerStripeSignature, "t=1,v1=abc")
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestWebhookHandler_InvalidSignatureRejected(t *testing.T) {
	gateway := &fakeGateway{err: errors.Wrap(service.ErrWebhookSignatureInvalid, "bad digest")}
	fulfillment := &fakeFulfillment{}
	h := NewWebhookHandler(gateway, fulfillment, newDiscardLogger())

	c, rec := newWebhookContext(t)
	require.NoError(t, h.HandleStripeWebhook(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, fulfillment.completed)
}

func TestWebhookHandler_MissingSecretIsServerError(t *testing.T) {
	gateway := &fakeGateway{err: errors.WithStack(service.ErrPaymentNotConfigured)}
	h := NewWebhookHandler(gateway, &fakeFulfillment{}, newDiscardLogger())

	c, rec := newWebhookContext(t)
	require.NoError(t, h.HandleStripeWebhook(c))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestWebhookHandler_CompletedEventDispatched(t *testing.T) {
	gateway := &fakeGateway{event: &service.WebhookEvent{
		Type: service.WebhookEventPaymentCompleted,
		Completed: &service.PaymentCompletedEvent{
			PaymentSessionID: "cs_test_1",
			CustomerID:       "cust-1",
			Amount:           4999,
		},
	}}
	fulfillment := &fakeFulfillment{}
	h := NewWebhookHandler(gateway, fulfillment, newDiscardLogger())

	c, rec := newWebhookContext(t)
	require.NoError(t, h.HandleStripeWebhook(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, fulfillment.completed, 1)
	assert.Equal(t, "cs_test_1", fulfillment.completed[0].PaymentSessionID)
	assert.Equal(t, "cust-1", fulfillment.completed[0].CustomerID)
}

func TestWebhookHandler_FulfillmentErrorStillAcknowledged(t *testing.T) {
	gateway := &fakeGateway{event: &service.WebhookEvent{
		Type:      service.WebhookEventPaymentCompleted,
		Completed: &service.PaymentCompletedEvent{PaymentSessionID: "cs_test_2", CustomerID: "cust-2"},
	}}
	fulfillment := &fakeFulfillment{err: errors.New("datastore down")}
	h := NewWebhookHandler(gateway, fulfillment, newDiscardLogger())

	c, rec := newWebhookContext(t)
	require.NoError(t, h.HandleStripeWebhook(c))

	// Once the signature checks out the provider must see success, or it
	// will redeliver against the same fault forever.
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWebhookHandler_PaymentFailedRecorded(t *testing.T) {
	gateway := &fakeGateway{event: &service.WebhookEvent{
		Type:            service.WebhookEventPaymentFailed,
		PaymentIntentID: "pi_1",
	}}
	fulfillment := &fakeFulfillment{}
	h := NewWebhookHandler(gateway, fulfillment, newDiscardLogger())

	c, rec := newWebhookContext(t)
	require.NoError(t, h.HandleStripeWebhook(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"pi_1"}, fulfillment.failedIntents)
}

func TestWebhookHandler_UnknownEventAcknowledged(t *testing.T) {
	gateway := &fakeGateway{event: &service.WebhookEvent{Type: service.WebhookEventIgnored}}
	fulfillment := &fakeFulfillment{}
	h := NewWebhookHandler(gateway, fulfillment, newDiscardLogger())

	c, rec := newWebhookContext(t)
	require.NoError(t, h.HandleStripeWebhook(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, fulfillment.completed)
	assert.Empty(t, fulfillment.failedIntents)
}
