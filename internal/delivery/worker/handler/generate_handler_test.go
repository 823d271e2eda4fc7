package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"lnlfit/config"
	"lnlfit/internal/domain/service"
	"lnlfit/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGeneration struct {
	inputs []*usecase.GeneratePlanInput
	err    error
}

func (f *fakeGeneration) GeneratePlan(_ context.Context, input *usecase.GeneratePlanInput) error {
	f.inputs = append(f.inputs, input)

	return f.err
}

func (f *fakeGeneration) FailStale(_ context.Context, _ time.Duration) (int, error) {
	return 0, nil
}

func newTestHandler(generation usecase.GenerationUsecase) *GenerateHandler {
	return NewGenerateHandler(GenerateHandlerParams{
		Config:     &config.Config{},
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		Generation: generation,
	})
}

func pushBody(t *testing.T, event *service.PlanGenerationEvent) string {
	t.Helper()

	payload, err := json.Marshal(event)
	require.NoError(t, err)

	body, err := json.Marshal(map[string]any{
		"message": map[string]any{
			"data":      base64.StdEncoding.EncodeToString(payload),
			"messageId": "m-1",
		},
		"subscription": "projects/p/subscriptions/s",
	})
	require.NoError(t, err)

	return string(body)
}

func doPush(t *testing.T, h *GenerateHandler, body string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/push", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	require.NoError(t, h.HandlePush(e.NewContext(req, rec)))

	return rec
}

func TestGenerateHandler_ProcessesEvent(t *testing.T) {
	generation := &fakeGeneration{}
	h := newTestHandler(generation)

	rec := doPush(t, h, pushBody(t, &service.PlanGenerationEvent{
		MealPlanID:       "plan-1",
		CustomerID:       "cust-1",
		ChatSessionToken: "chat-1",
	}))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, generation.inputs, 1)
	assert.Equal(t, "plan-1", generation.inputs[0].MealPlanID)
	assert.Equal(t, "cust-1", generation.inputs[0].CustomerID)
	assert.Equal(t, "chat-1", generation.inputs[0].ChatSessionToken)
}

func TestGenerateHandler_TransientFailureRequestsRedelivery(t *testing.T) {
	generation := &fakeGeneration{err: errors.New("generator unavailable")}
	h := newTestHandler(generation)

	rec := doPush(t, h, pushBody(t, &service.PlanGenerationEvent{
		MealPlanID: "plan-1",
		CustomerID: "cust-1",
	}))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestGenerateHandler_MissingIdentifiersAcknowledged(t *testing.T) {
	generation := &fakeGeneration{}
	h := newTestHandler(generation)

	rec := doPush(t, h, pushBody(t, &service.PlanGenerationEvent{MealPlanID: "plan-1"}))

	// A message that can never succeed must not be redelivered.
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, generation.inputs)
}

func TestGenerateHandler_BadBase64Rejected(t *testing.T) {
	generation := &fakeGeneration{}
	h := newTestHandler(generation)

	rec := doPush(t, h, `{"message":{"data":"%%not-base64%%","messageId":"m-1"},"subscription":"s"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, generation.inputs)
}

func TestGenerateHandler_RequestIDPrefersAttributes(t *testing.T) {
	generation := &fakeGeneration{}
	h := newTestHandler(generation)

	var pushMsg PubSubMessage
	pushMsg.Message.Attributes = map[string]string{"request_id": "attr-id"}

	requestID := h.extractRequestID(context.Background(), &pushMsg, &service.PlanGenerationEvent{RequestID: "event-id"})
	assert.Equal(t, "attr-id", requestID)

	pushMsg.Message.Attributes = nil
	requestID = h.extractRequestID(context.Background(), &pushMsg, &service.PlanGenerationEvent{RequestID: "event-id"})
	assert.Equal(t, "event-id", requestID)

	requestID = h.extractRequestID(context.Background(), &pushMsg, &service.PlanGenerationEvent{})
	assert.NotEmpty(t, requestID)
}
