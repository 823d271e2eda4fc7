// Package handler contains the Pub/Sub push handler for the plan worker.
package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"lnlfit/config"
	deliverycontext "lnlfit/internal/delivery/context"
	"lnlfit/internal/domain/constants"
	"lnlfit/internal/domain/service"
	"lnlfit/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"google.golang.org/api/idtoken"
)

// PubSubMessage represents the structure of a Pub/Sub push message
type PubSubMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// GenerateHandler handles Pub/Sub push messages driving plan generation.
type GenerateHandler struct {
	verifyPushAuth bool
	logger         *slog.Logger
	generation     usecase.GenerationUsecase
}

// GenerateHandlerParams holds dependencies for the GenerateHandler
type GenerateHandlerParams struct {
	fx.In

	Config     *config.Config
	Logger     *slog.Logger
	Generation usecase.GenerationUsecase
}

// NewGenerateHandler creates a new Pub/Sub push handler
func NewGenerateHandler(params GenerateHandlerParams) *GenerateHandler {
	// Determine if we need to verify push auth based on config
	verifyPushAuth := params.Config.PubSub != nil &&
		params.Config.PubSub.Provider == constants.PubSubProviderGoogle &&
		params.Config.Env.Env != constants.EnvDevelop

	return &GenerateHandler{
		verifyPushAuth: verifyPushAuth,
		logger:         params.Logger,
		generation:     params.Generation,
	}
}

// HandlePush handles incoming Pub/Sub push messages.
//
// GeneratePlan records terminal outcomes (parse failure, plan already done)
// on the plan itself and returns nil for them; an error from it means a
// transient fault worth a redelivery. So: error → 503 to trigger a Pub/Sub
// retry, otherwise 200 to acknowledge.
func (h *GenerateHandler) HandlePush(c echo.Context) error {
	ctx := c.Request().Context()

	// Verify Pub/Sub token in production for Google provider
	if h.verifyPushAuth {
		if err := verifyPubSubToken(c.Request()); err != nil {
			h.logger.Warn("[Worker] Invalid Pub/Sub token", slog.Any("error", err))

			return c.NoContent(http.StatusUnauthorized)
		}
	}

	// Parse Pub/Sub message
	var pushMsg PubSubMessage
	if err := c.Bind(&pushMsg); err != nil {
		h.logger.Error("[Worker] Failed to parse push message", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	// Decode base64 message data
	data, err := base64.StdEncoding.DecodeString(pushMsg.Message.Data)
	if err != nil {
		h.logger.Error("[Worker] Failed to decode message data", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	// Parse generation event
	var event service.PlanGenerationEvent
	if err := json.Unmarshal(data, &event); err != nil {
		h.logger.Error("[Worker] Failed to parse generation event", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	// Extract request_id for distributed tracing
	// Priority: message attributes > event field > existing context
	requestID := h.extractRequestID(ctx, &pushMsg, &event)

	// Create request-scoped logger with request_id
	reqLogger := h.logger.With(slog.String("request_id", requestID))

	// Update context with request_id and logger
	ctx = deliverycontext.WithRequestID(ctx, requestID)
	ctx = deliverycontext.WithLogger(ctx, reqLogger)

	reqLogger.Info("[Worker] Processing generation event",
		slog.String("meal_plan_id", event.MealPlanID),
		slog.String("customer_id", event.CustomerID),
	)

	// A message without the plan or customer ID can never succeed; acknowledge
	// so it is not redelivered.
	if event.MealPlanID == "" || event.CustomerID == "" {
		reqLogger.Error("[Worker] Generation event missing required identifiers")

		return c.NoContent(http.StatusOK)
	}

	input := &usecase.GeneratePlanInput{
		MealPlanID:       event.MealPlanID,
		CustomerID:       event.CustomerID,
		ChatSessionToken: event.ChatSessionToken,
	}
	if err := h.generation.GeneratePlan(ctx, input); err != nil {
		reqLogger.Error("[Worker] Generation failed, requesting redelivery",
			slog.String("meal_plan_id", event.MealPlanID),
			slog.Any("error", err),
		)

		return c.NoContent(http.StatusServiceUnavailable)
	}

	reqLogger.Info("[Worker] Generation event processed",
		slog.String("meal_plan_id", event.MealPlanID),
	)

	return c.NoContent(http.StatusOK)
}

// extractRequestID extracts request_id from message attributes, event, or generates a new one
func (h *GenerateHandler) extractRequestID(ctx context.Context, pushMsg *PubSubMessage, event *service.PlanGenerationEvent) string {
	// 1. Try message attributes (from Pub/Sub)
	if requestID, ok := pushMsg.Message.Attributes["request_id"]; ok && requestID != "" {
		return requestID
	}

	// 2. Try event field (from JSON payload)
	if event.RequestID != "" {
		return event.RequestID
	}

	// 3. Try existing context (from RequestIDMiddleware via X-Request-Id header)
	if requestID := deliverycontext.GetRequestIDFromContext(ctx); requestID != "" {
		return requestID
	}

	// 4. Generate new UUID as fallback
	return uuid.New().String()
}

// verifyPubSubToken verifies the JWT token from Google Pub/Sub push requests
// Reference: https://cloud.google.com/pubsub/docs/push#authenticating_standard_push_requests
func verifyPubSubToken(req *http.Request) error {
	// Get the Authorization header
	authHeader := req.Header.Get("Authorization")
	if authHeader == "" {
		return errors.New("missing authorization header")
	}

	// Extract Bearer token
	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return errors.New("invalid authorization header format")
	}
	token := strings.TrimPrefix(authHeader, bearerPrefix)

	// Construct the expected audience (the push endpoint URL)
	scheme := "https"
	if req.TLS == nil {
		scheme = "http" // For local development
	}
	audience := fmt.Sprintf("%s://%s%s", scheme, req.Host, req.URL.Path)

	// Validate the token using Google's ID token validator
	ctx := req.Context()
	payload, err := idtoken.Validate(ctx, token, audience)
	if err != nil {
		return errors.Wrap(err, "failed to validate token")
	}

	// Verify the token is from Google Pub/Sub
	// The issuer should be accounts.google.com
	if payload.Issuer != "accounts.google.com" && payload.Issuer != "https://accounts.google.com" {
		return errors.Errorf("invalid issuer: %s", payload.Issuer)
	}

	// Verify email is verified (if email claim exists)
	if emailVerified, ok := payload.Claims["email_verified"].(bool); ok && !emailVerified {
		return errors.New("email not verified")
	}

	return nil
}
