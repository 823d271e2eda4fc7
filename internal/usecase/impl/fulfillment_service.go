// Package impl contains the use-case implementations.
package impl

import (
	"context"
	"log/slog"
	"math"
	"time"

	deliverycontext "lnlfit/internal/delivery/context"
	"lnlfit/internal/domain/entity"
	"lnlfit/internal/domain/repository"
	"lnlfit/internal/domain/service"
	"lnlfit/internal/usecase"

	"github.com/pkg/errors"
)

type fulfillmentService struct {
	orderRepo     repository.OrderRepository
	customerRepo  repository.CustomerRepository
	mealPlanRepo  repository.MealPlanRepository
	affiliateRepo repository.AffiliateRepository
	publisher     service.EventPublisher
	logger        *slog.Logger
}

// NewFulfillmentService creates the payment-completed orchestrator.
func NewFulfillmentService(
	orderRepo repository.OrderRepository,
	customerRepo repository.CustomerRepository,
	mealPlanRepo repository.MealPlanRepository,
	affiliateRepo repository.AffiliateRepository,
	publisher service.EventPublisher,
	logger *slog.Logger,
) usecase.FulfillmentUsecase {
	return &fulfillmentService{
		orderRepo:     orderRepo,
		customerRepo:  customerRepo,
		mealPlanRepo:  mealPlanRepo,
		affiliateRepo: affiliateRepo,
		publisher:     publisher,
		logger:        logger,
	}
}

// HandlePaymentCompleted runs the fulfillment steps in strict order: order,
// customer flag, commission, meal plan, order back-reference, generation
// event. Steps after order creation are best-effort; a failing step is logged
// and does not prevent subsequent steps, because a missing commission record
// can be reconciled by hand but a customer left without a meal plan cannot.
func (s *fulfillmentService) HandlePaymentCompleted(ctx context.Context, event *service.PaymentCompletedEvent) error {
	if event.CustomerID == "" {
		s.logger.Error("[Fulfillment] No customer ID in payment metadata, skipping",
			slog.String("payment_session_id", event.PaymentSessionID),
		)

		return nil
	}

	now := time.Now()

	order := &entity.Order{
		CustomerID:       event.CustomerID,
		PaymentSessionID: event.PaymentSessionID,
		PaymentIntentID:  event.PaymentIntentID,
		Amount:           event.Amount,
		Currency:         event.Currency,
		Status:           entity.OrderStatusPaid,
		AffiliateCode:    event.AffiliateCode,
		ChatSessionToken: event.ChatSessionToken,
		PaidAt:           now,
		CreatedAt:        now,
	}

	orderID, err := s.orderRepo.CreateOrder(ctx, order)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateOrder) {
			// Redelivered webhook event; everything was already booked.
			s.logger.Info("[Fulfillment] Order already exists for payment session, skipping",
				slog.String("payment_session_id", event.PaymentSessionID),
			)

			return nil
		}

		return errors.Wrap(err, "failed to create order")
	}
	order.ID = orderID

	s.logger.Info("[Fulfillment] Order created",
		slog.String("order_id", orderID),
		slog.String("customer_id", event.CustomerID),
		slog.Int64("amount", event.Amount),
	)

	if err := s.customerRepo.MarkCustomerPurchased(ctx, event.CustomerID, orderID, now); err != nil {
		s.logger.Error("[Fulfillment] Failed to mark customer as purchased",
			slog.String("customer_id", event.CustomerID),
			slog.Any("error", err),
		)
	}

	if event.AffiliateCode != "" {
		s.bookCommission(ctx, event, orderID, now)
	}

	mealPlan := &entity.MealPlan{
		CustomerID:       event.CustomerID,
		OrderID:          orderID,
		ChatSessionToken: event.ChatSessionToken,
		Status:           entity.MealPlanStatusGenerating,
		CreatedAt:        now,
	}

	mealPlanID, err := s.mealPlanRepo.CreateMealPlan(ctx, mealPlan)
	if err != nil {
		return errors.Wrap(err, "failed to create meal plan")
	}

	s.logger.Info("[Fulfillment] Meal plan queued for generation",
		slog.String("meal_plan_id", mealPlanID),
		slog.String("order_id", orderID),
	)

	if err := s.orderRepo.AttachMealPlan(ctx, orderID, mealPlanID); err != nil {
		s.logger.Error("[Fulfillment] Failed to attach meal plan to order",
			slog.String("order_id", orderID),
			slog.String("meal_plan_id", mealPlanID),
			slog.Any("error", err),
		)
	}

	generationEvent := &service.PlanGenerationEvent{
		RequestID:        deliverycontext.GetRequestIDFromContext(ctx),
		MealPlanID:       mealPlanID,
		CustomerID:       event.CustomerID,
		ChatSessionToken: event.ChatSessionToken,
	}
	if err := s.publisher.PublishPlanGeneration(ctx, generationEvent); err != nil {
		// The staleness sweeper will eventually fail the plan; the webhook
		// must still acknowledge to avoid provider retry storms.
		s.logger.Error("[Fulfillment] Failed to publish generation event",
			slog.String("meal_plan_id", mealPlanID),
			slog.Any("error", err),
		)
	}

	return nil
}

// bookCommission books affiliate bookkeeping for one paid order. A code with
// no matching active affiliate is skipped silently: codes may be stale or
// disabled. Failures are logged, never propagated.
func (s *fulfillmentService) bookCommission(ctx context.Context, event *service.PaymentCompletedEvent, orderID string, now time.Time) {
	code := entity.NormalizeAffiliateCode(event.AffiliateCode)
	if code == "" {
		return
	}

	affiliate, err := s.affiliateRepo.FindActiveAffiliateByCode(ctx, code)
	if err != nil {
		if !errors.Is(err, repository.ErrAffiliateNotFound) {
			s.logger.Error("[Fulfillment] Affiliate lookup failed",
				slog.String("affiliate_code", code),
				slog.Any("error", err),
			)
		}

		return
	}

	commissionAmount := int64(math.Round(float64(event.Amount) * affiliate.CommissionRate))

	commission := &entity.AffiliateCommission{
		AffiliateID:      affiliate.ID,
		OrderID:          orderID,
		CustomerID:       event.CustomerID,
		OrderAmount:      event.Amount,
		CommissionRate:   affiliate.CommissionRate,
		CommissionAmount: commissionAmount,
		Status:           entity.CommissionStatusPending,
		CreatedAt:        now,
	}
	if _, err := s.affiliateRepo.CreateCommission(ctx, commission); err != nil {
		s.logger.Error("[Fulfillment] Failed to create commission",
			slog.String("affiliate_id", affiliate.ID),
			slog.Any("error", err),
		)

		return
	}

	if err := s.affiliateRepo.RecordConversion(ctx, affiliate.ID, event.Amount, commissionAmount, now); err != nil {
		s.logger.Error("[Fulfillment] Failed to update affiliate counters",
			slog.String("affiliate_id", affiliate.ID),
			slog.Any("error", err),
		)

		return
	}

	s.logger.Info("[Fulfillment] Commission booked",
		slog.String("affiliate_code", code),
		slog.Int64("commission_amount", commissionAmount),
	)
}

// HandlePaymentFailed records a failed payment intent for observability.
func (s *fulfillmentService) HandlePaymentFailed(ctx context.Context, paymentIntentID string) error {
	s.logger.Warn("[Fulfillment] Payment failed",
		slog.String("payment_intent_id", paymentIntentID),
	)

	return nil
}
