package impl

import (
	"context"
	"log/slog"

	"lnlfit/internal/domain/entity"
	domainerrors "lnlfit/internal/domain/errors"
	"lnlfit/internal/domain/repository"
	"lnlfit/internal/usecase"

	"github.com/pkg/errors"
)

type planStatusService struct {
	orderRepo    repository.OrderRepository
	mealPlanRepo repository.MealPlanRepository
	logger       *slog.Logger
}

// NewPlanStatusService creates the meal plan status poller.
func NewPlanStatusService(
	orderRepo repository.OrderRepository,
	mealPlanRepo repository.MealPlanRepository,
	logger *slog.Logger,
) usecase.PlanStatusUsecase {
	return &planStatusService{
		orderRepo:    orderRepo,
		mealPlanRepo: mealPlanRepo,
		logger:       logger,
	}
}

// Status resolves the payment session ID to its order and meal plan.
// "unknown" means no order matches: either the webhook has not arrived yet or
// the session never existed. Clients poll through the former and time out on
// the latter.
func (s *planStatusService) Status(ctx context.Context, paymentSessionID string) (*usecase.PlanStatusOutput, error) {
	if paymentSessionID == "" {
		return nil, errors.WithStack(domainerrors.ErrMissingSessionID)
	}

	order, err := s.orderRepo.FindOrderByPaymentSessionID(ctx, paymentSessionID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return &usecase.PlanStatusOutput{Status: usecase.PlanStatusUnknown}, nil
		}

		return nil, errors.Wrap(err, "failed to look up order by payment session")
	}

	if order.MealPlanID == "" {
		// Order booked but the meal plan document is not attached yet; the
		// orchestrator is still mid-flight, so report the plan as generating.
		return &usecase.PlanStatusOutput{Status: string(entity.MealPlanStatusGenerating)}, nil
	}

	mealPlan, err := s.mealPlanRepo.FindMealPlanByID(ctx, order.MealPlanID)
	if err != nil {
		if errors.Is(err, repository.ErrMealPlanNotFound) {
			s.logger.Error("[PlanStatus] Order references missing meal plan",
				slog.String("order_id", order.ID),
				slog.String("meal_plan_id", order.MealPlanID),
			)

			return &usecase.PlanStatusOutput{Status: string(entity.MealPlanStatusGenerating)}, nil
		}

		return nil, errors.Wrap(err, "failed to load meal plan")
	}

	output := &usecase.PlanStatusOutput{
		Status:     string(mealPlan.Status),
		MealPlanID: mealPlan.ID,
	}

	switch mealPlan.Status {
	case entity.MealPlanStatusReady:
		output.PlanContent = mealPlan.PlanContent
	case entity.MealPlanStatusFailed:
		output.Error = mealPlan.Error
	case entity.MealPlanStatusGenerating:
		// Nothing extra to report while generating.
	default:
		output.Status = usecase.PlanStatusUnknown
	}

	return output, nil
}
