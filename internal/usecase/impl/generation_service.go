package impl

import (
	"context"
	"log/slog"
	"time"

	"lnlfit/internal/domain/entity"
	"lnlfit/internal/domain/plan"
	"lnlfit/internal/domain/repository"
	"lnlfit/internal/domain/service"
	"lnlfit/internal/usecase"

	"github.com/pkg/errors"
)

const staleFailureMessage = "generation timed out"

// GenerationConfig carries the generator invocation parameters.
type GenerationConfig struct {
	Model        string
	SystemPrompt string
	MaxTokens    int
	Temperature  float32
}

type generationService struct {
	mealPlanRepo repository.MealPlanRepository
	customerRepo repository.CustomerRepository
	sessionRepo  repository.ChatSessionRepository
	templateRepo repository.TemplateRepository
	generator    service.TextGenerator
	cfg          GenerationConfig
	logger       *slog.Logger
}

// NewGenerationService creates the generation job runner.
func NewGenerationService(
	mealPlanRepo repository.MealPlanRepository,
	customerRepo repository.CustomerRepository,
	sessionRepo repository.ChatSessionRepository,
	templateRepo repository.TemplateRepository,
	generator service.TextGenerator,
	cfg GenerationConfig,
	logger *slog.Logger,
) usecase.GenerationUsecase {
	return &generationService{
		mealPlanRepo: mealPlanRepo,
		customerRepo: customerRepo,
		sessionRepo:  sessionRepo,
		templateRepo: templateRepo,
		generator:    generator,
		cfg:          cfg,
		logger:       logger,
	}
}

// GeneratePlan drives one meal plan through generation. Job delivery is
// at-least-once, so the method is safe to re-invoke: a plan already in a
// terminal state is acknowledged without work. Upstream generator failures
// are returned to the caller for redelivery; unparseable generator output is
// terminal and fails the plan immediately.
func (s *generationService) GeneratePlan(ctx context.Context, input *usecase.GeneratePlanInput) error {
	mealPlan, err := s.mealPlanRepo.FindMealPlanByID(ctx, input.MealPlanID)
	if err != nil {
		return errors.Wrapf(err, "failed to load meal plan %s", input.MealPlanID)
	}

	if mealPlan.Terminal() {
		s.logger.Info("[Generation] Meal plan already in terminal state, acknowledging",
			slog.String("meal_plan_id", mealPlan.ID),
			slog.String("status", string(mealPlan.Status)),
		)

		return nil
	}

	now := time.Now()
	if err := s.mealPlanRepo.MarkGenerationStarted(ctx, mealPlan.ID, now); err != nil {
		s.logger.Error("[Generation] Failed to stamp generation start",
			slog.String("meal_plan_id", mealPlan.ID),
			slog.Any("error", err),
		)
	}

	customerName, profile := s.loadCustomerContext(ctx, input)

	templates, err := s.templateRepo.ListActiveTemplates(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to list active templates")
	}

	template := plan.SelectTemplate(profile, templates)
	targetCalories := plan.TargetCalories(template, activityLevel(profile))
	promptContext := plan.BuildPromptContext(customerName, profile, template, targetCalories)

	s.logger.Info("[Generation] Template selected",
		slog.String("meal_plan_id", mealPlan.ID),
		slog.String("template", template.Name),
		slog.Int("target_calories", targetCalories),
	)

	content, err := s.generator.Complete(ctx, &service.CompletionRequest{
		Model:        s.cfg.Model,
		SystemPrompt: s.cfg.SystemPrompt,
		Messages: []entity.ChatMessage{
			{Role: entity.ChatRoleUser, Content: promptContext},
		},
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return errors.Wrap(err, "generation request failed")
	}

	planContent, err := plan.ExtractJSON(content)
	if err != nil {
		// Retrying the same prompt rarely fixes malformed output; fail the
		// plan so the customer-facing poller stops waiting.
		s.logger.Error("[Generation] Generator output unparseable, failing plan",
			slog.String("meal_plan_id", mealPlan.ID),
			slog.Any("error", err),
		)

		if markErr := s.mealPlanRepo.MarkMealPlanFailed(ctx, mealPlan.ID, err.Error(), time.Now()); markErr != nil {
			return errors.Wrap(markErr, "failed to mark meal plan failed")
		}

		return nil
	}

	if err := s.mealPlanRepo.MarkMealPlanReady(ctx, mealPlan.ID, planContent, time.Now()); err != nil {
		return errors.Wrap(err, "failed to mark meal plan ready")
	}

	s.logger.Info("[Generation] Meal plan ready",
		slog.String("meal_plan_id", mealPlan.ID),
		slog.String("customer_id", input.CustomerID),
	)

	return nil
}

// loadCustomerContext gathers the customer name and extracted profile. Both
// lookups are best-effort: generation proceeds with template defaults when the
// records are missing or unreadable.
func (s *generationService) loadCustomerContext(ctx context.Context, input *usecase.GeneratePlanInput) (string, *entity.CustomerProfile) {
	var customerName string

	customer, err := s.customerRepo.FindCustomerByID(ctx, input.CustomerID)
	if err != nil {
		if !errors.Is(err, repository.ErrCustomerNotFound) {
			s.logger.Error("[Generation] Customer lookup failed",
				slog.String("customer_id", input.CustomerID),
				slog.Any("error", err),
			)
		}
	} else {
		customerName = customer.Name
	}

	if input.ChatSessionToken == "" {
		return customerName, nil
	}

	session, err := s.sessionRepo.FindChatSessionByToken(ctx, input.ChatSessionToken)
	if err != nil {
		if !errors.Is(err, repository.ErrChatSessionNotFound) {
			s.logger.Error("[Generation] Chat session lookup failed",
				slog.String("chat_session_token", input.ChatSessionToken),
				slog.Any("error", err),
			)
		}

		return customerName, nil
	}

	return customerName, session.ExtractedProfile
}

func activityLevel(profile *entity.CustomerProfile) string {
	if profile == nil {
		return ""
	}

	return profile.ActivityLevel
}

// FailStale transitions every plan stuck in generating state past the ceiling
// to failed. Publish losses and worker crashes both land here eventually.
func (s *generationService) FailStale(ctx context.Context, ceiling time.Duration) (int, error) {
	cutoff := time.Now().Add(-ceiling)

	stale, err := s.mealPlanRepo.FindStaleGenerating(ctx, cutoff)
	if err != nil {
		return 0, errors.Wrap(err, "failed to query stale meal plans")
	}

	failed := 0
	for _, mealPlan := range stale {
		if err := s.mealPlanRepo.MarkMealPlanFailed(ctx, mealPlan.ID, staleFailureMessage, time.Now()); err != nil {
			s.logger.Error("[Generation] Failed to mark stale plan as failed",
				slog.String("meal_plan_id", mealPlan.ID),
				slog.Any("error", err),
			)

			continue
		}

		s.logger.Warn("[Generation] Stale meal plan failed by sweeper",
			slog.String("meal_plan_id", mealPlan.ID),
			slog.Time("created_at", mealPlan.CreatedAt),
		)
		failed++
	}

	return failed, nil
}
