package repository

import (
	"context"
	"encoding/json"
	"time"

	"lnlfit/internal/domain/entity"
	"lnlfit/internal/errors"
)

// ErrMealPlanNotFound is returned when a meal plan is not found.
var ErrMealPlanNotFound = errors.New("meal plan not found")

// MealPlanRepository defines document-store operations over the mealPlans collection.
// The fulfillment orchestrator owns creation; the generation job runner owns
// the terminal status transition. Last-write-wins semantics are accepted.
type MealPlanRepository interface {
	// CreateMealPlan persists a new plan in generating state and returns its
	// generated document ID.
	CreateMealPlan(ctx context.Context, plan *entity.MealPlan) (string, error)

	// FindMealPlanByID retrieves a plan by document ID.
	FindMealPlanByID(ctx context.Context, id string) (*entity.MealPlan, error)

	// MarkGenerationStarted stamps the time generation work began.
	MarkGenerationStarted(ctx context.Context, id string, startedAt time.Time) error

	// MarkMealPlanReady transitions the plan to ready with its content.
	MarkMealPlanReady(ctx context.Context, id string, content json.RawMessage, generatedAt time.Time) error

	// MarkMealPlanFailed transitions the plan to failed with an error message.
	MarkMealPlanFailed(ctx context.Context, id, errMsg string, failedAt time.Time) error

	// FindStaleGenerating returns plans still in generating state whose
	// creation predates the cutoff. Used by the staleness sweeper.
	FindStaleGenerating(ctx context.Context, cutoff time.Time) ([]*entity.MealPlan, error)
}
