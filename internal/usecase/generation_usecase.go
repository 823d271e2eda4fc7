package usecase

import (
	"context"
	"time"
)

// GeneratePlanInput identifies the meal plan to drive through generation.
type GeneratePlanInput struct {
	MealPlanID       string `json:"mealPlanId" validate:"required"`
	CustomerID       string `json:"customerId" validate:"required"`
	ChatSessionToken string `json:"chatSessionToken"`
}

// GenerationUsecase drives a meal plan record through generating → ready/failed.
type GenerationUsecase interface {
	// GeneratePlan selects a template, invokes the content generator and
	// applies the terminal status transition exactly once. Re-invocation is
	// safe for a plan still generating and a no-op for a terminal plan.
	GeneratePlan(ctx context.Context, input *GeneratePlanInput) error

	// FailStale transitions plans stuck in generating state past the ceiling
	// to failed. Returns the number of plans failed.
	FailStale(ctx context.Context, ceiling time.Duration) (int, error)
}
