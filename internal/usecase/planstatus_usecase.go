package usecase

import (
	"context"
	"encoding/json"
)

// PlanStatusUnknown is reported when no order matches the polled session ID.
// Distinct from the entity statuses: it tells the client to keep polling or
// give up, not that something failed.
const PlanStatusUnknown = "unknown"

// PlanStatusOutput is the poller's view of a meal plan.
type PlanStatusOutput struct {
	Status      string          `json:"status"` // generating | ready | failed | unknown
	MealPlanID  string          `json:"mealPlanId,omitempty"`
	PlanContent json.RawMessage `json:"planContent,omitempty"` // Present only when ready.
	Error       string          `json:"error,omitempty"`       // Present only when failed.
}

// PlanStatusUsecase lets a waiting client observe generation progress by
// correlating the original payment session ID.
type PlanStatusUsecase interface {
	Status(ctx context.Context, paymentSessionID string) (*PlanStatusOutput, error)
}
