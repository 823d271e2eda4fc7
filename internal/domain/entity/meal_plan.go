package entity

import (
	"encoding/json"
	"time"
)

// MealPlanStatus is the lifecycle state of a generated meal plan.
type MealPlanStatus string

// A meal plan is created in StatusGenerating at order-fulfillment time and
// transitions exactly once to StatusReady or StatusFailed. It never re-enters
// StatusGenerating.
const (
	MealPlanStatusGenerating MealPlanStatus = "generating"
	MealPlanStatusReady      MealPlanStatus = "ready"
	MealPlanStatusFailed     MealPlanStatus = "failed"
)

// MealPlan is the asynchronously generated deliverable of a paid order.
// PlanContent is populated if and only if Status is ready.
type MealPlan struct {
	ID                  string          `json:"id" firestore:"-"`
	CustomerID          string          `json:"customerId" firestore:"customerId"`
	OrderID             string          `json:"orderId" firestore:"orderId"`
	ChatSessionToken    string          `json:"chatSessionToken,omitempty" firestore:"chatSessionToken"`
	Status              MealPlanStatus  `json:"status" firestore:"status"`
	PlanContent         json.RawMessage `json:"planContent,omitempty" firestore:"planContent"` // Parsed generator output; opaque to this pipeline.
	Error               string          `json:"error,omitempty" firestore:"error"`
	CreatedAt           time.Time       `json:"createdAt" firestore:"createdAt"`
	GenerationStartedAt *time.Time      `json:"generationStartedAt,omitempty" firestore:"generationStartedAt"`
	GeneratedAt         *time.Time      `json:"generatedAt,omitempty" firestore:"generatedAt"`
	FailedAt            *time.Time      `json:"failedAt,omitempty" firestore:"failedAt"`
}

// Terminal reports whether the plan has reached its final state.
func (p *MealPlan) Terminal() bool {
	return p.Status == MealPlanStatusReady || p.Status == MealPlanStatusFailed
}
