// Package service defines interfaces for external capabilities consumed by the use cases.
package service

import (
	"context"
)

// PlanGenerationEvent is the job message that drives the generation runner.
// Delivery is at-least-once: the runner must tolerate redelivery of the same
// meal plan ID.
type PlanGenerationEvent struct {
	RequestID        string `json:"request_id,omitempty"` // For distributed tracing.
	MealPlanID       string `json:"meal_plan_id"`
	CustomerID       string `json:"customer_id"`
	ChatSessionToken string `json:"chat_session_token,omitempty"`
}

// EventPublisher defines the interface for publishing events to a message queue.
type EventPublisher interface {
	// PublishPlanGeneration enqueues a meal plan for asynchronous generation.
	PublishPlanGeneration(ctx context.Context, event *PlanGenerationEvent) error

	// Close releases any resources held by the publisher.
	Close() error
}
