package entity

import "time"

// OrderStatusPaid is the only status the fulfillment pipeline writes.
const OrderStatusPaid = "paid"

// Order records one completed payment. Exactly one order exists per payment
// session: the fulfillment pipeline treats PaymentSessionID as an idempotency
// key, so a redelivered webhook event never creates a second order.
// Immutable after creation except for attaching the generated meal plan ID.
type Order struct {
	ID               string    `json:"id" firestore:"-"`
	CustomerID       string    `json:"customerId" firestore:"customerId"`
	PaymentSessionID string    `json:"paymentSessionId" firestore:"paymentSessionId"` // Hosted checkout session ID; idempotency key.
	PaymentIntentID  string    `json:"paymentIntentId,omitempty" firestore:"paymentIntentId"`
	Amount           int64     `json:"amount" firestore:"amount"` // Minor currency units.
	Currency         string    `json:"currency" firestore:"currency"`
	Status           string    `json:"status" firestore:"status"`
	AffiliateCode    string    `json:"affiliateCode,omitempty" firestore:"affiliateCode"`
	ChatSessionToken string    `json:"chatSessionToken,omitempty" firestore:"chatSessionToken"`
	MealPlanID       string    `json:"mealPlanId,omitempty" firestore:"mealPlanId"` // Set at most once, after the meal plan is created.
	PaidAt           time.Time `json:"paidAt" firestore:"paidAt"`
	CreatedAt        time.Time `json:"createdAt" firestore:"createdAt"`
}
