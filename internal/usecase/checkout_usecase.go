// Package usecase defines the application use-case interfaces and their DTOs.
package usecase

import (
	"context"
)

// CreateCheckoutInput is the checkout form submission plus cookie-carried attribution.
type CreateCheckoutInput struct {
	Name             string `json:"name" validate:"required"`
	Email            string `json:"email" validate:"required,email"`
	Phone            string `json:"phone"`
	ChatSessionToken string `json:"chatSessionToken"`
	AffiliateCode    string `json:"affiliateCode"`
}

// CreateCheckoutOutput carries the hosted checkout redirect.
type CreateCheckoutOutput struct {
	URL       string `json:"url"`
	SessionID string `json:"sessionId"`
}

// CheckoutUsecase starts the purchase flow: it upserts the customer by email,
// links the originating chat session and creates a hosted checkout session.
type CheckoutUsecase interface {
	CreateCheckout(ctx context.Context, input *CreateCheckoutInput) (*CreateCheckoutOutput, error)
}
