package usecase

import (
	"context"

	"lnlfit/internal/domain/entity"
)

// TrackClickInput records one referral click.
type TrackClickInput struct {
	Code      string `json:"code" validate:"required"`
	UserAgent string `json:"userAgent"`
	Referrer  string `json:"referrer"`
}

// CreateAffiliateInput is the back-office form for onboarding an affiliate.
type CreateAffiliateInput struct {
	Code           string  `json:"code" validate:"required"`
	Name           string  `json:"name" validate:"required"`
	Email          string  `json:"email" validate:"omitempty,email"`
	CommissionRate float64 `json:"commissionRate" validate:"gte=0,lte=1"`
}

// AffiliateUsecase covers referral tracking and back-office affiliate management.
type AffiliateUsecase interface {
	// TrackClick increments click counters for the affiliate matching the
	// normalized code and appends a click log entry.
	TrackClick(ctx context.Context, input *TrackClickInput) error

	// CreateAffiliate onboards a new affiliate with a normalized code.
	CreateAffiliate(ctx context.Context, input *CreateAffiliateInput) (*entity.Affiliate, error)

	// ListAffiliates returns all affiliates, newest first.
	ListAffiliates(ctx context.Context) ([]*entity.Affiliate, error)
}
