package repository

import (
	"context"
	"time"

	"lnlfit/internal/domain/entity"
	"lnlfit/internal/errors"
)

// ErrAffiliateNotFound is returned when an affiliate is not found.
var ErrAffiliateNotFound = errors.New("affiliate not found")

// AffiliateRepository defines document-store operations over the affiliates,
// affiliateCommissions and affiliateClicks collections.
type AffiliateRepository interface {
	// CreateAffiliate persists a new affiliate and returns its generated document ID.
	CreateAffiliate(ctx context.Context, affiliate *entity.Affiliate) (string, error)

	// FindActiveAffiliateByCode retrieves an active affiliate by normalized code.
	// Disabled affiliates are treated as not found.
	FindActiveAffiliateByCode(ctx context.Context, code string) (*entity.Affiliate, error)

	// RecordClick increments the affiliate's click counter, stamps the last
	// click time and appends a click log entry.
	RecordClick(ctx context.Context, affiliateID string, click *entity.AffiliateClick) error

	// RecordConversion increments the affiliate's conversion, revenue and
	// pending-commission counters for one paid order.
	RecordConversion(ctx context.Context, affiliateID string, revenue, commission int64, at time.Time) error

	// CreateCommission persists a commission record and returns its generated
	// document ID.
	CreateCommission(ctx context.Context, commission *entity.AffiliateCommission) (string, error)

	// ListAffiliates returns affiliates ordered by creation time descending.
	ListAffiliates(ctx context.Context) ([]*entity.Affiliate, error)
}
