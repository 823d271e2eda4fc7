package entity

import (
	"strings"
	"time"

	"lnlfit/internal/errors"
)

// Affiliate statuses.
const (
	AffiliateStatusActive   = "active"
	AffiliateStatusDisabled = "disabled"
)

// CommissionStatusPending is the initial status of every commission record.
const CommissionStatusPending = "pending"

// ErrCommissionRateInvalid is returned when the rate is outside [0, 1].
var ErrCommissionRateInvalid = errors.New("commission rate must be a fraction between 0 and 1")

// Affiliate is a referral partner. Counters are mutated incrementally by
// click tracking and by the fulfillment pipeline on conversion.
type Affiliate struct {
	ID                string     `json:"id" firestore:"-"`
	Code              string     `json:"code" firestore:"code"` // Normalized uppercase alphanumeric referral code.
	Name              string     `json:"name" firestore:"name"`
	Email             string     `json:"email,omitempty" firestore:"email"`
	CommissionRate    float64    `json:"commissionRate" firestore:"commissionRate"` // Fraction in [0, 1].
	Status            string     `json:"status" firestore:"status"`
	TotalClicks       int64      `json:"totalClicks" firestore:"totalClicks"`
	TotalConversions  int64      `json:"totalConversions" firestore:"totalConversions"`
	TotalRevenue      int64      `json:"totalRevenue" firestore:"totalRevenue"`           // Minor currency units.
	PendingCommission int64      `json:"pendingCommission" firestore:"pendingCommission"` // Minor currency units.
	PaidCommission    int64      `json:"paidCommission" firestore:"paidCommission"`       // Minor currency units.
	LastClickAt       *time.Time `json:"lastClickAt,omitempty" firestore:"lastClickAt"`
	CreatedAt         time.Time  `json:"createdAt" firestore:"createdAt"`
}

// Validate checks affiliate invariants before create or update.
func (a *Affiliate) Validate() error {
	if a.CommissionRate < 0 || a.CommissionRate > 1 {
		return ErrCommissionRateInvalid
	}

	return nil
}

// NormalizeAffiliateCode uppercases a referral code and strips everything
// that is not a letter or digit. Codes arriving from cookies or URLs may
// carry stray whitespace or punctuation.
func NormalizeAffiliateCode(code string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(code) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}

	return b.String()
}

// AffiliateCommission is one payable record per paid order attributed to an
// affiliate. The amount is locked to the affiliate's rate at order time.
type AffiliateCommission struct {
	ID               string    `json:"id" firestore:"-"`
	AffiliateID      string    `json:"affiliateId" firestore:"affiliateId"`
	OrderID          string    `json:"orderId" firestore:"orderId"`
	CustomerID       string    `json:"customerId" firestore:"customerId"`
	OrderAmount      int64     `json:"orderAmount" firestore:"orderAmount"`
	CommissionRate   float64   `json:"commissionRate" firestore:"commissionRate"`
	CommissionAmount int64     `json:"commissionAmount" firestore:"commissionAmount"` // round(orderAmount × rate), minor units.
	Status           string    `json:"status" firestore:"status"`
	CreatedAt        time.Time `json:"createdAt" firestore:"createdAt"`
}

// AffiliateClick is a log entry for a single tracked referral click.
type AffiliateClick struct {
	ID            string    `json:"id" firestore:"-"`
	AffiliateID   string    `json:"affiliateId" firestore:"affiliateId"`
	AffiliateCode string    `json:"affiliateCode" firestore:"affiliateCode"`
	UserAgent     string    `json:"userAgent,omitempty" firestore:"userAgent"`
	Referrer      string    `json:"referrer,omitempty" firestore:"referrer"`
	Timestamp     time.Time `json:"timestamp" firestore:"timestamp"`
}
