// Package entity contains the core business objects of the project.
package entity

import "time"

// Customer represents a lead or buyer captured through the chat widget or checkout form.
// Customers are keyed by exact-match email: a repeat checkout with the same email
// updates the existing document instead of creating a new one.
type Customer struct {
	ID               string     `json:"id" firestore:"-"`                                        // Firestore document ID.
	Name             string     `json:"name" firestore:"name"`                                   // Full name as entered at checkout.
	Email            string     `json:"email" firestore:"email"`                                 // Uniqueness key (case-sensitive exact match).
	Phone            string     `json:"phone,omitempty" firestore:"phone"`                       // Optional phone number.
	AffiliateCode    string     `json:"affiliateCode,omitempty" firestore:"affiliateCode"`       // Referral attribution captured at first contact.
	ChatSessionToken string     `json:"chatSessionToken,omitempty" firestore:"chatSessionToken"` // Origin chat session, if any.
	HasPurchased     bool       `json:"hasPurchased" firestore:"hasPurchased"`                   // Set once the first payment completes.
	LatestOrderID    string     `json:"latestOrderId,omitempty" firestore:"latestOrderId"`       // Most recent paid order.
	PurchasedAt      *time.Time `json:"purchasedAt,omitempty" firestore:"purchasedAt"`           // Timestamp of the first completed payment.
	CreatedAt        time.Time  `json:"createdAt" firestore:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt" firestore:"updatedAt"`
}
