package repository

import (
	"context"

	"lnlfit/internal/domain/entity"
	"lnlfit/internal/errors"
)

// Domain-specific errors for order persistence.
var (
	// ErrOrderNotFound is returned when an order is not found.
	ErrOrderNotFound = errors.New("order not found")
	// ErrDuplicateOrder is returned when an order already exists for the
	// payment session. Redelivered webhook events hit this path.
	ErrDuplicateOrder = errors.New("order already exists for payment session")
)

// OrderRepository defines document-store operations over the orders collection.
type OrderRepository interface {
	// CreateOrder persists a new order and returns its generated document ID.
	// Creation is conditional on the payment session ID: if an order already
	// exists for it, ErrDuplicateOrder is returned and nothing is written.
	CreateOrder(ctx context.Context, order *entity.Order) (string, error)

	// FindOrderByPaymentSessionID retrieves the order created for a hosted
	// checkout session.
	FindOrderByPaymentSessionID(ctx context.Context, paymentSessionID string) (*entity.Order, error)

	// AttachMealPlan sets the order's meal plan reference. Called at most once
	// per order, after the meal plan document exists.
	AttachMealPlan(ctx context.Context, orderID, mealPlanID string) error
}
