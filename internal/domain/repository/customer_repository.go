// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"time"

	"lnlfit/internal/domain/entity"
	"lnlfit/internal/errors"
)

// ErrCustomerNotFound is returned when a customer is not found.
var ErrCustomerNotFound = errors.New("customer not found")

// CustomerRepository defines document-store operations over the customers collection.
type CustomerRepository interface {
	// CreateCustomer persists a new customer and returns its generated document ID.
	CreateCustomer(ctx context.Context, customer *entity.Customer) (string, error)

	// UpdateCustomer overwrites mutable contact fields of an existing customer.
	UpdateCustomer(ctx context.Context, customer *entity.Customer) error

	// FindCustomerByID retrieves a customer by document ID.
	FindCustomerByID(ctx context.Context, id string) (*entity.Customer, error)

	// FindCustomerByEmail retrieves a customer by exact-match email.
	// Email matching is deliberately case-sensitive; see checkout semantics.
	FindCustomerByEmail(ctx context.Context, email string) (*entity.Customer, error)

	// MarkCustomerPurchased sets the purchase flag, the latest order reference
	// and the purchase timestamp. Idempotent.
	MarkCustomerPurchased(ctx context.Context, id, orderID string, purchasedAt time.Time) error

	// ListCustomers returns customers ordered by creation time descending.
	ListCustomers(ctx context.Context, limit int) ([]*entity.Customer, error)
}
