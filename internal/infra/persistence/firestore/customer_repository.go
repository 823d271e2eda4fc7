package firestore

import (
	"context"
	"time"

	"lnlfit/internal/domain/constants"
	"lnlfit/internal/domain/entity"
	"lnlfit/internal/domain/repository"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// customerRepository implements repository.CustomerRepository on Firestore.
type customerRepository struct {
	client *firestore.Client
}

// NewCustomerRepository is the constructor for customerRepository.
func NewCustomerRepository(client *firestore.Client) repository.CustomerRepository {
	return &customerRepository{client: client}
}

func (repo *customerRepository) collection() *firestore.CollectionRef {
	return repo.client.Collection(constants.CollectionCustomers)
}

// CreateCustomer persists a new customer document with a generated ID.
func (repo *customerRepository) CreateCustomer(ctx context.Context, customer *entity.Customer) (string, error) {
	ref := repo.collection().NewDoc()
	if _, err := ref.Create(ctx, customer); err != nil {
		return "", errors.Wrap(err, "failed to create customer")
	}
	customer.ID = ref.ID

	return ref.ID, nil
}

// UpdateCustomer overwrites the customer document.
func (repo *customerRepository) UpdateCustomer(ctx context.Context, customer *entity.Customer) error {
	if customer.ID == "" {
		return errors.WithStack(repository.ErrCustomerNotFound)
	}

	if _, err := repo.collection().Doc(customer.ID).Set(ctx, customer); err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.WithStack(repository.ErrCustomerNotFound)
		}

		return errors.Wrap(err, "failed to update customer")
	}

	return nil
}

// FindCustomerByID retrieves a customer by document ID.
func (repo *customerRepository) FindCustomerByID(ctx context.Context, id string) (*entity.Customer, error) {
	snap, err := repo.collection().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.WithStack(repository.ErrCustomerNotFound)
		}

		return nil, errors.Wrap(err, "failed to get customer")
	}

	var customer entity.Customer
	if err := snap.DataTo(&customer); err != nil {
		return nil, errors.Wrap(err, "failed to decode customer")
	}
	customer.ID = snap.Ref.ID

	return &customer, nil
}

// FindCustomerByEmail retrieves a customer by exact-match email.
func (repo *customerRepository) FindCustomerByEmail(ctx context.Context, email string) (*entity.Customer, error) {
	iter := repo.collection().Where("email", "==", email).Limit(1).Documents(ctx)
	defer iter.Stop()

	snap, err := iter.Next()
	if err != nil {
		if errors.Is(err, iterator.Done) {
			return nil, errors.WithStack(repository.ErrCustomerNotFound)
		}

		return nil, errors.Wrap(err, "failed to query customer by email")
	}

	var customer entity.Customer
	if err := snap.DataTo(&customer); err != nil {
		return nil, errors.Wrap(err, "failed to decode customer")
	}
	customer.ID = snap.Ref.ID

	return &customer, nil
}

// MarkCustomerPurchased flips the purchase flag and records the latest order.
// A repeated call for the same order rewrites the same values, so redelivered
// webhook events stay harmless.
func (repo *customerRepository) MarkCustomerPurchased(ctx context.Context, id, orderID string, purchasedAt time.Time) error {
	_, err := repo.collection().Doc(id).Update(ctx, []firestore.Update{
		{Path: "hasPurchased", Value: true},
		{Path: "latestOrderId", Value: orderID},
		{Path: "purchasedAt", Value: purchasedAt},
		{Path: "updatedAt", Value: purchasedAt},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.WithStack(repository.ErrCustomerNotFound)
		}

		return errors.Wrap(err, "failed to mark customer purchased")
	}

	return nil
}

// ListCustomers returns customers ordered by creation time descending.
func (repo *customerRepository) ListCustomers(ctx context.Context, limit int) ([]*entity.Customer, error) {
	query := repo.collection().OrderBy("createdAt", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var customers []*entity.Customer
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to list customers")
		}

		var customer entity.Customer
		if err := snap.DataTo(&customer); err != nil {
			return nil, errors.Wrap(err, "failed to decode customer")
		}
		customer.ID = snap.Ref.ID
		customers = append(customers, &customer)
	}

	return customers, nil
}
