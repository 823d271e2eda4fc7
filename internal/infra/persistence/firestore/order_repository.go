package firestore

import (
	"context"

	"lnlfit/internal/domain/constants"
	"lnlfit/internal/domain/entity"
	"lnlfit/internal/domain/repository"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// orderRepository implements repository.OrderRepository on Firestore.
// The payment session ID doubles as the document ID: Firestore's Create
// precondition then rejects a second order for the same session atomically,
// with no transaction or query needed.
type orderRepository struct {
	client *firestore.Client
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(client *firestore.Client) repository.OrderRepository {
	return &orderRepository{client: client}
}

func (repo *orderRepository) collection() *firestore.CollectionRef {
	return repo.client.Collection(constants.CollectionOrders)
}

// CreateOrder persists a new order keyed by its payment session ID.
// Returns ErrDuplicateOrder when the session was already fulfilled.
func (repo *orderRepository) CreateOrder(ctx context.Context, order *entity.Order) (string, error) {
	if order.PaymentSessionID == "" {
		return "", errors.New("payment session ID is required")
	}

	ref := repo.collection().Doc(order.PaymentSessionID)
	if _, err := ref.Create(ctx, order); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return "", errors.WithStack(repository.ErrDuplicateOrder)
		}

		return "", errors.Wrap(err, "failed to create order")
	}
	order.ID = ref.ID

	return ref.ID, nil
}

// FindOrderByPaymentSessionID retrieves the order for a checkout session.
func (repo *orderRepository) FindOrderByPaymentSessionID(ctx context.Context, paymentSessionID string) (*entity.Order, error) {
	snap, err := repo.collection().Doc(paymentSessionID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.WithStack(repository.ErrOrderNotFound)
		}

		return nil, errors.Wrap(err, "failed to get order")
	}

	var order entity.Order
	if err := snap.DataTo(&order); err != nil {
		return nil, errors.Wrap(err, "failed to decode order")
	}
	order.ID = snap.Ref.ID

	return &order, nil
}

// AttachMealPlan sets the order's meal plan reference.
func (repo *orderRepository) AttachMealPlan(ctx context.Context, orderID, mealPlanID string) error {
	_, err := repo.collection().Doc(orderID).Update(ctx, []firestore.Update{
		{Path: "mealPlanId", Value: mealPlanID},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.WithStack(repository.ErrOrderNotFound)
		}

		return errors.Wrap(err, "failed to attach meal plan to order")
	}

	return nil
}
