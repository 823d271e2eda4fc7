package impl

import (
	"context"
	"testing"

	"lnlfit/internal/domain/entity"
	"lnlfit/internal/domain/service"
	"lnlfit/internal/errors"
	"lnlfit/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkoutInput() *usecase.CreateCheckoutInput {
	return &usecase.CreateCheckoutInput{
		Name:             "Jamie Doe",
		Email:            "jamie@example.com",
		Phone:            "555-0100",
		ChatSessionToken: "session-1",
		AffiliateCode:    "fit-20",
	}
}

func TestCreateCheckout_NewCustomer(t *testing.T) {
	var created *entity.Customer
	customerRepo := &fakeCustomerRepo{
		createFn: func(_ context.Context, customer *entity.Customer) (string, error) {
			created = customer

			return "customer-1", nil
		},
	}
	gateway := &fakeGateway{}

	svc := NewCheckoutService(customerRepo, &fakeChatSessionRepo{}, gateway, newDiscardLogger())

	out, err := svc.CreateCheckout(context.Background(), checkoutInput())
	require.NoError(t, err)

	require.NotNil(t, created)
	assert.Equal(t, "jamie@example.com", created.Email)
	assert.Equal(t, "FIT20", created.AffiliateCode)

	require.NotNil(t, gateway.params)
	assert.Equal(t, "customer-1", gateway.params.CustomerID)
	assert.Equal(t, "FIT20", gateway.params.AffiliateCode)
	assert.Equal(t, "session-1", gateway.params.ChatSessionToken)

	assert.Equal(t, "https://checkout.example/cs_test_1", out.URL)
	assert.Equal(t, "cs_test_1", out.SessionID)
}

func TestCreateCheckout_ExistingCustomerIsUpdated(t *testing.T) {
	var updated *entity.Customer
	customerRepo := &fakeCustomerRepo{
		findByEmailFn: func(_ context.Context, email string) (*entity.Customer, error) {
			return &entity.Customer{ID: "customer-7", Email: email, Name: "Old Name"}, nil
		},
		updateFn: func(_ context.Context, customer *entity.Customer) error {
			updated = customer

			return nil
		},
		createFn: func(_ context.Context, _ *entity.Customer) (string, error) {
			t.Fatal("existing customer must not be recreated")

			return "", nil
		},
	}
	gateway := &fakeGateway{}

	svc := NewCheckoutService(customerRepo, &fakeChatSessionRepo{}, gateway, newDiscardLogger())

	_, err := svc.CreateCheckout(context.Background(), checkoutInput())
	require.NoError(t, err)

	require.NotNil(t, updated)
	assert.Equal(t, "customer-7", updated.ID)
	assert.Equal(t, "Jamie Doe", updated.Name)
	assert.Equal(t, "customer-7", gateway.params.CustomerID)
}

func TestCreateCheckout_SessionLinkFailureDoesNotBlock(t *testing.T) {
	sessionRepo := &fakeChatSessionRepo{
		linkFn: func(_ context.Context, _, _, _, _ string) error {
			return errors.New("session store down")
		},
	}

	svc := NewCheckoutService(&fakeCustomerRepo{}, sessionRepo, &fakeGateway{}, newDiscardLogger())

	out, err := svc.CreateCheckout(context.Background(), checkoutInput())
	require.NoError(t, err)
	assert.NotEmpty(t, out.URL)
}

func TestCreateCheckout_GatewayFailurePropagates(t *testing.T) {
	gateway := &fakeGateway{
		checkoutFn: func(_ context.Context, _ *service.CheckoutParams) (*service.CheckoutSession, error) {
			return nil, errors.WithStack(service.ErrPaymentNotConfigured)
		},
	}

	svc := NewCheckoutService(&fakeCustomerRepo{}, &fakeChatSessionRepo{}, gateway, newDiscardLogger())

	_, err := svc.CreateCheckout(context.Background(), checkoutInput())
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrPaymentNotConfigured)
}
