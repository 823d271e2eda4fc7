package impl

import (
	"context"
	"log/slog"
	"time"

	"lnlfit/internal/domain/entity"
	"lnlfit/internal/domain/repository"
	"lnlfit/internal/domain/service"
	"lnlfit/internal/usecase"

	"github.com/pkg/errors"
)

type checkoutService struct {
	customerRepo repository.CustomerRepository
	sessionRepo  repository.ChatSessionRepository
	gateway      service.PaymentGateway
	logger       *slog.Logger
}

// NewCheckoutService creates the purchase flow entry point.
func NewCheckoutService(
	customerRepo repository.CustomerRepository,
	sessionRepo repository.ChatSessionRepository,
	gateway service.PaymentGateway,
	logger *slog.Logger,
) usecase.CheckoutUsecase {
	return &checkoutService{
		customerRepo: customerRepo,
		sessionRepo:  sessionRepo,
		gateway:      gateway,
		logger:       logger,
	}
}

// CreateCheckout upserts the customer by exact-match email, links the
// originating chat session and opens a hosted checkout session. The customer
// document is written before the checkout session is created so webhook
// metadata always references an existing customer ID.
func (s *checkoutService) CreateCheckout(ctx context.Context, input *usecase.CreateCheckoutInput) (*usecase.CreateCheckoutOutput, error) {
	customerID, err := s.upsertCustomer(ctx, input)
	if err != nil {
		return nil, err
	}

	if input.ChatSessionToken != "" {
		if err := s.sessionRepo.LinkChatSessionToCustomer(ctx, input.ChatSessionToken, customerID, input.Name, input.Email); err != nil {
			// Stale or fabricated tokens must not block a paying customer.
			s.logger.Warn("[Checkout] Failed to link chat session",
				slog.String("chat_session_token", input.ChatSessionToken),
				slog.Any("error", err),
			)
		}
	}

	session, err := s.gateway.CreateCheckoutSession(ctx, &service.CheckoutParams{
		CustomerEmail:    input.Email,
		CustomerID:       customerID,
		ChatSessionToken: input.ChatSessionToken,
		AffiliateCode:    entity.NormalizeAffiliateCode(input.AffiliateCode),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create checkout session")
	}

	s.logger.Info("[Checkout] Checkout session created",
		slog.String("customer_id", customerID),
		slog.String("payment_session_id", session.ID),
	)

	return &usecase.CreateCheckoutOutput{
		URL:       session.URL,
		SessionID: session.ID,
	}, nil
}

// upsertCustomer finds the customer by email and refreshes the contact
// fields, or creates a new document. Returns the customer's document ID.
func (s *checkoutService) upsertCustomer(ctx context.Context, input *usecase.CreateCheckoutInput) (string, error) {
	now := time.Now()

	existing, err := s.customerRepo.FindCustomerByEmail(ctx, input.Email)
	if err != nil {
		if !errors.Is(err, repository.ErrCustomerNotFound) {
			return "", errors.Wrap(err, "failed to look up customer by email")
		}

		customer := &entity.Customer{
			Name:             input.Name,
			Email:            input.Email,
			Phone:            input.Phone,
			AffiliateCode:    entity.NormalizeAffiliateCode(input.AffiliateCode),
			ChatSessionToken: input.ChatSessionToken,
			CreatedAt:        now,
			UpdatedAt:        now,
		}

		id, err := s.customerRepo.CreateCustomer(ctx, customer)
		if err != nil {
			return "", errors.Wrap(err, "failed to create customer")
		}

		return id, nil
	}

	existing.Name = input.Name
	existing.Phone = input.Phone
	if input.ChatSessionToken != "" {
		existing.ChatSessionToken = input.ChatSessionToken
	}
	existing.UpdatedAt = now

	if err := s.customerRepo.UpdateCustomer(ctx, existing); err != nil {
		return "", errors.Wrap(err, "failed to update customer")
	}

	return existing.ID, nil
}
