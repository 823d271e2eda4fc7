package impl

import (
	"context"
	"log/slog"

	"lnlfit/internal/domain/entity"
	domainerrors "lnlfit/internal/domain/errors"
	"lnlfit/internal/domain/repository"
	"lnlfit/internal/domain/service"
	"lnlfit/internal/usecase"

	"github.com/pkg/errors"
)

type adminService struct {
	adminRepo    repository.AdminUserRepository
	customerRepo repository.CustomerRepository
	hasher       service.PasswordHasher
	tokens       service.TokenService
	logger       *slog.Logger
}

// NewAdminService creates the back-office authentication and customer view service.
func NewAdminService(
	adminRepo repository.AdminUserRepository,
	customerRepo repository.CustomerRepository,
	hasher service.PasswordHasher,
	tokens service.TokenService,
	logger *slog.Logger,
) usecase.AdminUsecase {
	return &adminService{
		adminRepo:    adminRepo,
		customerRepo: customerRepo,
		hasher:       hasher,
		tokens:       tokens,
		logger:       logger,
	}
}

// Login verifies credentials and issues a signed session token. Unknown
// accounts and wrong passwords return the same error.
func (s *adminService) Login(ctx context.Context, input *usecase.AdminLoginInput) (*usecase.AdminLoginOutput, error) {
	admin, err := s.adminRepo.FindAdminUserByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrAdminUserNotFound) {
			return nil, errors.WithStack(domainerrors.ErrInvalidCredentials)
		}

		return nil, errors.Wrap(err, "failed to look up admin account")
	}

	if !s.hasher.Check(input.Password, admin.PasswordHash) {
		return nil, errors.WithStack(domainerrors.ErrInvalidCredentials)
	}

	token, err := s.tokens.GenerateToken(admin.ID, admin.Email, admin.Role)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue session token")
	}

	s.logger.Info("[Admin] Login",
		slog.String("admin_id", admin.ID),
		slog.String("email", admin.Email),
	)

	return &usecase.AdminLoginOutput{
		Token: token,
		Admin: admin,
	}, nil
}

func (s *adminService) ListCustomers(ctx context.Context, limit int) ([]*entity.Customer, error) {
	customers, err := s.customerRepo.ListCustomers(ctx, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list customers")
	}

	return customers, nil
}

func (s *adminService) GetCustomer(ctx context.Context, id string) (*entity.Customer, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return nil, errors.WithStack(domainerrors.ErrCustomerNotFound)
		}

		return nil, errors.Wrap(err, "failed to load customer")
	}

	return customer, nil
}
