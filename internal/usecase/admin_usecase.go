package usecase

import (
	"context"

	"lnlfit/internal/domain/entity"
)

// AdminLoginInput is the back-office login form.
type AdminLoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AdminLoginOutput carries the signed session token.
type AdminLoginOutput struct {
	Token string            `json:"token"`
	Admin *entity.AdminUser `json:"admin"`
}

// AdminUsecase covers back-office authentication and read-only customer views.
type AdminUsecase interface {
	// Login verifies credentials against the stored bcrypt hash and issues a JWT.
	Login(ctx context.Context, input *AdminLoginInput) (*AdminLoginOutput, error)

	// ListCustomers returns customers, newest first.
	ListCustomers(ctx context.Context, limit int) ([]*entity.Customer, error)

	// GetCustomer returns one customer by ID.
	GetCustomer(ctx context.Context, id string) (*entity.Customer, error)
}
