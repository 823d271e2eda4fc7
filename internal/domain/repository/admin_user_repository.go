package repository

import (
	"context"

	"lnlfit/internal/domain/entity"
	"lnlfit/internal/errors"
)

// ErrAdminUserNotFound is returned when an admin account is not found.
var ErrAdminUserNotFound = errors.New("admin user not found")

// AdminUserRepository defines document-store operations over the adminUsers collection.
type AdminUserRepository interface {
	// CreateAdminUser persists a new admin account and returns its generated document ID.
	CreateAdminUser(ctx context.Context, user *entity.AdminUser) (string, error)

	// FindAdminUserByEmail retrieves an admin account by email.
	FindAdminUserByEmail(ctx context.Context, email string) (*entity.AdminUser, error)
}
