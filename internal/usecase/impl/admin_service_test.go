package impl

import (
	"context"
	"testing"

	"lnlfit/internal/domain/entity"
	domainerrors "lnlfit/internal/domain/errors"
	"lnlfit/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_Success(t *testing.T) {
	adminRepo := &fakeAdminUserRepo{
		findFn: func(_ context.Context, email string) (*entity.AdminUser, error) {
			return &entity.AdminUser{
				ID:           "admin-1",
				Email:        email,
				Role:         "admin",
				PasswordHash: "hashed:secret",
			}, nil
		},
	}

	svc := NewAdminService(adminRepo, &fakeCustomerRepo{}, &fakeHasher{}, &fakeTokenService{}, newDiscardLogger())

	out, err := svc.Login(context.Background(), &usecase.AdminLoginInput{
		Email:    "ops@lnlfit.com",
		Password: "secret",
	})
	require.NoError(t, err)
	assert.Equal(t, "token-admin-1", out.Token)
	assert.Equal(t, "admin-1", out.Admin.ID)
}

func TestLogin_WrongPassword(t *testing.T) {
	adminRepo := &fakeAdminUserRepo{
		findFn: func(_ context.Context, email string) (*entity.AdminUser, error) {
			return &entity.AdminUser{ID: "admin-1", Email: email, PasswordHash: "hashed:secret"}, nil
		},
	}

	svc := NewAdminService(adminRepo, &fakeCustomerRepo{}, &fakeHasher{}, &fakeTokenService{}, newDiscardLogger())

	_, err := svc.Login(context.Background(), &usecase.AdminLoginInput{
		Email:    "ops@lnlfit.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestLogin_UnknownAccountSameError(t *testing.T) {
	svc := NewAdminService(&fakeAdminUserRepo{}, &fakeCustomerRepo{}, &fakeHasher{}, &fakeTokenService{}, newDiscardLogger())

	_, err := svc.Login(context.Background(), &usecase.AdminLoginInput{
		Email:    "nobody@lnlfit.com",
		Password: "secret",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials,
		"unknown accounts and wrong passwords must be indistinguishable")
}

func TestGetCustomer_NotFoundMapsToAppError(t *testing.T) {
	svc := NewAdminService(&fakeAdminUserRepo{}, &fakeCustomerRepo{}, &fakeHasher{}, &fakeTokenService{}, newDiscardLogger())

	_, err := svc.GetCustomer(context.Background(), "missing")
	assert.ErrorIs(t, err, domainerrors.ErrCustomerNotFound)
}

func TestListCustomers(t *testing.T) {
	customerRepo := &fakeCustomerRepo{
		listFn: func(_ context.Context, limit int) ([]*entity.Customer, error) {
			assert.Equal(t, 50, limit)

			return []*entity.Customer{{ID: "customer-1"}, {ID: "customer-2"}}, nil
		},
	}

	svc := NewAdminService(&fakeAdminUserRepo{}, customerRepo, &fakeHasher{}, &fakeTokenService{}, newDiscardLogger())

	customers, err := svc.ListCustomers(context.Background(), 50)
	require.NoError(t, err)
	assert.Len(t, customers, 2)
}
