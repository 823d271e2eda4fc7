// The adminctl command seeds a back-office admin account. There is no
// self-service signup; operators run this once per account.
//
//	adminctl -email ops@example.com -password '...' -name "Ops"
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"lnlfit/config"
	"lnlfit/internal/domain/entity"
	"lnlfit/internal/domain/repository"
	"lnlfit/internal/domain/service"
	"lnlfit/internal/infra/auth"
	logs "lnlfit/internal/infra/log"
	"lnlfit/internal/infra/persistence/firestore"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

func main() {
	email := flag.String("email", "", "admin account email")
	password := flag.String("password", "", "admin account password")
	name := flag.String("name", "Administrator", "admin display name")
	flag.Parse()

	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "usage: adminctl -email <email> -password <password> [-name <name>]")
		os.Exit(2)
	}

	app := fx.New(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			newPasswordHasher,
		),
		firestore.Module,
		fx.Invoke(func(params seedParams) error {
			return seedAdmin(params, *email, *password, *name)
		}),
	)
	app.Run()

	if err := app.Err(); err != nil {
		os.Exit(1)
	}
}

func newPasswordHasher(cfg *config.Config) service.PasswordHasher {
	cost := 0
	if cfg.Auth != nil {
		cost = cfg.Auth.BcryptCost
	}

	return auth.NewBcryptHasher(cost)
}

type seedParams struct {
	fx.In
	fx.Shutdowner

	Ctx       context.Context
	AdminRepo repository.AdminUserRepository
	Hasher    service.PasswordHasher
	Logger    *slog.Logger
}

func seedAdmin(params seedParams, email, password, name string) error {
	defer func() {
		if err := params.Shutdown(); err != nil {
			params.Logger.Error("Failed to shutdown", slog.Any("error", err))
		}
	}()

	if _, err := params.AdminRepo.FindAdminUserByEmail(params.Ctx, email); err == nil {
		params.Logger.Warn("[AdminCtl] Account already exists, nothing to do",
			slog.String("email", email),
		)

		return nil
	} else if !errors.Is(err, repository.ErrAdminUserNotFound) {
		return errors.Wrap(err, "failed to check for existing account")
	}

	hash, err := params.Hasher.Hash(password)
	if err != nil {
		return errors.Wrap(err, "failed to hash password")
	}

	id, err := params.AdminRepo.CreateAdminUser(params.Ctx, &entity.AdminUser{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Role:         entity.AdminRoleAdmin,
		CreatedAt:    time.Now(),
	})
	if err != nil {
		return errors.Wrap(err, "failed to create admin account")
	}

	params.Logger.Info("[AdminCtl] Admin account created",
		slog.String("admin_id", id),
		slog.String("email", email),
	)

	return nil
}
