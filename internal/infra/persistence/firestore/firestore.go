// Package firestore contains the concrete implementation of the persistence
// layer on Cloud Firestore. Each repository owns one collection; entities map
// directly via their firestore struct tags and document IDs are carried on
// the entity ID field.
package firestore

import (
	"context"
	"log/slog"

	"lnlfit/config"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"google.golang.org/api/option"
)

// ClientParams holds dependencies for the Firestore client, injected by Fx
type ClientParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewClient initializes the Firestore client through the Firebase app. When
// no credentials path is configured, application default credentials apply
// (the normal case on Cloud Run).
func NewClient(params ClientParams) (*firestore.Client, error) {
	cfg := params.Config.Firestore
	if cfg == nil || cfg.ProjectID == "" {
		return nil, errors.New("firestore project ID must be provided")
	}

	var opts []option.ClientOption
	if cfg.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsPath))
	}

	app, err := firebase.NewApp(params.Ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize Firebase app")
	}

	client, err := app.Firestore(params.Ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get Firestore client")
	}

	params.Logger.Info("Firestore client initialized",
		slog.String("project_id", cfg.ProjectID),
	)

	params.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			params.Logger.Info("Closing Firestore client")

			return client.Close()
		},
	})

	return client, nil
}

// Module provides the Firestore FX module: the client plus every repository.
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewClient),
	fx.Provide(NewCustomerRepository),
	fx.Provide(NewChatSessionRepository),
	fx.Provide(NewOrderRepository),
	fx.Provide(NewMealPlanRepository),
	fx.Provide(NewTemplateRepository),
	fx.Provide(NewAffiliateRepository),
	fx.Provide(NewAdminUserRepository),
)
