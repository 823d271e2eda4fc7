// The api command runs the public storefront API: checkout, Stripe webhooks,
// chat, plan status polling, affiliate tracking and the back office.
package main

import (
	"context"
	"log/slog"
	"os"

	"lnlfit/config"
	"lnlfit/internal/delivery"
	"lnlfit/internal/delivery/http"
	"lnlfit/internal/delivery/http/middleware"
	"lnlfit/internal/delivery/http/router/handler"
	"lnlfit/internal/domain/service"
	"lnlfit/internal/infra/auth"
	logs "lnlfit/internal/infra/log"
	"lnlfit/internal/infra/payment"
	"lnlfit/internal/infra/persistence/firestore"
	"lnlfit/internal/infra/pubsub"
	"lnlfit/internal/infra/textgen"
	"lnlfit/internal/usecase/impl"

	"go.uber.org/fx"
)

// Plan generation request shape for the synchronous /api/meal-plan/generate path.
const (
	planMaxTokens   = 4096
	planTemperature = 0.7
)

type startServerParams struct {
	fx.In
	fx.Shutdowner

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectService(),
		injectUsecase(),
		injectMiddleware(),
		injectHandler(),
		injectDelivery(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Options(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
		),
		firestore.Module,
		pubsub.Module,
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			newPasswordHasher,
			auth.NewJWTService,
			payment.NewStripeGateway,
			textgen.NewOpenAIGenerator,
		),
	)
}

// newPasswordHasher creates the bcrypt hasher with the configured cost.
func newPasswordHasher(cfg *config.Config) service.PasswordHasher {
	cost := 0
	if cfg.Auth != nil {
		cost = cfg.Auth.BcryptCost
	}

	return auth.NewBcryptHasher(cost)
}

func newChatConfig(cfg *config.Config) impl.ChatConfig {
	if cfg.OpenAI == nil {
		return impl.ChatConfig{}
	}

	return impl.ChatConfig{
		ChatModel:        cfg.OpenAI.ChatModel,
		ExtractionModel:  cfg.OpenAI.ExtractionModel,
		ChatPrompt:       cfg.OpenAI.Prompts.Chat,
		ExtractionPrompt: cfg.OpenAI.Prompts.Extraction,
	}
}

func newGenerationConfig(cfg *config.Config) impl.GenerationConfig {
	if cfg.OpenAI == nil {
		return impl.GenerationConfig{}
	}

	return impl.GenerationConfig{
		Model:        cfg.OpenAI.PlanModel,
		SystemPrompt: cfg.OpenAI.Prompts.Plan,
		MaxTokens:    planMaxTokens,
		Temperature:  planTemperature,
	}
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			newChatConfig,
			newGenerationConfig,
			impl.NewCheckoutService,
			impl.NewFulfillmentService,
			impl.NewGenerationService,
			impl.NewPlanStatusService,
			impl.NewChatService,
			impl.NewAffiliateService,
			impl.NewAdminService,
			impl.NewTemplateService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewCheckoutHandler,
			handler.NewWebhookHandler,
			handler.NewPlanHandler,
			handler.NewChatHandler,
			handler.NewAffiliateHandler,
			handler.NewAdminHandler,
			handler.NewTemplateHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))

				// Trigger graceful shutdown to execute all OnStop hooks
				if shutdownErr := params.Shutdown(); shutdownErr != nil {
					slog.Error("Failed to shutdown gracefully", slog.Any("error", shutdownErr))
					os.Exit(1)
				}
			}
		}()
	}
}
