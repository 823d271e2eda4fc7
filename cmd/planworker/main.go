// The planworker command runs the generation worker: a Pub/Sub push endpoint
// that drives meal plans through generation, plus the staleness sweeper that
// bounds how long a plan may sit in generating state.
package main

import (
	"context"
	"log/slog"
	"os"

	"lnlfit/config"
	"lnlfit/internal/delivery"
	"lnlfit/internal/delivery/worker"
	"lnlfit/internal/delivery/worker/handler"
	logs "lnlfit/internal/infra/log"
	"lnlfit/internal/infra/persistence/firestore"
	"lnlfit/internal/infra/textgen"
	"lnlfit/internal/usecase/impl"

	"go.uber.org/fx"
)

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
		injectHandler(),
		injectDelivery(),
		fx.Invoke(
			startServer,
			worker.NewSweeper,
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
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			textgen.NewOpenAIGenerator,
		),
	)
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
			newGenerationConfig,
			impl.NewGenerationService,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewGenerateHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				worker.NewServer,
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
