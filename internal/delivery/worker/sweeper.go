package worker

import (
	"context"
	"log/slog"
	"time"

	"lnlfit/config"
	"lnlfit/internal/domain/lifecycle"
	"lnlfit/internal/usecase"

	"go.uber.org/fx"
)

// SweeperParams holds dependencies for the staleness sweeper
type SweeperParams struct {
	fx.In
	fx.Lifecycle

	Cfg        *config.Config
	Logger     *slog.Logger
	Generation usecase.GenerationUsecase
}

// Sweeper periodically fails plans stuck in generating state past the
// configured ceiling. This is the server-side bound on generation time: a
// lost or repeatedly failing job eventually surfaces to the polling client
// as a failed plan instead of spinning forever.
type Sweeper struct {
	interval   time.Duration
	ceiling    time.Duration
	logger     *slog.Logger
	generation usecase.GenerationUsecase
	stop       chan struct{}
	done       chan struct{}
}

// NewSweeper creates the sweeper and ties its goroutine to the fx lifecycle.
func NewSweeper(params SweeperParams) *Sweeper {
	s := &Sweeper{
		interval:   params.Cfg.Generation.SweepInterval,
		ceiling:    params.Cfg.Generation.StaleCeiling,
		logger:     params.Logger,
		generation: params.Generation,
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}

	params.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go s.run()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			close(s.stop)
			select {
			case <-s.done:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	})

	return s
}

func (s *Sweeper) run() {
	defer close(s.done)

	s.logger.Info("[Sweeper] Starting staleness sweeper",
		slog.Duration("interval", s.interval),
		slog.Duration("ceiling", s.ceiling),
	)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			s.logger.Info("[Sweeper] Stopping staleness sweeper")

			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *Sweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()

	failed, err := s.generation.FailStale(ctx, s.ceiling)
	if err != nil {
		s.logger.Error("[Sweeper] Stale sweep failed", slog.Any("error", err))

		return
	}

	if failed > 0 {
		s.logger.Warn("[Sweeper] Failed stale plans", slog.Int("count", failed))
	}
}
