package main

import (
	"context"

	"osu-score/internal/constants"
	fxmodules "osu-score/internal/fx"
	"osu-score/internal/report"
	"osu-score/internal/service"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func main() {
	fx.New(
		fxmodules.Module,
		fx.Invoke(runNormalize),
	).Run()
}

func runNormalize(
	lc fx.Lifecycle,
	shutdowner fx.Shutdowner,
	scoreSvc *service.ScoreService,
	writer *report.Writer,
	logger zerolog.Logger,
) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)

				rep, err := scoreSvc.Run(ctx)
				if err != nil {
					logger.Error().Err(err).Msg("normalization failed")
					shutdowner.Shutdown(fx.ExitCode(1))
					return
				}
				if err := writer.Write(rep); err != nil {
					logger.Error().Err(err).Msg("failed to write report")
					shutdowner.Shutdown(fx.ExitCode(1))
					return
				}
				shutdowner.Shutdown()
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			logger.Debug().Msg("shutting down")
			cancel()

			waitCtx, waitCancel := context.WithTimeout(stopCtx, constants.ShutdownTimeout)
			defer waitCancel()

			select {
			case <-done:
				return nil
			case <-waitCtx.Done():
				logger.Warn().Msg("normalization did not stop in time")
				return waitCtx.Err()
			}
		},
	})
}
