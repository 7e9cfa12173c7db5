package fx

import (
	"osu-score/internal/config"
	"osu-score/internal/logger"
	"osu-score/internal/report"
	"osu-score/internal/repository"
	"osu-score/internal/service"

	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	// repos
	fx.Provide(repository.NewBeatmapRepository),
	// svc
	fx.Provide(service.NewScoreService),
	// output
	fx.Provide(report.NewWriter),
)
