package service

import (
	"context"
	"fmt"
	"os"
	"time"

	"osu-score/internal/api"
	"osu-score/internal/config"
	"osu-score/internal/constants"
	"osu-score/internal/domain"
	"osu-score/internal/report"
	"osu-score/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type ScoreService struct {
	beatmaps *repository.BeatmapRepository
	cfg      *config.Config
	logger   zerolog.Logger
}

func NewScoreService(beatmaps *repository.BeatmapRepository, cfg *config.Config, logger zerolog.Logger) *ScoreService {
	return &ScoreService{beatmaps: beatmaps, cfg: cfg, logger: logger}
}

// Input is the decoded content of the configured input files.
type Input struct {
	Scores   []domain.RawScore
	Beatmaps []domain.Beatmap
}

// Run loads the input files, indexes the beatmaps, normalizes every score
// and builds the report.
func (s *ScoreService) Run(ctx context.Context) (*report.Report, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RunTimeout)
	defer cancel()

	runID := uuid.New().String()
	log := s.logger.With().Str("run_id", runID).Logger()
	ctx = log.WithContext(ctx)
	start := time.Now()

	log.Info().Str("scores_path", s.cfg.ScoresPath).Msg("normalization started")

	in, err := s.Load(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to load input")
		return nil, fmt.Errorf("failed to load input: %w", err)
	}

	if err := s.beatmaps.UpsertBatch(ctx, in.Beatmaps); err != nil {
		log.Error().Err(err).Msg("failed to index beatmaps")
		return nil, fmt.Errorf("failed to index beatmaps: %w", err)
	}

	scores, err := s.Normalize(ctx, in.Scores)
	if err != nil {
		log.Error().Err(err).Msg("failed to normalize scores")
		return nil, fmt.Errorf("failed to normalize scores: %w", err)
	}

	rep, err := report.Build(runID, scores, log)
	if err != nil {
		log.Error().Err(err).Msg("failed to build report")
		return nil, fmt.Errorf("failed to build report: %w", err)
	}

	duration := time.Since(start)
	log.Info().
		Int("scores", len(scores)).
		Int("beatmaps", len(in.Beatmaps)).
		Int64("duration_ms", duration.Milliseconds()).
		Dur("duration", duration).
		Msg("normalization completed")

	return rep, nil
}

// Load reads and decodes the score and beatmap files concurrently. The
// beatmap file is optional.
func (s *ScoreService) Load(ctx context.Context) (*Input, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DecodeTimeout)
	defer cancel()

	log := s.log(ctx)
	g, gCtx := errgroup.WithContext(ctx)
	in := &Input{}

	g.Go(func() error {
		body, err := readFile(gCtx, s.cfg.ScoresPath)
		if err != nil {
			return err
		}
		in.Scores, err = api.ParseScores(body)
		if err != nil {
			return fmt.Errorf("failed to decode %s: %w", s.cfg.ScoresPath, err)
		}
		return nil
	})

	if s.cfg.BeatmapsPath != "" {
		g.Go(func() error {
			body, err := readFile(gCtx, s.cfg.BeatmapsPath)
			if err != nil {
				return err
			}
			in.Beatmaps, err = api.ParseBeatmaps(body)
			if err != nil {
				return fmt.Errorf("failed to decode %s: %w", s.cfg.BeatmapsPath, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Debug().
		Int("scores", len(in.Scores)).
		Int("beatmaps", len(in.Beatmaps)).
		Msg("input decoded")
	return in, nil
}

func readFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return body, nil
}

// Normalize builds a Score for every raw score, in input order, and links
// the indexed beatmaps. Scores without a beatmap_id get the configured
// default beatmap.
func (s *ScoreService) Normalize(ctx context.Context, raws []domain.RawScore) ([]*domain.Score, error) {
	log := s.log(ctx)
	opts := s.cfg.ScoreOptions()

	var fallback domain.BeatmapRef
	if s.cfg.BeatmapID != "" {
		if b, ok := s.beatmaps.Get(s.cfg.BeatmapID); ok {
			fallback = b
		} else {
			log.Warn().Str("beatmap_id", s.cfg.BeatmapID).Msg("default beatmap not found, scores without beatmap_id stay unlinked")
		}
	}

	scores := make([]*domain.Score, len(raws))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(max(s.cfg.Workers, 1))

	for i, raw := range raws {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			scores[i] = s.normalize(opts, raw, fallback)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	linked := 0
	for _, score := range scores {
		if score.Beatmap() != nil {
			linked++
		}
	}
	log.Debug().Int("count", len(scores)).Int("linked", linked).Msg("scores normalized")

	return scores, nil
}

func (s *ScoreService) normalize(opts domain.Options, raw domain.RawScore, fallback domain.BeatmapRef) *domain.Score {
	hasID := raw.BeatmapID.Valid() && raw.BeatmapID.Text != ""
	if !hasID && fallback != nil {
		return domain.NewScore(opts, raw, fallback)
	}

	score := domain.NewScore(opts, raw, nil)
	if b, ok := s.beatmaps.Get(score.BeatmapID()); ok {
		score.SetBeatmap(b)
	}
	return score
}

// log prefers the run logger carried by ctx.
func (s *ScoreService) log(ctx context.Context) zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return *l
	}
	return s.logger
}
