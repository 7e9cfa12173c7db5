package repository

import (
	"context"
	"fmt"
	"sync"

	"osu-score/internal/constants"
	"osu-score/internal/domain"

	"github.com/rs/zerolog"
)

// BeatmapRepository is an in-memory index of the beatmaps supplied with a
// run, keyed by beatmap id.
type BeatmapRepository struct {
	mu       sync.RWMutex
	beatmaps map[string]*domain.Beatmap
	logger   zerolog.Logger
}

func NewBeatmapRepository(logger zerolog.Logger) *BeatmapRepository {
	return &BeatmapRepository{
		beatmaps: make(map[string]*domain.Beatmap),
		logger:   logger,
	}
}

func (r *BeatmapRepository) Get(id string) (*domain.Beatmap, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.beatmaps[id]
	return b, ok
}

func (r *BeatmapRepository) Upsert(beatmap domain.Beatmap) error {
	if beatmap.ID == "" {
		return fmt.Errorf("beatmap has no id")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	b := beatmap
	r.beatmaps[b.ID] = &b
	return nil
}

func (r *BeatmapRepository) UpsertBatch(ctx context.Context, beatmaps []domain.Beatmap) error {
	for i := 0; i < len(beatmaps); i += constants.BatchSize {
		if err := ctx.Err(); err != nil {
			return err
		}

		end := i + constants.BatchSize
		if end > len(beatmaps) {
			end = len(beatmaps)
		}

		for j, beatmap := range beatmaps[i:end] {
			if err := r.Upsert(beatmap); err != nil {
				return fmt.Errorf("failed to upsert beatmap %d: %w", i+j, err)
			}
		}
	}

	r.logger.Debug().Int("count", len(beatmaps)).Int("total", r.Len()).Msg("beatmaps indexed")
	return nil
}

func (r *BeatmapRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.beatmaps)
}
