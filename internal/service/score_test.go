package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"osu-score/internal/config"
	"osu-score/internal/domain"
	"osu-score/internal/numeric"
	"osu-score/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testScores = `[
	  {"score_id": "1", "beatmap_id": "100", "score": "1000", "user_id": "7",
	   "count300": "100", "count100": "0", "count50": "0", "countmiss": "0",
	   "countgeki": "0", "countkatu": "0", "maxcombo": "150", "perfect": "1",
	   "date": "2020-05-01 10:00:00", "rank": "X", "pp": "120.5",
	   "replay_available": "0", "enabled_mods": "24"},
	  {"score_id": "2", "score": "900", "user_id": "8",
	   "count300": "90", "count100": "10", "count50": "0", "countmiss": "0",
	   "countgeki": "0", "countkatu": "0", "maxcombo": "140", "perfect": "0",
	   "date": "2020-05-02 11:00:00", "rank": "A", "pp": "0",
	   "replay_available": "1", "enabled_mods": "0"},
	  {"score_id": "3", "beatmap_id": "404", "score": "800", "user_id": "9",
	   "count300": "80", "count100": "0", "count50": "0", "countmiss": "20",
	   "date": "not a date", "rank": "D", "enabled_mods": "64"}
	]`
	testBeatmaps = `[
	  {"beatmap_id": "100", "mode": "0"},
	  {"beatmap_id": "200", "mode": "1"}
	]`
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func newTestService(t *testing.T, cfg *config.Config) *ScoreService {
	t.Helper()
	if cfg.Workers == 0 {
		cfg.Workers = 2
	}
	if cfg.OutputFormat == "" {
		cfg.OutputFormat = config.FormatJSON
	}
	return NewScoreService(repository.NewBeatmapRepository(zerolog.Nop()), cfg, zerolog.Nop())
}

func TestScoreService_Run(t *testing.T) {
	dir := t.TempDir()
	svc := newTestService(t, &config.Config{
		ScoresPath:   writeFile(t, dir, "scores.json", testScores),
		BeatmapsPath: writeFile(t, dir, "beatmaps.json", testBeatmaps),
		BeatmapID:    "200",
		ParseNumeric: true,
	})

	rep, err := svc.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, rep.Scores, 3)
	assert.NotEmpty(t, rep.RunID)

	first := rep.Scores[0]
	assert.Equal(t, "1", first.ID)
	assert.Equal(t, "100", first.BeatmapID)
	assert.Equal(t, "Standard", first.Mode)
	require.NotNil(t, first.Accuracy)
	assert.Equal(t, 1.0, *first.Accuracy)
	assert.Equal(t, []string{"HD", "HR"}, first.ModCodes.Slice())

	// no beatmap_id: linked to the default beatmap
	second := rep.Scores[1]
	assert.Equal(t, "200", second.BeatmapID)
	assert.Equal(t, "Taiko", second.Mode)
	require.NotNil(t, second.Accuracy)
	assert.InDelta(t, 95.0/100.0, *second.Accuracy, 1e-12)
	assert.True(t, second.PP.IsNull())
	assert.True(t, second.ModCodes.IsEmpty())

	// unknown beatmap: no accuracy
	third := rep.Scores[2]
	assert.Equal(t, "404", third.BeatmapID)
	assert.Nil(t, third.Accuracy)
	assert.Nil(t, third.PlayedAt)

	assert.Equal(t, 3, rep.Summary.Scores)
	assert.Equal(t, 2, rep.Summary.Linked)
	assert.InDelta(t, 120.5, rep.Summary.TotalPP, 1e-9)
}

func TestScoreService_Load_MissingFile(t *testing.T) {
	svc := newTestService(t, &config.Config{ScoresPath: filepath.Join(t.TempDir(), "nope.json")})
	_, err := svc.Load(context.Background())
	assert.Error(t, err)
}

func TestScoreService_Load_BadBeatmaps(t *testing.T) {
	dir := t.TempDir()
	svc := newTestService(t, &config.Config{
		ScoresPath:   writeFile(t, dir, "scores.json", testScores),
		BeatmapsPath: writeFile(t, dir, "beatmaps.json", `{`),
	})
	_, err := svc.Load(context.Background())
	assert.Error(t, err)
}

func TestScoreService_Normalize_KeepsOrder(t *testing.T) {
	svc := newTestService(t, &config.Config{ParseNumeric: false, Workers: 4})

	raws := make([]domain.RawScore, 50)
	for i := range raws {
		raws[i] = domain.RawScore{Score: numeric.RawNumber(string(rune('a' + i%26)))}
	}

	scores, err := svc.Normalize(context.Background(), raws)
	require.NoError(t, err)
	require.Len(t, scores, 50)
	for i, s := range scores {
		assert.Equal(t, string(rune('a'+i%26)), s.Score.String())
	}
}

func TestScoreService_Normalize_Canceled(t *testing.T) {
	svc := newTestService(t, &config.Config{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Normalize(ctx, []domain.RawScore{{}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScoreService_Normalize_MissingDefaultBeatmap(t *testing.T) {
	svc := newTestService(t, &config.Config{BeatmapID: "missing"})

	scores, err := svc.Normalize(context.Background(), []domain.RawScore{{}})
	require.NoError(t, err)
	assert.Nil(t, scores[0].Beatmap())
	assert.Equal(t, "", scores[0].BeatmapID())
}
