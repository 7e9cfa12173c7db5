package config

import (
	"testing"

	"osu-score/internal/constants"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SCORES_PATH", "scores.json")
	t.Setenv("LOG_LEVEL", "warn")
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	cfg, err := Load(zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, "scores.json", cfg.ScoresPath)
	assert.True(t, cfg.ParseNumeric)
	assert.Equal(t, FormatJSON, cfg.OutputFormat)
	assert.Equal(t, constants.DefaultWorkers, cfg.Workers)
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
	assert.True(t, cfg.ScoreOptions().ParseNumeric)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SCORES_PATH", "scores.json")
	t.Setenv("BEATMAPS_PATH", "beatmaps.json")
	t.Setenv("BEATMAP_ID", "129891")
	t.Setenv("PARSE_NUMERIC", "false")
	t.Setenv("OUTPUT_FORMAT", "yml")
	t.Setenv("NORMALIZE_WORKERS", "0")
	t.Setenv("LOG_LEVEL", "debug")
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	cfg, err := Load(zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, "beatmaps.json", cfg.BeatmapsPath)
	assert.Equal(t, "129891", cfg.BeatmapID)
	assert.False(t, cfg.ParseNumeric)
	assert.Equal(t, FormatYAML, cfg.OutputFormat)
	assert.Equal(t, 1, cfg.Workers)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("SCORES_PATH", "")
	_, err := Load(zerolog.Nop())
	assert.Error(t, err)

	t.Setenv("SCORES_PATH", "scores.json")
	t.Setenv("OUTPUT_FORMAT", "xml")
	_, err = Load(zerolog.Nop())
	assert.Error(t, err)

	t.Setenv("OUTPUT_FORMAT", "json")
	t.Setenv("LOG_LEVEL", "loud")
	_, err = Load(zerolog.Nop())
	assert.Error(t, err)
}
