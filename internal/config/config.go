package config

import (
	"fmt"
	"os"
	"strconv"

	"osu-score/internal/constants"
	"osu-score/internal/domain"
	"osu-score/internal/logger"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

type Config struct {
	ScoresPath   string
	BeatmapsPath string
	// BeatmapID links scores that carry no beatmap_id, as returned by get_scores.
	BeatmapID    string
	ParseNumeric bool
	OutputFormat string
	OutputPath   string
	LogLevel     string
	Workers      int
}

func Load(log zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		ScoresPath:   getEnv("SCORES_PATH", ""),
		BeatmapsPath: getEnv("BEATMAPS_PATH", ""),
		BeatmapID:    getEnv("BEATMAP_ID", ""),
		ParseNumeric: getEnvBool("PARSE_NUMERIC", true),
		OutputFormat: getEnv("OUTPUT_FORMAT", FormatJSON),
		OutputPath:   getEnv("OUTPUT_PATH", ""),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		Workers:      getEnvInt("NORMALIZE_WORKERS", constants.DefaultWorkers),
	}

	if cfg.ScoresPath == "" {
		return nil, fmt.Errorf("SCORES_PATH is required")
	}
	if cfg.OutputFormat == "yml" {
		cfg.OutputFormat = FormatYAML
	}
	if cfg.OutputFormat != FormatJSON && cfg.OutputFormat != FormatYAML {
		return nil, fmt.Errorf("OUTPUT_FORMAT must be %q or %q, got %q", FormatJSON, FormatYAML, cfg.OutputFormat)
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}

	if _, err := logger.SetLevel(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	log.Info().
		Str("scores_path", cfg.ScoresPath).
		Str("beatmaps_path", cfg.BeatmapsPath).
		Str("beatmap_id", cfg.BeatmapID).
		Bool("parse_numeric", cfg.ParseNumeric).
		Str("output_format", cfg.OutputFormat).
		Str("log_level", cfg.LogLevel).
		Int("workers", cfg.Workers).
		Msg("configuration loaded")

	return cfg, nil
}

// ScoreOptions returns the normalization options for domain.NewScore.
func (c *Config) ScoreOptions() domain.Options {
	return domain.Options{ParseNumeric: c.ParseNumeric}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

var Module = fx.Provide(Load)
