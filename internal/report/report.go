package report

import (
	"errors"
	"fmt"
	"math"
	"time"

	"osu-score/internal/constants"
	"osu-score/internal/domain"
	"osu-score/internal/numeric"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type Report struct {
	RunID       string    `json:"run_id" yaml:"run_id"`
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`
	Summary     Summary   `json:"summary" yaml:"summary"`
	Scores      []Entry   `json:"scores" yaml:"scores"`
}

type Entry struct {
	ID            string          `json:"id" yaml:"id"`
	BeatmapID     string          `json:"beatmap_id,omitempty" yaml:"beatmap_id,omitempty"`
	Mode          string          `json:"mode,omitempty" yaml:"mode,omitempty"`
	Username      string          `json:"username,omitempty" yaml:"username,omitempty"`
	UserID        string          `json:"user_id" yaml:"user_id"`
	Score         numeric.Number  `json:"score" yaml:"score"`
	Rank          string          `json:"rank" yaml:"rank"`
	MaxCombo      numeric.Number  `json:"max_combo" yaml:"max_combo"`
	Counts        Counts          `json:"counts" yaml:"counts"`
	PP            numeric.Number  `json:"pp" yaml:"pp"`
	Perfect       bool            `json:"perfect" yaml:"perfect"`
	HasReplay     bool            `json:"replay_available" yaml:"replay_available"`
	PlayedAt      *time.Time      `json:"played_at,omitempty" yaml:"played_at,omitempty"`
	Mods          []string        `json:"mods" yaml:"mods"`
	ModCodes      domain.ModCodes `json:"mod_codes" yaml:"mod_codes"`
	Accuracy      *float64        `json:"accuracy,omitempty" yaml:"accuracy,omitempty"`
	AccuracyError string          `json:"accuracy_error,omitempty" yaml:"accuracy_error,omitempty"`
}

type Counts struct {
	N300 numeric.Number `json:"300" yaml:"300"`
	N100 numeric.Number `json:"100" yaml:"100"`
	N50  numeric.Number `json:"50" yaml:"50"`
	Geki numeric.Number `json:"geki" yaml:"geki"`
	Katu numeric.Number `json:"katu" yaml:"katu"`
	Miss numeric.Number `json:"miss" yaml:"miss"`
}

type Summary struct {
	Scores       int            `json:"scores" yaml:"scores"`
	Linked       int            `json:"linked" yaml:"linked"`
	MeanAccuracy *float64       `json:"mean_accuracy,omitempty" yaml:"mean_accuracy,omitempty"`
	TotalPP      float64        `json:"total_pp" yaml:"total_pp"`
	Perfect      int            `json:"perfect" yaml:"perfect"`
	Ranks        map[string]int `json:"ranks" yaml:"ranks"`
	ModCodes     map[string]int `json:"mod_codes" yaml:"mod_codes"`
}

// Build renders normalized scores. Accuracy failures (an unknown mode) are
// recorded on the entry rather than failing the report.
func Build(runID string, scores []*domain.Score, logger zerolog.Logger) (*Report, error) {
	entries := make([]Entry, 0, len(scores))
	for _, s := range scores {
		e, err := toEntry(s, logger)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return &Report{
		RunID:       runID,
		GeneratedAt: time.Now().UTC(),
		Summary:     summarize(entries),
		Scores:      entries,
	}, nil
}

func toEntry(s *domain.Score, logger zerolog.Logger) (Entry, error) {
	id := s.ID
	if id == "" {
		var err error
		id, err = gonanoid.New(constants.ReportIDLength)
		if err != nil {
			return Entry{}, fmt.Errorf("failed to generate nanoid: %w", err)
		}
	}

	e := Entry{
		ID:        id,
		BeatmapID: s.BeatmapID(),
		Username:  s.User.Name,
		UserID:    s.User.ID,
		Score:     s.Score,
		Rank:      s.Rank,
		MaxCombo:  s.MaxCombo,
		Counts: Counts{
			N300: s.Counts.N300,
			N100: s.Counts.N100,
			N50:  s.Counts.N50,
			Geki: s.Counts.Geki,
			Katu: s.Counts.Katu,
			Miss: s.Counts.Miss,
		},
		PP:        s.PP,
		Perfect:   s.Perfect,
		HasReplay: s.HasReplay,
		Mods:      s.Mods(),
		ModCodes:  s.ModCodes(),
	}

	if t := s.PlayedAt(); !t.IsZero() {
		e.PlayedAt = &t
	} else {
		logger.Debug().Str("id", id).Str("date", s.RawDate).Msg("unparsable play date")
	}

	if b := s.Beatmap(); b != nil {
		e.Mode = b.Mode().String()
	}

	acc, ok, err := s.Accuracy()
	switch {
	case errors.Is(err, domain.ErrUnknownMode):
		logger.Warn().Err(err).Str("id", id).Str("beatmap_id", e.BeatmapID).Msg("cannot compute accuracy")
		e.AccuracyError = err.Error()
	case err != nil:
		return Entry{}, err
	case ok && !math.IsNaN(acc) && !math.IsInf(acc, 0):
		e.Accuracy = &acc
	}

	return e, nil
}

func summarize(entries []Entry) Summary {
	sum := Summary{
		Scores:       len(entries),
		MeanAccuracy: calculateMeanAccuracy(entries),
		TotalPP:      calculateTotalPP(entries),
		Ranks:        make(map[string]int),
		ModCodes:     make(map[string]int),
	}

	for _, e := range entries {
		if e.Mode != "" {
			sum.Linked++
		}
		if e.Perfect {
			sum.Perfect++
		}
		if e.Rank != "" {
			sum.Ranks[e.Rank]++
		}
		for _, code := range e.ModCodes.Slice() {
			sum.ModCodes[code]++
		}
	}
	return sum
}

func calculateMeanAccuracy(entries []Entry) *float64 {
	var total float64
	n := 0
	for _, e := range entries {
		if e.Accuracy != nil {
			total += *e.Accuracy
			n++
		}
	}
	if n == 0 {
		return nil
	}
	mean := total / float64(n)
	return &mean
}

func calculateTotalPP(entries []Entry) float64 {
	var total float64
	for _, e := range entries {
		if pp := e.PP.Float64(); !e.PP.IsNull() && !math.IsNaN(pp) {
			total += pp
		}
	}
	return total
}
