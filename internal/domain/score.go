package domain

import (
	"sync"
	"time"

	"osu-score/internal/numeric"
)

// RawScore is a score object as the API sends it. Every field keeps its
// wire type so that normalization can apply the exact-match rules.
type RawScore struct {
	ScoreID         numeric.Raw
	Score           numeric.Raw
	Username        numeric.Raw
	UserID          numeric.Raw
	BeatmapID       numeric.Raw
	Count300        numeric.Raw
	Count100        numeric.Raw
	Count50         numeric.Raw
	CountGeki       numeric.Raw
	CountKatu       numeric.Raw
	CountMiss       numeric.Raw
	MaxCombo        numeric.Raw
	Perfect         numeric.Raw
	Date            numeric.Raw
	Rank            numeric.Raw
	PP              numeric.Raw
	ReplayAvailable numeric.Raw
	EnabledMods     numeric.Raw
}

// Options selects how numeric fields are represented.
type Options struct {
	// ParseNumeric parses numbers into float64; otherwise the wire text is kept.
	ParseNumeric bool
}

type User struct {
	Name string // empty when the endpoint does not report it
	ID   string
}

type HitCounts struct {
	N300 numeric.Number
	N100 numeric.Number
	N50  numeric.Number
	Geki numeric.Number
	Katu numeric.Number
	Miss numeric.Number
}

// Ints re-parses every count as a base-10 integer.
func (c HitCounts) Ints() IntCounts {
	return IntCounts{
		N300: c.N300.Int(),
		N100: c.N100.Int(),
		N50:  c.N50.Int(),
		Geki: c.Geki.Int(),
		Katu: c.Katu.Int(),
		Miss: c.Miss.Int(),
	}
}

// Score is a normalized play. Exported fields are set once by NewScore.
// The beatmap link and the derived values are guarded by mu.
type Score struct {
	ID        string
	Score     numeric.Number
	User      User
	Counts    HitCounts
	MaxCombo  numeric.Number
	Perfect   bool
	RawDate   string
	Rank      string
	PP        numeric.Number // null when the play awards none
	HasReplay bool

	rawMods   Mods
	modsValid bool

	mu        sync.Mutex
	beatmapID string
	beatmap   BeatmapRef

	playedAt *time.Time
	mods     []string
	modCodes *ModCodes
	accuracy *float64
}

// NewScore normalizes raw. beatmap may be nil. It never fails: fields that
// cannot be read degrade to null, NaN, false or the zero time.
func NewScore(opts Options, raw RawScore, beatmap BeatmapRef) *Score {
	num := numeric.For(opts.ParseNumeric)

	s := &Score{
		ID:    text(raw.ScoreID),
		Score: num.Parse(raw.Score),
		User: User{
			Name: text(raw.Username),
			ID:   text(raw.UserID),
		},
		Counts: HitCounts{
			N300: num.Parse(raw.Count300),
			N100: num.Parse(raw.Count100),
			N50:  num.Parse(raw.Count50),
			Geki: num.Parse(raw.CountGeki),
			Katu: num.Parse(raw.CountKatu),
			Miss: num.Parse(raw.CountMiss),
		},
		MaxCombo:  num.Parse(raw.MaxCombo),
		Perfect:   raw.Perfect.Is("1"),
		RawDate:   text(raw.Date),
		Rank:      text(raw.Rank),
		PP:        num.Parse(nullIfFalsy(raw.PP)),
		HasReplay: raw.ReplayAvailable.Is("1"),
		beatmap:   beatmap,
	}

	if raw.EnabledMods.Valid() {
		s.rawMods, s.modsValid = ParseMods(raw.EnabledMods.Text)
	}

	s.beatmapID = text(raw.BeatmapID)
	if s.beatmapID == "" && beatmap != nil {
		s.beatmapID = beatmap.BeatmapID()
	}

	return s
}

func text(r numeric.Raw) string {
	if !r.Valid() {
		return ""
	}
	return r.Text
}

// nullIfFalsy turns the API's "no value" spellings of pp into null.
func nullIfFalsy(r numeric.Raw) numeric.Raw {
	if !r.Valid() {
		return numeric.Raw{Type: numeric.Null}
	}
	switch r.Type {
	case numeric.String:
		if r.Text == "" || r.Text == "0" {
			return numeric.Raw{Type: numeric.Null}
		}
	case numeric.JSONNumber:
		if numeric.ParseFloat(r.Text) == 0 {
			return numeric.Raw{Type: numeric.Null}
		}
	case numeric.Bool:
		if r.Text == "false" {
			return numeric.Raw{Type: numeric.Null}
		}
	}
	return r
}

// RawMods returns the enabled_mods bitmask; ok is false when the wire value
// was missing or had no digits.
func (s *Score) RawMods() (Mods, bool) {
	return s.rawMods, s.modsValid
}

func (s *Score) BeatmapID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.beatmapID
}

func (s *Score) Beatmap() BeatmapRef {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.beatmap
}

// SetBeatmap links b and overwrites the beatmap id with b's. A previously
// computed accuracy is kept, even if b has a different mode.
func (s *Score) SetBeatmap(b BeatmapRef) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.beatmap = b
	if b != nil {
		s.beatmapID = b.BeatmapID()
	}
}

// PlayedAt parses the server timestamp as UTC. The zero time means the raw
// value could not be parsed.
func (s *Score) PlayedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.playedAt == nil {
		t := parseDate(s.RawDate)
		s.playedAt = &t
	}
	return *s.playedAt
}

var dateLayouts = []string{
	"2006-01-02 15:04:05 MST",
	"2006-01-02T15:04:05 MST",
	"2006-01-02 15:04 MST",
	"2006-01-02 MST",
}

func parseDate(raw string) time.Time {
	v := raw + " UTC"
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

// Mods returns a copy of the decoded modifier names in table order.
func (s *Score) Mods() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	mods := s.modsLocked()
	out := make([]string, len(mods))
	copy(out, mods)
	return out
}

func (s *Score) modsLocked() []string {
	if s.mods == nil {
		if s.modsValid {
			s.mods = s.rawMods.Names()
		} else {
			s.mods = []string{}
		}
	}
	return s.mods
}

// ModCodes returns the abbreviated modifiers, or NoMods.
func (s *Score) ModCodes() ModCodes {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.modCodes == nil {
		c := Abbreviate(s.modsLocked())
		s.modCodes = &c
	}
	return *s.modCodes
}

// Accuracy returns ok false when no beatmap is linked. Otherwise it applies
// the formula of the beatmap's mode and caches the result; an unknown mode
// is reported as ErrUnknownMode.
func (s *Score) Accuracy() (float64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.beatmap == nil {
		return 0, false, nil
	}
	if s.accuracy != nil {
		return *s.accuracy, true, nil
	}

	acc, err := Accuracy(s.beatmap.Mode(), s.Counts.Ints())
	if err != nil {
		return 0, false, err
	}
	s.accuracy = &acc
	return acc, true, nil
}
