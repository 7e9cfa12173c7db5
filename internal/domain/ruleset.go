package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Mode is the game mode (ruleset) a beatmap is played in.
type Mode int

const (
	ModeStandard Mode = iota
	ModeTaiko
	ModeCatch
	ModeMania
)

var modeNames = map[Mode]string{
	ModeStandard: "Standard",
	ModeTaiko:    "Taiko",
	ModeCatch:    "Catch the Beat",
	ModeMania:    "Mania",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode accepts the API's numeric mode ("0".."3") or a mode name.
// Unrecognized numbers are returned as-is with ok false so that callers can
// keep them around; anything else is Mode(-1).
func ParseMode(s string) (Mode, bool) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		_, ok := modeNames[Mode(n)]
		return Mode(n), ok
	}
	for m, name := range modeNames {
		if strings.EqualFold(name, s) {
			return m, true
		}
	}
	switch strings.ToLower(s) {
	case "osu", "std":
		return ModeStandard, true
	case "fruits", "catch", "ctb":
		return ModeCatch, true
	}
	return Mode(-1), false
}

// IntCounts holds hit counts re-parsed as integers. Unparsable counts are NaN.
type IntCounts struct {
	N300 float64
	N100 float64
	N50  float64
	Geki float64
	Katu float64
	Miss float64
}

// AccuracyFunc computes a 0..1 accuracy from hit counts.
type AccuracyFunc func(c IntCounts) float64

var ErrUnknownMode = errors.New("unknown game mode")

var rulesets = map[Mode]AccuracyFunc{
	ModeStandard: func(c IntCounts) float64 {
		return (c.N300*300 + c.N100*100 + c.N50*50) /
			((c.N300 + c.N100 + c.N50 + c.Miss) * 300)
	},
	ModeTaiko: func(c IntCounts) float64 {
		return (c.N300 + c.N100*0.5) / (c.N300 + c.N100 + c.Miss)
	},
	ModeCatch: func(c IntCounts) float64 {
		return (c.N300 + c.N100 + c.N50) / (c.N300 + c.N100 + c.N50 + c.Katu + c.Miss)
	},
	ModeMania: func(c IntCounts) float64 {
		return ((c.N300+c.Geki)*300 + c.Katu*200 + c.N100*100 + c.N50*50) /
			((c.N300 + c.Geki + c.Katu + c.N100 + c.N50 + c.Miss) * 300)
	},
}

// Accuracy dispatches to the formula for mode. Zero totals give NaN.
func Accuracy(mode Mode, c IntCounts) (float64, error) {
	fn, ok := rulesets[mode]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownMode, mode)
	}
	return fn(c), nil
}
