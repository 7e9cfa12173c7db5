package api

import (
	"errors"
	"fmt"

	"osu-score/internal/domain"
	"osu-score/internal/numeric"

	"github.com/tidwall/gjson"
)

var ErrInvalidPayload = errors.New("invalid payload")

// ParseScores decodes a get_scores / get_user_best / get_user_recent body.
// A single score object is accepted as a one-element list.
func ParseScores(body []byte) ([]domain.RawScore, error) {
	items, err := parseList(body)
	if err != nil {
		return nil, err
	}

	scores := make([]domain.RawScore, 0, len(items))
	for _, item := range items {
		scores = append(scores, ScoreFromJSON(item))
	}
	return scores, nil
}

// ParseBeatmaps decodes a get_beatmaps body.
func ParseBeatmaps(body []byte) ([]domain.Beatmap, error) {
	items, err := parseList(body)
	if err != nil {
		return nil, err
	}

	beatmaps := make([]domain.Beatmap, 0, len(items))
	for i, item := range items {
		id := item.Get("beatmap_id").String()
		if id == "" {
			return nil, fmt.Errorf("%w: beatmap %d has no beatmap_id", ErrInvalidPayload, i)
		}
		mode, _ := domain.ParseMode(item.Get("mode").String())
		beatmaps = append(beatmaps, domain.Beatmap{
			ID:       id,
			SetID:    item.Get("beatmapset_id").String(),
			PlayMode: mode,
			Artist:   item.Get("artist").String(),
			Title:    item.Get("title").String(),
			Version:  item.Get("version").String(),
			Creator:  item.Get("creator").String(),
		})
	}
	return beatmaps, nil
}

func parseList(body []byte) ([]gjson.Result, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidPayload)
	}

	root := gjson.ParseBytes(body)
	switch {
	case root.IsArray():
		return root.Array(), nil
	case root.IsObject():
		return []gjson.Result{root}, nil
	default:
		return nil, fmt.Errorf("%w: expected an array or object, got %s", ErrInvalidPayload, root.Type)
	}
}

// ScoreFromJSON reads a single score object.
func ScoreFromJSON(v gjson.Result) domain.RawScore {
	return domain.RawScore{
		ScoreID:         field(v, "score_id"),
		Score:           field(v, "score"),
		Username:        field(v, "username"),
		UserID:          field(v, "user_id"),
		BeatmapID:       field(v, "beatmap_id"),
		Count300:        field(v, "count300"),
		Count100:        field(v, "count100"),
		Count50:         field(v, "count50"),
		CountGeki:       field(v, "countgeki"),
		CountKatu:       field(v, "countkatu"),
		CountMiss:       field(v, "countmiss"),
		MaxCombo:        field(v, "maxcombo"),
		Perfect:         field(v, "perfect"),
		Date:            field(v, "date"),
		Rank:            field(v, "rank"),
		PP:              field(v, "pp"),
		ReplayAvailable: field(v, "replay_available"),
		EnabledMods:     field(v, "enabled_mods"),
	}
}

func field(v gjson.Result, key string) numeric.Raw {
	r := v.Get(key)
	if !r.Exists() {
		return numeric.Raw{Type: numeric.Absent}
	}

	switch r.Type {
	case gjson.Null:
		return numeric.Raw{Type: numeric.Null}
	case gjson.String:
		return numeric.Raw{Text: r.Str, Type: numeric.String}
	case gjson.Number:
		return numeric.Raw{Text: r.Raw, Type: numeric.JSONNumber}
	case gjson.True, gjson.False:
		return numeric.Raw{Text: r.Raw, Type: numeric.Bool}
	default:
		return numeric.Raw{Text: r.Raw, Type: numeric.Other}
	}
}
