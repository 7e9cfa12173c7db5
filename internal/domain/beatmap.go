package domain

// BeatmapRef is the part of a beatmap a score needs.
type BeatmapRef interface {
	BeatmapID() string
	Mode() Mode
}

type Beatmap struct {
	ID       string
	SetID    string
	PlayMode Mode
	Artist   string
	Title    string
	Version  string // difficulty name
	Creator  string
}

func (b *Beatmap) BeatmapID() string { return b.ID }

func (b *Beatmap) Mode() Mode { return b.PlayMode }
