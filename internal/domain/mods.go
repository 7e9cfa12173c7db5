package domain

import (
	"encoding/json"
	"math"
	"strings"

	"osu-score/internal/numeric"
)

// Mods is the enabled_mods bitmask.
type Mods uint32

const (
	None        Mods = 0
	NoFail      Mods = 1
	Easy        Mods = 2
	TouchDevice Mods = 4
	Hidden      Mods = 8
	HardRock    Mods = 16
	SuddenDeath Mods = 32
	DoubleTime  Mods = 64
	Relax       Mods = 128
	HalfTime    Mods = 256
	Nightcore   Mods = 512 // always set together with DoubleTime
	Flashlight  Mods = 1024
	Autoplay    Mods = 2048
	SpunOut     Mods = 4096
	Relax2      Mods = 8192  // autopilot
	Perfect     Mods = 16384 // always set together with SuddenDeath
	Key4        Mods = 32768
	Key5        Mods = 65536
	Key6        Mods = 131072
	Key7        Mods = 262144
	Key8        Mods = 524288
	FadeIn      Mods = 1048576
	Random      Mods = 2097152
	Cinema      Mods = 4194304
	Target      Mods = 8388608
	Key9        Mods = 16777216
	KeyCoop     Mods = 33554432
	Key1        Mods = 67108864
	Key3        Mods = 134217728
	Key2        Mods = 268435456
	ScoreV2     Mods = 536870912
	Mirror      Mods = 1073741824

	KeyMod            = Key1 | Key2 | Key3 | Key4 | Key5 | Key6 | Key7 | Key8 | Key9 | KeyCoop
	FreeModAllowed    = NoFail | Easy | Hidden | HardRock | SuddenDeath | Flashlight | FadeIn | Relax | Relax2 | SpunOut | KeyMod
	ScoreIncreaseMods = Hidden | HardRock | DoubleTime | Flashlight | FadeIn
)

type modEntry struct {
	name string
	bit  Mods
	code string // "" for flags that are never displayed
}

// modTable is walked in this order when decoding. Composite masks come last
// and match whenever any of their bits is set.
var modTable = [...]modEntry{
	{"None", None, ""},
	{"NoFail", NoFail, "NF"},
	{"Easy", Easy, "EZ"},
	{"TouchDevice", TouchDevice, ""},
	{"Hidden", Hidden, "HD"},
	{"HardRock", HardRock, "HR"},
	{"SuddenDeath", SuddenDeath, "SD"},
	{"DoubleTime", DoubleTime, "DT"},
	{"Relax", Relax, "RX"},
	{"HalfTime", HalfTime, "HT"},
	{"Nightcore", Nightcore, "NC"},
	{"Flashlight", Flashlight, "FL"},
	{"Autoplay", Autoplay, "AT"},
	{"SpunOut", SpunOut, "SO"},
	{"Relax2", Relax2, "AP"},
	{"Perfect", Perfect, "PF"},
	{"Key4", Key4, "4K"},
	{"Key5", Key5, "5K"},
	{"Key6", Key6, "6K"},
	{"Key7", Key7, "7K"},
	{"Key8", Key8, "8K"},
	{"FadeIn", FadeIn, "FI"},
	{"Random", Random, "RD"},
	{"Cinema", Cinema, "CN"},
	{"Target", Target, "TP"},
	{"Key9", Key9, "9K"},
	{"KeyCoop", KeyCoop, "CO"},
	{"Key1", Key1, "1K"},
	{"Key3", Key3, "3K"},
	{"Key2", Key2, "2K"},
	{"ScoreV2", ScoreV2, "ScoreV2"},
	{"Mirror", Mirror, "MR"},
	{"KeyMod", KeyMod, ""},
	{"FreeModAllowed", FreeModAllowed, ""},
	{"ScoreIncreaseMods", ScoreIncreaseMods, ""},
}

var modCodes = func() map[string]string {
	m := make(map[string]string, len(modTable))
	for _, e := range modTable {
		m[e.name] = e.code
	}
	return m
}()

// ModNames lists every modifier name in table order.
func ModNames() []string {
	names := make([]string, len(modTable))
	for i, e := range modTable {
		names[i] = e.name
	}
	return names
}

// ModBit returns the bit (or mask) registered for name.
func ModBit(name string) (Mods, bool) {
	for _, e := range modTable {
		if e.name == name {
			return e.bit, true
		}
	}
	return 0, false
}

// ParseMods reads a base-10 enabled_mods value. Leading digits are used and
// trailing garbage is ignored; ok is false when there are no digits at all.
// Values outside 32 bits wrap.
func ParseMods(s string) (Mods, bool) {
	f := numeric.ParseInt(s)
	if math.IsNaN(f) {
		return 0, false
	}
	m := math.Mod(math.Trunc(f), 1<<32)
	if m < 0 {
		m += 1 << 32
	}
	return Mods(uint32(m)), true
}

// Has reports whether any bit of flag is set.
func (m Mods) Has(flag Mods) bool {
	return m&flag != 0
}

// Names is DecodeMods(m).
func (m Mods) Names() []string {
	return DecodeMods(m)
}

// DecodeMods returns the name of every table entry with a bit set in m,
// in table order.
func DecodeMods(m Mods) []string {
	names := []string{}
	for _, e := range modTable {
		if m.Has(e.bit) {
			names = append(names, e.name)
		}
	}
	return names
}

// ModCodes is an ordered list of display codes. The zero value is NoMods.
type ModCodes struct {
	codes []string
}

// NoMods is returned by Abbreviate when nothing displayable is left.
var NoMods = ModCodes{}

func (c ModCodes) IsEmpty() bool { return len(c.codes) == 0 }

func (c ModCodes) Len() int { return len(c.codes) }

// Slice returns a copy of the codes, nil for NoMods.
func (c ModCodes) Slice() []string {
	if c.IsEmpty() {
		return nil
	}
	out := make([]string, len(c.codes))
	copy(out, c.codes)
	return out
}

// String joins the codes, e.g. "HDHR". NoMods is "".
func (c ModCodes) String() string {
	return strings.Join(c.codes, "")
}

func (c ModCodes) MarshalJSON() ([]byte, error) {
	v, _ := c.MarshalYAML()
	return json.Marshal(v)
}

func (c ModCodes) MarshalYAML() (any, error) {
	if c.IsEmpty() {
		return []string{}, nil
	}
	return c.codes, nil
}

// Abbreviate maps decoded modifier names to display codes, dropping the
// cosmetic flags. Unknown names are kept as they are.
func Abbreviate(names []string) ModCodes {
	var codes []string
	for _, name := range names {
		code, ok := modCodes[name]
		if !ok {
			code = name
		}
		if code != "" {
			codes = append(codes, code)
		}
	}
	if len(codes) == 0 {
		return NoMods
	}
	return ModCodes{codes: codes}
}
