package presets

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/Conceptual-Machines/wave-divider/internal/preview"
	"github.com/Conceptual-Machines/wave-divider/internal/wave"
)

// Palette is a pair of background (top) and wave (bottom) colors
type Palette struct {
	Top    string `json:"top"`
	Bottom string `json:"bottom"`
}

// Palettes is the fixed catalog random presets draw their colors from
var Palettes = []Palette{
	{"0d1117", "161b22"}, {"0a1628", "0f3460"}, {"1a0a2e", "f72585"},
	{"0a1a0d", "1a4a22"}, {"0f0f0f", "222222"}, {"f0f0f0", "ffffff"},
	{"020010", "0d0030"}, {"111827", "1f2937"}, {"001219", "005f73"},
	{"3c096c", "ff6d00"}, {"14213d", "fca311"}, {"10002b", "240046"},
}

// Generated value domains
const (
	MinAmplitude  = 10
	MaxAmplitude  = 35
	MinFrequency  = 0.5
	MaxFrequency  = 3.0
	FrequencyStep = 0.5
	MinLayers     = 1
	MaxLayers     = 3
)

const frequencySteps = int((MaxFrequency - MinFrequency) / FrequencyStep)

// Preset is an immutable parameter bundle with its precomputed thumbnail
type Preset struct {
	Label     string    `json:"label"`
	Type      wave.Type `json:"type"`
	ColorTop  string    `json:"ct"`
	ColorBot  string    `json:"cb"`
	Amplitude float64   `json:"amp"`
	Frequency float64   `json:"freq"`
	Layers    int       `json:"layers"`
	Flip      bool      `json:"flip"`
	Thumbnail string    `json:"thumbnail"`
}

// NewSource returns the random source for catalog generation. A zero seed is
// replaced with one taken from the clock; the seed actually used is returned
// so the catalog can be reproduced.
func NewSource(seed int64) (*rand.Rand, int64) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed)), seed
}

// Generate builds count presets. Palettes are shuffled once and reused
// cyclically, so no two presets share a palette while count <= len(Palettes).
func Generate(count int, rng *rand.Rand) []Preset {
	palettes := make([]Palette, len(Palettes))
	copy(palettes, Palettes)
	rng.Shuffle(len(palettes), func(i, j int) {
		palettes[i], palettes[j] = palettes[j], palettes[i]
	})

	if count < 0 {
		count = 0
	}
	presets := make([]Preset, 0, count)
	for i := 0; i < count; i++ {
		pal := palettes[i%len(palettes)]
		p := Preset{
			Label:     fmt.Sprintf("Random %d", i+1),
			Type:      wave.Types[between(rng, 0, len(wave.Types)-1)],
			ColorTop:  pal.Top,
			ColorBot:  pal.Bottom,
			Amplitude: float64(between(rng, MinAmplitude, MaxAmplitude)),
			Frequency: MinFrequency + float64(between(rng, 0, frequencySteps))*FrequencyStep,
			Layers:    between(rng, MinLayers, MaxLayers),
			Flip:      rng.Intn(2) == 1,
		}
		p.Thumbnail = preview.Thumbnail(preview.Input{
			Amplitude:   p.Amplitude,
			Frequency:   p.Frequency,
			Flip:        p.Flip,
			ColorTop:    p.ColorTop,
			ColorBottom: p.ColorBot,
		})
		presets = append(presets, p)
	}

	return presets
}

// between draws an integer uniformly from [lo, hi]
func between(rng *rand.Rand, lo, hi int) int {
	return lo + rng.Intn(hi-lo+1)
}

// ApplyTo overwrites the model with the preset. Flags are reset, then flip is
// reapplied when the preset asks for it. Position follows flip so that the
// next flip derivation agrees with the preset.
func (p Preset) ApplyTo(m *wave.Model) error {
	params := m.Params()
	params.Type = p.Type
	params.Position = wave.PositionBottom
	if p.Flip {
		params.Position = wave.PositionTop
	}
	params.Amplitude = p.Amplitude
	params.Frequency = p.Frequency
	params.Layers = p.Layers
	params.ColorTop = p.ColorTop
	params.ColorBottom = p.ColorBot

	if err := m.Replace(params); err != nil {
		return fmt.Errorf("apply preset %q: %w", p.Label, err)
	}

	m.ResetFlags()
	if p.Flip {
		return m.SetFlag(wave.FlagFlip, true)
	}
	return nil
}
