package presets

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/Conceptual-Machines/wave-divider/internal/preview"
	"github.com/Conceptual-Machines/wave-divider/internal/wave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDomains(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		presets := Generate(4, rand.New(rand.NewSource(seed)))
		require.Len(t, presets, 4)

		seen := map[Palette]bool{}
		for i, p := range presets {
			assert.Equal(t, fmt.Sprintf("Random %d", i+1), p.Label)
			assert.Contains(t, wave.Types, p.Type)

			assert.GreaterOrEqual(t, p.Amplitude, 10.0)
			assert.LessOrEqual(t, p.Amplitude, 35.0)
			assert.Equal(t, math.Trunc(p.Amplitude), p.Amplitude, "amplitude must be an integer")

			assert.Contains(t, []float64{0.5, 1, 1.5, 2, 2.5, 3}, p.Frequency)
			assert.Contains(t, []int{1, 2, 3}, p.Layers)

			pal := Palette{Top: p.ColorTop, Bottom: p.ColorBot}
			assert.Contains(t, Palettes, pal)
			assert.False(t, seen[pal], "seed %d reused palette %v", seed, pal)
			seen[pal] = true
		}
	}
}

func TestGenerateAllPalettesBeforeRepeating(t *testing.T) {
	presets := Generate(len(Palettes)*2, rand.New(rand.NewSource(7)))

	seen := map[Palette]bool{}
	for i := 0; i < len(Palettes); i++ {
		seen[Palette{presets[i].ColorTop, presets[i].ColorBot}] = true
	}
	assert.Len(t, seen, len(Palettes))

	// The second pass reuses the same shuffled order
	for i := len(Palettes); i < len(presets); i++ {
		prev := presets[i-len(Palettes)]
		assert.Equal(t, prev.ColorTop, presets[i].ColorTop)
		assert.Equal(t, prev.ColorBot, presets[i].ColorBot)
	}
}

func TestGenerateReproducibleWithSeed(t *testing.T) {
	a := Generate(6, rand.New(rand.NewSource(99)))
	b := Generate(6, rand.New(rand.NewSource(99)))

	assert.Equal(t, a, b)
}

func TestGenerateDoesNotMutateCatalog(t *testing.T) {
	before := make([]Palette, len(Palettes))
	copy(before, Palettes)

	Generate(4, rand.New(rand.NewSource(3)))

	assert.Equal(t, before, Palettes)
}

func TestGenerateEmpty(t *testing.T) {
	assert.Empty(t, Generate(0, rand.New(rand.NewSource(1))))
	assert.Empty(t, Generate(-2, rand.New(rand.NewSource(1))))
}

func TestThumbnailMatchesPreset(t *testing.T) {
	for _, p := range Generate(4, rand.New(rand.NewSource(11))) {
		want := preview.Thumbnail(preview.Input{
			Amplitude:   p.Amplitude,
			Frequency:   p.Frequency,
			Flip:        p.Flip,
			ColorTop:    p.ColorTop,
			ColorBottom: p.ColorBot,
		})
		assert.Equal(t, want, p.Thumbnail)
	}
}

func TestNewSource(t *testing.T) {
	rng, seed := NewSource(42)
	assert.Equal(t, int64(42), seed)
	assert.Equal(t, rand.New(rand.NewSource(42)).Int63(), rng.Int63())

	_, seed = NewSource(0)
	assert.NotZero(t, seed)
}

func TestApplyTo(t *testing.T) {
	m := wave.NewModel()
	require.NoError(t, m.SetFlag(wave.FlagGradient, true))
	require.NoError(t, m.SetFlag(wave.FlagMirror, true))
	require.NoError(t, m.SetFlag(wave.FlagAnimate, false))
	require.NoError(t, m.Set(wave.FieldOpacity, "0.5"))

	p := Preset{
		Label: "Random 1", Type: wave.TypeZigzag,
		ColorTop: "3c096c", ColorBot: "ff6d00",
		Amplitude: 30, Frequency: 2.5, Layers: 2, Flip: true,
	}
	require.NoError(t, p.ApplyTo(m))

	params := m.Params()
	assert.Equal(t, wave.TypeZigzag, params.Type)
	assert.Equal(t, wave.PositionTop, params.Position)
	assert.Equal(t, 30.0, params.Amplitude)
	assert.Equal(t, 2.5, params.Frequency)
	assert.Equal(t, 2, params.Layers)
	assert.Equal(t, "3c096c", params.ColorTop)
	assert.Equal(t, "ff6d00", params.ColorBottom)
	assert.Equal(t, 0.5, params.Opacity, "fields the preset does not name are kept")

	assert.Equal(t, wave.Flags{Flip: true, Animate: true}, m.Flags())
}

func TestApplyToWithoutFlip(t *testing.T) {
	m := wave.NewModel()
	require.NoError(t, m.Set(wave.FieldPosition, "top"))

	p := Preset{Type: wave.TypeSine, ColorTop: "0d1117", ColorBot: "161b22", Amplitude: 10, Frequency: 0.5, Layers: 1}
	require.NoError(t, p.ApplyTo(m))

	assert.Equal(t, wave.PositionBottom, m.Params().Position)
	assert.Equal(t, wave.Flags{Animate: true}, m.Flags())
}
