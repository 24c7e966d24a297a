package wave

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewModelDefaults(t *testing.T) {
	m := NewModel()

	assert.Equal(t, DefaultParams(), m.Params())
	assert.Equal(t, Flags{Animate: true}, m.Flags())
	require.NoError(t, m.Params().Validate())
}

func TestSetColor(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
		err   bool
	}{
		{"plain hex", "ff6d00", "ff6d00", false},
		{"leading hash stripped", "#14213D", "14213D", false},
		{"too short", "fff", "0d1117", true},
		{"not hex", "zzzzzz", "0d1117", true},
		{"too long", "1234567", "0d1117", true},
		{"empty", "", "0d1117", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewModel()
			err := m.Set(FieldColorTop, tt.value)
			if tt.err {
				assert.ErrorIs(t, err, ErrInvalidColor)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, m.Params().ColorTop)
		})
	}
}

func TestSetRejectsInvalidValues(t *testing.T) {
	m := NewModel()
	before := m.Params()

	assert.ErrorIs(t, m.Set(FieldAmplitude, "loud"), ErrInvalidValue)
	assert.ErrorIs(t, m.Set(FieldLayers, "4"), ErrInvalidValue)
	assert.ErrorIs(t, m.Set(FieldOpacity, "1.5"), ErrInvalidValue)
	assert.ErrorIs(t, m.Set(FieldType, "triangle"), ErrInvalidValue)
	assert.ErrorIs(t, m.Set(FieldPosition, "left"), ErrInvalidValue)
	assert.ErrorIs(t, m.Set(Field("colour"), "1"), ErrUnknownField)

	for _, field := range []Field{FieldWidth, FieldHeight, FieldAmplitude, FieldFrequency, FieldOpacity, FieldSpeed} {
		for _, v := range []string{"NaN", "nan", "Inf", "-Inf", "+inf"} {
			assert.ErrorIs(t, m.Set(field, v), ErrInvalidValue, "%s=%s", field, v)
		}
	}

	_, err := json.Marshal(m.Snapshot())
	assert.NoError(t, err)
	assert.NotContains(t, m.Snapshot().Query(), "NaN")

	assert.Equal(t, before, m.Params())
}

func TestSetNumbers(t *testing.T) {
	m := NewModel()

	require.NoError(t, m.Set(FieldAmplitude, "25"))
	require.NoError(t, m.Set(FieldFrequency, "1.5"))
	require.NoError(t, m.Set(FieldLayers, "3"))
	require.NoError(t, m.Set(FieldWidth, " 800 "))

	p := m.Params()
	assert.Equal(t, 25.0, p.Amplitude)
	assert.Equal(t, 1.5, p.Frequency)
	assert.Equal(t, 3, p.Layers)
	assert.Equal(t, 800.0, p.Width)
}

func TestFlipFollowsPosition(t *testing.T) {
	m := NewModel()

	require.NoError(t, m.Set(FieldPosition, "top"))
	assert.True(t, m.Flags().Flip)

	// A manual toggle is overridden on the next derivation
	on, err := m.ToggleFlag(FlagFlip)
	require.NoError(t, err)
	assert.False(t, on)
	m.DeriveFlip()
	assert.True(t, m.Flags().Flip)

	require.NoError(t, m.Set(FieldPosition, "bottom"))
	assert.False(t, m.Flags().Flip)

	_, err = m.ToggleFlag(FlagFlip)
	require.NoError(t, err)
	m.DeriveFlip()
	assert.False(t, m.Flags().Flip)
}

func TestToggleAndResetFlags(t *testing.T) {
	m := NewModel()

	on, err := m.ToggleFlag(FlagGradient)
	require.NoError(t, err)
	assert.True(t, on)
	on, err = m.ToggleFlag(FlagAnimate)
	require.NoError(t, err)
	assert.False(t, on)
	require.NoError(t, m.SetFlag(FlagMirror, true))

	_, err = m.ToggleFlag(Flag("sparkle"))
	assert.ErrorIs(t, err, ErrUnknownFlag)

	m.ResetFlags()
	assert.Equal(t, Flags{Animate: true}, m.Flags())
}

func TestReplaceValidates(t *testing.T) {
	m := NewModel()

	p := m.Params()
	p.Layers = 0
	assert.Error(t, m.Replace(p))
	assert.Equal(t, 1, m.Params().Layers)

	p.Layers = 2
	require.NoError(t, m.Replace(p))
	assert.Equal(t, 2, m.Params().Layers)
}

func TestQueryDefaults(t *testing.T) {
	q := NewModel().Snapshot().Query()

	assert.Equal(t,
		"type=smooth&width=1200&height=80&amplitude=20&frequency=1&layers=1"+
			"&color_top=0d1117&color_bottom=161b22&opacity=1"+
			"&flip=false&gradient=false&mirror=false&animate=true&speed=6",
		q)
}

func TestQueryFlipMatchesPosition(t *testing.T) {
	for _, pos := range []string{"top", "bottom"} {
		for _, manual := range []bool{true, false} {
			m := NewModel()
			require.NoError(t, m.Set(FieldPosition, pos))
			require.NoError(t, m.SetFlag(FlagFlip, manual))

			m.DeriveFlip()
			q := m.Snapshot().Query()

			assert.Equal(t, pos == "top", strings.Contains(q, "flip=true"), "position=%s manual=%v", pos, manual)
		}
	}
}

func TestRequestPath(t *testing.T) {
	m := NewModel()
	require.NoError(t, m.Set(FieldAmplitude, "25"))
	require.NoError(t, m.Set(FieldFrequency, "1.5"))

	path := m.Snapshot().RequestPath()

	assert.True(t, strings.HasPrefix(path, "/wave?type=smooth&"))
	assert.Contains(t, path, "&amplitude=25&frequency=1.5&")
}
