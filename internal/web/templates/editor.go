package templates

import (
	"strconv"

	"github.com/Conceptual-Machines/wave-divider/internal/controller"
	"github.com/Conceptual-Machines/wave-divider/internal/presets"
	"github.com/Conceptual-Machines/wave-divider/internal/wave"
)

// EditorData is everything the editor page shows on first load. Later
// changes arrive over /api/events.
type EditorData struct {
	Snapshot controller.Snapshot
	Presets  []presets.Preset
	Markup   string
	Code     string
}

var positions = []wave.Position{wave.PositionTop, wave.PositionBottom}

type rangeControl struct {
	field    wave.Field
	label    string
	min, max float64
	step     float64
	value    float64
}

func ranges(p wave.Params) []rangeControl {
	return []rangeControl{
		{wave.FieldWidth, "Width", wave.MinWidth, wave.MaxWidth, 10, p.Width},
		{wave.FieldHeight, "Height", wave.MinHeight, wave.MaxHeight, 1, p.Height},
		{wave.FieldAmplitude, "Amplitude", wave.MinAmplitude, wave.MaxAmplitude, 1, p.Amplitude},
		{wave.FieldFrequency, "Frequency", wave.MinFrequency, wave.MaxFrequency, 0.5, p.Frequency},
		{wave.FieldLayers, "Layers", wave.MinLayers, wave.MaxLayers, 1, float64(p.Layers)},
		{wave.FieldOpacity, "Opacity", 0, 1, 0.05, p.Opacity},
		{wave.FieldSpeed, "Speed", wave.MinSpeed, wave.MaxSpeed, 1, p.Speed},
	}
}

type flagButton struct {
	flag wave.Flag
	on   bool
}

func flagButtons(f wave.Flags) []flagButton {
	return []flagButton{
		{wave.FlagFlip, f.Flip},
		{wave.FlagGradient, f.Gradient},
		{wave.FlagMirror, f.Mirror},
		{wave.FlagAnimate, f.Animate},
	}
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
