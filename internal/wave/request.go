package wave

import (
	"net/url"
	"strconv"
	"strings"
)

// RenderPath is the renderer endpoint that serves wave SVGs
const RenderPath = "/wave"

// State is an immutable snapshot of parameters and flags
type State struct {
	Params Params `json:"params"`
	Flags  Flags  `json:"flags"`
}

// Query encodes the state as the renderer's query string.
// Keys keep a fixed order so identical states always encode identically.
func (s State) Query() string {
	p := s.Params
	pairs := [][2]string{
		{"type", string(p.Type)},
		{"width", formatNumber(p.Width)},
		{"height", formatNumber(p.Height)},
		{"amplitude", formatNumber(p.Amplitude)},
		{"frequency", formatNumber(p.Frequency)},
		{"layers", strconv.Itoa(p.Layers)},
		{"color_top", strings.TrimPrefix(p.ColorTop, "#")},
		{"color_bottom", strings.TrimPrefix(p.ColorBottom, "#")},
		{"opacity", formatNumber(p.Opacity)},
		{"flip", strconv.FormatBool(s.Flags.Flip)},
		{"gradient", strconv.FormatBool(s.Flags.Gradient)},
		{"mirror", strconv.FormatBool(s.Flags.Mirror)},
		{"animate", strconv.FormatBool(s.Flags.Animate)},
		{"speed", formatNumber(p.Speed)},
	}

	var b strings.Builder
	for i, kv := range pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(kv[0])
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(kv[1]))
	}
	return b.String()
}

// RequestPath returns the renderer path plus encoded query, e.g. /wave?type=smooth&...
func (s State) RequestPath() string {
	return RenderPath + "?" + s.Query()
}

// formatNumber writes the shortest decimal form: 25 -> "25", 1.5 -> "1.5"
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
