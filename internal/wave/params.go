package wave

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Type selects the curve family the renderer draws
type Type string

const (
	TypeSmooth Type = "smooth"
	TypeSine   Type = "sine"
	TypeBump   Type = "bump"
	TypeZigzag Type = "zigzag"
)

// Types lists every supported wave type, in the order the UI offers them
var Types = []Type{TypeSmooth, TypeSine, TypeBump, TypeZigzag}

// Position is the side of the section the divider sits on
type Position string

const (
	PositionTop    Position = "top"
	PositionBottom Position = "bottom"
)

// Field names a settable parameter. The values double as form input names.
type Field string

const (
	FieldType        Field = "type"
	FieldPosition    Field = "position"
	FieldWidth       Field = "width"
	FieldHeight      Field = "height"
	FieldAmplitude   Field = "amplitude"
	FieldFrequency   Field = "frequency"
	FieldLayers      Field = "layers"
	FieldColorTop    Field = "color_top"
	FieldColorBottom Field = "color_bottom"
	FieldOpacity     Field = "opacity"
	FieldSpeed       Field = "speed"
)

// Input widget bounds. They match what the renderer clamps to.
const (
	MinWidth     = 200
	MaxWidth     = 2400
	MinHeight    = 20
	MaxHeight    = 200
	MinAmplitude = 1
	MaxAmplitude = 100
	MinFrequency = 0.5
	MaxFrequency = 8
	MinLayers    = 1
	MaxLayers    = 3
	MinSpeed     = 1
	MaxSpeed     = 20
)

var (
	ErrInvalidColor = errors.New("color must be a 6-digit hex value")
	ErrInvalidValue = errors.New("invalid parameter value")
	ErrUnknownField = errors.New("unknown parameter")
)

var hexColorPattern = regexp.MustCompile(`^[0-9a-fA-F]{6}$`)

// Params is the full set of shape parameters sent to the renderer
type Params struct {
	Type        Type     `json:"type"`
	Position    Position `json:"position"`
	Width       float64  `json:"width"`
	Height      float64  `json:"height"`
	Amplitude   float64  `json:"amplitude"`
	Frequency   float64  `json:"frequency"`
	Layers      int      `json:"layers"`
	ColorTop    string   `json:"color_top"`
	ColorBottom string   `json:"color_bottom"`
	Opacity     float64  `json:"opacity"`
	Speed       float64  `json:"speed"`
}

// DefaultParams returns the parameters the page starts with
func DefaultParams() Params {
	return Params{
		Type:        TypeSmooth,
		Position:    PositionBottom,
		Width:       1200,
		Height:      80,
		Amplitude:   20,
		Frequency:   1,
		Layers:      1,
		ColorTop:    "0d1117",
		ColorBottom: "161b22",
		Opacity:     1,
		Speed:       6,
	}
}

// Validate checks every field against its domain
func (p Params) Validate() error {
	if !validType(p.Type) {
		return fmt.Errorf("%w: type %q", ErrInvalidValue, p.Type)
	}
	if p.Position != PositionTop && p.Position != PositionBottom {
		return fmt.Errorf("%w: position %q", ErrInvalidValue, p.Position)
	}
	checks := []struct {
		field    Field
		v        float64
		min, max float64
	}{
		{FieldWidth, p.Width, MinWidth, MaxWidth},
		{FieldHeight, p.Height, MinHeight, MaxHeight},
		{FieldAmplitude, p.Amplitude, MinAmplitude, MaxAmplitude},
		{FieldFrequency, p.Frequency, MinFrequency, MaxFrequency},
		{FieldLayers, float64(p.Layers), MinLayers, MaxLayers},
		{FieldOpacity, p.Opacity, 0, 1},
		{FieldSpeed, p.Speed, MinSpeed, MaxSpeed},
	}
	for _, c := range checks {
		if math.IsNaN(c.v) || math.IsInf(c.v, 0) {
			return fmt.Errorf("%w: %s=%v is not a finite number", ErrInvalidValue, c.field, c.v)
		}
		if c.v < c.min || c.v > c.max {
			return fmt.Errorf("%w: %s=%v outside [%v,%v]", ErrInvalidValue, c.field, c.v, c.min, c.max)
		}
	}
	if !hexColorPattern.MatchString(p.ColorTop) || !hexColorPattern.MatchString(p.ColorBottom) {
		return ErrInvalidColor
	}
	return nil
}

// NormalizeColor strips an optional leading '#' and validates the remaining 6 hex digits
func NormalizeColor(value string) (string, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(value), "#")
	if !hexColorPattern.MatchString(hex) {
		return "", fmt.Errorf("%w: %q", ErrInvalidColor, value)
	}
	return hex, nil
}

func validType(t Type) bool {
	for _, known := range Types {
		if t == known {
			return true
		}
	}
	return false
}

// apply parses value into field on a copy of p
func (p Params) apply(field Field, value string) (Params, error) {
	value = strings.TrimSpace(value)

	switch field {
	case FieldType:
		p.Type = Type(value)
	case FieldPosition:
		p.Position = Position(value)
	case FieldColorTop, FieldColorBottom:
		hex, err := NormalizeColor(value)
		if err != nil {
			return p, err
		}
		if field == FieldColorTop {
			p.ColorTop = hex
		} else {
			p.ColorBottom = hex
		}
	case FieldLayers:
		n, err := strconv.Atoi(value)
		if err != nil {
			return p, fmt.Errorf("%w: layers=%q", ErrInvalidValue, value)
		}
		p.Layers = n
	case FieldWidth, FieldHeight, FieldAmplitude, FieldFrequency, FieldOpacity, FieldSpeed:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return p, fmt.Errorf("%w: %s=%q", ErrInvalidValue, field, value)
		}
		*p.numberField(field) = f
	default:
		return p, fmt.Errorf("%w: %s", ErrUnknownField, field)
	}

	return p, p.Validate()
}

func (p *Params) numberField(field Field) *float64 {
	switch field {
	case FieldWidth:
		return &p.Width
	case FieldHeight:
		return &p.Height
	case FieldAmplitude:
		return &p.Amplitude
	case FieldFrequency:
		return &p.Frequency
	case FieldOpacity:
		return &p.Opacity
	default:
		return &p.Speed
	}
}
