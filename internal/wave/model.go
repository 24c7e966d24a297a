package wave

import (
	"errors"
	"fmt"
)

// Flag is a boolean render modifier the user can toggle
type Flag string

const (
	FlagFlip     Flag = "flip"
	FlagGradient Flag = "gradient"
	FlagMirror   Flag = "mirror"
	FlagAnimate  Flag = "animate"
)

var ErrUnknownFlag = errors.New("unknown flag")

// Flags holds the boolean modifiers. Flip is derived from Position at render time.
type Flags struct {
	Flip     bool `json:"flip"`
	Gradient bool `json:"gradient"`
	Mirror   bool `json:"mirror"`
	Animate  bool `json:"animate"`
}

// DefaultFlags returns the flag set the page starts with
func DefaultFlags() Flags {
	return Flags{Animate: true}
}

func (f *Flags) ref(flag Flag) (*bool, error) {
	switch flag {
	case FlagFlip:
		return &f.Flip, nil
	case FlagGradient:
		return &f.Gradient, nil
	case FlagMirror:
		return &f.Mirror, nil
	case FlagAnimate:
		return &f.Animate, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownFlag, flag)
}

// Model is the single mutable source of truth for the current parameters.
// It is not safe for concurrent use; the controller serializes access.
type Model struct {
	params Params
	flags  Flags
}

// NewModel returns a model holding the default parameters and flags
func NewModel() *Model {
	return &Model{
		params: DefaultParams(),
		flags:  DefaultFlags(),
	}
}

// Set parses and stores a single field. Invalid input leaves the model unchanged.
func (m *Model) Set(field Field, value string) error {
	next, err := m.params.apply(field, value)
	if err != nil {
		return err
	}
	m.params = next
	if field == FieldPosition {
		m.DeriveFlip()
	}
	return nil
}

// Replace stores a complete parameter set after validating it
func (m *Model) Replace(p Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	m.params = p
	return nil
}

// Params returns a copy of the current parameters
func (m *Model) Params() Params {
	return m.params
}

// Flags returns a copy of the current flags
func (m *Model) Flags() Flags {
	return m.flags
}

// DeriveFlip forces flip on exactly when the divider sits at the top,
// overriding any manual toggle. Must run before the state is encoded.
func (m *Model) DeriveFlip() {
	m.flags.Flip = m.params.Position == PositionTop
}

// ToggleFlag inverts one flag and returns its new value
func (m *Model) ToggleFlag(flag Flag) (bool, error) {
	ref, err := m.flags.ref(flag)
	if err != nil {
		return false, err
	}
	*ref = !*ref
	return *ref, nil
}

// SetFlag stores an explicit value for one flag
func (m *Model) SetFlag(flag Flag, on bool) error {
	ref, err := m.flags.ref(flag)
	if err != nil {
		return err
	}
	*ref = on
	return nil
}

// ResetFlags clears flip, gradient and mirror and turns animation back on
func (m *Model) ResetFlags() {
	m.flags = DefaultFlags()
}

// Snapshot returns an immutable copy for downstream encoding
func (m *Model) Snapshot() State {
	return State{Params: m.params, Flags: m.flags}
}
