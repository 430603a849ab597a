package control

import (
	"fmt"

	"github.com/fennwald/huecore/internal/resource"
)

// Mirek bounds used when the target's own schema is unknown, e.g. for
// grouped targets. These are the widest values the bridge accepts.
const (
	mirekFloor   = 153
	mirekCeiling = 500
)

// State is a desired-state document for a light or grouped light. Nil
// fields are left untouched on the target; only set fields are sent.
type State struct {
	On           *bool
	Brightness   *float64
	Mirek        *int
	XY           *resource.XY
	TransitionMS *int
}

// Empty reports whether no field is set.
func (s State) Empty() bool {
	return s.On == nil && s.Brightness == nil && s.Mirek == nil &&
		s.XY == nil && s.TransitionMS == nil
}

// validate range-checks every set field against the given mirek schema
// (pass nil for targets whose schema is unknown). Invalid values are
// rejected with ErrOutOfRange; nothing is ever clamped.
func (s State) validate(schema *resource.MirekSchema) error {
	if s.Empty() {
		return ErrEmptyState
	}

	if s.Brightness != nil {
		if b := *s.Brightness; b < 0 || b > 100 {
			return fmt.Errorf("%w: brightness %.1f not in [0,100]", ErrOutOfRange, b)
		}
	}

	if s.Mirek != nil {
		lo, hi := mirekFloor, mirekCeiling
		if schema != nil {
			lo, hi = schema.MirekMinimum, schema.MirekMaximum
		}
		if m := *s.Mirek; m < lo || m > hi {
			return fmt.Errorf("%w: mirek %d not in [%d,%d]", ErrOutOfRange, m, lo, hi)
		}
	}

	if s.XY != nil {
		if x, y := s.XY.X, s.XY.Y; x < 0 || x > 1 || y < 0 || y > 1 {
			return fmt.Errorf("%w: xy (%.4f,%.4f) not in [0,1]x[0,1]", ErrOutOfRange, x, y)
		}
	}

	if s.TransitionMS != nil && *s.TransitionMS < 0 {
		return fmt.Errorf("%w: transition %dms negative", ErrOutOfRange, *s.TransitionMS)
	}

	return nil
}

// checkCapabilities rejects updates the light cannot honor. Only color and
// color temperature are gated; on/off and dimming requests against plain
// lights fail bridge-side with a descriptive error already.
func (s State) checkCapabilities(light *resource.Light) error {
	if s.Mirek != nil && light.ColorTemperature == nil {
		return fmt.Errorf("%w: light %s has no color_temperature", ErrUnsupported, light.ID)
	}
	if s.XY != nil && light.Color == nil {
		return fmt.Errorf("%w: light %s has no color", ErrUnsupported, light.ID)
	}
	return nil
}

// payload builds the partial CLIP v2 update document, containing exactly
// the set fields.
func (s State) payload() map[string]any {
	body := make(map[string]any, 4)

	if s.On != nil {
		body["on"] = map[string]any{"on": *s.On}
	}
	if s.Brightness != nil {
		body["dimming"] = map[string]any{"brightness": *s.Brightness}
	}
	if s.Mirek != nil {
		body["color_temperature"] = map[string]any{"mirek": *s.Mirek}
	}
	if s.XY != nil {
		body["color"] = map[string]any{
			"xy": map[string]any{"x": s.XY.X, "y": s.XY.Y},
		}
	}
	if s.TransitionMS != nil {
		body["dynamics"] = map[string]any{"duration": *s.TransitionMS}
	}

	return body
}
