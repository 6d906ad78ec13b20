package ring

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/philipparndt/goring/pkg/geometry"
	"github.com/philipparndt/goring/pkg/physics"
)

// AnchorMode selects where the ring is placed
type AnchorMode int

const (
	// AnchorSelf centers the ring on the host collider's bounds
	AnchorSelf AnchorMode = iota
	// AnchorCustom places the ring at a designated anchor point
	AnchorCustom
)

// String returns the lower case name of the mode
func (m AnchorMode) String() string {
	switch m {
	case AnchorSelf:
		return "self"
	case AnchorCustom:
		return "custom"
	default:
		return fmt.Sprintf("AnchorMode(%d)", int(m))
	}
}

// MarshalText implements encoding.TextMarshaler
func (m AnchorMode) MarshalText() ([]byte, error) {
	if !m.valid() {
		return nil, fmt.Errorf("unknown anchor mode %d", int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Matching is case insensitive.
func (m *AnchorMode) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "self", "":
		*m = AnchorSelf
	case "custom":
		*m = AnchorCustom
	default:
		return fmt.Errorf("unknown anchor mode %q (expected self or custom)", string(text))
	}
	return nil
}

func (m AnchorMode) valid() bool {
	return m == AnchorSelf || m == AnchorCustom
}

// Animation configures the scale animation played when the ring appears
type Animation struct {
	Enabled  bool
	Speed    float64
	Duration float64 // seconds
}

// Config is the author-time configuration of an Indicator
type Config struct {
	Anchor            AnchorMode
	Color             color.RGBA
	LayerMask         physics.LayerMask
	ThresholdDistance float64
	MinScale          geometry.Vector3
	MaxScale          geometry.Vector3
	ShowOnSelected    bool
	Animation         Animation
}

// DefaultConfig returns a white, self-anchored ring that grows from nothing
// to unit scale in 0.1s once the viewer is within one unit.
func DefaultConfig() Config {
	return Config{
		Anchor:            AnchorSelf,
		Color:             color.RGBA{R: 255, G: 255, B: 255, A: 255},
		LayerMask:         physics.Everything,
		ThresholdDistance: 1,
		MinScale:          geometry.Zero,
		MaxScale:          geometry.One,
		Animation: Animation{
			Enabled:  true,
			Speed:    1,
			Duration: 0.1,
		},
	}
}

// AnimationTime returns the seconds the show animation takes
func (c Config) AnimationTime() float64 {
	if !c.Animation.Enabled || c.Animation.Speed <= 0 {
		return 0
	}
	return c.Animation.Duration / c.Animation.Speed
}

// ConfigError describes one invalid configuration field
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validate checks every field and returns all problems joined together
func (c Config) Validate() error {
	var errs []error

	if !c.Anchor.valid() {
		errs = append(errs, &ConfigError{Field: "anchor", Reason: fmt.Sprintf("unknown mode %d", int(c.Anchor))})
	}
	if c.ThresholdDistance <= 0 {
		errs = append(errs, &ConfigError{Field: "threshold", Reason: fmt.Sprintf("must be positive, got %g", c.ThresholdDistance)})
	}
	if c.Animation.Enabled {
		if c.Animation.Duration <= 0 {
			errs = append(errs, &ConfigError{Field: "animation.duration", Reason: fmt.Sprintf("must be positive, got %g", c.Animation.Duration)})
		}
		if c.Animation.Speed <= 0 {
			errs = append(errs, &ConfigError{Field: "animation.speed", Reason: fmt.Sprintf("must be positive, got %g", c.Animation.Speed)})
		}
	}

	return errors.Join(errs...)
}
