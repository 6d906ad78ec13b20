package scenario

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/philipparndt/goring/pkg/physics"
	"github.com/philipparndt/goring/pkg/ring"
)

// ParseColor parses #rgb, #rrggbb or #rrggbbaa
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")

	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]}) + "ff"
	case 6:
		hex += "ff"
	case 8:
	default:
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// Config converts the ring section into a ring.Config over the defaults
func (r *Ring) Config() (ring.Config, error) {
	cfg := ring.DefaultConfig()
	if r == nil {
		return cfg, nil
	}

	if err := cfg.Anchor.UnmarshalText([]byte(r.Anchor)); err != nil {
		return cfg, err
	}
	if r.Color != "" {
		c, err := ParseColor(r.Color)
		if err != nil {
			return cfg, err
		}
		cfg.Color = c
	}
	// Omitted layers hit everything, an explicit empty list hits nothing
	if r.Layers != nil {
		mask, err := physics.MaskOf(r.Layers...)
		if err != nil {
			return cfg, err
		}
		cfg.LayerMask = mask
	}
	if r.Threshold != nil {
		cfg.ThresholdDistance = *r.Threshold
	}
	if r.MinScale != nil {
		cfg.MinScale = r.MinScale.Vector3()
	}
	if r.MaxScale != nil {
		cfg.MaxScale = r.MaxScale.Vector3()
	}
	cfg.ShowOnSelected = r.ShowOnSelected

	if a := r.Animation; a != nil {
		if a.Enabled != nil {
			cfg.Animation.Enabled = *a.Enabled
		}
		if a.Speed != nil {
			cfg.Animation.Speed = *a.Speed
		}
		if a.Duration != nil {
			cfg.Animation.Duration = *a.Duration
		}
	}
	return cfg, nil
}
