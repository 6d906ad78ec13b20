package ring

import (
	"errors"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig failed: expected valid, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		fields []string
	}{
		{"zero threshold", func(c *Config) { c.ThresholdDistance = 0 }, []string{"threshold"}},
		{"negative duration", func(c *Config) { c.Animation.Duration = -1 }, []string{"animation.duration"}},
		{"zero speed", func(c *Config) { c.Animation.Speed = 0 }, []string{"animation.speed"}},
		{"unknown anchor", func(c *Config) { c.Anchor = AnchorMode(7) }, []string{"anchor"}},
		{"animation off ignores timing", func(c *Config) {
			c.Animation = Animation{Enabled: false}
		}, nil},
		{"several problems", func(c *Config) {
			c.ThresholdDistance = -1
			c.Animation.Speed = -2
		}, []string{"threshold", "animation.speed"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			err := cfg.Validate()

			if len(tt.fields) == 0 {
				if err != nil {
					t.Errorf("Validate failed: expected nil, got %v", err)
				}
				return
			}

			joined, ok := err.(interface{ Unwrap() []error })
			if !ok {
				t.Fatalf("Validate failed: expected joined errors, got %v", err)
			}
			errs := joined.Unwrap()
			if len(errs) != len(tt.fields) {
				t.Fatalf("Validate failed: expected %d errors, got %d (%v)", len(tt.fields), len(errs), err)
			}
			for i, field := range tt.fields {
				var cfgErr *ConfigError
				if !errors.As(errs[i], &cfgErr) || cfgErr.Field != field {
					t.Errorf("Validate failed: expected field %s, got %v", field, errs[i])
				}
			}
		})
	}
}

func TestAnchorModeText(t *testing.T) {
	tests := []struct {
		input    string
		expected AnchorMode
		wantErr  bool
	}{
		{"self", AnchorSelf, false},
		{"Custom", AnchorCustom, false},
		{"", AnchorSelf, false},
		{"center", AnchorSelf, true},
	}

	for _, tt := range tests {
		var m AnchorMode
		err := m.UnmarshalText([]byte(tt.input))
		if (err != nil) != tt.wantErr {
			t.Errorf("UnmarshalText(%q) failed: expected error=%v, got %v", tt.input, tt.wantErr, err)
			continue
		}
		if !tt.wantErr && m != tt.expected {
			t.Errorf("UnmarshalText(%q) failed: expected %s, got %s", tt.input, tt.expected, m)
		}
	}

	text, err := AnchorCustom.MarshalText()
	if err != nil || string(text) != "custom" {
		t.Errorf("MarshalText failed: expected custom, got %q (%v)", text, err)
	}
	if _, err := AnchorMode(9).MarshalText(); err == nil {
		t.Errorf("MarshalText failed: expected error for unknown mode")
	}
}

func TestAnimationTime(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Animation.Duration = 0.5
	cfg.Animation.Speed = 2
	if got := cfg.AnimationTime(); got != 0.25 {
		t.Errorf("AnimationTime failed: expected 0.25, got %v", got)
	}

	cfg.Animation.Enabled = false
	if got := cfg.AnimationTime(); got != 0 {
		t.Errorf("AnimationTime failed: expected 0 when disabled, got %v", got)
	}
}
