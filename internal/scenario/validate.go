package scenario

import (
	"errors"
	"fmt"
)

// Validate reports every problem in the scenario
func (f *File) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if f.FPS < 0 {
		add("fps must be positive, got %d", f.FPS)
	}
	if f.Duration < 0 {
		add("duration must be positive, got %g", f.Duration)
	}
	if len(f.Viewer.Keyframes) == 0 {
		add("viewer needs at least one keyframe")
	}
	for i, k := range f.Viewer.Keyframes {
		if k.Forward.Vector3().Length() == 0 {
			add("viewer keyframe %d: forward must not be zero", i)
		}
	}

	names := make(map[string]bool)
	for i, o := range f.Objects {
		if o.Name == "" {
			add("object %d: name is required", i)
			continue
		}
		if names[o.Name] {
			add("object %s: duplicate name", o.Name)
		}
		names[o.Name] = true

		if err := o.validate(); err != nil {
			errs = append(errs, fmt.Errorf("object %s: %w", o.Name, err))
		}
	}

	for i, e := range f.Events {
		switch e.Action {
		case ActionSelect, ActionDeselect, ActionEnable, ActionDisable, ActionDestroy:
		default:
			add("event %d: unknown action %q", i, e.Action)
		}
		if !names[e.Target] {
			add("event %d: unknown target %q", i, e.Target)
		}
		if e.Time < 0 {
			add("event %d: time must not be negative", i)
		}
	}

	return errors.Join(errs...)
}

func (o *Object) validate() error {
	var errs []error

	if o.Layer < 0 || o.Layer >= 32 {
		errs = append(errs, fmt.Errorf("layer %d out of range", o.Layer))
	}

	if c := o.Collider; c != nil {
		switch c.Type {
		case ColliderBox, ColliderNone:
		case ColliderMesh:
			if c.Mesh == "" {
				errs = append(errs, errors.New("mesh collider needs a mesh file"))
			}
		default:
			errs = append(errs, fmt.Errorf("unknown collider type %q", c.Type))
		}
	}

	anchors := make(map[string]bool)
	for _, a := range o.Anchors {
		if anchors[a.Name] {
			errs = append(errs, fmt.Errorf("duplicate anchor %q", a.Name))
		}
		anchors[a.Name] = true
	}

	if o.Ring != nil {
		cfg, err := o.Ring.Config()
		if err != nil {
			errs = append(errs, err)
		} else if err := cfg.Validate(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
