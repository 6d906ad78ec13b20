// Package scenario loads scripted ring scenarios from YAML or TOML files.
package scenario

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/philipparndt/goring/pkg/geometry"
)

// BuiltinRing names the generated ring prefab
const BuiltinRing = "builtin:ring"

// Defaults applied by Load
const (
	DefaultFPS      = 60
	DefaultDuration = 2.0
)

// Format is the encoding of a scenario file
type Format int

const (
	FormatYAML Format = iota
	FormatTOML
)

// Vec is a 3D vector as written in scenario files
type Vec struct {
	X float64 `yaml:"x" toml:"x"`
	Y float64 `yaml:"y" toml:"y"`
	Z float64 `yaml:"z" toml:"z"`
}

// Vector3 converts to the geometry type
func (v Vec) Vector3() geometry.Vector3 {
	return geometry.Vector3{X: v.X, Y: v.Y, Z: v.Z}
}

// Keyframe places the viewer at a point in time
type Keyframe struct {
	Time     float64 `yaml:"time" toml:"time"`
	Position Vec     `yaml:"position" toml:"position"`
	Forward  Vec     `yaml:"forward" toml:"forward"`
}

// Viewer is the scripted gaze of the headset
type Viewer struct {
	Keyframes []Keyframe `yaml:"keyframes" toml:"keyframes"`
}

// Collider types
const (
	ColliderBox  = "box"
	ColliderMesh = "mesh"
	ColliderNone = "none"
)

// Collider describes the physics shape of an object
type Collider struct {
	Type   string `yaml:"type" toml:"type"`
	Center Vec    `yaml:"center" toml:"center"`
	Size   Vec    `yaml:"size" toml:"size"`
	Mesh   string `yaml:"mesh" toml:"mesh"`
}

// Anchor is a named child point of an object
type Anchor struct {
	Name     string `yaml:"name" toml:"name"`
	Position Vec    `yaml:"position" toml:"position"`
}

// Animation mirrors ring.Animation. Nil fields keep the defaults.
type Animation struct {
	Enabled  *bool    `yaml:"enabled" toml:"enabled"`
	Speed    *float64 `yaml:"speed" toml:"speed"`
	Duration *float64 `yaml:"duration" toml:"duration"`
}

// Ring configures the indicator of one object
type Ring struct {
	Anchor         string     `yaml:"anchor" toml:"anchor"`
	CustomAnchor   string     `yaml:"customAnchor" toml:"customAnchor"`
	Color          string     `yaml:"color" toml:"color"`
	Layers         []int      `yaml:"layers" toml:"layers"`
	Threshold      *float64   `yaml:"threshold" toml:"threshold"`
	MinScale       *Vec       `yaml:"minScale" toml:"minScale"`
	MaxScale       *Vec       `yaml:"maxScale" toml:"maxScale"`
	ShowOnSelected bool       `yaml:"showOnSelected" toml:"showOnSelected"`
	Animation      *Animation `yaml:"animation" toml:"animation"`
}

// Object is a grabbable host in the scene
type Object struct {
	Name     string    `yaml:"name" toml:"name"`
	Position Vec       `yaml:"position" toml:"position"`
	Scale    *Vec      `yaml:"scale" toml:"scale"`
	Layer    int       `yaml:"layer" toml:"layer"`
	Collider *Collider `yaml:"collider" toml:"collider"`
	Anchors  []Anchor  `yaml:"anchors" toml:"anchors"`
	Ring     *Ring     `yaml:"ring" toml:"ring"`
}

// Event actions
const (
	ActionSelect   = "select"
	ActionDeselect = "deselect"
	ActionEnable   = "enable"
	ActionDisable  = "disable"
	ActionDestroy  = "destroy"
)

// Event is a scripted action at a point in time
type Event struct {
	Time   float64 `yaml:"time" toml:"time"`
	Action string  `yaml:"action" toml:"action"`
	Target string  `yaml:"target" toml:"target"`
}

// File is a complete scenario
type File struct {
	FPS            int      `yaml:"fps" toml:"fps"`
	Duration       float64  `yaml:"duration" toml:"duration"`
	Prefab         string   `yaml:"prefab" toml:"prefab"`
	PrefabRenderer *bool    `yaml:"prefabRenderer" toml:"prefabRenderer"`
	Viewer         Viewer   `yaml:"viewer" toml:"viewer"`
	Objects        []Object `yaml:"objects" toml:"objects"`
	Events         []Event  `yaml:"events" toml:"events"`

	// Dir resolves relative mesh paths, set by Load
	Dir string `yaml:"-" toml:"-"`
}

// FormatOf picks the format from the file extension
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return 0, fmt.Errorf("unsupported scenario format %q (expected .yaml, .yml or .toml)", filepath.Ext(path))
	}
}

// Load reads, decodes and validates a scenario file
func Load(path string) (*File, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file %s: %w", path, err)
	}

	f, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse scenario %s: %w", path, err)
	}
	f.Dir = filepath.Dir(path)

	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", path, err)
	}
	return f, nil
}

// Parse decodes a scenario and applies defaults. It does not validate.
func Parse(data []byte, format Format) (*File, error) {
	var f File
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to decode YAML: %w", err)
		}
	case FormatTOML:
		if _, err := toml.Decode(string(data), &f); err != nil {
			return nil, fmt.Errorf("failed to decode TOML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown format %d", format)
	}

	f.applyDefaults()
	return &f, nil
}

func (f *File) applyDefaults() {
	if f.FPS == 0 {
		f.FPS = DefaultFPS
	}
	if f.Duration == 0 {
		f.Duration = DefaultDuration
	}
	if f.Prefab == "" {
		f.Prefab = BuiltinRing
	}
	if f.PrefabRenderer == nil {
		on := true
		f.PrefabRenderer = &on
	}
	for i := range f.Objects {
		if f.Objects[i].Collider == nil {
			f.Objects[i].Collider = &Collider{Type: ColliderBox, Size: Vec{X: 1, Y: 1, Z: 1}}
		}
	}

	sort.SliceStable(f.Viewer.Keyframes, func(i, j int) bool {
		return f.Viewer.Keyframes[i].Time < f.Viewer.Keyframes[j].Time
	})
	sort.SliceStable(f.Events, func(i, j int) bool {
		return f.Events[i].Time < f.Events[j].Time
	})
}

// Frames returns the number of frames to simulate
func (f *File) Frames() int {
	return int(math.Round(f.Duration * float64(f.FPS)))
}

// Resolve returns path relative to the scenario directory
func (f *File) Resolve(path string) string {
	if filepath.IsAbs(path) || f.Dir == "" {
		return path
	}
	return filepath.Join(f.Dir, path)
}

// Object returns the object named name
func (f *File) Object(name string) (*Object, bool) {
	for i := range f.Objects {
		if f.Objects[i].Name == name {
			return &f.Objects[i], true
		}
	}
	return nil, false
}

// Dependencies returns the mesh files the scenario reads besides itself,
// including the files OpenSCAD meshes use or include
func (f *File) Dependencies() []string {
	var files []string
	if f.Prefab != BuiltinRing {
		files = append(files, f.meshDependencies(f.Prefab)...)
	}
	for _, o := range f.Objects {
		if o.Collider != nil && o.Collider.Type == ColliderMesh {
			files = append(files, f.meshDependencies(o.Collider.Mesh)...)
		}
	}
	return files
}

// ViewerAt interpolates the viewer keyframes at time t. Before the first and
// after the last keyframe the viewer holds still.
func (f *File) ViewerAt(t float64) (position, forward geometry.Vector3) {
	keys := f.Viewer.Keyframes
	if len(keys) == 0 {
		return geometry.Zero, geometry.Forward
	}
	if t <= keys[0].Time {
		return keys[0].Position.Vector3(), keys[0].Forward.Vector3()
	}

	for i := 1; i < len(keys); i++ {
		if t > keys[i].Time {
			continue
		}
		a, b := keys[i-1], keys[i]
		span := b.Time - a.Time
		if span <= 0 {
			return b.Position.Vector3(), b.Forward.Vector3()
		}
		u := (t - a.Time) / span
		position = geometry.Lerp(a.Position.Vector3(), b.Position.Vector3(), u)
		forward = geometry.Lerp(a.Forward.Vector3(), b.Forward.Vector3(), u)
		if forward.Length() < 1e-9 {
			forward = b.Forward.Vector3()
		}
		return position, forward
	}

	last := keys[len(keys)-1]
	return last.Position.Vector3(), last.Forward.Vector3()
}
