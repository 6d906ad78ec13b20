// Package viewstate remembers how each scenario was last viewed: the orbit
// camera and the display toggles of the interactive viewers.
package viewstate

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"path/filepath"

	"github.com/philipparndt/goring/pkg/geometry"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// AppName is the gdata application directory
const AppName = "goring"

const viewsObject = "views"

// View is the saved state of one scenario
type View struct {
	Distance      float64 `yaml:"distance"`
	AngleX        float64 `yaml:"angleX"`
	AngleY        float64 `yaml:"angleY"`
	Target        Vec     `yaml:"target"`
	ShowColliders bool    `yaml:"showColliders"`
	ShowGaze      bool    `yaml:"showGaze"`
	ShowTimeline  bool    `yaml:"showTimeline"`
}

// Vec is a YAML friendly vector
type Vec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// VecOf converts a geometry vector
func VecOf(v geometry.Vector3) Vec {
	return Vec{X: v.X, Y: v.Y, Z: v.Z}
}

// Vector3 converts back to a geometry vector
func (v Vec) Vector3() geometry.Vector3 {
	return geometry.Vector3{X: v.X, Y: v.Y, Z: v.Z}
}

// Store saves views through gdata. A Store without a manager keeps
// nothing, Load reports no saved view and Save does nothing.
type Store struct {
	manager *gdata.Manager
}

// Open opens the store of the current user. When the data directory is not
// available the returned store keeps nothing and err says why.
func Open() (*Store, error) {
	return OpenApp(AppName)
}

// OpenApp opens the store under a custom application name
func OpenApp(appName string) (*Store, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return &Store{}, fmt.Errorf("failed to open view store: %w", err)
	}
	return &Store{manager: m}, nil
}

// NewStore wraps a gdata manager, m may be nil
func NewStore(m *gdata.Manager) *Store {
	return &Store{manager: m}
}

// Persistent reports whether views survive the process
func (s *Store) Persistent() bool {
	return s.manager != nil
}

// Load returns the saved view of the scenario at path
func (s *Store) Load(path string) (View, bool, error) {
	if s.manager == nil {
		return View{}, false, nil
	}

	prop := key(path)
	if !s.manager.ObjectPropExists(viewsObject, prop) {
		return View{}, false, nil
	}

	data, err := s.manager.LoadObjectProp(viewsObject, prop)
	if err != nil {
		return View{}, false, fmt.Errorf("failed to load view: %w", err)
	}

	var v View
	if err := yaml.Unmarshal(data, &v); err != nil {
		return View{}, false, fmt.Errorf("failed to unmarshal view: %w", err)
	}
	return v, true, nil
}

// Save stores v as the view of the scenario at path
func (s *Store) Save(path string, v View) error {
	if s.manager == nil {
		return nil
	}

	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal view: %w", err)
	}
	if err := s.manager.SaveObjectProp(viewsObject, key(path), data); err != nil {
		return fmt.Errorf("failed to save view: %w", err)
	}
	return nil
}

// key names the property of a scenario after its absolute path
func key(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	sum := sha1.Sum([]byte(path))
	return hex.EncodeToString(sum[:8])
}
