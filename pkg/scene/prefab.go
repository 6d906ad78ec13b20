package scene

import (
	"image/color"

	"github.com/philipparndt/goring/pkg/geometry"
	"github.com/philipparndt/goring/pkg/stl"
)

// Prefab is a template for objects spawned at runtime
type Prefab struct {
	Name string
	Mesh *stl.Model
	// WithRenderer controls whether instances get a MeshRenderer
	WithRenderer bool
}

// NewMeshPrefab creates a prefab whose instances render mesh
func NewMeshPrefab(name string, mesh *stl.Model) *Prefab {
	return &Prefab{Name: name, Mesh: mesh, WithRenderer: true}
}

// Instantiate creates a copy of the prefab at a world position under parent
func (p *Prefab) Instantiate(position geometry.Vector3, rotation geometry.Quaternion, parent *Object) *Object {
	obj := NewObject(p.Name + "(Clone)")
	if p.WithRenderer {
		obj.Renderer = &MeshRenderer{Mesh: p.Mesh, Color: color.RGBA{R: 255, G: 255, B: 255, A: 255}}
	}

	obj.SetPosition(position)
	obj.SetRotation(rotation)
	if parent != nil {
		obj.SetParent(parent)
	}
	return obj
}
