package scene

import (
	"strings"

	"github.com/philipparndt/goring/pkg/geometry"
	"github.com/philipparndt/goring/pkg/physics"
)

// Scene owns the root objects and the physics world they collide in
type Scene struct {
	Physics *physics.World
	roots   []*Object
}

// New creates an empty scene
func New() *Scene {
	return &Scene{Physics: physics.NewWorld()}
}

// Add adds a root object
func (s *Scene) Add(o *Object) {
	s.roots = append(s.roots, o)
}

// Find returns the object at a slash separated path such as "mug/handle"
func (s *Scene) Find(path string) *Object {
	head, rest, nested := strings.Cut(path, "/")
	for _, r := range s.roots {
		if r.Name != head || r.destroyed {
			continue
		}
		if !nested {
			return r
		}
		return r.Find(rest)
	}
	return nil
}

// Walk visits every object depth first
func (s *Scene) Walk(fn func(*Object) bool) {
	for _, r := range s.roots {
		r.Walk(fn)
	}
}

// AddBoxCollider attaches a box collider to o and registers it with physics
func (s *Scene) AddBoxCollider(o *Object, center, size geometry.Vector3) *physics.BoxCollider {
	c := physics.NewBoxCollider(o, center, size, o.Layer)
	s.attach(o, c)
	return c
}

// AddMeshCollider attaches a mesh collider built from the object's renderer mesh
func (s *Scene) AddMeshCollider(o *Object) *physics.MeshCollider {
	if o.Renderer == nil || o.Renderer.Mesh == nil {
		return nil
	}
	c := physics.NewMeshCollider(o, o.Renderer.Mesh, o.Layer)
	s.attach(o, c)
	return c
}

func (s *Scene) attach(o *Object, c physics.Collider) {
	if o.Collider != nil {
		s.Physics.Remove(o.Collider)
	}
	o.Collider = c
	s.Physics.Add(c)
}

// Destroy removes o and its descendants from the scene and from physics
func (s *Scene) Destroy(o *Object) {
	o.Walk(func(n *Object) bool {
		if n.Collider != nil {
			s.Physics.Remove(n.Collider)
		}
		n.destroyed = true
		return true
	})

	if o.parent != nil {
		o.parent.removeChild(o)
		return
	}
	for i, r := range s.roots {
		if r == o {
			s.roots = append(s.roots[:i], s.roots[i+1:]...)
			return
		}
	}
}
