// Package scene is a minimal scene graph: objects with a transform
// hierarchy, an active flag, optional colliders and mesh renderers.
package scene

import (
	"image/color"
	"strings"

	"github.com/philipparndt/goring/pkg/geometry"
	"github.com/philipparndt/goring/pkg/physics"
)

// Object is a node in the scene graph
type Object struct {
	Name  string
	Layer int

	parent   *Object
	children []*Object

	localPosition geometry.Vector3
	localRotation geometry.Quaternion
	localScale    geometry.Vector3

	activeSelf bool
	destroyed  bool

	Collider     physics.Collider
	Renderer     *MeshRenderer
	Interactable *GrabInteractable
}

// NewObject creates an active object at the origin
func NewObject(name string) *Object {
	return &Object{
		Name:          name,
		localRotation: geometry.Identity,
		localScale:    geometry.One,
		activeSelf:    true,
	}
}

// Parent returns the parent object, nil for roots
func (o *Object) Parent() *Object {
	return o.parent
}

// Children returns the direct children
func (o *Object) Children() []*Object {
	return o.children
}

// SetParent moves the object under parent, keeping its world position
func (o *Object) SetParent(parent *Object) {
	world := o.Position()
	rotation := o.Rotation()

	if o.parent != nil {
		o.parent.removeChild(o)
	}
	o.parent = parent
	if parent != nil {
		parent.children = append(parent.children, o)
	}

	o.SetPosition(world)
	o.SetRotation(rotation)
}

func (o *Object) removeChild(child *Object) {
	for i, c := range o.children {
		if c == child {
			o.children = append(o.children[:i], o.children[i+1:]...)
			return
		}
	}
}

// Find returns the descendant at a slash separated path such as "mug/handle"
func (o *Object) Find(path string) *Object {
	current := o
	for _, name := range strings.Split(path, "/") {
		var next *Object
		for _, c := range current.children {
			if c.Name == name && !c.destroyed {
				next = c
				break
			}
		}
		if next == nil {
			return nil
		}
		current = next
	}
	return current
}

// LocalPosition returns the position relative to the parent
func (o *Object) LocalPosition() geometry.Vector3 {
	return o.localPosition
}

// SetLocalPosition sets the position relative to the parent
func (o *Object) SetLocalPosition(p geometry.Vector3) {
	o.localPosition = p
}

// Position returns the world position
func (o *Object) Position() geometry.Vector3 {
	if o.parent == nil {
		return o.localPosition
	}
	offset := o.localPosition.Scale(o.parent.LossyScale())
	return o.parent.Position().Add(o.parent.Rotation().Rotate(offset))
}

// SetPosition moves the object to a world position
func (o *Object) SetPosition(world geometry.Vector3) {
	if o.parent == nil {
		o.localPosition = world
		return
	}
	local := o.parent.Rotation().Conjugate().Rotate(world.Sub(o.parent.Position()))
	o.localPosition = divide(local, o.parent.LossyScale())
}

// Rotation returns the world rotation
func (o *Object) Rotation() geometry.Quaternion {
	if o.parent == nil {
		return o.localRotation
	}
	return o.parent.Rotation().Mul(o.localRotation)
}

// SetRotation sets the world rotation
func (o *Object) SetRotation(world geometry.Quaternion) {
	if o.parent == nil {
		o.localRotation = world
		return
	}
	o.localRotation = o.parent.Rotation().Conjugate().Mul(world)
}

// Forward returns the world direction of the local +Z axis
func (o *Object) Forward() geometry.Vector3 {
	return o.Rotation().Rotate(geometry.Forward)
}

// LookAt rotates the object so its forward axis points at target
func (o *Object) LookAt(target geometry.Vector3) {
	dir := target.Sub(o.Position())
	if dir == geometry.Zero {
		return
	}
	o.SetRotation(geometry.LookRotation(dir, geometry.Up))
}

// LocalScale returns the scale relative to the parent
func (o *Object) LocalScale() geometry.Vector3 {
	return o.localScale
}

// SetLocalScale sets the scale relative to the parent
func (o *Object) SetLocalScale(s geometry.Vector3) {
	o.localScale = s
}

// LossyScale returns the accumulated world scale, ignoring rotation skew
func (o *Object) LossyScale() geometry.Vector3 {
	if o.parent == nil {
		return o.localScale
	}
	return o.parent.LossyScale().Scale(o.localScale)
}

// ActiveSelf returns the object's own active flag
func (o *Object) ActiveSelf() bool {
	return o.activeSelf
}

// SetActive sets the object's own active flag
func (o *Object) SetActive(active bool) {
	o.activeSelf = active
}

// ActiveInHierarchy reports whether the object and all of its parents are active
func (o *Object) ActiveInHierarchy() bool {
	for n := o; n != nil; n = n.parent {
		if !n.activeSelf || n.destroyed {
			return false
		}
	}
	return true
}

// Destroyed reports whether the object was removed from its scene
func (o *Object) Destroyed() bool {
	return o.destroyed
}

// SetColor applies c to the object's renderer. It reports false when the
// object has no renderer.
func (o *Object) SetColor(c color.Color) bool {
	if o.Renderer == nil {
		return false
	}
	o.Renderer.SetColor(c)
	return true
}

// Walk visits the object and its descendants depth first. Returning false
// from fn skips the children of that object.
func (o *Object) Walk(fn func(*Object) bool) {
	if !fn(o) {
		return
	}
	for _, c := range o.children {
		c.Walk(fn)
	}
}

func divide(v, s geometry.Vector3) geometry.Vector3 {
	safe := func(a, b float64) float64 {
		if b == 0 {
			return 0
		}
		return a / b
	}
	return geometry.Vector3{X: safe(v.X, s.X), Y: safe(v.Y, s.Y), Z: safe(v.Z, s.Z)}
}
