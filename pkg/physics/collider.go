package physics

import (
	"math"

	"github.com/philipparndt/goring/pkg/geometry"
	"github.com/philipparndt/goring/pkg/stl"
)

// Collider is a shape that rays can hit
type Collider interface {
	// Bounds returns the world-space bounding box
	Bounds() geometry.BoundingBox
	// Layer returns the collision layer of the collider
	Layer() int
	// Intersect returns the distance to the first hit along ray
	Intersect(ray geometry.Ray) (float64, bool)
}

// Placement provides the world position and scale a collider follows
type Placement interface {
	Position() geometry.Vector3
	Rotation() geometry.Quaternion
	LossyScale() geometry.Vector3
}

// activatable is implemented by owners that can be switched off
type activatable interface {
	ActiveInHierarchy() bool
}

// enabled reports whether a collider's owner currently takes part in raycasts
func enabled(owner Placement) bool {
	if a, ok := owner.(activatable); ok {
		return a.ActiveInHierarchy()
	}
	return true
}

// BoxCollider is an axis-aligned box centered on its owner
type BoxCollider struct {
	Owner  Placement
	Center geometry.Vector3 // local offset from the owner
	Size   geometry.Vector3
	layer  int
}

// NewBoxCollider creates a box collider on the given layer
func NewBoxCollider(owner Placement, center, size geometry.Vector3, layer int) *BoxCollider {
	return &BoxCollider{Owner: owner, Center: center, Size: size, layer: layer}
}

// Bounds returns the box in world space. Owner rotation is ignored, boxes stay axis-aligned.
func (c *BoxCollider) Bounds() geometry.BoundingBox {
	scale := c.Owner.LossyScale()
	center := c.Owner.Position().Add(c.Center.Scale(scale))
	return geometry.BoxFromCenter(center, absVector(c.Size.Scale(scale)))
}

// Layer returns the collision layer
func (c *BoxCollider) Layer() int {
	return c.layer
}

// Intersect tests the ray against the world-space box
func (c *BoxCollider) Intersect(ray geometry.Ray) (float64, bool) {
	if !enabled(c.Owner) {
		return 0, false
	}
	return c.Bounds().IntersectRay(ray)
}

// MeshCollider tests rays against the triangles of a mesh
type MeshCollider struct {
	Owner Placement
	Mesh  *stl.Model
	layer int
}

// NewMeshCollider creates a mesh collider on the given layer
func NewMeshCollider(owner Placement, mesh *stl.Model, layer int) *MeshCollider {
	return &MeshCollider{Owner: owner, Mesh: mesh, layer: layer}
}

func (c *MeshCollider) toWorld(v geometry.Vector3) geometry.Vector3 {
	return c.Owner.Position().Add(c.Owner.Rotation().Rotate(v.Scale(c.Owner.LossyScale())))
}

// Bounds returns the world-space bounds of the transformed mesh
func (c *MeshCollider) Bounds() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, t := range c.Mesh.Triangles {
		bbox.Extend(c.toWorld(t.V1))
		bbox.Extend(c.toWorld(t.V2))
		bbox.Extend(c.toWorld(t.V3))
	}
	return bbox
}

// Layer returns the collision layer
func (c *MeshCollider) Layer() int {
	return c.layer
}

// Intersect returns the nearest triangle hit. The bounds are tested first.
func (c *MeshCollider) Intersect(ray geometry.Ray) (float64, bool) {
	if !enabled(c.Owner) {
		return 0, false
	}
	if _, ok := c.Bounds().IntersectRay(ray); !ok {
		return 0, false
	}

	nearest := math.Inf(1)
	for _, t := range c.Mesh.Triangles {
		world := t.Transform(c.toWorld)
		if dist, ok := world.IntersectRay(ray); ok && dist < nearest {
			nearest = dist
		}
	}
	if math.IsInf(nearest, 1) {
		return 0, false
	}
	return nearest, true
}

func absVector(v geometry.Vector3) geometry.Vector3 {
	return geometry.Vector3{X: math.Abs(v.X), Y: math.Abs(v.Y), Z: math.Abs(v.Z)}
}
