package physics

import (
	"math"

	"github.com/philipparndt/goring/pkg/geometry"
)

// Hit describes where a ray met a collider
type Hit struct {
	Distance float64
	Point    geometry.Vector3
	Collider Collider
}

// World holds the colliders that take part in raycasts
type World struct {
	colliders []Collider
}

// NewWorld creates an empty physics world
func NewWorld() *World {
	return &World{}
}

// Add registers a collider
func (w *World) Add(c Collider) {
	w.colliders = append(w.colliders, c)
}

// Remove unregisters a collider
func (w *World) Remove(c Collider) {
	for i, existing := range w.colliders {
		if existing == c {
			w.colliders = append(w.colliders[:i], w.colliders[i+1:]...)
			return
		}
	}
}

// Len returns the number of registered colliders
func (w *World) Len() int {
	return len(w.colliders)
}

// Raycast returns the nearest hit of ray against colliders whose layer is in mask
func (w *World) Raycast(ray geometry.Ray, mask LayerMask) (Hit, bool) {
	best := Hit{Distance: math.Inf(1)}
	found := false

	for _, c := range w.colliders {
		if !mask.Contains(c.Layer()) {
			continue
		}
		dist, ok := c.Intersect(ray)
		if !ok || dist >= best.Distance {
			continue
		}
		best = Hit{Distance: dist, Point: ray.At(dist), Collider: c}
		found = true
	}

	return best, found
}
