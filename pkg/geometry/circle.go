package geometry

import (
	"fmt"
	"math"
)

// Circle represents a circle lying in the plane through Center with the given Normal
type Circle struct {
	Center Vector3
	Radius float64
	Normal Vector3
}

// Basis returns two unit vectors spanning the circle's plane
func (c Circle) Basis() (u, v Vector3) {
	n := c.Normal.Normalize()
	if n == Zero {
		n = Forward
	}

	// Pick the world axis least aligned with the normal as a helper
	helper := Vector3{X: 1}
	if math.Abs(n.X) > 0.9 {
		helper = Vector3{Y: 1}
	}

	u = helper.Cross(n).Normalize()
	v = n.Cross(u)
	return u, v
}

// Points samples the circle at segments evenly spaced angles
func (c Circle) Points(segments int) []Vector3 {
	u, v := c.Basis()
	points := make([]Vector3, segments)
	for i := 0; i < segments; i++ {
		angle := 2 * math.Pi * float64(i) / float64(segments)
		offset := u.Mul(math.Cos(angle) * c.Radius).Add(v.Mul(math.Sin(angle) * c.Radius))
		points[i] = c.Center.Add(offset)
	}
	return points
}

// RingMesh builds a flat annulus centered at the origin in the XY plane,
// facing +Z. Both faces are emitted so the ring is visible from either side.
func RingMesh(innerRadius, outerRadius float64, segments int) ([]Triangle, error) {
	if segments < 3 {
		return nil, fmt.Errorf("need at least 3 segments, got %d", segments)
	}
	if innerRadius < 0 || outerRadius <= innerRadius {
		return nil, fmt.Errorf("invalid ring radii: inner %.4f, outer %.4f", innerRadius, outerRadius)
	}

	inner := Circle{Radius: innerRadius, Normal: Forward}.Points(segments)
	outer := Circle{Radius: outerRadius, Normal: Forward}.Points(segments)

	front := Vector3{Z: 1}
	back := Vector3{Z: -1}

	triangles := make([]Triangle, 0, segments*4)
	for i := 0; i < segments; i++ {
		j := (i + 1) % segments
		triangles = append(triangles,
			NewTriangle(front, inner[i], outer[i], outer[j]),
			NewTriangle(front, inner[i], outer[j], inner[j]),
			NewTriangle(back, inner[i], outer[j], outer[i]),
			NewTriangle(back, inner[i], inner[j], outer[j]),
		)
	}
	return triangles, nil
}
