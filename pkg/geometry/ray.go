package geometry

// Ray represents a half-line with an origin and a unit direction
type Ray struct {
	Origin    Vector3
	Direction Vector3
}

// NewRay creates a ray. The direction is normalized so that the parameter
// t of At and of every intersection test is a world-space distance.
func NewRay(origin, direction Vector3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// At returns the point at distance t along the ray
func (r Ray) At(t float64) Vector3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Valid reports whether the ray has a usable direction
func (r Ray) Valid() bool {
	return r.Direction != Zero
}
