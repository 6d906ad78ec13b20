package physics

import (
	"math"
	"testing"

	"github.com/philipparndt/goring/pkg/geometry"
	"github.com/philipparndt/goring/pkg/stl"
)

type fixedPlacement struct {
	position geometry.Vector3
	rotation geometry.Quaternion
	scale    geometry.Vector3
}

func (p fixedPlacement) Position() geometry.Vector3    { return p.position }
func (p fixedPlacement) Rotation() geometry.Quaternion { return p.rotation }
func (p fixedPlacement) LossyScale() geometry.Vector3  { return p.scale }

func at(x, y, z float64) fixedPlacement {
	return fixedPlacement{position: geometry.NewVector3(x, y, z), rotation: geometry.Identity, scale: geometry.One}
}

func TestMaskOf(t *testing.T) {
	mask, err := MaskOf(0, 3)
	if err != nil {
		t.Fatalf("MaskOf failed: %v", err)
	}
	if mask != 0b1001 {
		t.Errorf("MaskOf failed: expected 0b1001, got %b", mask)
	}
	if !mask.Contains(3) || mask.Contains(2) {
		t.Errorf("Contains failed for mask %v", mask)
	}
	if _, err := MaskOf(32); err == nil {
		t.Errorf("MaskOf failed: expected error for layer 32")
	}
	if Everything.String() != "everything" || mask.String() != "layers[0,3]" {
		t.Errorf("String failed: got %q and %q", Everything.String(), mask.String())
	}
}

func TestRaycastNearestHit(t *testing.T) {
	world := NewWorld()
	near := NewBoxCollider(at(0, 0, 2), geometry.Zero, geometry.One, 0)
	far := NewBoxCollider(at(0, 0, 5), geometry.Zero, geometry.One, 0)
	world.Add(far)
	world.Add(near)

	hit, ok := world.Raycast(geometry.NewRay(geometry.Zero, geometry.Forward), Everything)
	if !ok {
		t.Fatalf("Raycast failed: expected a hit")
	}
	if hit.Collider != near {
		t.Errorf("Raycast failed: expected nearest collider")
	}
	if math.Abs(hit.Distance-1.5) > 1e-9 {
		t.Errorf("Raycast distance failed: expected 1.5, got %v", hit.Distance)
	}
	if !hit.Point.ApproxEqual(geometry.NewVector3(0, 0, 1.5), 1e-9) {
		t.Errorf("Raycast point failed: got %v", hit.Point)
	}
}

func TestRaycastLayerFilter(t *testing.T) {
	world := NewWorld()
	blocker := NewBoxCollider(at(0, 0, 2), geometry.Zero, geometry.One, 1)
	target := NewBoxCollider(at(0, 0, 5), geometry.Zero, geometry.One, 3)
	world.Add(blocker)
	world.Add(target)

	mask, _ := MaskOf(3)
	hit, ok := world.Raycast(geometry.NewRay(geometry.Zero, geometry.Forward), mask)
	if !ok || hit.Collider != target {
		t.Fatalf("Raycast failed: expected to hit the layer 3 target")
	}

	if _, ok := world.Raycast(geometry.NewRay(geometry.Zero, geometry.Forward), Nothing); ok {
		t.Errorf("Raycast failed: empty mask must never hit")
	}

	world.Remove(target)
	if _, ok := world.Raycast(geometry.NewRay(geometry.Zero, geometry.Forward), mask); ok {
		t.Errorf("Raycast failed: removed collider was hit")
	}
	if world.Len() != 1 {
		t.Errorf("Len failed: expected 1, got %d", world.Len())
	}
}

func TestBoxColliderFollowsOwnerScale(t *testing.T) {
	owner := fixedPlacement{position: geometry.NewVector3(1, 0, 0), rotation: geometry.Identity, scale: geometry.NewVector3(2, 2, 2)}
	box := NewBoxCollider(owner, geometry.NewVector3(0.5, 0, 0), geometry.One, 0)

	bounds := box.Bounds()
	if !bounds.Center().ApproxEqual(geometry.NewVector3(2, 0, 0), 1e-9) {
		t.Errorf("Bounds center failed: expected (2,0,0), got %v", bounds.Center())
	}
	if !bounds.Size().ApproxEqual(geometry.NewVector3(2, 2, 2), 1e-9) {
		t.Errorf("Bounds size failed: expected (2,2,2), got %v", bounds.Size())
	}
}

func TestMeshCollider(t *testing.T) {
	ring, err := stl.NewRingModel("ring", 0.5, 1.0, 16)
	if err != nil {
		t.Fatalf("NewRingModel failed: %v", err)
	}
	collider := NewMeshCollider(at(0, 0, 3), ring, 0)

	// Through the rim
	dist, ok := collider.Intersect(geometry.NewRay(geometry.NewVector3(0.31, 0.69, 0), geometry.Forward))
	if !ok {
		t.Fatalf("Intersect failed: expected to hit the rim")
	}
	if math.Abs(dist-3) > 1e-9 {
		t.Errorf("Intersect distance failed: expected 3, got %v", dist)
	}

	// Through the hole: inside the bounds but no triangle
	if _, ok := collider.Intersect(geometry.NewRay(geometry.Zero, geometry.Forward)); ok {
		t.Errorf("Intersect failed: ray through the hole must miss")
	}

	if !collider.Bounds().Center().ApproxEqual(geometry.NewVector3(0, 0, 3), 1e-9) {
		t.Errorf("Bounds center failed: got %v", collider.Bounds().Center())
	}
}

type switchable struct {
	fixedPlacement
	active bool
}

func (s *switchable) ActiveInHierarchy() bool { return s.active }

func TestInactiveOwnerIsIgnored(t *testing.T) {
	owner := &switchable{fixedPlacement: at(0, 0, 2), active: false}
	world := NewWorld()
	world.Add(NewBoxCollider(owner, geometry.Zero, geometry.One, 0))

	ray := geometry.NewRay(geometry.Zero, geometry.Forward)
	if _, ok := world.Raycast(ray, Everything); ok {
		t.Errorf("Raycast failed: inactive owner must not be hit")
	}

	owner.active = true
	if _, ok := world.Raycast(ray, Everything); !ok {
		t.Errorf("Raycast failed: active owner must be hit")
	}
}
