package ring

import (
	"image/color"

	"github.com/philipparndt/goring/pkg/frame"
	"github.com/philipparndt/goring/pkg/geometry"
	"github.com/philipparndt/goring/pkg/physics"
)

// Viewer is the gaze origin, usually the headset camera
type Viewer interface {
	Position() geometry.Vector3
	Forward() geometry.Vector3
}

// Raycaster answers layer filtered ray queries
type Raycaster interface {
	Raycast(ray geometry.Ray, mask physics.LayerMask) (physics.Hit, bool)
}

// Bounded is the host collider used by the self anchor
type Bounded interface {
	Bounds() geometry.BoundingBox
}

// Positioned is the anchor point used by the custom anchor
type Positioned interface {
	Position() geometry.Vector3
}

// Prefab is the template the ring visual is spawned from
type Prefab interface {
	Name() string
}

// Spawner instantiates a prefab at a world position, parented to the host
type Spawner interface {
	Instantiate(prefab Prefab, position geometry.Vector3) (Visual, error)
}

// Visual is the spawned ring object
type Visual interface {
	SetPosition(p geometry.Vector3)
	LookAt(target geometry.Vector3)
	SetLocalScale(s geometry.Vector3)
	LocalScale() geometry.Vector3
	SetActive(active bool)
	ActiveSelf() bool
	// SetColor reports false when the visual has no renderer
	SetColor(c color.Color) bool
}

// SelectionSource delivers grab select entered and exited notifications.
// The argument passed to the listeners is opaque.
type SelectionSource interface {
	SubscribeSelect(entered, exited func(args any)) (unsubscribe func())
}

// Scheduler starts cooperative tasks resumed once per frame
type Scheduler interface {
	Start(t frame.Task) *frame.Handle
}
