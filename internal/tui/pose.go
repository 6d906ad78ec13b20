package tui

import (
	"math"

	"github.com/philipparndt/goring/pkg/geometry"
)

const maxPitch = 1.4

// Pose is the keyboard driven viewer: a position with yaw around Y and
// pitch above the horizon
type Pose struct {
	Position geometry.Vector3
	Yaw      float64
	Pitch    float64
}

// PoseOf builds a pose looking along forward
func PoseOf(position, forward geometry.Vector3) Pose {
	f := forward.Normalize()
	return Pose{
		Position: position,
		Yaw:      math.Atan2(f.X, f.Z),
		Pitch:    math.Asin(math.Max(-1, math.Min(1, f.Y))),
	}
}

// Forward returns the gaze direction
func (p Pose) Forward() geometry.Vector3 {
	return geometry.Vector3{
		X: math.Sin(p.Yaw) * math.Cos(p.Pitch),
		Y: math.Sin(p.Pitch),
		Z: math.Cos(p.Yaw) * math.Cos(p.Pitch),
	}
}

// Move walks along the ground: ahead follows the yaw, right is to its side
func (p *Pose) Move(ahead, right float64) {
	p.Position = p.Position.Add(geometry.Vector3{
		X: math.Sin(p.Yaw)*ahead + math.Cos(p.Yaw)*right,
		Z: math.Cos(p.Yaw)*ahead - math.Sin(p.Yaw)*right,
	})
}

// Turn changes yaw and pitch, pitch stays short of straight up or down
func (p *Pose) Turn(yaw, pitch float64) {
	p.Yaw = math.Mod(p.Yaw+yaw, 2*math.Pi)
	p.Pitch = math.Max(-maxPitch, math.Min(maxPitch, p.Pitch+pitch))
}
