package ring

import "github.com/philipparndt/goring/pkg/geometry"

// ScaleTask grows a visual from one scale to another. Each step advances
// the progress by dt/duration*speed and stops once it reaches 1.
type ScaleTask struct {
	target   Visual
	from, to geometry.Vector3
	rate     float64
	progress float64
}

// NewScaleTask creates a task that interpolates target from -> to
func NewScaleTask(target Visual, from, to geometry.Vector3, duration, speed float64) *ScaleTask {
	rate := 0.0
	if duration > 0 {
		rate = speed / duration
	}
	return &ScaleTask{target: target, from: from, to: to, rate: rate}
}

// Progress returns the normalized progress, 1 once finished
func (t *ScaleTask) Progress() float64 {
	return geometry.Clamp01(t.progress)
}

// Step implements frame.Task
func (t *ScaleTask) Step(dt float64) bool {
	if t.rate <= 0 {
		t.progress = 1
		t.target.SetLocalScale(t.to)
		return true
	}

	t.progress += dt * t.rate
	t.target.SetLocalScale(geometry.Lerp(t.from, t.to, t.progress))
	return t.progress >= 1
}
