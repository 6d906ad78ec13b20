package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/goring/pkg/physics"
)

var (
	colliderColor = rl.NewColor(100, 100, 100, 200)
	gazedColor    = rl.NewColor(0, 200, 255, 255)
	selectedColor = rl.NewColor(255, 200, 60, 255)
	hoveredColor  = rl.NewColor(255, 255, 255, 255)
)

// drawColliders draws the bounds of every active collider
func (app *App) drawColliders() {
	for _, h := range app.Scene.world.Hosts {
		o := h.Object
		if o.Collider == nil || !o.ActiveInHierarchy() {
			continue
		}

		col := colliderColor
		switch {
		case h.Grab.IsSelected():
			col = selectedColor
		case h == app.Interaction.hovered:
			col = hoveredColor
		case h == app.Interaction.gazed:
			col = gazedColor
		}

		b := o.Collider.Bounds()
		rl.DrawBoundingBox(rl.BoundingBox{Min: toRL(b.Min), Max: toRL(b.Max)}, col)
	}
}

// drawGaze marks where the viewer's gaze meets the scene
func (app *App) drawGaze() {
	position, forward := app.viewerPose()
	hit, ok := app.raycast(position, forward, physics.Everything)
	if !ok {
		return
	}
	radius := app.Camera.distance * 0.004
	rl.DrawSphere(toRL(hit.Point), radius, gazedColor)
}
