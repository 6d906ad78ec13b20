package app

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/goring/internal/scenario"
	"github.com/philipparndt/goring/internal/sim"
	"github.com/philipparndt/goring/pkg/geometry"
	"github.com/philipparndt/goring/pkg/physics"
	"github.com/philipparndt/goring/pkg/ring"
)

// handleInput processes user input
func (app *App) handleInput() {
	// Camera view preset shortcuts
	if rl.IsKeyPressed(rl.KeyHome) {
		app.resetCameraView()
	}
	if rl.IsKeyPressed(rl.KeyT) {
		app.setCameraTopView()
	}
	if rl.IsKeyPressed(rl.KeyOne) {
		app.setCameraFrontView()
	}
	if rl.IsKeyPressed(rl.KeyTwo) {
		app.setCameraBackView()
	}
	if rl.IsKeyPressed(rl.KeyThree) {
		app.setCameraLeftView()
	}
	if rl.IsKeyPressed(rl.KeyFour) {
		app.setCameraRightView()
	}

	// View toggles
	if rl.IsKeyPressed(rl.KeyC) {
		app.View.showColliders = !app.View.showColliders
	}
	if rl.IsKeyPressed(rl.KeyV) {
		app.View.showGaze = !app.View.showGaze
	}
	if rl.IsKeyPressed(rl.KeyL) {
		app.View.showTimeline = !app.View.showTimeline
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		app.View.paused = !app.View.paused
	}
	if rl.IsKeyPressed(rl.KeyR) {
		app.restart()
	}

	app.updateHover()

	// Ring actions on the gazed object, or the one under the mouse
	target := app.Interaction.hovered
	if target == nil {
		target = app.Interaction.gazed
	}
	if rl.IsKeyPressed(rl.KeyG) {
		app.toggleGrab(target)
	}
	if rl.IsKeyPressed(rl.KeyE) && target != nil {
		action := scenario.ActionDisable
		if target.Indicator != nil && target.Indicator.State() == ring.StateInactive {
			action = scenario.ActionEnable
		}
		app.apply(action, target)
	}
	if rl.IsKeyPressed(rl.KeyF) && target != nil {
		app.focusOn(target.Object.Position())
	}

	// Track mouse down for click vs drag detection
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		app.Interaction.mouseDownPos = rl.GetMousePosition()
		app.Interaction.mouseMoved = false
		// Pan if Shift is pressed
		app.Interaction.isPanning = rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)
	}

	// Camera panning with Shift + mouse drag or middle mouse button drag
	if (rl.IsMouseButtonDown(rl.MouseLeftButton) && app.Interaction.isPanning) || rl.IsMouseButtonDown(rl.MouseMiddleButton) {
		delta := rl.GetMouseDelta()
		if delta.X != 0 || delta.Y != 0 {
			app.Interaction.mouseMoved = true
			app.doPan(delta)
		}
	} else if rl.IsMouseButtonDown(rl.MouseLeftButton) {
		// Camera rotation with mouse drag
		delta := rl.GetMouseDelta()
		if delta.X != 0 || delta.Y != 0 {
			app.Interaction.mouseMoved = true
			app.Camera.angleY -= delta.X * 0.005
			app.Camera.angleX += delta.Y * 0.005
			if app.Camera.angleX > 1.5 {
				app.Camera.angleX = 1.5
			}
			if app.Camera.angleX < -1.5 {
				app.Camera.angleX = -1.5
			}
		}
	}

	// Click without dragging grabs or releases the object under the mouse
	if rl.IsMouseButtonReleased(rl.MouseLeftButton) && !app.Interaction.mouseMoved && !app.Interaction.isPanning {
		app.toggleGrab(app.Interaction.hovered)
	}

	// Zoom changes the viewer's distance to the objects
	wheel := rl.GetMouseWheelMove()
	if wheel != 0 {
		app.Camera.distance -= wheel * app.Camera.distance * 0.1
		minDist := app.Scene.size * 0.05
		if app.Camera.distance < minDist {
			app.Camera.distance = minDist
		}
	}
	if rl.IsKeyDown(rl.KeyUp) || rl.IsKeyDown(rl.KeyW) {
		app.Camera.distance *= 0.98
	}
	if rl.IsKeyDown(rl.KeyDown) || rl.IsKeyDown(rl.KeyS) {
		app.Camera.distance *= 1.02
	}
}

// updateHover finds the hosts under the viewer's gaze and under the mouse
func (app *App) updateHover() {
	position, forward := app.viewerPose()
	app.Interaction.gazed = app.hostAt(position, forward)

	ray := rl.GetMouseRay(rl.GetMousePosition(), app.Camera.camera)
	app.Interaction.hovered = app.hostAt(fromRL(ray.Position), fromRL(ray.Direction))
}

func (app *App) raycast(origin, direction geometry.Vector3, mask physics.LayerMask) (physics.Hit, bool) {
	return app.Scene.world.Scene.Physics.Raycast(geometry.NewRay(origin, direction), mask)
}

// hostAt returns the host whose collider is hit first along the ray
func (app *App) hostAt(origin, direction geometry.Vector3) *sim.Host {
	h, _ := app.Scene.world.HostAt(geometry.NewRay(origin, direction))
	return h
}

// toggleGrab selects h or releases it when already selected
func (app *App) toggleGrab(h *sim.Host) {
	if h == nil {
		return
	}
	if h.Grab.IsSelected() {
		app.apply(scenario.ActionDeselect, h)
		return
	}
	// A single hand holds one object at a time
	for _, other := range app.Scene.world.Hosts {
		if other != h && other.Grab.IsSelected() {
			app.apply(scenario.ActionDeselect, other)
		}
	}
	app.apply(scenario.ActionSelect, h)
}

func (app *App) apply(action string, h *sim.Host) {
	if err := app.Scene.world.Apply(action, h.Name); err != nil {
		fmt.Printf("Error: %s %s: %v\n", action, h.Name, err)
	}
}
