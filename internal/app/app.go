// Package app is an interactive raylib viewer for ring scenarios. The
// camera plays the VR viewer: moving it closer to an object and looking at
// it shows the object's ring.
package app

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/goring/internal/sim"
	"github.com/philipparndt/goring/internal/viewstate"
)

type App struct {
	Camera      CameraState
	Scene       SceneData
	View        ViewSettings
	Interaction InteractionState
	FileWatch   FileWatchState
	UI          UIState

	store *viewstate.Store
}

// Run opens a window on the scenario at path and runs it until the window closes
func Run(path string) error {
	world, err := loadWorld(path)
	if err != nil {
		return err
	}

	// Initialize window
	screenWidth := int32(1400)
	screenHeight := int32(900)
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi | rl.FlagMsaa4xHint) // Must be before InitWindow
	rl.InitWindow(screenWidth, screenHeight, "goring")
	rl.SetTargetFPS(int32(world.Scenario.FPS))

	app := &App{
		Scene: SceneData{world: world},
		View: ViewSettings{
			showColliders: true,
			showGaze:      true,
			showTimeline:  true,
		},
		FileWatch: FileWatchState{sourceFile: path},
	}

	if err := app.setupFileWatcher(); err != nil {
		fmt.Printf("Warning: Failed to set up file watching: %v\n", err)
		fmt.Println("Auto-reload will not be available")
	} else {
		defer app.FileWatch.fileWatcher.Close()
	}

	app.UI.font = rl.GetFontDefault()
	app.Scene.material = rl.LoadMaterialDefault()

	// Start where the scenario places the viewer at time zero
	app.setupCamera(world)
	app.loadView()
	defer app.saveView()

	// Main loop
	for !rl.WindowShouldClose() {
		// Check for Ctrl+C to exit
		ctrlPressed := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl)
		if ctrlPressed && rl.IsKeyPressed(rl.KeyC) {
			break
		}

		if app.FileWatch.needsReload && !app.FileWatch.isLoading {
			app.FileWatch.needsReload = false
			app.reloadWorld()
		}

		// Apply reloaded world if ready (must be on main thread)
		app.applyLoadedWorld()

		// Update
		app.handleInput()
		app.updateCamera()
		app.step(rl.GetFrameTime())

		// Draw
		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(15, 18, 25, 255))

		rl.BeginMode3D(app.Camera.camera)
		rl.DrawGrid(20, app.Scene.size/4)
		app.drawObjects()
		if app.View.showColliders {
			app.drawColliders()
		}
		if app.View.showGaze {
			app.drawGaze()
		}
		rl.EndMode3D()

		app.drawUI()

		rl.EndDrawing()
	}

	// Cleanup
	app.Scene.releaseMeshes()
	rl.UnloadMaterial(app.Scene.material)
	rl.CloseWindow()
	return nil
}

// step moves the viewer to the camera and advances the world one frame
func (app *App) step(dt float32) {
	position, forward := app.viewerPose()
	app.Scene.world.SetViewer(position, forward)
	if app.View.paused || dt <= 0 {
		return
	}
	app.Scene.world.Step(float64(dt))
}

// setupCamera orbits around the point the scenario viewer looks at
func (app *App) setupCamera(w *sim.World) {
	bbox := w.Bounds()
	size := bbox.Size()
	maxDim := math.Max(size.X, math.Max(size.Y, size.Z))
	app.Scene.size = float32(maxDim)

	eye, forward := w.Scenario.ViewerAt(0)
	distance := eye.Distance(bbox.Center())
	if distance < 1e-3 {
		distance = bbox.Diagonal() * 2
	}
	target := eye.Add(forward.Normalize().Mul(distance))

	// Angles of the eye as seen from the target
	offset := eye.Sub(target)
	angleX := float32(math.Asin(offset.Y / distance))
	angleY := float32(math.Atan2(offset.X, offset.Z))

	app.Camera.target = toRL(target)
	app.Camera.distance = float32(distance)
	app.Camera.angleX = angleX
	app.Camera.angleY = angleY

	// Save default camera settings for reset
	app.Camera.defaultTarget = app.Camera.target
	app.Camera.defaultDist = app.Camera.distance
	app.Camera.defaultAngleX = angleX
	app.Camera.defaultAngleY = angleY

	app.Camera.camera = rl.Camera3D{
		Position:   toRL(eye),
		Target:     app.Camera.target,
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       60.0,
		Projection: rl.CameraPerspective,
	}
}
