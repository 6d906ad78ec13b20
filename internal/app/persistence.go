package app

import (
	"fmt"

	"github.com/philipparndt/goring/internal/viewstate"
)

// loadView restores the camera and toggles saved for the scenario
func (app *App) loadView() {
	store, err := viewstate.Open()
	if err != nil {
		fmt.Printf("Warning: %v\n", err)
	}
	app.store = store

	v, ok, err := store.Load(app.FileWatch.sourceFile)
	if err != nil {
		fmt.Printf("Warning: %v\n", err)
		return
	}
	if !ok {
		return
	}

	app.Camera.distance = float32(v.Distance)
	app.Camera.angleX = float32(v.AngleX)
	app.Camera.angleY = float32(v.AngleY)
	app.Camera.target = toRL(v.Target.Vector3())
	app.View.showColliders = v.ShowColliders
	app.View.showGaze = v.ShowGaze
	app.View.showTimeline = v.ShowTimeline
	fmt.Println("Restored saved view")
}

// saveView stores the camera and toggles for the next session
func (app *App) saveView() {
	if app.store == nil {
		return
	}
	v := viewstate.View{
		Distance:      float64(app.Camera.distance),
		AngleX:        float64(app.Camera.angleX),
		AngleY:        float64(app.Camera.angleY),
		Target:        viewstate.VecOf(fromRL(app.Camera.target)),
		ShowColliders: app.View.showColliders,
		ShowGaze:      app.View.showGaze,
		ShowTimeline:  app.View.showTimeline,
	}
	if err := app.store.Save(app.FileWatch.sourceFile, v); err != nil {
		fmt.Printf("Warning: %v\n", err)
	}
}
