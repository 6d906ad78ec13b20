package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/goring/internal/scenario"
	"github.com/philipparndt/goring/internal/sim"
	"github.com/philipparndt/goring/internal/viewstate"
	"github.com/philipparndt/goring/pkg/frame"
	"github.com/philipparndt/goring/pkg/geometry"
	"github.com/philipparndt/goring/pkg/ring"
	"github.com/philipparndt/goring/pkg/viewer"
)

const timelineRows = 10

type App struct {
	window    fyne.Window
	path      string
	world     *sim.World
	view      *viewer.SceneView
	selected  *sim.Host
	paused    bool
	ticker    *time.Ticker
	stop      chan struct{}
	inspector *Inspector
	store     *viewstate.Store
}

type Inspector struct {
	timeLabel     *widget.Label
	viewerLabel   *widget.Label
	ringsLabel    *widget.Label
	selectedLabel *widget.Label
	timelineLabel *widget.Label
	grabButton    *widget.Button
	enableButton  *widget.Button
	pauseButton   *widget.Button
}

func main() {
	a := app.New()
	w := a.NewWindow("goring - Ring Indicator Inspector")

	store, err := viewstate.Open()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	appInstance := &App{
		window: w,
		store:  store,
	}
	w.SetOnClosed(func() {
		appInstance.stopTicker()
		appInstance.saveView()
	})

	// Check if file was provided as argument
	if len(os.Args) > 1 {
		appInstance.loadFile(os.Args[1])
	} else {
		appInstance.showWelcomeScreen()
	}

	w.Resize(fyne.NewSize(1200, 800))
	w.ShowAndRun()
}

func (a *App) showWelcomeScreen() {
	welcomeLabel := widget.NewLabel("Welcome to goring")
	welcomeLabel.TextStyle = fyne.TextStyle{Bold: true}

	instructionLabel := widget.NewLabel("Click 'Open Scenario' to load a YAML or TOML scenario")

	openButton := widget.NewButton("Open Scenario", func() {
		a.showFileDialog()
	})

	content := container.NewVBox(
		layout.NewSpacer(),
		container.NewCenter(welcomeLabel),
		container.NewCenter(instructionLabel),
		layout.NewSpacer(),
		container.NewCenter(openButton),
		layout.NewSpacer(),
	)

	a.window.SetContent(content)
}

func (a *App) showFileDialog() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		a.loadFile(reader.URI().Path())
	}, a.window)
}

func (a *App) loadFile(filename string) {
	f, err := scenario.Load(filename)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	world, err := sim.Build(f, sim.Options{ManualViewer: true})
	if err != nil {
		dialog.ShowError(fmt.Errorf("failed to build scenario: %w", err), a.window)
		return
	}

	a.stopTicker()
	a.saveView()
	a.path = filename
	a.world = world
	a.selected = nil
	a.paused = false
	a.setupMainUI()
	a.startTicker()
}

func (a *App) setupMainUI() {
	a.inspector = &Inspector{
		timeLabel:     widget.NewLabel(""),
		viewerLabel:   widget.NewLabel(""),
		ringsLabel:    widget.NewLabel(""),
		selectedLabel: widget.NewLabel("Selected: none"),
		timelineLabel: widget.NewLabel(""),
	}
	a.inspector.ringsLabel.TextStyle = fyne.TextStyle{Monospace: true}
	a.inspector.timelineLabel.TextStyle = fyne.TextStyle{Monospace: true}
	a.inspector.selectedLabel.TextStyle = fyne.TextStyle{Bold: true}

	// The camera is the viewer the rings look for
	cam := viewer.NewCamera(a.world.Bounds())
	if v, ok, err := a.store.Load(a.path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	} else if ok {
		cam.Distance = v.Distance
		cam.RotationX = v.AngleX
		cam.RotationY = v.AngleY
		cam.Target = v.Target.Vector3()
		cam.UpdatePosition()
	}
	a.view = viewer.NewSceneView(a.world.Scene, cam)
	a.view.SetOnTap(a.pick)
	a.view.SetOnCameraMove(func(*viewer.Camera) {
		a.refreshInspector()
	})

	a.inspector.grabButton = widget.NewButton("Grab", func() {
		a.toggleGrab()
	})
	a.inspector.enableButton = widget.NewButton("Disable Ring", func() {
		a.toggleEnabled()
	})
	a.inspector.pauseButton = widget.NewButton("Pause", func() {
		a.paused = !a.paused
		a.refreshInspector()
	})
	restartButton := widget.NewButton("Restart", func() {
		a.loadFile(a.path)
	})
	openButton := widget.NewButton("Open Scenario", func() {
		a.showFileDialog()
	})

	instructions := widget.NewLabel(
		"Instructions:\n" +
			"• Drag to rotate the view\n" +
			"• Scroll to move closer or further away\n" +
			"• Rings show on objects you look at from close enough\n" +
			"• Click an object to select it",
	)
	instructions.Wrapping = fyne.TextWrapWord

	infoPanel := container.NewVBox(
		widget.NewLabel("Scenario:"),
		widget.NewSeparator(),
		widget.NewLabel(a.path),
		a.inspector.timeLabel,
		a.inspector.viewerLabel,
		widget.NewSeparator(),
		widget.NewLabel("Rings:"),
		a.inspector.ringsLabel,
		widget.NewSeparator(),
		a.inspector.selectedLabel,
		container.NewGridWithColumns(2, a.inspector.grabButton, a.inspector.enableButton),
		widget.NewSeparator(),
		widget.NewLabel("Timeline:"),
		a.inspector.timelineLabel,
		widget.NewSeparator(),
		instructions,
		widget.NewSeparator(),
		container.NewGridWithColumns(3, a.inspector.pauseButton, restartButton, openButton),
	)

	infoScroll := container.NewVScroll(infoPanel)
	infoScroll.SetMinSize(fyne.NewSize(360, 0))

	content := container.NewBorder(
		nil,        // top
		nil,        // bottom
		nil,        // left
		infoScroll, // right
		a.view,     // center
	)

	a.window.SetContent(content)
	a.refreshInspector()
}

// saveView remembers the camera of the current scenario
func (a *App) saveView() {
	if a.world == nil || a.view == nil {
		return
	}
	// Keep the display toggles of the raylib viewer
	v, ok, _ := a.store.Load(a.path)
	if !ok {
		v = viewstate.View{ShowColliders: true, ShowGaze: true, ShowTimeline: true}
	}
	cam := a.view.Camera()
	v.Distance = cam.Distance
	v.AngleX = cam.RotationX
	v.AngleY = cam.RotationY
	v.Target = viewstate.VecOf(cam.Target)
	if err := a.store.Save(a.path, v); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
}

// startTicker steps the world at the scenario frame rate on the UI thread
func (a *App) startTicker() {
	dt := frame.FixedStep(a.world.Scenario.FPS)
	a.ticker = time.NewTicker(time.Duration(dt * float64(time.Second)))
	a.stop = make(chan struct{})

	// Ticks can arrive late while the UI is busy, step by the time that passed
	clock := frame.NewClock()
	go func(ticker *time.Ticker, stop chan struct{}) {
		for {
			select {
			case <-ticker.C:
				fyne.Do(func() { a.step(clock.Delta()) })
			case <-stop:
				return
			}
		}
	}(a.ticker, a.stop)
}

func (a *App) stopTicker() {
	if a.ticker == nil {
		return
	}
	a.ticker.Stop()
	close(a.stop)
	a.ticker = nil
}

func (a *App) step(dt float64) {
	if a.world == nil {
		return
	}
	cam := a.view.Camera()
	a.view.Update(func() {
		a.world.SetViewer(cam.Position(), cam.Forward())
		if !a.paused {
			a.world.Step(dt)
		}
	})
	a.refreshInspector()
}

// pick selects the object under the tap, or clears the selection
func (a *App) pick(ray geometry.Ray) {
	h, ok := a.world.HostAt(ray)
	if !ok {
		a.selected = nil
	} else {
		a.selected = h
	}
	a.refreshInspector()
}

func (a *App) toggleGrab() {
	h := a.selected
	if h == nil {
		return
	}
	action := scenario.ActionSelect
	if h.Grab.IsSelected() {
		action = scenario.ActionDeselect
	}
	a.apply(action, h)
}

func (a *App) toggleEnabled() {
	h := a.selected
	if h == nil || h.Indicator == nil {
		return
	}
	action := scenario.ActionDisable
	if h.Indicator.State() == ring.StateInactive {
		action = scenario.ActionEnable
	}
	a.apply(action, h)
}

func (a *App) apply(action string, h *sim.Host) {
	var err error
	a.view.Update(func() {
		err = a.world.Apply(action, h.Name)
	})
	if err != nil {
		dialog.ShowError(err, a.window)
	}
	a.refreshInspector()
}

func (a *App) refreshInspector() {
	in := a.inspector
	w := a.world

	status := ""
	if a.paused {
		status = " (paused)"
		in.pauseButton.SetText("Resume")
	} else {
		in.pauseButton.SetText("Pause")
	}
	in.timeLabel.SetText(fmt.Sprintf("Time: %.2fs  Frame: %d%s", w.Time(), w.Frame(), status))

	eye := a.view.Camera().Position()
	in.viewerLabel.SetText(fmt.Sprintf("Viewer: (%.2f, %.2f, %.2f)", eye.X, eye.Y, eye.Z))

	var rings strings.Builder
	for _, s := range w.Statuses() {
		fmt.Fprintf(&rings, "%-12s %-8s visible=%-5v scale=%.2f\n", s.Name, s.State, s.Visible, s.Scale.X)
	}
	in.ringsLabel.SetText(strings.TrimRight(rings.String(), "\n"))

	var timeline strings.Builder
	entries := w.Timeline.Entries
	if len(entries) > timelineRows {
		entries = entries[len(entries)-timelineRows:]
	}
	for _, e := range entries {
		timeline.WriteString(e.String())
		timeline.WriteString("\n")
	}
	in.timelineLabel.SetText(strings.TrimRight(timeline.String(), "\n"))

	h := a.selected
	if h == nil {
		in.selectedLabel.SetText("Selected: none")
		in.grabButton.Disable()
		in.enableButton.Disable()
		return
	}

	in.selectedLabel.SetText("Selected: " + h.Name)
	in.grabButton.Enable()
	if h.Grab.IsSelected() {
		in.grabButton.SetText("Release")
	} else {
		in.grabButton.SetText("Grab")
	}

	if h.Indicator == nil || h.InitErr != nil || h.Object.Destroyed() {
		in.enableButton.Disable()
		return
	}
	in.enableButton.Enable()
	if h.Indicator.State() == ring.StateInactive {
		in.enableButton.SetText("Enable Ring")
	} else {
		in.enableButton.SetText("Disable Ring")
	}
}
