// Package tui runs a scenario in the terminal. The map shows the scene from
// above and the keyboard moves the viewer the rings react to.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/philipparndt/goring/internal/scenario"
	"github.com/philipparndt/goring/internal/sim"
	"github.com/philipparndt/goring/pkg/frame"
	"github.com/philipparndt/goring/pkg/geometry"
	"github.com/philipparndt/goring/pkg/physics"
	"github.com/philipparndt/goring/pkg/ring"
)

// Movement per key press
const (
	walkStep = 0.1
	turnStep = 0.1
)

// panelWidth is the width of the status panel right of the map
const panelWidth = 44

// App is the terminal viewer of one world
type App struct {
	screen tcell.Screen
	world  *sim.World
	chime  *Chime
	view   *Viewport
	pose   Pose
	paused bool
	dt     float64
}

// New creates a viewer of w on screen. The world must be built with
// sim.Options.ManualViewer. chime may be nil.
func New(screen tcell.Screen, w *sim.World, chime *Chime) *App {
	position, forward := w.Scenario.ViewerAt(0)
	a := &App{
		screen: screen,
		world:  w,
		chime:  chime,
		pose:   PoseOf(position, forward),
		dt:     frame.FixedStep(w.Scenario.FPS),
	}

	for _, h := range w.Hosts {
		if h.Indicator == nil {
			continue
		}
		h.Indicator.OnShown(func() { a.chime.Play(ShownTone) })
		h.Indicator.OnHidden(func() { a.chime.Play(HiddenTone) })
	}

	a.layout()
	a.world.SetViewer(a.pose.Position, a.pose.Forward())
	return a
}

// Pose returns the viewer pose
func (a *App) Pose() Pose {
	return a.pose
}

func (a *App) layout() {
	width, height := a.screen.Size()
	mapWidth := max(width-panelWidth-1, 10)

	bounds := a.world.Bounds()
	bounds.Extend(a.pose.Position)
	a.view = NewViewport(bounds, 0, 0, mapWidth, height)
}

// Run steps the world at the scenario frame rate and draws it until the
// user quits or ctx is done
func (a *App) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Duration(a.dt * float64(time.Second)))
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go pollEvents(a.screen, events, done)

	a.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !a.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			a.Step()
			a.Draw()
		}
	}
}

// pollEvents forwards screen events until the screen is finalized or done
// is closed
func pollEvents(screen tcell.Screen, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// Step advances the world one frame from the current pose
func (a *App) Step() {
	a.world.SetViewer(a.pose.Position, a.pose.Forward())
	if a.paused {
		return
	}
	a.world.Step(a.dt)
}

// HandleEvent applies a key press. It returns false when the user quits.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			a.pose.Turn(-turnStep, 0)
		case tcell.KeyRight:
			a.pose.Turn(turnStep, 0)
		case tcell.KeyUp:
			a.pose.Turn(0, turnStep)
		case tcell.KeyDown:
			a.pose.Turn(0, -turnStep)
		case tcell.KeyRune:
			return a.handleRune(ev.Rune())
		}

	case *tcell.EventResize:
		a.screen.Sync()
		a.layout()
	}
	return true
}

func (a *App) handleRune(r rune) bool {
	switch r {
	case 'q':
		return false
	case 'w':
		a.pose.Move(walkStep, 0)
	case 's':
		a.pose.Move(-walkStep, 0)
	case 'a':
		a.pose.Move(0, -walkStep)
	case 'd':
		a.pose.Move(0, walkStep)
	case 'r':
		a.pose.Position.Y += walkStep
	case 'f':
		a.pose.Position.Y -= walkStep
	case '+':
		a.view.Zoom(1.25)
	case '-':
		a.view.Zoom(0.8)
	case ' ':
		a.paused = !a.paused
	case 'g':
		a.toggleGrab()
	case 'e':
		a.toggleEnabled()
	}
	return true
}

// Gazed returns the host the viewer looks at
func (a *App) Gazed() (*sim.Host, bool) {
	return a.world.HostAt(geometry.NewRay(a.pose.Position, a.pose.Forward()))
}

func (a *App) toggleGrab() {
	h, ok := a.Gazed()
	if !ok {
		return
	}
	action := scenario.ActionSelect
	if h.Grab.IsSelected() {
		action = scenario.ActionDeselect
	}
	a.world.Apply(action, h.Name)
}

func (a *App) toggleEnabled() {
	h, ok := a.Gazed()
	if !ok || h.Indicator == nil {
		return
	}
	action := scenario.ActionDisable
	if h.Indicator.State() == ring.StateInactive {
		action = scenario.ActionEnable
	}
	a.world.Apply(action, h.Name)
}

// Styles of the map
var (
	styleDefault  = tcell.StyleDefault
	styleHost     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleVisible  = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleSelected = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleError    = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleViewer   = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleGaze     = tcell.StyleDefault.Foreground(tcell.ColorTeal)
	styleTitle    = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleDim      = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

func hostStyle(h *sim.Host) tcell.Style {
	switch {
	case h.InitErr != nil:
		return styleError
	case h.Grab.IsSelected():
		return styleSelected
	case h.Indicator != nil && h.Indicator.Visible():
		return styleVisible
	default:
		return styleHost
	}
}

// Draw renders the map and the status panel
func (a *App) Draw() {
	a.screen.Clear()
	a.drawHosts()
	a.drawGaze()
	a.drawViewer()
	a.drawPanel()
	a.screen.Show()
}

func (a *App) drawHosts() {
	for _, h := range a.world.Hosts {
		if !h.Object.ActiveInHierarchy() {
			continue
		}
		style := hostStyle(h)

		var b geometry.BoundingBox
		if h.Object.Collider != nil {
			b = h.Object.Collider.Bounds()
		} else {
			b = geometry.BoxFromCenter(h.Object.Position(), geometry.Zero)
		}

		x0, y0, _ := a.view.Cell(geometry.Vector3{X: b.Min.X, Z: b.Max.Z})
		x1, y1, _ := a.view.Cell(geometry.Vector3{X: b.Max.X, Z: b.Min.Z})
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				a.setCell(x, y, '▒', style)
			}
		}

		label := h.Name
		if h.Indicator != nil && h.Indicator.Visible() {
			label = "◯ " + label
		}
		a.text(x0, y0-1, label, style, a.view.Left+a.view.Width)
	}
}

func (a *App) drawGaze() {
	forward := a.pose.Forward()
	limit := a.view.Step() * float64(a.view.Width)
	if hit, ok := a.world.Scene.Physics.Raycast(geometry.NewRay(a.pose.Position, forward), physics.Everything); ok {
		limit = hit.Distance
	}

	step := a.view.Step() / 2
	for d := step; d < limit; d += step {
		x, y, ok := a.view.Cell(a.pose.Position.Add(forward.Mul(d)))
		if !ok {
			break
		}
		a.setCell(x, y, '·', styleGaze)
	}
}

func (a *App) drawViewer() {
	if x, y, ok := a.view.Cell(a.pose.Position); ok {
		a.setCell(x, y, arrow(a.pose.Forward()), styleViewer)
	}
}

func (a *App) drawPanel() {
	width, height := a.screen.Size()
	left := a.view.Left + a.view.Width + 1
	for y := 0; y < height; y++ {
		a.screen.SetContent(left-1, y, '│', nil, styleDim)
	}

	y := 0
	line := func(s string, style tcell.Style) {
		a.text(left, y, s, style, width)
		y++
	}

	w := a.world
	status := ""
	if a.paused {
		status = " paused"
	}
	line("goring", styleTitle)
	line(fmt.Sprintf("t=%.2fs frame %d%s", w.Time(), w.Frame(), status), styleDefault)
	p := a.pose.Position
	line(fmt.Sprintf("viewer (%.2f, %.2f, %.2f)", p.X, p.Y, p.Z), styleDefault)
	if h, ok := a.Gazed(); ok {
		line("gaze   "+h.Name, styleViewer)
	} else {
		line("gaze   -", styleDim)
	}
	y++

	line("Rings", styleTitle)
	for _, h := range w.Hosts {
		if h.Indicator == nil {
			continue
		}
		s := fmt.Sprintf("%-12s %-8s", h.Name, h.Indicator.State())
		if h.Indicator.Visible() {
			s += " shown"
		}
		if h.Indicator.Selected() {
			s += " held"
		}
		line(s, hostStyle(h))
	}
	y++

	help := []string{
		"w/s/a/d move  r/f up/down",
		"arrows look  +/- zoom",
		"g grab  e ring on/off",
		"space pause  q quit",
	}
	rows := height - y - len(help) - 2
	if rows > 0 {
		line("Timeline", styleTitle)
		entries := w.Timeline.Entries
		if len(entries) > rows {
			entries = entries[len(entries)-rows:]
		}
		for _, e := range entries {
			line(e.String(), styleDim)
		}
	}

	y = height - len(help)
	for _, h := range help {
		line(h, styleDim)
	}
}

// setCell draws on the map, cells outside it are dropped
func (a *App) setCell(x, y int, r rune, style tcell.Style) {
	if x < a.view.Left || x >= a.view.Left+a.view.Width || y < a.view.Top || y >= a.view.Top+a.view.Height {
		return
	}
	a.screen.SetContent(x, y, r, nil, style)
}

// text writes s from x, cut at column limit
func (a *App) text(x, y int, s string, style tcell.Style, limit int) {
	for _, r := range s {
		if x >= limit {
			return
		}
		a.screen.SetContent(x, y, r, nil, style)
		x++
	}
}
