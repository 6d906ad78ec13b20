package tui

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/philipparndt/goring/internal/scenario"
	"github.com/philipparndt/goring/internal/sim"
	"github.com/philipparndt/goring/pkg/ring"
)

const mugScene = `
fps: 60
duration: 1
viewer:
  keyframes:
    - {time: 0, position: {z: -5}, forward: {z: 1}}
objects:
  - name: mug
    layer: 3
    collider: {type: box, size: {x: 0.3, y: 0.3, z: 0.3}}
    ring:
      layers: [3]
      threshold: 1.0
      maxScale: {x: 0.3, y: 0.3, z: 0.3}
`

func newTestApp(t *testing.T) (*App, tcell.SimulationScreen) {
	t.Helper()
	f, err := scenario.Parse([]byte(mugScene), scenario.FormatYAML)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if err := f.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	w, err := sim.Build(f, sim.Options{Logger: sim.DiscardLogger(), ManualViewer: true})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(100, 30)

	return New(screen, w, nil), screen
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func press(a *App, r rune, times int) {
	for range times {
		a.HandleEvent(key(r))
	}
}

func TestWalkShowsRing(t *testing.T) {
	a, _ := newTestApp(t)
	h, _ := a.world.Host("mug")

	a.Step()
	if h.Indicator.Visible() {
		t.Fatalf("Step failed: expected ring hidden at 5m")
	}

	press(a, 'w', 42)
	a.Step()
	if !h.Indicator.Visible() {
		t.Errorf("Step failed: expected ring shown at %v", a.Pose().Position)
	}
	if got := a.world.Timeline.Count("mug", sim.EntryShown); got != 1 {
		t.Errorf("Timeline failed: expected 1 shown entry, got %d", got)
	}

	press(a, 's', 42)
	a.Step()
	if h.Indicator.Visible() {
		t.Errorf("Step failed: expected ring hidden after walking back")
	}
	if got := a.world.Timeline.Count("mug", sim.EntryHidden); got != 1 {
		t.Errorf("Timeline failed: expected 1 hidden entry, got %d", got)
	}
}

func TestTurnAwayHidesRing(t *testing.T) {
	a, _ := newTestApp(t)
	h, _ := a.world.Host("mug")

	press(a, 'w', 42)
	a.Step()
	if !h.Indicator.Visible() {
		t.Fatalf("Step failed: expected ring shown")
	}

	for range 16 {
		a.HandleEvent(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
	}
	a.Step()
	if h.Indicator.Visible() {
		t.Errorf("Step failed: expected ring hidden when looking away")
	}
}

func TestGrabGazed(t *testing.T) {
	a, _ := newTestApp(t)
	h, _ := a.world.Host("mug")

	gazed, ok := a.Gazed()
	if !ok || gazed != h {
		t.Fatalf("Gazed failed: expected mug, got %v", gazed)
	}

	a.HandleEvent(key('g'))
	if !h.Grab.IsSelected() || !h.Indicator.Selected() {
		t.Errorf("Grab failed: expected mug selected")
	}
	a.HandleEvent(key('g'))
	if h.Grab.IsSelected() {
		t.Errorf("Grab failed: expected mug released")
	}
}

func TestToggleEnabled(t *testing.T) {
	a, _ := newTestApp(t)
	h, _ := a.world.Host("mug")

	a.HandleEvent(key('e'))
	if h.Indicator.State() != ring.StateInactive {
		t.Errorf("Disable failed: expected inactive, got %v", h.Indicator.State())
	}
	a.HandleEvent(key('e'))
	if h.Indicator.State() != ring.StateActive {
		t.Errorf("Enable failed: expected active, got %v", h.Indicator.State())
	}
}

func TestPause(t *testing.T) {
	a, _ := newTestApp(t)

	a.Step()
	before := a.world.Frame()
	a.HandleEvent(key(' '))
	a.Step()
	if a.world.Frame() != before {
		t.Errorf("Pause failed: expected frame %d, got %d", before, a.world.Frame())
	}
	a.HandleEvent(key(' '))
	a.Step()
	if a.world.Frame() != before+1 {
		t.Errorf("Resume failed: expected frame %d, got %d", before+1, a.world.Frame())
	}
}

func TestQuitKeys(t *testing.T) {
	a, _ := newTestApp(t)

	if !a.HandleEvent(key('w')) {
		t.Errorf("HandleEvent failed: expected w to keep running")
	}
	if a.HandleEvent(key('q')) {
		t.Errorf("HandleEvent failed: expected q to quit")
	}
	if a.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Errorf("HandleEvent failed: expected Esc to quit")
	}
}

func TestDraw(t *testing.T) {
	a, screen := newTestApp(t)
	a.Step()
	a.Draw()

	x, y, ok := a.view.Cell(a.Pose().Position)
	if !ok {
		t.Fatalf("Cell failed: expected viewer on the map")
	}
	if r, _, _, _ := screen.GetContent(x, y); r != '↑' {
		t.Errorf("Draw failed: expected viewer arrow at %d,%d, got %q", x, y, r)
	}

	left := a.view.Left + a.view.Width + 1
	title := ""
	for i := range len("goring") {
		r, _, _, _ := screen.GetContent(left+i, 0)
		title += string(r)
	}
	if title != "goring" {
		t.Errorf("Draw failed: expected panel title, got %q", title)
	}

	found := false
	for cy := range a.view.Height {
		for cx := range a.view.Width {
			if r, _, _, _ := screen.GetContent(cx, cy); r == '▒' {
				found = true
			}
		}
	}
	if !found {
		t.Errorf("Draw failed: expected the mug footprint on the map")
	}
}

func TestPollEventsStopsWhenDone(t *testing.T) {
	_, screen := newTestApp(t)

	// Nobody reads events, so the forwarder blocks on its first send
	events := make(chan tcell.Event)
	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		pollEvents(screen, events, done)
		close(finished)
	}()

	screen.InjectKey(tcell.KeyRune, 'w', tcell.ModNone)
	close(done)

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatalf("pollEvents failed: expected to return after done was closed")
	}
}
