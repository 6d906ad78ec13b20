// Package sim hosts ring indicators in a scene built from a scenario and
// steps them frame by frame.
package sim

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/philipparndt/goring/internal/scenario"
	"github.com/philipparndt/goring/pkg/frame"
	"github.com/philipparndt/goring/pkg/geometry"
	"github.com/philipparndt/goring/pkg/physics"
	"github.com/philipparndt/goring/pkg/ring"
	"github.com/philipparndt/goring/pkg/scene"
	"github.com/philipparndt/goring/pkg/stl"
)

// Builtin ring prefab dimensions, in prefab units before scaling
const (
	RingInnerRadius = 0.42
	RingOuterRadius = 0.5
	RingSegments    = 48
)

var meshColor = color.RGBA{R: 160, G: 170, B: 190, A: 255}

// Options tune how a world is built
type Options struct {
	// Logger receives ring errors, defaults to stderr with a "ring: " prefix
	Logger *log.Logger
	// ManualViewer ignores the scenario keyframes so a UI can drive the viewer
	ManualViewer bool
}

// Host is a grabbable object with its ring
type Host struct {
	Name      string
	Object    *scene.Object
	Grab      *scene.GrabInteractable
	Indicator *ring.Indicator
	// InitErr is set when the ring could not be initialized
	InitErr error
	// Mesh is the object's own mesh, nil for box and empty colliders
	Mesh *stl.Model
}

// Ring returns the ring visual, nil when initialization failed
func (h *Host) Ring() *scene.Object {
	if h.Indicator == nil {
		return nil
	}
	if v, ok := h.Indicator.Visual().(*scene.Object); ok {
		return v
	}
	return nil
}

// World is a running scenario
type World struct {
	Scenario  *scenario.File
	Scene     *scene.Scene
	Scheduler *frame.Scheduler
	Viewer    *scene.Object
	Hosts     []*Host
	Timeline  *Timeline
	Prefab    *scene.Prefab

	opts      Options
	log       *log.Logger
	time      float64
	nextEvent int
}

// Build creates the scene, the ring of every object with a ring section,
// and initializes and enables the rings. Ring initialization failures are
// recorded on the host and in the timeline, they do not fail Build.
func Build(f *scenario.File, opts Options) (*World, error) {
	logger := opts.Logger
	if logger == nil {
		logger = ring.NewLogger()
	}

	w := &World{
		Scenario:  f,
		Scene:     scene.New(),
		Scheduler: frame.NewScheduler(),
		Viewer:    scene.NewObject("Viewer"),
		Timeline:  &Timeline{},
		opts:      opts,
		log:       logger,
	}

	prefab, err := loadPrefab(f)
	if err != nil {
		return nil, err
	}
	w.Prefab = prefab

	w.Scene.Add(w.Viewer)
	w.placeViewer(0)

	for i := range f.Objects {
		host, err := w.addHost(&f.Objects[i])
		if err != nil {
			return nil, fmt.Errorf("failed to build object %s: %w", f.Objects[i].Name, err)
		}
		w.Hosts = append(w.Hosts, host)
	}

	for _, h := range w.Hosts {
		w.startRing(h)
	}
	return w, nil
}

func loadPrefab(f *scenario.File) (*scene.Prefab, error) {
	var mesh *stl.Model
	if f.Prefab == scenario.BuiltinRing {
		m, err := stl.NewRingModel("Ring", RingInnerRadius, RingOuterRadius, RingSegments)
		if err != nil {
			return nil, fmt.Errorf("failed to build ring prefab: %w", err)
		}
		mesh = m
	} else {
		m, err := f.LoadMesh(context.Background(), f.Prefab)
		if err != nil {
			return nil, fmt.Errorf("failed to load prefab: %w", err)
		}
		mesh = m
	}

	prefab := scene.NewMeshPrefab("Ring", mesh)
	prefab.WithRenderer = f.PrefabRenderer == nil || *f.PrefabRenderer
	return prefab, nil
}

func (w *World) addHost(o *scenario.Object) (*Host, error) {
	obj := scene.NewObject(o.Name)
	obj.Layer = o.Layer
	obj.SetPosition(o.Position.Vector3())
	if o.Scale != nil {
		obj.SetLocalScale(o.Scale.Vector3())
	}
	w.Scene.Add(obj)

	host := &Host{Name: o.Name, Object: obj, Grab: scene.NewGrabInteractable(obj)}

	switch o.Collider.Type {
	case scenario.ColliderBox:
		w.Scene.AddBoxCollider(obj, o.Collider.Center.Vector3(), o.Collider.Size.Vector3())
	case scenario.ColliderMesh:
		mesh, err := w.Scenario.LoadMesh(context.Background(), o.Collider.Mesh)
		if err != nil {
			return nil, fmt.Errorf("failed to load collider mesh: %w", err)
		}
		host.Mesh = mesh
		obj.Renderer = &scene.MeshRenderer{Mesh: mesh, Color: meshColor}
		w.Scene.AddMeshCollider(obj)
	}

	for _, a := range o.Anchors {
		anchor := scene.NewObject(a.Name)
		anchor.SetParent(obj)
		anchor.SetLocalPosition(a.Position.Vector3())
	}

	if o.Ring == nil {
		return host, nil
	}

	cfg, err := o.Ring.Config()
	if err != nil {
		return nil, err
	}

	deps := ring.Deps{
		Viewer:    w.Viewer,
		Raycaster: w.Scene.Physics,
		Prefab:    prefabAsset{w.Prefab},
		Spawner:   &spawner{prefab: w.Prefab, host: obj},
		Selection: host.Grab,
		Scheduler: w.Scheduler,
		Logger:    w.log,
	}
	if obj.Collider != nil {
		deps.Collider = obj.Collider
	}
	if o.Ring.CustomAnchor != "" {
		if anchor := obj.Find(o.Ring.CustomAnchor); anchor != nil {
			deps.Anchor = anchor
		}
	}

	indicator, err := ring.New(cfg, deps)
	if err != nil {
		return nil, err
	}
	host.Indicator = indicator

	name := o.Name
	indicator.OnShown(func() { w.record(name, EntryShown, "") })
	indicator.OnHidden(func() { w.record(name, EntryHidden, "") })
	return host, nil
}

func (w *World) startRing(h *Host) {
	if h.Indicator == nil {
		return
	}
	if err := h.Indicator.Init(); err != nil {
		h.InitErr = err
		w.record(h.Name, EntryInitError, err.Error())
		return
	}
	if err := h.Indicator.Enable(); err != nil {
		w.record(h.Name, EntryError, err.Error())
	}
}

// Time returns the simulated seconds
func (w *World) Time() float64 {
	return w.time
}

// Frame returns the number of simulated frames
func (w *World) Frame() uint64 {
	return w.Scheduler.Frame()
}

// Host returns the host named name
func (w *World) Host(name string) (*Host, bool) {
	for _, h := range w.Hosts {
		if h.Name == name {
			return h, true
		}
	}
	return nil, false
}

// HostAt returns the host whose collider the ray hits first, on any layer
func (w *World) HostAt(ray geometry.Ray) (*Host, bool) {
	hit, ok := w.Scene.Physics.Raycast(ray, physics.Everything)
	if !ok {
		return nil, false
	}
	for _, h := range w.Hosts {
		if h.Object.Collider != nil && h.Object.Collider == hit.Collider {
			return h, true
		}
	}
	return nil, false
}

// Bounds returns the box around every host collider, or around the host
// positions for hosts without one
func (w *World) Bounds() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, h := range w.Hosts {
		if h.Object.Collider == nil {
			bbox.Extend(h.Object.Position())
			continue
		}
		b := h.Object.Collider.Bounds()
		bbox.Extend(b.Min)
		bbox.Extend(b.Max)
	}
	if bbox.IsEmpty() {
		bbox = geometry.BoxFromCenter(geometry.Zero, geometry.One)
	}
	return bbox
}

// SetViewer moves the viewer. Used with Options.ManualViewer.
func (w *World) SetViewer(position, forward geometry.Vector3) {
	w.Viewer.SetPosition(position)
	if forward.Length() > 1e-9 {
		w.Viewer.SetRotation(geometry.LookRotation(forward, geometry.Up))
	}
}

func (w *World) placeViewer(t float64) {
	if w.opts.ManualViewer {
		return
	}
	position, forward := w.Scenario.ViewerAt(t)
	w.SetViewer(position, forward)
}

// Step advances one frame of dt seconds. Scripted events due by the end of
// the frame run first, then the viewer moves, then every ring updates and
// finally running animations advance.
func (w *World) Step(dt float64) {
	w.time += dt

	events := w.Scenario.Events
	for w.nextEvent < len(events) && events[w.nextEvent].Time <= w.time+1e-9 {
		e := events[w.nextEvent]
		w.nextEvent++
		if err := w.Apply(e.Action, e.Target); err != nil {
			w.record(e.Target, EntryError, err.Error())
		}
	}

	w.placeViewer(w.time)

	w.Scheduler.Tick(dt, func(float64) {
		for _, h := range w.Hosts {
			if h.Indicator != nil {
				h.Indicator.Tick()
			}
		}
	})
}

// Run simulates the scenario duration at its frame rate
func (w *World) Run() *Timeline {
	return w.RunFor(w.Scenario.Frames(), frame.FixedStep(w.Scenario.FPS))
}

// RunFor simulates frames frames of dt seconds each
func (w *World) RunFor(frames int, dt float64) *Timeline {
	for i := 0; i < frames; i++ {
		w.Step(dt)
	}
	return w.Timeline
}

// Apply performs a scenario action on the host named target
func (w *World) Apply(action, target string) error {
	h, ok := w.Host(target)
	if !ok {
		return fmt.Errorf("unknown object %q", target)
	}
	if h.Object.Destroyed() && action != scenario.ActionDestroy {
		return fmt.Errorf("object %q was destroyed", target)
	}

	w.record(target, EntryAction, action)

	switch action {
	case scenario.ActionSelect:
		h.Grab.Select("scenario")
	case scenario.ActionDeselect:
		h.Grab.Deselect()
	case scenario.ActionEnable:
		if h.Indicator == nil {
			return nil
		}
		return h.Indicator.Enable()
	case scenario.ActionDisable:
		if h.Indicator == nil {
			return nil
		}
		return h.Indicator.Disable()
	case scenario.ActionDestroy:
		if h.Object.Destroyed() {
			return nil
		}
		w.Scene.Destroy(h.Object)
		if h.Indicator != nil {
			h.Indicator.Dispose()
		}
	default:
		return fmt.Errorf("unknown action %q", action)
	}
	return nil
}

func (w *World) record(object string, kind EntryKind, detail string) {
	w.Timeline.add(Entry{
		Frame:  w.Scheduler.Frame(),
		Time:   w.time,
		Object: object,
		Kind:   kind,
		Detail: detail,
	})
}

// Status describes the final state of one host
type Status struct {
	Name     string
	State    string
	Visible  bool
	Selected bool
	Scale    geometry.Vector3
}

// Statuses returns the state of every host with a ring
func (w *World) Statuses() []Status {
	var out []Status
	for _, h := range w.Hosts {
		if h.Indicator == nil {
			continue
		}
		s := Status{
			Name:     h.Name,
			State:    h.Indicator.State().String(),
			Visible:  h.Indicator.Visible(),
			Selected: h.Indicator.Selected(),
		}
		if r := h.Ring(); r != nil {
			s.Scale = r.LocalScale()
		}
		out = append(out, s)
	}
	return out
}

// PrintStatus writes the state table
func (w *World) PrintStatus(out io.Writer) {
	fmt.Fprintf(out, "%-12s %-14s %-8s %-9s %s\n", "OBJECT", "STATE", "VISIBLE", "SELECTED", "SCALE")
	for _, s := range w.Statuses() {
		fmt.Fprintf(out, "%-12s %-14s %-8v %-9v (%.3f, %.3f, %.3f)\n",
			s.Name, s.State, s.Visible, s.Selected, s.Scale.X, s.Scale.Y, s.Scale.Z)
	}
}

// DiscardLogger returns a logger that drops everything
func DiscardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}
