package ring

import (
	"bytes"
	"errors"
	"image/color"
	"log"

	"github.com/philipparndt/goring/pkg/frame"
	"github.com/philipparndt/goring/pkg/geometry"
	"github.com/philipparndt/goring/pkg/physics"
)

type fakeViewer struct {
	position, forward geometry.Vector3
}

func (v *fakeViewer) Position() geometry.Vector3 { return v.position }
func (v *fakeViewer) Forward() geometry.Vector3  { return v.forward }

type fakeRaycaster struct {
	hit      bool
	distance float64
	calls    int
	lastMask physics.LayerMask
	lastRay  geometry.Ray
}

func (f *fakeRaycaster) Raycast(ray geometry.Ray, mask physics.LayerMask) (physics.Hit, bool) {
	f.calls++
	f.lastMask = mask
	f.lastRay = ray
	if !f.hit {
		return physics.Hit{}, false
	}
	return physics.Hit{Distance: f.distance, Point: ray.At(f.distance)}, true
}

func (f *fakeRaycaster) at(distance float64) {
	f.hit = true
	f.distance = distance
}

func (f *fakeRaycaster) miss() {
	f.hit = false
}

type fakeBounds struct {
	box geometry.BoundingBox
}

func (b *fakeBounds) Bounds() geometry.BoundingBox { return b.box }

type fakePoint struct {
	p geometry.Vector3
}

func (p *fakePoint) Position() geometry.Vector3 { return p.p }

type fakePrefab string

func (p fakePrefab) Name() string { return string(p) }

type fakeVisual struct {
	position   geometry.Vector3
	scale      geometry.Vector3
	active     bool
	color      color.Color
	noRenderer bool
	lookAts    []geometry.Vector3
	scales     []geometry.Vector3
}

func (v *fakeVisual) SetPosition(p geometry.Vector3) { v.position = p }
func (v *fakeVisual) LookAt(t geometry.Vector3)      { v.lookAts = append(v.lookAts, t) }
func (v *fakeVisual) SetLocalScale(s geometry.Vector3) {
	v.scale = s
	v.scales = append(v.scales, s)
}
func (v *fakeVisual) LocalScale() geometry.Vector3 { return v.scale }
func (v *fakeVisual) SetActive(a bool)             { v.active = a }
func (v *fakeVisual) ActiveSelf() bool             { return v.active }
func (v *fakeVisual) SetColor(c color.Color) bool {
	if v.noRenderer {
		return false
	}
	v.color = c
	return true
}

type fakeSpawner struct {
	visual   *fakeVisual
	err      error
	calls    int
	position geometry.Vector3
}

func (s *fakeSpawner) Instantiate(prefab Prefab, position geometry.Vector3) (Visual, error) {
	s.calls++
	s.position = position
	if s.err != nil {
		return nil, s.err
	}
	return s.visual, nil
}

type fakeSelection struct {
	entered, exited []func(any)
}

func (s *fakeSelection) SubscribeSelect(entered, exited func(any)) func() {
	s.entered = append(s.entered, entered)
	s.exited = append(s.exited, exited)
	return func() {
		s.entered = nil
		s.exited = nil
	}
}

func (s *fakeSelection) selectEnter() {
	for _, fn := range s.entered {
		fn("enter")
	}
}

func (s *fakeSelection) selectExit() {
	for _, fn := range s.exited {
		fn("exit")
	}
}

// rig bundles an indicator with its fakes
type rig struct {
	r         *Indicator
	viewer    *fakeViewer
	ray       *fakeRaycaster
	visual    *fakeVisual
	spawner   *fakeSpawner
	selection *fakeSelection
	sched     *frame.Scheduler
	logs      *bytes.Buffer
	shown     int
	hidden    int
}

const frameTime = 1.0 / 60

func newRig(cfg Config) *rig {
	g := &rig{
		viewer:    &fakeViewer{position: geometry.Vector3{Z: -2}, forward: geometry.Forward},
		ray:       &fakeRaycaster{},
		visual:    &fakeVisual{},
		selection: &fakeSelection{},
		sched:     frame.NewScheduler(),
		logs:      &bytes.Buffer{},
	}
	g.spawner = &fakeSpawner{visual: g.visual}
	return g.build(cfg, g.deps())
}

func (g *rig) deps() Deps {
	return Deps{
		Viewer:    g.viewer,
		Raycaster: g.ray,
		Prefab:    fakePrefab("Ring"),
		Spawner:   g.spawner,
		Collider:  &fakeBounds{box: geometry.BoxFromCenter(geometry.Vector3{Y: 1}, geometry.One)},
		Anchor:    &fakePoint{p: geometry.Vector3{X: 3}},
		Selection: g.selection,
		Scheduler: g.sched,
		Logger:    log.New(g.logs, "", 0),
	}
}

func (g *rig) build(cfg Config, deps Deps) *rig {
	r, err := New(cfg, deps)
	if err != nil {
		panic(err)
	}
	g.r = r
	r.OnShown(func() { g.shown++ })
	r.OnHidden(func() { g.hidden++ })
	return g
}

// start initializes and enables the indicator
func (g *rig) start() *rig {
	if err := g.r.Init(); err != nil {
		panic(err)
	}
	if err := g.r.Enable(); err != nil {
		panic(err)
	}
	return g
}

func (g *rig) tick(frames int) {
	for i := 0; i < frames; i++ {
		g.sched.Tick(frameTime, func(float64) { g.r.Tick() })
	}
}

var errSpawn = errors.New("out of memory")
