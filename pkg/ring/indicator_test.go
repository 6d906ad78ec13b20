package ring

import (
	"errors"
	"image/color"
	"strings"
	"testing"

	"github.com/philipparndt/goring/pkg/geometry"
	"github.com/philipparndt/goring/pkg/physics"
)

func TestInitSelfAnchor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Color = color.RGBA{R: 0, G: 255, B: 204, A: 255}
	cfg.MinScale = geometry.Vector3{X: 0.1, Y: 0.1, Z: 0.1}
	g := newRig(cfg)

	if err := g.r.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	if g.r.State() != StateInactive {
		t.Errorf("Init state failed: expected %s, got %s", StateInactive, g.r.State())
	}
	if g.spawner.position != (geometry.Vector3{Y: 1}) {
		t.Errorf("Init position failed: expected collider center, got %v", g.spawner.position)
	}
	if g.visual.active {
		t.Errorf("Init failed: visual should start inactive")
	}
	if g.visual.scale != cfg.MinScale {
		t.Errorf("Init scale failed: expected %v, got %v", cfg.MinScale, g.visual.scale)
	}
	if g.visual.color != cfg.Color {
		t.Errorf("Init color failed: expected %v, got %v", cfg.Color, g.visual.color)
	}
}

func TestInitCustomAnchor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Anchor = AnchorCustom
	g := newRig(cfg)

	if err := g.r.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if g.spawner.position != (geometry.Vector3{X: 3}) {
		t.Errorf("Init position failed: expected anchor point, got %v", g.spawner.position)
	}
}

func TestInitErrors(t *testing.T) {
	tests := []struct {
		name   string
		cfg    func(*Config)
		deps   func(*Deps)
		reason InitReason
		target error
	}{
		{"missing viewer", nil, func(d *Deps) { d.Viewer = nil }, ReasonMissingViewer, ErrMissingViewer},
		{"missing prefab", nil, func(d *Deps) { d.Prefab = nil }, ReasonMissingPrefab, ErrMissingPrefab},
		{"missing spawner", nil, func(d *Deps) { d.Spawner = nil }, ReasonMissingSpawner, ErrMissingSpawner},
		{"missing raycaster", nil, func(d *Deps) { d.Raycaster = nil }, ReasonMissingRaycaster, ErrMissingRaycaster},
		{"missing scheduler", nil, func(d *Deps) { d.Scheduler = nil }, ReasonMissingScheduler, ErrMissingScheduler},
		{"missing collider", nil, func(d *Deps) { d.Collider = nil }, ReasonMissingCollider, ErrMissingCollider},
		{"missing anchor", func(c *Config) { c.Anchor = AnchorCustom }, func(d *Deps) { d.Anchor = nil }, ReasonMissingAnchor, ErrMissingAnchor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			if tt.cfg != nil {
				tt.cfg(&cfg)
			}
			g := newRig(cfg)
			deps := g.deps()
			tt.deps(&deps)
			g.build(cfg, deps)

			err := g.r.Init()
			var initErr *InitError
			if !errors.As(err, &initErr) {
				t.Fatalf("Init failed: expected *InitError, got %v", err)
			}
			if initErr.Reason != tt.reason {
				t.Errorf("Init reason failed: expected %d, got %d", tt.reason, initErr.Reason)
			}
			if !errors.Is(err, tt.target) {
				t.Errorf("errors.Is failed: expected %v to match %v", err, tt.target)
			}
			if g.r.State() != StateUninitialized {
				t.Errorf("Init state failed: expected uninitialized, got %s", g.r.State())
			}
			if g.spawner.calls != 0 {
				t.Errorf("Init failed: nothing should be spawned, got %d spawns", g.spawner.calls)
			}
			if !strings.Contains(g.logs.String(), tt.target.Error()) {
				t.Errorf("Init log failed: expected %q in %q", tt.target.Error(), g.logs.String())
			}
		})
	}
}

func TestSchedulerOptionalWithoutAnimation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Animation.Enabled = false
	g := newRig(cfg)
	deps := g.deps()
	deps.Scheduler = nil
	g.build(cfg, deps)

	if err := g.r.Init(); err != nil {
		t.Errorf("Init failed: scheduler should be optional without animation, got %v", err)
	}
}

func TestInitSpawnFailure(t *testing.T) {
	g := newRig(DefaultConfig())
	g.spawner.err = errSpawn

	err := g.r.Init()
	if !errors.Is(err, errSpawn) {
		t.Fatalf("Init failed: expected spawn error, got %v", err)
	}
	var initErr *InitError
	if !errors.As(err, &initErr) || initErr.Reason != ReasonSpawnFailed {
		t.Errorf("Init reason failed: expected ReasonSpawnFailed, got %v", err)
	}
}

func TestInitWithoutRendererStillWorks(t *testing.T) {
	g := newRig(DefaultConfig())
	g.visual.noRenderer = true

	if err := g.r.Init(); err != nil {
		t.Fatalf("Init failed: missing renderer should not fail, got %v", err)
	}
	if !strings.Contains(g.logs.String(), "no mesh renderer") {
		t.Errorf("Init log failed: expected renderer error, got %q", g.logs.String())
	}
	if err := g.r.Enable(); err != nil {
		t.Fatalf("Enable failed: %v", err)
	}

	g.ray.at(0.5)
	g.tick(1)
	if !g.r.Visible() {
		t.Errorf("Tick failed: ring without renderer should still show")
	}
}

func TestInitTwice(t *testing.T) {
	g := newRig(DefaultConfig()).start()
	if err := g.r.Init(); !errors.Is(err, ErrInvalidState) {
		t.Errorf("Init twice failed: expected ErrInvalidState, got %v", err)
	}
	if g.spawner.calls != 1 {
		t.Errorf("Init twice failed: visual must not be recreated, got %d spawns", g.spawner.calls)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ThresholdDistance = 0
	if _, err := New(cfg, Deps{}); err == nil {
		t.Errorf("New failed: expected error for zero threshold")
	}
}

func TestTickWithoutInitIsNoop(t *testing.T) {
	g := newRig(DefaultConfig())
	deps := g.deps()
	deps.Collider = nil
	g.build(DefaultConfig(), deps)

	if err := g.r.Init(); !errors.Is(err, ErrMissingCollider) {
		t.Fatalf("Init failed: expected ErrMissingCollider, got %v", err)
	}
	if err := g.r.Enable(); !errors.Is(err, ErrInvalidState) {
		t.Errorf("Enable failed: expected ErrInvalidState, got %v", err)
	}

	g.ray.at(0.5)
	g.tick(3)
	g.selection.selectEnter()

	if g.r.Visual() != nil {
		t.Errorf("Tick failed: expected no visual")
	}
	if g.ray.calls != 0 {
		t.Errorf("Tick failed: expected no raycasts, got %d", g.ray.calls)
	}
	if g.shown != 0 || g.hidden != 0 {
		t.Errorf("Tick failed: expected no events, got shown=%d hidden=%d", g.shown, g.hidden)
	}
}

func TestTickWhileDisabledIsNoop(t *testing.T) {
	g := newRig(DefaultConfig())
	if err := g.r.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	g.ray.at(0.5)
	g.tick(2)
	if g.ray.calls != 0 || g.r.Visible() {
		t.Errorf("Tick before Enable failed: expected no-op, got %d raycasts", g.ray.calls)
	}
}

func TestNoHitHides(t *testing.T) {
	g := newRig(DefaultConfig()).start()

	g.ray.miss()
	g.tick(5)

	if g.r.Visible() {
		t.Errorf("No hit failed: expected hidden")
	}
	if g.visual.scale != geometry.Zero {
		t.Errorf("No hit failed: expected min scale, got %v", g.visual.scale)
	}
	if g.hidden != 0 {
		t.Errorf("No hit failed: expected no hidden event while already hidden, got %d", g.hidden)
	}
	if len(g.visual.lookAts) != 0 {
		t.Errorf("No hit failed: expected no reorientation, got %d", len(g.visual.lookAts))
	}
}

func TestNoHitAfterShownIsSilent(t *testing.T) {
	g := newRig(DefaultConfig()).start()

	g.ray.at(0.5)
	g.tick(3)
	g.ray.miss()
	g.tick(1)

	if g.r.Visible() || g.visual.scale != geometry.Zero {
		t.Errorf("Miss failed: expected hidden at min scale, got active=%v scale=%v", g.visual.active, g.visual.scale)
	}
	if g.hidden != 0 {
		t.Errorf("Miss failed: a miss hides without notification, got %d hidden events", g.hidden)
	}
}

func TestRaycastUsesViewerAndMask(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LayerMask, _ = physics.MaskOf(3)
	g := newRig(cfg).start()
	g.viewer.position = geometry.Vector3{X: 1, Y: 2, Z: 3}
	g.viewer.forward = geometry.Vector3{X: 0, Y: 0, Z: 4}

	g.tick(1)

	if g.ray.lastMask != cfg.LayerMask {
		t.Errorf("Raycast mask failed: expected %v, got %v", cfg.LayerMask, g.ray.lastMask)
	}
	if g.ray.lastRay.Origin != g.viewer.position {
		t.Errorf("Raycast origin failed: expected %v, got %v", g.viewer.position, g.ray.lastRay.Origin)
	}
	if g.ray.lastRay.Direction != geometry.Forward {
		t.Errorf("Raycast direction failed: expected %v, got %v", geometry.Forward, g.ray.lastRay.Direction)
	}
}

// Threshold 1, scale 0 -> 1 in 0.1s, hit at 0.5
func TestShowAnimatesToMaxScale(t *testing.T) {
	g := newRig(DefaultConfig()).start()

	g.ray.at(0.5)
	g.tick(1)

	if !g.r.Visible() {
		t.Fatalf("Show failed: expected visible")
	}
	if g.shown != 1 {
		t.Errorf("Show failed: expected 1 shown event, got %d", g.shown)
	}
	if !g.r.Animating() {
		t.Errorf("Show failed: expected animation in flight")
	}
	first := g.visual.scale
	if first.X <= 0 || first.X >= 1 {
		t.Errorf("Show failed: expected first step between min and max, got %v", first)
	}

	// 0.1s at 60fps is six frames, allow one more for rounding
	g.tick(6)

	if g.visual.scale != geometry.One {
		t.Errorf("Show failed: expected max scale after 0.1s, got %v", g.visual.scale)
	}
	if g.r.Animating() {
		t.Errorf("Show failed: animation should have finished")
	}
	if g.shown != 1 {
		t.Errorf("Idempotence failed: expected 1 shown event, got %d", g.shown)
	}

	prev := geometry.Zero
	for _, s := range g.visual.scales[1:] {
		if s.X < prev.X {
			t.Errorf("Show failed: scale went backwards from %v to %v", prev, s)
		}
		prev = s
	}
}

func TestShowWithoutAnimationKeepsMinScale(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Animation.Enabled = false
	g := newRig(cfg).start()

	g.ray.at(0.5)
	g.tick(3)

	if !g.r.Visible() || g.shown != 1 {
		t.Errorf("Show failed: expected visible with 1 event, got visible=%v shown=%d", g.r.Visible(), g.shown)
	}
	if g.visual.scale != geometry.Zero {
		t.Errorf("Show without animation failed: expected min scale, got %v", g.visual.scale)
	}
	if g.sched.Pending() != 0 {
		t.Errorf("Show without animation failed: expected no tasks, got %d", g.sched.Pending())
	}
}

// Hit at 2.0 while shown
func TestHideResetsImmediately(t *testing.T) {
	g := newRig(DefaultConfig()).start()

	g.ray.at(0.5)
	g.tick(10)
	g.ray.at(2.0)
	g.tick(1)

	if g.r.Visible() {
		t.Errorf("Hide failed: expected hidden")
	}
	if g.visual.scale != geometry.Zero {
		t.Errorf("Hide failed: expected min scale, got %v", g.visual.scale)
	}
	if g.hidden != 1 {
		t.Errorf("Hide failed: expected 1 hidden event, got %d", g.hidden)
	}

	g.tick(5)
	if g.hidden != 1 {
		t.Errorf("Idempotence failed: expected 1 hidden event, got %d", g.hidden)
	}
}

func TestThresholdIsExclusive(t *testing.T) {
	g := newRig(DefaultConfig()).start()

	g.ray.at(1.0)
	g.tick(1)
	if g.r.Visible() {
		t.Errorf("Threshold failed: hit exactly at threshold should stay hidden")
	}
}

func TestHideCancelsAnimation(t *testing.T) {
	g := newRig(DefaultConfig()).start()

	g.ray.at(0.5)
	g.tick(2)
	g.ray.at(5)
	g.tick(1)
	g.tick(5)

	if g.visual.scale != geometry.Zero {
		t.Errorf("Hide failed: animation kept growing a hidden ring, scale %v", g.visual.scale)
	}
	if g.sched.Pending() != 0 {
		t.Errorf("Hide failed: expected no pending tasks, got %d", g.sched.Pending())
	}
}

func TestShowAgainRestartsAnimation(t *testing.T) {
	g := newRig(DefaultConfig()).start()

	g.ray.at(0.5)
	g.tick(10)
	g.ray.at(3)
	g.tick(1)
	g.ray.at(0.5)
	g.tick(1)

	if g.shown != 2 || g.hidden != 1 {
		t.Errorf("Edges failed: expected shown=2 hidden=1, got shown=%d hidden=%d", g.shown, g.hidden)
	}
	if g.visual.scale.X <= 0 || g.visual.scale.X >= 1 {
		t.Errorf("Restart failed: expected scale mid animation, got %v", g.visual.scale)
	}
}

func TestReorientsOnEveryHit(t *testing.T) {
	g := newRig(DefaultConfig()).start()

	g.ray.at(5)
	g.tick(2)
	g.ray.at(0.5)
	g.tick(1)

	if len(g.visual.lookAts) != 3 {
		t.Fatalf("LookAt failed: expected 3 reorientations, got %d", len(g.visual.lookAts))
	}
	if g.visual.lookAts[0] != g.viewer.position {
		t.Errorf("LookAt failed: expected viewer position %v, got %v", g.viewer.position, g.visual.lookAts[0])
	}
}

func TestSelfAnchorTracksCollider(t *testing.T) {
	g := newRig(DefaultConfig())
	collider := &fakeBounds{box: geometry.BoxFromCenter(geometry.Zero, geometry.One)}
	deps := g.deps()
	deps.Collider = collider
	g.build(DefaultConfig(), deps).start()

	collider.box = collider.box.Translate(geometry.Vector3{X: 2})
	g.tick(1)

	if g.visual.position != (geometry.Vector3{X: 2}) {
		t.Errorf("Self anchor failed: expected (2,0,0), got %v", g.visual.position)
	}
}

func TestCustomAnchorDoesNotMove(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Anchor = AnchorCustom
	g := newRig(cfg).start()
	g.visual.position = geometry.Vector3{X: 3}

	g.tick(3)
	if g.visual.position != (geometry.Vector3{X: 3}) {
		t.Errorf("Custom anchor failed: expected fixed position, got %v", g.visual.position)
	}
}

func TestSelectHidesWithoutShowOnSelected(t *testing.T) {
	g := newRig(DefaultConfig()).start()

	g.ray.at(0.5)
	g.tick(3)
	g.selection.selectEnter()

	if g.r.Visible() || g.visual.scale != geometry.Zero {
		t.Errorf("Select failed: expected hidden at min scale, got active=%v scale=%v", g.visual.active, g.visual.scale)
	}
	if !g.r.Selected() {
		t.Errorf("Select failed: expected selected")
	}

	calls := g.ray.calls
	g.tick(5)
	if g.ray.calls != calls {
		t.Errorf("Select failed: Tick should skip while selected, got %d raycasts", g.ray.calls-calls)
	}
	if g.r.Visible() || g.shown != 1 {
		t.Errorf("Select failed: ring came back while selected")
	}

	g.selection.selectExit()
	if g.r.Visible() {
		t.Errorf("Deselect failed: no immediate visual change expected")
	}
	g.tick(1)
	if !g.r.Visible() || g.shown != 2 {
		t.Errorf("Deselect failed: expected raycast to show ring again, shown=%d", g.shown)
	}
}

func TestSelectShowsWithShowOnSelected(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ShowOnSelected = true
	g := newRig(cfg).start()
	g.visual.scale = geometry.Vector3{X: 0.4, Y: 0.4, Z: 0.4}

	g.ray.miss()
	g.selection.selectEnter()

	if !g.r.Visible() {
		t.Errorf("Select failed: expected forced visible")
	}
	if g.visual.scale != (geometry.Vector3{X: 0.4, Y: 0.4, Z: 0.4}) {
		t.Errorf("Select failed: scale should be untouched, got %v", g.visual.scale)
	}
	if g.shown != 0 {
		t.Errorf("Select failed: forced show does not notify, got %d", g.shown)
	}

	// Tick keeps running while selected
	g.tick(1)
	if g.ray.calls != 1 {
		t.Errorf("Select failed: expected Tick to raycast, got %d", g.ray.calls)
	}
}

func TestDisableResetsScale(t *testing.T) {
	g := newRig(DefaultConfig()).start()

	g.ray.at(0.5)
	g.tick(3)
	if err := g.r.Disable(); err != nil {
		t.Fatalf("Disable failed: %v", err)
	}

	if g.visual.scale != geometry.Zero {
		t.Errorf("Disable failed: expected min scale, got %v", g.visual.scale)
	}
	if !g.r.Visible() {
		t.Errorf("Disable failed: expected the active flag unchanged")
	}
	if g.hidden != 0 {
		t.Errorf("Disable failed: expected no hidden event, got %d", g.hidden)
	}
	if len(g.selection.entered) != 0 {
		t.Errorf("Disable failed: expected selection listeners removed")
	}

	g.tick(5)
	if g.visual.scale != geometry.Zero {
		t.Errorf("Disable failed: animation resumed after disable, scale %v", g.visual.scale)
	}

	if err := g.r.Enable(); err != nil {
		t.Fatalf("Enable failed: %v", err)
	}
	g.tick(1)
	if !g.r.Visible() || g.shown != 1 {
		t.Errorf("Re-enable failed: expected ring still shown without a new event, shown=%d", g.shown)
	}

	// Moving away after re-enable reports hidden once
	g.ray.at(2)
	g.tick(1)
	if g.r.Visible() || g.hidden != 1 {
		t.Errorf("Hide after re-enable failed: expected 1 hidden event, got %d", g.hidden)
	}
}

func TestDisableKeepsSelection(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ShowOnSelected = true
	g := newRig(cfg).start()

	g.selection.selectEnter()
	if err := g.r.Disable(); err != nil {
		t.Fatalf("Disable failed: %v", err)
	}
	if !g.r.Selected() {
		t.Errorf("Disable failed: expected selected flag unchanged")
	}
	if g.hidden != 0 || g.shown != 0 {
		t.Errorf("Disable failed: expected no events, got shown=%d hidden=%d", g.shown, g.hidden)
	}
}

func TestEnableIsIdempotent(t *testing.T) {
	g := newRig(DefaultConfig()).start()
	if err := g.r.Enable(); err != nil {
		t.Errorf("Enable twice failed: %v", err)
	}
	if len(g.selection.entered) != 1 {
		t.Errorf("Enable twice failed: expected 1 subscription, got %d", len(g.selection.entered))
	}
}

func TestDispose(t *testing.T) {
	g := newRig(DefaultConfig()).start()

	g.ray.at(0.5)
	g.tick(1)
	g.r.Dispose()
	g.r.Dispose()

	if g.r.State() != StateDisposed {
		t.Errorf("Dispose failed: expected disposed, got %s", g.r.State())
	}
	if g.sched.Pending() != 0 {
		t.Errorf("Dispose failed: expected cancelled animation, got %d pending", g.sched.Pending())
	}
	if err := g.r.Enable(); !errors.Is(err, ErrInvalidState) {
		t.Errorf("Enable after Dispose failed: expected ErrInvalidState, got %v", err)
	}

	calls := g.ray.calls
	g.tick(2)
	if g.ray.calls != calls {
		t.Errorf("Tick after Dispose failed: expected no raycasts")
	}
}

func TestUnsubscribeListener(t *testing.T) {
	g := newRig(DefaultConfig()).start()
	extra := 0
	unsubscribe := g.r.OnShown(func() { extra++ })
	unsubscribe()

	g.ray.at(0.5)
	g.tick(1)
	if extra != 0 || g.shown != 1 {
		t.Errorf("Unsubscribe failed: expected extra=0 shown=1, got extra=%d shown=%d", extra, g.shown)
	}
}
