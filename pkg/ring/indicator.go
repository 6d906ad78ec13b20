// Package ring shows an indicator ring around grabbable objects while the
// viewer looks at them from close enough.
package ring

import (
	"fmt"
	"log"
	"os"

	"github.com/philipparndt/goring/pkg/event"
	"github.com/philipparndt/goring/pkg/frame"
	"github.com/philipparndt/goring/pkg/geometry"
)

// State is the lifecycle state of an Indicator
type State int

const (
	StateUninitialized State = iota
	StateActive
	StateInactive
	StateDisposed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateActive:
		return "active"
	case StateInactive:
		return "inactive"
	case StateDisposed:
		return "disposed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Deps are the collaborators an Indicator works with
type Deps struct {
	Viewer    Viewer
	Raycaster Raycaster
	Prefab    Prefab
	Spawner   Spawner
	// Collider is required for AnchorSelf
	Collider Bounded
	// Anchor is required for AnchorCustom
	Anchor    Positioned
	Selection SelectionSource
	Scheduler Scheduler
	Logger    *log.Logger
}

// Indicator is the ring component of one grabbable host.
// It is not safe for concurrent use.
type Indicator struct {
	cfg  Config
	deps Deps
	log  *log.Logger

	state    State
	visual   Visual
	selected bool

	task        *frame.Handle
	unsubscribe func()

	shown  event.Signal[struct{}]
	hidden event.Signal[struct{}]
}

// NewLogger returns the logger used when Deps.Logger is nil
func NewLogger() *log.Logger {
	return log.New(os.Stderr, "ring: ", log.LstdFlags)
}

// New validates cfg and creates an uninitialized indicator
func New(cfg Config, deps Deps) (*Indicator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("failed to create ring indicator: %w", err)
	}

	logger := deps.Logger
	if logger == nil {
		logger = NewLogger()
	}
	return &Indicator{cfg: cfg, deps: deps, log: logger}, nil
}

// Config returns the configuration the indicator was created with
func (r *Indicator) Config() Config {
	return r.cfg
}

// State returns the lifecycle state
func (r *Indicator) State() State {
	return r.state
}

// Visual returns the spawned ring, nil before a successful Init
func (r *Indicator) Visual() Visual {
	return r.visual
}

// Visible reports whether the ring is currently shown
func (r *Indicator) Visible() bool {
	return r.visual != nil && r.visual.ActiveSelf()
}

// Selected reports whether the host is currently grabbed
func (r *Indicator) Selected() bool {
	return r.selected
}

// Animating reports whether a scale task is in flight
func (r *Indicator) Animating() bool {
	return r.task != nil && !r.task.Done()
}

// OnShown registers fn to run whenever the ring appears
func (r *Indicator) OnShown(fn func()) (unsubscribe func()) {
	return r.shown.Subscribe(func(struct{}) { fn() })
}

// OnHidden registers fn to run whenever the ring disappears
func (r *Indicator) OnHidden(fn func()) (unsubscribe func()) {
	return r.hidden.Subscribe(func(struct{}) { fn() })
}

// Init resolves the collaborators and spawns the ring visual, inactive and
// at minimum scale. On failure the error is logged, the indicator stays
// uninitialized and every later Tick is a no-op. A visual without renderer
// only logs an error.
func (r *Indicator) Init() error {
	if r.state != StateUninitialized {
		return fmt.Errorf("init in state %s: %w", r.state, ErrInvalidState)
	}

	position, err := r.resolve()
	if err != nil {
		r.log.Printf("Error: %v", err)
		return err
	}

	visual, err := r.deps.Spawner.Instantiate(r.deps.Prefab, position)
	if err != nil || visual == nil {
		initErr := &InitError{Reason: ReasonSpawnFailed, Err: err}
		if err == nil {
			initErr.Err = fmt.Errorf("spawner returned no visual for %s", r.deps.Prefab.Name())
		}
		r.log.Printf("Error: %v", initErr)
		return initErr
	}

	visual.SetLocalScale(r.cfg.MinScale)
	if !visual.SetColor(r.cfg.Color) {
		r.log.Printf("Error: no mesh renderer on %s, ring color not applied", r.deps.Prefab.Name())
	}
	visual.SetActive(false)

	r.visual = visual
	r.state = StateInactive
	return nil
}

// resolve checks the collaborators and returns the spawn position
func (r *Indicator) resolve() (geometry.Vector3, error) {
	d := r.deps
	switch {
	case d.Viewer == nil:
		return geometry.Zero, &InitError{Reason: ReasonMissingViewer}
	case d.Prefab == nil:
		return geometry.Zero, &InitError{Reason: ReasonMissingPrefab}
	case d.Spawner == nil:
		return geometry.Zero, &InitError{Reason: ReasonMissingSpawner}
	case d.Raycaster == nil:
		return geometry.Zero, &InitError{Reason: ReasonMissingRaycaster}
	case d.Scheduler == nil && r.cfg.Animation.Enabled:
		return geometry.Zero, &InitError{Reason: ReasonMissingScheduler}
	}

	switch r.cfg.Anchor {
	case AnchorSelf:
		if d.Collider == nil {
			return geometry.Zero, &InitError{Reason: ReasonMissingCollider}
		}
		return d.Collider.Bounds().Center(), nil
	case AnchorCustom:
		if d.Anchor == nil {
			return geometry.Zero, &InitError{Reason: ReasonMissingAnchor}
		}
		return d.Anchor.Position(), nil
	default:
		return geometry.Zero, &InitError{Reason: ReasonUnknownAnchor}
	}
}

// Enable starts listening for selection and lets Tick drive the ring
func (r *Indicator) Enable() error {
	switch r.state {
	case StateActive:
		return nil
	case StateInactive:
	default:
		return fmt.Errorf("enable in state %s: %w", r.state, ErrInvalidState)
	}

	if r.deps.Selection != nil {
		r.unsubscribe = r.deps.Selection.SubscribeSelect(r.selectEntered, r.selectExited)
	}
	r.state = StateActive
	return nil
}

// Disable stops listening for selection, stops the running animation and
// resets the ring to minimum scale. The active flag is left as it is and no
// event is emitted.
func (r *Indicator) Disable() error {
	switch r.state {
	case StateInactive:
		return nil
	case StateActive:
	default:
		return fmt.Errorf("disable in state %s: %w", r.state, ErrInvalidState)
	}

	r.release()
	r.state = StateInactive
	r.visual.SetLocalScale(r.cfg.MinScale)
	return nil
}

// Dispose detaches the indicator for good. The visual belongs to the host
// and is released with it.
func (r *Indicator) Dispose() {
	if r.state == StateDisposed {
		return
	}
	r.release()
	r.visual = nil
	r.selected = false
	r.shown.Clear()
	r.hidden.Clear()
	r.state = StateDisposed
}

func (r *Indicator) release() {
	if r.unsubscribe != nil {
		r.unsubscribe()
		r.unsubscribe = nil
	}
	r.cancelAnimation()
}

func (r *Indicator) cancelAnimation() {
	r.task.Cancel()
	r.task = nil
}

func (r *Indicator) selectEntered(any) {
	if r.state != StateActive || r.visual == nil {
		return
	}
	r.selected = true

	if r.cfg.ShowOnSelected {
		r.visual.SetActive(true)
		return
	}
	r.cancelAnimation()
	r.visual.SetActive(false)
	r.visual.SetLocalScale(r.cfg.MinScale)
}

func (r *Indicator) selectExited(any) {
	if r.state != StateActive {
		return
	}
	r.selected = false
}

// Tick runs the per-frame visibility decision. It does nothing unless the
// indicator is initialized and enabled.
func (r *Indicator) Tick() {
	if r.state != StateActive || r.visual == nil {
		return
	}
	if r.selected && !r.cfg.ShowOnSelected {
		return
	}

	if r.cfg.Anchor == AnchorSelf {
		r.visual.SetPosition(r.deps.Collider.Bounds().Center())
	}

	viewer := r.deps.Viewer.Position()
	ray := geometry.NewRay(viewer, r.deps.Viewer.Forward())
	hit, ok := r.deps.Raycaster.Raycast(ray, r.cfg.LayerMask)
	if !ok {
		r.hide(false)
		return
	}

	// Faces the viewer on every hit, also when the ring is about to hide
	r.visual.LookAt(viewer)

	if hit.Distance >= r.cfg.ThresholdDistance {
		if r.visual.ActiveSelf() {
			r.hide(true)
		}
		return
	}

	if !r.visual.ActiveSelf() {
		r.show()
	}
}

func (r *Indicator) show() {
	if r.cfg.Animation.Enabled {
		r.cancelAnimation()
		task := NewScaleTask(r.visual, r.cfg.MinScale, r.cfg.MaxScale, r.cfg.Animation.Duration, r.cfg.Animation.Speed)
		r.task = r.deps.Scheduler.Start(task)
	}
	r.visual.SetActive(true)
	r.shown.Emit(struct{}{})
}

// hide deactivates the ring at minimum scale. Only notify emits hidden.
func (r *Indicator) hide(notify bool) {
	r.cancelAnimation()
	r.visual.SetActive(false)
	r.visual.SetLocalScale(r.cfg.MinScale)
	if notify {
		r.hidden.Emit(struct{}{})
	}
}
