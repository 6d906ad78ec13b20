// Package frame drives per-frame updates and cooperative tasks that
// suspend between frames.
package frame

// Task is a cooperative routine resumed once per frame
type Task interface {
	// Step advances the task by dt seconds and reports whether it finished
	Step(dt float64) bool
}

// TaskFunc adapts a function to Task
type TaskFunc func(dt float64) bool

// Step calls f(dt)
func (f TaskFunc) Step(dt float64) bool {
	return f(dt)
}

// Handle tracks a started task
type Handle struct {
	task      Task
	started   uint64
	finished  bool
	cancelled bool
}

// Cancel stops the task before its next step. Cancelling a finished task is a no-op.
func (h *Handle) Cancel() {
	if h == nil || h.finished {
		return
	}
	h.cancelled = true
}

// Done reports whether the task finished or was cancelled
func (h *Handle) Done() bool {
	return h == nil || h.finished || h.cancelled
}

// Cancelled reports whether the task was stopped before finishing
func (h *Handle) Cancelled() bool {
	return h != nil && h.cancelled
}

// Scheduler runs the per-frame update and resumes suspended tasks.
// It is not safe for concurrent use; everything runs on the frame goroutine.
type Scheduler struct {
	frame uint64
	delta float64
	tasks []*Handle
}

// NewScheduler creates a scheduler at frame 0
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Frame returns the number of the current frame
func (s *Scheduler) Frame() uint64 {
	return s.frame
}

// DeltaTime returns the duration of the current frame in seconds
func (s *Scheduler) DeltaTime() float64 {
	return s.delta
}

// Pending returns the number of tasks waiting for a later frame
func (s *Scheduler) Pending() int {
	n := 0
	for _, h := range s.tasks {
		if !h.Done() {
			n++
		}
	}
	return n
}

// Start runs the first step of t right away with the current frame's delta
// time. If the task is not finished it is resumed once per following frame.
func (s *Scheduler) Start(t Task) *Handle {
	h := &Handle{task: t, started: s.frame}
	if t.Step(s.delta) {
		h.finished = true
		return h
	}
	s.tasks = append(s.tasks, h)
	return h
}

// Tick advances one frame of dt seconds. update runs first; afterwards every
// task started in an earlier frame takes one step. Tasks started during
// update already took their first step and wait for the next frame.
func (s *Scheduler) Tick(dt float64, update func(dt float64)) {
	s.frame++
	s.delta = dt

	if update != nil {
		update(dt)
	}

	// Tasks may start other tasks while stepping, so iterate over a snapshot
	current := s.tasks
	s.tasks = nil
	for _, h := range current {
		if h.Done() {
			continue
		}
		if h.started < s.frame && h.task.Step(dt) {
			h.finished = true
			continue
		}
		if !h.Done() {
			s.tasks = append(s.tasks, h)
		}
	}
}
