package ring

import (
	"errors"
	"fmt"
)

// Sentinels matched by InitError through errors.Is
var (
	ErrMissingViewer    = errors.New("viewer is required")
	ErrMissingPrefab    = errors.New("prefab is required")
	ErrMissingSpawner   = errors.New("spawner is required")
	ErrMissingRaycaster = errors.New("raycaster is required")
	ErrMissingScheduler = errors.New("scheduler is required when animation is enabled")
	ErrMissingCollider  = errors.New("collider is required for self anchor")
	ErrMissingAnchor    = errors.New("anchor point is required for custom anchor")
	ErrUnknownAnchor    = errors.New("unknown anchor mode")

	// ErrInvalidState is returned for lifecycle calls made in the wrong state
	ErrInvalidState = errors.New("invalid lifecycle state")
)

// InitReason enumerates why initialization stopped
type InitReason int

const (
	ReasonMissingViewer InitReason = iota + 1
	ReasonMissingPrefab
	ReasonMissingSpawner
	ReasonMissingRaycaster
	ReasonMissingScheduler
	ReasonMissingCollider
	ReasonMissingAnchor
	ReasonUnknownAnchor
	ReasonSpawnFailed
)

var reasonSentinels = map[InitReason]error{
	ReasonMissingViewer:    ErrMissingViewer,
	ReasonMissingPrefab:    ErrMissingPrefab,
	ReasonMissingSpawner:   ErrMissingSpawner,
	ReasonMissingRaycaster: ErrMissingRaycaster,
	ReasonMissingScheduler: ErrMissingScheduler,
	ReasonMissingCollider:  ErrMissingCollider,
	ReasonMissingAnchor:    ErrMissingAnchor,
	ReasonUnknownAnchor:    ErrUnknownAnchor,
}

// InitError reports a dependency problem found by Indicator.Init
type InitError struct {
	Reason InitReason
	Err    error // underlying cause, set for ReasonSpawnFailed
}

func (e *InitError) Error() string {
	if e.Reason == ReasonSpawnFailed {
		return fmt.Sprintf("failed to spawn ring: %v", e.Err)
	}
	if s, ok := reasonSentinels[e.Reason]; ok {
		return s.Error()
	}
	return fmt.Sprintf("init failed (reason %d)", int(e.Reason))
}

// Is matches the sentinel of the reason
func (e *InitError) Is(target error) bool {
	s, ok := reasonSentinels[e.Reason]
	return ok && s == target
}

func (e *InitError) Unwrap() error {
	return e.Err
}
