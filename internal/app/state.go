package app

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/goring/internal/sim"
	"github.com/philipparndt/goring/pkg/stl"
	"github.com/philipparndt/goring/pkg/watcher"
)

// CameraState holds the orbit camera. The camera is also the viewer the
// rings measure their distance to.
type CameraState struct {
	camera        rl.Camera3D
	distance      float32
	angleX        float32
	angleY        float32
	target        rl.Vector3 // Current camera target (can be panned)
	defaultDist   float32    // Default camera distance (for reset)
	defaultAngleX float32    // Default camera angle X (for reset)
	defaultAngleY float32    // Default camera angle Y (for reset)
	defaultTarget rl.Vector3
}

// SceneData holds the running world and its GPU resources
type SceneData struct {
	world    *sim.World
	meshes   map[*stl.Model]rl.Mesh
	material rl.Material
	size     float32    // Scene size (max dimension)
}

// ViewSettings holds display settings
type ViewSettings struct {
	showColliders bool
	showGaze      bool
	showTimeline  bool
	paused        bool
}

// InteractionState holds mouse and interaction state
type InteractionState struct {
	mouseDownPos rl.Vector2
	mouseMoved   bool
	isPanning    bool
	gazed        *sim.Host // Host under the viewer's gaze
	hovered      *sim.Host // Host under the mouse cursor
}

// FileWatchState holds file watching and reload state
type FileWatchState struct {
	sourceFile       string               // Scenario file
	fileWatcher      *watcher.FileWatcher // File watcher for auto-reload
	needsReload      bool                 // Flag to indicate the scenario needs reloading
	isLoading        bool                 // Flag to indicate a reload is in progress
	loadingStartTime time.Time            // When loading started
	loadedWorld      *sim.World           // World built in background
	lastError        string               // Last reload error, shown in the UI
}

// UIState holds UI-related state
type UIState struct {
	font rl.Font
}
