package app

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/goring/internal/sim"
	"github.com/philipparndt/goring/pkg/geometry"
	"github.com/philipparndt/goring/version"
)

const timelineRows = 12

// drawUI draws the user interface
func (app *App) drawUI() {
	y := float32(10)
	lineHeight := float32(20)
	fontSize16 := float32(16)
	fontSize14 := float32(14)
	fontSize12 := float32(12)

	screenWidth := float32(rl.GetScreenWidth())
	screenHeight := float32(rl.GetScreenHeight())
	w := app.Scene.world

	text := func(s string, x, y, size float32, col rl.Color) {
		rl.DrawTextEx(app.UI.font, s, rl.Vector2{X: x, Y: y}, size, 1, col)
	}

	// Loading indicator
	if app.FileWatch.isLoading {
		elapsed := time.Since(app.FileWatch.loadingStartTime).Seconds()
		loadingText := fmt.Sprintf("Loading... (%.1fs)", elapsed)

		boxWidth := float32(250)
		boxHeight := float32(40)
		boxX := screenWidth - boxWidth - 20
		boxY := float32(20)

		rl.DrawRectangle(int32(boxX), int32(boxY), int32(boxWidth), int32(boxHeight), rl.NewColor(0, 0, 0, 180))
		rl.DrawRectangleLines(int32(boxX), int32(boxY), int32(boxWidth), int32(boxHeight), rl.Yellow)

		textSize := rl.MeasureTextEx(app.UI.font, loadingText, fontSize16, 1)
		text(loadingText, boxX+(boxWidth-textSize.X)/2, boxY+(boxHeight-textSize.Y)/2, fontSize16, rl.Yellow)
	}

	// === SCENARIO ===
	text("Scenario:", 10, y, fontSize16, rl.Yellow)
	y += lineHeight
	text(fmt.Sprintf("  File: %s", app.FileWatch.sourceFile), 10, y, fontSize14, rl.White)
	y += lineHeight
	status := ""
	if app.View.paused {
		status = " (paused)"
	}
	text(fmt.Sprintf("  Time: %.2fs  Frame: %d%s", w.Time(), w.Frame(), status), 10, y, fontSize14, rl.White)
	y += lineHeight
	position, _ := app.viewerPose()
	text(fmt.Sprintf("  Viewer: (%.2f, %.2f, %.2f)", position.X, position.Y, position.Z), 10, y, fontSize14, rl.White)
	y += lineHeight
	if app.FileWatch.lastError != "" {
		text("  "+app.FileWatch.lastError, 10, y, fontSize14, rl.Red)
		y += lineHeight
	}
	y += lineHeight

	// === RINGS ===
	text("Rings:", 10, y, fontSize16, rl.Yellow)
	y += lineHeight
	for _, h := range w.Hosts {
		if h.Indicator == nil {
			continue
		}
		text("  "+hostLine(h, position), 10, y, fontSize14, hostColor(h))
		y += lineHeight
	}
	y += lineHeight

	// === TIMELINE ===
	if app.View.showTimeline {
		text("Timeline:", 10, y, fontSize16, rl.Yellow)
		y += lineHeight
		entries := w.Timeline.Entries
		if len(entries) > timelineRows {
			entries = entries[len(entries)-timelineRows:]
		}
		for _, e := range entries {
			text("  "+e.String(), 10, y, fontSize12, rl.LightGray)
			y += lineHeight * 0.8
		}
	}

	// === HELP ===
	help := []string{
		"Drag: rotate  Shift+Drag: pan  Wheel/W/S: move closer",
		"Click/G: grab or release  E: enable/disable ring  F: focus",
		"C: colliders  V: gaze  L: timeline  Space: pause  R: restart",
		"Home: reset view  T: top  1-4: front/back/left/right",
	}
	hy := screenHeight - float32(len(help)+1)*lineHeight
	for _, line := range help {
		text(line, 10, hy, fontSize12, rl.Gray)
		hy += lineHeight
	}
	text("goring "+version.GetVersion(), 10, hy, fontSize12, rl.DarkGray)
}

// hostLine describes the ring of h and the viewer's distance to it
func hostLine(h *sim.Host, viewer geometry.Vector3) string {
	ind := h.Indicator
	if h.InitErr != nil {
		return fmt.Sprintf("%-12s %v", h.Name, h.InitErr)
	}

	distance := viewer.Distance(h.Object.Position())
	if b := h.Object.Collider; b != nil {
		distance = viewer.Distance(b.Bounds().Center())
	}

	line := fmt.Sprintf("%-12s %-8s dist %.2f/%.2f", h.Name, ind.State(), distance, ind.Config().ThresholdDistance)
	if ind.Visible() {
		line += "  visible"
	}
	if ind.Animating() {
		line += "  animating"
	}
	if ind.Selected() {
		line += "  grabbed"
	}
	return line
}

func hostColor(h *sim.Host) rl.Color {
	switch {
	case h.InitErr != nil:
		return rl.Red
	case h.Indicator.Selected():
		return selectedColor
	case h.Indicator.Visible():
		return rl.Green
	default:
		return rl.White
	}
}
