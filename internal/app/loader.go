package app

import (
	"fmt"
	"time"

	"github.com/philipparndt/goring/internal/scenario"
	"github.com/philipparndt/goring/internal/sim"
	"github.com/philipparndt/goring/pkg/watcher"
)

// loadWorld loads a scenario and builds a world the camera drives
func loadWorld(filePath string) (*sim.World, error) {
	f, err := scenario.Load(filePath)
	if err != nil {
		return nil, err
	}
	w, err := sim.Build(f, sim.Options{ManualViewer: true})
	if err != nil {
		return nil, fmt.Errorf("failed to build scenario: %w", err)
	}
	return w, nil
}

// setupFileWatcher watches the scenario and the meshes it references
func (app *App) setupFileWatcher() error {
	fw, err := watcher.NewFileWatcher(500 * time.Millisecond)
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	filesToWatch := append([]string{app.FileWatch.sourceFile}, app.Scene.world.Scenario.Dependencies()...)
	fmt.Printf("Watching %d file(s) for changes:\n", len(filesToWatch))
	for _, f := range filesToWatch {
		fmt.Printf("  - %s\n", f)
	}

	if err := fw.Watch(filesToWatch, app.onFileChanged); err != nil {
		fw.Close()
		return fmt.Errorf("failed to watch files: %w", err)
	}

	fw.Start()
	app.FileWatch.fileWatcher = fw

	return nil
}

func (app *App) onFileChanged(changedFile string) {
	fmt.Printf("\nFile changed: %s\n", changedFile)
	app.FileWatch.needsReload = true
}

// reloadWorld rebuilds the world from the scenario file in the background
func (app *App) reloadWorld() {
	if app.FileWatch.isLoading {
		return
	}

	app.FileWatch.isLoading = true
	app.FileWatch.loadingStartTime = time.Now()
	fmt.Println("Reloading scenario...")

	// Meshes are uploaded on the main thread in applyLoadedWorld
	go func() {
		w, err := loadWorld(app.FileWatch.sourceFile)
		if err != nil {
			fmt.Printf("Error reloading scenario: %v\n", err)
			app.FileWatch.lastError = err.Error()
			app.FileWatch.isLoading = false
			return
		}
		app.FileWatch.loadedWorld = w
	}()
}

// applyLoadedWorld switches to a world built by reloadWorld (must be called on main thread)
func (app *App) applyLoadedWorld() {
	w := app.FileWatch.loadedWorld
	if w == nil {
		return
	}

	app.Scene.releaseMeshes()
	app.Scene.world = w
	app.Interaction.gazed = nil
	app.Interaction.hovered = nil

	// Watch meshes the new version of the scenario may reference
	if fw := app.FileWatch.fileWatcher; fw != nil {
		if err := fw.Watch(w.Scenario.Dependencies(), app.onFileChanged); err != nil {
			fmt.Printf("Warning: %v\n", err)
		}
	}

	elapsed := time.Since(app.FileWatch.loadingStartTime)
	fmt.Printf("Scenario reloaded successfully in %.2fs!\n", elapsed.Seconds())

	app.FileWatch.loadedWorld = nil
	app.FileWatch.lastError = ""
	app.FileWatch.isLoading = false
}

// restart rebuilds the world from the current scenario file at time zero
func (app *App) restart() {
	w, err := loadWorld(app.FileWatch.sourceFile)
	if err != nil {
		app.FileWatch.lastError = err.Error()
		return
	}
	app.FileWatch.loadingStartTime = time.Now()
	app.FileWatch.loadedWorld = w
	app.applyLoadedWorld()
}
