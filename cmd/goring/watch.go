package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/philipparndt/goring/internal/scenario"
	"github.com/philipparndt/goring/pkg/watcher"
	"github.com/spf13/cobra"
)

var watchOpts runOptions

var watchCmd = &cobra.Command{
	Use:   "watch [scenario]",
	Short: "Run a scenario again whenever it or its meshes change",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return watchScenario(args[0])
	},
}

func init() {
	addRunFlags(watchCmd, &watchOpts)
	rootCmd.AddCommand(watchCmd)
}

func watchScenario(path string) error {
	fw, err := watcher.NewFileWatcher(300 * time.Millisecond)
	if err != nil {
		return err
	}
	defer fw.Close()
	fw.OnError(func(err error) {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	})

	changes := make(chan string, 1)
	rerun := func() {
		if err := runScenario(os.Stdout, path, watchOpts); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}

		// Watch the meshes of the current version of the scenario
		files := []string{path}
		if f, err := scenario.Load(path); err == nil {
			files = append(files, f.Dependencies()...)
		}
		if err := fw.RemoveAll(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
		if err := fw.Watch(files, func(changed string) {
			select {
			case changes <- changed:
			default:
			}
		}); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
		fmt.Printf("\nWatching %d file(s) for changes, press Ctrl+C to stop\n", fw.Files())
	}

	fw.Start()
	rerun()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	for {
		select {
		case changed := <-changes:
			fmt.Printf("\nFile changed: %s\n\n", changed)
			rerun()
		case <-interrupt:
			return nil
		}
	}
}
