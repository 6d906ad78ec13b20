package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"github.com/philipparndt/goring/internal/scenario"
	"github.com/philipparndt/goring/internal/sim"
	"github.com/philipparndt/goring/internal/tui"
	"github.com/spf13/cobra"
)

var tuiMute bool

var tuiCmd = &cobra.Command{
	Use:   "tui [scenario]",
	Short: "Walk through a scenario in the terminal",
	Long: `tui shows the scenario from above and lets you move the viewer with the
keyboard. Rings react to the gaze as you walk, a short tone plays when a
ring appears or disappears.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(args[0], tuiMute)
	},
}

func init() {
	tuiCmd.Flags().BoolVar(&tuiMute, "mute", false, "Do not play tones")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(path string, mute bool) error {
	f, err := scenario.Load(path)
	if err != nil {
		return err
	}
	// Ring errors would garble the screen, they still reach the timeline
	w, err := sim.Build(f, sim.Options{Logger: sim.DiscardLogger(), ManualViewer: true})
	if err != nil {
		return err
	}

	var chime *tui.Chime
	if !mute {
		if chime, err = tui.NewChime(); err != nil {
			log.Printf("Sound disabled: %v", err)
			chime = nil
		}
		defer chime.Close()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()
	screen.SetStyle(tcell.StyleDefault)
	screen.Clear()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := tui.New(screen, w, chime).Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
