package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/philipparndt/goring/internal/scenario"
	"github.com/philipparndt/goring/internal/sim"
	"github.com/philipparndt/goring/pkg/frame"
	"github.com/spf13/cobra"
)

type runOptions struct {
	fps      int
	duration float64
	trace    bool
	quiet    bool
}

var runOpts runOptions

var runCmd = &cobra.Command{
	Use:   "run [scenario]",
	Short: "Simulate a scenario and print the ring timeline",
	Long:  "Simulate a scenario frame by frame and print when each ring was shown or hidden, followed by the final state of every ring.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScenario(cmd.OutOrStdout(), args[0], runOpts)
	},
}

func init() {
	addRunFlags(runCmd, &runOpts)
	rootCmd.AddCommand(runCmd)
}

func addRunFlags(cmd *cobra.Command, opts *runOptions) {
	cmd.Flags().IntVar(&opts.fps, "fps", 0, "override the scenario frame rate")
	cmd.Flags().Float64Var(&opts.duration, "duration", 0, "override the simulated seconds")
	cmd.Flags().BoolVar(&opts.trace, "trace", false, "print the ring scale of every frame")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "do not print ring errors")
}

func runScenario(out io.Writer, path string, opts runOptions) error {
	f, err := scenario.Load(path)
	if err != nil {
		return err
	}
	if opts.fps > 0 {
		f.FPS = opts.fps
	}
	if opts.duration > 0 {
		f.Duration = opts.duration
	}

	logger := log.New(os.Stderr, "ring: ", 0)
	if opts.quiet {
		logger = sim.DiscardLogger()
	}

	w, err := sim.Build(f, sim.Options{Logger: logger})
	if err != nil {
		return fmt.Errorf("failed to build scenario: %w", err)
	}

	fmt.Fprintf(out, "Scenario: %s (%d objects, %d frames at %d fps)\n\n", path, len(f.Objects), f.Frames(), f.FPS)

	dt := frame.FixedStep(f.FPS)
	for i := 0; i < f.Frames(); i++ {
		w.Step(dt)
		if opts.trace {
			printTrace(out, w)
		}
	}

	w.Timeline.Print(out)
	fmt.Fprintln(out)
	w.PrintStatus(out)
	return nil
}

func printTrace(out io.Writer, w *sim.World) {
	for _, s := range w.Statuses() {
		fmt.Fprintf(out, "  frame %4d  %-12s visible=%-5v scale=(%.3f, %.3f, %.3f)\n",
			w.Frame(), s.Name, s.Visible, s.Scale.X, s.Scale.Y, s.Scale.Z)
	}
}
