package main

import (
	"fmt"
	"io"

	"github.com/philipparndt/goring/internal/scenario"
	"github.com/philipparndt/goring/internal/sim"
	"github.com/philipparndt/goring/pkg/analysis"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [scenario]",
	Short: "Check a scenario file and print a summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return validateScenario(cmd.OutOrStdout(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func validateScenario(out io.Writer, path string) error {
	f, err := scenario.Load(path)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Scenario: %s\n", path)
	fmt.Fprintf(out, "  Frame rate: %d fps\n", f.FPS)
	fmt.Fprintf(out, "  Duration: %.2fs (%d frames)\n", f.Duration, f.Frames())
	fmt.Fprintf(out, "  Prefab: %s\n", f.Prefab)
	fmt.Fprintf(out, "  Viewer keyframes: %d\n", len(f.Viewer.Keyframes))
	fmt.Fprintf(out, "  Events: %d\n\n", len(f.Events))

	w, err := sim.Build(f, sim.Options{Logger: sim.DiscardLogger()})
	if err != nil {
		return fmt.Errorf("failed to build scenario: %w", err)
	}
	prefab := analysis.Analyze(w.Prefab.Mesh)
	prefab.Print(out, "")
	fmt.Fprintln(out)

	fmt.Fprintln(out, "Objects:")
	for _, o := range f.Objects {
		fmt.Fprintf(out, "  %s (layer %d, collider %s)\n", o.Name, o.Layer, o.Collider.Type)
		h, _ := w.Host(o.Name)
		if h.Mesh != nil {
			analysis.Analyze(h.Mesh).Print(out, "    ")
		}
		if h.InitErr != nil {
			fmt.Fprintf(out, "    warning: %v\n", h.InitErr)
		}
		if o.Ring == nil {
			continue
		}
		cfg, err := o.Ring.Config()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "    ring: anchor=%s threshold=%.2f layers=%s showOnSelected=%v animation=%.2fs\n",
			cfg.Anchor, cfg.ThresholdDistance, cfg.LayerMask, cfg.ShowOnSelected, cfg.AnimationTime())
		fmt.Fprintf(out, "    ring size: %.3f\n", prefab.Footprint*cfg.MaxScale.X)
	}

	fmt.Fprintln(out, "\nOK")
	return nil
}
