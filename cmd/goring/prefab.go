package main

import (
	"fmt"

	"github.com/philipparndt/goring/internal/sim"
	"github.com/philipparndt/goring/pkg/analysis"
	"github.com/philipparndt/goring/pkg/stl"
	"github.com/spf13/cobra"
)

var prefabOpts struct {
	output   string
	inner    float64
	outer    float64
	segments int
	binary   bool
}

var prefabCmd = &cobra.Command{
	Use:   "prefab",
	Short: "Write a ring prefab mesh as STL",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		model, err := stl.NewRingModel("ring", prefabOpts.inner, prefabOpts.outer, prefabOpts.segments)
		if err != nil {
			return err
		}
		if err := stl.WriteFile(prefabOpts.output, model, prefabOpts.binary); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", prefabOpts.output)
		analysis.Analyze(model).Print(cmd.OutOrStdout(), "  ")
		return nil
	},
}

func init() {
	prefabCmd.Flags().StringVarP(&prefabOpts.output, "output", "o", "ring.stl", "output file")
	prefabCmd.Flags().Float64Var(&prefabOpts.inner, "inner", sim.RingInnerRadius, "inner radius")
	prefabCmd.Flags().Float64Var(&prefabOpts.outer, "outer", sim.RingOuterRadius, "outer radius")
	prefabCmd.Flags().IntVar(&prefabOpts.segments, "segments", sim.RingSegments, "number of segments")
	prefabCmd.Flags().BoolVar(&prefabOpts.binary, "binary", false, "write binary STL")
	rootCmd.AddCommand(prefabCmd)
}
