package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/goring/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "goring",
	Short: "Simulate gaze driven ring indicators on grabbable objects",
	Long: `goring runs scripted VR scenes in which a ring appears around grabbable
objects while the viewer looks at them from close enough. Scenarios are
YAML or TOML files describing the viewer path, the objects and grab events.`,
	Version:      version.GetFullVersion(),
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
