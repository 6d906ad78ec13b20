package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/goring/internal/app"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: goring-raylib <scenario>")
		fmt.Println("Supported formats: .yaml, .yml, .toml")
		os.Exit(1)
	}

	if err := app.Run(os.Args[1]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
