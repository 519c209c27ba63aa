package main

import (
	"fmt"
	"os"

	"github.com/instantos/ins/cmd/ins/commands"
	"github.com/instantos/ins/pkg/ui"

	// Register the built-in data providers
	_ "github.com/instantos/ins/pkg/providers"
)

func main() {
	rootCmd := commands.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		// The root command silences cobra's own printing, so the error
		// surfaces here
		fmt.Fprintln(os.Stderr, ui.ErrorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
