package ui

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// IsLinuxConsole reports whether the wizard appears to be running on a
// bare linux TTY. The heuristic is TERM == "linux", or neither DISPLAY
// nor WAYLAND_DISPLAY set. It will fire inside some remote shells too;
// that is accepted.
func IsLinuxConsole() bool {
	if os.Getenv("TERM") == "linux" {
		return true
	}
	return os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == ""
}

// IsInteractive reports whether stdout is attached to a terminal
func IsInteractive() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// ClearScreen wipes the terminal and homes the cursor. Used on the linux
// console so each question starts on a clean screen.
func ClearScreen() {
	output := termenv.NewOutput(os.Stdout)
	output.ClearScreen()
	output.MoveCursor(1, 1)
}
