// Package chooser abstracts the interactive presentation layer of the
// wizard. The engine only ever talks to the Chooser interface; the pterm
// implementation is the default for real terminals and tests inject a
// scripted one.
package chooser

import (
	"errors"
)

// ErrCancelled is returned when the user backs out of a prompt
// (escape, Ctrl+C or an explicit cancel option).
var ErrCancelled = errors.New("cancelled by user")

// Chooser presents prompts to the user and collects their input.
type Chooser interface {
	// Select presents a list of options and returns the chosen one
	Select(prompt string, options []string) (string, error)

	// Input asks for free-form text with an optional default
	Input(prompt, defaultValue string) (string, error)

	// Password asks for masked input
	Password(prompt string) (string, error)

	// Confirm asks a yes/no question
	Confirm(prompt string) (bool, error)

	// Message displays a blocking informational message
	Message(text string)
}
