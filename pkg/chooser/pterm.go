package chooser

import (
	"github.com/pterm/pterm"

	"github.com/instantos/ins/pkg/logging"
)

var log = logging.GetLogger("chooser")

// PtermChooser renders prompts with pterm's interactive components.
type PtermChooser struct {
	// MaxHeight limits how many select options are visible at once
	MaxHeight int
}

// NewPtermChooser creates the default terminal chooser
func NewPtermChooser() *PtermChooser {
	return &PtermChooser{MaxHeight: 15}
}

// Select presents an interactive list. Ctrl+C surfaces as ErrCancelled.
func (p *PtermChooser) Select(prompt string, options []string) (string, error) {
	result, err := pterm.DefaultInteractiveSelect.
		WithOptions(options).
		WithDefaultText(prompt).
		WithMaxHeight(p.MaxHeight).
		WithFilter(true).
		Show()
	if err != nil {
		log.Debug().Err(err).Str("prompt", prompt).Msg("Select cancelled")
		return "", ErrCancelled
	}
	return result, nil
}

// Input asks for free-form text
func (p *PtermChooser) Input(prompt, defaultValue string) (string, error) {
	result, err := pterm.DefaultInteractiveTextInput.
		WithDefaultText(prompt).
		WithDefaultValue(defaultValue).
		Show()
	if err != nil {
		log.Debug().Err(err).Str("prompt", prompt).Msg("Input cancelled")
		return "", ErrCancelled
	}
	return result, nil
}

// Password asks for masked input
func (p *PtermChooser) Password(prompt string) (string, error) {
	result, err := pterm.DefaultInteractiveTextInput.
		WithDefaultText(prompt).
		WithMask("*").
		Show()
	if err != nil {
		log.Debug().Err(err).Str("prompt", prompt).Msg("Password input cancelled")
		return "", ErrCancelled
	}
	return result, nil
}

// Confirm asks a yes/no question
func (p *PtermChooser) Confirm(prompt string) (bool, error) {
	result, err := pterm.DefaultInteractiveConfirm.
		WithDefaultText(prompt).
		Show()
	if err != nil {
		log.Debug().Err(err).Str("prompt", prompt).Msg("Confirm cancelled")
		return false, ErrCancelled
	}
	return result, nil
}

// Message displays an informational block and waits for acknowledgement
func (p *PtermChooser) Message(text string) {
	pterm.Info.Println(text)
	_, _ = pterm.DefaultInteractiveContinue.
		WithDefaultText("Continue").
		WithOptions([]string{"ok"}).
		Show()
}
