package questions

import (
	"context"
	"strconv"

	"github.com/instantos/ins/pkg/answers"
	"github.com/instantos/ins/pkg/chooser"
)

// KernelChoices lists the official Arch kernels offered by the wizard.
var KernelChoices = []string{"linux", "linux-lts", "linux-zen", "linux-hardened"}

// KernelQuestion picks the kernel package. Advanced-only; defaults to
// the stock kernel.
type KernelQuestion struct{ Base }

// NewKernelQuestion creates the kernel question
func NewKernelQuestion() *KernelQuestion {
	return &KernelQuestion{Base{QID: answers.Kernel}}
}

// Optional implements Question
func (q *KernelQuestion) Optional() bool { return true }

// Default implements Question
func (q *KernelQuestion) Default(*answers.Context) (string, bool) { return "linux", true }

// Ask implements Question
func (q *KernelQuestion) Ask(_ context.Context, _ *answers.Context, ch chooser.Chooser) (string, error) {
	return ch.Select(promptKernel, KernelChoices)
}

// boolQuestion is the shared shape of advanced yes/no toggles.
type boolQuestion struct {
	Base
	prompt       string
	defaultValue bool
}

// Optional implements Question
func (q *boolQuestion) Optional() bool { return true }

// Default implements Question
func (q *boolQuestion) Default(*answers.Context) (string, bool) {
	return strconv.FormatBool(q.defaultValue), true
}

// Ask implements Question
func (q *boolQuestion) Ask(_ context.Context, _ *answers.Context, ch chooser.Chooser) (string, error) {
	yes, err := ch.Confirm(q.prompt)
	if err != nil {
		return "", err
	}
	return strconv.FormatBool(yes), nil
}

// NewMinimalModeQuestion creates the minimal mode toggle
func NewMinimalModeQuestion() Question {
	return &boolQuestion{Base: Base{QID: answers.MinimalMode}, prompt: promptMinimalMode}
}

// NewUsePlymouthQuestion creates the plymouth toggle
func NewUsePlymouthQuestion() Question {
	return &boolQuestion{Base: Base{QID: answers.UsePlymouth}, prompt: promptPlymouth, defaultValue: true}
}

// NewAutologinQuestion creates the autologin toggle
func NewAutologinQuestion() Question {
	return &boolQuestion{Base: Base{QID: answers.Autologin}, prompt: promptAutologin}
}

// NewLogUploadQuestion creates the log upload toggle
func NewLogUploadQuestion() Question {
	return &boolQuestion{Base: Base{QID: answers.LogUpload}, prompt: promptLogUpload}
}
