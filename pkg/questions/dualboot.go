package questions

import (
	"context"
	"strconv"

	"github.com/instantos/ins/pkg/answers"
	"github.com/instantos/ins/pkg/chooser"
	inserr "github.com/instantos/ins/pkg/errors"
	"github.com/instantos/ins/pkg/providers"
	"github.com/instantos/ins/pkg/ui"
)

// minDualBootGiB is the smallest Linux share we let a dual boot carve out.
const minDualBootGiB = 10

// DualBootPartitionQuestion selects the resize target: an existing
// partition to shrink, or free space already on the disk.
type DualBootPartitionQuestion struct{ Base }

// NewDualBootPartitionQuestion creates the dual boot target question
func NewDualBootPartitionQuestion() *DualBootPartitionQuestion {
	return &DualBootPartitionQuestion{Base{QID: answers.DualBootPartition}}
}

// ShouldAsk implements Question
func (q *DualBootPartitionQuestion) ShouldAsk(ctx *answers.Context) bool {
	return methodContains(ctx, "Dual Boot")
}

// Validate implements Question
func (q *DualBootPartitionQuestion) Validate(_ *answers.Context, answer string) error {
	if answer == AnswerFreeSpace {
		return nil
	}
	return validateDevicePath(answer)
}

// Ask implements Question
func (q *DualBootPartitionQuestion) Ask(goctx context.Context, ctx *answers.Context, ch chooser.Chooser) (string, error) {
	disk, _ := ctx.GetAnswer(answers.Disk)
	parts, err := partitionLister(goctx, providers.DevicePath(disk))
	if err != nil {
		return "", err
	}

	options := []string{labelFreeSpace}
	for _, p := range parts {
		options = append(options, p.display())
	}

	choice, err := ch.Select(promptDualBootTarget, options)
	if err != nil {
		return "", err
	}
	if choice == labelFreeSpace {
		return AnswerFreeSpace, nil
	}
	return providers.DevicePath(choice), nil
}

// DualBootSizeQuestion asks how many GiB the Linux side should get.
// The answer is stored as a decimal byte count.
type DualBootSizeQuestion struct{ Base }

// NewDualBootSizeQuestion creates the dual boot size question
func NewDualBootSizeQuestion() *DualBootSizeQuestion {
	return &DualBootSizeQuestion{Base{QID: answers.DualBootSize}}
}

// ShouldAsk implements Question
func (q *DualBootSizeQuestion) ShouldAsk(ctx *answers.Context) bool {
	return methodContains(ctx, "Dual Boot")
}

// Validate implements Question
func (q *DualBootSizeQuestion) Validate(_ *answers.Context, answer string) error {
	bytes, err := strconv.ParseUint(answer, 10, 64)
	if err != nil {
		return inserr.Newf(inserr.ErrValidation, "%q is not a valid size", answer)
	}
	if bytes < minDualBootGiB<<30 {
		return inserr.Newf(inserr.ErrValidation, "the Linux install needs at least %d GiB", minDualBootGiB)
	}
	return nil
}

// Ask implements Question
func (q *DualBootSizeQuestion) Ask(_ context.Context, _ *answers.Context, ch chooser.Chooser) (string, error) {
	raw, err := ch.Input(promptDualBootSize, "50")
	if err != nil {
		return "", err
	}
	gib, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		// Hand the raw text to Validate so the user sees the error
		return raw, nil
	}
	return strconv.FormatUint(gib<<30, 10), nil
}

// dualBootInstructions is shown before the dual boot setup proceeds.
const dualBootInstructions = `# Dual Boot Notes

Dual booting resizes an existing operating system to make room for Linux.

* **Back up your data first.** Resizing is generally safe, but power loss
  mid-resize can corrupt the existing system.
* If you are shrinking a Windows partition, disable *Fast Startup* in
  Windows and shut it down fully before continuing.
* The Windows boot manager stays in place; a boot menu will offer both
  systems after the installation.
`

// DualBootInstructionsQuestion renders the dual boot notes and asks for an
// explicit acknowledgement before continuing.
type DualBootInstructionsQuestion struct{ Base }

// NewDualBootInstructionsQuestion creates the acknowledgement question
func NewDualBootInstructionsQuestion() *DualBootInstructionsQuestion {
	return &DualBootInstructionsQuestion{Base{QID: answers.DualBootInstructions}}
}

// ShouldAsk implements Question
func (q *DualBootInstructionsQuestion) ShouldAsk(ctx *answers.Context) bool {
	return methodContains(ctx, "Dual Boot")
}

// Validate implements Question
func (q *DualBootInstructionsQuestion) Validate(_ *answers.Context, answer string) error {
	if answer != "true" {
		return inserr.New(inserr.ErrValidation, "the dual boot notes must be acknowledged")
	}
	return nil
}

// Ask implements Question
func (q *DualBootInstructionsQuestion) Ask(_ context.Context, _ *answers.Context, ch chooser.Chooser) (string, error) {
	ch.Message(ui.RenderMarkdown(dualBootInstructions))
	yes, err := ch.Confirm(promptDualBootAck)
	if err != nil {
		return "", err
	}
	return strconv.FormatBool(yes), nil
}

// UseEncryptionQuestion asks whether to encrypt the automatic layout.
// Encryption is only offered for automatic partitioning.
type UseEncryptionQuestion struct{ Base }

// NewUseEncryptionQuestion creates the encryption question
func NewUseEncryptionQuestion() *UseEncryptionQuestion {
	return &UseEncryptionQuestion{Base{QID: answers.UseEncryption}}
}

// ShouldAsk implements Question
func (q *UseEncryptionQuestion) ShouldAsk(ctx *answers.Context) bool {
	return methodContains(ctx, "Automatic")
}

// Ask implements Question
func (q *UseEncryptionQuestion) Ask(_ context.Context, _ *answers.Context, ch chooser.Chooser) (string, error) {
	yes, err := ch.Confirm(promptEncryption)
	if err != nil {
		return "", err
	}
	return strconv.FormatBool(yes), nil
}

// EncryptionPasswordQuestion collects the LUKS passphrase.
type EncryptionPasswordQuestion struct{ Base }

// NewEncryptionPasswordQuestion creates the passphrase question
func NewEncryptionPasswordQuestion() *EncryptionPasswordQuestion {
	return &EncryptionPasswordQuestion{Base{QID: answers.EncryptionPassword}}
}

// ShouldAsk implements Question
func (q *EncryptionPasswordQuestion) ShouldAsk(ctx *answers.Context) bool {
	return ctx.GetAnswerBool(answers.UseEncryption)
}

// Sensitive implements Question
func (q *EncryptionPasswordQuestion) Sensitive() bool { return true }

// Validate implements Question
func (q *EncryptionPasswordQuestion) Validate(_ *answers.Context, answer string) error {
	return ValidatePassword(answer)
}

// Ask implements Question
func (q *EncryptionPasswordQuestion) Ask(_ context.Context, _ *answers.Context, ch chooser.Chooser) (string, error) {
	return passwordAsk(ch, promptEncPassword, promptEncPassRepeat)
}
