package questions

import (
	"github.com/instantos/ins/pkg/answers"
	inserr "github.com/instantos/ins/pkg/errors"
)

// List returns the wizard's questions in ask order. The order is the
// contract: the engine walks it front to back, skipping questions whose
// ShouldAsk is false.
func List() []Question {
	return []Question{
		NewHostnameQuestion(),
		NewUsernameQuestion(),
		NewPasswordQuestion(),
		NewDiskQuestion(),
		NewPartitioningMethodQuestion(),
		NewRunCfdiskQuestion(),
		NewDualBootPartitionQuestion(),
		NewDualBootSizeQuestion(),
		NewDualBootInstructionsQuestion(),
		NewRootPartitionQuestion(),
		NewBootPartitionQuestion(),
		NewSwapPartitionQuestion(),
		NewHomePartitionQuestion(),
		NewUseEncryptionQuestion(),
		NewEncryptionPasswordQuestion(),
		NewTimezoneQuestion(),
		NewLocaleQuestion(),
		NewKeymapQuestion(),
		NewMirrorRegionQuestion(),
		NewKernelQuestion(),
		NewMinimalModeQuestion(),
		NewUsePlymouthQuestion(),
		NewAutologinQuestion(),
		NewLogUploadQuestion(),
	}
}

// ByID finds the question with the given id in the standard list
func ByID(id answers.QuestionID) (Question, error) {
	for _, q := range List() {
		if q.ID() == id {
			return q, nil
		}
	}
	return nil, inserr.Newf(inserr.ErrQuestionID, "no question with id %q", id)
}
