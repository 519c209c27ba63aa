package answers

import (
	inserr "github.com/instantos/ins/pkg/errors"
)

// QuestionID identifies one answer slot in the install context. The
// identifiers are persisted as TOML keys, so they must stay stable.
type QuestionID string

const (
	Hostname             QuestionID = "Hostname"
	Username             QuestionID = "Username"
	Password             QuestionID = "Password"
	Disk                 QuestionID = "Disk"
	PartitioningMethod   QuestionID = "PartitioningMethod"
	RunCfdisk            QuestionID = "RunCfdisk"
	DualBootPartition    QuestionID = "DualBootPartition"
	DualBootSize         QuestionID = "DualBootSize"
	DualBootInstructions QuestionID = "DualBootInstructions"
	RootPartition        QuestionID = "RootPartition"
	BootPartition        QuestionID = "BootPartition"
	SwapPartition        QuestionID = "SwapPartition"
	HomePartition        QuestionID = "HomePartition"
	Timezone             QuestionID = "Timezone"
	Locale               QuestionID = "Locale"
	Keymap               QuestionID = "Keymap"
	MirrorRegion         QuestionID = "MirrorRegion"
	Kernel               QuestionID = "Kernel"
	UsePlymouth          QuestionID = "UsePlymouth"
	Autologin            QuestionID = "Autologin"
	LogUpload            QuestionID = "LogUpload"
	MinimalMode          QuestionID = "MinimalMode"
	UseEncryption        QuestionID = "UseEncryption"
	EncryptionPassword   QuestionID = "EncryptionPassword"
)

// AllQuestionIDs lists every known id, in canonical wizard order.
var AllQuestionIDs = []QuestionID{
	Hostname,
	Username,
	Password,
	Disk,
	PartitioningMethod,
	RunCfdisk,
	DualBootPartition,
	DualBootSize,
	DualBootInstructions,
	RootPartition,
	BootPartition,
	SwapPartition,
	HomePartition,
	UseEncryption,
	EncryptionPassword,
	Timezone,
	Locale,
	Keymap,
	MirrorRegion,
	Kernel,
	MinimalMode,
	UsePlymouth,
	Autologin,
	LogUpload,
}

// ParseQuestionID resolves a user-supplied id string (e.g. from --id)
func ParseQuestionID(s string) (QuestionID, error) {
	for _, id := range AllQuestionIDs {
		if string(id) == s {
			return id, nil
		}
	}
	return "", inserr.Newf(inserr.ErrQuestionID, "unknown question id %q", s)
}
