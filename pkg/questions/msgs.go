package questions

// Answer values with structural meaning
const (
	// AnswerFreeSpace marks the dual-boot resize target as existing
	// free space rather than a partition to shrink
	AnswerFreeSpace = "__free_space__"

	// AnswerNone marks an explicitly skipped partition assignment
	AnswerNone = "None"
)

// Partitioning method labels. Matched by substring elsewhere
// (summary, should-ask predicates), so they must stay stable.
const (
	MethodAutomatic = "Automatic (Erase Disk)"
	MethodManual    = "Manual Partitioning"
	MethodDualBoot  = "Dual Boot (Experimental)"
)

// Prompt texts
const (
	promptHostname       = "Hostname for the new system"
	promptUsername       = "Name for the primary user"
	promptPassword       = "Password for the primary user"
	promptPasswordRepeat = "Repeat the password"
	promptDisk           = "Select the installation disk"
	promptMethod         = "How should the disk be partitioned?"
	promptRunCfdisk      = "Open cfdisk to edit the partition table now?"
	promptDualBootTarget = "Select the partition to shrink (or use free space)"
	promptDualBootSize   = "Size of the Linux install in GiB"
	promptDualBootAck    = "Continue with the dual boot setup?"
	promptRootPartition  = "Select the root (/) partition"
	promptBootPartition  = "Select the EFI boot partition"
	promptSwapPartition  = "Select the swap partition"
	promptHomePartition  = "Select the home partition"
	promptEncryption     = "Encrypt the disk with LUKS?"
	promptEncPassword    = "Encryption passphrase"
	promptEncPassRepeat  = "Repeat the passphrase"
	promptTimezone       = "Select your timezone"
	promptLocale         = "Select the system locale"
	promptKeymap         = "Select the console keymap"
	promptMirrorRegion   = "Select the pacman mirror region"
	promptKernel         = "Select the kernel"
	promptMinimalMode    = "Install a minimal system (vanilla Arch, no instantOS desktop)?"
	promptPlymouth       = "Enable the Plymouth boot splash?"
	promptAutologin      = "Log the primary user in automatically?"
	promptLogUpload      = "Upload the installation log on failure?"
)

// Labels shown instead of raw structural values
const (
	labelFreeSpace = "Use existing free space"
)
