// Package summary projects an install context into a human-readable,
// categorized overview plus a derived partitioning kind. The projection is
// a pure function: equal contexts produce byte-equal text.
package summary

import (
	"strconv"
	"strings"

	"github.com/instantos/ins/pkg/answers"
	"github.com/instantos/ins/pkg/providers"
)

// PartitioningKind tags the storage plan derived from the partitioning
// method answer.
type PartitioningKind string

const (
	PartitioningAutomatic PartitioningKind = "Automatic"
	PartitioningDualBoot  PartitioningKind = "DualBoot"
	PartitioningManual    PartitioningKind = "Manual"
	PartitioningUnknown   PartitioningKind = "Unknown"
)

// InstallSummary is the rendered overview of a context.
type InstallSummary struct {
	Text             string
	PartitioningKind PartitioningKind
}

// DeriveKind matches the partitioning method answer by case-sensitive
// substring. Unrecognized labels yield Unknown.
func DeriveKind(method string) PartitioningKind {
	switch {
	case strings.Contains(method, "Dual Boot"):
		return PartitioningDualBoot
	case strings.Contains(method, "Manual"):
		return PartitioningManual
	case strings.Contains(method, "Automatic"):
		return PartitioningAutomatic
	default:
		return PartitioningUnknown
	}
}

// Build renders the install summary from a context.
func Build(ctx *answers.Context) InstallSummary {
	method, _ := ctx.GetAnswer(answers.PartitioningMethod)
	kind := DeriveKind(method)
	minimal := ctx.GetAnswerBool(answers.MinimalMode)
	encrypted := kind == PartitioningAutomatic && ctx.GetAnswerBool(answers.UseEncryption)

	var b strings.Builder
	section := func(title string) {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(title + "\n")
	}
	line := func(label, value string) {
		b.WriteString("  " + label + ": " + value + "\n")
	}
	get := func(id answers.QuestionID) string {
		v, ok := ctx.GetAnswer(id)
		if !ok {
			return "Not set"
		}
		return v
	}

	section("Identity")
	line("Hostname", get(answers.Hostname))
	line("Username", get(answers.Username))

	section("Locale & Input")
	line("Timezone", get(answers.Timezone))
	line("Locale", get(answers.Locale))
	line("Keymap", get(answers.Keymap))

	section("Storage Plan")
	line("Disk", get(answers.Disk))
	line("Partitioning", get(answers.PartitioningMethod))
	if kind == PartitioningAutomatic {
		line("Layout", automaticLayout(ctx, encrypted))
	}

	if kind == PartitioningDualBoot {
		section("Dual Boot")
		line("Resize target", resizeTarget(ctx))
		line("Linux size", dualBootSize(ctx))
		line("Resize method", resizeMethod(ctx))
	}

	if kind == PartitioningManual {
		section("Partitions")
		line("Root", get(answers.RootPartition))
		if ctx.System.BootMode.IsUEFI() {
			line("Boot", get(answers.BootPartition))
		}
		line("Swap", get(answers.SwapPartition))
		line("Home", get(answers.HomePartition))
	}

	section("Security")
	line("Encryption", encryptionLabel(kind, encrypted))
	line("Password", setStatus(ctx, answers.Password))
	if encrypted {
		line("LUKS passphrase", setStatus(ctx, answers.EncryptionPassword))
	}

	section("System Options")
	line("Kernel", get(answers.Kernel))
	line("Profile", profileLabel(minimal))
	line("Plymouth", toggleLabel(ctx, answers.UsePlymouth, minimal))
	line("Autologin", toggleLabel(ctx, answers.Autologin, minimal))
	line("Log upload", enabledLabel(ctx.GetAnswerBool(answers.LogUpload)))
	line("Mirror region", get(answers.MirrorRegion))

	return InstallSummary{
		Text:             strings.TrimRight(b.String(), "\n"),
		PartitioningKind: kind,
	}
}

// automaticLayout describes the partition plan for automatic installs,
// derived from boot mode and encryption.
func automaticLayout(ctx *answers.Context, encrypted bool) string {
	uefi := ctx.System.BootMode.IsUEFI()
	switch {
	case uefi && encrypted:
		return "EFI (1 GiB) + LUKS (LVM swap + root)"
	case uefi:
		return "EFI (1 GiB) + Swap (auto) + Root"
	case encrypted:
		return "Boot (1 GiB) + LUKS (LVM swap + root)"
	default:
		return "Swap (auto) + Root"
	}
}

func resizeTarget(ctx *answers.Context) string {
	target, ok := ctx.GetAnswer(answers.DualBootPartition)
	if !ok {
		return "Not set"
	}
	if target == "__free_space__" {
		return "Use existing free space"
	}
	return target
}

func resizeMethod(ctx *answers.Context) string {
	target, _ := ctx.GetAnswer(answers.DualBootPartition)
	if target == "__free_space__" {
		return "Not required"
	}
	return "Shrink existing partition"
}

// dualBootSize formats the size answer with binary units when it parses
// as a byte count, and passes it through verbatim otherwise.
func dualBootSize(ctx *answers.Context) string {
	raw, ok := ctx.GetAnswer(answers.DualBootSize)
	if !ok {
		return "Not set"
	}
	bytes, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return raw
	}
	return providers.FormatBinarySize(bytes)
}

func encryptionLabel(kind PartitioningKind, encrypted bool) string {
	if kind == PartitioningDualBoot || kind == PartitioningManual {
		return "Not supported for dual boot/manual"
	}
	if encrypted {
		return "Enabled (LUKS)"
	}
	return "Disabled"
}

func profileLabel(minimal bool) string {
	if minimal {
		return "Minimal (vanilla Arch)"
	}
	return "instantOS (full)"
}

// toggleLabel renders plymouth/autologin, which minimal mode forces off
func toggleLabel(ctx *answers.Context, id answers.QuestionID, minimal bool) string {
	if minimal {
		return "Disabled (minimal mode)"
	}
	return enabledLabel(ctx.GetAnswerBool(id))
}

func enabledLabel(on bool) string {
	if on {
		return "Enabled"
	}
	return "Disabled"
}

func setStatus(ctx *answers.Context, id answers.QuestionID) string {
	if v, ok := ctx.GetAnswer(id); ok && v != "" {
		return "Set"
	}
	return "Not set"
}
