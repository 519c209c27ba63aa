package summary_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/instantos/ins/pkg/answers"
	"github.com/instantos/ins/pkg/summary"
	"github.com/instantos/ins/pkg/sysinfo"
)

// uefiAutomaticContext builds the baseline scenario: fresh UEFI automatic
// install without encryption.
func uefiAutomaticContext() *answers.Context {
	ctx := answers.NewContext()
	ctx.System = sysinfo.SystemInfo{BootMode: sysinfo.BootModeUEFI64, InternetConnected: true}
	for id, v := range map[answers.QuestionID]string{
		answers.Hostname:           "host",
		answers.Username:           "user",
		answers.Password:           "x",
		answers.Disk:               "/dev/sda (500 GiB)",
		answers.PartitioningMethod: "Automatic (Erase Disk)",
		answers.Timezone:           "Europe/Berlin",
		answers.Locale:             "en_US.UTF-8",
		answers.Keymap:             "us",
		answers.MirrorRegion:       "Germany",
		answers.Kernel:             "linux",
		answers.MinimalMode:        "false",
		answers.UsePlymouth:        "true",
		answers.Autologin:          "false",
		answers.LogUpload:          "false",
		answers.UseEncryption:      "false",
	} {
		ctx.Insert(id, v)
	}
	return ctx
}

func TestFreshUEFIAutomatic(t *testing.T) {
	s := summary.Build(uefiAutomaticContext())

	assert.Equal(t, summary.PartitioningAutomatic, s.PartitioningKind)
	assert.Contains(t, s.Text, "Layout: EFI (1 GiB) + Swap (auto) + Root")
	assert.Contains(t, s.Text, "Hostname: host")
	assert.Contains(t, s.Text, "Profile: instantOS (full)")
	assert.Contains(t, s.Text, "Plymouth: Enabled")
	assert.Contains(t, s.Text, "Autologin: Disabled")
	assert.Contains(t, s.Text, "Encryption: Disabled")
	assert.Contains(t, s.Text, "Password: Set")
	assert.NotContains(t, s.Text, "Password: x", "raw password must not leak into the summary")
}

func TestMinimalMode(t *testing.T) {
	ctx := uefiAutomaticContext()
	ctx.Insert(answers.MinimalMode, "true")

	s := summary.Build(ctx)
	assert.Contains(t, s.Text, "Profile: Minimal (vanilla Arch)")
	assert.Contains(t, s.Text, "Plymouth: Disabled (minimal mode)")
	assert.Contains(t, s.Text, "Autologin: Disabled (minimal mode)")
}

func TestEncryptedBIOSAutomatic(t *testing.T) {
	ctx := uefiAutomaticContext()
	ctx.System.BootMode = sysinfo.BootModeBIOS
	ctx.Insert(answers.UseEncryption, "true")
	ctx.Insert(answers.EncryptionPassword, "secret")

	s := summary.Build(ctx)
	assert.Equal(t, summary.PartitioningAutomatic, s.PartitioningKind)
	assert.Contains(t, s.Text, "Layout: Boot (1 GiB) + LUKS (LVM swap + root)")
	assert.Contains(t, s.Text, "Encryption: Enabled (LUKS)")
	assert.Contains(t, s.Text, "LUKS passphrase: Set")
}

func TestEncryptedUEFIAutomatic(t *testing.T) {
	ctx := uefiAutomaticContext()
	ctx.Insert(answers.UseEncryption, "true")

	s := summary.Build(ctx)
	assert.Contains(t, s.Text, "Layout: EFI (1 GiB) + LUKS (LVM swap + root)")
}

func TestDualBootWithFreeSpace(t *testing.T) {
	ctx := uefiAutomaticContext()
	ctx.Insert(answers.PartitioningMethod, "Dual Boot (Experimental)")
	ctx.Insert(answers.DualBootPartition, "__free_space__")
	ctx.Insert(answers.DualBootSize, "53687091200")

	s := summary.Build(ctx)
	assert.Equal(t, summary.PartitioningDualBoot, s.PartitioningKind)
	assert.Contains(t, s.Text, "Resize target: Use existing free space")
	assert.Contains(t, s.Text, "Linux size: 50 GiB")
	assert.Contains(t, s.Text, "Resize method: Not required")
	assert.Contains(t, s.Text, "Encryption: Not supported for dual boot/manual")
	assert.NotContains(t, s.Text, "Layout:")
}

func TestDualBootShrinkPartition(t *testing.T) {
	ctx := uefiAutomaticContext()
	ctx.Insert(answers.PartitioningMethod, "Dual Boot (Experimental)")
	ctx.Insert(answers.DualBootPartition, "/dev/sda3")
	ctx.Insert(answers.DualBootSize, "banana")

	s := summary.Build(ctx)
	assert.Contains(t, s.Text, "Resize target: /dev/sda3")
	assert.Contains(t, s.Text, "Linux size: banana")
	assert.Contains(t, s.Text, "Resize method: Shrink existing partition")
}

func TestManualPartitioning(t *testing.T) {
	ctx := uefiAutomaticContext()
	ctx.Insert(answers.PartitioningMethod, "Manual Partitioning")
	ctx.Insert(answers.RootPartition, "/dev/sda2")
	ctx.Insert(answers.BootPartition, "/dev/sda1")
	ctx.Insert(answers.SwapPartition, "None")
	ctx.Insert(answers.HomePartition, "None")

	s := summary.Build(ctx)
	assert.Equal(t, summary.PartitioningManual, s.PartitioningKind)
	assert.Contains(t, s.Text, "Root: /dev/sda2")
	assert.Contains(t, s.Text, "Boot: /dev/sda1")
	assert.Contains(t, s.Text, "Swap: None")
	assert.Contains(t, s.Text, "Encryption: Not supported for dual boot/manual")
}

func TestDeriveKind(t *testing.T) {
	tests := []struct {
		method string
		want   summary.PartitioningKind
	}{
		{"Automatic (Erase Disk)", summary.PartitioningAutomatic},
		{"Manual Partitioning", summary.PartitioningManual},
		{"Dual Boot (Experimental)", summary.PartitioningDualBoot},
		{"automatic", summary.PartitioningUnknown},
		{"", summary.PartitioningUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, summary.DeriveKind(tt.method), tt.method)
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	a := summary.Build(uefiAutomaticContext())
	b := summary.Build(uefiAutomaticContext())

	require.Equal(t, a.Text, b.Text)
	require.Equal(t, a.PartitioningKind, b.PartitioningKind)
}
