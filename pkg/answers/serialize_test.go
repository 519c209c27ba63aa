package answers

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/instantos/ins/pkg/sysinfo"
)

func sampleContext() *Context {
	ctx := NewContext()
	ctx.Insert(Hostname, "arch-box")
	ctx.Insert(Username, "paul")
	ctx.Insert(Password, "hunter2")
	ctx.Insert(Disk, "/dev/sda (500 GiB)")
	ctx.Insert(MinimalMode, "false")
	ctx.System = sysinfo.SystemInfo{
		BootMode:          sysinfo.BootModeUEFI64,
		InternetConnected: true,
		HasIntelCPU:       true,
		GPUs:              []string{"Intel Iris Xe"},
		VMType:            "kvm",
		TotalRAMGB:        15.5,
	}
	return ctx
}

func TestTOMLRoundTrip(t *testing.T) {
	ctx := sampleContext()

	data, err := ctx.ToTOML()
	require.NoError(t, err)

	got, err := FromTOML(data)
	require.NoError(t, err)

	assert.Equal(t, ctx.Answers(), got.Answers())
	assert.Equal(t, ctx.System, got.System)
}

func TestFromTOMLIgnoresUnknownKeys(t *testing.T) {
	doc := `
[answers]
Hostname = "arch-box"
FutureQuestion = "whatever"

[system_info]
boot_mode = "BIOS"
internet_connected = false
has_amd_cpu = true
has_intel_cpu = false
gpus = []
future_field = 42
`
	ctx, err := FromTOML([]byte(doc))
	require.NoError(t, err)

	host, ok := ctx.GetAnswer(Hostname)
	require.True(t, ok)
	assert.Equal(t, "arch-box", host)
	assert.Equal(t, 1, ctx.AnswerCount())
	assert.Equal(t, sysinfo.BootModeBIOS, ctx.System.BootMode)
	assert.True(t, ctx.System.HasAMDCPU)
}

func TestFromTOMLMalformed(t *testing.T) {
	_, err := FromTOML([]byte("this is not toml ]["))
	assert.Error(t, err)
}

func TestSaveLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "installconfig.toml")

	ctx := sampleContext()
	require.NoError(t, ctx.SaveFile(path))

	got, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ctx.Answers(), got.Answers())
	assert.Equal(t, ctx.System, got.System)
}

func TestSensitiveAnswersArePersistedVerbatim(t *testing.T) {
	ctx := sampleContext()
	data, err := ctx.ToTOML()
	require.NoError(t, err)
	assert.Contains(t, string(data), "hunter2")
}
