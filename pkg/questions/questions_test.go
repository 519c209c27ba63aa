package questions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/instantos/ins/pkg/answers"
	"github.com/instantos/ins/pkg/chooser"
	"github.com/instantos/ins/pkg/providers"
	"github.com/instantos/ins/pkg/sysinfo"
)

func TestListCoversAllQuestionIDs(t *testing.T) {
	seen := make(map[answers.QuestionID]bool)
	for _, q := range List() {
		assert.False(t, seen[q.ID()], "duplicate question %s", q.ID())
		seen[q.ID()] = true
	}
	for _, id := range answers.AllQuestionIDs {
		assert.True(t, seen[id], "missing question %s", id)
	}
}

func TestByID(t *testing.T) {
	q, err := ByID(answers.Hostname)
	require.NoError(t, err)
	assert.Equal(t, answers.Hostname, q.ID())

	_, err = ByID(answers.QuestionID("Bogus"))
	assert.Error(t, err)
}

func TestValidateHostname(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"simple", "arch-box", false},
		{"single char", "a", false},
		{"digits", "host42", false},
		{"empty", "", true},
		{"leading hyphen", "-host", true},
		{"trailing hyphen", "host-", true},
		{"spaces", "my host", true},
		{"underscore", "my_host", true},
		{"too long", "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHostname(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"simple", "paul", false},
		{"underscore start", "_svc", false},
		{"hyphen", "my-user", false},
		{"empty", "", true},
		{"root", "root", true},
		{"uppercase", "Paul", true},
		{"digit start", "1user", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDualBootQuestionsShouldAsk(t *testing.T) {
	ctx := answers.NewContext()
	dual := []Question{
		NewDualBootPartitionQuestion(),
		NewDualBootSizeQuestion(),
		NewDualBootInstructionsQuestion(),
	}

	for _, q := range dual {
		assert.False(t, q.ShouldAsk(ctx), "%s before method chosen", q.ID())
	}

	ctx.Insert(answers.PartitioningMethod, MethodDualBoot)
	for _, q := range dual {
		assert.True(t, q.ShouldAsk(ctx), "%s with dual boot method", q.ID())
	}

	ctx.Insert(answers.PartitioningMethod, MethodAutomatic)
	for _, q := range dual {
		assert.False(t, q.ShouldAsk(ctx), "%s with automatic method", q.ID())
	}
}

func TestManualPartitionQuestionsShouldAsk(t *testing.T) {
	ctx := answers.NewContext()
	ctx.System = sysinfo.SystemInfo{BootMode: sysinfo.BootModeBIOS}
	ctx.Insert(answers.PartitioningMethod, MethodManual)

	assert.True(t, NewRootPartitionQuestion().ShouldAsk(ctx))
	assert.True(t, NewSwapPartitionQuestion().ShouldAsk(ctx))
	assert.True(t, NewHomePartitionQuestion().ShouldAsk(ctx))
	assert.True(t, NewRunCfdiskQuestion().ShouldAsk(ctx))
	// BIOS installs have no EFI partition to pick
	assert.False(t, NewBootPartitionQuestion().ShouldAsk(ctx))

	ctx.System.BootMode = sysinfo.BootModeUEFI64
	assert.True(t, NewBootPartitionQuestion().ShouldAsk(ctx))
}

func TestEncryptionShouldAsk(t *testing.T) {
	ctx := answers.NewContext()
	enc := NewUseEncryptionQuestion()
	pass := NewEncryptionPasswordQuestion()

	assert.False(t, enc.ShouldAsk(ctx))
	assert.False(t, pass.ShouldAsk(ctx))

	ctx.Insert(answers.PartitioningMethod, MethodAutomatic)
	assert.True(t, enc.ShouldAsk(ctx))
	assert.False(t, pass.ShouldAsk(ctx))

	ctx.Insert(answers.UseEncryption, "true")
	assert.True(t, pass.ShouldAsk(ctx))

	ctx.Insert(answers.PartitioningMethod, MethodManual)
	assert.False(t, enc.ShouldAsk(ctx))
}

func TestOptionalDefaults(t *testing.T) {
	ctx := answers.NewContext()
	tests := []struct {
		q    Question
		want string
	}{
		{NewKernelQuestion(), "linux"},
		{NewMinimalModeQuestion(), "false"},
		{NewUsePlymouthQuestion(), "true"},
		{NewAutologinQuestion(), "false"},
		{NewLogUploadQuestion(), "false"},
	}
	for _, tt := range tests {
		assert.True(t, tt.q.Optional(), "%s should be optional", tt.q.ID())
		def, ok := tt.q.Default(ctx)
		require.True(t, ok, "%s should have a default", tt.q.ID())
		assert.Equal(t, tt.want, def, "%s default", tt.q.ID())
	}
}

func TestSensitiveFlags(t *testing.T) {
	assert.True(t, NewPasswordQuestion().Sensitive())
	assert.True(t, NewEncryptionPasswordQuestion().Sensitive())
	assert.False(t, NewHostnameQuestion().Sensitive())
}

func TestDualBootSizeAskConvertsGiB(t *testing.T) {
	q := NewDualBootSizeQuestion()
	ch := chooser.NewScriptChooser(chooser.Reply{Value: "50"})

	got, err := q.Ask(context.Background(), answers.NewContext(), ch)
	require.NoError(t, err)
	assert.Equal(t, "53687091200", got)
	assert.NoError(t, q.Validate(answers.NewContext(), got))
}

func TestDualBootSizeValidate(t *testing.T) {
	q := NewDualBootSizeQuestion()
	ctx := answers.NewContext()

	assert.NoError(t, q.Validate(ctx, "53687091200"))
	assert.Error(t, q.Validate(ctx, "not a size"))
	// below the 10 GiB floor
	assert.Error(t, q.Validate(ctx, "1073741824"))
}

func TestPasswordAskRepeatsUntilMatch(t *testing.T) {
	q := NewPasswordQuestion()
	ch := chooser.NewScriptChooser(
		chooser.Reply{Value: "first"},
		chooser.Reply{Value: "mismatch"},
		chooser.Reply{Value: "secret"},
		chooser.Reply{Value: "secret"},
	)

	got, err := q.Ask(context.Background(), answers.NewContext(), ch)
	require.NoError(t, err)
	assert.Equal(t, "secret", got)
	assert.Len(t, ch.Messages, 1)
}

func TestPasswordAskCancel(t *testing.T) {
	q := NewPasswordQuestion()
	ch := chooser.NewScriptChooser(chooser.Reply{Cancel: true})

	_, err := q.Ask(context.Background(), answers.NewContext(), ch)
	assert.ErrorIs(t, err, chooser.ErrCancelled)
}

func TestDiskQuestionReadiness(t *testing.T) {
	ctx := answers.NewContext()
	q := NewDiskQuestion()

	assert.False(t, IsReady(q, ctx))
	assert.Empty(t, FatalError(q, ctx))

	providers.KeyDisks.Set(ctx.Data, []providers.DiskEntry{{Path: "/dev/sda", SizeBytes: 1 << 39}})
	assert.True(t, IsReady(q, ctx))
	assert.Empty(t, FatalError(q, ctx))
}

func TestDiskQuestionFatalOnProviderFailure(t *testing.T) {
	ctx := answers.NewContext()
	q := NewDiskQuestion()

	ctx.Data.SetFailure(providers.KeyDisks.ID, assert.AnError)
	// Failure makes the question ready so the fatal path can run
	assert.True(t, IsReady(q, ctx))
	assert.NotEmpty(t, FatalError(q, ctx))
}

func TestMirrorRegionAbsorbsFailure(t *testing.T) {
	ctx := answers.NewContext()
	q := NewMirrorRegionQuestion()

	assert.False(t, IsReady(q, ctx))

	ctx.Data.SetFailure(providers.KeyMirrorRegions.ID, assert.AnError)
	assert.True(t, IsReady(q, ctx))
	assert.Empty(t, FatalError(q, ctx))

	ch := chooser.NewScriptChooser(chooser.Reply{Value: providers.MirrorFallback})
	got, err := q.Ask(context.Background(), ctx, ch)
	require.NoError(t, err)
	assert.Equal(t, providers.MirrorFallback, got)
}

func TestDiskQuestionAskListsDisks(t *testing.T) {
	ctx := answers.NewContext()
	providers.KeyDisks.Set(ctx.Data, []providers.DiskEntry{
		{Path: "/dev/sda", SizeBytes: 536870912000, Model: "Samsung SSD"},
		{Path: "/dev/nvme0n1", SizeBytes: 1099511627776},
	})

	ch := chooser.NewScriptChooser(chooser.Reply{Value: "/dev/sda (500 GiB) Samsung SSD"})
	got, err := NewDiskQuestion().Ask(context.Background(), ctx, ch)
	require.NoError(t, err)
	assert.NoError(t, NewDiskQuestion().Validate(ctx, got))
}

func TestDualBootPartitionFreeSpace(t *testing.T) {
	restore := partitionLister
	partitionLister = func(context.Context, string) ([]partitionEntry, error) {
		return []partitionEntry{{Path: "/dev/sda1", SizeBytes: 1 << 38, FSType: "ntfs"}}, nil
	}
	defer func() { partitionLister = restore }()

	ctx := answers.NewContext()
	ctx.Insert(answers.Disk, "/dev/sda (500 GiB)")
	q := NewDualBootPartitionQuestion()

	ch := chooser.NewScriptChooser(chooser.Reply{Value: "Use existing free space"})
	got, err := q.Ask(context.Background(), ctx, ch)
	require.NoError(t, err)
	assert.Equal(t, AnswerFreeSpace, got)
	assert.NoError(t, q.Validate(ctx, got))
}

func TestParsePartitions(t *testing.T) {
	data := `{
		"blockdevices": [
			{"name": "sda", "size": 536870912000, "type": "disk", "fstype": null, "children": [
				{"name": "sda1", "size": 1073741824, "type": "part", "fstype": "vfat"},
				{"name": "sda2", "size": 535797170176, "type": "part", "fstype": "ext4"}
			]}
		]
	}`
	parts, err := parsePartitions([]byte(data))
	require.NoError(t, err)
	require.Len(t, parts, 2)
	assert.Equal(t, "/dev/sda1", parts[0].Path)
	assert.Equal(t, "vfat", parts[0].FSType)
	assert.Equal(t, "/dev/sda1 (1 GiB) vfat", parts[0].display())
}
