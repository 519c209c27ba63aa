package installer

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/instantos/ins/pkg/answers"
	inserr "github.com/instantos/ins/pkg/errors"
	"github.com/instantos/ins/pkg/executor"
	"github.com/instantos/ins/pkg/settings"
	"github.com/instantos/ins/pkg/sysinfo"
	"github.com/instantos/ins/pkg/testutil"
)

func TestParseStep(t *testing.T) {
	for _, step := range AllSteps() {
		got, err := ParseStep(string(step))
		require.NoError(t, err)
		assert.Equal(t, step, got)
	}

	_, err := ParseStep("mkfs")
	require.Error(t, err)
	assert.True(t, inserr.IsErrorCode(err, inserr.ErrInvalidInput))
}

func TestStepChrootRequirement(t *testing.T) {
	assert.False(t, StepDisk.RequiresChroot())
	assert.False(t, StepBase.RequiresChroot())
	assert.False(t, StepFstab.RequiresChroot())
	assert.True(t, StepConfig.RequiresChroot())
	assert.True(t, StepBootloader.RequiresChroot())
	assert.True(t, StepPost.RequiresChroot())
}

func TestStepDependenciesFormChain(t *testing.T) {
	steps := AllSteps()
	assert.Empty(t, steps[0].Dependencies())
	for i := 1; i < len(steps); i++ {
		assert.Equal(t, []Step{steps[i-1]}, steps[i].Dependencies())
	}
}

func TestStateRoundTrip(t *testing.T) {
	dir := testutil.TempDir(t, "state")
	path := filepath.Join(dir, "state.toml")

	s, err := LoadState(path)
	require.NoError(t, err)
	assert.Empty(t, s.CompletedSteps, "missing file must read as empty state")

	s.MarkComplete(StepDisk)
	s.MarkComplete(StepBase)
	s.MarkComplete(StepDisk) // idempotent
	require.NoError(t, s.Save(path))

	loaded, err := LoadState(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"disk", "base"}, loaded.CompletedSteps)
	assert.True(t, loaded.IsComplete(StepDisk))
	assert.False(t, loaded.IsComplete(StepFstab))
}

func TestLoadStateRejectsMalformedFile(t *testing.T) {
	dir := testutil.TempDir(t, "state")
	path := testutil.CreateFile(t, dir, "state.toml", "completed_steps = not-toml")

	_, err := LoadState(path)
	require.Error(t, err)
	assert.True(t, inserr.IsErrorCode(err, inserr.ErrStateLoad))
}

// testRunner builds a runner against a recording executor with all
// filesystem paths pointed into a temp dir.
func testRunner(t *testing.T, ctx *answers.Context) (*Runner, *executor.Recording) {
	t.Helper()
	dir := testutil.TempDir(t, "installer")
	rec := executor.NewRecording()

	paths := settings.Default().Paths
	paths.State = filepath.Join(dir, "state.toml")
	paths.TargetRoot = filepath.Join(dir, "mnt")
	paths.StagedBinary = filepath.Join(paths.TargetRoot, "usr/bin/ins")
	paths.StagedConfig = filepath.Join(paths.TargetRoot, "tmp/install_config.toml")
	paths.StagedState = filepath.Join(paths.TargetRoot, "tmp/instant_install_state.toml")

	configPath := testutil.CreateFile(t, dir, "config.toml", "[answers]\n")
	r := NewRunner(ctx, rec, paths, configPath, false)
	r.inChroot = func() bool { return false }
	r.selfExe = func() (string, error) {
		return testutil.CreateFile(t, dir, "ins", "#!binary"), nil
	}
	return r, rec
}

func uefiContext() *answers.Context {
	ctx := answers.NewContext()
	ctx.System = sysinfo.SystemInfo{BootMode: sysinfo.BootModeUEFI64, TotalRAMGB: 7.8}
	ctx.Insert(answers.Hostname, "instantbox")
	ctx.Insert(answers.Username, "paul")
	ctx.Insert(answers.Password, "hunter2")
	ctx.Insert(answers.Disk, "/dev/sda (500 GiB) Samsung SSD")
	ctx.Insert(answers.PartitioningMethod, "Automatic (Erase Disk)")
	ctx.Insert(answers.Timezone, "Europe/Berlin")
	ctx.Insert(answers.Locale, "de_DE.UTF-8")
	ctx.Insert(answers.Keymap, "de-latin1")
	ctx.Insert(answers.MirrorRegion, "Germany")
	ctx.Insert(answers.Kernel, "linux")
	ctx.Insert(answers.MinimalMode, "false")
	ctx.Insert(answers.UsePlymouth, "true")
	ctx.Insert(answers.Autologin, "false")
	ctx.Insert(answers.LogUpload, "false")
	return ctx
}

func TestRunStepMarksCompleteAndSkipsRerun(t *testing.T) {
	r, rec := testRunner(t, uefiContext())

	require.NoError(t, r.RunStep(StepDisk))
	first := len(rec.Commands)
	assert.Greater(t, first, 0)

	state, err := LoadState(r.Paths.State)
	require.NoError(t, err)
	assert.True(t, state.IsComplete(StepDisk))

	// Second run must not touch the executor at all
	require.NoError(t, r.RunStep(StepDisk))
	assert.Len(t, rec.Commands, first)
}

func TestRunStepFailureLeavesStateUntouched(t *testing.T) {
	r, rec := testRunner(t, uefiContext())
	rec.Fail("wipefs --all /dev/sda")

	err := r.RunStep(StepDisk)
	require.Error(t, err)
	assert.True(t, inserr.IsErrorCode(err, inserr.ErrStepFailed))

	state, lerr := LoadState(r.Paths.State)
	require.NoError(t, lerr)
	assert.False(t, state.IsComplete(StepDisk))
}

func TestRunStepDependencyViolation(t *testing.T) {
	r, _ := testRunner(t, uefiContext())

	err := r.RunStep(StepFstab)
	require.Error(t, err)
	assert.True(t, inserr.IsErrorCode(err, inserr.ErrStepDependency))
}

func TestDryRunProceedsPastMissingDependencies(t *testing.T) {
	r, rec := testRunner(t, uefiContext())
	r.DryRun = true

	require.NoError(t, r.RunStep(StepFstab))
	assert.NotEmpty(t, rec.Commands)
}

func TestDryRunDoesNotPersistState(t *testing.T) {
	r, _ := testRunner(t, uefiContext())
	r.DryRun = true

	require.NoError(t, r.RunStep(StepDisk))
	assert.False(t, testutil.FileExists(r.Paths.State))
}

func TestChrootInvariantRejected(t *testing.T) {
	r, _ := testRunner(t, uefiContext())
	r.inChroot = func() bool { return true }

	err := r.RunStep(StepDisk)
	require.Error(t, err)
	assert.True(t, inserr.IsErrorCode(err, inserr.ErrChrootInvariant))
}

func TestChrootHandoffStagesAndReexecs(t *testing.T) {
	r, rec := testRunner(t, uefiContext())

	// config's dependencies must already be complete
	state := &State{}
	state.MarkComplete(StepDisk)
	state.MarkComplete(StepBase)
	state.MarkComplete(StepFstab)
	require.NoError(t, state.Save(r.Paths.State))

	require.NoError(t, r.RunStep(StepConfig))

	assert.True(t, testutil.FileExists(r.Paths.StagedBinary))
	assert.True(t, testutil.FileExists(r.Paths.StagedConfig))
	assert.True(t, testutil.FileExists(r.Paths.StagedState))

	require.Len(t, rec.Commands, 1)
	cmd := rec.Commands[0].String()
	assert.True(t, strings.HasPrefix(cmd, "arch-chroot "+r.Paths.TargetRoot), cmd)
	assert.Contains(t, cmd, "/usr/bin/ins arch exec config --config /tmp/install_config.toml")
	assert.NotContains(t, cmd, "--dry-run")

	// handoff does not mark the step complete on this side
	after, err := LoadState(r.Paths.State)
	require.NoError(t, err)
	assert.False(t, after.IsComplete(StepConfig))
}

func TestChrootStepRunsDirectlyInsideChroot(t *testing.T) {
	r, rec := testRunner(t, uefiContext())
	r.inChroot = func() bool { return true }

	state := &State{}
	state.MarkComplete(StepDisk)
	state.MarkComplete(StepBase)
	state.MarkComplete(StepFstab)
	require.NoError(t, state.Save(r.Paths.State))

	require.NoError(t, r.RunStep(StepConfig))

	cmds := rec.CommandStrings()
	assert.Contains(t, cmds, "ln -sf /usr/share/zoneinfo/Europe/Berlin /etc/localtime")
	for _, c := range cmds {
		assert.NotContains(t, c, "arch-chroot")
	}
}

func TestChrootStepDryRunSkipsHandoff(t *testing.T) {
	r, rec := testRunner(t, uefiContext())
	r.DryRun = true

	require.NoError(t, r.RunStep(StepConfig))
	for _, c := range rec.CommandStrings() {
		assert.NotContains(t, c, "arch-chroot")
	}
	assert.False(t, testutil.FileExists(r.Paths.StagedBinary))
}

// handoffExecutor plays the chrooted side of a handoff: when it sees the
// arch-chroot re-exec it marks the step complete in the staged state,
// exactly as the inner process would before exiting successfully.
type handoffExecutor struct {
	*executor.Recording
	t     *testing.T
	paths settings.Paths
}

func (e *handoffExecutor) Run(cmd executor.Command) error {
	if cmd.Program == "arch-chroot" {
		step, err := ParseStep(cmd.Args[4])
		require.NoError(e.t, err)
		state, err := LoadState(e.paths.StagedState)
		require.NoError(e.t, err)
		state.MarkComplete(step)
		require.NoError(e.t, state.Save(e.paths.StagedState))
	}
	return e.Recording.Run(cmd)
}

func TestRunAllCompletesAcrossChrootHandoffs(t *testing.T) {
	r, rec := testRunner(t, uefiContext())
	r.Exec = &handoffExecutor{Recording: rec, t: t, paths: r.Paths}

	require.NoError(t, r.RunAll())

	// Completion recorded inside the chroot must be visible outside, or
	// each handed-off step would fail the next dependency check.
	state, err := LoadState(r.Paths.State)
	require.NoError(t, err)
	for _, step := range AllSteps() {
		assert.True(t, state.IsComplete(step), "step %s not complete in outer state", step)
	}

	var handoffs int
	for _, c := range rec.Commands {
		if c.Program == "arch-chroot" {
			handoffs++
		}
	}
	assert.Equal(t, 3, handoffs, "config, bootloader and post each hand off once")
}

func TestRunAllExecutesEveryStepOnce(t *testing.T) {
	r, rec := testRunner(t, uefiContext())
	r.inChroot = func() bool { return false }
	r.DryRun = true // avoid the handoff so all six actions run locally

	require.NoError(t, r.RunAll())
	cmds := rec.CommandStrings()
	assert.Contains(t, cmds, "wipefs --all /dev/sda")
	assert.Contains(t, cmds, "pacstrap -K "+r.Paths.TargetRoot+" base linux linux-firmware networkmanager grub sudo efibootmgr")
	assert.Contains(t, cmds, "systemctl enable NetworkManager")
	assert.Contains(t, cmds, "grub-install --target=x86_64-efi --efi-directory=/boot --bootloader-id=instantOS")
}
