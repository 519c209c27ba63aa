package executor

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/instantos/ins/pkg/testutil"
)

func TestCommandString(t *testing.T) {
	assert.Equal(t, "pacman -Sy", Cmd("pacman", "-Sy").String())
	assert.Equal(t, "sync", Cmd("sync").String())
}

func TestDryRunPrintsNormalizedForm(t *testing.T) {
	var buf bytes.Buffer
	e := &DryRun{Out: &buf}

	require.NoError(t, e.Run(Cmd("pacstrap", "/mnt", "base", "linux")))
	assert.Equal(t, "[DRY RUN] pacstrap /mnt base linux\n", buf.String())
}

func TestDryRunWithInput(t *testing.T) {
	var buf bytes.Buffer
	e := &DryRun{Out: &buf}

	require.NoError(t, e.RunWithInput(Cmd("chpasswd", "--root", "/mnt"), "user:secret\n"))
	assert.Equal(t, "[DRY RUN] chpasswd --root /mnt\n  | user:secret\n", buf.String())
}

func TestDryRunWithOutput(t *testing.T) {
	var buf bytes.Buffer
	e := &DryRun{Out: &buf}

	out, err := e.RunWithOutput(Cmd("lsblk"))
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Equal(t, "[DRY RUN] lsblk\n", buf.String())
}

func TestSystemRunWithOutput(t *testing.T) {
	e := NewSystem()

	out, err := e.RunWithOutput(Cmd("echo", "hello"))
	require.NoError(t, err)
	assert.Equal(t, "hello\n", out)
}

func TestSystemRunFailure(t *testing.T) {
	e := NewSystem()
	err := e.Run(Cmd("false"))
	assert.Error(t, err)
}

func TestSystemRunWithInput(t *testing.T) {
	e := NewSystem()
	require.NoError(t, e.RunWithInput(Cmd("cat"), "piped\n"))
}

func TestForcedDryRun(t *testing.T) {
	dir := testutil.TempDir(t, "sentinel")
	sentinel := filepath.Join(dir, "installdryrun")

	assert.False(t, ForcedDryRun(sentinel))
	testutil.CreateFile(t, dir, "installdryrun", "")
	assert.True(t, ForcedDryRun(sentinel))
}

func TestRecordingExecutor(t *testing.T) {
	e := NewRecording()
	require.NoError(t, e.Run(Cmd("one")))
	require.NoError(t, e.RunWithInput(Cmd("two"), "stdin"))

	e.Fail("three")
	assert.Error(t, e.Run(Cmd("three")))

	assert.Equal(t, []string{"one", "two", "three"}, e.CommandStrings())
	assert.Equal(t, "stdin", e.Inputs["two"])
}
