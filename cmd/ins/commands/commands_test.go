package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmdStructure(t *testing.T) {
	root := NewRootCmd()
	assert.Equal(t, "ins", root.Use)
	assert.True(t, root.SilenceUsage)
	assert.True(t, root.SilenceErrors)

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "ask")
	assert.Contains(t, names, "arch")
	assert.Contains(t, names, "version")
	assert.Contains(t, names, "completion")
}

func TestRootCmdWithoutSubcommandFails(t *testing.T) {
	root := NewRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{})

	err := root.Execute()
	require.Error(t, err)
}

func TestCompletionGeneratesScript(t *testing.T) {
	root := NewRootCmd()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"completion", "bash"})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "bash completion")
}

func TestArchExecRejectsUnknownStep(t *testing.T) {
	root := NewRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"arch", "exec", "mkfs", "--dry-run"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown install step")
}
