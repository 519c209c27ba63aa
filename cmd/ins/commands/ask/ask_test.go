package ask

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/instantos/ins/pkg/answers"
	"github.com/instantos/ins/pkg/chooser"
	"github.com/instantos/ins/pkg/testutil"
)

func savedPlan(t *testing.T) string {
	t.Helper()
	dir := testutil.TempDir(t, "ask")
	path := filepath.Join(dir, "installconfig.toml")

	ctx := answers.NewContext()
	ctx.Insert(answers.Hostname, "instantbox")
	ctx.Insert(answers.Username, "paul")
	require.NoError(t, ctx.SaveFile(path))
	return path
}

func TestResumeOrFreshMissingFileSkipsPrompt(t *testing.T) {
	ch := chooser.NewScriptChooser()

	ctx, err := resumeOrFresh(filepath.Join(testutil.TempDir(t, "ask"), "none.toml"), ch)
	require.NoError(t, err)
	require.NotNil(t, ctx)
	assert.Equal(t, 0, ctx.AnswerCount())
	assert.Empty(t, ch.Prompts)
}

func TestResumeOrFreshUnreadablePlanStartsFresh(t *testing.T) {
	dir := testutil.TempDir(t, "ask")
	path := testutil.CreateFile(t, dir, "installconfig.toml", "answers = not-toml")
	ch := chooser.NewScriptChooser()

	ctx, err := resumeOrFresh(path, ch)
	require.NoError(t, err)
	require.NotNil(t, ctx)
	assert.Equal(t, 0, ctx.AnswerCount())
	assert.Empty(t, ch.Prompts, "an unreadable plan must not be offered")
}

func TestResumeOrFreshEmptyPlanSkipsPrompt(t *testing.T) {
	dir := testutil.TempDir(t, "ask")
	path := filepath.Join(dir, "installconfig.toml")
	require.NoError(t, answers.NewContext().SaveFile(path))
	ch := chooser.NewScriptChooser()

	ctx, err := resumeOrFresh(path, ch)
	require.NoError(t, err)
	require.NotNil(t, ctx)
	assert.Empty(t, ch.Prompts, "a plan without answers must not be offered")
}

func TestResumeOrFreshUseSaved(t *testing.T) {
	path := savedPlan(t)
	ch := chooser.NewScriptChooser(chooser.Reply{Value: MsgSavedUse})

	ctx, err := resumeOrFresh(path, ch)
	require.NoError(t, err)
	require.NotNil(t, ctx)

	hostname, _ := ctx.GetAnswer(answers.Hostname)
	assert.Equal(t, "instantbox", hostname)
	assert.True(t, testutil.FileExists(path))
}

func TestResumeOrFreshStartFreshDeletesPlan(t *testing.T) {
	path := savedPlan(t)
	ch := chooser.NewScriptChooser(chooser.Reply{Value: MsgSavedFresh})

	ctx, err := resumeOrFresh(path, ch)
	require.NoError(t, err)
	require.NotNil(t, ctx)
	assert.Equal(t, 0, ctx.AnswerCount())
	assert.False(t, testutil.FileExists(path), "starting fresh must discard the old plan")
}

func TestResumeOrFreshCancel(t *testing.T) {
	path := savedPlan(t)

	for _, reply := range []chooser.Reply{{Value: MsgSavedCancel}, {Cancel: true}} {
		ch := chooser.NewScriptChooser(reply)
		ctx, err := resumeOrFresh(path, ch)
		require.NoError(t, err)
		assert.Nil(t, ctx)
		assert.True(t, testutil.FileExists(path))
	}
}
