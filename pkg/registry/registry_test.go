package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndGet(t *testing.T) {
	r := New[int]()

	require.NoError(t, r.Register("one", 1))
	require.NoError(t, r.Register("two", 2))

	got, err := r.Get("one")
	require.NoError(t, err)
	assert.Equal(t, 1, got)

	_, err = r.Get("three")
	assert.Error(t, err)
}

func TestRegisterDuplicate(t *testing.T) {
	r := New[string]()
	require.NoError(t, r.Register("key", "a"))
	assert.Error(t, r.Register("key", "b"))
}

func TestRegisterEmptyName(t *testing.T) {
	r := New[string]()
	assert.Error(t, r.Register("", "a"))
}

func TestListIsSorted(t *testing.T) {
	r := New[int]()
	require.NoError(t, r.Register("zeta", 1))
	require.NoError(t, r.Register("alpha", 2))
	require.NoError(t, r.Register("mid", 3))

	assert.Equal(t, []string{"alpha", "mid", "zeta"}, r.List())
	assert.Equal(t, 3, r.Count())
	assert.True(t, r.Has("mid"))
	assert.False(t, r.Has("omega"))
}
