package answers

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextAnswerAccess(t *testing.T) {
	ctx := NewContext()

	_, ok := ctx.GetAnswer(Hostname)
	assert.False(t, ok)
	assert.False(t, ctx.IsAnswered(Hostname))

	ctx.Insert(Hostname, "myhost")
	got, ok := ctx.GetAnswer(Hostname)
	require.True(t, ok)
	assert.Equal(t, "myhost", got)
	assert.True(t, ctx.IsAnswered(Hostname))

	ctx.Remove(Hostname)
	assert.False(t, ctx.IsAnswered(Hostname))
}

func TestGetAnswerBool(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{"true", "true", true},
		{"false", "false", false},
		{"garbage", "yes please", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := NewContext()
			ctx.Insert(MinimalMode, tt.value)
			assert.Equal(t, tt.want, ctx.GetAnswerBool(MinimalMode))
		})
	}
}

func TestGetAnswerBoolMissing(t *testing.T) {
	ctx := NewContext()
	assert.False(t, ctx.GetAnswerBool(MinimalMode))
}

func TestGetAnswerUint64(t *testing.T) {
	ctx := NewContext()
	ctx.Insert(DualBootSize, "53687091200")

	n, ok := ctx.GetAnswerUint64(DualBootSize)
	require.True(t, ok)
	assert.Equal(t, uint64(53687091200), n)

	ctx.Insert(DualBootSize, "not a number")
	_, ok = ctx.GetAnswerUint64(DualBootSize)
	assert.False(t, ok)
}

func TestParseQuestionID(t *testing.T) {
	id, err := ParseQuestionID("Hostname")
	require.NoError(t, err)
	assert.Equal(t, Hostname, id)

	_, err = ParseQuestionID("NotAQuestion")
	assert.Error(t, err)
}

type diskEntry struct {
	Path string
	Size uint64
}

var testDisksKey = Key[[]diskEntry]{ID: "test_disks"}

func TestStoreTypedAccess(t *testing.T) {
	store := NewStore()

	_, ok := testDisksKey.Get(store)
	assert.False(t, ok)
	assert.False(t, store.Has(testDisksKey.ID))

	disks := []diskEntry{{Path: "/dev/sda", Size: 500}}
	testDisksKey.Set(store, disks)

	got, ok := testDisksKey.Get(store)
	require.True(t, ok)
	assert.Equal(t, disks, got)
	assert.True(t, store.Has(testDisksKey.ID))
}

func TestStoreFailureClearedBySet(t *testing.T) {
	store := NewStore()
	store.SetFailure(testDisksKey.ID, assert.AnError)
	require.Error(t, store.Failure(testDisksKey.ID))

	testDisksKey.Set(store, nil)
	assert.NoError(t, store.Failure(testDisksKey.ID))
}

func TestStoreConcurrentAccess(t *testing.T) {
	store := NewStore()
	key := Key[int]{ID: "counter"}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			key.Set(store, n)
		}(i)
		go func() {
			defer wg.Done()
			key.Get(store)
		}()
	}
	wg.Wait()

	_, ok := key.Get(store)
	assert.True(t, ok)
}
