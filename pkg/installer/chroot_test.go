package installer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/sys/unix"
)

func withStat(t *testing.T, fn func(path string, stat *unix.Stat_t) error) {
	t.Helper()
	orig := statFn
	statFn = fn
	t.Cleanup(func() { statFn = orig })
}

func TestIsChrootedComparesRootInodes(t *testing.T) {
	withStat(t, func(path string, stat *unix.Stat_t) error {
		if path == "/" {
			stat.Dev, stat.Ino = 1, 100
		} else {
			stat.Dev, stat.Ino = 1, 200
		}
		return nil
	})
	assert.True(t, IsChrooted())
}

func TestIsChrootedSameRoot(t *testing.T) {
	withStat(t, func(path string, stat *unix.Stat_t) error {
		stat.Dev, stat.Ino = 1, 100
		return nil
	})
	assert.False(t, IsChrooted())
}

func TestIsChrootedStatFailureMeansNotChrooted(t *testing.T) {
	withStat(t, func(path string, stat *unix.Stat_t) error {
		if path == "/proc/1/root" {
			return errors.New("permission denied")
		}
		stat.Dev, stat.Ino = 1, 100
		return nil
	})
	assert.False(t, IsChrooted())
}
