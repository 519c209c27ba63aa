package installer

import (
	"io"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	inserr "github.com/instantos/ins/pkg/errors"
)

// statFn is replaceable for tests
var statFn = unix.Stat

// IsChrooted detects whether the process runs inside a chroot by
// comparing the device and inode of / against /proc/1/root. A failure to
// stat either is read conservatively as "not chrooted".
func IsChrooted() bool {
	var root, initRoot unix.Stat_t
	if err := statFn("/", &root); err != nil {
		return false
	}
	if err := statFn("/proc/1/root", &initRoot); err != nil {
		return false
	}
	return root.Dev != initRoot.Dev || root.Ino != initRoot.Ino
}

// copyFile copies src to dst, creating parent directories and preserving
// the given mode. Used to stage the binary, config and state into the
// target root before the chroot handoff.
func copyFile(src, dst string, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return inserr.Wrapf(err, inserr.ErrFileAccess, "failed to open %s", src)
	}
	defer func() { _ = in.Close() }()

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return inserr.Wrapf(err, inserr.ErrChrootHandoff, "failed to create directory for %s", dst)
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode)
	if err != nil {
		return inserr.Wrapf(err, inserr.ErrChrootHandoff, "failed to create %s", dst)
	}
	defer func() { _ = out.Close() }()

	if _, err := io.Copy(out, in); err != nil {
		return inserr.Wrapf(err, inserr.ErrChrootHandoff, "failed to copy %s to %s", src, dst)
	}
	return out.Sync()
}
