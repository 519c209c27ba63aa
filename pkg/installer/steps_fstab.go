package installer

import "fmt"

// runFstab appends the generated fstab for the mounted target. The
// redirection happens in a shell so the dry-run plan still shows the
// exact write.
func (r *Runner) runFstab() error {
	return r.bash(fmt.Sprintf("genfstab -U %s >> %s/etc/fstab",
		r.Paths.TargetRoot, r.Paths.TargetRoot))
}
