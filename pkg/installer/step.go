// Package installer replays a persisted install context as an ordered
// sequence of steps, tracking completion on disk so interrupted runs can
// resume, and handing off into the target chroot for the steps that need
// the new root.
package installer

import (
	"github.com/instantos/ins/pkg/logging"

	inserr "github.com/instantos/ins/pkg/errors"
)

var log = logging.GetLogger("installer")

// Step is one phase of the installation.
type Step string

const (
	StepDisk       Step = "disk"
	StepBase       Step = "base"
	StepFstab      Step = "fstab"
	StepConfig     Step = "config"
	StepBootloader Step = "bootloader"
	StepPost       Step = "post"
)

// AllSteps returns the steps in execution order
func AllSteps() []Step {
	return []Step{StepDisk, StepBase, StepFstab, StepConfig, StepBootloader, StepPost}
}

// ParseStep resolves a step name from the CLI
func ParseStep(name string) (Step, error) {
	for _, s := range AllSteps() {
		if string(s) == name {
			return s, nil
		}
	}
	return "", inserr.Newf(inserr.ErrInvalidInput, "unknown install step %q", name)
}

// RequiresChroot reports whether the step must run inside the target root
func (s Step) RequiresChroot() bool {
	switch s {
	case StepConfig, StepBootloader, StepPost:
		return true
	default:
		return false
	}
}

// Dependencies returns the steps that must be complete before this one
func (s Step) Dependencies() []Step {
	switch s {
	case StepDisk:
		return nil
	case StepBase:
		return []Step{StepDisk}
	case StepFstab:
		return []Step{StepBase}
	case StepConfig:
		return []Step{StepFstab}
	case StepBootloader:
		return []Step{StepConfig}
	case StepPost:
		return []Step{StepBootloader}
	default:
		return nil
	}
}
