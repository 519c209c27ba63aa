package installer

import (
	"os"
	"strings"

	"github.com/instantos/ins/pkg/answers"
	inserr "github.com/instantos/ins/pkg/errors"
	"github.com/instantos/ins/pkg/executor"
	"github.com/instantos/ins/pkg/settings"
	"github.com/instantos/ins/pkg/ui"
)

// Runner executes install steps against a loaded context.
type Runner struct {
	Context    *answers.Context
	Exec       executor.Executor
	Paths      settings.Paths
	DryRun     bool
	ConfigPath string

	// statePath overrides Paths.State; used by tests
	statePath string
	// inChroot and selfExe are replaceable for tests
	inChroot func() bool
	selfExe  func() (string, error)
}

// NewRunner creates a runner for the given context and executor
func NewRunner(ctx *answers.Context, exec executor.Executor, paths settings.Paths, configPath string, dryRun bool) *Runner {
	return &Runner{
		Context:    ctx,
		Exec:       exec,
		Paths:      paths,
		DryRun:     dryRun,
		ConfigPath: configPath,
		inChroot:   IsChrooted,
		selfExe:    os.Executable,
	}
}

func (r *Runner) stateFile() string {
	if r.statePath != "" {
		return r.statePath
	}
	return r.Paths.State
}

// RunAll executes every step in order, skipping completed ones
func (r *Runner) RunAll() error {
	for _, step := range AllSteps() {
		if err := r.RunStep(step); err != nil {
			return err
		}
	}
	return nil
}

// stepAction dispatches to the step implementations
func (r *Runner) stepAction(step Step) func() error {
	switch step {
	case StepDisk:
		return r.runDisk
	case StepBase:
		return r.runBase
	case StepFstab:
		return r.runFstab
	case StepConfig:
		return r.runConfig
	case StepBootloader:
		return r.runBootloader
	case StepPost:
		return r.runPost
	default:
		return func() error {
			return inserr.Newf(inserr.ErrInternal, "no action for step %q", step)
		}
	}
}

// RunStep executes one step, honoring completion state, dependencies and
// the chroot requirement
func (r *Runner) RunStep(step Step) error {
	state, err := LoadState(r.stateFile())
	if err != nil {
		return err
	}

	if state.IsComplete(step) {
		log.Info().Str("step", string(step)).Msg("Step already complete, skipping")
		return nil
	}

	if err := r.checkDependencies(step, state); err != nil {
		return err
	}

	chrooted := r.inChroot()
	if step.RequiresChroot() && !chrooted && !r.DryRun {
		return r.enterChroot(step)
	}
	if !step.RequiresChroot() && chrooted {
		return inserr.Newf(inserr.ErrChrootInvariant,
			"step %q must not run inside a chroot", step)
	}

	log.Info().Str("step", string(step)).Bool("dryRun", r.DryRun).Msg("Running install step")
	if err := r.stepAction(step)(); err != nil {
		return inserr.Wrapf(err, inserr.ErrStepFailed, "install step %q failed", step)
	}

	// Dry runs must leave no trace on disk
	if r.DryRun {
		return nil
	}

	state.MarkComplete(step)
	return state.Save(r.stateFile())
}

// checkDependencies verifies all prior steps are complete. In dry-run
// mode missing dependencies are only warned about, so a single step can
// be previewed in isolation.
func (r *Runner) checkDependencies(step Step, state *State) error {
	var missing []string
	for _, dep := range step.Dependencies() {
		if !state.IsComplete(dep) {
			missing = append(missing, string(dep))
		}
	}
	if len(missing) == 0 {
		return nil
	}
	if r.DryRun {
		ui.ShowWarning("Skipping dependency check in dry-run mode: " + strings.Join(missing, ", ") + " not complete")
		return nil
	}
	return inserr.Newf(inserr.ErrStepDependency,
		"step %q requires completed steps: %s", step, strings.Join(missing, ", "))
}

// enterChroot stages the binary, config and state into the target root
// and re-executes this step under arch-chroot. Argv is kept symmetric so
// the inner invocation behaves exactly like the outer one would have.
func (r *Runner) enterChroot(step Step) error {
	exe, err := r.selfExe()
	if err != nil {
		return inserr.Wrap(err, inserr.ErrChrootHandoff, "cannot locate own executable")
	}

	log.Info().Str("step", string(step)).Msg("Entering chroot")
	if err := copyFile(exe, r.Paths.StagedBinary, 0755); err != nil {
		return err
	}
	if err := copyFile(r.ConfigPath, r.Paths.StagedConfig, 0600); err != nil {
		return err
	}
	if _, err := os.Stat(r.stateFile()); err == nil {
		if err := copyFile(r.stateFile(), r.Paths.StagedState, 0644); err != nil {
			return err
		}
	}

	innerBinary := strings.TrimPrefix(r.Paths.StagedBinary, r.Paths.TargetRoot)
	innerConfig := strings.TrimPrefix(r.Paths.StagedConfig, r.Paths.TargetRoot)
	args := []string{r.Paths.TargetRoot, innerBinary, "arch", "exec", string(step), "--config", innerConfig}
	if r.DryRun {
		args = append(args, "--dry-run")
	}
	if err := r.Exec.Run(executor.Cmd("arch-chroot", args...)); err != nil {
		return err
	}
	return r.importStagedState()
}

// importStagedState copies the state the chrooted run wrote back over the
// outer state, so the next step's dependency check sees the completion
// recorded inside the chroot.
func (r *Runner) importStagedState() error {
	if _, err := os.Stat(r.Paths.StagedState); err != nil {
		return nil
	}
	return copyFile(r.Paths.StagedState, r.stateFile(), 0644)
}
