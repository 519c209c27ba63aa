// Package arch implements `ins arch`: replaying a persisted install plan
// as install steps, one or all.
package arch

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/instantos/ins/pkg/answers"
	inserr "github.com/instantos/ins/pkg/errors"
	"github.com/instantos/ins/pkg/executor"
	"github.com/instantos/ins/pkg/installer"
	"github.com/instantos/ins/pkg/logging"
	"github.com/instantos/ins/pkg/settings"
	"github.com/instantos/ins/pkg/ui"
)

var log = logging.GetLogger("cmd.arch")

// geteuid is replaceable for tests
var geteuid = os.Geteuid

// NewCommand builds the arch command group
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "arch",
		Short:   MsgShort,
		Long:    MsgLong,
		GroupID: "install",
	}
	cmd.AddCommand(newExecCmd())
	cmd.AddCommand(newInstallCmd())
	return cmd
}

func newExecCmd() *cobra.Command {
	var (
		configPath string
		dryRun     bool
	)

	cmd := &cobra.Command{
		Use:     "exec <step>",
		Short:   MsgExecShort,
		Long:    MsgExecLong,
		Example: MsgExecExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			step, err := installer.ParseStep(args[0])
			if err != nil {
				return err
			}
			r, err := newRunner(configPath, dryRun)
			if err != nil {
				return err
			}
			return r.RunStep(step)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", MsgFlagConfig)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, MsgFlagDryRun)
	return cmd
}

func newInstallCmd() *cobra.Command {
	var (
		configPath string
		dryRun     bool
	)

	cmd := &cobra.Command{
		Use:     "install",
		Short:   MsgInstallShort,
		Long:    MsgInstallLong,
		Example: MsgInstallExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := newRunner(configPath, dryRun)
			if err != nil {
				return err
			}
			return r.RunAll()
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", MsgFlagConfig)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, MsgFlagDryRun)
	return cmd
}

// newRunner loads settings and the persisted plan and wires the step
// runner. The sentinel file forces dry-run regardless of flags.
func newRunner(configPath string, dryRun bool) (*installer.Runner, error) {
	cfg, err := settings.Load()
	if err != nil {
		return nil, err
	}
	if configPath == "" {
		configPath = cfg.Paths.Config
	}

	if !dryRun && executor.ForcedDryRun(cfg.Paths.DryRunSentinel) {
		ui.ShowWarning(fmt.Sprintf(MsgForcedDryRun, cfg.Paths.DryRunSentinel))
		dryRun = true
	}
	if !dryRun && geteuid() != 0 {
		return nil, inserr.New(inserr.ErrNeedRoot, MsgErrNeedRoot)
	}

	ctx, err := answers.LoadFile(configPath)
	if err != nil {
		return nil, err
	}

	var exec executor.Executor
	if dryRun {
		exec = executor.NewDryRun()
	} else {
		exec = executor.NewSystem()
	}

	log.Info().Str("config", configPath).Bool("dryRun", dryRun).Msg("Runner ready")
	return installer.NewRunner(ctx, exec, cfg.Paths, configPath, dryRun), nil
}
