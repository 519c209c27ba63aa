// Package ask implements `ins ask`: the interactive wizard that builds
// the install plan and writes it out as TOML.
package ask

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/instantos/ins/pkg/answers"
	"github.com/instantos/ins/pkg/chooser"
	inserr "github.com/instantos/ins/pkg/errors"
	"github.com/instantos/ins/pkg/logging"
	"github.com/instantos/ins/pkg/questions"
	"github.com/instantos/ins/pkg/settings"
	"github.com/instantos/ins/pkg/sysinfo"
	"github.com/instantos/ins/pkg/ui"
	"github.com/instantos/ins/pkg/wizard"
)

var log = logging.GetLogger("cmd.ask")

// geteuid is replaceable for tests
var geteuid = os.Geteuid

// NewCommand builds the ask command
func NewCommand() *cobra.Command {
	var (
		outputConfig string
		questionID   string
	)

	cmd := &cobra.Command{
		Use:     "ask",
		Short:   MsgShort,
		Long:    MsgLong,
		Example: MsgExample,
		GroupID: "install",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := settings.Load()
			if err != nil {
				return err
			}
			if outputConfig == "" {
				outputConfig = cfg.Paths.Config
			}

			if questionID != "" {
				return runSingle(cmd, cfg, questionID)
			}
			return runWizard(cmd, cfg, outputConfig)
		},
	}

	cmd.Flags().StringVar(&outputConfig, "output-config", "", MsgFlagOutputConfig)
	cmd.Flags().StringVar(&questionID, "id", "", MsgFlagID)
	return cmd
}

func runWizard(cmd *cobra.Command, cfg *settings.Settings, outputConfig string) error {
	if geteuid() != 0 {
		return inserr.New(inserr.ErrNeedRoot, MsgErrNeedRoot)
	}

	ctx, err := resumeOrFresh(outputConfig, chooser.NewPtermChooser())
	if err != nil {
		return err
	}
	if ctx == nil {
		// saved-config prompt answered with Cancel
		return nil
	}
	ctx.System = sysinfo.Detect()

	engine := wizard.New(wizard.Options{
		Settings: cfg,
		Context:  ctx,
	})

	result, err := engine.Run(cmd.Context())
	if errors.Is(err, wizard.ErrAborted) {
		ui.ShowInfo(MsgAborted)
		return nil
	}
	if err != nil {
		return err
	}

	if err := result.SaveFile(outputConfig); err != nil {
		return err
	}
	log.Info().Str("path", outputConfig).Msg("Install plan written")
	fmt.Printf(MsgPlanWritten, outputConfig)
	return nil
}

// resumeOrFresh offers to resume from a previously written plan. The
// prompt only appears when the plan is readable and holds at least one
// answer; an unreadable plan is announced and ignored. Returns nil, nil
// when the user cancels at the prompt.
func resumeOrFresh(path string, ch chooser.Chooser) (*answers.Context, error) {
	if _, err := os.Stat(path); err != nil {
		return answers.NewContext(), nil
	}

	saved, err := answers.LoadFile(path)
	if err != nil {
		log.Warn().Str("path", path).Err(err).Msg("Saved plan unreadable")
		ui.ShowWarning(fmt.Sprintf(MsgSavedUnreadable, path))
		return answers.NewContext(), nil
	}
	if saved.AnswerCount() == 0 {
		return answers.NewContext(), nil
	}

	choice, err := ch.Select(MsgSavedPrompt, []string{MsgSavedUse, MsgSavedFresh, MsgSavedCancel})
	if errors.Is(err, chooser.ErrCancelled) || choice == MsgSavedCancel {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if choice == MsgSavedUse {
		return saved, nil
	}

	// Starting fresh discards the old plan, so an abort before the new
	// plan is written does not resurrect it.
	if err := os.Remove(path); err != nil {
		return nil, inserr.Wrapf(err, inserr.ErrFileAccess, "failed to remove %s", path)
	}
	return answers.NewContext(), nil
}

// runSingle asks exactly one question and prints its answer. Only the
// disk question needs elevated privileges (device enumeration).
func runSingle(cmd *cobra.Command, cfg *settings.Settings, rawID string) error {
	id, err := answers.ParseQuestionID(rawID)
	if err != nil {
		return err
	}
	if id == answers.Disk && geteuid() != 0 {
		return inserr.New(inserr.ErrNeedRoot, MsgErrNeedRoot)
	}

	q, err := questions.ByID(id)
	if err != nil {
		return err
	}

	ctx := answers.NewContext()
	ctx.System = sysinfo.Detect()

	answer, err := wizard.AskSingle(cmd.Context(), q, wizard.Options{
		Settings: cfg,
		Context:  ctx,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Answer: %s\n", answer)
	return nil
}
