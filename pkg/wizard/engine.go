// Package wizard implements the question engine: an ordered walk over the
// question list with provider-readiness gating, an ask/validate loop,
// cancellation navigation and a final review. The engine owns the install
// context exclusively while running and hands it to the caller on
// completion.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/instantos/ins/pkg/answers"
	"github.com/instantos/ins/pkg/chooser"
	inserr "github.com/instantos/ins/pkg/errors"
	"github.com/instantos/ins/pkg/logging"
	"github.com/instantos/ins/pkg/providers"
	"github.com/instantos/ins/pkg/questions"
	"github.com/instantos/ins/pkg/settings"
	"github.com/instantos/ins/pkg/summary"
	"github.com/instantos/ins/pkg/ui"
)

var log = logging.GetLogger("wizard")

// Options configures an Engine.
type Options struct {
	// Questions in ask order; defaults to questions.List()
	Questions []questions.Question

	// Chooser is the presentation layer; defaults to pterm
	Chooser chooser.Chooser

	// Settings supplies timings; defaults to the embedded defaults
	Settings *settings.Settings

	// Context resumes from existing answers; nil starts fresh. The
	// caller is responsible for having filled in SystemInfo.
	Context *answers.Context

	// ClearScreen is called before each question on a linux console;
	// nil selects the real implementation
	ClearScreen func()

	// ShowSummary displays the final review summary; nil prints a
	// styled box to stdout
	ShowSummary func(text string)
}

// Engine walks the question list and accumulates answers.
type Engine struct {
	questions   []questions.Question
	ctx         *answers.Context
	chooser     chooser.Chooser
	spawner     *providers.Spawner
	poll        time.Duration
	isTTY       bool
	clearScreen func()
	showSummary func(text string)
}

// New creates an engine from options
func New(opts Options) *Engine {
	if opts.Questions == nil {
		opts.Questions = questions.List()
	}
	if opts.Chooser == nil {
		opts.Chooser = chooser.NewPtermChooser()
	}
	if opts.Settings == nil {
		opts.Settings = settings.Default()
	}
	if opts.Context == nil {
		opts.Context = answers.NewContext()
	}
	if opts.ClearScreen == nil {
		opts.ClearScreen = ui.ClearScreen
	}
	showSummary := opts.ShowSummary
	if showSummary == nil {
		showSummary = func(text string) {
			fmt.Println(ui.RenderSummary(text))
		}
	}

	return &Engine{
		questions:   opts.Questions,
		ctx:         opts.Context,
		chooser:     opts.Chooser,
		spawner:     providers.NewSpawner(opts.Settings.ProviderTimeout()),
		poll:        opts.Settings.PollInterval(),
		isTTY:       ui.IsLinuxConsole(),
		clearScreen: opts.ClearScreen,
		showSummary: showSummary,
	}
}

// Run executes the wizard to completion and returns the finished context.
// Abort surfaces as ErrAborted; a provider failure without fallback
// surfaces as ErrProviderFatal after the message was shown.
func (e *Engine) Run(goctx context.Context) (*answers.Context, error) {
	e.spawnProviders(goctx)

	for {
		idx := e.findNextQuestionIndex()
		if idx < 0 {
			done, err := e.finalReview(goctx)
			if err != nil {
				return nil, err
			}
			if done {
				return e.ctx, nil
			}
			continue
		}

		q := e.questions[idx]
		if err := e.waitReady(goctx, q); err != nil {
			return nil, err
		}
		if msg := questions.FatalError(q, e.ctx); msg != "" {
			e.chooser.Message(msg)
			return nil, inserr.New(inserr.ErrProviderFatal, msg)
		}

		if e.isTTY {
			e.clearScreen()
		}

		answer, err := q.Ask(goctx, e.ctx, e.chooser)
		if errors.Is(err, chooser.ErrCancelled) {
			if err := e.navigate(goctx, idx); err != nil {
				return nil, err
			}
			continue
		}
		if err != nil {
			return nil, err
		}

		if verr := q.Validate(e.ctx, answer); verr != nil {
			ui.ShowError(verr.Error())
			continue
		}

		log.Debug().Str("question", string(q.ID())).Msg("Answer accepted")
		e.ctx.Insert(q.ID(), answer)
	}
}

// spawnProviders starts every provider declared by any question, once per
// data key. Providers for questions that end up skipped are harmless.
func (e *Engine) spawnProviders(goctx context.Context) {
	for _, q := range e.questions {
		if provs := q.Providers(); len(provs) > 0 {
			e.spawner.Spawn(goctx, e.ctx.Data, provs...)
		}
	}
}

// findNextQuestionIndex returns the first index that needs asking, or -1.
// Skipped questions have their stale answers removed, optional questions
// get their defaults applied, and answers invalidated by later context
// changes are cleared for re-asking.
func (e *Engine) findNextQuestionIndex() int {
	for i, q := range e.questions {
		if !q.ShouldAsk(e.ctx) {
			e.ctx.Remove(q.ID())
			continue
		}
		if q.Optional() {
			if !e.ctx.IsAnswered(q.ID()) {
				if def, ok := q.Default(e.ctx); ok {
					e.ctx.Insert(q.ID(), def)
				}
			}
			continue
		}
		if answer, ok := e.ctx.GetAnswer(q.ID()); ok {
			if err := q.Validate(e.ctx, answer); err != nil {
				log.Debug().Str("question", string(q.ID())).Err(err).Msg("Stored answer no longer valid")
				e.ctx.Remove(q.ID())
				return i
			}
			continue
		}
		return i
	}
	return -1
}

// waitReady polls the question's readiness with a bounded sleep until it
// can be asked
func (e *Engine) waitReady(goctx context.Context, q questions.Question) error {
	for !questions.IsReady(q, e.ctx) {
		select {
		case <-goctx.Done():
			return inserr.Wrap(goctx.Err(), inserr.ErrCancelled, "wizard interrupted")
		case <-time.After(e.poll):
		}
	}
	return nil
}

// forceAsk re-asks a question from a review or advanced menu. Cancelling
// keeps the existing answer and returns to the menu; the engine does not
// advance.
func (e *Engine) forceAsk(goctx context.Context, q questions.Question) error {
	if err := e.waitReady(goctx, q); err != nil {
		return err
	}
	if msg := questions.FatalError(q, e.ctx); msg != "" {
		e.chooser.Message(msg)
		return inserr.New(inserr.ErrProviderFatal, msg)
	}

	for {
		answer, err := q.Ask(goctx, e.ctx, e.chooser)
		if errors.Is(err, chooser.ErrCancelled) {
			return nil
		}
		if err != nil {
			return err
		}
		if verr := q.Validate(e.ctx, answer); verr != nil {
			ui.ShowError(verr.Error())
			continue
		}
		e.ctx.Insert(q.ID(), answer)
		return nil
	}
}

// Summary builds the current install summary
func (e *Engine) Summary() summary.InstallSummary {
	return summary.Build(e.ctx)
}

// AskSingle runs exactly one question outside the wizard flow and
// returns its validated answer. Used by `ask --id`.
func AskSingle(goctx context.Context, q questions.Question, opts Options) (string, error) {
	opts.Questions = []questions.Question{q}
	e := New(opts)
	e.spawnProviders(goctx)

	if err := e.waitReady(goctx, q); err != nil {
		return "", err
	}
	if msg := questions.FatalError(q, e.ctx); msg != "" {
		e.chooser.Message(msg)
		return "", inserr.New(inserr.ErrProviderFatal, msg)
	}

	for {
		answer, err := q.Ask(goctx, e.ctx, e.chooser)
		if errors.Is(err, chooser.ErrCancelled) {
			return "", inserr.New(inserr.ErrCancelled, "cancelled")
		}
		if err != nil {
			return "", err
		}
		if verr := q.Validate(e.ctx, answer); verr != nil {
			ui.ShowError(verr.Error())
			continue
		}
		return answer, nil
	}
}
