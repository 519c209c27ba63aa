package wizard

import (
	"context"
	"errors"
	"fmt"

	"github.com/instantos/ins/pkg/chooser"
	inserr "github.com/instantos/ins/pkg/errors"
	"github.com/instantos/ins/pkg/questions"
)

// Navigation menu entries
const (
	navResume   = "Resume"
	navReview   = "Review Answers"
	navGoBack   = "Go Back"
	navAbort    = "Abort"
	navInstall  = "Install"
	navAdvanced = "Advanced Options"
	navBack     = "Back"
)

const redactedValue = "********"

// ErrAborted is returned when the user confirms an abort. The CLI driver
// treats it as a clean exit.
var ErrAborted = inserr.New(inserr.ErrAborted, "installation aborted")

// navigate handles the menu shown when a question is cancelled mid-flow
func (e *Engine) navigate(goctx context.Context, idx int) error {
	for {
		choice, err := e.chooser.Select("Installation paused", []string{navResume, navReview, navGoBack, navAbort})
		if errors.Is(err, chooser.ErrCancelled) {
			// Backing out of the menu resumes the current question
			return nil
		}
		if err != nil {
			return err
		}

		switch choice {
		case navResume:
			return nil
		case navReview:
			if err := e.reviewAnswers(goctx); err != nil {
				return err
			}
			return nil
		case navGoBack:
			e.goBack(idx)
			return nil
		case navAbort:
			if err := e.confirmAbort(); err != nil {
				return err
			}
			// Abort declined; show the menu again
		}
	}
}

// finalReview is shown once every question is answered. Returns true when
// the user commits to installing.
func (e *Engine) finalReview(goctx context.Context) (bool, error) {
	e.showSummary(e.Summary().Text)

	choice, err := e.chooser.Select("Ready to install", []string{navInstall, navReview, navAdvanced, navAbort})
	if errors.Is(err, chooser.ErrCancelled) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	switch choice {
	case navInstall:
		return true, nil
	case navReview:
		if err := e.reviewAnswers(goctx); err != nil {
			return false, err
		}
	case navAdvanced:
		if err := e.advancedOptions(goctx); err != nil {
			return false, err
		}
	case navAbort:
		if err := e.confirmAbort(); err != nil {
			return false, err
		}
	}
	return false, nil
}

// reviewAnswers lists answered questions for re-asking. Sensitive values
// are redacted in the listing only; the stored answers stay untouched.
func (e *Engine) reviewAnswers(goctx context.Context) error {
	for {
		var reviewable []questions.Question
		var options []string
		for _, q := range e.questions {
			if q.Optional() || !q.ShouldAsk(e.ctx) {
				continue
			}
			answer, ok := e.ctx.GetAnswer(q.ID())
			if !ok {
				continue
			}
			if q.Sensitive() {
				answer = redactedValue
			}
			reviewable = append(reviewable, q)
			options = append(options, fmt.Sprintf("%s: %s", q.ID(), answer))
		}
		options = append(options, navBack)

		choice, err := e.chooser.Select("Review answers", options)
		if errors.Is(err, chooser.ErrCancelled) || (err == nil && choice == navBack) {
			return nil
		}
		if err != nil {
			return err
		}

		for i, opt := range options[:len(options)-1] {
			if opt != choice {
				continue
			}
			if err := e.forceAsk(goctx, reviewable[i]); err != nil {
				return err
			}
			break
		}
	}
}

// advancedOptions lists optional questions that apply to the current
// context, showing their current values
func (e *Engine) advancedOptions(goctx context.Context) error {
	for {
		var advanced []questions.Question
		var options []string
		for _, q := range e.questions {
			if !q.Optional() || !q.ShouldAsk(e.ctx) {
				continue
			}
			label := string(q.ID())
			if answer, ok := e.ctx.GetAnswer(q.ID()); ok {
				if q.Sensitive() {
					answer = redactedValue
				}
				label = fmt.Sprintf("%s (%s)", q.ID(), answer)
			}
			advanced = append(advanced, q)
			options = append(options, label)
		}
		options = append(options, navBack)

		choice, err := e.chooser.Select("Advanced options", options)
		if errors.Is(err, chooser.ErrCancelled) || (err == nil && choice == navBack) {
			return nil
		}
		if err != nil {
			return err
		}

		for i, opt := range options[:len(options)-1] {
			if opt != choice {
				continue
			}
			if err := e.forceAsk(goctx, advanced[i]); err != nil {
				return err
			}
			break
		}
	}
}

// goBack moves to the previous askable question and clears its answer so
// it is asked again
func (e *Engine) goBack(idx int) {
	for i := idx - 1; i >= 0; i-- {
		q := e.questions[i]
		if q.Optional() || !q.ShouldAsk(e.ctx) {
			continue
		}
		log.Debug().Str("question", string(q.ID())).Msg("Going back")
		e.ctx.Remove(q.ID())
		return
	}
}

// confirmAbort asks for confirmation and returns ErrAborted on yes
func (e *Engine) confirmAbort() error {
	yes, err := e.chooser.Confirm("Abort the installation?")
	if err != nil {
		return nil
	}
	if yes {
		return ErrAborted
	}
	return nil
}
