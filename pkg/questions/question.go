// Package questions defines the question protocol and every concrete
// question the install wizard asks. Questions are pure description plus an
// ask procedure; they never mutate the install context themselves. The
// engine owns all context writes.
package questions

import (
	"context"

	"github.com/instantos/ins/pkg/answers"
	"github.com/instantos/ins/pkg/chooser"
	"github.com/instantos/ins/pkg/logging"
	"github.com/instantos/ins/pkg/providers"
)

var log = logging.GetLogger("questions")

// Question is the uniform contract every wizard question obeys.
type Question interface {
	// ID returns the stable identifier for this question's answer slot
	ID() answers.QuestionID

	// ShouldAsk is a pure predicate over the current context. When it
	// is false the engine neither asks nor keeps an answer for the id.
	ShouldAsk(ctx *answers.Context) bool

	// Optional questions are never asked in the main flow; they are
	// surfaced via Advanced Options and may auto-apply a default
	Optional() bool

	// Sensitive answers are redacted in review listings
	Sensitive() bool

	// Default returns the fallback value applied when an optional
	// question is skipped
	Default(ctx *answers.Context) (string, bool)

	// RequiredData lists side-channel keys that must be populated
	// before this question can be asked
	RequiredData() []string

	// Providers returns the async producers to spawn for this
	// question's data
	Providers() []providers.Provider

	// Validate checks a candidate answer; the returned error text is
	// shown to the user verbatim
	Validate(ctx *answers.Context, answer string) error

	// Ask prompts the user and returns the raw answer. Cancellation is
	// reported as chooser.ErrCancelled. Ask must not touch the context.
	Ask(goctx context.Context, ctx *answers.Context, ch chooser.Chooser) (string, error)
}

// readinessOverride lets a question replace the default readiness check
// (all required data keys present or failed).
type readinessOverride interface {
	Ready(ctx *answers.Context) bool
}

// fatalOverride lets a question replace the default fatal-error report,
// e.g. to absorb a provider failure with a fallback.
type fatalOverride interface {
	FatalError(ctx *answers.Context) string
}

// IsReady reports whether q can be asked. The default treats a recorded
// provider failure as ready so the fatal path can run instead of waiting
// forever.
func IsReady(q Question, ctx *answers.Context) bool {
	if r, ok := q.(readinessOverride); ok {
		return r.Ready(ctx)
	}
	for _, key := range q.RequiredData() {
		if ctx.Data.Has(key) {
			continue
		}
		if ctx.Data.Failure(key) != nil {
			continue
		}
		return false
	}
	return true
}

// FatalError returns a user-facing explanation when q's providers have
// permanently failed, or "" when the question can proceed.
func FatalError(q Question, ctx *answers.Context) string {
	if f, ok := q.(fatalOverride); ok {
		return f.FatalError(ctx)
	}
	for _, key := range q.RequiredData() {
		if ctx.Data.Has(key) {
			continue
		}
		if err := ctx.Data.Failure(key); err != nil {
			return providers.UnavailableMessage(key, err)
		}
	}
	return ""
}

// Base supplies the default behavior concrete questions embed.
type Base struct {
	QID answers.QuestionID
}

// ID implements Question
func (b Base) ID() answers.QuestionID { return b.QID }

// ShouldAsk implements Question; default is always ask
func (Base) ShouldAsk(*answers.Context) bool { return true }

// Optional implements Question
func (Base) Optional() bool { return false }

// Sensitive implements Question
func (Base) Sensitive() bool { return false }

// Default implements Question
func (Base) Default(*answers.Context) (string, bool) { return "", false }

// RequiredData implements Question
func (Base) RequiredData() []string { return nil }

// Providers implements Question
func (Base) Providers() []providers.Provider { return nil }

// Validate implements Question; default accepts anything
func (Base) Validate(*answers.Context, string) error { return nil }
