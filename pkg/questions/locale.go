package questions

import (
	"context"

	"github.com/instantos/ins/pkg/answers"
	"github.com/instantos/ins/pkg/chooser"
	inserr "github.com/instantos/ins/pkg/errors"
	"github.com/instantos/ins/pkg/providers"
)

// listQuestion is the shared shape of questions that pick one value from
// a provider-supplied list.
type listQuestion struct {
	Base
	prompt   string
	key      answers.Key[[]string]
	provider providers.Provider
}

// RequiredData implements Question
func (q *listQuestion) RequiredData() []string { return []string{q.key.ID} }

// Providers implements Question
func (q *listQuestion) Providers() []providers.Provider {
	return []providers.Provider{q.provider}
}

// Ask implements Question
func (q *listQuestion) Ask(_ context.Context, ctx *answers.Context, ch chooser.Chooser) (string, error) {
	options, ok := q.key.Get(ctx.Data)
	if !ok {
		return "", inserr.Newf(inserr.ErrInternal, "%s not available", q.key.ID)
	}
	return ch.Select(q.prompt, options)
}

// NewTimezoneQuestion creates the timezone question
func NewTimezoneQuestion() Question {
	return &listQuestion{
		Base:     Base{QID: answers.Timezone},
		prompt:   promptTimezone,
		key:      providers.KeyTimezones,
		provider: &providers.TimezoneProvider{},
	}
}

// NewLocaleQuestion creates the locale question
func NewLocaleQuestion() Question {
	return &listQuestion{
		Base:     Base{QID: answers.Locale},
		prompt:   promptLocale,
		key:      providers.KeyLocales,
		provider: &providers.LocaleProvider{},
	}
}

// NewKeymapQuestion creates the keymap question
func NewKeymapQuestion() Question {
	return &listQuestion{
		Base:     Base{QID: answers.Keymap},
		prompt:   promptKeymap,
		key:      providers.KeyKeymaps,
		provider: &providers.KeymapProvider{},
	}
}

// MirrorRegionQuestion selects the pacman mirror region. A failed region
// lookup is absorbed by the fallback option, so this question is never
// fatal and becomes ready as soon as the provider has finished either way.
type MirrorRegionQuestion struct{ Base }

// NewMirrorRegionQuestion creates the mirror region question
func NewMirrorRegionQuestion() *MirrorRegionQuestion {
	return &MirrorRegionQuestion{Base{QID: answers.MirrorRegion}}
}

// RequiredData implements Question
func (q *MirrorRegionQuestion) RequiredData() []string {
	return []string{providers.KeyMirrorRegions.ID}
}

// Providers implements Question
func (q *MirrorRegionQuestion) Providers() []providers.Provider {
	return []providers.Provider{&providers.MirrorProvider{}}
}

// Ready implements the readiness override: data present or failure known
func (q *MirrorRegionQuestion) Ready(ctx *answers.Context) bool {
	return ctx.Data.Has(providers.KeyMirrorRegions.ID) ||
		ctx.Data.Failure(providers.KeyMirrorRegions.ID) != nil
}

// FatalError implements the fatal override: the fallback absorbs failures
func (q *MirrorRegionQuestion) FatalError(_ *answers.Context) string { return "" }

// Ask implements Question
func (q *MirrorRegionQuestion) Ask(_ context.Context, ctx *answers.Context, ch chooser.Chooser) (string, error) {
	options := []string{providers.MirrorFallback}
	if regions, ok := providers.KeyMirrorRegions.Get(ctx.Data); ok {
		options = append(options, regions...)
	}
	return ch.Select(promptMirrorRegion, options)
}
