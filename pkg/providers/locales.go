package providers

import (
	"context"
	"os"
	"sort"
	"strings"

	"github.com/instantos/ins/pkg/answers"
	inserr "github.com/instantos/ins/pkg/errors"
)

// KeyLocales is the side-channel key for the available locale list.
var KeyLocales = answers.Key[[]string]{ID: "locales"}

// LocaleProvider reads the glibc SUPPORTED locale index.
type LocaleProvider struct {
	// Source overrides the SUPPORTED file path; empty means the default
	Source string
}

func init() {
	MustRegister(&LocaleProvider{})
}

// Key implements Provider
func (p *LocaleProvider) Key() string { return KeyLocales.ID }

// Provide implements Provider
func (p *LocaleProvider) Provide(ctx context.Context, store *answers.Store) error {
	source := p.Source
	if source == "" {
		source = "/usr/share/i18n/SUPPORTED"
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return inserr.Wrapf(err, inserr.ErrFileAccess, "failed to read %s", source)
	}

	locales := ParseSupportedLocales(string(data))
	if len(locales) == 0 {
		return inserr.New(inserr.ErrNotFound, "no UTF-8 locales found")
	}

	KeyLocales.Set(store, locales)
	return nil
}

// ParseSupportedLocales extracts UTF-8 locale names from SUPPORTED file
// content ("en_US.UTF-8 UTF-8" → "en_US.UTF-8"). Non-UTF-8 charmaps are
// skipped; nobody should be installing a new system with them.
func ParseSupportedLocales(content string) []string {
	var locales []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		name, _, _ := strings.Cut(line, " ")
		name = strings.TrimSuffix(name, "/")
		if !strings.HasSuffix(name, ".UTF-8") {
			continue
		}
		locales = append(locales, name)
	}
	sort.Strings(locales)
	return locales
}
