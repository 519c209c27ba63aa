package providers

import (
	"context"
	"os"
	"sort"
	"strings"

	"github.com/instantos/ins/pkg/answers"
	inserr "github.com/instantos/ins/pkg/errors"
)

// KeyMirrorRegions is the side-channel key for mirror region names.
var KeyMirrorRegions = answers.Key[[]string]{ID: "mirror_regions"}

// MirrorFallback is always offered even when region discovery fails, so
// the mirror question never becomes fatal.
const MirrorFallback = "Fallback (auto)"

// MirrorProvider derives the selectable mirror regions from the pacman
// mirrorlist country headers shipped on the live ISO.
type MirrorProvider struct {
	// Mirrorlist overrides the mirrorlist path; empty means the default
	Mirrorlist string
}

func init() {
	MustRegister(&MirrorProvider{})
}

// Key implements Provider
func (p *MirrorProvider) Key() string { return KeyMirrorRegions.ID }

// Provide implements Provider
func (p *MirrorProvider) Provide(ctx context.Context, store *answers.Store) error {
	source := p.Mirrorlist
	if source == "" {
		source = "/etc/pacman.d/mirrorlist"
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return inserr.Wrapf(err, inserr.ErrFileAccess, "failed to read %s", source)
	}

	regions := ParseMirrorRegions(string(data))
	if len(regions) == 0 {
		return inserr.New(inserr.ErrNotFound, "no mirror regions found")
	}

	KeyMirrorRegions.Set(store, regions)
	return nil
}

// ParseMirrorRegions extracts country names from mirrorlist comment
// headers ("## Germany"). Generated mirrorlists group servers this way.
func ParseMirrorRegions(content string) []string {
	seen := make(map[string]bool)
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "## ") {
			continue
		}
		region := strings.TrimSpace(strings.TrimPrefix(line, "## "))
		// Header lines like "## Arch Linux repository mirrorlist" are prose
		if region == "" || strings.Contains(region, "mirrorlist") ||
			strings.HasPrefix(region, "Generated") || strings.HasPrefix(region, "Filtered") {
			continue
		}
		seen[region] = true
	}

	regions := make([]string, 0, len(seen))
	for region := range seen {
		regions = append(regions, region)
	}
	sort.Strings(regions)
	return regions
}
