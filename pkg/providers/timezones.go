package providers

import (
	"context"
	"io/fs"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/instantos/ins/pkg/answers"
	inserr "github.com/instantos/ins/pkg/errors"
)

// KeyTimezones is the side-channel key for the timezone name list.
var KeyTimezones = answers.Key[[]string]{ID: "timezones"}

// TimezoneProvider lists IANA timezone names, preferring timedatectl and
// falling back to walking the zoneinfo database.
type TimezoneProvider struct {
	List func(ctx context.Context) ([]string, error)
}

func init() {
	MustRegister(&TimezoneProvider{})
}

// Key implements Provider
func (p *TimezoneProvider) Key() string { return KeyTimezones.ID }

// Provide implements Provider
func (p *TimezoneProvider) Provide(ctx context.Context, store *answers.Store) error {
	list := p.List
	if list == nil {
		list = listTimezones
	}

	zones, err := list(ctx)
	if err != nil {
		return err
	}
	if len(zones) == 0 {
		return inserr.New(inserr.ErrNotFound, "no timezones found")
	}

	sort.Strings(zones)
	KeyTimezones.Set(store, zones)
	return nil
}

func listTimezones(ctx context.Context) ([]string, error) {
	if out, err := exec.CommandContext(ctx, "timedatectl", "list-timezones").Output(); err == nil {
		var zones []string
		for _, line := range strings.Split(string(out), "\n") {
			if line = strings.TrimSpace(line); line != "" {
				zones = append(zones, line)
			}
		}
		return zones, nil
	}
	return walkZoneinfo("/usr/share/zoneinfo")
}

// walkZoneinfo collects Region/City entries from the zoneinfo tree
func walkZoneinfo(root string) ([]string, error) {
	var zones []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		// posix/ and right/ duplicate the tree; metadata files are not zones
		if d.IsDir() {
			if rel == "posix" || rel == "right" {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.Contains(rel, "/") || strings.HasSuffix(rel, ".tab") {
			return nil
		}
		zones = append(zones, rel)
		return nil
	})
	if err != nil {
		return nil, inserr.Wrap(err, inserr.ErrFileAccess, "failed to walk zoneinfo")
	}
	return zones, nil
}
