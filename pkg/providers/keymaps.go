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

// KeyKeymaps is the side-channel key for console keymap names.
var KeyKeymaps = answers.Key[[]string]{ID: "keymaps"}

// KeymapProvider lists console keymaps via localectl, falling back to
// scanning the kbd keymap tree.
type KeymapProvider struct {
	List func(ctx context.Context) ([]string, error)
}

func init() {
	MustRegister(&KeymapProvider{})
}

// Key implements Provider
func (p *KeymapProvider) Key() string { return KeyKeymaps.ID }

// Provide implements Provider
func (p *KeymapProvider) Provide(ctx context.Context, store *answers.Store) error {
	list := p.List
	if list == nil {
		list = listKeymaps
	}

	keymaps, err := list(ctx)
	if err != nil {
		return err
	}
	if len(keymaps) == 0 {
		return inserr.New(inserr.ErrNotFound, "no console keymaps found")
	}

	sort.Strings(keymaps)
	KeyKeymaps.Set(store, keymaps)
	return nil
}

func listKeymaps(ctx context.Context) ([]string, error) {
	if out, err := exec.CommandContext(ctx, "localectl", "list-keymaps").Output(); err == nil {
		var keymaps []string
		for _, line := range strings.Split(string(out), "\n") {
			if line = strings.TrimSpace(line); line != "" {
				keymaps = append(keymaps, line)
			}
		}
		return keymaps, nil
	}
	return walkKeymaps("/usr/share/kbd/keymaps")
}

// walkKeymaps collects keymap names from *.map.gz files under root
func walkKeymaps(root string) ([]string, error) {
	seen := make(map[string]bool)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		if !strings.HasSuffix(name, ".map.gz") {
			return nil
		}
		seen[strings.TrimSuffix(name, ".map.gz")] = true
		return nil
	})
	if err != nil {
		return nil, inserr.Wrap(err, inserr.ErrFileAccess, "failed to walk keymaps")
	}

	keymaps := make([]string, 0, len(seen))
	for name := range seen {
		keymaps = append(keymaps, name)
	}
	return keymaps, nil
}
