package installer

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	inserr "github.com/instantos/ins/pkg/errors"
)

// State records which steps have completed. It lives at a canonical path
// outside the chroot and is copied into the target root on handoff, so
// inner and outer invocations see the same progress.
type State struct {
	CompletedSteps []string `toml:"completed_steps"`
}

// LoadState reads the state file; a missing file is an empty state
func LoadState(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &State{}, nil
	}
	if err != nil {
		return nil, inserr.Wrapf(err, inserr.ErrStateLoad, "failed to read %s", path)
	}

	var s State
	if err := toml.Unmarshal(data, &s); err != nil {
		return nil, inserr.Wrapf(err, inserr.ErrStateLoad, "failed to parse %s", path)
	}
	return &s, nil
}

// Save writes the state file
func (s *State) Save(path string) error {
	data, err := toml.Marshal(s)
	if err != nil {
		return inserr.Wrap(err, inserr.ErrStateWrite, "failed to serialize install state")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return inserr.Wrapf(err, inserr.ErrStateWrite, "failed to create directory for %s", path)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return inserr.Wrapf(err, inserr.ErrStateWrite, "failed to write %s", path)
	}
	return nil
}

// IsComplete reports whether a step has finished
func (s *State) IsComplete(step Step) bool {
	for _, name := range s.CompletedSteps {
		if name == string(step) {
			return true
		}
	}
	return false
}

// MarkComplete records a finished step; marking twice is a no-op
func (s *State) MarkComplete(step Step) {
	if s.IsComplete(step) {
		return
	}
	s.CompletedSteps = append(s.CompletedSteps, string(step))
}
