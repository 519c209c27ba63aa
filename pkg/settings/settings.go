// Package settings loads runtime settings for ins: canonical filesystem
// paths, wizard timings and mirror sources. Settings are distinct from the
// install answer file; they configure the tool, not the installation.
package settings

import (
	_ "embed"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	inserr "github.com/instantos/ins/pkg/errors"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// SystemConfigPath is consulted for administrator overrides when present.
const SystemConfigPath = "/etc/instant/ins.toml"

// Paths holds every filesystem location the installer touches.
type Paths struct {
	Config         string `koanf:"config"`
	State          string `koanf:"state"`
	DryRunSentinel string `koanf:"dryrun_sentinel"`
	TargetRoot     string `koanf:"target_root"`
	StagedBinary   string `koanf:"staged_binary"`
	StagedConfig   string `koanf:"staged_config"`
	StagedState    string `koanf:"staged_state"`
}

// Wizard holds question engine timings.
type Wizard struct {
	PollIntervalMs    int `koanf:"poll_interval_ms"`
	ProviderTimeoutMs int `koanf:"provider_timeout_ms"`
}

// Mirrors holds mirror region discovery sources.
type Mirrors struct {
	Mirrorlist string `koanf:"mirrorlist"`
	StatusURL  string `koanf:"status_url"`
}

// Settings is the fully merged runtime configuration.
type Settings struct {
	Paths   Paths   `koanf:"paths"`
	Wizard  Wizard  `koanf:"wizard"`
	Mirrors Mirrors `koanf:"mirrors"`
}

// PollInterval returns the readiness poll delay as a duration.
func (s *Settings) PollInterval() time.Duration {
	return time.Duration(s.Wizard.PollIntervalMs) * time.Millisecond
}

// ProviderTimeout returns the per-provider deadline as a duration.
func (s *Settings) ProviderTimeout() time.Duration {
	return time.Duration(s.Wizard.ProviderTimeoutMs) * time.Millisecond
}

// rawBytesProvider implements koanf's Provider for embedded bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// Load merges embedded defaults, the system config file (if present) and
// INS_* environment variables, in that order of increasing precedence.
func Load() (*Settings, error) {
	return load(SystemConfigPath)
}

func load(systemPath string) (*Settings, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, inserr.Wrap(err, inserr.ErrConfigLoad, "failed to load built-in defaults")
	}

	if systemPath != "" {
		if _, err := os.Stat(systemPath); err == nil {
			if err := k.Load(file.Provider(systemPath), toml.Parser()); err != nil {
				return nil, inserr.Wrapf(err, inserr.ErrConfigParse, "failed to parse %s", systemPath)
			}
		}
	}

	// INS_PATHS_CONFIG=... → paths.config
	envProvider := env.Provider("INS_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "INS_")), "_", ".", 1)
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, inserr.Wrap(err, inserr.ErrConfigLoad, "failed to load environment overrides")
	}

	var s Settings
	if err := k.Unmarshal("", &s); err != nil {
		return nil, inserr.Wrap(err, inserr.ErrConfigParse, "failed to decode settings")
	}
	return &s, nil
}

// Default returns settings built purely from the embedded defaults.
// Used by tests and as a safe fallback when loading fails.
func Default() *Settings {
	s, err := load("")
	if err != nil {
		// The embedded file is static; a parse failure here is a build defect.
		panic(err)
	}
	return s
}
