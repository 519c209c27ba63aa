// Package providers contains the async data providers that feed reference
// data (disks, mirror regions, timezones, locales, keymaps) into the
// install context's side-channel. Providers run concurrently with the
// wizard; questions poll the side-channel for readiness.
package providers

import (
	"context"
	"sync"
	"time"

	"github.com/instantos/ins/pkg/answers"
	inserr "github.com/instantos/ins/pkg/errors"
	"github.com/instantos/ins/pkg/logging"
	"github.com/instantos/ins/pkg/registry"
)

var log = logging.GetLogger("providers")

// Provider produces one category of reference data and publishes it into
// the side-channel store under its declared key. Providers are idempotent
// for their key: spawning one twice is harmless.
type Provider interface {
	// Key returns the side-channel key this provider publishes under
	Key() string

	// Provide runs to completion, publishing into the store or
	// returning an error that is recorded as the key's failure
	Provide(ctx context.Context, store *answers.Store) error
}

// providerRegistry holds every known provider by key, so the single
// standard "provider unavailable" message can be derived per data key.
var providerRegistry = registry.New[Provider]()

// MustRegister adds a provider to the global registry, panicking on
// duplicate keys. Called from init() in this package.
func MustRegister(p Provider) {
	if err := providerRegistry.Register(p.Key(), p); err != nil {
		panic(err)
	}
}

// Lookup returns the registered provider for a data key
func Lookup(key string) (Provider, error) {
	return providerRegistry.Get(key)
}

// UnavailableMessage is the standard fatal-error text for a data key whose
// provider failed with no fallback.
func UnavailableMessage(key string, err error) string {
	msg := "Required system data is unavailable: " + key
	if err != nil {
		msg += "\n" + err.Error()
	}
	return msg
}

// Spawner runs providers in the background, once per key.
type Spawner struct {
	mu      sync.Mutex
	started map[string]bool
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewSpawner creates a Spawner applying the given per-provider timeout
func NewSpawner(timeout time.Duration) *Spawner {
	return &Spawner{
		started: make(map[string]bool),
		timeout: timeout,
	}
}

// Spawn starts each provider in its own goroutine. Keys that were already
// spawned are skipped. Failures and timeouts are recorded on the store so
// that questions can surface them through their fatal error message.
func (s *Spawner) Spawn(ctx context.Context, store *answers.Store, provs ...Provider) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range provs {
		if s.started[p.Key()] {
			continue
		}
		s.started[p.Key()] = true

		s.wg.Add(1)
		go func(p Provider) {
			defer s.wg.Done()

			runCtx := ctx
			var cancel context.CancelFunc
			if s.timeout > 0 {
				runCtx, cancel = context.WithTimeout(ctx, s.timeout)
				defer cancel()
			}

			log.Debug().Str("key", p.Key()).Msg("Provider started")
			if err := p.Provide(runCtx, store); err != nil {
				log.Warn().Err(err).Str("key", p.Key()).Msg("Provider failed")
				store.SetFailure(p.Key(), inserr.Wrapf(err, inserr.ErrProviderFatal, "provider %s failed", p.Key()))
				return
			}
			log.Debug().Str("key", p.Key()).Msg("Provider finished")
		}(p)
	}
}

// Wait blocks until every spawned provider has returned. Only used by
// tests and the single-question mode; the engine polls instead.
func (s *Spawner) Wait() {
	s.wg.Wait()
}
