// File: internal/transport/registry/registry.go
package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"

	"scpsync/pkg/transport"
)

// Reports whether a transport can run with the given options
type TransportConfigCheck func(opts transport.Options) bool

// Builds a ready-to-use transport
type TransportInitializer func(ctx context.Context, opts transport.Options, logger *slog.Logger) (transport.Transport, error)

type TransportRegistration struct {
	ConfigCheck TransportConfigCheck
	Initializer TransportInitializer
}

var ErrDuplicateTransport = errors.New("transport already registered")

// Registry maps lowercase transport names to their registration.
// Safe for concurrent use; in practice it is filled from init() and read afterwards.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]TransportRegistration
}

func New() *Registry {
	return &Registry{entries: make(map[string]TransportRegistration)}
}

func (r *Registry) Register(name string, registration TransportRegistration) error {
	key := strings.ToLower(strings.TrimSpace(name))
	switch {
	case key == "":
		return errors.New("transport name cannot be empty")
	case registration.ConfigCheck == nil, registration.Initializer == nil:
		return fmt.Errorf("transport %s: registration needs both ConfigCheck and Initializer", key)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.entries[key]; taken {
		return fmt.Errorf("%w: %s", ErrDuplicateTransport, key)
	}
	r.entries[key] = registration
	return nil
}

func (r *Registry) Lookup(name string) (TransportRegistration, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	registration, ok := r.entries[strings.ToLower(strings.TrimSpace(name))]
	return registration, ok
}

// Sorted registered names
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.entries))
}

// The process-wide registry that transport packages add themselves to
var Default = New()

// Called from a transport package's init(). A broken registration is a programming error.
func RegisterTransport(name string, registration TransportRegistration) {
	if err := Default.Register(name, registration); err != nil {
		panic(err)
	}
}

func GetSupportedTransports() []string {
	return Default.Names()
}

func IsSupported(name string) bool {
	_, ok := Default.Lookup(name)
	return ok
}

func GetRegistration(name string) (TransportRegistration, bool) {
	return Default.Lookup(name)
}
