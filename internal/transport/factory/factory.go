// File: internal/transport/factory/factory.go
package factory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"scpsync/internal/config"
	"scpsync/internal/transport/registry"
	"scpsync/pkg/transport"
)

// Used when neither the CLI, the project nor the settings name a transport
const DefaultTransport = "scp"

type Factory struct {
	settings *config.Settings
	logger   *slog.Logger
	// Initialized transports, keyed by name and effective port, reused across a batch
	cache map[string]transport.Transport
}

func NewFactory(settings *config.Settings, logger *slog.Logger) *Factory {
	if settings == nil {
		settings = &config.Settings{}
	}
	return &Factory{
		settings: settings,
		logger:   logger,
		cache:    make(map[string]transport.Transport),
	}
}

// Picks the transport name: explicit override, then project, then settings, then the default
func (f *Factory) ResolveName(override string, project *config.Project) string {
	for _, candidate := range []string{override, project.Transport, f.settings.Transport} {
		if c := strings.ToLower(strings.TrimSpace(candidate)); c != "" {
			return c
		}
	}
	return DefaultTransport
}

// Returns the options a transport for this project runs with
func (f *Factory) Options(project *config.Project) transport.Options {
	port := f.settings.Port
	if project.Port > 0 {
		port = project.Port
	}
	return transport.Options{
		SSHBinary:    f.settings.SSHBinary,
		SCPBinary:    f.settings.SCPBinary,
		Port:         port,
		IdentityFile: f.settings.IdentityFile,
		KnownHosts:   f.settings.KnownHosts,
		Timeout:      f.settings.Timeout,
	}
}

// Initializes (or reuses) the named transport for the project
func (f *Factory) GetTransport(ctx context.Context, name string, project *config.Project) (transport.Transport, error) {
	normalizedName := strings.ToLower(name)
	opts := f.Options(project)
	cacheKey := fmt.Sprintf("%s:%d", normalizedName, opts.Port)

	if t, ok := f.cache[cacheKey]; ok {
		return t, nil
	}

	registration, exists := registry.GetRegistration(normalizedName)
	if !exists {
		return nil, fmt.Errorf("unsupported transport: %s. Supported transports are: %v", name, registry.GetSupportedTransports())
	}

	if !registration.ConfigCheck(opts) {
		return nil, fmt.Errorf("transport '%s' is not configured. Use 'scpsync config set <key> <value>' (e.g., 'ssh_binary' or 'scp_binary')", normalizedName)
	}

	// Dynamically initialize the transport using the registered initializer function
	t, err := registration.Initializer(ctx, opts, f.logger.With("transport", normalizedName))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize transport %s: %w", normalizedName, err)
	}

	f.cache[cacheKey] = t
	return t, nil
}

// Closes every transport handed out so far
func (f *Factory) Close() error {
	var errs []error
	for key, t := range f.cache {
		if err := t.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing %s: %w", key, err))
		}
		delete(f.cache, key)
	}
	return errors.Join(errs...)
}
