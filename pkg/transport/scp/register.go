// File: pkg/transport/scp/register.go
package scp

import (
	"context"
	"log/slog"

	"scpsync/internal/transport/registry"
	"scpsync/pkg/transport"
)

const Name = "scp"

func init() {
	registry.RegisterTransport(Name, registry.TransportRegistration{
		ConfigCheck: func(opts transport.Options) bool {
			return opts.SSHBinary != "" && opts.SCPBinary != ""
		},
		Initializer: func(ctx context.Context, opts transport.Options, logger *slog.Logger) (transport.Transport, error) {
			return New(opts, ProcessRunner{}, logger), nil
		},
	})
}
