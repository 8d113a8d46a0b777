// File: pkg/transport/native/register.go
package native

import (
	"context"
	"log/slog"

	"scpsync/internal/transport/registry"
	"scpsync/pkg/transport"
)

const Name = "ssh"

func init() {
	registry.RegisterTransport(Name, registry.TransportRegistration{
		ConfigCheck: func(opts transport.Options) bool {
			return true
		},
		Initializer: func(ctx context.Context, opts transport.Options, logger *slog.Logger) (transport.Transport, error) {
			return New(opts, logger)
		},
	})
}
