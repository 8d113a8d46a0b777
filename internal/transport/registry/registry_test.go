// File: internal/transport/registry/registry_test.go
package registry

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scpsync/pkg/transport"
)

var testRegistration = TransportRegistration{
	ConfigCheck: func(opts transport.Options) bool { return opts.Port > 0 },
	Initializer: func(ctx context.Context, opts transport.Options, logger *slog.Logger) (transport.Transport, error) {
		return nil, nil
	},
}

func TestRegistry_Register(t *testing.T) {
	r := New()
	require.NoError(t, r.Register("Rsync", testRegistration))
	require.NoError(t, r.Register("ftp", testRegistration))

	got, ok := r.Lookup(" RSYNC ")
	require.True(t, ok)
	assert.True(t, got.ConfigCheck(transport.Options{Port: 22}))
	assert.Equal(t, []string{"ftp", "rsync"}, r.Names())

	_, ok = r.Lookup("missing")
	assert.False(t, ok)
}

func TestRegistry_RegisterRejects(t *testing.T) {
	r := New()
	require.NoError(t, r.Register("rsync", testRegistration))

	tests := []struct {
		name         string
		key          string
		registration TransportRegistration
	}{
		{name: "duplicate", key: "RSYNC", registration: testRegistration},
		{name: "empty name", key: "  ", registration: testRegistration},
		{name: "missing initializer", key: "half", registration: TransportRegistration{ConfigCheck: testRegistration.ConfigCheck}},
		{name: "missing check", key: "half", registration: TransportRegistration{Initializer: testRegistration.Initializer}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, r.Register(tt.key, tt.registration))
		})
	}

	assert.ErrorIs(t, r.Register("rsync", testRegistration), ErrDuplicateTransport)
	assert.Equal(t, []string{"rsync"}, r.Names())
}

func TestRegisterTransport_PanicsOnDuplicate(t *testing.T) {
	RegisterTransport("registry-test", testRegistration)
	assert.True(t, IsSupported("Registry-Test"))
	assert.Contains(t, GetSupportedTransports(), "registry-test")

	_, ok := GetRegistration("registry-test")
	assert.True(t, ok)
	assert.Panics(t, func() { RegisterTransport("registry-test", testRegistration) })
}
