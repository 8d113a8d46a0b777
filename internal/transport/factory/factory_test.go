// File: internal/transport/factory/factory_test.go
package factory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scpsync/internal/config"
	"scpsync/internal/logger"
	"scpsync/internal/transport/registry"
	_ "scpsync/pkg/transport/native"
	"scpsync/pkg/transport/scp"
)

func TestResolveName(t *testing.T) {
	tests := []struct {
		name     string
		override string
		project  string
		settings string
		want     string
	}{
		{name: "default", want: DefaultTransport},
		{name: "settings", settings: "ssh", want: "ssh"},
		{name: "project beats settings", project: "SSH", settings: "scp", want: "ssh"},
		{name: "override beats project", override: "scp", project: "ssh", settings: "ssh", want: "scp"},
		{name: "blank override falls through", override: "  ", project: "ssh", want: "ssh"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFactory(&config.Settings{Transport: tt.settings}, logger.Discard())
			got := f.ResolveName(tt.override, &config.Project{Transport: tt.project})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOptions_ProjectPortWins(t *testing.T) {
	f := NewFactory(&config.Settings{Port: 22, SSHBinary: "ssh", SCPBinary: "scp", Timeout: time.Minute}, logger.Discard())

	opts := f.Options(&config.Project{})
	assert.Equal(t, 22, opts.Port)
	assert.Equal(t, time.Minute, opts.Timeout)

	opts = f.Options(&config.Project{Port: 2222})
	assert.Equal(t, 2222, opts.Port)
}

func TestGetTransport(t *testing.T) {
	assert.True(t, registry.IsSupported("scp"))
	assert.True(t, registry.IsSupported("SSH"))
	assert.Equal(t, []string{"scp", "ssh"}, registry.GetSupportedTransports())

	f := NewFactory(&config.Settings{SSHBinary: "ssh", SCPBinary: "scp"}, logger.Discard())
	project := &config.Project{Host: "h"}

	first, err := f.GetTransport(context.Background(), "SCP", project)
	require.NoError(t, err)
	assert.IsType(t, &scp.Transport{}, first)

	second, err := f.GetTransport(context.Background(), "scp", project)
	require.NoError(t, err)
	assert.Same(t, first, second)

	other, err := f.GetTransport(context.Background(), "scp", &config.Project{Host: "h", Port: 2222})
	require.NoError(t, err)
	assert.NotSame(t, first, other)

	assert.NoError(t, f.Close())
}

func TestGetTransport_Errors(t *testing.T) {
	f := NewFactory(&config.Settings{}, logger.Discard())

	_, err := f.GetTransport(context.Background(), "ftp", &config.Project{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported transport")

	_, err = f.GetTransport(context.Background(), "scp", &config.Project{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}
