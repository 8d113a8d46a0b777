// File: internal/actuator/actuator_test.go
package actuator

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"scpsync/internal/config"
	"scpsync/internal/decision"
	"scpsync/internal/logger"
	"scpsync/internal/transport/transporttest"
	"scpsync/pkg/formatter"
	"scpsync/pkg/transport"
)

func newTestActuator() (*Actuator, *bytes.Buffer) {
	var out bytes.Buffer
	return New(formatter.NewStatusFormatter(&out), logger.Discard()), &out
}

var project = &config.Project{
	File:       "/home/u/proj/.scpsync",
	BasePath:   "/home/u/proj",
	RemotePath: "/srv/app/",
	Host:       "example.com",
}

func TestExecute_Upload(t *testing.T) {
	a, out := newTestActuator()
	tr := new(transporttest.MockTransport)
	tr.On("Copy", mock.Anything, "/home/u/proj/src/main.go", "example.com:/srv/app/src/main.go").Return(nil)

	result, err := a.Execute(context.Background(), tr, Request{
		Project:    project,
		LocalPath:  "/home/u/proj/src/main.go",
		RemotePath: "/srv/app/src/main.go",
		Action:     decision.ActionUpload,
	})
	require.NoError(t, err)
	assert.True(t, result.Succeeded)
	assert.Equal(t, decision.ActionUpload, result.Action)
	assert.Equal(t, "[sent]    /srv/app/src/main.go\n", out.String())
	tr.AssertExpectations(t)
	tr.AssertNotCalled(t, "Run", mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_RemoteCommands(t *testing.T) {
	tests := []struct {
		name    string
		user    string
		action  decision.Action
		remote  string
		creds   string
		command string
		line    string
	}{
		{
			name:    "mkdir",
			action:  decision.ActionMkdir,
			remote:  "/srv/app/build/",
			creds:   "example.com",
			command: "mkdir -p /srv/app/build/",
			line:    "[created] /srv/app/build/\n",
		},
		{
			name:    "delete with user",
			user:    "deploy",
			action:  decision.ActionDelete,
			remote:  "/srv/app/old",
			creds:   "deploy@example.com",
			command: "rm -rf /srv/app/old",
			line:    "[deleted] /srv/app/old\n",
		},
		{
			name:    "path needing quotes",
			action:  decision.ActionDelete,
			remote:  "/srv/app/my file",
			creds:   "example.com",
			command: "rm -rf '/srv/app/my file'",
			line:    "[deleted] /srv/app/my file\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, out := newTestActuator()
			p := *project
			p.User = tt.user

			tr := new(transporttest.MockTransport)
			tr.On("Run", mock.Anything, tt.creds, tt.command).Return(nil)

			result, err := a.Execute(context.Background(), tr, Request{Project: &p, RemotePath: tt.remote, Action: tt.action})
			require.NoError(t, err)
			assert.True(t, result.Succeeded)
			assert.Equal(t, tt.line, out.String())
			tr.AssertExpectations(t)
		})
	}
}

func TestExecute_VerboseEchoesOperation(t *testing.T) {
	a, out := newTestActuator()
	tr := new(transporttest.MockTransport)
	tr.On("Run", mock.Anything, "example.com", "mkdir -p /srv/app/build/").Return(nil)

	_, err := a.Execute(context.Background(), tr, Request{Project: project, RemotePath: "/srv/app/build/", Action: decision.ActionMkdir, Verbose: true})
	require.NoError(t, err)
	assert.Equal(t, "ssh example.com mkdir -p /srv/app/build/\n[created] /srv/app/build/\n", out.String())
}

// Adds the command rendering the real transports provide
type describingTransport struct {
	*transporttest.MockTransport
}

func (describingTransport) DescribeCopy(localPath, destination string) string {
	return "scp -P 2222 " + localPath + " " + destination
}

func (describingTransport) DescribeRun(credentials, command string) string {
	return "ssh -p 2222 " + credentials + " '" + command + "'"
}

func TestExecute_VerboseShowsTransportCommand(t *testing.T) {
	a, out := newTestActuator()
	mocked := new(transporttest.MockTransport)
	mocked.On("Copy", mock.Anything, "/home/u/proj/a.txt", "example.com:/srv/app/a.txt").Return(nil)
	mocked.On("Run", mock.Anything, "example.com", "rm -rf /srv/app/old").Return(nil)
	tr := describingTransport{mocked}

	_, err := a.Execute(context.Background(), tr, Request{Project: project, LocalPath: "/home/u/proj/a.txt", RemotePath: "/srv/app/a.txt", Action: decision.ActionUpload, Verbose: true})
	require.NoError(t, err)
	_, err = a.Execute(context.Background(), tr, Request{Project: project, RemotePath: "/srv/app/old", Action: decision.ActionDelete, Verbose: true})
	require.NoError(t, err)

	assert.Equal(t, strings.Join([]string{
		"scp -P 2222 /home/u/proj/a.txt example.com:/srv/app/a.txt",
		"[sent]    /srv/app/a.txt",
		"ssh -p 2222 example.com 'rm -rf /srv/app/old'",
		"[deleted] /srv/app/old",
		"",
	}, "\n"), out.String())
	mocked.AssertExpectations(t)
}

func TestExecute_Failure(t *testing.T) {
	a, out := newTestActuator()
	tr := new(transporttest.MockTransport)
	tr.On("Copy", mock.Anything, "/home/u/proj/a.txt", "example.com:/srv/app/a.txt").
		Return(&transport.Error{Op: "copy", ExitCode: 1, Stderr: "Permission denied", Err: errors.New("exit status 1")})

	result, err := a.Execute(context.Background(), tr, Request{
		Project:    project,
		LocalPath:  "/home/u/proj/a.txt",
		RemotePath: "/srv/app/a.txt",
		Action:     decision.ActionUpload,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransfer)
	assert.False(t, result.Succeeded)
	assert.Contains(t, result.Message, "Permission denied")
	assert.Equal(t, "error: failed to upload /srv/app/a.txt\nerror: copy failed: Permission denied\n", out.String())
	assert.NotContains(t, out.String(), "[sent]")
}

func TestExecute_NoneMakesNoCalls(t *testing.T) {
	a, out := newTestActuator()
	tr := new(transporttest.MockTransport)

	result, err := a.Execute(context.Background(), tr, Request{Project: project, Action: decision.ActionNone})
	require.NoError(t, err)
	assert.True(t, result.Succeeded)
	assert.Empty(t, out.String())
	tr.AssertNotCalled(t, "Copy", mock.Anything, mock.Anything, mock.Anything)
	tr.AssertNotCalled(t, "Run", mock.Anything, mock.Anything, mock.Anything)
}
