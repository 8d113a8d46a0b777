// File: pkg/transport/native/native.go
package native

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"strconv"

	"golang.org/x/crypto/ssh"

	"scpsync/pkg/transport"
)

const defaultPort = 22

// Transport speaks SSH directly, without the ssh/scp binaries.
// Connections are opened lazily per credentials and kept until Close.
type Transport struct {
	opts    transport.Options
	auth    []ssh.AuthMethod
	hostKey ssh.HostKeyCallback
	clients map[string]*ssh.Client
	// Connection to ssh-agent, nil without one
	agent   net.Conn
	logger  *slog.Logger
}

var (
	_ transport.Transport = (*Transport)(nil)
	_ transport.Describer = (*Transport)(nil)
)

func New(opts transport.Options, logger *slog.Logger) (*Transport, error) {
	auth, agentConn := authMethods(opts.IdentityFile, logger)
	if len(auth) == 0 {
		return nil, errors.New("no SSH authentication methods available - start ssh-agent or add a key under ~/.ssh")
	}

	hostKey, err := hostKeyCallback(opts.KnownHosts, logger)
	if err != nil {
		if agentConn != nil {
			agentConn.Close()
		}
		return nil, err
	}

	return &Transport{
		opts:    opts,
		auth:    auth,
		hostKey: hostKey,
		clients: make(map[string]*ssh.Client),
		agent:   agentConn,
		logger:  logger,
	}, nil
}

// Streams the local file into "cat > path" on the remote host
func (t *Transport) Copy(ctx context.Context, localPath, destination string) error {
	credentials, remotePath, err := transport.SplitDestination(destination)
	if err != nil {
		return &transport.Error{Op: "copy", Command: destination, ExitCode: -1, Err: err}
	}

	localFile, err := os.Open(localPath)
	if err != nil {
		return &transport.Error{Op: "copy", Command: destination, ExitCode: -1, Err: fmt.Errorf("failed to open local file: %w", err)}
	}
	defer localFile.Close()

	command := "cat > " + transport.ShellQuote(remotePath)
	return t.exec(ctx, "copy", credentials, command, localFile)
}

// Renders the equivalent OpenSSH command line of a Copy
func (t *Transport) DescribeCopy(localPath, destination string) string {
	credentials, remotePath, err := transport.SplitDestination(destination)
	if err != nil {
		return "ssh " + destination
	}
	return t.describe(credentials, "cat > "+transport.ShellQuote(remotePath)) + " < " + transport.ShellQuote(localPath)
}

func (t *Transport) DescribeRun(credentials, command string) string {
	return t.describe(credentials, command)
}

func (t *Transport) describe(credentials, command string) string {
	return "ssh -p " + strconv.Itoa(t.port()) + " " + credentials + " " + transport.ShellQuote(command)
}

func (t *Transport) port() int {
	if t.opts.Port == 0 {
		return defaultPort
	}
	return t.opts.Port
}

func (t *Transport) Run(ctx context.Context, credentials, command string) error {
	return t.exec(ctx, "remote command", credentials, command, nil)
}

func (t *Transport) Close() error {
	var errs []error
	for key, client := range t.clients {
		if err := client.Close(); err != nil {
			errs = append(errs, err)
		}
		delete(t.clients, key)
	}
	if t.agent != nil {
		if err := t.agent.Close(); err != nil {
			errs = append(errs, err)
		}
		t.agent = nil
	}
	return errors.Join(errs...)
}

func (t *Transport) exec(ctx context.Context, op, credentials, command string, stdin io.Reader) error {
	fail := func(exitCode int, stderr string, err error) error {
		tErr := &transport.Error{Op: op, Command: command, ExitCode: exitCode, Stderr: stderr, Err: err}
		t.logger.Error("Transport command failed", "credentials", credentials, "command", command, "exit_code", exitCode, "error", tErr)
		return tErr
	}

	if t.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.opts.Timeout)
		defer cancel()
	}

	client, err := t.client(ctx, credentials)
	if err != nil {
		return fail(-1, "", err)
	}

	session, err := client.NewSession()
	if err != nil {
		return fail(-1, "", fmt.Errorf("failed to create session: %w", err))
	}
	defer session.Close()

	var stderr bytes.Buffer
	session.Stderr = &stderr
	if stdin != nil {
		session.Stdin = stdin
	}

	t.logger.Debug("Running remote command", "credentials", credentials, "command", command)

	done := make(chan error, 1)
	go func() {
		done <- session.Run(command)
	}()

	select {
	case <-ctx.Done():
		_ = session.Signal(ssh.SIGKILL)
		_ = session.Close()
		// Run returns once the channel is closed; stderr is not written after that
		<-done
		return fail(-1, stderr.String(), ctx.Err())
	case err := <-done:
		if err == nil {
			return nil
		}
		var exitErr *ssh.ExitError
		if errors.As(err, &exitErr) {
			return fail(exitErr.ExitStatus(), stderr.String(), err)
		}
		return fail(-1, stderr.String(), err)
	}
}

func (t *Transport) client(ctx context.Context, credentials string) (*ssh.Client, error) {
	if c, ok := t.clients[credentials]; ok {
		return c, nil
	}

	user, host := transport.SplitCredentials(credentials)
	if user == "" {
		user = os.Getenv("USER") // Default to current user
	}

	addr := net.JoinHostPort(host, strconv.Itoa(t.port()))

	cfg := &ssh.ClientConfig{
		User:            user,
		Auth:            t.auth,
		HostKeyCallback: t.hostKey,
		Timeout:         t.opts.Timeout,
	}

	dialer := net.Dialer{Timeout: t.opts.Timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", addr, err)
	}

	clientConn, chans, reqs, err := ssh.NewClientConn(conn, addr, cfg)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("ssh handshake with %s failed: %w", addr, err)
	}

	client := ssh.NewClient(clientConn, chans, reqs)
	t.clients[credentials] = client
	t.logger.Debug("Opened SSH connection", "addr", addr, "user", user)
	return client, nil
}

