// File: pkg/transport/transport.go
package transport

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Transport performs the two remote primitives the sync engine needs
type Transport interface {
	// Copies a local file to destination, written as "credentials:remotePath"
	Copy(ctx context.Context, localPath, destination string) error

	// Runs a shell command on the host named by credentials ("user@host" or "host")
	Run(ctx context.Context, credentials, command string) error

	Close() error
}

// Describer renders the command line a transport issues for an operation,
// so verbose output shows what actually runs
type Describer interface {
	DescribeCopy(localPath, destination string) string
	DescribeRun(credentials, command string) string
}

// Options shared by every transport implementation
type Options struct {
	SSHBinary    string
	SCPBinary    string
	Port         int
	IdentityFile string
	// Path of the known_hosts file, or "insecure" to skip host key checks
	KnownHosts   string
	Timeout      time.Duration
}

// Error reports a failed transport invocation. The message is the remote
// error text; exit codes are kept for logging only.
type Error struct {
	Op       string
	Command  string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *Error) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if msg == "" {
		msg = fmt.Sprintf("exit status %d", e.ExitCode)
	}
	return fmt.Sprintf("%s failed: %s", e.Op, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Builds the "credentials:remotePath" destination accepted by Copy
func Destination(credentials, remotePath string) string {
	return credentials + ":" + remotePath
}

// Splits a destination built by Destination back into its parts
func SplitDestination(destination string) (credentials, remotePath string, err error) {
	credentials, remotePath, ok := strings.Cut(destination, ":")
	if !ok || credentials == "" || remotePath == "" {
		return "", "", fmt.Errorf("invalid destination %q, expected credentials:path", destination)
	}
	return credentials, remotePath, nil
}

// Splits credentials into user and host; user is empty when absent
func SplitCredentials(credentials string) (user, host string) {
	if u, h, ok := strings.Cut(credentials, "@"); ok {
		return u, h
	}
	return "", credentials
}

// Quotes s for a POSIX shell, leaving plain paths (including a leading ~) untouched
func ShellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsFunc(s, unsafeShellRune) {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func unsafeShellRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	case strings.ContainsRune("_-./~@%+=:,", r):
		return false
	}
	return true
}
