// File: pkg/transport/native/auth.go
package native

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"os"
	"path/filepath"

	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"
	"golang.org/x/crypto/ssh/knownhosts"
)

// Value of the known_hosts setting that turns host key verification off
const InsecureKnownHosts = "insecure"

// Collects the agent (when SSH_AUTH_SOCK is set) and private keys, in that order.
// The returned agent connection is nil when no agent was reached; the caller closes it.
func authMethods(identityFile string, logger *slog.Logger) ([]ssh.AuthMethod, net.Conn) {
	var methods []ssh.AuthMethod
	var agentConn net.Conn

	if socket := os.Getenv("SSH_AUTH_SOCK"); socket != "" {
		conn, err := net.Dial("unix", socket)
		if err != nil {
			logger.Debug("Cannot reach ssh-agent", "socket", socket, "error", err)
		} else {
			agentConn = conn
			methods = append(methods, ssh.PublicKeysCallback(agent.NewClient(conn).Signers))
		}
	}

	if keyAuth := publicKeyAuth(keyPaths(identityFile), logger); keyAuth != nil {
		methods = append(methods, keyAuth)
	}

	return methods, agentConn
}

func keyPaths(identityFile string) []string {
	if identityFile != "" {
		return []string{identityFile}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	return []string{
		filepath.Join(home, ".ssh", "id_ed25519"),
		filepath.Join(home, ".ssh", "id_ecdsa"),
		filepath.Join(home, ".ssh", "id_rsa"),
	}
}

// Loads every readable, unencrypted private key among paths
func publicKeyAuth(paths []string, logger *slog.Logger) ssh.AuthMethod {
	var signers []ssh.Signer
	for _, keyPath := range paths {
		key, err := os.ReadFile(keyPath)
		if err != nil {
			continue
		}

		signer, err := ssh.ParsePrivateKey(key)
		if err != nil {
			logger.Debug("Skipping unusable SSH key", "path", keyPath, "error", err)
			continue
		}

		signers = append(signers, signer)
	}

	if len(signers) == 0 {
		return nil
	}

	return ssh.PublicKeys(signers...)
}

// Verifies host keys against known_hosts, ~/.ssh/known_hosts by default.
// A missing file is an error; verification is skipped only for InsecureKnownHosts.
func hostKeyCallback(knownHostsPath string, logger *slog.Logger) (ssh.HostKeyCallback, error) {
	if knownHostsPath == InsecureKnownHosts {
		logger.Warn("Host key verification disabled by the known_hosts setting")
		return ssh.InsecureIgnoreHostKey(), nil
	}

	if knownHostsPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("error locating known_hosts: %w", err)
		}
		knownHostsPath = filepath.Join(home, ".ssh", "known_hosts")
	}

	callback, err := knownhosts.New(knownHostsPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("no known_hosts file at %s: add the host with ssh-keyscan, or run 'scpsync config set known_hosts %s' to skip verification", knownHostsPath, InsecureKnownHosts)
	}
	if err != nil {
		return nil, fmt.Errorf("error loading known hosts %s: %w", knownHostsPath, err)
	}
	return callback, nil
}
