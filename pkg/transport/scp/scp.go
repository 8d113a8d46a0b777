// File: pkg/transport/scp/scp.go
package scp

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"scpsync/pkg/transport"
)

// Transport shells out to the ssh and scp binaries
type Transport struct {
	opts   transport.Options
	runner Runner
	logger *slog.Logger
}

var (
	_ transport.Transport = (*Transport)(nil)
	_ transport.Describer = (*Transport)(nil)
)

func New(opts transport.Options, runner Runner, logger *slog.Logger) *Transport {
	if opts.SSHBinary == "" {
		opts.SSHBinary = "ssh"
	}
	if opts.SCPBinary == "" {
		opts.SCPBinary = "scp"
	}
	if runner == nil {
		runner = ProcessRunner{}
	}
	return &Transport{
		opts:   opts,
		runner: runner,
		logger: logger,
	}
}

func (t *Transport) Copy(ctx context.Context, localPath, destination string) error {
	return t.invoke(ctx, "copy", t.opts.SCPBinary, t.copyArgs(localPath, destination))
}

func (t *Transport) Run(ctx context.Context, credentials, command string) error {
	return t.invoke(ctx, "remote command", t.opts.SSHBinary, t.runArgs(credentials, command))
}

func (t *Transport) DescribeCopy(localPath, destination string) string {
	return commandLine(t.opts.SCPBinary, t.copyArgs(localPath, destination))
}

func (t *Transport) DescribeRun(credentials, command string) string {
	return commandLine(t.opts.SSHBinary, t.runArgs(credentials, command))
}

func (t *Transport) copyArgs(localPath, destination string) []string {
	return append(t.commonArgs("-P"), localPath, destination)
}

func (t *Transport) runArgs(credentials, command string) []string {
	return append(t.commonArgs("-p"), credentials, command)
}

func (t *Transport) Close() error {
	return nil
}

// ssh takes the port as -p, scp as -P
func (t *Transport) commonArgs(portFlag string) []string {
	var args []string
	if t.opts.Port > 0 {
		args = append(args, portFlag, strconv.Itoa(t.opts.Port))
	}
	if t.opts.IdentityFile != "" {
		args = append(args, "-i", t.opts.IdentityFile)
	}
	return args
}

func (t *Transport) invoke(ctx context.Context, op, program string, args []string) error {
	if t.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.opts.Timeout)
		defer cancel()
	}

	line := commandLine(program, args)
	t.logger.Debug("Running transport command", "command", line)

	result, err := t.runner.Run(ctx, program, args...)
	if err != nil {
		tErr := &transport.Error{Op: op, Command: line, ExitCode: -1, Err: err}
		if result != nil {
			tErr.ExitCode = result.ExitCode
			tErr.Stderr = result.Stderr
		}
		t.logger.Error("Transport command failed", "command", line, "exit_code", tErr.ExitCode, "error", tErr)
		return tErr
	}

	return nil
}

// Renders program and args as a shell would need them typed
func commandLine(program string, args []string) string {
	quoted := make([]string, 0, len(args)+1)
	quoted = append(quoted, transport.ShellQuote(program))
	for _, arg := range args {
		quoted = append(quoted, transport.ShellQuote(arg))
	}
	return strings.Join(quoted, " ")
}
