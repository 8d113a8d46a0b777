// File: pkg/transport/scp/runner.go
package scp

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// Result holds the captured output of one process run
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner starts an external program and waits for it
type Runner interface {
	Run(ctx context.Context, program string, args ...string) (*Result, error)
}

// ProcessRunner runs programs with os/exec, capturing stdout and stderr
type ProcessRunner struct{}

func (ProcessRunner) Run(ctx context.Context, program string, args ...string) (*Result, error) {
	cmd := exec.CommandContext(ctx, program, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := &Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: 0,
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = -1
		}
		return result, err
	}

	return result, nil
}
