// File: internal/actuator/actuator.go
package actuator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"scpsync/internal/config"
	"scpsync/internal/decision"
	"scpsync/pkg/formatter"
	"scpsync/pkg/transport"
)

// Any failed transport invocation. Recoverable per entry; the message carries the details.
var ErrTransfer = errors.New("transfer failed")

// Result is the outcome of one remote action
type Result struct {
	Action    decision.Action
	Succeeded bool
	Message   string
}

// Request describes one remote action to perform
type Request struct {
	Project    *config.Project
	LocalPath  string
	RemotePath string
	Action     decision.Action
	// Echo the operation before running it
	Verbose bool
}

var actionTags = map[decision.Action]string{
	decision.ActionUpload: "sent",
	decision.ActionMkdir:  "created",
	decision.ActionDelete: "deleted",
}

// Actuator turns a sync decision into a transport call and reports it
type Actuator struct {
	status *formatter.StatusFormatter
	logger *slog.Logger
}

func New(status *formatter.StatusFormatter, logger *slog.Logger) *Actuator {
	return &Actuator{
		status: status,
		logger: logger.With("component", "RemoteActuator"),
	}
}

// Performs req through t. Transport failures are printed and returned
// wrapped in ErrTransfer together with a failed Result.
func (a *Actuator) Execute(ctx context.Context, t transport.Transport, req Request) (Result, error) {
	credentials := req.Project.Credentials()
	a.logger.Debug("Starting remote action", "action", req.Action, "local", req.LocalPath, "remote", req.RemotePath, "credentials", credentials)

	var err error
	switch req.Action {
	case decision.ActionUpload:
		destination := transport.Destination(credentials, req.RemotePath)
		if req.Verbose {
			a.status.Info("%s", describeCopy(t, req.LocalPath, destination))
		}
		err = t.Copy(ctx, req.LocalPath, destination)
	case decision.ActionMkdir:
		err = a.run(ctx, t, credentials, "mkdir -p "+transport.ShellQuote(req.RemotePath), req.Verbose)
	case decision.ActionDelete:
		err = a.run(ctx, t, credentials, "rm -rf "+transport.ShellQuote(req.RemotePath), req.Verbose)
	case decision.ActionNone:
		return Result{Action: decision.ActionNone, Succeeded: true, Message: "nothing to do"}, nil
	default:
		return Result{Action: req.Action}, fmt.Errorf("unknown action: %q", req.Action)
	}

	if err != nil {
		message := fmt.Sprintf("failed to %s %s: %v", req.Action, req.RemotePath, err)
		a.status.Error("failed to %s %s", req.Action, req.RemotePath)
		a.status.Error("%v", err)
		a.logger.Error("Remote action failed", "action", req.Action, "remote", req.RemotePath, "error", err)
		return Result{Action: req.Action, Succeeded: false, Message: message}, fmt.Errorf("%w: %s", ErrTransfer, message)
	}

	a.status.Action(actionTags[req.Action], req.RemotePath)
	return Result{Action: req.Action, Succeeded: true, Message: actionTags[req.Action] + " " + req.RemotePath}, nil
}

func (a *Actuator) run(ctx context.Context, t transport.Transport, credentials, command string, verbose bool) error {
	if verbose {
		a.status.Info("%s", describeRun(t, credentials, command))
	}
	return t.Run(ctx, credentials, command)
}

// Transports that cannot describe themselves get a generic rendering
func describeCopy(t transport.Transport, localPath, destination string) string {
	if d, ok := t.(transport.Describer); ok {
		return d.DescribeCopy(localPath, destination)
	}
	return "copy " + localPath + " -> " + destination
}

func describeRun(t transport.Transport, credentials, command string) string {
	if d, ok := t.(transport.Describer); ok {
		return d.DescribeRun(credentials, command)
	}
	return "ssh " + credentials + " " + command
}
