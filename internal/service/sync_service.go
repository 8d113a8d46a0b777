// File: internal/service/sync_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"path/filepath"

	"scpsync/internal/actuator"
	"scpsync/internal/config"
	"scpsync/internal/decision"
	"scpsync/internal/ignore"
	"scpsync/internal/pathmap"
	"scpsync/pkg/formatter"
	"scpsync/pkg/transport"
)

// The download direction is accepted on the command line but not implemented
var ErrDownloadUnsupported = errors.New("download direction (--get) is not supported")

// Options for one run. Passed by value; never stored globally.
type Options struct {
	Verbose    bool
	Brutal     bool
	Get        bool
	ConfigPath string
	Transport  string
}

// Target is a local path resolved against its governing project
type Target struct {
	LocalPath    string
	Project      *config.Project
	RelativePath string
	RemotePath   string
	Kind         decision.Kind
}

// Summary counts the outcomes of a batch
type Summary struct {
	Synced  int
	Ignored int
	Failed  int
}

// TransportProvider hands out transports for a project
type TransportProvider interface {
	ResolveName(override string, project *config.Project) string
	GetTransport(ctx context.Context, name string, project *config.Project) (transport.Transport, error)
}

type SyncService struct {
	locator    *config.Locator
	transports TransportProvider
	actuator   *actuator.Actuator
	status     *formatter.StatusFormatter
	// Compiled ignore rules, keyed by project file
	matchers map[string]*ignore.Matcher
	logger   *slog.Logger
}

func NewSyncService(locator *config.Locator, transports TransportProvider, status *formatter.StatusFormatter, logger *slog.Logger) *SyncService {
	return &SyncService{
		locator:    locator,
		transports: transports,
		actuator:   actuator.New(status, logger),
		status:     status,
		matchers:   make(map[string]*ignore.Matcher),
		logger:     logger.With("service", "SyncService"),
	}
}

// Reports whether err must stop the whole run rather than just the current path
func IsFatal(err error) bool {
	return errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, ignore.ErrIgnorePattern) ||
		errors.Is(err, ErrDownloadUnsupported)
}

// Processes paths strictly one after another. Per-path failures are counted
// and the batch goes on; a fatal error or a cancelled context stops it.
func (s *SyncService) SyncAll(ctx context.Context, paths iter.Seq[string], opts Options) (Summary, error) {
	var summary Summary
	if opts.Get {
		return summary, ErrDownloadUnsupported
	}

	for p := range paths {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		result, err := s.Sync(ctx, p, opts)
		switch {
		case err != nil && IsFatal(err):
			summary.Failed++
			return summary, err
		case err != nil || !result.Succeeded:
			summary.Failed++
		case result.Action == decision.ActionNone:
			summary.Ignored++
		default:
			summary.Synced++
		}
	}

	if opts.Verbose {
		s.status.Summary(summary.Synced, summary.Ignored, summary.Failed)
	}
	return summary, nil
}

// Synchronizes one local path. Errors matching IsFatal must abort the run;
// every other error has already been reported and only concerns this path.
func (s *SyncService) Sync(ctx context.Context, localPath string, opts Options) (actuator.Result, error) {
	s.logger.Debug("Starting Sync operation", "path", localPath, "brutal", opts.Brutal)
	none := actuator.Result{Action: decision.ActionNone}

	if opts.Get {
		return none, ErrDownloadUnsupported
	}

	target, err := s.Resolve(localPath, opts)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			s.status.Warn("%v", err)
		} else {
			s.status.Error("%v", err)
		}
		none.Message = err.Error()
		return none, err
	}

	if pattern, ignored, err := s.ignored(target); err != nil {
		s.status.Error("%v", err)
		return none, err
	} else if ignored {
		if opts.Verbose {
			s.status.Info("ignored %s (matches %q)", target.RelativePath, pattern)
		}
		s.logger.Debug("Path ignored", "path", target.LocalPath, "pattern", pattern)
		return actuator.Result{Action: decision.ActionNone, Succeeded: true, Message: "ignored"}, nil
	}

	kind, err := decision.Classify(target.LocalPath)
	if err != nil {
		s.status.Error("%v", err)
		none.Message = err.Error()
		return none, err
	}
	target.Kind = kind
	target.RemotePath = pathmap.New(target.Project.BasePath, target.Project.RemotePath).Remote(target.RelativePath, kind == decision.KindDirectory)

	action, err := decision.Decide(kind, opts.Brutal)
	if errors.Is(err, decision.ErrDeletionRefused) {
		s.status.Warn("%s does not exist locally; pass --brutal to delete %s on %s", target.LocalPath, target.RemotePath, target.Project.Host)
		none.Message = err.Error()
		return none, err
	}
	if err != nil {
		s.status.Error("%v", err)
		return none, err
	}

	name := s.transports.ResolveName(opts.Transport, target.Project)
	t, err := s.transports.GetTransport(ctx, name, target.Project)
	if err != nil {
		s.status.Error("%v", err)
		none.Action = action
		none.Message = err.Error()
		return none, fmt.Errorf("%w: %v", actuator.ErrTransfer, err)
	}

	return s.actuator.Execute(ctx, t, actuator.Request{
		Project:    target.Project,
		LocalPath:  target.LocalPath,
		RemotePath: target.RemotePath,
		Action:     action,
		Verbose:    opts.Verbose || target.Project.Verbose,
	})
}

// Finds the governing project of localPath and its project-relative path.
// Kind and RemotePath are filled in later, at decision time.
func (s *SyncService) Resolve(localPath string, opts Options) (*Target, error) {
	absPath, err := filepath.Abs(localPath)
	if err != nil {
		return nil, fmt.Errorf("error resolving path %s: %w", localPath, err)
	}

	project, err := s.locator.Locate(absPath, opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	rel, err := pathmap.New(project.BasePath, project.RemotePath).Relative(absPath)
	if err != nil {
		return nil, err
	}

	return &Target{
		LocalPath:    absPath,
		Project:      project,
		RelativePath: rel,
	}, nil
}

func (s *SyncService) ignored(target *Target) (string, bool, error) {
	matcher, ok := s.matchers[target.Project.File]
	if !ok {
		var err error
		matcher, err = ignore.New(target.Project.IgnorePatterns, target.Project.IgnoreGlobs)
		if err != nil {
			return "", false, fmt.Errorf("%s: %w", target.Project.File, err)
		}
		s.matchers[target.Project.File] = matcher
	}
	if matcher.Empty() {
		return "", false, nil
	}

	pattern, ok := matcher.Match(target.RelativePath)
	return pattern, ok, nil
}
