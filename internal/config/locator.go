// File: internal/config/locator.go
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Locator finds the project file governing a path and loads it.
// Loaded projects are memoized per file for the lifetime of the Locator;
// it is meant to be used from a single goroutine.
type Locator struct {
	fileName string
	cache    map[string]*Project
	logger   *slog.Logger
}

func NewLocator(fileName string, logger *slog.Logger) *Locator {
	if fileName == "" {
		fileName = ProjectFileName
	}
	return &Locator{
		fileName: fileName,
		cache:    make(map[string]*Project),
		logger:   logger.With("component", "ConfigLocator"),
	}
}

// Returns the project governing start. A non-empty override is loaded
// directly and any failure to read it is fatal (ErrConfigParse).
func (l *Locator) Locate(start, override string) (*Project, error) {
	if override != "" {
		return l.Load(override)
	}

	file, err := l.Find(start)
	if err != nil {
		return nil, err
	}
	return l.Load(file)
}

// Walks from start (or its directory) up to the filesystem root looking for
// the project file, returning ErrConfigNotFound once the root is passed.
func (l *Locator) Find(start string) (string, error) {
	absStart, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("error resolving path %s: %w", start, err)
	}

	dir := absStart
	if info, err := os.Stat(absStart); err != nil || !info.IsDir() {
		dir = filepath.Dir(absStart)
	}

	for {
		candidate := filepath.Join(dir, l.fileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			l.logger.Debug("Found project file", "path", absStart, "file", candidate)
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w for %s (looked for %s up to %s)", ErrConfigNotFound, absStart, l.fileName, dir)
		}
		dir = parent
	}
}

// Reads and parses a project file, reusing an earlier result for the same file
func (l *Locator) Load(file string) (*Project, error) {
	absFile, err := filepath.Abs(file)
	if err != nil {
		return nil, &ConfigParseError{File: file, Cause: err}
	}

	if project, ok := l.cache[absFile]; ok {
		return project, nil
	}

	data, err := os.ReadFile(absFile)
	if err != nil {
		return nil, &ConfigParseError{File: absFile, Cause: fmt.Errorf("error reading config file: %w", err)}
	}

	project, err := Parse(absFile, data)
	if err != nil {
		return nil, err
	}

	l.cache[absFile] = project
	l.logger.Debug("Loaded project file", "file", absFile, "host", project.Host, "remote_path", project.RemotePath)
	return project, nil
}
