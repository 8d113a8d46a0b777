// File: internal/config/errors.go
package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// No project file exists on the ancestor chain of a path. Recoverable per entry.
	ErrConfigNotFound = errors.New("no configuration found")

	// A project file exists but cannot be read or trusted. Fatal for the run.
	ErrConfigParse = errors.New("invalid configuration")
)

// ConfigParseError describes everything wrong with one project file at once
type ConfigParseError struct {
	File    string
	Missing []string
	Invalid []string
	Cause   error
}

func (e *ConfigParseError) Error() string {
	var parts []string
	if e.Cause != nil {
		parts = append(parts, e.Cause.Error())
	}
	if len(e.Missing) > 0 {
		parts = append(parts, "missing required keys: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, "invalid keys: "+strings.Join(e.Invalid, ", "))
	}
	return fmt.Sprintf("%s %s: %s", ErrConfigParse, e.File, strings.Join(parts, "; "))
}

func (e *ConfigParseError) Is(target error) bool {
	return target == ErrConfigParse
}

func (e *ConfigParseError) Unwrap() error {
	return e.Cause
}
