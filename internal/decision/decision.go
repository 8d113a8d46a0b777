// File: internal/decision/decision.go
package decision

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Kind is the state of a local entry at decision time
type Kind string

const (
	KindFile      Kind = "file"
	KindDirectory Kind = "directory"
	KindAbsent    Kind = "absent"
)

// Action is the remote side effect selected for a local entry
type Action string

const (
	ActionUpload Action = "upload"
	ActionMkdir  Action = "mkdir"
	ActionDelete Action = "delete"
	ActionNone   Action = "none"
)

// The local entry is gone and brutal mode is off. A policy refusal, not a failure of the tool.
var ErrDeletionRefused = errors.New("refusing to delete remote entry without brutal mode")

// Stats path now; nothing is cached between calls
func Classify(path string) (Kind, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return KindAbsent, nil
		}
		return "", fmt.Errorf("error inspecting %s: %w", path, err)
	}
	if info.IsDir() {
		return KindDirectory, nil
	}
	return KindFile, nil
}

func Decide(kind Kind, brutal bool) (Action, error) {
	switch kind {
	case KindFile:
		return ActionUpload, nil
	case KindDirectory:
		return ActionMkdir, nil
	case KindAbsent:
		if brutal {
			return ActionDelete, nil
		}
		return ActionNone, ErrDeletionRefused
	default:
		return ActionNone, fmt.Errorf("unknown entry kind: %q", kind)
	}
}
