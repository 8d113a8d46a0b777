// File: cmd/scpsync/input.go
package main

import (
	"bufio"
	"errors"
	"io"
	"iter"
	"os"
	"slices"
	"strings"

	"github.com/mattn/go-isatty"
)

var errNoPaths = errors.New("no paths given: pass them as arguments or pipe them on stdin")

// Yields the positional paths, or one path per line of in when there are none.
// Reading from an interactive terminal is refused.
func pathSource(args []string, in io.Reader, interactive bool) (iter.Seq[string], error) {
	if len(args) > 0 {
		return slices.Values(args), nil
	}
	if in == nil || interactive {
		return nil, errNoPaths
	}

	return func(yield func(string) bool) {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			line := strings.TrimRight(scanner.Text(), "\r")
			if strings.TrimSpace(line) == "" {
				continue
			}
			if !yield(line) {
				return
			}
		}
	}, nil
}

// Reports whether r is a terminal a human is typing into
func isInteractive(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
