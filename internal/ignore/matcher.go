// File: internal/ignore/matcher.go
package ignore

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/bmatcuk/doublestar/v4"
)

// An ignore entry could not be compiled. Fatal for the run.
var ErrIgnorePattern = errors.New("invalid ignore pattern")

// Matcher decides whether a project-relative path is excluded from sync.
// Regular expressions are searched unanchored, in declaration order, and
// are consulted before glob entries.
type Matcher struct {
	patterns []*regexp.Regexp
	globs    []string
}

// Compiles every entry up front so a broken entry is reported even when an
// earlier one would have matched.
func New(patterns, globs []string) (*Matcher, error) {
	m := &Matcher{
		patterns: make([]*regexp.Regexp, 0, len(patterns)),
		globs:    make([]string, 0, len(globs)),
	}

	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %v", ErrIgnorePattern, p, err)
		}
		m.patterns = append(m.patterns, re)
	}

	for _, g := range globs {
		if !doublestar.ValidatePattern(g) {
			return nil, fmt.Errorf("%w %q: malformed glob", ErrIgnorePattern, g)
		}
		m.globs = append(m.globs, g)
	}

	return m, nil
}

// Reports whether rel is ignored and which entry matched first
func (m *Matcher) Match(rel string) (string, bool) {
	for _, re := range m.patterns {
		if re.MatchString(rel) {
			return re.String(), true
		}
	}

	slashed := filepath.ToSlash(rel)
	for _, g := range m.globs {
		if ok, _ := doublestar.Match(g, slashed); ok {
			return g, true
		}
	}

	return "", false
}

// Reports whether the matcher can ever ignore anything
func (m *Matcher) Empty() bool {
	return len(m.patterns) == 0 && len(m.globs) == 0
}
