// File: internal/pathmap/mapper.go
package pathmap

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// The local path does not live under the project base directory
var ErrPathOutsideBase = errors.New("path is outside the project base")

// Mapper translates local paths under a project base into remote paths
// under the remote root
type Mapper struct {
	base string
	root string
}

func New(base, root string) Mapper {
	return Mapper{base: filepath.Clean(base), root: root}
}

// Returns local relative to the base, with "/" separators and no leading
// separator. The base itself maps to "".
func (m Mapper) Relative(local string) (string, error) {
	rel, err := filepath.Rel(m.base, filepath.Clean(local))
	if err != nil {
		return "", fmt.Errorf("%w: %s is not under %s", ErrPathOutsideBase, local, m.base)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s is not under %s", ErrPathOutsideBase, local, m.base)
	}
	if rel == "." {
		return "", nil
	}
	return filepath.ToSlash(rel), nil
}

// Joins rel onto the remote root. The result never contains duplicate
// separators; directories keep a single trailing "/".
func (m Mapper) Remote(rel string, dir bool) string {
	return Join(m.root, rel, dir)
}

// Joins and normalizes remote path segments
func Join(root, rel string, dir bool) string {
	joined := path.Join(root, rel)
	if dir && !strings.HasSuffix(joined, "/") {
		joined += "/"
	}
	return joined
}
