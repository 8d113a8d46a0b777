// File: internal/pathmap/mapper_test.go
package pathmap

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapper_Relative(t *testing.T) {
	base := filepath.FromSlash("/home/u/proj")
	m := New(base, "/srv/app/")

	tests := []struct {
		name    string
		local   string
		want    string
		wantErr bool
	}{
		{name: "file", local: "/home/u/proj/src/main.go", want: "src/main.go"},
		{name: "base itself", local: "/home/u/proj", want: ""},
		{name: "unclean path", local: "/home/u/proj/src/../lib//a.go", want: "lib/a.go"},
		{name: "sibling with shared prefix", local: "/home/u/project/a.go", wantErr: true},
		{name: "parent", local: "/home/u", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.Relative(filepath.FromSlash(tt.local))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrPathOutsideBase)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.False(t, strings.HasPrefix(got, "/"))
		})
	}
}

func TestMapper_Remote(t *testing.T) {
	tests := []struct {
		name string
		root string
		rel  string
		dir  bool
		want string
	}{
		{name: "file", root: "/srv/app/", rel: "src/main.go", want: "/srv/app/src/main.go"},
		{name: "directory keeps trailing slash", root: "/srv/app/", rel: "build", dir: true, want: "/srv/app/build/"},
		{name: "root without slash", root: "/srv/app", rel: "a.txt", want: "/srv/app/a.txt"},
		{name: "duplicate separators", root: "/srv//app/", rel: "/a//b.txt", want: "/srv/app/a/b.txt"},
		{name: "base maps to root", root: "/srv/app/", rel: "", dir: true, want: "/srv/app/"},
		{name: "relative root", root: "www/", rel: "index.html", want: "www/index.html"},
		{name: "home relative root", root: "~/site/", rel: "a.css", want: "~/site/a.css"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New("/home/u/proj", tt.root).Remote(tt.rel, tt.dir)
			assert.Equal(t, tt.want, got)
			assert.NotContains(t, got, "//")
		})
	}
}

func TestMapper_RoundTrip(t *testing.T) {
	m := New("/home/u/proj", "/srv/app/")
	rel, err := m.Relative("/home/u/proj/a/b/c.txt")
	require.NoError(t, err)
	assert.Equal(t, "/srv/app/a/b/c.txt", m.Remote(rel, false))
}
