// File: internal/decision/decision_test.go
package decision

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(file, []byte("a"), 0644))

	tests := []struct {
		name string
		path string
		want Kind
	}{
		{name: "file", path: file, want: KindFile},
		{name: "directory", path: dir, want: KindDirectory},
		{name: "absent", path: filepath.Join(dir, "gone.txt"), want: KindAbsent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Classify(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassify_ReadsCurrentState(t *testing.T) {
	file := filepath.Join(t.TempDir(), "a.txt")

	kind, err := Classify(file)
	require.NoError(t, err)
	assert.Equal(t, KindAbsent, kind)

	require.NoError(t, os.WriteFile(file, nil, 0644))
	kind, err = Classify(file)
	require.NoError(t, err)
	assert.Equal(t, KindFile, kind)
}

func TestDecide(t *testing.T) {
	tests := []struct {
		kind    Kind
		brutal  bool
		want    Action
		refused bool
	}{
		{kind: KindFile, want: ActionUpload},
		{kind: KindFile, brutal: true, want: ActionUpload},
		{kind: KindDirectory, want: ActionMkdir},
		{kind: KindDirectory, brutal: true, want: ActionMkdir},
		{kind: KindAbsent, brutal: true, want: ActionDelete},
		{kind: KindAbsent, want: ActionNone, refused: true},
	}

	for _, tt := range tests {
		got, err := Decide(tt.kind, tt.brutal)
		if tt.refused {
			assert.ErrorIs(t, err, ErrDeletionRefused)
		} else {
			assert.NoError(t, err)
		}
		assert.Equal(t, tt.want, got, "kind=%s brutal=%v", tt.kind, tt.brutal)
	}

	_, err := Decide(Kind("socket"), false)
	assert.Error(t, err)
}
