package dirops

import (
	"errors"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix path fixtures")
	}

	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{name: "root", input: "/", expected: "/"},
		{name: "simple", input: "/tmp/foo", expected: "/tmp/foo"},
		{name: "trailing slash", input: "/tmp/foo/", expected: "/tmp/foo"},
		{name: "dot segments", input: "/tmp/./foo/../bar", expected: "/tmp/bar"},
		{name: "empty", input: "", wantErr: true},
		{name: "relative", input: "tmp/foo", wantErr: true},
		{name: "dot", input: ".", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParsePath(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidArgument))
				assert.Contains(t, err.Error(), "must be an absolute path")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, p.String())
		})
	}
}

func TestMustParsePath(t *testing.T) {
	assert.Panics(t, func() { MustParsePath("relative") })
	assert.NotPanics(t, func() { MustParsePath(string(filepath.Separator)) })
}

func TestPath_Navigation(t *testing.T) {
	root := MustParsePath(string(filepath.Separator))
	assert.True(t, root.IsRoot())
	assert.Equal(t, root, root.Parent())

	foo := root.Join("foo")
	bar := foo.Join("bar")
	assert.False(t, bar.IsRoot())
	assert.Equal(t, "bar", bar.Base())
	assert.Equal(t, foo, bar.Parent())
	assert.Equal(t, root, foo.Parent())
	assert.Equal(t, filepath.Join(string(filepath.Separator), "foo", "bar"), bar.String())
}

func TestEntryKind_String(t *testing.T) {
	assert.Equal(t, "non-existent", NonExistent.String())
	assert.Equal(t, "file", File.String())
	assert.Equal(t, "directory", Directory.String())
	assert.Equal(t, "other", Other.String())
}

func TestPathError(t *testing.T) {
	cause := errors.New("boom")
	p := MustParsePath(filepath.Join(string(filepath.Separator), "data"))

	err := NewPathError("delete", p, ErrNotEmpty, cause)
	assert.ErrorIs(t, err, ErrNotEmpty)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrIO)
	assert.Equal(t, "failed to delete '"+p.String()+"': directory is not empty: boom", err.Error())

	bare := NewPathError("rename", p, ErrCrossDevice, nil)
	assert.Equal(t, "failed to rename '"+p.String()+"': source and target are on different devices", bare.Error())

	blockedErr := blocked("create directory", p, File)
	assert.ErrorIs(t, blockedErr, ErrPathBlocked)
	assert.Equal(t, "failed to create directory '"+p.String()+"': "+
		"path is blocked by an entry that is not a directory: '"+p.String()+"' exists and is not a directory (file)", blockedErr.Error())

	assert.Contains(t, blocked("create directory", p, Other).Error(), "is not a directory (other)")
}
