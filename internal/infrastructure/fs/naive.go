package fs

import (
	"os"

	"github.com/nickalie/dirkit/internal/core/dirops"
)

// NaiveFileSystem maps every primitive onto the simplest OS call available.
// Creation and deletion check the entry first and act second, so they can
// race with other processes mutating the same tree.
type NaiveFileSystem struct{}

// NewNaiveFileSystem creates a naive provider.
func NewNaiveFileSystem() *NaiveFileSystem {
	return &NaiveFileSystem{}
}

// Exists implements dirops.FileSystemProvider.
func (fsys *NaiveFileSystem) Exists(p dirops.Path) bool {
	return kindOf(p.String()) != dirops.NonExistent
}

// Kind implements dirops.FileSystemProvider.
func (fsys *NaiveFileSystem) Kind(p dirops.Path) dirops.EntryKind {
	return kindOf(p.String())
}

// TargetKind implements dirops.FileSystemProvider.
func (fsys *NaiveFileSystem) TargetKind(p dirops.Path) dirops.EntryKind {
	return targetKindOf(p.String())
}

// ListChildren implements dirops.FileSystemProvider using Readdirnames.
func (fsys *NaiveFileSystem) ListChildren(p dirops.Path) []dirops.Path {
	if fsys.TargetKind(p) != dirops.Directory {
		return nil
	}

	dir, err := os.Open(p.String())
	if err != nil {
		return nil
	}
	defer dir.Close()

	names, err := dir.Readdirnames(-1)
	if err != nil {
		return nil
	}
	return childrenOf(p, names)
}

// CreateDirectory implements dirops.FileSystemProvider.
func (fsys *NaiveFileSystem) CreateDirectory(p dirops.Path) error {
	if fsys.Exists(p) {
		return dirops.NewPathError("create directory", p, dirops.ErrAlreadyExists, nil)
	}
	if err := os.Mkdir(p.String(), dirPerm); err != nil {
		return dirops.NewPathError("create directory", p, dirops.ErrIO, err)
	}
	return nil
}

// DeleteEntry implements dirops.FileSystemProvider. A failed removal is
// classified by looking at the entry again.
func (fsys *NaiveFileSystem) DeleteEntry(p dirops.Path) error {
	if !fsys.Exists(p) {
		return nil
	}

	if err := os.Remove(p.String()); err != nil {
		if len(fsys.ListChildren(p)) > 0 {
			return dirops.NewPathError("delete", p, dirops.ErrNotEmpty, err)
		}
		return dirops.NewPathError("delete", p, dirops.ErrIO, err)
	}
	return nil
}

// Length implements dirops.FileSystemProvider.
func (fsys *NaiveFileSystem) Length(p dirops.Path) int64 {
	return lengthOf(p.String())
}

// Rename implements dirops.FileSystemProvider.
func (fsys *NaiveFileSystem) Rename(src, dst dirops.Path) error {
	if err := os.Rename(src.String(), dst.String()); err != nil {
		return renameError(src, err)
	}
	return nil
}

var _ dirops.FileSystemProvider = (*NaiveFileSystem)(nil)
