package fs

import (
	"errors"
	iofs "io/fs"
	"os"

	"github.com/nickalie/dirkit/internal/core/dirops"
)

// ModernFileSystem relies on the OS to report conflicts instead of checking
// first, and uses native recursive creation and removal.
type ModernFileSystem struct{}

// NewModernFileSystem creates a modern provider.
func NewModernFileSystem() *ModernFileSystem {
	return &ModernFileSystem{}
}

// Exists implements dirops.FileSystemProvider.
func (fsys *ModernFileSystem) Exists(p dirops.Path) bool {
	_, err := os.Lstat(p.String())
	return err == nil
}

// Kind implements dirops.FileSystemProvider.
func (fsys *ModernFileSystem) Kind(p dirops.Path) dirops.EntryKind {
	return kindOf(p.String())
}

// TargetKind implements dirops.FileSystemProvider.
func (fsys *ModernFileSystem) TargetKind(p dirops.Path) dirops.EntryKind {
	return targetKindOf(p.String())
}

// ListChildren implements dirops.FileSystemProvider. os.ReadDir follows a
// link to a directory.
func (fsys *ModernFileSystem) ListChildren(p dirops.Path) []dirops.Path {
	entries, err := os.ReadDir(p.String())
	if err != nil {
		return nil
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return childrenOf(p, names)
}

// CreateDirectory implements dirops.FileSystemProvider.
func (fsys *ModernFileSystem) CreateDirectory(p dirops.Path) error {
	err := os.Mkdir(p.String(), dirPerm)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, iofs.ErrExist):
		return dirops.NewPathError("create directory", p, dirops.ErrAlreadyExists, err)
	default:
		return dirops.NewPathError("create directory", p, dirops.ErrIO, err)
	}
}

// CreateDirectories implements dirops.RecursiveCreator.
func (fsys *ModernFileSystem) CreateDirectories(p dirops.Path) error {
	if err := os.MkdirAll(p.String(), dirPerm); err != nil {
		return dirops.NewPathError("create directory", failedPath(p, err), dirops.ErrIO, err)
	}
	return nil
}

// DeleteEntry implements dirops.FileSystemProvider.
func (fsys *ModernFileSystem) DeleteEntry(p dirops.Path) error {
	err := os.Remove(p.String())
	switch {
	case err == nil, errors.Is(err, iofs.ErrNotExist):
		return nil
	case isNotEmpty(err):
		return dirops.NewPathError("delete", p, dirops.ErrNotEmpty, err)
	default:
		return dirops.NewPathError("delete", p, dirops.ErrIO, err)
	}
}

// DeleteTree implements dirops.RecursiveDeleter.
func (fsys *ModernFileSystem) DeleteTree(p dirops.Path) error {
	err := os.RemoveAll(p.String())
	switch {
	case err == nil:
		return nil
	case isNotEmpty(err):
		return dirops.NewPathError("delete", failedPath(p, err), dirops.ErrNotEmpty, err)
	default:
		return dirops.NewPathError("delete", failedPath(p, err), dirops.ErrIO, err)
	}
}

// Length implements dirops.FileSystemProvider.
func (fsys *ModernFileSystem) Length(p dirops.Path) int64 {
	return lengthOf(p.String())
}

// Rename implements dirops.FileSystemProvider.
func (fsys *ModernFileSystem) Rename(src, dst dirops.Path) error {
	if err := os.Rename(src.String(), dst.String()); err != nil {
		return renameError(src, err)
	}
	return nil
}

// failedPath returns the path reported by an OS error, falling back to p.
func failedPath(p dirops.Path, err error) dirops.Path {
	var pe *iofs.PathError
	if !errors.As(err, &pe) {
		return p
	}
	if reported, perr := dirops.ParsePath(pe.Path); perr == nil {
		return reported
	}
	return p
}

var (
	_ dirops.FileSystemProvider = (*ModernFileSystem)(nil)
	_ dirops.RecursiveCreator   = (*ModernFileSystem)(nil)
	_ dirops.RecursiveDeleter   = (*ModernFileSystem)(nil)
)
