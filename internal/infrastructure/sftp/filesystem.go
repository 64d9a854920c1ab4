package sftp

import (
	"errors"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"

	"github.com/nickalie/dirkit/internal/core/dirops"
	"github.com/pkg/sftp"
)

// FileSystem implements dirops.FileSystemProvider on top of an SFTP session.
// Kind reports symbolic links as dirops.Other; TargetKind and Length follow them.
type FileSystem struct {
	client Client
	conn   io.Closer
}

// NewFileSystem creates a provider over client. conn, if not nil, is closed
// together with the client.
func NewFileSystem(client Client, conn io.Closer) *FileSystem {
	return &FileSystem{client: client, conn: conn}
}

// Close releases the SFTP session and the underlying connection.
func (fsys *FileSystem) Close() error {
	return multiCloser{fsys.client, fsys.conn}.Close()
}

// Exists implements dirops.FileSystemProvider.
func (fsys *FileSystem) Exists(p dirops.Path) bool {
	_, err := fsys.client.Lstat(remote(p))
	return err == nil
}

// Kind implements dirops.FileSystemProvider.
func (fsys *FileSystem) Kind(p dirops.Path) dirops.EntryKind {
	info, err := fsys.client.Lstat(remote(p))
	if err != nil {
		return dirops.NonExistent
	}
	return kindOfMode(info.Mode())
}

// TargetKind implements dirops.FileSystemProvider.
func (fsys *FileSystem) TargetKind(p dirops.Path) dirops.EntryKind {
	info, err := fsys.client.Stat(remote(p))
	if err != nil {
		return dirops.NonExistent
	}
	return kindOfMode(info.Mode())
}

// ListChildren implements dirops.FileSystemProvider.
func (fsys *FileSystem) ListChildren(p dirops.Path) []dirops.Path {
	entries, err := fsys.client.ReadDir(remote(p))
	if err != nil {
		return nil
	}

	children := make([]dirops.Path, 0, len(entries))
	for _, entry := range entries {
		if entry.Name() == "." || entry.Name() == ".." {
			continue
		}
		children = append(children, p.Join(entry.Name()))
	}
	return children
}

// CreateDirectory implements dirops.FileSystemProvider. SFTP servers report
// an existing entry as a generic failure, so existence is checked first.
func (fsys *FileSystem) CreateDirectory(p dirops.Path) error {
	if fsys.Exists(p) {
		return dirops.NewPathError("create directory", p, dirops.ErrAlreadyExists, nil)
	}
	if err := fsys.client.Mkdir(remote(p)); err != nil {
		return dirops.NewPathError("create directory", p, dirops.ErrIO, err)
	}
	return nil
}

// CreateDirectories implements dirops.RecursiveCreator.
func (fsys *FileSystem) CreateDirectories(p dirops.Path) error {
	if err := fsys.client.MkdirAll(remote(p)); err != nil {
		return dirops.NewPathError("create directory", p, dirops.ErrIO, err)
	}
	return nil
}

// DeleteEntry implements dirops.FileSystemProvider.
func (fsys *FileSystem) DeleteEntry(p dirops.Path) error {
	kind := fsys.Kind(p)
	if kind == dirops.NonExistent {
		return nil
	}

	var err error
	if kind == dirops.Directory {
		err = fsys.client.RemoveDirectory(remote(p))
	} else {
		err = fsys.client.Remove(remote(p))
	}

	switch {
	case err == nil, errors.Is(err, iofs.ErrNotExist):
		return nil
	case kind == dirops.Directory && len(fsys.ListChildren(p)) > 0:
		return dirops.NewPathError("delete", p, dirops.ErrNotEmpty, err)
	default:
		return dirops.NewPathError("delete", p, dirops.ErrIO, err)
	}
}

// Length implements dirops.FileSystemProvider.
func (fsys *FileSystem) Length(p dirops.Path) int64 {
	info, err := fsys.client.Stat(remote(p))
	if err != nil || !info.Mode().IsRegular() {
		return 0
	}
	return info.Size()
}

// Rename implements dirops.FileSystemProvider. The posix-rename extension
// replaces an existing destination; servers without it fall back to the
// plain rename request.
func (fsys *FileSystem) Rename(src, dst dirops.Path) error {
	err := fsys.client.PosixRename(remote(src), remote(dst))
	if err != nil && isUnsupported(err) {
		err = fsys.client.Rename(remote(src), remote(dst))
	}
	if err != nil {
		return dirops.NewPathError("rename", src, dirops.ErrIO, err)
	}
	return nil
}

func remote(p dirops.Path) string {
	return filepath.ToSlash(p.String())
}

func kindOfMode(mode os.FileMode) dirops.EntryKind {
	switch {
	case mode.IsRegular():
		return dirops.File
	case mode.IsDir():
		return dirops.Directory
	default:
		return dirops.Other
	}
}

func isUnsupported(err error) bool {
	var status *sftp.StatusError
	return errors.As(err, &status) && status.Code == uint32(sftp.ErrSSHFxOpUnsupported)
}

var (
	_ dirops.FileSystemProvider = (*FileSystem)(nil)
	_ dirops.RecursiveCreator   = (*FileSystem)(nil)
)
