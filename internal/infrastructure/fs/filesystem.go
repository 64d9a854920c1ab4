// Package fs provides local file-system providers for directory operations.
package fs

import (
	iofs "io/fs"
	"os"

	"github.com/nickalie/dirkit/internal/core/dirops"
)

// dirPerm is the mode requested for new directories, before umask.
const dirPerm os.FileMode = 0755

// New returns the provider registered under name: "modern" or "naive".
// It returns false for unknown names.
func New(name string) (dirops.FileSystemProvider, bool) {
	switch name {
	case "", "modern":
		return NewModernFileSystem(), true
	case "naive":
		return NewNaiveFileSystem(), true
	default:
		return nil, false
	}
}

// kindOf classifies the entry at name without following symbolic links.
// Entries that cannot be inspected are reported as non-existent.
func kindOf(name string) dirops.EntryKind {
	info, err := os.Lstat(name)
	if err != nil {
		return dirops.NonExistent
	}
	return kindOfInfo(info)
}

// targetKindOf classifies what name resolves to, following symbolic links.
func targetKindOf(name string) dirops.EntryKind {
	info, err := os.Stat(name)
	if err != nil {
		return dirops.NonExistent
	}
	return kindOfInfo(info)
}

func kindOfInfo(info iofs.FileInfo) dirops.EntryKind {
	switch mode := info.Mode(); {
	case mode.IsRegular():
		return dirops.File
	case mode.IsDir():
		return dirops.Directory
	default:
		return dirops.Other
	}
}

func lengthOf(name string) int64 {
	info, err := os.Stat(name)
	if err != nil {
		return 0
	}
	return info.Size()
}

func childrenOf(p dirops.Path, names []string) []dirops.Path {
	children := make([]dirops.Path, 0, len(names))
	for _, name := range names {
		children = append(children, p.Join(name))
	}
	return children
}

func renameError(src dirops.Path, err error) error {
	if isCrossDevice(err) {
		return dirops.NewPathError("rename", src, dirops.ErrCrossDevice, err)
	}
	return dirops.NewPathError("rename", src, dirops.ErrIO, err)
}
