package fs

import (
	"github.com/nickalie/dirkit/internal/core/dirops"
)

// MockFileSystem implements dirops.FileSystemProvider for testing.
// A nil function field delegates to Base; with no Base the call reports an
// empty tree and every mutation fails with ErrIO. A nil TargetKindFunc uses
// KindFunc when that is set.
type MockFileSystem struct {
	Base dirops.FileSystemProvider

	ExistsFunc          func(p dirops.Path) bool
	KindFunc            func(p dirops.Path) dirops.EntryKind
	TargetKindFunc      func(p dirops.Path) dirops.EntryKind
	ListChildrenFunc    func(p dirops.Path) []dirops.Path
	CreateDirectoryFunc func(p dirops.Path) error
	DeleteEntryFunc     func(p dirops.Path) error
	LengthFunc          func(p dirops.Path) int64
	RenameFunc          func(src, dst dirops.Path) error
}

// Exists mocks the Exists method of the provider interface
func (m *MockFileSystem) Exists(p dirops.Path) bool {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(p)
	}
	if m.Base != nil {
		return m.Base.Exists(p)
	}
	return false
}

// Kind mocks the Kind method of the provider interface
func (m *MockFileSystem) Kind(p dirops.Path) dirops.EntryKind {
	if m.KindFunc != nil {
		return m.KindFunc(p)
	}
	if m.Base != nil {
		return m.Base.Kind(p)
	}
	return dirops.NonExistent
}

// TargetKind mocks the TargetKind method of the provider interface
func (m *MockFileSystem) TargetKind(p dirops.Path) dirops.EntryKind {
	if m.TargetKindFunc != nil {
		return m.TargetKindFunc(p)
	}
	if m.KindFunc != nil {
		return m.KindFunc(p)
	}
	if m.Base != nil {
		return m.Base.TargetKind(p)
	}
	return dirops.NonExistent
}

// ListChildren mocks the ListChildren method of the provider interface
func (m *MockFileSystem) ListChildren(p dirops.Path) []dirops.Path {
	if m.ListChildrenFunc != nil {
		return m.ListChildrenFunc(p)
	}
	if m.Base != nil {
		return m.Base.ListChildren(p)
	}
	return nil
}

// CreateDirectory mocks the CreateDirectory method of the provider interface
func (m *MockFileSystem) CreateDirectory(p dirops.Path) error {
	if m.CreateDirectoryFunc != nil {
		return m.CreateDirectoryFunc(p)
	}
	if m.Base != nil {
		return m.Base.CreateDirectory(p)
	}
	return dirops.NewPathError("create directory", p, dirops.ErrIO, nil)
}

// DeleteEntry mocks the DeleteEntry method of the provider interface
func (m *MockFileSystem) DeleteEntry(p dirops.Path) error {
	if m.DeleteEntryFunc != nil {
		return m.DeleteEntryFunc(p)
	}
	if m.Base != nil {
		return m.Base.DeleteEntry(p)
	}
	return dirops.NewPathError("delete", p, dirops.ErrIO, nil)
}

// Length mocks the Length method of the provider interface
func (m *MockFileSystem) Length(p dirops.Path) int64 {
	if m.LengthFunc != nil {
		return m.LengthFunc(p)
	}
	if m.Base != nil {
		return m.Base.Length(p)
	}
	return 0
}

// Rename mocks the Rename method of the provider interface
func (m *MockFileSystem) Rename(src, dst dirops.Path) error {
	if m.RenameFunc != nil {
		return m.RenameFunc(src, dst)
	}
	if m.Base != nil {
		return m.Base.Rename(src, dst)
	}
	return dirops.NewPathError("rename", src, dirops.ErrIO, nil)
}

// MockNativeFileSystem is a MockFileSystem that also offers native recursive
// creation and deletion. A nil function field delegates to Base when Base
// has the capability and fails with ErrIO otherwise.
type MockNativeFileSystem struct {
	MockFileSystem

	CreateDirectoriesFunc func(p dirops.Path) error
	DeleteTreeFunc        func(p dirops.Path) error
}

// CreateDirectories mocks dirops.RecursiveCreator
func (m *MockNativeFileSystem) CreateDirectories(p dirops.Path) error {
	if m.CreateDirectoriesFunc != nil {
		return m.CreateDirectoriesFunc(p)
	}
	if rc, ok := m.Base.(dirops.RecursiveCreator); ok {
		return rc.CreateDirectories(p)
	}
	return dirops.NewPathError("create directory", p, dirops.ErrIO, nil)
}

// DeleteTree mocks dirops.RecursiveDeleter
func (m *MockNativeFileSystem) DeleteTree(p dirops.Path) error {
	if m.DeleteTreeFunc != nil {
		return m.DeleteTreeFunc(p)
	}
	if rd, ok := m.Base.(dirops.RecursiveDeleter); ok {
		return rd.DeleteTree(p)
	}
	return dirops.NewPathError("delete", p, dirops.ErrIO, nil)
}

var (
	_ dirops.FileSystemProvider = (*MockFileSystem)(nil)
	_ dirops.RecursiveCreator   = (*MockNativeFileSystem)(nil)
	_ dirops.RecursiveDeleter   = (*MockNativeFileSystem)(nil)
)
