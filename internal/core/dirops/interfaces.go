package dirops

// FileSystemProvider exposes single-entry primitives. Implementations never
// recurse; Service builds every recursive algorithm on top of them.
type FileSystemProvider interface {
	// Exists reports whether any entry is at p. Symbolic links are not followed.
	Exists(p Path) bool
	// Kind returns the kind of the entry at p without following symbolic links.
	Kind(p Path) EntryKind
	// TargetKind returns the kind of the entry p resolves to, following
	// symbolic links. A dangling link is NonExistent.
	TargetKind(p Path) EntryKind
	// ListChildren returns the immediate children of the directory p resolves
	// to. It returns nothing for non-directories and unreadable directories.
	ListChildren(p Path) []Path
	// CreateDirectory creates exactly one directory. It fails with
	// ErrAlreadyExists if any entry is already at p and with ErrIO otherwise.
	CreateDirectory(p Path) error
	// DeleteEntry removes exactly one entry. It is a no-op if nothing is at p,
	// fails with ErrNotEmpty for a non-empty directory and with ErrIO otherwise.
	DeleteEntry(p Path) error
	// Length returns the size in bytes of the entry p resolves to, 0 if absent.
	Length(p Path) int64
	// Rename atomically moves src to dst, replacing dst if it is a file.
	// It fails with ErrCrossDevice when src and dst are on different devices.
	Rename(src, dst Path) error
}

// RecursiveCreator is implemented by providers with a native "mkdir -p".
type RecursiveCreator interface {
	CreateDirectories(p Path) error
}

// RecursiveDeleter is implemented by providers with a native "rm -rf".
type RecursiveDeleter interface {
	DeleteTree(p Path) error
}
