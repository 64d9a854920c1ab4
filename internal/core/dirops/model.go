// Package dirops provides recursive directory operations built on a pluggable
// file-system provider.
package dirops

import (
	"path/filepath"
)

// DirectoryOverhead is the size attributed to every directory entry by
// CalculateLengthRecursively, on top of the sizes of its children.
const DirectoryOverhead int64 = 4096

// Path is a cleaned, absolute location in a file-system tree.
// The zero value is not a valid path; use ParsePath.
type Path struct {
	p string
}

// ParsePath validates that s is absolute and returns it as a Path.
func ParsePath(s string) (Path, error) {
	if s == "" || !filepath.IsAbs(s) {
		return Path{}, &PathError{Op: "parse", Path: s, Kind: ErrInvalidArgument, Cause: errMustBeAbsolute}
	}
	return Path{p: filepath.Clean(s)}, nil
}

// MustParsePath is like ParsePath but panics on invalid input.
func MustParsePath(s string) Path {
	p, err := ParsePath(s)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the path as a string.
func (p Path) String() string {
	return p.p
}

// Base returns the last element of the path.
func (p Path) Base() string {
	return filepath.Base(p.p)
}

// IsRoot reports whether p is a file-system root.
func (p Path) IsRoot() bool {
	return filepath.Dir(p.p) == p.p
}

// Parent returns the directory containing p. The parent of a root is the root itself.
func (p Path) Parent() Path {
	return Path{p: filepath.Dir(p.p)}
}

// Join returns the child of p with the given name.
func (p Path) Join(name string) Path {
	return Path{p: filepath.Join(p.p, name)}
}

// EntryKind classifies what lives at a path.
type EntryKind int

const (
	// NonExistent means nothing is at the path.
	NonExistent EntryKind = iota
	// File is a regular file.
	File
	// Directory is a directory.
	Directory
	// Other is anything else. Kind reports symbolic links as Other.
	Other
)

// String returns a human-readable name of the kind.
func (k EntryKind) String() string {
	switch k {
	case NonExistent:
		return "non-existent"
	case File:
		return "file"
	case Directory:
		return "directory"
	default:
		return "other"
	}
}
