// Package dirkit provides recursive directory operations ("mkdir -p",
// "rm -f", "rm -rf", recursive size) on top of a replaceable file-system
// provider. Package-level functions run against a process-wide provider,
// the modern local provider unless SetProvider installs another one. Code
// that needs several providers at once should build its own Service.
package dirkit

import (
	"sync/atomic"

	"github.com/nickalie/dirkit/internal/config"
	"github.com/nickalie/dirkit/internal/core/dirops"
	"github.com/nickalie/dirkit/internal/core/target"
	"github.com/nickalie/dirkit/internal/infrastructure/fs"
	"github.com/nickalie/dirkit/internal/infrastructure/sftp"
	"github.com/nickalie/dirkit/internal/logging"
)

// FileSystemProvider is the set of primitives every provider implements.
type FileSystemProvider = dirops.FileSystemProvider

// Service runs directory operations against a single provider.
type Service = dirops.Service

// ServiceOption configures a Service.
type ServiceOption = dirops.ServiceOption

// Path is a validated absolute path.
type Path = dirops.Path

// EntryKind classifies what lives at a path.
type EntryKind = dirops.EntryKind

// PathError records a failed operation and the path that caused it.
type PathError = dirops.PathError

// Logger receives diagnostics from a Service.
type Logger = logging.Logger

// Target describes a remote host reached over SFTP.
type Target = target.Target

// Config represents a dirkit configuration file.
type Config = config.Config

// Builder constructs a configuration in code.
type Builder = config.Builder

// Entry kinds.
const (
	NonExistent = dirops.NonExistent
	File        = dirops.File
	Directory   = dirops.Directory
	Other       = dirops.Other
)

// DirectoryOverhead is the size counted for every directory.
const DirectoryOverhead = dirops.DirectoryOverhead

// Error kinds, matched with errors.Is.
var (
	ErrInvalidArgument = dirops.ErrInvalidArgument
	ErrPathBlocked     = dirops.ErrPathBlocked
	ErrAlreadyExists   = dirops.ErrAlreadyExists
	ErrNotEmpty        = dirops.ErrNotEmpty
	ErrIO              = dirops.ErrIO
	ErrCrossDevice     = dirops.ErrCrossDevice
)

var current atomic.Pointer[dirops.Service]

func init() {
	current.Store(dirops.NewService(fs.NewModernFileSystem()))
}

// Provider returns the provider used by the package-level functions.
func Provider() FileSystemProvider {
	return current.Load().Provider()
}

// SetProvider replaces the provider used by the package-level functions.
// Operations already running keep the provider they started with.
// A nil provider restores the modern local provider.
func SetProvider(provider FileSystemProvider, opts ...ServiceOption) {
	if provider == nil {
		provider = fs.NewModernFileSystem()
	}
	current.Store(dirops.NewService(provider, opts...))
}

// NewService creates an independent service over provider.
func NewService(provider FileSystemProvider, opts ...ServiceOption) *Service {
	return dirops.NewService(provider, opts...)
}

// WithLogger sets the logger a Service reports to.
func WithLogger(logger Logger) ServiceOption {
	return dirops.WithLogger(logger)
}

// NewConsoleLogger creates a logger writing to stderr.
func NewConsoleLogger(verbose bool) Logger {
	return logging.NewConsoleLogger(verbose)
}

// NewNaiveFileSystem creates a provider that maps each primitive onto the
// simplest OS call and checks before acting.
func NewNaiveFileSystem() FileSystemProvider {
	return fs.NewNaiveFileSystem()
}

// NewModernFileSystem creates a provider that relies on OS error reporting
// and native recursive creation and removal.
func NewModernFileSystem() FileSystemProvider {
	return fs.NewModernFileSystem()
}

// RemoteFileSystem is a provider holding a network connection.
type RemoteFileSystem interface {
	FileSystemProvider
	Close() error
}

// DialSFTP connects to tgt and returns a provider for its file system.
// The returned provider must be closed when no longer needed.
func DialSFTP(tgt *Target) (RemoteFileSystem, error) {
	fsys, err := sftp.Dial(tgt)
	if err != nil {
		return nil, err
	}
	return fsys, nil
}

// ParsePath validates that s is an absolute path.
func ParsePath(s string) (Path, error) {
	return dirops.ParsePath(s)
}

// LoadConfig loads a configuration file.
func LoadConfig(configPath string) (*Config, error) {
	return config.NewLoader().Load(configPath)
}

// NewBuilder creates a configuration builder.
func NewBuilder() *Builder {
	return config.NewBuilder()
}

// Mkdirp creates path and every missing parent.
func Mkdirp(path string) error {
	return current.Load().CreateAll(path)
}

// Mkdir creates exactly one directory.
func Mkdir(path string) error {
	return current.Load().Mkdir(path)
}

// Rmf deletes a file or an empty directory. A missing path is not an error.
func Rmf(path string) error {
	return current.Load().DeleteNonRecursive(path)
}

// Rmrf deletes path and everything below it, stopping at the first failure.
func Rmrf(path string) error {
	return current.Load().DeleteRecursive(path)
}

// Rmrfq deletes as much of path as possible and never fails.
func Rmrfq(path string) {
	current.Load().DeleteRecursiveQuietly(path)
}

// CalculateLengthRecursively returns the size of path, counting
// DirectoryOverhead bytes for every directory.
func CalculateLengthRecursively(path string) (int64, error) {
	return current.Load().CalculateLengthRecursively(path)
}

// Rename atomically moves src to dst on the same device.
func Rename(src, dst string) error {
	return current.Load().Rename(src, dst)
}
