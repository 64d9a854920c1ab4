package dirops

import (
	"errors"
	"io/fs"

	"github.com/nickalie/dirkit/internal/logging"
)

// Service runs directory operations against a single provider.
// It holds no mutable state and may be shared between goroutines.
type Service struct {
	fs     FileSystemProvider
	logger logging.Logger
}

// ServiceOption defines functional options for Service
type ServiceOption func(*Service)

// WithLogger sets the logger used for diagnostics and for failures
// swallowed by DeleteRecursiveQuietly.
func WithLogger(logger logging.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService creates a service that performs every operation through provider.
func NewService(provider FileSystemProvider, opts ...ServiceOption) *Service {
	service := &Service{
		fs:     provider,
		logger: logging.NewNullLogger(),
	}

	for _, opt := range opts {
		opt(service)
	}

	return service
}

// Provider returns the provider the service operates on.
func (s *Service) Provider() FileSystemProvider {
	return s.fs
}

// CreateAll creates path and every missing parent ("mkdir -p").
//
// If an existing entry along the way is not a directory, CreateAll fails with
// ErrPathBlocked naming that entry, before anything is created. Directories
// created before a later failure are left in place.
func (s *Service) CreateAll(path string) error {
	p, err := ParsePath(path)
	if err != nil {
		return err
	}

	missing, err := s.missingLevels(p)
	if err != nil {
		return err
	}
	if len(missing) == 0 {
		return nil
	}

	if rc, ok := s.fs.(RecursiveCreator); ok {
		s.logger.Verbose("Creating directories '%s'", p)
		if err := rc.CreateDirectories(p); err != nil {
			return s.settleCreate(p, err)
		}
		return nil
	}

	for i := len(missing) - 1; i >= 0; i-- {
		s.logger.Verbose("Creating directory '%s'", missing[i])
		if err := s.fs.CreateDirectory(missing[i]); err != nil {
			if err := s.settleCreate(missing[i], err); err != nil {
				return err
			}
		}
	}

	return nil
}

// Mkdir creates exactly one directory. It is a no-op if the directory exists
// and fails if the parent is missing.
func (s *Service) Mkdir(path string) error {
	p, err := ParsePath(path)
	if err != nil {
		return err
	}

	switch kind := s.resolvedKind(p); kind {
	case Directory:
		return nil
	case File, Other:
		return blocked("create directory", p, kind)
	}

	s.logger.Verbose("Creating directory '%s'", p)
	if err := s.fs.CreateDirectory(p); err != nil {
		return s.settleCreate(p, err)
	}
	return nil
}

// DeleteNonRecursive deletes a file or an empty directory ("rm -f").
// It does nothing if path does not exist and never descends into children.
func (s *Service) DeleteNonRecursive(path string) error {
	p, err := ParsePath(path)
	if err != nil {
		return err
	}

	if !s.fs.Exists(p) {
		return nil
	}

	s.logger.Verbose("Deleting '%s'", p)
	if err := s.fs.DeleteEntry(p); err != nil {
		return ensurePathError("delete", p, err)
	}
	return nil
}

// DeleteRecursive deletes path and everything below it ("rm -rf").
// The first failure stops the operation and is returned; entries deleted
// before it stay deleted.
func (s *Service) DeleteRecursive(path string) error {
	p, err := ParsePath(path)
	if err != nil {
		return err
	}

	return s.deleteTree(p, func(err error) error {
		return err
	})
}

// DeleteRecursiveQuietly behaves like DeleteRecursive but never fails:
// every error is logged and the deletion continues with the remaining entries.
func (s *Service) DeleteRecursiveQuietly(path string) {
	p, err := ParsePath(path)
	if err != nil {
		s.logger.Verbose("Ignoring: %v", err)
		return
	}

	_ = s.deleteTree(p, func(err error) error {
		s.logger.Verbose("Ignoring: %v", err)
		return nil
	})
}

// CalculateLengthRecursively returns the size of path in bytes. A directory
// counts DirectoryOverhead plus the sizes of its children; a missing entry
// counts 0. The only possible error is an invalid path.
func (s *Service) CalculateLengthRecursively(path string) (int64, error) {
	p, err := ParsePath(path)
	if err != nil {
		return 0, err
	}
	return s.lengthOf(p), nil
}

// Rename atomically moves src to dst. Moving between devices is not supported.
func (s *Service) Rename(src, dst string) error {
	from, err := ParsePath(src)
	if err != nil {
		return err
	}
	to, err := ParsePath(dst)
	if err != nil {
		return err
	}

	if from == to {
		return nil
	}
	if !s.fs.Exists(from) {
		return NewPathError("rename", from, ErrIO, fs.ErrNotExist)
	}

	s.logger.Verbose("Renaming '%s' to '%s'", from, to)
	if err := s.fs.Rename(from, to); err != nil {
		return ensurePathError("rename", from, err)
	}
	return nil
}

// missingLevels walks from p up to the nearest existing directory and returns
// the levels that do not exist yet, deepest first. Links to directories count
// as directories.
func (s *Service) missingLevels(p Path) ([]Path, error) {
	var missing []Path
	for cur := p; ; cur = cur.Parent() {
		switch kind := s.resolvedKind(cur); kind {
		case Directory:
			return missing, nil
		case NonExistent:
			missing = append(missing, cur)
			if cur.IsRoot() {
				return missing, nil
			}
		default:
			return nil, blocked("create directory", cur, kind)
		}
	}
}

// settleCreate decides the outcome of a failed create. A directory that is
// present afterwards counts as created, whoever created it.
func (s *Service) settleCreate(p Path, cause error) error {
	switch kind := s.resolvedKind(p); kind {
	case Directory:
		s.logger.Verbose("Directory '%s' already exists", p)
		return nil
	case File, Other:
		return blocked("create directory", p, kind)
	}

	if _, err := s.missingLevels(p); err != nil {
		return err
	}
	if errors.Is(cause, ErrAlreadyExists) {
		return NewPathError("create directory", p, ErrIO, cause)
	}
	return ensurePathError("create directory", p, cause)
}

func (s *Service) deleteTree(p Path, handle func(error) error) error {
	if rd, ok := s.fs.(RecursiveDeleter); ok {
		s.logger.Verbose("Deleting tree '%s'", p)
		err := rd.DeleteTree(p)
		if err == nil {
			return nil
		}
		if err := handle(ensurePathError("delete", p, err)); err != nil {
			return err
		}
	}
	return s.walkDelete(p, handle)
}

// walkDelete deletes children before their parent. handle decides whether a
// failure stops the walk (non-nil result) or is skipped.
// Links are removed themselves and never descended.
func (s *Service) walkDelete(p Path, handle func(error) error) error {
	switch s.fs.Kind(p) {
	case NonExistent:
		return nil
	case Directory:
		for _, child := range s.fs.ListChildren(p) {
			if err := s.walkDelete(child, handle); err != nil {
				return err
			}
		}
	}

	s.logger.Verbose("Deleting '%s'", p)
	if err := s.fs.DeleteEntry(p); err != nil {
		return handle(ensurePathError("delete", p, err))
	}
	return nil
}

// resolvedKind classifies what p resolves to. A link pointing nowhere is
// reported by its own kind so it still blocks creation.
func (s *Service) resolvedKind(p Path) EntryKind {
	if kind := s.fs.TargetKind(p); kind != NonExistent {
		return kind
	}
	return s.fs.Kind(p)
}

// lengthOf follows links. Cycles are not detected.
func (s *Service) lengthOf(p Path) int64 {
	switch s.fs.TargetKind(p) {
	case File:
		return s.fs.Length(p)
	case Directory:
		total := DirectoryOverhead
		for _, child := range s.fs.ListChildren(p) {
			total += s.lengthOf(child)
		}
		return total
	default:
		return 0
	}
}

// ensurePathError keeps provider errors that already carry a kind and wraps
// anything else as ErrIO.
func ensurePathError(op string, p Path, err error) error {
	var pe *PathError
	if errors.As(err, &pe) {
		return err
	}
	return NewPathError(op, p, ErrIO, err)
}
