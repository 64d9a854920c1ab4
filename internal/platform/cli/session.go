package cli

import (
	"io"
	"path/filepath"

	"github.com/nickalie/dirkit/internal/core/dirops"
	"github.com/nickalie/dirkit/internal/logging"
)

// Usage is the recursive size of one path.
type Usage struct {
	Path  string
	Bytes int64
}

// Session runs directory operations for command-line arguments.
// Operations over several paths stop at the first failure.
type Session struct {
	service *dirops.Service
	closer  io.Closer
	logger  logging.Logger
	local   bool
}

// NewSession creates a session over an existing service. Relative arguments
// are resolved against the working directory when local is true.
func NewSession(service *dirops.Service, logger logging.Logger, local bool) *Session {
	return &Session{service: service, logger: logger, local: local}
}

// Service returns the underlying directory service.
func (s *Session) Service() *dirops.Service {
	return s.service
}

// Logger returns the session logger.
func (s *Session) Logger() logging.Logger {
	return s.logger
}

// Close releases the provider connection, if any.
func (s *Session) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// Resolve turns a command-line argument into the path handed to the service.
// Remote paths are passed through unchanged and must already be absolute.
func (s *Session) Resolve(arg string) (string, error) {
	if !s.local || arg == "" || filepath.IsAbs(arg) {
		return arg, nil
	}
	return filepath.Abs(arg)
}

// Mkdirp creates every path together with its missing parents.
func (s *Session) Mkdirp(paths ...string) error {
	return s.each(paths, s.service.CreateAll)
}

// Mkdir creates every path, each exactly one level deep.
func (s *Session) Mkdir(paths ...string) error {
	return s.each(paths, s.service.Mkdir)
}

// Rmf deletes files and empty directories.
func (s *Session) Rmf(paths ...string) error {
	return s.each(paths, s.service.DeleteNonRecursive)
}

// Rmrf deletes every path recursively.
func (s *Session) Rmrf(paths ...string) error {
	return s.each(paths, s.service.DeleteRecursive)
}

// Rmrfq deletes every path recursively, ignoring all failures.
func (s *Session) Rmrfq(paths ...string) {
	for _, arg := range paths {
		p, err := s.Resolve(arg)
		if err != nil {
			s.logger.Verbose("Ignoring: %v", err)
			continue
		}
		s.service.DeleteRecursiveQuietly(p)
	}
}

// Usage returns the recursive size of every path, in argument order.
func (s *Session) Usage(paths ...string) ([]Usage, error) {
	result := make([]Usage, 0, len(paths))
	err := s.each(paths, func(p string) error {
		size, err := s.service.CalculateLengthRecursively(p)
		if err != nil {
			return err
		}
		result = append(result, Usage{Path: p, Bytes: size})
		return nil
	})
	return result, err
}

// Move renames src to dst.
func (s *Session) Move(src, dst string) error {
	from, err := s.Resolve(src)
	if err != nil {
		return err
	}
	to, err := s.Resolve(dst)
	if err != nil {
		return err
	}
	return s.service.Rename(from, to)
}

func (s *Session) each(paths []string, op func(string) error) error {
	for _, arg := range paths {
		p, err := s.Resolve(arg)
		if err != nil {
			return err
		}
		if err := op(p); err != nil {
			return err
		}
	}
	return nil
}
