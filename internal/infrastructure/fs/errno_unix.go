//go:build unix

package fs

import (
	"errors"

	"golang.org/x/sys/unix"
)

// Some systems report a non-empty directory to rmdir as EEXIST.
func isNotEmpty(err error) bool {
	return errors.Is(err, unix.ENOTEMPTY) || errors.Is(err, unix.EEXIST)
}

func isCrossDevice(err error) bool {
	return errors.Is(err, unix.EXDEV)
}
