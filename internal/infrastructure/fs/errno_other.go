//go:build !unix && !windows

package fs

// No errno classification is available; failures are reported as ErrIO.
func isNotEmpty(err error) bool {
	return false
}

func isCrossDevice(err error) bool {
	return false
}
