// Shared utilities for the dynamically loaded native libraries.

package msdk

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unsafe"
)

// libraryCandidates expands library names into the paths tried by Dlopen.
// An environment variable may point either at a file or at a directory
// holding the library; bare names are left for the system loader to resolve.
func libraryCandidates(envVar string, names []string) []string {
	var paths []string

	if envPath := os.Getenv(envVar); envPath != "" {
		if fi, err := os.Stat(envPath); err == nil && fi.IsDir() {
			for _, name := range names {
				paths = append(paths, filepath.Join(envPath, filepath.Base(name)))
			}
		} else {
			paths = append(paths, envPath)
		}
	}

	paths = append(paths, names...)

	// Common install prefixes that are not always in the loader path
	for _, dir := range []string{
		"/usr/local/lib",
		"/usr/lib/x86_64-linux-gnu",
		"/opt/intel/mediasdk/lib",
		"/opt/intel/mediasdk/lib64",
	} {
		for _, name := range names {
			if filepath.IsAbs(name) {
				continue
			}
			paths = append(paths, filepath.Join(dir, name))
		}
	}

	return paths
}

// openFirst opens the first loadable candidate.
func openFirst(loader dynamicLoader, candidates []string) (handle uintptr, path string, err error) {
	var lastErr error
	for _, candidate := range candidates {
		h, err := loader.Dlopen(candidate)
		if err == nil {
			return h, candidate, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = errors.New("no candidates")
	}
	return 0, "", fmt.Errorf("%w: %v", ErrUnavailable, lastErr)
}

// goStringFromPtr converts a NUL-terminated C string to a Go string.
func goStringFromPtr(p unsafe.Pointer) string {
	if p == nil {
		return ""
	}
	var length int
	for *(*byte)(unsafe.Add(p, length)) != 0 {
		length++
	}
	return string(unsafe.Slice((*byte)(p), length))
}
