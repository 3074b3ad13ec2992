package msdk

import (
	"path/filepath"
	"sort"
)

// FallbackDevicePath is used when discovery finds no DRM node.
const FallbackDevicePath = "/dev/dri/card0"

// DeviceOpener acquires and releases the OS-level descriptor of a DRM node.
type DeviceOpener interface {
	Open(path string) (fd int, err error)
	Close(fd int) error
}

// driDir is a variable so tests can point discovery at a temp directory.
var driDir = "/dev/dri"

// DiscoverDevicePaths lists DRM nodes usable for a VA display: render nodes
// first (they need no DRM master), then primary card nodes.
func DiscoverDevicePaths() []string {
	var paths []string
	for _, pattern := range []string{"renderD*", "card*"} {
		matches, err := filepath.Glob(filepath.Join(driDir, pattern))
		if err != nil {
			continue
		}
		sort.Strings(matches)
		paths = append(paths, matches...)
	}
	return paths
}

// ResolveDevicePath returns the configured path if set, otherwise the first
// discovered node, otherwise FallbackDevicePath.
func ResolveDevicePath(configured string) string {
	if configured != "" {
		return configured
	}
	if paths := DiscoverDevicePaths(); len(paths) > 0 {
		return paths[0]
	}
	return FallbackDevicePath
}
