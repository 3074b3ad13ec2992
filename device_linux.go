//go:build linux

package msdk

import (
	"fmt"

	"golang.org/x/sys/unix"
)

type unixDevice struct{}

// DefaultDeviceOpener opens DRM nodes read-write with close-on-exec.
func DefaultDeviceOpener() DeviceOpener {
	return unixDevice{}
}

func (unixDevice) Open(path string) (int, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return -1, fmt.Errorf("open %s: %w", path, err)
	}
	return fd, nil
}

func (unixDevice) Close(fd int) error {
	if fd < 0 {
		return nil
	}
	return unix.Close(fd)
}
