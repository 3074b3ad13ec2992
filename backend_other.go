//go:build !linux

package msdk

import "fmt"

// The Media SDK runtime and the VA/DRM display stack only exist on Linux.
// Elsewhere every native call reports the capability as unavailable.

type unavailableRuntime struct{}

// DefaultRuntime returns a runtime whose calls all fail with StatusUnsupported.
func DefaultRuntime() Runtime {
	return unavailableRuntime{}
}

func runtimeFor([]string) Runtime {
	return unavailableRuntime{}
}

func (unavailableRuntime) Init(Implementation, Version) (Session, Status) {
	return 0, StatusUnsupported
}

func (unavailableRuntime) Close(Session) Status { return StatusUnsupported }

func (unavailableRuntime) QueryIMPL(Session) (Implementation, Status) {
	return 0, StatusUnsupported
}

func (unavailableRuntime) QueryVersion(Session) (Version, Status) {
	return Version{}, StatusUnsupported
}

func (unavailableRuntime) SetHandle(Session, HandleType, uintptr) Status {
	return StatusUnsupported
}

func (unavailableRuntime) LoadError() error {
	return fmt.Errorf("%w: Media SDK runtime requires linux", ErrUnavailable)
}

type unavailableDisplay struct{}

func displayLibraryFor(LibraryConfig) DisplayLibrary {
	return unavailableDisplay{}
}

func (unavailableDisplay) Bind() error {
	return fmt.Errorf("%w: VA display stack requires linux", ErrUnavailable)
}

func (unavailableDisplay) GetDisplayDRM(int) Display { return 0 }

func (unavailableDisplay) Initialize(Display) (int, int, VAStatus) { return 0, 0, VAStatus(-1) }

func (unavailableDisplay) Terminate(Display) VAStatus { return VAStatusSuccess }

type unavailableDevice struct{}

// DefaultDeviceOpener returns an opener that always fails.
func DefaultDeviceOpener() DeviceOpener {
	return unavailableDevice{}
}

func (unavailableDevice) Open(path string) (int, error) {
	return -1, fmt.Errorf("open %s: DRM devices require linux", path)
}

func (unavailableDevice) Close(int) error { return nil }
