package msdk

import "errors"

// Common errors
var (
	// ErrUnavailable means a capability (runtime, library, symbol, display
	// stack) is not present. Callers fall back to software or report upstream.
	ErrUnavailable = errors.New("hardware acceleration unavailable")

	ErrDeviceOpen        = errors.New("unable to open DRM device")
	ErrDisplay           = errors.New("VA display binding failed")
	ErrNoFreeSurface     = errors.New("no free surface available")
	ErrUnsupportedFormat = errors.New("unsupported pixel format")
	ErrInvalidPlane      = errors.New("invalid plane geometry")
	ErrInvalidProfile    = errors.New("invalid VP8 profile")
	ErrContextClosed     = errors.New("context closed")
	ErrFrameSize         = errors.New("frame size does not match encoder configuration")
)

// Session is an opaque handle to an initialized runtime session (mfxSession).
// The zero value means "no session".
type Session uintptr

// Valid reports whether the handle refers to an opened session.
func (s Session) Valid() bool { return s != 0 }

// Runtime is the accelerator API as seen by the session manager and the
// device binding. The production implementation calls into libmfx; tests
// substitute a fake.
type Runtime interface {
	// Init opens a session (MFXInit).
	Init(impl Implementation, version Version) (Session, Status)

	// Close closes a session (MFXClose).
	Close(session Session) Status

	// QueryIMPL returns the implementation actually selected (MFXQueryIMPL).
	QueryIMPL(session Session) (Implementation, Status)

	// QueryVersion returns the runtime API version (MFXQueryVersion).
	QueryVersion(session Session) (Version, Status)

	// SetHandle attaches an external handle to the session (MFXVideoCORE_SetHandle).
	SetHandle(session Session, handleType HandleType, handle uintptr) Status
}

// RuntimeLoadError is implemented by runtimes that can report why their
// native library failed to load.
type RuntimeLoadError interface {
	LoadError() error
}
