package msdk

// Display is an opaque VADisplay pointer. Zero means absent.
type Display uintptr

// DisplayLibrary is the optional platform display stack (libva + libva-drm).
// It is a capability: Bind reports whether the entry points could be
// resolved, and the remaining methods are only valid after a successful Bind.
type DisplayLibrary interface {
	// Bind resolves the library entry points. Subsequent calls return the
	// result of the first attempt.
	Bind() error

	// GetDisplayDRM returns a display for an opened DRM fd (vaGetDisplayDRM).
	GetDisplayDRM(fd int) Display

	// Initialize performs the version handshake (vaInitialize).
	Initialize(dpy Display) (major, minor int, status VAStatus)

	// Terminate releases the display (vaTerminate).
	Terminate(dpy Display) VAStatus
}

// dynamicLoader is the subset of the dynamic linker the resolver needs.
type dynamicLoader interface {
	Dlopen(path string) (uintptr, error)
	Dlsym(handle uintptr, name string) (uintptr, error)
	Dlclose(handle uintptr) error
}
