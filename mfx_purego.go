//go:build linux

// Accelerator runtime binding: loads the Media SDK dispatcher (libmfx) or its
// oneVPL successor (libvpl) with purego.
//
// Library locations checked (in order):
//   - MSDK_LIB_PATH environment variable (file or directory)
//   - configured/default library names through the system loader
//   - common install prefixes

package msdk

import (
	"fmt"
	"runtime"
	"strings"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
)

// DefaultMFXLibraryNames are tried in order when no names are configured.
var DefaultMFXLibraryNames = []string{"libmfx.so.1", "libmfx.so", "libvpl.so.2"}

// mfxRuntime implements Runtime on top of the dispatcher library.
type mfxRuntime struct {
	loader  dynamicLoader
	names   []string
	once    sync.Once
	loadErr error
	handle  uintptr
	path    string

	mfxInit         func(impl int32, ver uintptr, session uintptr) int32
	mfxClose        func(session uintptr) int32
	mfxQueryIMPL    func(session uintptr, impl uintptr) int32
	mfxQueryVersion func(session uintptr, ver uintptr) int32
	mfxSetHandle    func(session uintptr, handleType int32, hdl uintptr) int32
}

var mfxRuntimes sync.Map // joined names -> *mfxRuntime

// DefaultRuntime returns the shared runtime for the default library names.
func DefaultRuntime() Runtime {
	return runtimeFor(nil)
}

func runtimeFor(names []string) Runtime {
	if len(names) == 0 {
		names = DefaultMFXLibraryNames
	}
	key := strings.Join(names, "\x00")
	if rt, ok := mfxRuntimes.Load(key); ok {
		return rt.(*mfxRuntime)
	}
	rt, _ := mfxRuntimes.LoadOrStore(key, &mfxRuntime{loader: puregoLoader{}, names: names})
	return rt.(*mfxRuntime)
}

func (r *mfxRuntime) load() error {
	r.once.Do(func() {
		r.loadErr = r.loadLib()
	})
	return r.loadErr
}

func (r *mfxRuntime) loadLib() error {
	handle, path, err := openFirst(r.loader, libraryCandidates(mfxPathEnv, r.names))
	if err != nil {
		return fmt.Errorf("unable to load the Media SDK dispatcher: %w", err)
	}

	symbols := []struct {
		name string
		fn   any
	}{
		{"MFXInit", &r.mfxInit},
		{"MFXClose", &r.mfxClose},
		{"MFXQueryIMPL", &r.mfxQueryIMPL},
		{"MFXQueryVersion", &r.mfxQueryVersion},
		{"MFXVideoCORE_SetHandle", &r.mfxSetHandle},
	}
	for _, sym := range symbols {
		addr, err := r.loader.Dlsym(handle, sym.name)
		if err != nil || addr == 0 {
			_ = r.loader.Dlclose(handle)
			return fmt.Errorf("%w: %s: symbol %s not found: %v", ErrUnavailable, path, sym.name, err)
		}
		purego.RegisterFunc(sym.fn, addr)
	}

	r.handle = handle
	r.path = path
	return nil
}

// LoadError implements RuntimeLoadError.
func (r *mfxRuntime) LoadError() error {
	return r.load()
}

// Init implements Runtime.
func (r *mfxRuntime) Init(impl Implementation, version Version) (Session, Status) {
	if r.load() != nil {
		return 0, StatusUnsupported
	}
	ver := version
	var session uintptr
	status := r.mfxInit(int32(impl), uintptr(unsafe.Pointer(&ver)), uintptr(unsafe.Pointer(&session)))
	runtime.KeepAlive(&ver)
	runtime.KeepAlive(&session)
	return Session(session), Status(status)
}

// Close implements Runtime.
func (r *mfxRuntime) Close(session Session) Status {
	if r.load() != nil {
		return StatusUnsupported
	}
	return Status(r.mfxClose(uintptr(session)))
}

// QueryIMPL implements Runtime.
func (r *mfxRuntime) QueryIMPL(session Session) (Implementation, Status) {
	if r.load() != nil {
		return 0, StatusUnsupported
	}
	var impl int32
	status := r.mfxQueryIMPL(uintptr(session), uintptr(unsafe.Pointer(&impl)))
	runtime.KeepAlive(&impl)
	return Implementation(impl), Status(status)
}

// QueryVersion implements Runtime.
func (r *mfxRuntime) QueryVersion(session Session) (Version, Status) {
	if r.load() != nil {
		return Version{}, StatusUnsupported
	}
	var ver Version
	status := r.mfxQueryVersion(uintptr(session), uintptr(unsafe.Pointer(&ver)))
	runtime.KeepAlive(&ver)
	return ver, Status(status)
}

// SetHandle implements Runtime.
func (r *mfxRuntime) SetHandle(session Session, handleType HandleType, handle uintptr) Status {
	if r.load() != nil {
		return StatusUnsupported
	}
	return Status(r.mfxSetHandle(uintptr(session), int32(handleType), handle))
}

var _ Runtime = (*mfxRuntime)(nil)
