//go:build linux

// VA display resolver: binds libva and libva-drm at runtime via purego so the
// package keeps working (software only) on machines without a VA stack.
//
// Library locations checked (in order):
//   - LIBVA_LIB_PATH environment variable (file or directory)
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

// Default library names, newest ABI first.
var (
	DefaultVALibraryNames    = []string{"libva.so.2", "libva.so.1"}
	DefaultVADRMLibraryNames = []string{"libva-drm.so.2", "libva-drm.so.1"}
)

type puregoLoader struct{}

func (puregoLoader) Dlopen(path string) (uintptr, error) {
	return purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
}

func (puregoLoader) Dlsym(handle uintptr, name string) (uintptr, error) {
	return purego.Dlsym(handle, name)
}

func (puregoLoader) Dlclose(handle uintptr) error {
	return purego.Dlclose(handle)
}

// VALibrary resolves vaInitialize, vaTerminate and vaGetDisplayDRM once per
// instance. A failed attempt is final: library availability does not change
// while the process runs.
type VALibrary struct {
	loader    dynamicLoader
	vaNames   []string
	drmNames  []string
	once      sync.Once
	bindErr   error
	vaHandle  uintptr
	drmHandle uintptr

	vaInitialize    func(dpy uintptr, major, minor uintptr) int32
	vaTerminate     func(dpy uintptr) int32
	vaGetDisplayDRM func(fd int32) uintptr
	vaErrorStr      func(status int32) uintptr
}

var (
	defaultVALibraryOnce sync.Once
	defaultVALibrary     *VALibrary

	vaLibraries sync.Map // joined names -> *VALibrary
)

// DefaultVALibrary returns the process-wide resolver using the default names.
func DefaultVALibrary() *VALibrary {
	defaultVALibraryOnce.Do(func() {
		defaultVALibrary = NewVALibrary(DefaultVALibraryNames, DefaultVADRMLibraryNames)
	})
	return defaultVALibrary
}

// NewVALibrary creates a resolver for the given candidate library names.
// Empty lists fall back to the defaults.
func NewVALibrary(vaNames, drmNames []string) *VALibrary {
	return newVALibrary(puregoLoader{}, vaNames, drmNames)
}

func newVALibrary(loader dynamicLoader, vaNames, drmNames []string) *VALibrary {
	if len(vaNames) == 0 {
		vaNames = DefaultVALibraryNames
	}
	if len(drmNames) == 0 {
		drmNames = DefaultVADRMLibraryNames
	}
	return &VALibrary{
		loader:   loader,
		vaNames:  vaNames,
		drmNames: drmNames,
	}
}

func displayLibraryFor(cfg LibraryConfig) DisplayLibrary {
	if len(cfg.VA) == 0 && len(cfg.VADRM) == 0 {
		return DefaultVALibrary()
	}
	key := strings.Join(cfg.VA, "\x00") + "\x01" + strings.Join(cfg.VADRM, "\x00")
	lib, _ := vaLibraries.LoadOrStore(key, NewVALibrary(cfg.VA, cfg.VADRM))
	return lib.(*VALibrary)
}

// Bind implements DisplayLibrary.
func (l *VALibrary) Bind() error {
	l.once.Do(func() {
		l.bindErr = l.bind()
	})
	return l.bindErr
}

// Available reports whether Bind succeeded.
func (l *VALibrary) Available() bool {
	return l.Bind() == nil
}

func (l *VALibrary) bind() (_err error) {
	defer func() {
		if _err != nil {
			l.unload()
		}
	}()

	var err error
	l.vaHandle, _, err = openFirst(l.loader, libraryCandidates(libvaPathEnv, l.vaNames))
	if err != nil {
		return fmt.Errorf("unable to load libva: %w", err)
	}
	l.drmHandle, _, err = openFirst(l.loader, libraryCandidates(libvaPathEnv, l.drmNames))
	if err != nil {
		return fmt.Errorf("unable to load libva-drm: %w", err)
	}

	symbols := []struct {
		handle uintptr
		name   string
		fn     any
	}{
		{l.vaHandle, "vaInitialize", &l.vaInitialize},
		{l.vaHandle, "vaTerminate", &l.vaTerminate},
		{l.drmHandle, "vaGetDisplayDRM", &l.vaGetDisplayDRM},
	}
	for _, sym := range symbols {
		addr, err := l.loader.Dlsym(sym.handle, sym.name)
		if err != nil || addr == 0 {
			return fmt.Errorf("%w: symbol %s not found: %v", ErrUnavailable, sym.name, err)
		}
		purego.RegisterFunc(sym.fn, addr)
	}

	// Optional, only used to enrich diagnostics.
	if addr, err := l.loader.Dlsym(l.vaHandle, "vaErrorStr"); err == nil && addr != 0 {
		purego.RegisterFunc(&l.vaErrorStr, addr)
	}

	return nil
}

func (l *VALibrary) unload() {
	if l.drmHandle != 0 {
		_ = l.loader.Dlclose(l.drmHandle)
		l.drmHandle = 0
	}
	if l.vaHandle != 0 {
		_ = l.loader.Dlclose(l.vaHandle)
		l.vaHandle = 0
	}
	l.vaInitialize = nil
	l.vaTerminate = nil
	l.vaGetDisplayDRM = nil
	l.vaErrorStr = nil
}

// GetDisplayDRM implements DisplayLibrary.
func (l *VALibrary) GetDisplayDRM(fd int) Display {
	if l.vaGetDisplayDRM == nil {
		return 0
	}
	return Display(l.vaGetDisplayDRM(int32(fd)))
}

// Initialize implements DisplayLibrary.
func (l *VALibrary) Initialize(dpy Display) (major, minor int, status VAStatus) {
	if l.vaInitialize == nil {
		return 0, 0, VAStatus(-1)
	}
	var maj, mnr int32
	s := l.vaInitialize(uintptr(dpy), uintptr(unsafe.Pointer(&maj)), uintptr(unsafe.Pointer(&mnr)))
	runtime.KeepAlive(&maj)
	runtime.KeepAlive(&mnr)
	return int(maj), int(mnr), VAStatus(s)
}

// Terminate implements DisplayLibrary.
func (l *VALibrary) Terminate(dpy Display) VAStatus {
	if l.vaTerminate == nil || dpy == 0 {
		return VAStatusSuccess
	}
	return VAStatus(l.vaTerminate(uintptr(dpy)))
}

// ErrorString returns libva's description of a status, if available.
func (l *VALibrary) ErrorString(status VAStatus) string {
	if l.vaErrorStr == nil {
		return fmt.Sprintf("VA status 0x%08x", uint32(status))
	}
	return goStringFromPtr(unsafe.Pointer(l.vaErrorStr(int32(status))))
}

var _ DisplayLibrary = (*VALibrary)(nil)
