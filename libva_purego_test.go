//go:build linux

package msdk

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLoader resolves a fixed set of libraries and symbols. Symbol addresses
// are never called.
type fakeLoader struct {
	mu      sync.Mutex
	libs    map[string]uintptr
	symbols map[string]uintptr
	opened  []string
	closed  []uintptr
}

func newFakeLoader() *fakeLoader {
	return &fakeLoader{
		libs: map[string]uintptr{
			"libva.so.2":     0x100,
			"libva-drm.so.2": 0x200,
		},
		symbols: map[string]uintptr{
			"vaInitialize":    0x1001,
			"vaTerminate":     0x1002,
			"vaGetDisplayDRM": 0x2001,
		},
	}
}

func (l *fakeLoader) Dlopen(path string) (uintptr, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.opened = append(l.opened, path)
	if h, ok := l.libs[path]; ok {
		return h, nil
	}
	return 0, fmt.Errorf("%s: cannot open shared object file", path)
}

func (l *fakeLoader) Dlsym(_ uintptr, name string) (uintptr, error) {
	if addr, ok := l.symbols[name]; ok {
		return addr, nil
	}
	return 0, fmt.Errorf("undefined symbol: %s", name)
}

func (l *fakeLoader) Dlclose(handle uintptr) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = append(l.closed, handle)
	return nil
}

func (l *fakeLoader) openCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.opened)
}

func TestVALibrary_Bind(t *testing.T) {
	t.Setenv(libvaPathEnv, "")
	loader := newFakeLoader()
	lib := newVALibrary(loader, nil, nil)

	require.NoError(t, lib.Bind())
	assert.True(t, lib.Available())
	assert.Equal(t, []string{"libva.so.2", "libva-drm.so.2"}, loader.opened)
	assert.NotNil(t, lib.vaInitialize)
	assert.NotNil(t, lib.vaTerminate)
	assert.NotNil(t, lib.vaGetDisplayDRM)
	assert.Nil(t, lib.vaErrorStr)
	assert.Empty(t, loader.closed)
}

func TestVALibrary_FallsBackToOlderABI(t *testing.T) {
	t.Setenv(libvaPathEnv, "")
	loader := newFakeLoader()
	loader.libs = map[string]uintptr{"libva.so.1": 0x110, "libva-drm.so.1": 0x210}
	lib := newVALibrary(loader, nil, nil)

	require.NoError(t, lib.Bind())
	assert.Equal(t, []string{"libva.so.2", "libva.so.1", "libva-drm.so.2", "libva-drm.so.1"}, loader.opened)
}

func TestVALibrary_MissingLibraryIsTerminal(t *testing.T) {
	t.Setenv(libvaPathEnv, "")
	loader := newFakeLoader()
	delete(loader.libs, "libva-drm.so.2")
	lib := newVALibrary(loader, nil, nil)

	err := lib.Bind()
	require.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, []uintptr{0x100}, loader.closed)
	assert.Nil(t, lib.vaGetDisplayDRM)

	opens := loader.openCount()
	loader.libs["libva-drm.so.2"] = 0x200
	assert.Equal(t, err, lib.Bind())
	assert.False(t, lib.Available())
	assert.Equal(t, opens, loader.openCount())
}

func TestVALibrary_FailedBindLeavesSoftwareContexts(t *testing.T) {
	t.Setenv(libvaPathEnv, "")
	loader := newFakeLoader()
	loader.libs = map[string]uintptr{}
	lib := newVALibrary(loader, nil, nil)

	bindErr := lib.Bind()
	require.ErrorIs(t, bindErr, ErrUnavailable)
	opens := loader.openCount()

	rt := newMockRuntime(t)
	for i := 0; i < 3; i++ {
		rt.expectOpen(ImplSoftware, testSession)
		rt.On("Close", testSession).Return(StatusNone).Once()

		c, err := OpenContext(context.Background(), DefaultConfig(), WithRuntime(rt), WithDisplayLibrary(lib))
		require.NoError(t, err, "cycle %d", i)
		assert.Equal(t, testSession, c.Session(), "cycle %d", i)
		assert.Zero(t, c.Display(), "cycle %d", i)
		require.NoError(t, c.Close(context.Background()), "cycle %d", i)
	}

	assert.Equal(t, opens, loader.openCount())
	assert.Equal(t, bindErr, lib.Bind())
}

func TestVALibrary_MissingSymbol(t *testing.T) {
	t.Setenv(libvaPathEnv, "")
	loader := newFakeLoader()
	delete(loader.symbols, "vaGetDisplayDRM")
	lib := newVALibrary(loader, nil, nil)

	err := lib.Bind()
	require.ErrorIs(t, err, ErrUnavailable)
	assert.Contains(t, err.Error(), "vaGetDisplayDRM")
	assert.ElementsMatch(t, []uintptr{0x100, 0x200}, loader.closed)
	assert.Nil(t, lib.vaInitialize)
}

func TestVALibrary_ConcurrentBind(t *testing.T) {
	t.Setenv(libvaPathEnv, "")
	loader := newFakeLoader()
	lib := newVALibrary(loader, nil, nil)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, lib.Bind())
		}()
	}
	wg.Wait()
	assert.Equal(t, 2, loader.openCount())
}

func TestVALibrary_UnboundCalls(t *testing.T) {
	lib := newVALibrary(newFakeLoader(), nil, nil)
	assert.Zero(t, lib.GetDisplayDRM(3))
	_, _, status := lib.Initialize(testDisplay)
	assert.NotEqual(t, VAStatusSuccess, status)
	assert.Equal(t, VAStatusSuccess, lib.Terminate(0))
	assert.Contains(t, lib.ErrorString(VAStatus(2)), "0x00000002")
}
