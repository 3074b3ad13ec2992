//go:build linux

package msdk

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMFXRuntime_LoadFailure(t *testing.T) {
	t.Setenv(mfxPathEnv, "")
	loader := newFakeLoader()
	rt := &mfxRuntime{loader: loader, names: []string{"libmfx-missing.so.1"}}

	session, status := rt.Init(ImplSoftware, RequestedVersion)
	assert.Equal(t, StatusUnsupported, status)
	assert.False(t, session.Valid())
	assert.Equal(t, StatusUnsupported, rt.Close(Session(1)))
	assert.Equal(t, StatusUnsupported, rt.SetHandle(Session(1), HandleVADisplay, 1))
	_, status = rt.QueryVersion(Session(1))
	assert.Equal(t, StatusUnsupported, status)

	require.ErrorIs(t, rt.LoadError(), ErrUnavailable)

	opens := loader.openCount()
	_, _ = rt.Init(ImplSoftware, RequestedVersion)
	assert.Equal(t, opens, loader.openCount(), "a failed load is not retried")

	_, err := OpenSession(context.Background(), rt, false)
	require.ErrorIs(t, err, ErrUnavailable)
	assert.Contains(t, err.Error(), "libmfx-missing.so.1")
}

func TestMFXRuntime_MissingSymbol(t *testing.T) {
	t.Setenv(mfxPathEnv, "")
	loader := newFakeLoader()
	loader.libs["libmfx.so.1"] = 0x300
	rt := &mfxRuntime{loader: loader, names: DefaultMFXLibraryNames}

	err := rt.LoadError()
	require.ErrorIs(t, err, ErrUnavailable)
	assert.Contains(t, err.Error(), "MFXInit")
	assert.Equal(t, []uintptr{0x300}, loader.closed)
}

func TestRuntimeFor_Shared(t *testing.T) {
	a := runtimeFor([]string{"libmfx-test.so.1"})
	b := runtimeFor([]string{"libmfx-test.so.1"})
	assert.Same(t, a, b)
	assert.Same(t, DefaultRuntime(), runtimeFor(nil))
}
