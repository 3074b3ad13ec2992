package msdk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImplementation_String(t *testing.T) {
	tests := []struct {
		impl Implementation
		want string
	}{
		{ImplAuto, "AUTO"},
		{ImplSoftware, "SOFTWARE"},
		{ImplHardwareAny, "HARDWARE_ANY"},
		{ImplRuntime, "RUNTIME"},
		{ImplHardware | ImplViaVAAPI, "HARDWARE|VIA_VAAPI"},
		{ImplHardware2 | ImplViaD3D11, "HARDWARE2|VIA_D3D11"},
		{ImplSoftware | ImplViaAny, "SOFTWARE|VIA_ANY"},
		{Implementation(0x0009), "UNKNOWN"},
		{Implementation(0x04ff), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.impl.String())
		})
	}
}

func TestImplementation_BaseType(t *testing.T) {
	impl := ImplHardware | ImplViaVAAPI
	assert.Equal(t, ImplHardware, impl.BaseType())
	assert.Equal(t, ImplViaVAAPI, impl.Via())
	assert.Equal(t, "HARDWARE", impl.BaseType().String())
}

func TestVersion_String(t *testing.T) {
	assert.Equal(t, "1.1", RequestedVersion.String())
	assert.Equal(t, "2.10", Version{Major: 2, Minor: 10}.String())
}

func TestFourCC(t *testing.T) {
	assert.Equal(t, "NV12", FourCCNV12.String())
	assert.Equal(t, "VP8 ", CodecIDVP8.String())
	assert.Equal(t, FourCC(0x3231564e), FourCCNV12)
}

func TestHandleType_String(t *testing.T) {
	assert.Equal(t, "VA_DISPLAY", HandleVADisplay.String())
}
