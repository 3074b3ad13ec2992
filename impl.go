package msdk

import "fmt"

// Implementation selects (and reports) the runtime implementation (mfxIMPL).
// The low byte is the base type, the next byte carries VIA_* flags.
type Implementation int32

const (
	ImplAuto        Implementation = 0x0000
	ImplSoftware    Implementation = 0x0001
	ImplHardware    Implementation = 0x0002
	ImplAutoAny     Implementation = 0x0003
	ImplHardwareAny Implementation = 0x0004
	ImplHardware2   Implementation = 0x0005
	ImplHardware3   Implementation = 0x0006
	ImplHardware4   Implementation = 0x0007
	ImplRuntime     Implementation = 0x0008
	implBaseCount                  = 9

	ImplViaAny   Implementation = 0x0100
	ImplViaD3D9  Implementation = 0x0200
	ImplViaD3D11 Implementation = 0x0300
	ImplViaVAAPI Implementation = 0x0400
)

var implNames = [implBaseCount]string{
	"AUTO", "SOFTWARE", "HARDWARE", "AUTO_ANY", "HARDWARE_ANY", "HARDWARE2",
	"HARDWARE3", "HARDWARE4", "RUNTIME",
}

// BaseType strips the VIA_* flags.
func (i Implementation) BaseType() Implementation {
	return i & 0x00ff
}

// Via returns the VIA_* part of the implementation value.
func (i Implementation) Via() Implementation {
	return i & 0x0f00
}

func (i Implementation) String() string {
	base := i.BaseType()
	if int(base) >= implBaseCount {
		return "UNKNOWN"
	}
	switch i.Via() {
	case ImplViaD3D9:
		return implNames[base] + "|VIA_D3D9"
	case ImplViaD3D11:
		return implNames[base] + "|VIA_D3D11"
	case ImplViaVAAPI:
		return implNames[base] + "|VIA_VAAPI"
	case ImplViaAny:
		return implNames[base] + "|VIA_ANY"
	}
	return implNames[base]
}

// Version is the runtime API version. Memory layout matches mfxVersion.
type Version struct {
	Minor uint16
	Major uint16
}

// RequestedVersion is the API version sessions are opened with.
var RequestedVersion = Version{Major: 1, Minor: 1}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// HandleType identifies an external handle attached to a session (mfxHandleType).
type HandleType int32

const (
	HandleD3D9DeviceManager HandleType = 1
	HandleD3D11Device       HandleType = 2
	HandleVADisplay         HandleType = 4
	HandleEncodeContext     HandleType = 5
)

func (h HandleType) String() string {
	switch h {
	case HandleD3D9DeviceManager:
		return "D3D9_DEVICE_MANAGER"
	case HandleD3D11Device:
		return "D3D11_DEVICE"
	case HandleVADisplay:
		return "VA_DISPLAY"
	case HandleEncodeContext:
		return "ENCODE_CONTEXT"
	default:
		return "UNKNOWN"
	}
}

// FourCC is a four character code as used for codec and pixel format ids.
type FourCC uint32

// MakeFourCC packs four characters, first character in the lowest byte.
func MakeFourCC(a, b, c, d byte) FourCC {
	return FourCC(uint32(a) | uint32(b)<<8 | uint32(c)<<16 | uint32(d)<<24)
}

var (
	FourCCNV12 = MakeFourCC('N', 'V', '1', '2')
	CodecIDVP8 = MakeFourCC('V', 'P', '8', ' ')
)

const (
	ChromaFormat420      uint16 = 1
	PicStructProgressive uint16 = 1
)

func (f FourCC) String() string {
	return string([]byte{byte(f), byte(f >> 8), byte(f >> 16), byte(f >> 24)})
}
