package msdk

import (
	"fmt"
	"strings"
)

// VP8Profile mirrors MFX_PROFILE_VP8_*.
type VP8Profile uint16

const (
	VP8ProfileAuto VP8Profile = 0
	VP8Profile0    VP8Profile = 1
	VP8Profile1    VP8Profile = 2
	VP8Profile2    VP8Profile = 3
	VP8Profile3    VP8Profile = 4
)

// ParseVP8Profile converts the caps string form ("0".."3") to a profile.
func ParseVP8Profile(s string) (VP8Profile, error) {
	switch s {
	case "0":
		return VP8Profile0, nil
	case "1":
		return VP8Profile1, nil
	case "2":
		return VP8Profile2, nil
	case "3":
		return VP8Profile3, nil
	default:
		return VP8ProfileAuto, fmt.Errorf("%w: %q", ErrInvalidProfile, s)
	}
}

// String returns the caps form of the profile, or "" for auto.
func (p VP8Profile) String() string {
	switch p {
	case VP8Profile0:
		return "0"
	case VP8Profile1:
		return "1"
	case VP8Profile2:
		return "2"
	case VP8Profile3:
		return "3"
	default:
		return ""
	}
}

// NegotiateVP8Profile picks the profile from what downstream accepts.
//
// A nil list means downstream accepts anything and the encoder decides. An
// empty list means nothing is acceptable. Otherwise the first entry is
// fixated; an empty entry leaves the profile on auto.
func NegotiateVP8Profile(allowed []string) (VP8Profile, error) {
	if allowed == nil {
		return VP8ProfileAuto, nil
	}
	if len(allowed) == 0 {
		return VP8ProfileAuto, fmt.Errorf("%w: downstream accepts no profile", ErrInvalidProfile)
	}
	if allowed[0] == "" {
		return VP8ProfileAuto, nil
	}
	return ParseVP8Profile(allowed[0])
}

// VP8Alignment is the macroblock alignment applied to frame dimensions.
const VP8Alignment = 16

// CodecParams holds the encoder video parameters of a session (the mfx part
// of mfxVideoParam).
type CodecParams struct {
	CodecID      FourCC
	CodecProfile uint16
	CodecLevel   uint16
	FrameInfo    FrameInfo
}

// ConfigureVP8 builds the session parameters for a VP8 encode of
// width x height NV12 frames at fpsN/fpsD.
func ConfigureVP8(profile VP8Profile, width, height, fpsN, fpsD int) (CodecParams, error) {
	if width <= 0 || height <= 0 {
		return CodecParams{}, fmt.Errorf("invalid frame size %dx%d", width, height)
	}
	if fpsN <= 0 || fpsD <= 0 {
		return CodecParams{}, fmt.Errorf("invalid frame rate %d/%d", fpsN, fpsD)
	}
	if profile > VP8Profile3 {
		return CodecParams{}, fmt.Errorf("%w: %d", ErrInvalidProfile, uint16(profile))
	}

	return CodecParams{
		CodecID:      CodecIDVP8,
		CodecProfile: uint16(profile),
		CodecLevel:   0,
		FrameInfo: FrameInfo{
			FourCC:       FourCCNV12,
			ChromaFormat: ChromaFormat420,
			PicStruct:    PicStructProgressive,
			Width:        alignUp(width, VP8Alignment),
			Height:       alignUp(height, VP8Alignment),
			CropW:        width,
			CropH:        height,
			FrameRateN:   fpsN,
			FrameRateD:   fpsD,
		},
	}, nil
}

// Profile returns the configured profile.
func (p CodecParams) Profile() VP8Profile {
	return VP8Profile(p.CodecProfile)
}

// SrcCaps renders the output caps string, with the profile only when it is
// fixed.
func (p CodecParams) SrcCaps() string {
	var b strings.Builder
	b.WriteString("video/x-vp8")
	if s := p.Profile().String(); s != "" {
		b.WriteString(", profile=(string)")
		b.WriteString(s)
	}
	return b.String()
}
