// Package msdk manages the session and surface lifecycle of an Intel Media
// SDK hardware encoder for VP8.
//
// Key pieces include:
//   - Session open/close through libmfx, with implementation and version diagnostics
//   - Binding a hardware session to a VA display on a DRM render node
//   - A surface pool with a bounded, cancellable wait for a free surface
//   - Copying NV12 frames into surfaces, or aliasing application memory
//   - VP8 profile negotiation and session parameters
//   - Translating mfxStatus codes to text
//
// # Lifecycle
//
//	OpenContext -> NewSurfaces -> (FindFreeSurface -> CopyFrameToSurface)* -> Close
//
// VP8Encoder wraps that sequence and hands the filled surface and the session
// to the downstream encode call. Bitstream production is out of scope.
//
// # Native Libraries
//
// libmfx, libva and libva-drm are loaded at runtime with purego (no cgo).
// MSDK_LIB_PATH and LIBVA_LIB_PATH name a file or a directory to try before
// the system search path. A failed load is reported as ErrUnavailable and
// is final for the process.
//
// # Configuration
//
// Config can be read from YAML with LoadConfig and overridden with
// MSDK_HARDWARE and MSDK_DEVICE_PATH via ApplyEnv. Without a device path the
// first /dev/dri/renderD* node is used, then /dev/dri/card*.
//
// Logging goes through the go-belt logger carried by the context.
package msdk
