// Raw video frame types handed to the surface copier.

package msdk

// PixelFormat represents video pixel formats.
type PixelFormat int

const (
	PixelFormatI420   PixelFormat = iota // YUV 4:2:0 planar (Y + U + V)
	PixelFormatNV12                      // YUV 4:2:0 semi-planar (Y + interleaved UV)
	PixelFormatRGB24                     // Packed RGB, 3 bytes per pixel
	PixelFormatRGBA32                    // Packed RGBA, 4 bytes per pixel
	PixelFormatBGRA32                    // Packed BGRA, 4 bytes per pixel
)

func (p PixelFormat) String() string {
	switch p {
	case PixelFormatI420:
		return "I420"
	case PixelFormatNV12:
		return "NV12"
	case PixelFormatRGB24:
		return "RGB24"
	case PixelFormatRGBA32:
		return "RGBA32"
	case PixelFormatBGRA32:
		return "BGRA32"
	default:
		return "Unknown"
	}
}

// PlaneCount returns the number of planes for this pixel format.
func (p PixelFormat) PlaneCount() int {
	switch p {
	case PixelFormatI420:
		return 3 // Y, U, V
	case PixelFormatNV12:
		return 2 // Y, UV
	case PixelFormatRGB24, PixelFormatRGBA32, PixelFormatBGRA32:
		return 1 // Packed
	default:
		return 0
	}
}

// VideoFrame represents a raw video frame.
// The Data slices may point to external memory (e.g., C memory via FFI).
// Callers must ensure the data remains valid for the lifetime of the frame.
type VideoFrame struct {
	Data      [][]byte    // Plane data (1-4 planes depending on format)
	Stride    []int       // Stride for each plane in bytes
	Width     int         // Frame width in pixels
	Height    int         // Frame height in pixels
	Format    PixelFormat // Pixel format
	Timestamp int64       // Capture timestamp in nanoseconds
	Duration  int64       // Frame duration in nanoseconds (optional)
}

// PlaneWidth returns the number of meaningful bytes per row of plane i.
func (f *VideoFrame) PlaneWidth(i int) int {
	switch f.Format {
	case PixelFormatNV12:
		// Interleaved UV: (w/2) samples * 2 bytes, rounded up for odd widths.
		if i == 1 {
			return (f.Width + 1) &^ 1
		}
		return f.Width
	case PixelFormatI420:
		if i > 0 {
			return (f.Width + 1) / 2
		}
		return f.Width
	case PixelFormatRGB24:
		return f.Width * 3
	case PixelFormatRGBA32, PixelFormatBGRA32:
		return f.Width * 4
	default:
		return 0
	}
}

// PlaneHeight returns the number of rows of plane i.
func (f *VideoFrame) PlaneHeight(i int) int {
	switch f.Format {
	case PixelFormatNV12, PixelFormatI420:
		if i > 0 {
			return (f.Height + 1) / 2
		}
		return f.Height
	case PixelFormatRGB24, PixelFormatRGBA32, PixelFormatBGRA32:
		return f.Height
	default:
		return 0
	}
}

// Clone creates a deep copy of the video frame.
// Use this when you need to keep the frame data beyond its original lifetime.
func (f *VideoFrame) Clone() *VideoFrame {
	clone := &VideoFrame{
		Data:      make([][]byte, len(f.Data)),
		Stride:    make([]int, len(f.Stride)),
		Width:     f.Width,
		Height:    f.Height,
		Format:    f.Format,
		Timestamp: f.Timestamp,
		Duration:  f.Duration,
	}
	copy(clone.Stride, f.Stride)
	for i, plane := range f.Data {
		if plane != nil {
			clone.Data[i] = make([]byte, len(plane))
			copy(clone.Data[i], plane)
		}
	}
	return clone
}

// FrameBuffer is a pre-allocated NV12 frame with a configurable row alignment.
type FrameBuffer struct {
	Y  []byte // Luma plane
	UV []byte // Interleaved chroma plane

	Width       int
	Height      int
	Stride      int // Shared by both planes
	TimestampNs int64
}

// NewFrameBuffer allocates an NV12 frame whose stride is width rounded up
// to align bytes (align <= 1 means tightly packed).
func NewFrameBuffer(width, height, align int) *FrameBuffer {
	stride := alignUp((width+1)&^1, align)
	return &FrameBuffer{
		Y:      make([]byte, stride*height),
		UV:     make([]byte, stride*((height+1)/2)),
		Width:  width,
		Height: height,
		Stride: stride,
	}
}

// ToVideoFrame creates a VideoFrame pointing to this buffer's data.
// The returned frame is only valid while the buffer is not modified.
func (b *FrameBuffer) ToVideoFrame() VideoFrame {
	return VideoFrame{
		Data:      [][]byte{b.Y, b.UV},
		Stride:    []int{b.Stride, b.Stride},
		Width:     b.Width,
		Height:    b.Height,
		Format:    PixelFormatNV12,
		Timestamp: b.TimestampNs,
	}
}

func alignUp(v, align int) int {
	if align <= 1 {
		return v
	}
	return (v + align - 1) / align * align
}
