package msdk

import "fmt"

// CopyFrameToSurface loads an NV12 frame into a surface.
//
// A surface without a MemID aliases the frame planes and nothing is copied;
// the frame must then stay valid until the accelerator unlocks the surface.
// Otherwise both planes are copied row by row, honouring the frame strides
// and the surface pitch independently. Chroma rows reuse the luma width,
// which for interleaved 4:2:0 equals the chroma row size in bytes.
//
// Only NV12 is supported; other layouts fail with ErrUnsupportedFormat.
func CopyFrameToSurface(frame *VideoFrame, surface *Surface) error {
	if frame == nil || surface == nil {
		return fmt.Errorf("%w: nil frame or surface", ErrInvalidPlane)
	}
	if frame.Format != PixelFormatNV12 {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, frame.Format)
	}
	if planes := frame.Format.PlaneCount(); len(frame.Data) < planes || len(frame.Stride) < planes {
		return fmt.Errorf("%w: %s needs %d planes, got %d data / %d strides",
			ErrInvalidPlane, frame.Format, planes, len(frame.Data), len(frame.Stride))
	}
	if frame.Width <= 0 || frame.Height <= 0 {
		return fmt.Errorf("%w: frame size %dx%d", ErrInvalidPlane, frame.Width, frame.Height)
	}

	if surface.MemID == 0 {
		// A surface has a single pitch for both planes.
		if frame.Stride[0] != frame.Stride[1] {
			return fmt.Errorf("%w: cannot alias planes with strides %d/%d",
				ErrInvalidPlane, frame.Stride[0], frame.Stride[1])
		}
		surface.Y = frame.Data[0]
		surface.UV = frame.Data[1]
		surface.Pitch = frame.Stride[0]
		return nil
	}

	width := frame.PlaneWidth(0)
	planes := []struct {
		name   string
		src    []byte
		stride int
		height int
		dst    []byte
	}{
		{"Y", frame.Data[0], frame.Stride[0], frame.PlaneHeight(0), surface.Y},
		{"UV", frame.Data[1], frame.Stride[1], frame.PlaneHeight(1), surface.UV},
	}

	for _, p := range planes {
		if err := checkPlane(p.name, len(p.src), p.stride, width, p.height); err != nil {
			return fmt.Errorf("source %w", err)
		}
		if err := checkPlane(p.name, len(p.dst), surface.Pitch, width, p.height); err != nil {
			return fmt.Errorf("surface %w", err)
		}
	}

	for _, p := range planes {
		copyPlane(p.dst, surface.Pitch, p.src, p.stride, width, p.height)
	}
	return nil
}

// checkPlane validates that a plane of the given length can hold height rows
// of width bytes spaced stride bytes apart.
func checkPlane(name string, length, stride, width, height int) error {
	if stride < width {
		return fmt.Errorf("%w: %s stride %d is smaller than row width %d", ErrInvalidPlane, name, stride, width)
	}
	need := (height-1)*stride + width
	if length < need {
		return fmt.Errorf("%w: %s plane has %d bytes, need %d", ErrInvalidPlane, name, length, need)
	}
	return nil
}

func copyPlane(dst []byte, dstStride int, src []byte, srcStride int, width, height int) {
	for row := 0; row < height; row++ {
		copy(dst[row*dstStride:row*dstStride+width], src[row*srcStride:row*srcStride+width])
	}
}
