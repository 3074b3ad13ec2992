package msdk

import (
	"testing"
)

func TestPixelFormat_String(t *testing.T) {
	tests := []struct {
		format PixelFormat
		want   string
	}{
		{PixelFormatI420, "I420"},
		{PixelFormatNV12, "NV12"},
		{PixelFormatRGB24, "RGB24"},
		{PixelFormatRGBA32, "RGBA32"},
		{PixelFormatBGRA32, "BGRA32"},
		{PixelFormat(99), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.format.String(); got != tt.want {
				t.Errorf("PixelFormat.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPixelFormat_PlaneCount(t *testing.T) {
	tests := []struct {
		format PixelFormat
		want   int
	}{
		{PixelFormatI420, 3},
		{PixelFormatNV12, 2},
		{PixelFormatRGB24, 1},
		{PixelFormatRGBA32, 1},
		{PixelFormatBGRA32, 1},
		{PixelFormat(99), 0},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			if got := tt.format.PlaneCount(); got != tt.want {
				t.Errorf("PixelFormat.PlaneCount() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVideoFrame_PlaneGeometry(t *testing.T) {
	tests := []struct {
		name          string
		frame         VideoFrame
		plane         int
		width, height int
	}{
		{"NV12 Y", VideoFrame{Width: 321, Height: 241, Format: PixelFormatNV12}, 0, 321, 241},
		{"NV12 UV", VideoFrame{Width: 321, Height: 241, Format: PixelFormatNV12}, 1, 322, 121},
		{"I420 U", VideoFrame{Width: 320, Height: 240, Format: PixelFormatI420}, 1, 160, 120},
		{"RGBA", VideoFrame{Width: 10, Height: 4, Format: PixelFormatRGBA32}, 0, 40, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.frame.PlaneWidth(tt.plane); got != tt.width {
				t.Errorf("PlaneWidth(%d) = %d, want %d", tt.plane, got, tt.width)
			}
			if got := tt.frame.PlaneHeight(tt.plane); got != tt.height {
				t.Errorf("PlaneHeight(%d) = %d, want %d", tt.plane, got, tt.height)
			}
		})
	}
}

func TestVideoFrame_Clone(t *testing.T) {
	original := &VideoFrame{
		Data: [][]byte{
			{1, 2, 3, 4},
			{5, 6},
		},
		Stride:    []int{2, 2},
		Width:     2,
		Height:    2,
		Format:    PixelFormatNV12,
		Timestamp: 12345,
		Duration:  33333,
	}

	clone := original.Clone()

	if clone.Width != original.Width {
		t.Errorf("Width mismatch: got %d, want %d", clone.Width, original.Width)
	}
	if clone.Timestamp != original.Timestamp {
		t.Errorf("Timestamp mismatch: got %d, want %d", clone.Timestamp, original.Timestamp)
	}

	// Modify original and verify clone is independent
	original.Data[0][0] = 99
	original.Stride[0] = 100
	if clone.Data[0][0] == 99 {
		t.Error("Clone data should be independent of original")
	}
	if clone.Stride[0] == 100 {
		t.Error("Clone stride should be independent of original")
	}
}

func TestFrameBuffer(t *testing.T) {
	buf := NewFrameBuffer(330, 241, 32)
	if buf.Stride != 352 {
		t.Errorf("Stride = %d, want 352", buf.Stride)
	}
	if len(buf.Y) != 352*241 || len(buf.UV) != 352*121 {
		t.Errorf("plane sizes %d/%d", len(buf.Y), len(buf.UV))
	}

	buf.TimestampNs = 42
	frame := buf.ToVideoFrame()
	if frame.Format != PixelFormatNV12 || frame.Timestamp != 42 {
		t.Errorf("unexpected frame %+v", frame)
	}
	if &frame.Data[0][0] != &buf.Y[0] {
		t.Error("frame should share the buffer planes")
	}

	packed := NewFrameBuffer(7, 2, 0)
	if packed.Stride != 8 {
		t.Errorf("packed stride = %d, want 8", packed.Stride)
	}
}
