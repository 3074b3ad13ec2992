package msdk

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// PatternType defines the type of test pattern to generate.
type PatternType int

const (
	PatternColorBars    PatternType = iota // 8-bar color bars
	PatternGradient                        // Horizontal luma gradient
	PatternCheckerboard                    // Black/white checkerboard
	PatternMovingBox                       // White box circling the center
)

func (p PatternType) String() string {
	switch p {
	case PatternColorBars:
		return "ColorBars"
	case PatternGradient:
		return "Gradient"
	case PatternCheckerboard:
		return "Checkerboard"
	case PatternMovingBox:
		return "MovingBox"
	default:
		return "Unknown"
	}
}

// ParsePatternType parses a pattern name, case-insensitively.
func ParsePatternType(s string) (PatternType, error) {
	for p := PatternColorBars; p <= PatternMovingBox; p++ {
		if strings.EqualFold(s, p.String()) {
			return p, nil
		}
	}
	return PatternColorBars, fmt.Errorf("unknown pattern %q", s)
}

// PatternGenerator renders synthetic NV12 frames into a reusable buffer.
type PatternGenerator struct {
	pattern     PatternType
	checkerSize int
	frameDur    time.Duration
	frameCount  uint64
	buf         *FrameBuffer
}

// NewPatternGenerator creates a generator for width x height frames at fps,
// with rows aligned to align bytes.
func NewPatternGenerator(pattern PatternType, width, height, fps, align int) *PatternGenerator {
	if fps <= 0 {
		fps = 30
	}
	return &PatternGenerator{
		pattern:     pattern,
		checkerSize: 32,
		frameDur:    time.Second / time.Duration(fps),
		buf:         NewFrameBuffer(width, height, align),
	}
}

// Next renders the next frame. The returned frame shares the generator's
// buffer and is overwritten by the following call.
func (g *PatternGenerator) Next() *VideoFrame {
	switch g.pattern {
	case PatternGradient:
		g.gradient()
	case PatternCheckerboard:
		g.checkerboard()
	case PatternMovingBox:
		g.movingBox(g.frameCount)
	default:
		g.colorBars()
	}
	g.buf.TimestampNs = int64(g.frameCount) * g.frameDur.Nanoseconds()
	g.frameCount++

	frame := g.buf.ToVideoFrame()
	frame.Duration = g.frameDur.Nanoseconds()
	return &frame
}

// FrameCount returns how many frames have been rendered.
func (g *PatternGenerator) FrameCount() uint64 {
	return g.frameCount
}

// Color bars (simplified 8-bar pattern)
var colorBarsRGB = [][3]uint8{
	{192, 192, 192}, // White (75%)
	{192, 192, 0},   // Yellow
	{0, 192, 192},   // Cyan
	{0, 192, 0},     // Green
	{192, 0, 192},   // Magenta
	{192, 0, 0},     // Red
	{0, 0, 192},     // Blue
	{16, 16, 16},    // Black
}

func (g *PatternGenerator) colorBars() {
	b := g.buf
	barWidth := max(b.Width/8, 1)

	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			rgb := colorBarsRGB[min(x/barWidth, 7)]
			yVal, u, v := rgbToYUV(rgb[0], rgb[1], rgb[2])
			b.setPixel(x, y, yVal, u, v)
		}
	}
}

func (g *PatternGenerator) gradient() {
	b := g.buf
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			b.setPixel(x, y, uint8((x*255)/b.Width), 128, 128)
		}
	}
}

func (g *PatternGenerator) checkerboard() {
	b := g.buf
	size := g.checkerSize
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			var yVal uint8 = 16
			if ((x/size)+(y/size))%2 == 0 {
				yVal = 235
			}
			b.setPixel(x, y, yVal, 128, 128)
		}
	}
}

func (g *PatternGenerator) movingBox(frameNum uint64) {
	b := g.buf
	b.fill(16, 128, 128)

	boxSize := min(100, b.Width, b.Height)
	radius := float64(min(b.Width, b.Height)) / 4
	angle := float64(frameNum) * 0.05
	boxX := b.Width/2 + int(radius*math.Cos(angle)) - boxSize/2
	boxY := b.Height/2 + int(radius*math.Sin(angle)) - boxSize/2

	for y := max(boxY, 0); y < boxY+boxSize && y < b.Height; y++ {
		for x := max(boxX, 0); x < boxX+boxSize && x < b.Width; x++ {
			b.setPixel(x, y, 235, 128, 128)
		}
	}
}

// setPixel writes luma at (x, y) and, on even coordinates, the shared chroma
// pair of its 2x2 block.
func (b *FrameBuffer) setPixel(x, y int, yVal, u, v uint8) {
	b.Y[y*b.Stride+x] = yVal
	if x%2 == 0 && y%2 == 0 {
		i := (y/2)*b.Stride + x
		b.UV[i] = u
		b.UV[i+1] = v
	}
}

func (b *FrameBuffer) fill(yVal, u, v uint8) {
	for i := range b.Y {
		b.Y[i] = yVal
	}
	for i := 0; i+1 < len(b.UV); i += 2 {
		b.UV[i] = u
		b.UV[i+1] = v
	}
}

// rgbToYUV converts RGB to YUV (BT.601)
func rgbToYUV(r, g, b uint8) (y, u, v uint8) {
	yf := 16.0 + 65.481*float64(r)/255.0 + 128.553*float64(g)/255.0 + 24.966*float64(b)/255.0
	uf := 128.0 - 37.797*float64(r)/255.0 - 74.203*float64(g)/255.0 + 112.0*float64(b)/255.0
	vf := 128.0 + 112.0*float64(r)/255.0 - 93.786*float64(g)/255.0 - 18.214*float64(b)/255.0

	y = uint8(clampFloat(yf, 16, 235))
	u = uint8(clampFloat(uf, 16, 240))
	v = uint8(clampFloat(vf, 16, 240))
	return
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
