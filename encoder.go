package msdk

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/facebookincubator/go-belt/tool/logger"
)

// EncoderConfig configures a VP8 encoder session.
type EncoderConfig struct {
	Config // Device, library and polling settings

	Width  int // Frame width
	Height int // Frame height
	FPSN   int // Frame rate numerator
	FPSD   int // Frame rate denominator

	// AllowedProfiles lists the profiles accepted downstream, in order of
	// preference. Nil lets the encoder decide.
	AllowedProfiles []string

	NumSurfaces int           // Size of the surface pool
	Memory      SurfaceMemory // Alias or copy surfaces
}

// DefaultEncoderConfig returns a software, copy-mode configuration for
// width x height at 30 fps.
func DefaultEncoderConfig(width, height int) EncoderConfig {
	return EncoderConfig{
		Config:      DefaultConfig(),
		Width:       width,
		Height:      height,
		FPSN:        30,
		FPSD:        1,
		NumSurfaces: 4,
		Memory:      MemoryCopy,
	}
}

// Validate checks the encoder settings.
func (c EncoderConfig) Validate() error {
	if err := c.Config.Validate(); err != nil {
		return err
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid frame size %dx%d", c.Width, c.Height)
	}
	if c.NumSurfaces <= 0 {
		return fmt.Errorf("surface pool needs at least one surface, got %d", c.NumSurfaces)
	}
	return nil
}

// EncoderStats counts surface hand-offs.
type EncoderStats struct {
	FramesPrepared uint64 // Frames loaded into a surface
	SurfaceMisses  uint64 // Calls that found no free surface in time
}

// VP8Encoder ties an accelerator context, the negotiated VP8 parameters and
// a surface pool together. It stops at handing a filled surface to the
// downstream encode call.
type VP8Encoder struct {
	mu sync.Mutex

	ctx      *Context
	params   CodecParams
	surfaces []Surface
	poll     PollConfig
	memory   SurfaceMemory
	stats    EncoderStats
	closed   bool
}

// NewVP8Encoder opens a context and prepares the VP8 parameters and surfaces.
func NewVP8Encoder(
	ctx context.Context,
	cfg EncoderConfig,
	opts ...ContextOption,
) (*VP8Encoder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	profile, err := NegotiateVP8Profile(cfg.AllowedProfiles)
	if err != nil {
		return nil, err
	}
	if profile == VP8ProfileAuto {
		logger.Infof(ctx, "downstream has ANY caps, profile/level set to auto")
	}

	params, err := ConfigureVP8(profile, cfg.Width, cfg.Height, cfg.FPSN, cfg.FPSD)
	if err != nil {
		return nil, err
	}

	devCtx, err := OpenContext(ctx, cfg.Config, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to open the accelerator context: %w", err)
	}
	logger.Debugf(ctx, "VP8 %dx%d (aligned %dx%d) @ %d/%d, caps %q, %d %s surfaces",
		cfg.Width, cfg.Height, params.FrameInfo.Width, params.FrameInfo.Height,
		cfg.FPSN, cfg.FPSD, params.SrcCaps(), cfg.NumSurfaces, cfg.Memory)

	return &VP8Encoder{
		ctx:      devCtx,
		params:   params,
		surfaces: NewSurfaces(cfg.NumSurfaces, params.FrameInfo, cfg.Memory),
		poll:     cfg.SurfacePoll.withDefaults(),
		memory:   cfg.Memory,
	}, nil
}

// PrepareSurface loads frame into a free surface and returns it. The caller
// submits the surface together with Session() to the encode call.
func (e *VP8Encoder) PrepareSurface(ctx context.Context, frame *VideoFrame) (*Surface, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil, ErrContextClosed
	}
	if frame == nil {
		return nil, fmt.Errorf("%w: nil frame", ErrInvalidPlane)
	}
	info := e.params.FrameInfo
	if frame.Width != info.CropW || frame.Height != info.CropH {
		return nil, fmt.Errorf("%w: got %dx%d, want %dx%d",
			ErrFrameSize, frame.Width, frame.Height, info.CropW, info.CropH)
	}

	surface, err := FindFreeSurface(ctx, e.surfaces, e.poll)
	if err != nil {
		if errors.Is(err, ErrNoFreeSurface) {
			e.stats.SurfaceMisses++
		}
		return nil, err
	}

	if err := CopyFrameToSurface(frame, surface); err != nil {
		return nil, err
	}
	e.stats.FramesPrepared++
	return surface, nil
}

// Session returns the accelerator session, or zero once closed.
func (e *VP8Encoder) Session() Session {
	return e.ctx.Session()
}

// Context returns the underlying accelerator context.
func (e *VP8Encoder) Context() *Context {
	return e.ctx
}

// Params returns the negotiated codec parameters.
func (e *VP8Encoder) Params() CodecParams {
	return e.params
}

// Surfaces returns the surface pool. The driver side locks and unlocks
// entries through Surface.Lock and Surface.Unlock.
func (e *VP8Encoder) Surfaces() []Surface {
	return e.surfaces
}

// Memory returns the surface memory mode.
func (e *VP8Encoder) Memory() SurfaceMemory {
	return e.memory
}

// Stats returns hand-off counters.
func (e *VP8Encoder) Stats() EncoderStats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats
}

// Close releases the context. Calling it again is a no-op.
func (e *VP8Encoder) Close(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil
	}
	e.closed = true
	return e.ctx.Close(ctx)
}
