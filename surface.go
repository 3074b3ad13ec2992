package msdk

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/facebookincubator/go-belt/tool/logger"
)

// FrameInfo describes the picture carried by a surface (subset of mfxFrameInfo).
type FrameInfo struct {
	FourCC       FourCC
	ChromaFormat uint16
	PicStruct    uint16

	// Width and Height are the allocated (aligned) dimensions.
	Width  int
	Height int
	// CropW and CropH are the visible dimensions.
	CropW int
	CropH int

	FrameRateN int
	FrameRateD int
}

// SurfaceMemory selects how a surface receives frame data.
type SurfaceMemory int

const (
	// MemoryAlias surfaces point directly at the application frame planes.
	MemoryAlias SurfaceMemory = iota
	// MemoryCopy surfaces own their planes and frames are copied in.
	MemoryCopy
)

func (m SurfaceMemory) String() string {
	switch m {
	case MemoryAlias:
		return "alias"
	case MemoryCopy:
		return "copy"
	default:
		return "unknown"
	}
}

// SurfacePitchAlign is the row alignment of surface-owned planes.
const SurfacePitchAlign = 32

// Surface is a frame buffer handed to the accelerator (mfxFrameSurface1).
//
// The lock counter belongs to the accelerator side: it is raised while the
// driver holds the surface and dropped when it is done. The surface pool
// only ever reads it.
type Surface struct {
	Info FrameInfo

	Y     []byte // Luma plane
	UV    []byte // Interleaved chroma plane
	Pitch int    // Row stride shared by Y and UV

	// MemID is zero when the surface may alias application memory and
	// non-zero when frames must be copied into its own planes.
	MemID uintptr

	locked atomic.Int32
}

// Lock marks the surface as in use by the accelerator.
func (s *Surface) Lock() {
	s.locked.Add(1)
}

// Unlock releases one lock taken with Lock.
func (s *Surface) Unlock() {
	for {
		n := s.locked.Load()
		if n <= 0 {
			return
		}
		if s.locked.CompareAndSwap(n, n-1) {
			return
		}
	}
}

// Locked reports whether the accelerator currently holds the surface.
func (s *Surface) Locked() bool {
	return s.locked.Load() > 0
}

// NewSurfaces allocates n surfaces for info. Copy surfaces get NV12 planes
// with a pitch aligned to SurfacePitchAlign and a non-zero MemID; alias
// surfaces get no planes.
func NewSurfaces(n int, info FrameInfo, mem SurfaceMemory) []Surface {
	surfaces := make([]Surface, n)
	for i := range surfaces {
		s := &surfaces[i]
		s.Info = info
		if mem != MemoryCopy {
			continue
		}
		buf := NewFrameBuffer(info.Width, info.Height, SurfacePitchAlign)
		s.Y = buf.Y
		s.UV = buf.UV
		s.Pitch = buf.Stride
		s.MemID = uintptr(i + 1)
	}
	return surfaces
}

// freeSurfaceIndex returns the index of the first unlocked surface, or -1.
func freeSurfaceIndex(surfaces []Surface) int {
	for i := range surfaces {
		if !surfaces[i].Locked() {
			return i
		}
	}
	return -1
}

// FindFreeSurface returns the first surface not locked by the accelerator.
// If all are locked it rescans every poll.Interval until poll.Timeout has
// elapsed and then returns ErrNoFreeSurface. Cancelling ctx stops the wait
// early with ctx.Err().
//
// Surfaces are released asynchronously by the driver and no notification is
// exposed, hence the bounded poll.
func FindFreeSurface(ctx context.Context, surfaces []Surface, poll PollConfig) (*Surface, error) {
	if idx := freeSurfaceIndex(surfaces); idx >= 0 {
		return &surfaces[idx], nil
	}
	if len(surfaces) == 0 {
		return nil, ErrNoFreeSurface
	}

	poll = poll.withDefaults()
	deadline := time.NewTimer(poll.Timeout)
	defer deadline.Stop()
	ticker := time.NewTicker(poll.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-deadline.C:
			if idx := freeSurfaceIndex(surfaces); idx >= 0 {
				return &surfaces[idx], nil
			}
			logger.Debugf(ctx, "all %d surfaces stayed locked for %v", len(surfaces), poll.Timeout)
			return nil, ErrNoFreeSurface
		case <-ticker.C:
			if idx := freeSurfaceIndex(surfaces); idx >= 0 {
				return &surfaces[idx], nil
			}
		}
	}
}
