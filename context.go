package msdk

import (
	"context"
	"fmt"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/hashicorp/go-multierror"
)

// Context owns one runtime session and, in hardware mode, the DRM descriptor
// and VA display bound to it. Both fd and display are either set together
// or both absent.
//
// A Context is not safe for concurrent lifecycle calls; callers serialize
// OpenContext/Close themselves.
type Context struct {
	runtime Runtime
	display DisplayLibrary
	device  DeviceOpener

	session    Session
	fd         int
	dpy        Display
	hardware   bool
	devicePath string
	closed     bool
}

// ContextOption overrides a collaborator of a Context.
type ContextOption func(*contextOptions)

type contextOptions struct {
	runtime Runtime
	display DisplayLibrary
	device  DeviceOpener
}

// WithRuntime sets the accelerator runtime.
func WithRuntime(rt Runtime) ContextOption {
	return func(o *contextOptions) { o.runtime = rt }
}

// WithDisplayLibrary sets the VA display library.
func WithDisplayLibrary(lib DisplayLibrary) ContextOption {
	return func(o *contextOptions) { o.display = lib }
}

// WithDeviceOpener sets how DRM nodes are opened.
func WithDeviceOpener(dev DeviceOpener) ContextOption {
	return func(o *contextOptions) { o.device = dev }
}

// OpenContext opens a session and, if cfg.Hardware is set, binds it to a VA
// display on a DRM node. On failure everything acquired so far is released
// and no Context is returned.
func OpenContext(
	ctx context.Context,
	cfg Config,
	opts ...ContextOption,
) (_ret *Context, _err error) {
	var o contextOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.runtime == nil {
		o.runtime = runtimeFor(cfg.Libraries.MFX)
	}

	c := &Context{
		runtime:  o.runtime,
		display:  o.display,
		device:   o.device,
		fd:       -1,
		hardware: cfg.Hardware,
	}

	session, err := OpenSession(ctx, c.runtime, cfg.Hardware)
	if err != nil {
		return nil, err
	}
	c.session = session
	defer func() {
		if _err != nil {
			CloseSession(ctx, c.runtime, c.session)
		}
	}()

	if cfg.Hardware {
		if c.display == nil {
			c.display = displayLibraryFor(cfg.Libraries)
		}
		if c.device == nil {
			c.device = DefaultDeviceOpener()
		}
		if err := c.bindHardwareDisplay(ctx, ResolveDevicePath(cfg.DevicePath)); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// bindHardwareDisplay attaches a VA display to the session. Every failing
// step releases what the previous steps acquired.
func (c *Context) bindHardwareDisplay(ctx context.Context, devicePath string) (_err error) {
	if err := c.display.Bind(); err != nil {
		logger.Errorf(ctx, "Couldn't open libva or libva-drm libraries: %v", err)
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	fd, err := c.device.Open(devicePath)
	if err != nil {
		logger.Errorf(ctx, "Couldn't open %s: %v", devicePath, err)
		return fmt.Errorf("%w %s: %w", ErrDeviceOpen, devicePath, err)
	}

	var dpy Display
	defer func() {
		if _err == nil {
			return
		}
		var unwindErr *multierror.Error
		if dpy != 0 {
			if s := c.display.Terminate(dpy); s != VAStatusSuccess {
				unwindErr = multierror.Append(unwindErr, fmt.Errorf("vaTerminate: %s", c.vaErrorString(s)))
			}
		}
		if err := c.device.Close(fd); err != nil {
			unwindErr = multierror.Append(unwindErr, fmt.Errorf("close %s: %w", devicePath, err))
		}
		if err := unwindErr.ErrorOrNil(); err != nil {
			logger.Warnf(ctx, "unable to fully release the display binding: %v", err)
		}
	}()

	dpy = c.display.GetDisplayDRM(fd)
	if dpy == 0 {
		logger.Errorf(ctx, "Couldn't get a VA DRM display")
		return fmt.Errorf("%w: vaGetDisplayDRM returned no display for %s", ErrDisplay, devicePath)
	}

	major, minor, vaStatus := c.display.Initialize(dpy)
	if vaStatus != VAStatusSuccess {
		logger.Errorf(ctx, "Couldn't initialize VA DRM display (%s)", c.vaErrorString(vaStatus))
		// An uninitialized display still has to be terminated.
		return fmt.Errorf("%w: vaInitialize: %s", ErrDisplay, c.vaErrorString(vaStatus))
	}
	logger.Debugf(ctx, "VA-API version %d.%d on %s", major, minor, devicePath)

	if status := c.runtime.SetHandle(c.session, HandleVADisplay, uintptr(dpy)); status != StatusNone {
		logger.Errorf(ctx, "Setting VAAPI handle failed (%s)", status.String())
		return fmt.Errorf("%w: %w", ErrDisplay, statusErr("MFXVideoCORE_SetHandle", status))
	}

	c.fd = fd
	c.dpy = dpy
	c.devicePath = devicePath
	return nil
}

type vaErrorStringer interface {
	ErrorString(VAStatus) string
}

func (c *Context) vaErrorString(s VAStatus) string {
	if es, ok := c.display.(vaErrorStringer); ok {
		return es.ErrorString(s)
	}
	return fmt.Sprintf("VA status 0x%08x", uint32(s))
}

// Close releases the session, the display and the descriptor, in that
// order. It is safe to call on a nil Context and more than once. Session
// close failures are only logged; display and descriptor failures are
// returned after every step has run.
func (c *Context) Close(ctx context.Context) error {
	if c == nil || c.closed {
		return nil
	}
	c.closed = true

	CloseSession(ctx, c.runtime, c.session)
	c.session = 0

	var result *multierror.Error
	if c.dpy != 0 {
		if s := c.display.Terminate(c.dpy); s != VAStatusSuccess {
			logger.Errorf(ctx, "vaTerminate failed (%s)", c.vaErrorString(s))
			result = multierror.Append(result, fmt.Errorf("vaTerminate: %s", c.vaErrorString(s)))
		}
		c.dpy = 0
	}
	if c.fd >= 0 {
		if err := c.device.Close(c.fd); err != nil {
			logger.Errorf(ctx, "closing %s failed: %v", c.devicePath, err)
			result = multierror.Append(result, fmt.Errorf("close %s: %w", c.devicePath, err))
		}
		c.fd = -1
	}
	return result.ErrorOrNil()
}

// Session returns the opened session handle for downstream encode calls.
// It is zero once the Context is closed.
func (c *Context) Session() Session {
	if c == nil {
		return 0
	}
	return c.session
}

// FD returns the DRM descriptor, or -1 when no device is bound.
func (c *Context) FD() int {
	if c == nil {
		return -1
	}
	return c.fd
}

// Display returns the bound VA display, or zero.
func (c *Context) Display() Display {
	if c == nil {
		return 0
	}
	return c.dpy
}

// Hardware reports whether the context was opened in hardware mode.
func (c *Context) Hardware() bool {
	return c != nil && c.hardware
}

// DevicePath returns the DRM node bound to the session, if any.
func (c *Context) DevicePath() string {
	if c == nil {
		return ""
	}
	return c.devicePath
}

// Closed reports whether Close has been called.
func (c *Context) Closed() bool {
	return c == nil || c.closed
}
