package msdk

import (
	"context"
	"fmt"

	"github.com/facebookincubator/go-belt/tool/logger"
)

// OpenSession opens a runtime session, software or any hardware
// implementation, at RequestedVersion. The selected implementation and the
// runtime version are queried for diagnostics only; a failed query is logged
// and does not abort.
func OpenSession(ctx context.Context, rt Runtime, hardware bool) (Session, error) {
	impl := ImplSoftware
	if hardware {
		impl = ImplHardwareAny
	}

	session, status := rt.Init(impl, RequestedVersion)
	if status != StatusNone {
		logger.Errorf(ctx, "Intel Media SDK not available (%s)", status.String())
		err := fmt.Errorf("%w: %w", ErrUnavailable, statusErr("MFXInit", status))
		if le, ok := rt.(RuntimeLoadError); ok {
			if loadErr := le.LoadError(); loadErr != nil {
				err = fmt.Errorf("%w: %w", err, loadErr)
			}
		}
		// A session reported alongside a failure status is still released.
		CloseSession(ctx, rt, session)
		return 0, err
	}

	actual, status := rt.QueryIMPL(session)
	if status != StatusNone {
		logger.Errorf(ctx, "Query implementation failed (%s)", status.String())
	} else {
		logger.Infof(ctx, "MSDK implementation: 0x%04x (%s)", int32(actual), actual.BaseType())
	}

	version, status := rt.QueryVersion(session)
	if status != StatusNone {
		logger.Errorf(ctx, "Query version failed (%s)", status.String())
	} else {
		logger.Infof(ctx, "MSDK version: %s", version)
	}

	return session, nil
}

// CloseSession closes a session. An absent session is a no-op; a failing
// close is logged and otherwise ignored so teardown always completes.
func CloseSession(ctx context.Context, rt Runtime, session Session) {
	if !session.Valid() {
		return
	}
	if status := rt.Close(session); status != StatusNone {
		logger.Errorf(ctx, "Close failed (%s)", status.String())
	}
}

// IsAvailable reports whether a software session can be opened with the
// default runtime.
func IsAvailable(ctx context.Context) bool {
	return IsAvailableWith(ctx, DefaultRuntime())
}

// IsAvailableWith opens and immediately closes a software session.
func IsAvailableWith(ctx context.Context, rt Runtime) bool {
	session, err := OpenSession(ctx, rt, false)
	if err != nil {
		return false
	}
	CloseSession(ctx, rt, session)
	return true
}
