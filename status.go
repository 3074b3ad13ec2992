package msdk

import "fmt"

// Status is an accelerator runtime status code (mfxStatus).
// Negative values are errors, positive values are warnings.
type Status int32

// Status codes from mfxdefs.h.
const (
	StatusNone Status = 0

	StatusUnknown                Status = -1
	StatusNullPtr                Status = -2
	StatusUnsupported            Status = -3
	StatusMemoryAlloc            Status = -4
	StatusNotEnoughBuffer        Status = -5
	StatusInvalidHandle          Status = -6
	StatusLockMemory             Status = -7
	StatusNotInitialized         Status = -8
	StatusNotFound               Status = -9
	StatusMoreData               Status = -10
	StatusMoreSurface            Status = -11
	StatusAborted                Status = -12
	StatusDeviceLost             Status = -13
	StatusIncompatibleVideoParam Status = -14
	StatusInvalidVideoParam      Status = -15
	StatusUndefinedBehavior      Status = -16
	StatusDeviceFailed           Status = -17
	StatusMoreBitstream          Status = -18
	StatusIncompatibleAudioParam Status = -19
	StatusInvalidAudioParam      Status = -20

	StatusWarnInExecution            Status = 1
	StatusWarnDeviceBusy             Status = 2
	StatusWarnVideoParamChanged      Status = 3
	StatusWarnPartialAcceleration    Status = 4
	StatusWarnIncompatibleVideoParam Status = 5
	StatusWarnValueNotChanged        Status = 6
	StatusWarnOutOfRange             Status = 7
	StatusWarnFilterSkipped          Status = 10
	StatusWarnIncompatibleAudioParam Status = 11
)

const statusUndefined = "undefined error"

var statusText = map[Status]string{
	StatusNone: "no error",

	StatusUnknown:                "unknown error",
	StatusNullPtr:                "null pointer",
	StatusUnsupported:            "undeveloped feature",
	StatusMemoryAlloc:            "failed to allocate memory",
	StatusNotEnoughBuffer:        "insufficient buffer at input/output",
	StatusInvalidHandle:          "invalid handle",
	StatusLockMemory:             "failed to lock the memory block",
	StatusNotInitialized:         "member function called before initialization",
	StatusNotFound:               "the specified object is not found",
	StatusMoreData:               "expect more data at input",
	StatusMoreSurface:            "expect more surface at output",
	StatusAborted:                "operation aborted",
	StatusDeviceLost:             "lose the HW acceleration device",
	StatusIncompatibleVideoParam: "incompatible video parameters",
	StatusInvalidVideoParam:      "invalid video parameters",
	StatusUndefinedBehavior:      "undefined behavior",
	StatusDeviceFailed:           "device operation failure",
	StatusMoreBitstream:          "expect more bitstream buffers at output",
	StatusIncompatibleAudioParam: "incompatible audio parameters",
	StatusInvalidAudioParam:      "invalid audio parameters",

	StatusWarnInExecution:            "the previous asynchronous operation is in execution",
	StatusWarnDeviceBusy:             "the HW acceleration device is busy",
	StatusWarnVideoParamChanged:      "the video parameters are changed during decoding",
	StatusWarnPartialAcceleration:    "SW is used",
	StatusWarnIncompatibleVideoParam: "incompatible video parameters",
	StatusWarnValueNotChanged:        "the value is saturated based on its valid range",
	StatusWarnOutOfRange:             "the value is out of valid range",
	StatusWarnFilterSkipped:          "one of requested filters has been skipped",
	StatusWarnIncompatibleAudioParam: "incompatible audio parameters",
}

// StatusToString returns a human-readable description of a status code.
// Codes outside the known table yield "undefined error".
func StatusToString(code int32) string {
	return Status(code).String()
}

func (s Status) String() string {
	if text, ok := statusText[s]; ok {
		return text
	}
	return statusUndefined
}

// Defined reports whether s is one of the known status codes.
func (s Status) Defined() bool {
	_, ok := statusText[s]
	return ok
}

// IsError returns true for error statuses (< 0).
func (s Status) IsError() bool { return s < 0 }

// IsWarning returns true for warning statuses (> 0).
func (s Status) IsWarning() bool { return s > 0 }

// Error lets a Status be used as an error value, so errors.Is can match
// a specific code through a StatusError chain.
func (s Status) Error() string {
	return fmt.Sprintf("%s (%d)", s.String(), int32(s))
}

// StatusError reports a non-success status returned by an accelerator call.
type StatusError struct {
	Op     string
	Status Status
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s failed: %s", e.Op, e.Status.String())
}

func (e *StatusError) Unwrap() error {
	return e.Status
}

// statusErr returns nil for StatusNone and a *StatusError otherwise.
func statusErr(op string, s Status) error {
	if s == StatusNone {
		return nil
	}
	return &StatusError{Op: op, Status: s}
}

// VAStatus is a libva status code.
type VAStatus int32

// VAStatusSuccess is the only libva status this package interprets.
const VAStatusSuccess VAStatus = 0
