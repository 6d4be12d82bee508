package errors

import (
	"runtime"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

// handlerSlot wraps the handler so atomic.Pointer has a concrete type.
type handlerSlot struct{ h ErrorHandler }

var current atomic.Pointer[handlerSlot]

func init() {
	current.Store(&handlerSlot{h: &LogHandler{}})
}

// SetHandler replaces the process-wide handler. Nil restores a LogHandler on
// the logrus standard logger.
func SetHandler(h ErrorHandler) {
	if h == nil {
		h = &LogHandler{}
	}
	current.Store(&handlerSlot{h: h})
}

// Handler returns the process-wide handler.
func Handler() ErrorHandler {
	return current.Load().h
}

// HandlerFuncs adapts plain functions to [ErrorHandler]. Nil fields drop the
// corresponding reports.
type HandlerFuncs struct {
	OnError func(*ToggleError)
	OnPanic func(*PanicError)
}

func (f HandlerFuncs) HandleError(err *ToggleError) {
	if f.OnError != nil {
		f.OnError(err)
	}
}

func (f HandlerFuncs) HandlePanic(err *PanicError) {
	if f.OnPanic != nil {
		f.OnPanic(err)
	}
}

// Report stamps err if needed and hands it to the handler.
func Report(err *ToggleError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	Handler().HandleError(err)
}

// ReportPanic hands a recovered panic to the handler.
func ReportPanic(err *PanicError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	Handler().HandlePanic(err)
}

// Recover reports a panic in progress. Use it directly in a defer:
//
//	defer errors.Recover("loop.timer")
func Recover(op string) {
	if r := recover(); r != nil {
		ReportPanic(newPanic(op, r))
	}
}

// RecoverWithCallback is Recover that also passes the reported error to
// callback, so the caller can turn the panic into a return value.
func RecoverWithCallback(op string, callback func(*PanicError)) {
	if r := recover(); r != nil {
		p := newPanic(op, r)
		ReportPanic(p)
		if callback != nil {
			callback(p)
		}
	}
}

func newPanic(op string, value any) *PanicError {
	return &PanicError{Op: op, Value: value, StackTrace: captureStack(4), Timestamp: time.Now()}
}

// CaptureStack returns the caller's stack, one "function\n\tfile:line" entry
// per frame.
func CaptureStack() string {
	return captureStack(3)
}

func captureStack(skip int) string {
	var pcs [32]uintptr
	n := runtime.Callers(skip, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])
	var sb strings.Builder
	for n > 0 {
		frame, more := frames.Next()
		if !strings.HasPrefix(frame.Function, "runtime.") {
			sb.WriteString(frame.Function + "\n\t" + frame.File + ":" + strconv.Itoa(frame.Line) + "\n")
		}
		if !more {
			break
		}
	}
	return sb.String()
}
