package tether

import (
	"os"
	"runtime/debug"

	"go.uber.org/zap"
)

// exitAbort is the status the process exits with when the native boundary is
// compromised. It matches the status of an unrecovered Go panic.
const exitAbort = 2

// terminate ends the process. Tests replace it.
var terminate = func(code int) {
	os.Exit(code)
}

// contain runs fn, which was called from native code, and terminates the
// process if fn does not return normally. Unwinding into foreign frames is
// never allowed, so a panic or runtime.Goexit stops here.
func contain(boundary string, fn func()) {
	returned := false
	defer func() {
		r := recover()
		if returned {
			return
		}
		Logger().Error("tether: failure at native boundary",
			zap.String("boundary", boundary),
			zap.Any("panic", r),
			zap.ByteString("stack", debug.Stack()),
		)
		_ = Logger().Sync()
		terminate(exitAbort)
	}()
	fn()
	returned = true
}

// misuse terminates the process after a contract violation by the host.
func misuse(op, reason string) {
	Logger().Error("tether: contract violation",
		zap.String("op", op),
		zap.String("reason", reason),
		zap.Stack("stack"),
	)
	_ = Logger().Sync()
	terminate(exitAbort)
}
