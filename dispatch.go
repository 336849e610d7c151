package tether

import "go.uber.org/zap"

// pending holds functions queued with Dispatch until the loop runs them.
var pending table[func()]

// Dispatch schedules fn to run on the main thread. It is safe to call from
// any goroutine once the event loop has started. fn runs exactly once; there
// is no ordering between dispatched functions and no way to cancel one.
func Dispatch(fn func()) {
	assertStarted("dispatch")
	if fn == nil {
		return
	}
	key := pending.add(fn)
	lib.dispatch(key)
}

// dispatchCallbackFn executes a function posted with Dispatch on the main thread.
func dispatchCallbackFn(key uintptr) uintptr {
	contain("dispatch", func() {
		fn, ok := pending.remove(key)
		if !ok {
			Logger().Warn("tether: unknown dispatch key", zap.Uint64("key", uint64(key)))
			return
		}
		fn()
	})
	return 0
}
