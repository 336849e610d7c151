// Package tether opens windows whose content is rendered by the operating
// system's web engine. The windows are driven by a small native adapter
// library (libtether) loaded at run time; this package owns the window
// handles, routes the adapter's callbacks to a Handler, intercepts network
// requests and schedules work on the adapter's event loop.
//
// A program hands control to the event loop with Start and does all window
// work from the function it passes there, or from functions queued with
// Dispatch:
//
//	func main() {
//		err := tether.Start(func() {
//			w := tether.NewWindow(tether.Options{Handler: myHandler{}})
//			w.SetTitle("hello")
//			w.Load("<h1>hello</h1>")
//		})
//		if err != nil {
//			log.Fatal(err)
//		}
//	}
package tether

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// init locks the OS thread so that the main goroutine stays on the thread
// that will run the native event loop. Cocoa, GTK and Win32 all require UI
// calls to come from that thread.
func init() {
	runtime.LockOSThread()
}

var (
	startMu    sync.Mutex
	lib        native
	startEntry func()

	// started and mainThread are written once, inside the start callback.
	started    atomic.Bool
	mainThread atomic.Uint64
)

// Start loads the native library, starts the event loop on the calling
// thread and calls entry from it. It returns when the loop stops (see Exit).
//
// Start must be called from the main goroutine, at most once per process.
func Start(entry func()) error {
	l, err := openLibrary()
	if err != nil {
		return err
	}
	return start(l, entry)
}

func start(n native, entry func()) error {
	startMu.Lock()
	if lib != nil {
		startMu.Unlock()
		return ErrAlreadyStarted
	}
	lib = n
	startEntry = entry
	startMu.Unlock()

	Logger().Debug("tether: starting event loop")
	n.start()
	Logger().Debug("tether: event loop stopped")
	return nil
}

// startCallbackFn is invoked by the native library once its loop is running.
func startCallbackFn() uintptr {
	contain("start", func() {
		mainThread.Store(threadID())
		started.Store(true)
		if startEntry != nil {
			startEntry()
		}
	})
	return 0
}

// Exit stops the event loop as gracefully as possible. Must be called from
// the main thread.
func Exit() {
	assertMain("exit")
	lib.exit()
}

// IsMainThread reports whether the caller runs on the event loop thread.
func IsMainThread() bool {
	return started.Load() && threadID() == mainThread.Load()
}

// assertStarted terminates the process if Start has not reached the event
// loop yet.
func assertStarted(op string) {
	if !started.Load() {
		misuse(op, "called before start-up")
	}
}

// assertMain terminates the process unless the caller runs on the event loop
// thread.
func assertMain(op string) {
	assertStarted(op)
	if threadID() != mainThread.Load() {
		misuse(op, "called off the main thread")
	}
}
