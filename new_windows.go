package tether

import (
	"runtime"
	"unsafe"

	"github.com/ebitengine/purego"
)

// bindNew binds tether_new. The Windows x64 and ARM64 conventions pass a
// struct larger than 16 bytes by reference to a caller-owned copy, so the
// callee gets a pointer.
func (l *library) bindNew() {
	l.newFn = func(opts *cOptions) uintptr {
		c := *opts
		var pin runtime.Pinner
		pin.Pin(&c)
		defer pin.Unpin()
		r1, _, _ := purego.SyscallN(l.pNew, uintptr(unsafe.Pointer(&c)))
		return r1
	}
}
