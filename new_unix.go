//go:build darwin || linux

package tether

import "github.com/ebitengine/purego"

// bindNew binds tether_new. System V passes a struct of this size on the
// stack and AAPCS64 by reference to a copy; purego's struct arguments follow
// both.
func (l *library) bindNew() {
	var fn func(opts cOptions) uintptr
	purego.RegisterFunc(&fn, l.pNew)
	l.newFn = func(opts *cOptions) uintptr {
		return fn(*opts)
	}
}
