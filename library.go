package tether

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
)

// Global once to load native library symbols.
var loadOnce sync.Once

// Library loaded by openLibrary and the failure (if any) returned to every
// later caller.
var (
	loaded  *library
	loadErr error
)

// library binds the native adapter through purego. All pointers are resolved
// once by openLibrary.
type library struct {
	pStart    uintptr
	pDispatch uintptr
	pExit     uintptr
	pNew      uintptr
	pEval     uintptr
	pLoad     uintptr
	pNavigate uintptr
	pTitle    uintptr
	pFocus    uintptr
	pClose    uintptr

	// newFn calls tether_new, which takes tether_options by value. How a
	// struct argument is passed depends on the platform ABI; see bindNew.
	newFn func(opts *cOptions) uintptr

	startCallback      uintptr
	dispatchCallback   uintptr
	messageCallback    uintptr
	closedCallback     uintptr
	netRequestCallback uintptr
}

func openLibrary() (*library, error) {
	loadOnce.Do(func() {
		libHandle, err := loadLibrary(libraryPath())
		if err != nil {
			loadErr = fmt.Errorf("tether: failed to load native library: %w", err)
			return
		}
		if libHandle == 0 {
			loadErr = ErrLibraryNotLoaded
			return
		}
		loaded, loadErr = bindLibrary(libHandle)
	})
	if loadErr != nil {
		return nil, loadErr
	}
	if loaded == nil {
		return nil, errors.New("tether: native symbols are not initialized")
	}
	return loaded, nil
}

// bindLibrary resolves the adapter's symbols in an opened library.
func bindLibrary(libHandle uintptr) (*library, error) {
	l := &library{}
	symbols := []struct {
		ptr  *uintptr
		name string
	}{
		{&l.pStart, "tether_start"},
		{&l.pDispatch, "tether_dispatch"},
		{&l.pExit, "tether_exit"},
		{&l.pNew, "tether_new"},
		{&l.pEval, "tether_eval"},
		{&l.pLoad, "tether_load"},
		{&l.pNavigate, "tether_navigate"},
		{&l.pTitle, "tether_title"},
		{&l.pFocus, "tether_focus"},
		{&l.pClose, "tether_close"},
	}
	for _, s := range symbols {
		ptr, err := loadSymbol(libHandle, s.name)
		if err != nil {
			return nil, err
		}
		*s.ptr = ptr
	}
	l.bindNew()

	// purego callbacks are never released, so they are created exactly once.
	l.startCallback = purego.NewCallback(startCallbackFn)
	l.dispatchCallback = purego.NewCallback(dispatchCallbackFn)
	l.messageCallback = purego.NewCallback(messageCallbackFn)
	l.closedCallback = purego.NewCallback(closedCallbackFn)
	l.netRequestCallback = purego.NewCallback(netRequestCallbackFn)
	return l, nil
}

func (l *library) start() {
	purego.SyscallN(l.pStart, l.startCallback)
}

func (l *library) exit() {
	purego.SyscallN(l.pExit)
}

func (l *library) dispatch(key uintptr) {
	purego.SyscallN(l.pDispatch, key, l.dispatchCallback)
}

func (l *library) newWindow(opts *cOptions) uintptr {
	opts.Message = l.messageCallback
	opts.Closed = l.closedCallback
	opts.NetRequest = l.netRequestCallback
	return l.newFn(opts)
}

func (l *library) eval(w uintptr, js string) {
	l.callString(l.pEval, w, js)
}

func (l *library) load(w uintptr, html string) {
	l.callString(l.pLoad, w, html)
}

func (l *library) navigate(w uintptr, uri string) {
	l.callString(l.pNavigate, w, uri)
}

func (l *library) title(w uintptr, title string) {
	l.callString(l.pTitle, w, title)
}

func (l *library) focus(w uintptr) {
	purego.SyscallN(l.pFocus, w)
}

func (l *library) close(w uintptr) {
	purego.SyscallN(l.pClose, w)
}

// respond calls the responder handed over in a tether_net_request. The
// response and its content must be pinned by the caller.
func (l *library) respond(req *cNetRequest, res *cNetResponse) {
	purego.SyscallN(req.Respond, req.RespondCtx, uintptr(unsafe.Pointer(res)))
}

func (l *library) callString(fn, w uintptr, s string) {
	cs, ptr := cString(s)
	purego.SyscallN(fn, w, uintptr(ptr))
	runtime.KeepAlive(cs)
}
