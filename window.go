package tether

import (
	"sync"

	"go.uber.org/zap"
)

// Default window geometry, in pixels.
const (
	DefaultInitialWidth  = 640
	DefaultInitialHeight = 480
	DefaultMinimumWidth  = 480
	DefaultMinimumHeight = 360
)

// Options configures a window. They are read once by NewWindow.
//
// Note that sizes are mostly suggestions: the native adapter and the window
// manager may adjust them.
type Options struct {
	// InitialWidth and InitialHeight set the initial window size.
	InitialWidth  uint
	InitialHeight uint

	// MinimumWidth and MinimumHeight bound interactive resizing.
	MinimumWidth  uint
	MinimumHeight uint

	// Borderless hides the title bar and other OS decorations.
	Borderless bool

	// Debug enables the web engine's developer tools.
	Debug bool

	// Handler receives the window's events. Nil ignores them.
	Handler Handler
}

func (o Options) withDefaults() Options {
	if o.InitialWidth == 0 {
		o.InitialWidth = DefaultInitialWidth
	}
	if o.InitialHeight == 0 {
		o.InitialHeight = DefaultInitialHeight
	}
	if o.MinimumWidth == 0 {
		o.MinimumWidth = DefaultMinimumWidth
	}
	if o.MinimumHeight == 0 {
		o.MinimumHeight = DefaultMinimumHeight
	}
	if o.Handler == nil {
		o.Handler = NopHandler{}
	}
	return o
}

// Window is a window, which may or may not be open. Copies of a Window refer
// to the same native window. The zero Window is a closed window.
//
// All methods must be called from the main thread. On a closed window they do
// nothing.
type Window struct {
	s *windowState
}

type windowState struct {
	mu     sync.Mutex
	ref    uintptr // native tether handle, 0 when not open
	closed bool
	key    uintptr
}

// windowContext ties a native window to its handler. It lives in the contexts
// table from NewWindow until the native closed callback.
type windowContext struct {
	win     Window
	handler Handler
}

var contexts table[*windowContext]

// NewWindow opens a new window. The window may not be visible yet when
// NewWindow returns. Must be called from the main thread.
func NewWindow(opts Options) Window {
	assertMain("new window")
	opts = opts.withDefaults()

	w := Window{s: &windowState{}}
	key := contexts.add(&windowContext{win: w, handler: opts.Handler})
	w.s.key = key

	raw := cOptions{
		InitialWidth:  uintptr(opts.InitialWidth),
		InitialHeight: uintptr(opts.InitialHeight),
		MinimumWidth:  uintptr(opts.MinimumWidth),
		MinimumHeight: uintptr(opts.MinimumHeight),
		Borderless:    opts.Borderless,
		Debug:         opts.Debug,
		Data:          key,
	}
	ref := lib.newWindow(&raw)
	if ref == 0 {
		// No native window means no closed callback; reclaim here.
		Logger().Error("tether: native window creation failed", zap.Uint64("window", uint64(key)))
		reclaim(key)
		return w
	}

	w.s.mu.Lock()
	if !w.s.closed {
		w.s.ref = ref
	}
	w.s.mu.Unlock()

	Logger().Debug("tether: window created", zap.Uint64("window", uint64(key)))
	return w
}

// WithHandler opens a window with the default options and the given handler.
func WithHandler(h Handler) Window {
	return NewWindow(Options{Handler: h})
}

// Eval evaluates the given JavaScript asynchronously.
func (w Window) Eval(js string) {
	if ref := w.native("eval"); ref != 0 {
		lib.eval(ref, js)
	}
}

// Load displays the given HTML asynchronously.
func (w Window) Load(html string) {
	if ref := w.native("load"); ref != 0 {
		lib.load(ref, html)
	}
}

// Navigate loads the given URI asynchronously.
func (w Window) Navigate(uri string) {
	if ref := w.native("navigate"); ref != 0 {
		lib.navigate(ref, uri)
	}
}

// SetTitle sets the window's title.
func (w Window) SetTitle(title string) {
	if ref := w.native("title"); ref != 0 {
		lib.title(ref, title)
	}
}

// Focus moves the window in front of the other windows. It does not steal
// the focus from other applications.
func (w Window) Focus() {
	if ref := w.native("focus"); ref != 0 {
		lib.focus(ref)
	}
}

// Close closes the window. The handler is released later, when the native
// adapter reports the window gone.
func (w Window) Close() {
	assertMain("close")
	if w.s == nil {
		return
	}
	w.s.mu.Lock()
	ref := w.s.ref
	w.s.ref = 0
	w.s.closed = true
	w.s.mu.Unlock()

	if ref != 0 {
		Logger().Debug("tether: closing window", zap.Uint64("window", uint64(w.s.key)))
		lib.close(ref)
	}
}

// Closed reports whether the window has been closed (or never opened).
func (w Window) Closed() bool {
	if w.s == nil {
		return true
	}
	w.s.mu.Lock()
	defer w.s.mu.Unlock()
	return w.s.closed || w.s.ref == 0
}

// native returns the native handle, or 0 when closed. The lock is not held
// while native code runs since it may call back into this window.
func (w Window) native(op string) uintptr {
	assertMain(op)
	if w.s == nil {
		return 0
	}
	w.s.mu.Lock()
	defer w.s.mu.Unlock()
	return w.s.ref
}

// clear marks the window closed for good.
func (w Window) clear() {
	if w.s == nil {
		return
	}
	w.s.mu.Lock()
	w.s.ref = 0
	w.s.closed = true
	w.s.mu.Unlock()
}
