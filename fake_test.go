package tether

import (
	"runtime"
	"sync"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// fakeCall is one call the bridge made into the fake adapter.
type fakeCall struct {
	op     string
	window uintptr
	arg    string
}

// fakeResponse is what a responder received.
type fakeResponse struct {
	ctx     uintptr
	status  int
	content []byte
}

// fakeNative stands in for libtether. It records calls and, like the real
// adapter, invokes the callback entry points on the thread that drives it.
type fakeNative struct {
	mu        sync.Mutex
	calls     []fakeCall
	queue     []uintptr
	windows   map[uintptr]cOptions
	nextRef   uintptr
	nextCtx   uintptr
	responses []fakeResponse
	failNew   bool
}

func newFakeNative() *fakeNative {
	return &fakeNative{
		windows: make(map[uintptr]cOptions),
		nextRef: 0x1000,
	}
}

func (f *fakeNative) record(op string, w uintptr, arg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fakeCall{op: op, window: w, arg: arg})
}

func (f *fakeNative) start() { startCallbackFn() }

func (f *fakeNative) exit() { f.record("exit", 0, "") }

func (f *fakeNative) dispatch(key uintptr) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queue = append(f.queue, key)
}

func (f *fakeNative) newWindow(opts *cOptions) uintptr {
	if f.failNew {
		f.record("new", 0, "failed")
		return 0
	}
	f.mu.Lock()
	f.nextRef++
	ref := f.nextRef
	f.windows[ref] = *opts
	f.mu.Unlock()
	f.record("new", ref, "")
	return ref
}

func (f *fakeNative) eval(w uintptr, js string)      { f.record("eval", w, js) }
func (f *fakeNative) load(w uintptr, html string)    { f.record("load", w, html) }
func (f *fakeNative) navigate(w uintptr, uri string) { f.record("navigate", w, uri) }
func (f *fakeNative) title(w uintptr, title string)  { f.record("title", w, title) }
func (f *fakeNative) focus(w uintptr)                { f.record("focus", w, "") }
func (f *fakeNative) close(w uintptr)                { f.record("close", w, "") }

func (f *fakeNative) respond(req *cNetRequest, res *cNetResponse) {
	var content []byte
	if res.ContentLength > 0 {
		content = make([]byte, res.ContentLength)
		copy(content, unsafe.Slice((*byte)(toPointer(res.Content)), res.ContentLength))
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses = append(f.responses, fakeResponse{
		ctx:     req.RespondCtx,
		status:  int(res.StatusCode),
		content: content,
	})
}

// pump runs the dispatched functions queued so far and returns how many.
func (f *fakeNative) pump() int {
	f.mu.Lock()
	queue := f.queue
	f.queue = nil
	f.mu.Unlock()

	for _, key := range queue {
		dispatchCallbackFn(key)
	}
	return len(queue)
}

func (f *fakeNative) data(ref uintptr) uintptr {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.windows[ref].Data
}

func (f *fakeNative) options(ref uintptr) cOptions {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.windows[ref]
}

// message delivers raw bytes as if the page called window.tether.
func (f *fakeNative) message(ref uintptr, msg []byte) {
	buf := append(append([]byte{}, msg...), 0)
	var pin runtime.Pinner
	pin.Pin(&buf[0])
	defer pin.Unpin()
	messageCallbackFn(f.data(ref), uintptr(unsafe.Pointer(&buf[0])))
}

// request runs the net_request callback for uri and returns the response the
// bridge substituted, if any.
func (f *fakeNative) request(ref uintptr, uri []byte) (fakeResponse, bool) {
	buf := append(append([]byte{}, uri...), 0)

	f.mu.Lock()
	f.nextCtx++
	ctx := f.nextCtx
	f.mu.Unlock()

	raw := &cNetRequest{RespondCtx: ctx}
	var pin runtime.Pinner
	pin.Pin(&buf[0])
	pin.Pin(raw)
	defer pin.Unpin()
	raw.RequestURI = uintptr(unsafe.Pointer(&buf[0]))

	netRequestCallbackFn(f.data(ref), uintptr(unsafe.Pointer(raw)))

	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.responses {
		if r.ctx == ctx {
			return r, true
		}
	}
	return fakeResponse{}, false
}

// closed reports the native window gone.
func (f *fakeNative) closed(ref uintptr) {
	closedCallbackFn(f.data(ref))
}

func (f *fakeNative) callsFor(op string) []fakeCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []fakeCall
	for _, c := range f.calls {
		if c.op == op {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeNative) allCalls() []fakeCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]fakeCall(nil), f.calls...)
}

func resetBridge() {
	startMu.Lock()
	lib = nil
	startEntry = nil
	startMu.Unlock()
	started.Store(false)
	mainThread.Store(0)
	contexts = table[*windowContext]{}
	pending = table[func()]{}
}

// startFake starts the bridge on a fake adapter with the test goroutine as
// the main thread.
func startFake(t *testing.T) *fakeNative {
	t.Helper()
	runtime.LockOSThread()
	resetBridge()

	f := newFakeNative()
	entered := false
	require.NoError(t, start(f, func() { entered = true }))
	require.True(t, entered, "start entry not called")

	t.Cleanup(func() {
		resetBridge()
		runtime.UnlockOSThread()
	})
	return f
}

// terminated is the panic value of the stubbed terminate.
type terminated struct {
	code int
}

func stubTerminate(t *testing.T) {
	t.Helper()
	old := terminate
	terminate = func(code int) { panic(terminated{code: code}) }
	t.Cleanup(func() { terminate = old })
}

func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	old := Logger()
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(old) })
	return logs
}
