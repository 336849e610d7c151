package tether

import (
	"runtime"
	"sync"
	"unsafe"
)

// NetRequest is a network request made by a window: a page load, an
// XMLHttpRequest, a fetch, an img src. It is only valid while
// Handler.HandleRequest runs.
type NetRequest struct {
	uri string
	raw cNetRequest

	mu        sync.Mutex
	responded bool
	expired   bool
}

// NetResponse replaces the network response of an intercepted request.
type NetResponse struct {
	// StatusCode is the HTTP status code.
	StatusCode int

	// Content is the response body. It is only read during Respond.
	Content []byte
}

// URI returns the URI that was requested by the page.
func (r *NetRequest) URI() string {
	return r.uri
}

// Respond sets the response for this request, bypassing the regular network
// stack. It may be called at most once, from the main thread, before
// HandleRequest returns.
func (r *NetRequest) Respond(res NetResponse) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch {
	case r.expired:
		return ErrRequestExpired
	case r.responded:
		return ErrAlreadyResponded
	case res.StatusCode < 100 || res.StatusCode > 599:
		return ErrInvalidStatus
	}
	assertMain("respond")
	r.responded = true

	raw := &cNetResponse{
		StatusCode:    uintptr(res.StatusCode),
		ContentLength: uintptr(len(res.Content)),
	}

	// Native code copies the body before the responder returns; nothing
	// here outlives the call.
	var pin runtime.Pinner
	defer pin.Unpin()
	pin.Pin(raw)
	if len(res.Content) > 0 {
		first := &res.Content[0]
		pin.Pin(first)
		raw.Content = uintptr(unsafe.Pointer(first))
	}
	lib.respond(&r.raw, raw)
	return nil
}

// Responded reports whether Respond has succeeded.
func (r *NetRequest) Responded() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.responded
}

func (r *NetRequest) expire() {
	r.mu.Lock()
	r.expired = true
	r.mu.Unlock()
}
