package tether

// Handler reacts to the events of one window.
//
// Both methods are called on the main thread, never concurrently for the same
// window. A handler that also implements io.Closer is closed exactly once,
// after the native window is gone and no further events can arrive.
type Handler interface {
	// HandleMessage is called when the page calls window.tether(string).
	HandleMessage(w Window, msg string)

	// HandleRequest is called for every network request the page makes:
	// navigations, sub-resources, fetch and XHR. Calling req.Respond replaces
	// the network response; returning without responding lets the request
	// proceed normally. A returned error is logged and treated as not
	// responding.
	HandleRequest(req *NetRequest) error
}

// NopHandler ignores every event. Embed it to implement only part of Handler.
type NopHandler struct{}

func (NopHandler) HandleMessage(Window, string) {}

func (NopHandler) HandleRequest(*NetRequest) error { return nil }

// HandlerFuncs adapts plain functions to Handler and io.Closer. Nil fields
// are ignored.
type HandlerFuncs struct {
	Message func(w Window, msg string)
	Request func(req *NetRequest) error
	Closed  func()
}

func (h HandlerFuncs) HandleMessage(w Window, msg string) {
	if h.Message != nil {
		h.Message(w, msg)
	}
}

func (h HandlerFuncs) HandleRequest(req *NetRequest) error {
	if h.Request != nil {
		return h.Request(req)
	}
	return nil
}

// Close runs the Closed hook.
func (h HandlerFuncs) Close() error {
	if h.Closed != nil {
		h.Closed()
	}
	return nil
}
