package tether

// The structs below mirror native/tether.h field for field. Order, sizes and
// alignment are part of the contract with the native adapter; keep them in
// sync with the header.

// cOptions mirrors tether_options.
type cOptions struct {
	InitialWidth  uintptr
	InitialHeight uintptr
	MinimumWidth  uintptr
	MinimumHeight uintptr
	Borderless    bool
	Debug         bool
	Data          uintptr // opaque to native code, a window registry key
	Message       uintptr // void (*)(void *data, const char *message)
	Closed        uintptr // void (*)(void *data)
	NetRequest    uintptr // void (*)(void *data, tether_net_request *req)
}

// cNetRequest mirrors tether_net_request. It is owned by native code and only
// valid for the duration of the net_request callback.
type cNetRequest struct {
	RequestURI uintptr // const char *
	RespondCtx uintptr // const void *
	Respond    uintptr // void (*)(const void *ctx, const tether_net_response *res)
}

// cNetResponse mirrors tether_net_response.
type cNetResponse struct {
	StatusCode    uintptr
	Content       uintptr // const uint8_t *
	ContentLength uintptr
}

// native is the set of functions the adapter library exports. The purego
// binding in library.go is the production implementation.
//
// Callback function pointers are owned by the implementation: newWindow fills
// the Message, Closed and NetRequest fields of opts, start and dispatch pass
// their own entry points. Those entry points must end up in the *CallbackFn
// functions of callbacks.go.
type native interface {
	start()
	exit()
	dispatch(key uintptr)
	newWindow(opts *cOptions) uintptr
	eval(w uintptr, js string)
	load(w uintptr, html string)
	navigate(w uintptr, uri string)
	title(w uintptr, title string)
	focus(w uintptr)
	close(w uintptr)
	respond(req *cNetRequest, res *cNetResponse)
}
