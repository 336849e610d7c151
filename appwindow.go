package tether

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"

	"go.uber.org/zap"
)

// DefaultAppHost is the host App serves its handler under.
const DefaultAppHost = "app.tether"

// AppOptions configures App.
type AppOptions struct {
	// Title is the window title.
	Title string

	// Width and Height set the initial window dimensions.
	Width  uint
	Height uint

	// Borderless hides the OS decorations.
	Borderless bool

	// Debug enables the browser developer tools.
	Debug bool

	// Host is the host name the page is served from. Requests for any other
	// host go to the network as usual. Defaults to DefaultAppHost.
	Host string

	// Handler is the HTTP handler to serve (typically an http.ServeMux).
	Handler http.Handler

	// OnMessage receives the strings the page passes to window.tether.
	OnMessage func(w Window, msg string)

	// OnReady is called once the window exists, with the base URL.
	OnReady func(w Window, baseURL string)
}

// App runs an application in a single window whose page is served by an
// http.Handler.
//
// No socket is opened: every request the page makes for opts.Host is
// intercepted and answered by opts.Handler in process. App starts the event
// loop, so it must be called from the main goroutine, and it returns when the
// user closes the window.
func App(opts AppOptions) error {
	if opts.Handler == nil {
		return fmt.Errorf("tether: AppOptions.Handler must not be nil")
	}
	if opts.Width == 0 {
		opts.Width = 1024
	}
	if opts.Height == 0 {
		opts.Height = 768
	}
	if opts.Host == "" {
		opts.Host = DefaultAppHost
	}
	if opts.Title == "" {
		opts.Title = "App"
	}

	baseURL := (&url.URL{Scheme: "http", Host: opts.Host, Path: "/"}).String()

	return Start(func() {
		w := NewWindow(Options{
			InitialWidth:  opts.Width,
			InitialHeight: opts.Height,
			Borderless:    opts.Borderless,
			Debug:         opts.Debug,
			Handler:       newAppHandler(opts),
		})
		w.SetTitle(opts.Title)
		if opts.OnReady != nil {
			opts.OnReady(w, baseURL)
		}
		w.Navigate(baseURL)
	})
}

// appHandler answers intercepted requests with an http.Handler and stops the
// event loop once its window is gone.
type appHandler struct {
	host      string
	handler   http.Handler
	onMessage func(w Window, msg string)
	exit      func()
}

func newAppHandler(opts AppOptions) *appHandler {
	return &appHandler{
		host:      opts.Host,
		handler:   opts.Handler,
		onMessage: opts.OnMessage,
		exit:      Exit,
	}
}

func (h *appHandler) HandleMessage(w Window, msg string) {
	if h.onMessage != nil {
		h.onMessage(w, msg)
	}
}

func (h *appHandler) HandleRequest(req *NetRequest) error {
	res, ok, err := h.serve(req.URI())
	if err != nil || !ok {
		return err
	}
	return req.Respond(res)
}

// serve runs the HTTP handler for uri. ok is false when uri is not addressed
// to the application host.
func (h *appHandler) serve(uri string) (res NetResponse, ok bool, err error) {
	u, err := url.Parse(uri)
	if err != nil {
		return NetResponse{}, false, fmt.Errorf("parse %q: %w", uri, err)
	}
	if u.Host != h.host {
		return NetResponse{}, false, nil
	}

	r, err := http.NewRequest(http.MethodGet, uri, http.NoBody)
	if err != nil {
		return NetResponse{}, false, fmt.Errorf("build request %q: %w", uri, err)
	}
	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, r)

	Logger().Debug("tether: app request",
		zap.String("uri", uri),
		zap.Int("status", rec.Code),
	)
	return NetResponse{
		StatusCode: rec.Code,
		Content:    bytes.Clone(rec.Body.Bytes()),
	}, true, nil
}

// Close stops the event loop when the window is reclaimed.
func (h *appHandler) Close() error {
	if h.exit != nil {
		h.exit()
	}
	return nil
}
