// Package app is the demo host: it logs what the page says, serves the
// resource tree through interception and stops the event loop when its
// window goes away.
package app

import (
	"sync"

	"github.com/crgimenes/tether"
	"github.com/crgimenes/tether/internal/resources"
	"go.uber.org/zap"
)

// CloseMessage is the message a page sends to close its own window.
const CloseMessage = "close"

// Handler is the demo's tether.Handler.
type Handler struct {
	log  *zap.Logger
	res  *resources.Interceptor
	exit func()

	mu      sync.Mutex
	cleanup []func() error
}

// NewHandler returns a handler serving res. exit runs once the window has
// been reclaimed; pass tether.Exit to stop the program with its window.
func NewHandler(log *zap.Logger, res *resources.Interceptor, exit func()) *Handler {
	return &Handler{
		log:  log.With(zap.String("component", "app")),
		res:  res,
		exit: exit,
	}
}

// OnClose registers fn to run when the window is reclaimed, before exit.
func (h *Handler) OnClose(fn func() error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cleanup = append(h.cleanup, fn)
}

func (h *Handler) HandleMessage(w tether.Window, msg string) {
	h.log.Info("received", zap.String("message", msg))
	if msg == CloseMessage {
		w.Close()
	}
}

func (h *Handler) HandleRequest(req *tether.NetRequest) error {
	return h.res.HandleRequest(req)
}

// Close runs the cleanup hooks and then exit.
func (h *Handler) Close() error {
	h.mu.Lock()
	cleanup := h.cleanup
	h.cleanup = nil
	h.mu.Unlock()

	for _, fn := range cleanup {
		if err := fn(); err != nil {
			h.log.Warn("cleanup failed", zap.Error(err))
		}
	}

	h.log.Info("exiting")
	if h.exit != nil {
		h.exit()
	}
	return nil
}
