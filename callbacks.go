package tether

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
)

// The *CallbackFn functions are the entry points native code calls for a
// window. data is the key the window was registered under in NewWindow.

// messageCallbackFn is invoked when the page calls window.tether(string).
func messageCallbackFn(data, message uintptr) uintptr {
	contain("message", func() {
		deliverMessage(data, message)
	})
	return 0
}

// netRequestCallbackFn is invoked for every network request of a window.
func netRequestCallbackFn(data, req uintptr) uintptr {
	contain("net_request", func() {
		if err := deliverRequest(data, req); err != nil {
			Logger().Error("tether: request not intercepted",
				zap.Uint64("window", uint64(data)),
				zap.Error(err),
			)
		}
	})
	return 0
}

// closedCallbackFn is invoked once the native window and all its resources
// are gone. No other callback for data follows.
func closedCallbackFn(data uintptr) uintptr {
	contain("closed", func() {
		reclaim(data)
	})
	return 0
}

func deliverMessage(key, message uintptr) {
	ctx, ok := contexts.get(key)
	if !ok {
		Logger().Warn("tether: message for unknown window", zap.Uint64("window", uint64(key)))
		return
	}

	text, err := decodeText("message", goBytes(message))
	if err != nil {
		Logger().Error("tether: dropping message",
			zap.Uint64("window", uint64(key)),
			zap.Error(err),
		)
		return
	}
	ctx.handler.HandleMessage(ctx.win, text)
}

func deliverRequest(key, ptr uintptr) error {
	ctx, ok := contexts.get(key)
	if !ok {
		Logger().Warn("tether: request for unknown window", zap.Uint64("window", uint64(key)))
		return nil
	}
	if toPointer(ptr) == nil {
		return errors.New("tether: nil request record")
	}

	raw := *(*cNetRequest)(toPointer(ptr))
	uri, err := decodeText("request_uri", goBytes(raw.RequestURI))
	if err != nil {
		return err
	}

	req := &NetRequest{uri: uri, raw: raw}
	defer req.expire()

	if err := ctx.handler.HandleRequest(req); err != nil {
		return fmt.Errorf("tether: handle request %s: %w", uri, err)
	}
	if req.Responded() {
		Logger().Debug("tether: request intercepted",
			zap.Uint64("window", uint64(key)),
			zap.String("uri", uri),
		)
	}
	return nil
}

// reclaim drops the context registered under key and disposes its handler.
// Only the first call for a key has any effect.
func reclaim(key uintptr) {
	ctx, ok := contexts.remove(key)
	if !ok {
		Logger().Warn("tether: closed callback for unknown window", zap.Uint64("window", uint64(key)))
		return
	}
	ctx.win.clear()
	Logger().Debug("tether: window reclaimed", zap.Uint64("window", uint64(key)))

	if c, ok := ctx.handler.(io.Closer); ok {
		if err := c.Close(); err != nil {
			Logger().Error("tether: closing handler",
				zap.Uint64("window", uint64(key)),
				zap.Error(err),
			)
		}
	}
}
