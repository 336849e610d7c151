package tether

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyStarted is returned by Start when the event loop has already
	// been started once in this process.
	ErrAlreadyStarted = errors.New("tether: already started")

	// ErrLibraryNotLoaded is returned when the native adapter library could
	// not be opened.
	ErrLibraryNotLoaded = errors.New("tether: native library handle is nil")

	// ErrAlreadyResponded is returned by NetRequest.Respond on a second call.
	ErrAlreadyResponded = errors.New("tether: request already responded to")

	// ErrRequestExpired is returned by NetRequest.Respond once the
	// interception callback has returned.
	ErrRequestExpired = errors.New("tether: request no longer valid")

	// ErrInvalidStatus is returned by NetRequest.Respond for a status code
	// outside 100-599.
	ErrInvalidStatus = errors.New("tether: invalid status code")

	// ErrInvalidUTF8 reports a native string that is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("invalid utf-8")
)

// DecodeError reports a native string that could not be turned into Go text.
type DecodeError struct {
	Field string // which native field was being decoded
	Data  []byte
	Cause error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("tether: decode %s (%d bytes): %v", e.Field, len(e.Data), e.Cause)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}
