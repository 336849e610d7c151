package tether

import (
	"unicode/utf8"
	"unsafe"
)

func cString(s string) ([]byte, unsafe.Pointer) {
	b := append([]byte(s), 0)
	return b, unsafe.Pointer(&b[0])
}

// toPointer converts an address handed over by native code.
func toPointer(c uintptr) unsafe.Pointer {
	// We take the address and then dereference it to avoid go vet reporting
	// a possible misuse of unsafe.Pointer on direct uintptr conversion.
	return *(*unsafe.Pointer)(unsafe.Pointer(&c))
}

// goBytes copies a NUL-terminated native string. A nil pointer yields nil.
func goBytes(c uintptr) []byte {
	ptr := toPointer(c)
	if ptr == nil {
		return nil
	}
	var length int
	for *(*byte)(unsafe.Add(ptr, uintptr(length))) != '\x00' {
		length++
	}
	out := make([]byte, length)
	copy(out, unsafe.Slice((*byte)(ptr), length))
	return out
}

// decodeText validates b as UTF-8. Native strings carry no encoding
// guarantee.
func decodeText(field string, b []byte) (string, error) {
	if !utf8.Valid(b) {
		return "", &DecodeError{Field: field, Data: b, Cause: ErrInvalidUTF8}
	}
	return string(b), nil
}
