package tether

import (
	"fmt"

	"golang.org/x/sys/windows"
)

func libraryPath() string {
	return findLibrary("tether.dll", searchDirs()...)
}

func loadLibrary(name string) (uintptr, error) {
	handle, err := windows.LoadLibrary(name)
	return uintptr(handle), err
}

func loadSymbol(lib uintptr, name string) (uintptr, error) {
	ptr, err := windows.GetProcAddress(windows.Handle(lib), name)
	if err != nil {
		return 0, fmt.Errorf("tether: failed to load symbol %s: %w", name, err)
	}
	return ptr, nil
}
