//go:build darwin || linux

package tether

import (
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/ebitengine/purego"
)

func libraryPath() string {
	dirs := searchDirs()
	if runtime.GOOS != "darwin" {
		return findLibrary("libtether.so", dirs...)
	}
	if len(dirs) > 1 {
		// App bundles keep libraries in Contents/Frameworks.
		dirs = append(dirs, filepath.Join(dirs[1], "..", "Frameworks"))
	}
	return findLibrary("libtether.dylib", dirs...)
}

func loadLibrary(name string) (uintptr, error) {
	return purego.Dlopen(name, purego.RTLD_LAZY|purego.RTLD_GLOBAL)
}

func loadSymbol(lib uintptr, name string) (uintptr, error) {
	ptr, err := purego.Dlsym(lib, name)
	if err != nil {
		return 0, fmt.Errorf("tether: failed to load symbol %s: %w", name, err)
	}
	return ptr, nil
}
