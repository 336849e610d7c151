package tether

import (
	"os"
	"path/filepath"
)

// searchDirs returns the directories the native library is looked for in,
// most specific first: $TETHER_PATH, then the executable's directory.
func searchDirs() []string {
	dirs := []string{os.Getenv("TETHER_PATH")}
	if execPath, err := os.Executable(); err == nil {
		dirs = append(dirs, filepath.Dir(execPath))
	}
	return dirs
}

// findLibrary returns the first dirs/name that exists. Otherwise it returns
// the bare name and leaves the search to the system loader.
func findLibrary(name string, dirs ...string) string {
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return name
}
