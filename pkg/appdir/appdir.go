package appdir

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// EnvHome overrides the application directory when set.
const EnvHome = "LIL_HOME"

var (
	appDirCache string
	mu          sync.Mutex
)

// AppDir returns the directory lil-go keeps its databases in: $LIL_HOME, or
// ~/.lil-go when unset.
func AppDir() (string, error) {
	mu.Lock()
	defer mu.Unlock()
	if appDirCache != "" {
		return appDirCache, nil
	}
	if dir := os.Getenv(EnvHome); dir != "" {
		appDirCache = dir
		return appDirCache, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("appdir: cannot resolve home directory: %w", err)
	}
	appDirCache = filepath.Join(home, ".lil-go")
	return appDirCache, nil
}

// Ensure creates the application directory if needed and returns it.
func Ensure() (string, error) {
	dir, err := AppDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("appdir: cannot create %s: %w", dir, err)
	}
	return dir, nil
}

// Path joins name onto the application directory, creating the directory.
// Absolute names are returned unchanged.
func Path(name string) (string, error) {
	if filepath.IsAbs(name) {
		return name, nil
	}
	dir, err := Ensure()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}
