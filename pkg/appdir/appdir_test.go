package appdir

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPathUsesEnvHome(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "home")
	t.Setenv(EnvHome, dir)
	mu.Lock()
	appDirCache = ""
	mu.Unlock()
	t.Cleanup(func() {
		mu.Lock()
		appDirCache = ""
		mu.Unlock()
	})

	p, err := Path("store.db")
	if err != nil {
		t.Fatalf("Path failed: %v", err)
	}
	if p != filepath.Join(dir, "store.db") {
		t.Errorf("expected %q, got %q", filepath.Join(dir, "store.db"), p)
	}
	if st, err := os.Stat(dir); err != nil || !st.IsDir() {
		t.Errorf("expected %s to be created, stat err=%v", dir, err)
	}

	abs := filepath.Join(t.TempDir(), "x.db")
	if p, _ := Path(abs); p != abs {
		t.Errorf("expected absolute path unchanged, got %q", p)
	}
}
