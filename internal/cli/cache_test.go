package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/texbox/pkg/cache"
)

func TestCachePath(t *testing.T) {
	out, err := runCLI(t, "cache", "path")
	if err != nil {
		t.Fatalf("cache path error = %v", err)
	}
	want := filepath.Join(os.Getenv("XDG_CACHE_HOME"), "texbox")
	if got := strings.TrimSpace(out); got != want {
		t.Errorf("cache path = %q, want %q", got, want)
	}
}

func TestCacheClear(t *testing.T) {
	// Populate the cache through a render, then clear it.
	dir := t.TempDir()
	if _, err := runCLI(t, "render", "-o", filepath.Join(dir, "f.svg"), "x^2"); err != nil {
		t.Fatalf("render error = %v", err)
	}
	cacheDir := filepath.Join(os.Getenv("XDG_CACHE_HOME"), "texbox")

	fc, err := cache.NewFileCache(cacheDir)
	if err != nil {
		t.Fatal(err)
	}
	if err := fc.Set(context.Background(), "extra", []byte("x"), time.Hour); err != nil {
		t.Fatal(err)
	}

	c := New(os.Stderr, LogInfo)
	c.Out = new(strings.Builder)
	captureStatus(t)
	cmd := c.RootCommand()
	cmd.SetArgs([]string{"cache", "clear"})
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("cache clear error = %v", err)
	}

	if _, hit, _ := fc.Get(context.Background(), "extra"); hit {
		t.Error("entry survived cache clear")
	}
}
