package cache

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/texbox/pkg/errors"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit || data != nil {
		t.Errorf("Get() = %q, %v, want a miss", data, hit)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}

	if _, hit, _ := c.Get(ctx, "box:1"); hit {
		t.Error("Get() on empty cache = hit, want miss")
	}
	if err := c.Set(ctx, "box:1", []byte("payload"), time.Hour); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	data, hit, err := c.Get(ctx, "box:1")
	if err != nil || !hit || !bytes.Equal(data, []byte("payload")) {
		t.Errorf("Get() = %q, %v, %v, want payload hit", data, hit, err)
	}
	if err := c.Delete(ctx, "box:1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, hit, _ := c.Get(ctx, "box:1"); hit {
		t.Error("Get() after Delete = hit, want miss")
	}
	if err := c.Delete(ctx, "box:1"); err != nil {
		t.Errorf("Delete() of missing key error = %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	if err := c.Set(ctx, "old", []byte("x"), time.Nanosecond); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := c.Set(ctx, "new", []byte("y"), time.Hour); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	time.Sleep(time.Millisecond)

	n, err := c.Clear(true)
	if err != nil {
		t.Fatalf("Clear(expired) error = %v", err)
	}
	if n != 1 {
		t.Errorf("Clear(expired) = %d, want 1", n)
	}
	if _, hit, _ := c.Get(ctx, "new"); !hit {
		t.Error("Get(new) after Clear(expired) = miss, want hit")
	}
	if n, _ := c.Clear(false); n != 1 {
		t.Errorf("Clear(all) = %d, want 1", n)
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	path := c.path("k")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("Get() = %v, %v, want a silent miss", hit, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt entry was not removed")
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	b1 := k.BoxKey(`\frac12`, BoxKeyOpts{Style: "display"})
	b2 := k.BoxKey(`\frac12`, BoxKeyOpts{Style: "text"})
	if b1 == b2 {
		t.Error("Different BoxKeyOpts should produce different keys")
	}
	if !strings.HasPrefix(b1, "box:") {
		t.Errorf("BoxKey = %q, want box: prefix", b1)
	}

	a1 := k.ArtifactKey("hash", ArtifactKeyOpts{Format: "svg", Size: 20})
	a2 := k.ArtifactKey("hash", ArtifactKeyOpts{Format: "png", Size: 20})
	if a1 == a2 {
		t.Error("Different ArtifactKeyOpts should produce different keys")
	}
	if !strings.HasPrefix(a1, "artifact:svg:") {
		t.Errorf("ArtifactKey = %q, want artifact:svg: prefix", a1)
	}
	if err := errors.ValidateCacheKey(a1); err != nil {
		t.Errorf("ValidateCacheKey(%q) error = %v", a1, err)
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(nil, "tenant:1:")
	key := scoped.BoxKey("x", BoxKeyOpts{})
	if want := "tenant:1:" + NewDefaultKeyer().BoxKey("x", BoxKeyOpts{}); key != want {
		t.Errorf("BoxKey = %q, want %q", key, want)
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name    string
		cfg     Config
		want    string
		wantErr errors.Code
	}{
		{"default without dir", Config{}, "cache.NullCache", ""},
		{"default with dir", Config{Dir: t.TempDir()}, "*cache.FileCache", ""},
		{"none", Config{Backend: BackendNone}, "cache.NullCache", ""},
		{"file without dir", Config{Backend: BackendFile}, "", errors.ErrCodeInvalidInput},
		{"redis bad url", Config{Backend: BackendRedis, RedisURL: "http://x"}, "", errors.ErrCodeInvalidInput},
		{"mongo bad uri", Config{Backend: BackendMongo, MongoURI: ""}, "", errors.ErrCodeInvalidInput},
		{"unknown", Config{Backend: "memcached"}, "", errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Open(ctx, tt.cfg)
			if tt.wantErr != "" {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Open() error = %v, want %s", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			defer c.Close()
			if got := typeName(c); got != tt.want {
				t.Errorf("Open() = %s, want %s", got, tt.want)
			}
		})
	}
}

func typeName(c Cache) string {
	switch c.(type) {
	case NullCache:
		return "cache.NullCache"
	case *FileCache:
		return "*cache.FileCache"
	}
	return "other"
}

func TestMongoEntryExpiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	forever := newMongoEntry("k", []byte("v"), 0, now)
	if forever.ExpiresAt != nil || forever.expired(now.Add(1000*time.Hour)) {
		t.Error("entry without ttl should never expire")
	}
	short := newMongoEntry("k", []byte("v"), time.Minute, now)
	if short.expired(now) {
		t.Error("entry expired immediately")
	}
	if !short.expired(now.Add(2 * time.Minute)) {
		t.Error("entry did not expire after its ttl")
	}
}

func TestRetryable(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) != nil")
	}
	err := fmt.Errorf("redis get: %w", Retryable(ErrNetwork))
	if !IsRetryable(err) {
		t.Error("IsRetryable() = false through a wrapping error")
	}
	if !stderrors.Is(err, ErrNetwork) {
		t.Error("Retryable hides the wrapped sentinel")
	}
	if IsRetryable(ErrClosed) {
		t.Error("IsRetryable(ErrClosed) = true, want false")
	}
}

func TestBackoff(t *testing.T) {
	ctx := context.Background()
	b := Backoff{Attempts: 3, Delay: time.Millisecond}

	tests := []struct {
		name      string
		failures  int
		err       error
		wantCalls int
		wantErr   error
	}{
		{"success", 0, nil, 1, nil},
		{"permanent", 5, ErrClosed, 1, ErrClosed},
		{"recovers", 2, Retryable(ErrNetwork), 3, nil},
		{"exhausted", 5, Retryable(ErrNetwork), 3, ErrNetwork},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := b.Do(ctx, func() error {
				calls++
				if calls <= tt.failures {
					return tt.err
				}
				return nil
			})
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if tt.wantErr == nil && err != nil {
				t.Errorf("Do() error = %v, want nil", err)
			}
			if tt.wantErr != nil && !stderrors.Is(err, tt.wantErr) {
				t.Errorf("Do() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := DefaultBackoff.Do(ctx, func() error {
		return Retryable(ErrNetwork)
	})
	if !stderrors.Is(err, context.Canceled) {
		t.Errorf("Do() error = %v, want context.Canceled", err)
	}
}
