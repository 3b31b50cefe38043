//go:build integration

package cache

import (
	"bytes"
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
)

// exerciseRemote runs a set/get/delete round trip against a live backend.
func exerciseRemote(t *testing.T, c Cache) {
	t.Helper()
	ctx := context.Background()
	key := "test:" + uuid.NewString()

	if err := c.Set(ctx, key, []byte("payload"), time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	data, hit, err := c.Get(ctx, key)
	if err != nil || !hit || !bytes.Equal(data, []byte("payload")) {
		t.Fatalf("Get() = %q, %v, %v, want payload hit", data, hit, err)
	}
	if err := c.Delete(ctx, key); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, hit, _ := c.Get(ctx, key); hit {
		t.Error("Get() after Delete = hit, want miss")
	}
}

func TestRedisCache(t *testing.T) {
	url := os.Getenv("TEXBOX_TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEXBOX_TEST_REDIS_URL not set")
	}
	c, err := Open(context.Background(), Config{Backend: BackendRedis, RedisURL: url, Prefix: "texbox-test:"})
	if err != nil {
		t.Fatalf("Open(redis) error = %v", err)
	}
	defer c.Close()
	exerciseRemote(t, c)
}

func TestMongoCache(t *testing.T) {
	uri := os.Getenv("TEXBOX_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEXBOX_TEST_MONGO_URI not set")
	}
	c, err := Open(context.Background(), Config{Backend: BackendMongo, MongoURI: uri})
	if err != nil {
		t.Fatalf("Open(mongo) error = %v", err)
	}
	defer c.Close()
	exerciseRemote(t, c)
}
