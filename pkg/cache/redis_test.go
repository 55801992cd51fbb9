package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// memRedis is an in-memory redisClient. Scan returns one key per page to
// exercise cursor handling.
type memRedis struct {
	data map[string][]byte
}

func newMemRedis() *memRedis { return &memRedis{data: map[string][]byte{}} }

func (m *memRedis) Get(_ context.Context, key string) *redis.StringCmd {
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(string(v), nil)
}

func (m *memRedis) Set(_ context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	m.data[key] = value.([]byte)
	return redis.NewStatusResult("OK", nil)
}

func (m *memRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := m.data[k]; ok {
			delete(m.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func (m *memRedis) Scan(_ context.Context, cursor uint64, match string, _ int64) *redis.ScanCmd {
	prefix := strings.TrimSuffix(match, "*")
	var keys []string
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return redis.NewScanCmdResult(nil, 0, nil)
	}
	next := uint64(1)
	if len(keys) == 1 {
		next = 0
	}
	return redis.NewScanCmdResult(keys[:1], next, nil)
}

func (m *memRedis) Close() error { return nil }

var _ redisClient = (*memRedis)(nil)

func TestRedisCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	mem := newMemRedis()
	c := &RedisCache{client: mem, prefix: "lookbook:"}

	if _, ok, err := c.Get(ctx, "k"); ok || err != nil {
		t.Fatalf("Get on empty cache = %v, %v", ok, err)
	}
	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, ok := mem.data["lookbook:k"]; !ok {
		t.Errorf("stored keys = %v, want lookbook:k", mem.data)
	}
	data, ok, err := c.Get(ctx, "k")
	if err != nil || !ok || string(data) != "v" {
		t.Fatalf("Get = %q, %v, %v", data, ok, err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("entry still present after Delete")
	}
}

func TestRedisCacheClear(t *testing.T) {
	ctx := context.Background()
	mem := newMemRedis()
	c := &RedisCache{client: mem, prefix: "lookbook:"}
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), time.Minute); err != nil {
			t.Fatal(err)
		}
	}
	mem.data["other:key"] = []byte("keep")

	n, err := c.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear removed %d entries, want 3", n)
	}
	if _, ok := mem.data["other:key"]; !ok || len(mem.data) != 1 {
		t.Errorf("remaining keys = %v, want only other:key", mem.data)
	}
}

func TestNewRedisCacheBadURL(t *testing.T) {
	if _, err := NewRedisCache(context.Background(), "not a url"); err == nil {
		t.Fatal("expected error for malformed url")
	}
}
