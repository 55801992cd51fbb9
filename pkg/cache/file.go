package cache

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/matzehuels/lookbook/pkg/observability"
)

const fileBackend = "file"

// FileCache keeps assets as JSON records below a root directory, one file
// per key, fanned out by the first two digest characters.
type FileCache struct {
	dir string
}

// NewFileCache opens (and creates if needed) a cache rooted at dir.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// record is the on-disk form of one asset. A zero Expires never expires.
type record struct {
	Data    []byte    `json:"data"`
	Expires time.Time `json:"expires_at"`
}

func (r record) stale(now time.Time) bool {
	return !r.Expires.IsZero() && now.After(r.Expires)
}

// Dir is the cache root.
func (c *FileCache) Dir() string { return c.dir }

func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	name := c.file(key)
	raw, err := os.ReadFile(name)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		observability.Cache().OnCacheMiss(ctx, fileBackend)
		return nil, false, nil
	case err != nil:
		return nil, false, err
	}

	var rec record
	if json.Unmarshal(raw, &rec) != nil || rec.stale(time.Now()) {
		// unreadable and expired records are dropped and reported as misses
		_ = os.Remove(name)
		observability.Cache().OnCacheMiss(ctx, fileBackend)
		return nil, false, nil
	}
	observability.Cache().OnCacheHit(ctx, fileBackend)
	return rec.Data, true, nil
}

func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	rec := record{Data: data}
	if ttl > 0 {
		rec.Expires = time.Now().Add(ttl)
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	name := c.file(key)
	if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(name, raw, 0o644); err != nil {
		return err
	}
	observability.Cache().OnCacheSet(ctx, fileBackend, len(data))
	return nil
}

func (c *FileCache) Delete(_ context.Context, key string) error {
	if err := os.Remove(c.file(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Clear drops every stored asset and reports how many records were removed.
// A missing root is an empty cache.
func (c *FileCache) Clear() (int, error) {
	shards, err := os.ReadDir(c.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	n := 0
	for _, shard := range shards {
		if !shard.IsDir() {
			continue
		}
		dir := filepath.Join(c.dir, shard.Name())
		records, _ := filepath.Glob(filepath.Join(dir, "*.json"))
		n += len(records)
		if err := os.RemoveAll(dir); err != nil {
			return n, err
		}
	}
	return n, nil
}

func (c *FileCache) Close() error { return nil }

func (c *FileCache) file(key string) string {
	d := Digest([]byte(key))
	return filepath.Join(c.dir, d[:2], d[2:]+".json")
}

var _ Cache = (*FileCache)(nil)
