package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/matzehuels/lookbook/pkg/cache"
)

// Cache holds asset cache settings. RedisURL wins over Dir when set.
type Cache struct {
	Enabled  bool
	Dir      string
	RedisURL string
	TTL      time.Duration
}

// Assets holds asset download settings.
type Assets struct {
	Timeout time.Duration
}

func setCacheDefaults(v *viper.Viper) {
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.dir", defaultCacheDir())
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.ttl", cache.DefaultAssetTTL.String())
}

func setAssetsDefaults(v *viper.Viper) {
	v.SetDefault("assets.timeout", "15s")
}

func getCacheConfig(v *viper.Viper) *Cache {
	return &Cache{
		Enabled:  v.GetBool("cache.enabled"),
		Dir:      expandHome(v.GetString("cache.dir")),
		RedisURL: v.GetString("cache.redis_url"),
		TTL:      v.GetDuration("cache.ttl"),
	}
}

func getAssetsConfig(v *viper.Viper) *Assets {
	return &Assets{Timeout: v.GetDuration("assets.timeout")}
}

func defaultCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "lookbook")
	}
	return filepath.Join(os.TempDir(), "lookbook-cache")
}
