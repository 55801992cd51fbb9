package config

import (
	"image/color"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/lookbook/pkg/render"
)

// isolate keeps user config files and LOOKBOOK_* variables out of the test.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	for _, kv := range os.Environ() {
		if k, _, ok := strings.Cut(kv, "="); ok && strings.HasPrefix(k, EnvPrefix+"_") {
			t.Setenv(k, "")
			os.Unsetenv(k)
		}
	}
	t.Chdir(dir)
	return dir
}

func TestLoadDefaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load(New(), "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.File != "" {
		t.Errorf("File = %q, want none", cfg.File)
	}
	if cfg.Deck != "deck.toml" {
		t.Errorf("Deck = %q", cfg.Deck)
	}
	if cfg.Export.Prefix != "peridot" || cfg.Export.Delay != time.Second || cfg.Export.Display != 1500*time.Millisecond {
		t.Errorf("Export = %+v", cfg.Export)
	}
	if cfg.Export.BatchScale != 1 {
		t.Errorf("BatchScale = %v, want 1", cfg.Export.BatchScale)
	}
	if got, want := cfg.Render.Strategies, render.DefaultStrategies; !reflect.DeepEqual(got, want) {
		t.Errorf("Strategies = %v, want %v", got, want)
	}
	if cfg.Render.Config.Scale != render.DefaultScale || cfg.Render.Config.CrossOrigin != render.CrossOriginStrict {
		t.Errorf("Render = %+v", cfg.Render.Config)
	}
	if got := color.NRGBAModel.Convert(cfg.Render.Config.Background); got != (color.NRGBA{R: 0xFF, G: 0xFB, B: 0xEB, A: 0xFF}) {
		t.Errorf("Background = %v", got)
	}
	if want := filepath.Join(home, "Downloads"); cfg.Deliver.Dir != want {
		t.Errorf("Deliver.Dir = %q, want %q", cfg.Deliver.Dir, want)
	}
	if cfg.Deliver.Grace != 100*time.Millisecond || !cfg.Deliver.Direct || !cfg.Deliver.Open {
		t.Errorf("Deliver = %+v", cfg.Deliver)
	}
	if !cfg.Cache.Enabled || cfg.Cache.RedisURL != "" || cfg.Cache.TTL != 24*time.Hour {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if cfg.Assets.Timeout != 15*time.Second {
		t.Errorf("Assets.Timeout = %v", cfg.Assets.Timeout)
	}
}

func TestLoadFile(t *testing.T) {
	dir := isolate(t)
	data := `
deck = "looks/spring.toml"

[export]
prefix = "spring"
delay = "250ms"

[render]
strategies = ["basic"]
cross_origin = "lenient"
scale = 1

[deliver]
dir = "out"
direct = false
`
	if err := os.WriteFile(filepath.Join(dir, "lookbook.toml"), []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(New(), "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if filepath.Base(cfg.File) != "lookbook.toml" {
		t.Errorf("File = %q", cfg.File)
	}
	if cfg.Deck != "looks/spring.toml" || cfg.Export.Prefix != "spring" || cfg.Export.Delay != 250*time.Millisecond {
		t.Errorf("cfg = %+v / %+v", cfg.Deck, cfg.Export)
	}
	if cfg.Export.Display != 1500*time.Millisecond {
		t.Errorf("Display = %v, want default", cfg.Export.Display)
	}
	if !reflect.DeepEqual(cfg.Render.Strategies, []string{"basic"}) || cfg.Render.Config.CrossOrigin != render.CrossOriginLenient {
		t.Errorf("Render = %+v", cfg.Render)
	}
	if cfg.Deliver.Dir != "out" || cfg.Deliver.Direct {
		t.Errorf("Deliver = %+v", cfg.Deliver)
	}
}

func TestLoadEnv(t *testing.T) {
	isolate(t)
	t.Setenv("LOOKBOOK_EXPORT_DELAY", "2s")
	t.Setenv("LOOKBOOK_RENDER_STRATEGIES", "svg,basic")
	t.Setenv("LOOKBOOK_CACHE_REDIS_URL", "redis://localhost:6379/0")

	cfg, err := Load(New(), "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Export.Delay != 2*time.Second {
		t.Errorf("Delay = %v", cfg.Export.Delay)
	}
	if !reflect.DeepEqual(cfg.Render.Strategies, []string{"svg", "basic"}) {
		t.Errorf("Strategies = %v", cfg.Render.Strategies)
	}
	if cfg.Cache.RedisURL != "redis://localhost:6379/0" {
		t.Errorf("RedisURL = %q", cfg.Cache.RedisURL)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		file string
		data string
	}{
		{"bad background", "a.toml", "[render]\nbackground = \"cream\"\n"},
		{"bad cross origin", "b.toml", "[render]\ncross_origin = \"sometimes\"\n"},
		{"negative delay", "c.toml", "[export]\ndelay = \"-1s\"\n"},
		{"zero scale", "d.toml", "[render]\nscale = 0\n"},
		{"huge batch scale", "f.toml", "[export]\nbatch_scale = 9\n"},
		{"malformed", "e.toml", "[export\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			path := filepath.Join(dir, tt.file)
			if err := os.WriteFile(path, []byte(tt.data), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(New(), path); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoadExplicitMissing(t *testing.T) {
	dir := isolate(t)
	if _, err := Load(New(), filepath.Join(dir, "nope.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config")
	}
}

func TestSplitList(t *testing.T) {
	got := splitList([]string{"vector, svg", "", " basic "})
	if want := []string{"vector", "svg", "basic"}; !reflect.DeepEqual(got, want) {
		t.Errorf("splitList = %v, want %v", got, want)
	}
}
