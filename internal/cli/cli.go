package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/matzehuels/lookbook/internal/config"
	"github.com/matzehuels/lookbook/pkg/buildinfo"
	"github.com/matzehuels/lookbook/pkg/cache"
	"github.com/matzehuels/lookbook/pkg/deck"
	"github.com/matzehuels/lookbook/pkg/observability"
	"github.com/matzehuels/lookbook/pkg/surface"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "lookbook"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	v          *viper.Viper
	configPath string
	noCache    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		v:      config.New(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "Lookbook exports Peridot Images style slides as PNG files",
		Long:          `Lookbook renders the looks of a client lookbook into branded portrait slides and delivers them as PNG downloads, one at a time or as a batch.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			registerHooks(c.Logger)
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "config file (default: lookbook.{yaml,toml,json} in . or ~/.config/lookbook)")
	flags.String("deck", "", "deck file (default: deck.toml)")
	flags.BoolVar(&c.noCache, "no-cache", false, "do not read or write the asset cache")
	_ = c.v.BindPFlag("deck", flags.Lookup("deck"))

	root.AddCommand(c.exportCommand())
	root.AddCommand(c.slidesCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Session
// =============================================================================

// session is everything a command needs after config and deck are loaded.
type session struct {
	cfg      *config.Config
	deck     *deck.Deck
	registry *surface.Registry
	cache    cache.Cache
}

func (s *session) Close() error {
	return s.cache.Close()
}

// loadConfig resolves configuration from file, environment and flags.
func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.v, c.configPath)
	if err != nil {
		return nil, err
	}
	if cfg.File != "" {
		c.Logger.Debug("Loaded config", "file", cfg.File)
	}
	return cfg, nil
}

// openSession loads config, opens the asset cache, loads the deck and mounts
// the surfaces of its exportable slides.
func (c *CLI) openSession(ctx context.Context) (*session, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}

	store, err := c.newCache(ctx, cfg.Cache)
	if err != nil {
		return nil, err
	}

	loader := deck.NewAssetLoader(
		deck.WithCache(store),
		deck.WithTTL(cfg.Cache.TTL),
		deck.WithTimeout(cfg.Assets.Timeout),
		deck.WithLogger(c.Logger),
	)

	prog := newProgress(c.Logger)
	d, err := deck.Load(ctx, cfg.Deck, loader, c.Logger)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	registry := surface.NewRegistry()
	n := registry.Mount(d.Slides)
	prog.done(fmt.Sprintf("Loaded %s: %d slides, %d exportable", cfg.Deck, len(d.Slides), n))

	return &session{cfg: cfg, deck: d, registry: registry, cache: store}, nil
}

// newCache selects the asset cache backend: none with --no-cache or
// cache.enabled=false, Redis when cache.redis_url is set, files otherwise.
// A file cache that cannot be created degrades to no caching.
func (c *CLI) newCache(ctx context.Context, cfg *config.Cache) (cache.Cache, error) {
	if c.noCache || !cfg.Enabled {
		return cache.NewNullCache(), nil
	}
	if cfg.RedisURL != "" {
		rc, err := cache.NewRedisCache(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		c.Logger.Debug("Using redis asset cache")
		return rc, nil
	}
	fc, err := cache.NewFileCache(cfg.Dir)
	if err != nil {
		c.Logger.Warn("Asset cache disabled", "dir", cfg.Dir, "error", err)
		return cache.NewNullCache(), nil
	}
	return fc, nil
}

// registerHooks routes observability events to debug logs.
func registerHooks(logger *log.Logger) {
	h := &logHooks{logger: logger}
	observability.SetExportHooks(h)
	observability.SetCacheHooks(h)
}
