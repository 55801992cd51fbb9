package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lookbook/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the downloaded asset cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached images",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			if cfg.Cache.RedisURL != "" {
				rc, err := cache.NewRedisCache(cmd.Context(), cfg.Cache.RedisURL)
				if err != nil {
					return err
				}
				defer rc.Close()
				n, err := rc.Clear(cmd.Context())
				if err != nil {
					return fmt.Errorf("clear redis cache: %w", err)
				}
				printSuccess("Cleared %d cached entries", n)
				printDetail("Redis: %s", cfg.Cache.RedisURL)
				return nil
			}

			if _, err := os.Stat(cfg.Cache.Dir); os.IsNotExist(err) {
				printInfo("Cache is empty")
				return nil
			}
			fc, err := cache.NewFileCache(cfg.Cache.Dir)
			if err != nil {
				return err
			}
			n, err := fc.Clear()
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			printSuccess("Cleared %d cached entries", n)
			printDetail("Directory: %s", cfg.Cache.Dir)
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where cached images are stored",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cfg.Cache.RedisURL != "" {
				fmt.Fprintln(stdout, cfg.Cache.RedisURL)
				return nil
			}
			fmt.Fprintln(stdout, cfg.Cache.Dir)
			return nil
		},
	}
}
