package deliver

import (
	"os"
	"path/filepath"
	"time"
)

// DefaultGrace is how long a staged download is kept after the copy.
const DefaultGrace = 100 * time.Millisecond

// Config configures the standard [Agent].
type Config struct {
	// Dir receives direct downloads. Default: ~/Downloads.
	Dir string
	// Grace delays the release of the staging lease.
	Grace time.Duration
	// Direct enables direct download.
	Direct bool
	// ViewDir receives manual fallback views. Default: a lookbook directory
	// under the system temp dir.
	ViewDir string
	// Open asks the desktop to open fallback views.
	Open bool
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{Dir: DefaultDir(), Grace: DefaultGrace, Direct: true, Open: true}
}

func (c Config) withDefaults() Config {
	if c.Dir == "" {
		c.Dir = DefaultDir()
	}
	if c.Grace < 0 {
		c.Grace = 0
	}
	if c.ViewDir == "" {
		c.ViewDir = filepath.Join(os.TempDir(), "lookbook")
	}
	return c
}

// DefaultDir returns ~/Downloads, or the working directory when the home
// directory is unknown.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, "Downloads")
}
