package deliver

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/lookbook/pkg/encode"
)

const maxNameAttempts = 100

// Download delivers files straight into a directory.
type Download struct {
	dir    string
	stage  string
	grace  time.Duration
	logger *log.Logger
}

// NewDownload creates a direct download method writing into dir.
func NewDownload(dir string, grace time.Duration, logger *log.Logger) *Download {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Download{
		dir:    dir,
		stage:  filepath.Join(os.TempDir(), "lookbook-stage"),
		grace:  grace,
		logger: logger,
	}
}

func (d *Download) Name() string { return "download" }

// Deliver stages the blob in a lease, copies it to the download directory
// and releases the lease after the grace period. It never overwrites an
// existing file: on a name clash it appends -1, -2, … before the extension.
func (d *Download) Deliver(ctx context.Context, blob encode.Blob, filename string) (path string, err error) {
	lease, err := Acquire(d.stage, blob.Bytes)
	if err != nil {
		return "", fmt.Errorf("stage download: %w", err)
	}
	defer func() {
		if rerr := lease.Release(ctx, d.grace); rerr != nil {
			d.logger.Debug("Release staged download", "path", lease.Path(), "error", rerr)
		}
	}()

	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return "", fmt.Errorf("create download dir: %w", err)
	}

	out, path, err := createUnique(d.dir, filename)
	if err != nil {
		return "", err
	}

	src, err := lease.Open()
	if err != nil {
		out.Close()
		os.Remove(path)
		return "", err
	}
	defer src.Close()

	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		os.Remove(path)
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

func createUnique(dir, filename string) (*os.File, string, error) {
	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filename, ext)
	for i := 0; i < maxNameAttempts; i++ {
		name := filename
		if i > 0 {
			name = fmt.Sprintf("%s-%d%s", base, i, ext)
		}
		path := filepath.Join(dir, name)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return f, path, nil
		}
		if !os.IsExist(err) {
			return nil, "", fmt.Errorf("create %s: %w", path, err)
		}
	}
	return nil, "", fmt.Errorf("no free file name for %s in %s", filename, dir)
}
