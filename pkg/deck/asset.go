package deck

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	_ "golang.org/x/image/webp" // register WebP decoder

	"github.com/matzehuels/lookbook/pkg/cache"
	"github.com/matzehuels/lookbook/pkg/errors"
)

const (
	// DefaultFetchTimeout bounds a single remote image download.
	DefaultFetchTimeout = 15 * time.Second

	maxAssetBytes = 32 << 20
)

// AssetLoader decodes deck images from files, data URIs and http(s) URLs.
// Remote downloads go through a [cache.Cache] so repeated exports of the
// same deck stay offline.
type AssetLoader struct {
	http   *http.Client
	cache  cache.Cache
	ttl    time.Duration
	logger *log.Logger
}

// AssetOption configures an [AssetLoader].
type AssetOption func(*AssetLoader)

// WithCache sets the cache used for remote images. Default: [cache.NullCache].
func WithCache(c cache.Cache) AssetOption {
	return func(l *AssetLoader) {
		if c != nil {
			l.cache = c
		}
	}
}

// WithTTL sets how long downloaded images stay cached.
func WithTTL(ttl time.Duration) AssetOption {
	return func(l *AssetLoader) { l.ttl = ttl }
}

// WithTimeout sets the HTTP timeout for one download.
func WithTimeout(d time.Duration) AssetOption {
	return func(l *AssetLoader) {
		if d > 0 {
			l.http = &http.Client{Timeout: d}
		}
	}
}

// WithHTTPClient replaces the HTTP client entirely.
func WithHTTPClient(c *http.Client) AssetOption {
	return func(l *AssetLoader) {
		if c != nil {
			l.http = c
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) AssetOption {
	return func(l *AssetLoader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewAssetLoader creates an AssetLoader.
func NewAssetLoader(opts ...AssetOption) *AssetLoader {
	l := &AssetLoader{
		http:   &http.Client{Timeout: DefaultFetchTimeout},
		cache:  cache.NewNullCache(),
		ttl:    cache.DefaultAssetTTL,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads and decodes the image at source.
func (l *AssetLoader) Load(ctx context.Context, source string) (image.Image, error) {
	data, err := l.read(ctx, source)
	if err != nil {
		return nil, err
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnsupported, err, "decode image %s", shortSource(source))
	}
	l.logger.Debug("Decoded image", "source", shortSource(source), "format", format,
		"size", fmt.Sprintf("%dx%d", img.Bounds().Dx(), img.Bounds().Dy()))
	return img, nil
}

func (l *AssetLoader) read(ctx context.Context, source string) ([]byte, error) {
	lower := strings.ToLower(source)
	switch {
	case strings.HasPrefix(lower, "data:"):
		return decodeDataURI(source)
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		return l.fetch(ctx, source)
	default:
		data, err := os.ReadFile(source)
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeFileNotFound, "image %s not found", source)
		}
		return data, err
	}
}

func (l *AssetLoader) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	key := cache.AssetKey(rawURL)
	data, ok, err := l.cache.Get(ctx, key)
	if err != nil {
		l.logger.Debug("Asset cache read failed", "url", rawURL, "error", err)
	}
	if ok {
		return data, nil
	}

	if err := errors.ValidateURL(rawURL); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "build request")
	}
	req.Header.Set("Accept", "image/*")

	resp, err := l.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", rawURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New(errors.ErrCodeNetwork, "fetch %s: status %d", rawURL, resp.StatusCode)
	}

	data, err = io.ReadAll(io.LimitReader(resp.Body, maxAssetBytes+1))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "read %s", rawURL)
	}
	if len(data) > maxAssetBytes {
		return nil, errors.New(errors.ErrCodeUnsupported, "image %s exceeds %d bytes", rawURL, maxAssetBytes)
	}

	if err := l.cache.Set(ctx, key, data, l.ttl); err != nil {
		l.logger.Debug("Asset cache write failed", "url", rawURL, "error", err)
	}
	return data, nil
}

// decodeDataURI returns the payload of an RFC 2397 data URI.
func decodeDataURI(uri string) ([]byte, error) {
	meta, payload, ok := strings.Cut(uri[len("data:"):], ",")
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidInput, "malformed data URI")
	}
	if strings.HasSuffix(strings.ToLower(meta), ";base64") {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode data URI")
		}
		return data, nil
	}
	s, err := url.PathUnescape(payload)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode data URI")
	}
	return []byte(s), nil
}
