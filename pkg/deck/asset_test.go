package deck

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matzehuels/lookbook/pkg/cache"
	"github.com/matzehuels/lookbook/pkg/errors"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestAssetLoaderFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.png")
	if err := os.WriteFile(path, pngBytes(t, 5, 7), 0o644); err != nil {
		t.Fatal(err)
	}

	img, err := NewAssetLoader().Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 5 || b.Dy() != 7 {
		t.Errorf("bounds = %v, want 5x7", b)
	}
}

func TestAssetLoaderDataURI(t *testing.T) {
	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes(t, 3, 2))
	img, err := NewAssetLoader().Load(context.Background(), uri)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Errorf("bounds = %v, want 3x2", b)
	}

	if _, err := NewAssetLoader().Load(context.Background(), "data:image/png;base64"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("malformed data URI error = %v, want INVALID_INPUT", err)
	}
}

func TestAssetLoaderRemoteCached(t *testing.T) {
	body := pngBytes(t, 2, 2)
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "image/png")
		w.Write(body)
	}))
	defer srv.Close()

	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	loader := NewAssetLoader(WithCache(c), WithTTL(time.Hour), WithTimeout(5*time.Second))

	for i := 0; i < 3; i++ {
		if _, err := loader.Load(context.Background(), srv.URL+"/look.png"); err != nil {
			t.Fatalf("Load() #%d error: %v", i, err)
		}
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("server hit %d times, want 1", got)
	}
}

func TestAssetLoaderRemoteErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/garbage" {
			w.Write([]byte("not an image"))
			return
		}
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer srv.Close()

	loader := NewAssetLoader()
	if _, err := loader.Load(context.Background(), srv.URL+"/private.png"); !errors.Is(err, errors.ErrCodeNetwork) {
		t.Errorf("403 error = %v, want NETWORK_ERROR", err)
	}
	if _, err := loader.Load(context.Background(), srv.URL+"/garbage"); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("garbage error = %v, want UNSUPPORTED", err)
	}
}
