package deck

import (
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/lookbook/pkg/errors"
)

// Loader turns an image source into pixels.
type Loader interface {
	Load(ctx context.Context, source string) (image.Image, error)
}

type deckFile struct {
	Client    string      `toml:"client"`
	Reference string      `toml:"reference"`
	Slides    []slideFile `toml:"slides"`
}

type slideFile struct {
	ID          string      `toml:"id"`
	Title       string      `toml:"title"`
	Description string      `toml:"description"`
	Images      []imageFile `toml:"images"`
}

type imageFile struct {
	ID  string `toml:"id"`
	Src string `toml:"src"`
}

// Load reads the deck file at path and decodes every image with loader.
//
// A local image that does not exist fails the whole load, since it almost
// always means a typo in the deck. Any other image failure (a remote host
// refusing the download, an undecodable file) is recorded on the [Image]
// and left for the renderer to handle. A nil loader skips decoding, which
// is enough to list slides.
func Load(ctx context.Context, path string, loader Loader, logger *log.Logger) (*Deck, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeFileNotFound, "deck file %s not found", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDeck, err, "read deck %s", path)
	}

	var f deckFile
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDeck, err, "parse deck %s", path)
	}
	for _, key := range md.Undecoded() {
		logger.Warn("Ignoring unknown deck key", "key", key.String())
	}

	base := filepath.Dir(path)
	d := &Deck{Client: strings.TrimSpace(f.Client)}

	if src := strings.TrimSpace(f.Reference); src != "" {
		img, err := loadImage(ctx, loader, base, imageFile{ID: "reference", Src: src}, logger)
		if err != nil {
			return nil, err
		}
		d.Reference = &img
	}

	seen := make(map[string]bool, len(f.Slides))
	for i, sf := range f.Slides {
		s := Slide{
			ID:          strings.TrimSpace(sf.ID),
			Title:       strings.TrimSpace(sf.Title),
			Description: sf.Description,
			Reference:   d.Reference,
		}
		if s.ID == "" {
			s.ID = uuid.NewString()
		}
		if err := errors.ValidateSlideID(s.ID); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDeck, err, "slide %d", i+1)
		}
		if seen[s.ID] {
			return nil, errors.New(errors.ErrCodeInvalidDeck, "duplicate slide id %q", s.ID)
		}
		seen[s.ID] = true

		if s.Title == "" {
			s.Title = fmt.Sprintf("Look %d", i+1)
		}

		for _, imf := range sf.Images {
			if strings.TrimSpace(imf.Src) == "" {
				return nil, errors.New(errors.ErrCodeInvalidDeck, "slide %q has an image without src", s.ID)
			}
			img, err := loadImage(ctx, loader, base, imf, logger)
			if err != nil {
				return nil, err
			}
			s.Inspirations = append(s.Inspirations, img)
		}
		d.Slides = append(d.Slides, s)
	}

	logger.Debug("Loaded deck", "path", path, "slides", len(d.Slides), "exportable", len(d.Exportable()))
	return d, nil
}

func loadImage(ctx context.Context, loader Loader, base string, f imageFile, logger *log.Logger) (Image, error) {
	img := Image{ID: strings.TrimSpace(f.ID), Source: resolveSource(base, strings.TrimSpace(f.Src))}
	if img.ID == "" {
		img.ID = uuid.NewString()
	}

	if isLocal(img.Source) {
		if _, err := os.Stat(img.Source); os.IsNotExist(err) {
			return Image{}, errors.New(errors.ErrCodeFileNotFound, "image %s not found", img.Source)
		}
	}

	if loader == nil {
		return img, nil
	}
	img.Pixels, img.Err = loader.Load(ctx, img.Source)
	if img.Err != nil {
		img.Pixels = nil
		logger.Warn("Image unavailable", "source", shortSource(img.Source), "error", img.Err)
	}
	return img, nil
}

func resolveSource(base, src string) string {
	if !isLocal(src) || filepath.IsAbs(src) {
		return src
	}
	return filepath.Join(base, src)
}

func isLocal(src string) bool {
	lower := strings.ToLower(src)
	return !strings.HasPrefix(lower, "http://") &&
		!strings.HasPrefix(lower, "https://") &&
		!strings.HasPrefix(lower, "data:")
}

// shortSource keeps data URIs out of log lines.
func shortSource(src string) string {
	if len(src) > 64 && strings.HasPrefix(src, "data:") {
		return src[:32] + "…"
	}
	return src
}
