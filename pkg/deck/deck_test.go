package deck

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/lookbook/pkg/errors"
)

type fakeLoader struct {
	fail  map[string]bool
	calls []string
}

func (f *fakeLoader) Load(_ context.Context, source string) (image.Image, error) {
	f.calls = append(f.calls, source)
	if f.fail[source] {
		return nil, fmt.Errorf("blocked: %s", source)
	}
	return image.NewRGBA(image.Rect(0, 0, 4, 3)), nil
}

func writeDeck(t *testing.T, body string, files ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, f := range files {
		path := filepath.Join(dir, f)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	path := filepath.Join(dir, "deck.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSlideExportable(t *testing.T) {
	tests := []struct {
		name  string
		slide Slide
		want  bool
	}{
		{"empty", Slide{}, false},
		{"whitespace description", Slide{Description: "   "}, true},
		{"blank lines description", Slide{Description: "  \n\t"}, true},
		{"reference only", Slide{Reference: &Image{ID: "ref"}}, false},
		{"description", Slide{Description: "Soft waves"}, true},
		{"images", Slide{Inspirations: []Image{{ID: "a"}}}, true},
		{"unloaded image still counts", Slide{Inspirations: []Image{{ID: "a", Err: fmt.Errorf("x")}}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.slide.Exportable(); got != tt.want {
				t.Errorf("Exportable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDeckExportableOrder(t *testing.T) {
	d := &Deck{Slides: []Slide{
		{ID: "a", Description: "one"},
		{ID: "b"},
		{ID: "c", Inspirations: []Image{{ID: "i"}}},
		{ID: "d", Description: "four"},
	}}
	got := strings.Join(d.ExportableIDs(), ",")
	if got != "a,c,d" {
		t.Errorf("ExportableIDs() = %q, want %q", got, "a,c,d")
	}
	if _, ok := d.Slide("b"); !ok {
		t.Error("Slide(b) not found")
	}
	if _, ok := d.Slide("zz"); ok {
		t.Error("Slide(zz) should not be found")
	}
}

func TestLoad(t *testing.T) {
	path := writeDeck(t, `
client = "Ada"
reference = "ref.jpg"

[[slides]]
id = "gala"
title = "Evening Gala"
description = "Soft waves"
images = [{ src = "inspo/a.png" }, { id = "remote", src = "https://example.com/b.png" }]

[[slides]]
description = ""
`, "ref.jpg", "inspo/a.png")

	loader := &fakeLoader{fail: map[string]bool{"https://example.com/b.png": true}}
	d, err := Load(context.Background(), path, loader, nil)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if d.Client != "Ada" {
		t.Errorf("Client = %q", d.Client)
	}
	if !d.Reference.Loaded() {
		t.Fatal("reference image not loaded")
	}
	if len(d.Slides) != 2 {
		t.Fatalf("got %d slides, want 2", len(d.Slides))
	}

	gala := d.Slides[0]
	if gala.Reference != d.Reference {
		t.Error("slides should share the deck reference image")
	}
	if len(gala.Inspirations) != 2 {
		t.Fatalf("got %d inspirations, want 2", len(gala.Inspirations))
	}
	if want := filepath.Join(filepath.Dir(path), "inspo", "a.png"); gala.Inspirations[0].Source != want {
		t.Errorf("relative source = %q, want %q", gala.Inspirations[0].Source, want)
	}
	if gala.Inspirations[0].ID == "" {
		t.Error("missing image id was not generated")
	}
	remote := gala.Inspirations[1]
	if remote.ID != "remote" || remote.Loaded() || remote.Err == nil {
		t.Errorf("remote image = %+v, want unloaded with error", remote)
	}

	second := d.Slides[1]
	if second.ID == "" {
		t.Error("missing slide id was not generated")
	}
	if second.Title != "Look 2" {
		t.Errorf("default title = %q, want %q", second.Title, "Look 2")
	}
	if second.Exportable() {
		t.Error("empty slide should not be exportable")
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		code errors.Code
	}{
		{"bad toml", "slides = [", errors.ErrCodeInvalidDeck},
		{"missing local image", "[[slides]]\nimages = [{ src = \"nope.png\" }]", errors.ErrCodeFileNotFound},
		{"image without src", "[[slides]]\nimages = [{ id = \"x\" }]", errors.ErrCodeInvalidDeck},
		{"duplicate id", "[[slides]]\nid = \"a\"\n[[slides]]\nid = \"a\"", errors.ErrCodeInvalidDeck},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeDeck(t, tt.body)
			_, err := Load(context.Background(), path, &fakeLoader{}, nil)
			if !errors.Is(err, tt.code) {
				t.Errorf("Load() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "none.toml"), &fakeLoader{}, nil)
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load() error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoadWithoutLoader(t *testing.T) {
	path := writeDeck(t, `
[[slides]]
id = "linen"
[[slides.images]]
src = "img/linen.png"
`, "img/linen.png")

	d, err := Load(context.Background(), path, nil, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	s, ok := d.Slide("linen")
	if !ok || !s.Exportable() {
		t.Fatalf("slide linen missing or not exportable: %+v", s)
	}
	if img := s.Inspirations[0]; img.Loaded() || img.Err != nil {
		t.Errorf("image decoded without a loader: %+v", img)
	}
}
