package surface

import (
	"image"
	"strings"
	"testing"

	"github.com/matzehuels/lookbook/pkg/deck"
	"github.com/matzehuels/lookbook/pkg/fonts"
)

func loaded(id string, w, h int) deck.Image {
	return deck.Image{ID: id, Source: id + ".png", Pixels: image.NewRGBA(image.Rect(0, 0, w, h))}
}

func texts(s *Surface) []Text {
	var out []Text
	for _, e := range s.Elements {
		if t, ok := e.(Text); ok {
			out = append(out, t)
		}
	}
	return out
}

func hasLine(s *Surface, want string) bool {
	for _, t := range texts(s) {
		for _, l := range t.Lines {
			if l == want {
				return true
			}
		}
	}
	return false
}

func TestLayoutSections(t *testing.T) {
	ref := loaded("ref", 600, 800)
	tests := []struct {
		name  string
		slide deck.Slide
		want  []string
		skip  []string
	}{
		{
			name:  "description only",
			slide: deck.Slide{ID: "a", Title: "Look 1", Description: "Soft waves"},
			want:  []string{Brand, "Look 1", HeadingVision, "Soft waves", WatermarkText},
			skip:  []string{HeadingReference, HeadingInspiration},
		},
		{
			name:  "images and reference",
			slide: deck.Slide{ID: "b", Title: "Gala", Reference: &ref, Inspirations: []deck.Image{loaded("i1", 100, 100)}},
			want:  []string{HeadingReference, HeadingInspiration},
			skip:  []string{HeadingVision},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Layout(tt.slide)
			if s.SlideID != tt.slide.ID || s.Width != Width || s.Height != Height {
				t.Errorf("surface header = %q %vx%v", s.SlideID, s.Width, s.Height)
			}
			for _, w := range tt.want {
				if !hasLine(s, w) {
					t.Errorf("missing line %q", w)
				}
			}
			for _, w := range tt.skip {
				if hasLine(s, w) {
					t.Errorf("unexpected line %q", w)
				}
			}
		})
	}
}

func TestLayoutFitsInspirations(t *testing.T) {
	slide := deck.Slide{ID: "tall", Title: "Many", Description: "x"}
	for i := 0; i < 6; i++ {
		slide.Inspirations = append(slide.Inspirations, loaded("i", 400, 600))
	}
	s := Layout(slide)

	pics := s.Pictures()
	if len(pics) != 6 {
		t.Fatalf("got %d pictures, want 6", len(pics))
	}
	for i, p := range pics {
		if p.Y+p.H > Height-footerH {
			t.Errorf("picture %d ends at %.1f, past the footer", i, p.Y+p.H)
		}
		if ratio := p.W / p.H; ratio < 0.66 || ratio > 0.67 {
			t.Errorf("picture %d aspect = %.3f, want 2:3", i, ratio)
		}
		if i > 0 && p.Y <= pics[i-1].Y {
			t.Errorf("picture %d is not below picture %d", i, i-1)
		}
	}
}

func TestLayoutUnloadedImage(t *testing.T) {
	slide := deck.Slide{ID: "x", Title: "t", Inspirations: []deck.Image{{ID: "gone", Source: "https://x/y.png"}}}
	s := Layout(slide)
	if got := s.MissingImages(); got != 1 {
		t.Errorf("MissingImages() = %d, want 1", got)
	}
	p := s.Pictures()[0]
	if p.W <= 0 || p.H <= 0 {
		t.Errorf("unloaded picture box = %vx%v", p.W, p.H)
	}
}

func TestLayoutDoesNotMutate(t *testing.T) {
	slide := deck.Slide{ID: "m", Title: "  Title  ", Description: "  spaced  "}
	Layout(slide)
	if slide.Title != "  Title  " || slide.Description != "  spaced  " {
		t.Error("Layout modified the slide")
	}
}

func TestWrap(t *testing.T) {
	face, err := fonts.Face(fonts.Regular, 18)
	if err != nil {
		t.Fatal(err)
	}
	defer face.Close()

	text := strings.Repeat("lorem ipsum dolor ", 30)
	lines := wrap(face, text, 300)
	if len(lines) < 2 {
		t.Fatalf("expected multiple lines, got %d", len(lines))
	}
	for _, l := range lines {
		if advance(face, l) > 300 {
			t.Errorf("line %q exceeds width", l)
		}
	}
	if got := strings.Join(lines, " "); got != strings.TrimSpace(text) {
		t.Error("wrapping lost or changed words")
	}

	long := wrap(face, strings.Repeat("W", 200), 100)
	if len(long) < 2 {
		t.Error("long word was not split")
	}

	if got := wrap(face, "a\n\nb", 300); len(got) != 3 || got[1] != "" {
		t.Errorf("wrap kept %q, want blank middle line", got)
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	n := r.Mount([]deck.Slide{
		{ID: "a", Title: "A", Description: "one"},
		{ID: "b", Title: "B"},
		{ID: "c", Title: "C", Inspirations: []deck.Image{loaded("i", 10, 10)}},
	})
	if n != 2 {
		t.Errorf("Mount() = %d, want 2", n)
	}
	if _, ok := r.Resolve("b"); ok {
		t.Error("non-exportable slide should not resolve")
	}
	if s, ok := r.Resolve("a"); !ok || s.Title != "A" {
		t.Errorf("Resolve(a) = %v, %v", s, ok)
	}
	if got := strings.Join(r.IDs(), ","); got != "a,c" {
		t.Errorf("IDs() = %q", got)
	}

	// Remounting reflects the current descriptors.
	r.Mount([]deck.Slide{{ID: "a", Title: "A2", Description: "one"}})
	if _, ok := r.Resolve("c"); ok {
		t.Error("removed slide still resolves")
	}
	if s, _ := r.Resolve("a"); s.Title != "A2" {
		t.Errorf("remounted title = %q, want A2", s.Title)
	}
}
