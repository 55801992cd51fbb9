package surface

import (
	"image/color"
	"math"
	"strings"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/matzehuels/lookbook/pkg/deck"
	"github.com/matzehuels/lookbook/pkg/fonts"
)

// Fixed copy shown on every slide.
const (
	Brand         = "PERIDOT IMAGES"
	WatermarkText = "© Peridot Images - Exclusive Style Curation"

	HeadingReference   = "Your Inspiration"
	HeadingVision      = "The Vision"
	HeadingInspiration = "Style Inspiration"
)

const (
	margin      = 40.0
	contentW    = Width - 2*margin
	cardPad     = 12.0
	textPad     = 24.0
	sectionGap  = 28.0
	imageGap    = 16.0
	footerH     = 90.0
	maxRefH     = 320.0
	maxInspoH   = 520.0
	minShrink   = 0.15
	cardRadius  = 12.0
	imageRadius = 8.0
)

type style struct {
	weight     fonts.Weight
	size       float64
	lineHeight float64
}

var (
	brandStyle     = style{fonts.Bold, 16, 22}
	titleStyle     = style{fonts.Bold, 40, 48}
	headingStyle   = style{fonts.Bold, 22, 30}
	bodyStyle      = style{fonts.Regular, 18, 28}
	watermarkStyle = style{fonts.Regular, 14, 20}
)

// Layout builds the surface for slide. It reads the slide but never keeps a
// reference to anything other than its images.
func Layout(slide deck.Slide) *Surface {
	m := newMeasurer()
	defer m.close()

	s := &Surface{SlideID: slide.ID, Title: slide.Title, Width: Width, Height: Height}
	add := func(e Element) { s.Elements = append(s.Elements, e) }

	// Banner
	brand := m.text(brandStyle, Brand, margin, 36, contentW, AlignCenter, Cream)
	title := m.text(titleStyle, slide.Title, margin, brand.Y+brand.Height()+10, contentW, AlignCenter, Card)
	bannerH := title.Y + title.Height() + 30
	add(Rect{W: Width, H: bannerH, Gradient: &Gradient{From: Gold, To: GoldDeep}})
	add(brand)
	add(title)

	y := bannerH + 36

	if slide.Reference != nil {
		h := m.text(headingStyle, HeadingReference, margin, y, contentW, AlignLeft, Ink)
		add(h)
		y += h.Height() + 10
		w, ph := fit(slide.Reference, contentW-2*cardPad, maxRefH)
		add(cardRect(margin, y, contentW, ph+2*cardPad))
		add(Picture{X: margin + (contentW-w)/2, Y: y + cardPad, W: w, H: ph, Image: slide.Reference})
		y += ph + 2*cardPad + sectionGap
	}

	if desc := strings.TrimSpace(slide.Description); desc != "" {
		h := m.text(headingStyle, HeadingVision, margin, y, contentW, AlignLeft, Ink)
		add(h)
		y += h.Height() + 10
		body := m.text(bodyStyle, desc, margin+textPad, y+textPad, contentW-2*textPad, AlignLeft, Body)
		cardH := body.Height() + 2*textPad
		add(cardRect(margin, y, contentW, cardH))
		add(body)
		y += cardH + sectionGap
	}

	if len(slide.Inspirations) > 0 {
		h := m.text(headingStyle, HeadingInspiration, margin, y, contentW, AlignLeft, Ink)
		add(h)
		y += h.Height() + 10

		sizes := make([][2]float64, len(slide.Inspirations))
		total := 0.0
		for i := range slide.Inspirations {
			w, ph := fit(&slide.Inspirations[i], contentW-2*cardPad, maxInspoH)
			sizes[i] = [2]float64{w, ph}
			total += ph + 2*cardPad
		}
		total += imageGap * float64(len(sizes)-1)

		// Shrink pictures (not padding) so the stack ends above the footer.
		avail := Height - footerH - y
		padding := 2*cardPad*float64(len(sizes)) + imageGap*float64(len(sizes)-1)
		shrink := 1.0
		if total > avail {
			shrink = math.Max((avail-padding)/(total-padding), minShrink)
		}

		for i := range slide.Inspirations {
			w, ph := sizes[i][0]*shrink, sizes[i][1]*shrink
			cardW := w + 2*cardPad
			add(cardRect(margin+(contentW-cardW)/2, y, cardW, ph+2*cardPad))
			add(Picture{X: margin + (contentW-w)/2, Y: y + cardPad, W: w, H: ph, Image: &slide.Inspirations[i]})
			y += ph + 2*cardPad + imageGap
		}
	}

	add(Rect{X: margin, Y: Height - footerH + 20, W: contentW, H: 1, Fill: CardBorder})
	add(m.text(watermarkStyle, WatermarkText, margin, Height-footerH+40, contentW, AlignCenter, Watermark))
	return s
}

func cardRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h, Radius: cardRadius, Fill: Card, Stroke: CardBorder, StrokeWidth: 2}
}

// fit scales img into maxW×maxH keeping its aspect ratio. Images without
// pixels get a 4:3 box.
func fit(img *deck.Image, maxW, maxH float64) (w, h float64) {
	iw, ih := 4.0, 3.0
	if img.Loaded() {
		b := img.Pixels.Bounds()
		if b.Dx() > 0 && b.Dy() > 0 {
			iw, ih = float64(b.Dx()), float64(b.Dy())
		}
	}
	scale := math.Min(maxW/iw, maxH/ih)
	return iw * scale, ih * scale
}

// measurer owns the faces used during one layout.
type measurer struct {
	faces map[style]font.Face
}

func newMeasurer() *measurer {
	return &measurer{faces: make(map[style]font.Face)}
}

func (m *measurer) face(st style) font.Face {
	if f, ok := m.faces[st]; ok {
		return f
	}
	f, err := fonts.Face(st.weight, st.size)
	if err != nil {
		f = basicfont.Face7x13
	}
	m.faces[st] = f
	return f
}

func (m *measurer) close() {
	for _, f := range m.faces {
		if f != basicfont.Face7x13 {
			f.Close()
		}
	}
}

func (m *measurer) text(st style, s string, x, y, w float64, align Align, c color.NRGBA) Text {
	face := m.face(st)
	lines := wrap(face, s, w)
	widths := make([]float64, len(lines))
	for i, l := range lines {
		widths[i] = advance(face, l)
	}
	return Text{
		X: x, Y: y, Width: w,
		Lines:      lines,
		Widths:     widths,
		Weight:     st.weight,
		Size:       st.size,
		LineHeight: st.lineHeight,
		Ascent:     (st.lineHeight-st.size)/2 + float64(face.Metrics().Ascent)/64,
		Color:      c,
		Align:      align,
	}
}

func advance(face font.Face, s string) float64 {
	return float64(font.MeasureString(face, s)) / 64
}

// wrap breaks s into lines no wider than maxW. Explicit newlines start a new
// line; blank lines are kept. Words wider than maxW are split by rune.
func wrap(face font.Face, s string, maxW float64) []string {
	var lines []string
	for _, para := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := ""
		for _, word := range words {
			for advance(face, word) > maxW && utf8.RuneCountInString(word) > 1 {
				if line != "" {
					lines = append(lines, line)
					line = ""
				}
				head, tail := splitWord(face, word, maxW)
				lines = append(lines, head)
				word = tail
			}
			candidate := word
			if line != "" {
				candidate = line + " " + word
			}
			if line != "" && advance(face, candidate) > maxW {
				lines = append(lines, line)
				line = word
				continue
			}
			line = candidate
		}
		lines = append(lines, line)
	}
	return lines
}

func splitWord(face font.Face, word string, maxW float64) (string, string) {
	runes := []rune(word)
	n := 1
	for n < len(runes) && advance(face, string(runes[:n+1])) <= maxW {
		n++
	}
	return string(runes[:n]), string(runes[n:])
}
