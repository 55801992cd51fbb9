// Package deck holds the lookbook data model and reads deck files.
//
// A deck is what the editing side of the product produces: a client name, one
// client reference photo shared by every look, and an ordered list of looks
// (slides). Each slide has a title, a free-text vision description and any
// number of inspiration images.
//
// The export pipeline treats a [Slide] as a read-only descriptor. It never
// checks business content such as image sizes or description length; it only
// asks whether a slide has anything to show ([Slide.Exportable]).
//
// # Deck Files
//
// Decks are stored as TOML:
//
//	client    = "Ada Lovelace"
//	reference = "photos/ada.jpg"
//
//	[[slides]]
//	title       = "Evening Gala"
//	description = "Soft waves, pinned to one side."
//	images      = [{ src = "inspo/gala-1.jpg" }, { src = "https://example.com/gala-2.png" }]
//
// Relative image paths resolve against the deck file's directory. Missing
// slide and image IDs are generated, and missing titles default to "Look N".
package deck

import "image"

// Image is one picture referenced by a deck.
type Image struct {
	ID string
	// Source is where the image came from: a file path, an http(s) URL or a data URI.
	Source string
	// Pixels is the decoded image, or nil when it could not be loaded.
	Pixels image.Image
	// Err records why Pixels is nil.
	Err error
}

// Loaded reports whether the image has usable pixels.
func (i *Image) Loaded() bool {
	return i != nil && i.Pixels != nil
}

// Slide is one look of the lookbook.
type Slide struct {
	ID          string
	Title       string
	Description string
	// Reference is the client photo shared by every slide of a deck (may be nil).
	Reference    *Image
	Inspirations []Image
}

// Exportable reports whether the slide has content worth rendering:
// a non-empty description or at least one inspiration image. A description
// of only whitespace still counts.
func (s Slide) Exportable() bool {
	return s.Description != "" || len(s.Inspirations) > 0
}

// Deck is a complete lookbook.
type Deck struct {
	Client    string
	Reference *Image
	Slides    []Slide
}

// Exportable returns the exportable slides in deck order.
func (d *Deck) Exportable() []Slide {
	var out []Slide
	for _, s := range d.Slides {
		if s.Exportable() {
			out = append(out, s)
		}
	}
	return out
}

// Slide returns the slide with the given ID.
func (d *Deck) Slide(id string) (Slide, bool) {
	for _, s := range d.Slides {
		if s.ID == id {
			return s, true
		}
	}
	return Slide{}, false
}

// ExportableIDs returns the IDs of the exportable slides in deck order.
func (d *Deck) ExportableIDs() []string {
	slides := d.Exportable()
	ids := make([]string, len(slides))
	for i, s := range slides {
		ids[i] = s.ID
	}
	return ids
}
