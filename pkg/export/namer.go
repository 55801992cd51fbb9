package export

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultPrefix is the product prefix of exported file names.
const DefaultPrefix = "peridot"

// fallbackName replaces a title with nothing left after sanitizing.
const fallbackName = "slide"

// Namer derives export file names: <prefix>-<sanitized title>-<token>.png.
type Namer struct {
	Prefix string
}

// Filename returns the file name for a slide title and uniqueness token.
func (n Namer) Filename(title string, token int64) string {
	prefix := Sanitize(n.Prefix)
	if strings.TrimSpace(n.Prefix) == "" {
		prefix = DefaultPrefix
	}
	return fmt.Sprintf("%s-%s-%d.png", prefix, Sanitize(title), token)
}

// Sanitize reduces s to letters, digits and underscores. Accents are folded
// (é → e), runs of whitespace become a single underscore and every other
// character is dropped. An empty result becomes "slide".
//
// Sanitize is idempotent: Sanitize(Sanitize(s)) == Sanitize(s).
func Sanitize(s string) string {
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(fold, s); err == nil {
		s = folded
	}

	var b strings.Builder
	pendingSpace := false
	for _, r := range strings.TrimSpace(s) {
		switch {
		case unicode.IsSpace(r):
			pendingSpace = true
		case r == '_' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9'):
			if pendingSpace && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSpace = false
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return fallbackName
	}
	return b.String()
}
