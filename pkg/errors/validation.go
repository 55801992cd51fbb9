package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// ValidateSlideID validates a slide identifier taken from user input.
//
// IDs are used as map keys and in log lines, never as paths, so the rules only
// reject values that could not have come from a deck file:
//   - No empty IDs
//   - No control characters
//   - Maximum length of 128 characters
func ValidateSlideID(id string) error {
	if strings.TrimSpace(id) == "" {
		return New(ErrCodeInvalidInput, "slide id cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidInput, "slide id too long (max 128 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "slide id contains invalid control characters")
		}
	}

	return nil
}

// ValidateFilename validates a suggested export filename.
// It must be a plain basename so delivery can never write outside its directory.
func ValidateFilename(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "filename cannot be empty")
	}

	if strings.ContainsAny(name, "/\\\x00") {
		return New(ErrCodeInvalidInput, "filename cannot contain path separators")
	}

	if name == "." || name == ".." || filepath.Base(name) != name {
		return New(ErrCodeInvalidInput, "filename must be a plain basename: %q", name)
	}

	if strings.HasPrefix(name, ".") {
		return New(ErrCodeInvalidInput, "filename cannot be a hidden file")
	}

	return nil
}

// ValidateURL validates a remote image URL.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
