// Package translation wraps machine translation backends behind a single
// interface. English is the pivot language: every supported pair is either
// X->en or en->X, and en->en is an identity.
package translation

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"
)

var (
	ErrUnsupportedLanguage = errors.New("unsupported language")
	ErrTextTooLong         = errors.New("text exceeds maximum translation length")
	ErrBackendUnavailable  = errors.New("translation backend unavailable")
)

type Translator interface {
	Translate(ctx context.Context, text, source, target string) (string, error)
}

// languageNames maps ISO 639-1 codes to native display names.
var languageNames = map[string]string{
	"en": "English",
	"fr": "Français",
	"de": "Deutsch",
	"es": "Español",
	"hi": "हिन्दी",
}

// Supported reports whether the given language code has a model pair.
func Supported(code string) bool {
	_, ok := languageNames[code]
	return ok
}

// LanguageName returns the display name for a supported code.
func LanguageName(code string) string {
	return languageNames[code]
}

// Languages returns a copy of the code-to-name table.
func Languages() map[string]string {
	out := make(map[string]string, len(languageNames))
	for code, name := range languageNames {
		out[code] = name
	}
	return out
}

// validatePair checks that a request is translatable: both codes supported,
// one side English, text within the length limit.
func validatePair(text, source, target string, maxLength int) error {
	if !Supported(source) {
		return fmt.Errorf("%w: %q", ErrUnsupportedLanguage, source)
	}
	if !Supported(target) {
		return fmt.Errorf("%w: %q", ErrUnsupportedLanguage, target)
	}
	if source != "en" && target != "en" {
		return fmt.Errorf("%w: pair %s->%s (English pivot required)", ErrUnsupportedLanguage, source, target)
	}
	// The limit is in characters, not bytes; Devanagari and accented text
	// would otherwise trip it at a third of the advertised length.
	if length := utf8.RuneCountInString(text); maxLength > 0 && length > maxLength {
		return fmt.Errorf("%w: %d > %d", ErrTextTooLong, length, maxLength)
	}
	return nil
}
