package domain

import (
	"errors"
	"strings"
)

// Language represents a user's preferred output language for generated
// study aids. The backend supports English, Arabic, and bilingual output.
type Language string

// Supported language preferences.
const (
	LanguageEnglish Language = "english"
	LanguageArabic  Language = "arabic"
	LanguageBoth    Language = "both"
)

// ErrInvalidLanguage is returned when a language preference is not supported.
var ErrInvalidLanguage = errors.New("invalid language preference")

// ParseLanguage normalizes a raw language preference string.
// An empty string defaults to English; anything else unrecognized is an error.
func ParseLanguage(raw string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", string(LanguageEnglish):
		return LanguageEnglish, nil
	case string(LanguageArabic):
		return LanguageArabic, nil
	case string(LanguageBoth):
		return LanguageBoth, nil
	default:
		return "", ErrInvalidLanguage
	}
}

// Valid reports whether the language is one of the supported values.
func (l Language) Valid() bool {
	switch l {
	case LanguageEnglish, LanguageArabic, LanguageBoth:
		return true
	default:
		return false
	}
}
