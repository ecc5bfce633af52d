package model

import "fmt"

// Locale selects the language of every UI label.
type Locale string

const (
	LocaleZH Locale = "zh"
	LocaleEN Locale = "en"
)

// DefaultLocale is the locale a fresh client starts in.
const DefaultLocale = LocaleZH

// Toggle returns the other locale.
func (l Locale) Toggle() Locale {
	if l == LocaleZH {
		return LocaleEN
	}
	return LocaleZH
}

// ParseLocale validates a locale name from configuration.
func ParseLocale(s string) (Locale, error) {
	switch Locale(s) {
	case LocaleZH, LocaleEN:
		return Locale(s), nil
	}
	return "", fmt.Errorf("unknown locale %q (want zh or en)", s)
}
