package types

// Locale identifies one of the natural languages the assistant supports.
type Locale string

// Supported locale constants.
const (
	LocaleEN Locale = "en"
	LocaleRU Locale = "ru"
	LocaleUK Locale = "uk"
)

// DefaultLocale is used when detection confidence is too low or the
// identified language is outside the supported set.
const DefaultLocale = LocaleEN

// SupportedLocales contains all locales the catalog carries name bindings for.
var SupportedLocales = []Locale{LocaleEN, LocaleRU, LocaleUK}

// IsValidLocale checks whether the given locale is supported.
func IsValidLocale(loc Locale) bool {
	for _, l := range SupportedLocales {
		if loc == l {
			return true
		}
	}
	return false
}
