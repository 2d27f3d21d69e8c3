// Package lang classifies free-text input into one of the supported locales.
// Detection is two-stage: a statistical language-identification pass over the
// supported set, then a rule-based tiebreak for the Russian/Ukrainian pair,
// which shares the Cyrillic script and routinely confuses statistical models
// on short inputs. Detection is total: it always returns a supported locale,
// falling back to the default when confidence is low.
package lang

import (
	"strings"
	"unicode"

	"github.com/pemistahl/lingua-go"

	"github.com/skrylnikov/arcana/pkg/types"
)

// confidenceThreshold is the minimum primary-pass confidence required to
// trust the statistical identification.
const confidenceThreshold = 0.80

// minDetectLength is the shortest input (in runes) worth classifying.
const minDetectLength = 3

// Detector wraps the statistical model and the rule table. Building the
// model is expensive; construct one Detector at startup and share it, it is
// safe for concurrent use.
type Detector struct {
	model lingua.LanguageDetector
}

// NewDetector builds a detector restricted to the supported locales.
func NewDetector() *Detector {
	model := lingua.NewLanguageDetectorBuilder().
		FromLanguages(lingua.English, lingua.Russian, lingua.Ukrainian).
		Build()
	return &Detector{model: model}
}

// Detect returns the locale of the given text. Same text, same answer.
func (d *Detector) Detect(text string) types.Locale {
	trimmed := strings.TrimSpace(text)
	if len([]rune(trimmed)) < minDetectLength {
		return types.DefaultLocale
	}

	// Exclusive-character and marker-word evidence is decisive for the
	// shared-script pair whatever the statistical pass thinks; a string of
	// pure Ukrainian characters must never fall back to the default.
	if hasCyrillic(trimmed) {
		if loc, ok := disambiguateCyrillic(trimmed); ok {
			return loc
		}
	}

	values := d.model.ComputeLanguageConfidenceValues(trimmed)
	if len(values) == 0 {
		return types.DefaultLocale
	}
	primary := localeOf(values[0].Language())
	if values[0].Value() < confidenceThreshold {
		return types.DefaultLocale
	}
	return primary
}

func localeOf(l lingua.Language) types.Locale {
	switch l {
	case lingua.Russian:
		return types.LocaleRU
	case lingua.Ukrainian:
		return types.LocaleUK
	default:
		return types.LocaleEN
	}
}

func hasCyrillic(text string) bool {
	for _, r := range text {
		if unicode.Is(unicode.Cyrillic, r) {
			return true
		}
	}
	return false
}

// disambiguateCyrillic applies the marker table in rule order: exclusive
// characters, then exclusive function words, then verb-suffix spelling.
// When none of the rules fire, it falls back to the і/и frequency ratio from
// the original heuristic; with neither letter present the pass is
// inconclusive and the statistical result stands.
func disambiguateCyrillic(text string) (types.Locale, bool) {
	lower := strings.ToLower(text)

	for _, rules := range cyrillicMarkers {
		if containsAnyRune(lower, rules.chars) {
			return rules.locale, true
		}
	}

	words := strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})
	for _, rules := range cyrillicMarkers {
		for _, marker := range rules.words {
			for _, w := range words {
				if w == marker {
					return rules.locale, true
				}
			}
		}
	}

	for _, rules := range cyrillicMarkers {
		for _, suffix := range rules.verbSuffixes {
			for _, w := range words {
				if strings.HasSuffix(w, suffix) {
					return rules.locale, true
				}
			}
		}
	}

	iCount := strings.Count(lower, "і")
	yCount := strings.Count(lower, "и")
	if iCount == 0 && yCount == 0 {
		return "", false
	}
	if iCount > 0 && float64(iCount)/float64(iCount+yCount) > 0.3 {
		return types.LocaleUK, true
	}
	return types.LocaleRU, true
}

func containsAnyRune(text string, runes []rune) bool {
	for _, r := range runes {
		if strings.ContainsRune(text, r) {
			return true
		}
	}
	return false
}
