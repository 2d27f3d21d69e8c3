package lang

import "github.com/skrylnikov/arcana/pkg/types"

// markerRules is the data table for the rule-based tiebreak between the
// shared-script sibling locales (Russian and Ukrainian). Extending detection
// to another locale pair means adding a row here, not new code.
type markerRules struct {
	locale types.Locale

	// chars are code points that exist in this locale's alphabet only.
	chars []rune

	// words are high-frequency function words exclusive to the locale.
	words []string

	// verbSuffixes are reflexive verb endings spelled differently in the
	// two locales.
	verbSuffixes []string
}

var cyrillicMarkers = []markerRules{
	{
		locale:       types.LocaleUK,
		chars:        []rune{'і', 'ї', 'є', 'ґ'},
		words:        []string{"чи", "який", "мені", "тобі", "цей", "той", "ця", "та", "ті", "тих", "що"},
		verbSuffixes: []string{"ється", "уватиме"},
	},
	{
		locale:       types.LocaleRU,
		chars:        []rune{'ы', 'э', 'ъ', 'ё'},
		words:        []string{"или", "который", "мне", "тебе", "этот", "тот", "эта", "эти", "тех", "что"},
		verbSuffixes: []string{"ется", "овать"},
	},
}
