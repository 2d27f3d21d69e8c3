package resolve

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/skrylnikov/arcana/pkg/types"
)

// leadingPrefixes are locale-specific article and card-noun tokens stripped
// when they lead a fragment.
var leadingPrefixes = map[types.Locale]map[string]bool{
	types.LocaleEN: {"the": true, "a": true, "an": true, "card": true},
	types.LocaleRU: {"карта": true},
	types.LocaleUK: {"карта": true, "картка": true},
}

// andWords split fragments the same way a comma does.
var andWords = map[types.Locale]map[string]bool{
	types.LocaleEN: {"and": true},
	types.LocaleRU: {"и": true},
	types.LocaleUK: {"і": true, "та": true},
}

// numeralToRank maps cardinal-number words (and digits) to the rank word used
// in catalog names. Unrecognized words pass through untouched.
var numeralToRank = map[types.Locale]map[string]string{
	types.LocaleEN: {
		"one": "ace", "1": "ace", "2": "two", "3": "three", "4": "four",
		"5": "five", "6": "six", "7": "seven", "8": "eight", "9": "nine",
		"10": "ten",
	},
	types.LocaleRU: {
		"один": "туз", "два": "двойка", "три": "тройка",
		"четыре": "четверка", "пять": "пятерка", "шесть": "шестерка",
		"семь": "семерка", "восемь": "восьмерка", "девять": "девятка",
		"десять": "десятка",
		"1": "туз", "2": "двойка", "3": "тройка", "4": "четверка",
		"5": "пятерка", "6": "шестерка", "7": "семерка", "8": "восьмерка",
		"9": "девятка", "10": "десятка",
	},
	types.LocaleUK: {
		"один": "туз", "два": "двійка", "три": "трійка",
		"чотири": "четвірка", "п'ять": "п'ятірка", "шість": "шістка",
		"сім": "сімка", "вісім": "вісімка", "дев'ять": "дев'ятка",
		"десять": "десятка",
		"1": "туз", "2": "двійка", "3": "трійка", "4": "четвірка",
		"5": "п'ятірка", "6": "шістка", "7": "сімка", "8": "вісімка",
		"9": "дев'ятка", "10": "десятка",
	},
}

func localeTag(loc types.Locale) language.Tag {
	switch loc {
	case types.LocaleRU:
		return language.Russian
	case types.LocaleUK:
		return language.Ukrainian
	default:
		return language.English
	}
}

// Normalize canonicalizes free text into an ordered list of fragment strings
// ready for resolution: locale-aware lowercasing, whitespace collapsing,
// leading article stripping, fragment splitting on commas, line breaks and
// the locale's "and" word, and cardinal-word to rank-word substitution.
//
// Normalize is a pure function: identical input and locale always yield
// identical output, and it is idempotent over already-normalized fragments.
// The result may be empty when the input holds no fragment content.
func Normalize(text string, loc types.Locale) []string {
	lower := cases.Lower(localeTag(loc)).String(text)
	if loc == types.LocaleRU {
		// ё and е are interchangeable in casual typing; catalog names use е.
		lower = strings.ReplaceAll(lower, "ё", "е")
	}
	lower = strings.NewReplacer("\r", ",", "\n", ",").Replace(lower)

	var fragments []string
	for _, raw := range strings.Split(lower, ",") {
		tokens := strings.Fields(raw)
		current := make([]string, 0, len(tokens))
		flush := func() {
			if frag := finishFragment(current, loc); frag != "" {
				fragments = append(fragments, frag)
			}
			current = current[:0]
		}
		for _, tok := range tokens {
			if andWords[loc][tok] {
				flush()
				continue
			}
			current = append(current, tok)
		}
		flush()
	}
	return fragments
}

// finishFragment strips leading prefix tokens and applies the numeral table,
// returning the empty string when nothing remains.
func finishFragment(tokens []string, loc types.Locale) string {
	for len(tokens) > 0 && leadingPrefixes[loc][tokens[0]] {
		tokens = tokens[1:]
	}
	if len(tokens) == 0 {
		return ""
	}
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		if rank, ok := numeralToRank[loc][tok]; ok {
			out[i] = rank
		} else {
			out[i] = tok
		}
	}
	return strings.Join(out, " ")
}
