package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skrylnikov/arcana/pkg/types"
)

func TestNormalizeLowercaseAndWhitespace(t *testing.T) {
	got := Normalize("  The   TOWER  ", types.LocaleEN)
	assert.Equal(t, []string{"tower"}, got)
}

func TestNormalizeStripsLeadingPrefixes(t *testing.T) {
	cases := []struct {
		in   string
		loc  types.Locale
		want []string
	}{
		{"the fool", types.LocaleEN, []string{"fool"}},
		{"a tower", types.LocaleEN, []string{"tower"}},
		{"card the tower", types.LocaleEN, []string{"tower"}},
		{"карта башня", types.LocaleRU, []string{"башня"}},
		{"картка вежа", types.LocaleUK, []string{"вежа"}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Normalize(tc.in, tc.loc), "input %q", tc.in)
	}
}

func TestNormalizeSplitsFragments(t *testing.T) {
	got := Normalize("The Fool, the tower and three of cups\nstrength", types.LocaleEN)
	assert.Equal(t, []string{"fool", "tower", "three of cups", "strength"}, got)

	got = Normalize("башня и луна", types.LocaleRU)
	assert.Equal(t, []string{"башня", "луна"}, got)

	got = Normalize("вежа та місяць і сонце", types.LocaleUK)
	assert.Equal(t, []string{"вежа", "місяць", "сонце"}, got)
}

func TestNormalizeNumeralSubstitution(t *testing.T) {
	assert.Equal(t, []string{"семерка кубков"}, Normalize("семь кубков", types.LocaleRU))
	assert.Equal(t, []string{"сімка кубків"}, Normalize("сім кубків", types.LocaleUK))
	assert.Equal(t, []string{"seven of cups"}, Normalize("7 of cups", types.LocaleEN))
	assert.Equal(t, []string{"ace of wands"}, Normalize("one of wands", types.LocaleEN))
}

func TestNormalizeFoldsYo(t *testing.T) {
	assert.Equal(t, []string{"четверка мечей"}, Normalize("Четвёрка Мечей", types.LocaleRU))
}

func TestNormalizeEmptyInput(t *testing.T) {
	assert.Empty(t, Normalize("", types.LocaleEN))
	assert.Empty(t, Normalize(" , ,\n", types.LocaleEN))
	assert.Empty(t, Normalize("the and a", types.LocaleEN))
}

// Normalization must be idempotent over fragments it already produced.
func TestNormalizeIdempotent(t *testing.T) {
	inputs := []struct {
		text string
		loc  types.Locale
	}{
		{"The Fool, the tower and three of cups", types.LocaleEN},
		{"семь кубков, карта башня", types.LocaleRU},
		{"сім кубків та вежа", types.LocaleUK},
	}
	for _, in := range inputs {
		first := Normalize(in.text, in.loc)
		for _, frag := range first {
			assert.Equal(t, []string{frag}, Normalize(frag, in.loc),
				"fragment %q not stable under normalization", frag)
		}
	}
}
