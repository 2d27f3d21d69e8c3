package spread

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skrylnikov/arcana/internal/catalog"
	"github.com/skrylnikov/arcana/pkg/types"
)

func TestThreeCardPositionsPerLocale(t *testing.T) {
	s := ThreeCard()
	assert.Equal(t, []string{"Past", "Present", "Future"}, s.Positions(types.LocaleEN))
	assert.Equal(t, []string{"Прошлое", "Настоящее", "Будущее"}, s.Positions(types.LocaleRU))
	assert.Equal(t, []string{"Минуле", "Теперішнє", "Майбутнє"}, s.Positions(types.LocaleUK))
	assert.Equal(t, []string{"Past", "Present", "Future"}, s.Positions(types.Locale("de")))
}

func TestSinglePositionsPerLocale(t *testing.T) {
	s := Single()
	assert.Equal(t, []string{"Guidance"}, s.Positions(types.LocaleEN))
	assert.Equal(t, []string{"Совет"}, s.Positions(types.LocaleRU))
	assert.Equal(t, []string{"Порада"}, s.Positions(types.LocaleUK))
}

func TestDrawMatchesSpreadSize(t *testing.T) {
	cat, err := catalog.Load()
	require.NoError(t, err)

	for _, s := range []Spread{ThreeCard(), Single()} {
		cards := s.Draw(cat)
		require.Len(t, cards, s.Size())
		require.Len(t, s.Positions(types.LocaleEN), s.Size())

		seen := map[int]bool{}
		for _, c := range cards {
			assert.False(t, seen[c.ID], "card %d drawn twice", c.ID)
			seen[c.ID] = true
		}
	}
}

func TestNewSelectsSpreadByName(t *testing.T) {
	s, err := New("three_card")
	require.NoError(t, err)
	assert.Equal(t, 3, s.Size())

	s, err = New("single")
	require.NoError(t, err)
	assert.Equal(t, 1, s.Size())

	s, err = New("")
	require.NoError(t, err)
	assert.Equal(t, "three_card", s.Name())

	_, err = New("celtic_cross")
	assert.Error(t, err)
}
