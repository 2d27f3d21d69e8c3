package catalog

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/skrylnikov/arcana/pkg/types"
)

//go:embed deck.yaml
var deckYAML []byte

// minorBaseID is the first Minor Arcana id; majors occupy 0-21.
const minorBaseID = 22

type deckFile struct {
	MajorArcana []majorEntry `yaml:"major_arcana"`
	Suits       []suitEntry  `yaml:"suits"`
	Ranks       []rankEntry  `yaml:"ranks"`
}

type majorEntry struct {
	ID       int                       `yaml:"id"`
	Number   int                       `yaml:"number"`
	Names    map[types.Locale]string   `yaml:"names"`
	Meanings map[types.Locale]string   `yaml:"meanings"`
	Keywords map[types.Locale][]string `yaml:"keywords"`
}

type suitEntry struct {
	Key      string                    `yaml:"key"`
	Genitive map[types.Locale]string   `yaml:"genitive"`
	Theme    map[types.Locale]string   `yaml:"theme"`
	Keywords map[types.Locale][]string `yaml:"keywords"`
}

type rankEntry struct {
	Number int                     `yaml:"number"`
	Names  map[types.Locale]string `yaml:"names"`
	Theme  map[types.Locale]string `yaml:"theme"`
}

// buildDeck parses the embedded deck source and expands it into the full
// 78-card list: majors verbatim, minors composed from the rank and suit
// tables. Cards come back unvalidated; Load applies the invariants.
func buildDeck() ([]types.Card, error) {
	var df deckFile
	if err := yaml.Unmarshal(deckYAML, &df); err != nil {
		return nil, fmt.Errorf("parse deck source: %w", err)
	}

	cards := make([]types.Card, 0, len(df.MajorArcana)+len(df.Ranks)*len(df.Suits))
	for _, m := range df.MajorArcana {
		cards = append(cards, types.Card{
			ID:       m.ID,
			Names:    m.Names,
			Meanings: m.Meanings,
			Keywords: m.Keywords,
			Arcana:   types.ArcanaMajor,
			Number:   m.Number,
		})
	}

	for _, r := range df.Ranks {
		for si, s := range df.Suits {
			card := types.Card{
				ID:       minorBaseID + (r.Number-1)*len(df.Suits) + si,
				Names:    make(map[types.Locale]string, len(types.SupportedLocales)),
				Meanings: make(map[types.Locale]string, len(types.SupportedLocales)),
				Keywords: make(map[types.Locale][]string, len(types.SupportedLocales)),
				Arcana:   types.ArcanaMinor,
				Suit:     s.Key,
				Number:   r.Number,
			}
			for _, loc := range types.SupportedLocales {
				card.Names[loc] = r.Names[loc] + " " + s.Genitive[loc]
				card.Meanings[loc] = r.Theme[loc] + " " + s.Theme[loc] + "."
				kw := make([]string, 0, len(s.Keywords[loc])+1)
				kw = append(kw, s.Keywords[loc]...)
				kw = append(kw, strings.ToLower(r.Names[loc]))
				card.Keywords[loc] = kw
			}
			cards = append(cards, card)
		}
	}

	return cards, nil
}
