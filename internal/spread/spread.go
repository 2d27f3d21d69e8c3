// Package spread defines card layouts for automated readings. A spread
// names how many cards are drawn and what each position means, with
// position names localized to the reading locale.
package spread

import (
	"fmt"

	"github.com/skrylnikov/arcana/internal/catalog"
	"github.com/skrylnikov/arcana/pkg/types"
)

// Spread describes a card layout for an automated reading.
type Spread interface {
	// Name is the spread's stable identifier.
	Name() string

	// Size is the number of cards the spread draws.
	Size() int

	// Positions returns the localized position names, in draw order.
	Positions(loc types.Locale) []string

	// Description returns a localized one-line summary of the layout.
	Description(loc types.Locale) string

	// Draw picks cards for this spread from the catalog without replacement.
	Draw(cat *catalog.Catalog) []types.Card
}

type threeCard struct{}

// ThreeCard is the Past, Present, Future layout used for automated readings.
func ThreeCard() Spread { return threeCard{} }

func (threeCard) Name() string { return "three_card" }
func (threeCard) Size() int    { return 3 }

func (threeCard) Positions(loc types.Locale) []string {
	switch loc {
	case types.LocaleRU:
		return []string{"Прошлое", "Настоящее", "Будущее"}
	case types.LocaleUK:
		return []string{"Минуле", "Теперішнє", "Майбутнє"}
	default:
		return []string{"Past", "Present", "Future"}
	}
}

func (threeCard) Description(loc types.Locale) string {
	switch loc {
	case types.LocaleRU:
		return "Расклад из трёх карт: Прошлое, Настоящее, Будущее"
	case types.LocaleUK:
		return "Розклад з трьох карт: Минуле, Теперішнє, Майбутнє"
	default:
		return "Three-card spread representing Past, Present, and Future"
	}
}

func (s threeCard) Draw(cat *catalog.Catalog) []types.Card {
	return cat.Draw(s.Size())
}

type single struct{}

// Single is the one-card guidance layout.
func Single() Spread { return single{} }

func (single) Name() string { return "single" }
func (single) Size() int    { return 1 }

func (single) Positions(loc types.Locale) []string {
	switch loc {
	case types.LocaleRU:
		return []string{"Совет"}
	case types.LocaleUK:
		return []string{"Порада"}
	default:
		return []string{"Guidance"}
	}
}

func (single) Description(loc types.Locale) string {
	switch loc {
	case types.LocaleRU:
		return "Одна карта для быстрого совета"
	case types.LocaleUK:
		return "Одна карта для швидкої поради"
	default:
		return "Single card for quick guidance"
	}
}

func (s single) Draw(cat *catalog.Catalog) []types.Card {
	return cat.Draw(s.Size())
}

// New returns the spread registered under name.
func New(name string) (Spread, error) {
	switch name {
	case "three_card", "":
		return ThreeCard(), nil
	case "single":
		return Single(), nil
	default:
		return nil, fmt.Errorf("spread: unknown layout %q", name)
	}
}
