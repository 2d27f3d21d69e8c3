// Package catalog provides the immutable card catalog the resolver matches
// against. The deck is loaded once at process start from an embedded YAML
// source, validated against the structural invariants of the data model, and
// held read-only for the process lifetime. Concurrent reads need no locking.
package catalog

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/skrylnikov/arcana/pkg/types"
)

// DeckSize is the number of cards a valid deck must contain.
const DeckSize = 78

// ErrInvalidDeck indicates the deck source is malformed or violates a
// structural invariant. It is fatal at startup; the process must not serve
// traffic with a partial catalog.
var ErrInvalidDeck = errors.New("invalid deck data")

// Catalog is the loaded, indexed deck.
type Catalog struct {
	cards []types.Card
	byID  map[int]types.Card
}

// Load parses the embedded deck source, expands the Minor Arcana, and
// validates every card. It fails with an error wrapping ErrInvalidDeck on
// malformed data, a missing locale binding, a duplicate or out-of-range id,
// or an inconsistent arcana/suit/number combination.
func Load() (*Catalog, error) {
	cards, err := buildDeck()
	if err != nil {
		return nil, fmt.Errorf("catalog: %w: %v", ErrInvalidDeck, err)
	}

	if len(cards) != DeckSize {
		return nil, fmt.Errorf("catalog: %w: expected %d cards, got %d", ErrInvalidDeck, DeckSize, len(cards))
	}

	byID := make(map[int]types.Card, len(cards))
	for _, card := range cards {
		if err := card.Validate(); err != nil {
			return nil, fmt.Errorf("catalog: %w: %v", ErrInvalidDeck, err)
		}
		if _, dup := byID[card.ID]; dup {
			return nil, fmt.Errorf("catalog: %w: duplicate card id %d", ErrInvalidDeck, card.ID)
		}
		byID[card.ID] = card
	}

	return &Catalog{cards: cards, byID: byID}, nil
}

// ByID returns the card with the given id in O(1).
func (c *Catalog) ByID(id int) (types.Card, bool) {
	card, ok := c.byID[id]
	return card, ok
}

// Cards returns all cards for indexing. Callers must not mutate the result.
func (c *Catalog) Cards() []types.Card {
	return c.cards
}

// Len returns the number of cards in the catalog.
func (c *Catalog) Len() int {
	return len(c.cards)
}

// Draw returns n random distinct cards, fewer if n exceeds the deck size.
func (c *Catalog) Draw(n int) []types.Card {
	if n > len(c.cards) {
		n = len(c.cards)
	}
	drawn := make([]types.Card, 0, n)
	for _, i := range rand.Perm(len(c.cards))[:n] {
		drawn = append(drawn, c.cards[i])
	}
	return drawn
}
