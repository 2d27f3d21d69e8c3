package types

import "fmt"

// Arcana constants partition the deck into its two card groups.
const (
	ArcanaMajor = "major"
	ArcanaMinor = "minor"
)

// Suit constants for Minor Arcana cards.
const (
	SuitWands     = "wands"
	SuitSwords    = "swords"
	SuitCups      = "cups"
	SuitPentacles = "pentacles"
)

// ValidSuits contains all valid suit values, in catalog id order.
var ValidSuits = []string{SuitWands, SuitSwords, SuitCups, SuitPentacles}

// Card represents a single card of the 78-card deck.
// Cards are immutable after catalog load and safe to share across goroutines.
type Card struct {
	ID       int                 `json:"id"`       // Dense unique identifier, 0-77
	Names    map[Locale]string   `json:"names"`    // Display name per locale
	Meanings map[Locale]string   `json:"meanings"` // Short upright descriptor per locale
	Keywords map[Locale][]string `json:"keywords"` // Matching keywords per locale
	Arcana   string              `json:"arcana"`   // "major" or "minor"
	Suit     string              `json:"suit,omitempty"`
	Number   int                 `json:"number"` // Majors: 0-21; minors: 1 (ace) - 14 (king)
}

// Name returns the card name in the given locale, falling back to English.
func (c Card) Name(loc Locale) string {
	if name, ok := c.Names[loc]; ok {
		return name
	}
	return c.Names[LocaleEN]
}

// Meaning returns the card's short descriptor in the given locale,
// falling back to English.
func (c Card) Meaning(loc Locale) string {
	if m, ok := c.Meanings[loc]; ok {
		return m
	}
	return c.Meanings[LocaleEN]
}

// KeywordsFor returns the card's keyword list in the given locale,
// falling back to English.
func (c Card) KeywordsFor(loc Locale) []string {
	if kw, ok := c.Keywords[loc]; ok {
		return kw
	}
	return c.Keywords[LocaleEN]
}

// Validate checks the card's structural invariants: a complete set of locale
// name bindings, a known arcana tag, and consistent suit/number attributes.
func (c Card) Validate() error {
	if c.ID < 0 || c.ID > 77 {
		return fmt.Errorf("card %d: id out of range", c.ID)
	}
	for _, loc := range SupportedLocales {
		if c.Names[loc] == "" {
			return fmt.Errorf("card %d: missing %s name", c.ID, loc)
		}
	}
	switch c.Arcana {
	case ArcanaMajor:
		if c.Suit != "" {
			return fmt.Errorf("card %d: major arcana must not carry a suit", c.ID)
		}
		if c.Number < 0 || c.Number > 21 {
			return fmt.Errorf("card %d: major arcana number %d out of range", c.ID, c.Number)
		}
	case ArcanaMinor:
		if !isValidSuit(c.Suit) {
			return fmt.Errorf("card %d: invalid suit %q", c.ID, c.Suit)
		}
		if c.Number < 1 || c.Number > 14 {
			return fmt.Errorf("card %d: minor arcana number %d out of range", c.ID, c.Number)
		}
	default:
		return fmt.Errorf("card %d: invalid arcana %q", c.ID, c.Arcana)
	}
	return nil
}

func isValidSuit(suit string) bool {
	for _, s := range ValidSuits {
		if suit == s {
			return true
		}
	}
	return false
}
