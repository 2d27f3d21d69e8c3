package types_test

import (
	"testing"

	"github.com/skrylnikov/arcana/pkg/types"
)

func validMajor() types.Card {
	return types.Card{
		ID: 0,
		Names: map[types.Locale]string{
			types.LocaleEN: "The Fool",
			types.LocaleRU: "Дурак",
			types.LocaleUK: "Дурень",
		},
		Arcana: types.ArcanaMajor,
		Number: 0,
	}
}

func TestCardValidateMajor(t *testing.T) {
	if err := validMajor().Validate(); err != nil {
		t.Errorf("valid major arcana card rejected: %v", err)
	}
}

func TestCardValidateMissingLocale(t *testing.T) {
	c := validMajor()
	delete(c.Names, types.LocaleUK)
	if err := c.Validate(); err == nil {
		t.Error("card with missing locale name binding should be invalid")
	}
}

func TestCardValidateMajorWithSuit(t *testing.T) {
	c := validMajor()
	c.Suit = types.SuitCups
	if err := c.Validate(); err == nil {
		t.Error("major arcana card with a suit should be invalid")
	}
}

func TestCardValidateMinor(t *testing.T) {
	c := validMajor()
	c.ID = 32
	c.Arcana = types.ArcanaMinor
	c.Suit = types.SuitCups
	c.Number = 3
	if err := c.Validate(); err != nil {
		t.Errorf("valid minor arcana card rejected: %v", err)
	}

	c.Number = 15
	if err := c.Validate(); err == nil {
		t.Error("minor arcana number above 14 should be invalid")
	}

	c.Number = 3
	c.Suit = "coins"
	if err := c.Validate(); err == nil {
		t.Error("unknown suit should be invalid")
	}
}

func TestCardNameFallback(t *testing.T) {
	c := validMajor()
	if got := c.Name(types.LocaleRU); got != "Дурак" {
		t.Errorf("Name(ru) = %q", got)
	}
	if got := c.Name(types.Locale("de")); got != "The Fool" {
		t.Errorf("Name(de) should fall back to English, got %q", got)
	}
}
