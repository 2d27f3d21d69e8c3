package lang

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skrylnikov/arcana/pkg/types"
)

var (
	sharedDetector *Detector
	detectorOnce   sync.Once
)

// the statistical model is expensive to build; share one across tests.
func testDetector() *Detector {
	detectorOnce.Do(func() { sharedDetector = NewDetector() })
	return sharedDetector
}

func TestDetectEnglish(t *testing.T) {
	d := testDetector()
	assert.Equal(t, types.LocaleEN, d.Detect("what should I focus on this month?"))
}

func TestDetectRussian(t *testing.T) {
	d := testDetector()
	assert.Equal(t, types.LocaleRU, d.Detect("что мне ждать от этой недели?"))
}

func TestDetectUkrainian(t *testing.T) {
	d := testDetector()
	assert.Equal(t, types.LocaleUK, d.Detect("що мені чекати від цього тижня?"))
}

// Text composed purely of one locale's exclusive characters must return that
// locale, never the default fallback.
func TestDetectExclusiveCharacters(t *testing.T) {
	d := testDetector()
	assert.Equal(t, types.LocaleUK, d.Detect("їжа, ґанок, є"))
	assert.Equal(t, types.LocaleRU, d.Detect("эхо, объём, ы"))
}

func TestDetectSiblingDisambiguation(t *testing.T) {
	d := testDetector()

	// Marker function words decide when the alphabets alone cannot.
	assert.Equal(t, types.LocaleRU, d.Detect("стоит ли мне менять работу"))
	assert.Equal(t, types.LocaleUK, d.Detect("чи варто змінювати роботу"))

	// Verb-suffix spelling: -ется (ru) vs -ється (uk).
	assert.Equal(t, types.LocaleRU, d.Detect("как все сложится дальше, что меня ждет"))
	assert.Equal(t, types.LocaleUK, d.Detect("як усе складається далі"))
}

func TestDetectShortInputFallsBack(t *testing.T) {
	d := testDetector()
	assert.Equal(t, types.DefaultLocale, d.Detect(""))
	assert.Equal(t, types.DefaultLocale, d.Detect("  a "))
}

func TestDetectDeterministic(t *testing.T) {
	d := testDetector()
	inputs := []string{
		"what should I do next?",
		"семь кубков и башня",
		"сім кубків та вежа",
	}
	for _, in := range inputs {
		first := d.Detect(in)
		for i := 0; i < 3; i++ {
			assert.Equal(t, first, d.Detect(in), "input %q", in)
		}
	}
}
