// Package interpret talks to the external interpretation service. The core
// treats it as an opaque, potentially slow, potentially failing collaborator:
// every call runs under a timeout and a circuit breaker, and replies are
// bounded to MaxReplyLength.
package interpret

import (
	"context"

	"github.com/skrylnikov/arcana/pkg/types"
)

// MaxReplyLength bounds the interpretation text returned to callers, in runes.
const MaxReplyLength = 4000

// Request carries everything the collaborator needs for one interpretation.
type Request struct {
	// Cards are the resolved catalog entities, in reading order.
	Cards []types.Card

	// Question is the user's free-text prompt. May be empty for custom
	// combinations submitted without a question.
	Question string

	// Positions are spread position names aligned with Cards for automated
	// readings; empty for custom combinations.
	Positions []string

	// Locale selects the language of the interpretation.
	Locale types.Locale
}

// Interpreter generates an interpretation for a set of resolved cards.
type Interpreter interface {
	Interpret(ctx context.Context, req Request) (string, error)
	Model() string
}

// truncate caps s at limit runes.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
