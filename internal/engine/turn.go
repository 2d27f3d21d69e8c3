package engine

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/skrylnikov/arcana/internal/interpret"
	"github.com/skrylnikov/arcana/internal/resolve"
	"github.com/skrylnikov/arcana/pkg/types"
)

// Outcome is what one text turn produced. Session is always set.
// Resolution is set for card-input turns so the transport can list which
// fragments were recognized and which were not. Reading is set only when an
// interpretation completed.
type Outcome struct {
	Session    *types.Session
	Resolution *types.Resolution
	Reading    *types.Reading
}

// HandleMessage routes free text by the session's current state. Text in a
// state that does not accept free text is rejected with ErrInvalidTransition
// and no state change.
func (e *Engine) HandleMessage(ctx context.Context, userID, text string) (*Outcome, error) {
	l, err := e.begin(userID)
	if err != nil {
		return nil, err
	}
	defer l.Unlock()

	s, err := e.session(ctx, userID)
	if err != nil {
		return nil, err
	}

	switch s.State {
	case types.StateAwaitingQuestion:
		return e.submitQuestion(ctx, s, text)
	case types.StateAwaitingCards:
		return e.submitCards(ctx, s, text)
	default:
		return &Outcome{Session: s}, ErrInvalidTransition
	}
}

// AcceptPartial proceeds with the partially resolved combination stored by
// an earlier card-input turn. The pending-cards field is the caller's
// decision point: resend new text to retry, or accept here to continue.
func (e *Engine) AcceptPartial(ctx context.Context, userID string) (*Outcome, error) {
	l, err := e.begin(userID)
	if err != nil {
		return nil, err
	}
	defer l.Unlock()

	s, err := e.session(ctx, userID)
	if err != nil {
		return nil, err
	}
	if s.State != types.StateAwaitingCards || len(s.PendingCards) == 0 {
		return &Outcome{Session: s}, ErrInvalidTransition
	}
	return e.completeCustom(ctx, s, s.PendingCards)
}

// submitQuestion validates the question and runs the automated reading:
// draw the spread, call the collaborator, record the result.
func (e *Engine) submitQuestion(ctx context.Context, s *types.Session, text string) (*Outcome, error) {
	trimmed := strings.TrimSpace(text)
	if utf8.RuneCountInString(trimmed) < MinQuestionLength {
		return &Outcome{Session: s}, fmt.Errorf("question shorter than %d characters: %w", MinQuestionLength, ErrValidation)
	}
	if utf8.RuneCountInString(text) > MaxQuestionLength {
		return &Outcome{Session: s}, fmt.Errorf("question longer than %d characters: %w", MaxQuestionLength, ErrValidation)
	}

	s.Locale = e.detector.Detect(trimmed)
	s.PendingQuestion = trimmed

	cards := e.layout.Draw(e.cat)
	positions := e.layout.Positions(s.Locale)

	reading, err := e.interpret(ctx, s, types.StateAwaitingQuestion, types.Reading{
		Type:      types.ReadingAutomated,
		Question:  trimmed,
		Positions: positions,
	}, cards)
	if err != nil {
		return &Outcome{Session: s}, err
	}
	return &Outcome{Session: s, Reading: reading}, nil
}

// submitCards resolves user-named cards. Zero resolved re-prompts; a partial
// result is parked for the caller's proceed-or-retry choice; a full result
// completes the reading.
func (e *Engine) submitCards(ctx context.Context, s *types.Session, text string) (*Outcome, error) {
	s.Locale = e.detector.Detect(text)

	fragments := resolve.Normalize(text, s.Locale)
	res := e.resolver.Resolve(fragments, s.Locale, e.maxCards)

	if res.Empty() {
		s.FailedAttempts++
		s.Touch()
		if err := e.save(ctx, s); err != nil {
			return nil, err
		}
		return &Outcome{Session: s, Resolution: &res}, nil
	}

	if res.Partial() {
		s.PendingCards = res.Resolved
		s.Touch()
		if err := e.save(ctx, s); err != nil {
			return nil, err
		}
		return &Outcome{Session: s, Resolution: &res}, nil
	}

	out, err := e.completeCustom(ctx, s, res.Resolved)
	if err != nil {
		return out, err
	}
	out.Resolution = &res
	return out, nil
}

// completeCustom runs the collaborator over an accepted card list.
func (e *Engine) completeCustom(ctx context.Context, s *types.Session, ids []int) (*Outcome, error) {
	cards := make([]types.Card, 0, len(ids))
	for _, id := range ids {
		card, ok := e.cat.ByID(id)
		if !ok {
			return &Outcome{Session: s}, fmt.Errorf("engine: resolved id %d missing from catalog", id)
		}
		cards = append(cards, card)
	}

	reading, err := e.interpret(ctx, s, types.StateAwaitingCards, types.Reading{
		Type:     types.ReadingCustom,
		Question: s.PendingQuestion,
	}, cards)
	if err != nil {
		return &Outcome{Session: s}, err
	}
	return &Outcome{Session: s, Reading: reading}, nil
}

// interpret runs the collaborator call under the processing state. The
// processing state is persisted before the call so a concurrent observer
// sees the turn in flight; on failure the session rolls back to prior so
// the user can retry, on success the reading is recorded and the session
// returns to idle.
func (e *Engine) interpret(ctx context.Context, s *types.Session, prior string, template types.Reading, cards []types.Card) (*types.Reading, error) {
	if err := advance(s, types.StateProcessing); err != nil {
		return nil, err
	}
	if err := e.save(ctx, s); err != nil {
		return nil, err
	}

	text, err := e.interpreter.Interpret(ctx, interpret.Request{
		Cards:     cards,
		Question:  template.Question,
		Positions: template.Positions,
		Locale:    s.Locale,
	})
	if err != nil {
		if rbErr := advance(s, prior); rbErr != nil {
			return nil, rbErr
		}
		if saveErr := e.save(ctx, s); saveErr != nil {
			return nil, saveErr
		}
		return nil, fmt.Errorf("%w: %w", ErrCollaborator, err)
	}

	ids := make([]int, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
	}

	reading := template
	reading.ID = uuid.NewString()
	reading.CardIDs = ids
	reading.Interpretation = text
	reading.Locale = s.Locale
	reading.Timestamp = time.Now().UTC()

	s.RecordReading(&reading)
	if err := advance(s, types.StateIdle); err != nil {
		return nil, err
	}
	if err := e.save(ctx, s); err != nil {
		return nil, err
	}
	return &reading, nil
}
