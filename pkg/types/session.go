package types

import "time"

// Session state constants for the per-user conversation state machine.
const (
	StateIdle             = "idle"              // Resting state; the only entry and exit point
	StateAwaitingQuestion = "awaiting_question" // Waiting for free-text question input
	StateAwaitingCards    = "awaiting_cards"    // Waiting for card names to resolve
	StateAwaitingPayment  = "awaiting_payment"  // Access denied until payment confirms
	StateProcessing       = "processing"        // Collaborator call in flight; transient
)

// ValidSessionStates contains all valid session state values.
var ValidSessionStates = []string{
	StateIdle,
	StateAwaitingQuestion,
	StateAwaitingCards,
	StateAwaitingPayment,
	StateProcessing,
}

// IsValidSessionState checks if the given state is a valid session state.
func IsValidSessionState(state string) bool {
	for _, s := range ValidSessionStates {
		if state == s {
			return true
		}
	}
	return false
}

// IsValidSessionTransition validates a state transition.
// The reset transition (any state back to idle) is always permitted.
//
// Valid transitions:
//
//	idle -> awaiting_question | awaiting_cards | awaiting_payment
//	awaiting_payment -> awaiting_question | awaiting_cards
//	awaiting_question -> processing
//	awaiting_cards -> processing
//	processing -> idle | awaiting_question | awaiting_cards (rollback or re-prompt)
func IsValidSessionTransition(current, next string) bool {
	if next == StateIdle {
		return true // reset is always permitted
	}

	switch current {
	case StateIdle:
		return next == StateAwaitingQuestion || next == StateAwaitingCards ||
			next == StateAwaitingPayment

	case StateAwaitingPayment:
		return next == StateAwaitingQuestion || next == StateAwaitingCards

	case StateAwaitingQuestion:
		return next == StateProcessing

	case StateAwaitingCards:
		return next == StateProcessing

	case StateProcessing:
		return next == StateAwaitingQuestion || next == StateAwaitingCards

	default:
		return false
	}
}

// Reading type constants. A reading is a tagged variant: automated readings
// carry drawn cards with spread positions, custom readings carry the cards
// the user named, with no positions.
const (
	ReadingAutomated = "automated"
	ReadingCustom    = "custom"
)

// Reading records one completed interaction with the interpretation service.
type Reading struct {
	ID             string    `json:"id"`   // UUID assigned at completion
	Type           string    `json:"type"` // "automated" or "custom"
	CardIDs        []int     `json:"card_ids"`
	Question       string    `json:"question,omitempty"`
	Positions      []string  `json:"positions,omitempty"` // Spread position names; empty for custom readings
	Interpretation string    `json:"interpretation"`
	Locale         Locale    `json:"locale"`
	Timestamp      time.Time `json:"timestamp"`
}

// Session holds per-user conversation state across turns.
// Sessions are mutable; the engine serializes all access per user id.
type Session struct {
	UserID string `json:"user_id"`
	Locale Locale `json:"locale"`
	State  string `json:"state"`

	// LastReading is the most recent completed interaction, if any.
	LastReading *Reading `json:"last_reading,omitempty"`

	// ReadingCount is the number of completed interactions. Monotonically
	// non-decreasing; the trial entitlement branch grants access while it
	// is zero.
	ReadingCount int `json:"reading_count"`

	// PendingKind remembers which reading type was requested when the
	// session parked in awaiting_payment.
	PendingKind string `json:"pending_kind,omitempty"`

	// PendingQuestion carries the validated question text between the
	// question turn and the collaborator call.
	PendingQuestion string `json:"pending_question,omitempty"`

	// PendingCards holds a partial resolution awaiting the user's
	// proceed-or-retry choice during custom card input.
	PendingCards []int `json:"pending_cards,omitempty"`

	// FailedAttempts counts consecutive failed resolutions in the current
	// card-input exchange. Reset when the exchange completes or resets.
	FailedAttempts int `json:"failed_attempts"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSession creates a session in the default state for a first-contact user.
func NewSession(userID string) *Session {
	now := time.Now().UTC()
	return &Session{
		UserID:    userID,
		Locale:    DefaultLocale,
		State:     StateIdle,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch updates the session's last-activity timestamp.
func (s *Session) Touch() {
	s.UpdatedAt = time.Now().UTC()
}

// SetState changes the conversation state and touches the session.
// It does not validate the transition; callers use IsValidSessionTransition.
func (s *Session) SetState(state string) {
	s.State = state
	s.Touch()
}

// RecordReading stores a completed reading, increments the interaction
// counter and clears all transient turn fields.
func (s *Session) RecordReading(r *Reading) {
	s.LastReading = r
	s.ReadingCount++
	s.PendingKind = ""
	s.PendingQuestion = ""
	s.PendingCards = nil
	s.FailedAttempts = 0
	s.Touch()
}

// ExpiredAt reports whether the session's inactivity window has elapsed
// relative to now for the given time-to-live.
func (s *Session) ExpiredAt(now time.Time, ttl time.Duration) bool {
	return now.Sub(s.UpdatedAt) > ttl
}
