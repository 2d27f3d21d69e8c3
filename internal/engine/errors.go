package engine

import "errors"

// Turn-boundary error taxonomy. Every failure from the resolution pipeline
// or the state machine maps to one of these sentinels; nothing else escapes
// to the transport layer.
var (
	// ErrInvalidTransition means the input is not valid for the session's
	// current state. The session is left unchanged.
	ErrInvalidTransition = errors.New("engine: input not valid for current state")

	// ErrPaymentRequired is the entitlement policy branch, not a fault.
	// The session parks in awaiting_payment until confirmation arrives.
	ErrPaymentRequired = errors.New("engine: payment required")

	// ErrValidation means the input failed length or format checks before
	// resolution. The session is left unchanged.
	ErrValidation = errors.New("engine: input validation failed")

	// ErrRateLimited means the user exhausted their per-minute budget.
	ErrRateLimited = errors.New("engine: rate limit exceeded")

	// ErrCollaborator means the interpretation call failed or timed out.
	// The session has been rolled back to its pre-processing state, so the
	// turn is retryable.
	ErrCollaborator = errors.New("engine: interpretation service failed")

	// ErrBusy means a turn for this user is already in flight.
	ErrBusy = errors.New("engine: turn already in progress")
)
