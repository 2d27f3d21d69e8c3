// Package engine drives the per-user conversation state machine. It owns
// entitlement policy, per-user turn serialization, rate limiting and the
// error taxonomy surfaced to the transport layer. All session mutations
// happen here; the resolution pipeline and the interpretation collaborator
// are consumed through their package boundaries.
package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/skrylnikov/arcana/internal/catalog"
	"github.com/skrylnikov/arcana/internal/interpret"
	"github.com/skrylnikov/arcana/internal/lang"
	"github.com/skrylnikov/arcana/internal/resolve"
	"github.com/skrylnikov/arcana/internal/spread"
	"github.com/skrylnikov/arcana/internal/storage"
	"github.com/skrylnikov/arcana/pkg/types"
)

// Question length bounds, in characters, checked before any resolution work.
const (
	MinQuestionLength = 5
	MaxQuestionLength = 500
)

// DefaultTrialReadings is the number of free readings before payment is
// required for users outside the allow-list.
const DefaultTrialReadings = 1

// DefaultRatePerMinute is the per-user request budget.
const DefaultRatePerMinute = 5

// Config wires an Engine's collaborators and policy knobs.
type Config struct {
	Store       storage.SessionStore
	Catalog     *catalog.Catalog
	Resolver    *resolve.Resolver
	Detector    *lang.Detector
	Interpreter interpret.Interpreter

	// Spread is the layout drawn for automated readings.
	// Defaults to the three-card spread.
	Spread spread.Spread

	// AllowedUsers bypass payment unconditionally.
	AllowedUsers []string

	// TrialReadings is the free-reading budget for everyone else.
	TrialReadings int

	// MaxCards caps resolved entities per custom combination.
	MaxCards int

	// RatePerMinute is the per-user request budget.
	RatePerMinute int
}

// Engine is the conversation state machine. Safe for concurrent use;
// operations for the same user identifier are serialized, different users
// proceed in parallel.
type Engine struct {
	store       storage.SessionStore
	cat         *catalog.Catalog
	resolver    *resolve.Resolver
	detector    *lang.Detector
	interpreter interpret.Interpreter
	layout      spread.Spread

	allowed  map[string]struct{}
	trial    int
	maxCards int
	limiters *userLimiters

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates an Engine. Store, Catalog, Resolver, Detector and Interpreter
// are required; the policy knobs default as documented on Config.
func New(cfg Config) (*Engine, error) {
	if cfg.Store == nil || cfg.Catalog == nil || cfg.Resolver == nil ||
		cfg.Detector == nil || cfg.Interpreter == nil {
		return nil, fmt.Errorf("engine: store, catalog, resolver, detector and interpreter are required")
	}
	if cfg.Spread == nil {
		cfg.Spread = spread.ThreeCard()
	}
	if cfg.TrialReadings <= 0 {
		cfg.TrialReadings = DefaultTrialReadings
	}
	if cfg.MaxCards <= 0 {
		cfg.MaxCards = resolve.DefaultMaxCards
	}
	if cfg.RatePerMinute <= 0 {
		cfg.RatePerMinute = DefaultRatePerMinute
	}

	allowed := make(map[string]struct{}, len(cfg.AllowedUsers))
	for _, id := range cfg.AllowedUsers {
		allowed[id] = struct{}{}
	}

	return &Engine{
		store:       cfg.Store,
		cat:         cfg.Catalog,
		resolver:    cfg.Resolver,
		detector:    cfg.Detector,
		interpreter: cfg.Interpreter,
		layout:      cfg.Spread,
		allowed:     allowed,
		trial:       cfg.TrialReadings,
		maxCards:    cfg.MaxCards,
		limiters:    newUserLimiters(cfg.RatePerMinute),
		locks:       make(map[string]*sync.Mutex),
	}, nil
}

// userLock returns the mutex serializing turns for one user.
func (e *Engine) userLock(userID string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	l, ok := e.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		e.locks[userID] = l
	}
	return l
}

// begin acquires the user's turn lock and charges the rate budget.
// A turn already in flight for the same user is rejected, not queued.
func (e *Engine) begin(userID string) (*sync.Mutex, error) {
	l := e.userLock(userID)
	if !l.TryLock() {
		return nil, ErrBusy
	}
	if !e.limiters.allow(userID) {
		l.Unlock()
		return nil, ErrRateLimited
	}
	return l, nil
}

// session loads the user's session, recreating it in the default state when
// none exists or the inactivity window has elapsed.
func (e *Engine) session(ctx context.Context, userID string) (*types.Session, error) {
	s, err := e.store.Get(ctx, userID)
	if err == nil {
		return s, nil
	}
	if err == storage.ErrNotFound {
		return types.NewSession(userID), nil
	}
	return nil, fmt.Errorf("engine: load session: %w", err)
}

func (e *Engine) save(ctx context.Context, s *types.Session) error {
	if err := e.store.Put(ctx, s); err != nil {
		return fmt.Errorf("engine: save session: %w", err)
	}
	return nil
}

// advance moves the session to next after checking the transition table.
func advance(s *types.Session, next string) error {
	if !types.IsValidSessionTransition(s.State, next) {
		return ErrInvalidTransition
	}
	s.SetState(next)
	return nil
}

// entitled applies the access policy in strict priority order: allow-list
// first, then the trial budget, then payment. The allow-list branch never
// consults the reading counter.
func (e *Engine) entitled(s *types.Session) bool {
	if _, ok := e.allowed[s.UserID]; ok {
		return true
	}
	return s.ReadingCount < e.trial
}

// targetState maps a reading kind to the state that collects its input.
func targetState(kind string) (string, error) {
	switch kind {
	case types.ReadingAutomated:
		return types.StateAwaitingQuestion, nil
	case types.ReadingCustom:
		return types.StateAwaitingCards, nil
	default:
		return "", fmt.Errorf("engine: unknown reading kind %q: %w", kind, ErrValidation)
	}
}

// StartReading begins a reading of the given kind from the idle state.
// Entitled users advance to the kind's input state; everyone else parks in
// awaiting_payment with the kind remembered, and ErrPaymentRequired is
// returned alongside the updated session.
func (e *Engine) StartReading(ctx context.Context, userID, kind string) (*types.Session, error) {
	l, err := e.begin(userID)
	if err != nil {
		return nil, err
	}
	defer l.Unlock()

	next, err := targetState(kind)
	if err != nil {
		return nil, err
	}

	s, err := e.session(ctx, userID)
	if err != nil {
		return nil, err
	}
	if s.State != types.StateIdle {
		return s, ErrInvalidTransition
	}

	if !e.entitled(s) {
		s.PendingKind = kind
		if err := advance(s, types.StateAwaitingPayment); err != nil {
			return s, err
		}
		if err := e.save(ctx, s); err != nil {
			return nil, err
		}
		return s, ErrPaymentRequired
	}

	s.PendingKind = kind
	if err := advance(s, next); err != nil {
		return s, err
	}
	if err := e.save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// ConfirmPayment resumes the reading that parked the session in
// awaiting_payment, advancing to whichever input state was pending.
func (e *Engine) ConfirmPayment(ctx context.Context, userID string) (*types.Session, error) {
	l, err := e.begin(userID)
	if err != nil {
		return nil, err
	}
	defer l.Unlock()

	s, err := e.session(ctx, userID)
	if err != nil {
		return nil, err
	}
	if s.State != types.StateAwaitingPayment {
		return s, ErrInvalidTransition
	}

	next, err := targetState(s.PendingKind)
	if err != nil {
		return s, ErrInvalidTransition
	}
	if err := advance(s, next); err != nil {
		return s, err
	}
	if err := e.save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Reset returns the session to idle from any state, clearing all transient
// turn fields. It never counts as a completed interaction and is exempt
// from the rate budget.
func (e *Engine) Reset(ctx context.Context, userID string) (*types.Session, error) {
	l := e.userLock(userID)
	if !l.TryLock() {
		return nil, ErrBusy
	}
	defer l.Unlock()

	s, err := e.session(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.PendingKind = ""
	s.PendingQuestion = ""
	s.PendingCards = nil
	s.FailedAttempts = 0
	// Reset to idle is permitted from every state.
	s.SetState(types.StateIdle)
	if err := e.save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Session returns the user's current session without mutating it, for the
// transport layer to render state-appropriate prompts.
func (e *Engine) Session(ctx context.Context, userID string) (*types.Session, error) {
	return e.session(ctx, userID)
}
