// cmd/arcanad is the entry point for the Arcana conversation core. It wires
// the catalog, resolver, locale detector, session store and interpretation
// client into the turn engine, then serves an interactive line protocol on
// stdin for a single user.
//
// Startup sequence:
//  1. Load configuration from environment variables.
//  2. Load and validate the card catalog.
//  3. Open the configured session store (memory, sqlite or postgres).
//  4. Build the resolver, detector and interpretation client.
//  5. Read commands and free text from stdin until EOF or a signal.
//
// All logging goes to stderr; stdout carries only conversation output.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/skrylnikov/arcana/internal/catalog"
	"github.com/skrylnikov/arcana/internal/config"
	"github.com/skrylnikov/arcana/internal/engine"
	"github.com/skrylnikov/arcana/internal/interpret"
	"github.com/skrylnikov/arcana/internal/lang"
	"github.com/skrylnikov/arcana/internal/resolve"
	"github.com/skrylnikov/arcana/internal/storage"
	"github.com/skrylnikov/arcana/internal/storage/memory"
	"github.com/skrylnikov/arcana/internal/storage/postgres"
	"github.com/skrylnikov/arcana/internal/storage/sqlite"
	"github.com/skrylnikov/arcana/pkg/types"
)

// newStore opens the session store selected by configuration.
func newStore(cfg *config.Config) (storage.SessionStore, error) {
	switch cfg.Storage.StorageEngine {
	case "memory":
		return memory.NewStore(cfg.Session.TTL), nil
	case "sqlite":
		if err := os.MkdirAll(cfg.Storage.DataPath, 0o700); err != nil {
			return nil, fmt.Errorf("create data directory %q: %w", cfg.Storage.DataPath, err)
		}
		return sqlite.NewSessionStore(filepath.Join(cfg.Storage.DataPath, "arcana.db"), cfg.Session.TTL)
	case "postgres":
		return postgres.NewSessionStore(cfg.Storage.PostgresDSN, cfg.Session.TTL)
	default:
		return nil, fmt.Errorf("unknown storage engine %q", cfg.Storage.StorageEngine)
	}
}

// newInterpreter builds the interpretation client selected by configuration.
func newInterpreter(cfg *config.Config) (interpret.Interpreter, error) {
	pc := interpret.ProviderConfig{
		Provider: cfg.Interpreter.Provider,
		Timeout:  cfg.Interpreter.Timeout,
	}
	switch cfg.Interpreter.Provider {
	case "openai":
		pc.APIKey = cfg.Interpreter.OpenAIAPIKey
		pc.Model = cfg.Interpreter.OpenAIModel
	default:
		pc.APIKey = cfg.Interpreter.AnthropicAPIKey
		pc.Model = cfg.Interpreter.AnthropicModel
	}
	return interpret.NewInterpreter(pc)
}

func main() {
	log.SetOutput(os.Stderr)
	log.SetPrefix("arcanad: ")
	log.SetFlags(log.LstdFlags)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	cat, err := catalog.Load()
	if err != nil {
		// A malformed catalog must never serve traffic.
		log.Fatalf("failed to load catalog: %v", err)
	}
	log.Printf("catalog loaded: %d cards", cat.Len())

	store, err := newStore(cfg)
	if err != nil {
		log.Fatalf("failed to open session store: %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("store close error: %v", err)
		}
	}()

	interp, err := newInterpreter(cfg)
	if err != nil {
		log.Fatalf("failed to create interpretation client: %v", err)
	}
	log.Printf("interpretation provider: %s (%s)", cfg.Interpreter.Provider, interp.Model())

	eng, err := engine.New(engine.Config{
		Store:         store,
		Catalog:       cat,
		Resolver:      resolve.NewResolver(cat, cfg.Resolver.Threshold),
		Detector:      lang.NewDetector(),
		Interpreter:   interp,
		AllowedUsers:  cfg.Session.AllowedUsers,
		MaxCards:      cfg.Resolver.MaxCards,
		RatePerMinute: cfg.Session.RatePerMinute,
	})
	if err != nil {
		log.Fatalf("failed to create engine: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("received shutdown signal")
		cancel()
	}()

	userID := os.Getenv("ARCANA_USER_ID")
	if userID == "" {
		userID = "local"
	}

	fmt.Println("commands: /question /cards /pay /accept /reset /quit; anything else is sent as text")
	serve(ctx, eng, userID)
}

// serve runs the stdin line loop until EOF, /quit or context cancellation.
func serve(ctx context.Context, eng *engine.Engine, userID string) {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				log.Printf("stdin read error: %v", err)
			}
			return
		}
		if ctx.Err() != nil {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "/quit" {
			return
		}
		handleLine(ctx, eng, userID, line)
	}
}

func handleLine(ctx context.Context, eng *engine.Engine, userID, line string) {
	switch line {
	case "/question":
		s, err := eng.StartReading(ctx, userID, types.ReadingAutomated)
		report(s, nil, err)
	case "/cards":
		s, err := eng.StartReading(ctx, userID, types.ReadingCustom)
		report(s, nil, err)
	case "/pay":
		s, err := eng.ConfirmPayment(ctx, userID)
		report(s, nil, err)
	case "/accept":
		out, err := eng.AcceptPartial(ctx, userID)
		reportOutcome(out, err)
	case "/reset":
		s, err := eng.Reset(ctx, userID)
		report(s, nil, err)
	default:
		out, err := eng.HandleMessage(ctx, userID, line)
		reportOutcome(out, err)
	}
}

func reportOutcome(out *engine.Outcome, err error) {
	if out == nil {
		report(nil, nil, err)
		return
	}
	report(out.Session, out, err)
}

func report(s *types.Session, out *engine.Outcome, err error) {
	if err != nil {
		fmt.Println(renderError(err))
	}
	if out != nil {
		if out.Resolution != nil && len(out.Resolution.Unresolved) > 0 {
			fmt.Printf("unrecognized: %s\n", strings.Join(out.Resolution.UnresolvedFragments(), ", "))
		}
		if out.Resolution != nil && len(out.Resolution.Resolved) > 0 && out.Reading == nil {
			fmt.Printf("recognized card ids: %v (use /accept to continue or resend)\n", out.Resolution.Resolved)
		}
		if out.Reading != nil {
			fmt.Println(out.Reading.Interpretation)
		}
	}
	if s != nil {
		fmt.Printf("[state: %s, readings: %d]\n", s.State, s.ReadingCount)
	}
}

// renderError maps the engine's error taxonomy to user-facing messages.
// Raw input is never echoed back.
func renderError(err error) string {
	switch {
	case errors.Is(err, engine.ErrPaymentRequired):
		return "payment required: confirm with /pay to continue"
	case errors.Is(err, engine.ErrInvalidTransition):
		return "that input does not fit the current step; use /question, /cards or /reset"
	case errors.Is(err, engine.ErrValidation):
		return "questions must be between 5 and 500 characters"
	case errors.Is(err, engine.ErrRateLimited):
		return "too many requests, please wait a moment"
	case errors.Is(err, engine.ErrCollaborator):
		return "the reading service is unavailable, please try again"
	case errors.Is(err, engine.ErrBusy):
		return "still working on your previous request"
	default:
		return fmt.Sprintf("error: %v", err)
	}
}
