// Package game wires the session, narrator service, directive interpreter
// and storage into the turn loop the UI drives.
package game

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jwebster45206/adventure-engine/internal/services"
	"github.com/jwebster45206/adventure-engine/internal/storage"
	"github.com/jwebster45206/adventure-engine/pkg/combat"
	"github.com/jwebster45206/adventure-engine/pkg/directive"
	"github.com/jwebster45206/adventure-engine/pkg/prompts"
	"github.com/jwebster45206/adventure-engine/pkg/session"
)

// Engine processes player actions for one session. It is synchronous and
// turn-driven: exactly one action at a time, blocking only on narrator
// calls.
type Engine struct {
	session *session.Session
	llm     services.LLMService
	interp  *directive.Interpreter
	store   storage.Storage
	logger  *slog.Logger
}

// NewEngine creates an engine for a session.
func NewEngine(s *session.Session, llm services.LLMService, store storage.Storage, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		session: s,
		llm:     llm,
		interp:  directive.NewInterpreter(s, logger),
		store:   store,
		logger:  logger,
	}
}

// Session exposes the underlying session for read access by the UI.
func (e *Engine) Session() *session.Session {
	return e.session
}

// TurnResult is what one exploration turn produced for display.
type TurnResult struct {
	Narrative     string   // tag-stripped narrator text
	Notices       []string // effects applied by directives, in order
	CombatStarted bool
}

// Intro generates the opening narration for a new playthrough.
func (e *Engine) Intro(ctx context.Context) string {
	s := e.session
	text, err := e.llm.Generate(ctx,
		prompts.Intro(s.Player.Name, s.World.Name, s.Location),
		prompts.IntroSystem)
	if err != nil {
		e.logger.Error("Intro generation failed", "error", err)
		return fmt.Sprintf("Your journey in %s begins in %s.", s.World.Name, s.Location)
	}
	return text
}

// ExplorationTurn advances the turn counter, sends the player's free-text
// action to the narrator and applies any directives in the response. A
// narrator failure degrades to a placeholder narrative; the session
// continues either way.
func (e *Engine) ExplorationTurn(ctx context.Context, action string) *TurnResult {
	s := e.session
	turn := s.AdvanceTurn()

	prompt, err := prompts.NewTurn().
		WithWorld(s.World).
		WithPlayer(s.Player).
		WithLocation(s.Location).
		WithTurn(turn).
		WithRecentEvents(s.Journal.Recent(3)).
		WithAction(action).
		Build()
	if err != nil {
		e.logger.Error("Turn prompt build failed", "error", err)
		return &TurnResult{Narrative: services.DegradedResponse}
	}

	raw, err := e.llm.Generate(ctx, prompt, prompts.GameMasterSystem)
	if err != nil {
		e.logger.Error("Narrator generation failed", "turn", turn, "error", err)
		raw = services.DegradedResponse
	}

	display, notices := e.interp.Apply(ctx, raw)
	return &TurnResult{
		Narrative:     display,
		Notices:       notices,
		CombatStarted: s.InCombat(),
	}
}

// CombatTurn applies one combat action. Invalid input returns an error
// with no turn consumed.
func (e *Engine) CombatTurn(input string) (*combat.Report, error) {
	return e.session.CombatTurn(input)
}

// UseItem applies an inventory item outside combat.
func (e *Engine) UseItem(name string) ([]string, error) {
	return e.session.UseItem(name)
}

// Save persists the session snapshot.
func (e *Engine) Save(ctx context.Context) error {
	if err := e.store.SaveSession(ctx, e.session.Snapshot()); err != nil {
		e.logger.Error("Failed to save session", "id", e.session.ID, "error", err)
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}
