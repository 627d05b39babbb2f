// Package session owns the full mutable state of one playthrough: player,
// world registry, journal, current location, turn counter and the active
// encounter. Every operation takes the session explicitly; there is no
// process-global state, so multiple sessions can coexist in one process as
// long as each is driven from a single goroutine.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/google/uuid"
	"github.com/jwebster45206/adventure-engine/pkg/actor"
	"github.com/jwebster45206/adventure-engine/pkg/combat"
	"github.com/jwebster45206/adventure-engine/pkg/journal"
	"github.com/jwebster45206/adventure-engine/pkg/world"
)

// Session is the unit of game state. Not safe for concurrent use.
type Session struct {
	ID        uuid.UUID
	Player    *actor.Player
	World     *world.Registry
	Journal   *journal.Journal
	Location  string // free string; may name a registered location or an ad hoc one
	TurnCount int

	encounter *combat.Encounter
	rng       *rand.Rand
	logger    *slog.Logger
}

// New creates a session for a fresh playthrough.
func New(playerName string, reg *world.Registry, rng *rand.Rand, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		ID:      uuid.New(),
		Player:  actor.NewPlayer(playerName),
		World:   reg,
		Journal: journal.New(),
		rng:     rng,
		logger:  logger,
	}
}

// AdvanceTurn increments the exploration turn counter and returns the new
// value. Combat turns do not advance it.
func (s *Session) AdvanceTurn() int {
	s.TurnCount++
	return s.TurnCount
}

// InCombat reports whether an encounter is active.
func (s *Session) InCombat() bool {
	return s.encounter != nil
}

// Encounter returns the active encounter, or nil.
func (s *Session) Encounter() *combat.Encounter {
	return s.encounter
}

// StartCombat begins an encounter against the named enemy, resolving or
// synthesizing its template through the registry. The encounter fights an
// independent copy; registry templates are never damaged. A combat
// directive arriving while an encounter is already active is ignored.
func (s *Session) StartCombat(enemyName string) []string {
	if s.encounter != nil {
		s.logger.Warn("Combat directive ignored, encounter already active",
			"enemy", enemyName, "current", s.encounter.Enemy.Name)
		return nil
	}

	enemy := s.World.Enemy(enemyName, s.TurnCount)
	s.encounter = combat.NewEncounter(enemy, s.Player, s.Journal, s.rng, s.TurnCount)
	s.logger.Info("Combat started", "enemy", enemy.Name, "difficulty", enemy.Difficulty)

	return []string{
		fmt.Sprintf("COMBAT: %s vs %s", s.Player.Name, enemy.Name),
		enemy.Description,
		fmt.Sprintf("The %s looks ready for battle!", enemy.Name),
		fmt.Sprintf("Enemy stats: Health: %d, Attack: %d, Defense: %d",
			enemy.Health, enemy.Attack, enemy.Defense),
	}
}

// CombatTurn parses and applies one combat action. Invalid input returns an
// error with no state change and no enemy turn. When the encounter
// resolves, the session clears it and returns to exploration.
func (s *Session) CombatTurn(input string) (*combat.Report, error) {
	if s.encounter == nil {
		return nil, combat.ErrEncounterOver
	}

	action, err := combat.ParseAction(input)
	if err != nil {
		return nil, err
	}

	rep, err := s.encounter.Turn(action)
	if err != nil {
		return nil, err
	}
	if rep.Over {
		s.encounter = nil
	}
	return rep, nil
}

// FindItem adds the named item to the player's inventory, synthesizing a
// registry record on first reference, and journals the find.
func (s *Session) FindItem(name string) []string {
	item := s.World.Item(name)
	s.Player.AddItem(item)
	s.Journal.Record(s.TurnCount, fmt.Sprintf("Found %s", item.Name))
	return []string{fmt.Sprintf("You found: %s - %s", item.Name, item.Description)}
}

// ChangeLocation moves the player, synthesizing the destination on first
// reference. Location synthesis may call the narrator and block on ctx.
func (s *Session) ChangeLocation(ctx context.Context, name string) []string {
	old := s.Location
	loc := s.World.Location(ctx, name)
	s.Location = loc.Name
	s.Journal.Record(s.TurnCount, fmt.Sprintf("Traveled from %s to %s", old, loc.Name))
	return []string{fmt.Sprintf("You have moved from %s to %s.", old, loc.Name)}
}

// RecordEvent journals a significant event verbatim.
func (s *Session) RecordEvent(event string) {
	s.Journal.Record(s.TurnCount, event)
}

// UseItem applies an inventory item outside combat.
func (s *Session) UseItem(name string) ([]string, error) {
	res, err := s.Player.UseItem(name)
	if err != nil {
		return nil, err
	}
	return s.Player.DescribeUse(res), nil
}
