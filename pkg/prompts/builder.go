package prompts

import (
	"fmt"
	"strings"

	"github.com/jwebster45206/adventure-engine/pkg/actor"
	"github.com/jwebster45206/adventure-engine/pkg/world"
)

const (
	// keyEntityLimit caps how many locations and characters the turn
	// prompt lists; large generated worlds would otherwise blow out the
	// context window.
	keyEntityLimit = 5
	// recentEventLimit caps the journal entries included per turn.
	recentEventLimit = 3
)

// TurnBuilder assembles the per-turn game master prompt from the session's
// current state using a fluent interface.
type TurnBuilder struct {
	registry *world.Registry
	player   *actor.Player
	location string
	turn     int
	recent   []string
	action   string
}

// NewTurn creates an empty turn prompt builder.
func NewTurn() *TurnBuilder {
	return &TurnBuilder{}
}

// WithWorld sets the world registry the prompt draws context from.
func (b *TurnBuilder) WithWorld(reg *world.Registry) *TurnBuilder {
	b.registry = reg
	return b
}

// WithPlayer sets the player whose stats and inventory are described.
func (b *TurnBuilder) WithPlayer(p *actor.Player) *TurnBuilder {
	b.player = p
	return b
}

// WithLocation sets the player's current location name.
func (b *TurnBuilder) WithLocation(location string) *TurnBuilder {
	b.location = location
	return b
}

// WithTurn sets the current turn number.
func (b *TurnBuilder) WithTurn(turn int) *TurnBuilder {
	b.turn = turn
	return b
}

// WithRecentEvents sets the journal entries quoted as recent history.
// Entries beyond recentEventLimit are dropped from the front.
func (b *TurnBuilder) WithRecentEvents(events []string) *TurnBuilder {
	if len(events) > recentEventLimit {
		events = events[len(events)-recentEventLimit:]
	}
	b.recent = events
	return b
}

// WithAction sets the player's free-text action for this turn.
func (b *TurnBuilder) WithAction(action string) *TurnBuilder {
	b.action = action
	return b
}

// Build renders the prompt. The registry and player are required.
func (b *TurnBuilder) Build() (string, error) {
	if b.registry == nil {
		return "", fmt.Errorf("world registry is required")
	}
	if b.player == nil {
		return "", fmt.Errorf("player is required")
	}

	var locations strings.Builder
	for i, loc := range b.registry.Locations {
		if i >= keyEntityLimit {
			break
		}
		fmt.Fprintf(&locations, "- %s: %s\n", loc.Name, loc.Description)
	}

	var characters strings.Builder
	for i, ch := range b.registry.Characters {
		if i >= keyEntityLimit {
			break
		}
		fmt.Fprintf(&characters, "- %s (%s): %s\n", ch.Name, ch.Role, ch.Description)
	}

	inventory := "Empty"
	if len(b.player.Inventory) > 0 {
		names := make([]string, len(b.player.Inventory))
		for i, item := range b.player.Inventory {
			names[i] = item.Name
		}
		inventory = strings.Join(names, ", ")
	}

	history := "No significant events yet."
	if len(b.recent) > 0 {
		history = strings.Join(b.recent, "\n")
	}

	return fmt.Sprintf(`=== WORLD INFORMATION ===
World: %s (%s)
Current Location: %s

Some key locations:
%s
Some key characters:
%s
=== PLAYER INFORMATION ===
Name: %s
Health: %d/%d
Inventory: %s

=== RECENT HISTORY ===
%s

=== CURRENT SITUATION ===
Turn: %d
The player is currently at: %s

Player's action: %q

Respond to this action with a vivid description of what happens. Consider the worldbuilding, current
location, and any relevant characters or items. Be immersive but concise. Refer to the player in second person.`,
		b.registry.Name, b.registry.Theme, b.location,
		locations.String(), characters.String(),
		b.player.Name, b.player.Health, b.player.MaxHealth, inventory,
		history,
		b.turn, b.location, b.action), nil
}
