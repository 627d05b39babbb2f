package session

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/jwebster45206/adventure-engine/pkg/actor"
	"github.com/jwebster45206/adventure-engine/pkg/journal"
	"github.com/jwebster45206/adventure-engine/pkg/world"
)

// Snapshot is the persisted form of a session. The JSON field names are the
// save-document schema and must stay stable across builds.
type Snapshot struct {
	ID        uuid.UUID        `json:"id"`
	Player    *actor.Player    `json:"player"`
	World     *world.Registry  `json:"world_data"`
	Location  string           `json:"current_location"`
	Journal   *journal.Journal `json:"knowledge_base"`
	TurnCount int              `json:"turn_count"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// Snapshot captures the session for persistence. The session keeps these
// five values consistent between actions, so a snapshot taken at any point
// outside an in-flight action is safe to serialize. Active encounters are
// not persisted; a restored session always resumes in exploration.
func (s *Session) Snapshot() *Snapshot {
	return &Snapshot{
		ID:        s.ID,
		Player:    s.Player,
		World:     s.World,
		Location:  s.Location,
		Journal:   s.Journal,
		TurnCount: s.TurnCount,
		UpdatedAt: time.Now(),
	}
}

// Restore rebuilds a live session from a snapshot, re-binding the runtime
// dependencies the save document does not carry.
func Restore(snap *Snapshot, rng *rand.Rand, describer world.LocationDescriber, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	if snap.Player == nil {
		snap.Player = actor.NewPlayer("")
	}
	if snap.World == nil {
		snap.World = world.NewRegistry(rng, describer, logger)
	} else {
		snap.World.AttachRuntime(rng, describer, logger)
	}
	if snap.Journal == nil {
		snap.Journal = journal.New()
	}
	return &Session{
		ID:        snap.ID,
		Player:    snap.Player,
		World:     snap.World,
		Journal:   snap.Journal,
		Location:  snap.Location,
		TurnCount: snap.TurnCount,
		rng:       rng,
		logger:    logger,
	}
}
